package main

import (
	"os"

	"github.com/DanielPopoola/vin-gateway/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
