package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/DanielPopoola/vin-gateway/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	valueStyle = lipgloss.NewStyle().
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))
)

func renderVehicle(w io.Writer, v *domain.Vehicle) {
	width := 0
	for _, a := range v.Attributes {
		if n := len(a.Label) + 1; n > width {
			width = n
		}
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Vehicle Details: %s", v.VIN)))
	b.WriteString("\n")
	for _, a := range v.Attributes {
		b.WriteString(labelStyle.Width(width + 1).Render(a.Label + ":"))
		b.WriteString(valueStyle.Render(a.Value))
		b.WriteString("\n")
	}

	fmt.Fprint(w, b.String())
}

type jsonVehicle struct {
	VIN        string             `json:"vin"`
	Provider   string             `json:"provider"`
	Attributes []domain.Attribute `json:"attributes"`
}

func renderVehicleJSON(w io.Writer, v *domain.Vehicle) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(jsonVehicle{
		VIN:        v.VIN.String(),
		Provider:   string(v.Provider),
		Attributes: v.Attributes,
	})
}
