package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/DanielPopoola/vin-gateway/internal/application"
	"github.com/DanielPopoola/vin-gateway/internal/application/services"
	"github.com/DanielPopoola/vin-gateway/internal/config"
	"github.com/DanielPopoola/vin-gateway/internal/domain"
	"github.com/DanielPopoola/vin-gateway/internal/infrastructure/decoder"
	"github.com/spf13/cobra"
)

type decodeOptions struct {
	provider string
	apiKey   string
	baseURL  string
	timeout  time.Duration
	retries  int
	output   string
}

func newDecodeCmd(opts *options) *cobra.Command {
	dopts := &decodeOptions{}

	cmd := &cobra.Command{
		Use:   "decode <VIN>",
		Short: "Decode a VIN and print the vehicle details",
		Example: `  vindecode decode 1HGCM82633A004352 --api-key $NINJAS_KEY
  vindecode decode 1HGCM82633A004352 --provider nhtsa`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDecode(cmd, opts, dopts, args[0])
		},
	}

	cmd.Flags().StringVarP(&dopts.provider, "provider", "p", string(domain.ProviderNinjas), "decoding service: ninjas or nhtsa")
	cmd.Flags().StringVarP(&dopts.apiKey, "api-key", "k", "", "API-Ninjas key; saved for later runs")
	cmd.Flags().StringVar(&dopts.baseURL, "base-url", "", "override the provider base URL")
	cmd.Flags().DurationVar(&dopts.timeout, "timeout", 8*time.Second, "request timeout")
	cmd.Flags().IntVar(&dopts.retries, "retries", 1, "attempts for transient upstream failures")
	cmd.Flags().StringVarP(&dopts.output, "output", "o", "text", "output format: text or json")

	return cmd
}

func runDecode(cmd *cobra.Command, opts *options, dopts *decodeOptions, rawVIN string) error {
	provider, err := domain.ParseProvider(dopts.provider)
	if err != nil {
		return err
	}
	if dopts.output != "text" && dopts.output != "json" {
		return fmt.Errorf("unknown output format %q", dopts.output)
	}

	store, err := openKeyStore(opts.configPath)
	if err != nil {
		return err
	}

	apiKey := strings.TrimSpace(dopts.apiKey)
	if provider.RequiresAPIKey() {
		if apiKey != "" {
			if err := store.SetAPIKey(apiKey); err != nil {
				return err
			}
		} else {
			apiKey = store.APIKey()
		}
		if apiKey == "" {
			return application.NewMissingAPIKeyError()
		}
	}

	decoderCfg := decoderConfig(dopts)
	if dopts.baseURL != "" {
		switch provider {
		case domain.ProviderNinjas:
			decoderCfg.NinjasBaseURL = dopts.baseURL
		case domain.ProviderNHTSA:
			decoderCfg.NHTSABaseURL = dopts.baseURL
		}
	}

	d, err := decoder.New(provider, decoderCfg, config.RetryConfig{
		BaseDelay:  500 * time.Millisecond,
		MaxRetries: max(dopts.retries, 1),
	})
	if err != nil {
		return err
	}

	svc := services.NewDecodeService(
		[]application.Decoder{d},
		provider,
		nil,
		0,
		opts.logger(cmd.ErrOrStderr()),
	).WithCallTimeout(dopts.timeout + time.Second)

	ctx, cancel := context.WithTimeout(cmd.Context(), dopts.timeout+time.Second)
	defer cancel()

	decoded, err := svc.Decode(ctx, services.DecodeCommand{
		VIN:      rawVIN,
		Provider: string(provider),
		APIKey:   apiKey,
		NoCache:  true,
	})
	if err != nil {
		return err
	}

	if dopts.output == "json" {
		return renderVehicleJSON(cmd.OutOrStdout(), decoded.Vehicle)
	}
	renderVehicle(cmd.OutOrStdout(), decoded.Vehicle)
	return nil
}

func decoderConfig(dopts *decodeOptions) config.DecoderConfig {
	defaults := config.Defaults()
	return config.DecoderConfig{
		NinjasBaseURL: defaults["decoder.ninjas_base_url"].(string),
		NHTSABaseURL:  defaults["decoder.nhtsa_base_url"].(string),
		ConnTimeout:   dopts.timeout,
	}
}
