package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newKeyCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Manage the stored API-Ninjas key",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set <api-key>",
		Short: "Store the API-Ninjas key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openKeyStore(opts.configPath)
			if err != nil {
				return err
			}
			if err := store.SetAPIKey(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "API key saved to %s\n", store.path)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the stored API-Ninjas key, masked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openKeyStore(opts.configPath)
			if err != nil {
				return err
			}
			key := store.APIKey()
			if key == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "No API key stored.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), maskKey(key))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Forget the stored API-Ninjas key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openKeyStore(opts.configPath)
			if err != nil {
				return err
			}
			if err := store.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "API key cleared.")
			return nil
		},
	})

	return cmd
}
