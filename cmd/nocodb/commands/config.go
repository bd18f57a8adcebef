package commands

import (
	"fmt"
	"os"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/fivetwenty-io/nocodb-client/internal/config"
)

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the connection configuration",
		Long:  "Create and inspect the JSON configuration file holding the API base URL and authentication token",
	}

	cmd.AddCommand(newConfigInitCommand())
	cmd.AddCommand(newConfigShowCommand())

	return cmd
}

// newConfigInitCommand writes a config file from the global --url/--token
// flags (or their environment equivalents). The token is prompted for when
// absent, so it never has to appear in the shell history.
func newConfigInitCommand() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a new configuration file",
		Long:  "Write a configuration file with the base URL and authentication token; the token is prompted for when not given",
		RunE: func(cmd *cobra.Command, args []string) error {
			url := viper.GetString("url")
			if url == "" {
				return config.ErrMissingConnection
			}

			token := viper.GetString("token")
			if token == "" {
				fmt.Print("Auth token: ")

				byteToken, err := term.ReadPassword(int(syscall.Stdin))
				if err != nil {
					return fmt.Errorf("failed to read token: %w", err)
				}

				fmt.Println()

				token = string(byteToken)
			}

			cfg := &config.Config{BaseURL: url, AuthToken: token}

			err := cfg.Save(path)
			if err != nil {
				return err
			}

			fmt.Printf("Wrote configuration to %s\n", path)

			return nil
		},
	}

	cmd.Flags().StringVarP(&path, "output-file", "o", "nocodb.json", "path of the config file to write")

	return cmd
}

// newConfigShowCommand displays a config file with the token masked.
func newConfigShowCommand() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Display a configuration file",
		Long:  "Display a configuration file with the authentication token masked",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(path)
			if err != nil {
				return err
			}

			fmt.Fprintf(os.Stdout, "Base URL:   %s\n", cfg.BaseURL)
			fmt.Fprintf(os.Stdout, "Auth token: %s\n", tokenMask)

			return nil
		},
	}

	cmd.Flags().StringVar(&path, "file", "nocodb.json", "path of the config file to read")

	return cmd
}
