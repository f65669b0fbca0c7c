package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/terrapane/aescrypt-cli/internal/config"
)

// NewRootCommand creates the root command with all flags registered and
// environment variable binding configured.
func NewRootCommand(cfg *config.Config, version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "aescrypt [flags] [file]...",
		Short:   "File encryption utility",
		Long: `A command-line file encryption utility.
Encrypts or decrypts files with a password, a key file, or an interactive
prompt, and can generate key files with random data. Use "-" as a filename
to read from stdin or write to stdout.`,
		Version:       version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			viper.SetEnvPrefix("aescrypt")
			viper.AutomaticEnv()

			return viper.BindPFlags(cmd.Flags())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := viper.Unmarshal(cfg); err != nil {
				return fmt.Errorf("parsing config: %w", err)
			}

			cfg.Files = args

			// A flag left at its default is indistinguishable from an
			// explicit value after unmarshalling, so record which ones
			// were actually given.
			cfg.PasswordSet = cmd.Flags().Changed("password")
			cfg.OutputSet = cmd.Flags().Changed("outfile")
			cfg.IterationsSet = cmd.Flags().Changed("iterations")
			cfg.KeySizeSet = cmd.Flags().Changed("keysize")

			if err := cfg.Validate(); err != nil {
				return err
			}

			return run(cfg, version)
		},
	}

	cmd.Flags().BoolP("encrypt", "e", false, "Encrypt the specified file(s)")
	cmd.Flags().BoolP("decrypt", "d", false, "Decrypt the specified file(s)")
	cmd.Flags().BoolP("generate", "g", false, "Generate a key file with random data")

	cmd.Flags().Uint32P("iterations", "i", cfg.Iterations, "Number of KDF iterations")
	cmd.Flags().StringP("keyfile", "k", "", "The key file to use")
	cmd.Flags().StringP("outfile", "o", "", "Output file when operating on a single file")
	cmd.Flags().StringP("password", "p", "", "Password for encryption or decryption")
	cmd.Flags().IntP("keysize", "s", cfg.KeySize, "Key size in octets to use with --generate")

	cmd.Flags().BoolP("quiet", "q", false, "Do not produce progress output to stdout")
	cmd.Flags().BoolP("logging", "l", false, "Enable diagnostic logging output to stderr")

	return cmd
}

// Execute runs the root command with default configuration.
func Execute(version string) error {
	return NewRootCommand(config.Defaults(), version).Execute()
}
