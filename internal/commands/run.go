package commands

import (
	"fmt"

	"github.com/terrapane/aescrypt-cli/internal/cancel"
	"github.com/terrapane/aescrypt-cli/internal/config"
	"github.com/terrapane/aescrypt-cli/internal/engine"
	"github.com/terrapane/aescrypt-cli/internal/keymat"
	"github.com/terrapane/aescrypt-cli/internal/logging"
	"github.com/terrapane/aescrypt-cli/internal/pipeline"
	"github.com/terrapane/aescrypt-cli/internal/secure"
)

// run executes the validated configuration: generate a key file, or
// acquire key material and drive the file pipeline.
func run(cfg *config.Config, version string) error {
	log := &logging.Logger{Verbose: cfg.Logging}

	if cfg.Logging {
		// The progress meter and log output fight over the terminal.
		cfg.Quiet = true

		log.Infof("logging enabled")
	}

	warnNonUTF8Locale(log)

	mode := cfg.Mode()

	if mode == config.ModeGenerate {
		if err := keymat.GenerateKeyFile(cfg.KeyFile, cfg.KeySize, log); err != nil {
			return fmt.Errorf("unable to generate the key file: %w", err)
		}

		return nil
	}

	password, err := acquireKeyMaterial(cfg, mode, log)
	if err != nil {
		return err
	}
	defer password.Destroy()

	signal := cancel.New()
	cancel.Install(signal)

	pipe := &pipeline.Pipeline{
		Password:   password,
		Decrypt:    mode == config.ModeDecrypt,
		Output:     cfg.Output,
		Iterations: cfg.Iterations,
		Extensions: []engine.Extension{
			{Name: "CREATED_BY", Value: "aescrypt " + version},
		},
		Quiet:  cfg.Quiet,
		Signal: signal,
		Log:    log,
	}

	return pipe.Run(cfg.Files)
}

// acquireKeyMaterial resolves the password bytes from the configured
// source: explicit password, key file, or interactive prompt. Encryption
// prompts twice so a mistyped password cannot lock data away.
func acquireKeyMaterial(cfg *config.Config, mode config.Mode, log *logging.Logger) (*secure.Buffer, error) {
	switch {
	case cfg.Password != "":
		password, err := keymat.FromPassword(cfg.Password)
		if err != nil {
			return nil, fmt.Errorf("invalid password argument: %w", err)
		}

		return password, nil
	case cfg.KeyFile != "":
		password, err := keymat.FromKeyFile(cfg.KeyFile, log)
		if err != nil {
			return nil, fmt.Errorf("unable to get a key from the key file: %w", err)
		}

		return password, nil
	default:
		password, err := keymat.FromPrompt(mode == config.ModeEncrypt, log)
		if err != nil {
			return nil, fmt.Errorf("failed to get a password: %w", err)
		}

		return password, nil
	}
}
