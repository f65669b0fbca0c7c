// Package config holds the resolved command-line configuration and its
// validation rules, including the mutual-exclusivity constraints between
// modes and between the password and key-file sources.
package config

import (
	"fmt"

	"github.com/terrapane/aescrypt-cli/internal/engine"
	"github.com/terrapane/aescrypt-cli/internal/keymat"
	"github.com/terrapane/aescrypt-cli/internal/pipeline"
)

// Mode is the operation selected for this invocation.
type Mode int

const (
	ModeUndefined Mode = iota
	ModeEncrypt
	ModeDecrypt
	ModeGenerate
)

type Config struct {
	// Mode flags; exactly one must be set.
	Encrypt  bool
	Decrypt  bool
	Generate bool

	// Key material sources, mutually exclusive.
	Password string `validate:"exclusive=KeyFile"`
	KeyFile  string `mapstructure:"keyfile"`

	// Output file override; valid only with a single input file.
	Output string `mapstructure:"outfile"`

	// Iterations is the KDF cost; settable only when encrypting.
	Iterations uint32 `validate:"min=1,max=5000000"`

	// KeySize is the generated key-file length in octets.
	KeySize int `mapstructure:"keysize" validate:"min=43,max=4096"`

	Quiet   bool
	Logging bool

	// Set by the command layer when the corresponding flag was given
	// explicitly, since a flag left at its default is indistinguishable
	// from an empty value after unmarshalling.
	PasswordSet   bool `mapstructure:"-"`
	OutputSet     bool `mapstructure:"-"`
	IterationsSet bool `mapstructure:"-"`
	KeySizeSet    bool `mapstructure:"-"`

	// Positional arguments.
	Files []string `mapstructure:"-"`
}

// Mode returns the selected operation, or ModeUndefined when zero or
// multiple mode flags are set.
func (c *Config) Mode() Mode {
	var (
		mode  Mode
		count int
	)

	if c.Encrypt {
		mode = ModeEncrypt
		count++
	}

	if c.Decrypt {
		mode = ModeDecrypt
		count++
	}

	if c.Generate {
		mode = ModeGenerate
		count++
	}

	if count != 1 {
		return ModeUndefined
	}

	return mode
}

// Validate checks the configuration against the struct tags and the
// cross-field rules that tags cannot express. All validation errors are
// fatal; nothing is demoted to a warning.
//
//nolint:cyclop // flat list of invocation rules
func (c *Config) Validate() error {
	mode := c.Mode()
	if mode == ModeUndefined {
		return fmt.Errorf("%w: specify exactly one of encrypt (-e), decrypt (-d), or generate (-g)", ErrUsage)
	}

	if err := validateStruct(c); err != nil {
		return err
	}

	if c.PasswordSet && c.Password == "" {
		return fmt.Errorf("%w: password argument cannot be empty", ErrUsage)
	}

	if c.OutputSet && c.Output == "" {
		return fmt.Errorf("%w: empty output file name not allowed", ErrUsage)
	}

	if mode == ModeGenerate {
		return c.validateGenerate()
	}

	if len(c.Files) == 0 {
		return fmt.Errorf("%w: no input files were given", ErrUsage)
	}

	if c.KeySizeSet {
		return fmt.Errorf("%w: key size is only valid when generating a key file", ErrUsage)
	}

	if c.IterationsSet && mode != ModeEncrypt {
		return fmt.Errorf("%w: iterations are only valid when encrypting", ErrUsage)
	}

	if c.KeyFile == pipeline.Stdio {
		return fmt.Errorf("%w: when encrypting or decrypting, the key file cannot be stdin", ErrUsage)
	}

	var stdinInputs int

	for _, file := range c.Files {
		if file == pipeline.Stdio {
			stdinInputs++
		}
	}

	if stdinInputs > 1 {
		return fmt.Errorf("%w: stdin (%q) cannot be specified more than once", ErrUsage, pipeline.Stdio)
	}

	if c.OutputSet && len(c.Files) > 1 {
		return fmt.Errorf("%w: output file cannot be specified with multiple input files", ErrUsage)
	}

	if stdinInputs > 0 && !c.OutputSet {
		return fmt.Errorf(
			"%w: since stdin is used for input, an output filename must be specified (may be %q)",
			ErrUsage, pipeline.Stdio)
	}

	return nil
}

// validateGenerate covers the rules specific to key-file generation.
func (c *Config) validateGenerate() error {
	if len(c.Files) > 0 {
		return fmt.Errorf("%w: cannot specify input files when generating a key", ErrUsage)
	}

	if c.Password != "" {
		return fmt.Errorf("%w: cannot specify a password when generating a key", ErrUsage)
	}

	if c.OutputSet {
		return fmt.Errorf("%w: output file cannot be specified when generating a key file", ErrUsage)
	}

	if c.IterationsSet {
		return fmt.Errorf("%w: iterations are only valid when encrypting", ErrUsage)
	}

	if c.KeyFile == "" {
		return fmt.Errorf("%w: to generate a key, specify the name of the key file (-k)", ErrUsage)
	}

	return nil
}

// Defaults returns a Config carrying the documented default values.
func Defaults() *Config {
	return &Config{
		Iterations: engine.DefaultIterations,
		KeySize:    keymat.DefaultKeyFileSize,
	}
}
