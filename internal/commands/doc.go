// Package commands provides the command-line interface for the aescrypt
// tool: a single root command whose mode flags select encryption,
// decryption, or key-file generation.
//
// The package handles flag parsing, environment variable binding through
// cobra and viper, configuration validation, key-material acquisition, and
// hand-off to the file pipeline.
package commands
