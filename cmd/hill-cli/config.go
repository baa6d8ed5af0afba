package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// OutputFormat represents the output format for results.
type OutputFormat string

const (
	FormatJSON OutputFormat = "json"
	FormatYAML OutputFormat = "yaml"
	FormatText OutputFormat = "text"
)

const envPrefix = "HILL"

// CLIConfig holds the resolved configuration of one invocation.
// Precedence: flags, then HILL_* environment variables, then the config
// file, then defaults.
type CLIConfig struct {
	OutputFormat OutputFormat
	OutputFile   string
	InputFile    string
	Key          string
	KeyFile      string
	Size         int
	Iterations   int
	Verbose      bool
	Timing       bool
}

var configDefaults = map[string]any{
	"format":     string(FormatJSON),
	"size":       2,
	"iterations": 1000,
}

// userConfigDir returns the per-user directory searched for hill.yaml.
func userConfigDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("could not get user config directory: %w", err)
	}
	return filepath.Join(dir, "hill"), nil
}

// loadConfig builds a fresh viper instance for cmd, binds its flags and
// reads the optional config file.
func loadConfig(cmd *cobra.Command) (CLIConfig, error) {
	v := viper.New()

	for key, value := range configDefaults {
		v.SetDefault(key, value)
	}

	v.SetConfigName("hill")
	v.SetConfigType("yaml")
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		v.SetConfigFile(path)
	} else {
		if dir, err := userConfigDir(); err == nil {
			v.AddConfigPath(dir)
		}
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		// A missing file is fine, anything else is not.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return CLIConfig{}, fmt.Errorf("error loading config: %w", err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return CLIConfig{}, err
	}

	config := CLIConfig{
		OutputFile: v.GetString("output"),
		InputFile:  v.GetString("input"),
		Key:        v.GetString("key"),
		KeyFile:    v.GetString("key-file"),
		Size:       v.GetInt("size"),
		Iterations: v.GetInt("iterations"),
		Verbose:    v.GetBool("verbose"),
		Timing:     v.GetBool("timing"),
	}

	switch format := strings.ToLower(v.GetString("format")); format {
	case "json":
		config.OutputFormat = FormatJSON
	case "yaml", "yml":
		config.OutputFormat = FormatYAML
	case "text", "txt":
		config.OutputFormat = FormatText
	default:
		return CLIConfig{}, fmt.Errorf("invalid format '%s': must be one of json, yaml, text", format)
	}

	return config, nil
}
