package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FileValues are the settings that may be given in a YAML config file
type FileValues struct {
	APIURL          string `yaml:"api_url"`
	RequestTimeout  string `yaml:"request_timeout"`
	CredentialsFile string `yaml:"credentials_file"`
	LogLevel        string `yaml:"log_level"`
}

// LoadFile reads a YAML config file. An empty path yields empty values.
func LoadFile(path string) (FileValues, error) {
	var values FileValues
	if path == "" {
		return values, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return values, fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &values); err != nil {
		return values, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return values, nil
}
