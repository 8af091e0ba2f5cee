package provider

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ConfigField describes one key a provider factory reads from its configuration
type ConfigField struct {
	Key         string `json:"key"`
	Required    bool   `json:"required"`
	Type        string `json:"type"` // string, number, url, duration, boolean
	Description string `json:"description"`
	Default     string `json:"default,omitempty"`
}

// ValidateConfigFields checks config against the given field definitions
// and fills in defaults for absent optional keys
func ValidateConfigFields(providerName string, config map[string]string, fields []ConfigField) (map[string]string, error) {
	resolved := make(map[string]string, len(fields))
	for key, value := range config {
		resolved[key] = value
	}

	for _, field := range fields {
		value := strings.TrimSpace(resolved[field.Key])
		if value == "" {
			if field.Required {
				return nil, fmt.Errorf("%s: required field '%s' is missing", providerName, field.Key)
			}
			if field.Default == "" {
				continue
			}
			value = field.Default
		}

		if err := validateFieldType(providerName, field, value); err != nil {
			return nil, err
		}
		resolved[field.Key] = value
	}

	return resolved, nil
}

func validateFieldType(providerName string, field ConfigField, value string) error {
	switch field.Type {
	case "number":
		if _, err := strconv.Atoi(value); err != nil {
			return fmt.Errorf("%s: field '%s' must be a number", providerName, field.Key)
		}
	case "url":
		u, err := url.Parse(value)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%s: field '%s' must be an absolute URL", providerName, field.Key)
		}
	case "duration":
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("%s: field '%s' must be a duration", providerName, field.Key)
		}
	case "boolean":
		if value != "true" && value != "false" {
			return fmt.Errorf("%s: field '%s' must be 'true' or 'false'", providerName, field.Key)
		}
	}
	return nil
}
