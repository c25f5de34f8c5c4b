package timeline

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadWatch reads and validates a watch definition file. The file is
// optional at the product level; when present it supplies the account,
// polling settings, and mute filters for the monitored timeline.
func LoadWatch(path string) (*Watch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var watch Watch
	if err := yaml.Unmarshal(data, &watch); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if watch.Settings.MaxItems == 0 {
		watch.Settings.MaxItems = DefaultMaxItems
	}
	if watch.Settings.PollInterval == 0 {
		watch.Settings.PollInterval = 60
	}
	if watch.Settings.Timeout == 0 {
		watch.Settings.Timeout = 30
	}

	if err := validateWatch(&watch); err != nil {
		return nil, fmt.Errorf("invalid watch config %s: %w", path, err)
	}

	return &watch, nil
}

func validateWatch(watch *Watch) error {
	if watch.Account == "" {
		return fmt.Errorf("account is required")
	}

	nonNegativeFields := map[string]int{
		"max items":     watch.Settings.MaxItems,
		"poll interval": watch.Settings.PollInterval,
		"timeout":       watch.Settings.Timeout,
	}

	for fieldName, fieldValue := range nonNegativeFields {
		if fieldValue < 0 {
			return fmt.Errorf("%s must be non-negative", fieldName)
		}
	}

	validFields := map[string]bool{
		"text": true,
		"url":  true,
	}

	for i, filter := range watch.Filters {
		if !validFields[filter.Field] {
			return fmt.Errorf("invalid filter field at index %d: %s", i, filter.Field)
		}
		if len(filter.Includes) == 0 && len(filter.Excludes) == 0 {
			return fmt.Errorf("filter at index %d must have at least one include or exclude rule", i)
		}
	}

	return nil
}
