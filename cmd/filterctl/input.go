package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"io.winapps.adminconsole/internal/filters"
)

// readBag loads a filter bag from path, or from stdin when path is empty or "-"
func readBag(stdin io.Reader, path, format string) (filters.Bag, error) {
	var data []byte
	var err error
	if path == "" || path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}

	switch format {
	case "json":
		var bag filters.Bag
		if err := json.Unmarshal(data, &bag); err != nil {
			return nil, err
		}
		return bag, nil
	case "yaml", "yml":
		var raw map[string]any
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to decode filter bag: %w", err)
		}
		if raw == nil {
			return nil, errors.New("failed to decode filter bag: document is empty or null, want a mapping")
		}
		return filters.BagFromMap(raw), nil
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}

func inputPath(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
