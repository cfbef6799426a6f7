package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dd0wney/cluso-graph-analyzer/pkg/graph"
)

// elementFile accepts either a bare element list or {"elements": [...]}.
type elementFile struct {
	Elements []graph.Element `json:"elements" yaml:"elements"`
}

// readElements decodes a JSON or YAML element list. The format is chosen by
// extension; anything other than .yaml or .yml is read as JSON.
func readElements(path string) ([]graph.Element, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read graph %s: %w", path, err)
	}

	unmarshal := json.Unmarshal
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		unmarshal = yaml.Unmarshal
	}

	var list []graph.Element
	if err := unmarshal(data, &list); err == nil {
		return list, nil
	}

	var wrapped elementFile
	if err := unmarshal(data, &wrapped); err != nil {
		return nil, fmt.Errorf("failed to parse graph %s: %w", path, err)
	}
	return wrapped.Elements, nil
}
