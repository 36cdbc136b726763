package project

import (
	"encoding/json"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// isYAML reports whether path names a YAML document. Everything else is JSON.
func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

func marshal(path string, v interface{}) ([]byte, error) {
	if isYAML(path) {
		return yaml.Marshal(v)
	}
	return json.MarshalIndent(v, "", "  ")
}

func unmarshal(path string, data []byte, v interface{}) error {
	if isYAML(path) {
		return yaml.Unmarshal(data, v)
	}
	return json.Unmarshal(data, v)
}
