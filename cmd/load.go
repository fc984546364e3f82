package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/scom-repos/scom-scatter-chart-sub000/widget"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// loadData reads widget data from a .json, .jsonc, .yml or .yaml file.
func loadData(path string) (widget.Data, error) {
	var data widget.Data
	content, err := os.ReadFile(path)
	if err != nil {
		return data, fmt.Errorf("unable to read %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		var doc interface{}
		if err := yaml.Unmarshal(content, &doc); err != nil {
			return data, fmt.Errorf("unable to parse %s: %w", path, err)
		}
		content, err = json.Marshal(doc)
		if err != nil {
			return data, fmt.Errorf("unable to parse %s: %w", path, err)
		}
	case ".jsonc":
		content = jsonc.ToJSON(content)
	}

	if err := json.Unmarshal(content, &data); err != nil {
		return data, fmt.Errorf("unable to parse %s: %w", path, err)
	}
	return data, nil
}
