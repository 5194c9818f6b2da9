package format

import (
	"github.com/ericmwr/SOP-PR-CALC/internal/model"
	"gopkg.in/yaml.v3"
)

// YAMLFormatter formats worksheets as YAML with calculated values
type YAMLFormatter struct {
	config *model.Config
}

// NewYAMLFormatter creates a new YAML formatter
func NewYAMLFormatter(config *model.Config) *YAMLFormatter {
	return &YAMLFormatter{config: config}
}

// Format formats a worksheet as YAML
func (f *YAMLFormatter) Format(w *model.Worksheet, projectArea, laborRate float64) (string, error) {
	// Use the same output structure as JSON formatter
	jsonFormatter := NewJSONFormatter(f.config)
	output := jsonFormatter.BuildOutput(w, projectArea, laborRate)

	data, err := yaml.Marshal(output)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
