package output

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/spiralbot/spiralbot/internal/element"
)

// Format represents the output format.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// OutputFormat is the current output format, set by the root command's --format flag.
var OutputFormat Format = FormatYAML

// PrettyOutput enables pretty-printing for JSON output.
var PrettyOutput bool

// DetectionResult is the top-level output of the `detect` command.
type DetectionResult struct {
	OK         bool                 `yaml:"ok"                   json:"ok"`
	Element    string               `yaml:"element"              json:"element"`
	Strategy   string               `yaml:"strategy,omitempty"   json:"strategy,omitempty"`
	Confidence float64              `yaml:"confidence,omitempty" json:"confidence,omitempty"`
	Bounds     *element.BoundingBox `yaml:"bounds,omitempty"     json:"bounds,omitempty"`
	Center     *element.Coordinates `yaml:"center,omitempty"     json:"center,omitempty"`
	Error      string               `yaml:"error,omitempty"      json:"error,omitempty"`
}

// NewDetectionResult converts a detection outcome to its printable form.
func NewDetectionResult(name string, el element.UIElement, found bool) DetectionResult {
	if !found {
		return DetectionResult{Element: name}
	}
	bounds := el.Bounds
	center := el.Center()
	return DetectionResult{
		OK:         true,
		Element:    name,
		Strategy:   string(el.Strategy),
		Confidence: el.Confidence,
		Bounds:     &bounds,
		Center:     &center,
	}
}

// RunResult is the top-level output of the `run` command.
type RunResult struct {
	OK      bool           `yaml:"ok"                json:"ok"`
	Status  element.Status `yaml:"status"            json:"status"`
	Message string         `yaml:"message"           json:"message"`
	Data    map[string]any `yaml:"data,omitempty"    json:"data,omitempty"`
	Error   string         `yaml:"error,omitempty"   json:"error,omitempty"`
	RunID   string         `yaml:"run_id,omitempty"  json:"run_id,omitempty"`
	History string         `yaml:"history,omitempty" json:"history,omitempty"`
}

// NewRunResult converts a workflow outcome to its printable form.
func NewRunResult(res element.ActionResult) RunResult {
	out := RunResult{
		OK:      res.Success() || res.Skipped(),
		Status:  res.Status,
		Message: res.Message,
		Data:    res.Data,
	}
	if res.Err != nil {
		out.Error = res.Err.Error()
	}
	return out
}

// Print serializes v to stdout in the current output format.
func Print(v interface{}) error {
	switch OutputFormat {
	case FormatJSON:
		if PrettyOutput {
			return PrintPrettyJSON(v)
		}
		return PrintJSON(v)
	case FormatYAML:
		return PrintYAML(v)
	default:
		return fmt.Errorf("unsupported output format: %s", OutputFormat)
	}
}

// PrintJSON serializes v to stdout as compact single-line JSON.
func PrintJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// PrintPrettyJSON serializes v to stdout as indented JSON.
func PrintPrettyJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// PrintYAML serializes v to stdout as YAML.
func PrintYAML(v interface{}) error {
	enc := yaml.NewEncoder(os.Stdout)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("yaml encode: %w", err)
	}
	return enc.Close()
}
