package cmd

import (
	"fmt"

	"github.com/spiralbot/spiralbot/internal/assets"
	"github.com/spiralbot/spiralbot/internal/automate"
	"github.com/spiralbot/spiralbot/internal/detect"
	"github.com/spiralbot/spiralbot/internal/element"
	"github.com/spiralbot/spiralbot/internal/ocr"
	"github.com/spiralbot/spiralbot/internal/screen"
)

// stack bundles the wired-up detection and automation layers for a command.
type stack struct {
	provider *screen.Provider
	registry *assets.Registry
	detector *detect.Detector
	ctrl     *automate.Controller
}

// newStack assembles the full pipeline from the loaded config: screen
// provider, asset registry, OCR probe, detector, and automation controller.
func newStack() *stack {
	provider := screen.NewProvider()
	registry := assets.NewRegistry(cfg.Detection.TemplateDir)

	detector := detect.New(provider.Capturer, registry, ocr.NewEngine(), ocr.Probe(), logger)

	ctrl := automate.New(detector, provider.Inputter, provider.Clipboard, logger)
	ctrl.MaxRetries = cfg.Timing.MaxRetries
	ctrl.RetryDelay = cfg.Timing.RetryDelay
	ctrl.SettleDelay = cfg.Timing.SettleDelay

	return &stack{
		provider: provider,
		registry: registry,
		detector: detector,
		ctrl:     ctrl,
	}
}

// criteriaFromFlags builds search criteria from the shared detection flags:
// a template asset name, OCR text, an optional fallback coordinate, and a
// threshold override.
func criteriaFromFlags(name, template, text string, threshold float64, fx, fy int) (element.SearchCriteria, error) {
	if name == "" {
		name = template
	}
	if name == "" {
		name = text
	}
	if name == "" {
		return element.SearchCriteria{}, fmt.Errorf("specify at least one of --template, --text, or --name")
	}

	c := element.Criteria(name, element.KindUnknown)
	c.Template = template
	c.Text = text
	if threshold > 0 {
		c.Threshold = threshold
	} else if cfg.Detection.Threshold > 0 {
		c.Threshold = cfg.Detection.Threshold
	}
	if fx != 0 || fy != 0 {
		c.Fallback = &element.Coordinates{X: fx, Y: fy}
		c.Strategies = append(c.Strategies, element.StrategyCoordinates)
	}
	return c, nil
}

// StringParam extracts a string MCP tool parameter with a default.
func StringParam(params map[string]interface{}, key, def string) string {
	if v, ok := params[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return def
}

// IntParam extracts an integer MCP tool parameter with a default. MCP
// numbers arrive as float64.
func IntParam(params map[string]interface{}, key string, def int) int {
	if v, ok := params[key]; ok {
		if f, ok := v.(float64); ok {
			return int(f)
		}
	}
	return def
}

// FloatParam extracts a float MCP tool parameter with a default.
func FloatParam(params map[string]interface{}, key string, def float64) float64 {
	if v, ok := params[key]; ok {
		if f, ok := v.(float64); ok {
			return f
		}
	}
	return def
}

// BoolParam extracts a boolean MCP tool parameter with a default.
func BoolParam(params map[string]interface{}, key string, def bool) bool {
	if v, ok := params[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return def
}
