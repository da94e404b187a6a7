package levels

import (
	"fmt"

	"github.com/vovakirdan/chuteworks/internal/registry"
	"github.com/vovakirdan/chuteworks/internal/sim"
	"github.com/vovakirdan/chuteworks/internal/sim/levels/formats"
)

// ValidationError contains details about validation failure.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// validateParsed checks fields that must be present before geometry is built.
func validateParsed(p formats.Level) error {
	if p.ID == "" {
		return ValidationError{Code: "MISSING_ID", Message: "level has no id"}
	}
	if p.Height <= 0 {
		return ValidationError{Code: "BAD_GEOMETRY", Message: fmt.Sprintf("height must be positive, got %d", p.Height)}
	}
	return nil
}

// validateLevel checks tool placement and spawner settings.
// Overlaps between entities are caught when the world is built.
func validateLevel(l Level) error {
	g := l.Geometry
	tools := []struct {
		name string
		at   *sim.Cell
	}{
		{"saw", l.Saw},
		{"rotator", l.Rotator},
		{"transmuter", l.Transmuter},
	}
	for _, tool := range tools {
		if tool.at == nil {
			continue
		}
		if !g.InBounds(tool.at.X, tool.at.Y) {
			return ValidationError{
				Code:    "TOOL_OUT_OF_BOUNDS",
				Message: fmt.Sprintf("%s at (%d,%d) is outside the %dx%d field", tool.name, tool.at.X, tool.at.Y, g.Width, g.Height),
			}
		}
	}

	if l.Saw != nil && !g.InBounds(l.Saw.X+1, l.Saw.Y) {
		return ValidationError{Code: "TOOL_OUT_OF_BOUNDS", Message: "saw blade gap needs two columns"}
	}

	for _, id := range l.Shapes {
		if !registry.Exists(id) {
			return ValidationError{Code: "UNKNOWN_SHAPE", Message: fmt.Sprintf("shape %q is not registered", id)}
		}
	}

	if l.NoSpawner && len(l.Figures) == 0 {
		return ValidationError{Code: "EMPTY_LEVEL", Message: "level has no figures and no spawner"}
	}
	return nil
}
