// Package levels provides level loading for chuteworks.
// This package depends on sim but sim does not depend on levels.
package levels

import (
	"fmt"

	"github.com/vovakirdan/chuteworks/internal/config"
	"github.com/vovakirdan/chuteworks/internal/sim"
	"github.com/vovakirdan/chuteworks/internal/sim/levels/formats"
)

// Level represents a complete level definition.
type Level struct {
	ID       string
	Name     string
	Geometry sim.Geometry

	Saw        *sim.Cell
	Rotator    *sim.Cell
	Transmuter *sim.Cell

	Figures    []sim.FigureSpec
	Shapes     []string
	SpawnTypes []sim.BlockType
	NoSpawner  bool

	Metadata map[string]string
	FilePath string
}

// Title returns the display name, falling back to the ID.
func (l Level) Title() string {
	if l.Name != "" {
		return l.Name
	}
	return l.ID
}

// Build creates a fresh world for this level.
func (l Level) Build(cfg config.SimConfig, seed int64) (*sim.World, error) {
	w, err := sim.NewWorld(sim.Options{
		Geometry:   l.Geometry,
		Config:     cfg,
		Seed:       seed,
		Saw:        l.Saw,
		Rotator:    l.Rotator,
		Transmuter: l.Transmuter,
		Figures:    l.Figures,
		Shapes:     l.Shapes,
		SpawnTypes: l.SpawnTypes,
		NoSpawner:  l.NoSpawner,
	})
	if err != nil {
		return nil, fmt.Errorf("building level %s: %w", l.ID, err)
	}
	return w, nil
}

// fromParsed validates a parsed file and converts it into a Level.
func fromParsed(p formats.Level, path string) (Level, error) {
	if err := validateParsed(p); err != nil {
		return Level{}, err
	}

	geom, err := sim.NewGeometry(p.Height, p.Hole, p.BeforeGreen, p.GreenToRed, p.RedToBlue, p.AfterBlue)
	if err != nil {
		return Level{}, ValidationError{Code: "BAD_GEOMETRY", Message: err.Error()}
	}

	lvl := Level{
		ID:         p.ID,
		Name:       p.Name,
		Geometry:   geom,
		Saw:        toCell(p.Saw),
		Rotator:    toCell(p.Rotator),
		Transmuter: toCell(p.Transmuter),
		Shapes:     p.Shapes,
		NoSpawner:  p.NoSpawner,
		Metadata:   p.Metadata,
		FilePath:   path,
	}

	for _, name := range p.Types {
		t, ok := sim.ParseBlockType(name)
		if !ok {
			return Level{}, ValidationError{Code: "INVALID_TYPE", Message: fmt.Sprintf("unknown block type %q", name)}
		}
		lvl.SpawnTypes = append(lvl.SpawnTypes, t)
	}

	for _, f := range p.Figures {
		spec := sim.FigureSpec{At: sim.C(f.At.X, f.At.Y)}
		for _, b := range f.Blocks {
			t, _ := sim.ParseBlockType(string(b.Type))
			spec.Blocks = append(spec.Blocks, sim.Block{Offset: sim.C(b.DX, b.DY), Type: t})
		}
		lvl.Figures = append(lvl.Figures, spec)
	}

	if err := validateLevel(lvl); err != nil {
		return Level{}, err
	}
	return lvl, nil
}

func toCell(p *formats.Point) *sim.Cell {
	if p == nil {
		return nil
	}
	c := sim.C(p.X, p.Y)
	return &c
}
