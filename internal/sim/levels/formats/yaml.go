// Package formats provides pluggable level file format parsers.
package formats

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// YAMLLevel represents the YAML structure for a level file.
type YAMLLevel struct {
	ID       string            `yaml:"id"`
	Name     string            `yaml:"name"`
	Height   int               `yaml:"height"`
	Hole     int               `yaml:"hole"`
	Widths   YAMLWidths        `yaml:"widths"`
	Tools    YAMLTools         `yaml:"tools"`
	Spawner  YAMLSpawner       `yaml:"spawner"`
	Figures  []YAMLFigure      `yaml:"figures,omitempty"`
	Metadata map[string]string `yaml:"metadata,omitempty"`
}

// YAMLWidths holds the four section widths around the chutes.
type YAMLWidths struct {
	BeforeGreen int `yaml:"before_green"`
	GreenToRed  int `yaml:"green_to_red"`
	RedToBlue   int `yaml:"red_to_blue"`
	AfterBlue   int `yaml:"after_blue"`
}

// YAMLPoint is a cell position.
type YAMLPoint struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// YAMLTools places the optional tools.
type YAMLTools struct {
	Saw        *YAMLPoint `yaml:"saw,omitempty"`
	Rotator    *YAMLPoint `yaml:"rotator,omitempty"`
	Transmuter *YAMLPoint `yaml:"transmuter,omitempty"`
}

// YAMLSpawner configures the input hole.
type YAMLSpawner struct {
	Disabled bool     `yaml:"disabled,omitempty"`
	Shapes   []string `yaml:"shapes,omitempty"`
	Types    []string `yaml:"types,omitempty"`
}

// YAMLFigure is a figure drawn as rows of block letters, top row first.
// G, B and R are blocks; '.' or ' ' is empty.
type YAMLFigure struct {
	At   YAMLPoint `yaml:"at"`
	Rows []string  `yaml:"rows"`
}

// Point is a parsed cell position.
type Point struct {
	X, Y int
}

// Block is a parsed figure block; Type is the block letter.
type Block struct {
	DX, DY int
	Type   rune
}

// Figure is a parsed starting figure.
type Figure struct {
	At     Point
	Blocks []Block
}

// Level represents a parsed level ready for validation.
type Level struct {
	ID          string
	Name        string
	Height      int
	Hole        int
	BeforeGreen int
	GreenToRed  int
	RedToBlue   int
	AfterBlue   int
	Saw         *Point
	Rotator     *Point
	Transmuter  *Point
	NoSpawner   bool
	Shapes      []string
	Types       []string
	Figures     []Figure
	Metadata    map[string]string
}

// ParseYAML parses a YAML level file.
func ParseYAML(data []byte) (Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	hole := yl.Hole
	if hole <= 0 {
		hole = 2 // Default hole size
	}

	level := Level{
		ID:          yl.ID,
		Name:        yl.Name,
		Height:      yl.Height,
		Hole:        hole,
		BeforeGreen: yl.Widths.BeforeGreen,
		GreenToRed:  yl.Widths.GreenToRed,
		RedToBlue:   yl.Widths.RedToBlue,
		AfterBlue:   yl.Widths.AfterBlue,
		Saw:         toPoint(yl.Tools.Saw),
		Rotator:     toPoint(yl.Tools.Rotator),
		Transmuter:  toPoint(yl.Tools.Transmuter),
		NoSpawner:   yl.Spawner.Disabled,
		Shapes:      yl.Spawner.Shapes,
		Types:       yl.Spawner.Types,
		Metadata:    yl.Metadata,
	}

	for i, f := range yl.Figures {
		fig, err := parseRows(f)
		if err != nil {
			return Level{}, fmt.Errorf("figure %d: %w", i, err)
		}
		level.Figures = append(level.Figures, fig)
	}

	return level, nil
}

func toPoint(p *YAMLPoint) *Point {
	if p == nil {
		return nil
	}
	return &Point{X: p.X, Y: p.Y}
}

// parseRows turns the drawn rows into offsets with Y growing upward.
func parseRows(f YAMLFigure) (Figure, error) {
	fig := Figure{At: Point{X: f.At.X, Y: f.At.Y}}
	for i, row := range f.Rows {
		dy := len(f.Rows) - 1 - i
		dx := 0
		for _, r := range row {
			switch r {
			case '.', ' ':
			case 'G', 'g', 'B', 'b', 'R', 'r':
				fig.Blocks = append(fig.Blocks, Block{DX: dx, DY: dy, Type: r})
			default:
				return Figure{}, fmt.Errorf("unknown block letter %q", r)
			}
			dx++
		}
	}
	if len(fig.Blocks) == 0 {
		return Figure{}, fmt.Errorf("figure has no blocks")
	}
	return fig, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
