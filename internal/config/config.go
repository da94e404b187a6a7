// Package config provides YAML-based tuning for the chuteworks simulation:
// ledger limits, drag feel, flash timing, research pacing and tool costs.
package config

// SimConfig contains every tunable of the simulation core.
type SimConfig struct {
	Ledger   LedgerConfig   `yaml:"ledger"`
	Research ResearchConfig `yaml:"research"`
	Drag     DragConfig     `yaml:"drag"`
	Flash    FlashConfig    `yaml:"flash"`
	Tools    ToolsConfig    `yaml:"tools"`
}

// LedgerConfig defines resource ranges and starting values.
type LedgerConfig struct {
	MaxFuel       int `yaml:"max_fuel"`
	StartFuel     int `yaml:"start_fuel"`
	MaxResearch   int `yaml:"max_research"`
	StartResearch int `yaml:"start_research"`
}

// ResearchConfig defines how research accrues over time.
// Research equals floor((elapsed - Delay) / Interval), clamped by the ledger.
type ResearchConfig struct {
	Delay    float64 `yaml:"delay"`    // Seconds before the first point
	Interval float64 `yaml:"interval"` // Seconds per point
}

// DragConfig holds the drag resolver feel parameters.
type DragConfig struct {
	SnapDivisor      float64 `yaml:"snap_divisor"`      // Long drag: major axis divisor
	MinMinor         float64 `yaml:"min_minor"`         // Long drag: floor of the minor deviation
	ZoneRadius       float64 `yaml:"zone_radius"`       // Short drag: play zone radius
	ZoneOffset       float64 `yaml:"zone_offset"`       // Short drag: zone center offset from the grid point
	TangentFactor    float64 `yaml:"tangent_factor"`    // Short drag: share of motion kept along the zone edge
	MaxStep          float64 `yaml:"max_step"`          // Per-tick displacement limit per axis
	BisectIterations int     `yaml:"bisect_iterations"` // Circle raycast iterations
}

// FlashConfig defines the out-of-fuel indicator animation.
type FlashConfig struct {
	Toggles int     `yaml:"toggles"` // Number of on/off phases
	Period  float64 `yaml:"period"`  // Seconds per phase
}

// ToolsConfig defines starting tool stats and costs.
type ToolsConfig struct {
	RotationCost      int `yaml:"rotation_cost"`
	RotatorSize       int `yaml:"rotator_size"`
	TransmutationCost int `yaml:"transmutation_cost"`
}
