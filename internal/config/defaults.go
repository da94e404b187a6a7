package config

import (
	_ "embed"
)

//go:embed defaults/sim.yaml
var defaultSimYAML []byte

// DefaultSimConfig returns the built-in tuning.
// It mirrors defaults/sim.yaml and is used when the embedded file fails to parse.
func DefaultSimConfig() SimConfig {
	return SimConfig{
		Ledger: LedgerConfig{
			MaxFuel:       100,
			StartFuel:     10,
			MaxResearch:   10,
			StartResearch: 0,
		},
		Research: ResearchConfig{
			Delay:    2.0,
			Interval: 1.0,
		},
		Drag: DragConfig{
			SnapDivisor:      100,
			MinMinor:         0.1,
			ZoneRadius:       0.45,
			ZoneOffset:       0.50,
			TangentFactor:    0.2,
			MaxStep:          0.75,
			BisectIterations: 12,
		},
		Flash: FlashConfig{
			Toggles: 6,
			Period:  0.3,
		},
		Tools: ToolsConfig{
			RotationCost:      1,
			RotatorSize:       2,
			TransmutationCost: 1,
		},
	}
}
