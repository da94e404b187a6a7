package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load loads the simulation tuning.
// Search order: customPath -> ~/.chuteworks/configs/sim.yaml -> ./configs/sim.yaml -> embedded default.
// Files only need to name the keys they override; the rest keeps default values.
func Load(customPath string) (SimConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return SimConfig{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return SimConfig{}, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	if userCfgPath := userConfigPath("sim.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	if data, err := os.ReadFile(filepath.Join("configs", "sim.yaml")); err == nil {
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	cfg, err := Parse(defaultSimYAML)
	if err != nil {
		return DefaultSimConfig(), nil
	}
	return cfg, nil
}

// Parse decodes YAML on top of DefaultSimConfig and validates the result.
func Parse(data []byte) (SimConfig, error) {
	cfg := DefaultSimConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return SimConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return SimConfig{}, err
	}
	return cfg, nil
}

// Validate reports the first out-of-range tunable.
func (c SimConfig) Validate() error {
	switch {
	case c.Ledger.MaxFuel <= 0:
		return fmt.Errorf("ledger.max_fuel must be positive, got %d", c.Ledger.MaxFuel)
	case c.Ledger.MaxResearch <= 0:
		return fmt.Errorf("ledger.max_research must be positive, got %d", c.Ledger.MaxResearch)
	case c.Research.Interval <= 0:
		return fmt.Errorf("research.interval must be positive, got %g", c.Research.Interval)
	case c.Drag.SnapDivisor <= 0:
		return fmt.Errorf("drag.snap_divisor must be positive, got %g", c.Drag.SnapDivisor)
	case c.Drag.ZoneRadius <= 0 || c.Drag.ZoneRadius >= 1:
		return fmt.Errorf("drag.zone_radius must be in (0, 1), got %g", c.Drag.ZoneRadius)
	case c.Drag.MaxStep <= 0 || c.Drag.MaxStep >= 1:
		return fmt.Errorf("drag.max_step must be in (0, 1), got %g", c.Drag.MaxStep)
	case c.Drag.BisectIterations <= 0:
		return fmt.Errorf("drag.bisect_iterations must be positive, got %d", c.Drag.BisectIterations)
	case c.Flash.Toggles < 0 || c.Flash.Period <= 0:
		return fmt.Errorf("flash needs toggles >= 0 and a positive period")
	case c.Tools.RotatorSize < 1:
		return fmt.Errorf("tools.rotator_size must be at least 1, got %d", c.Tools.RotatorSize)
	}
	return nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".chuteworks", "configs", filename)
}
