package config

// Preset represents a named economy preset.
type Preset string

const (
	PresetEasy   Preset = "easy"
	PresetNormal Preset = "normal"
	PresetHard   Preset = "hard"
)

// ParsePreset validates a preset name. An empty name means normal.
func ParsePreset(name string) (Preset, bool) {
	switch Preset(name) {
	case "", PresetNormal:
		return PresetNormal, true
	case PresetEasy:
		return PresetEasy, true
	case PresetHard:
		return PresetHard, true
	default:
		return "", false
	}
}

// ApplyPreset scales starting fuel and research pace.
// Normal leaves the config untouched.
func ApplyPreset(cfg *SimConfig, preset Preset) {
	switch preset {
	case PresetEasy:
		cfg.Ledger.StartFuel = cfg.Ledger.StartFuel * 2
		cfg.Research.Interval = cfg.Research.Interval / 2
	case PresetHard:
		cfg.Ledger.StartFuel = cfg.Ledger.StartFuel / 2
		cfg.Research.Interval = cfg.Research.Interval * 2
	}
	if cfg.Ledger.StartFuel > cfg.Ledger.MaxFuel {
		cfg.Ledger.StartFuel = cfg.Ledger.MaxFuel
	}
}
