package sim

import (
	"fmt"
	"strings"
)

// Upgrade is one of the closed set of upgrade tokens.
type Upgrade string

const (
	UpgradeSawCost     Upgrade = "sawCost"
	UpgradeRotatorCost Upgrade = "rotatorCost"
	UpgradeRotatorSize Upgrade = "rotatorSize"
	UpgradeTransmuter1 Upgrade = "transmuter1"
	UpgradeTransmuter2 Upgrade = "transmuter2"
	UpgradeTransmuter3 Upgrade = "transmuter3"
)

// AllUpgrades lists the tokens in menu order.
var AllUpgrades = []Upgrade{
	UpgradeSawCost,
	UpgradeRotatorCost,
	UpgradeRotatorSize,
	UpgradeTransmuter1,
	UpgradeTransmuter2,
	UpgradeTransmuter3,
}

// ParseUpgrade validates a token, ignoring case.
func ParseUpgrade(s string) (Upgrade, error) {
	for _, u := range AllUpgrades {
		if strings.EqualFold(string(u), strings.TrimSpace(s)) {
			return u, nil
		}
	}
	return "", fmt.Errorf("sim: unknown upgrade %q", s)
}

// Title returns a short label for menus.
func (u Upgrade) Title() string {
	switch u {
	case UpgradeSawCost:
		return "Cheaper saw"
	case UpgradeRotatorCost:
		return "Free rotation"
	case UpgradeRotatorSize:
		return "Larger rotator"
	case UpgradeTransmuter1:
		return "Build transmuter"
	case UpgradeTransmuter2:
		return "Transmuter 2x2"
	case UpgradeTransmuter3:
		return "Transmuter 3x3"
	default:
		return string(u)
	}
}

// Stats are the tool parameters changed by upgrades.
type Stats struct {
	SawCostUpgraded     bool
	RotatorCostUpgraded bool
	RotationCost        int
	RotatorSize         int
	TransmuterSize      int
	TransmutationCost   int
}

// Availability maps each upgrade to whether it can still be taken.
type Availability map[Upgrade]bool

// Availability reports which upgrades the stats still permit.
func (s Stats) Availability() Availability {
	return Availability{
		UpgradeSawCost:     !s.SawCostUpgraded,
		UpgradeRotatorCost: !s.RotatorCostUpgraded,
		UpgradeRotatorSize: s.RotatorSize == 2,
		UpgradeTransmuter1: s.TransmuterSize == 0,
		UpgradeTransmuter2: s.TransmuterSize == 1,
		UpgradeTransmuter3: s.TransmuterSize == 2,
	}
}

// Apply returns the stats after u. Panics on a token outside the set.
func (s Stats) Apply(u Upgrade) Stats {
	switch u {
	case UpgradeSawCost:
		s.SawCostUpgraded = true
	case UpgradeRotatorCost:
		s.RotatorCostUpgraded = true
		s.RotationCost = 0
	case UpgradeRotatorSize:
		s.RotatorSize = 3
	case UpgradeTransmuter1:
		s.TransmuterSize = 1
	case UpgradeTransmuter2:
		s.TransmuterSize = 2
		s.TransmutationCost = 2
	case UpgradeTransmuter3:
		s.TransmuterSize = 3
		s.TransmutationCost = 3
	default:
		panic(fmt.Sprintf("sim: unknown upgrade %q", string(u)))
	}
	return s
}

// CutCost returns the fuel needed to saw through a block of type t.
func (s Stats) CutCost(t BlockType) int {
	c := t.CuttingCost()
	if s.SawCostUpgraded && c > 0 {
		c--
	}
	return c
}
