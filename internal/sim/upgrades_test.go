package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseStats() Stats {
	return Stats{RotationCost: 1, RotatorSize: 2, TransmutationCost: 1}
}

func TestInitialAvailability(t *testing.T) {
	avail := baseStats().Availability()

	assert.Equal(t, Availability{
		UpgradeSawCost:     true,
		UpgradeRotatorCost: true,
		UpgradeRotatorSize: true,
		UpgradeTransmuter1: true,
		UpgradeTransmuter2: false,
		UpgradeTransmuter3: false,
	}, avail)
}

func TestUpgradeEffects(t *testing.T) {
	s := baseStats()

	s = s.Apply(UpgradeSawCost)
	assert.True(t, s.SawCostUpgraded)

	s = s.Apply(UpgradeRotatorCost)
	assert.True(t, s.RotatorCostUpgraded)
	assert.Equal(t, 0, s.RotationCost)

	s = s.Apply(UpgradeRotatorSize)
	assert.Equal(t, 3, s.RotatorSize)

	s = s.Apply(UpgradeTransmuter1)
	assert.Equal(t, 1, s.TransmuterSize)
	assert.Equal(t, 1, s.TransmutationCost)

	s = s.Apply(UpgradeTransmuter2)
	assert.Equal(t, 2, s.TransmuterSize)
	assert.Equal(t, 2, s.TransmutationCost)

	s = s.Apply(UpgradeTransmuter3)
	assert.Equal(t, 3, s.TransmuterSize)
	assert.Equal(t, 3, s.TransmutationCost)

	for u, ok := range s.Availability() {
		assert.False(t, ok, "%s should be used up", u)
	}
}

func TestTransmuterChain(t *testing.T) {
	s := baseStats()
	for i, u := range []Upgrade{UpgradeTransmuter1, UpgradeTransmuter2, UpgradeTransmuter3} {
		avail := s.Availability()
		assert.True(t, avail[u], "step %d", i)
		for _, other := range []Upgrade{UpgradeTransmuter1, UpgradeTransmuter2, UpgradeTransmuter3} {
			if other != u {
				assert.False(t, avail[other], "step %d: %s", i, other)
			}
		}
		s = s.Apply(u)
	}
}

func TestUnknownUpgradePanics(t *testing.T) {
	assert.Panics(t, func() { baseStats().Apply(Upgrade("laser")) })
}

func TestParseUpgrade(t *testing.T) {
	u, err := ParseUpgrade("rotatorSize")
	require.NoError(t, err)
	assert.Equal(t, UpgradeRotatorSize, u)

	u, err = ParseUpgrade(" SAWCOST ")
	require.NoError(t, err)
	assert.Equal(t, UpgradeSawCost, u)

	_, err = ParseUpgrade("transmuter4")
	assert.Error(t, err)
}

func TestCutCost(t *testing.T) {
	s := baseStats()
	assert.Equal(t, 0, s.CutCost(BlockGreen))
	assert.Equal(t, 1, s.CutCost(BlockBlue))
	assert.Equal(t, 2, s.CutCost(BlockRed))

	s = s.Apply(UpgradeSawCost)
	assert.Equal(t, 0, s.CutCost(BlockGreen))
	assert.Equal(t, 0, s.CutCost(BlockBlue))
	assert.Equal(t, 1, s.CutCost(BlockRed))
}
