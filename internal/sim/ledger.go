package sim

import (
	"fmt"

	"github.com/vovakirdan/chuteworks/internal/config"
	"github.com/vovakirdan/chuteworks/internal/core"
)

// Resource names a ledger counter.
type Resource uint8

const (
	ResourceFuel Resource = iota
	ResourceResearch
)

// String returns the resource name.
func (r Resource) String() string {
	if r == ResourceResearch {
		return "research"
	}
	return "fuel"
}

// LedgerEvent is published after every setter call.
type LedgerEvent struct {
	Resource Resource
	Value    int
	Max      int
}

// Text formats the event as "value/max".
func (e LedgerEvent) Text() string {
	return fmt.Sprintf("%d/%d", e.Value, e.Max)
}

// Ledger tracks fuel and research within fixed ranges.
type Ledger struct {
	fuel        int
	maxFuel     int
	research    int
	maxResearch int

	observers map[int]func(LedgerEvent)
	nextObs   int
}

// NewLedger creates a ledger from config. Start values are clamped.
func NewLedger(cfg config.LedgerConfig) *Ledger {
	l := &Ledger{
		maxFuel:     core.Max(cfg.MaxFuel, 0),
		maxResearch: core.Max(cfg.MaxResearch, 0),
		observers:   make(map[int]func(LedgerEvent)),
	}
	l.fuel = core.Clamp(cfg.StartFuel, 0, l.maxFuel)
	l.research = core.Clamp(cfg.StartResearch, 0, l.maxResearch)
	return l
}

func (l *Ledger) Fuel() int        { return l.fuel }
func (l *Ledger) MaxFuel() int     { return l.maxFuel }
func (l *Ledger) Research() int    { return l.research }
func (l *Ledger) MaxResearch() int { return l.maxResearch }

// SetFuel clamps v into [0, MaxFuel] and notifies observers.
func (l *Ledger) SetFuel(v int) {
	l.fuel = core.Clamp(v, 0, l.maxFuel)
	l.publish(LedgerEvent{Resource: ResourceFuel, Value: l.fuel, Max: l.maxFuel})
}

// SetResearch clamps v into [0, MaxResearch] and notifies observers.
func (l *Ledger) SetResearch(v int) {
	l.research = core.Clamp(v, 0, l.maxResearch)
	l.publish(LedgerEvent{Resource: ResourceResearch, Value: l.research, Max: l.maxResearch})
}

// FuelText returns fuel as "value/max".
func (l *Ledger) FuelText() string {
	return fmt.Sprintf("%d/%d", l.fuel, l.maxFuel)
}

// ResearchText returns research as "value/max".
func (l *Ledger) ResearchText() string {
	return fmt.Sprintf("%d/%d", l.research, l.maxResearch)
}

// TryOutput settles one delivered block.
// Green adds one fuel. Blue is free. Red costs one fuel and fails with no
// change when the tank is empty.
func (l *Ledger) TryOutput(t BlockType) bool {
	switch t {
	case BlockGreen:
		l.SetFuel(l.fuel + 1)
		return true
	case BlockBlue:
		return true
	case BlockRed:
		if l.fuel == 0 {
			return false
		}
		l.SetFuel(l.fuel - 1)
		return true
	default:
		panic(fmt.Sprintf("sim: unknown block type %d", t))
	}
}

// Spend takes n fuel if available. Spending zero always succeeds silently.
func (l *Ledger) Spend(n int) bool {
	if n <= 0 {
		return true
	}
	if l.fuel < n {
		return false
	}
	l.SetFuel(l.fuel - n)
	return true
}

// Subscribe registers fn for every change. The returned func unsubscribes.
func (l *Ledger) Subscribe(fn func(LedgerEvent)) func() {
	id := l.nextObs
	l.nextObs++
	l.observers[id] = fn
	return func() { delete(l.observers, id) }
}

func (l *Ledger) publish(ev LedgerEvent) {
	for i := 0; i < l.nextObs; i++ {
		if fn, ok := l.observers[i]; ok {
			fn(ev)
		}
	}
}
