package tui

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/chuteworks/internal/sim"
)

// eventFeed logs world events and keeps the latest one for the status line.
// The model holds it by pointer so the world's event hook survives model copies.
type eventFeed struct {
	logger *log.Logger
	last   string
}

func newEventFeed(logger *log.Logger) *eventFeed {
	if logger == nil {
		logger = log.Default()
	}
	return &eventFeed{logger: logger}
}

func (f *eventFeed) record(ev sim.Event) {
	f.logger.Debug("world event",
		"kind", ev.Kind,
		"figure", ev.Figure,
		"blocks", ev.Blocks,
		"type", ev.Type,
		"cost", ev.Cost,
	)
	if ev.Kind == sim.EventSpawn {
		return
	}
	f.last = describeEvent(ev)
}

func (f *eventFeed) ledger(ev sim.LedgerEvent) {
	f.logger.Debug("ledger", "resource", ev.Resource, "value", ev.Value, "max", ev.Max)
}

// note sets the status line without a world event.
func (f *eventFeed) note(format string, args ...any) {
	f.last = fmt.Sprintf(format, args...)
}

func (f *eventFeed) status() string {
	return f.last
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

func describeEvent(ev sim.Event) string {
	switch ev.Kind {
	case sim.EventDeliver:
		return fmt.Sprintf("delivered %s to the %s chute", plural(ev.Blocks, "block"), ev.Type)
	case sim.EventCut:
		return fmt.Sprintf("cut for %d fuel", ev.Cost)
	case sim.EventRotate:
		return fmt.Sprintf("rotated for %d fuel", ev.Cost)
	case sim.EventTransmute:
		return fmt.Sprintf("transmuted for %d fuel", ev.Cost)
	case sim.EventUpgrade:
		return "upgrade: " + ev.Upgrade.Title()
	case sim.EventOutOfFuel:
		return fmt.Sprintf("not enough fuel (need %d)", ev.Cost)
	case sim.EventSpawn:
		return "new figure"
	default:
		return ev.Kind.String()
	}
}
