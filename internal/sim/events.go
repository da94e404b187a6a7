package sim

// EventKind classifies a world event.
type EventKind uint8

const (
	EventSpawn EventKind = iota
	EventDeliver
	EventCut
	EventRotate
	EventTransmute
	EventUpgrade
	EventOutOfFuel
)

// String returns the event kind name.
func (k EventKind) String() string {
	switch k {
	case EventSpawn:
		return "spawn"
	case EventDeliver:
		return "deliver"
	case EventCut:
		return "cut"
	case EventRotate:
		return "rotate"
	case EventTransmute:
		return "transmute"
	case EventUpgrade:
		return "upgrade"
	case EventOutOfFuel:
		return "out_of_fuel"
	default:
		return "unknown"
	}
}

// Event reports something the world did on behalf of the player.
type Event struct {
	Kind    EventKind
	Figure  EntityID
	Blocks  int
	Type    BlockType
	Cost    int
	Upgrade Upgrade
}

// Events receives world events. A nil Events is valid and drops them.
type Events func(Event)

func (fn Events) emit(ev Event) {
	if fn != nil {
		fn(ev)
	}
}
