package core

// EventKind classifies a structural change record.
type EventKind uint8

const (
	EventRemove  EventKind = iota // block left the grid (match, blast, or obstacle destroyed)
	EventDamage                   // obstacle took a hit and stays
	EventFall                     // block moved down inside the grid
	EventSpawn                    // new cube entered a column from above
	EventPromote                  // cube joined a bomb-sized group
	EventDemote                   // cube left a bomb-sized group
	EventBomb                     // bomb created in the tapped cell
	EventShake                    // tap on a lone cube, nothing happened
	EventGoal                     // goal counter update
)

// String returns the string representation of an event kind.
func (k EventKind) String() string {
	switch k {
	case EventRemove:
		return "remove"
	case EventDamage:
		return "damage"
	case EventFall:
		return "fall"
	case EventSpawn:
		return "spawn"
	case EventPromote:
		return "promote"
	case EventDemote:
		return "demote"
	case EventBomb:
		return "bomb"
	case EventShake:
		return "shake"
	case EventGoal:
		return "goal"
	default:
		return "unknown"
	}
}

// Phase groups events that an animator plays back together.
type Phase uint8

const (
	PhaseClear Phase = iota
	PhaseFall
	PhaseRefill
	PhaseSettle
)

// Event is one structural change record.
// Which fields are meaningful depends on Kind:
//
//	remove:  Block, Kind, From
//	damage:  Block, From, HitsLeft
//	fall:    Block, From, To, Distance
//	spawn:   Block, Color, Column, To, Distance, Step
//	promote, demote: Block, From
//	bomb:    Block, To
//	shake:   From
//	goal:    Obstacle, Remaining
type Event struct {
	Kind      EventKind
	Phase     Phase
	Block     BlockID
	BlockKind Kind
	Color     Color
	Obstacle  ObstacleKind
	From      Coord
	To        Coord
	Distance  int
	Column    int
	Step      int // simultaneous spawn row, 0 first
	HitsLeft  int
	Remaining int
}

// Outcome summarizes what a tap did.
type Outcome uint8

const (
	OutcomeIgnored  Outcome = iota // not idle, finished, or not a tappable cell
	OutcomeShake                   // lone cube, no move consumed
	OutcomeMatch                   // cube group removed
	OutcomeDetonate                // bomb chain resolved
)

// String returns the string representation of an outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeIgnored:
		return "ignored"
	case OutcomeShake:
		return "shake"
	case OutcomeMatch:
		return "match"
	case OutcomeDetonate:
		return "detonate"
	default:
		return "unknown"
	}
}

// Turn is the ordered record of one tap.
type Turn struct {
	Outcome   Outcome
	Tapped    Coord
	Events    []Event
	MovesLeft int
	State     TurnState
	Won       bool
	Lost      bool
}

// Consumed reports whether the tap used a move.
func (t Turn) Consumed() bool {
	return t.Outcome == OutcomeMatch || t.Outcome == OutcomeDetonate
}

// Filter returns the events of the given kind, in order.
func (t Turn) Filter(kind EventKind) []Event {
	var out []Event
	for _, e := range t.Events {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

// SpawnGroups returns spawn events grouped by simultaneous step.
func (t Turn) SpawnGroups() [][]Event {
	var groups [][]Event
	for _, e := range t.Events {
		if e.Kind != EventSpawn {
			continue
		}
		for len(groups) <= e.Step {
			groups = append(groups, nil)
		}
		groups[e.Step] = append(groups[e.Step], e)
	}
	return groups
}

// Removed returns the number of removed blocks of the given kind.
func (t Turn) Removed(kind Kind) int {
	n := 0
	for _, e := range t.Events {
		if e.Kind == EventRemove && e.BlockKind == kind {
			n++
		}
	}
	return n
}
