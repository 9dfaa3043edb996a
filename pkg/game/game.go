// Package game defines the contracts between the engine and the simulation:
// the action surface agent programs act through, the minimal world view
// scripted controllers consume, and the deterministic cost table the
// instrumentation layer charges against.
package game

// Team identifies the owning side of a robot.
type Team int

const (
	TeamNeutral Team = iota
	TeamA
	TeamB
	TeamMarauder
)

func (t Team) String() string {
	switch t {
	case TeamA:
		return "A"
	case TeamB:
		return "B"
	case TeamMarauder:
		return "marauder"
	default:
		return "neutral"
	}
}

// Opponent returns the opposing player team. Non-player teams oppose everyone.
func (t Team) Opponent() Team {
	switch t {
	case TeamA:
		return TeamB
	case TeamB:
		return TeamA
	default:
		return TeamNeutral
	}
}

// RobotKind classifies a robot's role on the map.
type RobotKind string

const (
	KindAgent    RobotKind = "agent"
	KindSpawner  RobotKind = "spawner"
	KindMarauder RobotKind = "marauder"
)

// RobotInfo is an immutable snapshot of a sensed robot.
type RobotInfo struct {
	ID       int
	Team     Team
	Kind     RobotKind
	Location Location
}

// Robot is the engine's handle on a live entity. The simulation owns the
// implementation; control providers only read identity and drive the
// controller.
type Robot interface {
	ID() int
	Team() Team
	Kind() RobotKind
	Controller() Controller
}

// SpawnCount is one entry of a round's spawn schedule delta.
type SpawnCount struct {
	Kind  RobotKind
	Count int
}

// World is the read-only view of the simulation given to control providers
// at match start. The full world model lives outside this module.
type World interface {
	RoundNum() int
	Seed() int64
	NearestEnemy(from Location, team Team) *RobotInfo
	SpawnCounts(round int) []SpawnCount
}
