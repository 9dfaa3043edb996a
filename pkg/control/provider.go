// Package control defines the uniform per-round contract between the round
// driver and any entity's behavior implementation, and the providers that
// satisfy it: sandboxed player programs, plain scripted logic, and nothing
// at all. The driver dispatches through the interface and never learns which
// execution strategy backs an entity.
package control

import "github.com/arenalab/arena/pkg/game"

// Provider is driven in a fixed order for the life of a match:
//
//	MatchStarted -> {RoundStarted -> RunRobot* -> RoundEnded}* -> MatchEnded
//
// BytecodesUsed and Terminated are queried after RunRobot to decide whether
// the entity is still live and how much budget it consumed this round.
type Provider interface {
	// MatchStarted begins a match. Calling it again without an intervening
	// MatchEnded is a driver bug and panics.
	MatchStarted(w game.World)
	// MatchEnded tears down the match and releases all per-entity state.
	MatchEnded()

	RoundStarted()
	RoundEnded()

	// RobotSpawned allocates any per-entity bookkeeping for a new robot.
	RobotSpawned(r game.Robot)
	// RobotKilled releases it.
	RobotKilled(r game.Robot)

	// RunRobot executes one round of the robot's behavior.
	RunRobot(r game.Robot)

	BytecodesUsed(r game.Robot) int
	Terminated(r game.Robot) bool
}
