package game

// Controller is the action surface a single robot acts through. The
// simulation owns the implementation; the engine consumes it both from
// sandboxed agent programs (via metered bindings) and from plain scripted
// controllers (directly).
//
// Action methods that can fail for game reasons (blocked tile, cooldown,
// range) return an error the caller may inspect and recover from. They never
// panic.
type Controller interface {
	// Identity and self-sensing.
	ID() int
	Team() Team
	Kind() RobotKind
	Location() Location
	RoundNum() int

	// World sensing.
	SenseNearbyRobots() []RobotInfo
	SenseRubble(loc Location) int
	OnTheMap(loc Location) bool
	IsLocationOccupied(loc Location) bool

	// Readiness.
	IsCoreReady() bool
	IsWeaponReady() bool

	// Movement and combat.
	CanMove(d Direction) bool
	Move(d Direction) error
	CanAttack(loc Location) bool
	Attack(loc Location) error
	ClearRubble(d Direction) error
	CanBuild(d Direction, kind RobotKind) bool
	Build(d Direction, kind RobotKind) error

	// Signaling.
	Broadcast(signal int) error
	ReadSignals() []int
	AddMatchObservation(observation string)

	// Self-termination.
	Resign()
	Disintegrate()

	// Developer-only surface, available to agent programs only when debug
	// methods are enabled for the match.
	DebugIndicate(message string)
}
