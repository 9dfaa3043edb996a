package control

import (
	"slices"

	"github.com/arenalab/arena/pkg/game"
)

// Shared fakes for the provider tests.

type fakeWorld struct {
	seed    int64
	round   int
	nearest *game.RobotInfo
	spawns  []game.SpawnCount
}

func (w *fakeWorld) RoundNum() int { return w.round }
func (w *fakeWorld) Seed() int64   { return w.seed }

func (w *fakeWorld) NearestEnemy(from game.Location, team game.Team) *game.RobotInfo {
	return w.nearest
}

func (w *fakeWorld) SpawnCounts(round int) []game.SpawnCount { return w.spawns }

type fakeController struct {
	id          int
	team        game.Team
	kind        game.RobotKind
	loc         game.Location
	calls       []string
	canMove     bool
	canAttack   bool
	canBuild    bool
	weaponReady bool
	coreReady   bool
	rubble      int
}

type fakeRobot struct {
	ctrl *fakeController
}

func (r *fakeRobot) ID() int                     { return r.ctrl.id }
func (r *fakeRobot) Team() game.Team             { return r.ctrl.team }
func (r *fakeRobot) Kind() game.RobotKind        { return r.ctrl.kind }
func (r *fakeRobot) Controller() game.Controller { return r.ctrl }

func (c *fakeController) record(name string) { c.calls = append(c.calls, name) }

func (c *fakeController) called(name string) bool { return slices.Contains(c.calls, name) }

func (c *fakeController) ID() int                 { return c.id }
func (c *fakeController) Team() game.Team         { return c.team }
func (c *fakeController) Kind() game.RobotKind    { return c.kind }
func (c *fakeController) Location() game.Location { return c.loc }
func (c *fakeController) RoundNum() int           { return 0 }

func (c *fakeController) SenseNearbyRobots() []game.RobotInfo   { return nil }
func (c *fakeController) SenseRubble(game.Location) int         { return c.rubble }
func (c *fakeController) OnTheMap(game.Location) bool           { return true }
func (c *fakeController) IsLocationOccupied(game.Location) bool { return false }
func (c *fakeController) IsCoreReady() bool                     { return c.coreReady }
func (c *fakeController) IsWeaponReady() bool                   { return c.weaponReady }
func (c *fakeController) CanMove(game.Direction) bool           { return c.canMove }

func (c *fakeController) Move(game.Direction) error {
	c.record("move")
	return nil
}

func (c *fakeController) CanAttack(game.Location) bool { return c.canAttack }

func (c *fakeController) Attack(game.Location) error {
	c.record("attack")
	return nil
}

func (c *fakeController) ClearRubble(game.Direction) error {
	c.record("clearRubble")
	return nil
}

func (c *fakeController) CanBuild(game.Direction, game.RobotKind) bool { return c.canBuild }

func (c *fakeController) Build(game.Direction, game.RobotKind) error {
	c.record("build")
	return nil
}

func (c *fakeController) Broadcast(int) error {
	c.record("broadcast")
	return nil
}

func (c *fakeController) ReadSignals() []int         { return nil }
func (c *fakeController) AddMatchObservation(string) {}
func (c *fakeController) Resign()                    { c.record("resign") }
func (c *fakeController) Disintegrate()              { c.record("disintegrate") }
func (c *fakeController) DebugIndicate(string)       {}
