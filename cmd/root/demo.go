package root

import (
	"fmt"
	"log/slog"

	"github.com/arenalab/arena/pkg/game"
)

// The demo world is a tiny stand-in for the real simulation, just enough
// surface for `arena run` to drive sandboxed programs end to end. It is not
// a component of the engine.

const demoMapSize = 32

type demoWorld struct {
	seed    int64
	round   int
	nextID  int
	robots  map[int]*demoRobot
	rubble  map[game.Location]int
	signals map[game.Team][]int
}

func newDemoWorld(seed int64) *demoWorld {
	return &demoWorld{
		seed:    seed,
		robots:  make(map[int]*demoRobot),
		rubble:  make(map[game.Location]int),
		signals: make(map[game.Team][]int),
	}
}

func (w *demoWorld) RoundNum() int { return w.round }
func (w *demoWorld) Seed() int64   { return w.seed }

func (w *demoWorld) NearestEnemy(from game.Location, team game.Team) *game.RobotInfo {
	var best *demoRobot
	bestDist := 0
	for _, r := range w.robots {
		if !r.alive || r.team == team || r.team == game.TeamNeutral {
			continue
		}
		d := from.DistanceSquaredTo(r.loc)
		if best == nil || d < bestDist {
			best, bestDist = r, d
		}
	}
	if best == nil {
		return nil
	}
	info := best.info()
	return &info
}

func (w *demoWorld) SpawnCounts(round int) []game.SpawnCount { return nil }

func (w *demoWorld) spawn(team game.Team, kind game.RobotKind, loc game.Location) *demoRobot {
	w.nextID++
	r := &demoRobot{world: w, id: w.nextID, team: team, kind: kind, loc: loc, hp: 3, alive: true}
	w.robots[r.id] = r
	return r
}

func (w *demoWorld) robotAt(loc game.Location) *demoRobot {
	for _, r := range w.robots {
		if r.alive && r.loc == loc {
			return r
		}
	}
	return nil
}

type demoRobot struct {
	world *demoWorld
	id    int
	team  game.Team
	kind  game.RobotKind
	loc   game.Location
	hp    int
	alive bool
}

func (r *demoRobot) ID() int                     { return r.id }
func (r *demoRobot) Team() game.Team             { return r.team }
func (r *demoRobot) Kind() game.RobotKind        { return r.kind }
func (r *demoRobot) Controller() game.Controller { return r }

func (r *demoRobot) info() game.RobotInfo {
	return game.RobotInfo{ID: r.id, Team: r.team, Kind: r.kind, Location: r.loc}
}

// game.Controller implementation.

func (r *demoRobot) Location() game.Location { return r.loc }
func (r *demoRobot) RoundNum() int           { return r.world.round }

func (r *demoRobot) SenseNearbyRobots() []game.RobotInfo {
	var infos []game.RobotInfo
	for _, other := range r.world.robots {
		if other.alive && other.id != r.id {
			infos = append(infos, other.info())
		}
	}
	return infos
}

func (r *demoRobot) SenseRubble(loc game.Location) int { return r.world.rubble[loc] }

func (r *demoRobot) OnTheMap(loc game.Location) bool {
	return loc.X >= 0 && loc.Y >= 0 && loc.X < demoMapSize && loc.Y < demoMapSize
}

func (r *demoRobot) IsLocationOccupied(loc game.Location) bool {
	return r.world.robotAt(loc) != nil
}

func (r *demoRobot) IsCoreReady() bool   { return true }
func (r *demoRobot) IsWeaponReady() bool { return true }

func (r *demoRobot) CanMove(d game.Direction) bool {
	target := r.loc.Add(d)
	return d != game.None && r.OnTheMap(target) && !r.IsLocationOccupied(target)
}

func (r *demoRobot) Move(d game.Direction) error {
	if !r.CanMove(d) {
		return fmt.Errorf("cannot move %s from %s", d, r.loc)
	}
	r.loc = r.loc.Add(d)
	return nil
}

func (r *demoRobot) CanAttack(loc game.Location) bool {
	return r.loc.DistanceSquaredTo(loc) <= 13
}

func (r *demoRobot) Attack(loc game.Location) error {
	if !r.CanAttack(loc) {
		return fmt.Errorf("location %s out of attack range", loc)
	}
	if target := r.world.robotAt(loc); target != nil {
		target.hp--
		if target.hp <= 0 {
			target.alive = false
		}
	}
	return nil
}

func (r *demoRobot) ClearRubble(d game.Direction) error {
	target := r.loc.Add(d)
	if r.world.rubble[target] == 0 {
		return fmt.Errorf("no rubble at %s", target)
	}
	r.world.rubble[target] /= 2
	return nil
}

func (r *demoRobot) CanBuild(d game.Direction, kind game.RobotKind) bool {
	target := r.loc.Add(d)
	return r.OnTheMap(target) && !r.IsLocationOccupied(target)
}

func (r *demoRobot) Build(d game.Direction, kind game.RobotKind) error {
	if !r.CanBuild(d, kind) {
		return fmt.Errorf("cannot build %s to the %s", kind, d)
	}
	r.world.spawn(r.team, kind, r.loc.Add(d))
	return nil
}

func (r *demoRobot) Broadcast(signal int) error {
	r.world.signals[r.team] = append(r.world.signals[r.team], signal)
	return nil
}

func (r *demoRobot) ReadSignals() []int {
	signals := r.world.signals[r.team]
	out := make([]int, len(signals))
	copy(out, signals)
	return out
}

func (r *demoRobot) AddMatchObservation(observation string) {
	slog.Info("match observation", "robot", r.id, "observation", observation)
}

func (r *demoRobot) Resign() {
	for _, other := range r.world.robots {
		if other.team == r.team {
			other.alive = false
		}
	}
}

func (r *demoRobot) Disintegrate() {
	r.alive = false
}

func (r *demoRobot) DebugIndicate(message string) {
	slog.Debug("indicator", "robot", r.id, "message", message)
}
