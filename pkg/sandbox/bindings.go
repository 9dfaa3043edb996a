package sandbox

import (
	"github.com/arenalab/arena/pkg/game"
)

// bind exposes the action surface to the program as the rc global. Every
// binding charges its documented cost before touching the controller, so a
// budget suspension always lands on a call boundary and the call itself runs
// on resume.
func (p *Player) bind() error {
	if err := p.vm.Set(tickFn, p.tick); err != nil {
		return err
	}

	rc := p.vm.NewObject()
	p.rc = rc

	bindings := map[string]any{
		"yield": p.yield,

		"id": func() int {
			p.charge(0)
			return p.ctrl.ID()
		},
		"team": func() int {
			p.charge(0)
			return int(p.ctrl.Team())
		},
		"kind": func() string {
			p.charge(0)
			return string(p.ctrl.Kind())
		},
		"location": func() game.Location {
			p.charge(0)
			return p.ctrl.Location()
		},
		"roundNum": func() int {
			p.charge(0)
			return p.ctrl.RoundNum()
		},

		"senseNearbyRobots": func() []game.RobotInfo {
			p.charge(game.CostSenseRobots)
			return p.ctrl.SenseNearbyRobots()
		},
		"senseRubble": func(x, y int) int {
			p.charge(game.CostSenseTile)
			return p.ctrl.SenseRubble(game.Location{X: x, Y: y})
		},
		"onTheMap": func(x, y int) bool {
			p.charge(game.CostSenseTile)
			return p.ctrl.OnTheMap(game.Location{X: x, Y: y})
		},
		"isLocationOccupied": func(x, y int) bool {
			p.charge(game.CostSenseTile)
			return p.ctrl.IsLocationOccupied(game.Location{X: x, Y: y})
		},

		"isCoreReady": func() bool {
			p.charge(game.CostCheck)
			return p.ctrl.IsCoreReady()
		},
		"isWeaponReady": func() bool {
			p.charge(game.CostCheck)
			return p.ctrl.IsWeaponReady()
		},

		"canMove": func(dir string) (bool, error) {
			p.charge(game.CostCheck)
			d, err := game.ParseDirection(dir)
			if err != nil {
				return false, err
			}
			return p.ctrl.CanMove(d), nil
		},
		"move": func(dir string) error {
			p.charge(game.CostMove)
			d, err := game.ParseDirection(dir)
			if err != nil {
				return err
			}
			return p.ctrl.Move(d)
		},
		"canAttack": func(x, y int) bool {
			p.charge(game.CostCheck)
			return p.ctrl.CanAttack(game.Location{X: x, Y: y})
		},
		"attack": func(x, y int) error {
			p.charge(game.CostAttack)
			return p.ctrl.Attack(game.Location{X: x, Y: y})
		},
		"clearRubble": func(dir string) error {
			p.charge(game.CostClearRubble)
			d, err := game.ParseDirection(dir)
			if err != nil {
				return err
			}
			return p.ctrl.ClearRubble(d)
		},
		"canBuild": func(dir, kind string) (bool, error) {
			p.charge(game.CostCheck)
			d, err := game.ParseDirection(dir)
			if err != nil {
				return false, err
			}
			return p.ctrl.CanBuild(d, game.RobotKind(kind)), nil
		},
		"build": func(dir, kind string) error {
			p.charge(game.CostBuild)
			d, err := game.ParseDirection(dir)
			if err != nil {
				return err
			}
			return p.ctrl.Build(d, game.RobotKind(kind))
		},

		"broadcast": func(signal int) error {
			p.charge(game.CostBroadcast)
			return p.ctrl.Broadcast(signal)
		},
		"readSignals": func() []int {
			p.charge(game.CostReadSignals)
			return p.ctrl.ReadSignals()
		},
		"addMatchObservation": func(observation string) {
			p.charge(game.CostObservation)
			p.ctrl.AddMatchObservation(observation)
		},

		"resign": func() {
			p.charge(0)
			p.ctrl.Resign()
			panic(panicSelfTerminate{})
		},
		"disintegrate": func() {
			p.charge(0)
			p.ctrl.Disintegrate()
			panic(panicSelfTerminate{})
		},

		"debugIndicate": p.debugBinding("debugIndicate", func(message string) {
			p.ctrl.DebugIndicate(message)
		}),
	}

	for name, fn := range bindings {
		if err := rc.Set(name, fn); err != nil {
			return err
		}
	}
	return p.vm.Set("rc", rc)
}

// debugBinding wraps a developer-only action. The debug gate was read at
// instrumentation time; with it off, the call raises a RestrictedCallError
// that terminates the calling instance.
func (p *Player) debugBinding(name string, fn func(string)) func(string) {
	if !p.def.gates.DebugMethods {
		return func(string) {
			panic(panicRestricted{action: name})
		}
	}
	return func(arg string) {
		// Debug actions are free so enabling them never changes a
		// program's accounting.
		fn(arg)
	}
}
