package control

import (
	"log/slog"
	"math/rand"

	"github.com/arenalab/arena/pkg/game"
)

// MarauderProvider drives the neutral marauder team with plain scripted
// logic: no sandbox, no metering, direct calls into the action surface.
// Spawner robots drain a queue fed by the world's spawn schedule; everything
// else hunts the nearest player-controlled robot. It exists to show the
// Provider contract is polymorphic over execution strategy; the heuristics
// themselves are not part of any contract.
type MarauderProvider struct {
	world       game.World
	random      *rand.Rand
	spawnQueues map[int]map[game.RobotKind]int
}

// spawnKinds is the order spawner queues are drained in.
var spawnKinds = []game.RobotKind{game.KindMarauder}

func NewMarauderProvider() *MarauderProvider {
	return &MarauderProvider{
		spawnQueues: make(map[int]map[game.RobotKind]int),
	}
}

func (p *MarauderProvider) MatchStarted(w game.World) {
	if p.world != nil {
		panic("control: MatchStarted called twice without MatchEnded")
	}
	p.world = w
	p.random = rand.New(rand.NewSource(w.Seed()))
}

func (p *MarauderProvider) MatchEnded() {
	if p.world == nil {
		panic("control: MatchEnded without MatchStarted")
	}
	p.world = nil
	p.random = nil
	p.spawnQueues = make(map[int]map[game.RobotKind]int)
}

func (p *MarauderProvider) RoundStarted() {}

func (p *MarauderProvider) RoundEnded() {}

func (p *MarauderProvider) RobotSpawned(r game.Robot) {
	if r.Kind() == game.KindSpawner {
		queue := make(map[game.RobotKind]int)
		for _, kind := range spawnKinds {
			queue[kind] = 0
		}
		p.spawnQueues[r.ID()] = queue
	}
}

func (p *MarauderProvider) RobotKilled(r game.Robot) {
	delete(p.spawnQueues, r.ID())
}

func (p *MarauderProvider) RunRobot(r game.Robot) {
	switch r.Kind() {
	case game.KindSpawner:
		p.runSpawner(r)
	case game.KindMarauder:
		p.runMarauder(r)
	default:
		// Somehow controlling a robot that isn't ours. Kill it.
		r.Controller().Disintegrate()
	}
}

// runSpawner applies this round's schedule deltas to the spawner's queue,
// then walks the surrounding tiles from a random starting direction so
// spawns don't pile up to the north.
func (p *MarauderProvider) runSpawner(r game.Robot) {
	rc := r.Controller()
	queue := p.spawnQueues[r.ID()]

	for _, count := range p.world.SpawnCounts(p.world.RoundNum()) {
		queue[count.Kind] += count.Count
	}

	start := p.random.Intn(len(game.Directions))
	for offset := 0; offset < len(game.Directions); offset++ {
		dir := game.Directions[(start+offset)%len(game.Directions)]

		var next game.RobotKind
		for _, kind := range spawnKinds {
			if queue[kind] != 0 {
				next = kind
			}
		}
		if next == "" {
			break
		}

		if rc.CanBuild(dir, next) {
			if err := rc.Build(dir, next); err != nil {
				slog.Error("spawner build failed", "robot", r.ID(), "error", err)
				continue
			}
			queue[next]--
		}
	}
}

// runMarauder attacks the nearest enemy if in range, otherwise closes in,
// trying 45-degree rotations around obstructions and clearing rubble as a
// last resort. At most one action per round.
func (p *MarauderProvider) runMarauder(r game.Robot) {
	rc := r.Controller()

	closest := p.world.NearestEnemy(rc.Location(), r.Team())

	if rc.IsWeaponReady() && closest != nil && rc.CanAttack(closest.Location) {
		if err := rc.Attack(closest.Location); err != nil {
			slog.Error("marauder attack failed", "robot", r.ID(), "error", err)
		}
		return
	}
	if !rc.IsCoreReady() {
		return
	}

	preferred := game.Directions[p.random.Intn(len(game.Directions))]
	if closest != nil {
		preferred = rc.Location().DirectionTo(closest.Location)
	}
	if rc.CanMove(preferred) {
		if err := rc.Move(preferred); err != nil {
			slog.Error("marauder move failed", "robot", r.ID(), "error", err)
		}
		return
	}

	// Obstructed; try either 45-degree rotation, then the other.
	left := p.random.Intn(2) == 0
	next := preferred.RotateRight()
	if left {
		next = preferred.RotateLeft()
	}
	final := preferred.RotateLeft()
	if left {
		final = preferred.RotateRight()
	}

	for _, dir := range []game.Direction{next, final} {
		if rc.CanMove(dir) {
			if err := rc.Move(dir); err != nil {
				slog.Error("marauder move failed", "robot", r.ID(), "error", err)
			}
			return
		}
	}

	// Nowhere to go; clear the most obstructive rubble in the way.
	for _, dir := range []game.Direction{preferred, next, final} {
		target := rc.Location().Add(dir)
		if rc.OnTheMap(target) && !rc.IsLocationOccupied(target) && rc.SenseRubble(target) >= rubbleObstructionThreshold {
			if err := rc.ClearRubble(dir); err != nil {
				slog.Error("marauder clear rubble failed", "robot", r.ID(), "error", err)
			}
			return
		}
	}
}

// rubbleObstructionThreshold is the rubble level at which a tile is worth
// clearing instead of walking around.
const rubbleObstructionThreshold = 50

// BytecodesUsed is always zero: marauders don't think.
func (p *MarauderProvider) BytecodesUsed(r game.Robot) int {
	return 0
}

// Terminated is always false: scripted logic never terminates on its own.
func (p *MarauderProvider) Terminated(r game.Robot) bool {
	return false
}
