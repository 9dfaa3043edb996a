package control

import (
	"log/slog"

	"github.com/arenalab/arena/pkg/game"
	"github.com/arenalab/arena/pkg/sandbox"
)

// SandboxProvider runs robots as sandboxed agent programs. Each spawned
// robot gets a fresh Player instantiated from the shared definition cache;
// a robot whose program fails to load is reported terminated and never run.
type SandboxProvider struct {
	cache     *sandbox.Cache
	programs  map[game.Team]string
	limit     int
	threshold int

	world   game.World
	players map[int]*sandbox.Player
}

// NewSandboxProvider creates a provider that resolves each robot's program
// identity from its team. The limit fixes every instance's per-round budget;
// threshold of zero means sandbox.DefaultOverageThreshold.
func NewSandboxProvider(cache *sandbox.Cache, programs map[game.Team]string, limit, threshold int) *SandboxProvider {
	return &SandboxProvider{
		cache:     cache,
		programs:  programs,
		limit:     limit,
		threshold: threshold,
		players:   make(map[int]*sandbox.Player),
	}
}

func (p *SandboxProvider) MatchStarted(w game.World) {
	if p.world != nil {
		panic("control: MatchStarted called twice without MatchEnded")
	}
	p.world = w
}

func (p *SandboxProvider) MatchEnded() {
	if p.world == nil {
		panic("control: MatchEnded without MatchStarted")
	}
	for _, pl := range p.players {
		if pl != nil {
			pl.Terminate()
		}
	}
	p.players = make(map[int]*sandbox.Player)
	p.world = nil
}

func (p *SandboxProvider) RoundStarted() {}

func (p *SandboxProvider) RoundEnded() {}

func (p *SandboxProvider) RobotSpawned(r game.Robot) {
	identity, ok := p.programs[r.Team()]
	if !ok {
		slog.Warn("no program for team, robot will be inert",
			"team", r.Team(), "robot", r.ID())
		p.players[r.ID()] = nil
		return
	}

	seed := p.world.Seed() ^ int64(r.ID())
	pl, err := sandbox.NewPlayer(identity, r.Controller(), seed, p.cache)
	if err != nil {
		// Fatal to this robot's creation only; it is treated as never
		// spawned.
		slog.Error("agent program failed to load",
			"program", identity, "robot", r.ID(), "error", err)
		p.players[r.ID()] = nil
		return
	}
	pl.SetBytecodeLimit(p.limit)
	if p.threshold > 0 {
		pl.SetOverageThreshold(p.threshold)
	}
	p.players[r.ID()] = pl
}

func (p *SandboxProvider) RobotKilled(r game.Robot) {
	if pl := p.players[r.ID()]; pl != nil {
		pl.Terminate()
	}
	delete(p.players, r.ID())
}

func (p *SandboxProvider) RunRobot(r game.Robot) {
	if pl := p.players[r.ID()]; pl != nil {
		pl.Step()
	}
}

func (p *SandboxProvider) BytecodesUsed(r game.Robot) int {
	if pl := p.players[r.ID()]; pl != nil {
		return pl.BytecodesUsed()
	}
	return 0
}

func (p *SandboxProvider) Terminated(r game.Robot) bool {
	pl, ok := p.players[r.ID()]
	if !ok || pl == nil {
		return true
	}
	return pl.Terminated()
}
