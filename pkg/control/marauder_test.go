package control

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arenalab/arena/pkg/game"
)

func TestMarauderAttacksTargetInRange(t *testing.T) {
	provider := NewMarauderProvider()
	target := &game.RobotInfo{ID: 99, Team: game.TeamA, Location: game.Location{X: 1, Y: 1}}
	provider.MatchStarted(&fakeWorld{seed: 7, nearest: target})
	defer provider.MatchEnded()

	robot := &fakeRobot{ctrl: &fakeController{
		id:          1,
		team:        game.TeamMarauder,
		kind:        game.KindMarauder,
		weaponReady: true,
		canAttack:   true,
	}}
	provider.RobotSpawned(robot)
	provider.RunRobot(robot)

	assert.True(t, robot.ctrl.called("attack"))
	assert.False(t, robot.ctrl.called("move"))
}

func TestMarauderPursuesDistantTarget(t *testing.T) {
	provider := NewMarauderProvider()
	target := &game.RobotInfo{ID: 99, Team: game.TeamA, Location: game.Location{X: 10, Y: 10}}
	provider.MatchStarted(&fakeWorld{seed: 7, nearest: target})
	defer provider.MatchEnded()

	robot := &fakeRobot{ctrl: &fakeController{
		id:          1,
		team:        game.TeamMarauder,
		kind:        game.KindMarauder,
		weaponReady: true,
		coreReady:   true,
		canMove:     true,
	}}
	provider.RobotSpawned(robot)
	provider.RunRobot(robot)

	assert.True(t, robot.ctrl.called("move"))
	assert.False(t, robot.ctrl.called("attack"))
}

func TestMarauderClearsObstructingRubble(t *testing.T) {
	provider := NewMarauderProvider()
	target := &game.RobotInfo{ID: 99, Team: game.TeamA, Location: game.Location{X: 10, Y: 10}}
	provider.MatchStarted(&fakeWorld{seed: 7, nearest: target})
	defer provider.MatchEnded()

	// Boxed in: cannot move anywhere, heavy rubble all around.
	robot := &fakeRobot{ctrl: &fakeController{
		id:        1,
		team:      game.TeamMarauder,
		kind:      game.KindMarauder,
		coreReady: true,
		rubble:    100,
	}}
	provider.RobotSpawned(robot)
	provider.RunRobot(robot)

	assert.True(t, robot.ctrl.called("clearRubble"))
}

func TestMarauderIdlesWhenCoreNotReady(t *testing.T) {
	provider := NewMarauderProvider()
	provider.MatchStarted(&fakeWorld{seed: 7})
	defer provider.MatchEnded()

	robot := &fakeRobot{ctrl: &fakeController{id: 1, kind: game.KindMarauder}}
	provider.RobotSpawned(robot)
	provider.RunRobot(robot)

	assert.Empty(t, robot.ctrl.calls)
}

func TestSpawnerDrainsScheduleQueue(t *testing.T) {
	provider := NewMarauderProvider()
	world := &fakeWorld{
		seed:   7,
		round:  1,
		spawns: []game.SpawnCount{{Kind: game.KindMarauder, Count: 2}},
	}
	provider.MatchStarted(world)
	defer provider.MatchEnded()

	robot := &fakeRobot{ctrl: &fakeController{
		id:       1,
		team:     game.TeamMarauder,
		kind:     game.KindSpawner,
		canBuild: true,
	}}
	provider.RobotSpawned(robot)
	provider.RunRobot(robot)

	builds := 0
	for _, call := range robot.ctrl.calls {
		if call == "build" {
			builds++
		}
	}
	assert.Equal(t, 2, builds)

	// The queue is drained; nothing left to spawn next round.
	world.spawns = nil
	robot.ctrl.calls = nil
	provider.RunRobot(robot)
	assert.Empty(t, robot.ctrl.calls)
}

func TestMarauderReportsNoUsageAndNeverTerminates(t *testing.T) {
	provider := NewMarauderProvider()
	provider.MatchStarted(&fakeWorld{})
	defer provider.MatchEnded()

	robot := &fakeRobot{ctrl: &fakeController{id: 1, kind: game.KindMarauder}}
	provider.RobotSpawned(robot)
	provider.RunRobot(robot)

	assert.Zero(t, provider.BytecodesUsed(robot))
	assert.False(t, provider.Terminated(robot))
}

func TestMarauderDisintegratesForeignRobots(t *testing.T) {
	provider := NewMarauderProvider()
	provider.MatchStarted(&fakeWorld{})
	defer provider.MatchEnded()

	robot := &fakeRobot{ctrl: &fakeController{id: 1, team: game.TeamA, kind: game.KindAgent}}
	provider.RobotSpawned(robot)
	provider.RunRobot(robot)

	assert.True(t, robot.ctrl.called("disintegrate"))
}
