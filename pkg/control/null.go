package control

import "github.com/arenalab/arena/pkg/game"

// NullProvider controls robots that have no behavior at all. Useful for
// inert map features and as a stand-in in tests.
type NullProvider struct{}

func (NullProvider) MatchStarted(w game.World)      {}
func (NullProvider) MatchEnded()                    {}
func (NullProvider) RoundStarted()                  {}
func (NullProvider) RoundEnded()                    {}
func (NullProvider) RobotSpawned(r game.Robot)      {}
func (NullProvider) RobotKilled(r game.Robot)       {}
func (NullProvider) RunRobot(r game.Robot)          {}
func (NullProvider) BytecodesUsed(r game.Robot) int { return 0 }
func (NullProvider) Terminated(r game.Robot) bool   { return false }
