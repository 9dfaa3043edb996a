package root

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arenalab/arena/pkg/config"
	"github.com/arenalab/arena/pkg/control"
	"github.com/arenalab/arena/pkg/game"
	"github.com/arenalab/arena/pkg/sandbox"
)

// text colors
var (
	red    = color.New(color.FgRed).SprintfFunc()
	blue   = color.New(color.FgBlue).SprintfFunc()
	gray   = color.New(color.FgHiBlack).SprintfFunc()
	bold   = color.New(color.Bold).SprintfFunc()
	yellow = color.New(color.FgYellow).SprintfFunc()
)

func NewRunCmd() *cobra.Command {
	var configPath string
	var debugMethods, testingTerminate bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a match between sandboxed agent programs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("debug-methods") {
				cfg.DebugMethods = debugMethods
			}
			if cmd.Flags().Changed("testing-terminate") {
				cfg.TestingTerminate = testingTerminate
			}
			return runMatch(cfg)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "match.yaml", "Match configuration file")
	cmd.Flags().BoolVar(&debugMethods, "debug-methods", false, "Enable developer-only actions for agent programs")
	cmd.Flags().BoolVar(&testingTerminate, "testing-terminate", false, "Force agent programs to terminate at their first yield point")

	return cmd
}

func runMatch(cfg *config.Config) error {
	gates := sandbox.Gates{
		DebugMethods:     cfg.DebugMethods,
		TestingTerminate: cfg.TestingTerminate,
	}
	cache := sandbox.NewCache(sandbox.DirSource{Root: cfg.ProgramRoot}, gates)

	programs := make(map[game.Team]string)
	if identity, ok := cfg.Programs["a"]; ok {
		programs[game.TeamA] = identity
	}
	if identity, ok := cfg.Programs["b"]; ok {
		programs[game.TeamB] = identity
	}
	if len(programs) == 0 {
		return fmt.Errorf("no programs configured")
	}

	world := newDemoWorld(cfg.Seed)
	provider := control.NewSandboxProvider(cache, programs, cfg.BytecodeLimit, cfg.OverageThreshold)
	provider.MatchStarted(world)
	defer provider.MatchEnded()

	var robots []*demoRobot
	corners := map[game.Team]game.Location{
		game.TeamA: {X: 2, Y: 2},
		game.TeamB: {X: demoMapSize - 3, Y: demoMapSize - 3},
	}
	for team, base := range corners {
		if _, ok := programs[team]; !ok {
			continue
		}
		for i := 0; i < 2; i++ {
			r := world.spawn(team, game.KindAgent, game.Location{X: base.X + i, Y: base.Y})
			provider.RobotSpawned(r)
			robots = append(robots, r)
		}
	}
	sort.Slice(robots, func(i, j int) bool { return robots[i].id < robots[j].id })

	usage := make(map[int]int)
	lastRound := make(map[int]int)

	for round := 1; round <= cfg.Rounds; round++ {
		world.round = round
		provider.RoundStarted()
		live := 0
		for _, r := range robots {
			if !r.alive {
				// Killed by another robot before its turn this round.
				provider.RobotKilled(r)
				continue
			}
			if provider.Terminated(r) {
				continue
			}
			provider.RunRobot(r)
			usage[r.id] = provider.BytecodesUsed(r)
			lastRound[r.id] = round
			if provider.Terminated(r) || !r.alive {
				r.alive = false
				provider.RobotKilled(r)
				continue
			}
			live++
		}
		provider.RoundEnded()
		if live == 0 {
			slog.Info("all robots terminated", "round", round)
			break
		}
	}

	fmt.Println(bold("robot  team  program          last round  bytecodes"))
	for _, r := range robots {
		teamColor := blue
		if r.team == game.TeamB {
			teamColor = red
		}
		state := ""
		if provider.Terminated(r) {
			state = gray("  (terminated)")
		} else {
			state = yellow("  (live)")
		}
		fmt.Printf("%5d  %s  %-15s  %10d  %9d%s\n",
			r.id, teamColor("%4s", r.team), programs[r.team], lastRound[r.id], usage[r.id], state)
	}
	return nil
}
