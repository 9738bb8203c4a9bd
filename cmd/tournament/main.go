package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/aweeraman/AIND-Isolation/internal/game"
	. "github.com/aweeraman/AIND-Isolation/internal/helpers"
	"github.com/aweeraman/AIND-Isolation/internal/runner"
	"github.com/aweeraman/AIND-Isolation/internal/search"
	"github.com/aweeraman/AIND-Isolation/internal/tournament"
	"github.com/pkg/profile"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:           "tournament",
		Short:         "Plays Isolation agents against each other",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	runCmd = &cobra.Command{
		Use:   "run",
		Short: "Plays a round robin between every configured agent",
		RunE:  runTournament,
	}
	playCmd = &cobra.Command{
		Use:   "play",
		Short: "Plays one game between two configured agents and prints every move",
		RunE:  runPlay,
	}
	agentsCmd = &cobra.Command{
		Use:   "agents",
		Short: "Lists the configured agents and the available evaluators",
		RunE:  runAgents,
	}

	configPath string
	outPath    string
	profileDir string

	player1   string
	player2   string
	timeLimit time.Duration
	seed      int64
	debug     bool

	logger = NewConsoleLogger()
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "tournament YAML config (defaults to the built-in lineup)")

	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVarP(&outPath, "out", "o", "", "write the JSON report to this file")
	runCmd.Flags().StringVar(&profileDir, "profile", "", "write a CPU profile to this directory")

	rootCmd.AddCommand(playCmd)
	playCmd.Flags().StringVar(&player1, "p1", "ab_aggressive", "agent playing first")
	playCmd.Flags().StringVar(&player2, "p2", "ab_open", "agent playing second")
	playCmd.Flags().DurationVar(&timeLimit, "time-limit", 0, "time per move (defaults to the config's)")
	playCmd.Flags().Int64Var(&seed, "seed", 0, "seed for openings and random agents (0 = random)")
	playCmd.Flags().BoolVar(&debug, "debug", false, "log every completed search depth")

	rootCmd.AddCommand(agentsCmd)
}

func loadConfig() (tournament.Config, Error) {
	if configPath == "" {
		config := tournament.DefaultConfig()
		return config, config.Validate()
	}
	return tournament.LoadConfig(configPath)
}

func runTournament(cmd *cobra.Command, args []string) error {
	if profileDir != "" {
		defer profile.Start(profile.ProfilePath(profileDir)).Stop()
	}

	config, err := loadConfig()
	if !IsNil(err) {
		return err
	}

	logger.Info().Int("agents", len(config.Agents)).Dur("timeLimit", config.TimeLimit).Msg("starting tournament")

	report, err := tournament.Run(config,
		tournament.WithLogger{Logger: NewZerologLogger(logger, zerolog.DebugLevel)},
		tournament.WithProgress{Writer: os.Stderr},
	)
	if !IsNil(err) {
		return err
	}

	fmt.Println(report.Summary())

	if outPath != "" {
		err = report.WriteJSON(outPath)
		if !IsNil(err) {
			return err
		}
		logger.Info().Str("path", outPath).Msg("wrote report")
	}
	return nil
}

func runPlay(cmd *cobra.Command, args []string) error {
	config, err := loadConfig()
	if !IsNil(err) {
		return err
	}
	if timeLimit > 0 {
		config.TimeLimit = timeLimit
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	extra := []search.SearchOption{}
	if debug {
		extra = append(extra, search.WithDebugLogging{})
	}

	names := [2]string{player1, player2}
	agents := [2]runner.Agent{}
	for i, name := range names {
		agentConfig := config.Agent(name)
		if agentConfig.IsEmpty() {
			return Errorf("unknown agent %v", name)
		}
		agents[i], err = tournament.NewAgent(agentConfig.Value(), rand.New(rand.NewSource(rng.Int63())),
			NewZerologLogger(logger.With().Str("agent", name).Logger(), zerolog.DebugLevel), extra...)
		if !IsNil(err) {
			return err
		}
	}

	board := game.NewBoard(config.Board.Width, config.Board.Height)
	result := runner.Play(board, agents,
		runner.WithTimeLimit{Limit: config.TimeLimit},
		runner.WithOpeningMoves{Count: config.OpeningMoves, Rand: rng},
		runner.WithMoveListener{OnMove: func(e runner.MoveEvent) {
			fmt.Printf("%v (%v) plays %v in %v\n", names[e.Player], e.Player, e.Move, e.Elapsed.Round(time.Millisecond))
			if e.Result.HasValue() {
				fmt.Println(e.Result.Value())
			}
			fmt.Println(e.Board)
			fmt.Println()
		}},
	)

	fmt.Printf("%v (%v) wins after %d moves: %v\n", names[result.Winner], result.Winner, len(result.History), result.Outcome)
	return nil
}

func runAgents(cmd *cobra.Command, args []string) error {
	config, err := loadConfig()
	if !IsNil(err) {
		return err
	}

	fmt.Println("agents:")
	for _, a := range config.Agents {
		depth := a.Depth
		if depth == 0 {
			depth = search.DefaultSearchDepth
		}
		switch a.Algorithm {
		case tournament.AlgorithmRandom:
			fmt.Printf("  %-16s %v\n", a.Name, a.Algorithm)
		default:
			fmt.Printf("  %-16s %v depth %d, %v\n", a.Name, a.Algorithm, depth, a.Evaluator)
		}
	}

	fmt.Println("evaluators:")
	for _, name := range search.EvaluatorNames() {
		fmt.Println("  " + name)
	}
	return nil
}

func main() {
	err := rootCmd.Execute()
	if !IsNil(err) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
