package tournament

import (
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/aweeraman/AIND-Isolation/internal/game"
	. "github.com/aweeraman/AIND-Isolation/internal/helpers"
	"github.com/aweeraman/AIND-Isolation/internal/runner"
	"github.com/dustin/go-humanize"
	combinations "github.com/mxschmitt/golang-combinations"
	"github.com/schollz/progressbar/v3"
)

type MatchRecord struct {
	Player1 string         `json:"player1"`
	Player2 string         `json:"player2"`
	Winner  string         `json:"winner"`
	Outcome runner.Outcome `json:"outcome"`
	History []Move         `json:"history"`
}

type Standing struct {
	Name   string `json:"name"`
	Wins   int    `json:"wins"`
	Losses int    `json:"losses"`

	// Forfeits counts losses by timeout or illegal move.
	Forfeits int     `json:"forfeits"`
	WinRate  float64 `json:"win_rate"`
}

func (s Standing) Played() int {
	return s.Wins + s.Losses
}

type Report struct {
	StartedAt time.Time     `json:"started_at"`
	Elapsed   time.Duration `json:"elapsed"`
	Config    Config        `json:"config"`
	Matches   []MatchRecord `json:"matches"`
	Standings []Standing    `json:"standings"`
}

type runOptions struct {
	logger   Logger
	progress io.Writer
}

type RunOption interface {
	apply(options *runOptions)
}

// WithLogger receives match results and, at debug level, search logs.
type WithLogger struct {
	Logger Logger
}

func (o WithLogger) apply(options *runOptions) {
	options.logger = o.Logger
}

// WithProgress draws a progress bar on Writer.
type WithProgress struct {
	Writer io.Writer
}

func (o WithProgress) apply(options *runOptions) {
	options.progress = o.Writer
}

// Pairings lists every unordered pair of names once, in the order names are
// given. It walks every subset of names, so configs cap the lineup at 16.
func Pairings(names []string) [][2]string {
	pairs := [][2]string{}
	for _, subset := range combinations.All(names) {
		if len(subset) == 2 {
			pairs = append(pairs, [2]string{subset[0], subset[1]})
		}
	}
	sort.SliceStable(pairs, func(i, j int) bool {
		a := indexOf(names, pairs[i])
		b := indexOf(names, pairs[j])
		return a[0] < b[0] || (a[0] == b[0] && a[1] < b[1])
	})
	return pairs
}

func indexOf(names []string, pair [2]string) [2]int {
	result := [2]int{}
	for i, name := range names {
		if name == pair[0] {
			result[0] = i
		}
		if name == pair[1] {
			result[1] = i
		}
	}
	return result
}

// Run plays MatchesPerPair matches between every pair of agents, swapping
// sides after each match. Both sides of a swapped pair get the same opening.
func Run(config Config, opts ...RunOption) (Report, Error) {
	options := runOptions{logger: &SilentLogger, progress: io.Discard}
	for _, opt := range opts {
		opt.apply(&options)
	}

	err := config.Validate()
	if !IsNil(err) {
		return Report{}, err
	}

	report := Report{
		StartedAt: time.Now(),
		Config:    config,
		Matches:   []MatchRecord{},
	}

	names := MapSlice(config.Agents, func(a AgentConfig) string {
		return a.Name
	})
	pairs := Pairings(names)
	rng := rand.New(rand.NewSource(config.Seed))

	bar := progressbar.NewOptions(len(pairs)*config.MatchesPerPair,
		progressbar.OptionSetWriter(options.progress),
		progressbar.OptionSetDescription("matches"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)

	standings := map[string]*Standing{}
	for _, name := range names {
		standings[name] = &Standing{Name: name}
	}

	for _, pair := range pairs {
		openingSeed := int64(0)
		for i := 0; i < config.MatchesPerPair; i++ {
			if i%2 == 0 {
				openingSeed = rng.Int63()
			}
			sides := pair
			if i%2 == 1 {
				sides = [2]string{pair[1], pair[0]}
			}

			record, err := playMatch(config, sides, rng, openingSeed, options.logger)
			if !IsNil(err) {
				return report, err
			}
			report.Matches = append(report.Matches, record)

			winner := standings[record.Winner]
			winner.Wins++
			loser := standings[sides[0]]
			if record.Winner == sides[0] {
				loser = standings[sides[1]]
			}
			loser.Losses++
			if record.Outcome.IsForfeit() {
				loser.Forfeits++
			}

			_ = bar.Add(1)
		}
	}
	_ = bar.Finish()

	report.Standings = rank(MapSlice(names, func(name string) Standing {
		return *standings[name]
	}))
	report.Elapsed = time.Since(report.StartedAt)

	options.logger.Printf("played %s matches in %v\n", humanize.Comma(int64(len(report.Matches))), report.Elapsed.Round(time.Millisecond))
	return report, NilError
}

func playMatch(config Config, sides [2]string, rng *rand.Rand, openingSeed int64, logger Logger) (MatchRecord, Error) {
	agents := [2]runner.Agent{}
	for i, name := range sides {
		agentConfig := config.Agent(name)
		if agentConfig.IsEmpty() {
			return MatchRecord{}, Errorf("unknown agent %v", name)
		}

		agent, err := NewAgent(agentConfig.Value(), rand.New(rand.NewSource(rng.Int63())), &SilentLogger)
		if !IsNil(err) {
			return MatchRecord{}, err
		}
		agents[i] = agent
	}

	result := runner.Play(
		game.NewBoard(config.Board.Width, config.Board.Height),
		agents,
		runner.WithTimeLimit{Limit: config.TimeLimit},
		runner.WithOpeningMoves{Count: config.OpeningMoves, Rand: rand.New(rand.NewSource(openingSeed))},
	)

	record := MatchRecord{
		Player1: sides[0],
		Player2: sides[1],
		Winner:  sides[result.Winner],
		Outcome: result.Outcome,
		History: result.History,
	}
	logger.Printf("%v vs %v: %v wins after %d moves (%v)\n",
		record.Player1, record.Player2, record.Winner, len(record.History), record.Outcome)
	return record, NilError
}

// rank fills in win rates and sorts by win rate, then wins, keeping the
// configured order for ties.
func rank(standings []Standing) []Standing {
	for i := range standings {
		if played := standings[i].Played(); played > 0 {
			standings[i].WinRate = float64(standings[i].Wins) / float64(played)
		}
	}
	sort.SliceStable(standings, func(i, j int) bool {
		if standings[i].WinRate != standings[j].WinRate {
			return standings[i].WinRate > standings[j].WinRate
		}
		return standings[i].Wins > standings[j].Wins
	})
	return standings
}

func (r Report) Summary() string {
	lines := []string{
		fmt.Sprintf("%s matches, %v per move, %dx%d board",
			humanize.Comma(int64(len(r.Matches))), r.Config.TimeLimit, r.Config.Board.Width, r.Config.Board.Height),
	}
	for i, s := range r.Standings {
		lines = append(lines, fmt.Sprintf("%2d. %-16s %5.1f%%  %3d-%-3d  %d forfeits",
			i+1, s.Name, 100*s.WinRate, s.Wins, s.Losses, s.Forfeits))
	}
	return strings.Join(lines, "\n")
}

func (r Report) WriteJSON(path string) Error {
	data, err := WrapReturn(json.MarshalIndent(r, "", "  "))
	if !IsNil(err) {
		return err
	}
	return Wrap(os.WriteFile(path, data, 0644))
}
