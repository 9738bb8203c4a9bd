package tournament

import (
	"fmt"
	"os"
	"time"

	"github.com/aweeraman/AIND-Isolation/internal/game"
	. "github.com/aweeraman/AIND-Isolation/internal/helpers"
	"github.com/aweeraman/AIND-Isolation/internal/runner"
	"github.com/aweeraman/AIND-Isolation/internal/search"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	AlgorithmMinimax   = "minimax"
	AlgorithmAlphaBeta = "alphabeta"
	AlgorithmRandom    = "random"
)

type BoardConfig struct {
	Width  int `json:"width" yaml:"width" validate:"gte=3,lte=15"`
	Height int `json:"height" yaml:"height" validate:"gte=3,lte=15"`
}

// AgentConfig describes one tournament entrant. Depth and TimeoutMargin fall
// back to the search defaults when zero.
type AgentConfig struct {
	Name          string        `json:"name" yaml:"name" validate:"required"`
	Algorithm     string        `json:"algorithm" yaml:"algorithm" validate:"required,oneof=minimax alphabeta random"`
	Depth         int           `json:"depth,omitempty" yaml:"depth" validate:"gte=0,lte=32"`
	Evaluator     string        `json:"evaluator,omitempty" yaml:"evaluator" validate:"required_unless=Algorithm random,omitempty,evaluator"`
	TimeoutMargin time.Duration `json:"timeout_margin,omitempty" yaml:"timeout_margin" validate:"gte=0"`
}

type Config struct {
	TimeLimit      time.Duration `json:"time_limit" yaml:"time_limit" validate:"gt=0"`
	MatchesPerPair int           `json:"matches_per_pair" yaml:"matches_per_pair" validate:"gte=1"`
	OpeningMoves   int           `json:"opening_moves" yaml:"opening_moves" validate:"gte=0"`
	Seed           int64         `json:"seed" yaml:"seed"`
	Board          BoardConfig   `json:"board" yaml:"board"`
	Agents         []AgentConfig `json:"agents" yaml:"agents" validate:"min=2,max=16,unique=Name,dive"`
}

var configValidate *validator.Validate

func init() {
	configValidate = validator.New()

	_ = configValidate.RegisterValidation("evaluator", func(fl validator.FieldLevel) bool {
		_, ok := search.EvaluatorByName[*game.Board](fl.Field().String())
		return ok
	})

	configValidate.RegisterStructValidation(validateMargins, Config{})
}

// validateMargins rejects search agents that would give up before they
// start: the margin must leave part of the time limit to search in.
func validateMargins(sl validator.StructLevel) {
	c := sl.Current().Interface().(Config)
	for i, a := range c.Agents {
		if a.Algorithm == AlgorithmRandom {
			continue
		}
		margin := a.TimeoutMargin
		if margin == 0 {
			margin = search.DefaultTimeoutMargin
		}
		if margin >= c.TimeLimit {
			sl.ReportError(a.TimeoutMargin, fmt.Sprintf("Agents[%d].TimeoutMargin", i), "TimeoutMargin", "ltfield", "TimeLimit")
		}
	}
}

// DefaultConfig pits every evaluator against the open move baseline.
func DefaultConfig() Config {
	return Config{
		TimeLimit:      runner.DefaultTimeLimit,
		MatchesPerPair: 2,
		OpeningMoves:   2,
		Seed:           1,
		Board: BoardConfig{
			Width:  game.DefaultWidth,
			Height: game.DefaultHeight,
		},
		Agents: []AgentConfig{
			{Name: "random", Algorithm: AlgorithmRandom},
			{Name: "mm_open", Algorithm: AlgorithmMinimax, Evaluator: search.OpenMoveEvaluator},
			{Name: "ab_open", Algorithm: AlgorithmAlphaBeta, Evaluator: search.OpenMoveEvaluator},
			{Name: "ab_aggressive", Algorithm: AlgorithmAlphaBeta, Evaluator: search.AggressiveEvaluator},
			{Name: "ab_center", Algorithm: AlgorithmAlphaBeta, Evaluator: search.CenterEvaluator},
			{Name: "ab_mobility", Algorithm: AlgorithmAlphaBeta, Evaluator: search.MobilityEvaluator},
			{Name: "ab_corners", Algorithm: AlgorithmAlphaBeta, Evaluator: search.CornerAvoidingEvaluator},
		},
	}
}

func (c Config) Validate() Error {
	return Wrap(configValidate.Struct(c))
}

func (c Config) Agent(name string) Optional[AgentConfig] {
	return FindInSlice(c.Agents, func(a AgentConfig) bool {
		return a.Name == name
	})
}

// ParseConfig reads a YAML config. Fields missing from data keep their
// DefaultConfig values.
func ParseConfig(data []byte) (Config, Error) {
	config := DefaultConfig()
	err := Wrap(yaml.Unmarshal(data, &config))
	if !IsNil(err) {
		return Config{}, Errorf("parsing config: %w", err)
	}

	err = config.Validate()
	if !IsNil(err) {
		return Config{}, Errorf("invalid config: %w", err)
	}
	return config, NilError
}

func LoadConfig(path string) (Config, Error) {
	data, err := WrapReturn(os.ReadFile(path))
	if !IsNil(err) {
		return Config{}, err
	}
	return ParseConfig(data)
}
