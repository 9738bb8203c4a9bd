package search

import (
	"time"

	. "github.com/aweeraman/AIND-Isolation/internal/helpers"
)

const (
	DefaultSearchDepth   = 3
	DefaultTimeoutMargin = 10 * time.Millisecond
)

type searchOptions struct {
	searchDepth   int
	timeoutMargin time.Duration
	maxDepth      Optional[int]
	logger        Logger
	debugTree     *DebugTree
}

func defaultSearchOptions() searchOptions {
	return searchOptions{
		searchDepth:   DefaultSearchDepth,
		timeoutMargin: DefaultTimeoutMargin,
		maxDepth:      Empty[int](),
		logger:        &SilentLogger,
	}
}

type SearchOption interface {
	apply(options *searchOptions)
}

// WithSearchDepth sets the depth of fixed-depth search and the first depth of
// iterative deepening.
type WithSearchDepth struct {
	Depth int
}

func (o WithSearchDepth) apply(options *searchOptions) {
	options.searchDepth = o.Depth
}

// WithTimeoutMargin aborts the search once less than Margin of the turn
// remains.
type WithTimeoutMargin struct {
	Margin time.Duration
}

func (o WithTimeoutMargin) apply(options *searchOptions) {
	options.timeoutMargin = o.Margin
}

// WithMaxDepth stops iterative deepening after MaxDepth even if time remains.
type WithMaxDepth struct {
	MaxDepth int
}

func (o WithMaxDepth) apply(options *searchOptions) {
	options.maxDepth = Some(o.MaxDepth)
}

type WithLogger struct {
	Logger Logger
}

func (o WithLogger) apply(options *searchOptions) {
	options.logger = o.Logger
}

// WithDebugLogging prints search progress through the standard logger,
// replacing any WithLogger given before it.
type WithDebugLogging struct {
}

func (o WithDebugLogging) apply(options *searchOptions) {
	options.logger = &DefaultLogger
}

// WithDebugTree records every node the search visits into Tree.
type WithDebugTree struct {
	Tree *DebugTree
}

func (o WithDebugTree) apply(options *searchOptions) {
	options.debugTree = o.Tree
}

func buildOptions(opts []SearchOption) searchOptions {
	options := defaultSearchOptions()
	for _, opt := range opts {
		opt.apply(&options)
	}
	if options.searchDepth < 1 {
		panic(Errorf("search depth must be positive, got %d", options.searchDepth))
	}
	if options.timeoutMargin < 0 {
		panic(Errorf("timeout margin must not be negative, got %v", options.timeoutMargin))
	}
	if options.logger == nil {
		options.logger = &SilentLogger
	}
	return options
}
