package params

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"math"
	"time"

	"github.com/0xalexb/hjarta-params/alloc"
	"github.com/0xalexb/hjarta-params/config"
	filefetcher "github.com/0xalexb/hjarta-params/config/fetcher/file"
	"github.com/0xalexb/hjarta-params/metrics"
	"github.com/0xalexb/hjarta-params/parser"
	"github.com/0xalexb/hjarta-params/tree"
)

// Loader builds parameter trees from a config.Params.
type Loader struct {
	parser    *parser.Parser
	collector *metrics.Collector
	logger    *slog.Logger
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithParser sets the parser used for files and overrides.
func WithParser(p *parser.Parser) LoaderOption {
	return func(l *Loader) {
		l.parser = p
	}
}

// WithCollector records parse metrics and the tree size on collector.
func WithCollector(collector *metrics.Collector) LoaderOption {
	return func(l *Loader) {
		l.collector = collector
	}
}

// WithLoaderLogger sets the logger. It defaults to slog.Default().
func WithLoaderLogger(logger *slog.Logger) LoaderOption {
	return func(l *Loader) {
		l.logger = logger
	}
}

// NewLoader creates a Loader.
func NewLoader(opts ...LoaderOption) *Loader {
	loader := &Loader{logger: slog.Default()}

	for _, apply := range opts {
		apply(loader)
	}

	if loader.parser == nil {
		loader.parser = parser.New(parser.WithLogger(loader.logger))
	}

	return loader
}

// Load parses cfg.Files in order and then applies cfg.Overrides. The tree
// is charged against an allocator limited to cfg.MemoryLimit bytes. On
// error the partial tree is released and nil is returned.
func (l *Loader) Load(ctx context.Context, cfg config.Params) (*tree.Tree, error) {
	capacity := cfg.NodeCapacity
	if capacity == 0 {
		capacity = tree.DefaultNodeCapacity
	}

	limit := cfg.MemoryLimit
	if limit == 0 {
		limit = math.MaxInt
	}

	budget := alloc.NewBudget(limit)

	paramTree, err := tree.NewWithCapacity(budget, capacity)
	if err != nil {
		return nil, fmt.Errorf("creating parameter tree: %w", err)
	}

	err = l.fill(ctx, paramTree, cfg)
	if err != nil {
		paramTree.Finalize()

		return nil, err
	}

	numParams := countParameters(paramTree)
	l.collector.ObserveTree(paramTree.NumNodes(), numParams, budget.InUse())
	l.logger.InfoContext(ctx, "parameters loaded",
		slog.Int("files", len(cfg.Files)),
		slog.Int("overrides", len(cfg.Overrides)),
		slog.Int("nodes", paramTree.NumNodes()),
		slog.Int("parameters", numParams),
		slog.Int("bytes", budget.InUse()),
	)

	return paramTree, nil
}

func (l *Loader) fill(ctx context.Context, paramTree *tree.Tree, cfg config.Params) error {
	for _, path := range cfg.Files {
		err := ctx.Err()
		if err != nil {
			return fmt.Errorf("loading parameters: %w", err)
		}

		err = l.loadFile(ctx, paramTree, path, cfg.SkipMissing)
		if err != nil {
			return err
		}
	}

	for _, rule := range cfg.Overrides {
		start := time.Now()
		err := l.parser.ParseOverride(rule, paramTree)
		l.collector.RecordParse(metrics.SourceOverride, time.Since(start), err)

		if err != nil {
			return fmt.Errorf("applying override %q: %w", rule, err)
		}
	}

	return nil
}

func (l *Loader) loadFile(ctx context.Context, paramTree *tree.Tree, path string, skipMissing bool) error {
	fetcher, err := filefetcher.Open(path)
	if err != nil {
		if skipMissing && errors.Is(err, fs.ErrNotExist) {
			l.logger.WarnContext(ctx, "skipping missing parameter file", slog.String("file", path))

			return nil
		}

		return fmt.Errorf("loading parameters: %w", err)
	}

	data, err := fetcher.Fetch()
	if err != nil {
		return fmt.Errorf("loading parameters: %w", err)
	}

	start := time.Now()
	err = l.parser.ParseBytes(data, paramTree)
	l.collector.RecordParse(metrics.SourceFile, time.Since(start), err)

	if err != nil {
		return fmt.Errorf("parsing %q: %w", fetcher.Path(), err)
	}

	return nil
}

func countParameters(paramTree *tree.Tree) int {
	count := 0

	for i := range paramTree.NumNodes() {
		node := paramTree.Node(i)

		for j := range node.Len() {
			if !node.Value(j).IsEmpty() {
				count++
			}
		}
	}

	return count
}
