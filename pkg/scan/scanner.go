package scan

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/yaklabco/mdview/internal/logging"
	"github.com/yaklabco/mdview/pkg/derive"
	goldmarkparser "github.com/yaklabco/mdview/pkg/parser/goldmark"
	"github.com/yaklabco/mdview/pkg/source"
)

// Scanner parses and derives statistics for many files concurrently.
type Scanner struct {
	parser     *goldmarkparser.Parser
	deriveOpts derive.Options
}

// New creates a Scanner configured from opts. The parser is shared across
// workers; parsing is stateless per call.
func New(opts Options) *Scanner {
	return &Scanner{
		parser:     goldmarkparser.New(goldmarkparser.Options{DiagramTags: opts.DiagramTags}),
		deriveOpts: derive.Options{WordsPerMinute: opts.WordsPerMinute},
	}
}

// Run discovers files under opts.Paths and processes them concurrently.
// The returned result lists outcomes in path order and carries aggregate
// statistics. Run respects context cancellation.
func (s *Scanner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
	}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	if jobs > len(files) {
		jobs = len(files)
	}

	workCh := make(chan string)
	outCh := make(chan FileOutcome)

	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.worker(ctx, workCh, outCh)
		}()
	}

	go func() {
		defer close(workCh)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- path:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	// Workers complete out of order; collect into a map and rebuild in
	// discovery order.
	outcomes := make(map[string]FileOutcome, len(files))
	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}
	for _, path := range files {
		if outcome, ok := outcomes[path]; ok {
			result.accumulate(outcome)
		}
	}

	if ctx.Err() != nil {
		return result, fmt.Errorf("scan cancelled: %w", ctx.Err())
	}
	return result, nil
}

func (s *Scanner) worker(ctx context.Context, workCh <-chan string, outCh chan<- FileOutcome) {
	logger := logging.FromContext(ctx)

	for path := range workCh {
		select {
		case <-ctx.Done():
			return
		default:
		}

		outcome := FileOutcome{Path: path}

		content, _, err := source.Read(ctx, path)
		if err != nil {
			logger.Warn("read failed", logging.FieldPath, path, logging.FieldError, err)
			outcome.Error = err
		} else {
			logger.Debug("processed", logging.FieldPath, path)
			outcome.Doc = derive.Apply(s.parser.Parse(content), s.deriveOpts)
		}

		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}
