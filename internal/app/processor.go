package app

import (
	"bufio"
	"io"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/five82/lcat/internal/pipeline"
	"github.com/five82/lcat/internal/record"
	"github.com/five82/lcat/internal/state"
)

// linesPerWorker sizes a batch when lines are fanned out.
const linesPerWorker = 256

// processor runs lines through the pipeline and writes outcomes in input
// order. With more than one worker, lines are gathered into batches and
// each batch is split across goroutines.
type processor struct {
	pipe      pipeline.Pipeline
	out       *bufio.Writer
	workers   int
	flushEach bool
	stats     *state.Store
	log       zerolog.Logger

	batch   []string
	results []pipeline.Outcome
}

// newProcessor returns a processor writing to w. flushEach writes every
// output line through immediately, for streams a user is watching.
func newProcessor(pipe pipeline.Pipeline, w io.Writer, workers int, flushEach bool, stats *state.Store, log zerolog.Logger) *processor {
	if workers < 1 || flushEach {
		workers = 1
	}
	p := &processor{
		pipe:      pipe,
		out:       bufio.NewWriter(w),
		workers:   workers,
		flushEach: flushEach,
		stats:     stats,
		log:       log,
	}
	if workers > 1 {
		p.batch = make([]string, 0, workers*linesPerWorker)
	}
	return p
}

func (p *processor) line(line string) error {
	if p.workers == 1 {
		return p.write(line, p.pipe.Process(line))
	}
	p.batch = append(p.batch, line)
	if len(p.batch) < cap(p.batch) {
		return nil
	}
	return p.runBatch()
}

// flush writes any pending batch and the buffered output.
func (p *processor) flush() error {
	if len(p.batch) > 0 {
		if err := p.runBatch(); err != nil {
			return err
		}
	}
	return p.out.Flush()
}

func (p *processor) runBatch() error {
	n := len(p.batch)
	if cap(p.results) < n {
		p.results = make([]pipeline.Outcome, n)
	}
	results := p.results[:n]

	chunk := (n + p.workers - 1) / p.workers
	var g errgroup.Group
	g.SetLimit(p.workers)
	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		g.Go(func() error {
			for i := start; i < end; i++ {
				results[i] = p.pipe.Process(p.batch[i])
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, outcome := range results {
		if err := p.write(p.batch[i], outcome); err != nil {
			return err
		}
	}
	p.batch = p.batch[:0]
	return nil
}

func (p *processor) write(line string, outcome pipeline.Outcome) error {
	p.stats.Record(outcome.Kind)

	if outcome.Kind == pipeline.PassThrough || outcome.Kind == pipeline.Dropped {
		if e := p.log.Debug(); e.Enabled() {
			_, err := record.Decode(line)
			e.Err(err).Str("outcome", outcome.Kind.String()).Msg("not a log record")
		}
	}

	if !outcome.Writes() {
		return nil
	}
	if _, err := p.out.WriteString(outcome.Text); err != nil {
		return err
	}
	if err := p.out.WriteByte('\n'); err != nil {
		return err
	}
	if p.flushEach {
		return p.out.Flush()
	}
	return nil
}
