// Package worker implements the persistent line-delimited JSON protocol: one
// ExtractionRequest per input line, exactly one Article or ErrorResult per
// output line, in input order, with every per-line failure contained so the
// process survives arbitrary bad input.
package worker

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"article-extract-worker/internal/config"
	"article-extract-worker/internal/extract"
	"article-extract-worker/internal/models"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Worker drives the extraction pipeline from an input stream to an output
// stream. It is stateless between requests apart from the read-only
// configuration captured at construction.
type Worker struct {
	coordinator *extract.Coordinator
	defaults    extract.Options
	buildCfg    extract.BuildConfig
	timeout     time.Duration
	parallelism int
	logger      zerolog.Logger
}

// New constructs a worker from the process configuration and an engine
// coordinator
func New(cfg config.WorkerConfig, coordinator *extract.Coordinator, logger zerolog.Logger) *Worker {
	defaults := extract.DefaultOptions()
	defaults.CharThreshold = cfg.CharThreshold
	defaults.NbTopCandidates = cfg.NbTopCandidates
	defaults.MaxElemsToParse = cfg.MaxElemsToParse

	return &Worker{
		coordinator: coordinator,
		defaults:    defaults,
		buildCfg: extract.BuildConfig{
			SuppressWarnings: cfg.SuppressWarnings,
			Logger:           logger,
		},
		timeout:     cfg.Timeout,
		parallelism: cfg.Parallelism,
		logger:      logger,
	}
}

// Run processes input until EOF and then returns. Each input line yields
// exactly one output line; responses are emitted in input order even in
// concurrent mode. Run only returns a non-nil error for stream-level faults
// (a broken output pipe), never for a bad request.
func (w *Worker) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	if w.parallelism > 1 {
		return w.runConcurrent(ctx, in, out)
	}

	writer := bufio.NewWriter(out)
	defer writer.Flush()

	return readLines(in, func(line []byte) error {
		resp := w.ProcessLine(ctx, line)
		return writeResponse(writer, resp)
	})
}

// readLines invokes fn for every input line. Lines are read with an
// unbounded buffered reader rather than a Scanner so an oversized line
// cannot wedge the protocol.
func readLines(in io.Reader, fn func(line []byte) error) error {
	reader := bufio.NewReaderSize(in, 1<<20)
	for {
		line, err := reader.ReadBytes('\n')
		if len(line) > 0 {
			trimmed := line
			if trimmed[len(trimmed)-1] == '\n' {
				trimmed = trimmed[:len(trimmed)-1]
			}
			if len(trimmed) > 0 && trimmed[len(trimmed)-1] == '\r' {
				trimmed = trimmed[:len(trimmed)-1]
			}
			if err := fn(trimmed); err != nil {
				return err
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("reading input: %w", err)
		}
	}
}

func writeResponse(writer *bufio.Writer, resp []byte) error {
	if _, err := writer.Write(resp); err != nil {
		return fmt.Errorf("writing response: %w", err)
	}
	if err := writer.WriteByte('\n'); err != nil {
		return fmt.Errorf("writing response: %w", err)
	}
	return writer.Flush()
}

// ProcessLine runs one request line through the full pipeline and returns
// the marshaled response line. It never panics and never returns invalid
// JSON: any fault inside the pipeline, including a panic, becomes an
// ErrorResult for this line only.
func (w *Worker) ProcessLine(ctx context.Context, line []byte) (resp []byte) {
	defer func() {
		if r := recover(); r != nil {
			w.logger.Error().Interface("panic", r).Msg("request pipeline panicked")
			resp = marshalError(fmt.Sprintf("Processing failed: internal error: %v", r))
		}
	}()

	if w.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.timeout)
		defer cancel()
	}

	var req models.ExtractionRequest
	if err := json.Unmarshal(line, &req); err != nil {
		return marshalError(fmt.Sprintf("Processing failed: Invalid JSON: %v", err))
	}

	html, pageURL, opts, err := extract.NormalizeRequest(&req, w.defaults)
	if err != nil {
		return marshalError(fmt.Sprintf("Processing failed: %v", err))
	}

	doc, err := extract.BuildDocument(html, pageURL, w.buildCfg)
	if err != nil {
		return marshalError(fmt.Sprintf("Processing failed: %v", err))
	}

	article, err := w.coordinator.Extract(ctx, doc, opts)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return marshalError(fmt.Sprintf("Processing failed: request timed out after %s", w.timeout))
		}
		return marshalError(fmt.Sprintf("Processing failed: %v", err))
	}

	data, err := json.Marshal(article)
	if err != nil {
		// Article fields are plain strings and ints; reaching this means a
		// marshaling invariant broke upstream
		w.logger.Error().Err(err).Msg("marshaling article")
		return marshalError(fmt.Sprintf("Processing failed: encoding response: %v", err))
	}
	return data
}

// runConcurrent overlaps independent requests while reconciling completion
// order back to submission order through a sequencing buffer keyed by
// arrival index.
func (w *Worker) runConcurrent(ctx context.Context, in io.Reader, out io.Writer) error {
	type job struct {
		idx  int
		line []byte
	}
	type result struct {
		idx  int
		resp []byte
	}

	jobs := make(chan job, w.parallelism)
	results := make(chan result, w.parallelism)

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < w.parallelism; i++ {
		g.Go(func() error {
			for j := range jobs {
				resp := w.ProcessLine(gctx, j.line)
				select {
				case results <- result{idx: j.idx, resp: resp}:
				case <-gctx.Done():
					return gctx.Err()
				}
			}
			return nil
		})
	}

	// Writer: buffer out-of-order completions until their turn
	writeErr := make(chan error, 1)
	go func() {
		writer := bufio.NewWriter(out)
		defer writer.Flush()

		pending := make(map[int][]byte)
		next := 0
		var failed error
		for r := range results {
			if failed != nil {
				// Keep draining so workers never block on a dead writer
				continue
			}
			pending[r.idx] = r.resp
			for {
				resp, ok := pending[next]
				if !ok {
					break
				}
				delete(pending, next)
				if err := writeResponse(writer, resp); err != nil {
					failed = err
					break
				}
				next++
			}
		}
		writeErr <- failed
	}()

	arrival := 0
	readErr := readLines(in, func(line []byte) error {
		buf := append([]byte(nil), line...)
		select {
		case jobs <- job{idx: arrival, line: buf}:
			arrival++
		case <-gctx.Done():
			return gctx.Err()
		}
		return nil
	})

	close(jobs)
	workerErr := g.Wait()
	close(results)
	werr := <-writeErr

	if readErr != nil {
		return readErr
	}
	if workerErr != nil {
		return workerErr
	}
	return werr
}

func marshalError(msg string) []byte {
	data, err := json.Marshal(models.ErrorResult{Error: msg})
	if err != nil {
		// Cannot happen for a flat string struct
		return []byte(`{"error":"Processing failed: internal error"}`)
	}
	return data
}
