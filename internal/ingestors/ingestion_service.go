package ingestors

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"time"

	"log-stats/internal/classifiers"
	"log-stats/internal/models"
	"log-stats/internal/parsers"
	"log-stats/internal/shared/loggers"
	"log-stats/internal/shared/metrics"

	"golang.org/x/sync/errgroup"
)

const (
	maxLineBytes    = 1024 * 1024
	readBufferBytes = 64 * 1024

	DefaultBatchSize = 1000
)

// IngestResult counts the lines of one ingestion run by outcome.
type IngestResult struct {
	Lines        int
	Accepted     int
	Malformed    int
	BadTimestamp int
	Skipped      int
}

type IngestionService interface {
	// Ingest folds every well-formed line of r into stats. Entries not newer than the
	// last entry stats held when the call started are skipped. Malformed and overlong
	// lines are logged, counted and dropped.
	Ingest(ctx context.Context, stats *models.LogStats, r io.Reader) (*IngestResult, error)
}

type ingestionService struct {
	parser           parsers.LogEntryParser
	classifier       classifiers.BotClassifier
	batchSize        int
	sessionDelimiter time.Duration
}

func NewIngestionService(parser parsers.LogEntryParser, classifier classifiers.BotClassifier, batchSize int, sessionDelimiter time.Duration) IngestionService {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	if sessionDelimiter <= 0 {
		sessionDelimiter = models.DefaultSessionDelimiter
	}
	return &ingestionService{
		parser:           parser,
		classifier:       classifier,
		batchSize:        batchSize,
		sessionDelimiter: sessionDelimiter,
	}
}

type parsedLine struct {
	no      int
	raw     string
	tooLong bool
	entry   *models.LogEntry
}

// Ingest reads and parses batches on one goroutine while a single consumer folds them
// into stats in input order.
func (s *ingestionService) Ingest(ctx context.Context, stats *models.LogStats, r io.Reader) (*IngestResult, error) {
	if stats == nil {
		return nil, errValidationFailed("stats is required", nil)
	}
	if r == nil {
		return nil, errValidationFailed("input is required", nil)
	}

	logger := loggers.Ctx(ctx)
	stats.MarkCheckpoint()
	if checkpoint := stats.Checkpoint(); !checkpoint.IsZero() {
		logger.Info().Time("checkpoint", checkpoint).Msg("resuming after checkpoint")
	}

	batches := make(chan []parsedLine, 1)
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(batches)
		return s.readBatches(gCtx, r, batches)
	})

	result := &IngestResult{}
	g.Go(func() error {
		for batch := range batches {
			for _, line := range batch {
				s.apply(gCtx, stats, line, result)
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if !stats.LastEntryTimestamp.IsZero() {
		metricLastEntryTimestamp.WithLabelValues().Set(float64(stats.LastEntryTimestamp.Unix()))
	}

	logger.Info().
		Int("lines", result.Lines).
		Int("accepted", result.Accepted).
		Int("malformed", result.Malformed).
		Int("bad_timestamp", result.BadTimestamp).
		Int("skipped", result.Skipped).
		Msg("ingestion finished")
	return result, nil
}

func (s *ingestionService) readBatches(ctx context.Context, r io.Reader, out chan<- []parsedLine) error {
	reader := bufio.NewReaderSize(r, readBufferBytes)

	batch := make([]parsedLine, 0, s.batchSize)
	lineNo := 0
	for {
		raw, tooLong, err := readLine(reader)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			svcErr := errInternalInputReadFailed(err)
			metricBatchesReadTotal.WithLabelValues(svcErr.Code).Inc()
			return svcErr
		}

		lineNo++
		line := parsedLine{no: lineNo, tooLong: tooLong}
		if tooLong {
			line.entry = &models.LogEntry{}
		} else {
			line.raw = raw
			line.entry = s.parser.Parse(raw)
		}
		batch = append(batch, line)
		if len(batch) < s.batchSize {
			continue
		}
		if err := send(ctx, out, batch); err != nil {
			return err
		}
		batch = make([]parsedLine, 0, s.batchSize)
	}

	if len(batch) > 0 {
		return send(ctx, out, batch)
	}
	return nil
}

// readLine returns the next line without its terminator. A line longer than maxLineBytes
// is consumed to its end and reported as tooLong with no content. io.EOF is returned once
// nothing is left.
func readLine(reader *bufio.Reader) (string, bool, error) {
	var line []byte
	tooLong, read := false, false
	for {
		chunk, err := reader.ReadSlice('\n')
		read = read || len(chunk) > 0
		if !tooLong {
			line = append(line, chunk...)
			// room for a "\r\n" terminator
			if len(line) > maxLineBytes+2 {
				tooLong, line = true, nil
			}
		}

		switch {
		case errors.Is(err, bufio.ErrBufferFull):
			continue
		case errors.Is(err, io.EOF) && read:
		case err != nil:
			return "", false, err
		}

		line = bytes.TrimSuffix(line, []byte("\n"))
		line = bytes.TrimSuffix(line, []byte("\r"))
		if len(line) > maxLineBytes {
			return "", true, nil
		}
		return string(line), tooLong, nil
	}
}

func send(ctx context.Context, out chan<- []parsedLine, batch []parsedLine) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	select {
	case out <- batch:
		metricBatchesReadTotal.WithLabelValues(metrics.ValueNoError).Inc()
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *ingestionService) apply(ctx context.Context, stats *models.LogStats, line parsedLine, result *IngestResult) {
	logger := loggers.Ctx(ctx)
	result.Lines++

	entry := line.entry
	if line.tooLong {
		result.Malformed++
		metricLinesIngestedTotal.WithLabelValues(outcomeMalformed).Inc()
		logger.Debug().
			Int(loggers.FieldLineNo, line.no).
			Int("max_bytes", maxLineBytes).
			Msg("log line too long")
		return
	}
	if !entry.IsWellFormed() {
		result.Malformed++
		metricLinesIngestedTotal.WithLabelValues(outcomeMalformed).Inc()
		logger.Debug().
			Int(loggers.FieldLineNo, line.no).
			Str(loggers.FieldRawLine, line.raw).
			Strs(loggers.FieldFields, entry.Fields()).
			Msg("log entry parsing failed")
		return
	}

	ts, err := entry.Timestamp()
	if err != nil {
		result.BadTimestamp++
		metricLinesIngestedTotal.WithLabelValues(outcomeBadTimestamp).Inc()
		logger.Debug().
			Err(err).
			Int(loggers.FieldLineNo, line.no).
			Str(loggers.FieldRawLine, line.raw).
			Msg("log entry has an invalid timestamp")
		return
	}

	class := s.classifier.Classify(entry)
	if !stats.AddEntry(ts, entry.Host, class, s.sessionDelimiter) {
		result.Skipped++
		metricLinesIngestedTotal.WithLabelValues(outcomeSkipped).Inc()
		return
	}

	result.Accepted++
	metricLinesIngestedTotal.WithLabelValues(outcomeAccepted).Inc()
}
