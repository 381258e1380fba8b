package statement

import (
	"context"
	"fmt"
	"strings"
	"time"

	"fjacquet/finflow/internal/logging"
	"fjacquet/finflow/internal/models"
	"fjacquet/finflow/internal/parsererror"
	"fjacquet/finflow/internal/textutils"

	"golang.org/x/sync/errgroup"
)

const (
	defaultWorkers = 4
	snippetLength  = 60
)

// Result is the outcome of parsing one statement.
type Result struct {
	Transactions []models.Transaction
	Rejections   []*parsererror.BlockRejectedError
	Blocks       int
}

// RejectionCounts tallies rejections by reason.
func (r Result) RejectionCounts() map[parsererror.RejectReason]int {
	counts := make(map[parsererror.RejectReason]int, len(r.Rejections))
	for _, rej := range r.Rejections {
		counts[rej.Reason]++
	}
	return counts
}

// Parser drives segmentation and per-block assembly.
type Parser struct {
	assembler *Assembler
	workers   int
	logger    logging.Logger
}

// NewParser creates a Parser. workers bounds the per-block fan-out.
func NewParser(assembler *Assembler, workers int, logger logging.Logger) *Parser {
	if workers < 1 {
		workers = defaultWorkers
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Parser{assembler: assembler, workers: workers, logger: logger}
}

// Parse extracts transactions from statement text for userID. Transactions
// keep block order; rejected blocks are reported in Result.Rejections.
func (p *Parser) Parse(ctx context.Context, userID, text string) (Result, error) {
	return p.ParseBlocks(ctx, userID, SegmentText(text))
}

type blockOutcome struct {
	tx     models.Transaction
	reason parsererror.RejectReason
}

// ParseBlocks assembles blocks concurrently and collects the outcome in order.
func (p *Parser) ParseBlocks(ctx context.Context, userID string, blocks []Block) (Result, error) {
	if strings.TrimSpace(userID) == "" {
		return Result{}, fmt.Errorf("user id is required")
	}
	start := time.Now()

	outcomes := make([]blockOutcome, len(blocks))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)
	for i, block := range blocks {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			tx, reason := p.assembler.Assemble(userID, block)
			outcomes[i] = blockOutcome{tx: tx, reason: reason}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, fmt.Errorf("statement parsing cancelled: %w", err)
	}

	result := Result{Blocks: len(blocks)}
	for i, out := range outcomes {
		if !out.reason.Rejected() {
			result.Transactions = append(result.Transactions, out.tx)
			continue
		}
		rejection := &parsererror.BlockRejectedError{
			Index:   blocks[i].Index,
			Reason:  out.reason,
			Snippet: textutils.Snippet(blocks[i].Text(), snippetLength),
		}
		result.Rejections = append(result.Rejections, rejection)
		p.logger.Debug("Dropped statement block",
			logging.F(logging.FieldBlock, rejection.Index),
			logging.F(logging.FieldReason, string(rejection.Reason)),
			logging.F("snippet", rejection.Snippet))
	}

	p.logger.WithFields(
		logging.F(logging.FieldUserID, userID),
		logging.F(logging.FieldCount, len(result.Transactions)),
		logging.F(logging.FieldRejected, len(result.Rejections)),
		logging.F(logging.FieldDuration, time.Since(start).Milliseconds()),
	).Info("Parsed statement")

	return result, nil
}
