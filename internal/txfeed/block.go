package txfeed

import (
	"context"
	"encoding/hex"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

// blockHashSize is the length in bytes of a raw block hash as published on
// the hashblock topic.
const blockHashSize = 32

// blockHashFromPayload decodes a hashblock payload into the hex block hash
// accepted by the gateway. Both the raw 32-byte form and its 64-character hex
// encoding are accepted.
func blockHashFromPayload(payload []byte) (string, error) {
	switch len(payload) {
	case blockHashSize:
		return hex.EncodeToString(payload), nil
	case hex.EncodedLen(blockHashSize):
		if _, err := hex.DecodeString(string(payload)); err != nil {
			return "", fmt.Errorf("%w: %w", ErrInvalidNotification, err)
		}
		return string(payload), nil
	default:
		return "", fmt.Errorf("%w: unexpected block hash length %d", ErrInvalidNotification, len(payload))
	}
}

// withBlockHeight copies the containing block's height onto every
// transaction. The node does not report it per transaction.
func withBlockHeight(block Block) []RawBlockTransaction {
	txs := make([]RawBlockTransaction, len(block.Transactions))
	for i, tx := range block.Transactions {
		tx.BlockHeight = block.Height
		txs[i] = tx
	}

	return txs
}

// ingestBlock fetches the block identified by blockHash and enriches all of
// its transactions concurrently, at most maxLookups at a time.
//
// It waits for every enrichment to resolve before returning. The first fatal
// enrichment error fails the whole block and cancels the remaining lookups of
// that block; not-found lookups are skipped. The returned transactions follow
// the block's transaction order.
func (s *service) ingestBlock(ctx context.Context, blockHash string) (_ []Transaction, err error) {
	ctx, span := s.tracer.Start(ctx, "txfeed.ingestBlock", trace.WithAttributes(
		attribute.String("block.hash", blockHash),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	block, err := s.gateway.GetBlock(ctx, blockHash, MaxVerbosity)
	if err != nil {
		return nil, fmt.Errorf("fetching block %s: %w", blockHash, err)
	}

	span.SetAttributes(
		attribute.Int64("block.height", int64(block.Height)),
		attribute.Int("block.transactions", len(block.Transactions)),
	)

	var (
		txs      = withBlockHeight(block)
		results  = make([]Transaction, len(txs))
		produced = make([]bool, len(txs))
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxLookups)
	for i, raw := range txs {
		g.Go(func() error {
			tx, ok, err := s.transform(gctx, raw)
			if err != nil {
				return err
			}

			results[i], produced[i] = tx, ok
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("enriching block %s: %w", blockHash, err)
	}

	transactions := make([]Transaction, 0, len(results))
	for i, tx := range results {
		if produced[i] {
			transactions = append(transactions, tx)
		}
	}

	return transactions, nil
}
