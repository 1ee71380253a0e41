package txfeed

import (
	"context"
	"errors"
	"fmt"

	"github.com/gabapcia/txfeed/internal/pkg/logger"
	"github.com/gabapcia/txfeed/internal/pkg/types"

	"github.com/shopspring/decimal"
)

// classify derives the transaction type from the distinct categories found in
// its detail entries: more than one category means the wallet is on both sides
// (internal); a single category is reported verbatim.
func classify(categories types.Set[string]) TransactionType {
	switch len(categories) {
	case 0:
		return ""
	case 1:
		for category := range categories.ToIter() {
			return TransactionType(category)
		}
	}

	return TypeInternal
}

// buildTransaction aggregates an enriched lookup into the canonical record.
// Addresses are deduplicated and sorted so that equal inputs always produce
// equal records.
func (s *service) buildTransaction(raw RawBlockTransaction, detail TransactionDetail) Transaction {
	var (
		addresses  = types.NewSet[string]()
		categories = types.NewSet[string]()
	)
	for _, entry := range detail.Details {
		if entry.Address != "" {
			addresses.Add(entry.Address)
		}
		categories.Add(entry.Category)
	}

	fee := decimal.Zero
	if detail.Fee != nil {
		fee = *detail.Fee
	}

	return Transaction{
		Currency:    s.currencySymbol,
		Hash:        raw.TxID,
		Block:       raw.BlockHeight,
		To:          types.Sorted(addresses),
		Amount:      detail.Amount,
		Fee:         fee,
		FeeCurrency: s.currencySymbol,
		Type:        classify(categories),
	}
}

// transform enriches a single block transaction.
//
// The boolean result reports whether a Transaction was produced. A lookup
// answered with ErrTransactionNotFound is an expected outcome: transform
// returns (zero, false, nil) and the transaction is skipped. Any other lookup
// failure is returned to the caller.
func (s *service) transform(ctx context.Context, raw RawBlockTransaction) (Transaction, bool, error) {
	detail, err := s.gateway.GetTransaction(ctx, raw.TxID)
	switch {
	case errors.Is(err, ErrTransactionNotFound):
		s.metrics.skipped.Add(ctx, 1)
		logger.Debug(ctx, "transaction not found, skipping",
			"tx.id", raw.TxID,
			"block.height", raw.BlockHeight,
		)
		return Transaction{}, false, nil
	case err != nil:
		return Transaction{}, false, fmt.Errorf("looking up transaction %s: %w", raw.TxID, err)
	}

	s.metrics.emitted.Add(ctx, 1)
	return s.buildTransaction(raw, detail), true, nil
}
