package bitcoin

import (
	"context"

	"github.com/gabapcia/txfeed/internal/txfeed"

	"github.com/shopspring/decimal"
)

type (
	// DetailResponse is a single entry of the gettransaction details array.
	DetailResponse struct {
		Address  string          `json:"address"`
		Category string          `json:"category"`
		Amount   decimal.Decimal `json:"amount"`
		Vout     int             `json:"vout"`
	}

	// WalletTransactionResponse is the gettransaction result. Amounts are decoded
	// from the JSON text.
	WalletTransactionResponse struct {
		Amount        decimal.Decimal  `json:"amount"`
		Fee           *decimal.Decimal `json:"fee"`
		Confirmations int64            `json:"confirmations"`
		BlockHash     string           `json:"blockhash"`
		TxID          string           `json:"txid"`
		Details       []DetailResponse `json:"details"`
	}
)

func (t WalletTransactionResponse) toTransactionDetail() txfeed.TransactionDetail {
	details := make([]txfeed.DetailEntry, len(t.Details))
	for i, d := range t.Details {
		details[i] = txfeed.DetailEntry{
			Address:  d.Address,
			Category: d.Category,
		}
	}

	return txfeed.TransactionDetail{
		Amount:  t.Amount,
		Fee:     t.Fee,
		Details: details,
	}
}

// GetTransaction implements txfeed.Gateway using gettransaction.
func (c *client) GetTransaction(ctx context.Context, txid string) (txfeed.TransactionDetail, error) {
	data, err := c.conn.Fetch(ctx, "gettransaction", txid)
	switch {
	case isNotFound(err):
		return txfeed.TransactionDetail{}, txfeed.ErrTransactionNotFound
	case err != nil:
		return txfeed.TransactionDetail{}, transportError(err)
	}

	resp, err := decode[WalletTransactionResponse](data)
	if err != nil {
		return txfeed.TransactionDetail{}, err
	}

	return resp.toTransactionDetail(), nil
}
