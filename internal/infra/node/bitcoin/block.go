package bitcoin

import (
	"context"

	"github.com/gabapcia/txfeed/internal/txfeed"
)

type (
	// TransactionResponse is the part of a decoded block transaction that the
	// gateway reads.
	TransactionResponse struct {
		TxID string `json:"txid"`
		Hash string `json:"hash"`
	}

	// BlockResponse is the getblock result at verbosity 2.
	BlockResponse struct {
		Hash              string                `json:"hash"`
		Confirmations     int64                 `json:"confirmations"`
		Height            uint64                `json:"height"`
		Time              int64                 `json:"time"`
		PreviousBlockHash string                `json:"previousblockhash"`
		Transactions      []TransactionResponse `json:"tx"`
	}
)

func (b BlockResponse) toBlock() txfeed.Block {
	transactions := make([]txfeed.RawBlockTransaction, len(b.Transactions))
	for i, tx := range b.Transactions {
		transactions[i] = txfeed.RawBlockTransaction{TxID: tx.TxID}
	}

	return txfeed.Block{
		Hash:         b.Hash,
		Height:       b.Height,
		Transactions: transactions,
	}
}

// GetBlock implements txfeed.Gateway using getblock.
func (c *client) GetBlock(ctx context.Context, hash string, verbosity int) (txfeed.Block, error) {
	data, err := c.conn.Fetch(ctx, "getblock", hash, verbosity)
	if err != nil {
		return txfeed.Block{}, transportError(err)
	}

	resp, err := decode[BlockResponse](data)
	if err != nil {
		return txfeed.Block{}, err
	}

	return resp.toBlock(), nil
}
