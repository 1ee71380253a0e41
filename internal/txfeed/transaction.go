package txfeed

import "github.com/shopspring/decimal"

// TransactionType classifies the wallet's role in a transaction.
//
// The node defines the category vocabulary; TypeReceive, TypeSend and
// TypeInternal are the values this package produces or expects most often,
// but any other single category reported by the node is carried verbatim.
type TransactionType string

const (
	TypeReceive  TransactionType = "receive"
	TypeSend     TransactionType = "send"
	TypeInternal TransactionType = "internal"
)

// Transaction is the canonical, wallet-relevant transaction record delivered
// to downstream consumers. Its JSON form is a durable contract and must stay
// field-stable.
type Transaction struct {
	Currency    string          `json:"currency"`     // Currency symbol configured for this instance (e.g., "BTC")
	Hash        string          `json:"hash"`         // Node-assigned transaction id
	Block       uint64          `json:"block"`        // Height of the containing block
	From        string          `json:"from"`         // Source address; not resolvable at this stage, always empty
	To          []string        `json:"to"`           // Distinct destination addresses
	Amount      decimal.Decimal `json:"amount"`       // Amount as reported by the node
	Fee         decimal.Decimal `json:"fee"`          // Fee as reported by the node, zero when absent
	FeeCurrency string          `json:"fee_currency"` // Always equal to Currency
	Type        TransactionType `json:"type"`         // receive, send, internal or the sole node category
}

// TransactionEvent is a single element of a subscription stream.
//
// Exactly one of Transaction or Err is meaningful: when Err is non-nil the
// notification that produced the event failed and Transaction is the zero value.
type TransactionEvent struct {
	Transaction Transaction
	Err         error
}

// RawBlockTransaction is the subset of a block's embedded transaction used by
// the pipeline. BlockHeight is not part of the node payload: it is copied from
// the containing block before enrichment.
type RawBlockTransaction struct {
	TxID        string // Node-assigned transaction id
	BlockHeight uint64 // Height of the block that contains the transaction
}

// Block is a block fetched from the node at maximum verbosity.
type Block struct {
	Hash         string                // Block hash
	Height       uint64                // Block height
	Transactions []RawBlockTransaction // Embedded transactions, in block order
}

// DetailEntry is a single {address, category} movement reported by the node
// for a wallet transaction.
type DetailEntry struct {
	Address  string
	Category string
}

// TransactionDetail is the result of a wallet transaction lookup.
//
// A single transaction may carry several entries when it pays multiple
// addresses or when the wallet both sends and receives within it.
type TransactionDetail struct {
	Amount  decimal.Decimal  // Net amount for the wallet
	Fee     *decimal.Decimal // Fee paid, nil when the node omits it
	Details []DetailEntry    // Ordered detail entries
}
