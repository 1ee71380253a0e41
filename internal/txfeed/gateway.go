package txfeed

import (
	"context"
	"errors"
)

// MaxVerbosity is the block verbosity requested from the node. At this level
// the node embeds fully decoded transactions in the block payload.
const MaxVerbosity = 2

var (
	// ErrInvalidSubscription is returned by Subscribe when the subscription
	// name is not part of the supported subscription table.
	ErrInvalidSubscription = errors.New("invalid subscription")

	// ErrTransactionNotFound is returned by a Gateway when the node has no
	// wallet-relevant record of a transaction. It is an expected outcome and
	// never reaches subscription consumers.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrTransport marks any other gateway failure: timeouts, connection and
	// protocol errors, and responses that cannot be decoded.
	ErrTransport = errors.New("transport error")

	// ErrInvalidNotification is returned when a notification payload cannot be
	// interpreted by the handler bound to its topic.
	ErrInvalidNotification = errors.New("invalid notification payload")
)

// Gateway exposes the node lookups the pipeline depends on.
//
// Implementations are shared by every concurrent enrichment and must be safe
// for concurrent use.
type Gateway interface {
	// GetBlock fetches the block identified by hash at the given verbosity.
	// Failures are reported wrapped with ErrTransport.
	GetBlock(ctx context.Context, hash string, verbosity int) (Block, error)

	// GetTransaction looks up the wallet detail of a transaction.
	//
	// It returns ErrTransactionNotFound when the node does not know the
	// transaction (e.g., it does not belong to the wallet), and an error
	// wrapping ErrTransport for every other failure.
	GetTransaction(ctx context.Context, txid string) (TransactionDetail, error)
}

// Notification is a raw message received from the node's pub/sub feed.
type Notification struct {
	Topic   string // Topic the payload was published on (e.g., "hashblock")
	Payload []byte // Opaque, topic-specific payload
	Err     error  // Transport failure reported by the source, nil otherwise
}

// NotificationSource produces the raw notification feed for a topic.
type NotificationSource interface {
	// Subscribe opens a subscription to topic. The returned channel is lazy,
	// unbounded and non-restartable; it is closed when ctx is canceled or the
	// underlying connection ends for good. Reconnection is the source's concern.
	Subscribe(ctx context.Context, topic string) (<-chan Notification, error)
}
