package txfeed

import (
	"context"
	"fmt"
	"maps"
	"slices"
)

const (
	// SubscriptionTransactions streams every wallet transaction contained in
	// newly validated blocks.
	SubscriptionTransactions = "transactions"

	// TopicHashBlock is the node topic announcing the hash of each new block.
	TopicHashBlock = "hashblock"
)

// notificationHandler turns the payload of a single notification into zero or
// more transactions.
type notificationHandler func(ctx context.Context, payload []byte) ([]Transaction, error)

// subscription binds a public subscription name to a node topic and the
// handler that understands that topic's payloads.
type subscription struct {
	name    string
	topic   string
	handler notificationHandler
}

// subscriptionTable is the fixed set of supported subscriptions, keyed by name.
type subscriptionTable map[string]subscription

// newSubscriptionTable builds the subscription table bound to s. New topic
// handlers are registered here.
func (s *service) newSubscriptionTable() subscriptionTable {
	return subscriptionTable{
		SubscriptionTransactions: {
			name:    SubscriptionTransactions,
			topic:   TopicHashBlock,
			handler: s.handleBlockHash,
		},
	}
}

// lookup returns the subscription registered under name, or an error wrapping
// ErrInvalidSubscription.
func (t subscriptionTable) lookup(name string) (subscription, error) {
	sub, ok := t[name]
	if !ok {
		return subscription{}, fmt.Errorf("%w: %q", ErrInvalidSubscription, name)
	}

	return sub, nil
}

// handleBlockHash is the hashblock handler.
func (s *service) handleBlockHash(ctx context.Context, payload []byte) ([]Transaction, error) {
	blockHash, err := blockHashFromPayload(payload)
	if err != nil {
		return nil, err
	}

	return s.ingestBlock(ctx, blockHash)
}

// Subscriptions implements the Service interface.
func (s *service) Subscriptions() []string {
	return slices.Sorted(maps.Keys(s.subscriptions))
}
