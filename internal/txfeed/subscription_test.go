package txfeed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscriptionTable(t *testing.T) {
	s := New(stubGateway{}, nil)

	t.Run("binds transactions to the hashblock topic", func(t *testing.T) {
		sub, err := s.subscriptions.lookup(SubscriptionTransactions)
		require.NoError(t, err)
		assert.Equal(t, SubscriptionTransactions, sub.name)
		assert.Equal(t, TopicHashBlock, sub.topic)
		assert.NotNil(t, sub.handler)
	})

	t.Run("fails closed for unknown names", func(t *testing.T) {
		_, err := s.subscriptions.lookup("bogus")
		assert.ErrorIs(t, err, ErrInvalidSubscription)
		assert.Contains(t, err.Error(), `"bogus"`)
	})

	t.Run("is case sensitive", func(t *testing.T) {
		_, err := s.subscriptions.lookup("Transactions")
		assert.ErrorIs(t, err, ErrInvalidSubscription)
	})
}

func TestNew(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		s := New(stubGateway{}, nil)

		assert.Equal(t, DefaultCurrencySymbol, s.currencySymbol)
		assert.Equal(t, defaultMaxInFlight, s.maxInFlight)
		assert.Equal(t, defaultMaxConcurrentLookups, s.maxLookups)
		assert.NotNil(t, s.tracer)
	})

	t.Run("applies options", func(t *testing.T) {
		s := New(stubGateway{}, nil, WithCurrencySymbol("LTC"), WithMaxInFlight(4), WithMaxConcurrentLookups(2))

		assert.Equal(t, "LTC", s.currencySymbol)
		assert.Equal(t, 4, s.maxInFlight)
		assert.Equal(t, 2, s.maxLookups)
	})

	t.Run("ignores invalid option values", func(t *testing.T) {
		s := New(stubGateway{}, nil, WithCurrencySymbol(""), WithMaxInFlight(0), WithMaxConcurrentLookups(-1))

		assert.Equal(t, DefaultCurrencySymbol, s.currencySymbol)
		assert.Equal(t, 1, s.maxInFlight)
		assert.Equal(t, 1, s.maxLookups)
	})
}
