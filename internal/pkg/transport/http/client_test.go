package http

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	t.Run("uses default configuration when no options are provided", func(t *testing.T) {
		client := NewClient()

		require.NotNil(t, client)
		assert.Equal(t, 5*time.Second, client.HTTPClient.Timeout)
		assert.Equal(t, 1*time.Second, client.RetryWaitMin)
		assert.Equal(t, 5*time.Second, client.RetryWaitMax)
		assert.Equal(t, 2, client.RetryMax)
	})

	t.Run("applies provided options", func(t *testing.T) {
		client := NewClient(
			WithTimeout(10*time.Second),
			WithRetryWaitMin(200*time.Millisecond),
			WithRetryWaitMax(10*time.Second),
			WithRetryMax(5),
		)

		assert.Equal(t, 10*time.Second, client.HTTPClient.Timeout)
		assert.Equal(t, 200*time.Millisecond, client.RetryWaitMin)
		assert.Equal(t, 10*time.Second, client.RetryWaitMax)
		assert.Equal(t, 5, client.RetryMax)
	})
}

func TestRetryPolicy(t *testing.T) {
	newServer := func(status int, calls *atomic.Int32) *httptest.Server {
		return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(status)
		}))
	}

	fastClient := func() *http.Client {
		return NewClient(
			WithRetryMax(2),
			WithRetryWaitMin(time.Millisecond),
			WithRetryWaitMax(2*time.Millisecond),
		).StandardClient()
	}

	t.Run("does not retry internal server errors", func(t *testing.T) {
		var calls atomic.Int32
		server := newServer(http.StatusInternalServerError, &calls)
		defer server.Close()

		res, err := fastClient().Get(server.URL)
		require.NoError(t, err)
		defer res.Body.Close()

		assert.Equal(t, http.StatusInternalServerError, res.StatusCode)
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("retries unavailable responses and returns the last one", func(t *testing.T) {
		var calls atomic.Int32
		server := newServer(http.StatusServiceUnavailable, &calls)
		defer server.Close()

		res, err := fastClient().Get(server.URL)
		require.NoError(t, err)
		defer res.Body.Close()

		assert.Equal(t, http.StatusServiceUnavailable, res.StatusCode)
		assert.Equal(t, int32(3), calls.Load())
	})
}
