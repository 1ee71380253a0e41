// Package bitcoin implements txfeed.Gateway for bitcoind-compatible nodes
// using their JSON-RPC interface.
package bitcoin

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gabapcia/txfeed/internal/pkg/transport/jsonrpc"
	"github.com/gabapcia/txfeed/internal/txfeed"
)

// codeInvalidAddressOrKey is RPC_INVALID_ADDRESS_OR_KEY. gettransaction
// answers with it when the txid is not a wallet transaction.
const codeInvalidAddressOrKey = -5

// client implements txfeed.Gateway for bitcoind.
type client struct {
	conn jsonrpc.Client // JSON-RPC connection to the node
}

// Ensure client implements the txfeed.Gateway interface at compile time.
var _ txfeed.Gateway = (*client)(nil)

// NewClient creates a bitcoind gateway over conn.
func NewClient(conn jsonrpc.Client) *client {
	return &client{
		conn: conn,
	}
}

// transportError marks err as a transport failure.
func transportError(err error) error {
	return fmt.Errorf("%w: %w", txfeed.ErrTransport, err)
}

// isNotFound reports whether err is the node's not-found answer.
func isNotFound(err error) bool {
	var providerErr *jsonrpc.ProviderError
	return errors.As(err, &providerErr) && providerErr.Code == codeInvalidAddressOrKey
}

// errEmptyResult is returned when a call succeeds without a result.
var errEmptyResult = errors.New("empty result")

// decode unmarshals a result payload. Decoding failures, including a missing
// or null result, are transport errors.
func decode[T any](data json.RawMessage) (T, error) {
	var v T
	if trimmed := bytes.TrimSpace(data); len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return v, transportError(fmt.Errorf("decoding response: %w", errEmptyResult))
	}

	if err := json.Unmarshal(data, &v); err != nil {
		return v, transportError(fmt.Errorf("decoding response: %w", err))
	}

	return v, nil
}
