package zmq

import (
	"context"
	"encoding/binary"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/gabapcia/txfeed/internal/pkg/resilience/retry"
	"github.com/gabapcia/txfeed/internal/txfeed"

	"github.com/go-zeromq/zmq4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errSocketClosed = errors.New("socket closed")

// fakeSocket is an in-memory SUB socket. Messages written to msgs are
// returned by Recv; closing msgs makes Recv fail with io.EOF.
type fakeSocket struct {
	zmq4.Socket

	dialErr    error
	msgs       chan zmq4.Msg
	closed     chan struct{}
	closeOnce  sync.Once
	endpoint   string
	subscribed []string
}

func newFakeSocket(dialErr error) *fakeSocket {
	return &fakeSocket{
		dialErr: dialErr,
		msgs:    make(chan zmq4.Msg, 8),
		closed:  make(chan struct{}),
	}
}

func (f *fakeSocket) Dial(ep string) error {
	f.endpoint = ep
	return f.dialErr
}

func (f *fakeSocket) SetOption(name string, value any) error {
	if name == zmq4.OptionSubscribe {
		f.subscribed = append(f.subscribed, value.(string))
	}
	return nil
}

func (f *fakeSocket) Recv() (zmq4.Msg, error) {
	select {
	case msg, ok := <-f.msgs:
		if !ok {
			return zmq4.Msg{}, io.EOF
		}
		return msg, nil
	case <-f.closed:
		return zmq4.Msg{}, errSocketClosed
	}
}

func (f *fakeSocket) Close() error {
	f.closeOnce.Do(func() { close(f.closed) })
	return nil
}

// sequentialFactory hands out sockets in order. It fails the test when more
// sockets are requested than provided.
func sequentialFactory(t *testing.T, sockets ...*fakeSocket) socketFactory {
	var (
		mu   sync.Mutex
		next int
	)
	return func(ctx context.Context, opts ...zmq4.Option) zmq4.Socket {
		mu.Lock()
		defer mu.Unlock()

		require.Less(t, next, len(sockets), "unexpected socket request")
		sock := sockets[next]
		next++
		return sock
	}
}

func newTestSource(t *testing.T, opts []Option, sockets ...*fakeSocket) *source {
	opts = append([]Option{
		WithRetry(retry.New(retry.WithAttempts(2), retry.WithDelay(time.Millisecond))),
	}, opts...)

	s := NewSource("tcp://127.0.0.1:28332", opts...)
	s.newSocket = sequentialFactory(t, sockets...)
	return s
}

func hashblockMsg(body []byte, seq uint32) zmq4.Msg {
	seqFrame := make([]byte, sequenceFrameSize)
	binary.LittleEndian.PutUint32(seqFrame, seq)
	return zmq4.NewMsgFrom([]byte(txfeed.TopicHashBlock), body, seqFrame)
}

func receive(t *testing.T, ch <-chan txfeed.Notification) txfeed.Notification {
	t.Helper()
	select {
	case n, ok := <-ch:
		require.True(t, ok, "notification channel closed")
		return n
	case <-time.After(time.Second):
		require.FailNow(t, "timed out waiting for a notification")
		return txfeed.Notification{}
	}
}

func TestNewSource(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		s := NewSource("tcp://127.0.0.1:28332")

		assert.Equal(t, "tcp://127.0.0.1:28332", s.endpoint)
		assert.Equal(t, 10*time.Second, s.dialTimeout)
		assert.Zero(t, s.msgTimeout)
		assert.NotNil(t, s.retry)
		assert.NotNil(t, s.newSocket)
	})

	t.Run("applies options", func(t *testing.T) {
		s := NewSource("tcp://127.0.0.1:28332", WithDialTimeout(time.Second), WithMessageTimeout(time.Minute))

		assert.Equal(t, time.Second, s.dialTimeout)
		assert.Equal(t, time.Minute, s.msgTimeout)
	})
}

func TestSubscribe(t *testing.T) {
	t.Run("forwards payloads of the subscribed topic in order", func(t *testing.T) {
		sock := newFakeSocket(nil)
		s := newTestSource(t, nil, sock)

		ch, err := s.Subscribe(t.Context(), txfeed.TopicHashBlock)
		require.NoError(t, err)
		assert.Equal(t, "tcp://127.0.0.1:28332", sock.endpoint)
		assert.Equal(t, []string{txfeed.TopicHashBlock}, sock.subscribed)

		first := make([]byte, 32)
		second := make([]byte, 32)
		second[0] = 0xff
		sock.msgs <- hashblockMsg(first, 1)
		sock.msgs <- hashblockMsg(second, 2)

		n := receive(t, ch)
		assert.Equal(t, txfeed.TopicHashBlock, n.Topic)
		assert.Equal(t, first, n.Payload)
		assert.NoError(t, n.Err)

		assert.Equal(t, second, receive(t, ch).Payload)
	})

	t.Run("drops messages of other topics", func(t *testing.T) {
		sock := newFakeSocket(nil)
		s := newTestSource(t, nil, sock)

		ch, err := s.Subscribe(t.Context(), txfeed.TopicHashBlock)
		require.NoError(t, err)

		sock.msgs <- zmq4.NewMsgFrom([]byte("rawtx"), []byte{0x01})
		sock.msgs <- zmq4.NewMsgFrom([]byte(txfeed.TopicHashBlock))
		sock.msgs <- hashblockMsg([]byte{0x02}, 7)

		assert.Equal(t, []byte{0x02}, receive(t, ch).Payload)
	})

	t.Run("retries the initial dial", func(t *testing.T) {
		failing := newFakeSocket(errors.New("connection refused"))
		working := newFakeSocket(nil)
		s := newTestSource(t, nil, failing, working)

		_, err := s.Subscribe(t.Context(), txfeed.TopicHashBlock)
		require.NoError(t, err)
		assert.Equal(t, []string{txfeed.TopicHashBlock}, working.subscribed)
	})

	t.Run("returns an error when every dial attempt fails", func(t *testing.T) {
		dialErr := errors.New("connection refused")
		s := newTestSource(t, nil, newFakeSocket(dialErr), newFakeSocket(dialErr))

		ch, err := s.Subscribe(t.Context(), txfeed.TopicHashBlock)
		assert.Nil(t, ch)
		assert.ErrorIs(t, err, dialErr)
	})

	t.Run("reports message timeouts and keeps the feed open", func(t *testing.T) {
		sock := newFakeSocket(nil)
		s := newTestSource(t, []Option{WithMessageTimeout(10 * time.Millisecond)}, sock)

		ch, err := s.Subscribe(t.Context(), txfeed.TopicHashBlock)
		require.NoError(t, err)

		n := receive(t, ch)
		assert.ErrorIs(t, n.Err, ErrMessageTimeout)
		assert.Equal(t, txfeed.TopicHashBlock, n.Topic)

		sock.msgs <- hashblockMsg([]byte{0x03}, 1)
		for {
			n = receive(t, ch)
			if n.Err == nil {
				break
			}
		}
		assert.Equal(t, []byte{0x03}, n.Payload)
	})

	t.Run("reports receive failures and reconnects", func(t *testing.T) {
		first := newFakeSocket(nil)
		second := newFakeSocket(nil)
		s := newTestSource(t, nil, first, second)

		ch, err := s.Subscribe(t.Context(), txfeed.TopicHashBlock)
		require.NoError(t, err)

		close(first.msgs)

		n := receive(t, ch)
		assert.ErrorIs(t, n.Err, io.EOF)

		second.msgs <- hashblockMsg([]byte{0x04}, 1)
		assert.Equal(t, []byte{0x04}, receive(t, ch).Payload)
		assert.Equal(t, []string{txfeed.TopicHashBlock}, second.subscribed)
	})

	t.Run("closes the feed when reconnection fails", func(t *testing.T) {
		dialErr := errors.New("connection refused")
		first := newFakeSocket(nil)
		s := newTestSource(t, nil, first, newFakeSocket(dialErr), newFakeSocket(dialErr))

		ch, err := s.Subscribe(t.Context(), txfeed.TopicHashBlock)
		require.NoError(t, err)

		close(first.msgs)

		assert.ErrorIs(t, receive(t, ch).Err, io.EOF)
		assert.ErrorIs(t, receive(t, ch).Err, dialErr)

		_, ok := <-ch
		assert.False(t, ok)
	})

	t.Run("closes the feed and the socket when the context is canceled", func(t *testing.T) {
		sock := newFakeSocket(nil)
		s := newTestSource(t, nil, sock)

		ctx, cancel := context.WithCancel(t.Context())
		ch, err := s.Subscribe(ctx, txfeed.TopicHashBlock)
		require.NoError(t, err)

		cancel()

		select {
		case _, ok := <-ch:
			assert.False(t, ok)
		case <-time.After(time.Second):
			require.FailNow(t, "feed was not closed")
		}

		select {
		case <-sock.closed:
		case <-time.After(time.Second):
			require.FailNow(t, "socket was not closed")
		}
	})
}

func TestSequence(t *testing.T) {
	t.Run("reports no gap for the first and consecutive numbers", func(t *testing.T) {
		var seq sequence
		assert.Zero(t, seq.observe(41))
		assert.Zero(t, seq.observe(42))
	})

	t.Run("reports the number of skipped messages", func(t *testing.T) {
		var seq sequence
		seq.observe(1)
		assert.Equal(t, uint32(3), seq.observe(5))
	})

	t.Run("handles counter wrap-around", func(t *testing.T) {
		var seq sequence
		seq.observe(^uint32(0))
		assert.Zero(t, seq.observe(0))
	})
}
