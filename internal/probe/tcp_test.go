package probe

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CoreMedia/joala-sub001/pkg/condition"
	"github.com/CoreMedia/joala-sub001/pkg/description"
)

func TestTCP_Get(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer listener.Close()
	go func() {
		for {
			conn, err := listener.Accept()
			if err != nil {
				return
			}
			conn.Close()
		}
	}()

	addr := listener.Addr().String()
	expr := TCP(nil, addr)
	got, err := expr.Get(context.Background())

	require.NoError(t, err)
	assert.Equal(t, addr, got)
	assert.Equal(t, "tcp://"+addr, description.ToString(expr))
}

func TestTCP_RefusedIsRecoverable(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	_, err = TCP(&net.Dialer{}, addr).Get(context.Background())

	require.Error(t, err)
	assert.True(t, condition.IsEvaluationError(err))
	assert.Contains(t, err.Error(), "connect "+addr)
}

func TestTCP_CancelledContextIsFatal(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := TCP(nil, "127.0.0.1:1").Get(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, condition.IsEvaluationError(err))
}
