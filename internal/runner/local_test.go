package runner

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocal_Run_Success(t *testing.T) {
	t.Parallel()
	l := NewLocal()

	output, code, err := l.Run(context.Background(), "echo hello")

	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, "hello\n", output)
}

func TestLocal_Run_NonZeroExit(t *testing.T) {
	t.Parallel()
	l := NewLocal()

	output, code, err := l.Run(context.Background(), "echo oops >&2; exit 3")

	require.NoError(t, err, "non-zero exit is not a transport error")
	assert.Equal(t, 3, code)
	assert.Equal(t, "oops\n", output)
}

func TestLocal_Run_CombinedOutput(t *testing.T) {
	t.Parallel()
	l := NewLocal()

	output, code, err := l.Run(context.Background(), "echo out; echo err >&2")

	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Contains(t, output, "out")
	assert.Contains(t, output, "err")
}

func TestLocal_Run_ContextCancelled(t *testing.T) {
	t.Parallel()
	l := NewLocal()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, code, err := l.Run(ctx, "sleep 10")
	if err == nil {
		assert.NotEqual(t, 0, code, "a cancelled command must not report success")
	}
}
