package creds

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// blockingSecretReader hangs until its context is cancelled, emulating an
// unresponsive backend.
type blockingSecretReader struct{}

func (blockingSecretReader) GetSecret(ctx context.Context, _, _ string) (map[string]string, error) {
	<-ctx.Done()

	return nil, ctx.Err()
}

func TestVaultSourceTimesOutOnHungBackend(t *testing.T) {
	t.Parallel()

	source := &VaultSource{
		reader:  blockingSecretReader{},
		timeout: 50 * time.Millisecond,
	}

	start := time.Now()
	_, ok := source.TryRead(context.Background())
	elapsed := time.Since(start)

	assert.False(t, ok)
	assert.Less(t, elapsed, time.Second, "a hung backend must not delay resolution past its timeout")
}

func TestVaultSourceDefaultTimeoutBoundsResolution(t *testing.T) {
	t.Parallel()

	source := NewVaultSource(blockingSecretReader{})

	assert.Equal(t, resolveTimeout, source.timeout)
}
