package clustererrors_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	clustererrors "github.com/ziyotek-edu/devsecops-portfolio-template/pkg/svc/provisioner/cluster/errors"
)

func TestErrClusterNotFoundMessage(t *testing.T) {
	t.Parallel()

	assert.Contains(t, clustererrors.ErrClusterNotFound.Error(), "cluster not found")
}

func TestErrClusterNotFoundMatchesWrapped(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("%w: demo", clustererrors.ErrClusterNotFound)

	require.True(t, errors.Is(wrapped, clustererrors.ErrClusterNotFound))
}
