package di_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ziyotek-edu/devsecops-portfolio-template/pkg/di"
)

func TestInvokeRunsHandler(t *testing.T) {
	t.Parallel()

	runtime := di.New()
	ran := false

	err := runtime.Invoke(func(di.Injector) error {
		ran = true

		return nil
	})

	require.NoError(t, err)
	assert.True(t, ran)
}

func TestInvokeStopsOnModuleError(t *testing.T) {
	t.Parallel()

	moduleErr := errors.New("module failed")
	runtime := di.New(func(di.Injector) error { return moduleErr })
	ran := false

	err := runtime.Invoke(func(di.Injector) error {
		ran = true

		return nil
	})

	require.ErrorIs(t, err, moduleErr)
	assert.False(t, ran)
}

func TestInvokePropagatesHandlerError(t *testing.T) {
	t.Parallel()

	handlerErr := errors.New("handler failed")
	runtime := di.New(di.DefaultModule)

	err := runtime.Invoke(func(di.Injector) error { return handlerErr })

	require.ErrorIs(t, err, handlerErr)
}
