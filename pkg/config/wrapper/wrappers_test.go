package wrapper

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/code-payments/favorites-action/pkg/config"
	"github.com/code-payments/favorites-action/pkg/config/memory"
)

// testTypedConfig walks a wrapped config through default, override, induced
// error, cleared and unconvertible states.
func testTypedConfig[T any](t *testing.T, newConfig func(config.Config, T) config.Typed[T], defaultValue, overridden T, raw interface{}) {
	ctx := context.Background()
	source := memory.NewConfig(nil)
	wrapped := newConfig(source, defaultValue)

	val, err := wrapped.GetSafe(ctx)
	require.NoError(t, err)
	assert.Equal(t, defaultValue, val)
	assert.Equal(t, defaultValue, wrapped.Get(ctx))

	source.SetValue(raw)
	val, err = wrapped.GetSafe(ctx)
	require.NoError(t, err)
	assert.Equal(t, overridden, val)
	assert.Equal(t, overridden, wrapped.Get(ctx))

	// Last observed value on error
	source.InduceErrors()
	val, err = wrapped.GetSafe(ctx)
	require.Error(t, err)
	assert.Equal(t, overridden, val)
	assert.Equal(t, overridden, wrapped.Get(ctx))

	source.StopInducingErrors()
	source.ClearValue()
	val, err = wrapped.GetSafe(ctx)
	require.NoError(t, err)
	assert.Equal(t, defaultValue, val)

	source.SetValue(struct{}{})
	val, err = wrapped.GetSafe(ctx)
	assert.Equal(t, ErrUnsuportedConversion, err)
	assert.Equal(t, defaultValue, val)

	wrapped.Shutdown()
	_, err = wrapped.GetSafe(ctx)
	assert.Equal(t, config.ErrShutdown, err)
}

func TestBoolConfig(t *testing.T) {
	testTypedConfig(t, NewBoolConfig, true, false, false)
	testTypedConfig(t, NewBoolConfig, true, false, []byte("false"))

	source := memory.NewConfig([]byte("not a bool"))
	val, err := NewBoolConfig(source, true).GetSafe(context.Background())
	assert.Error(t, err)
	assert.True(t, val)
}

func TestStringConfig(t *testing.T) {
	testTypedConfig(t, NewStringConfig, "default", "override", "override")
	testTypedConfig(t, NewStringConfig, "default", "override", []byte("override"))
}

func TestDurationConfig(t *testing.T) {
	testTypedConfig(t, NewDurationConfig, time.Second, time.Minute, time.Minute)
	testTypedConfig(t, NewDurationConfig, time.Second, 1500*time.Millisecond, []byte("1.5s"))

	source := memory.NewConfig([]byte("ten seconds"))
	val, err := NewDurationConfig(source, time.Second).GetSafe(context.Background())
	assert.Error(t, err)
	assert.Equal(t, time.Second, val)
}
