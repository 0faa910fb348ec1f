package env

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/code-payments/favorites-action/pkg/config"
)

func TestConfig(t *testing.T) {
	const key = "ENV_CONFIG_TEST_VAR"

	t.Setenv(key, "value")
	v, err := NewConfig(key).Get(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, []byte("value"), v)

	// Keys are upper cased
	v, err = NewConfig("env_config_test_var").Get(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, []byte("value"), v)

	t.Setenv(key, "")
	v, err = NewConfig(key).Get(context.Background())
	assert.Nil(t, v)
	assert.Equal(t, config.ErrNoValue, err)
}

func TestTypedConfigs(t *testing.T) {
	ctx := context.Background()

	t.Setenv("ENV_CONFIG_TEST_BOOL", "false")
	t.Setenv("ENV_CONFIG_TEST_STRING", "devnet")
	t.Setenv("ENV_CONFIG_TEST_DURATION", "250ms")

	assert.False(t, NewBoolConfig("ENV_CONFIG_TEST_BOOL", true).Get(ctx))
	assert.Equal(t, "devnet", NewStringConfig("ENV_CONFIG_TEST_STRING", "").Get(ctx))
	assert.Equal(t, 250*time.Millisecond, NewDurationConfig("ENV_CONFIG_TEST_DURATION", time.Second).Get(ctx))

	assert.True(t, NewBoolConfig("ENV_CONFIG_TEST_UNSET", true).Get(ctx))
	assert.Equal(t, "default", NewStringConfig("ENV_CONFIG_TEST_UNSET", "default").Get(ctx))
	assert.Equal(t, time.Second, NewDurationConfig("ENV_CONFIG_TEST_UNSET", time.Second).Get(ctx))
}
