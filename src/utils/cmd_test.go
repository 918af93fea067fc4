package utils

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jiaming2012/longport-trade/src/config"
)

func newTestCommand(t *testing.T) *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	AddConfigFlags(cmd)
	require.NoError(t, cmd.ParseFlags([]string{"--env-dir", t.TempDir()}))

	return cmd
}

func clearEnv(t *testing.T) {
	for _, key := range []string{
		"ENV",
		config.EnvAppKey,
		config.EnvAppSecret,
		config.EnvAccessToken,
		config.EnvHttpURL,
		config.EnvLanguage,
		config.EnvTimeout,
		config.EnvReadOnly,
		config.EnvLogLevel,
		config.EnvOtelEndpoint,
	} {
		t.Setenv(key, "")
	}
}

func TestSetupTradeContext(t *testing.T) {
	ctx := context.Background()

	t.Run("missing credentials", func(t *testing.T) {
		clearEnv(t)

		tradeCtx, shutdown, err := SetupTradeContext(ctx, newTestCommand(t), "test")
		assert.True(t, errors.Is(err, config.ErrMissingEnv))
		assert.Nil(t, tradeCtx)
		assert.Nil(t, shutdown)
	})

	t.Run("opens a trade context", func(t *testing.T) {
		clearEnv(t)
		t.Setenv(config.EnvAppKey, "key")
		t.Setenv(config.EnvAppSecret, "secret")
		t.Setenv(config.EnvAccessToken, "token")

		tradeCtx, shutdown, err := SetupTradeContext(ctx, newTestCommand(t), "test")
		require.NoError(t, err)
		assert.NotNil(t, tradeCtx)
		assert.NoError(t, shutdown(ctx))
	})
}

func TestShutdownTelemetry(t *testing.T) {
	hook := test.NewGlobal()
	defer hook.Reset()

	ShutdownTelemetry(context.Background(), func(context.Context) error {
		return errors.New("flush failed")
	})

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Contains(t, entry.Message, "flush failed")

	hook.Reset()
	ShutdownTelemetry(context.Background(), func(context.Context) error { return nil })
	assert.Nil(t, hook.LastEntry())
}
