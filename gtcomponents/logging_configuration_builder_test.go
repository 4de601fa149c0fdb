package gtcomponents

import (
	"testing"

	"github.com/gametime/go-constants-sdk/subsystems"

	"github.com/launchdarkly/go-sdk-common/v3/ldlog"
	"github.com/launchdarkly/go-sdk-common/v3/ldlogtest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingConfigurationBuilder(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		c, err := Logging().Build(subsystems.BasicClientContext{})
		require.NoError(t, err)
		assert.False(t, c.Loggers.IsDebugEnabled())
	})

	t.Run("Loggers", func(t *testing.T) {
		mockLoggers := ldlogtest.NewMockLog()
		c, err := Logging().Loggers(mockLoggers.Loggers).Build(subsystems.BasicClientContext{})
		require.NoError(t, err)
		c.Loggers.Info("hello")
		mockLoggers.AssertMessageMatch(t, true, ldlog.Info, "hello")
	})

	t.Run("MinLevel", func(t *testing.T) {
		mockLoggers := ldlogtest.NewMockLog()
		c, err := Logging().Loggers(mockLoggers.Loggers).MinLevel(ldlog.Warn).Build(subsystems.BasicClientContext{})
		require.NoError(t, err)
		c.Loggers.Info("suppress this message")
		c.Loggers.Warn("log this message")
		assert.Len(t, mockLoggers.GetOutput(ldlog.Info), 0)
		assert.Equal(t, []string{"log this message"}, mockLoggers.GetOutput(ldlog.Warn))
	})

	t.Run("nil builder uses defaults", func(t *testing.T) {
		var b *LoggingConfigurationBuilder
		b = b.Loggers(ldlog.NewDisabledLoggers()).MinLevel(ldlog.Debug)
		c, err := b.Build(subsystems.BasicClientContext{})
		require.NoError(t, err)
		assert.False(t, c.Loggers.IsDebugEnabled())
	})

	t.Run("NoLogging", func(t *testing.T) {
		c, err := NoLogging().Build(subsystems.BasicClientContext{})
		require.NoError(t, err)
		assert.Equal(t, ldlog.NewDisabledLoggers(), c.Loggers)
	})
}
