package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		debug   bool
		debugOn bool
		warnOn  bool
	}{
		{"production hides debug and info", false, false, true},
		{"debug enables everything", true, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(tt.debug)
			require.NoError(t, err)
			require.NotNil(t, logger)

			assert.Equal(t, tt.debugOn, logger.Core().Enabled(zapcore.DebugLevel))
			assert.Equal(t, tt.debugOn, logger.Core().Enabled(zapcore.InfoLevel))
			assert.Equal(t, tt.warnOn, logger.Core().Enabled(zapcore.WarnLevel))
		})
	}
}
