package convert_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"typecaster/convert"
)

func TestLoggerDefaultsToNop(t *testing.T) {
	assert.NotNil(t, convert.Logger())
}

func TestSetLogger(t *testing.T) {
	defer convert.SetLogger(zap.NewNop())

	custom := zap.NewNop().Named("custom")
	convert.SetLogger(custom)
	assert.Same(t, custom, convert.Logger())
}
