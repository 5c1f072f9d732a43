package logger

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zerolog.WarnLevel, parseLevel(" WARN "))
	assert.Equal(t, zerolog.InfoLevel, parseLevel(""), "vacío cae en info")
	assert.Equal(t, zerolog.InfoLevel, parseLevel("verboso"), "desconocido cae en info")
}

func TestNew_AplicaNivel(t *testing.T) {
	l := New(Config{Env: "production", Level: "error"})
	assert.Equal(t, zerolog.ErrorLevel, l.Zerolog().GetLevel())
}

func TestNop_NoEmite(t *testing.T) {
	l := Nop().Named("ledger")
	assert.Equal(t, zerolog.Disabled, l.Zerolog().GetLevel())
}
