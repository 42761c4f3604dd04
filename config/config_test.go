package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("TEST_STRING", "value")
	assert.Equal(t, "value", GetEnv("TEST_STRING", "fallback"))
	assert.Equal(t, "fallback", GetEnv("TEST_STRING_MISSING", "fallback"))
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("TEST_INT", "3")
	assert.Equal(t, 3, GetEnvInt("TEST_INT", 1))
	assert.Equal(t, 1, GetEnvInt("TEST_INT_MISSING", 1))

	t.Setenv("TEST_INT_BAD", "three")
	assert.Equal(t, 1, GetEnvInt("TEST_INT_BAD", 1))
}

func TestGetEnvDuration(t *testing.T) {
	t.Setenv("TEST_DURATION", "5s")
	assert.Equal(t, 5*time.Second, GetEnvDuration("TEST_DURATION", time.Minute))
	assert.Equal(t, time.Minute, GetEnvDuration("TEST_DURATION_MISSING", time.Minute))

	t.Setenv("TEST_DURATION_BAD", "soon")
	assert.Equal(t, time.Minute, GetEnvDuration("TEST_DURATION_BAD", time.Minute))
}
