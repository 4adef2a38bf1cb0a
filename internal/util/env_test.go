package util

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetenv(t *testing.T) {
	assert.NoError(t, os.Setenv("TEST_GETENV_KEY", "value"))
	assert.Equal(t, "value", Getenv("TEST_GETENV_KEY", "default"))

	assert.NoError(t, os.Unsetenv("TEST_GETENV_KEY"))
	assert.Equal(t, "default", Getenv("TEST_GETENV_KEY", "default"))
}
