package envutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestStringAndInt(t *testing.T) {
	t.Setenv("ENVUTIL_TEST_STR", "  value  ")
	require.Equal(t, "value", String("ENVUTIL_TEST_STR", "def"))
	require.Equal(t, "def", String("ENVUTIL_TEST_MISSING", "def"))

	t.Setenv("ENVUTIL_TEST_INT", "42")
	require.Equal(t, 42, Int("ENVUTIL_TEST_INT", 7))
	t.Setenv("ENVUTIL_TEST_INT", "not a number")
	require.Equal(t, 7, Int("ENVUTIL_TEST_INT", 7))
}

func TestBoolAndDuration(t *testing.T) {
	t.Setenv("ENVUTIL_TEST_BOOL", "YES")
	require.True(t, Bool("ENVUTIL_TEST_BOOL", false))
	t.Setenv("ENVUTIL_TEST_BOOL", "off")
	require.False(t, Bool("ENVUTIL_TEST_BOOL", true))
	t.Setenv("ENVUTIL_TEST_BOOL", "maybe")
	require.True(t, Bool("ENVUTIL_TEST_BOOL", true))

	t.Setenv("ENVUTIL_TEST_DUR", "90s")
	require.Equal(t, 90*time.Second, Duration("ENVUTIL_TEST_DUR", time.Minute))
	t.Setenv("ENVUTIL_TEST_DUR", "soon")
	require.Equal(t, time.Minute, Duration("ENVUTIL_TEST_DUR", time.Minute))
}
