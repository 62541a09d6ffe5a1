package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	t.Run("valid date", func(t *testing.T) {
		got, err := ParseDate("2025-06-01")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), got)
	})

	t.Run("surrounding whitespace is tolerated", func(t *testing.T) {
		got, err := ParseDate("  2025-06-01 ")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), got)
	})

	t.Run("rejects other formats", func(t *testing.T) {
		for _, input := range []string{
			"",
			"2025/06/01",
			"01-06-2025",
			"2025-6-1",
			"2025-06-01T00:00:00Z",
			"20250601",
			"내일",
		} {
			_, err := ParseDate(input)
			assert.Error(t, err, "input %q", input)
		}
	})

	t.Run("rejects impossible dates", func(t *testing.T) {
		_, err := ParseDate("2025-02-30")
		assert.Error(t, err)
	})
}

func TestDateOf(t *testing.T) {
	loc := time.FixedZone("KST", 9*60*60)
	moment := time.Date(2025, 6, 1, 23, 45, 12, 999, loc)

	got := DateOf(moment)

	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), got)
	assert.Equal(t, time.UTC, got.Location())
}

func TestDateOfRoundTripsParseDate(t *testing.T) {
	parsed, err := ParseDate("2025-12-31")
	require.NoError(t, err)
	assert.True(t, parsed.Equal(DateOf(parsed)))
}
