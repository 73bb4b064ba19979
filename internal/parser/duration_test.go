package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appdiet/appdiet/internal/errors"
)

func TestParseGoalMinutes(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{input: "90", want: 90},
		{input: "45m", want: 45},
		{input: "2h", want: 120},
		{input: "1h30m", want: 90},
		{input: "1 hour 30 minutes", want: 90},
		{input: "2.5h", want: 150},
		{input: "30 mins", want: 30},
		{input: "  60  ", want: 60},
		{input: "", wantErr: true},
		{input: "-5", wantErr: true},
		{input: "abc", wantErr: true},
		{input: "0", want: 0},
		{input: "0m", wantErr: true},
		{input: "30s", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseGoalMinutes(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, errors.ErrInvalidDuration)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseMonth(t *testing.T) {
	now := time.Date(2026, 8, 30, 14, 0, 0, 0, time.UTC)

	t.Run("empty_is_now", func(t *testing.T) {
		got, err := ParseMonth("", now)
		require.NoError(t, err)
		assert.True(t, got.Equal(now))
	})

	t.Run("this_month", func(t *testing.T) {
		got, err := ParseMonth("this month", now)
		require.NoError(t, err)
		assert.Equal(t, "2026-08", got.Format("2006-01"))
	})

	t.Run("last_month", func(t *testing.T) {
		got, err := ParseMonth("last month", now)
		require.NoError(t, err)
		assert.Equal(t, "2026-07", got.Format("2006-01"))
	})

	t.Run("explicit_month", func(t *testing.T) {
		got, err := ParseMonth("2026-06", now)
		require.NoError(t, err)
		assert.Equal(t, "2026-06", got.Format("2006-01"))
	})

	t.Run("garbage_errors", func(t *testing.T) {
		_, err := ParseMonth("not a month at all zzz", now)
		assert.Error(t, err)
	})
}

func TestParseDate(t *testing.T) {
	now := time.Date(2026, 8, 30, 14, 0, 0, 0, time.UTC)

	t.Run("today", func(t *testing.T) {
		got, err := ParseDate("today", now)
		require.NoError(t, err)
		assert.True(t, got.Equal(now))
	})

	t.Run("iso_date", func(t *testing.T) {
		got, err := ParseDate("2026-08-12", now)
		require.NoError(t, err)
		assert.Equal(t, "2026-08-12", got.Format("2006-01-02"))
	})
}
