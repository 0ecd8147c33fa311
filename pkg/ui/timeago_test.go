package ui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimeAgo(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	day := 24 * time.Hour

	tests := []struct {
		name string
		ago  time.Duration
		want string
	}{
		{"zero", 0, "just now"},
		{"59 seconds", 59 * time.Second, "just now"},
		{"60 seconds", 60 * time.Second, "1m ago"},
		{"59 minutes 59 seconds", 3599 * time.Second, "59m ago"},
		{"one hour", time.Hour, "1h ago"},
		{"just under a day", 86399 * time.Second, "23h ago"},
		{"one day", day, "1d ago"},
		{"six days", 6 * day, "6d ago"},
		{"seven days", 7 * day, "1w ago"},
		{"27 days", 27 * day, "3w ago"},
		{"28 days", 28 * day, "0mo ago"},
		{"60 days", 60 * day, "2mo ago"},
		{"a year", 365 * day, "12mo ago"},
		{"future", -time.Hour, "just now"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TimeAgo(now, now.Add(-tt.ago)))
		})
	}
}
