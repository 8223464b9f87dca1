package dateparse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// Tuesday 2026-08-25.
var ref = time.Date(2026, 8, 25, 14, 30, 0, 0, time.UTC)

func TestParseFrom(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"today", "2026-08-25"},
		{"yesterday", "2026-08-24"},
		{"last week", "2026-08-18"},
		{"last month", "2026-07-25"},
		{"start of week", "2026-08-24"},
		{"som", "2026-08-01"},
		{"-3", "2026-08-22"},
		{"2 days ago", "2026-08-23"},
		{"1 week ago", "2026-08-18"},
		{"2 weeks ago", "2026-08-11"},
		{"tuesday", "2026-08-25"}, // same day = today
		{"monday", "2026-08-24"},
		{"wednesday", "2026-08-19"}, // most recent, not upcoming
		{"2026-01-15", "2026-01-15"},
		{"TODAY", "2026-08-25"},
		{"  yesterday  ", "2026-08-24"},
	}
	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.want, ParseFrom(tc.input, ref))
		})
	}
}

func TestParseUnrecognizedPassesThrough(t *testing.T) {
	assert.Equal(t, "not-a-date", ParseFrom("not-a-date", ref))
}
