package transforms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name    string
		seconds *int
		want    string
	}{
		{"nil is unknown", nil, ""},
		{"zero is unknown", intPtr(0), ""},
		{"negative is unknown", intPtr(-5), ""},
		{"seconds only", intPtr(59), "00:59"},
		{"minutes and seconds", intPtr(125), "02:05"},
		{"exactly one hour", intPtr(3600), "1:00:00"},
		{"hours", intPtr(3725), "1:02:05"},
		{"hour is not padded", intPtr(36000 + 61), "10:01:01"},
		{"no upper bound", intPtr(1000 * 3600), "1000:00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDuration(tt.seconds))
		})
	}
}

func TestFormatDurationZeroAndNilAgree(t *testing.T) {
	assert.Equal(t, FormatDuration(nil), FormatSeconds(0))
	assert.Equal(t, "", FormatSeconds(0))
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		text   string
		want   int
		wantOK bool
	}{
		{"1:02:05", 3725, true},
		{"2:05", 125, true},
		{"02:05", 125, true},
		{"45", 45, true},
		{"5", 5, true},
		{"0:0:1", 1, true},
		{"100:00:00", 360000, true},
		{"", 0, false},
		{"abc", 0, false},
		{"2:5:99", 0, false},
		{"60:00", 0, false},
		{"1:60:00", 0, false},
		{"123", 0, false},
		{"0", 0, false},
		{"00:00", 0, false},
		{"1:2:3:4", 0, false},
		{" 1:00", 0, false},
		{"1:00 ", 0, false},
		{":30", 0, false},
		{"99999999999999999999999:00:00", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, ok := ParseDuration(tt.text)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDurationPtr(t *testing.T) {
	assert.Nil(t, ParseDurationPtr(""))
	assert.Nil(t, ParseDurationPtr("nope"))

	got := ParseDurationPtr("1:00")
	require.NotNil(t, got)
	assert.Equal(t, 60, *got)
}

func TestDurationRoundTrip(t *testing.T) {
	for s := 1; s < 360000; s++ {
		got, ok := ParseDuration(FormatSeconds(s))
		if !ok || got != s {
			t.Fatalf("round trip of %d: got %d (ok=%v) from %q", s, got, ok, FormatSeconds(s))
		}
	}
}

func TestEmptyDurationParsesAsAbsent(t *testing.T) {
	_, ok := ParseDuration(FormatSeconds(0))
	assert.False(t, ok)
}
