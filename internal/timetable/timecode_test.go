package timetable

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseClockTwelveHour(t *testing.T) {
	cases := map[string]int{
		"7:00 AM":  7 * 60,
		"7:30 am":  7*60 + 30,
		"12:00 AM": 0,
		"12:00 PM": 12 * 60,
		"12:45 pm": 12*60 + 45,
		"1:00 PM":  13 * 60,
		"11:59 PM": 23*60 + 59,
		"9 AM":     9 * 60,
	}
	for input, want := range cases {
		got, ok := ParseClock(input)
		require.True(t, ok, "input %q", input)
		require.Equal(t, want, got, "input %q", input)
	}
}

func TestParseClockTwentyFourHour(t *testing.T) {
	cases := map[string]int{
		"13:30": 13*60 + 30,
		"0:15":  15,
		"23:00": 23 * 60,
		"7:00":  7 * 60,
		// No AM/PM means the hour is literal; 7 stays morning.
		"7": 7 * 60,
	}
	for input, want := range cases {
		got, ok := ParseClock(input)
		require.True(t, ok, "input %q", input)
		require.Equal(t, want, got, "input %q", input)
	}
}

func TestParseClockRejectsMalformed(t *testing.T) {
	for _, input := range []string{"", "   ", "TBA", "noon", "25:00", "7:75", "13:00 PM", "0:00 AM"} {
		_, ok := ParseClock(input)
		require.False(t, ok, "input %q", input)
	}
}

func TestFormatClockRoundTrip(t *testing.T) {
	// parse(format(x)) == x for every minute of the day.
	for minute := 0; minute < MinutesPerDay; minute++ {
		text := FormatClock(minute)
		parsed, ok := ParseClock(text)
		require.True(t, ok, "formatted %q", text)
		require.Equal(t, minute, parsed, "formatted %q", text)
	}
}

func TestParseRoundTripIdempotent(t *testing.T) {
	for _, input := range []string{"7:00 AM", "12:00 PM", "11:59 pm", "13:30", "9"} {
		first, ok := ParseClock(input)
		require.True(t, ok)
		second, ok := ParseClock(FormatClock(first))
		require.True(t, ok)
		require.Equal(t, first, second, "input %q", input)
	}
}

func TestParseRange(t *testing.T) {
	span, ok := ParseRange("7:00 AM - 8:30 AM")
	require.True(t, ok)
	require.Equal(t, 7*60, span.Start)
	require.Equal(t, 8*60+30, span.End)
	require.False(t, span.AssumedDuration)

	span, ok = ParseRange("13:00-14:30")
	require.True(t, ok)
	require.Equal(t, 13*60, span.Start)
	require.Equal(t, 14*60+30, span.End)
}

func TestParseRangeSingleTokenDefaultsToHour(t *testing.T) {
	span, ok := ParseRange("9:00 AM")
	require.True(t, ok)
	require.Equal(t, 9*60, span.Start)
	require.Equal(t, 10*60, span.End)
	require.True(t, span.AssumedDuration, "legacy single-token rows get a flagged 60-minute default")
}

func TestParseRangeRejectsBadInput(t *testing.T) {
	for _, input := range []string{"", "TBA", "7:00 AM - TBA", "8:00 AM - 8:00 AM", "9:00 AM - 8:00 AM", "7 - 8 - 9"} {
		_, ok := ParseRange(input)
		require.False(t, ok, "input %q", input)
	}
}

func TestFormatRange(t *testing.T) {
	require.Equal(t, "7:00 AM - 8:30 AM", FormatRange(7*60, 8*60+30))
	require.Equal(t, "12:00 PM - 1:00 PM", FormatRange(12*60, 13*60))
}
