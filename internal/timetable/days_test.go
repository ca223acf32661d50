package timetable

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestExpandDaysCompound(t *testing.T) {
	require.Equal(t, []string{Monday, Wednesday, Friday}, ExpandDays("MWF"))
	require.Equal(t, []string{Monday, Wednesday}, ExpandDays("MW"))
	require.Equal(t, []string{Tuesday, Thursday}, ExpandDays("TTH"))
	require.Equal(t, []string{Tuesday, Thursday}, ExpandDays("TH"))
	require.Equal(t, []string{Tuesday, Thursday}, ExpandDays("tth"))
}

func TestExpandDaysSingleTokens(t *testing.T) {
	require.Equal(t, []string{Tuesday}, ExpandDays("tuesday"))
	require.Equal(t, []string{Monday}, ExpandDays("M"))
	require.Equal(t, []string{Saturday}, ExpandDays("Sat"))
	require.Equal(t, []string{Sunday}, ExpandDays("SUN"))
	require.Equal(t, []string{Thursday}, ExpandDays("Thu"))
}

func TestExpandDaysSlashList(t *testing.T) {
	require.Equal(t, []string{Monday, Wednesday, Friday}, ExpandDays("M/W/F"))
	require.Equal(t, []string{Monday, Tuesday, Thursday}, ExpandDays("M / TTH"))
}

func TestExpandDaysUnknownPassThrough(t *testing.T) {
	// Unknown tokens are kept, capitalized, rather than rejected.
	require.Equal(t, []string{"Daily"}, ExpandDays("DAILY"))
	require.Equal(t, []string{Monday, "Tba"}, ExpandDays("M/tba"))
}

func TestExpandDaysDedupes(t *testing.T) {
	require.Equal(t, []string{Monday, Wednesday, Friday}, ExpandDays("MWF/M"))
}

func TestExpandDaysEmpty(t *testing.T) {
	require.Nil(t, ExpandDays(""))
	require.Nil(t, ExpandDays("   "))
}

func TestMatchesDay(t *testing.T) {
	require.True(t, MatchesDay("MWF", time.Monday))
	require.True(t, MatchesDay("MWF", time.Friday))
	require.False(t, MatchesDay("MWF", time.Tuesday))
	require.True(t, MatchesDay("TTH", time.Thursday))
	require.False(t, MatchesDay("DAILY", time.Monday))
}

func TestIsCanonicalDay(t *testing.T) {
	require.True(t, IsCanonicalDay(Wednesday))
	require.False(t, IsCanonicalDay("Daily"))
}
