package aitime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWeekday(t *testing.T) {
	friday := at(1, 5, 9, 0)
	for _, input := range []string{"fri", "friday", "fridey", "FRIDAY", "next friday", "fr"} {
		t.Run(input, func(t *testing.T) {
			got := parseWeekday(tokenize(input), refNow)
			require.Len(t, got, 1)
			assert.Equal(t, "friday", got[0].Label)
			assert.Equal(t, friday, got[0].Timestamp)
		})
	}
}

func TestParseWeekday_NeverToday(t *testing.T) {
	// refNow is a Monday.
	for _, now := range []time.Time{refNow, at(1, 1, 0, 1), at(1, 1, 23, 59)} {
		got := parseWeekday(tokenize("next monday"), now)
		require.Len(t, got, 1)
		assert.Equal(t, at(1, 8, 9, 0), got[0].Timestamp)
		assert.Equal(t, time.Monday, got[0].Timestamp.Weekday())
	}
}

func TestParseWeekday_Abbreviations(t *testing.T) {
	tests := []struct {
		input string
		want  time.Weekday
	}{
		{"tu", time.Tuesday},
		{"tues", time.Tuesday},
		{"weds", time.Wednesday},
		{"th", time.Thursday},
		{"thurs", time.Thursday},
		{"sa", time.Saturday},
		{"sun", time.Sunday},
		{"wensday", time.Wednesday},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := parseWeekday([]string{tt.input}, refNow)
			require.NotEmpty(t, got)
			assert.Equal(t, tt.want, got[0].Timestamp.Weekday())
		})
	}
}

func TestParseWeekday_Rejects(t *testing.T) {
	for _, input := range []string{"t", "s", "mon fri", "banana", "next"} {
		assert.Empty(t, parseWeekday(tokenize(input), refNow), input)
	}
}
