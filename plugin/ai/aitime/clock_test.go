package aitime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClockCore(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		ok       bool
		hour     int
		minute   int
		meridiem Meridiem
		colon    bool
	}{
		{name: "glued pm", input: "5pm", ok: true, hour: 17, meridiem: MeridiemPM},
		{name: "typo pm", input: "9om", ok: true, hour: 21, meridiem: MeridiemPM},
		{name: "spaced", input: "5 30 pm", ok: true, hour: 17, minute: 30, meridiem: MeridiemPM},
		{name: "words", input: "nine forty five p.m.", ok: true, hour: 21, minute: 45, meridiem: MeridiemPM},
		{name: "part of day", input: "7 in the morning", ok: true, hour: 7, meridiem: MeridiemAM},
		{name: "partial part of day", input: "7 eve", ok: true, hour: 19, meridiem: MeridiemPM},
		{name: "colon", input: "5:30", ok: true, hour: 5, minute: 30, colon: true},
		{name: "colon 24h", input: "17:30", ok: true, hour: 17, minute: 30, colon: true},
		{name: "colon with meridiem", input: "5:30pm", ok: true, hour: 17, minute: 30, meridiem: MeridiemPM, colon: true},
		{name: "compact", input: "930pm", ok: true, hour: 21, minute: 30, meridiem: MeridiemPM},
		{name: "leading at", input: "at 5 pm", ok: true, hour: 17, meridiem: MeridiemPM},
		{name: "midnight", input: "12am", ok: true, hour: 0, meridiem: MeridiemAM},
		{name: "noon", input: "12pm", ok: true, hour: 12, meridiem: MeridiemPM},
		{name: "bare hour", input: "5"},
		{name: "hour out of range", input: "13pm"},
		{name: "colon out of range", input: "24:00"},
		{name: "minute out of range", input: "5:60"},
		{name: "not a time", input: "friday"},
		{name: "compact without meridiem", input: "930"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseClockCore(tokenize(tt.input))
			require.Equal(t, tt.ok, ok)
			if !ok {
				return
			}
			assert.Equal(t, tt.hour, got.hour)
			assert.Equal(t, tt.minute, got.minute)
			assert.Equal(t, tt.meridiem, got.meridiem)
			assert.Equal(t, tt.colon, got.colon)
		})
	}
}

func TestPeelMeridiem(t *testing.T) {
	m, rest := peelMeridiem("5pm")
	assert.Equal(t, MeridiemPM, m)
	assert.Equal(t, "5", rest)

	m, rest = peelMeridiem("10a")
	assert.Equal(t, MeridiemAM, m)
	assert.Equal(t, "10", rest)

	m, rest = peelMeridiem("friday")
	assert.Equal(t, MeridiemNone, m)
	assert.Equal(t, "friday", rest)
}

func TestParseClockTime(t *testing.T) {
	t.Run("explicit meridiem offers today and tomorrow", func(t *testing.T) {
		got := parseClockTime(tokenize("5pm"), refNow)
		require.Equal(t, []string{"today at 5:00 pm", "tomorrow at 5:00 pm"}, labels(got))
		assert.Equal(t, at(1, 1, 17, 0), got[0].Timestamp)
		assert.Equal(t, at(1, 2, 17, 0), got[1].Timestamp)
	})

	t.Run("passed time only tomorrow", func(t *testing.T) {
		got := parseClockTime(tokenize("7am"), refNow)
		assert.Equal(t, []string{"tomorrow at 7:00 am"}, labels(got))
	})

	t.Run("typo meridiem", func(t *testing.T) {
		got := parseClockTime(tokenize("9om"), refNow)
		require.NotEmpty(t, got)
		assert.Equal(t, at(1, 1, 21, 0), got[0].Timestamp)
	})

	t.Run("ambiguous colon expands", func(t *testing.T) {
		got := parseClockTime(tokenize("9:30"), refNow)
		assert.Equal(t, []string{"today at 9:30 am", "today at 9:30 pm"}, labels(got))
	})

	t.Run("24 hour colon", func(t *testing.T) {
		got := parseClockTime(tokenize("17:30"), refNow)
		assert.Equal(t, []string{"today at 5:30 pm", "tomorrow at 5:30 pm"}, labels(got))
	})

	t.Run("bare hour rejected", func(t *testing.T) {
		assert.Empty(t, parseClockTime(tokenize("5"), refNow))
	})
}
