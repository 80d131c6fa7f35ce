package aitime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseComposite(t *testing.T) {
	tests := []struct {
		input string
		label string
		want  time.Time
	}{
		{"5pm tomorrow", "tomorrow at 5:00 pm", at(1, 2, 17, 0)},
		{"tomorrow 5pm", "tomorrow at 5:00 pm", at(1, 2, 17, 0)},
		{"tomorrow at 5pm", "tomorrow at 5:00 pm", at(1, 2, 17, 0)},
		{"tmrw 8 30 am", "tomorrow at 8:30 am", at(1, 2, 8, 30)},
		{"tomorow 5pm", "tomorrow at 5:00 pm", at(1, 2, 17, 0)},
		{"tonight 9pm", "today at 9:00 pm", at(1, 1, 21, 0)},
		{"today at 17:30", "today at 5:30 pm", at(1, 1, 17, 30)},
		{"next friday at 3pm", "friday at 3:00 pm", at(1, 5, 15, 0)},
		{"fri 9:30", "friday at 9:30 am", at(1, 5, 9, 30)},
		{"on wednesday at 7 in the evening", "wednesday at 7:00 pm", at(1, 3, 19, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := parseComposite(tokenize(tt.input), refNow)
			require.Len(t, got, 1)
			assert.Equal(t, tt.label, got[0].Label)
			assert.Equal(t, tt.want, got[0].Timestamp)
		})
	}
}

func TestParseComposite_Rejects(t *testing.T) {
	tests := []string{
		"today 7am",  // already passed
		"banana 5pm", // no date half
		"tomorrow",   // no clock half
		"5pm",        // single token
		"tomorrow 5", // bare hour
	}
	for _, input := range tests {
		assert.Empty(t, parseComposite(tokenize(input), refNow), input)
	}
}

func TestResolveDateFragment(t *testing.T) {
	tests := []struct {
		tokens []string
		label  string
		day    time.Time
	}{
		{[]string{"tom"}, "tomorrow", at(1, 2, 0, 0)},
		{[]string{"tmw"}, "tomorrow", at(1, 2, 0, 0)},
		{[]string{"tod"}, "today", at(1, 1, 0, 0)},
		{[]string{"on", "sat"}, "saturday", at(1, 6, 0, 0)},
		{[]string{"next", "mon"}, "monday", at(1, 8, 0, 0)},
	}
	for _, tt := range tests {
		got, ok := resolveDateFragment(tt.tokens, refNow)
		require.True(t, ok, "%v", tt.tokens)
		assert.Equal(t, tt.label, got.label)
		assert.Equal(t, tt.day, got.day)
	}

	_, ok := resolveDateFragment([]string{"next", "month"}, refNow)
	assert.False(t, ok)
}
