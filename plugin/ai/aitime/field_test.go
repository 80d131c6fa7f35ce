package aitime

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDelay = 20 * time.Millisecond

// collector records delivered suggestions.
type collector struct {
	mu  sync.Mutex
	got []TimeSuggestion
}

func (c *collector) deliver(s TimeSuggestion) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.got = append(c.got, s)
}

func (c *collector) all() []TimeSuggestion {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]TimeSuggestion(nil), c.got...)
}

// echoFallback answers with a suggestion labelled by the input text.
func echoFallback(calls *atomic.Int32, delay time.Duration) DateExtractor {
	return extractorFunc(func(ctx context.Context, text string, now time.Time) ([]TimeSuggestion, error) {
		calls.Add(1)
		if delay > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}
		s := newSuggestion(text, now.Add(time.Hour), now)
		s.IsAIGenerated = true
		return []TimeSuggestion{s}, nil
	})
}

func TestField_RulesAnswerSynchronously(t *testing.T) {
	var calls atomic.Int32
	var c collector
	f := NewField(newTestResolver(), echoFallback(&calls, 0), testDelay, c.deliver)
	defer f.Close()

	got := f.Update("5pm", refNow)
	assert.NotEmpty(t, got)

	time.Sleep(3 * testDelay)
	assert.Zero(t, calls.Load())
	assert.Empty(t, c.all())
}

func TestField_DeliversAfterDebounce(t *testing.T) {
	var calls atomic.Int32
	var c collector
	f := NewField(newTestResolver(), echoFallback(&calls, 0), testDelay, c.deliver)
	defer f.Close()

	got := f.Update("dentist sometime", refNow)
	assert.Empty(t, got)
	assert.Empty(t, c.all(), "nothing before the debounce elapses")

	require.Eventually(t, func() bool { return len(c.all()) == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, "dentist sometime", c.all()[0].Label)
	assert.True(t, c.all()[0].IsAIGenerated)
}

func TestField_RapidUpdatesDeliverLatestOnly(t *testing.T) {
	var calls atomic.Int32
	var c collector
	f := NewField(newTestResolver(), echoFallback(&calls, 0), testDelay, c.deliver)
	defer f.Close()

	for _, text := range []string{"d", "de", "den", "dentist sometime"} {
		f.Update(text, refNow)
	}

	require.Eventually(t, func() bool { return len(c.all()) >= 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(3 * testDelay)

	got := c.all()
	require.Len(t, got, 1)
	assert.Equal(t, "dentist sometime", got[0].Label)
	assert.Equal(t, int32(1), calls.Load())
}

func TestField_CancelPreventsDelivery(t *testing.T) {
	var calls atomic.Int32
	var c collector
	f := NewField(newTestResolver(), echoFallback(&calls, 0), testDelay, c.deliver)

	f.Update("dentist sometime", refNow)
	f.Cancel()
	time.Sleep(3 * testDelay)

	assert.Zero(t, calls.Load())
	assert.Empty(t, c.all())
	f.Close()
}

func TestField_SupersededResultIsDropped(t *testing.T) {
	var calls atomic.Int32
	var c collector
	f := NewField(newTestResolver(), echoFallback(&calls, 5*testDelay), testDelay, c.deliver)
	defer f.Close()

	f.Update("dentist sometime", refNow)
	// Let the first fallback start, then replace it with text the rules handle.
	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, time.Millisecond)
	got := f.Update("5pm", refNow)
	assert.NotEmpty(t, got)

	time.Sleep(8 * testDelay)
	assert.Empty(t, c.all())
}

func TestField_BlankInputNeverFallsBack(t *testing.T) {
	var calls atomic.Int32
	var c collector
	f := NewField(newTestResolver(), echoFallback(&calls, 0), testDelay, c.deliver)
	defer f.Close()

	got := f.Update("   ", refNow)
	assert.Len(t, got, 7)
	time.Sleep(3 * testDelay)
	assert.Zero(t, calls.Load())
}

func TestField_CloseWaitsForFallback(t *testing.T) {
	var calls atomic.Int32
	var c collector
	f := NewField(newTestResolver(), echoFallback(&calls, time.Second), testDelay, c.deliver)

	f.Update("dentist sometime", refNow)
	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, time.Millisecond)

	start := time.Now()
	f.Close()
	assert.Less(t, time.Since(start), 500*time.Millisecond, "close cancels the in-flight call")
	assert.Empty(t, c.all())
}

func TestNewField_DefaultDelay(t *testing.T) {
	f := NewField(newTestResolver(), nil, 0, nil)
	assert.Equal(t, 500*time.Millisecond, f.delay)
	assert.NotEmpty(t, f.Update("5pm", refNow))
	f.Close()
}

func TestField_FlushWaitsForDelivery(t *testing.T) {
	var calls atomic.Int32
	var c collector
	f := NewField(newTestResolver(), echoFallback(&calls, testDelay), testDelay, c.deliver)

	f.Update("dentist sometime", refNow)
	require.NoError(t, f.Flush(context.Background()))

	got := c.all()
	require.Len(t, got, 1)
	assert.Equal(t, "dentist sometime", got[0].Label)
	f.Close()
}

func TestField_FlushHonoursContext(t *testing.T) {
	var calls atomic.Int32
	var c collector
	f := NewField(newTestResolver(), echoFallback(&calls, time.Second), testDelay, c.deliver)

	f.Update("dentist sometime", refNow)
	ctx, cancel := context.WithTimeout(context.Background(), 3*testDelay)
	defer cancel()

	assert.ErrorIs(t, f.Flush(ctx), context.DeadlineExceeded)
	f.Close()
	assert.Empty(t, c.all())
}

func TestField_FlushWithoutPendingWork(t *testing.T) {
	f := NewField(newTestResolver(), nil, testDelay, nil)
	assert.NoError(t, f.Flush(context.Background()))
}
