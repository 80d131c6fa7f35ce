package aitime

import (
	"context"
	"sync"
	"time"

	"github.com/hrygo/remindat/plugin/ai/timeout"
)

// Field drives suggestions for one text input. Every Update resolves the
// text synchronously; when that yields nothing for non-blank text, the
// fallback is invoked after a debounce delay. Each Update cancels the
// previous fallback, and a superseded fallback never delivers.
type Field struct {
	primary  DateExtractor
	fallback DateExtractor
	delay    time.Duration
	deliver  func(TimeSuggestion)

	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewField creates a Field. deliver receives fallback suggestions; it runs
// while the Field is locked and must not call back into the Field.
// A non-positive delay selects timeout.FallbackDebounce.
func NewField(primary, fallback DateExtractor, delay time.Duration, deliver func(TimeSuggestion)) *Field {
	if delay <= 0 {
		delay = timeout.FallbackDebounce
	}
	return &Field{
		primary:  primary,
		fallback: fallback,
		delay:    delay,
		deliver:  deliver,
	}
}

// Update records an edit and returns the deterministic suggestions for text.
func (f *Field) Update(text string, now time.Time) []TimeSuggestion {
	f.mu.Lock()
	f.gen++
	gen := f.gen
	f.stopLocked()
	f.mu.Unlock()

	out, _ := f.primary.Extract(context.Background(), text, now)
	if len(out) > 0 || f.fallback == nil || f.deliver == nil || normalize(text) == "" {
		return out
	}

	ctx, cancel := context.WithCancel(context.Background())
	f.mu.Lock()
	if f.gen != gen {
		// A newer edit arrived while resolving.
		f.mu.Unlock()
		cancel()
		return out
	}
	f.cancel = cancel
	f.wg.Add(1)
	f.mu.Unlock()

	go f.runFallback(ctx, gen, text, now)
	return out
}

// Cancel abandons any pending or in-flight fallback.
func (f *Field) Cancel() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gen++
	f.stopLocked()
}

// Close cancels pending work and waits for it to finish.
func (f *Field) Close() {
	f.Cancel()
	f.wg.Wait()
}

// Flush waits for a pending or in-flight fallback to deliver without
// cancelling it. It returns early with ctx's error. Flush must not run
// concurrently with Update.
func (f *Field) Flush(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		f.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (f *Field) stopLocked() {
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
}

func (f *Field) runFallback(ctx context.Context, gen uint64, text string, now time.Time) {
	defer f.wg.Done()

	timer := time.NewTimer(f.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return
	case <-timer.C:
	}

	out, err := f.fallback.Extract(ctx, text, now)
	if err != nil || len(out) == 0 {
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if ctx.Err() != nil || f.gen != gen {
		return
	}
	f.deliver(out[0])
}
