package aitime

import (
	"context"
	"time"
)

// Chain consults Fallback only when Primary yields nothing for non-blank text.
type Chain struct {
	Primary  DateExtractor
	Fallback DateExtractor
}

// Extract implements DateExtractor.
func (c Chain) Extract(ctx context.Context, text string, now time.Time) ([]TimeSuggestion, error) {
	out, err := c.Primary.Extract(ctx, text, now)
	if err != nil || len(out) > 0 || c.Fallback == nil || normalize(text) == "" {
		return out, err
	}
	if err := ctx.Err(); err != nil {
		return nil, nil
	}
	return c.Fallback.Extract(ctx, text, now)
}

var _ DateExtractor = Chain{}
