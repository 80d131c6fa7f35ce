package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/hrygo/remindat/plugin/ai/aitime"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Treat each stdin line as an edit of one input field",
	Long: `watch reads edits line by line and prints the rule-based suggestions
immediately. When they are empty and an AI provider is configured, the
fallback runs once input has been quiet for the debounce period and its
suggestion is printed if no newer edit arrived meanwhile.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		fallback, err := newAIExtractor(cmd.Context(), prof)
		if err != nil {
			return err
		}

		w := &syncWriter{w: cmd.OutOrStdout()}
		var fb aitime.DateExtractor
		if fallback != nil {
			fb = fallback
		}
		field := aitime.NewField(aitime.NewResolver(), fb, prof.Debounce, func(s aitime.TimeSuggestion) {
			w.do(func(out io.Writer) { printSuggestion(out, 1, s) })
		})
		defer field.Close()

		return watchLines(cmd, field, w)
	},
}

func watchLines(cmd *cobra.Command, field *aitime.Field, w *syncWriter) error {
	lines := make(chan string)
	errc := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(cmd.InOrStdin())
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		errc <- scanner.Err()
	}()

	for {
		select {
		case <-cmd.Context().Done():
			return nil
		case err := <-errc:
			if err != nil {
				return err
			}
			// Input ended; let a debounced fallback still deliver.
			if err := field.Flush(cmd.Context()); err != nil {
				slog.Debug("watch interrupted while flushing", "error", err)
			}
			return nil
		case line := <-lines:
			out := field.Update(line, time.Now().In(prof.Location()))
			w.do(func(o io.Writer) {
				fmt.Fprintf(o, "> %s\n", line)
				printSuggestions(o, out)
			})
		}
	}
}

// syncWriter serialises output from the input loop and fallback deliveries.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) do(fn func(io.Writer)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.w)
}
