package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"github.com/hrygo/remindat/plugin/ai/aitime"
)

var (
	labelColor = color.New(color.FgCyan, color.Bold)
	aiColor    = color.New(color.FgMagenta)
	neverColor = color.New(color.FgYellow)
	dimColor   = color.New(color.Faint)
)

func printJSON(w io.Writer, suggestions []aitime.TimeSuggestion) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(suggestions)
}

func printSuggestions(w io.Writer, suggestions []aitime.TimeSuggestion) {
	if len(suggestions) == 0 {
		dimColor.Fprintln(w, "  (no suggestions)")
		return
	}
	for i, s := range suggestions {
		printSuggestion(w, i+1, s)
	}
}

func printSuggestion(w io.Writer, n int, s aitime.TimeSuggestion) {
	fmt.Fprintf(w, "%2d. ", n)
	labelColor.Fprintf(w, "%-28s", s.Label)
	switch {
	case s.IsNeverDeliver:
		neverColor.Fprint(w, s.FormattedDisplay)
	default:
		fmt.Fprintf(w, "%-22s", s.FormattedDisplay)
		dimColor.Fprint(w, s.Timestamp.Format(time.RFC3339))
	}
	if s.IsAIGenerated {
		aiColor.Fprint(w, "  [ai]")
	}
	fmt.Fprintln(w)
}
