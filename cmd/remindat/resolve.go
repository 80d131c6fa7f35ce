package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/hrygo/remindat/plugin/ai/aitime"
)

var (
	nowFlag  string
	useAI    bool
	jsonFlag bool
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <text>",
	Short: "Resolve reminder text into ranked suggestions",
	Example: `  remindat resolve 935
  remindat resolve "5pm tomorrow" --now 2024-01-01T08:00:00Z
  remindat resolve "dentist after the school run" --ai`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		now, err := referenceNow(nowFlag, prof)
		if err != nil {
			return err
		}

		var extractor aitime.DateExtractor = aitime.NewResolver()
		if useAI {
			fallback, err := newAIExtractor(cmd.Context(), prof)
			if err != nil {
				return err
			}
			if fallback != nil {
				extractor = aitime.Chain{Primary: extractor, Fallback: fallback}
			}
		}

		out, err := extractor.Extract(cmd.Context(), strings.Join(args, " "), now)
		if err != nil {
			return err
		}
		if jsonFlag {
			return printJSON(cmd.OutOrStdout(), out)
		}
		printSuggestions(cmd.OutOrStdout(), out)
		return nil
	},
}

var defaultsCmd = &cobra.Command{
	Use:   "defaults",
	Short: "Show the suggestions offered for empty input",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		now, err := referenceNow(nowFlag, prof)
		if err != nil {
			return err
		}
		out := aitime.DefaultSuggestions(now, nil)
		if jsonFlag {
			return printJSON(cmd.OutOrStdout(), out)
		}
		printSuggestions(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	for _, cmd := range []*cobra.Command{resolveCmd, defaultsCmd} {
		cmd.Flags().StringVar(&nowFlag, "now", "", "reference instant in RFC 3339 (default: current time)")
		cmd.Flags().BoolVar(&jsonFlag, "json", false, "print suggestions as JSON")
	}
	resolveCmd.Flags().BoolVar(&useAI, "ai", false, "ask the configured AI provider when the rules find nothing")
}
