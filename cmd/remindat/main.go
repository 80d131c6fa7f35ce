package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hrygo/remindat/internal/profile"
)

var (
	cfgFile  string
	timezone string
	verbose  bool

	prof *profile.Profile
)

var rootCmd = &cobra.Command{
	Use:   "remindat",
	Short: "remindat - resolve reminder text into future times",
	Long: `remindat turns short, typo-prone reminder text such as "935",
"5pm tomorrow" or "fridey" into ranked future timestamps. When the rules
find nothing, an optional AI provider can suggest a single candidate.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		v, err := profile.NewViper(cfgFile)
		if err != nil {
			return err
		}
		if err := bindFlags(v, cmd); err != nil {
			return err
		}
		prof, err = profile.FromViper(v)
		if err != nil {
			return err
		}
		setupLogger(prof)
		return nil
	},
}

func main() {
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(defaultsCmd)
	rootCmd.AddCommand(watchCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (yaml, json or toml)")
	rootCmd.PersistentFlags().StringVar(&timezone, "timezone", "", "IANA time zone used for the reference instant")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func bindFlags(v *viper.Viper, cmd *cobra.Command) error {
	if f := cmd.Flags().Lookup("timezone"); f != nil && f.Changed {
		if err := v.BindPFlag(profile.KeyTimezone, f); err != nil {
			return err
		}
	}
	return nil
}

func setupLogger(p *profile.Profile) {
	level := slog.LevelWarn
	if verbose || p.IsDev() {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}
