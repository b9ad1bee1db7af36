// Command timescale is a small driver around the library: it converts
// epoch readings between POSIX/UTC/TAI/GPS, inspects the leap-second
// table, round-trips the compact binary form, and renders a live clock.
package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/BYTE-6D65/timescale/pkg/instant"
	"github.com/BYTE-6D65/timescale/pkg/leapsecond"
)

const version = "0.1.0"

// rootOptions holds flags shared by every subcommand.
type rootOptions struct {
	LeapSource string // path to a JSON/YAML leap table, empty for builtin
	NoLeaps    bool   // run with leap-second support disabled
	JSON       bool   // machine-readable output
}

// table materializes the leap-second table the flags ask for.
func (o *rootOptions) table() (*leapsecond.Table, error) {
	if o.NoLeaps {
		return leapsecond.Disabled(), nil
	}
	if o.LeapSource == "" {
		o.LeapSource = os.Getenv("TIMESCALE_LEAP_SOURCE")
	}
	if o.LeapSource == "" {
		return leapsecond.Builtin(), nil
	}
	return leapsecond.FromProvider(leapsecond.FileProvider{Path: o.LeapSource})
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "timescale",
		Short:         "Leap-second-aware time scale conversions",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.LeapSource, "leap-source", "", "leap-second table file (.json/.yaml), builtin if empty")
	cmd.PersistentFlags().BoolVar(&opts.NoLeaps, "no-leaps", false, "disable leap-second support")
	cmd.PersistentFlags().BoolVar(&opts.JSON, "json", false, "machine-readable output")

	cmd.AddCommand(
		newNowCommand(opts),
		newConvertCommand(opts),
		newTableCommand(opts),
		newEncodeCommand(opts),
		newDecodeCommand(opts),
		newWatchCommand(opts),
	)
	return cmd
}

func main() {
	log.SetFlags(log.Ltime | log.Lmicroseconds)
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "timescale: %v\n", err)
		os.Exit(1)
	}
}

// parseEpoch parses "seconds[.fraction]" into normalized (sec, nano).
// The fraction may carry up to nine digits; a leading '-' applies to the
// whole reading, so "-0.5" is half a second before the epoch.
func parseEpoch(s string) (instant.Instant, error) {
	s = strings.TrimSpace(s)
	neg := strings.HasPrefix(s, "-")
	body := strings.TrimPrefix(s, "-")
	if strings.HasPrefix(body, "-") || strings.HasPrefix(body, "+") {
		return instant.Zero, fmt.Errorf("bad epoch reading %q", s)
	}

	secPart, fracPart, hasFrac := strings.Cut(body, ".")
	sec, err := strconv.ParseInt(secPart, 10, 64)
	if err != nil {
		return instant.Zero, fmt.Errorf("bad epoch reading %q", s)
	}

	var nano int64
	if hasFrac {
		if len(fracPart) == 0 || len(fracPart) > 9 {
			return instant.Zero, fmt.Errorf("bad fraction in %q, want 1..9 digits", s)
		}
		nano, err = strconv.ParseInt(fracPart+strings.Repeat("0", 9-len(fracPart)), 10, 64)
		if err != nil {
			return instant.Zero, fmt.Errorf("bad fraction in %q", s)
		}
	}
	if neg {
		return instant.Normalize(-sec, -nano)
	}
	return instant.Normalize(sec, nano)
}

// formatEpoch renders (sec, nano) the way parseEpoch reads it.
func formatEpoch(sec int64, nano int) string {
	if nano == 0 {
		return strconv.FormatInt(sec, 10)
	}
	if sec < 0 && nano > 0 {
		// Display as a single signed reading, not (negative sec, positive nano).
		sec++
		nano = instant.NanosPerSecond - nano
		if sec == 0 {
			return fmt.Sprintf("-0.%09d", nano)
		}
	}
	return fmt.Sprintf("%d.%09d", sec, nano)
}
