package main

import (
	"encoding/hex"
	"fmt"

	"github.com/go-json-experiment/json"
	"github.com/spf13/cobra"

	"github.com/BYTE-6D65/timescale/pkg/clock"
	"github.com/BYTE-6D65/timescale/pkg/instant"
	"github.com/BYTE-6D65/timescale/pkg/leapsecond"
	"github.com/BYTE-6D65/timescale/pkg/scale"
)

// reading is the machine-readable form of one scale reading.
type reading struct {
	Scale   string `json:"scale"`
	Elapsed int64  `json:"elapsed"`
	Nano    int    `json:"nano"`
	Leap    bool   `json:"leap,omitzero"`
}

func printReading(cmd *cobra.Command, opts *rootOptions, sc scale.Scale, m instant.Instant, table *leapsecond.Table) error {
	elapsed, err := m.ElapsedTime(sc, table)
	if err != nil {
		return err
	}
	nano, err := m.NanosecondOn(sc, table)
	if err != nil {
		return err
	}
	if opts.JSON {
		out, err := json.Marshal(reading{
			Scale:   sc.String(),
			Elapsed: elapsed,
			Nano:    nano,
			Leap:    m.IsLeapSecond(table),
		})
		if err != nil {
			return err
		}
		cmd.Println(string(out))
		return nil
	}
	suffix := ""
	if m.IsLeapSecond(table) {
		suffix = " (leap second)"
	}
	cmd.Printf("%-5s %s%s\n", sc, formatEpoch(elapsed, nano), suffix)
	return nil
}

func newNowCommand(opts *rootOptions) *cobra.Command {
	var scaleName string
	var monotonic bool

	cmd := &cobra.Command{
		Use:   "now",
		Short: "Print the current instant",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := opts.table()
			if err != nil {
				return err
			}
			sc, err := scale.Parse(scaleName)
			if err != nil {
				return err
			}
			var src clock.Clock
			if monotonic {
				src, err = clock.NewMonotonicClock("cli", clock.NewSystemTicks(), table, nil)
				if err != nil {
					return err
				}
			} else {
				src = clock.NewSystemClock(nil)
			}
			m, err := src.Now()
			if err != nil {
				return err
			}
			return printReading(cmd, opts, sc, m, table)
		},
	}
	cmd.Flags().StringVar(&scaleName, "scale", "POSIX", "output scale (POSIX|UTC|TAI|GPS)")
	cmd.Flags().BoolVar(&monotonic, "monotonic", false, "use the calibrated monotonic clock (UTC-based)")
	return cmd
}

func newConvertCommand(opts *rootOptions) *cobra.Command {
	var fromName, toName string

	cmd := &cobra.Command{
		Use:   "convert <elapsed[.nanos]>",
		Short: "Convert an epoch reading between time scales",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := opts.table()
			if err != nil {
				return err
			}
			from, err := scale.Parse(fromName)
			if err != nil {
				return err
			}
			to, err := scale.Parse(toName)
			if err != nil {
				return err
			}
			in, err := parseEpoch(args[0])
			if err != nil {
				return err
			}
			m, err := instant.Of(in.PosixSeconds(), in.Nanosecond(), from, table)
			if err != nil {
				return err
			}
			return printReading(cmd, opts, to, m, table)
		},
	}
	cmd.Flags().StringVar(&fromName, "from", "POSIX", "input scale")
	cmd.Flags().StringVar(&toName, "to", "UTC", "output scale")
	return cmd
}

func newTableCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "table",
		Short: "Print the active leap-second table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := opts.table()
			if err != nil {
				return err
			}
			if !table.IsEnabled() {
				return fmt.Errorf("leap-second support is disabled")
			}
			events := table.Events()
			if opts.JSON {
				type row struct {
					Date  string `json:"date"`
					Shift int    `json:"shift"`
				}
				rows := make([]row, len(events))
				for i, ev := range events {
					rows[i] = row{Date: ev.Date.String(), Shift: ev.Shift}
				}
				out, err := json.Marshal(rows)
				if err != nil {
					return err
				}
				cmd.Println(string(out))
				return nil
			}
			total := 0
			for _, ev := range events {
				total += ev.Shift
				cmd.Printf("%s  %+d  (cumulative %d)\n", ev.Date, ev.Shift, total)
			}
			cmd.Printf("%d events\n", len(events))
			return nil
		},
	}
	return cmd
}

func newEncodeCommand(opts *rootOptions) *cobra.Command {
	var leap bool

	cmd := &cobra.Command{
		Use:   "encode <posix[.nanos]>",
		Short: "Encode an instant into the compact binary form (hex)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := opts.table()
			if err != nil {
				return err
			}
			in, err := parseEpoch(args[0])
			if err != nil {
				return err
			}
			m := in
			if leap {
				// A leap-flagged instant is only constructible through the
				// UTC second it denotes.
				utc, err := table.Enhance(in.PosixSeconds())
				if err != nil {
					return err
				}
				m, err = instant.FromUTC(utc+1, in.Nanosecond(), table)
				if err != nil {
					return err
				}
				if !m.IsLeapSecond(table) {
					return fmt.Errorf("no leap second registered after posix second %d", in.PosixSeconds())
				}
			}
			cmd.Println(hex.EncodeToString(instant.Encode(m)))
			return nil
		},
	}
	cmd.Flags().BoolVar(&leap, "leap", false, "mark the instant as an inserted leap second")
	return cmd
}

func newDecodeCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode <hex>",
		Short: "Decode the compact binary form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := opts.table()
			if err != nil {
				return err
			}
			data, err := hex.DecodeString(args[0])
			if err != nil {
				return err
			}
			m, err := instant.Decode(data, table)
			if err != nil {
				return err
			}
			if opts.JSON {
				out, err := instant.EncodeJSON(m)
				if err != nil {
					return err
				}
				cmd.Println(string(out))
				return nil
			}
			return printReading(cmd, opts, scale.POSIX, m, table)
		},
	}
	return cmd
}
