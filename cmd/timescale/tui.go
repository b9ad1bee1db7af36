package main

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/BYTE-6D65/timescale/pkg/clock"
	"github.com/BYTE-6D65/timescale/pkg/instant"
	"github.com/BYTE-6D65/timescale/pkg/leapsecond"
	"github.com/BYTE-6D65/timescale/pkg/scale"
)

// Styles
var (
	watchTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7D56F4")).
			PaddingLeft(2)

	scaleNameStyle = lipgloss.NewStyle().
			Bold(true).
			Width(7).
			PaddingLeft(4)

	readingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#50FA7B"))

	leapStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF5555"))

	watchHelpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262")).
			PaddingTop(1).
			PaddingLeft(2)

	watchErrStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#FF5555")).
			Foreground(lipgloss.Color("#FF5555")).
			Padding(0, 2).
			MarginLeft(2)
)

type tickMsg time.Time

type watchModel struct {
	clk     clock.Clock
	table   *leapsecond.Table
	current instant.Instant
	err     error
}

func (m watchModel) Init() tea.Cmd {
	return watchTick()
}

func watchTick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	case tickMsg:
		m.current, m.err = m.clk.Now()
		return m, watchTick()
	}
	return m, nil
}

func (m watchModel) View() string {
	s := watchTitleStyle.Render("timescale watch") + "\n\n"
	if m.err != nil {
		s += watchErrStyle.Render(fmt.Sprintf("clock error: %v", m.err)) + "\n"
		return s
	}
	for _, sc := range scale.All() {
		elapsed, err := m.current.ElapsedTime(sc, m.table)
		if err != nil {
			s += scaleNameStyle.Render(sc.String()) + " unavailable\n"
			continue
		}
		line := readingStyle.Render(formatEpoch(elapsed, m.current.Nanosecond()))
		if sc == scale.UTC && m.current.IsLeapSecond(m.table) {
			line += " " + leapStyle.Render("LEAP SECOND")
		}
		s += scaleNameStyle.Render(sc.String()) + " " + line + "\n"
	}
	s += watchHelpStyle.Render("q to quit")
	return s
}

func newWatchCommand(opts *rootOptions) *cobra.Command {
	var monotonic bool

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Live view of the current instant on every scale",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := opts.table()
			if err != nil {
				return err
			}
			var src clock.Clock
			if monotonic {
				src, err = clock.NewMonotonicClock("watch", clock.NewSystemTicks(), table, nil)
				if err != nil {
					return err
				}
			} else {
				src = clock.NewSystemClock(nil)
			}
			m := watchModel{clk: src, table: table}
			m.current, m.err = src.Now()
			_, err = tea.NewProgram(m).Run()
			return err
		},
	}
	cmd.Flags().BoolVar(&monotonic, "monotonic", false, "use the calibrated monotonic clock")
	return cmd
}
