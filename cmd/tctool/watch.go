package main

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/zsiec/timecode/pkg/timecode"
)

var (
	clockStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#04B575")).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#626262")).
			Padding(0, 2)
	detailStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#A0A0A0"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#626262")).Italic(true)
)

type tickMsg time.Time

func tickEvery(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// watchModel shows the wallclock as a running timecode.
type watchModel struct {
	rate     timecode.Rate
	loc      *time.Location
	interval time.Duration
	tc       timecode.Timecode
	frozen   bool
	quitting bool
}

func newWatchModel(rate timecode.Rate, loc *time.Location, now time.Time) watchModel {
	interval := time.Second
	if fps := rate.Float64(); fps > 0 {
		interval = time.Duration(float64(time.Second) / fps)
	}
	return watchModel{
		rate:     rate,
		loc:      loc,
		interval: interval,
		tc:       timecode.FromTime(now.In(loc), rate),
	}
}

func (m watchModel) Init() tea.Cmd {
	return tickEvery(m.interval)
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case " ":
			m.frozen = !m.frozen
		}
	case tickMsg:
		if !m.frozen {
			m.tc = timecode.FromTime(time.Time(msg).In(m.loc), m.rate)
		}
		return m, tickEvery(m.interval)
	}
	return m, nil
}

func (m watchModel) View() string {
	if m.quitting {
		return ""
	}

	state := "running"
	if m.frozen {
		state = "held"
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		clockStyle.Render(timecode.Format("%T", m.tc)),
		detailStyle.Render(timecode.Format("%Y-%m-%d %z @%f fps", m.tc)+"  "+state),
		helpStyle.Render("space: hold  q: quit"),
	) + "\n"
}

func newWatchCmd(opts *rootOptions) *cobra.Command {
	var utc bool

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Show the current time as a running timecode",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rate, err := opts.parseRate()
			if err != nil {
				return err
			}
			loc := time.Local
			if utc {
				loc = time.UTC
			}

			p := tea.NewProgram(newWatchModel(rate, loc, time.Now()),
				tea.WithInput(cmd.InOrStdin()), tea.WithOutput(cmd.OutOrStdout()))
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("watch: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&utc, "utc", false, "Show UTC instead of local time")
	return cmd
}
