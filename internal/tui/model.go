package tui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	apperrors "github.com/agbru/recipsum/internal/errors"
	"github.com/agbru/recipsum/internal/format"
	"github.com/agbru/recipsum/internal/orchestration"
	"github.com/agbru/recipsum/internal/sysmon"
)

// Layout and sampling constants.
const (
	TickInterval  = 500 * time.Millisecond
	CPUHistoryLen = 40
)

// Session describes what the dashboard runs.
type Session struct {
	Reducers []orchestration.Reducer
	Input    []float64
	Options  orchestration.PresentationOptions
	// Recorder, when non-nil, observes every strategy run.
	Recorder orchestration.RunRecorder
	Version  string
}

// ExecutionState holds the run-related fields of a dashboard session.
type ExecutionState struct {
	ctx        context.Context
	cancel     context.CancelFunc
	generation uint64
	done       bool
	exitCode   int
}

// strategyRow is the displayed state of one strategy.
type strategyRow struct {
	name     string
	finished bool
	// analyzed is set once the row holds the compared value.
	analyzed bool
	result   orchestration.StrategyResult
}

// Model is the root bubbletea model of the dashboard.
type Model struct {
	header  HeaderModel
	spinner spinner.Model
	keymap  KeyMap
	cpu     *RingBuffer
	memPct  float64

	rows   []strategyRow
	final  *orchestration.StrategyResult
	runErr error

	ExecutionState

	session   Session
	parentCtx context.Context
	ref       *programRef
	width     int
}

// NewModel creates a dashboard model; the run starts with Init.
func NewModel(parentCtx context.Context, s Session) Model {
	ctx, cancel := context.WithCancel(parentCtx)
	sp := spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(statusRunningStyle))
	return Model{
		header:  NewHeaderModel(s.Version, s.Options.Size),
		spinner: sp,
		keymap:  DefaultKeyMap(),
		cpu:     NewRingBuffer(CPUHistoryLen),
		rows:    newRows(s.Reducers),
		ExecutionState: ExecutionState{
			ctx:      ctx,
			cancel:   cancel,
			exitCode: apperrors.ExitSuccess,
		},
		session:   s,
		parentCtx: parentCtx,
		ref:       &programRef{},
	}
}

func newRows(reducers []orchestration.Reducer) []strategyRow {
	rows := make([]strategyRow, len(reducers))
	for i, r := range reducers {
		rows[i] = strategyRow{name: r.Name()}
	}
	return rows
}

// ExitCode returns the exit code of the last finished run.
func (m Model) ExitCode() int { return m.exitCode }

// Init starts the run, the spinner and the sampling ticker.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		tickCmd(),
		startRunCmd(m.ref, m.ctx, m.session, m.generation),
		watchContextCmd(m.ctx, m.generation),
	)
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.header.SetWidth(msg.Width)
		return m, nil

	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case ProgressMsg:
		if msg.Generation != m.generation {
			return m, nil
		}
		if i := msg.Update.Index; i >= 0 && i < len(m.rows) {
			m.rows[i].finished = true
			m.rows[i].result = orchestration.StrategyResult{
				Name:     msg.Update.Name,
				Duration: msg.Update.Duration,
				Err:      msg.Update.Err,
			}
		}
		return m, nil

	case ComparisonResultsMsg:
		if msg.Generation != m.generation {
			return m, nil
		}
		m.rows = m.rows[:0]
		for _, r := range msg.Results {
			m.rows = append(m.rows, strategyRow{name: r.Name, finished: true, analyzed: true, result: r})
		}
		return m, nil

	case FinalResultMsg:
		if msg.Generation == m.generation {
			res := msg.Result
			m.final = &res
		}
		return m, nil

	case ErrorMsg:
		if msg.Generation == m.generation {
			m.runErr = msg.Err
		}
		return m, nil

	case RunCompleteMsg:
		if msg.Generation != m.generation {
			return m, nil
		}
		m.done = true
		m.exitCode = msg.ExitCode
		m.header.SetDone()
		return m, nil

	case ContextCancelledMsg:
		if msg.Generation != m.generation {
			return m, nil
		}
		m.done = true
		m.header.SetDone()
		if m.exitCode == apperrors.ExitSuccess {
			m.exitCode = apperrors.ExitCodeFor(msg.Err)
		}
		return m, tea.Quit

	case TickMsg:
		if m.done {
			return m, nil
		}
		return m, tea.Batch(sampleSysStatsCmd(m.ctx), tickCmd())

	case SysStatsMsg:
		m.cpu.Push(msg.CPUPercent)
		m.memPct = msg.MemPercent
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		if !m.done {
			m.exitCode = apperrors.ExitErrorCanceled
		}
		m.cancel()
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Rerun):
		if !m.done {
			return m, nil
		}
		m.cancel()
		m.generation++
		m.ctx, m.cancel = context.WithCancel(m.parentCtx)
		m.header.Reset()
		m.cpu.Reset()
		m.rows = newRows(m.session.Reducers)
		m.final, m.runErr = nil, nil
		m.done = false
		m.exitCode = apperrors.ExitSuccess
		return m, tea.Batch(
			m.spinner.Tick,
			tickCmd(),
			startRunCmd(m.ref, m.ctx, m.session, m.generation),
			watchContextCmd(m.ctx, m.generation),
		)
	}
	return m, nil
}

// View renders the dashboard.
func (m Model) View() string {
	var body strings.Builder
	for _, row := range m.rows {
		body.WriteString(m.renderRow(row))
		body.WriteByte('\n')
	}
	body.WriteString("\n")
	body.WriteString(m.renderStatus())

	cpu := dimStyle.Render("CPU ") + cpuSparklineStyle.Render(RenderSparkline(m.cpu.Slice())) +
		dimStyle.Render(fmt.Sprintf(" %5.1f%%  MEM %5.1f%%", m.cpu.Last(), m.memPct))

	footer := footerKeyStyle.Render(m.keymap.Quit.Help().Key) + dimStyle.Render(" "+m.keymap.Quit.Help().Desc)
	if m.done {
		footer += dimStyle.Render("  ") + footerKeyStyle.Render(m.keymap.Rerun.Help().Key) +
			dimStyle.Render(" "+m.keymap.Rerun.Help().Desc)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.header.View(),
		panelStyle.Render(strings.TrimRight(body.String(), "\n")),
		cpu,
		footer,
	)
}

func (m Model) renderRow(row strategyRow) string {
	name := strategyStyle.Render(row.name)
	if !row.finished {
		return name + m.spinner.View() + dimStyle.Render(" running")
	}
	res := row.result
	duration := format.FormatExecutionDuration(res.Duration)
	switch {
	case res.Err != nil:
		return name + errorStyle.Render(fmt.Sprintf("failed after %s: %v", duration, res.Err))
	case res.Mismatch:
		return name + warningStyle.Render(fmt.Sprintf("%s  %s  mismatch", duration, format.FormatValue(res.Value)))
	case !row.analyzed:
		return name + successStyle.Render("done in "+duration)
	}
	return name + successStyle.Render(duration) + "  " + valueStyle.Render(format.FormatValue(res.Value))
}

func (m Model) renderStatus() string {
	switch {
	case !m.done:
		return statusRunningStyle.Render("Running...")
	case m.runErr != nil:
		return errorStyle.Render(fmt.Sprintf("Failure: %v", m.runErr))
	case m.exitCode == apperrors.ExitErrorMismatch:
		return errorStyle.Render("CRITICAL ERROR! Strategy results disagree.")
	case m.final != nil:
		return statusDoneStyle.Render(fmt.Sprintf("Sum of reciprocals of %s elements = %s",
			format.FormatCount(m.session.Options.Size), format.FormatValue(m.final.Value)))
	}
	return statusDoneStyle.Render("Done.")
}

// Run starts the dashboard, blocks until the user quits and returns the
// exit code of the last run.
func Run(ctx context.Context, s Session) int {
	initTUIStyles()

	model := NewModel(ctx, s)
	defer model.cancel()

	p := tea.NewProgram(model, tea.WithAltScreen())
	model.ref.SetProgram(p)

	finalModel, err := p.Run()
	if err != nil {
		return apperrors.ExitErrorGeneric
	}
	if m, ok := finalModel.(Model); ok {
		m.cancel()
		return m.exitCode
	}
	return apperrors.ExitSuccess
}

// startRunCmd runs every strategy and the analysis, reporting through ref.
func startRunCmd(ref *programRef, ctx context.Context, s Session, gen uint64) tea.Cmd {
	return func() tea.Msg {
		reporter := &TUIProgressReporter{ref: ref, generation: gen}
		presenter := &TUIResultPresenter{ref: ref, generation: gen}

		results := orchestration.ExecuteStrategies(ctx, s.Reducers, s.Input, reporter, s.Recorder, io.Discard)
		exitCode := orchestration.AnalyzeResults(results, s.Options, presenter, presenter, io.Discard)
		return RunCompleteMsg{ExitCode: exitCode, Generation: gen}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(TickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func sampleSysStatsCmd(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		s := sysmon.Sample(ctx)
		return SysStatsMsg{CPUPercent: s.CPUPercent, MemPercent: s.MemPercent}
	}
}

// watchContextCmd reports the end of the run context.
func watchContextCmd(ctx context.Context, gen uint64) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return ContextCancelledMsg{Err: ctx.Err(), Generation: gen}
	}
}
