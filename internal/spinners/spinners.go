package spinners

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/saltyorg/ktx/internal/styles"
	"github.com/saltyorg/ktx/internal/tty"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// GlobalSpinnerStyle holds the default style for the spinner itself.
var GlobalSpinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(styles.ColorMagenta))

var (
	// VerboseMode replaces the animation with plain lines.
	VerboseMode bool
	// Output receives all spinner and status output. Stdout is left alone
	// because it may carry converted texture data.
	Output io.Writer = os.Stderr
)

type TaskFunc func() error

// SpinnerOptions defines the options for creating a spinner.
type SpinnerOptions struct {
	TaskName        string
	Color           string
	StopColor       string
	StopFailColor   string
	StopMessage     string
	StopFailMessage string
}

// SetVerboseMode sets the verbose mode for all spinners. Plain output is
// also forced when stderr is not a terminal.
func SetVerboseMode(verbose bool) {
	VerboseMode = verbose || !tty.IsTerminal(os.Stderr)
}

// RunTaskWithSpinnerContext runs taskFunc behind a spinner labelled message.
// Cancelling ctx stops the spinner and returns ctx.Err() without waiting for
// the task.
func RunTaskWithSpinnerContext(ctx context.Context, message string, taskFunc TaskFunc) error {
	return RunTaskWithSpinnerCustomContext(ctx, SpinnerOptions{TaskName: message}, taskFunc)
}

// RunTaskWithSpinnerCustomContext provides a spinner with custom options.
func RunTaskWithSpinnerCustomContext(ctx context.Context, opts SpinnerOptions, taskFunc TaskFunc) error {
	if opts.TaskName == "" {
		return fmt.Errorf("taskName is required")
	}

	if VerboseMode {
		fmt.Fprintln(Output, opts.TaskName+"...")
		err := taskFunc()
		if err != nil {
			fmt.Fprintf(Output, "%s: failed\n", opts.TaskName)
		} else {
			fmt.Fprintln(Output, opts.TaskName+" completed")
		}
		return err
	}

	if opts.Color == "" {
		opts.Color = styles.ColorYellow
	}
	if opts.StopColor == "" {
		opts.StopColor = styles.ColorMediumGreen
	}
	if opts.StopFailColor == "" {
		opts.StopFailColor = styles.ColorDarkRed
	}
	if opts.StopMessage == "" {
		opts.StopMessage = opts.TaskName
	}
	if opts.StopFailMessage == "" {
		opts.StopFailMessage = opts.TaskName
	}
	return runTaskWithSpinnerContext(ctx, opts, taskFunc)
}

func runTaskWithSpinnerContext(ctx context.Context, opts SpinnerOptions, taskFunc TaskFunc) error {
	errCh := make(chan error, 1)
	wrappedTaskFunc := func() error {
		err := taskFunc()
		errCh <- err
		return err
	}

	// Stdin is never read: it may be the image being converted. Ctrl+C
	// reaches us as SIGINT, which cancels ctx.
	p := tea.NewProgram(newSpinnerModel(opts, wrappedTaskFunc),
		tea.WithContext(ctx),
		tea.WithInput(nil),
		tea.WithOutput(Output),
		tea.WithoutSignalHandler(),
	)

	go func() {
		<-ctx.Done()
		p.Send(quitMsg{})
	}()

	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("failed to run spinner: %w", err)
	}

	select {
	case taskErr := <-errCh:
		return taskErr
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RunInfoSpinner prints an informational message.
func RunInfoSpinner(message string) {
	printStatus(styles.ColorLightBlue, message)
}

// RunWarningSpinner prints a warning message.
func RunWarningSpinner(message string) {
	printStatus(styles.ColorYellow, message)
}

// RunSuccessSpinner prints a completion message.
func RunSuccessSpinner(message string) {
	printStatus(styles.ColorMediumGreen, message)
}

func printStatus(color, message string) {
	if VerboseMode {
		fmt.Fprintln(Output, message)
		return
	}
	fmt.Fprintln(Output, getStyle(color).Render("● "+message))
}

// --- Bubble Tea Model ---

type spinnerModel struct {
	spinner         spinner.Model
	opts            SpinnerOptions
	taskFunc        TaskFunc
	taskErr         error
	finished        bool
	interrupt       bool
	interruptReason string
}

type errMsg struct{ err error }
type successMsg struct{}
type quitMsg struct{}

func newSpinnerModel(opts SpinnerOptions, taskFunc TaskFunc) spinnerModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot
	s.Style = GlobalSpinnerStyle

	return spinnerModel{
		spinner:  s,
		opts:     opts,
		taskFunc: taskFunc,
	}
}

func (m spinnerModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		if err := m.taskFunc(); err != nil {
			return errMsg{err}
		}
		return successMsg{}
	})
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case errMsg:
		m.taskErr = msg.err
		m.finished = true
		return m, tea.Quit
	case successMsg:
		m.finished = true
		return m, tea.Quit
	case quitMsg:
		if m.finished {
			return m, nil
		}
		m.interrupt = true
		m.interruptReason = "interrupted"
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m spinnerModel) View() string {
	if m.interrupt {
		return getStyle(m.opts.StopFailColor).Render(fmt.Sprintf("● %s: %s", m.opts.StopFailMessage, m.interruptReason)) + "\n"
	}
	if m.finished {
		if m.taskErr != nil {
			return getStyle(m.opts.StopFailColor).Render(fmt.Sprintf("● %s: failed", m.opts.StopFailMessage)) + "\n"
		}
		return getStyle(m.opts.StopColor).Render("● "+m.opts.StopMessage) + "\n"
	}

	styledTaskName := getStyle(m.opts.Color).Render(m.opts.TaskName)
	return fmt.Sprintf("%s %s", m.spinner.View(), styledTaskName)
}

func getStyle(colorName string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(colorName))
}
