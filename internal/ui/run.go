package ui

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"paracell/internal/driver"
)

// Run renders the progress of work until it returns. Events that work
// emits through the sink are forwarded to the view; the view exits once
// work is done and every event has been drawn.
func Run(out io.Writer, title string, files []string, work func(driver.ProgressSink) error) error {
	events := make(chan driver.Event, 64)
	model := NewProgressModel(title, files, events)
	prog := tea.NewProgram(model, tea.WithOutput(out), tea.WithInput(nil))

	errCh := make(chan error, 1)
	go func() {
		errCh <- work(driver.ChannelSink{Ch: events})
		close(events)
	}()
	_, runErr := prog.Run()
	// the view may quit early; keep work from blocking on a full channel
	go func() {
		for range events {
		}
	}()
	if err := <-errCh; err != nil {
		return err
	}
	return runErr
}
