package ui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lukeapage/flow-to-ts/internal/driver"
)

// RunProgress runs fn with a progress sink wired to an interactive view on
// out and returns once both the work and the view have finished.
func RunProgress(ctx context.Context, out io.Writer, title string, files []string, fn func(driver.ProgressSink) error) error {
	events := make(chan driver.Event, 64)
	prog := tea.NewProgram(
		NewProgressModel(title, files, events),
		tea.WithOutput(out),
		tea.WithContext(ctx),
	)

	workErr := make(chan error, 1)
	go func() {
		err := fn(driver.ChannelSink{Ch: events})
		close(events)
		workErr <- err
	}()

	_, uiErr := prog.Run()
	// вид мог закрыться досрочно: дочитываем события, чтобы работа не встала
	go func() {
		for range events {
		}
	}()
	if err := <-workErr; err != nil {
		return err
	}
	return uiErr
}
