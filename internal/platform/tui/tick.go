// Package tui provides the Bubble Tea integration for Fruit Catch.
// It renders frames published by the game loop and forwards input to it.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/fruit-catch/internal/loop"
)

// FrameMsg carries the latest loop update to the model.
type FrameMsg loop.Update

// loopStoppedMsg is sent once the loop has exited.
type loopStoppedMsg struct{}

// waitForFrame returns a command that blocks until the loop publishes the
// next update. The model re-issues it after every FrameMsg.
func waitForFrame(l *loop.Loop) tea.Cmd {
	return func() tea.Msg {
		select {
		case u := <-l.Frames():
			return FrameMsg(u)
		case <-l.Done():
			return loopStoppedMsg{}
		}
	}
}
