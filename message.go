package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"git.sr.ht/~petros/astro/text"
)

type Message struct {
	Message string
}

func (m Message) Update(msg tea.Msg) (Message, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "enter", "q", "esc":
			return m, fireEvent(CloseMessageEvent{})
		}
	}
	return m, nil
}

func (m Message) View() string {
	return fmt.Sprintf("%s\n\nPress ENTER or q to continue", text.Wrap(m.Message, 80))
}
