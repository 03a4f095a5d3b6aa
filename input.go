package main

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type Input struct {
	Prompt  string
	Type    int
	Payload string
	input   textinput.Model
}

func NewInput() Input {
	ti := textinput.NewModel()
	ti.CharLimit = 1024
	ti.Width = 50
	return Input{input: ti}
}

func (inp Input) Show(ev ShowInputEvent) Input {
	inp.Prompt = ev.Prompt
	inp.Type = ev.Type
	inp.Payload = ev.Payload
	inp.input.SetValue(ev.Value)
	inp.input.CursorEnd()
	inp.input.Focus()
	return inp
}

func (inp Input) Update(msg tea.Msg) (Input, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "enter":
			inp.input.Blur()
			return inp, fireEvent(InputEvent{Value: inp.input.Value(), Type: inp.Type, Payload: inp.Payload})
		case "esc", "ctrl+q":
			inp.input.Blur()
			return inp, fireEvent(CloseInputEvent{})
		}
	}
	inp.input, cmd = inp.input.Update(msg)
	cmds = append(cmds, cmd)
	return inp, tea.Batch(cmds...)
}

func (inp Input) View() string {
	return fmt.Sprintf("%s %s\n\nPress ENTER to continue or ESC to cancel", inp.Prompt, inp.input.View())
}
