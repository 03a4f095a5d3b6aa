package main

import (
	tea "github.com/charmbracelet/bubbletea"

	"git.sr.ht/~petros/astro/gemini"
)

// Input prompt kinds; carried through ShowInputEvent/InputEvent so
// the UI knows what the answer is for.
const (
	inputNav = iota
	inputQuery
)

type LoadURLEvent struct {
	URL        string
	AddHistory bool
}

type DocumentEvent struct {
	Doc        *gemini.Document
	AddHistory bool
}

type GoBackEvent struct{}
type GoForwardEvent struct{}
type ToggleBookmarkEvent struct {
	URL, Title string
}

type ShowInputEvent struct {
	Prompt string
	Value  string
	Type   int
	// Payload carries the URL a query answer belongs to.
	Payload string
}
type CloseInputEvent struct{}
type InputEvent struct {
	Value   string
	Type    int
	Payload string
}

type ShowMessageEvent struct {
	Message string
}
type CloseMessageEvent struct{}

func fireEvent(msg tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return msg
	}
}
