package main

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"git.sr.ht/~petros/astro/gemini"
	"git.sr.ht/~petros/astro/internal/browser"
	"git.sr.ht/~petros/astro/text"
)

const headerHeight = 2

type Viewport struct {
	viewport viewport.Model
	spinner  spinner.Model
	ready    bool
	loading  bool

	URL       string
	title     string
	doc       *gemini.Document
	links     text.Links
	lastEvent tea.MouseEventType
	startURL  string
}

func NewViewport(startURL string) Viewport {
	s := spinner.NewModel()
	s.Spinner = spinner.Points
	return Viewport{spinner: s, startURL: startURL}
}

// SetDocument renders doc into the viewport and scrolls to the top.
func (v Viewport) SetDocument(doc *gemini.Document) Viewport {
	v.doc = doc
	v.URL = doc.URL
	var content string
	content, v.links, v.title = render(doc, v.viewport.Width)
	v.viewport.SetContent(content)
	v.viewport.GotoTop()
	return v
}

func (v Viewport) Update(msg tea.Msg) (Viewport, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		verticalMargins := headerHeight + footerHeight
		if !v.ready {
			v.viewport = viewport.Model{Width: msg.Width, Height: msg.Height - verticalMargins}
			v.viewport.YPosition = headerHeight
			v.viewport.SetContent("")
			v.ready = true
			startURL := v.startURL
			if startURL == "" {
				startURL = browser.Home
			}
			v.loading = true
			cmds = append(cmds, fireEvent(LoadURLEvent{URL: startURL, AddHistory: true}), spinner.Tick)
		} else {
			v.viewport.Width = msg.Width
			v.viewport.Height = msg.Height - verticalMargins
			if v.doc != nil {
				v = v.SetDocument(v.doc)
			}
		}
	case DocumentEvent:
		v.loading = false
		v = v.SetDocument(msg.Doc)
	case tea.MouseMsg:
		v, cmd = v.handleMouse(msg)
		cmds = append(cmds, cmd)
	case tea.KeyMsg:
		switch msg.String() {
		case "g":
			return v, fireEvent(ShowInputEvent{Prompt: "Go to", Value: v.URL, Type: inputNav})
		case "h":
			return v, fireEvent(LoadURLEvent{URL: browser.Home, AddHistory: true})
		case "b":
			return v, fireEvent(ToggleBookmarkEvent{URL: v.URL, Title: v.title})
		case "r":
			v.loading = true
			return v, tea.Batch(fireEvent(LoadURLEvent{URL: v.URL}), spinner.Tick)
		case "left", "u":
			return v, fireEvent(GoBackEvent{})
		case "right":
			return v, fireEvent(GoForwardEvent{})
		case "q", "ctrl+c":
			return v, tea.Quit
		}
	}

	if v.loading {
		v.spinner, cmd = v.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}
	v.viewport, cmd = v.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return v, tea.Batch(cmds...)
}

func (v Viewport) handleMouse(msg tea.MouseMsg) (Viewport, tea.Cmd) {
	switch msg.Type {
	case tea.MouseLeft, tea.MouseRight:
		v.lastEvent = msg.Type
	case tea.MouseRelease:
		switch v.lastEvent {
		case tea.MouseLeft:
			if msg.Y >= headerHeight && msg.Y < headerHeight+v.viewport.Height {
				ypos := v.viewport.YOffset + msg.Y - headerHeight
				if link := v.links.At(ypos); link != nil {
					return v, fireEvent(LoadURLEvent{URL: link.URL, AddHistory: true})
				}
			}
		case tea.MouseRight:
			return v, fireEvent(GoBackEvent{})
		}
	}
	return v, nil
}

func (v Viewport) View() string {
	if !v.ready {
		return "\n  Initializing..."
	}
	header := v.title
	if v.loading {
		header += fmt.Sprintf(" :: %s", v.spinner.View())
	}
	return fmt.Sprintf("%s\n%s\n%s", header, v.URL, v.viewport.View())
}

// StartLoading flips the spinner on; the actual fetch is driven by
// the top-level model.
func (v Viewport) StartLoading() (Viewport, tea.Cmd) {
	v.loading = true
	return v, spinner.Tick
}

func (v Viewport) ScrollStatus() string {
	if !v.ready {
		return ""
	}
	return fmt.Sprintf("%3.f%%", v.viewport.ScrollPercent()*100)
}
