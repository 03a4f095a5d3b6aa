package main

import (
	"context"
	neturl "net/url"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"git.sr.ht/~petros/astro/gemini"
	"git.sr.ht/~petros/astro/internal/browser"
)

type mode int

const (
	modePage mode = iota
	modeInput
	modeMessage
)

const fetchTimeout = 30 * time.Second

type UI struct {
	browser  *browser.Browser
	mode     mode
	viewport Viewport
	input    Input
	message  Message
	footer   Footer
}

func NewUI(b *browser.Browser, startURL string) UI {
	return UI{
		browser:  b,
		viewport: NewViewport(startURL),
		input:    NewInput(),
	}
}

func (ui UI) Init() tea.Cmd {
	return nil
}

func (ui UI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		ui.footer = ui.footer.Resize(msg.Width)
		ui.viewport, cmd = ui.viewport.Update(msg)
		return ui, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return ui, tea.Quit
		}

	case LoadURLEvent:
		return ui.loadURL(msg.URL, msg.AddHistory)

	case DocumentEvent:
		doc := msg.Doc
		log.Debug("document loaded", "url", doc.URL, "status", doc.Status.String(),
			"elements", len(doc.Elements))
		if doc.Status == gemini.StatusInputRequired {
			ui.mode = modeInput
			ui.input = ui.input.Show(ShowInputEvent{
				Prompt:  doc.Prompt,
				Type:    inputQuery,
				Payload: doc.URL,
			})
			ui.viewport.loading = false
			return ui, nil
		}
		if msg.AddHistory && doc.Status == gemini.StatusSuccess {
			ui.browser.History.Add(doc.URL)
		}
		ui.mode = modePage
		ui.viewport, cmd = ui.viewport.Update(msg)
		return ui, cmd

	case GoBackEvent:
		if url, ok := ui.browser.History.Back(); ok {
			return ui.loadURL(url, false)
		}
		return ui, nil
	case GoForwardEvent:
		if url, ok := ui.browser.History.Forward(); ok {
			return ui.loadURL(url, false)
		}
		return ui, nil

	case ToggleBookmarkEvent:
		return ui.toggleBookmark(msg)

	case ShowInputEvent:
		ui.mode = modeInput
		ui.input = ui.input.Show(msg)
		return ui, nil
	case CloseInputEvent:
		ui.mode = modePage
		return ui, nil
	case InputEvent:
		ui.mode = modePage
		switch msg.Type {
		case inputQuery:
			url := msg.Payload + "?" + neturl.QueryEscape(msg.Value)
			return ui.loadURL(url, true)
		default:
			return ui.loadURL(msg.Value, true)
		}

	case ShowMessageEvent:
		ui.mode = modeMessage
		ui.message = Message{Message: msg.Message}
		return ui, nil
	case CloseMessageEvent:
		ui.mode = modePage
		return ui, nil
	}

	switch ui.mode {
	case modeInput:
		ui.input, cmd = ui.input.Update(msg)
		cmds = append(cmds, cmd)
	case modeMessage:
		ui.message, cmd = ui.message.Update(msg)
		cmds = append(cmds, cmd)
	default:
		ui.viewport, cmd = ui.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}
	return ui, tea.Batch(cmds...)
}

// loadURL kicks off an asynchronous fetch. Non-gemini schemes are
// handed to the system browser instead.
func (ui UI) loadURL(url string, addHistory bool) (UI, tea.Cmd) {
	switch {
	case url == browser.Home || strings.HasPrefix(url, "gemini://"):
	case strings.HasPrefix(url, "http://"), strings.HasPrefix(url, "https://"):
		if err := osOpenURL(url); err != nil {
			log.Error("open in web browser", "url", url, "err", err)
			ui.mode = modeMessage
			ui.message = Message{Message: "Could not open " + url}
		}
		return ui, nil
	default:
		ui.mode = modeMessage
		ui.message = Message{Message: "Unsupported URL: " + url}
		return ui, nil
	}

	var cmd tea.Cmd
	ui.viewport, cmd = ui.viewport.StartLoading()
	b := ui.browser
	fetch := func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		return DocumentEvent{Doc: b.Load(ctx, url, nil), AddHistory: addHistory}
	}
	return ui, tea.Batch(cmd, fetch)
}

func (ui UI) toggleBookmark(ev ToggleBookmarkEvent) (UI, tea.Cmd) {
	if ev.URL == "" || ev.URL == browser.Home {
		return ui, nil
	}
	if ui.browser.Bookmarks.Contains(ev.URL) {
		if err := ui.browser.Bookmarks.Remove(ev.URL); err != nil {
			log.Error("remove bookmark", "err", err)
			return ui, nil
		}
		return ui, fireEvent(ShowMessageEvent{Message: "Bookmark removed: " + ev.URL})
	}
	if err := ui.browser.Bookmarks.Add(ev.URL, ev.Title); err != nil {
		log.Error("add bookmark", "err", err)
		return ui, nil
	}
	return ui, fireEvent(ShowMessageEvent{Message: "Bookmark added: " + ev.Title})
}

func (ui UI) View() string {
	switch ui.mode {
	case modeInput:
		return ui.input.View()
	case modeMessage:
		return ui.message.View()
	default:
		return ui.viewport.View() + "\n" +
			ui.footer.View(ui.viewport.ScrollStatus(), ui.browser.History.Status())
	}
}
