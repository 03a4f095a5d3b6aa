package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	neturl "net/url"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"git.sr.ht/~petros/astro/internal/browser"
)

var (
	flagStateDir string
	flagTrustAll bool
	flagDebug    bool
)

func main() {
	root := &cobra.Command{
		Use:   "astro [url]",
		Short: "A terminal browser for the Gemini protocol",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var startURL string
			if len(args) > 0 {
				startURL = args[0]
			}
			return runTUI(startURL)
		},
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&flagStateDir, "state-dir", "",
		"directory for bookmarks and pinned certificates (default: user config dir)")
	root.PersistentFlags().BoolVar(&flagTrustAll, "trust-all", false,
		"skip certificate pinning checks")
	root.PersistentFlags().BoolVar(&flagDebug, "debug", false,
		"write a debug log to the state dir")

	fetch := &cobra.Command{
		Use:   "fetch <url>",
		Short: "Fetch a single page and print it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			elements, _ := cmd.Flags().GetBool("elements")
			return runFetch(cmd.OutOrStdout(), args[0], elements)
		},
	}
	fetch.Flags().Bool("elements", false, "print the typed line elements instead of the body")
	root.AddCommand(fetch)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func stateDir() (string, error) {
	if flagStateDir != "" {
		return flagStateDir, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "astro"), nil
}

func setupLogging(dir string) error {
	if !flagDebug {
		log.SetLevel(log.FatalLevel)
		return nil
	}
	f, err := os.OpenFile(filepath.Join(dir, "debug.log"),
		os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	// The TUI owns the terminal, so logs go to a file.
	log.SetOutput(f)
	log.SetLevel(log.DebugLevel)
	log.SetReportTimestamp(true)
	return nil
}

func runTUI(startURL string) error {
	dir, err := stateDir()
	if err != nil {
		return err
	}
	b, err := browser.New(dir, flagTrustAll)
	if err != nil {
		return err
	}
	if err := setupLogging(dir); err != nil {
		return err
	}
	log.Debug("starting", "url", startURL)

	p := tea.NewProgram(NewUI(b, startURL))
	p.EnterAltScreen()
	defer p.ExitAltScreen()
	p.EnableMouseCellMotion()
	defer p.DisableMouseCellMotion()
	return p.Start()
}

// runFetch does one blocking fetch, answering status-1 prompts from
// the terminal.
func runFetch(out io.Writer, url string, elements bool) error {
	dir, err := stateDir()
	if err != nil {
		return err
	}
	b, err := browser.New(dir, flagTrustAll)
	if err != nil {
		return err
	}
	log.SetLevel(log.FatalLevel)

	stdin := bufio.NewScanner(os.Stdin)
	input := func(prompt string, maxLen int) (string, bool) {
		fmt.Fprintf(os.Stderr, "%s: ", prompt)
		if !stdin.Scan() {
			return "", false
		}
		answer := neturl.QueryEscape(strings.TrimSpace(stdin.Text()))
		if len(answer) > maxLen {
			return "", false
		}
		return answer, true
	}

	doc := b.Load(context.Background(), url, input)
	if elements {
		for _, el := range doc.Elements {
			fmt.Fprintf(out, "%-13s %s\n", el.Type, el.Text(doc.Content))
		}
	} else {
		body, err := doc.Text()
		if err != nil {
			body = string(doc.Content)
		}
		fmt.Fprintln(out, body)
	}
	if doc.Status.Failed() {
		return fmt.Errorf("%s: %s", url, doc.Status)
	}
	return nil
}
