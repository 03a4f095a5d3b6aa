package main

import (
	"fmt"
	"os/exec"
	"runtime"
)

// osOpenURL hands a URL to the platform's default opener; used for
// http/https links, which this program does not render itself.
func osOpenURL(url string) error {
	var opener string
	switch runtime.GOOS {
	case "windows":
		opener = "start"
	case "darwin":
		opener = "open"
	default:
		opener = "xdg-open"
	}
	if err := exec.Command(opener, url).Start(); err != nil {
		return fmt.Errorf("could not open URL: %w", err)
	}
	return nil
}
