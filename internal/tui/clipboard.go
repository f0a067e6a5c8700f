package tui

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// copyToClipboard copies text to the system clipboard using whichever tool
// the platform provides.
func copyToClipboard(text string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("pbcopy")
	case "linux":
		switch {
		case lookPathOK("wl-copy"):
			cmd = exec.Command("wl-copy")
		case lookPathOK("xclip"):
			cmd = exec.Command("xclip", "-selection", "clipboard")
		case lookPathOK("xsel"):
			cmd = exec.Command("xsel", "--clipboard", "--input")
		default:
			return fmt.Errorf("no clipboard tool: install wl-copy, xclip or xsel")
		}
	default:
		return fmt.Errorf("clipboard not supported on %s", runtime.GOOS)
	}

	cmd.Stdin = strings.NewReader(text)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("clipboard: %w", err)
	}

	return nil
}

func lookPathOK(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}
