package adapter

import (
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"
)

// AboutURL is the project page opened from the about link
const AboutURL = "https://parallax.kr"

// Opener opens links in the configured command or the system default handler
type Opener struct {
	command string   // configured command, empty for system default
	args    []string // additional arguments placed before the URL
	goos    string
	start   func(cmd *exec.Cmd) error
	logger  *slog.Logger
}

// NewOpener creates an Opener. An empty command uses open/xdg-open/start.
func NewOpener(command string, args []string, logger *slog.Logger) *Opener {
	if logger == nil {
		logger = slog.Default()
	}
	return &Opener{
		command: command,
		args:    args,
		goos:    runtime.GOOS,
		start:   (*exec.Cmd).Start,
		logger:  logger,
	}
}

// Open launches url without waiting for the handler to exit
func (o *Opener) Open(url string) error {
	cmd := o.buildCommand(url)
	o.logger.Info("opening link", "command", cmd.Args[0], "url", url)
	if err := o.start(cmd); err != nil {
		o.logger.Error("failed to open link", "url", url, "error", err)
		return fmt.Errorf("open %s: %w", url, err)
	}
	return nil
}

// OpenAbout opens the project page
func (o *Opener) OpenAbout() error {
	return o.Open(AboutURL)
}

func (o *Opener) buildCommand(url string) *exec.Cmd {
	if o.command != "" {
		return o.configured(url)
	}
	return o.systemDefault(url)
}

// configured builds the command for the user's handler
func (o *Opener) configured(url string) *exec.Cmd {
	args := append([]string{}, o.args...)

	// On macOS, GUI apps that are not on PATH are launched with 'open -a'
	if o.goos == "darwin" {
		if _, err := exec.LookPath(o.command); err != nil {
			cmdArgs := []string{"-a", o.command}
			if len(args) > 0 {
				cmdArgs = append(cmdArgs, "--args")
				cmdArgs = append(cmdArgs, args...)
			}
			cmdArgs = append(cmdArgs, url)
			return exec.Command("open", cmdArgs...)
		}
	}

	args = append(args, url)
	return exec.Command(o.command, args...)
}

// systemDefault builds the command for the platform's default handler
func (o *Opener) systemDefault(url string) *exec.Cmd {
	switch o.goos {
	case "darwin":
		return exec.Command("open", url)
	case "windows":
		return exec.Command("cmd", "/c", "start", "", url)
	default:
		// Linux and other Unix-like systems
		return exec.Command("xdg-open", url)
	}
}
