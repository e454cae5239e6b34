package adapter

import (
	"errors"
	"os/exec"
	"slices"
	"testing"
)

func TestOpener_SystemDefault(t *testing.T) {
	tests := []struct {
		goos string
		want []string
	}{
		{"darwin", []string{"open", AboutURL}},
		{"windows", []string{"cmd", "/c", "start", "", AboutURL}},
		{"linux", []string{"xdg-open", AboutURL}},
		{"freebsd", []string{"xdg-open", AboutURL}},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			var started []string
			o := NewOpener("", nil, NullLogger())
			o.goos = tt.goos
			o.start = func(cmd *exec.Cmd) error {
				started = cmd.Args
				return nil
			}

			if err := o.OpenAbout(); err != nil {
				t.Fatalf("OpenAbout returned error: %v", err)
			}
			if !slices.Equal(started, tt.want) {
				t.Fatalf("started %v, want %v", started, tt.want)
			}
		})
	}
}

func TestOpener_ConfiguredCommand(t *testing.T) {
	var started []string
	o := NewOpener("firefox", []string{"--new-tab"}, NullLogger())
	o.goos = "linux"
	o.start = func(cmd *exec.Cmd) error {
		started = cmd.Args
		return nil
	}

	if err := o.Open("https://example.org/a.jpg"); err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	want := []string{"firefox", "--new-tab", "https://example.org/a.jpg"}
	if !slices.Equal(started, want) {
		t.Fatalf("started %v, want %v", started, want)
	}
}

func TestOpener_StartError(t *testing.T) {
	o := NewOpener("", nil, NullLogger())
	o.goos = "linux"
	boom := errors.New("boom")
	o.start = func(*exec.Cmd) error { return boom }

	if err := o.Open(AboutURL); !errors.Is(err, boom) {
		t.Fatalf("Open error = %v, want wrapped boom", err)
	}
}
