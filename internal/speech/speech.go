// Package speech reads verbs aloud through a system synthesizer.
package speech

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// ErrUnavailable reports that no synthesizer could be found.
var ErrUnavailable = errors.New("no speech synthesizer found")

// ErrDisabled reports that speech was turned off in the config.
var ErrDisabled = errors.New("speech is disabled")

// Speaker reads text aloud.
type Speaker interface {
	Speak(ctx context.Context, text string) error
}

// candidates are probed in order when no synthesizer is configured.
var candidates = []string{"espeak-ng", "espeak", "spd-say", "say"}

// Exec speaks by running a synthesizer command with the text as last argument.
type Exec struct {
	Path string
	Args []string
}

// Detect resolves preference to a synthesizer. An empty preference or "auto"
// probes the known synthesizers, "off" disables speech, anything else is a
// command line whose first field is looked up in PATH.
func Detect(preference string) (*Exec, error) {
	return detect(preference, exec.LookPath)
}

func detect(preference string, lookPath func(string) (string, error)) (*Exec, error) {
	preference = strings.TrimSpace(preference)
	switch strings.ToLower(preference) {
	case "off", "none", "false":
		return nil, ErrDisabled
	case "", "auto":
		for _, name := range candidates {
			if path, err := lookPath(name); err == nil {
				return &Exec{Path: path}, nil
			}
		}
		return nil, ErrUnavailable
	}
	parts := strings.Fields(preference)
	path, err := lookPath(parts[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnavailable, parts[0])
	}
	return &Exec{Path: path, Args: parts[1:]}, nil
}

// Speak runs the synthesizer and waits for it to finish.
func (e *Exec) Speak(ctx context.Context, text string) error {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	args := append(append([]string(nil), e.Args...), text)
	cmd := exec.CommandContext(ctx, e.Path, args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		msg := strings.TrimSpace(string(out))
		if msg != "" {
			return fmt.Errorf("failed to speak: %w: %s", err, msg)
		}
		return fmt.Errorf("failed to speak: %w", err)
	}
	return nil
}

// Phrase returns the text read aloud for a verb and its past forms.
func Phrase(verb, past, participle string) string {
	return strings.Join([]string{verb, past, participle}, ", ")
}

// Bell rings the terminal bell on w.
func Bell(w io.Writer) error {
	if _, err := io.WriteString(w, "\a"); err != nil {
		return fmt.Errorf("failed to ring bell: %w", err)
	}
	return nil
}
