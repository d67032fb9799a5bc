package speech

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"testing"
)

func fakeLookPath(found ...string) func(string) (string, error) {
	return func(name string) (string, error) {
		for _, f := range found {
			if f == name {
				return "/usr/bin/" + name, nil
			}
		}
		return "", exec.ErrNotFound
	}
}

func TestDetectProbesCandidatesInOrder(t *testing.T) {
	sp, err := detect("", fakeLookPath("say", "espeak"))
	if err != nil {
		t.Fatalf("detect: %v", err)
	}
	if sp.Path != "/usr/bin/espeak" {
		t.Fatalf("expected espeak first, got %s", sp.Path)
	}
}

func TestDetectNothingFound(t *testing.T) {
	if _, err := detect("auto", fakeLookPath()); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestDetectDisabled(t *testing.T) {
	if _, err := detect("off", fakeLookPath("espeak")); !errors.Is(err, ErrDisabled) {
		t.Fatalf("expected ErrDisabled, got %v", err)
	}
}

func TestDetectExplicitCommand(t *testing.T) {
	sp, err := detect("espeak -s 120", fakeLookPath("espeak"))
	if err != nil {
		t.Fatalf("detect: %v", err)
	}
	if len(sp.Args) != 2 || sp.Args[0] != "-s" || sp.Args[1] != "120" {
		t.Fatalf("unexpected args %v", sp.Args)
	}
	if _, err := detect("festival", fakeLookPath("espeak")); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable for missing command, got %v", err)
	}
}

func TestSpeakRunsCommand(t *testing.T) {
	path, err := exec.LookPath("true")
	if err != nil {
		t.Skip("true not available")
	}
	sp := &Exec{Path: path}
	if err := sp.Speak(context.Background(), "go, went, gone"); err != nil {
		t.Fatalf("speak: %v", err)
	}
}

func TestSpeakReportsFailure(t *testing.T) {
	path, err := exec.LookPath("false")
	if err != nil {
		t.Skip("false not available")
	}
	sp := &Exec{Path: path}
	if err := sp.Speak(context.Background(), "go"); err == nil {
		t.Fatalf("expected failure")
	}
}

func TestPhraseAndBell(t *testing.T) {
	if got := Phrase("go", "went", "gone"); got != "go, went, gone" {
		t.Fatalf("unexpected phrase %q", got)
	}
	var buf bytes.Buffer
	if err := Bell(&buf); err != nil || buf.String() != "\a" {
		t.Fatalf("unexpected bell output %q err=%v", buf.String(), err)
	}
}
