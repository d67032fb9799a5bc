package catalog

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/verte-zerg/verbroulette/internal/model"
)

func TestDefaultCatalog(t *testing.T) {
	verbs := Default()
	if len(verbs) != Size {
		t.Fatalf("expected %d verbs, got %d", Size, len(verbs))
	}
	regular, irregular := CountByKind(verbs)
	if regular != 50 || irregular != 50 {
		t.Fatalf("expected 50/50 split, got %d/%d", regular, irregular)
	}
	if err := Validate(verbs); err != nil {
		t.Fatalf("default catalog invalid: %v", err)
	}
}

func TestDefaultReturnsCopy(t *testing.T) {
	verbs := Default()
	verbs[0].Verb = "mutated"
	if Default()[0].Verb == "mutated" {
		t.Fatalf("expected Default to return an independent copy")
	}
}

func TestValidateRejectsBadCatalogs(t *testing.T) {
	if err := Validate(nil); !errors.Is(err, ErrEmptyCatalog) {
		t.Fatalf("expected ErrEmptyCatalog, got %v", err)
	}
	dup := []model.VerbRecord{
		{Verb: "go", Kind: model.Irregular, Past: "went", PastParticiple: "gone"},
		{Verb: "Go", Kind: model.Irregular, Past: "went", PastParticiple: "gone"},
	}
	if err := Validate(dup); err == nil {
		t.Fatalf("expected duplicate verb to be rejected")
	}
	badKind := []model.VerbRecord{{Verb: "go", Kind: "strong", Past: "went", PastParticiple: "gone"}}
	if err := Validate(badKind); err == nil {
		t.Fatalf("expected unknown kind to be rejected")
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, Default()[:3]); err != nil {
		t.Fatalf("encode: %v", err)
	}
	verbs, err := Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(verbs) != 3 || verbs[0].Verb != "accept" {
		t.Fatalf("unexpected verbs: %+v", verbs)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "verbs.yaml")
	data := strings.Join([]string{
		"verbs:",
		"  - verb: swim",
		"    kind: irregular",
		"    past: swam",
		"    participle: swum",
	}, "\n")
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	verbs, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(verbs) != 1 || verbs[0].PastParticiple != "swum" || verbs[0].Kind != model.Irregular {
		t.Fatalf("unexpected verbs: %+v", verbs)
	}
}

func TestDecodeEmptyFile(t *testing.T) {
	if _, err := Decode(strings.NewReader("")); !errors.Is(err, ErrEmptyCatalog) {
		t.Fatalf("expected ErrEmptyCatalog, got %v", err)
	}
	if _, err := Decode(strings.NewReader("verbs: []\n")); !errors.Is(err, ErrEmptyCatalog) {
		t.Fatalf("expected ErrEmptyCatalog for empty list, got %v", err)
	}
}

func TestFilterByKind(t *testing.T) {
	irregular := FilterByKind(Default(), model.Irregular)
	if len(irregular) != 50 {
		t.Fatalf("expected 50 irregular verbs, got %d", len(irregular))
	}
	for _, v := range irregular {
		if v.Kind != model.Irregular {
			t.Fatalf("unexpected kind for %q", v.Verb)
		}
	}
	if got := len(FilterByKind(Default(), "")); got != Size {
		t.Fatalf("expected empty kind to keep all, got %d", got)
	}
}
