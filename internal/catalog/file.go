package catalog

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/verte-zerg/verbroulette/internal/model"
)

type fileCatalog struct {
	Verbs []model.VerbRecord `yaml:"verbs"`
}

// LoadFile reads a YAML catalog from the provided file path.
func LoadFile(path string) ([]model.VerbRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only catalog.
			_ = cerr
		}
	}()
	return Decode(file)
}

// Decode parses and validates a YAML catalog.
func Decode(r io.Reader) ([]model.VerbRecord, error) {
	var fc fileCatalog
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyCatalog
		}
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	if err := Validate(fc.Verbs); err != nil {
		return nil, err
	}
	return fc.Verbs, nil
}

// Encode writes verbs in the format read by Decode.
func Encode(w io.Writer, verbs []model.VerbRecord) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(fileCatalog{Verbs: verbs}); err != nil {
		return fmt.Errorf("failed to encode catalog: %w", err)
	}
	return enc.Close()
}
