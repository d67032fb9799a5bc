package catalog

import "github.com/verte-zerg/verbroulette/internal/model"

// FilterByKind returns the verbs of the given kind. An empty kind keeps all.
func FilterByKind(verbs []model.VerbRecord, kind model.Kind) []model.VerbRecord {
	out := make([]model.VerbRecord, 0, len(verbs))
	for _, v := range verbs {
		if kind != "" && v.Kind != kind {
			continue
		}
		out = append(out, v)
	}
	return out
}

// CountByKind returns the number of regular and irregular verbs.
func CountByKind(verbs []model.VerbRecord) (regular, irregular int) {
	for _, v := range verbs {
		switch v.Kind {
		case model.Regular:
			regular++
		case model.Irregular:
			irregular++
		}
	}
	return regular, irregular
}
