package ingest

import (
	"strings"

	"github.com/ittyan/family-outings/internal/domain"
)

// identityKey is the dedupe identity of a record: trimmed, lower-cased name
// and address. Two feeds describing the same place with different casing or
// stray whitespace collapse to one key.
type identityKey struct {
	name    string
	address string
}

func keyOf(r domain.SpotRecord) identityKey {
	return identityKey{
		name:    strings.ToLower(strings.TrimSpace(r.Name)),
		address: strings.ToLower(strings.TrimSpace(r.Address)),
	}
}

// Dedupe returns records with later duplicates (same identityKey) removed,
// preserving first-occurrence order. The surviving record is kept as-is;
// fields of dropped duplicates are not merged into it. Because the first
// occurrence wins, the order sources are fed in decides which copy survives.
// The input slice is not modified.
func Dedupe(records []domain.SpotRecord) []domain.SpotRecord {
	seen := make(map[identityKey]struct{}, len(records))
	out := make([]domain.SpotRecord, 0, len(records))
	for _, r := range records {
		k := keyOf(r)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, r)
	}
	return out
}
