// Package ingest implements the offline ingestion pipeline: raw records are
// fetched from pluggable sources, normalized into domain.SpotRecord,
// deduplicated across sources, then handed to a storage sink and written to
// a snapshot artifact.
package ingest

import (
	"encoding/json"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/ittyan/family-outings/internal/domain"
)

// RawRecord is a loosely shaped source record as decoded from JSON or YAML.
// Nothing about its keys or value types is trusted.
type RawRecord map[string]any

// Normalize turns raw into a canonical SpotRecord stamped with source and
// now. It never fails: missing or malformed fields fall back to defaults so
// one bad record cannot abort a run.
//
//   - id: the raw id, or "<source>:<name>" ("<source>:unknown" without a name).
//   - cost_range: upper-cased and kept only if it is a known tier.
//   - age_min/age_max: both dropped when the range is inverted.
//   - tags: trimmed, empties dropped, deduplicated and sorted.
//   - last_seen: now in RFC 3339 UTC.
func Normalize(raw RawRecord, source string, now time.Time) domain.SpotRecord {
	name := stringField(raw, "name")

	id := idField(raw)
	if id == "" {
		label := name
		if strings.TrimSpace(label) == "" {
			label = "unknown"
		}
		id = source + ":" + label
	}

	rec := domain.SpotRecord{
		ID:          id,
		Name:        name,
		Address:     stringField(raw, "address"),
		Summary:     stringField(raw, "summary"),
		Lat:         floatField(raw, "lat"),
		Lng:         floatField(raw, "lng"),
		OfficialURL: optionalString(raw, "official_url"),
		AgeMin:      intField(raw, "age_min"),
		AgeMax:      intField(raw, "age_max"),
		Tags:        NormalizeTags(stringSlice(raw, "tags")),
		Images:      stringSlice(raw, "images"),
		Hours:       optionalString(raw, "hours"),
		Source:      source,
		LastSeen:    now.UTC().Format(time.RFC3339),
	}
	if c, ok := domain.ParseCostRange(stringField(raw, "cost_range")); ok {
		rec.CostRange = &c
	}
	if rec.AgeMin != nil && rec.AgeMax != nil && *rec.AgeMin > *rec.AgeMax {
		rec.AgeMin, rec.AgeMax = nil, nil
	}
	return rec
}

// NormalizeTags trims every tag, drops empties and duplicates, and returns
// the result sorted. The result is never nil.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

func idField(raw RawRecord) string {
	switch v := raw["id"].(type) {
	case string:
		return strings.TrimSpace(v)
	case int, int64, json.Number:
		return strings.TrimSpace(toString(v))
	case float64:
		if v == math.Trunc(v) && !math.IsInf(v, 0) {
			return strconv.FormatFloat(v, 'f', -1, 64)
		}
	}
	return ""
}

func toString(v any) string {
	switch n := v.(type) {
	case int:
		return strconv.Itoa(n)
	case int64:
		return strconv.FormatInt(n, 10)
	case json.Number:
		return n.String()
	}
	return ""
}

func stringField(raw RawRecord, key string) string {
	s, _ := raw[key].(string)
	return s
}

func optionalString(raw RawRecord, key string) *string {
	s, ok := raw[key].(string)
	if !ok || strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

func floatField(raw RawRecord, key string) *float64 {
	var f float64
	switch v := raw[key].(type) {
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int64:
		f = float64(v)
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return nil
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil
		}
		f = parsed
	default:
		return nil
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

func intField(raw RawRecord, key string) *int {
	f := floatField(raw, key)
	if f == nil || *f != math.Trunc(*f) || math.Abs(*f) > math.MaxInt32 {
		return nil
	}
	i := int(*f)
	return &i
}

// stringSlice returns the string entries of a list field, skipping any
// non-string entries. The result is never nil.
func stringSlice(raw RawRecord, key string) []string {
	out := []string{}
	switch v := raw[key].(type) {
	case []string:
		out = append(out, v...)
	case []any:
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
	}
	return out
}
