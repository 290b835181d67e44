package models

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Record is one flat row of a pre-aggregated metric resource.
// Values are strings or numbers; each chart kind decides which fields it reads.
type Record map[string]interface{}

// Dataset is the ordered sequence of records returned by one resource.
// It is fetched fresh for every render and never persisted.
type Dataset []Record

// Empty reports whether there is nothing to draw.
func (d Dataset) Empty() bool {
	return len(d) == 0
}

// String returns the field as display text. Numbers are formatted without
// trailing zeros so categorical axes built from numeric fields stay readable.
func (r Record) String(key string) string {
	switch v := r[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// Float returns the field as a number. Numeric strings are accepted because
// some aggregations come back as decimal text. NaN and infinities are
// reported as malformed.
func (r Record) Float(key string) (float64, bool) {
	var (
		f   float64
		err error
	)
	switch v := r[key].(type) {
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int64:
		f = float64(v)
	case json.Number:
		f, err = v.Float64()
	case string:
		f, err = strconv.ParseFloat(v, 64)
	default:
		return 0, false
	}
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Number is Float with missing or malformed values read as zero.
func (r Record) Number(key string) float64 {
	f, _ := r.Float(key)
	return f
}

// Strings projects one field of every record, keeping order.
func (d Dataset) Strings(key string) []string {
	out := make([]string, len(d))
	for i, rec := range d {
		out[i] = rec.String(key)
	}
	return out
}

// Numbers projects one numeric field of every record, keeping order.
func (d Dataset) Numbers(key string) []float64 {
	out := make([]float64, len(d))
	for i, rec := range d {
		out[i] = rec.Number(key)
	}
	return out
}

// Max returns the largest value of key, or zero for an empty dataset.
func (d Dataset) Max(key string) float64 {
	max := 0.0
	for i, rec := range d {
		v := rec.Number(key)
		if i == 0 || v > max {
			max = v
		}
	}
	return max
}

// Distinct returns the distinct values of key in first-seen order.
func (d Dataset) Distinct(key string) []string {
	seen := make(map[string]struct{}, len(d))
	var out []string
	for _, rec := range d {
		v := rec.String(key)
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// DecodeDataset parses a JSON array of flat records.
func DecodeDataset(body []byte) (Dataset, error) {
	var ds Dataset
	if err := json.Unmarshal(body, &ds); err != nil {
		return nil, fmt.Errorf("failed to decode dataset: %w", err)
	}
	return ds, nil
}
