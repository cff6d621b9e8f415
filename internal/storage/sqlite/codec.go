// ABOUTME: Column codecs shared by the entity stores
// ABOUTME: JSON TEXT lists, fixed-point decimal TEXT, float64 vector BLOBs
package sqlite

import (
	"database/sql"
	"encoding/binary"
	"encoding/json"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// containsFold reports whether s contains substr, case-insensitively.
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// jsonText marshals a list or mapping for a JSON TEXT column.
func jsonText(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// readJSON unmarshals a JSON TEXT column into target. Absent or corrupt
// columns leave the target at its zero value.
func readJSON(ns sql.NullString, target any) {
	if !ns.Valid || ns.String == "" {
		return
	}
	_ = json.Unmarshal([]byte(ns.String), target)
}

// decText renders a decimal for storage at the declared scale, so the
// precision written is the precision read back.
func decText(d decimal.Decimal, scale int32) string {
	return d.StringFixed(scale)
}

// optDecText renders an optional decimal, or nil for a NULL column.
func optDecText(d *decimal.Decimal, scale int32) any {
	if d == nil {
		return nil
	}
	return decText(*d, scale)
}

// readDec parses a required decimal TEXT column.
func readDec(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}

// readOptDec parses an optional decimal TEXT column.
func readOptDec(ns sql.NullString) (*decimal.Decimal, error) {
	if !ns.Valid || ns.String == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(ns.String)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// nullText converts an optional string for a NULLable column.
func nullText(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// optInt converts an optional int for a NULLable column.
func optInt(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}

// readOptInt reads a NULLable integer column.
func readOptInt(ni sql.NullInt64) *int {
	if !ni.Valid {
		return nil
	}
	v := int(ni.Int64)
	return &v
}

// vectorToBlob encodes a float64 vector as a little-endian BLOB.
func vectorToBlob(vector []float64) []byte {
	if len(vector) == 0 {
		return nil
	}
	blob := make([]byte, len(vector)*8)
	for i, v := range vector {
		binary.LittleEndian.PutUint64(blob[i*8:], math.Float64bits(v))
	}
	return blob
}

// blobToVector decodes a little-endian BLOB back into a float64 vector.
func blobToVector(blob []byte) []float64 {
	if len(blob) == 0 {
		return nil
	}
	vector := make([]float64, len(blob)/8)
	for i := range vector {
		vector[i] = math.Float64frombits(binary.LittleEndian.Uint64(blob[i*8:]))
	}
	return vector
}
