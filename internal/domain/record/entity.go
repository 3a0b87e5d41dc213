// Package record holds the hospital entity records and the CRUD service
// that persists them through the storage gateway.
package record

import (
	"strings"

	"github.com/hms/hms/internal/platform/storage"
)

// Entity is one persistable record type. Validate checks only the
// presence and enumeration constraints of the type; Row round-trips all
// fields by column name so that decoding Row() reproduces the record.
type Entity interface {
	Table() string
	ID() int64
	SetID(id int64)
	Validate() (bool, string)
	Row() storage.Row
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// Row decode helpers. Missing keys yield the zero value; numeric values
// tolerate the integer widths different drivers produce.

func rowString(r storage.Row, key string) string {
	s, _ := r[key].(string)
	return s
}

func rowInt64(r storage.Row, key string) int64 {
	switch v := r[key].(type) {
	case int64:
		return v
	case int32:
		return int64(v)
	case int:
		return int64(v)
	case float64:
		return int64(v)
	}
	return 0
}

func rowFloat64(r storage.Row, key string) float64 {
	switch v := r[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int64:
		return float64(v)
	case int:
		return float64(v)
	}
	return 0
}
