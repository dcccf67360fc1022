// Package numeric normalizes the heterogeneous numeric encodings that
// reach the API: plain JSON numbers, numeric strings, and the tagged
// wrapper objects emitted by the legacy persistence layer
// ({"intPayload": ...} / {"doublePayload": ...}).
//
// Decoding is deliberately lenient: absent or unparsable input yields 0
// rather than an error. Callers that need a hard failure validate the
// decoded value at their own boundary.
package numeric

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Wrapper payload keys used by the legacy store.
const (
	intPayloadKey    = "intPayload"
	doublePayloadKey = "doublePayload"
)

// Decode normalizes v into a float64. Supported inputs: Go numeric
// types, json.Number, numeric strings, and wrapper maps carrying an
// intPayload or doublePayload entry (whose payload may itself be a
// number or a numeric string). Anything else decodes to 0. The result
// is never NaN or infinite.
func Decode(v any) float64 {
	switch x := v.(type) {
	case nil:
		return 0
	case float64:
		return sanitize(x)
	case float32:
		return sanitize(float64(x))
	case int:
		return float64(x)
	case int32:
		return float64(x)
	case int64:
		return float64(x)
	case uint:
		return float64(x)
	case uint64:
		return float64(x)
	case json.Number:
		return parseString(x.String())
	case string:
		return parseString(x)
	case map[string]any:
		if payload, ok := x[intPayloadKey]; ok {
			return math.Trunc(Decode(payload))
		}
		if payload, ok := x[doublePayloadKey]; ok {
			return Decode(payload)
		}
		return 0
	default:
		return 0
	}
}

func parseString(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return sanitize(f)
}

func sanitize(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// Numeric is a float64 that accepts any of the lenient encodings when
// unmarshaled from JSON and always marshals back to a plain number.
// Request DTOs use it so ad hoc parsing never leaks past this seam.
type Numeric float64

func (n *Numeric) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		*n = 0
		return nil
	}
	*n = Numeric(Decode(raw))
	return nil
}

func (n Numeric) MarshalJSON() ([]byte, error) {
	return json.Marshal(float64(n))
}

// Float64 returns the normalized value.
func (n Numeric) Float64() float64 { return float64(n) }
