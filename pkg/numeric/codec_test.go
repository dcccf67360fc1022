package numeric

import (
	"encoding/json"
	"math"
	"testing"
)

func TestDecode(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want float64
	}{
		{"plain float", 99.5, 99.5},
		{"plain int", 150, 150},
		{"numeric string", "150", 150},
		{"decimal string", "12.75", 12.75},
		{"padded string", "  42 ", 42},
		{"int payload wrapper", map[string]any{"intPayload": "150"}, 150},
		{"int payload number", map[string]any{"intPayload": float64(7)}, 7},
		{"double payload wrapper", map[string]any{"doublePayload": "99.99"}, 99.99},
		{"int payload truncates", map[string]any{"intPayload": "12.9"}, 12},
		{"absent", nil, 0},
		{"garbage string", "abc", 0},
		{"empty string", "", 0},
		{"unknown wrapper key", map[string]any{"payload": 5}, 0},
		{"bool", true, 0},
		{"nan sanitized", math.NaN(), 0},
		{"inf sanitized", math.Inf(1), 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Decode(tc.in); got != tc.want {
				t.Fatalf("Decode(%v) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

// The zero default for unparsable input is the documented contract, not
// an error swallow: heterogeneous upstream sources make strict parsing
// impossible at this seam.
func TestDecodeLenientDefaultIsContract(t *testing.T) {
	if got := Decode("not a number"); got != 0 {
		t.Fatalf("unparsable input must decode to 0, got %v", got)
	}
	if got := Decode(nil); got != 0 {
		t.Fatalf("absent input must decode to 0, got %v", got)
	}
}

func TestNumericUnmarshal(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want float64
	}{
		{"number", `1200`, 1200},
		{"string", `"150"`, 150},
		{"wrapped int", `{"intPayload":"150"}`, 150},
		{"wrapped double", `{"doublePayload":12.5}`, 12.5},
		{"null", `null`, 0},
		{"object without payload", `{"other":1}`, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var n Numeric
			if err := json.Unmarshal([]byte(tc.in), &n); err != nil {
				t.Fatalf("unmarshal %s: %v", tc.in, err)
			}
			if n.Float64() != tc.want {
				t.Fatalf("unmarshal %s = %v, want %v", tc.in, n.Float64(), tc.want)
			}
		})
	}
}

func TestNumericMarshalPlainNumber(t *testing.T) {
	out, err := json.Marshal(Numeric(42.5))
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != "42.5" {
		t.Fatalf("marshal = %s, want 42.5", out)
	}
}
