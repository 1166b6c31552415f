package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// FlexValue holds a scalar that fixtures encode either as a JSON string or a JSON number.
// The raw text is kept so coercion happens once, explicitly, at normalization time.
type FlexValue struct {
	raw string
	set bool
}

// Flex builds a FlexValue from its textual form.
func Flex(raw string) FlexValue {
	return FlexValue{raw: raw, set: true}
}

// FlexNumber builds a FlexValue from a number.
func FlexNumber(v float64) FlexValue {
	return FlexValue{raw: strconv.FormatFloat(v, 'f', -1, 64), set: true}
}

// IsSet reports whether the field was present and non-null in the source.
func (f FlexValue) IsSet() bool {
	return f.set
}

// IsEmpty reports whether the value is missing or blank.
func (f FlexValue) IsEmpty() bool {
	return !f.set || strings.TrimSpace(f.raw) == ""
}

func (f FlexValue) String() string {
	return strings.TrimSpace(f.raw)
}

// Float parses the value as a float. ok is false when the value is missing or not numeric.
func (f FlexValue) Float() (float64, bool) {
	if f.IsEmpty() {
		return 0, false
	}
	v, err := strconv.ParseFloat(f.String(), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// Int parses the value as an integer, truncating integral-looking floats such as "6.0".
func (f FlexValue) Int() (int, bool) {
	if f.IsEmpty() {
		return 0, false
	}
	if v, err := strconv.Atoi(f.String()); err == nil {
		return v, true
	}
	v, ok := f.Float()
	if !ok {
		return 0, false
	}
	return int(math.Trunc(v)), true
}

func (f FlexValue) MarshalJSON() ([]byte, error) {
	if !f.set {
		return []byte("null"), nil
	}
	return json.Marshal(f.raw)
}

func (f *FlexValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = FlexValue{}
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decode flex string: %w", err)
		}
		*f = Flex(s)
	case '{', '[':
		return fmt.Errorf("decode flex value: unexpected composite %q", string(data))
	default:
		// numbers and booleans keep their literal text
		*f = Flex(string(data))
	}
	return nil
}

func (f *FlexValue) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("decode flex value: expected scalar at line %d", node.Line)
	}
	if node.Tag == "!!null" {
		*f = FlexValue{}
		return nil
	}
	*f = Flex(node.Value)
	return nil
}
