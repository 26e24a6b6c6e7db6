package configuration

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
)

const rangeSeparator = ".."

// Range is a closed interval [Min, Max].
// In the configuration file it can be written either as a map with "min" and "max" keys
// or in the short form "min..max", e.g. "-10..190".
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

func (r Range) String() string {
	return fmt.Sprintf("%s%s%s", formatFloat(r.Min), rangeSeparator, formatFloat(r.Max))
}

// Span returns the width of the interval
func (r Range) Span() float64 {
	return r.Max - r.Min
}

// Contains reports whether value lies within the interval
func (r Range) Contains(value float64) bool {
	return value >= r.Min && value <= r.Max
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

// ParseRange parses the short "min..max" notation
func ParseRange(text string) (Range, error) {
	text = strings.TrimSpace(text)
	// the first separator after the first character splits, so "-10..190" works
	idx := strings.Index(text, rangeSeparator)
	if idx <= 0 {
		return Range{}, fmt.Errorf("invalid range '%s', expected format: min%smax", text, rangeSeparator)
	}
	minText := strings.TrimSpace(text[:idx])
	maxText := strings.TrimSpace(text[idx+len(rangeSeparator):])

	minValue, err := strconv.ParseFloat(minText, 64)
	if err != nil {
		return Range{}, fmt.Errorf("invalid range '%s': %w", text, err)
	}
	maxValue, err := strconv.ParseFloat(maxText, 64)
	if err != nil {
		return Range{}, fmt.Errorf("invalid range '%s': %w", text, err)
	}

	return Range{Min: minValue, Max: maxValue}, nil
}

// rangeHookFunc returns a mapstructure decode hook that decodes the "min..max"
// string notation into a Range. Maps are left to the default decoder.
func rangeHookFunc() mapstructure.DecodeHookFuncType {
	rangeType := reflect.TypeOf(Range{})

	return func(
		f reflect.Type,
		t reflect.Type,
		data interface{},
	) (interface{}, error) {
		if t != rangeType {
			return data, nil
		}

		switch v := data.(type) {
		case string:
			return ParseRange(v)
		case Range:
			return v, nil
		}

		return data, nil
	}
}
