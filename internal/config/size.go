package config

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

var numberToken = regexp.MustCompile(`-?\d+(\.\d+)?`)

// ExtractNumber pulls the first signed decimal out of input ("40px" -> 40).
// Finite numbers are returned as is. nil, or input without a number,
// yields def.
func ExtractNumber(input any, def float64) float64 {
	switch v := input.(type) {
	case nil:
		return def
	case float64:
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			return v
		}
	case float32:
		f := float64(v)
		if !math.IsNaN(f) && !math.IsInf(f, 0) {
			return f
		}
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case int32:
		return float64(v)
	case uint:
		return float64(v)
	case uint64:
		return float64(v)
	case uint32:
		return float64(v)
	case *string:
		if v == nil {
			return def
		}
		input = *v
	}

	m := numberToken.FindString(strings.TrimSpace(fmt.Sprint(input)))
	if m == "" {
		return def
	}
	n, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return def
	}
	return n
}

// Size is a font size given either as a number or as a CSS-like string.
type Size struct {
	raw any
}

// SizeOf wraps a number or string.
func SizeOf(v any) Size {
	return Size{raw: v}
}

func (s Size) IsZero() bool {
	return s.raw == nil
}

// Resolve returns the size in pixels, def if it can not be parsed.
func (s Size) Resolve(def float64) float64 {
	return ExtractNumber(s.raw, def)
}

func (s Size) String() string {
	if s.raw == nil {
		return ""
	}
	return fmt.Sprint(s.raw)
}

// Set implements pflag.Value so the CLI can take "40px" or "40".
func (s *Size) Set(v string) error {
	s.raw = v
	return nil
}

func (s *Size) Type() string {
	return "size"
}

func (s *Size) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("fontSize: expected scalar, got kind %d", node.Kind)
	}
	if tag := node.ShortTag(); tag == "!!int" || tag == "!!float" {
		var f float64
		if err := node.Decode(&f); err != nil {
			return err
		}
		s.raw = f
		return nil
	}
	s.raw = node.Value
	return nil
}

func (s Size) MarshalYAML() (any, error) {
	return s.raw, nil
}
