package prompt

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

const (
	Missing     = "N/A"
	NotProvided = "Not Provided"
	Any         = "Any"
)

// Text returns value or placeholder when value is nil or blank
func Text(v *string) string {
	return TextOr(v, Missing)
}

func TextOr(v *string, placeholder string) string {
	if v == nil || strings.TrimSpace(*v) == "" {
		return placeholder
	}

	return *v
}

// Truncate cuts the value to limit runes, the placeholder is never cut
func Truncate(v *string, limit int) string {
	if v == nil || strings.TrimSpace(*v) == "" {
		return Missing
	}

	runes := []rune(*v)
	if len(runes) <= limit {
		return *v
	}

	return string(runes[:limit])
}

func Int(v *int) string {
	return IntOr(v, Missing)
}

func IntOr(v *int, placeholder string) string {
	if v == nil {
		return placeholder
	}

	return strconv.Itoa(*v)
}

// Number renders decimal without exponent notation
func Number(v *decimal.Decimal) string {
	return NumberOr(v, Missing)
}

func NumberOr(v *decimal.Decimal, placeholder string) string {
	if v == nil {
		return placeholder
	}

	return v.String()
}

func Percent(v *decimal.Decimal) string {
	if v == nil {
		return Missing
	}

	return v.String() + "%"
}

// Money renders amount with thousands separators: $1,500,000
func Money(v *decimal.Decimal) string {
	if v == nil {
		return Missing
	}

	f, _ := v.Float64()

	return "$" + humanize.Commaf(f)
}

func YesNo(v bool) string {
	if v {
		return "Yes"
	}

	return "No"
}

func Bool(v *bool) string {
	if v == nil {
		return Missing
	}

	return YesNo(*v)
}

// Present reports whether optional text is filled in
func Present(v *string) bool {
	return v != nil && strings.TrimSpace(*v) != ""
}

// JSON renders raw json compactly, empty and null documents become placeholder
func JSON(raw []byte) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) || bytes.Equal(trimmed, []byte("{}")) {
		return Missing
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, trimmed); err != nil {
		return Missing
	}

	return buf.String()
}

func Join(values []string, placeholder string) string {
	filled := make([]string, 0, len(values))
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			filled = append(filled, v)
		}
	}

	if len(filled) == 0 {
		return placeholder
	}

	return strings.Join(filled, ", ")
}
