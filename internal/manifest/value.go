package manifest

import (
	"errors"
	"fmt"
	"strings"

	"ignitionPayout/internal/sbor"
)

// ErrUnsupportedValue is returned for ledger values that cannot appear in a
// manifest, such as owned nodes.
var ErrUnsupportedValue = errors.New("value kind not representable in a manifest")

var integerSuffix = map[string]string{
	sbor.KindI8:   "i8",
	sbor.KindI16:  "i16",
	sbor.KindI32:  "i32",
	sbor.KindI64:  "i64",
	sbor.KindI128: "i128",
	sbor.KindU8:   "u8",
	sbor.KindU16:  "u16",
	sbor.KindU32:  "u32",
	sbor.KindU64:  "u64",
	sbor.KindU128: "u128",
}

// RenderValue converts a ledger value into manifest syntax.
func RenderValue(v sbor.Value) (string, error) {
	var b strings.Builder
	if err := renderValue(&b, v); err != nil {
		return "", err
	}
	return b.String(), nil
}

func renderValue(b *strings.Builder, v sbor.Value) error {
	if suffix, ok := integerSuffix[v.Kind]; ok {
		text, err := v.Scalar()
		if err != nil {
			return err
		}
		b.WriteString(text)
		b.WriteString(suffix)
		return nil
	}

	switch v.Kind {
	case sbor.KindBool:
		text, err := v.Scalar()
		if err != nil {
			return err
		}
		if text != "true" && text != "false" {
			return fmt.Errorf("invalid bool: %s", text)
		}
		b.WriteString(text)
	case sbor.KindString:
		text, err := v.Scalar()
		if err != nil {
			return err
		}
		b.WriteString(quote(text))
	case sbor.KindDecimal, sbor.KindPreciseDecimal, sbor.KindNonFungibleLocalID:
		text, err := v.Scalar()
		if err != nil {
			return err
		}
		fmt.Fprintf(b, "%s(%s)", v.Kind, quote(text))
	case sbor.KindReference:
		text, err := v.Scalar()
		if err != nil {
			return err
		}
		fmt.Fprintf(b, "Address(%s)", quote(text))
	case sbor.KindBytes:
		fmt.Fprintf(b, "Bytes(%s)", quote(strings.ToLower(v.Hex)))
	case sbor.KindTuple:
		b.WriteString("Tuple(")
		if err := renderList(b, v.Fields); err != nil {
			return err
		}
		b.WriteString(")")
	case sbor.KindEnum:
		id, _, err := v.Variant()
		if err != nil {
			return err
		}
		fmt.Fprintf(b, "Enum<%du8>(", id)
		if err := renderList(b, v.Fields); err != nil {
			return err
		}
		b.WriteString(")")
	case sbor.KindArray:
		kind, err := kindName(v.ElementKind)
		if err != nil {
			return err
		}
		fmt.Fprintf(b, "Array<%s>(", kind)
		if err := renderList(b, v.Elements); err != nil {
			return err
		}
		b.WriteString(")")
	case sbor.KindMap:
		keyKind, err := kindName(v.KeyKind)
		if err != nil {
			return err
		}
		valueKind, err := kindName(v.ValueKind)
		if err != nil {
			return err
		}
		fmt.Fprintf(b, "Map<%s, %s>(", keyKind, valueKind)
		for i, entry := range v.Entries {
			if i > 0 {
				b.WriteString(", ")
			}
			if err := renderValue(b, entry.Key); err != nil {
				return err
			}
			b.WriteString(" => ")
			if err := renderValue(b, entry.Value); err != nil {
				return err
			}
		}
		b.WriteString(")")
	case sbor.KindOwn:
		return fmt.Errorf("%s: %w", v.Kind, ErrUnsupportedValue)
	default:
		return fmt.Errorf("unknown value kind %q: %w", v.Kind, ErrUnsupportedValue)
	}
	return nil
}

func renderList(b *strings.Builder, values []sbor.Value) error {
	for i, item := range values {
		if i > 0 {
			b.WriteString(", ")
		}
		if err := renderValue(b, item); err != nil {
			return err
		}
	}
	return nil
}

// kindName maps a ledger value kind to its manifest value kind.
func kindName(kind string) (string, error) {
	switch kind {
	case sbor.KindReference:
		return "Address", nil
	case sbor.KindOwn:
		return "", fmt.Errorf("%s: %w", kind, ErrUnsupportedValue)
	case "":
		return "", fmt.Errorf("missing value kind: %w", ErrUnsupportedValue)
	default:
		if _, ok := integerSuffix[kind]; ok {
			return kind, nil
		}
		switch kind {
		case sbor.KindBool, sbor.KindString, sbor.KindEnum, sbor.KindArray, sbor.KindMap, sbor.KindTuple,
			sbor.KindDecimal, sbor.KindPreciseDecimal, sbor.KindNonFungibleLocalID:
			return kind, nil
		}
		return "", fmt.Errorf("unknown value kind %q: %w", kind, ErrUnsupportedValue)
	}
}

func quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if r < 0x20 {
				fmt.Fprintf(&b, `\u%04x`, r)
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
