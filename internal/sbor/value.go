// Package sbor models ledger values in the gateway's programmatic JSON form.
//
// Values are carried opaquely between the gateway and the manifest builder; the
// typed accessors only cover the kinds the payout flow reads.
package sbor

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"ignitionPayout/internal/amount"
)

// Value kinds as reported by the gateway.
const (
	KindBool               = "Bool"
	KindI8                 = "I8"
	KindI16                = "I16"
	KindI32                = "I32"
	KindI64                = "I64"
	KindI128               = "I128"
	KindU8                 = "U8"
	KindU16                = "U16"
	KindU32                = "U32"
	KindU64                = "U64"
	KindU128               = "U128"
	KindString             = "String"
	KindEnum               = "Enum"
	KindArray              = "Array"
	KindBytes              = "Bytes"
	KindMap                = "Map"
	KindTuple              = "Tuple"
	KindReference          = "Reference"
	KindOwn                = "Own"
	KindDecimal            = "Decimal"
	KindPreciseDecimal     = "PreciseDecimal"
	KindNonFungibleLocalID = "NonFungibleLocalId"
)

// Value is a single programmatic ledger value.
type Value struct {
	Kind            string  `json:"kind"`
	TypeName        string  `json:"type_name,omitempty"`
	FieldName       string  `json:"field_name,omitempty"`
	Value           any     `json:"value,omitempty"`
	Fields          []Value `json:"fields,omitempty"`
	ElementKind     string  `json:"element_kind,omitempty"`
	ElementTypeName string  `json:"element_type_name,omitempty"`
	Elements        []Value `json:"elements,omitempty"`
	KeyKind         string  `json:"key_kind,omitempty"`
	ValueKind       string  `json:"value_kind,omitempty"`
	Entries         []Entry `json:"entries,omitempty"`
	VariantID       any     `json:"variant_id,omitempty"`
	VariantName     string  `json:"variant_name,omitempty"`
	Hex             string  `json:"hex,omitempty"`
}

// Entry is a single map entry.
type Entry struct {
	Key   Value `json:"key"`
	Value Value `json:"value"`
}

// UnmarshalJSON keeps numeric scalars as json.Number so large integers survive.
func (v *Value) UnmarshalJSON(data []byte) error {
	type plain Value
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var p plain
	if err := dec.Decode(&p); err != nil {
		return err
	}
	*v = Value(p)
	return nil
}

// Scalar returns the textual form of a scalar value.
func (v Value) Scalar() (string, error) {
	return scalarText(v.Value, v.Kind)
}

func scalarText(raw any, kind string) (string, error) {
	switch typed := raw.(type) {
	case string:
		return typed, nil
	case json.Number:
		return typed.String(), nil
	case bool:
		return strconv.FormatBool(typed), nil
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64), nil
	case nil:
		return "", fmt.Errorf("%s value is missing", kind)
	default:
		return "", fmt.Errorf("%s value has unexpected type %T", kind, raw)
	}
}

func (v Value) expect(kinds ...string) error {
	for _, kind := range kinds {
		if v.Kind == kind {
			return nil
		}
	}
	return fmt.Errorf("expected %v value, got %s", kinds, v.Kind)
}

func (v Value) Text() (string, error) {
	if err := v.expect(KindString); err != nil {
		return "", err
	}
	return v.Scalar()
}

// Reference returns the bech32m address of a Reference value.
func (v Value) Reference() (string, error) {
	if err := v.expect(KindReference); err != nil {
		return "", err
	}
	return v.Scalar()
}

func (v Value) Decimal() (decimal.Decimal, error) {
	if err := v.expect(KindDecimal, KindPreciseDecimal); err != nil {
		return decimal.Zero, err
	}
	text, err := v.Scalar()
	if err != nil {
		return decimal.Zero, err
	}
	return amount.Parse(text)
}

// Instant reads an I64 unix-seconds value.
func (v Value) Instant() (time.Time, error) {
	if err := v.expect(KindI64); err != nil {
		return time.Time{}, err
	}
	text, err := v.Scalar()
	if err != nil {
		return time.Time{}, err
	}
	secs, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse instant: %w", err)
	}
	return time.Unix(secs, 0).UTC(), nil
}

// Variant returns the discriminator and, when known, the name of an Enum value.
func (v Value) Variant() (uint8, string, error) {
	if err := v.expect(KindEnum); err != nil {
		return 0, "", err
	}
	text, err := scalarText(v.VariantID, KindEnum)
	if err != nil {
		return 0, "", err
	}
	id, err := strconv.ParseUint(text, 10, 8)
	if err != nil {
		return 0, "", fmt.Errorf("parse variant id: %w", err)
	}
	return uint8(id), v.VariantName, nil
}

// Field returns the i-th field of a Tuple.
func (v Value) Field(i int) (Value, error) {
	if err := v.expect(KindTuple); err != nil {
		return Value{}, err
	}
	if i < 0 || i >= len(v.Fields) {
		return Value{}, fmt.Errorf("tuple has %d fields, wanted index %d", len(v.Fields), i)
	}
	return v.Fields[i], nil
}

// DecimalMap reads a Map of Reference keys to Decimal values.
func (v Value) DecimalMap() (map[string]decimal.Decimal, error) {
	if err := v.expect(KindMap); err != nil {
		return nil, err
	}
	out := make(map[string]decimal.Decimal, len(v.Entries))
	for _, entry := range v.Entries {
		key, err := entry.Key.Reference()
		if err != nil {
			return nil, fmt.Errorf("map key: %w", err)
		}
		val, err := entry.Value.Decimal()
		if err != nil {
			return nil, fmt.Errorf("map value for %s: %w", key, err)
		}
		out[key] = val
	}
	return out, nil
}
