package pin

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/javiermolinar/homegrid/internal/grid"
)

// Keys of the position fields inside an encoded item map.
const (
	FieldRow    = "row"
	FieldColumn = "column"
)

// Fields returns the type-specific fields of item, without position.
func Fields(item Item) map[string]any {
	switch it := item.(type) {
	case App:
		return map[string]any{"package": it.Package, "activity": it.Activity, "name": it.Name}
	case File:
		return map[string]any{"uri": it.URI, "name": it.Name, "mime_type": it.MimeType}
	case Shortcut:
		return map[string]any{"package": it.Package, "shortcut_id": it.ShortcutID, "name": it.Name}
	default:
		return map[string]any{}
	}
}

// EncodeMap returns the type-specific fields of item plus its position.
func EncodeMap(item Item) map[string]any {
	m := Fields(item)
	m[FieldRow] = item.Position().Row
	m[FieldColumn] = item.Position().Column
	return m
}

// DecodeMap builds an item of the given kind from a generic field map.
//
// Field values are decoded weakly ("42" decodes into an int field). The
// position fields are optional: records written before positions existed
// decode to grid.Default. The returned bool reports whether a position was
// present and well formed.
func DecodeMap(kind Kind, fields map[string]any) (Item, bool, error) {
	var item Item
	switch kind {
	case KindApp:
		var a App
		if err := weakDecode(fields, &a); err != nil {
			return nil, false, err
		}
		item = a
	case KindFile:
		var f File
		if err := weakDecode(fields, &f); err != nil {
			return nil, false, err
		}
		item = f
	case KindShortcut:
		var s Shortcut
		if err := weakDecode(fields, &s); err != nil {
			return nil, false, err
		}
		item = s
	default:
		return nil, false, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}

	if err := Validate(item); err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrInvalidItem, err)
	}

	pos, ok := decodePosition(fields[FieldRow], fields[FieldColumn])
	return item.WithPosition(pos), ok, nil
}

// ParsePosition converts raw stored coordinates into a position. Missing or
// malformed coordinates yield grid.Default and false.
func ParsePosition(row, column any) (grid.Position, bool) {
	return decodePosition(row, column)
}

func decodePosition(row, column any) (grid.Position, bool) {
	r, okR := coordinate(row)
	c, okC := coordinate(column)
	if !okR || !okC {
		return grid.Default, false
	}
	return grid.At(r, c), true
}

func coordinate(v any) (int, bool) {
	var n int64
	switch x := v.(type) {
	case int:
		n = int64(x)
	case int32:
		n = int64(x)
	case int64:
		n = x
	case uint64:
		if x > math.MaxInt32 {
			return 0, false
		}
		n = int64(x)
	case float64:
		if x != math.Trunc(x) || math.IsInf(x, 0) || math.IsNaN(x) {
			return 0, false
		}
		n = int64(x)
	case string:
		parsed, err := strconv.ParseInt(strings.TrimSpace(x), 10, 64)
		if err != nil {
			return 0, false
		}
		n = parsed
	case []byte:
		return coordinate(string(x))
	default:
		return 0, false
	}
	if n < 0 || n > math.MaxInt32 {
		return 0, false
	}
	return int(n), true
}

func weakDecode(fields map[string]any, target any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		WeaklyTypedInput: true,
		TagName:          "mapstructure",
	})
	if err != nil {
		return fmt.Errorf("creating decoder: %w", err)
	}
	if err := decoder.Decode(fields); err != nil {
		return fmt.Errorf("decoding fields: %w", err)
	}
	return nil
}
