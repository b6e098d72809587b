package taskdef

import (
	"bytes"
	"fmt"
	"strconv"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

// outputOptions renders two-space indentation with every array expanded
// and keys left in document order.
var outputOptions = &pretty.Options{
	Width:    0,
	Prefix:   "",
	Indent:   "  ",
	SortKeys: false,
}

// Document is a task-definition descriptor held as raw JSON.
// Edits are applied in place so key order and untouched values survive
// byte-for-byte until the document is formatted for output.
type Document struct {
	raw []byte
}

// Parse validates data as a JSON object and wraps it in a Document.
func Parse(data []byte) (*Document, error) {
	if !utf8.Valid(data) {
		return nil, malformed("input is not valid UTF-8")
	}
	if !gjson.ValidBytes(data) {
		return nil, malformed("invalid JSON")
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, malformed("top-level value must be an object, got %s", describe(root))
	}

	raw := make([]byte, len(data))
	copy(raw, data)
	return &Document{raw: raw}, nil
}

// Get returns the value at a gjson path.
func (d *Document) Get(path string) gjson.Result {
	return gjson.GetBytes(d.raw, path)
}

// Has reports whether a value exists at path.
func (d *Document) Has(path string) bool {
	return d.Get(path).Exists()
}

// Delete removes every value at path. It reports whether anything was removed.
func (d *Document) Delete(path string) (bool, error) {
	removed := false
	for d.Has(path) {
		next, err := sjson.DeleteBytes(d.raw, path)
		if err != nil {
			return removed, fmt.Errorf("delete %s: %w", path, err)
		}
		if bytes.Equal(next, d.raw) {
			break
		}
		d.raw = next
		removed = true
	}
	return removed, nil
}

// SetString stores value at path, creating the key if it does not exist.
func (d *Document) SetString(path, value string) error {
	next, err := sjson.SetBytes(d.raw, path, value)
	if err != nil {
		return fmt.Errorf("set %s: %w", path, err)
	}
	d.raw = next
	return nil
}

// Count returns how many times key appears at the top level.
func (d *Document) Count(key string) int {
	n := 0
	gjson.ParseBytes(d.raw).ForEach(func(k, _ gjson.Result) bool {
		if k.String() == key {
			n++
		}
		return true
	})
	return n
}

// Raw returns the document exactly as currently held, without formatting.
func (d *Document) Raw() []byte {
	return d.raw
}

// Bytes returns the document indented by two spaces with non-ASCII text
// written as literal UTF-8.
func (d *Document) Bytes() []byte {
	return literalNonASCII(pretty.PrettyOptions(d.raw, outputOptions))
}

func describe(r gjson.Result) string {
	switch r.Type {
	case gjson.Null:
		return "null"
	case gjson.False, gjson.True:
		return "boolean"
	case gjson.Number:
		return "number"
	case gjson.String:
		return "string"
	}
	if r.IsArray() {
		return "array"
	}
	return "object"
}

// literalNonASCII rewrites \uXXXX escapes inside string literals that
// encode characters above U+007F as UTF-8. ASCII escapes and lone
// surrogates are kept as written.
func literalNonASCII(src []byte) []byte {
	if !bytes.Contains(src, []byte(`\u`)) {
		return src
	}

	out := make([]byte, 0, len(src))
	inString := false
	for i := 0; i < len(src); i++ {
		c := src[i]
		if !inString {
			if c == '"' {
				inString = true
			}
			out = append(out, c)
			continue
		}

		switch c {
		case '"':
			inString = false
			out = append(out, c)
		case '\\':
			if r, n := decodeEscape(src[i:]); n > 0 {
				out = utf8.AppendRune(out, r)
				i += n - 1
				continue
			}
			out = append(out, c)
			if i+1 < len(src) {
				i++
				out = append(out, src[i])
			}
		default:
			out = append(out, c)
		}
	}
	return out
}

// decodeEscape decodes a non-ASCII \uXXXX escape (or surrogate pair) at the
// start of b. It returns the number of bytes consumed, or 0 when the escape
// should be left alone.
func decodeEscape(b []byte) (rune, int) {
	first, ok := hexEscape(b)
	if !ok || first < utf8.RuneSelf {
		return 0, 0
	}
	if !utf16.IsSurrogate(first) {
		return first, 6
	}

	second, ok := hexEscape(b[6:])
	if !ok {
		return 0, 0
	}
	r := utf16.DecodeRune(first, second)
	if r == utf8.RuneError {
		return 0, 0
	}
	return r, 12
}

func hexEscape(b []byte) (rune, bool) {
	if len(b) < 6 || b[0] != '\\' || b[1] != 'u' {
		return 0, false
	}
	v, err := strconv.ParseUint(string(b[2:6]), 16, 32)
	if err != nil {
		return 0, false
	}
	return rune(v), true
}
