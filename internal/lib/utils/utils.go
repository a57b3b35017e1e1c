// Package utils contains small helper types used across the project.
//
// These are usually generic helpers that don't belong to a specific domain.
package utils

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/pkg/errors"
)

// ErrNotScalar is returned when a LooseString receives a JSON object or array.
var ErrNotScalar = errors.New("expected a JSON scalar")

// LooseString accepts any JSON scalar and keeps its string form.
//
//	"Ada"  -> "Ada"
//	55000  -> "55000"
//	1e21   -> "1e+21"
//	true   -> "true"
//	null   -> "" (Set is false)
//
// Falsy remembers whether the raw value was null, "", 0 or false, which is
// what decides whether an optional field is stored as null.
type LooseString struct {
	Value string
	Set   bool
	Falsy bool
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *LooseString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*s = LooseString{Falsy: true}

	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	switch data[0] {
	case '"':
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		s.Value, s.Set, s.Falsy = str, true, str == ""

	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return err
		}
		s.Value, s.Set, s.Falsy = strconv.FormatBool(b), true, !b

	case '{', '[':
		return errors.Wrapf(ErrNotScalar, "got %c", data[0])

	default:
		var f float64
		if err := json.Unmarshal(data, &f); err != nil {
			return err
		}
		s.Value, s.Set, s.Falsy = FormatNumber(f), true, f == 0
	}

	return nil
}

// Trimmed returns the value with leading and trailing IsSpace runes removed.
func (s LooseString) Trimmed() string {
	return strings.TrimFunc(s.Value, IsSpace)
}

// Optional returns nil for falsy values, otherwise a pointer to the trimmed
// value. A whitespace-only string is not falsy and yields "".
func (s LooseString) Optional() *string {
	if s.Falsy {
		return nil
	}
	v := s.Trimmed()
	return &v
}

// IsSpace reports whether r is whitespace in the ECMAScript sense: the
// Unicode White_Space set minus U+0085, plus the byte order mark U+FEFF.
func IsSpace(r rune) bool {
	switch r {
	case '\uFEFF':
		return true
	case '\u0085':
		return false
	}
	return unicode.IsSpace(r)
}

// FormatNumber renders f the way ECMAScript Number.prototype.toString does:
// shortest round-trip digits, plain notation for 1e-6 <= |f| < 1e21 and
// exponent notation without zero padding outside that range.
func FormatNumber(f float64) string {
	if f == 0 {
		return "0"
	}

	abs := math.Abs(f)
	if abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}

	mantissa, exp, _ := strings.Cut(strconv.FormatFloat(f, 'e', -1, 64), "e")
	sign, digits := exp[:1], strings.TrimLeft(exp[1:], "0")
	return mantissa + "e" + sign + digits
}
