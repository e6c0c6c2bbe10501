package engine

import (
	"encoding/json"
	"math"
	"math/big"
	"strconv"
	"strings"
)

const (
	kib = 1024
	mib = kib * 1024
	gib = mib * 1024
	tib = gib * 1024
)

// FormatSize renders a byte count using 1024-based multiples with MB, GB and
// TB labels, two decimals. Counts below one MiB are printed as bytes. NaN and
// negative input cannot be rendered and return ok == false.
func FormatSize(n float64) (string, bool) {
	if math.IsNaN(n) || n < 0 {
		return "", false
	}
	if n == 0 {
		n = 0 // drop negative zero
	}
	switch {
	case n < mib:
		return strconv.FormatFloat(n, 'f', -1, 64) + " B", true
	case n < gib:
		return toFixed2(n/mib) + " MB", true
	case n < tib:
		return toFixed2(n/gib) + " GB", true
	default:
		return toFixed2(n/tib) + " TB", true
	}
}

// toFixed2 rounds the exact binary value of x to two decimals, resolving
// ties upward. x must be finite and non-negative.
func toFixed2(x float64) string {
	if math.IsInf(x, 0) {
		return strconv.FormatFloat(x, 'f', 2, 64)
	}
	r := new(big.Rat).SetFloat64(x)
	r.Mul(r, big.NewRat(100, 1))
	q, m := new(big.Int).QuoRem(r.Num(), r.Denom(), new(big.Int))
	if m.Lsh(m, 1).Cmp(r.Denom()) >= 0 {
		q.Add(q, big.NewInt(1))
	}
	digits := q.String()
	if len(digits) < 3 {
		digits = strings.Repeat("0", 3-len(digits)) + digits
	}
	return digits[:len(digits)-2] + "." + digits[len(digits)-2:]
}

// HumanSize is the filesizeP companion of a filesize field. Renderable sizes
// encode as a string; anything else passes the original number through.
type HumanSize struct {
	Bytes float64
	Text  string
	Valid bool
	set   bool
}

// NewHumanSize formats n.
func NewHumanSize(n float64) HumanSize {
	text, ok := FormatSize(n)
	return HumanSize{Bytes: n, Text: text, Valid: ok, set: true}
}

func sizeOf(n Number) HumanSize {
	if !n.Valid {
		return HumanSize{}
	}
	return NewHumanSize(n.Value)
}

// IsZero reports whether there was no size to format.
func (h HumanSize) IsZero() bool {
	return !h.set
}

// String returns the formatted text, or the raw number when unrenderable.
func (h HumanSize) String() string {
	if h.Valid {
		return h.Text
	}
	if !h.set {
		return ""
	}
	return strconv.FormatFloat(h.Bytes, 'f', -1, 64)
}

// MarshalJSON implements json.Marshaler.
func (h HumanSize) MarshalJSON() ([]byte, error) {
	switch {
	case !h.set:
		return []byte("null"), nil
	case h.Valid:
		return json.Marshal(h.Text)
	case math.IsNaN(h.Bytes) || math.IsInf(h.Bytes, 0):
		return []byte("null"), nil
	default:
		return []byte(strconv.FormatFloat(h.Bytes, 'f', -1, 64)), nil
	}
}
