package feed

import (
	"bytes"
	"encoding/json"
	"math/big"

	"promptfeed/internal/domain"
)

// HeartsRequest is the raw PUT /api/feed body. Fields stay undecoded so that
// absence, null and wrong types can be told apart.
type HeartsRequest struct {
	ID     json.RawMessage `json:"id"`
	Hearts json.RawMessage `json:"hearts"`
}

// HeartsUpdate is a validated request to overwrite an image's hearts counter.
type HeartsUpdate struct {
	ID     int64
	Hearts int64
}

// Validate applies the checks in a fixed order so the first failure decides the message.
// Any JSON number passes the type checks; whole-number and int64 range checks
// come after the sign check.
func (r HeartsRequest) Validate() (HeartsUpdate, error) {
	if isAbsent(r.ID) {
		return HeartsUpdate{}, domain.MissingField("id")
	}
	if isAbsent(r.Hearts) {
		return HeartsUpdate{}, domain.MissingField("hearts")
	}
	id, ok := numberValue(r.ID)
	if !ok {
		return HeartsUpdate{}, domain.InvalidType("id")
	}
	hearts, ok := numberValue(r.Hearts)
	if !ok {
		return HeartsUpdate{}, domain.InvalidType("hearts")
	}
	if hearts.Sign() < 0 {
		return HeartsUpdate{}, domain.InvalidValue("hearts", "hearts must be non-negative")
	}
	idValue, ok := wholeValue(id)
	if !ok {
		return HeartsUpdate{}, domain.InvalidType("id")
	}
	heartsValue, ok := wholeValue(hearts)
	if !ok {
		return HeartsUpdate{}, domain.InvalidType("hearts")
	}
	return HeartsUpdate{ID: idValue, Hearts: heartsValue}, nil
}

func isAbsent(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// numberPrecision is wide enough that every int64 is exact.
const numberPrecision = 128

// numberValue parses a JSON number literal, including fractions and exponents.
// Strings, booleans, arrays, objects and non-finite magnitudes are rejected.
func numberValue(raw json.RawMessage) (*big.Float, bool) {
	text := bytes.TrimSpace(raw)
	if len(text) == 0 || (text[0] != '-' && (text[0] < '0' || text[0] > '9')) {
		return nil, false
	}
	var n json.Number
	if err := json.Unmarshal(text, &n); err != nil {
		return nil, false
	}
	f, _, err := big.ParseFloat(n.String(), 10, numberPrecision, big.ToNearestEven)
	if err != nil || f.IsInf() {
		return nil, false
	}
	return f, true
}

// wholeValue returns f as an int64 when it has no fractional part and fits.
func wholeValue(f *big.Float) (int64, bool) {
	if !f.IsInt() {
		return 0, false
	}
	n, acc := f.Int64()
	if acc != big.Exact {
		return 0, false
	}
	return n, true
}
