package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Hours is a time-sheet duration in hundredths of an hour, matching a
// decimal(5,2) column.
type Hours int64

// MaxHours is 999.99.
const MaxHours Hours = 99999

func ParseHours(s string) (Hours, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("invalid hours %q", s)
	}
	whole, frac, hasFrac := strings.Cut(s, ".")
	if hasFrac && (len(frac) == 0 || len(frac) > 2) {
		return 0, fmt.Errorf("invalid hours %q: at most 2 decimal places", s)
	}
	if len(frac) == 1 {
		frac += "0"
	}
	if frac == "" {
		frac = "00"
	}
	w, err := strconv.ParseUint(whole, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid hours %q", s)
	}
	f, err := strconv.ParseUint(frac, 10, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid hours %q", s)
	}
	return Hours(w*100 + f), nil
}

func (h Hours) String() string {
	sign := ""
	if h < 0 {
		sign = "-"
		h = -h
	}
	return fmt.Sprintf("%s%d.%02d", sign, h/100, h%100)
}

func (h Hours) MarshalJSON() ([]byte, error) {
	return []byte(h.String()), nil
}

// UnmarshalJSON accepts 7.5 as well as "7.50".
func (h *Hours) UnmarshalJSON(data []byte) error {
	var raw json.Number
	if err := json.Unmarshal(data, &raw); err != nil {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("invalid hours %s", data)
		}
		raw = json.Number(s)
	}
	parsed, err := ParseHours(raw.String())
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}
