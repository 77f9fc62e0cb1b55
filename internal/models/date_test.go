package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		in      string
		want    Date
		wantErr bool
	}{
		{"2025-02-01", NewDate(2025, 2, 1), false},
		{" 2025-02-01 ", NewDate(2025, 2, 1), false},
		{"2025-03-01T10:00:00Z", NewDate(2025, 3, 1), false},
		{"2025-03-01T23:30:00-05:00", NewDate(2025, 3, 1), false},
		{"01/02/2025", Date{}, true},
		{"", Date{}, true},
	}
	for _, tt := range tests {
		got, err := ParseDate(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseDate(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("ParseDate(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestDateJSON(t *testing.T) {
	var p struct {
		Start Date  `json:"start"`
		End   *Date `json:"end"`
	}
	if err := json.Unmarshal([]byte(`{"start":"2025-02-01","end":null}`), &p); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !p.Start.Equal(NewDate(2025, 2, 1)) || p.End != nil {
		t.Fatalf("decoded %+v", p)
	}

	out, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(out) != `{"start":"2025-02-01","end":null}` {
		t.Errorf("Marshal = %s", out)
	}

	if err := json.Unmarshal([]byte(`{"start":20250201}`), &p); err == nil {
		t.Error("expected error for numeric date")
	}
}

func TestDateScan(t *testing.T) {
	tests := []struct {
		name string
		src  any
		want Date
	}{
		{"nil", nil, Date{}},
		{"time", time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), NewDate(2025, 2, 1)},
		{"text", "2025-02-01", NewDate(2025, 2, 1)},
		{"timestamp text", []byte("2025-02-01 00:00:00+00:00"), NewDate(2025, 2, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Date
			if err := d.Scan(tt.src); err != nil {
				t.Fatalf("Scan: %v", err)
			}
			if !d.Equal(tt.want) {
				t.Errorf("Scan(%v) = %s, want %s", tt.src, d, tt.want)
			}
		})
	}

	var d Date
	if err := d.Scan(42); err == nil {
		t.Error("expected error for int")
	}
}

func TestDateValue(t *testing.T) {
	v, err := NewDate(2025, 2, 1).Value()
	if err != nil || v != "2025-02-01" {
		t.Errorf("Value() = %v, %v", v, err)
	}
	if v, _ := (Date{}).Value(); v != nil {
		t.Errorf("zero Value() = %v, want nil", v)
	}
}
