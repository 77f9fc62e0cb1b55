package access

import (
	"reflect"
	"testing"
)

func TestFilterComposition(t *testing.T) {
	a := Where("a = ?", 1)
	b := Where("b = ?", 2)

	tests := []struct {
		name       string
		filter     Filter
		wantClause string
		wantArgs   []any
	}{
		{"all", All(), "1", nil},
		{"and of nothing", And(), "1", nil},
		{"and skips all", And(All(), a), "a = ?", []any{1}},
		{"and", And(a, b), "(a = ?) AND (b = ?)", []any{1, 2}},
		{"or of nothing", Or(), "0", nil},
		{"or with all", Or(a, All()), "1", nil},
		{"or", Or(a, b), "(a = ?) OR (b = ?)", []any{1, 2}},
		{"nested", And(Or(a, b), Where("c = ?", 3)), "((a = ?) OR (b = ?)) AND (c = ?)", []any{1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clause, args := tt.filter.SQL()
			if clause != tt.wantClause {
				t.Errorf("clause = %q, want %q", clause, tt.wantClause)
			}
			if !reflect.DeepEqual(args, tt.wantArgs) {
				t.Errorf("args = %v, want %v", args, tt.wantArgs)
			}
		})
	}
}
