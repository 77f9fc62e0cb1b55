package access

import "strings"

// Filter is a SQL predicate with its bind arguments. Filters compose with And
// and Or, and the same value is used for list queries and single-record
// lookups, so a record missing from a list is also missing by id.
//
// Predicates refer to fixed table aliases: p (projects), t (tasks),
// c (comments), f (files), ts (timesheets).
type Filter struct {
	clause string
	args   []any
}

// Where builds a filter from a raw predicate.
func Where(clause string, args ...any) Filter {
	return Filter{clause: clause, args: args}
}

// All matches every row.
func All() Filter { return Filter{} }

// None matches no row.
func None() Filter { return Where("0") }

// IsAll reports whether f places no restriction.
func (f Filter) IsAll() bool { return f.clause == "" }

// And matches rows satisfying every filter.
func And(filters ...Filter) Filter {
	var kept []Filter
	for _, f := range filters {
		if !f.IsAll() {
			kept = append(kept, f)
		}
	}
	switch len(kept) {
	case 0:
		return All()
	case 1:
		return kept[0]
	}
	return join(kept, " AND ")
}

// Or matches rows satisfying any filter.
func Or(filters ...Filter) Filter {
	for _, f := range filters {
		if f.IsAll() {
			return All()
		}
	}
	switch len(filters) {
	case 0:
		return None()
	case 1:
		return filters[0]
	}
	return join(filters, " OR ")
}

func join(filters []Filter, op string) Filter {
	parts := make([]string, 0, len(filters))
	var args []any
	for _, f := range filters {
		parts = append(parts, "("+f.clause+")")
		args = append(args, f.args...)
	}
	return Filter{clause: strings.Join(parts, op), args: args}
}

// SQL returns the predicate and its arguments, ready to follow WHERE.
func (f Filter) SQL() (string, []any) {
	if f.IsAll() {
		return "1", nil
	}
	return f.clause, f.args
}

// inTeam matches rows whose project, named by projectCol, has userID on its team.
func inTeam(projectCol string, userID int64) Filter {
	return Where("EXISTS (SELECT 1 FROM project_team pt WHERE pt.project_id = "+projectCol+" AND pt.user_id = ?)", userID)
}

func eq(col string, v any) Filter {
	return Where(col+" = ?", v)
}
