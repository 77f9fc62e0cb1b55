// Package access decides which records a viewer may see and which fields they
// may change. Each role contributes one rule per capability through the rules
// table; Policy combines the rules of every role the viewer holds.
package access

import (
	"github.com/emilianohg/taskdesk/internal/models"
)

// Project fields as named in requests and in ReadOnlyProjectFields.
const (
	FieldIsActive    = "is_active"
	FieldName        = "name"
	FieldDescription = "description"
	FieldStartDate   = "start_date"
	FieldEndDate     = "end_date"
	FieldStatus      = "status"
	FieldPriority    = "priority"
	FieldTeam        = "team"
	FieldCreatedBy   = "created_by"
)

// ProjectFields lists the editable project fields in form order.
var ProjectFields = []string{
	FieldName, FieldDescription, FieldStartDate, FieldEndDate,
	FieldStatus, FieldPriority, FieldTeam, FieldIsActive,
}

type rule struct {
	// unrestricted bypasses every visibility and mutability rule.
	unrestricted bool

	// taskScope replaces the default team-or-creator task visibility.
	taskScope func(v models.Viewer) Filter

	// commentScope is ANDed onto the default comment visibility.
	commentScope func(v models.Viewer) Filter

	// commentTaskChoices narrows the tasks a comment may be attached to.
	commentTaskChoices func(v models.Viewer) Filter

	// mutableProjectFields, when non-nil, is the only project fields the role may write.
	mutableProjectFields []string

	countsAllTasks bool

	// hiddenFromTeamSelector drops the role's group from team choices.
	hiddenFromTeamSelector bool
}

var rules = map[models.Role]rule{
	models.RoleSuperuser: {
		unrestricted:   true,
		countsAllTasks: true,
	},
	models.RoleProjectManager: {
		countsAllTasks:         true,
		hiddenFromTeamSelector: true,
	},
	models.RoleProjectLead: {
		countsAllTasks: true,
		commentScope: func(v models.Viewer) Filter {
			return inTeam("t.project_id", v.ID)
		},
		mutableProjectFields: []string{FieldStatus},
	},
	models.RoleDeveloper: {
		taskScope: func(v models.Viewer) Filter {
			return eq("t.assigned_to", v.ID)
		},
	},
	models.RoleTester: {
		commentTaskChoices: func(v models.Viewer) Filter {
			return And(eq("t.status", string(models.TaskResolved)), inTeam("t.project_id", v.ID))
		},
	},
	models.RoleOther: {},
}

// roleOrder fixes precedence when several roles define the same override.
var roleOrder = []models.Role{
	models.RoleSuperuser,
	models.RoleProjectManager,
	models.RoleProjectLead,
	models.RoleDeveloper,
	models.RoleTester,
	models.RoleOther,
}

// Policy is the access policy for one viewer.
type Policy struct {
	viewer models.Viewer
	rules  []rule
}

// For builds the policy of v.
func For(v models.Viewer) Policy {
	p := Policy{viewer: v}
	for _, role := range roleOrder {
		if v.Is(role) {
			p.rules = append(p.rules, rules[role])
		}
	}
	return p
}

func (p Policy) Viewer() models.Viewer { return p.viewer }

func (p Policy) unrestricted() bool {
	for _, r := range p.rules {
		if r.unrestricted {
			return true
		}
	}
	return false
}

// Projects: team members and the creator.
func (p Policy) Projects() Filter {
	if p.unrestricted() {
		return All()
	}
	return Or(inTeam("p.id", p.viewer.ID), eq("p.created_by", p.viewer.ID))
}

// Tasks: the first role-specific scope, else team members of the task's
// project and the task's creator.
func (p Policy) Tasks() Filter {
	if p.unrestricted() {
		return All()
	}
	for _, r := range p.rules {
		if r.taskScope != nil {
			return r.taskScope(p.viewer)
		}
	}
	return Or(inTeam("t.project_id", p.viewer.ID), eq("t.created_by", p.viewer.ID))
}

// Comments: the assignee of the comment's task and the comment's creator,
// narrowed by every role-specific scope.
func (p Policy) Comments() Filter {
	if p.unrestricted() {
		return All()
	}
	filters := []Filter{Or(eq("t.assigned_to", p.viewer.ID), eq("c.created_by", p.viewer.ID))}
	for _, r := range p.rules {
		if r.commentScope != nil {
			filters = append(filters, r.commentScope(p.viewer))
		}
	}
	return And(filters...)
}

// Files: the assignee of the file's task and the file's creator.
func (p Policy) Files() Filter {
	if p.unrestricted() {
		return All()
	}
	return Or(eq("t.assigned_to", p.viewer.ID), eq("f.created_by", p.viewer.ID))
}

// TimeSheets are visible to everyone.
func (p Policy) TimeSheets() Filter {
	return All()
}

// CommentTaskChoices restricts the tasks offered when attaching a comment.
func (p Policy) CommentTaskChoices() Filter {
	if p.unrestricted() {
		return All()
	}
	var filters []Filter
	for _, r := range p.rules {
		if r.commentTaskChoices != nil {
			filters = append(filters, r.commentTaskChoices(p.viewer))
		}
	}
	return And(filters...)
}

// TaskCount selects the tasks counted in a project's summary.
func (p Policy) TaskCount() Filter {
	for _, r := range p.rules {
		if r.countsAllTasks {
			return All()
		}
	}
	return eq("t.assigned_to", p.viewer.ID)
}

// CanEditProjectField reports whether the viewer may write field.
func (p Policy) CanEditProjectField(field string) bool {
	if field == FieldCreatedBy {
		return false
	}
	if p.unrestricted() {
		return true
	}
	for _, r := range p.rules {
		if r.mutableProjectFields != nil && !containsString(r.mutableProjectFields, field) {
			return false
		}
	}
	return true
}

// ReadOnlyProjectFields lists the fields CanEditProjectField refuses.
func (p Policy) ReadOnlyProjectFields() []string {
	readOnly := []string{FieldCreatedBy}
	for _, f := range ProjectFields {
		if !p.CanEditProjectField(f) {
			readOnly = append(readOnly, f)
		}
	}
	return readOnly
}

func containsString(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
