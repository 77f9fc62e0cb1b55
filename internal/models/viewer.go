package models

import "strings"

// Role is the closed set of roles a viewer can hold. Superuser comes from the
// user record, every other role from group membership.
type Role int

const (
	RoleOther Role = iota
	RoleSuperuser
	RoleProjectManager
	RoleProjectLead
	RoleDeveloper
	RoleTester
)

var roleNames = map[Role]string{
	RoleOther:          "Other",
	RoleSuperuser:      "Superuser",
	RoleProjectManager: "Project Manager",
	RoleProjectLead:    "Project Lead",
	RoleDeveloper:      "Developer",
	RoleTester:         "Tester",
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return "Other"
}

// RoleForGroup maps a group name onto a role. Group names in existing data are
// inconsistent ("developer", "Testers"), so matching ignores case and a
// trailing plural.
func RoleForGroup(name string) Role {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.TrimSuffix(n, "s")
	switch n {
	case "project manager":
		return RoleProjectManager
	case "project lead":
		return RoleProjectLead
	case "developer":
		return RoleDeveloper
	case "tester":
		return RoleTester
	}
	return RoleOther
}

// Viewer is the actor a request runs on behalf of.
type Viewer struct {
	ID            int64
	Username      string
	Authenticated bool
	Superuser     bool
	Roles         []Role
}

// Anonymous is the zero viewer.
var Anonymous = Viewer{}

// Is reports whether the viewer holds role.
func (v Viewer) Is(role Role) bool {
	if role == RoleSuperuser {
		return v.Superuser
	}
	for _, r := range v.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// ActorID returns the viewer id for audit stamping, nil when anonymous.
func (v Viewer) ActorID() *int64 {
	if !v.Authenticated || v.ID == 0 {
		return nil
	}
	id := v.ID
	return &id
}
