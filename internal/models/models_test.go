package models

import (
	"encoding/json"
	"testing"
)

func TestRoleForGroup(t *testing.T) {
	tests := []struct {
		group string
		want  Role
	}{
		{"Project Manager", RoleProjectManager},
		{"Project Lead", RoleProjectLead},
		{"developer", RoleDeveloper},
		{"Developers", RoleDeveloper},
		{"Testers", RoleTester},
		{"tester", RoleTester},
		{"Designers", RoleOther},
		{"", RoleOther},
	}
	for _, tt := range tests {
		if got := RoleForGroup(tt.group); got != tt.want {
			t.Errorf("RoleForGroup(%q) = %v, want %v", tt.group, got, tt.want)
		}
	}
}

func TestViewerIs(t *testing.T) {
	v := Viewer{ID: 1, Authenticated: true, Roles: []Role{RoleTester}}
	if !v.Is(RoleTester) {
		t.Error("expected tester")
	}
	if v.Is(RoleSuperuser) || v.Is(RoleDeveloper) {
		t.Error("unexpected role")
	}
	v.Superuser = true
	if !v.Is(RoleSuperuser) {
		t.Error("expected superuser")
	}
}

func TestViewerActorID(t *testing.T) {
	if Anonymous.ActorID() != nil {
		t.Error("anonymous viewer should not stamp createdBy")
	}
	v := Viewer{ID: 7, Authenticated: true}
	if id := v.ActorID(); id == nil || *id != 7 {
		t.Errorf("ActorID = %v", id)
	}
}

func TestParseHours(t *testing.T) {
	tests := []struct {
		in      string
		want    Hours
		wantErr bool
	}{
		{"7", 700, false},
		{"7.5", 750, false},
		{"7.25", 725, false},
		{"0.01", 1, false},
		{"999.99", 99999, false},
		{"7.255", 0, true},
		{"7.", 0, true},
		{"-1", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseHours(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseHours(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseHours(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestHoursJSON(t *testing.T) {
	var ts struct {
		Hours Hours `json:"hours"`
	}
	if err := json.Unmarshal([]byte(`{"hours": 1.5}`), &ts); err != nil {
		t.Fatalf("unmarshal number: %v", err)
	}
	if ts.Hours != 150 {
		t.Fatalf("hours = %d, want 150", ts.Hours)
	}
	if err := json.Unmarshal([]byte(`{"hours": "2.25"}`), &ts); err != nil {
		t.Fatalf("unmarshal string: %v", err)
	}
	out, err := json.Marshal(ts)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != `{"hours":2.25}` {
		t.Fatalf("marshal = %s", out)
	}
}

func TestCommentDisplayTitle(t *testing.T) {
	if got := (Comment{}).DisplayTitle(); got != "No Title" {
		t.Errorf("DisplayTitle = %q", got)
	}
	title := "Looks good"
	if got := (Comment{Title: &title}).DisplayTitle(); got != title {
		t.Errorf("DisplayTitle = %q", got)
	}
}

func TestNormalizeTaskStatus(t *testing.T) {
	if got := NormalizeTaskStatus("closed"); got != TaskClosed {
		t.Errorf("NormalizeTaskStatus(closed) = %q", got)
	}
	if got := NormalizeTaskStatus(TaskResolved); got != TaskResolved {
		t.Errorf("NormalizeTaskStatus(Resolved) = %q", got)
	}
	if TaskStatus("closed").Valid() {
		t.Error("lowercase closed should not be a valid stored status")
	}
}
