package records

import (
	"errors"
	"testing"

	"github.com/emilianohg/taskdesk/internal/models"
	"github.com/emilianohg/taskdesk/internal/testsupport"
	"github.com/emilianohg/taskdesk/internal/validation"
)

func TestTesterCommentsOnlyOnResolvedTeamTasks(t *testing.T) {
	m, db, _ := newManager(t)
	tester := testsupport.User(t, db, "tess", false, "Testers")
	p := testsupport.Project(t, db, "Apollo", 0, tester)
	resolved := testsupport.Task(t, db, p, "done", "Resolved", 0, 0)
	open := testsupport.Task(t, db, p, "open", "New", 0, 0)

	viewer := member(tester, models.RoleTester)

	c := &models.Comment{TaskID: open, Content: "broken"}
	if err := m.CreateComment(viewer, c); !errors.Is(err, validation.ErrInvalidChoice) {
		t.Fatalf("comment on open task = %v, want ErrInvalidChoice", err)
	}

	c = &models.Comment{TaskID: resolved, Content: "verified"}
	if err := m.CreateComment(viewer, c); err != nil {
		t.Fatalf("comment on resolved task = %v", err)
	}
	if c.CreatedBy == nil || *c.CreatedBy != tester {
		t.Errorf("created by = %v", c.CreatedBy)
	}

	c.TaskID = open
	if err := m.UpdateComment(viewer, c); !errors.Is(err, validation.ErrInvalidChoice) {
		t.Errorf("move to open task = %v, want ErrInvalidChoice", err)
	}
}

func TestCommentValidationAndMissingTask(t *testing.T) {
	m, db, _ := newManager(t)
	admin := testsupport.User(t, db, "root", true)
	p := testsupport.Project(t, db, "Apollo", 0)
	task := testsupport.Task(t, db, p, "t", "New", 0, 0)

	if err := m.CreateComment(superuser(admin), &models.Comment{TaskID: task}); !errors.Is(err, validation.ErrRequired) {
		t.Errorf("empty content = %v", err)
	}
	if err := m.CreateComment(superuser(admin), &models.Comment{TaskID: 999, Content: "x"}); !errors.Is(err, validation.ErrInvalidChoice) {
		t.Errorf("missing task = %v", err)
	}
}

func TestProjectLeadCommentUpdateRequiresTeam(t *testing.T) {
	m, db, _ := newManager(t)
	lead := testsupport.User(t, db, "lena", false, "Project Lead")
	p := testsupport.Project(t, db, "Gemini", 0)
	task := testsupport.Task(t, db, p, "t", "New", lead, 0)
	id := testsupport.Comment(t, db, task, "assigned to lena", 0)

	viewer := member(lead, models.RoleProjectLead)
	if _, err := m.GetComment(viewer, id); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("get = %v", err)
	}
	c := &models.Comment{ID: id, TaskID: task, Content: "edit"}
	if err := m.UpdateComment(viewer, c); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("update = %v", err)
	}

	// the same user without the role sees it as the assignee
	if _, err := m.GetComment(member(lead), id); err != nil {
		t.Errorf("plain get = %v", err)
	}
}

func TestUpdateCommentKeepsCreatedBy(t *testing.T) {
	m, db, _ := newManager(t)
	alice := testsupport.User(t, db, "alice", false)
	bob := testsupport.User(t, db, "bob", false)
	p := testsupport.Project(t, db, "Apollo", 0)
	task := testsupport.Task(t, db, p, "t", "New", 0, 0)

	c := &models.Comment{TaskID: task, Content: "first"}
	if err := m.CreateComment(member(alice), c); err != nil {
		t.Fatal(err)
	}
	c.CreatedBy = &bob
	c.Title = ptr("Title")
	if err := m.UpdateComment(member(alice), c); err != nil {
		t.Fatal(err)
	}

	got, err := m.GetComment(member(alice), c.ID)
	if err != nil {
		t.Fatal(err)
	}
	if *got.CreatedBy != alice || got.DisplayTitle() != "Title" {
		t.Errorf("comment = %+v", got)
	}
}
