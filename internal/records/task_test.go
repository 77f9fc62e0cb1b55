package records

import (
	"errors"
	"testing"

	"github.com/emilianohg/taskdesk/internal/models"
	"github.com/emilianohg/taskdesk/internal/testsupport"
	"github.com/emilianohg/taskdesk/internal/validation"
)

func TestCreateTaskAgainstProjectDates(t *testing.T) {
	m, db, _ := newManager(t)
	admin := testsupport.User(t, db, "root", true)

	p := &models.Project{
		Name:      "Apollo",
		StartDate: testsupport.Date(2025, 2, 1),
		EndDate:   ptr(testsupport.Date(2025, 3, 1)),
	}
	if err := m.CreateProject(superuser(admin), p); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		start   models.Task
		wantErr error
	}{
		{
			name:    "starts before project",
			start:   models.Task{StartDate: testsupport.Date(2025, 1, 15)},
			wantErr: validation.ErrTaskBeforeProjectStart,
		},
		{
			name:    "due after project end",
			start:   models.Task{StartDate: testsupport.Date(2025, 2, 2), DueDate: ptr(testsupport.Date(2025, 3, 15))},
			wantErr: validation.ErrTaskAfterProjectEnd,
		},
		{
			name:    "due before start",
			start:   models.Task{StartDate: testsupport.Date(2025, 2, 10), DueDate: ptr(testsupport.Date(2025, 2, 5))},
			wantErr: validation.ErrInvalidDateRange,
		},
		{
			name:  "inside project",
			start: models.Task{StartDate: testsupport.Date(2025, 2, 2), DueDate: ptr(testsupport.Date(2025, 2, 20))},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := tt.start
			task.Title = "Task"
			task.ProjectID = p.ID
			err := m.CreateTask(superuser(admin), &task)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("CreateTask = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && task.ID == 0 {
				t.Error("task id not set")
			}
		})
	}
}

func TestCreateTaskDefaultsAndMissingProject(t *testing.T) {
	m, db, _ := newManager(t)
	admin := testsupport.User(t, db, "root", true)
	p := testsupport.Project(t, db, "Apollo", admin)

	task := &models.Task{Title: "T", ProjectID: p, StartDate: testsupport.Start, Status: "closed"}
	if err := m.CreateTask(superuser(admin), task); err != nil {
		t.Fatal(err)
	}
	got, err := m.GetTask(superuser(admin), task.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != models.TaskClosed || got.TrackerType != models.TrackerTask ||
		got.Severity != models.SeverityCritical || got.Reproducibility != models.ReproducibleAlways {
		t.Errorf("defaults = %+v", got)
	}

	orphan := &models.Task{Title: "T", ProjectID: 999, StartDate: testsupport.Start}
	if err := m.CreateTask(superuser(admin), orphan); !errors.Is(err, validation.ErrRequired) {
		t.Errorf("missing project = %v, want ErrRequired", err)
	}
}

func TestUpdateTaskCreatedByIsImmutable(t *testing.T) {
	m, db, _ := newManager(t)
	dev := testsupport.User(t, db, "dave", false)
	other := testsupport.User(t, db, "olga", false)
	p := testsupport.Project(t, db, "Apollo", 0, dev)
	id := testsupport.Task(t, db, p, "t", "New", dev, dev)

	task, err := m.GetTask(member(dev), id)
	if err != nil {
		t.Fatal(err)
	}
	task.CreatedBy = &other
	task.Status = models.TaskInprogress
	if err := m.UpdateTask(member(dev), task); err != nil {
		t.Fatal(err)
	}

	got, _ := m.GetTask(member(dev), id)
	if *got.CreatedBy != dev {
		t.Errorf("created by = %d, want %d", *got.CreatedBy, dev)
	}
	if got.Status != models.TaskInprogress {
		t.Errorf("status = %q", got.Status)
	}
}

func TestDeveloperCannotTouchUnassignedTask(t *testing.T) {
	m, db, _ := newManager(t)
	dev := testsupport.User(t, db, "dave", false)
	other := testsupport.User(t, db, "olga", false)
	p := testsupport.Project(t, db, "Apollo", 0, dev, other)
	mine := testsupport.Task(t, db, p, "mine", "New", dev, 0)
	theirs := testsupport.Task(t, db, p, "theirs", "New", other, dev)

	viewer := member(dev, models.RoleDeveloper)
	tasks, err := m.ListTasks(viewer, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(tasks) != 1 || tasks[0].ID != mine {
		t.Errorf("tasks = %+v", tasks)
	}

	if _, err := m.GetTask(viewer, theirs); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("get = %v", err)
	}
	if err := m.DeleteTask(viewer, theirs); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("delete = %v", err)
	}
}
