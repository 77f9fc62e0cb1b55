package repository

import (
	"testing"
	"time"

	"github.com/emilianohg/taskdesk/internal/access"
	"github.com/emilianohg/taskdesk/internal/models"
	"github.com/emilianohg/taskdesk/internal/testsupport"
)

func TestTimeSheetUpdateKeepsDate(t *testing.T) {
	db := testsupport.OpenDB(t)
	p := testsupport.Project(t, db, "Apollo", 0)
	task := testsupport.Task(t, db, p, "t", "New", 0, 0)

	logged := time.Date(2025, 2, 3, 9, 30, 0, 0, time.UTC)
	repo := NewTimeSheetRepo(db)
	id, err := repo.Create(&models.TimeSheet{
		ProjectID: p, TaskID: task, Date: logged, Hours: 750, Description: "pairing",
		Audit: models.Audit{CreatedAt: testsupport.Day, UpdatedAt: testsupport.Day, IsActive: true},
	})
	if err != nil {
		t.Fatal(err)
	}

	ts, err := repo.GetByID(id, access.All())
	if err != nil || ts == nil {
		t.Fatalf("GetByID: %v, %v", ts, err)
	}
	if ts.Hours != 750 || ts.Hours.String() != "7.50" {
		t.Errorf("hours = %v", ts.Hours)
	}

	ts.Date = logged.Add(72 * time.Hour)
	ts.Hours = models.MaxHours
	if err := repo.Update(ts); err != nil {
		t.Fatal(err)
	}

	again, _ := repo.GetByID(id, access.All())
	if !again.Date.Equal(logged) {
		t.Errorf("date = %v, want %v", again.Date, logged)
	}
	if again.Hours != models.MaxHours {
		t.Errorf("hours = %v", again.Hours)
	}
}

func TestTimeSheetHoursCheckConstraint(t *testing.T) {
	db := testsupport.OpenDB(t)
	p := testsupport.Project(t, db, "Apollo", 0)
	task := testsupport.Task(t, db, p, "t", "New", 0, 0)

	_, err := NewTimeSheetRepo(db).Create(&models.TimeSheet{
		ProjectID: p, TaskID: task, Date: testsupport.Day, Hours: models.MaxHours + 1, Description: "too much",
		Audit: models.Audit{CreatedAt: testsupport.Day, UpdatedAt: testsupport.Day, IsActive: true},
	})
	if err == nil {
		t.Fatal("expected the hours check to reject 1000.00")
	}
}
