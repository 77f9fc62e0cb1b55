package access_test

import (
	"reflect"
	"testing"

	"github.com/emilianohg/taskdesk/internal/access"
	"github.com/emilianohg/taskdesk/internal/models"
	"github.com/emilianohg/taskdesk/internal/repository"
	"github.com/emilianohg/taskdesk/internal/testsupport"
)

func TestTaskListOrderMatchesStatusRank(t *testing.T) {
	db := testsupport.OpenDB(t)
	p := testsupport.Project(t, db, "Apollo", 0)
	closed := testsupport.Task(t, db, p, "a", "Closed", 0, 0)
	newTask := testsupport.Task(t, db, p, "b", "New", 0, 0)
	inprogress := testsupport.Task(t, db, p, "c", "Inprogress", 0, 0)
	resolved := testsupport.Task(t, db, p, "d", "Resolved", 0, 0)
	reopened := testsupport.Task(t, db, p, "e", "Reopened", 0, 0)

	got := taskIDs(t, repository.NewTaskRepo(db), access.All())
	want := []int64{newTask, reopened, inprogress, resolved, closed}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestLegacyClosedSortsBeforeUnranked(t *testing.T) {
	db := testsupport.OpenDB(t)
	p := testsupport.Project(t, db, "Apollo", 0)
	archived := testsupport.Task(t, db, p, "a", "Archived", 0, 0)
	legacy := testsupport.Task(t, db, p, "b", "closed", 0, 0)
	newTask := testsupport.Task(t, db, p, "c", "New", 0, 0)

	repo := repository.NewTaskRepo(db)
	got := taskIDs(t, repo, access.All())
	want := []int64{newTask, legacy, archived}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}

	tasks, err := repo.List(access.All(), nil)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if tasks[1].Status != models.TaskClosed {
		t.Errorf("legacy status = %q, want %q", tasks[1].Status, models.TaskClosed)
	}
}
