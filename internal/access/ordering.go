package access

import (
	"fmt"
	"strings"

	"github.com/emilianohg/taskdesk/internal/models"
)

var statusRank = map[models.TaskStatus]int{
	models.TaskNew:        1,
	models.TaskReopened:   2,
	models.TaskInprogress: 3,
	models.TaskResolved:   4,
	models.TaskClosed:     5,
}

// UnrankedStatus sorts after every known status.
const UnrankedStatus = 999

// StatusRank is the display rank of a task status. Legacy lowercase
// "closed" ranks as Closed.
func StatusRank(s models.TaskStatus) int {
	if rank, ok := statusRank[models.NormalizeTaskStatus(s)]; ok {
		return rank
	}
	return UnrankedStatus
}

// TaskOrderBy orders alias t by StatusRank, then insertion order. Statuses
// compare case-insensitively so stored legacy values rank with their
// canonical form.
func TaskOrderBy() string {
	var b strings.Builder
	b.WriteString("CASE lower(t.status)")
	for _, s := range models.TaskStatuses {
		fmt.Fprintf(&b, " WHEN '%s' THEN %d", strings.ToLower(string(s)), StatusRank(s))
	}
	fmt.Fprintf(&b, " ELSE %d END, t.id", UnrankedStatus)
	return b.String()
}
