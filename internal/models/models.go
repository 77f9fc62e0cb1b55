package models

import "time"

// Audit is embedded in every tracked record.
type Audit struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	IsActive  bool      `json:"is_active"`
	CreatedBy *int64    `json:"created_by"`
}

type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	IsSuperuser  bool      `json:"is_superuser"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

type Group struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Project struct {
	ID          int64         `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	StartDate   Date          `json:"start_date"`
	EndDate     *Date         `json:"end_date"`
	Status      ProjectStatus `json:"status"`
	Priority    Priority      `json:"priority"`
	Team        []int64       `json:"team"`
	Audit

	// Computed per viewer
	TaskCount *int `json:"task_count,omitempty"`
}

func (p Project) String() string { return p.Name }

type Task struct {
	ID               int64           `json:"id"`
	Title            string          `json:"title"`
	Description      string          `json:"description"`
	ProjectID        int64           `json:"project_id"`
	AssignedTo       *int64          `json:"assigned_to"`
	Priority         Priority        `json:"priority"`
	Status           TaskStatus      `json:"status"`
	TrackerType      TrackerType     `json:"tracker_type"`
	Severity         Severity        `json:"severity"`
	Reproducibility  Reproducibility `json:"reproducibility"`
	StartDate        Date            `json:"start_date"`
	DueDate          *Date           `json:"due_date"`
	StepsToReproduce string          `json:"steps_to_reproduce"`
	Environment      string          `json:"environment"`
	Audit

	// Joined fields
	ProjectName string `json:"project_name,omitempty"`
}

func (t Task) String() string { return t.Title }

type Comment struct {
	ID      int64   `json:"id"`
	Title   *string `json:"title"`
	TaskID  int64   `json:"task_id"`
	Content string  `json:"content"`
	Audit
}

// DisplayTitle falls back to "No Title" when the comment has none.
func (c Comment) DisplayTitle() string {
	if c.Title == nil || *c.Title == "" {
		return "No Title"
	}
	return *c.Title
}

type File struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Path   string `json:"path"`
	TaskID *int64 `json:"task_id"`
	Audit
}

func (f File) String() string { return f.Name }

type TimeSheet struct {
	ID          int64     `json:"id"`
	ProjectID   int64     `json:"project_id"`
	TaskID      int64     `json:"task_id"`
	Date        time.Time `json:"date"`
	Hours       Hours     `json:"hours"`
	Description string    `json:"description"`
	Audit
}

// TaskRef is the {id, title} pair served to task pickers.
type TaskRef struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

// Member is the {id, username} pair served to team pickers.
type Member struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// GroupChoices is one labelled block of the project team selector.
type GroupChoices struct {
	Group   string   `json:"group"`
	Members []Member `json:"members"`
}
