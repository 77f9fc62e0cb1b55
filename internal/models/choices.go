package models

import "strings"

type ProjectStatus string

const (
	ProjectNew        ProjectStatus = "New"
	ProjectInprogress ProjectStatus = "Inprogress"
	ProjectCompleted  ProjectStatus = "Completed"
)

var ProjectStatuses = []ProjectStatus{ProjectNew, ProjectInprogress, ProjectCompleted}

func (s ProjectStatus) Valid() bool { return contains(ProjectStatuses, s) }

type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

func (p Priority) Valid() bool { return contains(Priorities, p) }

type TaskStatus string

const (
	TaskNew        TaskStatus = "New"
	TaskInprogress TaskStatus = "Inprogress"
	TaskResolved   TaskStatus = "Resolved"
	TaskReopened   TaskStatus = "Reopened"
	TaskClosed     TaskStatus = "Closed"
)

var TaskStatuses = []TaskStatus{TaskNew, TaskInprogress, TaskResolved, TaskReopened, TaskClosed}

func (s TaskStatus) Valid() bool { return contains(TaskStatuses, s) }

// NormalizeTaskStatus maps legacy lowercase "closed" rows onto Closed.
func NormalizeTaskStatus(s TaskStatus) TaskStatus {
	if strings.EqualFold(string(s), string(TaskClosed)) {
		return TaskClosed
	}
	return s
}

type TrackerType string

const (
	TrackerTask           TrackerType = "Task"
	TrackerBug            TrackerType = "Bug"
	TrackerFeatureRequest TrackerType = "Feature request"
	TrackerImprovement    TrackerType = "Improvement"
)

var TrackerTypes = []TrackerType{TrackerTask, TrackerBug, TrackerFeatureRequest, TrackerImprovement}

func (t TrackerType) Valid() bool { return contains(TrackerTypes, t) }

type Severity string

const (
	SeverityCritical Severity = "Critical"
	SeverityMajor    Severity = "Major"
	SeverityMinor    Severity = "Minor"
	SeverityTrivial  Severity = "Trivial"
)

var Severities = []Severity{SeverityCritical, SeverityMajor, SeverityMinor, SeverityTrivial}

func (s Severity) Valid() bool { return contains(Severities, s) }

type Reproducibility string

const (
	ReproducibleAlways    Reproducibility = "Always"
	ReproducibleSometime  Reproducibility = "Sometime"
	ReproducibleRarely    Reproducibility = "Rarely"
	ReproducibleNever     Reproducibility = "Unable to Reproduce"
)

var Reproducibilities = []Reproducibility{ReproducibleAlways, ReproducibleSometime, ReproducibleRarely, ReproducibleNever}

func (r Reproducibility) Valid() bool { return contains(Reproducibilities, r) }

func contains[T comparable](values []T, v T) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
