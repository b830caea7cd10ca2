package domain

// Project is the closed set of projects a task or focus session can belong to.
type Project string

const (
	ProjectGA       Project = "GA"
	ProjectPoly     Project = "Poly"
	ProjectOureon   Project = "Oureon"
	ProjectPersonal Project = "Personal"
)

// TaskType classifies the kind of work a task represents.
type TaskType string

const (
	TaskTypeStudy TaskType = "study"
	TaskTypeCode  TaskType = "code"
	TaskTypeAdmin TaskType = "admin"
	TaskTypeLife  TaskType = "life"
)

// SessionMode classifies a focus session.
type SessionMode string

const (
	ModeStudy  SessionMode = "study"
	ModeCoding SessionMode = "coding"
	ModeReview SessionMode = "review"
	ModeExam   SessionMode = "exam"
)

func (p Project) Valid() bool {
	switch p {
	case ProjectGA, ProjectPoly, ProjectOureon, ProjectPersonal:
		return true
	}
	return false
}

func (t TaskType) Valid() bool {
	switch t {
	case TaskTypeStudy, TaskTypeCode, TaskTypeAdmin, TaskTypeLife:
		return true
	}
	return false
}

func (m SessionMode) Valid() bool {
	switch m {
	case ModeStudy, ModeCoding, ModeReview, ModeExam:
		return true
	}
	return false
}
