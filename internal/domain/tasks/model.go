package tasks

import "time"

// Status labels are stored and served verbatim; the frontend renders them
// as-is.
type Status string

const (
	StatusNew        Status = "Новая задача"
	StatusInProgress Status = "В работе"
	StatusDone       Status = "Выполнено"
	StatusDeferred   Status = "Отложено"
	StatusProblem    Status = "Проблемный дом"
)

func ValidStatus(s Status) bool {
	switch s {
	case StatusNew, StatusInProgress, StatusDone, StatusDeferred, StatusProblem:
		return true
	}
	return false
}

// Task is one unit of field work. TZ holds the technical spec text, Access the
// building-access notes.
type Task struct {
	ID        int64
	Address   string
	TZ        string
	Access    string
	Note      string
	TeamID    *int64
	Status    Status
	CreatedAt time.Time
}

// Draft carries the admin-editable fields.
type Draft struct {
	Address string
	TZ      string
	Access  string
	Note    string
	TeamID  *int64
	Status  Status
}

type Filter struct {
	Status  *Status
	Address string // substring match
	TeamID  *int64
}
