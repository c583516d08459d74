package job

import (
	"time"

	"github.com/google/uuid"
)

// Level buckets jobs by seniority. Unknown values fall back to LevelMid when
// aligning candidate experience.
type Level string

const (
	LevelIntern Level = "intern"
	LevelJunior Level = "junior"
	LevelMid    Level = "mid"
	LevelSenior Level = "senior"
	LevelStaff  Level = "staff"
)

// ExpectedYears returns the experience range a level implies, in years.
func (l Level) ExpectedYears() (min, max int) {
	switch l {
	case LevelIntern:
		return 0, 1
	case LevelJunior:
		return 0, 3
	case LevelMid:
		return 2, 6
	case LevelSenior:
		return 5, 12
	case LevelStaff:
		return 8, 20
	default:
		return 2, 6
	}
}

// Job is immutable once published except for the IsActive toggle.
type Job struct {
	ID           uuid.UUID
	Title        string
	Description  string
	Requirements []string
	Level        Level
	Department   string
	IsActive     bool
	CreatedAt    time.Time
}
