package models

import (
	"time"
)

// Submission is one completed attempt at one quiz by one user. The composite
// unique index on (quiz_id, user_id) is what makes the duplicate-submission
// check race-free: concurrent attempts for the same pair resolve to exactly
// one committed row and one well-defined conflict error.
type Submission struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	QuizID    uint      `json:"quiz_id" gorm:"not null;uniqueIndex:idx_submission_quiz_user"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_submission_quiz_user"`
	Score     int       `json:"score" gorm:"not null;default:0"`
	CreatedAt time.Time `json:"submitted_at"`

	// Relationships
	Quiz    Quiz           `json:"quiz,omitempty" gorm:"foreignKey:QuizID"`
	User    User           `json:"-" gorm:"foreignKey:UserID"`
	Answers []AnswerRecord `json:"answers,omitempty" gorm:"foreignKey:SubmissionID;constraint:OnDelete:CASCADE"`
}
