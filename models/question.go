package models

import (
	"time"
)

// QuestionType is the tagged kind of a question. Adding a new kind means
// adding a constant here plus one case in the validation engine.
type QuestionType string

const (
	QuestionTypeMCQ  QuestionType = "MCQ"
	QuestionTypeText QuestionType = "TEXT"
)

func (t QuestionType) Valid() bool {
	return t == QuestionTypeMCQ || t == QuestionTypeText
}

type Question struct {
	ID        uint         `json:"id" gorm:"primaryKey"`
	QuizID    uint         `json:"quiz_id" gorm:"not null;uniqueIndex:idx_quiz_question_text"`
	Text      string       `json:"text" gorm:"not null;uniqueIndex:idx_quiz_question_text"`
	Type      QuestionType `json:"question_type" gorm:"not null;default:'MCQ'"`
	CreatedAt time.Time    `json:"created_at"`

	// Relationships
	Quiz    Quiz     `json:"-" gorm:"foreignKey:QuizID"`
	Answers []Answer `json:"answers,omitempty" gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE"`
}
