package models

// AnswerRecord is the stored outcome for one question within one submission.
// AnswerID is nil for TEXT questions: free-text answers reference no Answer
// row at all. Records are written once inside the submission transaction and
// never mutated afterward.
type AnswerRecord struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	SubmissionID uint   `json:"submission_id" gorm:"not null"`
	QuestionID   uint   `json:"question_id" gorm:"not null"`
	AnswerID     *uint  `json:"answer_id"`
	TextValue    string `json:"text_value,omitempty"`
	IsCorrect    bool   `json:"is_correct" gorm:"not null;default:false"`

	// Relationships
	Submission Submission `json:"-" gorm:"foreignKey:SubmissionID"`
	Question   Question   `json:"-" gorm:"foreignKey:QuestionID"`
	Answer     *Answer    `json:"answer,omitempty" gorm:"foreignKey:AnswerID"`
}
