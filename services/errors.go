package services

import (
	"errors"
	"fmt"

	"quizevent/models"
)

// Referential errors.
var (
	ErrQuizNotFound       = errors.New("quiz not found")
	ErrQuestionNotFound   = errors.New("question not found")
	ErrSubmissionNotFound = errors.New("submission not found")
	ErrUserNotFound       = errors.New("user not found")
)

// Conflict errors.
var (
	ErrDuplicateSubmission    = errors.New("quiz already completed by this user")
	ErrDuplicateQuestion      = errors.New("this question already exists for this quiz")
	ErrMultipleCorrectAnswers = errors.New("this question already has a correct answer")
	ErrUsernameTaken          = errors.New("a user with this username already exists")
	ErrEmailTaken             = errors.New("a user with this email already exists")
	ErrInvalidCredentials     = errors.New("invalid username or password")
)

// EmptyQuizError reports a submission attempt against a quiz with no questions.
var ErrEmptyQuiz = errors.New("this quiz has no questions available")

// FieldErrors maps an input field name to the first rule it violated. It is
// the aggregate reporting form used by the JSON API; the form adapter flashes
// a single message from it.
type FieldErrors map[string]string

func (f FieldErrors) Error() string {
	for field, msg := range f {
		return fmt.Sprintf("%s: %s", field, msg)
	}
	return "invalid input"
}

// AnswerViolation identifies which validation rule an answer set broke.
type AnswerViolation string

const (
	ViolationMissingAnswer       AnswerViolation = "missing_answer"
	ViolationEmptyAnswer         AnswerViolation = "empty_answer"
	ViolationTooManyAnswers      AnswerViolation = "too_many_answers"
	ViolationMalformedAnswerID   AnswerViolation = "malformed_answer_id"
	ViolationUnknownAnswer       AnswerViolation = "unknown_answer"
	ViolationAnswerMismatch      AnswerViolation = "answer_question_mismatch"
	ViolationTextTooLong         AnswerViolation = "text_too_long"
	ViolationTextEmpty           AnswerViolation = "text_empty"
	ViolationUnknownQuestionType AnswerViolation = "unknown_question_type"
)

// AnswerValidationError is the first rule violation found while validating a
// raw answer set, in question-iteration order. Question is nil for set-level
// violations such as too many answers.
type AnswerValidationError struct {
	Violation AnswerViolation
	Question  *models.Question
}

func (e *AnswerValidationError) Error() string {
	if e.Question == nil {
		return e.message()
	}
	return fmt.Sprintf("%s (question: %s)", e.message(), truncate(e.Question.Text, 50))
}

func (e *AnswerValidationError) message() string {
	switch e.Violation {
	case ViolationMissingAnswer:
		return "missing answer for question"
	case ViolationEmptyAnswer:
		return "answer cannot be empty"
	case ViolationTooManyAnswers:
		return "too many answers provided, answer only the questions in this quiz"
	case ViolationMalformedAnswerID:
		return "invalid answer format, expected a positive numeric answer id"
	case ViolationUnknownAnswer:
		return "selected answer does not exist"
	case ViolationAnswerMismatch:
		return "selected answer does not belong to this question"
	case ViolationTextTooLong:
		return "text answer is too long, maximum 1000 characters allowed"
	case ViolationTextEmpty:
		return "text answer cannot be empty"
	case ViolationUnknownQuestionType:
		return "unknown question type"
	}
	return "invalid answer"
}

// truncate shortens s to at most n characters, never splitting a rune.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
