package services

import (
	"strings"
	"testing"
	"unicode/utf8"

	"quizevent/models"
)

func TestAnswerValidationErrorTruncatesOnRuneBoundary(t *testing.T) {
	question := models.Question{
		ID:   10,
		Text: strings.Repeat("ü", 80),
		Type: models.QuestionTypeText,
	}
	err := &AnswerValidationError{Violation: ViolationTextEmpty, Question: &question}

	message := err.Error()
	if !utf8.ValidString(message) {
		t.Errorf("error message contains invalid UTF-8: %q", message)
	}
	if !strings.Contains(message, strings.Repeat("ü", 50)+"...") {
		t.Errorf("expected question text shortened to 50 characters, got %q", message)
	}
}

func TestAnswerValidationErrorKeepsShortQuestionText(t *testing.T) {
	question := models.Question{ID: 10, Text: "Capital of France?", Type: models.QuestionTypeMCQ}
	err := &AnswerValidationError{Violation: ViolationUnknownAnswer, Question: &question}

	if message := err.Error(); !strings.Contains(message, "Capital of France?") {
		t.Errorf("short question text must not be truncated, got %q", message)
	}
}
