package services

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"quizevent/models"
)

const maxTextAnswerLen = 1000

// AnswerOutcome is the validated result for a single question. Exactly one of
// the two variants is populated: Selected for MCQ questions, Text for TEXT
// questions (Selected stays nil and IsCorrect stays false).
type AnswerOutcome struct {
	Question  models.Question
	Selected  *models.Answer
	Text      string
	IsCorrect bool
}

// ValidatedAnswerSet is an ordered list of outcomes, one per quiz question in
// question-iteration order, ready for scoring and persistence.
type ValidatedAnswerSet struct {
	Outcomes []AnswerOutcome
}

// Score counts the questions whose selected answer is correct. TEXT questions
// never contribute.
func (v *ValidatedAnswerSet) Score() int {
	score := 0
	for _, o := range v.Outcomes {
		if o.IsCorrect {
			score++
		}
	}
	return score
}

// ValidateAnswers checks a raw answer map (question id as string -> raw value)
// against the quiz's questions. The quiz must have Questions and their Answers
// preloaded; the function is pure and performs no persistence calls. It fails
// fast: the first violated rule, in question order, is the one reported.
func ValidateAnswers(quiz *models.Quiz, raw map[string]string) (*ValidatedAnswerSet, error) {
	if len(raw) > len(quiz.Questions) {
		return nil, &AnswerValidationError{Violation: ViolationTooManyAnswers}
	}

	outcomes := make([]AnswerOutcome, 0, len(quiz.Questions))
	for i := range quiz.Questions {
		question := quiz.Questions[i]

		value, ok := raw[strconv.FormatUint(uint64(question.ID), 10)]
		if !ok {
			return nil, &AnswerValidationError{Violation: ViolationMissingAnswer, Question: &question}
		}

		value = strings.TrimSpace(value)

		switch question.Type {
		case models.QuestionTypeMCQ:
			if value == "" {
				return nil, &AnswerValidationError{Violation: ViolationEmptyAnswer, Question: &question}
			}

			answerID, err := strconv.Atoi(value)
			if err != nil || answerID <= 0 {
				return nil, &AnswerValidationError{Violation: ViolationMalformedAnswerID, Question: &question}
			}

			selected, owner := findAnswer(quiz, uint(answerID))
			if selected == nil {
				return nil, &AnswerValidationError{Violation: ViolationUnknownAnswer, Question: &question}
			}
			if owner != question.ID {
				return nil, &AnswerValidationError{Violation: ViolationAnswerMismatch, Question: &question}
			}

			outcomes = append(outcomes, AnswerOutcome{
				Question:  question,
				Selected:  selected,
				IsCorrect: selected.IsCorrect,
			})

		case models.QuestionTypeText:
			if value == "" {
				return nil, &AnswerValidationError{Violation: ViolationTextEmpty, Question: &question}
			}
			// bound counts characters, not bytes
			if utf8.RuneCountInString(value) > maxTextAnswerLen {
				return nil, &AnswerValidationError{Violation: ViolationTextTooLong, Question: &question}
			}

			outcomes = append(outcomes, AnswerOutcome{
				Question: question,
				Text:     value,
			})

		default:
			return nil, &AnswerValidationError{Violation: ViolationUnknownQuestionType, Question: &question}
		}
	}

	return &ValidatedAnswerSet{Outcomes: outcomes}, nil
}

// findAnswer resolves an answer id within the quiz's preloaded answers and
// reports which question owns it.
func findAnswer(quiz *models.Quiz, answerID uint) (*models.Answer, uint) {
	for i := range quiz.Questions {
		for j := range quiz.Questions[i].Answers {
			if quiz.Questions[i].Answers[j].ID == answerID {
				return &quiz.Questions[i].Answers[j], quiz.Questions[i].ID
			}
		}
	}
	return nil, 0
}
