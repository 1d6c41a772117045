package services

import (
	"errors"

	"quizevent/models"

	"gorm.io/gorm"
)

// SubmissionNotifier receives a summary of every committed submission.
// Satisfied by the results hub; nil disables notifications.
type SubmissionNotifier interface {
	SubmissionRecorded(submission *models.Submission)
}

type SubmissionService struct {
	db       *gorm.DB
	notifier SubmissionNotifier
}

func NewSubmissionService(db *gorm.DB, notifier SubmissionNotifier) *SubmissionService {
	return &SubmissionService{db: db, notifier: notifier}
}

// Submit validates a raw answer set against the quiz and, if it passes,
// persists the scored submission with one answer record per question in a
// single transaction. Nothing is written before validation succeeds, so a
// rejected attempt leaves the store untouched. The unique index on
// (quiz_id, user_id) turns a concurrent duplicate into ErrDuplicateSubmission
// rather than a second row.
func (s *SubmissionService) Submit(userID uint, quizID uint, answers map[string]string) (*models.Submission, error) {
	var quiz models.Quiz
	err := s.db.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("questions.id")
		}).
		Preload("Questions.Answers", func(db *gorm.DB) *gorm.DB {
			return db.Order("answers.id")
		}).
		First(&quiz, quizID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuizNotFound
		}
		return nil, err
	}

	if len(quiz.Questions) == 0 {
		return nil, ErrEmptyQuiz
	}

	// Fast-path duplicate check; the unique index remains the authority.
	var count int64
	if err := s.db.Model(&models.Submission{}).
		Where("quiz_id = ? AND user_id = ?", quizID, userID).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDuplicateSubmission
	}

	validated, err := ValidateAnswers(&quiz, answers)
	if err != nil {
		return nil, err
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	submission := models.Submission{
		QuizID: quizID,
		UserID: userID,
		Score:  validated.Score(),
	}

	if err := tx.Create(&submission).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateSubmission
		}
		return nil, err
	}

	for _, outcome := range validated.Outcomes {
		record := models.AnswerRecord{
			SubmissionID: submission.ID,
			QuestionID:   outcome.Question.ID,
			TextValue:    outcome.Text,
			IsCorrect:    outcome.IsCorrect,
		}
		if outcome.Selected != nil {
			answerID := outcome.Selected.ID
			record.AnswerID = &answerID
		}

		if err := tx.Create(&record).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateSubmission
		}
		return nil, err
	}

	result, err := s.ByID(submission.ID)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.SubmissionRecorded(result)
	}

	return result, nil
}

// ByID returns a submission with its answer records ordered by question.
func (s *SubmissionService) ByID(submissionID uint) (*models.Submission, error) {
	var submission models.Submission
	err := s.db.
		Preload("Quiz").
		Preload("Answers", func(db *gorm.DB) *gorm.DB {
			return db.Order("answer_records.question_id")
		}).
		First(&submission, submissionID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubmissionNotFound
		}
		return nil, err
	}
	return &submission, nil
}

// ForUser lists a user's submissions, newest first.
func (s *SubmissionService) ForUser(userID uint) ([]models.Submission, error) {
	var submissions []models.Submission
	err := s.db.
		Where("user_id = ?", userID).
		Preload("Quiz").
		Preload("Answers", func(db *gorm.DB) *gorm.DB {
			return db.Order("answer_records.question_id")
		}).
		Order("created_at DESC").
		Find(&submissions).Error
	return submissions, err
}

// HasSubmitted reports whether the user already completed the quiz. Used by
// the form adapter to redirect before rendering the take-quiz page.
func (s *SubmissionService) HasSubmitted(userID uint, quizID uint) (bool, error) {
	var count int64
	err := s.db.Model(&models.Submission{}).
		Where("quiz_id = ? AND user_id = ?", quizID, userID).
		Count(&count).Error
	return count > 0, err
}
