package services

import (
	"errors"
	"strings"

	"quizevent/models"

	"gorm.io/gorm"
)

type QuizService struct {
	db *gorm.DB
}

func NewQuizService(db *gorm.DB) *QuizService {
	return &QuizService{db: db}
}

type CreateQuizRequest struct {
	Title       string `json:"title" validate:"required,min=3,max=255"`
	Description string `json:"description" validate:"omitempty,max=5000"`
}

type CreateQuestionRequest struct {
	QuizID uint   `json:"quiz_id" validate:"required"`
	Text   string `json:"text" validate:"required,min=5,max=2000"`
	Type   string `json:"question_type" validate:"required,oneof=MCQ TEXT"`
}

type CreateAnswerRequest struct {
	QuestionID uint   `json:"question_id" validate:"required"`
	Text       string `json:"text" validate:"required,min=1,max=255"`
	IsCorrect  *bool  `json:"is_correct" validate:"required"`
}

// CreateQuiz persists a new quiz after field validation. Field rule
// violations come back as FieldErrors.
func (s *QuizService) CreateQuiz(req *CreateQuizRequest) (*models.Quiz, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)
	if fieldErrors := checkStruct(req); fieldErrors != nil {
		return nil, fieldErrors
	}

	quiz := models.Quiz{
		Title:       req.Title,
		Description: req.Description,
	}
	if err := s.db.Create(&quiz).Error; err != nil {
		return nil, err
	}
	return &quiz, nil
}

// CreateQuestion adds a question to an existing quiz. Question text must be
// unique within the quiz, compared case-insensitively. The DB unique index on
// (quiz_id, text) is case-sensitive, so the case-insensitive part is an
// application-level check and can race with a concurrent create.
func (s *QuizService) CreateQuestion(req *CreateQuestionRequest) (*models.Question, error) {
	req.Text = strings.TrimSpace(req.Text)
	if fieldErrors := checkStruct(req); fieldErrors != nil {
		return nil, fieldErrors
	}

	var quiz models.Quiz
	if err := s.db.First(&quiz, req.QuizID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuizNotFound
		}
		return nil, err
	}

	var count int64
	if err := s.db.Model(&models.Question{}).
		Where("quiz_id = ? AND LOWER(text) = LOWER(?)", req.QuizID, req.Text).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDuplicateQuestion
	}

	question := models.Question{
		QuizID: req.QuizID,
		Text:   req.Text,
		Type:   models.QuestionType(req.Type),
	}
	if err := s.db.Create(&question).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateQuestion
		}
		return nil, err
	}
	return &question, nil
}

// CreateAnswer adds an answer option to an existing question. For MCQ
// questions at most one answer may be correct; the check is best-effort and
// does not hold against a concurrent create of a second correct answer.
func (s *QuizService) CreateAnswer(req *CreateAnswerRequest) (*models.Answer, error) {
	req.Text = strings.TrimSpace(req.Text)
	if fieldErrors := checkStruct(req); fieldErrors != nil {
		return nil, fieldErrors
	}

	var question models.Question
	if err := s.db.First(&question, req.QuestionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, err
	}

	if question.Type == models.QuestionTypeMCQ && *req.IsCorrect {
		var count int64
		if err := s.db.Model(&models.Answer{}).
			Where("question_id = ? AND is_correct = ?", req.QuestionID, true).
			Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrMultipleCorrectAnswers
		}
	}

	answer := models.Answer{
		QuestionID: req.QuestionID,
		Text:       req.Text,
		IsCorrect:  *req.IsCorrect,
	}
	if err := s.db.Create(&answer).Error; err != nil {
		return nil, err
	}
	return &answer, nil
}

// QuizSummary is a quiz row with its question count, for listings.
type QuizSummary struct {
	models.Quiz
	NumQuestions int64 `json:"num_questions"`
}

func (s *QuizService) ListQuizzes() ([]QuizSummary, error) {
	var quizzes []models.Quiz
	if err := s.db.Order("created_at DESC").Find(&quizzes).Error; err != nil {
		return nil, err
	}

	summaries := make([]QuizSummary, 0, len(quizzes))
	for _, quiz := range quizzes {
		var count int64
		if err := s.db.Model(&models.Question{}).
			Where("quiz_id = ?", quiz.ID).
			Count(&count).Error; err != nil {
			return nil, err
		}
		summaries = append(summaries, QuizSummary{Quiz: quiz, NumQuestions: count})
	}
	return summaries, nil
}

// GetQuizByID loads a quiz with questions and their answers, both in id order.
func (s *QuizService) GetQuizByID(quizID uint) (*models.Quiz, error) {
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
	return &quiz, nil
}

// DeleteQuiz removes a quiz; questions, answers and submissions cascade.
func (s *QuizService) DeleteQuiz(quizID uint) error {
	result := s.db.Delete(&models.Quiz{}, quizID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrQuizNotFound
	}
	return nil
}
