package services

import (
	"fmt"
	"testing"

	"quizevent/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a private in-memory database migrated with the full schema.
// TranslateError is on, matching production, so unique-index violations
// surface as gorm.ErrDuplicatedKey.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// _foreign_keys=on so DB-level ON DELETE CASCADE behaves like postgres
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Quiz{},
		&models.Question{},
		&models.Answer{},
		&models.Submission{},
		&models.AnswerRecord{},
		&models.Event{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// seedCapitalsQuiz creates the canonical one-question MCQ quiz with a correct
// and an incorrect option and returns the quiz plus both answers.
func seedCapitalsQuiz(t *testing.T, db *gorm.DB) (*models.Quiz, *models.Answer, *models.Answer) {
	t.Helper()

	quiz := models.Quiz{Title: "Capitals"}
	if err := db.Create(&quiz).Error; err != nil {
		t.Fatalf("failed to create quiz: %v", err)
	}

	question := models.Question{QuizID: quiz.ID, Text: "Capital of France?", Type: models.QuestionTypeMCQ}
	if err := db.Create(&question).Error; err != nil {
		t.Fatalf("failed to create question: %v", err)
	}

	paris := models.Answer{QuestionID: question.ID, Text: "Paris", IsCorrect: true}
	lyon := models.Answer{QuestionID: question.ID, Text: "Lyon", IsCorrect: false}
	if err := db.Create(&paris).Error; err != nil {
		t.Fatalf("failed to create answer: %v", err)
	}
	if err := db.Create(&lyon).Error; err != nil {
		t.Fatalf("failed to create answer: %v", err)
	}

	return &quiz, &paris, &lyon
}

func seedUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	user := models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return &user
}
