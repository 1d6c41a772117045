package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"quizevent/handlers"
	"quizevent/models"
	"quizevent/routes"
	"quizevent/services"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testApp struct {
	router *gin.Engine
	db     *gorm.DB
	auth   *services.AuthService
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

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

	authService := services.NewAuthService(db, "test-secret")
	quizService := services.NewQuizService(db)
	submissionService := services.NewSubmissionService(db, nil)
	eventService := services.NewEventService(db)
	// flash store is only touched by the form adapter's endpoints
	flashService := services.NewFlashService(redis.NewClient(&redis.Options{Addr: "localhost:0"}))
	hub := services.NewHub()

	router := gin.New()
	routes.SetupRoutes(router,
		handlers.NewAuthHandler(authService),
		handlers.NewQuizHandler(quizService),
		handlers.NewSubmissionHandler(submissionService),
		handlers.NewEventHandler(eventService),
		handlers.NewWebHandler(submissionService, flashService),
		hub, quizService, authService)

	return &testApp{router: router, db: db, auth: authService}
}

func (a *testApp) seedQuizWithAnswer(t *testing.T) (quizID uint, questionID uint, answerID uint) {
	t.Helper()

	quiz := models.Quiz{Title: "Capitals"}
	if err := a.db.Create(&quiz).Error; err != nil {
		t.Fatalf("failed to seed quiz: %v", err)
	}
	question := models.Question{QuizID: quiz.ID, Text: "Capital of France?", Type: models.QuestionTypeMCQ}
	if err := a.db.Create(&question).Error; err != nil {
		t.Fatalf("failed to seed question: %v", err)
	}
	answer := models.Answer{QuestionID: question.ID, Text: "Paris", IsCorrect: true}
	if err := a.db.Create(&answer).Error; err != nil {
		t.Fatalf("failed to seed answer: %v", err)
	}
	return quiz.ID, question.ID, answer.ID
}

func (a *testApp) seedUserToken(t *testing.T, username string) string {
	t.Helper()

	user := models.User{Username: username, Email: username + "@example.com", PasswordHash: "x"}
	if err := a.db.Create(&user).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	token, err := a.auth.GenerateToken(user.ID)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	return token
}

func (a *testApp) postJSON(t *testing.T, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to marshal body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	recorder := httptest.NewRecorder()
	a.router.ServeHTTP(recorder, req)
	return recorder
}

func submitBody(quizID, questionID, answerID uint) map[string]interface{} {
	return map[string]interface{}{
		"quiz_id": quizID,
		"answers": map[string]string{
			strconv.FormatUint(uint64(questionID), 10): strconv.FormatUint(uint64(answerID), 10),
		},
	}
}

func TestSubmitQuizStatusMapping(t *testing.T) {
	app := newTestApp(t)
	quizID, questionID, answerID := app.seedQuizWithAnswer(t)
	token := app.seedUserToken(t, "alice")

	// unauthenticated
	resp := app.postJSON(t, "/api/submissions", "", submitBody(quizID, questionID, answerID))
	if resp.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without token, got %d", resp.Code)
	}

	// success
	resp = app.postJSON(t, "/api/submissions", token, submitBody(quizID, questionID, answerID))
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
	var created struct {
		Submission models.Submission `json:"submission"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &created); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if created.Submission.Score != 1 {
		t.Errorf("expected score 1, got %d", created.Submission.Score)
	}

	// duplicate submission is a conflict
	resp = app.postJSON(t, "/api/submissions", token, submitBody(quizID, questionID, answerID))
	if resp.Code != http.StatusConflict {
		t.Errorf("expected 409 for duplicate, got %d", resp.Code)
	}

	// unknown quiz
	resp = app.postJSON(t, "/api/submissions", token, submitBody(99999, questionID, answerID))
	if resp.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown quiz, got %d", resp.Code)
	}
}

func TestSubmitQuizValidationFailureIs400(t *testing.T) {
	app := newTestApp(t)
	quizID, questionID, _ := app.seedQuizWithAnswer(t)
	token := app.seedUserToken(t, "bob")

	body := map[string]interface{}{
		"quiz_id": quizID,
		"answers": map[string]string{
			strconv.FormatUint(uint64(questionID), 10): "abc",
		},
	}
	resp := app.postJSON(t, "/api/submissions", token, body)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", resp.Code, resp.Body.String())
	}

	var payload struct {
		Violation  string `json:"violation"`
		QuestionID uint   `json:"question_id"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if payload.Violation != "malformed_answer_id" {
		t.Errorf("expected malformed_answer_id violation, got %q", payload.Violation)
	}
	if payload.QuestionID != questionID {
		t.Errorf("expected question id %d, got %d", questionID, payload.QuestionID)
	}

	var count int64
	app.db.Model(&models.Submission{}).Count(&count)
	if count != 0 {
		t.Errorf("rejected submission must not persist, found %d rows", count)
	}
}

func TestCreateQuestionStatusMapping(t *testing.T) {
	app := newTestApp(t)
	token := app.seedUserToken(t, "carol")

	quiz := models.Quiz{Title: "Geography"}
	if err := app.db.Create(&quiz).Error; err != nil {
		t.Fatalf("failed to seed quiz: %v", err)
	}

	body := map[string]interface{}{"quiz_id": quiz.ID, "text": "Capital of France?", "question_type": "MCQ"}
	if resp := app.postJSON(t, "/api/questions", token, body); resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}

	// duplicate text on the same quiz conflicts
	if resp := app.postJSON(t, "/api/questions", token, body); resp.Code != http.StatusConflict {
		t.Errorf("expected 409 for duplicate question, got %d", resp.Code)
	}

	// field violations aggregate into an errors map
	bad := map[string]interface{}{"quiz_id": quiz.ID, "text": "abc", "question_type": "ESSAY"}
	resp := app.postJSON(t, "/api/questions", token, bad)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
	var payload struct {
		Errors map[string]string `json:"errors"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(payload.Errors) != 2 {
		t.Errorf("expected errors on text and question_type, got %v", payload.Errors)
	}
}
