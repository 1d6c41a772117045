package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"quizevent/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// WebHandler is the form-based presentation adapter. It calls the same core
// services as the JSON API but speaks the browser protocol: POSTed form
// fields in, redirects plus one-shot flash messages out.
type WebHandler struct {
	submissionService *services.SubmissionService
	flashService      *services.FlashService
}

func NewWebHandler(submissionService *services.SubmissionService, flashService *services.FlashService) *WebHandler {
	return &WebHandler{
		submissionService: submissionService,
		flashService:      flashService,
	}
}

const sessionCookie = "session_id"

// sessionID returns the browser's flash-scoping session id, minting one on
// first contact.
func (h *WebHandler) sessionID(c *gin.Context) string {
	if id, err := c.Cookie(sessionCookie); err == nil && id != "" {
		return id
	}
	id := uuid.NewString()
	c.SetCookie(sessionCookie, id, 0, "/", "", false, true)
	return id
}

func (h *WebHandler) flash(c *gin.Context, level, message string) {
	if err := h.flashService.Push(c.Request.Context(), h.sessionID(c), level, message); err != nil {
		log.Printf("Failed to store flash message: %v", err)
	}
}

// TakeQuiz guards the quiz form page: a user who already completed the quiz
// is bounced back to the list with a warning, mirroring the submit-side
// duplicate rule.
func (h *WebHandler) TakeQuiz(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	quizID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.Redirect(http.StatusFound, "/quizzes")
		return
	}

	submitted, err := h.submissionService.HasSubmitted(userID, uint(quizID))
	if err != nil {
		respondError(c, err)
		return
	}
	if submitted {
		h.flash(c, "warning", "You have already completed this quiz.")
		c.Redirect(http.StatusFound, "/quizzes")
		return
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("/quizzes/%d/form", quizID))
}

// SubmitQuiz reads question_<id> form fields, runs the shared submission
// workflow and translates every outcome to a redirect with a flash message.
func (h *WebHandler) SubmitQuiz(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	quizID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.flash(c, "error", "Quiz not found.")
		c.Redirect(http.StatusFound, "/quizzes")
		return
	}

	if err := c.Request.ParseForm(); err != nil {
		h.flash(c, "error", "Invalid form submission.")
		c.Redirect(http.StatusFound, fmt.Sprintf("/quizzes/%d", quizID))
		return
	}

	answers := make(map[string]string)
	for field, values := range c.Request.PostForm {
		questionID, found := strings.CutPrefix(field, "question_")
		if !found || len(values) == 0 {
			continue
		}
		answers[questionID] = values[0]
	}

	submission, err := h.submissionService.Submit(userID, uint(quizID), answers)
	if err != nil {
		h.redirectError(c, uint(quizID), err)
		return
	}

	h.flash(c, "success", fmt.Sprintf("Quiz submitted successfully. Your score: %d", submission.Score))
	c.Redirect(http.StatusFound, fmt.Sprintf("/submissions/%d", submission.ID))
}

func (h *WebHandler) redirectError(c *gin.Context, quizID uint, err error) {
	var answerErr *services.AnswerValidationError
	switch {
	case errors.Is(err, services.ErrDuplicateSubmission):
		h.flash(c, "warning", "You have already completed this quiz.")
		c.Redirect(http.StatusFound, "/quizzes")

	case errors.Is(err, services.ErrQuizNotFound), errors.Is(err, services.ErrEmptyQuiz):
		h.flash(c, "error", err.Error())
		c.Redirect(http.StatusFound, "/quizzes")

	case errors.As(err, &answerErr):
		h.flash(c, "error", answerErr.Error())
		c.Redirect(http.StatusFound, fmt.Sprintf("/quizzes/%d", quizID))

	default:
		log.Printf("Internal error on form submission: %v", err)
		h.flash(c, "error", "Something went wrong. Please try again.")
		c.Redirect(http.StatusFound, fmt.Sprintf("/quizzes/%d", quizID))
	}
}

// Flash drains the pending flash messages for the session so the page layer
// can render them.
func (h *WebHandler) Flash(c *gin.Context) {
	messages, err := h.flashService.Pop(c.Request.Context(), h.sessionID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "failed to read flash messages"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": messages})
}
