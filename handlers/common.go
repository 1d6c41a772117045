package handlers

import (
	"errors"
	"log"
	"net/http"

	"quizevent/services"

	"github.com/gin-gonic/gin"
)

// currentUserID reads the identity resolved by the auth middleware.
func currentUserID(c *gin.Context) (uint, bool) {
	value, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return 0, false
	}
	return value.(uint), true
}

// respondError maps core errors onto the API's status codes: field and answer
// validation -> 400, missing references -> 404, invariant conflicts -> 409,
// anything else -> 500.
func respondError(c *gin.Context, err error) {
	var fieldErrors services.FieldErrors
	if errors.As(err, &fieldErrors) {
		c.JSON(http.StatusBadRequest, gin.H{"errors": fieldErrors})
		return
	}

	var answerErr *services.AnswerValidationError
	if errors.As(err, &answerErr) {
		body := gin.H{
			"detail":    answerErr.Error(),
			"violation": answerErr.Violation,
		}
		if answerErr.Question != nil {
			body["question_id"] = answerErr.Question.ID
		}
		c.JSON(http.StatusBadRequest, body)
		return
	}

	switch {
	case errors.Is(err, services.ErrQuizNotFound),
		errors.Is(err, services.ErrQuestionNotFound),
		errors.Is(err, services.ErrSubmissionNotFound),
		errors.Is(err, services.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"detail": err.Error()})

	case errors.Is(err, services.ErrDuplicateSubmission),
		errors.Is(err, services.ErrDuplicateQuestion),
		errors.Is(err, services.ErrMultipleCorrectAnswers),
		errors.Is(err, services.ErrUsernameTaken),
		errors.Is(err, services.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"detail": err.Error()})

	case errors.Is(err, services.ErrEmptyQuiz):
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})

	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"detail": err.Error()})

	default:
		log.Printf("Internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "internal server error"})
	}
}
