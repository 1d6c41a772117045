package handlers

import (
	"net/http"
	"strconv"

	"quizevent/services"

	"github.com/gin-gonic/gin"
)

type SubmissionHandler struct {
	submissionService *services.SubmissionService
}

func NewSubmissionHandler(submissionService *services.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{submissionService: submissionService}
}

type submitQuizRequest struct {
	QuizID  uint              `json:"quiz_id" binding:"required"`
	Answers map[string]string `json:"answers" binding:"required"`
}

// SubmitQuiz is the JSON entry point of the submission workflow. The form
// adapter calls the same service with the same rules.
func (h *SubmissionHandler) SubmitQuiz(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req submitQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if len(req.Answers) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Answers are required."})
		return
	}

	submission, err := h.submissionService.Submit(userID, req.QuizID, req.Answers)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Quiz submitted successfully",
		"submission": submission,
	})
}

func (h *SubmissionHandler) ListMySubmissions(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	submissions, err := h.submissionService.ForUser(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, submissions)
}

func (h *SubmissionHandler) GetSubmission(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	submissionID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid submission ID"})
		return
	}

	submission, err := h.submissionService.ByID(uint(submissionID))
	if err != nil {
		respondError(c, err)
		return
	}

	if submission.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{"detail": services.ErrSubmissionNotFound.Error()})
		return
	}

	c.JSON(http.StatusOK, submission)
}
