package services

import (
	"strings"
	"time"

	"quizevent/models"

	"gorm.io/gorm"
)

type EventService struct {
	db *gorm.DB
}

func NewEventService(db *gorm.DB) *EventService {
	return &EventService{db: db}
}

type CreateEventRequest struct {
	Title       string `json:"title" validate:"required,min=3,max=255"`
	Description string `json:"description" validate:"omitempty,max=5000"`
	Date        string `json:"date" validate:"required"`
	Location    string `json:"location" validate:"required,min=3,max=255"`
}

const eventDateLayout = "2006-01-02"

func (s *EventService) CreateEvent(req *CreateEventRequest) (*models.Event, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)
	req.Location = strings.TrimSpace(req.Location)
	if fieldErrors := checkStruct(req); fieldErrors != nil {
		return nil, fieldErrors
	}

	date, err := time.Parse(eventDateLayout, req.Date)
	if err != nil {
		return nil, FieldErrors{"date": "Please enter a valid date in YYYY-MM-DD format."}
	}

	event := models.Event{
		Title:       req.Title,
		Description: req.Description,
		Date:        date,
		Location:    req.Location,
	}
	if err := s.db.Create(&event).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

// Upcoming lists events on or after the given date, earliest first. Each call
// runs a fresh query.
func (s *EventService) Upcoming(asOf time.Time) ([]models.Event, error) {
	day := asOf.Truncate(24 * time.Hour)
	var events []models.Event
	err := s.db.
		Where("date >= ?", day).
		Order("date ASC").
		Find(&events).Error
	return events, err
}
