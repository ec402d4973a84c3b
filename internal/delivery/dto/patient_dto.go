package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type RegisterPatientRequest struct {
	Name      string  `json:"name" validate:"required,max=255"`
	Age       int     `json:"age" validate:"gte=0,lte=150"`
	Gender    string  `json:"gender" validate:"required,oneof=Male Female Other"`
	Contact   string  `json:"contact" validate:"max=50"`
	Weight    float64 `json:"weight" validate:"required,gt=0"`
	Allergies string  `json:"allergies"`
	History   string  `json:"history"`
	Severity  string  `json:"severity" validate:"required,oneof=Normal Serious Critical"`
}

// Response DTOs

type BedResponse struct {
	ID     uuid.UUID `json:"id"`
	Ward   string    `json:"ward"`
	Number string    `json:"number"`
}

type PatientResponse struct {
	ID        uuid.UUID    `json:"id"`
	Name      string       `json:"name"`
	Age       int          `json:"age"`
	Gender    string       `json:"gender"`
	Contact   string       `json:"contact,omitempty"`
	Weight    float64      `json:"weight"`
	Allergies string       `json:"allergies"`
	History   string       `json:"history,omitempty"`
	Severity  string       `json:"severity"`
	Bed       *BedResponse `json:"bed,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

type PatientListResponse struct {
	Patients []PatientResponse `json:"patients"`
	Total    int               `json:"total"`
}
