package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

// SubmitConsultationRequest carries the multipart fields of an
// ai-assist submission. The image arrives as the "file" part.
type SubmitConsultationRequest struct {
	PatientID string
	DoctorID  string
	ImageName string
	Image     []byte
}

type DisposeConsultationRequest struct {
	Decision string `json:"decision" validate:"required,oneof=Approve Reject"`
}

type SymptomCheckRequest struct {
	Symptoms string `json:"symptoms" validate:"required"`
}

// Response DTOs

type ConsultationResponse struct {
	ID                uuid.UUID  `json:"id"`
	PatientID         string     `json:"patient_id"`
	DoctorID          string     `json:"doctor_id"`
	ImageName         string     `json:"image_name"`
	State             string     `json:"state"`
	ConditionDetected string     `json:"condition_detected,omitempty"`
	Confidence        string     `json:"confidence,omitempty"`
	AITreatmentPlan   string     `json:"ai_treatment_plan,omitempty"`
	FailureReason     string     `json:"failure_reason,omitempty"`
	Disposition       string     `json:"disposition"`
	DisposedAt        *time.Time `json:"disposed_at,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
}

type ConsultationListResponse struct {
	Consultations []ConsultationResponse `json:"consultations"`
	Total         int                    `json:"total"`
}

type SymptomCheckResponse struct {
	Advice string `json:"advice"`
}
