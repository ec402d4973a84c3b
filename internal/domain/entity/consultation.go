package entity

import (
	"time"

	"github.com/google/uuid"
)

// ConsultationState tracks a consultation request through the pipeline.
//
// Submitted -> Reported -> Approved | Rejected (via disposition)
// Submitted -> Failed (analyzer error; terminal, resubmission required)
type ConsultationState string

const (
	ConsultationStateSubmitted ConsultationState = "Submitted"
	ConsultationStateReported  ConsultationState = "Reported"
	ConsultationStateFailed    ConsultationState = "Failed"
)

// Disposition is the clinician's final decision on a diagnostic report.
type Disposition string

const (
	DispositionPending  Disposition = "Pending"
	DispositionApproved Disposition = "Approved"
	DispositionRejected Disposition = "Rejected"
)

// ConsultationRequest is one AI-assisted diagnostic consultation.
// Patient and doctor identifiers are recorded as declared by the caller
// and are not cross-checked against their stores. Report fields are
// immutable once the analyzer has returned; only the disposition may
// change afterwards, exactly once.
type ConsultationRequest struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID string    `gorm:"type:varchar(64);not null;index" json:"patient_id"`
	DoctorID  string    `gorm:"type:varchar(64);not null;index" json:"doctor_id"`

	ImageName     string `gorm:"type:varchar(255);not null" json:"image_name"`
	ImageSize     int64  `gorm:"not null" json:"image_size"`
	ImageChecksum string `gorm:"type:char(32);not null" json:"image_checksum"`

	State             ConsultationState `gorm:"type:varchar(20);not null;default:'Submitted';index" json:"state"`
	ConditionDetected string            `gorm:"type:varchar(255)" json:"condition_detected,omitempty"`
	Confidence        string            `gorm:"type:varchar(10)" json:"confidence,omitempty"`
	TreatmentPlan     string            `gorm:"type:text" json:"treatment_plan,omitempty"`
	FailureReason     string            `gorm:"type:text" json:"failure_reason,omitempty"`

	Disposition   Disposition `gorm:"type:varchar(20);not null;default:'Pending';index" json:"disposition"`
	DisposedBy    *uuid.UUID  `gorm:"type:uuid" json:"disposed_by,omitempty"`
	DisposedAt    *time.Time  `json:"disposed_at,omitempty"`
	CreatedAt     time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time   `gorm:"autoUpdateTime" json:"updated_at"`
}

func (ConsultationRequest) TableName() string {
	return "consultation_requests"
}

// IsReported checks if the analyzer produced a report.
func (c *ConsultationRequest) IsReported() bool {
	return c.State == ConsultationStateReported
}

// IsFailed checks if the analyzer attempt failed.
func (c *ConsultationRequest) IsFailed() bool {
	return c.State == ConsultationStateFailed
}

// CanDispose reports whether a clinician decision is legal right now.
// Only a Reported request with a Pending disposition can be disposed.
func (c *ConsultationRequest) CanDispose() bool {
	return c.State == ConsultationStateReported && c.Disposition == DispositionPending
}
