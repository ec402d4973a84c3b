package entity

import (
	"time"

	"github.com/google/uuid"
)

// Severity is the clinical urgency classification driving bed allocation.
type Severity string

const (
	SeverityNormal   Severity = "Normal"
	SeveritySerious  Severity = "Serious"
	SeverityCritical Severity = "Critical"
)

// Valid reports whether s is a known severity.
func (s Severity) Valid() bool {
	return s == SeverityNormal || s == SeveritySerious || s == SeverityCritical
}

// Ward maps a severity to the ward it admits into. Normal severity
// requires no bed, so the second return is false.
func (s Severity) Ward() (Ward, bool) {
	switch s {
	case SeveritySerious:
		return WardGeneral, true
	case SeverityCritical:
		return WardICU, true
	default:
		return "", false
	}
}

// Gender constants
const (
	GenderMale   = "Male"
	GenderFemale = "Female"
	GenderOther  = "Other"
)

// Patient represents an admitted or registered patient.
type Patient struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name      string     `gorm:"type:varchar(255);not null" json:"name"`
	Age       int        `gorm:"not null" json:"age"`
	Gender    string     `gorm:"type:varchar(10);not null" json:"gender"`
	Contact   string     `gorm:"type:varchar(50)" json:"contact"`
	Weight    float64    `gorm:"type:numeric(5,1);not null" json:"weight"`
	Allergies string     `gorm:"type:text;not null;default:'None'" json:"allergies"`
	History   string     `gorm:"type:text" json:"history"`
	Severity  Severity   `gorm:"type:varchar(20);not null;default:'Normal';index" json:"severity"`
	BedID     *uuid.UUID `gorm:"type:uuid" json:"bed_id,omitempty"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Bed *Bed `gorm:"foreignKey:BedID" json:"bed,omitempty"`
}

func (Patient) TableName() string {
	return "patients"
}

// HasBed checks if the patient currently holds a bed assignment.
func (p *Patient) HasBed() bool {
	return p.BedID != nil
}
