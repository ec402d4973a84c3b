package entity

import (
	"time"

	"github.com/google/uuid"
)

// Ward is a category of hospital bed capacity with its own counters.
type Ward string

const (
	WardGeneral Ward = "General"
	WardICU     Ward = "ICU"
)

// Wards lists every ward in a fixed order.
var Wards = []Ward{WardGeneral, WardICU}

// Valid reports whether w is a known ward.
func (w Ward) Valid() bool {
	return w == WardGeneral || w == WardICU
}

// Bed represents a single hospital bed. Beds are owned by the ward ledger;
// a patient only holds a reference to one.
type Bed struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Ward       Ward       `gorm:"type:varchar(20);not null;index" json:"ward"`
	Number     string     `gorm:"type:varchar(10);uniqueIndex;not null" json:"number"`
	IsOccupied bool       `gorm:"not null;default:false;index" json:"is_occupied"`
	PatientID  *uuid.UUID `gorm:"type:uuid" json:"patient_id,omitempty"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Bed) TableName() string {
	return "beds"
}

// IsFree checks if the bed can be allocated.
func (b *Bed) IsFree() bool {
	return !b.IsOccupied
}
