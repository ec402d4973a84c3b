package database

import (
	"fmt"

	"hospital-portal/config"
	"hospital-portal/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seed populates roles, default accounts and the bed inventory on an
// empty database. Every block is idempotent: it only inserts when its
// table is empty, so restarting a deployed instance changes nothing.
func Seed(db *gorm.DB, wardCfg config.WardConfig) error {
	if err := seedRoles(db); err != nil {
		return err
	}
	if err := seedUsers(db); err != nil {
		return err
	}
	if err := seedBeds(db, wardCfg); err != nil {
		return err
	}
	return nil
}

func seedRoles(db *gorm.DB) error {
	var count int64
	if err := db.Model(&entity.Role{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count roles: %w", err)
	}
	if count > 0 {
		return nil
	}

	roles := []entity.Role{
		{ID: entity.RoleIDAdmin, RoleName: entity.RoleAdmin, Description: "Full administrative access"},
		{ID: entity.RoleIDDoctor, RoleName: entity.RoleDoctor, Description: "Clinical staff"},
		{ID: entity.RoleIDPatient, RoleName: entity.RolePatient, Description: "Patient portal access"},
	}
	if err := db.Create(&roles).Error; err != nil {
		return fmt.Errorf("failed to seed roles: %w", err)
	}

	logrus.Info("Seeded roles")
	return nil
}

func seedUsers(db *gorm.DB) error {
	var count int64
	if err := db.Model(&entity.User{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	doctor := &entity.Doctor{
		ID:             uuid.New(),
		Name:           "Dr. Smith",
		Specialization: "General",
		Availability:   "Mon-Fri",
	}
	if err := db.Create(doctor).Error; err != nil {
		return fmt.Errorf("failed to seed doctor: %w", err)
	}

	patient := &entity.Patient{
		ID:        uuid.New(),
		Name:      "John Doe",
		Age:       30,
		Gender:    entity.GenderMale,
		Contact:   "555-0101",
		Weight:    75.0,
		Allergies: "None",
		Severity:  entity.SeverityNormal,
	}
	if err := db.Create(patient).Error; err != nil {
		return fmt.Errorf("failed to seed patient: %w", err)
	}

	accounts := []struct {
		username string
		password string
		roleID   int
		linkedID *uuid.UUID
	}{
		{"admin", "admin123", entity.RoleIDAdmin, nil},
		{"doctor", "doc123", entity.RoleIDDoctor, &doctor.ID},
		{"patient", "pat123", entity.RoleIDPatient, &patient.ID},
	}

	for _, account := range accounts {
		hashed, err := bcrypt.GenerateFromPassword([]byte(account.password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash password for %s: %w", account.username, err)
		}
		user := &entity.User{
			ID:       uuid.New(),
			RoleID:   account.roleID,
			Username: account.username,
			Password: string(hashed),
			LinkedID: account.linkedID,
		}
		if err := db.Create(user).Error; err != nil {
			return fmt.Errorf("failed to seed user %s: %w", account.username, err)
		}
	}

	logrus.Info("Seeded default users")
	return nil
}

func seedBeds(db *gorm.DB, wardCfg config.WardConfig) error {
	var count int64
	if err := db.Model(&entity.Bed{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count beds: %w", err)
	}
	if count > 0 {
		return nil
	}

	beds := make([]entity.Bed, 0, wardCfg.GeneralBeds+wardCfg.ICUBeds)
	number := 1
	for i := 0; i < wardCfg.GeneralBeds; i++ {
		beds = append(beds, entity.Bed{
			ID:     uuid.New(),
			Ward:   entity.WardGeneral,
			Number: fmt.Sprintf("B-%02d", number),
		})
		number++
	}
	for i := 0; i < wardCfg.ICUBeds; i++ {
		beds = append(beds, entity.Bed{
			ID:     uuid.New(),
			Ward:   entity.WardICU,
			Number: fmt.Sprintf("B-%02d", number),
		})
		number++
	}

	if err := db.Create(&beds).Error; err != nil {
		return fmt.Errorf("failed to seed beds: %w", err)
	}

	logrus.Infof("Seeded %d hospital beds", len(beds))
	return nil
}
