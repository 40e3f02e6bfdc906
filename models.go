//models.go
package main

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

// availabilityLayouts are the date shapes the CV form has historically sent.
// A value matching one of these is normalized to 2006-01-02; anything else is
// stored as the raw text the applicant typed.
var availabilityLayouts = []string{"2006-01-02", "02/01/2006", "2 January 2006"}

// Applicant is one CV submission. FilePath is set only when the uploaded file
// was actually written to disk; a row must never reference a missing file.
type Applicant struct {
	ID           uint      `gorm:"primaryKey"`
	FullName     string    `gorm:"size:255;not null"`
	Email        string    `gorm:"size:200;not null"`
	Position     string    `gorm:"size:255;not null"`
	Availability string    `gorm:"size:255;not null"`
	Filename     string    `gorm:"size:255"` // original name, sanitized
	FilePath     string    `gorm:"size:512"` // relative to the application root
	CreatedAt    time.Time `gorm:"not null"` // UTC, set at insert
}

// TableName keeps the table name the site has always used.
func (Applicant) TableName() string { return "applicants" }

// Proposal is one client inquiry from the proposal form.
type Proposal struct {
	ID              uint      `gorm:"primaryKey"`
	CompanyName     string    `gorm:"size:255;not null"`
	ClientEmail     string    `gorm:"size:200;not null"`
	Service         string    `gorm:"size:255;not null"` // joined multi-select
	ProposalDetails string    `gorm:"type:text"`
	CreatedAt       time.Time `gorm:"not null"`
}

func (Proposal) TableName() string { return "proposals" }

// NewApplicant builds an Applicant from the full field set. Timestamps are
// stored in UTC; exports shift them to local time for display.
func NewApplicant(fullName, email, position, availability, filename, filePath string) *Applicant {
	return &Applicant{
		FullName:     strings.TrimSpace(fullName),
		Email:        strings.TrimSpace(email),
		Position:     strings.TrimSpace(position),
		Availability: normalizeAvailability(availability),
		Filename:     filename,
		FilePath:     filePath,
		CreatedAt:    time.Now().UTC(),
	}
}

// NewProposal builds a Proposal. Service is the form's multi-select joined
// with ", " so the column stays readable in exports.
func NewProposal(companyName, clientEmail string, services []string, details string) *Proposal {
	trimmed := make([]string, 0, len(services))
	for _, s := range services {
		if s = strings.TrimSpace(s); s != "" {
			trimmed = append(trimmed, s)
		}
	}
	return &Proposal{
		CompanyName:     strings.TrimSpace(companyName),
		ClientEmail:     strings.TrimSpace(clientEmail),
		Service:         strings.Join(trimmed, ", "),
		ProposalDetails: strings.TrimSpace(details),
		CreatedAt:       time.Now().UTC(),
	}
}

// normalizeAvailability tries the known date layouts and falls back to the
// raw trimmed text when none of them match.
func normalizeAvailability(value string) string {
	value = strings.TrimSpace(value)
	for _, layout := range availabilityLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return value
}

// verifySchema migrates both tables and then asserts they exist. A schema
// that cannot be established is a startup failure with a clear diagnostic,
// not a confusing error on the first submission.
func verifySchema(db *gorm.DB) error {
	if err := db.AutoMigrate(&Applicant{}, &Proposal{}); err != nil {
		return fmt.Errorf("schema migration failed: %v", err)
	}
	for _, model := range []interface{}{&Applicant{}, &Proposal{}} {
		if !db.Migrator().HasTable(model) {
			stmt := &gorm.Statement{DB: db}
			stmt.Parse(model)
			return fmt.Errorf("required table %q is missing after migration", stmt.Schema.Table)
		}
	}
	return nil
}
