package main

import (
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestNormalizeAvailability(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"2025-10-01", "2025-10-01"},
		{"01/10/2025", "2025-10-01"},
		{"1 October 2025", "2025-10-01"},
		{"  2025-10-01  ", "2025-10-01"},
		{"immediately", "immediately"}, // free text passes through
		{"two weeks notice", "two weeks notice"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := normalizeAvailability(tc.in); got != tc.want {
			t.Errorf("normalizeAvailability(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNewApplicant(t *testing.T) {
	a := NewApplicant("  Siti Aminah  ", " siti@example.com ", "Supervisor", "asap", "cv.pdf", "uploads/cv/x.pdf")

	if a.FullName != "Siti Aminah" || a.Email != "siti@example.com" {
		t.Errorf("Fields should be trimmed: %+v", a)
	}
	if a.CreatedAt.Location() != time.UTC {
		t.Errorf("CreatedAt must be UTC, got %v", a.CreatedAt.Location())
	}
	if a.CreatedAt.IsZero() {
		t.Error("CreatedAt must be set at construction")
	}
	if a.FilePath != "uploads/cv/x.pdf" {
		t.Errorf("FilePath mangled: %q", a.FilePath)
	}
}

func TestNewProposal(t *testing.T) {
	p := NewProposal(" Menara Makmur ", "m@example.com", []string{"Rental", " ", "Inspection"}, " details ")

	if p.CompanyName != "Menara Makmur" {
		t.Errorf("CompanyName not trimmed: %q", p.CompanyName)
	}
	if p.Service != "Rental, Inspection" {
		t.Errorf("Blank selections should be dropped from the join, got %q", p.Service)
	}
	if p.ProposalDetails != "details" {
		t.Errorf("Details not trimmed: %q", p.ProposalDetails)
	}
	if p.CreatedAt.Location() != time.UTC {
		t.Errorf("CreatedAt must be UTC, got %v", p.CreatedAt.Location())
	}
}

func TestVerifySchema(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := verifySchema(db); err != nil {
		t.Fatalf("verifySchema failed on a fresh database: %v", err)
	}
	if !db.Migrator().HasTable("applicants") || !db.Migrator().HasTable("proposals") {
		t.Error("Expected applicants and proposals tables to exist after verifySchema")
	}

	// Running it again against an existing schema must be a no-op success.
	if err := verifySchema(db); err != nil {
		t.Errorf("verifySchema should be idempotent: %v", err)
	}
}
