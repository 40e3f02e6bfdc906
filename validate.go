// validate.go
package main

import (
	"mime/multipart"
	"path/filepath"
	"strings"
)

// allowedCVExtensions is the accepted document set for CV uploads.
var allowedCVExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
}

// CVForm holds the raw CV submission fields exactly as posted, so the form
// can be redisplayed pre-filled when validation fails.
type CVForm struct {
	FullName     string
	Email        string
	Position     string
	Availability string
	File         *multipart.FileHeader
}

// ProposalForm holds the raw proposal submission fields.
type ProposalForm struct {
	CompanyName string
	ClientEmail string
	Services    []string
	Details     string
}

// ValidateCV checks a CV submission and returns the error messages in form
// field order. An empty slice means the submission is valid. The function is
// pure: no side effects, same input always gives the same output.
func ValidateCV(form CVForm) []string {
	var errs []string
	if strings.TrimSpace(form.FullName) == "" {
		errs = append(errs, "Full name is required.")
	}
	if strings.TrimSpace(form.Email) == "" {
		errs = append(errs, "Email is required.")
	}
	if strings.TrimSpace(form.Position) == "" {
		errs = append(errs, "Position is required.")
	}
	if strings.TrimSpace(form.Availability) == "" {
		errs = append(errs, "Availability is required.")
	}
	if msg := validateAttachment(form.File); msg != "" {
		errs = append(errs, msg)
	}
	return errs
}

// ValidateProposal checks a proposal submission in form field order.
func ValidateProposal(form ProposalForm) []string {
	var errs []string
	if strings.TrimSpace(form.CompanyName) == "" {
		errs = append(errs, "Company name is required.")
	}
	if strings.TrimSpace(form.ClientEmail) == "" {
		errs = append(errs, "Email is required.")
	}
	if !hasServiceSelection(form.Services) {
		errs = append(errs, "Please select at least one service.")
	}
	if strings.TrimSpace(form.Details) == "" {
		errs = append(errs, "Proposal details are required.")
	}
	return errs
}

// validateAttachment returns an error message for a missing or unacceptable
// CV file, or "" when the attachment is fine.
func validateAttachment(file *multipart.FileHeader) string {
	if file == nil || strings.TrimSpace(file.Filename) == "" {
		return "Please attach your CV."
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedCVExtensions[ext] {
		return "Only PDF, DOC or DOCX files are accepted."
	}
	return ""
}

// hasServiceSelection reports whether at least one non-blank service was
// picked from the multi-select.
func hasServiceSelection(services []string) bool {
	for _, s := range services {
		if strings.TrimSpace(s) != "" {
			return true
		}
	}
	return false
}
