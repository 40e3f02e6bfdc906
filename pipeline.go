// pipeline.go
package main

import (
	"fmt"
	"log"

	"gorm.io/gorm"
)

// The submission pipeline runs validate → store file → persist → acknowledge
// and maps each failure to a typed error the handlers translate into a
// response. Both forms share the same persistence stage; only the CV form has
// a file stage.

// SubmitCV runs the full pipeline for a CV submission. It returns the
// persisted applicant on success, or *ValidationError, *StorageError or
// *PersistError depending on the stage that failed.
func (app *App) SubmitCV(form CVForm) (*Applicant, error) {
	if errs := ValidateCV(form); len(errs) > 0 {
		return nil, &ValidationError{Messages: errs}
	}

	src, err := form.File.Open()
	if err != nil {
		return nil, &StorageError{Err: fmt.Errorf("opening upload: %w", err)}
	}
	defer src.Close()

	storedPath, err := app.Files.Store(src, form.File.Filename)
	if err != nil {
		return nil, &StorageError{Err: err}
	}

	applicant := NewApplicant(
		form.FullName,
		form.Email,
		form.Position,
		form.Availability,
		SanitizeFilename(form.File.Filename),
		storedPath,
	)
	if err := app.persist(applicant); err != nil {
		return nil, err
	}
	return applicant, nil
}

// SubmitProposal runs the pipeline for a proposal submission. There is no
// file stage; validation goes straight to persistence.
func (app *App) SubmitProposal(form ProposalForm) (*Proposal, error) {
	if errs := ValidateProposal(form); len(errs) > 0 {
		return nil, &ValidationError{Messages: errs}
	}

	proposal := NewProposal(form.CompanyName, form.ClientEmail, form.Services, form.Details)
	if err := app.persist(proposal); err != nil {
		return nil, err
	}
	return proposal, nil
}

// persist writes one record in one transaction. A failure is never swallowed:
// it is logged with full detail and returned as a *PersistError, with a
// missing table called out explicitly because that failure mode used to
// surface as silent data loss.
func (app *App) persist(record interface{}) error {
	if app.DB == nil {
		err := &PersistError{Err: fmt.Errorf("no database configured: set DB_USER, DB_PASS and DB_NAME")}
		log.Printf("[%s] %v", ErrCodePersistence, err)
		return err
	}

	txErr := app.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(record).Error
	})
	if txErr == nil {
		return nil
	}

	perr := &PersistError{Err: txErr, SchemaMissing: !app.DB.Migrator().HasTable(record)}
	log.Printf("[%s] %v", ErrCodePersistence, perr)
	return perr
}
