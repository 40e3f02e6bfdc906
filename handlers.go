// handlers.go
package main

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// contentPage renders one of the static informational pages.
func contentPage(template, title string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.HTML(http.StatusOK, template, gin.H{"Title": title})
	}
}

// handleHealthz is the liveness check. It never touches the database: the
// process being up is the only thing it reports.
func (app *App) handleHealthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"app":    app.Config.Server.AppName,
	})
}

// handleCareersPage renders the empty CV form.
func (app *App) handleCareersPage(c *gin.Context) {
	c.HTML(http.StatusOK, "careers.html", gin.H{"Form": CVForm{}})
}

// handleCareersSubmit runs the CV submission pipeline and renders the
// outcome. Validation failures redisplay the form pre-filled; storage and
// persistence failures show an error page without internal detail.
func (app *App) handleCareersSubmit(c *gin.Context) {
	file, _ := c.FormFile("cv")
	form := CVForm{
		FullName:     c.PostForm("full_name"),
		Email:        c.PostForm("email"),
		Position:     c.PostForm("position"),
		Availability: c.PostForm("availability"),
		File:         file,
	}

	applicant, err := app.SubmitCV(form)
	if err != nil {
		app.renderSubmitFailure(c, err, "careers.html", gin.H{"Form": form})
		return
	}

	c.HTML(http.StatusOK, "submit_success.html", gin.H{
		"Name":    applicant.FullName,
		"Message": "Thank you for your application. We will be in touch.",
	})
}

// handleProposalPage renders the empty proposal form.
func (app *App) handleProposalPage(c *gin.Context) {
	c.HTML(http.StatusOK, "proposal.html", gin.H{"Form": ProposalForm{}})
}

// handleProposalSubmit runs the proposal pipeline.
func (app *App) handleProposalSubmit(c *gin.Context) {
	form := ProposalForm{
		CompanyName: c.PostForm("company_name"),
		ClientEmail: c.PostForm("client_email"),
		Services:    c.PostFormArray("service"),
		Details:     c.PostForm("proposal_details"),
	}

	proposal, err := app.SubmitProposal(form)
	if err != nil {
		app.renderSubmitFailure(c, err, "proposal.html", gin.H{"Form": form})
		return
	}

	c.HTML(http.StatusOK, "submit_success.html", gin.H{
		"Name":    proposal.CompanyName,
		"Message": "Thank you for your inquiry. We will prepare a proposal shortly.",
	})
}

// renderSubmitFailure maps a pipeline error to the right response: a 400
// redisplaying the form for validation errors, a 500 error page otherwise.
func (app *App) renderSubmitFailure(c *gin.Context, err error, formTemplate string, data gin.H) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		data["Errors"] = verr.Messages
		c.HTML(http.StatusBadRequest, formTemplate, data)
		return
	}

	var serr *StorageError
	if errors.As(err, &serr) {
		log.Printf("[%s] %v", ErrCodeStorage, serr)
		renderServerError(c)
		return
	}

	var perr *PersistError
	if errors.As(err, &perr) && perr.SchemaMissing {
		// Actionable and explicit, but still free of internals.
		renderError(c, http.StatusInternalServerError,
			"Your submission could not be saved because the submission store is not set up. Please contact us directly.", "")
		return
	}

	renderServerError(c)
}
