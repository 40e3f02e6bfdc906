// admin.go
package main

import (
	"crypto/subtle"
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

const sessionAdminKey = "is_admin"

// adminRequired gates the review and export endpoints. Without the session
// flag the request is redirected to the login page and the guarded handler
// never runs.
func adminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		if admin, ok := session.Get(sessionAdminKey).(bool); !ok || !admin {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// checkAdminCredentials compares submitted credentials against the configured
// admin account. The bcrypt hash wins when both password forms are set.
func checkAdminCredentials(cfg *SecuritySettings, username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(cfg.AdminUsername)) == 1

	var passOK bool
	if cfg.AdminPasswordHash != "" {
		passOK = bcrypt.CompareHashAndPassword([]byte(cfg.AdminPasswordHash), []byte(password)) == nil
	} else {
		passOK = subtle.ConstantTimeCompare([]byte(password), []byte(cfg.AdminPassword)) == 1
	}
	return userOK && passOK
}

// handleLoginPage renders the admin login form.
func (app *App) handleLoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "admin_login.html", gin.H{})
}

// handleLoginSubmit checks credentials and sets the session flag. The cookie
// has MaxAge 0: it lives for the browser session only, no remember-me.
func (app *App) handleLoginSubmit(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	if !checkAdminCredentials(&app.Config.Security, username, password) {
		c.HTML(http.StatusUnauthorized, "admin_login.html", gin.H{
			"Error": "Invalid username or password.",
		})
		return
	}

	session := sessions.Default(c)
	session.Options(sessions.Options{
		MaxAge:   0,
		Path:     "/",
		HttpOnly: true,
	})
	session.Set(sessionAdminKey, true)
	if err := session.Save(); err != nil {
		renderServerError(c)
		return
	}

	c.Redirect(http.StatusFound, "/admin/applicants")
}

// handleLogout clears the session flag.
func (app *App) handleLogout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Save()
	c.Redirect(http.StatusFound, "/admin/login")
}

// handleApplicantsList shows all CV submissions, newest first.
func (app *App) handleApplicantsList(c *gin.Context) {
	applicants, err := app.ListApplicants()
	if err != nil {
		app.renderAdminError(c, err)
		return
	}
	c.HTML(http.StatusOK, "admin_applicants.html", gin.H{
		"Applicants": applicants,
		"Rows":       ApplicantRows(applicants),
	})
}

// handleProposalsList shows all proposals, newest first.
func (app *App) handleProposalsList(c *gin.Context) {
	proposals, err := app.ListProposals()
	if err != nil {
		app.renderAdminError(c, err)
		return
	}
	c.HTML(http.StatusOK, "admin_proposals.html", gin.H{
		"Proposals": proposals,
		"Rows":      ProposalRows(proposals),
	})
}

// handleApplicantsExport streams the applicants table in the requested
// format. The document is fully built before the first byte is written, so a
// query failure can never leave the admin with a truncated file.
func (app *App) handleApplicantsExport(c *gin.Context) {
	applicants, err := app.ListApplicants()
	if err != nil {
		app.renderAdminError(c, err)
		return
	}
	app.sendExport(c, "applicants", applicantColumns, ApplicantRows(applicants))
}

// handleProposalsExport streams the proposals table.
func (app *App) handleProposalsExport(c *gin.Context) {
	proposals, err := app.ListProposals()
	if err != nil {
		app.renderAdminError(c, err)
		return
	}
	app.sendExport(c, "proposals", proposalColumns, ProposalRows(proposals))
}

// sendExport renders rows in the requested format and sets the download
// headers. Unknown formats are a client error.
func (app *App) sendExport(c *gin.Context, name string, header []string, rows [][]string) {
	switch c.DefaultQuery("format", FormatCSV) {
	case FormatCSV:
		c.Header("Content-Disposition", `attachment; filename="`+exportFilename(name, "csv")+`"`)
		c.Data(http.StatusOK, "text/csv; charset=utf-8", ExportCSV(header, rows))
	case FormatSpreadsheet:
		c.Header("Content-Disposition", `attachment; filename="`+exportFilename(name, "xls")+`"`)
		c.Data(http.StatusOK, "application/vnd.ms-excel", ExportSpreadsheetHTML(name, header, rows))
	default:
		c.String(http.StatusBadRequest, "unknown export format")
	}
}

// renderAdminError shows failures on the admin surface with operator detail.
// This is the one place where more than the generic summary is appropriate:
// the viewer is an authenticated operator.
func (app *App) renderAdminError(c *gin.Context, err error) {
	var perr *PersistError
	if errors.As(err, &perr) {
		renderError(c, http.StatusInternalServerError, "Could not read submissions.", perr.OperatorDetail())
		return
	}
	renderServerError(c)
}
