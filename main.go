// main.go
package main

import (
	"log"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// App owns everything the handlers need: configuration, the database handle
// and the file store. Handlers are methods on App, so nothing lives in
// package-level mutable state. DB may be nil when no credentials were
// configured; every persistence path handles that explicitly.
type App struct {
	Config *Config
	DB     *gorm.DB
	Files  *FileStore
}

// NewApp wires an App from its parts.
func NewApp(cfg *Config, db *gorm.DB) *App {
	return &App{
		Config: cfg,
		DB:     db,
		Files:  NewFileStore(cfg.Uploads.Root, cfg.Uploads.CVDir),
	}
}

// newRouter builds the gin engine with middleware, sessions, templates and
// all routes registered.
func newRouter(app *App) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogMiddleware())
	router.Use(SecurityHeadersMiddleware())
	router.MaxMultipartMemory = app.Config.Uploads.MaxSize

	store := cookie.NewStore([]byte(app.Config.Security.SecretKey))
	store.Options(sessions.Options{
		MaxAge:   0, // session cookie: gone when the browser closes
		Path:     "/",
		HttpOnly: true,
	})
	router.Use(sessions.Sessions("klsb_session", store))

	router.LoadHTMLGlob("templates/*.html")
	router.Static("/static", "./static")

	registerRoutes(router, app)
	return router
}

// registerRoutes sets up the full HTTP surface.
func registerRoutes(r *gin.Engine, app *App) {
	// Content pages
	r.GET("/", contentPage("index.html", "Home"))
	r.GET("/about", contentPage("about.html", "About"))
	r.GET("/services", contentPage("services.html", "Services"))
	r.GET("/profile", contentPage("profile.html", "Profile"))
	r.GET("/projects", contentPage("projects.html", "Projects"))

	// Liveness check (no database dependency)
	r.GET("/healthz", app.handleHealthz)

	// Public forms, rate limited against scripted spam
	submitLimit := RateLimitMiddleware(20, time.Minute)
	r.GET("/careers", app.handleCareersPage)
	r.POST("/careers", submitLimit, app.handleCareersSubmit)
	r.GET("/proposal", app.handleProposalPage)
	r.POST("/proposal", submitLimit, app.handleProposalSubmit)

	// Admin login/logout
	r.GET("/admin/login", app.handleLoginPage)
	r.POST("/admin/login", app.handleLoginSubmit)
	r.POST("/admin/logout", app.handleLogout)

	// Guarded review and export endpoints
	admin := r.Group("/admin")
	admin.Use(adminRequired())
	{
		admin.GET("/applicants", app.handleApplicantsList)
		admin.GET("/proposals", app.handleProposalsList)
		admin.GET("/applicants/export", app.handleApplicantsExport)
		admin.GET("/proposals/export", app.handleProposalsExport)
	}
}

// openDatabase connects to MySQL and verifies the schema. Missing credentials
// are not fatal: the server starts without a database and persistence reports
// the problem at first use. A reachable database with a broken schema is
// fatal, with a diagnostic naming the problem.
func openDatabase(cfg *Config) *gorm.DB {
	if !cfg.HasDatabase() {
		log.Printf("no database credentials configured (DB_USER/DB_NAME); submissions will fail until they are set")
		return nil
	}

	db, err := gorm.Open(mysql.Open(cfg.DatabaseDSN()), &gorm.Config{})
	if err != nil {
		log.Printf("[%s] database connection failed, deferring to first use: %v", ErrCodePersistence, err)
		return nil
	}

	if err := verifySchema(db); err != nil {
		log.Fatalf("[%s] %v", ErrCodePersistence, err)
	}
	return db
}

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := LoadConfig()
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	app := NewApp(cfg, openDatabase(cfg))
	router := newRouter(app)

	log.Printf("%s listening on %s", cfg.Server.AppName, cfg.Server.Address)
	if err := router.Run(cfg.Server.Address); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
