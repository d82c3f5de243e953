package router

import (
	"github.com/gin-gonic/gin"

	"pukaist/internal/handler"
	"pukaist/internal/middleware"
	"pukaist/internal/service"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	authSvc service.AuthService,
	authEnabled bool,
	allowedOrigins []string,
	prefH *handler.PreferenceHandler,
	wizardH *handler.WizardHandler,
	progressH *handler.ProgressHandler,
	undoH *handler.UndoHandler,
	collectionH *handler.CollectionHandler,
	uploadH *handler.UploadHandler,
	jobH *handler.JobHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	// All application routes carry user/tenant context; with auth disabled the
	// middleware injects the local identity instead of checking a token.
	protected := r.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc, authEnabled))

	// Preferences
	prefs := protected.Group("/preferences")
	prefs.GET("/density", prefH.GetDensity)
	prefs.PUT("/density", prefH.SetDensity)
	prefs.POST("/density/toggle", prefH.ToggleDensity)
	prefs.GET("/pipeline", prefH.GetPipelineConfig)
	prefs.PATCH("/pipeline", prefH.UpdatePipelineConfig)
	prefs.POST("/pipeline/reset", prefH.ResetPipelineConfig)
	prefs.GET("/pipeline/intent", prefH.GetPipelineIntent)
	prefs.GET("/spotlights", prefH.GetSpotlights)
	prefs.POST("/spotlights/reset", prefH.ResetSpotlights)
	prefs.POST("/spotlights/:feature", prefH.MarkSpotlightSeen)

	// Case-creation wizard
	wizard := protected.Group("/wizard")
	wizard.GET("/fields", wizardH.Get)
	wizard.PATCH("/fields", wizardH.Update)
	wizard.POST("/save", wizardH.Save)
	wizard.POST("/reset", wizardH.Reset)

	// Curriculum progress
	progress := protected.Group("/progress")
	progress.GET("", progressH.Get)
	progress.POST("/visit", progressH.RecordVisit)
	progress.POST("/lessons/viewed", progressH.MarkLessonViewed)
	progress.POST("/units/completed", progressH.MarkUnitCompleted)
	progress.GET("/pathways/:pathway/percent", progressH.PathwayPercent)
	progress.GET("/pathways/:pathway/modules/:module/percent", progressH.ModulePercent)
	progress.POST("/reset", progressH.Reset)

	// Undo coordinator
	undo := protected.Group("/undo")
	undo.GET("/current", undoH.Current)
	undo.POST("/:id/undo", undoH.Undo)
	undo.POST("/:id/dismiss", undoH.Dismiss)

	// Collections
	collections := protected.Group("/collections")
	collections.POST("", collectionH.Create)
	collections.GET("", collectionH.List)
	collections.GET("/:name", collectionH.GetByName)
	collections.GET("/:name/summary", collectionH.Summary)
	collections.DELETE("/:name", collectionH.Delete)
	collections.POST("/:name/docs", collectionH.AddDoc)
	collections.DELETE("/:name/docs/:docId", collectionH.RemoveDoc)
	collections.POST("/:name/export", collectionH.Export)

	// Uploads
	upload := protected.Group("/upload")
	upload.POST("/signed-url", uploadH.SignedURL)
	upload.POST("/complete", uploadH.Complete)

	// Processing jobs
	jobs := protected.Group("/jobs")
	jobs.GET("", jobH.List)
	jobs.GET("/:id", jobH.GetByID)
	jobs.POST("/:id/requeue", jobH.Requeue)

	return r
}
