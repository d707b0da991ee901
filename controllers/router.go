package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/appLSI/decentralized-rental-app-sub000/middleware"
	"github.com/appLSI/decentralized-rental-app-sub000/services"
	"github.com/appLSI/decentralized-rental-app-sub000/stores"
	"github.com/appLSI/decentralized-rental-app-sub000/wizard"
)

// RouterConfig junta todo lo que necesita el router del BFF
type RouterConfig struct {
	Properties   services.PropertyService
	Catalog      services.CatalogService
	Users        services.UserService
	Bookings     services.BookingService     // nil deja afuera las rutas de reservas
	SavedSearch  services.SavedSearchService // nil si MySQL está deshabilitado
	Predictor    wizard.PricePredictor       // nil si no hay servicio de precios
	Sessions     *stores.SessionStore
	JWTSecret    string
	ImageBaseURL string
	WizardOpts   []wizard.Option
}

// NewRouter arma el engine de gin con todas las rutas
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.CORSMiddleware())

	// ========================================
	// CONTROLLERS
	// ========================================
	propertyController := NewPropertyController(cfg.Properties, cfg.Catalog, cfg.ImageBaseURL)
	authController := NewAuthController(cfg.Users, cfg.Sessions)
	hostController := NewHostController()
	wizardController := NewWizardController(cfg.Properties, cfg.Predictor, cfg.WizardOpts...)
	adminController := NewAdminController()
	profileController := NewProfileController()

	auth := middleware.AuthMiddleware(cfg.Sessions, cfg.JWTSecret)
	optional := middleware.OptionalSessionMiddleware(cfg.Sessions, cfg.JWTSecret)

	// ========================================
	// RUTAS PÚBLICAS
	// ========================================
	router.GET("/health", HealthCheck)

	api := router.Group("/api")
	{
		public := api.Group("")
		public.Use(optional)
		{
			public.GET("/properties", propertyController.ListProperties)
			public.GET("/properties/page/:page", propertyController.GoToPage)
			public.GET("/properties/nearby", propertyController.Nearby)
			public.GET("/properties/:id", propertyController.GetProperty)
		}
		api.GET("/characteristics", propertyController.Characteristics)
		api.GET("/status/:status", propertyController.StatusPolicy)

		api.POST("/auth/login", authController.Login)
		api.POST("/auth/logout", auth, authController.Logout)
		api.POST("/auth/register", authController.Register)
		api.POST("/auth/verify-otp", authController.VerifyOtp)
		api.POST("/auth/resend-otp", authController.ResendOtp)
		api.POST("/auth/forgot-password", authController.ForgotPassword)
		api.POST("/auth/reset-password", authController.ResetPassword)
	}

	// ========================================
	// RUTAS CON SESIÓN
	// ========================================
	protected := api.Group("")
	protected.Use(auth)
	{
		// Host
		protected.GET("/host/properties", hostController.ListProperties)
		protected.POST("/host/properties/:id/submit", hostController.Submit)
		protected.POST("/host/properties/:id/hide", hostController.Hide)
		protected.POST("/host/properties/:id/show", hostController.Show)
		protected.DELETE("/host/properties/:id", hostController.Delete)

		// Wizard de alta/edición
		w := protected.Group("/host/wizard")
		{
			w.POST("", wizardController.Start)
			w.GET("", wizardController.State)
			w.PATCH("", wizardController.Update)
			w.DELETE("", wizardController.Discard)
			w.POST("/next", wizardController.Next)
			w.POST("/back", wizardController.Back)
			w.POST("/goto/:step", wizardController.GoTo)
			w.POST("/submit", wizardController.Submit)
			w.POST("/images", wizardController.AddImages)
			w.DELETE("/images/:index", wizardController.RemoveImage)
			w.DELETE("/existing-images/:index", wizardController.RemoveExistingImage)
			w.POST("/price/override", wizardController.OverridePrice)
			w.POST("/price/reset", wizardController.ResetPrice)
			w.POST("/price/predict", wizardController.PredictPrice)
		}

		// Perfil
		protected.GET("/profile", profileController.GetProfile)
		protected.PUT("/profile", profileController.UpdateProfile)

		// Reservas
		if cfg.Bookings != nil {
			bookingController := NewBookingController(cfg.Bookings)
			api.GET("/properties/:id/quote", bookingController.Quote)
			protected.GET("/bookings", bookingController.List)
			protected.POST("/bookings", bookingController.Create)
			protected.GET("/bookings/:id", bookingController.Get)
			protected.PATCH("/bookings/:id/cancel", bookingController.Cancel)
		}

		// Búsquedas guardadas
		if cfg.SavedSearch != nil {
			savedSearchController := NewSavedSearchController(cfg.SavedSearch)
			protected.GET("/saved-searches", savedSearchController.List)
			protected.POST("/saved-searches", savedSearchController.Create)
			protected.DELETE("/saved-searches/:id", savedSearchController.Delete)
		}
	}

	// ========================================
	// RUTAS DE ADMIN
	// ========================================
	admin := api.Group("/admin")
	admin.Use(auth, middleware.AdminMiddleware())
	{
		admin.GET("/dashboard", adminController.Dashboard)
		admin.GET("/pending", adminController.Pending)
		admin.PATCH("/properties/:id/validate", adminController.Validate)
		admin.POST("/properties/:id/reject", adminController.Reject)
		admin.GET("/agents", adminController.ListAgents)
		admin.POST("/agents", adminController.CreateAgent)
		admin.DELETE("/agents/:id", adminController.DeleteAgent)
	}

	return router
}
