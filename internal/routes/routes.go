package routes

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/BruksfildServices01/smart-hire/internal/audit"
	"github.com/BruksfildServices01/smart-hire/internal/auth"
	"github.com/BruksfildServices01/smart-hire/internal/config"
	"github.com/BruksfildServices01/smart-hire/internal/domain/availability"
	"github.com/BruksfildServices01/smart-hire/internal/domain/booking"
	"github.com/BruksfildServices01/smart-hire/internal/domain/catalog"
	"github.com/BruksfildServices01/smart-hire/internal/domain/user"
	"github.com/BruksfildServices01/smart-hire/internal/handlers"
	"github.com/BruksfildServices01/smart-hire/internal/middleware"
	"github.com/BruksfildServices01/smart-hire/internal/usecase/account"
	ucAvailability "github.com/BruksfildServices01/smart-hire/internal/usecase/availability"
	ucBooking "github.com/BruksfildServices01/smart-hire/internal/usecase/booking"
)

// Stores is one storage backend seen through the domain repositories.
type Stores struct {
	Availability availability.Repository
	Bookings     booking.Repository
	Users        user.Repository
	Catalog      catalog.Repository
	Audit        audit.Store
}

// StoreSet is a backend that serves every repository from one value.
type StoreSet interface {
	availability.Repository
	booking.Repository
	user.Repository
	catalog.Repository
	audit.Store
}

func StoresFrom(s StoreSet) Stores {
	return Stores{
		Availability: s,
		Bookings:     s,
		Users:        s,
		Catalog:      s,
		Audit:        s,
	}
}

type Deps struct {
	Config       *config.Config
	Log          *slog.Logger
	Stores       Stores
	Locker       booking.Locker
	Audit        *audit.Dispatcher
	Issuer       *auth.Issuer
	EmailChecker account.EmailChecker
	Health       map[string]handlers.Check
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(
		middleware.RequestLogger(d.Log),
		middleware.Metrics(),
		middleware.CORSMiddleware(d.Config.CORSAllowedOrigins),
	)

	limiter := middleware.NewRateLimiter(d.Config.RateLimitRPS, d.Config.RateLimitBurst)
	authRequired := middleware.AuthMiddleware(d.Issuer)

	// ======================================================
	// USE CASES: AVAILABILITY
	// ======================================================
	finder := ucAvailability.NewOpenSlotFinder(d.Stores.Availability, d.Stores.Bookings)

	getAvailabilityUC := ucAvailability.NewGetAvailability(d.Stores.Availability)
	saveAvailabilityUC := ucAvailability.NewSaveAvailability(d.Stores.Availability, d.Audit, d.Log)
	listOpenSlotsUC := ucAvailability.NewListOpenSlots(d.Stores.Users, finder)

	// ======================================================
	// USE CASES: BOOKINGS
	// ======================================================
	createBookingUC := ucBooking.NewCreateBooking(
		d.Stores.Bookings,
		d.Stores.Users,
		d.Stores.Catalog,
		d.Locker,
		finder,
		d.Audit,
		d.Log,
	)
	updateStatusUC := ucBooking.NewUpdateBookingStatus(d.Stores.Bookings, d.Audit, d.Log)
	listBookingsUC := ucBooking.NewListBookingsForUser(d.Stores.Bookings)
	activeBookingsUC := ucBooking.NewListActiveBookings(d.Stores.Bookings)

	// ======================================================
	// USE CASES: ACCOUNTS
	// ======================================================
	registerUC := account.NewRegister(d.Stores.Users, d.Issuer, d.EmailChecker)
	loginUC := account.NewLogin(d.Stores.Users, d.Issuer)
	updateProfileUC := account.NewUpdateProfile(d.Stores.Users)

	// ======================================================
	// HANDLERS
	// ======================================================
	healthHandler := handlers.NewHealthHandler(d.Health)
	authHandler := handlers.NewAuthHandler(registerUC, loginUC, d.Log)
	meHandler := handlers.NewMeHandler(d.Stores.Users, updateProfileUC, d.Log)
	serviceHandler := handlers.NewServiceHandler(d.Stores.Catalog, d.Log)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.Stores.Audit, d.Log)

	availabilityHandler := handlers.NewAvailabilityHandler(
		getAvailabilityUC,
		saveAvailabilityUC,
		listOpenSlotsUC,
		d.Log,
	)

	bookingHandler := handlers.NewBookingHandler(
		createBookingUC,
		updateStatusUC,
		listBookingsUC,
		activeBookingsUC,
		d.Log,
	)

	// ======================================================
	// OPERATIONS
	// ======================================================
	r.GET("/health", healthHandler.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		authAPI := api.Group("/auth", limiter.Middleware())
		{
			authAPI.POST("/register", authHandler.Register)
			authAPI.POST("/login", authHandler.Login)
		}

		api.GET("/me", authRequired, meHandler.GetMe)
		api.PATCH("/me", authRequired, meHandler.UpdateMe)
		api.GET("/me/audit-logs",
			authRequired,
			middleware.RequireRole(user.RoleProvider),
			auditLogsHandler.List,
		)

		// ------------------------------
		// AVAILABILITY
		// ------------------------------
		api.GET("/availability/:id", availabilityHandler.Get)
		api.POST("/availability/:id", authRequired, availabilityHandler.Save)
		api.GET("/providers/:id/slots", availabilityHandler.OpenSlots)

		// ------------------------------
		// BOOKINGS
		// ------------------------------
		bookings := api.Group("/bookings")
		{
			bookings.GET("/check-availability", bookingHandler.CheckAvailability)
			bookings.POST("", limiter.Middleware(), authRequired, bookingHandler.Create)
			bookings.PATCH("/:id", authRequired, bookingHandler.UpdateStatus)
			bookings.GET("/provider/:id", authRequired, bookingHandler.ListForProvider)
			bookings.GET("/seeker/:id", authRequired, bookingHandler.ListForSeeker)
		}

		// ------------------------------
		// SERVICES
		// ------------------------------
		services := api.Group("/services")
		{
			services.GET("", serviceHandler.List)
			services.GET("/:id", serviceHandler.Get)
			services.POST("",
				authRequired,
				middleware.RequireRole(user.RoleProvider),
				serviceHandler.Create,
			)
			services.PATCH("/:id",
				authRequired,
				middleware.RequireRole(user.RoleProvider),
				serviceHandler.Update,
			)
		}
	}
}
