package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/abdur-rahman-shawl/youngminds-sessions/internal/audit"
	"github.com/abdur-rahman-shawl/youngminds-sessions/internal/config"
	"github.com/abdur-rahman-shawl/youngminds-sessions/internal/handlers"
	infraMatching "github.com/abdur-rahman-shawl/youngminds-sessions/internal/infra/matching"
	infraRepo "github.com/abdur-rahman-shawl/youngminds-sessions/internal/infra/repository"
	"github.com/abdur-rahman-shawl/youngminds-sessions/internal/middleware"
	"github.com/abdur-rahman-shawl/youngminds-sessions/internal/notify"
	"github.com/abdur-rahman-shawl/youngminds-sessions/internal/policy"
	ucAvailability "github.com/abdur-rahman-shawl/youngminds-sessions/internal/usecase/availability"
	ucSession "github.com/abdur-rahman-shawl/youngminds-sessions/internal/usecase/session"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	logger *zap.Logger,
	rdb *redis.Client,
	sink notify.Sink,
) {

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(middleware.RequestID())
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	sessionRepo := infraRepo.NewSessionGormRepository(db)
	mentorFinder := infraMatching.NewMentorGormFinder(db)
	policyStore := policy.NewStore(db)

	auditRecorder := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditRecorder, logger)

	notifyDispatcher := notify.NewDispatcher(sink, logger)

	// ======================================================
	// USE CASES: SESSIONS
	// ======================================================
	bookSessionUC := ucSession.NewBookSession(
		sessionRepo,
		policyStore,
		auditDispatcher,
		notifyDispatcher,
	)

	cancelSessionUC := ucSession.NewCancelSession(
		sessionRepo,
		mentorFinder,
		policyStore,
		notifyDispatcher,
	)

	listSessionsUC := ucSession.NewListSessions(sessionRepo)

	proposeRescheduleUC := ucSession.NewProposeReschedule(
		sessionRepo,
		policyStore,
		notifyDispatcher,
	)

	respondRescheduleUC := ucSession.NewRespondReschedule(
		sessionRepo,
		policyStore,
		notifyDispatcher,
	)

	resolveSlotsUC := ucAvailability.NewResolveSlots(sessionRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	bookingHandler := handlers.NewBookingHandler(
		bookSessionUC,
		cancelSessionUC,
		listSessionsUC,
	)
	rescheduleHandler := handlers.NewRescheduleHandler(
		proposeRescheduleUC,
		respondRescheduleUC,
	)
	availabilityHandler := handlers.NewAvailabilityHandler(db, resolveSlotsUC)
	auditLogsHandler := handlers.NewAuditLogsHandler(sessionRepo)
	policyHandler := handlers.NewPolicyHandler(policyStore)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PUBLIC DISCOVERY
		// ------------------------------
		api.GET("/mentors/:id/availability", availabilityHandler.Get)
		api.GET("/mentors/:id/slots", availabilityHandler.Slots)

		// ------------------------------
		// PRIVATE
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.PUT("/mentors/:id/availability", availabilityHandler.Update)
			secured.GET("/mentors/:id/availability/exceptions", availabilityHandler.ListExceptions)
			secured.PUT("/mentors/:id/availability/exceptions", availabilityHandler.ReplaceExceptions)

			// ------------------------------
			// BOOKINGS
			// ------------------------------
			secured.POST("/bookings",
				middleware.BookingRateLimit(rdb, cfg.BookingRateLimit, time.Minute, logger),
				bookingHandler.Create,
			)
			secured.GET("/bookings", bookingHandler.List)
			secured.POST("/bookings/:id/cancel", bookingHandler.Cancel)

			secured.POST("/bookings/:id/reschedule", rescheduleHandler.Propose)
			secured.POST("/bookings/:id/reschedule/:requestId/respond", rescheduleHandler.Respond)

			secured.GET("/sessions/:id/audit", auditLogsHandler.List)

			// ------------------------------
			// ADMIN
			// ------------------------------
			admin := secured.Group("/admin")
			admin.Use(middleware.AdminOnly())
			{
				admin.GET("/policies", policyHandler.List)
				admin.PUT("/policies/:key", policyHandler.Update)
			}
		}
	}
}
