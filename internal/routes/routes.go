package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/attachments"
	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	"github.com/BruksfildServices01/salon-scheduler/internal/daycache"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/handlers"
	"github.com/BruksfildServices01/salon-scheduler/internal/metrics"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/notify"
	ucAppointment "github.com/BruksfildServices01/salon-scheduler/internal/usecase/appointment"
	ucClient "github.com/BruksfildServices01/salon-scheduler/internal/usecase/client"
	ucService "github.com/BruksfildServices01/salon-scheduler/internal/usecase/service"
	"github.com/BruksfildServices01/salon-scheduler/internal/validators"
)

// Deps reúne a infraestrutura já construída em main.
type Deps struct {
	Config *config.Config
	Logger zerolog.Logger

	// DB atende os cadastros simples (serviços, agendas, expediente, salão, auditoria).
	DB *gorm.DB

	Repo        domain.Repository
	Attachments attachments.Repository
	Storage     attachments.Storage
	Cache       daycache.Cache
	Broker      *notify.Broker
	Audit       audit.Sink

	// Resolver nil desliga a checagem DNS do e-mail no agendamento público.
	Resolver validators.Resolver
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(
		gin.Recovery(),
		middleware.RequestLogger(d.Logger),
		middleware.Metrics(),
		middleware.CORSMiddleware(),
	)

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	metrics.Register()

	opts := ucAppointment.Options{
		SlotStep:           d.Config.SlotStep(),
		EnforceServiceDays: d.Config.EnforceServiceDays,
	}

	days := ucAppointment.NewDayStore(d.Repo, d.Cache, d.Broker, d.Logger)

	// ======================================================
	// 🧠 USE CASES: APPOINTMENTS
	// ======================================================
	createAppointmentUC := ucAppointment.NewCreateAppointment(d.Repo, days, d.Audit, opts, d.Logger)
	updateAppointmentUC := ucAppointment.NewUpdateAppointment(d.Repo, days, d.Audit, opts, d.Logger)
	cancelAppointmentUC := ucAppointment.NewCancelAppointment(d.Repo, days, d.Audit)
	deleteAppointmentUC := ucAppointment.NewDeleteAppointment(d.Repo, days, d.Audit)

	listAppointmentsByDateUC := ucAppointment.NewListAppointmentsByDate(d.Repo)
	listAppointmentsByMonthUC := ucAppointment.NewListAppointmentsByMonth(d.Repo)
	listAppointmentsByCalendarAndDateUC := ucAppointment.NewListAppointmentsByCalendarAndDate(d.Repo, days)
	dayGridUC := ucAppointment.NewGetDayGrid(d.Repo, days)
	availabilityUC := ucAppointment.NewGetAvailability(d.Repo, days, opts)

	// ======================================================
	// 🧠 USE CASES: CATÁLOGO
	// ======================================================
	listServicesUC := ucService.NewListServices(d.Repo)
	listClientsUC := ucClient.NewListClients(d.Repo)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	meHandler := handlers.NewMeHandler(d.Repo)
	salonHandler := handlers.NewSalonHandler(d.DB)

	serviceHandler := handlers.NewServiceHandler(d.DB, listServicesUC)
	clientHandler := handlers.NewClientHandler(listClientsUC)
	calendarHandler := handlers.NewCalendarHandler(d.DB)
	workingHoursHandler := handlers.NewWorkingHoursHandler(d.DB)
	streamHandler := handlers.NewStreamHandler(d.Repo, d.Broker)

	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointmentUC,
		updateAppointmentUC,
		cancelAppointmentUC,
		deleteAppointmentUC,
		listAppointmentsByDateUC,
		listAppointmentsByMonthUC,
		listAppointmentsByCalendarAndDateUC,
		dayGridUC,
	)

	attachmentHandler := handlers.NewAttachmentHandler(
		attachments.NewService(d.Attachments, d.Repo, d.Storage, d.Config.S3.PresignTTL),
	)
	reportHandler := handlers.NewReportHandler(listAppointmentsByMonthUC)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.DB)

	publicHandler := handlers.NewPublicHandler(
		d.Repo,
		listServicesUC,
		availabilityUC,
		createAppointmentUC,
		cancelAppointmentUC,
		d.Resolver,
	)

	// ======================================================
	// 🩺 INFRA
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().UTC()})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🌐 API PÚBLICA
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/:slug/services", publicHandler.ListServices)
			publicAPI.GET("/:slug/calendars/:calendarId/availability", publicHandler.Availability)
			publicAPI.POST("/:slug/appointments", publicHandler.CreateAppointment)
			publicAPI.POST("/:slug/appointments/:id/cancel", publicHandler.CancelAppointment)
		}

		// ------------------------------
		// 🔐 API PRIVADA
		// ------------------------------
		secured := api.Group("/me")
		secured.Use(middleware.AuthMiddleware(d.Config.JWTSecret))
		{
			secured.GET("", meHandler.GetMe)

			secured.GET("/salon", salonHandler.GetMeSalon)
			secured.PATCH("/salon", salonHandler.UpdateMeSalon)

			secured.GET("/clients", clientHandler.List)

			secured.GET("/services", serviceHandler.List)
			secured.POST("/services", serviceHandler.Create)
			secured.PATCH("/services/:id", serviceHandler.Update)

			// ------------------------------
			// CALENDARS
			// ------------------------------
			secured.GET("/calendars", calendarHandler.List)
			secured.POST("/calendars", calendarHandler.Create)
			secured.PATCH("/calendars/:id", calendarHandler.Update)
			secured.PUT("/calendars/:id/services", calendarHandler.SetServices)
			secured.GET("/calendars/:id/working-hours", workingHoursHandler.Get)
			secured.PUT("/calendars/:id/working-hours", workingHoursHandler.Update)
			secured.GET("/calendars/:id/appointments", appointmentHandler.ListByCalendarAndDate)
			secured.GET("/calendars/:id/grid", appointmentHandler.DayGrid)
			secured.GET("/calendars/:id/stream", streamHandler.Stream)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/appointments", appointmentHandler.Create)
			secured.GET("/appointments", appointmentHandler.ListByDate)
			secured.GET("/appointments/month", appointmentHandler.ListByMonth)
			secured.PUT("/appointments/:id", appointmentHandler.Update)
			secured.DELETE("/appointments/:id", appointmentHandler.Delete)
			secured.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)

			secured.GET("/appointments/:id/attachments", attachmentHandler.List)
			secured.POST("/appointments/:id/attachments", attachmentHandler.Upload)
			secured.DELETE("/attachments/:id", attachmentHandler.Delete)

			secured.GET("/reports/appointments.xlsx", reportHandler.MonthlyAppointments)

			secured.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
