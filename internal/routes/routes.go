package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BarberiaDigital/barberia-api/internal/cache"
	"github.com/BarberiaDigital/barberia-api/internal/config"
	"github.com/BarberiaDigital/barberia-api/internal/events"
	"github.com/BarberiaDigital/barberia-api/internal/gateway"
	"github.com/BarberiaDigital/barberia-api/internal/handlers"
	infraRepo "github.com/BarberiaDigital/barberia-api/internal/infra/repository"
	"github.com/BarberiaDigital/barberia-api/internal/middleware"
	"github.com/BarberiaDigital/barberia-api/internal/models"
	ucAppointment "github.com/BarberiaDigital/barberia-api/internal/usecase/appointment"
	ucSale "github.com/BarberiaDigital/barberia-api/internal/usecase/sale"
)

type Deps struct {
	DB      *gorm.DB
	Cfg     *config.Config
	Cache   *cache.AvailabilityCache
	Events  *events.Dispatcher
	Gateway *gateway.MercadoPago
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(d.DB)
	saleRepo := infraRepo.NewSaleGormRepository(d.DB)

	// ======================================================
	// USE CASES - APPOINTMENTS
	// ======================================================
	findAvailableUC := ucAppointment.NewFindAvailableBarbers(
		appointmentRepo,
		d.Cache,
		d.Cfg.BookingLookaheadD,
	)

	createAppointmentUC := ucAppointment.NewCreateAppointment(
		appointmentRepo,
		d.Cache,
		d.Events,
		d.Cfg.BookingLookaheadD,
	)

	transitionAppointmentUC := ucAppointment.NewTransitionAppointment(
		appointmentRepo,
		d.Cache,
		d.Events,
	)

	listAppointmentsByDateUC := ucAppointment.NewListAppointmentsByDate(
		appointmentRepo,
	)

	// ======================================================
	// USE CASES - SALES
	// ======================================================
	openSaleUC := ucSale.NewOpenSale(saleRepo, d.Events)
	saleDetailUC := ucSale.NewGetSaleDetail(saleRepo)
	addServiceLineUC := ucSale.NewAddServiceLine(saleRepo, d.Events)
	addProductLineUC := ucSale.NewAddProductLine(saleRepo, d.Events)
	removeLineUC := ucSale.NewRemoveLine(saleRepo, d.Events)
	registerPaymentUC := ucSale.NewRegisterPayment(saleRepo, d.Gateway, d.Events)
	voidSaleUC := ucSale.NewVoidSale(saleRepo, d.Events)
	deleteSaleUC := ucSale.NewDeleteSale(saleRepo, d.Events)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(d.DB, d.Cfg)
	meHandler := handlers.NewMeHandler(d.DB)
	clientHandler := handlers.NewClientHandler(d.DB)
	serviceHandler := handlers.NewServiceHandler(d.DB)
	productHandler := handlers.NewProductHandler(d.DB)
	scheduleHandler := handlers.NewScheduleHandler(d.DB, d.Cache, d.Cfg.BookingLookaheadD)

	availabilityHandler := handlers.NewAvailabilityHandler(findAvailableUC)

	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointmentUC,
		transitionAppointmentUC,
		listAppointmentsByDateUC,
	)

	saleHandler := handlers.NewSaleHandler(
		openSaleUC,
		saleDetailUC,
		addServiceLineUC,
		addProductLineUC,
		removeLineUC,
		registerPaymentUC,
		voidSaleUC,
		deleteSaleUC,
	)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// API PÚBLICA
		// ------------------------------
		api.GET("/public/availability", availabilityHandler.GetAvailableBarbers)

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(d.Cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			secured.GET("/clients", clientHandler.List)

			secured.GET("/services", serviceHandler.List)
			secured.POST("/services", serviceHandler.Create)
			secured.PATCH("/services/:id", serviceHandler.Update)

			secured.GET("/products", productHandler.List)
			secured.POST("/products", productHandler.Create)
			secured.PATCH("/products/:id", productHandler.Update)
			secured.POST("/products/:id/restock", productHandler.Restock)

			// ------------------------------
			// AGENDA DE BARBEROS
			// ------------------------------
			secured.GET("/barbers/:id/working-windows", scheduleHandler.GetWindows)
			secured.PUT("/barbers/:id/working-windows", scheduleHandler.UpdateWindows)

			secured.GET("/barbers/:id/blocks", scheduleHandler.ListBlocks)
			secured.POST("/barbers/:id/blocks", scheduleHandler.CreateBlock)
			secured.DELETE("/barbers/:id/blocks/:blockId", scheduleHandler.DeleteBlock)

			secured.PUT("/barbers/:id/services", scheduleHandler.UpdateCapabilities)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/appointments", appointmentHandler.Create)
			secured.GET("/appointments", appointmentHandler.ListByDate)
			secured.PATCH("/appointments/:id/state", appointmentHandler.Transition)

			// ------------------------------
			// SALES (POS)
			// ------------------------------
			secured.POST("/sales", saleHandler.Open)
			secured.GET("/sales/:id", saleHandler.Detail)
			secured.POST("/sales/:id/services", saleHandler.AddServiceLine)
			secured.POST("/sales/:id/products", saleHandler.AddProductLine)
			secured.DELETE("/sales/:id/lines/:lineId", saleHandler.RemoveLine)
			secured.POST("/sales/:id/payments", saleHandler.RegisterPayment)
			secured.POST("/sales/:id/void", saleHandler.Void)

			// Borrado duro sin reversa de stock: solo admin.
			secured.DELETE("/sales/:id",
				middleware.RequireRole(models.RoleAdmin),
				saleHandler.Delete,
			)
		}
	}
}
