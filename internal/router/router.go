package router

import (
	"time"

	"github.com/Jcgmtxt/aquashield/internal/config"
	"github.com/Jcgmtxt/aquashield/internal/handler"
	"github.com/Jcgmtxt/aquashield/internal/middleware"
	"github.com/Jcgmtxt/aquashield/internal/repository"
	"github.com/Jcgmtxt/aquashield/internal/service"
	"github.com/Jcgmtxt/aquashield/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	clientRepo := repository.NewClientRepository(db)
	carRepo := repository.NewCarRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	checkInRepo := repository.NewCheckInRepository(db)
	pricingRepo := repository.NewPricingRepository(db)
	appliedRepo := repository.NewAppliedServiceRepository(db)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	clientSvc := service.NewClientService(clientRepo)
	carSvc := service.NewCarService(carRepo, clientRepo)
	servicioSvc := service.NewServicioService(serviceRepo)
	checkInSvc := service.NewCheckInService(checkInRepo, carRepo, serviceRepo, dispatcher)
	pricingSvc := service.NewPricingService(pricingRepo, serviceRepo)
	corrosionSvc := service.NewCorrosionService(pricingRepo, appliedRepo, carRepo,
		service.NewListClassifier(), dispatcher, rdb)
	statsSvc := service.NewStatsService(appliedRepo, pricingRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usuariosH := handler.NewUsuariosHandler(authSvc)
	clientesH := handler.NewClientesHandler(clientSvc)
	carsH := handler.NewCarsHandler(carSvc)
	serviciosH := handler.NewServiciosHandler(servicioSvc)
	checkInsH := handler.NewCheckInsHandler(checkInSvc)
	pricingH := handler.NewPricingHandler(pricingSvc)
	corrosionH := handler.NewCorrosionHandler(corrosionSvc, cfg.PDFStoragePath)
	statsH := handler.NewStatsHandler(statsSvc)
	adminH := handler.NewAdminHandler(rdb)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	anyRole := middleware.RequireRole("asesor", "supervisor", "administrador")
	supervisorUp := middleware.RequireRole("supervisor", "administrador")
	adminOnly := middleware.RequireRole("administrador")

	v1 := r.Group("/v1", jwtMW)
	{
		clientes := v1.Group("/clientes", anyRole)
		{
			clientes.POST("", clientesH.Crear)
			clientes.GET("", clientesH.Listar)
			clientes.GET("/:id", clientesH.Obtener)
			clientes.GET("/identidad/:identity", clientesH.BuscarPorIdentidad)
			clientes.PUT("/:id", clientesH.Actualizar)
		}

		cars := v1.Group("/cars", anyRole)
		{
			cars.POST("", carsH.Crear)
			cars.GET("", carsH.Listar)
			cars.GET("/:id", carsH.Obtener)
			cars.GET("/placa/:plate", carsH.BuscarPorPlaca)
			cars.PUT("/:id", carsH.Actualizar)
		}

		checkins := v1.Group("/checkins")
		{
			checkins.POST("", anyRole, checkInsH.Crear)
			checkins.GET("", anyRole, checkInsH.Listar)
			checkins.GET("/:id", anyRole, checkInsH.Obtener)
			checkins.POST("/:id/servicios", anyRole, checkInsH.AgregarServicio)
			checkins.PATCH("/:id/iniciar", anyRole, checkInsH.Iniciar)
			checkins.PATCH("/:id/completar", anyRole, checkInsH.Completar)
			checkins.PATCH("/:id/cancelar", supervisorUp, checkInsH.Cancelar)
		}

		// Catálogo de servicios — lectura para todos, escritura administrador
		v1.GET("/servicios", anyRole, serviciosH.Listar)
		v1.GET("/servicios/:id", anyRole, serviciosH.Obtener)
		v1.POST("/servicios", adminOnly, serviciosH.Crear)

		// Cotización y aplicación — operación diaria del asesor
		v1.GET("/servicios/:id/cotizacion", anyRole, corrosionH.Cotizar)
		v1.POST("/servicios/:id/aplicar", anyRole, corrosionH.Aplicar)

		// Administración de precios — supervisor o administrador
		v1.POST("/servicios/:id/versiones", supervisorUp, pricingH.CrearVersion)
		v1.GET("/servicios/:id/versiones", supervisorUp, pricingH.ListarVersiones)
		v1.GET("/servicios/:id/versiones/activa", anyRole, pricingH.VersionActiva)

		versiones := v1.Group("/versiones", supervisorUp)
		{
			versiones.PATCH("/:id/finalizar", pricingH.FinalizarVersion)
			versiones.POST("/:id/tarifas", pricingH.CrearTarifa)
			versiones.GET("/:id/tarifas", pricingH.ListarTarifas)
			versiones.POST("/:id/excepciones", pricingH.CrearExcepcion)
			versiones.GET("/:id/excepciones", pricingH.ListarExcepciones)
		}
		v1.DELETE("/excepciones/:id", supervisorUp, pricingH.DesactivarExcepcion)
		v1.GET("/excepciones/:id/uso", supervisorUp, statsH.UsoExcepcion)

		// Ledger de servicios aplicados y reportes
		v1.GET("/aplicados", anyRole, statsH.ListarAplicados)
		v1.GET("/aplicados/:id", anyRole, statsH.ObtenerAplicado)
		v1.GET("/aplicados/:id/comprobante", anyRole, corrosionH.DescargarComprobante)
		v1.GET("/stats/general", supervisorUp, statsH.EstadisticasGenerales)

		usuarios := v1.Group("/usuarios", adminOnly)
		{
			usuarios.POST("", usuariosH.Crear)
			usuarios.GET("", usuariosH.Listar)
			usuarios.PUT("/:id", usuariosH.Actualizar)
			usuarios.DELETE("/:id", usuariosH.Desactivar)
			usuarios.PATCH("/:id/reactivar", usuariosH.Reactivar)
		}

		admin := v1.Group("/admin", adminOnly)
		{
			admin.GET("/dlq", adminH.DLQStatus)
			admin.POST("/dlq/:queue/requeue", adminH.RequeueDLQ)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
