package routes

import (
	"vetcare-backend/config"
	"vetcare-backend/controllers"
	"vetcare-backend/models"
	"vetcare-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:3000",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	staffOnly := utils.RequireRole(models.RolAdministrador, models.RolVeterinario)
	adminOnly := utils.RequireRole(models.RolAdministrador)

	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		// User routes
		usuarios := api.Group("/usuarios", adminOnly)
		{
			usuarios.GET("", controllers.GetUsers)
			usuarios.GET("/:id", controllers.GetUser)
			usuarios.PUT("/:id", controllers.UpdateUser)
			usuarios.DELETE("/:id", controllers.DeleteUser)
		}

		// Pet routes
		mascotas := api.Group("/mascotas", staffOnly)
		{
			mascotas.POST("", controllers.CreatePet)
			mascotas.GET("", controllers.GetPets)
			mascotas.GET("/:id", controllers.GetPet)
			mascotas.PUT("/:id", controllers.UpdatePet)
			mascotas.DELETE("/:id", controllers.DeletePet)
		}

		// Service catalog routes
		servicios := api.Group("/servicios", staffOnly)
		{
			servicios.POST("", controllers.CreateService)
			servicios.GET("", controllers.GetServices)
			servicios.GET("/:id", controllers.GetService)
			servicios.PUT("/:id", controllers.UpdateService)
			servicios.DELETE("/:id", controllers.DeleteService)
		}

		// Medication inventory routes
		medicamentos := api.Group("/medicamentos", staffOnly)
		{
			medicamentos.POST("", controllers.CreateMedication)
			medicamentos.GET("", controllers.GetMedications)
			medicamentos.GET("/:id", controllers.GetMedication)
			medicamentos.PUT("/:id", controllers.UpdateMedication)
			medicamentos.DELETE("/:id", controllers.DeleteMedication)
		}

		// Reservation routes (clients can book and see their own)
		reservas := api.Group("/reservas")
		{
			reservas.POST("", controllers.CreateReservation)
			reservas.GET("", controllers.GetReservations)
			reservas.GET("/:id", controllers.GetReservation)
			reservas.PUT("/:id", staffOnly, controllers.UpdateReservation)
			reservas.DELETE("/:id", staffOnly, controllers.DeleteReservation)
		}

		// Treatment routes
		tratamientos := api.Group("/tratamientos", staffOnly)
		{
			tratamientos.POST("", controllers.CreateTreatment)
			tratamientos.GET("", controllers.GetTreatments)
			tratamientos.GET("/:id", controllers.GetTreatment)
			tratamientos.PUT("/:id", controllers.UpdateTreatment)
			tratamientos.POST("/:id/pago", controllers.BillTreatment)
		}

		// Payment routes
		pagos := api.Group("/pagos", staffOnly)
		{
			pagos.PUT("/:id/completar", controllers.CompletePayment)
			pagos.GET("/resumen", controllers.GetRevenueSummary)
		}

		// Report routes
		reportes := api.Group("/reportes", adminOnly)
		{
			reportes.GET("/usuarios", controllers.GetUserReport)
			reportes.GET("/mascotas", controllers.GetPetReport)
			reportes.GET("/historiales", controllers.GetHistoryReport)
			reportes.GET("/tratamientos", controllers.GetTreatmentReport)
			reportes.GET("/medicamentos", controllers.GetMedicationReport)
			reportes.GET("/servicios", controllers.GetServiceReport)
			reportes.GET("/pagos", controllers.GetPaymentReport)
			reportes.GET("/reservas", controllers.GetReservationReport)
		}

		// Dashboard routes
		api.GET("/estadisticas", adminOnly, controllers.GetStatistics)
		api.GET("/estadisticas/actividad", adminOnly, controllers.GetActivitySeries)

		// Search
		api.GET("/buscar", staffOnly, controllers.SearchContent)
	}

	return r
}
