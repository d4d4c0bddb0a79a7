package routes

import (
	"salonbase-backend/config"
	"salonbase-backend/controllers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter(serviceController *controllers.ServiceController) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	api := r.Group("/api")
	{
		// Service routes
		services := api.Group("/services")
		{
			services.POST("", serviceController.CreateService)
			services.GET("", serviceController.GetServices)
			services.POST("/upload-image", serviceController.UploadImage)
			services.DELETE("/images/*publicId", serviceController.DeleteImage)
			services.GET("/:id", serviceController.GetService)
			services.PUT("/:id", serviceController.UpdateService)
			services.DELETE("/:id", serviceController.DeleteService)
		}
	}

	return r
}
