package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"salonbase-backend/config"
	"salonbase-backend/controllers"
	"salonbase-backend/models"
	"salonbase-backend/routes"
	"salonbase-backend/services"
)

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found")
	}
	config.ConnectDB()

	config.DB.AutoMigrate(
		&models.Salon{},
		&models.Service{},
	)
}

func main() {
	var cache services.ListCache = services.NoopListCache{}
	if rdb, err := config.ConnectRedis(); err != nil {
		logrus.WithError(err).Warn("Redis unavailable, service listing cache disabled")
	} else {
		cache = services.NewRedisListCache(rdb, cacheTTL())
	}

	store := services.NewServiceStore(config.DB)
	images := services.NewCloudinaryStore()
	manager := services.NewServiceManager(store, images, cache)

	warmer := services.NewCacheWarmer(store, cache)
	if err := warmer.Start(os.Getenv("CACHE_WARM_SCHEDULE")); err != nil {
		logrus.WithError(err).Warn("Invalid cache warm schedule, warmer disabled")
	}
	defer warmer.Stop()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r := routes.SetupRouter(controllers.NewServiceController(manager))
	printRoutes(r)
	r.Run(":" + port)
}

func cacheTTL() time.Duration {
	if env := os.Getenv("CACHE_TTL_SECONDS"); env != "" {
		if n, err := strconv.Atoi(env); err == nil && n > 0 {
			return time.Duration(n) * time.Second
		}
	}
	return 5 * time.Minute
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
