package main

import (
	"os"
	"time"

	"pedagoia-backend/config"
	"pedagoia-backend/database"
	routes "pedagoia-backend/internal/app/http"
	"pedagoia-backend/internal/app/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	config.LoadEnv()
	database.InitDB(config.DB_URL)
	services.Init(log)

	if !config.IsDevMode() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{os.Getenv("CORS_ORIGIN")},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Recovery-Token"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r)

	sweepCron, err := services.Sweeper.Schedule(config.ROLE_SWEEP_SCHEDULE)
	if err != nil {
		log.WithError(err).Fatal("invalid role sweep schedule")
	}
	defer sweepCron.Stop()

	if err := r.Run(":" + config.PORT); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
