package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/MartinXCVI/mern-auth-system/internal/config"
	"github.com/MartinXCVI/mern-auth-system/internal/db"
	"github.com/MartinXCVI/mern-auth-system/internal/email"
	"github.com/MartinXCVI/mern-auth-system/internal/routes"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	database, err := db.Open(cfg.DbDsn)
	if err != nil {
		log.Fatalf("db error: %v", err)
	}

	mailer := email.NewSmtpMailer(email.Config{
		Host:     cfg.SmtpHost,
		Port:     cfg.SmtpPort,
		Username: cfg.SmtpUser,
		Password: cfg.SmtpPass,
		From:     cfg.SenderEmail,
	})

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	routes.Register(router, database, cfg, mailer)

	log.Printf("mode: %s", cfg.AppEnv)
	if err := router.Run(cfg.Addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
