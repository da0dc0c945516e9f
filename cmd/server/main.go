package main

import (
	"log"

	_ "classroom/docs"
	"classroom/internal/config"
	"classroom/internal/logger"
	"classroom/internal/server"

	"go.uber.org/zap"
)

// @title           Classroom API
// @version         1.0
// @description     API for managing users, profiles and assignment submissions.

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @schemes http
func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}

	l, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("❌ Logger initialization failed: %v", err)
	}
	defer func() { _ = l.Sync() }()

	s, err := server.Init(cfg, l)
	if err != nil {
		l.Fatal("server initialization failed", zap.Error(err))
	}

	if err := s.Run(); err != nil {
		l.Fatal("server stopped", zap.Error(err))
	}
}
