package main

import (
	"fmt"
	"log"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"bicho_service/internal/animals"
	"bicho_service/internal/api"
	"bicho_service/internal/config"
	"bicho_service/internal/game"
	"bicho_service/internal/ledger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := logrus.New()
	logger.SetLevel(logrus.InfoLevel)

	// A broken animal table would make draws unresolvable, so refuse
	// to start on one.
	registry := animals.Default()
	if err := registry.Validate(); err != nil {
		logger.Fatalf("animal table invalid: %v", err)
	}

	repo, err := ledger.OpenFileRepository(cfg.Data.Path, logger)
	if err != nil {
		logger.Fatalf("open ledger: %v", err)
	}
	logger.WithField("path", cfg.Data.Path).Info("ledger loaded")

	svc := game.NewService(repo, registry, logger)
	svc.WithInitialCredits(decimal.NewFromInt(cfg.Data.InitialCredits))

	gin.SetMode(cfg.Server.Mode)
	r := gin.Default()
	pprof.Register(r)

	handler := api.NewHandler(svc, logger)
	handler.Register(r)

	logger.Infof("bicho service listening on :%d", cfg.Server.Port)
	if err := r.Run(fmt.Sprintf(":%d", cfg.Server.Port)); err != nil {
		logger.Fatalf("server stopped: %v", err)
	}
}
