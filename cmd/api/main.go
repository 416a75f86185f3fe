package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"viaticos/internal/api"
	"viaticos/internal/config"
	"viaticos/internal/gateway"
	"viaticos/internal/service"
	"viaticos/pkg/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		utils.Logger().Fatal("Configuración inválida", zap.Error(err))
	}
	logger := utils.Init(cfg.LogFile, cfg.LogLevel)
	defer logger.Sync()

	gw := gateway.New(cfg, logger)
	logger.Info("Modo de operación", zap.String("modo", cfg.Mode()), zap.Duration("timeout", cfg.Timeout))
	if !cfg.Simulated {
		for _, err := range gateway.CheckConfig(cfg.Endpoints) {
			logger.Warn("Endpoint sin configurar", zap.Error(err))
		}
	}

	svc := service.New(gw, logger)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
		defer cancel()
		if _, err := svc.LoadUsers(ctx); err != nil {
			logger.Warn("Carga inicial de usuarios fallida", zap.Error(err))
		}
	}()

	r := gin.New()
	r.Use(gin.Recovery(), api.RequestLogger(logger.Named("http")))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "modo": cfg.Mode()})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if fi, err := os.Stat(cfg.StaticDir); err == nil && fi.IsDir() {
		r.Static("/static", cfg.StaticDir)
		r.GET("/", func(c *gin.Context) {
			c.File(filepath.Join(cfg.StaticDir, "index.html"))
		})
	}

	api.New(svc, logger).Register(r)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info("Servidor iniciado", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Servidor detenido", zap.Error(err))
		}
	}()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	logger.Info("Señal de apagado recibida")

	// In-flight submissions may take up to the flow timeout.
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout+5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Apagado forzado", zap.Error(err))
	}
	logger.Info("Servidor detenido correctamente")
}
