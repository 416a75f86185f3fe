package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"viaticos/internal/config"
	"viaticos/internal/gateway"
	"viaticos/pkg/utils"
)

func main() {
	probe := flag.Bool("probe", false, "Llamar al flujo de usuarios para verificar la conexión")
	timeout := flag.Duration("timeout", 0, "Tiempo de espera del sondeo (por defecto TIMEOUT_MS)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Configuración inválida:", err)
		os.Exit(2)
	}
	if *timeout > 0 {
		cfg.Timeout = *timeout
	}

	fmt.Println("Modo:", cfg.Mode())
	fmt.Printf("Timeout: %s\n", cfg.Timeout)
	for _, ep := range []struct{ name, url string }{
		{"crear comisión", cfg.Endpoints.CrearComision},
		{"crear usuario", cfg.Endpoints.CrearUsuario},
		{"obtener usuarios", cfg.Endpoints.ObtenerUsuarios},
	} {
		fmt.Printf("  %-17s %s\n", ep.name, ep.url)
	}

	errs := gateway.CheckConfig(cfg.Endpoints)
	for _, err := range errs {
		fmt.Println("Falta configurar:", err)
	}
	if len(errs) > 0 && !cfg.Simulated {
		os.Exit(1)
	}

	if !*probe {
		return
	}
	logger := utils.Init(cfg.LogFile, cfg.LogLevel)
	defer logger.Sync()

	gw := gateway.New(cfg, logger)
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()
	start := time.Now()
	users, err := gw.FetchUsers(ctx)
	if err != nil {
		logger.Error("Sondeo fallido", zap.Error(err))
		fmt.Println("Sondeo fallido:", err)
		os.Exit(1)
	}
	fmt.Printf("Sondeo correcto: %d usuarios en %s\n", len(users), time.Since(start).Round(time.Millisecond))
}
