package gateway

//go:generate mockgen -source=gateway.go -destination=mock_gateway.go -package=gateway

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"viaticos/internal/config"
	"viaticos/internal/data"
)

// Gateway talks to the Power Automate flows that back the form.
type Gateway interface {
	FetchUsers(ctx context.Context) ([]data.User, error)
	SubmitCommission(ctx context.Context, c data.Commission) (*Result, error)
	CreateUser(ctx context.Context, u data.User) (*Result, error)
	Simulated() bool
}

// Result is the normalized outcome of a write to a flow.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// New picks the live or simulated gateway. The choice is fixed for the
// lifetime of the returned value.
func New(cfg *config.Config, logger *zap.Logger) Gateway {
	if cfg.Simulated {
		sim := NewSimulator(logger)
		if cfg.SimUsersFile != "" {
			users, err := data.ReadUsersCSV(cfg.SimUsersFile)
			if err != nil {
				logger.Warn("No se pudo leer el CSV de usuarios de prueba", zap.String("archivo", cfg.SimUsersFile), zap.Error(err))
			} else {
				sim.Users = users
			}
		}
		return sim
	}
	return NewHTTPGateway(cfg.Endpoints, cfg.Timeout, logger)
}

// CheckConfig returns one ErrNotConfigured per endpoint that is empty or
// still holds the placeholder.
func CheckConfig(e config.Endpoints) []error {
	var errs []error
	for _, ep := range []struct{ name, url string }{
		{opCrearComision, e.CrearComision},
		{opCrearUsuario, e.CrearUsuario},
		{opObtenerUsuarios, e.ObtenerUsuarios},
	} {
		if err := checkURL(ep.name, ep.url); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

func checkURL(op, url string) error {
	if url == "" || strings.Contains(url, config.Placeholder) {
		return fmt.Errorf("%s: %w", op, ErrNotConfigured)
	}
	return nil
}
