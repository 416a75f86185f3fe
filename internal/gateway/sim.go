package gateway

import (
	"context"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"viaticos/internal/data"
)

const modeSimulated = "simulated"

// Simulator answers like the flows without touching the network. It is meant
// for local development of the form.
type Simulator struct {
	UsersDelay    time.Duration
	SubmitDelay   time.Duration
	DuplicateRate float64
	// Float64 returns values in [0,1); it decides simulated duplicates.
	Float64 func() float64
	// Users is the simulated directory; nil means data.SampleUsers.
	Users []data.User

	logger *zap.Logger
	now    func() time.Time
}

func NewSimulator(logger *zap.Logger) *Simulator {
	return &Simulator{
		UsersDelay:    800 * time.Millisecond,
		SubmitDelay:   1500 * time.Millisecond,
		DuplicateRate: 0.1,
		Float64:       rand.Float64,
		logger:        logger.Named("gateway.simulador"),
		now:           time.Now,
	}
}

func (s *Simulator) Simulated() bool { return true }

func (s *Simulator) FetchUsers(ctx context.Context) (users []data.User, err error) {
	start := time.Now()
	defer func() { observe(opObtenerUsuarios, modeSimulated, start, err) }()

	s.logger.Info("MODO PRUEBA: simulando carga de usuarios")
	if err := wait(ctx, s.UsersDelay); err != nil {
		return nil, err
	}
	if s.Users == nil {
		return data.SampleUsers(), nil
	}
	users = make([]data.User, len(s.Users))
	copy(users, s.Users)
	return users, nil
}

func (s *Simulator) SubmitCommission(ctx context.Context, c data.Commission) (res *Result, err error) {
	start := time.Now()
	defer func() { observe(opCrearComision, modeSimulated, start, err) }()

	s.logger.Info("MODO PRUEBA: simulando envío de comisión",
		zap.String("cedula", c.Cedula), zap.String("lugar", c.LugarComision))
	if err := wait(ctx, s.SubmitDelay); err != nil {
		return nil, err
	}
	return &Result{
		Success: true,
		Message: "Simulación exitosa - Comisión",
		Data:    s.record(),
	}, nil
}

func (s *Simulator) CreateUser(ctx context.Context, u data.User) (res *Result, err error) {
	start := time.Now()
	defer func() { observe(opCrearUsuario, modeSimulated, start, err) }()

	s.logger.Info("MODO PRUEBA: simulando creación de usuario", zap.String("cedula", u.Cedula))
	if err := wait(ctx, s.SubmitDelay); err != nil {
		return nil, err
	}
	if s.Float64() < s.DuplicateRate {
		return nil, &HTTPError{Status: http.StatusConflict, Message: msgDuplicate}
	}
	return &Result{
		Success: true,
		Message: "Simulación exitosa - Usuario",
		Data:    s.record(),
	}, nil
}

func (s *Simulator) record() map[string]any {
	return map[string]any{
		"id":        uuid.NewString(),
		"timestamp": s.now().UTC().Format(registrationLayout),
	}
}

// wait sleeps for d unless ctx ends first.
func wait(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		if ctx.Err() == context.DeadlineExceeded {
			return ErrTimeout
		}
		return ctx.Err()
	}
}
