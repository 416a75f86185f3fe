package gateway

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"viaticos/internal/data"
)

func fastSimulator(roll float64) *Simulator {
	s := NewSimulator(zap.NewNop())
	s.UsersDelay = time.Millisecond
	s.SubmitDelay = time.Millisecond
	s.Float64 = func() float64 { return roll }
	return s
}

func TestSimulatorDefaults(t *testing.T) {
	s := NewSimulator(zap.NewNop())
	assert.True(t, s.Simulated())
	assert.Equal(t, 800*time.Millisecond, s.UsersDelay)
	assert.Equal(t, 1500*time.Millisecond, s.SubmitDelay)
	assert.Equal(t, 0.1, s.DuplicateRate)
}

func TestSimulatorFetchUsers(t *testing.T) {
	users, err := fastSimulator(0.5).FetchUsers(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 5)
	assert.Contains(t, users, data.User{Nombre: "Ana Martínez Silva", Cedula: "1111111111"})
}

func TestSimulatorSubmitCommissionTakesAboutOneAndAHalfSeconds(t *testing.T) {
	s := NewSimulator(zap.NewNop())
	start := time.Now()
	res, err := s.SubmitCommission(context.Background(), data.Commission{Cedula: "1"})
	elapsed := time.Since(start)

	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "Simulación exitosa - Comisión", res.Message)
	assert.GreaterOrEqual(t, elapsed, 1500*time.Millisecond)
	assert.Less(t, elapsed, 3*time.Second)

	rec, ok := res.Data.(map[string]any)
	require.True(t, ok)
	assert.Len(t, rec["id"], 36)
	assert.NotEmpty(t, rec["timestamp"])
}

func TestSimulatorCreateUser(t *testing.T) {
	res, err := fastSimulator(0.5).CreateUser(context.Background(), data.User{Nombre: "Ana", Cedula: "1"})
	require.NoError(t, err)
	assert.Equal(t, "Simulación exitosa - Usuario", res.Message)

	_, err = fastSimulator(0.05).CreateUser(context.Background(), data.User{Nombre: "Ana", Cedula: "1"})
	require.ErrorIs(t, err, ErrDuplicate)
	assert.Equal(t, "La cédula ya se encuentra registrada", err.Error())
}

func TestSimulatorHonorsContext(t *testing.T) {
	s := NewSimulator(zap.NewNop())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := s.SubmitCommission(ctx, data.Commission{})
	assert.ErrorIs(t, err, ErrTimeout)

	ctx, cancel = context.WithCancel(context.Background())
	cancel()
	_, err = s.FetchUsers(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
