package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"viaticos/internal/data"
	"viaticos/internal/form"
	"viaticos/internal/gateway"
)

func validCommission() data.Commission {
	return data.Commission{
		Nombre:            "Ana Martínez Silva",
		Cedula:            "1111111111",
		LugarComision:     "Pasto",
		FechaIda:          "2024-03-07",
		FechaRegreso:      "2024-03-09",
		FechaLegalizacion: "2024-03-15",
		ObjetoComision:    "Auditoría regional",
		ValorTotal:        "$ 1.250.000",
		MedioTransporte:   "Terrestre",
		ValorTiquete:      "$ 80.000",
	}
}

func newMocked(t *testing.T) (*Service, *gateway.MockGateway) {
	t.Helper()
	ctrl := gomock.NewController(t)
	gw := gateway.NewMockGateway(ctrl)
	gw.EXPECT().Simulated().Return(false).AnyTimes()
	return New(gw, zap.NewNop()), gw
}

func TestSubmitCommissionSendsNormalizedValues(t *testing.T) {
	svc, gw := newMocked(t)
	gw.EXPECT().SubmitCommission(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, c data.Commission) (*gateway.Result, error) {
			assert.Equal(t, "07/03/2024", c.FechaIda)
			assert.Equal(t, "09/03/2024", c.FechaRegreso)
			assert.Equal(t, "15/03/2024", c.FechaLegalizacion)
			assert.Equal(t, "1250000", c.ValorTotal)
			assert.Equal(t, "80000", c.ValorTiquete)
			return &gateway.Result{Success: true, Message: "ok"}, nil
		})

	fields, res, notice, err := svc.SubmitCommission(context.Background(), validCommission())
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, Notice{NoticeSuccess, "¡Registro Exitoso!", "La comisión se guardó correctamente en SharePoint"}, notice)
	assert.False(t, svc.Submitting(FormComision))
	for _, f := range fields {
		assert.NotEqual(t, form.StateInvalid, f.State, f.Name)
	}
}

func TestSubmitCommissionValidationNeverCallsGateway(t *testing.T) {
	svc, _ := newMocked(t)
	c := validCommission()
	c.Cedula = "12a"
	c.ValorTotal = ""

	fields, res, notice, err := svc.SubmitCommission(context.Background(), c)
	var vErr *form.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, []string{"cedula", "valorTotal"}, vErr.Fields)
	assert.Nil(t, res)
	assert.Equal(t, "Validación Fallida", notice.Title)
	assert.Equal(t, NoticeError, notice.Kind)
	assert.Len(t, fields, 16)
}

func TestSubmitCommissionGatewayFailure(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"timeout", gateway.ErrTimeout, "Tiempo de espera agotado"},
		{"network", fmt.Errorf("post: %w", gateway.ErrNetwork), "Error de conexión. Verifica CORS en Power Automate"},
		{"not configured", fmt.Errorf("crear_comision: %w", gateway.ErrNotConfigured), "URL de Power Automate no configurada"},
		{"http", &gateway.HTTPError{Status: 500, Message: "flujo caído"}, "flujo caído"},
		{"business", &gateway.BusinessError{}, "El servidor indicó un error en el procesamiento"},
		{"unknown", errors.New("boom"), "Error al registrar la comisión"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, gw := newMocked(t)
			gw.EXPECT().SubmitCommission(gomock.Any(), gomock.Any()).Return(nil, tc.err)

			_, _, notice, err := svc.SubmitCommission(context.Background(), validCommission())
			require.ErrorIs(t, err, tc.err)
			assert.Equal(t, Notice{NoticeError, "Error en el Registro", tc.want}, notice)
			assert.False(t, svc.Submitting(FormComision))
		})
	}
}

func TestSubmitCommissionBusy(t *testing.T) {
	svc, gw := newMocked(t)
	entered := make(chan struct{})
	release := make(chan struct{})
	gw.EXPECT().SubmitCommission(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, data.Commission) (*gateway.Result, error) {
			close(entered)
			<-release
			return &gateway.Result{Success: true}, nil
		}).Times(1)

	done := make(chan error, 1)
	go func() {
		_, _, _, err := svc.SubmitCommission(context.Background(), validCommission())
		done <- err
	}()
	<-entered
	assert.True(t, svc.Submitting(FormComision))
	assert.False(t, svc.Submitting(FormUsuario))

	_, _, notice, err := svc.SubmitCommission(context.Background(), validCommission())
	assert.ErrorIs(t, err, ErrBusy)
	assert.Equal(t, "Envío en Curso", notice.Title)

	close(release)
	require.NoError(t, <-done)
	assert.False(t, svc.Submitting(FormComision))
}

func TestSubmitUserDuplicateReleasesBusy(t *testing.T) {
	svc, gw := newMocked(t)
	gw.EXPECT().CreateUser(gomock.Any(), data.User{Nombre: "Pedro Sánchez", Cedula: "2222222222"}).
		Return(nil, &gateway.HTTPError{Status: http.StatusConflict, Message: "La cédula ya se encuentra registrada"})

	_, _, notice, err := svc.SubmitUser(context.Background(), data.User{Nombre: "Pedro Sánchez", Cedula: "2222222222"})
	require.ErrorIs(t, err, gateway.ErrDuplicate)
	assert.Equal(t, Notice{NoticeError, "Error en la Creación", "La cédula ya se encuentra registrada"}, notice)
	assert.False(t, svc.Submitting(FormUsuario))
}

func TestSubmitUserReloadsDirectory(t *testing.T) {
	svc, gw := newMocked(t)
	u := data.User{Nombre: "Luisa Fernanda Ríos", Cedula: "3333"}
	gomock.InOrder(
		gw.EXPECT().CreateUser(gomock.Any(), u).Return(&gateway.Result{Success: true}, nil),
		gw.EXPECT().FetchUsers(gomock.Any()).Return(append(data.SampleUsers(), u), nil),
	)

	_, res, notice, err := svc.SubmitUser(context.Background(), u)
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "¡Usuario Creado!", notice.Title)
	got, ok := svc.Users().ByCedula("3333")
	require.True(t, ok)
	assert.Equal(t, u, got)
}

func TestSubmitUserReloadFailureStillSucceeds(t *testing.T) {
	svc, gw := newMocked(t)
	u := data.User{Nombre: "Luisa", Cedula: "3333"}
	gw.EXPECT().CreateUser(gomock.Any(), u).Return(&gateway.Result{Success: true}, nil)
	gw.EXPECT().FetchUsers(gomock.Any()).Return(nil, gateway.ErrNetwork)

	_, _, notice, err := svc.SubmitUser(context.Background(), u)
	require.NoError(t, err)
	assert.Equal(t, NoticeSuccess, notice.Kind)
}

func TestSubmitUserValidation(t *testing.T) {
	svc, _ := newMocked(t)
	fields, _, _, err := svc.SubmitUser(context.Background(), data.User{Nombre: "Ana 2", Cedula: ""})
	var vErr *form.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, []string{"nombre", "cedula"}, vErr.Fields)
	assert.Equal(t, form.StateInvalid, fields[0].State)
}

func TestLoadUsersKeepsSnapshot(t *testing.T) {
	svc, gw := newMocked(t)
	gomock.InOrder(
		gw.EXPECT().FetchUsers(gomock.Any()).Return(data.SampleUsers(), nil),
		gw.EXPECT().FetchUsers(gomock.Any()).Return([]data.User{}, nil),
		gw.EXPECT().FetchUsers(gomock.Any()).Return(nil, gateway.ErrTimeout),
	)

	dir, err := svc.LoadUsers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, dir.Len())

	dir, err = svc.LoadUsers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, dir.Len(), "empty answer keeps the previous list")

	dir, err = svc.LoadUsers(context.Background())
	require.ErrorIs(t, err, gateway.ErrTimeout)
	assert.Equal(t, 5, dir.Len())
	assert.Equal(t, "Error de Carga", LoadFailedNotice().Title)
}

func TestSimulatedCommissionEndToEnd(t *testing.T) {
	if testing.Short() {
		t.Skip("waits for the simulated latency")
	}
	svc := New(gateway.NewSimulator(zap.NewNop()), zap.NewNop())
	require.True(t, svc.Simulated())

	start := time.Now()
	_, res, notice, err := svc.SubmitCommission(context.Background(), validCommission())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 1500*time.Millisecond)
	assert.True(t, res.Success)
	assert.Equal(t, "Simulación exitosa - Comisión", res.Message)
	assert.Equal(t, NoticeSuccess, notice.Kind)
}

func TestSimulatedDuplicateUser(t *testing.T) {
	sim := gateway.NewSimulator(zap.NewNop())
	sim.SubmitDelay = time.Millisecond
	sim.Float64 = func() float64 { return 0 }
	svc := New(sim, zap.NewNop())

	_, _, notice, err := svc.SubmitUser(context.Background(), data.User{Nombre: "Ana", Cedula: "1"})
	require.ErrorIs(t, err, gateway.ErrDuplicate)
	assert.Equal(t, "La cédula ya se encuentra registrada", notice.Message)
	assert.False(t, svc.Submitting(FormUsuario))
}

func TestUserMessageFallback(t *testing.T) {
	assert.Equal(t, "x", UserMessage(nil, "x"))
	assert.Equal(t, "x", UserMessage(&gateway.HTTPError{Status: 500}, "x"))
	assert.Equal(t, "Tiempo de espera agotado", UserMessage(context.DeadlineExceeded, "x"))
}
