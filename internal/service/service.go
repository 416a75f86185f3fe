package service

import (
	"context"
	"errors"
	"sync/atomic"

	"go.uber.org/zap"

	"viaticos/internal/data"
	"viaticos/internal/form"
	"viaticos/internal/gateway"
)

// ErrBusy is returned while a submission of the same form is in flight.
var ErrBusy = errors.New("ya hay un envío en curso para este formulario")

type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "error"
)

// Notice is what the UI shows after an action, as a toast.
type Notice struct {
	Kind    NoticeKind `json:"tipo"`
	Title   string     `json:"titulo"`
	Message string     `json:"mensaje"`
}

// Service is the boundary the UI calls into. It owns the user snapshot and
// keeps each form to one submission at a time.
type Service struct {
	gw     gateway.Gateway
	logger *zap.Logger

	users          atomic.Pointer[form.Directory]
	commissionBusy atomic.Bool
	userBusy       atomic.Bool
}

func New(gw gateway.Gateway, logger *zap.Logger) *Service {
	s := &Service{gw: gw, logger: logger.Named("service")}
	s.users.Store(form.NewDirectory(nil))
	return s
}

// Simulated reports whether submissions go to the simulator.
func (s *Service) Simulated() bool { return s.gw.Simulated() }

// Users returns the current user snapshot.
func (s *Service) Users() *form.Directory { return s.users.Load() }

// LoadUsers refreshes the user snapshot. A non-empty answer replaces the
// previous snapshot as a whole; an empty one leaves it as it was.
func (s *Service) LoadUsers(ctx context.Context) (*form.Directory, error) {
	users, err := s.gw.FetchUsers(ctx)
	if err != nil {
		s.logger.Error("Error al cargar nombres", zap.Error(err))
		return s.Users(), err
	}
	if len(users) > 0 {
		s.users.Store(form.NewDirectory(users))
	}
	s.logger.Info("Usuarios disponibles", zap.Int("total", s.Users().Len()))
	return s.Users(), nil
}

// LoadFailedNotice is shown when the user list cannot be refreshed.
func LoadFailedNotice() Notice {
	return Notice{
		Kind:    NoticeError,
		Title:   "Error de Carga",
		Message: "No se pudieron cargar los usuarios desde SharePoint",
	}
}

// Submitting reports whether the named form ("comision" or "usuario") is
// waiting for the flow, i.e. its submit control should be disabled.
func (s *Service) Submitting(formName string) bool {
	switch formName {
	case FormComision:
		return s.commissionBusy.Load()
	case FormUsuario:
		return s.userBusy.Load()
	}
	return false
}

const (
	FormComision = "comision"
	FormUsuario  = "usuario"
)

// SubmitCommission validates the commission form and sends it. Fields carry
// their validation state on return so the UI can mark them.
func (s *Service) SubmitCommission(ctx context.Context, c data.Commission) ([]*form.Field, *gateway.Result, Notice, error) {
	fields := form.CommissionFields(c)
	if !form.ValidateForm(fields) {
		return fields, nil, validationNotice(), form.Invalid(fields)
	}
	if !s.commissionBusy.CompareAndSwap(false, true) {
		return fields, nil, busyNotice(), ErrBusy
	}
	defer s.commissionBusy.Store(false)

	out := form.ForSubmission(c)
	s.logger.Info("Enviando comisión",
		zap.String("cedula", out.Cedula), zap.String("lugar", out.LugarComision), zap.Bool("simulado", s.gw.Simulated()))

	res, err := s.gw.SubmitCommission(ctx, out)
	if err != nil {
		s.logger.Error("Error al enviar comisión", zap.Error(err))
		return fields, nil, failureNotice("Error en el Registro", err, "Error al registrar la comisión"), err
	}
	return fields, res, Notice{
		Kind:    NoticeSuccess,
		Title:   "¡Registro Exitoso!",
		Message: "La comisión se guardó correctamente en SharePoint",
	}, nil
}

// SubmitUser validates and creates a user, then refreshes the user list.
// A failed refresh does not undo the creation.
func (s *Service) SubmitUser(ctx context.Context, u data.User) ([]*form.Field, *gateway.Result, Notice, error) {
	fields := form.UserFields(u)
	if !form.ValidateForm(fields) {
		return fields, nil, validationNotice(), form.Invalid(fields)
	}
	if !s.userBusy.CompareAndSwap(false, true) {
		return fields, nil, busyNotice(), ErrBusy
	}
	defer s.userBusy.Store(false)

	s.logger.Info("Creando usuario", zap.String("cedula", u.Cedula), zap.Bool("simulado", s.gw.Simulated()))
	res, err := s.gw.CreateUser(ctx, u)
	if err != nil {
		s.logger.Error("Error al crear usuario", zap.Error(err))
		return fields, nil, failureNotice("Error en la Creación", err, "Error al crear el usuario"), err
	}

	if _, err := s.LoadUsers(ctx); err != nil {
		s.logger.Warn("Usuario creado pero no se pudo recargar la lista", zap.Error(err))
	}
	return fields, res, Notice{
		Kind:    NoticeSuccess,
		Title:   "¡Usuario Creado!",
		Message: "El usuario se registró correctamente en SharePoint",
	}, nil
}

func validationNotice() Notice {
	return Notice{
		Kind:    NoticeError,
		Title:   "Validación Fallida",
		Message: "Complete todos los campos obligatorios correctamente",
	}
}

func busyNotice() Notice {
	return Notice{
		Kind:    NoticeError,
		Title:   "Envío en Curso",
		Message: "Espere a que termine el envío anterior",
	}
}

func failureNotice(title string, err error, fallback string) Notice {
	return Notice{Kind: NoticeError, Title: title, Message: UserMessage(err, fallback)}
}

// UserMessage turns a gateway error into the text shown to the user.
func UserMessage(err error, fallback string) string {
	var httpErr *gateway.HTTPError
	switch {
	case err == nil:
		return fallback
	case errors.Is(err, gateway.ErrNotConfigured):
		return "URL de Power Automate no configurada"
	case errors.Is(err, gateway.ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		return "Tiempo de espera agotado"
	case errors.Is(err, gateway.ErrNetwork):
		return "Error de conexión. Verifica CORS en Power Automate"
	case errors.As(err, &httpErr):
		if httpErr.Message != "" {
			return httpErr.Message
		}
	case errors.Is(err, gateway.ErrRejected):
		return "El servidor indicó un error en el procesamiento"
	}
	return fallback
}
