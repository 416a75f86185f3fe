package gateway

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNotConfigured = errors.New("URL de Power Automate no configurada")
	ErrTimeout       = errors.New("tiempo de espera agotado")
	ErrNetwork       = errors.New("error de conexión con Power Automate")
	ErrDuplicate     = errors.New("la cédula ya se encuentra registrada")
	ErrInvalidData   = errors.New("datos inválidos o incompletos")
	ErrRejected      = errors.New("el servidor indicó un error en el procesamiento")
)

const (
	msgDuplicate   = "La cédula ya se encuentra registrada"
	msgInvalidData = "Datos inválidos o incompletos"
)

// HTTPError is a non-2xx answer from a flow. Message is what the flow said,
// or a default for the status.
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string { return e.Message }

func (e *HTTPError) Unwrap() error {
	switch e.Status {
	case http.StatusConflict:
		return ErrDuplicate
	case http.StatusBadRequest:
		return ErrInvalidData
	}
	return nil
}

func newHTTPError(status int, body any) *HTTPError {
	m, _ := body.(map[string]any)
	msg := stringField(m, "message")
	switch status {
	case http.StatusConflict:
		if msg == "" {
			msg = msgDuplicate
		}
	case http.StatusBadRequest:
		if msg == "" {
			msg = msgInvalidData
		}
	default:
		if msg == "" {
			msg = stringField(m, "error")
		}
		if msg == "" {
			msg = fmt.Sprintf("Error HTTP %d", status)
		}
	}
	return &HTTPError{Status: status, Message: msg}
}

// BusinessError is a 2xx answer whose body says the flow did not do its job.
type BusinessError struct {
	Response any
}

func (e *BusinessError) Error() string { return ErrRejected.Error() }

func (e *BusinessError) Unwrap() error { return ErrRejected }
