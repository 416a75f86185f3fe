package gateway

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"viaticos/internal/config"
	"viaticos/internal/data"
)

const (
	opCrearComision   = "crear_comision"
	opCrearUsuario    = "crear_usuario"
	opObtenerUsuarios = "obtener_usuarios"

	modeLive = "live"
)

// HTTPGateway calls the real flows. Every call gets its own deadline and
// is never retried.
type HTTPGateway struct {
	endpoints config.Endpoints
	timeout   time.Duration
	client    *http.Client
	logger    *zap.Logger
	now       func() time.Time
}

func NewHTTPGateway(endpoints config.Endpoints, timeout time.Duration, logger *zap.Logger) *HTTPGateway {
	if timeout <= 0 {
		timeout = config.DefaultTimeout
	}
	return &HTTPGateway{
		endpoints: endpoints,
		timeout:   timeout,
		client:    &http.Client{},
		logger:    logger.Named("gateway"),
		now:       time.Now,
	}
}

func (g *HTTPGateway) Simulated() bool { return false }

// FetchUsers lists the registered users. A response that is not a JSON
// array is treated as an empty list.
func (g *HTTPGateway) FetchUsers(ctx context.Context) ([]data.User, error) {
	body, err := g.call(ctx, opObtenerUsuarios, g.endpoints.ObtenerUsuarios, http.MethodGet, nil)
	if err != nil {
		return nil, fmt.Errorf("no se pudieron cargar los usuarios: %w", err)
	}
	items, ok := body.([]any)
	if !ok {
		g.logger.Warn("No se recibieron usuarios válidos")
		return []data.User{}, nil
	}
	users := make([]data.User, 0, len(items))
	for _, it := range items {
		m, ok := it.(map[string]any)
		if !ok {
			continue
		}
		users = append(users, data.User{
			Nombre: stringField(m, "nombre"),
			Cedula: identifierField(m, "cedula"),
		})
	}
	g.logger.Info("Usuarios cargados", zap.Int("total", len(users)))
	return users, nil
}

// identifierField reads a cedula that SharePoint may send as a number column.
func identifierField(m map[string]any, key string) string {
	switch v := m[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return v.String()
	}
	return ""
}

func (g *HTTPGateway) SubmitCommission(ctx context.Context, c data.Commission) (*Result, error) {
	payload := buildCommissionPayload(c, g.now())
	body, err := g.call(ctx, opCrearComision, g.endpoints.CrearComision, http.MethodPost, payload)
	if err != nil {
		return nil, err
	}
	if !Succeeded(body) {
		return nil, &BusinessError{Response: body}
	}
	return &Result{
		Success: true,
		Message: "Comisión guardada correctamente en SharePoint",
		Data:    body,
	}, nil
}

func (g *HTTPGateway) CreateUser(ctx context.Context, u data.User) (*Result, error) {
	payload := buildUserPayload(u, g.now())
	body, err := g.call(ctx, opCrearUsuario, g.endpoints.CrearUsuario, http.MethodPost, payload)
	if err != nil {
		return nil, err
	}
	if !Succeeded(body) {
		return nil, &BusinessError{Response: body}
	}
	return &Result{
		Success: true,
		Message: "Usuario creado correctamente en SharePoint",
		Data:    body,
	}, nil
}

// call performs one request and returns the decoded body of a 2xx answer.
func (g *HTTPGateway) call(ctx context.Context, op, url, method string, payload any) (body any, err error) {
	start := time.Now()
	defer func() {
		observe(op, modeLive, start, err)
		if err != nil {
			g.logger.Error("Fallo en la petición a Power Automate",
				zap.String("operation", op), zap.Duration("duration", time.Since(start)), zap.Error(err))
		}
	}()

	if err := checkURL(op, url); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	var reqBody io.Reader
	if payload != nil && method != http.MethodGet {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("%s: codificar payload: %w", op, err)
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	g.logger.Debug("Enviando petición a Power Automate", zap.String("operation", op), zap.String("method", method))

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, transportError(ctx, op, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, transportError(ctx, op, err)
	}

	body = decodeBody(resp.Header.Get("Content-Type"), raw)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newHTTPError(resp.StatusCode, body)
	}

	g.logger.Info("Respuesta de Power Automate",
		zap.String("operation", op), zap.Int("status", resp.StatusCode), zap.Duration("duration", time.Since(start)))
	return body, nil
}

// transportError tells our own deadline apart from a broken connection.
func transportError(ctx context.Context, op string, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w", op, ErrTimeout)
	}
	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w: %v", op, ErrNetwork, err)
}
