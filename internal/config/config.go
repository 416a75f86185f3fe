package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Placeholder marks an endpoint that still has to be filled in.
const Placeholder = "TU_URL"

// Flow URLs are signed webhook URLs; the defaults are placeholders until the
// real ones are set in the environment or a .env file.
const (
	DefaultURLCrearComision   = "https://" + Placeholder + "_CREAR_COMISION"
	DefaultURLCrearUsuario    = "https://" + Placeholder + "_CREAR_USUARIO"
	DefaultURLObtenerUsuarios = "https://" + Placeholder + "_OBTENER_USUARIOS"

	DefaultTimeout = 30 * time.Second
)

type Endpoints struct {
	CrearComision   string
	CrearUsuario    string
	ObtenerUsuarios string
}

type Config struct {
	Port         string
	Simulated    bool
	Endpoints    Endpoints
	Timeout      time.Duration
	LogFile      string
	LogLevel     string
	StaticDir    string
	SimUsersFile string // replaces the built-in simulated users when set
}

// Load reads the configuration once at startup. A .env file in the working
// directory is applied first when present; real environment variables win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	simulated, err := getEnvBool("MODO_PRUEBA", false)
	if err != nil {
		return nil, err
	}

	timeout := DefaultTimeout
	if v := os.Getenv("TIMEOUT_MS"); v != "" {
		ms, err := strconv.Atoi(v)
		if err != nil || ms <= 0 {
			return nil, fmt.Errorf("TIMEOUT_MS inválido: %q", v)
		}
		timeout = time.Duration(ms) * time.Millisecond
	}

	return &Config{
		Port:      getEnv("PORT", "8080"),
		Simulated: simulated,
		Endpoints: Endpoints{
			CrearComision:   getEnv("URL_CREAR_COMISION", DefaultURLCrearComision),
			CrearUsuario:    getEnv("URL_CREAR_USUARIO", DefaultURLCrearUsuario),
			ObtenerUsuarios: getEnv("URL_OBTENER_USUARIOS", DefaultURLObtenerUsuarios),
		},
		Timeout:      timeout,
		LogFile:      os.Getenv("LOG_FILE"),
		LogLevel:     os.Getenv("LOG_LEVEL"),
		StaticDir:    getEnv("STATIC_DIR", "cmd/api/static"),
		SimUsersFile: os.Getenv("USUARIOS_PRUEBA_CSV"),
	}, nil
}

// Mode names the gateway mode for logs.
func (c *Config) Mode() string {
	if c.Simulated {
		return "PRUEBA (simulación)"
	}
	return "PRODUCCIÓN"
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s inválido: %q", key, v)
	}
	return b, nil
}
