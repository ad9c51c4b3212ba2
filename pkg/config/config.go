package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env
// y opcionalmente archivo).
type Config struct {
	App   AppConfig
	Store StoreConfig
	JWT   JWTConfig
	HTTP  HTTPConfig
	AI    AIConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// StoreConfig configuración del almacén embebido (bbolt). Un solo archivo en
// disco; no hay servidor de base de datos.
type StoreConfig struct {
	Path string
}

// JWTConfig configuración de JWT.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// AIConfig configuración del servicio de extracción de órdenes.
type AIConfig struct {
	GeminiAPIKey string
	GeminiModel  string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde
// archivo). Las env vars tienen prioridad. Nombres esperados: APP_ENV,
// STORE_PATH, JWT_SECRET, GEMINI_API_KEY, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "bodega-api"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		Store: StoreConfig{
			Path: getString(v, "STORE_PATH", "data/bodega.db"),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 480),
			Issuer:     getString(v, "JWT_ISSUER", "bodega-api"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		AI: AIConfig{
			GeminiAPIKey: getString(v, "GEMINI_API_KEY", ""),
			GeminiModel:  getString(v, "GEMINI_MODEL", "gemini-2.5-flash"),
		},
	}

	if cfg.App.Env == "production" && cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("config: JWT_SECRET es obligatorio en production")
	}

	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case string:
			n, err := strconv.Atoi(v.GetString(key))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
