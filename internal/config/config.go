package config

import (
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const defaultPath = "config/local.yaml"

type Config struct {
	Env     string        `yaml:"env" env:"ENV" env-default:"local"`
	Jaeger  string        `yaml:"jaeger" env:"JAEGER"`
	Log     LogConfig     `yaml:"log"`
	HTTP    HTTPConfig    `yaml:"http"`
	API     APIConfig     `yaml:"api"`
	Redis   RedisConfig   `yaml:"redis"`
	Session SessionConfig `yaml:"session"`
	CORS    CORSConfig    `yaml:"cors"`
}

type LogConfig struct {
	Level string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
}

type HTTPConfig struct {
	Host            string        `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port            int           `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"HTTP_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"HTTP_WRITE_TIMEOUT" env-default:"15s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// APIConfig points at the flight search backend.
type APIConfig struct {
	BaseURL         string        `yaml:"base_url" env:"API_BASE_URL" env-default:"http://localhost:8000"`
	AirportsTimeout time.Duration `yaml:"airports_timeout" env:"API_AIRPORTS_TIMEOUT" env-default:"10s"`
	ReverseTimeout  time.Duration `yaml:"reverse_timeout" env:"API_REVERSE_TIMEOUT" env-default:"45s"`
	SmartTimeout    time.Duration `yaml:"smart_timeout" env:"API_SMART_TIMEOUT" env-default:"120s"`
}

// RedisConfig enables the airport list cache. An empty Addr disables it.
type RedisConfig struct {
	Addr        string        `yaml:"addr" env:"REDIS_ADDR"`
	Password    string        `yaml:"password" env:"REDIS_PASSWORD"`
	DB          int           `yaml:"db" env:"REDIS_DB" env-default:"0"`
	AirportsTTL time.Duration `yaml:"airports_ttl" env:"REDIS_AIRPORTS_TTL" env-default:"6h"`
}

type SessionConfig struct {
	TTL           time.Duration `yaml:"ttl" env:"SESSION_TTL" env-default:"2h"`
	SweepInterval time.Duration `yaml:"sweep_interval" env:"SESSION_SWEEP_INTERVAL" env-default:"5m"`
	CookieSecure  bool          `yaml:"cookie_secure" env:"SESSION_COOKIE_SECURE" env-default:"false"`
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS" env-separator:"," env-default:"*"`
}

// MustLoad reads the file named by path, CONFIG_PATH or config/local.yaml, in that order.
func MustLoad(path string) *Config {
	return MustLoadByPath(ResolvePath(path))
}

func MustLoadByPath(configPath string) *Config {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exists: " + configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		panic("cannot read the config: " + err.Error())
	}

	return &cfg
}

func ResolvePath(flagValue string) string {
	res := strings.TrimSpace(flagValue)

	if res == "" {
		res = os.Getenv("CONFIG_PATH")
	}

	if res == "" {
		res = defaultPath
	}

	return res
}
