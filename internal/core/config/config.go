package config

import (
	"errors"
	"log"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type HTTP struct {
	Host            string
	Port            int
	ReadTimeoutSec  int
	WriteTimeoutSec int
	IdleTimeoutSec  int
}

type App struct {
	Name string
	Env  string
	HTTP HTTP
}

type Log struct {
	Level string
	JSON  bool
}

// Session holds the cookie signing secret and lifetime. Secret has no
// default on purpose: the process refuses to start without one.
type Session struct {
	Secret     string
	CookieName string
	TTLDays    int
}

type Redis struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type DB struct {
	Driver             string
	DSN                string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeMin int
	LogLevel           string
}

// TTS configures the upstream speech-synthesis proxy. Leaving Endpoint
// empty disables the /api/tts route.
type TTS struct {
	Endpoint   string
	APIKey     string
	TimeoutSec int
}

type Config struct {
	App     App
	Log     Log
	Session Session
	DB      DB
	Redis   Redis `mapstructure:"redis"`
	TTS     TTS
}

var (
	ErrMissingDSN    = errors.New("config: db.dsn is required")
	ErrMissingSecret = errors.New("config: session.secret is required")
)

func Load(path string) *Config {
	c, err := load(path)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	return c
}

func load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "agritradehub")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.http.host", "0.0.0.0")
	v.SetDefault("app.http.port", 3000)
	v.SetDefault("app.http.readtimeoutsec", 5)
	v.SetDefault("app.http.writetimeoutsec", 10)
	v.SetDefault("app.http.idletimeoutsec", 60)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", true)
	v.SetDefault("session.cookiename", "athub_session")
	v.SetDefault("session.ttldays", 30)
	v.SetDefault("db.driver", "postgres")
	// registered with empty defaults so env-only values bind on Unmarshal;
	// Validate still refuses to run with them unset
	v.SetDefault("db.dsn", "")
	v.SetDefault("session.secret", "")
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("tts.endpoint", "")
	v.SetDefault("tts.apikey", "")
	v.SetDefault("db.maxopenconns", 25)
	v.SetDefault("db.maxidleconns", 5)
	v.SetDefault("db.connmaxlifetimemin", 30)
	v.SetDefault("db.loglevel", "warn")
	v.SetDefault("tts.timeoutsec", 10)
}

// Validate enforces that secret material was injected, never defaulted.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.DB.DSN) == "" {
		return ErrMissingDSN
	}
	if strings.TrimSpace(c.Session.Secret) == "" {
		return ErrMissingSecret
	}
	return nil
}
