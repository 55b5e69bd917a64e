package config

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const DefaultBaseURL = "https://api.pachaqutec.com"

type AppConfig struct {
	BaseURL      string
	Timeout      time.Duration
	ReadRetries  int
	RetryBackoff time.Duration

	StoreDriver   string
	StoreDir      string
	RedisAddr     string
	RedisDB       int
	MongoURI      string
	MongoDatabase string

	ServerPort     int
	JWTSecret      string
	AllowedOrigins []string
}

var (
	lock      = &sync.Mutex{}
	appConfig *AppConfig
)

// GetConfig loads the configuration once and returns the cached copy afterwards.
func GetConfig() (*AppConfig, error) {
	lock.Lock()
	defer lock.Unlock()

	if appConfig != nil {
		return appConfig, nil
	}
	cfg, err := Load()
	if err != nil {
		return nil, err
	}
	appConfig = cfg
	return appConfig, nil
}

// Load reads .env, then app.config.json from . or ./config, then PACHA_*
// environment variables, in increasing precedence.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment and defaults")
	}

	v := viper.New()
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.SetConfigName("app.config")
	v.SetConfigType("json")
	v.SetEnvPrefix("PACHA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	} else {
		log.Printf("Using config file: %s", v.ConfigFileUsed())
	}

	return &AppConfig{
		BaseURL:        strings.TrimRight(v.GetString("api.base_url"), "/"),
		Timeout:        v.GetDuration("api.timeout"),
		ReadRetries:    v.GetInt("api.read_retries"),
		RetryBackoff:   v.GetDuration("api.retry_backoff"),
		StoreDriver:    v.GetString("store.driver"),
		StoreDir:       v.GetString("store.dir"),
		RedisAddr:      v.GetString("redis.addr"),
		RedisDB:        v.GetInt("redis.db"),
		MongoURI:       v.GetString("mongo.uri"),
		MongoDatabase:  v.GetString("mongo.database"),
		ServerPort:     v.GetInt("server.port"),
		JWTSecret:      v.GetString("server.jwt_secret"),
		AllowedOrigins: v.GetStringSlice("server.allowed_origins"),
	}, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", DefaultBaseURL)
	v.SetDefault("api.timeout", 30*time.Second)
	v.SetDefault("api.read_retries", 0)
	v.SetDefault("api.retry_backoff", 500*time.Millisecond)
	v.SetDefault("store.driver", "file")
	v.SetDefault("store.dir", defaultStoreDir())
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("mongo.uri", "mongodb://localhost:27017")
	v.SetDefault("mongo.database", "pachaqutec_device")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.jwt_secret", "")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:8081", "http://localhost:19006"})
}

func defaultStoreDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".pachaqutec"
	}
	return filepath.Join(home, ".pachaqutec")
}
