package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig
	DB     DBConfig
	KV     KVConfig
	Auth   AuthConfig
	S3     S3Config
	Log    LogConfig
	CORS   CORSConfig
	Queue  QueueConfig
	Upload UploadConfig
	Undo   UndoConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds SQLite settings for the job queue.
type DBConfig struct {
	Path string `mapstructure:"path"`
}

// DSN returns the SQLite connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf("sqlite://%s", d.Path)
}

// KVConfig selects and configures the key-value persistence backend.
type KVConfig struct {
	Backend       string `mapstructure:"backend"` // memory | file | redis
	Dir           string `mapstructure:"dir"`
	RedisAddr     string `mapstructure:"redis_addr"`
	RedisPassword string `mapstructure:"redis_password"`
	RedisDB       int    `mapstructure:"redis_db"`
}

// AuthConfig holds bearer-token settings. An empty secret disables auth and
// the service runs with the local single-user identity.
type AuthConfig struct {
	Secret      string        `mapstructure:"secret"`
	TokenExpiry time.Duration `mapstructure:"token_expiry"`
	Issuer      string        `mapstructure:"issuer"`
}

// Enabled reports whether bearer-token auth is configured.
func (a *AuthConfig) Enabled() bool { return a.Secret != "" }

// S3Config holds AWS S3 settings.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// QueueConfig holds job queue worker settings.
type QueueConfig struct {
	PollIntervalSecs int `mapstructure:"poll_interval_secs"`
	MaxRetries       int `mapstructure:"max_retries"`
	Concurrency      int `mapstructure:"concurrency"`
}

// UploadConfig holds signed-URL upload settings.
type UploadConfig struct {
	MaxFileSizeMB    int64    `mapstructure:"max_file_size_mb"`
	AllowedExts      []string `mapstructure:"allowed_exts"`
	MaxExpirySecs    int64    `mapstructure:"max_expiry_secs"`
	DefaultExpirySec int64    `mapstructure:"default_expiry_secs"`
}

// UndoConfig holds undo coordinator settings.
type UndoConfig struct {
	DefaultDurationMS int `mapstructure:"default_duration_ms"`
}

// Load reads configuration from environment variables with the PUKAIST_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("PUKAIST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.path", "data/pukaist.db")

	// KV defaults
	v.SetDefault("kv.backend", "file")
	v.SetDefault("kv.dir", "data/kv")
	v.SetDefault("kv.redis_addr", "localhost:6379")
	v.SetDefault("kv.redis_password", "")
	v.SetDefault("kv.redis_db", 0)

	// Auth defaults (empty secret = auth disabled, local identity)
	v.SetDefault("auth.secret", "")
	v.SetDefault("auth.token_expiry", "168h")
	v.SetDefault("auth.issuer", "pukaist")

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "pukaist-uploads")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.presign_expiry", 3600)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000,http://localhost:5173,http://127.0.0.1:5173")

	// Queue defaults
	v.SetDefault("queue.poll_interval_secs", 10)
	v.SetDefault("queue.max_retries", 5)
	v.SetDefault("queue.concurrency", 5)

	// Upload defaults
	v.SetDefault("upload.max_file_size_mb", 100)
	v.SetDefault("upload.allowed_exts", "pdf,jpg,jpeg,png,tif,tiff,txt")
	v.SetDefault("upload.max_expiry_secs", 3600)
	v.SetDefault("upload.default_expiry_secs", 900)

	// Undo defaults
	v.SetDefault("undo.default_duration_ms", 5000)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                "PUKAIST_SERVER_PORT",
		"server.read_timeout":        "PUKAIST_SERVER_READ_TIMEOUT",
		"server.write_timeout":       "PUKAIST_SERVER_WRITE_TIMEOUT",
		"server.environment":         "PUKAIST_SERVER_ENVIRONMENT",
		"db.path":                    "PUKAIST_DB_PATH",
		"kv.backend":                 "PUKAIST_KV_BACKEND",
		"kv.dir":                     "PUKAIST_KV_DIR",
		"kv.redis_addr":              "PUKAIST_KV_REDIS_ADDR",
		"kv.redis_password":          "PUKAIST_KV_REDIS_PASSWORD",
		"kv.redis_db":                "PUKAIST_KV_REDIS_DB",
		"auth.secret":                "PUKAIST_AUTH_SECRET",
		"auth.token_expiry":          "PUKAIST_AUTH_TOKEN_EXPIRY",
		"auth.issuer":                "PUKAIST_AUTH_ISSUER",
		"s3.region":                  "PUKAIST_S3_REGION",
		"s3.bucket":                  "PUKAIST_S3_BUCKET",
		"s3.endpoint":                "PUKAIST_S3_ENDPOINT",
		"s3.access_key":              "PUKAIST_S3_ACCESS_KEY",
		"s3.secret_key":              "PUKAIST_S3_SECRET_KEY",
		"s3.presign_expiry":          "PUKAIST_S3_PRESIGN_EXPIRY",
		"log.level":                  "PUKAIST_LOG_LEVEL",
		"log.format":                 "PUKAIST_LOG_FORMAT",
		"cors.allowed_origins":       "PUKAIST_CORS_ALLOWED_ORIGINS",
		"queue.poll_interval_secs":   "PUKAIST_QUEUE_POLL_INTERVAL_SECS",
		"queue.max_retries":          "PUKAIST_QUEUE_MAX_RETRIES",
		"queue.concurrency":          "PUKAIST_QUEUE_CONCURRENCY",
		"upload.max_file_size_mb":    "PUKAIST_UPLOAD_MAX_FILE_SIZE_MB",
		"upload.allowed_exts":        "PUKAIST_UPLOAD_ALLOWED_EXTS",
		"upload.max_expiry_secs":     "PUKAIST_UPLOAD_MAX_EXPIRY_SECS",
		"upload.default_expiry_secs": "PUKAIST_UPLOAD_DEFAULT_EXPIRY_SECS",
		"undo.default_duration_ms":   "PUKAIST_UNDO_DEFAULT_DURATION_MS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if PUKAIST_SERVER_PORT
	// is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("PUKAIST_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Path: v.GetString("db.path"),
	}
	cfg.KV = KVConfig{
		Backend:       v.GetString("kv.backend"),
		Dir:           v.GetString("kv.dir"),
		RedisAddr:     v.GetString("kv.redis_addr"),
		RedisPassword: v.GetString("kv.redis_password"),
		RedisDB:       v.GetInt("kv.redis_db"),
	}
	cfg.Auth = AuthConfig{
		Secret:      v.GetString("auth.secret"),
		TokenExpiry: v.GetDuration("auth.token_expiry"),
		Issuer:      v.GetString("auth.issuer"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: splitCSV(v.GetString("cors.allowed_origins")),
	}
	cfg.Queue = QueueConfig{
		PollIntervalSecs: v.GetInt("queue.poll_interval_secs"),
		MaxRetries:       v.GetInt("queue.max_retries"),
		Concurrency:      v.GetInt("queue.concurrency"),
	}
	cfg.Upload = UploadConfig{
		MaxFileSizeMB:    v.GetInt64("upload.max_file_size_mb"),
		AllowedExts:      splitCSV(v.GetString("upload.allowed_exts")),
		MaxExpirySecs:    v.GetInt64("upload.max_expiry_secs"),
		DefaultExpirySec: v.GetInt64("upload.default_expiry_secs"),
	}
	cfg.Undo = UndoConfig{
		DefaultDurationMS: v.GetInt("undo.default_duration_ms"),
	}

	return cfg, nil
}

// splitCSV parses a comma-separated string, trimming whitespace and dropping
// empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
