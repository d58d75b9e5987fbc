package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type EnvConfig struct {
	HTTP struct {
		Port string
	}
	Database struct {
		Driver     string // postgres or sqlite
		SQLitePath string
	}
	Postgres struct {
		HOST     string
		Database string
		Username string
		Password string
		Port     string
	}
	ObjectStore struct {
		Driver       string // minio, s3, memory or none
		MirrorBucket string
	}
	Minio struct {
		Endpoint     string
		RootUser     string
		RootPassword string
		UseSSL       bool
	}
	S3 struct {
		Region         string
		Endpoint       string
		AccessKey      string
		SecretKey      string
		ForcePathStyle bool
	}
	JWT struct {
		SecretKey string
	}
	CORS struct {
		AllowDomains string
	}
	Redis struct {
		Password      string
		Database      int
		RedisHost     string
		RedisPort     string
		EventCacheTTL time.Duration
	}
	RabbitMQ struct {
		Host     string
		Port     string
		Username string
		Password string
	}
	Grafana struct {
		OTLPEndpoint string
		ServiceName  string
	}
	Environment struct {
		Mode string
	}
}

func LoadEnvConfig() *EnvConfig {
	var config EnvConfig

	config.HTTP.Port = getEnv("HTTP_PORT", "8585")

	config.Database.Driver = strings.ToLower(getEnv("DATABASE_DRIVER", "postgres"))
	config.Database.SQLitePath = getEnv("SQLITE_PATH", "tickets.db")

	// Postgres
	config.Postgres.HOST = os.Getenv("PGPOOL_HOST")
	config.Postgres.Database = os.Getenv("PGPOOL_DB")
	config.Postgres.Username = os.Getenv("PGPOOL_USER")
	config.Postgres.Password = os.Getenv("PGPOOL_PASSWORD")
	config.Postgres.Port = getEnv("PGPOOL_PORT", "5432")

	// Object store
	config.ObjectStore.Driver = strings.ToLower(getEnv("OBJECT_STORE_DRIVER", "minio"))
	config.ObjectStore.MirrorBucket = getEnv("MIRROR_BUCKET", "my-op-bucket")

	config.Minio.Endpoint = os.Getenv("MINIO_ENDPOINT")
	config.Minio.RootUser = os.Getenv("MINIO_ROOT_USER")
	config.Minio.RootPassword = os.Getenv("MINIO_ROOT_PASSWORD")
	config.Minio.UseSSL = getEnvBool("MINIO_USE_SSL", false)

	config.S3.Region = getEnv("S3_REGION", "us-east-1")
	config.S3.Endpoint = os.Getenv("S3_ENDPOINT")
	config.S3.AccessKey = os.Getenv("S3_ACCESS_KEY")
	config.S3.SecretKey = os.Getenv("S3_SECRET_KEY")
	config.S3.ForcePathStyle = getEnvBool("S3_FORCE_PATH_STYLE", false)

	config.JWT.SecretKey = os.Getenv("JWT_SECRET_KEY")

	config.CORS.AllowDomains = getEnv("ALLOWED_DOMAINS", "http://localhost:4200")

	// Redis, optional: an empty host disables the event cache
	config.Redis.Password = os.Getenv("REDIS_PASSWORD")
	config.Redis.Database, _ = strconv.Atoi(os.Getenv("REDIS_DB"))
	config.Redis.RedisHost = os.Getenv("REDIS_HOST")
	config.Redis.RedisPort = getEnv("REDIS_PORT", "6379")
	config.Redis.EventCacheTTL = getEnvDuration("EVENT_CACHE_TTL", 5*time.Minute)

	// RabbitMQ
	config.RabbitMQ.Host = getEnv("RABBITMQ_HOST", "localhost")
	config.RabbitMQ.Port = getEnv("RABBITMQ_PORT", "5672")
	config.RabbitMQ.Username = getEnv("RABBITMQ_USER", "guest")
	config.RabbitMQ.Password = getEnv("RABBITMQ_PASSWORD", "guest")

	// Grafana/OpenTelemetry, empty endpoint keeps telemetry local
	grafanaEndpoint := os.Getenv("GRAFANA_OTLP_ENDPOINT")
	// Remove protocol for OpenTelemetry client to avoid duplicate protocols
	grafanaEndpoint = strings.TrimPrefix(grafanaEndpoint, "https://")
	config.Grafana.OTLPEndpoint = strings.TrimPrefix(grafanaEndpoint, "http://")
	config.Grafana.ServiceName = getEnv("SERVICE_NAME", "gau-ticketing-service")

	config.Environment.Mode = getEnv("DEPLOY_ENV", "development")

	return &config
}

// AllowedOrigins splits the comma separated CORS origin list.
func (c *EnvConfig) AllowedOrigins() []string {
	var origins []string
	for _, origin := range strings.Split(c.CORS.AllowDomains, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	val, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return val
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	val, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return val
}
