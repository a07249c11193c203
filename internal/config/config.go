package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port           string
	ServiceName    string
	ServiceID      string
	ServiceAddress string
	ConsulAddress  string

	MongoURI      string
	MongoDatabase string

	RedisAddress  string
	RedisPassword string

	RabbitMQURI string

	MinIOEndpoint  string
	MinIOAccessKey string
	MinIOSecretKey string
	MinIOUseSSL    bool
	MinIOBucket    string
	MinIORegion    string
	PublicFileBase string

	SMTPHost string
	SMTPPort string
	SMTPUser string
	SMTPPass string
	SMTPFrom string

	GeocodeBaseURL  string
	SupportedRegion string

	JWTSecret  string
	JWTExpired int64

	AdminEmail        string
	AdminPasswordHash string

	ShadowTokenTTL        time.Duration
	ShadowCleanupDelay    time.Duration
	NotificationRetention time.Duration
}

var ServiceConfig *Config

func init() {
	ServiceConfig = New()
}

func New() *Config {
	jwtExpiredStr := getEnv("TOKEN_EXPIRY_TIME", "24")
	jwtExpired, _ := strconv.Atoi(jwtExpiredStr)

	shadowTTL, _ := strconv.Atoi(getEnv("SHADOW_TOKEN_TTL_MINUTES", "3"))
	cleanupDelay, _ := strconv.Atoi(getEnv("SHADOW_CLEANUP_DELAY_MINUTES", "5"))
	retentionDays, _ := strconv.Atoi(getEnv("NOTIFICATION_RETENTION_DAYS", "7"))

	return &Config{
		Port:           getEnv("PORT", "9200"),
		ServiceName:    getEnv("CAREERNEST_SERVICE_NAME", "careernest"),
		ServiceID:      getEnv("CAREERNEST_SERVICE_NAME", "careernest") + "-" + getEnv("CAREERNEST_HOSTNAME", "1"),
		ServiceAddress: getEnv("CAREERNEST_SERVICE_ADDRESS", "careernest"),
		ConsulAddress:  "consul-server:" + getEnv("CONSUL_PORT", "8500"),

		MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnv("CAREERNEST_MONGO_DB", "careernest"),

		RedisAddress:  getEnv("REDIS_ADDRESS", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		RabbitMQURI: getEnv("RABBITMQ_URI", ""),

		MinIOEndpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
		MinIOAccessKey: getEnv("MINIO_ACCESS_KEY", ""),
		MinIOSecretKey: getEnv("MINIO_SECRET_KEY", ""),
		MinIOUseSSL:    getEnv("MINIO_USE_SSL", "false") == "true",
		MinIOBucket:    getEnv("MINIO_BUCKET", "careernest-documents"),
		MinIORegion:    getEnv("MINIO_REGION", "us-east-1"),
		PublicFileBase: getEnv("PUBLIC_FILE_BASE", "http://localhost:9000/careernest-documents"),

		SMTPHost: getEnv("SMTP_HOST", ""),
		SMTPPort: getEnv("SMTP_PORT", "587"),
		SMTPUser: getEnv("SMTP_USER", ""),
		SMTPPass: getEnv("SMTP_PASS", ""),
		SMTPFrom: getEnv("SMTP_FROM", "no-reply@careernest.app"),

		GeocodeBaseURL:  getEnv("GEOCODE_BASE_URL", "https://nominatim.openstreetmap.org"),
		SupportedRegion: getEnv("SUPPORTED_REGION", "Nepal"),

		JWTSecret:  getEnv("JWT_SECRET", ""),
		JWTExpired: int64(jwtExpired),

		AdminEmail:        getEnv("ADMIN_EMAIL", "admin@careernest.app"),
		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),

		ShadowTokenTTL:        time.Duration(shadowTTL) * time.Minute,
		ShadowCleanupDelay:    time.Duration(cleanupDelay) * time.Minute,
		NotificationRetention: time.Duration(retentionDays) * 24 * time.Hour,
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	log.Printf("Error Retriving ENV: %s not exist", key)
	return fallback
}
