package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort  string
	Environment string
	LogLevel    string
	LogFormat   string
	CORSOrigins []string

	Storage StorageConfig

	SeedFile    string
	SeedOnEmpty bool

	JWTSecret      string
	JWTExpiry      int64
	RateLimitRPS   float64
	RateLimitBurst int
}

// StorageConfig selects and parameterizes the catalog persistence driver.
type StorageConfig struct {
	Driver string

	DataFile    string
	SQLitePath  string
	PostgresDSN string
	BadgerPath  string

	FirestoreProject    string
	FirestoreCollection string

	GCSBucket string
	GCSPrefix string

	S3Bucket    string
	S3Region    string
	S3Endpoint  string
	S3PathStyle bool

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool
	MinioRegion    string
}

func Load() (*Config, error) {
	godotenv.Load()

	config := &Config{
		ServerPort:  getEnv("SERVER_PORT", "5000"),
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "text"),
		CORSOrigins: getEnvAsList("CORS_ORIGINS", "*"),
		Storage: StorageConfig{
			Driver:              getEnv("STORAGE_DRIVER", "file"),
			DataFile:            getEnv("DATA_FILE", "./data.json"),
			SQLitePath:          getEnv("SQLITE_PATH", "./mediavault.db"),
			PostgresDSN:         getEnv("POSTGRES_DSN", "postgres://localhost/mediavault?sslmode=disable"),
			BadgerPath:          getEnv("BADGER_PATH", "./badger"),
			FirestoreProject:    getEnv("FIRESTORE_PROJECT_ID", ""),
			FirestoreCollection: getEnv("FIRESTORE_COLLECTION", "mediavault"),
			GCSBucket:           getEnv("GCS_BUCKET", ""),
			GCSPrefix:           getEnv("GCS_PREFIX", ""),
			S3Bucket:            getEnv("S3_BUCKET", ""),
			S3Region:            getEnv("S3_REGION", "us-east-1"),
			S3Endpoint:          getEnv("S3_ENDPOINT", ""),
			S3PathStyle:         getEnvAsBool("S3_PATH_STYLE", false),
			MinioEndpoint:       getEnv("MINIO_ENDPOINT", "localhost:9000"),
			MinioAccessKey:      getEnv("MINIO_ACCESS_KEY", ""),
			MinioSecretKey:      getEnv("MINIO_SECRET_KEY", ""),
			MinioBucket:         getEnv("MINIO_BUCKET", "mediavault"),
			MinioUseSSL:         getEnvAsBool("MINIO_USE_SSL", false),
			MinioRegion:         getEnv("MINIO_REGION", "us-east-1"),
		},
		SeedFile:       getEnv("SEED_FILE", ""),
		SeedOnEmpty:    getEnvAsBool("SEED_ON_EMPTY", true),
		JWTSecret:      getEnv("JWT_SECRET", ""),
		JWTExpiry:      getEnvAsInt64("JWT_EXPIRY", 24*60*60), // 24 hours
		RateLimitRPS:   getEnvAsFloat("RATE_LIMIT_RPS", 20),
		RateLimitBurst: int(getEnvAsInt64("RATE_LIMIT_BURST", 40)),
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		intValue, err := strconv.ParseInt(value, 10, 64)
		if err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		f, err := strconv.ParseFloat(value, 64)
		if err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		b, err := strconv.ParseBool(value)
		if err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvAsList(key, defaultValue string) []string {
	raw := getEnv(key, defaultValue)
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
