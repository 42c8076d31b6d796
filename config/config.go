package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Storage backends. The backend is an explicit startup choice, never probed
// per call.
const (
	BackendDatabase    = "database"
	BackendObjectStore = "objectstore"
	BackendLocalFile   = "localfile"
)

const (
	AdminCookieName = "admin_session"
	UserCookieName  = "user_session"

	AdminSessionTTL = 7 * 24 * time.Hour
	UserSessionTTL  = 30 * 24 * time.Hour
	MagicLinkTTL    = 15 * time.Minute
)

type Config struct {
	Port    string
	BaseURL string

	// StorageBackend selects where named JSON documents live.
	StorageBackend string
	DatabasePath   string
	DataDir        string
	UploadsDir     string

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool

	// AdminPasswordHash (bcrypt) wins over AdminPassword when set.
	AdminPassword     string
	AdminPasswordHash string
	JWTSecret         []byte
}

// Load reads .env if present, then the environment.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:              getEnv("PORT", "8080"),
		BaseURL:           getEnv("BASE_URL", "http://localhost:8080"),
		StorageBackend:    getEnv("STORAGE_BACKEND", BackendLocalFile),
		DatabasePath:      getEnv("DATABASE_PATH", "restaurant_site.db"),
		DataDir:           getEnv("DATA_DIR", "data"),
		UploadsDir:        getEnv("UPLOADS_DIR", "uploads"),
		MinioEndpoint:     os.Getenv("MINIO_ENDPOINT"),
		MinioAccessKey:    os.Getenv("MINIO_ACCESS_KEY"),
		MinioSecretKey:    os.Getenv("MINIO_SECRET_KEY"),
		MinioBucket:       getEnv("MINIO_BUCKET", "restaurant-site"),
		MinioUseSSL:       getEnv("MINIO_USE_SSL", "false") == "true",
		AdminPassword:     getEnv("ADMIN_PASSWORD", "macdaddy2024"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		JWTSecret:         []byte(getEnv("JWT_SECRET", "restaurant_site_super_secret_2024")),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
