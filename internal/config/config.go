// internal/config/config.go
package config

import (
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Cache    CacheConfig
	Engine   EngineConfig
	Forecast ForecastConfig
	Storage  StorageConfig
	Drive    DriveConfig
}

type ServerConfig struct {
	Port           string
	Mode           string
	ReadTimeout    int
	WriteTimeout   int
	AllowedOrigins []string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type CacheConfig struct {
	Enabled                  bool
	RedisURL                 string
	RedisHost                string
	RedisPort                string
	RedisPassword            string
	RedisDB                  int
	RecommendationTTLSeconds int
}

// EngineConfig exposes the recommendation policy constants. Defaults must
// stay aligned with the analyzer thresholds documented in the engine package;
// changing them changes which items qualify, not how they are scored.
type EngineConfig struct {
	TopN                int
	AnalyzerTimeout     time.Duration
	OverstockMultiple   float64
	OverstockDepleteDay float64
	SlowMoverCutoff     float64
	SlowMoverWindowDays int
	ExpiryHorizonDays   int
	GrowthFactor        float64
	SeasonalFactor      float64
	SupplierScoreFloor  float64
	SupplierLeadTimeMax int
}

type ForecastConfig struct {
	Enabled bool
	BaseURL string
	Timeout time.Duration
}

type StorageConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	UseSSL    bool
}

type DriveConfig struct {
	CredentialsJSON string
	FolderID        string
	DownloadDir     string
}

var (
	once     sync.Once
	instance *Config
)

func Load() *Config {
	once.Do(func() {
		// Load .env file if it exists
		_ = godotenv.Load()

		// Set default values
		viper.SetDefault("SERVER_PORT", "8080")
		viper.SetDefault("SERVER_MODE", "debug")
		viper.SetDefault("SERVER_READ_TIMEOUT", 15)
		viper.SetDefault("SERVER_WRITE_TIMEOUT", 15)
		viper.SetDefault("SERVER_ALLOWED_ORIGINS", []string{"*"})
		viper.SetDefault("DB_HOST", "localhost")
		viper.SetDefault("DB_PORT", "5432")
		viper.SetDefault("DB_USER", "postgres")
		viper.SetDefault("DB_PASSWORD", "postgres")
		viper.SetDefault("DB_NAME", "pharmastock")
		viper.SetDefault("DB_SSLMODE", "disable")
		viper.SetDefault("CACHE_ENABLED", false)
		viper.SetDefault("REDIS_URL", "")
		viper.SetDefault("REDIS_HOST", "127.0.0.1")
		viper.SetDefault("REDIS_PORT", "6379")
		viper.SetDefault("REDIS_PASSWORD", "")
		viper.SetDefault("REDIS_DB", 0)
		viper.SetDefault("CACHE_RECOMMENDATION_TTL_SECONDS", 60)
		viper.SetDefault("ENGINE_TOP_N", 20)
		viper.SetDefault("ENGINE_ANALYZER_TIMEOUT_SECONDS", 10)
		viper.SetDefault("ENGINE_OVERSTOCK_MULTIPLE", 3.0)
		viper.SetDefault("ENGINE_OVERSTOCK_DEPLETE_DAYS", 90.0)
		viper.SetDefault("ENGINE_SLOW_MOVER_CUTOFF", 10.0)
		viper.SetDefault("ENGINE_SLOW_MOVER_WINDOW_DAYS", 90)
		viper.SetDefault("ENGINE_EXPIRY_HORIZON_DAYS", 90)
		viper.SetDefault("ENGINE_GROWTH_FACTOR", 1.2)
		viper.SetDefault("ENGINE_SEASONAL_FACTOR", 1.3)
		viper.SetDefault("ENGINE_SUPPLIER_SCORE_FLOOR", 3.5)
		viper.SetDefault("ENGINE_SUPPLIER_LEAD_TIME_MAX", 10)
		viper.SetDefault("FORECAST_ENABLED", false)
		viper.SetDefault("FORECAST_BASE_URL", "")
		viper.SetDefault("FORECAST_TIMEOUT_SECONDS", 10)
		viper.SetDefault("STORAGE_ENDPOINT", "")
		viper.SetDefault("STORAGE_ACCESS_KEY", "")
		viper.SetDefault("STORAGE_SECRET_KEY", "")
		viper.SetDefault("STORAGE_BUCKET", "")
		viper.SetDefault("STORAGE_REGION", "us-east-1")
		viper.SetDefault("STORAGE_USE_SSL", true)
		viper.SetDefault("DRIVE_CREDENTIALS_JSON", "")
		viper.SetDefault("DRIVE_FOLDER_ID", "")
		viper.SetDefault("DRIVE_DOWNLOAD_DIR", "./data/downloads")

		// Read from environment variables
		viper.AutomaticEnv()

		instance = &Config{
			Server: ServerConfig{
				Port:           viper.GetString("SERVER_PORT"),
				Mode:           viper.GetString("SERVER_MODE"),
				ReadTimeout:    viper.GetInt("SERVER_READ_TIMEOUT"),
				WriteTimeout:   viper.GetInt("SERVER_WRITE_TIMEOUT"),
				AllowedOrigins: viper.GetStringSlice("SERVER_ALLOWED_ORIGINS"),
			},
			Database: DatabaseConfig{
				Host:     viper.GetString("DB_HOST"),
				Port:     viper.GetString("DB_PORT"),
				User:     viper.GetString("DB_USER"),
				Password: viper.GetString("DB_PASSWORD"),
				DBName:   viper.GetString("DB_NAME"),
				SSLMode:  viper.GetString("DB_SSLMODE"),
			},
			Cache: CacheConfig{
				Enabled:                  viper.GetBool("CACHE_ENABLED"),
				RedisURL:                 viper.GetString("REDIS_URL"),
				RedisHost:                viper.GetString("REDIS_HOST"),
				RedisPort:                viper.GetString("REDIS_PORT"),
				RedisPassword:            viper.GetString("REDIS_PASSWORD"),
				RedisDB:                  viper.GetInt("REDIS_DB"),
				RecommendationTTLSeconds: viper.GetInt("CACHE_RECOMMENDATION_TTL_SECONDS"),
			},
			Engine: EngineConfig{
				TopN:                viper.GetInt("ENGINE_TOP_N"),
				AnalyzerTimeout:     time.Duration(viper.GetInt("ENGINE_ANALYZER_TIMEOUT_SECONDS")) * time.Second,
				OverstockMultiple:   viper.GetFloat64("ENGINE_OVERSTOCK_MULTIPLE"),
				OverstockDepleteDay: viper.GetFloat64("ENGINE_OVERSTOCK_DEPLETE_DAYS"),
				SlowMoverCutoff:     viper.GetFloat64("ENGINE_SLOW_MOVER_CUTOFF"),
				SlowMoverWindowDays: viper.GetInt("ENGINE_SLOW_MOVER_WINDOW_DAYS"),
				ExpiryHorizonDays:   viper.GetInt("ENGINE_EXPIRY_HORIZON_DAYS"),
				GrowthFactor:        viper.GetFloat64("ENGINE_GROWTH_FACTOR"),
				SeasonalFactor:      viper.GetFloat64("ENGINE_SEASONAL_FACTOR"),
				SupplierScoreFloor:  viper.GetFloat64("ENGINE_SUPPLIER_SCORE_FLOOR"),
				SupplierLeadTimeMax: viper.GetInt("ENGINE_SUPPLIER_LEAD_TIME_MAX"),
			},
			Forecast: ForecastConfig{
				Enabled: viper.GetBool("FORECAST_ENABLED"),
				BaseURL: viper.GetString("FORECAST_BASE_URL"),
				Timeout: time.Duration(viper.GetInt("FORECAST_TIMEOUT_SECONDS")) * time.Second,
			},
			Storage: StorageConfig{
				Endpoint:  viper.GetString("STORAGE_ENDPOINT"),
				AccessKey: viper.GetString("STORAGE_ACCESS_KEY"),
				SecretKey: viper.GetString("STORAGE_SECRET_KEY"),
				Bucket:    viper.GetString("STORAGE_BUCKET"),
				Region:    viper.GetString("STORAGE_REGION"),
				UseSSL:    viper.GetBool("STORAGE_USE_SSL"),
			},
			Drive: DriveConfig{
				CredentialsJSON: viper.GetString("DRIVE_CREDENTIALS_JSON"),
				FolderID:        viper.GetString("DRIVE_FOLDER_ID"),
				DownloadDir:     viper.GetString("DRIVE_DOWNLOAD_DIR"),
			},
		}
	})

	return instance
}
