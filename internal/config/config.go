package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	App       *AppConfig       `yaml:"app"`
	Firebase  *FirebaseConfig  `yaml:"firebase"`
	Directory *DirectoryConfig `yaml:"directory"`
	Database  *DatabaseConfig  `yaml:"database"`
	Redis     *RedisConfig     `yaml:"redis"`
	SMS       *SMSConfig       `yaml:"sms"`
	Push      *PushConfig      `yaml:"push"`
	Dispatch  *DispatchConfig  `yaml:"dispatch"`
	Security  *SecurityConfig  `yaml:"security"`
}

type AppConfig struct {
	Name            string        `yaml:"name"`
	Version         string        `yaml:"version"`
	Environment     string        `yaml:"environment"`
	Port            int           `yaml:"port"`
	Host            string        `yaml:"host"`
	Debug           bool          `yaml:"debug"`
	LogLevel        string        `yaml:"log_level"`
	LogFormat       string        `yaml:"log_format"`
	LogOutput       string        `yaml:"log_output"`
	Timezone        string        `yaml:"timezone"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type SecurityConfig struct {
	CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`
	TrustedProxies     []string `yaml:"trusted_proxies"`
}

func Load() (*Config, error) {
	config := &Config{
		App:       loadAppConfig(),
		Firebase:  loadFirebaseConfig(),
		Directory: loadDirectoryConfig(),
		Database:  loadDatabaseConfig(),
		Redis:     loadRedisConfig(),
		SMS:       loadSMSConfig(),
		Push:      loadPushConfig(),
		Dispatch:  loadDispatchConfig(),
		Security:  loadSecurityConfig(),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks the combinations that cannot work at runtime.
func (c *Config) Validate() error {
	switch c.Directory.Backend {
	case DirectoryBackendFirebase:
		if c.Firebase.DatabaseURL == "" {
			return fmt.Errorf("FIREBASE_DATABASE_URL is required for the firebase directory backend")
		}
	case DirectoryBackendMongo:
		if c.Database.URI == "" {
			return fmt.Errorf("MONGODB_URI is required for the mongodb directory backend")
		}
	default:
		return fmt.Errorf("unknown directory backend %q", c.Directory.Backend)
	}

	switch c.Push.Provider {
	case PushProviderFCM, PushProviderAPNS:
	default:
		return fmt.Errorf("unknown push provider %q", c.Push.Provider)
	}

	switch c.SMS.Provider {
	case SMSProviderTwilio, SMSProviderSNS, SMSProviderNone:
	default:
		return fmt.Errorf("unknown sms provider %q", c.SMS.Provider)
	}

	if c.Dispatch.MaxConcurrency < 1 {
		return fmt.Errorf("DISPATCH_MAX_CONCURRENCY must be at least 1")
	}
	if c.Dispatch.AttemptTimeout <= 0 {
		return fmt.Errorf("DISPATCH_ATTEMPT_TIMEOUT must be positive")
	}

	return nil
}

func loadAppConfig() *AppConfig {
	return &AppConfig{
		Name:            getEnv("APP_NAME", "Alertcast"),
		Version:         getEnv("APP_VERSION", "1.0.0"),
		Environment:     getEnv("APP_ENV", "development"),
		Port:            getEnvAsInt("PORT", getEnvAsInt("APP_PORT", 5000)),
		Host:            getEnv("APP_HOST", "0.0.0.0"),
		Debug:           getEnvAsBool("APP_DEBUG", false),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       getEnv("LOG_FORMAT", "json"),
		LogOutput:       getEnv("LOG_OUTPUT", "stdout"),
		Timezone:        getEnv("APP_TIMEZONE", "UTC"),
		ShutdownTimeout: getEnvAsDuration("APP_SHUTDOWN_TIMEOUT", 15*time.Second),
	}
}

func loadSecurityConfig() *SecurityConfig {
	return &SecurityConfig{
		CORSAllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"*"}),
		TrustedProxies:     getEnvAsSlice("TRUSTED_PROXIES", []string{}),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	}
	return defaultValue
}
