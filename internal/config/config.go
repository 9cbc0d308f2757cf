package config

import (
	"os"
	"strconv"
)

type Config struct {
	DBDriver      string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	RedisHost     string
	RedisPort     string
	SessionSecret string
	GinMode       string
	InternalToken string

	// ReferenceTimezone is the timezone whose local midnight resets the
	// daily task quota.
	ReferenceTimezone string

	// Monetary policy. Integer currency units, no subunits.
	ReferralBonusAmount int64
	BonusRedeemBlock    int64

	// Account deletion grace period and reaper cadence.
	DeleteGraceHours      int
	ReaperIntervalMinutes int
}

func Load() *Config {
	return &Config{
		DBDriver:      getEnv("DB_DRIVER", "mysql"),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "3306"),
		DBUser:        getEnv("DB_USER", "taskearn"),
		DBPassword:    getEnv("DB_PASSWORD", "taskearn"),
		DBName:        getEnv("DB_NAME", "taskearn"),
		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		SessionSecret: getEnv("SESSION_SECRET", "default-secret-key-change-me"),
		GinMode:       getEnv("GIN_MODE", "debug"),
		InternalToken: getEnv("INTERNAL_TOKEN", ""),

		ReferenceTimezone: getEnv("REFERENCE_TIMEZONE", "Asia/Tashkent"),

		ReferralBonusAmount: getEnvInt64("REFERRAL_BONUS_AMOUNT", 100),
		BonusRedeemBlock:    getEnvInt64("BONUS_REDEEM_BLOCK", 100),

		DeleteGraceHours:      getEnvInt("DELETE_GRACE_HOURS", 168),
		ReaperIntervalMinutes: getEnvInt("REAPER_INTERVAL_MINUTES", 60),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

func getEnvInt64(key string, defaultValue int64) int64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return defaultValue
	}
	return n
}
