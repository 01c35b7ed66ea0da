package config

import "os"

type Config struct {
	Port                 string
	InspectionDBHost     string
	InspectionDBPort     string
	SessionCacheHost     string
	SessionCachePort     string
	JaegerAddress        string
	LogFile              string
	CasbinModelPath      string
	CasbinPolicyPath     string
	NotificationsEnabled bool
}

func NewConfig() *Config {
	return &Config{
		Port:                 os.Getenv("INSPECTION_SERVICE_PORT"),
		InspectionDBHost:     os.Getenv("INSPECTION_DB_HOST"),
		InspectionDBPort:     os.Getenv("INSPECTION_DB_PORT"),
		SessionCacheHost:     os.Getenv("SESSION_CACHE_HOST"),
		SessionCachePort:     os.Getenv("SESSION_CACHE_PORT"),
		JaegerAddress:        os.Getenv("JAEGER_ADDRESS"),
		LogFile:              os.Getenv("LOG_FILE"),
		CasbinModelPath:      "./rbac_model.conf",
		CasbinPolicyPath:     "./policy.csv",
		NotificationsEnabled: os.Getenv("SMTP_AUTH_MAIL") != "",
	}
}
