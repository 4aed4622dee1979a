package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/viper"

	sharedConfig "github.com/sahay-inc/sahay/internal/shared/config"
)

type Config struct {
	Server     sharedConfig.ServerConfig     `mapstructure:"server"`
	Database   sharedConfig.DatabaseConfig   `mapstructure:"database"`
	Logger     sharedConfig.LoggerConfig     `mapstructure:"logger"`
	Auth       sharedConfig.AuthConfig       `mapstructure:"auth"`
	Redis      sharedConfig.RedisConfig      `mapstructure:"redis"`
	Chain      sharedConfig.ChainConfig      `mapstructure:"chain"`
	Consent    sharedConfig.ConsentConfig    `mapstructure:"consent"`
	Analytics  sharedConfig.AnalyticsConfig  `mapstructure:"analytics"`
	SLA        sharedConfig.SLAConfig        `mapstructure:"sla"`
	Dashboard  sharedConfig.DashboardConfig  `mapstructure:"dashboard"`
	Email      sharedConfig.EmailConfig      `mapstructure:"email"`
	SMSGateway sharedConfig.SMSGatewayConfig `mapstructure:"sms_gateway"`
	Outbox     sharedConfig.OutboxConfig     `mapstructure:"outbox"`
	Storage    sharedConfig.StorageConfig    `mapstructure:"storage"`
	Triage     sharedConfig.TriageConfig     `mapstructure:"triage"`
}

var (
	appConfig   *Config
	appConfigMu sync.RWMutex
)

// Load loads configuration from file and environment variables
func Load(env string) (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../configs")
	viper.AddConfigPath("../../configs")

	viper.SetEnvPrefix("SAHAY")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// Defaults plus environment variables are a complete configuration;
		// a missing file is only fatal when a path was explicitly set.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if env != "" && env != "default" {
		viper.Set("server.mode", env)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	appConfigMu.Lock()
	appConfig = &config
	appConfigMu.Unlock()

	return &config, nil
}

// Get returns the loaded configuration
func Get() *Config {
	appConfigMu.RLock()
	defer appConfigMu.RUnlock()
	return appConfig
}

// setDefaults sets default configuration values
func setDefaults() {
	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.mode", "debug")
	viper.SetDefault("server.timezone", "Asia/Kolkata")
	viper.SetDefault("server.min_app_version", "")

	// Database defaults
	viper.SetDefault("database.driver", "mysql")
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 3306)
	viper.SetDefault("database.username", "root")
	viper.SetDefault("database.password", "password")
	viper.SetDefault("database.database", "sahay_dev")
	viper.SetDefault("database.max_idle_conns", 10)
	viper.SetDefault("database.max_open_conns", 100)
	viper.SetDefault("database.conn_max_lifetime", 60)

	// Logger defaults
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.format", "console")
	viper.SetDefault("logger.output_path", "stdout")

	// Auth defaults
	viper.SetDefault("auth.bcrypt_cost", 12)
	viper.SetDefault("auth.token_expiry_hours", 720)

	// Redis defaults
	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)

	// Anchor chain defaults
	viper.SetDefault("chain.enabled", false)
	viper.SetDefault("chain.gateway_url", "")
	viper.SetDefault("chain.contract_address", "")
	viper.SetDefault("chain.service_secret", "change-me-in-production")
	viper.SetDefault("chain.request_timeout_seconds", 10)
	viper.SetDefault("chain.retry_interval_seconds", 30)
	viper.SetDefault("chain.backoff_base_seconds", 5)
	viper.SetDefault("chain.max_backoff_seconds", 3600)
	viper.SetDefault("chain.max_attempts", 10)

	// Consent defaults
	viper.SetDefault("consent.document_version", "1")

	// Analytics defaults
	viper.SetDefault("analytics.k_threshold", 5)
	viper.SetDefault("analytics.time_bucket_minutes", 15)
	viper.SetDefault("analytics.buffer_flush_size", 100)
	viper.SetDefault("analytics.flush_interval_seconds", 300)

	// SLA defaults, hours per escalation level
	viper.SetDefault("sla.check_interval_seconds", 60)
	viper.SetDefault("sla.rules.medication_error.district", 24)
	viper.SetDefault("sla.rules.medication_error.state", 48)
	viper.SetDefault("sla.rules.medication_error.national", 72)
	viper.SetDefault("sla.rules.discrimination.district", 48)
	viper.SetDefault("sla.rules.discrimination.state", 96)
	viper.SetDefault("sla.rules.discrimination.national", 168)
	viper.SetDefault("sla.rules.service_quality.district", 72)
	viper.SetDefault("sla.rules.service_quality.state", 168)
	viper.SetDefault("sla.rules.service_quality.national", 336)
	viper.SetDefault("sla.rules.staff_behavior.district", 72)
	viper.SetDefault("sla.rules.staff_behavior.state", 168)
	viper.SetDefault("sla.rules.staff_behavior.national", 336)
	viper.SetDefault("sla.rules.facility_issues.district", 96)
	viper.SetDefault("sla.rules.facility_issues.state", 192)
	viper.SetDefault("sla.rules.facility_issues.national", 336)
	viper.SetDefault("sla.rules.billing_dispute.district", 120)
	viper.SetDefault("sla.rules.billing_dispute.state", 240)
	viper.SetDefault("sla.rules.billing_dispute.national", 336)
	viper.SetDefault("sla.rules.other.district", 168)
	viper.SetDefault("sla.rules.other.state", 240)
	viper.SetDefault("sla.rules.other.national", 336)

	// Dashboard defaults
	viper.SetDefault("dashboard.refresh_interval_seconds", 600)
	viper.SetDefault("dashboard.cache_ttl_seconds", 60)

	// Email defaults
	viper.SetDefault("email.smtp_host", "localhost")
	viper.SetDefault("email.smtp_port", 1025)
	viper.SetDefault("email.smtp_user", "")
	viper.SetDefault("email.smtp_password", "")
	viper.SetDefault("email.from_address", "noreply@sahay.local")
	viper.SetDefault("email.from_name", "SAHAY")

	// SMS gateway defaults (disabled until credentials are configured)
	viper.SetDefault("sms_gateway.enabled", false)
	viper.SetDefault("sms_gateway.base_url", "")
	viper.SetDefault("sms_gateway.token_url", "")
	viper.SetDefault("sms_gateway.client_id", "")
	viper.SetDefault("sms_gateway.client_secret", "")
	viper.SetDefault("sms_gateway.sender_id", "SAHAYG")

	// Outbox defaults
	viper.SetDefault("outbox.dispatch_interval_seconds", 30)
	viper.SetDefault("outbox.max_attempts", 5)

	// Storage defaults
	viper.SetDefault("storage.root", "./local_storage")

	// Triage defaults (empty path means embedded assets)
	viper.SetDefault("triage.assets_path", "")
}
