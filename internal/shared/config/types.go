package config

import "fmt"

type ServerConfig struct {
	Host           string   `mapstructure:"host"`
	Port           int      `mapstructure:"port"`
	Mode           string   `mapstructure:"mode"`
	BaseURL        string   `mapstructure:"base_url"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	Timezone       string   `mapstructure:"timezone"`
	MinAppVersion  string   `mapstructure:"min_app_version"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type DatabaseConfig struct {
	Driver          string `mapstructure:"driver"`
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"database"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

func (d *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.Username, d.Password, d.Host, d.Port, d.Database)
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type AuthConfig struct {
	BcryptCost       int `mapstructure:"bcrypt_cost"`
	TokenExpiryHours int `mapstructure:"token_expiry_hours"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (r *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// ChainConfig configures the anchor gateway client.
type ChainConfig struct {
	Enabled         bool   `mapstructure:"enabled"`
	GatewayURL      string `mapstructure:"gateway_url"`
	ContractAddress string `mapstructure:"contract_address"`
	ServiceSecret   string `mapstructure:"service_secret"`
	RequestTimeout  int    `mapstructure:"request_timeout_seconds"`
	RetryInterval   int    `mapstructure:"retry_interval_seconds"`
	BackoffBase     int    `mapstructure:"backoff_base_seconds"`
	MaxBackoff      int    `mapstructure:"max_backoff_seconds"`
	MaxAttempts     int    `mapstructure:"max_attempts"`
}

// ConsentConfig carries the active consent document version. Grants recorded
// under an older document version do not count as granted.
type ConsentConfig struct {
	DocumentVersion string `mapstructure:"document_version"`
}

// AnalyticsConfig tunes the de-identified aggregation pipeline.
type AnalyticsConfig struct {
	KThreshold           int `mapstructure:"k_threshold"`
	TimeBucketMinutes    int `mapstructure:"time_bucket_minutes"`
	BufferFlushSize      int `mapstructure:"buffer_flush_size"`
	FlushIntervalSeconds int `mapstructure:"flush_interval_seconds"`
}

// SLAConfig drives complaint escalation. Rules is keyed by complaint
// category; each entry holds hours per escalation level.
type SLAConfig struct {
	CheckIntervalSeconds int                    `mapstructure:"check_interval_seconds"`
	Rules                map[string]SLARuleConf `mapstructure:"rules"`
}

type SLARuleConf struct {
	District int `mapstructure:"district"`
	State    int `mapstructure:"state"`
	National int `mapstructure:"national"`
}

type DashboardConfig struct {
	RefreshIntervalSeconds int `mapstructure:"refresh_interval_seconds"`
	CacheTTLSeconds        int `mapstructure:"cache_ttl_seconds"`
}

type EmailConfig struct {
	SMTPHost     string `mapstructure:"smtp_host"`
	SMTPPort     int    `mapstructure:"smtp_port"`
	SMTPUser     string `mapstructure:"smtp_user"`
	SMTPPassword string `mapstructure:"smtp_password"`
	FromAddress  string `mapstructure:"from_address"`
	FromName     string `mapstructure:"from_name"`
}

// SMSGatewayConfig configures the OAuth2 client-credentials SMS provider.
type SMSGatewayConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	BaseURL      string `mapstructure:"base_url"`
	TokenURL     string `mapstructure:"token_url"`
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
	SenderID     string `mapstructure:"sender_id"`
}

type OutboxConfig struct {
	DispatchIntervalSeconds int `mapstructure:"dispatch_interval_seconds"`
	MaxAttempts             int `mapstructure:"max_attempts"`
}

// StorageConfig configures the evidence object store. EncryptionKey is a
// 64-character hex string decoding to the 32-byte at-rest cipher key.
type StorageConfig struct {
	Root          string `mapstructure:"root"`
	EncryptionKey string `mapstructure:"encryption_key"`
}

// TriageConfig points at an optional directory holding rulebook.yaml and
// guidance.yaml overrides; when empty the embedded copies are used.
type TriageConfig struct {
	AssetsPath string `mapstructure:"assets_path"`
}
