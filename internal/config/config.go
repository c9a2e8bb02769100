package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/feral-file/ff-raffle/internal/domain"
)

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug     bool   `mapstructure:"debug"`
	SentryDSN string `mapstructure:"sentry_dsn"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`     // Maximum number of open connections to the database
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`     // Maximum number of idle connections in the pool
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`  // Maximum amount of time a connection may be reused (e.g., "5m", "1h")
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"` // Maximum amount of time a connection may be idle (e.g., "10m", "30m")
}

// NATSConfig holds NATS JetStream configuration
type NATSConfig struct {
	URL            string        `mapstructure:"url"`
	StreamName     string        `mapstructure:"stream_name"`
	ConsumerName   string        `mapstructure:"consumer_name"`
	MaxReconnects  int           `mapstructure:"max_reconnects"`
	ReconnectWait  time.Duration `mapstructure:"reconnect_wait"`
	ConnectionName string        `mapstructure:"connection_name"`
	AckWait        time.Duration `mapstructure:"ack_wait"`
	MaxDeliver     int           `mapstructure:"max_deliver"`
}

// EthereumConfig holds the contract gateway configuration
type EthereumConfig struct {
	RPCURL         string `mapstructure:"rpc_url"`
	ChainID        int64  `mapstructure:"chain_id"`
	FactoryAddress string `mapstructure:"factory_address"`
	TokenAddress   string `mapstructure:"token_address"`
	// PrivateKey is the hex-encoded operator key. Only worker-core needs it.
	PrivateKey          string        `mapstructure:"private_key"`
	ReceiptTimeout      time.Duration `mapstructure:"receipt_timeout"`
	ReceiptPollInterval time.Duration `mapstructure:"receipt_poll_interval"`
	GasLimitMultiplier  float64       `mapstructure:"gas_limit_multiplier"`
}

// TemporalConfig holds Temporal configuration
type TemporalConfig struct {
	HostPort                           string  `mapstructure:"host_port"`
	Namespace                          string  `mapstructure:"namespace"`
	RaffleTaskQueue                    string  `mapstructure:"raffle_task_queue"`
	MaxConcurrentActivityExecutionSize int     `mapstructure:"max_concurrent_activity_execution_size"`
	WorkerActivitiesPerSecond          float64 `mapstructure:"worker_activities_per_second"`
	MaxConcurrentActivityTaskPollers   int     `mapstructure:"max_concurrent_activity_task_pollers"`
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`  // in seconds
	WriteTimeout int    `mapstructure:"write_timeout"` // in seconds
	IdleTimeout  int    `mapstructure:"idle_timeout"`  // in seconds
}

// AuthConfig holds authentication configuration
type AuthConfig struct {
	JWTPublicKey string   `mapstructure:"jwt_public_key"`
	APIKeys      []string `mapstructure:"api_keys"`
}

// WebhookConfig holds the indexer webhook configuration
type WebhookConfig struct {
	Secret string `mapstructure:"secret"`
}

// CacheConfig holds read-model cache TTLs
type CacheConfig struct {
	RafflesTTL      time.Duration `mapstructure:"raffles_ttl"`
	RaffleTTL       time.Duration `mapstructure:"raffle_ttl"`
	WinnersTTL      time.Duration `mapstructure:"winners_ttl"`
	VerificationTTL time.Duration `mapstructure:"verification_ttl"`
}

// RateLimitConfig holds rate limit configuration of public routes
type RateLimitConfig struct {
	RequestsPerSecond int `mapstructure:"requests_per_second"`
	Burst             int `mapstructure:"burst"`
}

// RaffleConfig holds the raffle lifecycle configuration
type RaffleConfig struct {
	RevealDelay    time.Duration `mapstructure:"reveal_delay"`
	ActivationLead time.Duration `mapstructure:"activation_lead"`
	Types          []string      `mapstructure:"types"`
}

// EnabledTypes parses the configured raffle types
func (c RaffleConfig) EnabledTypes() ([]domain.RaffleType, error) {
	if len(c.Types) == 0 {
		return domain.AllRaffleTypes, nil
	}

	types := make([]domain.RaffleType, 0, len(c.Types))
	for _, s := range c.Types {
		t, err := domain.ParseRaffleType(s)
		if err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, nil
}

// ReconcilerConfig holds configuration for the periodic reconciler
type ReconcilerConfig struct {
	Interval   time.Duration `mapstructure:"interval"`
	PoolSize   int           `mapstructure:"pool_size"`
	MaxRetries uint64        `mapstructure:"max_retries"`
}

// EventBridgeConfig holds configuration for event-bridge
type EventBridgeConfig struct {
	BaseConfig `mapstructure:",squash"`
	NATS       NATSConfig     `mapstructure:"nats"`
	Temporal   TemporalConfig `mapstructure:"temporal"`
}

// WorkerCoreConfig holds configuration for worker-core
type WorkerCoreConfig struct {
	BaseConfig `mapstructure:",squash"`
	Database   DatabaseConfig `mapstructure:"database"`
	Temporal   TemporalConfig `mapstructure:"temporal"`
	Ethereum   EthereumConfig `mapstructure:"ethereum"`
	Redis      RedisConfig    `mapstructure:"redis"`
	Raffle     RaffleConfig   `mapstructure:"raffle"`
}

// APIConfig holds configuration for API server
type APIConfig struct {
	BaseConfig `mapstructure:",squash"`
	Server     ServerConfig    `mapstructure:"server"`
	Database   DatabaseConfig  `mapstructure:"database"`
	Temporal   TemporalConfig  `mapstructure:"temporal"`
	NATS       NATSConfig      `mapstructure:"nats"`
	Redis      RedisConfig     `mapstructure:"redis"`
	Ethereum   EthereumConfig  `mapstructure:"ethereum"`
	Auth       AuthConfig      `mapstructure:"auth"`
	Webhook    WebhookConfig   `mapstructure:"webhook"`
	Cache      CacheConfig     `mapstructure:"cache"`
	RateLimit  RateLimitConfig `mapstructure:"rate_limit"`
	Raffle     RaffleConfig    `mapstructure:"raffle"`
}

// SweeperConfig holds configuration for the sweeper program
type SweeperConfig struct {
	BaseConfig `mapstructure:",squash"`
	Temporal   TemporalConfig   `mapstructure:"temporal"`
	Raffle     RaffleConfig     `mapstructure:"raffle"`
	Reconciler ReconcilerConfig `mapstructure:"reconciler"`
}

// LoadEventBridgeConfig loads configuration for event-bridge
func LoadEventBridgeConfig(configFile string, envPath string) (*EventBridgeConfig, error) {
	v := configureViper("event-bridge", configFile, envPath)

	// Set defaults
	setNATSDefaults(v)
	setTemporalDefaults(v)
	v.SetDefault("nats.consumer_name", "raffle-event-bridge")
	v.SetDefault("nats.ack_wait", "30s")
	v.SetDefault("nats.max_deliver", 5)

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var config EventBridgeConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if config.NATS.URL == "" {
		return nil, errors.New("nats.url is required")
	}

	return &config, nil
}

// LoadWorkerCoreConfig loads configuration for worker-core
func LoadWorkerCoreConfig(configFile string, envPath string) (*WorkerCoreConfig, error) {
	v := configureViper("worker-core", configFile, envPath)

	// Set defaults
	setDatabaseDefaults(v)
	setTemporalDefaults(v)
	setEthereumDefaults(v)
	setRaffleDefaults(v)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("temporal.max_concurrent_activity_execution_size", 20)
	v.SetDefault("temporal.worker_activities_per_second", 20)
	v.SetDefault("temporal.max_concurrent_activity_task_pollers", 4)

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var config WorkerCoreConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate required fields
	if err := config.Database.validate(); err != nil {
		return nil, err
	}
	if err := config.Ethereum.validate(); err != nil {
		return nil, err
	}
	if config.Ethereum.PrivateKey == "" {
		return nil, errors.New("ethereum.private_key is required")
	}
	if _, err := config.Raffle.EnabledTypes(); err != nil {
		return nil, err
	}

	return &config, nil
}

// LoadAPIConfig loads configuration for API server
func LoadAPIConfig(configFile string, envPath string) (*APIConfig, error) {
	v := configureViper("api", configFile, envPath)

	// Set defaults
	v.SetDefault("debug", false)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 10)
	v.SetDefault("server.idle_timeout", 120)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("cache.raffles_ttl", "10s")
	v.SetDefault("cache.raffle_ttl", "10s")
	v.SetDefault("cache.winners_ttl", "30s")
	v.SetDefault("cache.verification_ttl", "1h")
	v.SetDefault("rate_limit.requests_per_second", 20)
	v.SetDefault("rate_limit.burst", 40)
	setDatabaseDefaults(v)
	setTemporalDefaults(v)
	setNATSDefaults(v)
	setEthereumDefaults(v)
	setRaffleDefaults(v)

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var config APIConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate required fields
	if err := config.Database.validate(); err != nil {
		return nil, err
	}
	if err := config.Ethereum.validate(); err != nil {
		return nil, err
	}
	if config.Webhook.Secret == "" {
		return nil, errors.New("webhook.secret is required")
	}
	if config.NATS.URL == "" {
		return nil, errors.New("nats.url is required")
	}

	return &config, nil
}

// LoadSweeperConfig loads configuration for the sweeper program
func LoadSweeperConfig(configFile string, envPath string) (*SweeperConfig, error) {
	v := configureViper("sweeper", configFile, envPath)

	// Set defaults
	setTemporalDefaults(v)
	setRaffleDefaults(v)
	v.SetDefault("reconciler.interval", "5m")
	v.SetDefault("reconciler.pool_size", 3)
	v.SetDefault("reconciler.max_retries", 3)

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var cfg SweeperConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Reconciler.Interval <= 0 {
		return nil, errors.New("reconciler.interval must be positive")
	}
	if _, err := cfg.Raffle.EnabledTypes(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDatabaseDefaults(v *viper.Viper) {
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 20)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "1h")
	v.SetDefault("database.conn_max_idle_time", "10m")
}

func setNATSDefaults(v *viper.Viper) {
	v.SetDefault("nats.max_reconnects", 10)
	v.SetDefault("nats.reconnect_wait", "2s")
	v.SetDefault("nats.stream_name", "RAFFLE_EVENTS")
}

func setTemporalDefaults(v *viper.Viper) {
	v.SetDefault("temporal.host_port", "localhost:7233")
	v.SetDefault("temporal.namespace", "default")
	v.SetDefault("temporal.raffle_task_queue", "raffle-lifecycle")
}

func setEthereumDefaults(v *viper.Viper) {
	v.SetDefault("ethereum.receipt_timeout", "3m")
	v.SetDefault("ethereum.receipt_poll_interval", "2s")
	v.SetDefault("ethereum.gas_limit_multiplier", 1.2)
}

func setRaffleDefaults(v *viper.Viper) {
	v.SetDefault("raffle.reveal_delay", domain.DefaultRevealDelay.String())
	v.SetDefault("raffle.activation_lead", domain.ActivationLead.String())
}

// readConfig reads the config file, tolerating its absence
func readConfig(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist) {
			// Config file not found, use environment variables
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}

func (c DatabaseConfig) validate() error {
	if c.Host == "" {
		return errors.New("database.host is required")
	}
	if c.DBName == "" {
		return errors.New("database.dbname is required")
	}
	return nil
}

func (c EthereumConfig) validate() error {
	if c.RPCURL == "" {
		return errors.New("ethereum.rpc_url is required")
	}
	if c.FactoryAddress == "" {
		return errors.New("ethereum.factory_address is required")
	}
	return nil
}

// configureViper returns a viper instance with the config file and environment variables set
func configureViper(service string, configFile string, envPath string) *viper.Viper {
	v := viper.New()

	// Load environment variables
	loadEnv(envPath, service)

	// Set config file
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(fmt.Sprintf("cmd/%s/", service))
		v.AddConfigPath("config/")
	}

	// Set environment variables
	v.SetEnvPrefix("FF_RAFFLE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Explicitly bind all environment variables
	bindAllEnvVars(v)
	return v
}

// bindAllEnvVars explicitly binds all possible environment variables
// This is required for viper to map env vars to config struct fields when no config file exists
func bindAllEnvVars(v *viper.Viper) {
	keys := []string{
		"debug",
		"sentry_dsn",
		// Database
		"database.host",
		"database.port",
		"database.user",
		"database.password",
		"database.dbname",
		"database.sslmode",
		"database.max_open_conns",
		"database.max_idle_conns",
		"database.conn_max_lifetime",
		"database.conn_max_idle_time",
		// NATS
		"nats.url",
		"nats.stream_name",
		"nats.consumer_name",
		"nats.max_reconnects",
		"nats.reconnect_wait",
		"nats.connection_name",
		"nats.ack_wait",
		"nats.max_deliver",
		// Ethereum
		"ethereum.rpc_url",
		"ethereum.chain_id",
		"ethereum.factory_address",
		"ethereum.token_address",
		"ethereum.private_key",
		"ethereum.receipt_timeout",
		"ethereum.receipt_poll_interval",
		"ethereum.gas_limit_multiplier",
		// Temporal
		"temporal.host_port",
		"temporal.namespace",
		"temporal.raffle_task_queue",
		"temporal.max_concurrent_activity_execution_size",
		"temporal.worker_activities_per_second",
		"temporal.max_concurrent_activity_task_pollers",
		// Redis
		"redis.addr",
		"redis.password",
		"redis.db",
		// Server
		"server.host",
		"server.port",
		"server.read_timeout",
		"server.write_timeout",
		"server.idle_timeout",
		// Auth
		"auth.jwt_public_key",
		"auth.api_keys",
		// Webhook
		"webhook.secret",
		// Cache
		"cache.raffles_ttl",
		"cache.raffle_ttl",
		"cache.winners_ttl",
		"cache.verification_ttl",
		// Rate limit
		"rate_limit.requests_per_second",
		"rate_limit.burst",
		// Raffle
		"raffle.reveal_delay",
		"raffle.activation_lead",
		"raffle.types",
		// Reconciler
		"reconciler.interval",
		"reconciler.pool_size",
		"reconciler.max_retries",
	}

	for _, key := range keys {
		_ = v.BindEnv(key)
	}
}

// loadEnv loads environment variables from the config directory
func loadEnv(envPath string, service string) {
	// Always try shared base first, then local, then optional per-service local.
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	if envPath == "" {
		envPath = "config/"
	}

	for _, envFile := range envFiles {
		candidate := filepath.Join(envPath, envFile)
		_ = godotenv.Overload(candidate) // Overload lets later files override earlier ones
	}
}

// ChdirRepoRoot changes the current working directory to the repository root
func ChdirRepoRoot() {
	cwd, _ := os.Getwd()
	for range 5 {
		if _, err := os.Stat(filepath.Join(cwd, "config")); err == nil {
			_ = os.Chdir(cwd)
			return
		}
		cwd = filepath.Dir(cwd)
	}
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}
