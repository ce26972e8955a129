package config

import "time"

// Engagement definition engagement_service YAML structure
type Engagement struct {
	Port      string `mapstructure:"port"`
	IP        string `mapstructure:"ip"`
	JWTSecret string `mapstructure:"jwt_secret"`

	MongoDB    DatabaseConfig   `mapstructure:"mongo"`
	Redis      RedisConfig      `mapstructure:"redis"`
	RabbitMQ   RabbitMQConfig   `mapstructure:"rabbitmq"`
	KafKa      KafkaConfig      `mapstructure:"kafka"`
	MinIO      MinIOConfig      `mapstructure:"minio"`
	Pagination PaginationConfig `mapstructure:"pagination"`
}

// CleanupWorker definition cleanup_worker YAML structure
type CleanupWorker struct {
	MongoDB  DatabaseConfig `mapstructure:"mongo"`
	RabbitMQ RabbitMQConfig `mapstructure:"rabbitmq"`
	// SweepInterval minutes between orphan like sweeps, 0 disables the periodic sweep
	SweepInterval time.Duration `mapstructure:"sweep_interval"`
}

// RedisConfig definition redis setting
type RedisConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Addr    string `mapstructure:"addr"`
	RedisDB int    `mapstructure:"redis_db"`
}

// DatabaseConfig definition db setting
type DatabaseConfig struct {
	Host          string `mapstructure:"host"`
	Port          int    `mapstructure:"port"`
	User          string `mapstructure:"user"`
	Password      string `mapstructure:"password"`
	Database      string `mapstructure:"database"`
	RetryInterval int    `mapstructure:"retry_interval"`
	RetryCount    int    `mapstructure:"retry_count"`
}

// RabbitMQConfig definition rabbitmq setting
type RabbitMQConfig struct {
	Enabled       bool          `mapstructure:"enabled"`
	IP            string        `mapstructure:"ip"`
	Port          string        `mapstructure:"port"`
	User          string        `mapstructure:"user"`
	Password      string        `mapstructure:"password"`
	RetryCount    int           `mapstructure:"retry_count"`
	RetryInterval time.Duration `mapstructure:"retry_interval"`
}

// KafkaConfig definition kafka setting
type KafkaConfig struct {
	Enabled       bool          `mapstructure:"enabled"`
	Brokers       []string      `mapstructure:"brokers"`
	Topic         string        `mapstructure:"topic"`
	RetryCount    int           `mapstructure:"retry_count"`
	RetryInterval time.Duration `mapstructure:"retry_interval"`
}

// MinIOConfig definition minio setting
type MinIOConfig struct {
	Enabled       bool          `mapstructure:"enabled"`
	Host          string        `mapstructure:"host"`
	Port          int           `mapstructure:"port"`
	User          string        `mapstructure:"user"`
	Password      string        `mapstructure:"password"`
	BucketName    string        `mapstructure:"bucket_name"`
	UseSSL        bool          `mapstructure:"use_ssl"`
	PresignExpiry time.Duration `mapstructure:"presign_expiry"` // minutes
	RetryCount    int           `mapstructure:"retry_count"`
	RetryInterval time.Duration `mapstructure:"retry_interval"`
}

// PaginationConfig definition comment feed paging bounds, max_limit <= 0 uses 100
type PaginationConfig struct {
	MaxLimit int `mapstructure:"max_limit"`
}
