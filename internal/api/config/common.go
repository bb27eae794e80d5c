package config

// Config 配置主体
type Config struct {
	Server ServerConfig      `mapstructure:"server"`
	DB     DBConfig          `mapstructure:"database"`
	Redis  RedisConfig       `mapstructure:"redis"`
	MinIO  MinIOConfig       `mapstructure:"minio"`
	Google GoogleOAuthConfig `mapstructure:"google_oauth"`
}

// ServerConfig Server配置
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// DBConfig 数据库配置
type DBConfig struct {
	DSN            string `mapstructure:"dsn"`
	MigrationsPath string `mapstructure:"migrations_path"`
	MaxIdle        int    `mapstructure:"max_idle"`
	MaxOpen        int    `mapstructure:"max_open"`
	MaxLifetime    int    `mapstructure:"max_lifetime"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// MinIOConfig MinIO配置
type MinIOConfig struct {
	InternalEndpoint string `mapstructure:"internal_endpoint"`
	ExternalEndpoint string `mapstructure:"external_endpoint"`
	AccessKey        string `mapstructure:"access_key"`
	SecretKey        string `mapstructure:"secret_key"`
	Bucket           string `mapstructure:"bucket"`
	InternalUseSSL   bool   `mapstructure:"internal_use_ssl"`
}

// GoogleOAuthConfig Google OAuth 登录配置
type GoogleOAuthConfig struct {
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
	RedirectURI  string `mapstructure:"redirect_uri"`
}
