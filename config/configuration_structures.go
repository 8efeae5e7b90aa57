package config

type ServerConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	BasePath string `yaml:"base_path"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type JWTConfig struct {
	SecretKey             string `yaml:"secret_key"`
	Algorithm             string `yaml:"algorithm"`
	AccessTokenTTLMinutes int    `yaml:"access_token_ttl_minutes"`
	RefreshTokenTTLDays   int    `yaml:"refresh_token_ttl_days"`
}

// RateLimitConfig : емкость и окно (в секундах) для каждой области лимитирования
type RateLimitConfig struct {
	DefaultLimit  int `yaml:"default_limit"`
	DefaultWindow int `yaml:"default_window"`
	LoginLimit    int `yaml:"login_limit"`
	LoginWindow   int `yaml:"login_window"`
}

type CacheConfig struct {
	UserTTLSeconds int `yaml:"user_ttl_seconds"`
}
