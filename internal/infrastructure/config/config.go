package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Mongo     MongoConfig
	Bootstrap BootstrapConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=autenticacao"`
}

// BootstrapConfig controls first-run seeding. When AdminPassword is empty
// no administrator account is created.
type BootstrapConfig struct {
	AdminUsername   string `env:"BOOTSTRAP_ADMIN_USERNAME,   default=admin"`
	AdminEmail      string `env:"BOOTSTRAP_ADMIN_EMAIL,      default=admin@localhost"`
	AdminPassword   string `env:"BOOTSTRAP_ADMIN_PASSWORD"`
	AdminFullName   string `env:"BOOTSTRAP_ADMIN_FULL_NAME,  default=Administrador"`
	AdminDepartment string `env:"BOOTSTRAP_ADMIN_DEPARTMENT, default=TI"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
