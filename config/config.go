package config

import (
	"os"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// EnvironmentVariables is the full set of configuration knobs, parsed once
// at startup from the process environment.
type EnvironmentVariables struct {
	GO_ENV string `env:"GO_ENV" envDefault:"development"`
	PORT   int    `env:"PORT" envDefault:"8000"`

	DB_HOST      string `env:"DB_HOST" envDefault:"localhost"`
	DB_PORT      string `env:"DB_PORT" envDefault:"5432"`
	DB_USER_NAME string `env:"DB_USER_NAME" envDefault:"postgres"`
	DB_PASSWORD  string `env:"DB_PASSWORD" envDefault:"postgres"`
	DB_NAME      string `env:"DB_NAME" envDefault:"creoleap"`
	DB_SSL_MODE  string `env:"DB_SSL_MODE" envDefault:"disable"`

	REDIS_URL string `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`

	TOKEN_SECRET_KEY        string `env:"TOKEN_SECRET_KEY,required"`
	TOKEN_SUPERADMIN_SECRET string `env:"TOKEN_SUPERADMIN_SECRET,required"`
	TOKEN_ADMIN_SECRET      string `env:"TOKEN_ADMIN_SECRET,required"`

	ALLOWED_ORIGINS string `env:"ALLOWED_ORIGINS" envDefault:"http://localhost:3000,http://localhost:3001"`
}

// LoadENV reads the .env file in development. In production the variables
// come from the real environment and the file is skipped.
func LoadENV() error {
	goEnv := os.Getenv("GO_ENV")
	if goEnv == "" || goEnv == "development" {
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}

// Get parses the environment into an EnvironmentVariables value
func Get() (*EnvironmentVariables, error) {
	cfg := &EnvironmentVariables{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// IsProduction reports whether the server runs with production settings
func (e *EnvironmentVariables) IsProduction() bool {
	return e.GO_ENV == "production"
}
