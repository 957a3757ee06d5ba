package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server struct {
		Addr string `mapstructure:"addr"`
	} `mapstructure:"server"`
	Database struct {
		Host     string `mapstructure:"host"`
		Port     string `mapstructure:"port"`
		User     string `mapstructure:"user"`
		Password string `mapstructure:"password"`
		Name     string `mapstructure:"name"`
		SSLMode  string `mapstructure:"sslmode"`
	} `mapstructure:"database"`
	SMS struct {
		Username string `mapstructure:"username"`
		APIKey   string `mapstructure:"api_key"`
		URL      string `mapstructure:"url"`
		SenderID string `mapstructure:"sender_id"`
	} `mapstructure:"sms"`
	Email struct {
		AWSAccessKeyID     string `mapstructure:"aws_access_key_id"`
		AWSSecretAccessKey string `mapstructure:"aws_secret_access_key"`
		AWSRegion          string `mapstructure:"aws_region"`
		SenderEmail        string `mapstructure:"sender_email"`
	} `mapstructure:"email"`
}

// Load reads configuration from config.yml, with environment variables
// (SERVER_ADDR, DATABASE_HOST, ...) overriding file values and defaults.
func Load() (*Config, error) {
	viper.AddConfigPath(".")
	viper.AddConfigPath("./configs")
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetDefault("server.addr", ":8080")
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", "5432")
	viper.SetDefault("database.user", "test")
	viper.SetDefault("database.password", "test")
	viper.SetDefault("database.name", "ecommerce")
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("sms.url", "https://api.sandbox.africastalking.com/version1/messaging")
	viper.SetDefault("sms.sender_id", "AFRICASTKNG")
	viper.SetDefault("email.aws_region", "us-east-1")

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// DSN builds the Postgres connection string from the database section.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.Database.Host,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.Port,
		c.Database.SSLMode,
	)
}
