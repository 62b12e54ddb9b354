package config

import (
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server   Server
	Database Database
	Auth     Auth
	Session  Session
	Exam     Exam
}

type Server struct {
	Port string
}

type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type Auth struct {
	// SigningKey verifies the HS256 bearer tokens issued by the identity
	// provider in front of this service.
	SigningKey string
}

type Session struct {
	TTL time.Duration
}

type Exam struct {
	// DefaultPassPercent applies when an exam has no pass_percent of its own.
	DefaultPassPercent float64
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SESSION_TTL_MINUTES", 240)
	viper.SetDefault("EXAM_DEFAULT_PASS_PERCENT", 50.0)

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	var config Config

	config.Server.Port = viper.GetString("SERVER_PORT")
	config.Database.Host = viper.GetString("DATABASE_HOST")
	config.Database.Port = viper.GetString("DATABASE_PORT")
	config.Database.User = viper.GetString("DATABASE_USER")
	config.Database.Password = viper.GetString("DATABASE_PASSWORD")
	config.Database.Name = viper.GetString("DATABASE_NAME")

	config.Auth.SigningKey = viper.GetString("AUTH_SIGNING_KEY")
	config.Session.TTL = time.Duration(viper.GetInt("SESSION_TTL_MINUTES")) * time.Minute
	config.Exam.DefaultPassPercent = viper.GetFloat64("EXAM_DEFAULT_PASS_PERCENT")

	log.Info().Str("port", config.Server.Port).Str("db_host", config.Database.Host).Msg("Config loaded")
	return &config, nil
}
