package core

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

type (
	Config struct {
		Env            string // DEV (local; default), TEST, PROD
		Build          string
		Debug          bool
		TestMode       bool
		AppName        string
		SecretKey      string
		RollbarToken   string
		ReminderSecret string

		Server   ServerConfig
		Database DatabaseConfig
		Telegram TelegramConfig
		Sendgrid SendgridConfig
		Schedule ScheduleConfig
	}

	ServerConfig struct {
		Host               string
		Port               string
		ShutdownTimeout    time.Duration
		JWTExpirationDelta time.Duration
		SessionCookie      string
		DisableReqLogs     bool
	}

	DatabaseConfig struct {
		Engine        string // postgres | mongo | inmem
		Host          string
		Port          string
		Name          string
		User          string
		Password      string
		AdminUser     string
		AdminPassword string
		DisableTLS    bool
		MongoURI      string
	}

	TelegramConfig struct {
		Token       string
		ChatID      string
		APIEndpoint string
		Timeout     time.Duration
	}

	SendgridConfig struct {
		APIKey    string
		FromEmail string
		ToEmail   string
	}

	ScheduleConfig struct {
		HourOffset   int
		Timezone     string
		Lookahead    time.Duration
		ReminderCron string
	}
)

func (s ServerConfig) Address() string {
	return net.JoinHostPort(s.Host, s.Port)
}

func (d DatabaseConfig) Address() string {
	return net.JoinHostPort(d.Host, d.Port)
}

// NewConfig reads the application configuration from the environment.
// Variables are prefixed with the current ENV, eg. `PROD_TELEGRAM_TOKEN`.
func NewConfig() *Config {
	conf, err := LoadConfig(os.Getenv("ENV"), "")
	if err != nil {
		panic(err)
	}
	return conf
}

// LoadConfig builds a Config for env. When dir is empty, `config/.env.<env>` is looked up in the working directory.
func LoadConfig(env, dir string) (*Config, error) {
	env = strings.ToUpper(strings.TrimSpace(env))
	if env == "" {
		env = "DEV"
	}

	v := viper.New()
	v.SetTypeByDefaultValue(true)
	setDefaults(v, env)
	v.SetEnvPrefix(env)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// load .env if it exists (ignore if it does not)
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "getting working directory")
		}
		dir = filepath.Join(wd, "config")
	}
	dotEnvPath := filepath.Join(dir, ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			return nil, errors.Wrap(err, fmt.Sprintf("loading %s", dotEnvPath))
		}
	} else if !os.IsNotExist(err) {
		return nil, errors.Wrap(err, fmt.Sprintf("checking %s", dotEnvPath))
	}
	v.AutomaticEnv()

	conf := &Config{
		Env:            env,
		Build:          v.GetString("build"),
		Debug:          v.GetBool("debug"),
		TestMode:       v.GetBool("testMode"),
		AppName:        v.GetString("appName"),
		SecretKey:      v.GetString("secretKey"),
		RollbarToken:   v.GetString("rollbarToken"),
		ReminderSecret: v.GetString("reminderSecret"),
		Server: ServerConfig{
			Host:               v.GetString("server.host"),
			Port:               v.GetString("server.port"),
			ShutdownTimeout:    v.GetDuration("server.shutdownTimeout"),
			JWTExpirationDelta: v.GetDuration("server.jwtExpirationDelta"),
			SessionCookie:      v.GetString("server.sessionCookie"),
			DisableReqLogs:     v.GetBool("server.disableReqLogs"),
		},
		Database: DatabaseConfig{
			Engine:        strings.ToLower(v.GetString("database.engine")),
			Host:          v.GetString("database.host"),
			Port:          v.GetString("database.port"),
			Name:          v.GetString("database.name"),
			User:          v.GetString("database.user"),
			Password:      v.GetString("database.password"),
			AdminUser:     v.GetString("database.adminUser"),
			AdminPassword: v.GetString("database.adminPassword"),
			DisableTLS:    v.GetBool("database.disableTLS"),
			MongoURI:      v.GetString("database.mongoURI"),
		},
		Telegram: TelegramConfig{
			Token:       v.GetString("telegram.token"),
			ChatID:      v.GetString("telegram.chatID"),
			APIEndpoint: v.GetString("telegram.apiEndpoint"),
			Timeout:     v.GetDuration("telegram.timeout"),
		},
		Sendgrid: SendgridConfig{
			APIKey:    v.GetString("sendgrid.apiKey"),
			FromEmail: v.GetString("sendgrid.fromEmail"),
			ToEmail:   v.GetString("sendgrid.toEmail"),
		},
		Schedule: ScheduleConfig{
			HourOffset:   v.GetInt("schedule.hourOffset"),
			Timezone:     v.GetString("schedule.timezone"),
			Lookahead:    v.GetDuration("schedule.lookahead"),
			ReminderCron: v.GetString("schedule.reminderCron"),
		},
	}
	return conf, nil
}

func setDefaults(v *viper.Viper, env string) {
	v.SetDefault("build", "develop")
	v.SetDefault("debug", env == "DEV")
	v.SetDefault("testMode", env == "TEST")
	v.SetDefault("appName", "Uni Diary")
	v.SetDefault("secretKey", "dev-2k$h9v!q3z+r8c=w4p^m7x(e1n)u6b")
	v.SetDefault("rollbarToken", "")
	v.SetDefault("reminderSecret", "")

	v.SetDefault("server.host", "")
	v.SetDefault("server.port", "8000")
	v.SetDefault("server.shutdownTimeout", 10*time.Second)
	v.SetDefault("server.jwtExpirationDelta", 7*24*time.Hour)
	v.SetDefault("server.sessionCookie", "session")
	v.SetDefault("server.disableReqLogs", false)

	v.SetDefault("database.engine", "postgres")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.name", "unidiary")
	v.SetDefault("database.user", "unidiary")
	v.SetDefault("database.password", "unidiary")
	v.SetDefault("database.adminUser", "postgres")
	v.SetDefault("database.adminPassword", "postgres")
	v.SetDefault("database.disableTLS", env != "PROD")
	v.SetDefault("database.mongoURI", "mongodb://localhost:27017")

	v.SetDefault("telegram.token", "")
	v.SetDefault("telegram.chatID", "")
	v.SetDefault("telegram.apiEndpoint", "")
	v.SetDefault("telegram.timeout", 10*time.Second)

	v.SetDefault("sendgrid.apiKey", "")
	v.SetDefault("sendgrid.fromEmail", "noreply@localhost")
	v.SetDefault("sendgrid.toEmail", "")

	v.SetDefault("schedule.hourOffset", 1)
	v.SetDefault("schedule.timezone", "")
	v.SetDefault("schedule.lookahead", 10*time.Minute)
	v.SetDefault("schedule.reminderCron", "")
}
