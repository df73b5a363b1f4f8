package config

import (
	"time"

	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

type Config struct {
	App struct {
		Env string
	} `mapstructure:"app"`

	HTTP struct {
		Addr string
	} `mapstructure:"http"`

	Postgres struct {
		DSN string
	} `mapstructure:"postgres"`

	Telegram struct {
		Token     string
		WebAppURL string `mapstructure:"webapp_url"`
	} `mapstructure:"telegram"`

	Auth struct {
		Secret string
		TTL    time.Duration
	} `mapstructure:"auth"`

	Uploads struct {
		Dir string
	} `mapstructure:"uploads"`

	Metrics struct {
		Enabled bool
	} `mapstructure:"metrics"`
}

func Load(path string) (Config, error) {
	_ = gotenv.Load()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()

	v.SetDefault("http.addr", ":8080")
	v.SetDefault("auth.ttl", 7*24*time.Hour)
	v.SetDefault("uploads.dir", "uploads")

	var c Config
	if err := v.ReadInConfig(); err != nil {
		return c, err
	}
	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}
	return c, nil
}
