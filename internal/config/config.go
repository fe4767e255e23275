package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type AppCfg struct {
	Env            string
	Port           string
	AllowedOrigins []string
}

type DBCfg struct{ DSN string }

// RedisCfg is optional; when Addr is empty the in-process status cache is
// used instead.
type RedisCfg struct{ Addr string }

// PayHeroCfg carries the static gateway credentials. Loaded once at start,
// immutable afterwards; the client never re-reads them.
type PayHeroCfg struct {
	Username    string
	Password    string
	ChannelID   int
	CallbackURL string
	BaseURL     string
	Timeout     time.Duration
}

type Cfg struct {
	App     AppCfg
	DB      DBCfg
	Redis   RedisCfg
	PayHero PayHeroCfg
}

func Load() Cfg {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	viper.AutomaticEnv()
	viper.SetDefault("APP_ENV", "sandbox")
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ALLOWED_ORIGINS", "http://localhost:3000,https://kopesha.vercel.app")
	viper.SetDefault("PAYHERO_BASE_URL", "https://backend.payhero.co.ke")
	viper.SetDefault("PAYHERO_TIMEOUT_SEC", 15)

	cfg := Cfg{
		App: AppCfg{
			Env:            viper.GetString("APP_ENV"),
			Port:           viper.GetString("APP_PORT"),
			AllowedOrigins: splitCSV(viper.GetString("ALLOWED_ORIGINS")),
		},
		DB:    DBCfg{DSN: viper.GetString("DB_DSN")},
		Redis: RedisCfg{Addr: viper.GetString("REDIS_ADDR")},
		PayHero: PayHeroCfg{
			Username:    viper.GetString("PAYHERO_API_USERNAME"),
			Password:    viper.GetString("PAYHERO_API_PASSWORD"),
			ChannelID:   viper.GetInt("PAYHERO_CHANNEL_ID"),
			CallbackURL: viper.GetString("PAYHERO_CALLBACK_URL"),
			BaseURL:     strings.TrimRight(viper.GetString("PAYHERO_BASE_URL"), "/"),
			Timeout:     time.Duration(viper.GetInt("PAYHERO_TIMEOUT_SEC")) * time.Second,
		},
	}

	if cfg.DB.DSN == "" {
		log.Fatal().Msg("DB_DSN is required")
	}
	if cfg.PayHero.Username == "" || cfg.PayHero.Password == "" {
		log.Fatal().Msg("PAYHERO_API_USERNAME and PAYHERO_API_PASSWORD are required")
	}
	if cfg.PayHero.ChannelID == 0 {
		log.Fatal().Msg("PAYHERO_CHANNEL_ID is required")
	}
	if cfg.PayHero.CallbackURL == "" {
		log.Fatal().Msg("PAYHERO_CALLBACK_URL is required")
	}
	return cfg
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
