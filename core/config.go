package core

import (
	"log"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	Config struct {
		Env              string
		Debug            bool
		TestMode         bool
		AppName          string
		Build            string
		SecretKey        string
		WorkDir          string
		FrontendBaseURL  string
		DefaultFromEmail mail.Address
		SendgridApiKey   string
		RollbarToken     string
		Server           ServerConfig
		Session          SessionConfig
		Portal           PortalConfig
	}

	ServerConfig struct {
		Host               string
		Addr               string
		DebugHost          string
		DisableReqLogs     bool
		ShutdownTimeout    time.Duration
		JWTExpirationDelta time.Duration
	}

	SessionConfig struct {
		Store         string // memory | redis
		TTL           time.Duration
		RedisAddr     string
		RedisPassword string
		RedisDB       int
	}

	PortalConfig struct {
		FixturesFile   string // empty: embedded fixtures
		EmailDomains   []string
		PaymentDelay   time.Duration
		AssistantDelay time.Duration
	}
)

// NewConfig reads the configuration from the environment (prefixed with ENV) and `config/.env.<env>` if present.
func NewConfig() *Config {
	v := viper.New()

	// defaults
	v.SetTypeByDefaultValue(true)
	v.SetDefault("debug", true)
	v.SetDefault("testMode", false)
	v.SetDefault("appName", "Gateway")
	v.SetDefault("build", "develop")
	v.SetDefault("secretKey", "q8v#2k!x0s-7nz&dn4@w_c6yj1m$u^rh3fe9(pt)l5ab+og")
	v.SetDefault("frontendBaseURL", "http://localhost:3000")
	v.SetDefault("defaultFromEmail", "Gateway <noreply@localhost>")
	v.SetDefault("sendgridApiKey", "")
	v.SetDefault("rollbarToken", "")

	v.SetDefault("serverHost", "localhost")
	v.SetDefault("serverAddr", ":8000")
	v.SetDefault("serverDebugHost", ":4000")
	v.SetDefault("serverDisableReqLogs", false)
	v.SetDefault("serverShutdownTimeout", 5*time.Second)
	v.SetDefault("serverJWTExpirationDelta", 12*time.Hour)

	v.SetDefault("sessionStore", "memory")
	v.SetDefault("sessionTTL", 12*time.Hour)
	v.SetDefault("sessionRedisAddr", "localhost:6379")
	v.SetDefault("sessionRedisPassword", "")
	v.SetDefault("sessionRedisDB", 0)

	v.SetDefault("portalFixturesFile", "")
	v.SetDefault("portalEmailDomains", []string{"@sfsu.edu", "@mail.sfsu.edu"})
	v.SetDefault("portalPaymentDelay", 2*time.Second)
	v.SetDefault("portalAssistantDelay", 800*time.Millisecond)

	env := strings.ToUpper(os.Getenv("ENV")) // DEV (local; default), TEST, QA, PROD
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("testMode", true)
		v.SetDefault("portalPaymentDelay", time.Duration(0))
		v.SetDefault("portalAssistantDelay", time.Duration(0))
	}
	v.SetEnvPrefix(env)

	workDir := Getwd()

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(workDir, "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()

	from, err := mail.ParseAddress(v.GetString("defaultFromEmail"))
	if err != nil {
		log.Fatalf("config.defaultFromEmail: %v", err)
	}

	return &Config{
		Env:              env,
		Debug:            v.GetBool("debug"),
		TestMode:         v.GetBool("testMode"),
		AppName:          v.GetString("appName"),
		Build:            v.GetString("build"),
		SecretKey:        v.GetString("secretKey"),
		WorkDir:          workDir,
		FrontendBaseURL:  v.GetString("frontendBaseURL"),
		DefaultFromEmail: *from,
		SendgridApiKey:   v.GetString("sendgridApiKey"),
		RollbarToken:     v.GetString("rollbarToken"),
		Server: ServerConfig{
			Host:               v.GetString("serverHost"),
			Addr:               v.GetString("serverAddr"),
			DebugHost:          v.GetString("serverDebugHost"),
			DisableReqLogs:     v.GetBool("serverDisableReqLogs"),
			ShutdownTimeout:    v.GetDuration("serverShutdownTimeout"),
			JWTExpirationDelta: v.GetDuration("serverJWTExpirationDelta"),
		},
		Session: SessionConfig{
			Store:         strings.ToLower(v.GetString("sessionStore")),
			TTL:           v.GetDuration("sessionTTL"),
			RedisAddr:     v.GetString("sessionRedisAddr"),
			RedisPassword: v.GetString("sessionRedisPassword"),
			RedisDB:       v.GetInt("sessionRedisDB"),
		},
		Portal: PortalConfig{
			FixturesFile:   v.GetString("portalFixturesFile"),
			EmailDomains:   v.GetStringSlice("portalEmailDomains"),
			PaymentDelay:   v.GetDuration("portalPaymentDelay"),
			AssistantDelay: v.GetDuration("portalAssistantDelay"),
		},
	}
}
