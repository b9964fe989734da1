package configs

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// =======================
// CONFIG STRUCT
// =======================

type Config struct {
	Server       Server
	Database     Database
	Auth         Auth
	Payment      Payment
	SMTP         SMTP
	WhatsApp     WhatsApp
	Storage      Storage
	Certificates Certificates
	Reminders    Reminders
	Broker       Broker
	Bulk         Bulk
}

type Server struct {
	Port        string   `env:"PORT" envDefault:"3000"`
	AppURL      string   `env:"APP_URL" envDefault:"http://localhost:5173"`
	APIURL      string   `env:"API_URL" envDefault:"http://localhost:3000"`
	CorsOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173,http://localhost:3000"`
	Environment string   `env:"RAILWAY_ENVIRONMENT"`
}

type Database struct {
	URL             string        `env:"DATABASE_URL"`
	User            string        `env:"DB_USER"`
	Password        string        `env:"DB_PASSWORD"`
	Host            string        `env:"DB_HOST" envDefault:"localhost"`
	Port            string        `env:"DB_PORT" envDefault:"5432"`
	Name            string        `env:"DB_NAME" envDefault:"fdp"`
	SSLMode         string        `env:"DB_SSLMODE" envDefault:"require"`
	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" envDefault:"20"`
	MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" envDefault:"10"`
	ConnMaxIdleTime time.Duration `env:"DB_CONN_MAX_IDLE_TIME" envDefault:"60s"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"10m"`
	SlowQuery       time.Duration `env:"DB_SLOW_QUERY" envDefault:"200ms"`
	LogQueries      bool          `env:"DB_LOG_QUERIES" envDefault:"false"`
	SeedOnStart     bool          `env:"SEED_ON_START" envDefault:"false"`
	SeedDir         string        `env:"SEED_DIR" envDefault:"internals/seeds"`
}

// DSN builds the postgres connection string. DATABASE_URL wins when set.
func (d Database) DSN() string {
	if strings.TrimSpace(d.URL) != "" {
		return d.URL
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=fdp_backend&options=-c statement_timeout=5000",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

type Auth struct {
	JWTSecret     string        `env:"JWT_SECRET"`
	AdminEmail    string        `env:"ADMIN_EMAIL"`
	AdminPassword string        `env:"ADMIN_PASSWORD"`
	AdminHash     string        `env:"ADMIN_PASSWORD_HASH"`
	TokenTTL      time.Duration `env:"ADMIN_TOKEN_TTL" envDefault:"12h"`
}

type Payment struct {
	Provider          string `env:"PAYMENT_GATEWAY" envDefault:"cashfree"`
	Currency          string `env:"PAYMENT_CURRENCY" envDefault:"INR"`
	CashfreeAppID     string `env:"CASHFREE_APP_ID"`
	CashfreeSecretKey string `env:"CASHFREE_SECRET_KEY"`
	CashfreeAPIURL    string `env:"CASHFREE_API_URL" envDefault:"https://sandbox.cashfree.com/pg"`
	CashfreeVersion   string `env:"CASHFREE_API_VERSION" envDefault:"2023-08-01"`
	MidtransServerKey string `env:"MIDTRANS_SERVER_KEY"`
	MidtransUseProd   bool   `env:"MIDTRANS_USE_PROD" envDefault:"false"`
}

// SigningSecret is the server-held key used for client payment signatures.
func (p Payment) SigningSecret() string {
	if strings.EqualFold(p.Provider, "midtrans") {
		return p.MidtransServerKey
	}
	return p.CashfreeSecretKey
}

type SMTP struct {
	Host     string `env:"SMTP_HOST" envDefault:"smtp.gmail.com"`
	Port     int    `env:"SMTP_PORT" envDefault:"587"`
	User     string `env:"SMTP_USER"`
	Password string `env:"SMTP_PASS"`
	From     string `env:"SMTP_FROM" envDefault:"noreply@fdp.local"`
	UseTLS   bool   `env:"SMTP_SECURE" envDefault:"false"`
}

func (s SMTP) Enabled() bool { return s.Host != "" && s.User != "" && s.Password != "" }

type WhatsApp struct {
	Provider       string        `env:"WHATSAPP_PROVIDER" envDefault:"cloud"`
	APIURL         string        `env:"WHATSAPP_API_URL" envDefault:"https://graph.facebook.com/v18.0"`
	PhoneID        string        `env:"WHATSAPP_PHONE_ID"`
	Token          string        `env:"WHATSAPP_TOKEN"`
	TwilioSID      string        `env:"TWILIO_ACCOUNT_SID"`
	TwilioToken    string        `env:"TWILIO_AUTH_TOKEN"`
	TwilioNumber   string        `env:"TWILIO_WHATSAPP_NUMBER"`
	TwilioAPIURL   string        `env:"TWILIO_API_URL" envDefault:"https://api.twilio.com/2010-04-01"`
	RequestTimeout time.Duration `env:"WHATSAPP_TIMEOUT" envDefault:"15s"`
}

type Storage struct {
	UploadDir       string `env:"UPLOAD_DIR" envDefault:"uploads"`
	PublicPrefix    string `env:"UPLOAD_PUBLIC_PREFIX" envDefault:"/uploads"`
	OSSEndpoint     string `env:"ALI_OSS_ENDPOINT"`
	OSSAccessKey    string `env:"ALI_OSS_ACCESS_KEY"`
	OSSSecretKey    string `env:"ALI_OSS_SECRET_KEY"`
	OSSBucket       string `env:"ALI_OSS_BUCKET"`
	OSSPublicBase   string `env:"ALI_OSS_PUBLIC_BASE"`
	MaxUploadBytes  int    `env:"MAX_UPLOAD_BYTES" envDefault:"5242880"`
	LogoMaxWidth    int    `env:"LOGO_MAX_WIDTH" envDefault:"600"`
	LogoWebPQuality int    `env:"LOGO_WEBP_QUALITY" envDefault:"80"`
}

func (s Storage) OSSEnabled() bool {
	return s.OSSEndpoint != "" && s.OSSAccessKey != "" && s.OSSSecretKey != "" && s.OSSBucket != ""
}

type Certificates struct {
	ChromePath    string        `env:"CHROME_PATH"`
	RenderTimeout time.Duration `env:"CERT_RENDER_TIMEOUT" envDefault:"45s"`
}

type Reminders struct {
	Enabled  bool          `env:"REMINDERS_ENABLED" envDefault:"true"`
	Schedule string        `env:"REMINDER_CRON" envDefault:"0 8 * * *"`
	LeadTime time.Duration `env:"REMINDER_LEAD_TIME" envDefault:"24h"`
}

type Broker struct {
	URL      string `env:"AMQP_URL"`
	Exchange string `env:"AMQP_EXCHANGE" envDefault:"fdp.events"`
}

type Bulk struct {
	Concurrency int `env:"BULK_CONCURRENCY" envDefault:"4"`
}

// =======================
// ENV LOADER
// =======================

// Load reads .env (outside Railway) and parses the process environment into Config.
func Load() (*Config, error) {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ .env file not found, using system ENV")
		} else {
			log.Println("✅ .env file loaded")
		}
	} else {
		log.Println("🚀 Running in Railway, using system ENV")
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	cfg.report()
	return &cfg, nil
}

func (c *Config) report() {
	if c.Auth.JWTSecret == "" {
		log.Println("❌ JWT_SECRET is not set, admin routes will reject every token")
	} else {
		log.Println("✅ JWT_SECRET loaded")
	}
	if c.Payment.SigningSecret() == "" {
		log.Printf("❌ payment credentials for %q are not set", c.Payment.Provider)
	}
	if !c.SMTP.Enabled() {
		log.Println("⚠️ SMTP not configured, emails will be logged as failed")
	}
}
