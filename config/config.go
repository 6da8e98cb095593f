package config

import (
	"log"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds every setting the server reads from the environment.
type Config struct {
	Env  string `env:"APP_ENV" envDefault:"development"`
	Port string `env:"PORT" envDefault:"3000"`

	MongoURI      string `env:"MONGODB_URI" envDefault:"mongodb://localhost:27017"`
	MongoDatabase string `env:"MONGODB_DATABASE" envDefault:"calltechcare"`

	JWTSecret string `env:"JWT_SECRET"`

	StripeSecretKey     string `env:"STRIPE_SECRET_KEY"`
	StripeWebhookSecret string `env:"STRIPE_WEBHOOK_SECRET"`

	CMSBaseURL string `env:"CMS_BASE_URL"`
	CMSToken   string `env:"CMS_TOKEN"`

	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUsername string `env:"SMTP_USERNAME"`
	SMTPPassword string `env:"SMTP_PASSWORD"`
	SMTPFrom     string `env:"SMTP_FROM"`
	ShopEmail    string `env:"SHOP_EMAIL"`

	MailingListBaseURL string `env:"MAILING_LIST_BASE_URL"`
	MailingListAPIKey  string `env:"MAILING_LIST_API_KEY"`
	MailingListID      string `env:"MAILING_LIST_ID"`

	// Shared secret guarding the sync and stats endpoints.
	SyncSecret string `env:"SYNC_SECRET"`

	SiteBaseURL        string `env:"SITE_BASE_URL" envDefault:"https://calltechcare.com"`
	CheckoutSuccessURL string `env:"CHECKOUT_SUCCESS_URL" envDefault:"https://calltechcare.com/booking/success"`
	CheckoutCancelURL  string `env:"CHECKOUT_CANCEL_URL" envDefault:"https://calltechcare.com/booking/review"`
}

// C is the process-wide configuration, populated by Load.
var C Config

// Load reads the optional .env file and parses the environment into C.
func Load() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found")
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		log.Fatal("Failed to parse environment: ", err)
	}
	C = cfg
}
