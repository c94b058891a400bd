package config

import "time"

type Config struct {
	Web      Web
	DB       DB
	Redis    Redis
	Cors     Cors
	Oauth    Oauth
	Auth     Auth
	Media    Media
	Shop     Shop
	Shipping Shipping
}

type Web struct {
	Address         string        `conf:"default:0.0.0.0:8000"`
	ReadTimeout     time.Duration `conf:"default:5s"`
	WriteTimeout    time.Duration `conf:"default:10s"`
	IdleTimeout     time.Duration `conf:"default:120s"`
	ShutdownTimeout time.Duration `conf:"default:20s"`
}

type DB struct {
	User       string `conf:"default:postgres"`
	Password   string `conf:"default:postgres,mask"`
	Host       string `conf:"default:localhost"`
	Name       string `conf:"default:tokokita"`
	DisableTLS bool   `conf:"default:true"`
}

type Redis struct {
	Address string `conf:"default:localhost:6379"`
}

type Cors struct {
	Origin string
}

type OauthProvider struct {
	Client      string
	Secret      string `conf:"mask"`
	URL         string
	RedirectURL string
}

type Oauth struct {
	DiscoveryTimeout time.Duration `conf:"default:30s"`
	LoginRedirectURL string        `conf:"default:http://localhost:3000"`
	Google           OauthProvider
}

type Auth struct {
	SessionLifetime time.Duration `conf:"default:24h"`
}

// Media configures the upload relay to the image host. Files are posted
// to UploadURL as multipart form data and the host answers with the
// public URL of the stored file.
type Media struct {
	UploadURL   string `conf:"default:http://localhost:8080/upload"`
	APIKey      string `conf:"mask"`
	MaxBytes    int64  `conf:"default:5242880"`
	UploadRPS   float64
	UploadBurst int `conf:"default:5"`
}

// Shop holds storefront identity used by outbound integrations: the
// WhatsApp number orders are forwarded to and the coordinates backing
// the embedded map on the contact page.
type Shop struct {
	Name           string `conf:"default:TokoKita"`
	WhatsAppNumber string `conf:"default:6281234567890"`
	Latitude       string `conf:"default:-6.200000"`
	Longitude      string `conf:"default:106.816666"`
}

type Shipping struct {
	// Hours until an unpaid order's countdown expires. Informational
	// only, nothing cancels the order server-side.
	ExpirationWindow time.Duration `conf:"default:24h"`
}
