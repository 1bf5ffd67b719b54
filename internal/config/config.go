package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/Netflix/go-env"
	"github.com/joho/godotenv"
	"github.com/web-debit/navigate-relay/app/internal/relay"
)

// Environment variables with defaults
type ServerEnvironment struct {

	// http server settings
	Environment           string        `env:"ENVIRONMENT"`
	NodeEnv               string        `env:"NODE_ENV"`
	Host                  string        `env:"HOST,default=0.0.0.0"`
	Port                  int           `env:"PORT,default=8080"`
	LogLevel              string        `env:"LOG_LEVEL,default=info"`
	ServerShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT,default=10s"`
	ReadTimeout           time.Duration `env:"READ_TIMEOUT,default=15s"`
	WriteTimeout          time.Duration `env:"WRITE_TIMEOUT,default=15s"`
	IdleTimeout           time.Duration `env:"IDLE_TIMEOUT,default=60s"`
	RateLimitRPS          int32         `env:"RATE_LIMIT_RPS,default=10"`
	RateLimitBurst        int32         `env:"RATE_LIMIT_BURST,default=20"`
	MaxRequestSize        int64         `env:"MAX_REQUEST_SIZE,default=16384"`

	// relay settings
	RelayMode    string `env:"RELAY_MODE,default=hardened"`
	TemplatePath string `env:"TEMPLATE_PATH"`
	StaticDir    string `env:"STATIC_DIR"`

	// Basic auth for the relay page
	EnableAuth    bool   `env:"ENABLE_AUTH,default=false"`
	AdminUser     string `env:"ADMIN_USER,default=admin"`
	AdminPassword string `env:"ADMIN_PASSWORD"`

	// Required merchant secrets - must be set by environment variables
	ShopPassword string `env:"SHOP_PWD,required=true"`
	FSToken      string `env:"FS_TOKEN,required=true"`

	// gateway protocol constants
	GatewayURL              string `env:"GATEWAY_URL,default=https://gateway.example.jp/webdebit/navigate"`
	GatewayVersion          string `env:"GATEWAY_VERSION,default=100"`
	GatewayShopCode         string `env:"GATEWAY_SHOP_CD,default=0000000"`
	GatewayCollectionCode   string `env:"GATEWAY_SYUNO_CO_CD,default=00000000"`
	GatewayUpdateKind       string `env:"GATEWAY_KOUSHIN_KBN,default=1"`
	GatewayBillMailKind     string `env:"GATEWAY_BILL_MAIL_KBN,default=1"`
	GatewayRedirectKind     string `env:"GATEWAY_REDIRECT_KBN,default=1"`
	GatewayRedirectSeconds  string `env:"GATEWAY_REDIRECT_SEC,default=5"`
	GatewayShopPhoneDisplay string `env:"GATEWAY_SHOP_PHON_HYOJI_KBN,default=1"`
	GatewayShopMailDisplay  string `env:"GATEWAY_SHOP_MAIL_HYOJI_KBN,default=1"`
	GatewayBillMethod       string `env:"GATEWAY_BILL_METHOD,default=01"`
	GatewayPaymentID        string `env:"GATEWAY_KESSAI_ID,default=0101"`
	GatewayShopLink         string `env:"GATEWAY_SHOP_LINK"`
	GatewayShopErrorLink    string `env:"GATEWAY_SHOP_ERROR_LINK"`
	GatewayShopResultLink   string `env:"GATEWAY_SHOP_RES_LINK"`
	ShopOrderNo             string `env:"SHOP_ORDER_NO"`
}

var validEnvs = map[string]bool{
	"dev":     true,
	"test":    true,
	"prod":    true,
	"staging": true,
}

// NODE_ENV values are accepted for deployments that still set them
var nodeEnvs = map[string]string{
	"development": "dev",
	"production":  "prod",
	"test":        "test",
	"staging":     "staging",
}

// NewServerConfig loads environment variables and returns a ServerEnvironment struct that contains the values.
//
// Variables from ENV_FILE (or ./.env when present) are loaded first; they never override
// variables already set in the process environment.
//
// A missing merchant secret is a relay.ErrConfiguration error; callers must not start the server.
func NewServerConfig() (*ServerEnvironment, error) {
	if err := loadEnvFile(); err != nil {
		return nil, err
	}

	var cfg ServerEnvironment

	_, err := env.UnmarshalFromEnviron(&cfg)
	if err != nil {
		return nil, relay.WrapConfigurationError(err, "failed to unmarshal environment variables")
	}

	if cfg.Environment == "" {
		cfg.Environment = nodeEnvs[strings.ToLower(cfg.NodeEnv)]
		if cfg.Environment == "" {
			cfg.Environment = "dev"
		}
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func loadEnvFile() error {
	if path := os.Getenv("ENV_FILE"); path != "" {
		if err := godotenv.Load(path); err != nil {
			return relay.WrapConfigurationError(err, "failed to load ENV_FILE")
		}
		return nil
	}
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return relay.WrapConfigurationError(err, "failed to load .env")
	}
	return nil
}

// validateConfig checks for required env variables
func validateConfig(cfg *ServerEnvironment) error {
	if cfg.Port < 1 || cfg.Port > 65535 {
		return relay.NewConfigurationError("PORT must be between 1 and 65535")
	}
	if !validEnvs[cfg.Environment] {
		return relay.NewConfigurationError(fmt.Sprintf("invalid ENVIRONMENT: %s", cfg.Environment))
	}
	if _, err := relay.ParseMode(cfg.RelayMode); err != nil {
		return relay.WrapConfigurationError(err, "invalid RELAY_MODE")
	}

	// secrets must be non-blank, not merely present
	if strings.TrimSpace(cfg.ShopPassword) == "" {
		return relay.NewConfigurationError("SHOP_PWD must be set")
	}
	if strings.TrimSpace(cfg.FSToken) == "" {
		return relay.NewConfigurationError("FS_TOKEN must be set")
	}
	if cfg.EnableAuth && cfg.AdminPassword == "" {
		return relay.NewConfigurationError("ADMIN_PASSWORD must be set when ENABLE_AUTH is true")
	}

	u, err := url.Parse(cfg.GatewayURL)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return relay.NewConfigurationError(fmt.Sprintf("GATEWAY_URL must be an absolute URL, got %q", cfg.GatewayURL))
	}
	if u.Scheme != "https" && (cfg.Environment == "prod" || cfg.Environment == "staging") {
		return relay.NewConfigurationError("GATEWAY_URL must use https in " + cfg.Environment)
	}

	if cfg.MaxRequestSize < 1 {
		return relay.NewConfigurationError("MAX_REQUEST_SIZE must be at least 1")
	}
	if cfg.RateLimitRPS > 0 && cfg.RateLimitBurst < 1 {
		return relay.NewConfigurationError("RATE_LIMIT_BURST must be at least 1 when rate limiting is enabled")
	}

	return nil
}

// Mode returns the relay acquisition mode.
func (cfg *ServerEnvironment) Mode() relay.Mode {
	m, _ := relay.ParseMode(cfg.RelayMode)
	return m
}

// Credentials returns the merchant secrets. The result is immutable and is
// built once at startup by the caller.
func (cfg *ServerEnvironment) Credentials() relay.MerchantCredentials {
	return relay.NewMerchantCredentials(cfg.ShopPassword, cfg.FSToken, cfg.AdminPassword)
}

// Gateway returns the gateway protocol constants.
func (cfg *ServerEnvironment) Gateway() relay.Gateway {
	return relay.Gateway{
		URL:              cfg.GatewayURL,
		Version:          cfg.GatewayVersion,
		ShopCode:         cfg.GatewayShopCode,
		CollectionCode:   cfg.GatewayCollectionCode,
		UpdateKind:       cfg.GatewayUpdateKind,
		BillMailKind:     cfg.GatewayBillMailKind,
		RedirectKind:     cfg.GatewayRedirectKind,
		RedirectSeconds:  cfg.GatewayRedirectSeconds,
		ShopPhoneDisplay: cfg.GatewayShopPhoneDisplay,
		ShopMailDisplay:  cfg.GatewayShopMailDisplay,
		BillMethod:       cfg.GatewayBillMethod,
		PaymentID:        cfg.GatewayPaymentID,
		ShopLink:         cfg.GatewayShopLink,
		ShopErrorLink:    cfg.GatewayShopErrorLink,
		ShopResultLink:   cfg.GatewayShopResultLink,
		FixedOrderNo:     cfg.ShopOrderNo,
	}
}
