package domain

import (
	"time"

	"go.uber.org/zap"
)

// Provider identifies a supported payment gateway.
type Provider string

const (
	ProviderWebpay      Provider = "webpay"
	ProviderGetnet      Provider = "getnet"
	ProviderMercadoPago Provider = "mercadopago"
)

// Environment selects which gateway endpoints and credentials apply.
type Environment string

const (
	EnvironmentTest       Environment = "test"
	EnvironmentProduction Environment = "production"
)

// DefaultTimeout applies when Config.Timeout is zero.
const DefaultTimeout = 30 * time.Second

// Config is the SDK configuration supplied by the caller.
type Config struct {
	Provider    Provider
	Environment Environment

	// Credentials for the selected provider. May be nil in the test
	// environment, in which case the built-in public test credentials are
	// used (Webpay and Getnet only).
	Credentials Credentials

	// Timeout for each HTTP round trip. Defaults to DefaultTimeout.
	Timeout time.Duration

	// Logger for debug output. Defaults to a no-op logger.
	Logger *zap.Logger
}

// EffectiveTimeout returns the configured timeout or the default.
func (c Config) EffectiveTimeout() time.Duration {
	if c.Timeout <= 0 {
		return DefaultTimeout
	}
	return c.Timeout
}

// EffectiveLogger returns the configured logger or a no-op one.
func (c Config) EffectiveLogger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}

// Credentials is a tagged union with one variant per provider. Supplying the
// wrong variant for the selected provider is a configuration error, never a
// silent fallback.
type Credentials interface {
	isCredentials()
}

// WebpayCredentials authenticate against Transbank's Webpay REST API.
type WebpayCredentials struct {
	CommerceCode string
	APIKey       string
}

// GetnetCredentials authenticate against Getnet's web checkout.
type GetnetCredentials struct {
	Login     string
	SecretKey string
}

// MercadoPagoCredentials authenticate against the MercadoPago API.
// WebhookSecret is only needed to validate webhook notifications.
type MercadoPagoCredentials struct {
	AccessToken   string
	WebhookSecret string
}

func (WebpayCredentials) isCredentials()      {}
func (GetnetCredentials) isCredentials()      {}
func (MercadoPagoCredentials) isCredentials() {}
