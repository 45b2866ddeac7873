// Package config handles loading and managing the payment service
// configuration.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/CJaimeDev/chile-payments-sdk/core/domain"
)

// Config holds all configuration for the HTTP service.
type Config struct {
	// Server configuration
	Server ServerConfig

	// SDK holds the gateway selection and credentials.
	SDK SDKConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port    string
	GinMode string // "debug", "release", or "test"
}

// SDKConfig holds the payment SDK configuration read from the environment.
type SDKConfig struct {
	Provider    string
	Environment string
	TimeoutMS   int

	WebpayCommerceCode string
	WebpayAPIKey       string

	GetnetLogin     string
	GetnetSecretKey string

	MPAccessToken   string
	MPWebhookSecret string
}

// Load reads configuration from environment variables.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:    getEnv("PORT", "8080"),
			GinMode: getEnv("GIN_MODE", "debug"),
		},
		SDK: SDKConfig{
			Provider:           getEnv("PAYMENT_PROVIDER", "webpay"),
			Environment:        getEnv("PAYMENT_ENVIRONMENT", "test"),
			TimeoutMS:          getEnvInt("HTTP_TIMEOUT_MS", 30000),
			WebpayCommerceCode: getEnv("WEBPAY_COMMERCE_CODE", ""),
			WebpayAPIKey:       getEnv("WEBPAY_API_KEY", ""),
			GetnetLogin:        getEnv("GETNET_LOGIN", ""),
			GetnetSecretKey:    getEnv("GETNET_SECRET_KEY", ""),
			MPAccessToken:      getEnv("MP_ACCESS_TOKEN", ""),
			MPWebhookSecret:    getEnv("MP_WEBHOOK_SECRET", ""),
		},
	}
}

// SDKDomainConfig maps the env-level configuration onto the SDK's Config.
// Credentials stay nil when the matching vars are unset, which lets the SDK
// substitute public test credentials in the test environment.
func (c *Config) SDKDomainConfig() domain.Config {
	cfg := domain.Config{
		Provider:    domain.Provider(c.SDK.Provider),
		Environment: domain.Environment(c.SDK.Environment),
		Timeout:     time.Duration(c.SDK.TimeoutMS) * time.Millisecond,
	}

	switch cfg.Provider {
	case domain.ProviderWebpay:
		if c.SDK.WebpayCommerceCode != "" || c.SDK.WebpayAPIKey != "" {
			cfg.Credentials = domain.WebpayCredentials{
				CommerceCode: c.SDK.WebpayCommerceCode,
				APIKey:       c.SDK.WebpayAPIKey,
			}
		}
	case domain.ProviderGetnet:
		if c.SDK.GetnetLogin != "" || c.SDK.GetnetSecretKey != "" {
			cfg.Credentials = domain.GetnetCredentials{
				Login:     c.SDK.GetnetLogin,
				SecretKey: c.SDK.GetnetSecretKey,
			}
		}
	case domain.ProviderMercadoPago:
		if c.SDK.MPAccessToken != "" {
			cfg.Credentials = domain.MercadoPagoCredentials{
				AccessToken:   c.SDK.MPAccessToken,
				WebhookSecret: c.SDK.MPWebhookSecret,
			}
		}
	}

	return cfg
}

// getEnv retrieves an environment variable with a fallback default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an environment variable as an integer with a fallback.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
