// Package adapters selects and constructs the gateway adapter for a
// configuration.
package adapters

import (
	"fmt"

	"github.com/CJaimeDev/chile-payments-sdk/adapters/getnet"
	"github.com/CJaimeDev/chile-payments-sdk/adapters/mercadopago"
	"github.com/CJaimeDev/chile-payments-sdk/adapters/webpay"
	"github.com/CJaimeDev/chile-payments-sdk/core/domain"
	"github.com/CJaimeDev/chile-payments-sdk/core/ports"
)

// New instantiates the adapter matching the configured provider. An unknown
// provider is a configuration error, never a silent default.
func New(cfg domain.Config) (ports.PaymentAdapter, error) {
	switch cfg.Provider {
	case domain.ProviderWebpay:
		return webpay.New(cfg)
	case domain.ProviderGetnet:
		return getnet.New(cfg)
	case domain.ProviderMercadoPago:
		return mercadopago.New(cfg)
	default:
		return nil, domain.NewValidationError(fmt.Sprintf("unsupported provider: %q", cfg.Provider))
	}
}
