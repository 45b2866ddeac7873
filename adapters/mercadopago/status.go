package mercadopago

import (
	"strings"

	"github.com/CJaimeDev/chile-payments-sdk/core/domain"
)

// mapStatus translates MercadoPago's payment status vocabulary into the
// normalized one. Unknown statuses map to pending, never to failed.
func mapStatus(status string) domain.TransactionStatus {
	switch strings.ToLower(status) {
	case "approved":
		return domain.StatusApproved
	case "pending", "in_process", "in_mediation", "authorized":
		return domain.StatusPending
	case "rejected":
		return domain.StatusRejected
	case "cancelled", "refunded", "charged_back":
		return domain.StatusCancelled
	case "expired":
		return domain.StatusExpired
	default:
		return domain.StatusPending
	}
}

// mapRefundStatus translates a refund status from the refunds API.
func mapRefundStatus(status string) domain.RefundStatus {
	switch strings.ToLower(status) {
	case "approved":
		return domain.RefundApproved
	case "pending", "in_process":
		return domain.RefundPending
	default:
		return domain.RefundRejected
	}
}
