package getnet

import (
	"strings"

	"github.com/CJaimeDev/chile-payments-sdk/core/domain"
)

// mapStatus translates Getnet's status vocabulary into the normalized one.
// Unknown statuses map to pending, never to failed: an unrecognized
// intermediate state must not be mistaken for a hard failure.
func mapStatus(status string) domain.TransactionStatus {
	switch strings.ToUpper(status) {
	case "APPROVED", "APPROVED_PARTIAL":
		return domain.StatusApproved
	case "REJECTED":
		return domain.StatusRejected
	case "PENDING", "PENDING_VALIDATION", "PENDING_PROCESS":
		return domain.StatusPending
	case "FAILED", "ERROR":
		return domain.StatusFailed
	default:
		return domain.StatusPending
	}
}
