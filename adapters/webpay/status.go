package webpay

import (
	"strings"

	"github.com/CJaimeDev/chile-payments-sdk/core/domain"
)

// mapResponseCode translates Webpay's numeric response code. Zero is the
// sole approval signal; every other value is a rejection.
func mapResponseCode(responseCode int) domain.TransactionStatus {
	if responseCode == 0 {
		return domain.StatusApproved
	}
	return domain.StatusRejected
}

// mapTransactionStatus resolves the status of a read response. A committed
// transaction reports AUTHORIZED plus a response code, and the code decides
// approved versus rejected. Before commit there is no response code (its
// zero value would read as approved), so the textual status decides.
func mapTransactionStatus(response *TransactionResponse) domain.TransactionStatus {
	if response.Status == "" || strings.EqualFold(response.Status, "AUTHORIZED") {
		return mapResponseCode(response.ResponseCode)
	}
	return mapStatus(response.Status)
}

// mapStatus translates the textual status field of read responses. Unknown
// values map to pending so an unrecognized intermediate state is not
// reported as a failure.
func mapStatus(status string) domain.TransactionStatus {
	switch strings.ToUpper(status) {
	case "AUTHORIZED":
		return domain.StatusApproved
	case "FAILED":
		return domain.StatusFailed
	case "NULLIFIED", "REVERSED":
		return domain.StatusCancelled
	case "INITIALIZED":
		return domain.StatusPending
	default:
		return domain.StatusPending
	}
}
