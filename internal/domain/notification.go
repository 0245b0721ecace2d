package domain

import (
	"context"
	"errors"
	"fmt"
)

// ContractSignedRequest is the payload posted once a client signs a contract.
type ContractSignedRequest struct {
	ContractID  string `json:"contractId"`
	ClientName  string `json:"clientName"`
	ClientEmail string `json:"clientEmail,omitempty"`
	TenantID    string `json:"tenantId"`
	SignedAt    string `json:"signedAt"`
}

// SendResult records one outbound email. Attempted is false when the
// recipient could not be resolved or was not supplied.
type SendResult struct {
	Attempted bool
	Sent      bool
	Recipient string
	MessageID string
	Err       error
}

// NotificationResult keeps the client and owner sends apart so that a
// partial outcome is representable.
type NotificationResult struct {
	TenantName string
	Client     SendResult
	Owner      SendResult
}

// Err joins the delivery failures of both sends, nil when none failed.
func (r *NotificationResult) Err() error {
	var errs []error
	if r.Client.Err != nil {
		errs = append(errs, fmt.Errorf("client email: %w", r.Client.Err))
	}
	if r.Owner.Err != nil {
		errs = append(errs, fmt.Errorf("owner email: %w", r.Owner.Err))
	}
	return errors.Join(errs...)
}

type NotificationUsecase interface {
	NotifyContractSigned(ctx context.Context, req *ContractSignedRequest) (*NotificationResult, error)
}
