package usecase

import (
	"context"
	"errors"
	"time"

	"celebrai-backend/internal/domain"
	"celebrai-backend/pkg/email"
	"celebrai-backend/pkg/logger"
)

const (
	defaultTenantName = "Bella Arte"
	ownerSenderName   = "Sistema de Contratos"
)

type notificationUsecase struct {
	tenants     domain.TenantRepository
	owners      domain.OwnerDirectory
	sender      email.Sender
	fromAddress string
	loc         *time.Location
}

// NewNotificationUsecase creates the contract-signed dispatcher. fromAddress is
// the mailbox used behind both display names.
func NewNotificationUsecase(tenants domain.TenantRepository, owners domain.OwnerDirectory, sender email.Sender, fromAddress string, loc *time.Location) domain.NotificationUsecase {
	if loc == nil {
		loc = time.UTC
	}
	return &notificationUsecase{
		tenants:     tenants,
		owners:      owners,
		sender:      sender,
		fromAddress: fromAddress,
		loc:         loc,
	}
}

// NotifyContractSigned emails the client (when an address was supplied) and
// then the tenant owner. Lookup misses only skip or default; both sends are
// always attempted and any send failure is returned alongside the result.
func (uc *notificationUsecase) NotifyContractSigned(ctx context.Context, req *domain.ContractSignedRequest) (*domain.NotificationResult, error) {
	log := logger.Log.With("contract_id", req.ContractID, "tenant_id", req.TenantID)
	log.Info("Processing contract signed notification", "client", req.ClientName)

	tenantName, tenantPhone := defaultTenantName, ""
	tenant, err := uc.tenants.GetByID(ctx, req.TenantID)
	if err != nil {
		log.Error("Error fetching tenant", "error", err)
	} else {
		if tenant.Name != "" {
			tenantName = tenant.Name
		}
		tenantPhone = tenant.WhatsappNumber
	}

	data := email.ContractSignedData{
		TenantName:  tenantName,
		ClientName:  req.ClientName,
		ClientEmail: req.ClientEmail,
		SignedDate:  formatSignedAt(req.SignedAt, uc.loc),
		WhatsAppURL: email.WhatsAppLink(tenantPhone),
	}
	result := &domain.NotificationResult{TenantName: tenantName}

	if req.ClientEmail != "" {
		log.Info("Sending confirmation email to client", "to", req.ClientEmail)
		result.Client = uc.send(ctx, req.ClientEmail, email.Address(tenantName, uc.fromAddress),
			email.ClientSignedSubject(tenantName), email.RenderClientSigned, data)
	}

	if ownerEmail := uc.lookupOwnerEmail(ctx, req.TenantID); ownerEmail != "" {
		log.Info("Sending notification to tenant owner", "to", ownerEmail)
		result.Owner = uc.send(ctx, ownerEmail, email.Address(ownerSenderName, uc.fromAddress),
			email.OwnerSignedSubject(req.ClientName), email.RenderOwnerSigned, data)
	}

	return result, result.Err()
}

// lookupOwnerEmail returns "" when the owner cannot be resolved.
func (uc *notificationUsecase) lookupOwnerEmail(ctx context.Context, tenantID string) string {
	ownerID, err := uc.tenants.GetOwnerID(ctx, tenantID)
	if err != nil || ownerID == "" {
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			logger.Log.Warn("Owner lookup failed", "tenant_id", tenantID, "error", err)
		}
		return ""
	}

	addr, err := uc.owners.GetEmail(ctx, ownerID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			logger.Log.Warn("Owner email lookup failed", "owner_id", ownerID, "error", err)
		}
		return ""
	}
	return addr
}

func (uc *notificationUsecase) send(ctx context.Context, to, from, subject string, render func(email.ContractSignedData) (string, error), data email.ContractSignedData) domain.SendResult {
	res := domain.SendResult{Attempted: true, Recipient: to}

	html, err := render(data)
	if err != nil {
		res.Err = err
		return res
	}

	id, err := uc.sender.Send(ctx, email.Message{
		From:    from,
		To:      []string{to},
		Subject: subject,
		HTML:    html,
	})
	if err != nil {
		logger.Log.Error("Email send failed", "to", to, "subject", subject, "error", err)
		res.Err = err
		return res
	}

	logger.Log.Info("Email sent", "to", to, "id", id)
	res.Sent = true
	res.MessageID = id
	return res
}

// signedAtLayouts covers ISO timestamps from the signing page and the
// timestamptz text Postgres returns for signed_at.
var signedAtLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05-07",
	"2006-01-02 15:04:05-07:00",
}

// formatSignedAt renders a timestamp as "dd/mm/yyyy, hh:mm" in loc. An
// unparsable value is shown as received.
func formatSignedAt(raw string, loc *time.Location) string {
	for _, layout := range signedAtLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.In(loc).Format("02/01/2006, 15:04")
		}
	}
	return raw
}
