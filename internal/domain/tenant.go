package domain

import "context"

// Tenant is a decorator business account.
type Tenant struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	WhatsappNumber string `json:"whatsapp_number"`
	LogoURL        string `json:"logo_url"`
	OwnerID        string `json:"owner_id"`
}

type TenantRepository interface {
	GetByID(ctx context.Context, id string) (*Tenant, error)
	GetOwnerID(ctx context.Context, id string) (string, error)
	GetByOwnerID(ctx context.Context, ownerID string) (*Tenant, error)
}

// OwnerDirectory resolves identity-provider users.
type OwnerDirectory interface {
	GetEmail(ctx context.Context, userID string) (string, error)
}
