package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"celebrai-backend/internal/domain"
)

type tenantRepo struct {
	db *pgxpool.Pool
}

// NewTenantRepository creates a new tenant repository
func NewTenantRepository(db *pgxpool.Pool) domain.TenantRepository {
	return &tenantRepo{db: db}
}

const tenantColumns = `
	SELECT id::text, COALESCE(name, ''), COALESCE(whatsapp_number, ''),
	       COALESCE(logo_url, ''), COALESCE(owner_id::text, '')
	FROM tenants`

func (r *tenantRepo) GetByID(ctx context.Context, id string) (*domain.Tenant, error) {
	return r.getOne(ctx, tenantColumns+` WHERE id = $1`, id)
}

// GetByOwnerID returns the tenant administered by the authenticated user
func (r *tenantRepo) GetByOwnerID(ctx context.Context, ownerID string) (*domain.Tenant, error) {
	return r.getOne(ctx, tenantColumns+` WHERE owner_id = $1 LIMIT 1`, ownerID)
}

func (r *tenantRepo) GetOwnerID(ctx context.Context, id string) (string, error) {
	var ownerID *string
	err := r.db.QueryRow(ctx, `SELECT owner_id::text FROM tenants WHERE id = $1`, id).Scan(&ownerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", domain.ErrNotFound
		}
		return "", err
	}
	if ownerID == nil {
		return "", nil
	}
	return *ownerID, nil
}

func (r *tenantRepo) getOne(ctx context.Context, query string, arg string) (*domain.Tenant, error) {
	var t domain.Tenant
	err := r.db.QueryRow(ctx, query, arg).Scan(&t.ID, &t.Name, &t.WhatsappNumber, &t.LogoURL, &t.OwnerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}
