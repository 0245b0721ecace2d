package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"celebrai-backend/internal/domain"
)

type contractRepo struct {
	db *pgxpool.Pool
}

// NewContractRepository creates a new contract repository
func NewContractRepository(db *pgxpool.Pool) domain.ContractRepository {
	return &contractRepo{db: db}
}

// GetByID is scoped by tenant so an owner can only read their own contracts
func (r *contractRepo) GetByID(ctx context.Context, tenantID, contractID string) (*domain.ContractRecord, error) {
	query := `
		SELECT id::text, tenant_id::text, COALESCE(quote_id::text, ''),
		       client_name, COALESCE(client_email, ''), COALESCE(client_phone, ''),
		       COALESCE(contract_type, 'other'), COALESCE(notes, ''), total_value::float8,
		       COALESCE(signature_data, ''), signed_at, created_at
		FROM contracts
		WHERE id = $1 AND tenant_id = $2`

	var c domain.ContractRecord
	var contractType string
	err := r.db.QueryRow(ctx, query, contractID, tenantID).Scan(
		&c.ID, &c.TenantID, &c.QuoteID,
		&c.ClientName, &c.ClientEmail, &c.ClientPhone,
		&contractType, &c.Notes, &c.TotalValue,
		&c.SignatureData, &c.SignedAt, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	c.ContractType = domain.ContractType(contractType)
	return &c, nil
}

func (r *contractRepo) ListQuoteItems(ctx context.Context, quoteID string) ([]domain.QuoteItem, error) {
	query := `
		SELECT COALESCE(description, ''), quantity::int, unit_price::float8, total_price::float8
		FROM quote_items
		WHERE quote_id = $1
		ORDER BY created_at ASC`

	rows, err := r.db.Query(ctx, query, quoteID)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.QuoteItem, error) {
		var item domain.QuoteItem
		err := row.Scan(&item.Description, &item.Quantity, &item.UnitPrice, &item.TotalPrice)
		return item, err
	})
}
