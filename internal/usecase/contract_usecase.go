package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"celebrai-backend/internal/domain"
	"celebrai-backend/pkg/apperror"
	"celebrai-backend/pkg/logger"
	"celebrai-backend/pkg/pdfexport"
	"celebrai-backend/pkg/validation"
)

type contractUsecase struct {
	contracts domain.ContractRepository
	tenants   domain.TenantRepository
	archive   domain.ContractArchive
	exporter  *pdfexport.Exporter
	validate  *validator.Validate
	now       func() time.Time
}

// NewContractUsecase wires the PDF pipeline. archive may be nil when storage
// is not configured.
func NewContractUsecase(contracts domain.ContractRepository, tenants domain.TenantRepository, archive domain.ContractArchive, exporter *pdfexport.Exporter, validate *validator.Validate) domain.ContractUsecase {
	return &contractUsecase{
		contracts: contracts,
		tenants:   tenants,
		archive:   archive,
		exporter:  exporter,
		validate:  validate,
		now:       time.Now,
	}
}

func (uc *contractUsecase) RenderContract(ctx context.Context, ownerID, contractID string) (*domain.RenderedContract, error) {
	if _, err := uuid.Parse(contractID); err != nil {
		return nil, apperror.BadRequest("Invalid contract id")
	}

	tenant, err := uc.ownerTenant(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	rec, err := uc.contracts.GetByID(ctx, tenant.ID, contractID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Contract not found")
		}
		return nil, apperror.Internal(fmt.Errorf("failed to load contract: %w", err))
	}

	var items []domain.QuoteItem
	if rec.QuoteID != "" {
		items, err = uc.contracts.ListQuoteItems(ctx, rec.QuoteID)
		if err != nil {
			return nil, apperror.Internal(fmt.Errorf("failed to load quote items: %w", err))
		}
	}

	data := &domain.ContractData{
		ClientName:     rec.ClientName,
		ClientEmail:    rec.ClientEmail,
		ClientPhone:    rec.ClientPhone,
		ContractType:   rec.ContractType,
		Notes:          rec.Notes,
		QuoteItems:     items,
		TotalValue:     rec.TotalValue,
		TenantName:     tenant.Name,
		TenantLogo:     tenant.LogoURL,
		SignatureImage: rec.SignatureData,
		SignedAt:       rec.SignedAt,
		CreatedAt:      rec.CreatedAt,
	}

	rendered, err := uc.render(data)
	if err != nil {
		return nil, err
	}

	uc.archiveCopy(ctx, fmt.Sprintf("%s/%s.pdf", tenant.ID, rec.ID), rendered.PDF)
	return rendered, nil
}

func (uc *contractUsecase) GenerateContract(ctx context.Context, ownerID string, data *domain.ContractData) (*domain.RenderedContract, error) {
	data.ClientName = strings.TrimSpace(data.ClientName)
	data.ClientEmail = strings.TrimSpace(data.ClientEmail)

	if err := uc.validate.Struct(data); err != nil {
		return nil, apperror.New(http.StatusBadRequest, strings.Join(validation.FormatValidationErrors(err), "; "), err)
	}

	if data.TenantName == "" && ownerID != "" {
		tenant, err := uc.ownerTenant(ctx, ownerID)
		if err != nil {
			return nil, err
		}
		data.TenantName = tenant.Name
		data.TenantLogo = tenant.LogoURL
	}
	if data.CreatedAt.IsZero() {
		data.CreatedAt = uc.now()
	}

	return uc.render(data)
}

func (uc *contractUsecase) ownerTenant(ctx context.Context, ownerID string) (*domain.Tenant, error) {
	tenant, err := uc.tenants.GetByOwnerID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Tenant not found")
		}
		return nil, apperror.Internal(fmt.Errorf("failed to load tenant: %w", err))
	}
	return tenant, nil
}

func (uc *contractUsecase) render(data *domain.ContractData) (*domain.RenderedContract, error) {
	var buf bytes.Buffer
	filename, err := uc.exporter.Download(&buf, data, "")
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("failed to render contract: %w", err))
	}
	return &domain.RenderedContract{Filename: filename, PDF: buf.Bytes()}, nil
}

// archiveCopy never fails the request.
func (uc *contractUsecase) archiveCopy(ctx context.Context, key string, pdf []byte) {
	if uc.archive == nil {
		return
	}
	if err := uc.archive.Put(ctx, key, pdf, "application/pdf"); err != nil {
		logger.Log.Warn("Failed to archive contract", "key", key, "error", err)
	}
}
