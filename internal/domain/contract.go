package domain

import (
	"context"
	"time"
)

// ContractType is the service category printed on a contract.
type ContractType string

const (
	ContractTypeParty      ContractType = "party"
	ContractTypeRental     ContractType = "rental"
	ContractTypeDecoration ContractType = "decoration"
	ContractTypeOther      ContractType = "other"
)

var contractTypeLabels = map[ContractType]string{
	ContractTypeParty:      "Festa",
	ContractTypeRental:     "Locação de Brinquedos",
	ContractTypeDecoration: "Decoração",
	ContractTypeOther:      "Serviço",
}

// Label returns the display label; unknown codes are returned verbatim.
func (t ContractType) Label() string {
	if label, ok := contractTypeLabels[t]; ok {
		return label
	}
	return string(t)
}

// QuoteItem is one billable line of a quote. Nil numbers are defaulted at render time.
type QuoteItem struct {
	Description string   `json:"description" yaml:"description"`
	Quantity    *int     `json:"quantity,omitempty" yaml:"quantity,omitempty" validate:"omitempty,gte=0"`
	UnitPrice   *float64 `json:"unit_price,omitempty" yaml:"unit_price,omitempty" validate:"omitempty,gte=0"`
	TotalPrice  *float64 `json:"total_price,omitempty" yaml:"total_price,omitempty" validate:"omitempty,gte=0"`
}

// QuantityOrDefault treats a missing or zero quantity as 1.
func (i QuoteItem) QuantityOrDefault() int {
	if i.Quantity == nil || *i.Quantity == 0 {
		return 1
	}
	return *i.Quantity
}

func (i QuoteItem) UnitPriceOrZero() float64 {
	if i.UnitPrice == nil {
		return 0
	}
	return *i.UnitPrice
}

func (i QuoteItem) TotalPriceOrZero() float64 {
	if i.TotalPrice == nil {
		return 0
	}
	return *i.TotalPrice
}

// ContractData is everything needed to render one contract document.
// It is assembled per request and never persisted.
type ContractData struct {
	ClientName   string       `json:"clientName" yaml:"clientName" validate:"required"`
	ClientEmail  string       `json:"clientEmail,omitempty" yaml:"clientEmail,omitempty" validate:"omitempty,email"`
	ClientPhone  string       `json:"clientPhone,omitempty" yaml:"clientPhone,omitempty" validate:"omitempty,valid_phone"`
	ContractType ContractType `json:"contractType" yaml:"contractType"`
	Notes        string       `json:"notes,omitempty" yaml:"notes,omitempty"`
	QuoteItems   []QuoteItem  `json:"quoteItems,omitempty" yaml:"quoteItems,omitempty" validate:"dive"`
	// TotalValue is printed as supplied, it is never recomputed from QuoteItems.
	TotalValue *float64 `json:"totalValue,omitempty" yaml:"totalValue,omitempty" validate:"omitempty,gte=0"`
	TenantName string   `json:"tenantName" yaml:"tenantName"`
	TenantLogo string   `json:"tenantLogo,omitempty" yaml:"tenantLogo,omitempty"`
	// SignatureImage is a base64 PNG/JPEG, optionally as a data URL.
	SignatureImage string     `json:"signatureImage,omitempty" yaml:"signatureImage,omitempty"`
	SignedAt       *time.Time `json:"signedAt,omitempty" yaml:"signedAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt" yaml:"createdAt"`
}

// IsSigned reports whether a signature image is attached.
func (d *ContractData) IsSigned() bool {
	return d.SignatureImage != ""
}

func (d *ContractData) TotalOrZero() float64 {
	if d.TotalValue == nil {
		return 0
	}
	return *d.TotalValue
}

// ContractRecord is a contracts row joined with what the renderer needs.
type ContractRecord struct {
	ID            string
	TenantID      string
	QuoteID       string
	ClientName    string
	ClientEmail   string
	ClientPhone   string
	ContractType  ContractType
	Notes         string
	TotalValue    *float64
	SignatureData string
	SignedAt      *time.Time
	CreatedAt     time.Time
}

// RenderedContract is a finished PDF ready for delivery.
type RenderedContract struct {
	Filename string
	PDF      []byte
}

type ContractRepository interface {
	GetByID(ctx context.Context, tenantID, contractID string) (*ContractRecord, error)
	ListQuoteItems(ctx context.Context, quoteID string) ([]QuoteItem, error)
}

// ContractArchive keeps a copy of every generated contract.
type ContractArchive interface {
	Put(ctx context.Context, key string, body []byte, contentType string) error
}

type ContractUsecase interface {
	// RenderContract loads a stored contract owned by the user and renders it.
	RenderContract(ctx context.Context, ownerID, contractID string) (*RenderedContract, error)
	// GenerateContract renders a caller-supplied record, filling the tenant
	// name from the owner's tenant when it is empty.
	GenerateContract(ctx context.Context, ownerID string, data *ContractData) (*RenderedContract, error)
}
