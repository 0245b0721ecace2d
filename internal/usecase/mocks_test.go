package usecase_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"celebrai-backend/internal/domain"
	"celebrai-backend/pkg/email"
)

type MockTenantRepo struct {
	mock.Mock
}

func (m *MockTenantRepo) GetByID(ctx context.Context, id string) (*domain.Tenant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tenant), args.Error(1)
}

func (m *MockTenantRepo) GetOwnerID(ctx context.Context, id string) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

func (m *MockTenantRepo) GetByOwnerID(ctx context.Context, ownerID string) (*domain.Tenant, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tenant), args.Error(1)
}

type MockOwnerDirectory struct {
	mock.Mock
}

func (m *MockOwnerDirectory) GetEmail(ctx context.Context, userID string) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

type MockSender struct {
	mock.Mock
}

func (m *MockSender) Send(ctx context.Context, msg email.Message) (string, error) {
	args := m.Called(ctx, msg)
	return args.String(0), args.Error(1)
}

type MockContractRepo struct {
	mock.Mock
}

func (m *MockContractRepo) GetByID(ctx context.Context, tenantID, contractID string) (*domain.ContractRecord, error) {
	args := m.Called(ctx, tenantID, contractID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ContractRecord), args.Error(1)
}

func (m *MockContractRepo) ListQuoteItems(ctx context.Context, quoteID string) ([]domain.QuoteItem, error) {
	args := m.Called(ctx, quoteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.QuoteItem), args.Error(1)
}

type MockArchive struct {
	mock.Mock
}

func (m *MockArchive) Put(ctx context.Context, key string, body []byte, contentType string) error {
	return m.Called(ctx, key, body, contentType).Error(0)
}

type MockAppointmentRepo struct {
	mock.Mock
}

func (m *MockAppointmentRepo) ListByTenant(ctx context.Context, tenantID string) ([]domain.Appointment, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Appointment), args.Error(1)
}
