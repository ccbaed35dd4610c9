package services

import (
	"context"

	"github.com/SscSPs/shop_ledger_app/internal/core/domain"
	"github.com/SscSPs/shop_ledger_app/internal/dto"
)

// CustomerReaderSvc defines read operations for customers
type CustomerReaderSvc interface {
	ListCustomers(ctx context.Context) ([]domain.Customer, error)
	GetCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error)

	// SearchCustomers matches the query against names (case-insensitive) and phone numbers.
	SearchCustomers(ctx context.Context, query string) ([]domain.Customer, error)
}

// CustomerWriterSvc defines write operations for customers
type CustomerWriterSvc interface {
	CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest) (*domain.Customer, error)
	UpdateCustomer(ctx context.Context, customerID string, req dto.UpdateCustomerRequest) (*domain.Customer, error)
	DeleteCustomer(ctx context.Context, customerID string) error
}

// CustomerSvcFacade combines all customer-related service interfaces
type CustomerSvcFacade interface {
	CustomerReaderSvc
	CustomerWriterSvc
}
