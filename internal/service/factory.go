package service

import (
	"github.com/billfold/billfold/internal/config"
	"github.com/billfold/billfold/internal/domain/customer"
	"github.com/billfold/billfold/internal/domain/invoice"
	"github.com/billfold/billfold/internal/domain/resource"
	"github.com/billfold/billfold/internal/domain/settings"
	"github.com/billfold/billfold/internal/logger"
)

// ServiceParams holds common dependencies for services
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration

	// Repositories
	InvoiceRepo     invoice.Repository
	InvoiceItemRepo invoice.ItemRepository
	ResourceRepo    resource.Repository
	CustomerRepo    customer.Repository
	SettingsRepo    settings.Repository
}

// NewServiceParams bundles the shared service dependencies
func NewServiceParams(
	logger *logger.Logger,
	config *config.Configuration,
	invoiceRepo invoice.Repository,
	invoiceItemRepo invoice.ItemRepository,
	resourceRepo resource.Repository,
	customerRepo customer.Repository,
	settingsRepo settings.Repository,
) ServiceParams {
	return ServiceParams{
		Logger:          logger,
		Config:          config,
		InvoiceRepo:     invoiceRepo,
		InvoiceItemRepo: invoiceItemRepo,
		ResourceRepo:    resourceRepo,
		CustomerRepo:    customerRepo,
		SettingsRepo:    settingsRepo,
	}
}
