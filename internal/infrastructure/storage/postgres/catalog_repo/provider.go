package catalog_repo

import (
	"bevstock/internal/domain/catalogs/provider"
	"bevstock/internal/infrastructure/storage/postgres"
)

const providerTable = "cat_providers"

// ProviderRepo implements provider.Repository.
type ProviderRepo struct {
	*BaseCatalogRepo[*provider.Provider]
}

// NewProviderRepo creates a new provider repository.
func NewProviderRepo(txManager *postgres.TxManager) *ProviderRepo {
	return &ProviderRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txManager,
			providerTable,
			"provider",
			postgres.ExtractDBColumns[provider.Provider](),
			func() *provider.Provider { return &provider.Provider{} },
		),
	}
}
