package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"bevstock/internal/core/apperror"
	"bevstock/internal/domain/catalogs/society"
	"bevstock/internal/infrastructure/storage/postgres"
)

const societyTable = "cat_societies"

// SocietyRepo implements society.Repository.
type SocietyRepo struct {
	*BaseCatalogRepo[*society.Society]
	txManager *postgres.TxManager
}

// NewSocietyRepo creates a new society repository.
func NewSocietyRepo(txManager *postgres.TxManager) *SocietyRepo {
	return &SocietyRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txManager,
			societyTable,
			"society",
			postgres.ExtractDBColumns[society.Society](),
			func() *society.Society { return &society.Society{} },
		),
		txManager: txManager,
	}
}

// GetDefault retrieves the society flagged as default.
func (r *SocietyRepo) GetDefault(ctx context.Context) (*society.Society, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"is_default": true}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var s society.Society
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &s, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("society", "default")
		}
		return nil, fmt.Errorf("get default society: %w", err)
	}

	return &s, nil
}
