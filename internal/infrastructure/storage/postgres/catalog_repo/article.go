package catalog_repo

import (
	"bevstock/internal/domain/catalogs/article"
	"bevstock/internal/infrastructure/storage/postgres"
)

const articleTable = "cat_articles"

// ArticleRepo implements article.Repository.
type ArticleRepo struct {
	*BaseCatalogRepo[*article.Article]
}

// NewArticleRepo creates a new article repository.
func NewArticleRepo(txManager *postgres.TxManager) *ArticleRepo {
	return &ArticleRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txManager,
			articleTable,
			"article",
			postgres.ExtractDBColumns[article.Article](),
			func() *article.Article { return &article.Article{} },
		),
	}
}
