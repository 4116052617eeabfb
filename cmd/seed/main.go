// Package main provides a CLI tool for bootstrapping the schema and
// seeding the database with sample beverage data.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/joho/godotenv"

	"bevstock/internal/core/id"
	"bevstock/internal/core/types"
	"bevstock/internal/domain/catalogs/article"
	"bevstock/internal/domain/catalogs/client"
	"bevstock/internal/domain/catalogs/provider"
	"bevstock/internal/domain/catalogs/society"
	"bevstock/internal/domain/ledger"
	"bevstock/internal/infrastructure/storage/postgres"
	"bevstock/internal/infrastructure/storage/postgres/catalog_repo"
	"bevstock/internal/infrastructure/storage/postgres/ledger_repo"
	"bevstock/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(dbURL))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	log.Info("connected to database")

	if err := applyMigrations(ctx, pool, log); err != nil {
		log.Fatalw("failed to apply migrations", "error", err)
	}

	if os.Getenv("SEED_SAMPLE_DATA") == "true" {
		if err := seedSampleData(ctx, pool, log); err != nil {
			log.Fatalw("failed to seed sample data", "error", err)
		}
	}

	log.Info("seeding completed successfully")
}

// applyMigrations executes every .sql file in the migrations directory,
// in lexical order. The statements are idempotent.
func applyMigrations(ctx context.Context, pool *postgres.Pool, log *logger.Logger) error {
	dir := os.Getenv("MIGRATIONS_DIR")
	if dir == "" {
		dir = "migrations"
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.sql"))
	if err != nil {
		return err
	}
	sort.Strings(files)

	for _, file := range files {
		sql, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("read %s: %w", file, err)
		}
		if _, err := pool.Exec(ctx, string(sql)); err != nil {
			return fmt.Errorf("apply %s: %w", file, err)
		}
		log.Infow("migration applied", "file", file)
	}

	return nil
}

func seedSampleData(ctx context.Context, pool *postgres.Pool, log *logger.Logger) error {
	var existing int
	if err := pool.QueryRow(ctx, "SELECT COUNT(*) FROM cat_articles").Scan(&existing); err != nil {
		return err
	}
	if existing > 0 {
		log.Info("sample data already present, skipping")
		return nil
	}

	txManager := postgres.NewTxManager(pool)

	articleSvc := article.NewService(catalog_repo.NewArticleRepo(txManager))
	clientSvc := client.NewService(catalog_repo.NewClientRepo(txManager))
	providerSvc := provider.NewService(catalog_repo.NewProviderRepo(txManager))
	societySvc := society.NewService(catalog_repo.NewSocietyRepo(txManager))
	ledgerSvc := ledger.NewService(ledger_repo.NewLotRepo(txManager))

	return txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		societies := []*society.Society{
			newSociety("SOC001", "BEBIDAS ARGENTINAS S.A.", "SOCIEDAD ANONIMA", true),
			newSociety("SOC002", "DISTRIBUIDORA DEL SUR S.R.L.", "SOCIEDAD DE RESPONSABILIDAD LIMITADA", false),
		}
		for _, s := range societies {
			if err := societySvc.Create(ctx, s); err != nil {
				return err
			}
		}

		providers := map[string]*provider.Provider{}
		for _, p := range []*provider.Provider{
			newProvider("PROV001", "CERVECERIA QUILMES", "CERVEZAS"),
			newProvider("PROV002", "BODEGA SAN RAFAEL", "VINOS"),
			newProvider("PROV003", "CAMPARI ARGENTINA", "APERITIVOS"),
			newProvider("PROV004", "DISTRIBUIDORA WHISKY", "DESTILADOS"),
			newProvider("PROV005", "EMBOTELLADORA COCA-COLA", "GASEOSAS"),
			newProvider("PROV006", "AGUAS PURIFICADAS S.A.", "AGUAS"),
		} {
			if err := providerSvc.Create(ctx, p); err != nil {
				return err
			}
			providers[p.Code] = p
		}

		articles := map[string]*article.Article{}
		for _, a := range []*article.Article{
			newArticle("CERV001", "CERVEZA ANDES ORIGEN 730ML", 12, "CERVEZAS"),
			newArticle("CERV002", "CERVEZA QUILMES 1L", 12, "CERVEZAS"),
			newArticle("VINO001", "VINO MALBEC RESERVA 750ML", 6, "VINOS"),
			newArticle("VINO002", "VINO CABERNET SAUVIGNON 750ML", 6, "VINOS"),
			newArticle("APER001", "APERITIVO CAMPARI 750ML", 12, "APERITIVOS"),
			newArticle("WHIS001", "WHISKY JOHNNIE WALKER RED 750ML", 6, "WHISKY"),
			newArticle("GASE001", "GASEOSA COCA COLA 2.25L", 6, "GASEOSAS"),
			newArticle("AGUA001", "AGUA MINERAL 2L", 12, "AGUAS"),
		} {
			if err := articleSvc.Create(ctx, a); err != nil {
				return err
			}
			articles[a.Code] = a
		}

		for _, c := range []*client.Client{
			newClient("CLI001", "SUPERMERCADO LA ANONIMA", "SUPERMERCADO"),
			newClient("CLI002", "HIPERMERCADO CARREFOUR", "HIPERMERCADO"),
			newClient("CLI003", "ALMACEN DON JOSE", "ALMACEN"),
			newClient("CLI004", "RESTAURANT EL NOBLE", "RESTAURANT"),
			newClient("CLI005", "WHISKY BAR", "BAR"),
		} {
			if err := clientSvc.Create(ctx, c); err != nil {
				return err
			}
		}

		defaultSociety := societies[0]

		seedLots := []struct {
			articleCode  string
			providerCode string
			invoice      string
			invoiceDate  string
			units        int
			unitCost     float64
		}{
			{"CERV001", "PROV001", "FAC-001", "2024-01-15", 240, 2.50},
			{"CERV002", "PROV001", "FAC-001", "2024-01-15", 120, 2.80},
			{"VINO001", "PROV002", "FAC-002", "2024-02-01", 60, 8.00},
			{"VINO002", "PROV002", "FAC-003", "2024-02-10", 48, 12.50},
			{"APER001", "PROV003", "FAC-004", "2024-03-05", 120, 15.00},
			{"WHIS001", "PROV004", "FAC-005", "2024-03-15", 36, 25.00},
			{"GASE001", "PROV005", "FAC-006", "2024-04-01", 72, 3.50},
			{"AGUA001", "PROV006", "FAC-007", "2024-04-10", 144, 1.20},
		}

		for _, sl := range seedLots {
			invoiceDate, err := time.Parse("2006-01-02", sl.invoiceDate)
			if err != nil {
				return err
			}

			prov := providers[sl.providerCode]
			provID := prov.ID

			_, err = ledgerSvc.AddLot(ctx, &ledger.NewLot{
				ArticleID:     articles[sl.articleCode].ID,
				ProviderID:    &provID,
				ProviderName:  prov.Name,
				InvoiceNumber: sl.invoice,
				InvoiceDate:   invoiceDate,
				Quantity:      types.NewQuantityFromInt(sl.units),
				UnitCost:      types.NewMoney(sl.unitCost),
				SocietyID:     defaultSociety.ID,
				LotNumber:     fmt.Sprintf("LOT-%s-1", sl.articleCode),
			})
			if err != nil {
				return err
			}
		}

		log.Infow("sample data seeded",
			"articles", len(articles),
			"providers", len(providers),
			"lots", len(seedLots),
		)
		return nil
	})
}

func newSociety(code, name, societyType string, isDefault bool) *society.Society {
	return &society.Society{
		ID:          id.New(),
		Code:        code,
		Name:        name,
		SocietyType: &societyType,
		IsDefault:   isDefault,
		CreatedAt:   time.Now().UTC(),
	}
}

func newProvider(code, name, category string) *provider.Provider {
	return &provider.Provider{
		ID:        id.New(),
		Code:      code,
		Name:      name,
		Category:  &category,
		CreatedAt: time.Now().UTC(),
	}
}

func newArticle(code, description string, unitsPerCase int, category string) *article.Article {
	return &article.Article{
		ID:           id.New(),
		Code:         code,
		Description:  description,
		Unit:         "UN",
		UnitsPerCase: unitsPerCase,
		Category:     &category,
		CreatedAt:    time.Now().UTC(),
	}
}

func newClient(code, name, clientType string) *client.Client {
	return &client.Client{
		ID:         id.New(),
		Code:       code,
		Name:       name,
		ClientType: &clientType,
		CreatedAt:  time.Now().UTC(),
	}
}
