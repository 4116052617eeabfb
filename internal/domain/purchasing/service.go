package purchasing

import (
	"context"
	"fmt"
	"time"

	"bevstock/internal/core/id"
	"bevstock/internal/core/tx"
	"bevstock/internal/domain/catalogs/article"
	"bevstock/internal/domain/catalogs/provider"
	"bevstock/internal/domain/catalogs/society"
	"bevstock/internal/domain/ledger"
	"bevstock/pkg/logger"
)

// Repository is the persistence port for purchase records.
type Repository interface {
	Create(ctx context.Context, p *Purchase) error
	GetByID(ctx context.Context, purchaseID id.ID) (*Purchase, error)
	ListByInvoice(ctx context.Context, invoiceNumber string) ([]*Purchase, error)
	List(ctx context.Context, limit, offset int) ([]*Purchase, error)
}

// ArticleResolver resolves purchased articles.
type ArticleResolver interface {
	GetByID(ctx context.Context, articleID id.ID) (*article.Article, error)
}

// ProviderResolver resolves suppliers, used to denormalize the supplier
// name onto created lots.
type ProviderResolver interface {
	GetByID(ctx context.Context, providerID id.ID) (*provider.Provider, error)
}

// SocietyResolver resolves the booking entity.
type SocietyResolver interface {
	GetByID(ctx context.Context, societyID id.ID) (*society.Society, error)
	GetDefault(ctx context.Context) (*society.Society, error)
}

// LotCreator is the ledger port: one lot per recorded purchase.
type LotCreator interface {
	AddLot(ctx context.Context, n *ledger.NewLot) (*ledger.Lot, error)
}

// Service records purchase batches.
type Service struct {
	txManager tx.Manager
	repo      Repository
	articles  ArticleResolver
	providers ProviderResolver
	societies SocietyResolver
	lots      LotCreator
}

func NewService(
	txManager tx.Manager,
	repo Repository,
	articles ArticleResolver,
	providers ProviderResolver,
	societies SocietyResolver,
	lots LotCreator,
) *Service {
	return &Service{
		txManager: txManager,
		repo:      repo,
		articles:  articles,
		providers: providers,
		societies: societies,
		lots:      lots,
	}
}

// RecordBatch persists every entry of an invoice and creates one lot
// per entry, in one transaction. A failing entry aborts the whole
// batch.
func (s *Service) RecordBatch(ctx context.Context, in *BatchInput) (*BatchResult, error) {
	if err := in.Validate(ctx); err != nil {
		return nil, err
	}

	result := &BatchResult{}
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		for i, entry := range in.Entries {
			if _, err := s.articles.GetByID(ctx, entry.ArticleID); err != nil {
				return err
			}

			providerName := ""
			if entry.ProviderID != nil && !id.IsNil(*entry.ProviderID) {
				prov, err := s.providers.GetByID(ctx, *entry.ProviderID)
				if err != nil {
					return err
				}
				providerName = prov.Name
			}

			societyID, err := s.resolveSociety(ctx, entry.SocietyID)
			if err != nil {
				return err
			}

			subTotal, totalCost, unitCost := entry.cost()
			purchase := &Purchase{
				ID:                    id.New(),
				ArticleID:             entry.ArticleID,
				ProviderID:            entry.ProviderID,
				SocietyID:             societyID,
				InvoiceNumber:         in.Invoice.Number,
				InvoiceDate:           in.Invoice.InvoiceDate,
				ReceiptDate:           in.Invoice.ReceiptDate,
				Quantity:              entry.Quantity,
				NetAmount:             entry.NetAmount,
				ShippingCost:          entry.ShippingCost,
				InternalTaxes:         entry.InternalTaxes,
				VATPerception:         entry.VATPerception,
				GrossIncomePerception: entry.GrossIncomePerception,
				SubTotal:              subTotal,
				TotalCost:             totalCost,
				UnitCost:              unitCost,
				CreatedAt:             time.Now().UTC(),
			}
			if err := s.repo.Create(ctx, purchase); err != nil {
				return err
			}

			purchaseID := purchase.ID
			lot, err := s.lots.AddLot(ctx, &ledger.NewLot{
				ArticleID:     entry.ArticleID,
				ProviderID:    entry.ProviderID,
				ProviderName:  providerName,
				InvoiceNumber: in.Invoice.Number,
				InvoiceDate:   in.Invoice.InvoiceDate,
				Quantity:      entry.Quantity,
				UnitCost:      unitCost,
				SocietyID:     societyID,
				PurchaseID:    &purchaseID,
				LotNumber:     fmt.Sprintf("LOT-%s-%d", in.Invoice.Number, i+1),
			})
			if err != nil {
				return err
			}

			result.Recorded++
			result.Purchases = append(result.Purchases, purchase.ID)
			result.Lots = append(result.Lots, lot.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "purchase batch recorded",
		"invoice", in.Invoice.Number,
		"entries", result.Recorded)
	return result, nil
}

// GetByID returns one purchase record.
func (s *Service) GetByID(ctx context.Context, purchaseID id.ID) (*Purchase, error) {
	return s.repo.GetByID(ctx, purchaseID)
}

// ListByInvoice returns all purchases booked under an invoice number.
func (s *Service) ListByInvoice(ctx context.Context, invoiceNumber string) ([]*Purchase, error) {
	return s.repo.ListByInvoice(ctx, invoiceNumber)
}

// List returns purchases, newest first.
func (s *Service) List(ctx context.Context, limit, offset int) ([]*Purchase, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *Service) resolveSociety(ctx context.Context, societyID *id.ID) (id.ID, error) {
	if societyID != nil && !id.IsNil(*societyID) {
		soc, err := s.societies.GetByID(ctx, *societyID)
		if err != nil {
			return id.Nil(), err
		}
		return soc.ID, nil
	}
	soc, err := s.societies.GetDefault(ctx)
	if err != nil {
		return id.Nil(), err
	}
	return soc.ID, nil
}
