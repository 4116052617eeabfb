package sales

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"bevstock/internal/core/id"
	"bevstock/internal/core/tx"
	"bevstock/internal/core/types"
	"bevstock/internal/domain/catalogs/article"
	"bevstock/internal/domain/catalogs/client"
	"bevstock/internal/domain/catalogs/society"
	"bevstock/internal/domain/ledger"
	"bevstock/pkg/logger"
)

// ArticleResolver resolves articles referenced by sale lines.
type ArticleResolver interface {
	GetByID(ctx context.Context, articleID id.ID) (*article.Article, error)
}

// ClientResolver resolves the client a sale is billed to.
type ClientResolver interface {
	GetByID(ctx context.Context, clientID id.ID) (*client.Client, error)
}

// SocietyResolver resolves the billing entity, falling back to the
// default society when the payload omits one.
type SocietyResolver interface {
	GetByID(ctx context.Context, societyID id.ID) (*society.Society, error)
	GetDefault(ctx context.Context) (*society.Society, error)
}

// LotLedger is the stock-depletion port, implemented by ledger.Service.
type LotLedger interface {
	ConsumeFIFO(ctx context.Context, articleID id.ID, articleName string, units types.Quantity) (*ledger.Consumption, error)
	Reverse(ctx context.Context, lotID id.ID, units types.Quantity) error
}

// Service is the sale transaction engine.
type Service struct {
	txManager tx.Manager
	repo      Repository
	articles  ArticleResolver
	clients   ClientResolver
	societies SocietyResolver
	ledger    LotLedger
	audit     Auditor // optional
}

func NewService(
	txManager tx.Manager,
	repo Repository,
	articles ArticleResolver,
	clients ClientResolver,
	societies SocietyResolver,
	lotLedger LotLedger,
	audit Auditor,
) *Service {
	return &Service{
		txManager: txManager,
		repo:      repo,
		articles:  articles,
		clients:   clients,
		societies: societies,
		ledger:    lotLedger,
		audit:     audit,
	}
}

// Create persists a new sale. The whole operation runs in one
// transaction: any failure leaves no sale, no lines and no lot
// decrement behind.
func (s *Service) Create(ctx context.Context, in *Input) (*Result, error) {
	if err := in.Validate(ctx); err != nil {
		return nil, err
	}

	var result *Result
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.clients.GetByID(ctx, in.ClientID); err != nil {
			return err
		}
		societyID, err := s.resolveSociety(ctx, in.SocietyID)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		sale := &Sale{
			ID:        id.New(),
			SaleDate:  saleDate(in.Date, now),
			ClientID:  in.ClientID,
			SocietyID: societyID,
			TotalSale: totalRequested(in.Lines),
			TotalCost: types.ZeroMoney(),
			CreatedAt: now,
			UpdatedAt: now,
		}
		sale.TotalMargin = sale.TotalSale

		// header first with a placeholder cost, totals follow the lines
		if err := s.repo.InsertSale(ctx, sale); err != nil {
			return err
		}

		lines, totalCost, err := s.processLines(ctx, sale.ID, in.Lines)
		if err != nil {
			return err
		}
		if err := s.repo.InsertLines(ctx, lines); err != nil {
			return err
		}

		sale.TotalCost = totalCost
		sale.TotalMargin = sale.TotalSale.Sub(totalCost)
		if err := s.repo.UpdateSale(ctx, sale); err != nil {
			return err
		}

		if s.audit != nil {
			if err := s.audit.Record(ctx, "sale", sale.ID, "create",
				auditPayload{Sale: sale, Lines: lines, At: now}); err != nil {
				return err
			}
		}

		result = newResult(sale)
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "sale created",
		"sale_id", result.SaleID,
		"client_id", in.ClientID,
		"lines", len(in.Lines),
		"total_sale", result.TotalSale)
	return result, nil
}

// Update replaces an existing sale with the payload: previously
// consumed lots are restored, the old lines deleted, and the new line
// list processed exactly as on create. Atomic like Create.
//
// Reversal restores quantity to the specific lot each old line
// recorded, not to a freshly derived FIFO source, so repeated edits can
// redistribute which lots end up depleted. That matches the system's
// accounting behavior and is covered by tests.
func (s *Service) Update(ctx context.Context, saleID id.ID, in *Input) (*Result, error) {
	if err := in.Validate(ctx); err != nil {
		return nil, err
	}

	var result *Result
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		sale, err := s.repo.GetSale(ctx, saleID)
		if err != nil {
			return err
		}

		oldLines, err := s.repo.ListLines(ctx, saleID)
		if err != nil {
			return err
		}
		for _, old := range oldLines {
			if old.LotID == nil {
				continue
			}
			if err := s.ledger.Reverse(ctx, *old.LotID, old.Units); err != nil {
				return err
			}
		}
		if err := s.repo.DeleteLines(ctx, saleID); err != nil {
			return err
		}

		if _, err := s.clients.GetByID(ctx, in.ClientID); err != nil {
			return err
		}
		societyID, err := s.resolveSociety(ctx, in.SocietyID)
		if err != nil {
			return err
		}

		lines, totalCost, err := s.processLines(ctx, sale.ID, in.Lines)
		if err != nil {
			return err
		}
		if err := s.repo.InsertLines(ctx, lines); err != nil {
			return err
		}

		now := time.Now().UTC()
		sale.SaleDate = saleDate(in.Date, now)
		sale.ClientID = in.ClientID
		sale.SocietyID = societyID
		sale.TotalSale = totalRequested(in.Lines)
		sale.TotalCost = totalCost
		sale.TotalMargin = sale.TotalSale.Sub(totalCost)
		sale.UpdatedAt = now
		if err := s.repo.UpdateSale(ctx, sale); err != nil {
			return err
		}

		if s.audit != nil {
			if err := s.audit.Record(ctx, "sale", sale.ID, "update",
				auditPayload{Sale: sale, Lines: lines, At: now}); err != nil {
				return err
			}
		}

		result = newResult(sale)
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "sale updated",
		"sale_id", result.SaleID,
		"lines", len(in.Lines),
		"total_sale", result.TotalSale)
	return result, nil
}

// PreviewQuote computes the per-line and total breakdown for a cart
// using requested prices only. Stock is neither checked nor consumed
// and nothing is persisted.
func (s *Service) PreviewQuote(ctx context.Context, in *Input) (*Preview, error) {
	if err := in.Validate(ctx); err != nil {
		return nil, err
	}
	if _, err := s.clients.GetByID(ctx, in.ClientID); err != nil {
		return nil, err
	}

	preview := &Preview{TotalSale: types.ZeroMoney()}
	for _, li := range in.Lines {
		art, err := s.articles.GetByID(ctx, li.ArticleID)
		if err != nil {
			return nil, err
		}
		units := li.Cases * art.UnitsPerCase
		saleTotal := li.PricePerCase.Mul(decimal.NewFromInt(int64(li.Cases)))

		preview.Lines = append(preview.Lines, PreviewLine{
			ArticleID:    art.ID,
			Description:  art.Description,
			Cases:        li.Cases,
			Units:        units,
			PricePerCase: li.PricePerCase,
			PricePerUnit: li.PricePerCase.Div(decimal.NewFromInt(int64(art.UnitsPerCase))),
			SaleTotal:    saleTotal,
		})
		preview.TotalSale = preview.TotalSale.Add(saleTotal)
	}
	return preview, nil
}

// GetByID returns a sale with its lines.
func (s *Service) GetByID(ctx context.Context, saleID id.ID) (*Detail, error) {
	sale, err := s.repo.GetSale(ctx, saleID)
	if err != nil {
		return nil, err
	}
	lines, err := s.repo.ListLines(ctx, saleID)
	if err != nil {
		return nil, err
	}
	return &Detail{Sale: sale, Lines: lines}, nil
}

// List returns sale headers matching the filter.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Sale, error) {
	return s.repo.ListSales(ctx, filter)
}

// processLines runs the per-line consumption loop shared by Create and
// Update: resolve the article, convert cases to units, deplete lots
// FIFO, derive the line's monetary fields. Returns the lines and the
// blended cost across all of them.
func (s *Service) processLines(ctx context.Context, saleID id.ID, inputs []LineInput) ([]*Line, types.Money, error) {
	totalCost := types.ZeroMoney()
	lines := make([]*Line, 0, len(inputs))

	for i, li := range inputs {
		art, err := s.articles.GetByID(ctx, li.ArticleID)
		if err != nil {
			return nil, totalCost, err
		}

		units := types.NewQuantityFromInt(li.Cases * art.UnitsPerCase)
		cons, err := s.ledger.ConsumeFIFO(ctx, art.ID, art.Description, units)
		if err != nil {
			return nil, totalCost, err
		}

		saleTotal := li.PricePerCase.Mul(decimal.NewFromInt(int64(li.Cases)))
		line := &Line{
			ID:                 id.New(),
			SaleID:             saleID,
			LineNo:             i + 1,
			ArticleID:          art.ID,
			ArticleCode:        art.Code,
			ArticleDescription: art.Description,
			LotID:              cons.LastLotID,
			Cases:              li.Cases,
			Units:              units,
			PricePerCase:       li.PricePerCase,
			PricePerUnit:       li.PricePerCase.Div(decimal.NewFromInt(int64(art.UnitsPerCase))),
			SaleTotal:          saleTotal,
			CostTotal:          cons.TotalCost,
			MarginTotal:        saleTotal.Sub(cons.TotalCost),
		}

		lines = append(lines, line)
		totalCost = totalCost.Add(cons.TotalCost)
	}

	return lines, totalCost, nil
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

func totalRequested(lines []LineInput) types.Money {
	total := types.ZeroMoney()
	for _, li := range lines {
		total = total.Add(li.PricePerCase.Mul(decimal.NewFromInt(int64(li.Cases))))
	}
	return total
}

func saleDate(requested, fallback time.Time) time.Time {
	if requested.IsZero() {
		return fallback
	}
	return requested
}

func newResult(sale *Sale) *Result {
	return &Result{
		SaleID:      sale.ID,
		TotalSale:   types.FormatMoney(sale.TotalSale),
		TotalCost:   types.FormatMoney(sale.TotalCost),
		TotalMargin: types.FormatMoney(sale.TotalMargin),
	}
}
