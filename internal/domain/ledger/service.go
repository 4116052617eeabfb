package ledger

import (
	"context"
	"time"

	"bevstock/internal/core/apperror"
	"bevstock/internal/core/id"
	"bevstock/internal/core/types"
	"bevstock/pkg/logger"
)

// Service implements FIFO consumption and reversal over the lot
// repository. It does not open transactions itself; callers (the sale
// and purchase engines) wrap it in theirs.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ConsumeFIFO takes units from the article's open lots, oldest invoice
// first. The lots are locked and the total availability is checked
// before any lot is touched, so an insufficient-stock failure leaves
// every lot unchanged even outside a transaction.
//
// articleName is only used to build a readable error.
func (s *Service) ConsumeFIFO(ctx context.Context, articleID id.ID, articleName string, units types.Quantity) (*Consumption, error) {
	if !units.IsPositive() {
		return nil, apperror.NewValidation("units to consume must be positive").
			WithDetail("field", "units")
	}

	lots, err := s.repo.ListAvailableForUpdate(ctx, articleID)
	if err != nil {
		return nil, err
	}

	var available types.Quantity
	for _, lot := range lots {
		available += lot.RemainingQuantity
	}
	if available < units {
		return nil, apperror.NewInsufficientStock(
			articleID.String(), articleName, units.Float64(), available.Float64())
	}

	cons := &Consumption{TotalCost: types.ZeroMoney()}
	remaining := units
	for _, lot := range lots {
		if remaining.IsZero() {
			break
		}
		take := lot.RemainingQuantity.Min(remaining)

		if err := s.repo.AdjustRemaining(ctx, lot.ID, -take); err != nil {
			return nil, err
		}

		cons.Parts = append(cons.Parts, ConsumedPart{
			LotID:     lot.ID,
			LotNumber: lot.LotNumber,
			Units:     take,
			UnitCost:  lot.UnitCost,
		})
		cons.TotalCost = cons.TotalCost.Add(lot.UnitCost.Mul(take.Decimal()))

		lotID := lot.ID
		cons.LastLotID = &lotID
		remaining -= take
	}

	logger.Debug(ctx, "fifo consumption",
		"article_id", articleID,
		"units", units.String(),
		"lots", len(cons.Parts),
		"total_cost", types.FormatMoney(cons.TotalCost))

	return cons, nil
}

// PlanFIFO computes the same consumption as ConsumeFIFO without
// locking or mutating any lot. Used by the sale preview.
func (s *Service) PlanFIFO(ctx context.Context, articleID id.ID, articleName string, units types.Quantity) (*Consumption, error) {
	if !units.IsPositive() {
		return nil, apperror.NewValidation("units to consume must be positive").
			WithDetail("field", "units")
	}

	lots, err := s.repo.ListByArticle(ctx, articleID, true)
	if err != nil {
		return nil, err
	}

	var available types.Quantity
	for _, lot := range lots {
		available += lot.RemainingQuantity
	}
	if available < units {
		return nil, apperror.NewInsufficientStock(
			articleID.String(), articleName, units.Float64(), available.Float64())
	}

	cons := &Consumption{TotalCost: types.ZeroMoney()}
	remaining := units
	for _, lot := range lots {
		if remaining.IsZero() {
			break
		}
		take := lot.RemainingQuantity.Min(remaining)
		cons.Parts = append(cons.Parts, ConsumedPart{
			LotID:     lot.ID,
			LotNumber: lot.LotNumber,
			Units:     take,
			UnitCost:  lot.UnitCost,
		})
		cons.TotalCost = cons.TotalCost.Add(lot.UnitCost.Mul(take.Decimal()))
		lotID := lot.ID
		cons.LastLotID = &lotID
		remaining -= take
	}
	return cons, nil
}

// Reverse returns units to a specific lot. It restores whatever lot
// the sale line recorded, even if the original consumption spanned
// several lots, and does not cap remaining at the initial quantity.
func (s *Service) Reverse(ctx context.Context, lotID id.ID, units types.Quantity) error {
	if !units.IsPositive() {
		return apperror.NewValidation("units to reverse must be positive").
			WithDetail("field", "units")
	}
	if _, err := s.repo.GetByID(ctx, lotID); err != nil {
		return err
	}
	if err := s.repo.AdjustRemaining(ctx, lotID, units); err != nil {
		return err
	}
	logger.Debug(ctx, "lot reversal", "lot_id", lotID, "units", units.String())
	return nil
}

// AddLot creates a new lot with remaining = initial quantity.
func (s *Service) AddLot(ctx context.Context, n *NewLot) (*Lot, error) {
	if err := n.Validate(ctx); err != nil {
		return nil, err
	}

	lot := &Lot{
		ID:                id.New(),
		ArticleID:         n.ArticleID,
		ProviderID:        n.ProviderID,
		ProviderName:      n.ProviderName,
		InvoiceNumber:     n.InvoiceNumber,
		InvoiceDate:       n.InvoiceDate,
		InitialQuantity:   n.Quantity,
		RemainingQuantity: n.Quantity,
		UnitCost:          n.UnitCost,
		SocietyID:         n.SocietyID,
		PurchaseID:        n.PurchaseID,
		LotNumber:         n.LotNumber,
		CreatedAt:         time.Now().UTC(),
	}
	if lot.InvoiceDate.IsZero() {
		lot.InvoiceDate = lot.CreatedAt
	}

	if err := s.repo.Create(ctx, lot); err != nil {
		return nil, err
	}
	return lot, nil
}

// ListByArticle exposes an article's lot history.
func (s *Service) ListByArticle(ctx context.Context, articleID id.ID, onlyAvailable bool) ([]*Lot, error) {
	return s.repo.ListByArticle(ctx, articleID, onlyAvailable)
}

// AvailableUnits reports the article's total remaining stock.
func (s *Service) AvailableUnits(ctx context.Context, articleID id.ID) (types.Quantity, error) {
	return s.repo.AvailableUnits(ctx, articleID)
}
