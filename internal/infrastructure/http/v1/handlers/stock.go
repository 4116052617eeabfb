package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"bevstock/internal/core/tx"
	"bevstock/internal/domain/catalogs/society"
	"bevstock/internal/domain/ledger"
	"bevstock/internal/domain/reports"
	"bevstock/internal/infrastructure/http/v1/dto"
)

// StockHandler serves the lot ledger and the read-side reports.
type StockHandler struct {
	*BaseHandler
	txManager tx.Manager
	ledger    *ledger.Service
	societies *society.Service
	reports   *reports.Service
}

func NewStockHandler(txManager tx.Manager, ledgerSvc *ledger.Service, societies *society.Service, reportsSvc *reports.Service) *StockHandler {
	return &StockHandler{
		BaseHandler: NewBaseHandler(),
		txManager:   txManager,
		ledger:      ledgerSvc,
		societies:   societies,
		reports:     reportsSvc,
	}
}

// AddStock handles POST /stock/add: a manual lot outside the purchase flow.
func (h *StockHandler) AddStock(c *gin.Context) {
	var req dto.AddStockRequest
	if !h.BindJSON(c, &req) {
		return
	}

	n, societyRef, err := req.ToNewLot()
	if err != nil {
		h.Error(c, err)
		return
	}

	ctx := c.Request.Context()

	if societyRef != nil {
		societyID, err := dto.ParseID("societyId", *societyRef)
		if err != nil {
			h.Error(c, err)
			return
		}
		soc, err := h.societies.GetByID(ctx, societyID)
		if err != nil {
			h.Error(c, err)
			return
		}
		n.SocietyID = soc.ID
	} else {
		soc, err := h.societies.GetDefault(ctx)
		if err != nil {
			h.Error(c, err)
			return
		}
		n.SocietyID = soc.ID
	}

	var lot *ledger.Lot
	err = h.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		var txErr error
		lot, txErr = h.ledger.AddLot(ctx, n)
		return txErr
	})
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, lot)
}

// Overview handles GET /stock: every article with availability and status.
func (h *StockHandler) Overview(c *gin.Context) {
	rows, err := h.reports.StockOverview(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OKList(c, rows, len(rows))
}

// ArticleStock handles GET /stock/:id: one article with its open lots.
func (h *StockHandler) ArticleStock(c *gin.Context) {
	articleID, err := dto.ParseID("id", c.Param("id"))
	if err != nil {
		h.Error(c, err)
		return
	}

	stock, err := h.reports.ArticleStock(c.Request.Context(), articleID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, stock)
}

// Lots handles GET /stock/:id/lots: the open lots in consumption order.
func (h *StockHandler) Lots(c *gin.Context) {
	articleID, err := dto.ParseID("id", c.Param("id"))
	if err != nil {
		h.Error(c, err)
		return
	}

	lots, err := h.reports.LotDetail(c.Request.Context(), articleID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OKList(c, lots, len(lots))
}

// Dashboard handles GET /dashboard.
func (h *StockHandler) Dashboard(c *gin.Context) {
	d, err := h.reports.Dashboard(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, d)
}
