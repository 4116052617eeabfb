package handlers

import (
	"github.com/gin-gonic/gin"

	"bevstock/internal/domain/purchasing"
	"bevstock/internal/infrastructure/http/v1/dto"
)

// PurchasesHandler serves the purchase recorder.
type PurchasesHandler struct {
	*BaseHandler
	svc *purchasing.Service
}

func NewPurchasesHandler(svc *purchasing.Service) *PurchasesHandler {
	return &PurchasesHandler{BaseHandler: NewBaseHandler(), svc: svc}
}

// Create handles POST /purchases: a whole invoice batch, atomically.
func (h *PurchasesHandler) Create(c *gin.Context) {
	var req dto.PurchaseBatchRequest
	if !h.BindJSON(c, &req) {
		return
	}

	in, err := req.ToInput()
	if err != nil {
		h.Error(c, err)
		return
	}

	result, err := h.svc.RecordBatch(c.Request.Context(), in)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, result)
}

// List handles GET /purchases.
func (h *PurchasesHandler) List(c *gin.Context) {
	if invoice := c.Query("invoice"); invoice != "" {
		items, err := h.svc.ListByInvoice(c.Request.Context(), invoice)
		if err != nil {
			h.Error(c, err)
			return
		}
		h.OKList(c, items, len(items))
		return
	}

	limit := h.ParseIntQuery(c, "limit", 50)
	offset := h.ParseIntQuery(c, "offset", 0)

	items, err := h.svc.List(c.Request.Context(), limit, offset)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OKList(c, items, len(items))
}
