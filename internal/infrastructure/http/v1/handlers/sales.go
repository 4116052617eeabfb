package handlers

import (
	"github.com/gin-gonic/gin"

	"bevstock/internal/domain/sales"
	"bevstock/internal/infrastructure/http/v1/dto"
)

// SalesHandler serves the sale transaction engine.
type SalesHandler struct {
	*BaseHandler
	svc *sales.Service
}

func NewSalesHandler(svc *sales.Service) *SalesHandler {
	return &SalesHandler{BaseHandler: NewBaseHandler(), svc: svc}
}

// Create handles POST /sales.
func (h *SalesHandler) Create(c *gin.Context) {
	var req dto.SaleRequest
	if !h.BindJSON(c, &req) {
		return
	}

	in, err := req.ToInput()
	if err != nil {
		h.Error(c, err)
		return
	}

	result, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, result)
}

// Update handles PUT /sales/:id. Full replace, not a merge.
func (h *SalesHandler) Update(c *gin.Context) {
	saleID, err := dto.ParseID("id", c.Param("id"))
	if err != nil {
		h.Error(c, err)
		return
	}

	var req dto.SaleRequest
	if !h.BindJSON(c, &req) {
		return
	}

	in, err := req.ToInput()
	if err != nil {
		h.Error(c, err)
		return
	}

	result, err := h.svc.Update(c.Request.Context(), saleID, in)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, result)
}

// Preview handles POST /sales/preview. Computes the quote without
// touching stock or persisting anything.
func (h *SalesHandler) Preview(c *gin.Context) {
	var req dto.SaleRequest
	if !h.BindJSON(c, &req) {
		return
	}

	in, err := req.ToInput()
	if err != nil {
		h.Error(c, err)
		return
	}

	preview, err := h.svc.PreviewQuote(c.Request.Context(), in)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, preview)
}

// Get handles GET /sales/:id, including nested lines.
func (h *SalesHandler) Get(c *gin.Context) {
	saleID, err := dto.ParseID("id", c.Param("id"))
	if err != nil {
		h.Error(c, err)
		return
	}

	detail, err := h.svc.GetByID(c.Request.Context(), saleID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, detail)
}

// List handles GET /sales.
func (h *SalesHandler) List(c *gin.Context) {
	var query dto.SaleListQuery
	if !h.BindQuery(c, &query) {
		return
	}

	filter, err := query.ToFilter()
	if err != nil {
		h.Error(c, err)
		return
	}

	items, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OKList(c, items, len(items))
}
