package handlers

import (
	"github.com/gin-gonic/gin"

	"bevstock/internal/domain/catalogs/article"
	"bevstock/internal/domain/catalogs/client"
	"bevstock/internal/domain/catalogs/provider"
	"bevstock/internal/domain/catalogs/society"
	"bevstock/internal/infrastructure/http/v1/dto"
)

// ArticleHandler serves the article catalog.
type ArticleHandler struct {
	*BaseHandler
	svc *article.Service
}

func NewArticleHandler(svc *article.Service) *ArticleHandler {
	return &ArticleHandler{BaseHandler: NewBaseHandler(), svc: svc}
}

// Create handles POST /articles.
func (h *ArticleHandler) Create(c *gin.Context) {
	var req dto.CreateArticleRequest
	if !h.BindJSON(c, &req) {
		return
	}

	a := req.ToEntity()
	if err := h.svc.Create(c.Request.Context(), a); err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, a)
}

// Update handles PUT /articles/:id (descriptive fields only).
func (h *ArticleHandler) Update(c *gin.Context) {
	articleID, err := dto.ParseID("id", c.Param("id"))
	if err != nil {
		h.Error(c, err)
		return
	}

	var req dto.UpdateArticleRequest
	if !h.BindJSON(c, &req) {
		return
	}

	a, err := h.svc.UpdateDescriptive(c.Request.Context(), articleID, req.ToUpdate())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, a)
}

// Get handles GET /articles/:id.
func (h *ArticleHandler) Get(c *gin.Context) {
	articleID, err := dto.ParseID("id", c.Param("id"))
	if err != nil {
		h.Error(c, err)
		return
	}

	a, err := h.svc.GetByID(c.Request.Context(), articleID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, a)
}

// List handles GET /articles.
func (h *ArticleHandler) List(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OKList(c, items, len(items))
}

// ClientHandler serves the client catalog.
type ClientHandler struct {
	*BaseHandler
	svc *client.Service
}

func NewClientHandler(svc *client.Service) *ClientHandler {
	return &ClientHandler{BaseHandler: NewBaseHandler(), svc: svc}
}

// Create handles POST /clients.
func (h *ClientHandler) Create(c *gin.Context) {
	var req dto.CreateClientRequest
	if !h.BindJSON(c, &req) {
		return
	}

	cl := req.ToEntity()
	if err := h.svc.Create(c.Request.Context(), cl); err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, cl)
}

// Get handles GET /clients/:id.
func (h *ClientHandler) Get(c *gin.Context) {
	clientID, err := dto.ParseID("id", c.Param("id"))
	if err != nil {
		h.Error(c, err)
		return
	}

	cl, err := h.svc.GetByID(c.Request.Context(), clientID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, cl)
}

// List handles GET /clients.
func (h *ClientHandler) List(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OKList(c, items, len(items))
}

// ProviderHandler serves the provider catalog.
type ProviderHandler struct {
	*BaseHandler
	svc *provider.Service
}

func NewProviderHandler(svc *provider.Service) *ProviderHandler {
	return &ProviderHandler{BaseHandler: NewBaseHandler(), svc: svc}
}

// Create handles POST /providers.
func (h *ProviderHandler) Create(c *gin.Context) {
	var req dto.CreateProviderRequest
	if !h.BindJSON(c, &req) {
		return
	}

	p := req.ToEntity()
	if err := h.svc.Create(c.Request.Context(), p); err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, p)
}

// List handles GET /providers.
func (h *ProviderHandler) List(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OKList(c, items, len(items))
}

// SocietyHandler serves the society catalog.
type SocietyHandler struct {
	*BaseHandler
	svc *society.Service
}

func NewSocietyHandler(svc *society.Service) *SocietyHandler {
	return &SocietyHandler{BaseHandler: NewBaseHandler(), svc: svc}
}

// Create handles POST /societies.
func (h *SocietyHandler) Create(c *gin.Context) {
	var req dto.CreateSocietyRequest
	if !h.BindJSON(c, &req) {
		return
	}

	s := req.ToEntity()
	if err := h.svc.Create(c.Request.Context(), s); err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, s)
}

// List handles GET /societies.
func (h *SocietyHandler) List(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OKList(c, items, len(items))
}
