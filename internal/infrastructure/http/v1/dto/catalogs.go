package dto

import (
	"github.com/shopspring/decimal"

	"bevstock/internal/domain/catalogs/article"
	"bevstock/internal/domain/catalogs/client"
	"bevstock/internal/domain/catalogs/provider"
	"bevstock/internal/domain/catalogs/society"
)

// Catalog entities carry their own json tags, so reads return them
// directly; only the write payloads need dedicated shapes.

// CreateArticleRequest for creating articles.
type CreateArticleRequest struct {
	Code         string  `json:"code" binding:"required"`
	Description  string  `json:"description" binding:"required"`
	Unit         string  `json:"unit"`
	UnitsPerCase int     `json:"unitsPerCase" binding:"required,min=1"`
	InternalTax  float64 `json:"internalTax"`
	VolumeML     float64 `json:"volumeMl"`
	Category     *string `json:"category"`
	Subcategory  *string `json:"subcategory"`
	ProductType  *string `json:"productType"`
}

// ToEntity converts the request to a new Article.
func (r *CreateArticleRequest) ToEntity() *article.Article {
	a := article.New(r.Code, r.Description, r.UnitsPerCase)
	if r.Unit != "" {
		a.Unit = r.Unit
	}
	a.InternalTax = decimal.NewFromFloat(r.InternalTax)
	a.VolumeML = decimal.NewFromFloat(r.VolumeML)
	a.Category = r.Category
	a.Subcategory = r.Subcategory
	a.ProductType = r.ProductType
	return a
}

// UpdateArticleRequest updates descriptive article fields. Code and
// unitsPerCase are frozen once the article is referenced by lots.
type UpdateArticleRequest struct {
	Description *string `json:"description"`
	Unit        *string `json:"unit"`
	Category    *string `json:"category"`
	Subcategory *string `json:"subcategory"`
	ProductType *string `json:"productType"`
}

// ToUpdate converts the request to the service's update shape.
func (r *UpdateArticleRequest) ToUpdate() article.DescriptiveUpdate {
	return article.DescriptiveUpdate{
		Description: r.Description,
		Unit:        r.Unit,
		Category:    r.Category,
		Subcategory: r.Subcategory,
		ProductType: r.ProductType,
	}
}

// CreateClientRequest for creating clients.
type CreateClientRequest struct {
	Code       string  `json:"code" binding:"required"`
	Name       string  `json:"name" binding:"required"`
	Title      *string `json:"title"`
	ClientType *string `json:"clientType"`
}

// ToEntity converts the request to a new Client.
func (r *CreateClientRequest) ToEntity() *client.Client {
	c := client.New(r.Code, r.Name)
	c.Title = r.Title
	c.ClientType = r.ClientType
	return c
}

// CreateProviderRequest for creating providers.
type CreateProviderRequest struct {
	Code     string  `json:"code" binding:"required"`
	Name     string  `json:"name" binding:"required"`
	Category *string `json:"category"`
}

// ToEntity converts the request to a new Provider.
func (r *CreateProviderRequest) ToEntity() *provider.Provider {
	p := provider.New(r.Code, r.Name)
	p.Category = r.Category
	return p
}

// CreateSocietyRequest for creating societies.
type CreateSocietyRequest struct {
	Code        string  `json:"code" binding:"required"`
	Name        string  `json:"name" binding:"required"`
	SocietyType *string `json:"societyType"`
	IsDefault   bool    `json:"isDefault"`
}

// ToEntity converts the request to a new Society.
func (r *CreateSocietyRequest) ToEntity() *society.Society {
	s := society.New(r.Code, r.Name)
	s.SocietyType = r.SocietyType
	s.IsDefault = r.IsDefault
	return s
}
