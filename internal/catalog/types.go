// Package catalog consumes the external product catalog service. It is
// read-only: the storefront back office owns all catalog mutation.
package catalog

import "context"

type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Subcategory struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	CategoryID int64  `json:"category_id"`
}

type Product struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	AssetRef      string `json:"model_url"`
	ImageURL      string `json:"image"`
	CategoryID    int64  `json:"category_id"`
	SubcategoryID int64  `json:"subcategory_id"`
}

// Source is the catalog collaborator's listing surface. Full lists are
// fetched once up front, before scene interaction begins; the hierarchical
// narrowing happens client-side in the Browser.
type Source interface {
	Categories(ctx context.Context) ([]Category, error)
	Subcategories(ctx context.Context) ([]Subcategory, error)
	Products(ctx context.Context) ([]Product, error)
}
