package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// ItemPlacer is the slice of the scene surface the browser needs to spawn a
// placed item from a product selection.
type ItemPlacer interface {
	AddItem(assetRef, name string) (string, error)
}

// Browser holds the catalog listings for one decorator view and applies the
// cascading category → subcategory → product filter. Selecting a category
// narrows the subcategory options and the product list; selecting a
// subcategory narrows the product list further.
type Browser struct {
	mu     sync.Mutex
	source Source
	logger *slog.Logger

	categories    []Category
	subcategories []Subcategory
	products      []Product

	selectedCategory    int64
	selectedSubcategory int64
}

func NewBrowser(source Source, logger *slog.Logger) *Browser {
	return &Browser{source: source, logger: logger}
}

// Load fetches all three listings up front, before scene interaction
// begins. On failure the browser keeps empty lists and the error is the
// caller's signal; nothing is thrown mid-gesture later.
func (b *Browser) Load(ctx context.Context) error {
	categories, err := b.source.Categories(ctx)
	if err != nil {
		return fmt.Errorf("failed to load categories: %w", err)
	}
	subcategories, err := b.source.Subcategories(ctx)
	if err != nil {
		return fmt.Errorf("failed to load subcategories: %w", err)
	}
	products, err := b.source.Products(ctx)
	if err != nil {
		return fmt.Errorf("failed to load products: %w", err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.categories = categories
	b.subcategories = subcategories
	b.products = products
	return nil
}

func (b *Browser) Categories() []Category {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.categories
}

// SelectCategory narrows the browser to one category and resets any
// subcategory selection. Zero clears the selection.
func (b *Browser) SelectCategory(id int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.selectedCategory = id
	b.selectedSubcategory = 0
}

// SelectSubcategory narrows the product list within the selected category.
func (b *Browser) SelectSubcategory(id int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.selectedSubcategory = id
}

// Subcategories returns the options for the selected category, or nothing
// while no category is selected.
func (b *Browser) Subcategories() []Subcategory {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.selectedCategory == 0 {
		return nil
	}
	var out []Subcategory
	for _, sub := range b.subcategories {
		if sub.CategoryID == b.selectedCategory {
			out = append(out, sub)
		}
	}
	return out
}

// Products returns the product list narrowed by the current selections, or
// nothing while no category is selected.
func (b *Browser) Products() []Product {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.selectedCategory == 0 {
		return nil
	}
	var out []Product
	for _, p := range b.products {
		if p.CategoryID != b.selectedCategory {
			continue
		}
		if b.selectedSubcategory != 0 && p.SubcategoryID != b.selectedSubcategory {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Product looks a product up by id across the full (unfiltered) list.
func (b *Browser) Product(id int64) (Product, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, p := range b.products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

// Place spawns a placed item for the product at its default location and
// returns the new item's id.
func (b *Browser) Place(productID int64, placer ItemPlacer) (string, error) {
	p, ok := b.Product(productID)
	if !ok {
		return "", fmt.Errorf("product %d not found", productID)
	}
	id, err := placer.AddItem(p.AssetRef, p.Name)
	if err != nil {
		b.logger.Warn("failed to place product", "product_id", productID, "error", err)
		return "", err
	}
	return id, nil
}
