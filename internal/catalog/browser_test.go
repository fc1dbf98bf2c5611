package catalog

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	categories    []Category
	subcategories []Subcategory
	products      []Product
	err           error
}

func (f *fakeSource) Categories(ctx context.Context) ([]Category, error) {
	return f.categories, f.err
}

func (f *fakeSource) Subcategories(ctx context.Context) ([]Subcategory, error) {
	return f.subcategories, f.err
}

func (f *fakeSource) Products(ctx context.Context) ([]Product, error) {
	return f.products, f.err
}

type fakePlacer struct {
	assetRef string
	name     string
	err      error
}

func (f *fakePlacer) AddItem(assetRef, name string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.assetRef = assetRef
	f.name = name
	return "item-1", nil
}

func furnitureSource() *fakeSource {
	return &fakeSource{
		categories: []Category{{ID: 1, Name: "Living Room"}, {ID: 2, Name: "Bedroom"}},
		subcategories: []Subcategory{
			{ID: 10, Name: "Sofas", CategoryID: 1},
			{ID: 11, Name: "Tables", CategoryID: 1},
			{ID: 20, Name: "Beds", CategoryID: 2},
		},
		products: []Product{
			{ID: 100, Name: "Oslo Sofa", AssetRef: "oslo_sofa.glb", CategoryID: 1, SubcategoryID: 10},
			{ID: 101, Name: "Turku Table", AssetRef: "turku_table.glb", CategoryID: 1, SubcategoryID: 11},
			{ID: 200, Name: "Nora Bed", AssetRef: "nora_bed.glb", CategoryID: 2, SubcategoryID: 20},
		},
	}
}

func newLoadedBrowser(t *testing.T) *Browser {
	t.Helper()
	b := NewBrowser(furnitureSource(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, b.Load(context.Background()))
	return b
}

func TestBrowserNoSelectionShowsNothing(t *testing.T) {
	b := newLoadedBrowser(t)

	assert.Len(t, b.Categories(), 2)
	assert.Empty(t, b.Subcategories())
	assert.Empty(t, b.Products())
}

func TestBrowserCategoryNarrows(t *testing.T) {
	b := newLoadedBrowser(t)

	b.SelectCategory(1)

	subs := b.Subcategories()
	require.Len(t, subs, 2)
	assert.Equal(t, "Sofas", subs[0].Name)

	products := b.Products()
	require.Len(t, products, 2)
}

func TestBrowserSubcategoryNarrowsFurther(t *testing.T) {
	b := newLoadedBrowser(t)

	b.SelectCategory(1)
	b.SelectSubcategory(10)

	products := b.Products()
	require.Len(t, products, 1)
	assert.Equal(t, "Oslo Sofa", products[0].Name)
}

func TestBrowserCategoryChangeResetsSubcategory(t *testing.T) {
	b := newLoadedBrowser(t)

	b.SelectCategory(1)
	b.SelectSubcategory(10)
	b.SelectCategory(2)

	products := b.Products()
	require.Len(t, products, 1)
	assert.Equal(t, "Nora Bed", products[0].Name)
}

func TestBrowserLoadErrorLeavesListsEmpty(t *testing.T) {
	src := &fakeSource{err: errors.New("catalog unavailable")}
	b := NewBrowser(src, slog.New(slog.NewTextHandler(io.Discard, nil)))

	err := b.Load(context.Background())
	assert.Error(t, err)
	assert.Empty(t, b.Categories())
	assert.Empty(t, b.Products())
}

func TestBrowserPlace(t *testing.T) {
	b := newLoadedBrowser(t)
	placer := &fakePlacer{}

	id, err := b.Place(100, placer)
	require.NoError(t, err)
	assert.Equal(t, "item-1", id)
	assert.Equal(t, "oslo_sofa.glb", placer.assetRef)
	assert.Equal(t, "Oslo Sofa", placer.name)
}

func TestBrowserPlaceUnknownProduct(t *testing.T) {
	b := newLoadedBrowser(t)

	_, err := b.Place(999, &fakePlacer{})
	assert.Error(t, err)
}

func TestBrowserPlacePropagatesPlacerError(t *testing.T) {
	b := newLoadedBrowser(t)
	wantErr := errors.New("no background")

	_, err := b.Place(100, &fakePlacer{err: wantErr})
	assert.ErrorIs(t, err, wantErr)
}
