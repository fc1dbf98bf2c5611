package web

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakhaus/decorator/internal/catalog"
	"github.com/oakhaus/decorator/internal/roomimage/disk"
)

type stubSource struct{}

func (stubSource) Categories(ctx context.Context) ([]catalog.Category, error) {
	return []catalog.Category{{ID: 1, Name: "Living Room"}}, nil
}

func (stubSource) Subcategories(ctx context.Context) ([]catalog.Subcategory, error) {
	return []catalog.Subcategory{{ID: 10, Name: "Sofas", CategoryID: 1}}, nil
}

func (stubSource) Products(ctx context.Context) ([]catalog.Product, error) {
	return []catalog.Product{
		{ID: 100, Name: "Oslo Sofa", AssetRef: "oslo_sofa.glb", CategoryID: 1, SubcategoryID: 10},
		{ID: 101, Name: "Broken Prop", AssetRef: "", CategoryID: 1, SubcategoryID: 10},
	}, nil
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	rooms, err := disk.New(t.TempDir())
	require.NoError(t, err)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewServer(stubSource{}, rooms, nil, 800, 600, logger)
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	img.Set(1, 1, color.RGBA{R: 0x80, A: 0xff})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func multipartImage(t *testing.T, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("image", "room.png")
	require.NoError(t, err)
	_, err = fw.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &body, mw.FormDataContentType()
}

func do(t *testing.T, s *Server, method, path string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func uploadRoom(t *testing.T, s *Server) string {
	t.Helper()
	body, contentType := multipartImage(t, pngBytes(t))
	rec := do(t, s, http.MethodPost, "/rooms", body, contentType)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Key string `json:"key"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Key)
	return resp.Key
}

func createScene(t *testing.T, s *Server, roomKey string) string {
	t.Helper()
	rec := do(t, s, http.MethodPost, "/scenes",
		strings.NewReader(fmt.Sprintf(`{"room_key":%q}`, roomKey)), "application/json")
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.ID
}

func TestUploadRoomRejectsNonImage(t *testing.T) {
	s := newTestServer(t)
	body, contentType := multipartImage(t, []byte("definitely not an image"))

	rec := do(t, s, http.MethodPost, "/rooms", body, contentType)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUploadAndFetchRoom(t *testing.T) {
	s := newTestServer(t)
	key := uploadRoom(t, s)

	rec := do(t, s, http.MethodGet, "/rooms/"+key, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
}

func TestCreateSceneRequiresRoom(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/scenes",
		strings.NewReader(`{"room_key":"room_missing.png"}`), "application/json")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPlaceAndManipulateItem(t *testing.T) {
	s := newTestServer(t)
	sceneID := createScene(t, s, uploadRoom(t, s))

	// Cascading filter: pick the category, then place the sofa.
	rec := do(t, s, http.MethodPost, "/scenes/"+sceneID+"/catalog/selection",
		strings.NewReader(`{"category_id":1}`), "application/json")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, s, http.MethodPost, "/scenes/"+sceneID+"/items",
		strings.NewReader(`{"product_id":100}`), "application/json")
	require.Equal(t, http.StatusCreated, rec.Code)

	var placed struct {
		ItemID string `json:"item_id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &placed))
	require.NotEmpty(t, placed.ItemID)

	// Drag the item 10px right.
	down := fmt.Sprintf(`{"type":"down","item_id":%q,"x":200,"y":200}`, placed.ItemID)
	rec = do(t, s, http.MethodPost, "/scenes/"+sceneID+"/pointer", strings.NewReader(down), "application/json")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, s, http.MethodPost, "/scenes/"+sceneID+"/pointer",
		strings.NewReader(`{"type":"move","x":210,"y":200}`), "application/json")
	require.Equal(t, http.StatusNoContent, rec.Code)
	rec = do(t, s, http.MethodPost, "/scenes/"+sceneID+"/pointer",
		strings.NewReader(`{"type":"up"}`), "application/json")
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, s, http.MethodGet, "/scenes/"+sceneID+"/items", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var listing struct {
		Items []itemJSON `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listing))
	require.Len(t, listing.Items, 1)
	assert.Equal(t, "Oslo Sofa", listing.Items[0].Name)
	assert.True(t, listing.Items[0].HandleVisible, "just-interacted item shows its handle")
}

func TestPlaceProductWithoutModel(t *testing.T) {
	s := newTestServer(t)
	sceneID := createScene(t, s, uploadRoom(t, s))

	rec := do(t, s, http.MethodPost, "/scenes/"+sceneID+"/items",
		strings.NewReader(`{"product_id":101}`), "application/json")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = do(t, s, http.MethodGet, "/scenes/"+sceneID+"/items", nil, "")
	var listing struct {
		Items []itemJSON `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listing))
	assert.Empty(t, listing.Items, "failed add must not spawn an item")
}

func TestSecondaryButtonReportsMenuSuppression(t *testing.T) {
	s := newTestServer(t)
	sceneID := createScene(t, s, uploadRoom(t, s))

	do(t, s, http.MethodPost, "/scenes/"+sceneID+"/catalog/selection",
		strings.NewReader(`{"category_id":1}`), "application/json")
	rec := do(t, s, http.MethodPost, "/scenes/"+sceneID+"/items",
		strings.NewReader(`{"product_id":100}`), "application/json")
	var placed struct {
		ItemID string `json:"item_id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &placed))

	down := fmt.Sprintf(`{"type":"down","item_id":%q,"x":0,"y":0,"button":"secondary"}`, placed.ItemID)
	rec = do(t, s, http.MethodPost, "/scenes/"+sceneID+"/pointer", strings.NewReader(down), "application/json")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Suppress bool `json:"suppress_context_menu"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Suppress)
}

func TestCatalogEndpoints(t *testing.T) {
	s := newTestServer(t)
	sceneID := createScene(t, s, uploadRoom(t, s))

	rec := do(t, s, http.MethodGet, "/scenes/"+sceneID+"/catalog/categories", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Living Room")

	// No category selected yet: subcategories and products stay empty.
	rec = do(t, s, http.MethodGet, "/scenes/"+sceneID+"/catalog/products", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"products":[]}`, rec.Body.String())
}

func TestSnapshotExport(t *testing.T) {
	s := newTestServer(t)
	sceneID := createScene(t, s, uploadRoom(t, s))

	rec := do(t, s, http.MethodGet, "/scenes/"+sceneID+"/snapshot.webp", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/webp", rec.Header().Get("Content-Type"))

	data := rec.Body.Bytes()
	require.Greater(t, len(data), 12)
	assert.Equal(t, "RIFF", string(data[0:4]))
	assert.Equal(t, "WEBP", string(data[8:12]))
}

func TestDeleteSceneTearsDownSession(t *testing.T) {
	s := newTestServer(t)
	sceneID := createScene(t, s, uploadRoom(t, s))

	rec := do(t, s, http.MethodDelete, "/scenes/"+sceneID, nil, "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, s, http.MethodGet, "/scenes/"+sceneID, nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdviceWithoutAdvisor(t *testing.T) {
	s := newTestServer(t)
	key := uploadRoom(t, s)

	rec := do(t, s, http.MethodPost, "/rooms/"+key+"/advice", nil, "")
	assert.Equal(t, http.StatusNotImplemented, rec.Code)
}
