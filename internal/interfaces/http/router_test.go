package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Bodega-api/internal/application/catalog"
	"github.com/jhoicas/Bodega-api/internal/application/dto"
	"github.com/jhoicas/Bodega-api/internal/application/inventory"
	"github.com/jhoicas/Bodega-api/internal/application/usecase"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/infrastructure/memory"
	"github.com/jhoicas/Bodega-api/internal/infrastructure/messaging"
	apphttp "github.com/jhoicas/Bodega-api/internal/interfaces/http"
	"github.com/jhoicas/Bodega-api/pkg/logger"
)

// apiFixture bodegas 1 y 2, una ubicación en cada una y un producto.
type apiFixture struct {
	app     *fiber.App
	store   *memory.Store
	locWH1  int64
	locWH2  int64
	product int64
}

func newAPI(t *testing.T) *apiFixture {
	t.Helper()
	s := memory.NewStore()
	var locs []int64
	for _, code := range []string{"A-01", "B-01"} {
		wh := s.AddWarehouse(entity.Warehouse{Name: code})
		z, err := s.AddZone(entity.Zone{WarehouseID: wh.ID, Name: "Z"})
		require.NoError(t, err)
		l, err := s.AddLocation(entity.Location{ZoneID: z.ID, Code: code, Type: entity.LocationTypeShelf})
		require.NoError(t, err)
		locs = append(locs, l.ID)
	}
	p := &entity.Product{Name: "Tornillo", SKU: "T-1", Category: "FERR"}
	_, err := s.Products().InsertSkipExisting(context.Background(), []*entity.Product{p})
	require.NoError(t, err)

	log := logger.Nop()
	pub := messaging.NoopPublisher{}
	app := fiber.New()
	app.Use(apphttp.Tracing(), apphttp.RequestLogger(log))
	apphttp.Router(app, apphttp.RouterDeps{
		LedgerUC:   inventory.NewLedgerUseCase(s, s.Locations(), s.Products(), s.Inventory(), s.Logs(), pub, log),
		ProductUC:  usecase.NewProductUseCase(s.Products(), log),
		ImportUC:   catalog.NewImportUseCase(s.Products(), pub, log, t.TempDir(), 100),
		LocationUC: usecase.NewLocationUseCase(s.Locations()),
		JWTSecret:  testJWTSecret,
	})
	return &apiFixture{app: app, store: s, locWH1: locs[0], locWH2: locs[1], product: p.ID}
}

func (f *apiFixture) do(t *testing.T, method, path, auth string, body io.Reader, contentType string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func (f *apiFixture) adjust(t *testing.T, auth string, payload string) *http.Response {
	t.Helper()
	return f.do(t, http.MethodPost, "/api/inventory/adjust", auth, strings.NewReader(payload), fiber.MIMEApplicationJSON)
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestAPI_AjusteYConsulta(t *testing.T) {
	f := newAPI(t)
	sup := tokenFor(t, 10, 1, entity.RoleInventorySup)

	resp := f.adjust(t, sup, `{"locationId":1,"productId":1,"change":5}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[dto.AdjustInventoryResponse](t, resp)
	assert.Equal(t, dto.AdjustInventoryResponse{LocationID: 1, ProductID: 1, Quantity: 5}, out)

	resp = f.adjust(t, sup, `{"locationId":1,"productId":1,"change":-3}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int64(2), decode[dto.AdjustInventoryResponse](t, resp).Quantity)

	resp = f.do(t, http.MethodGet, "/api/inventory?locationId=1", sup, nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	rows := decode[[]dto.InventoryRowResponse](t, resp)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(2), rows[0].Quantity)
	require.NotNil(t, rows[0].Product)
	assert.Equal(t, "T-1", rows[0].Product.SKU)

	resp = f.do(t, http.MethodGet, "/api/inventory/history?locationId=1&productId=1", sup, nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	hist := decode[dto.InventoryHistoryResponse](t, resp)
	require.Len(t, hist.Entries, 2)
	assert.Equal(t, int64(10), hist.Entries[0].UserID)
	assert.Equal(t, int64(2), hist.ReplayedQuantity)
}

func TestAPI_AjusteErrores(t *testing.T) {
	f := newAPI(t)
	admin := tokenFor(t, 1, 0, entity.RoleAdmin)

	cases := []struct {
		name   string
		auth   string
		body   string
		status int
		code   string
	}{
		{"otra bodega", tokenFor(t, 2, 2, entity.RoleInventorySup), `{"locationId":1,"productId":1,"change":1}`, http.StatusForbidden, "FORBIDDEN"},
		{"picking", tokenFor(t, 3, 1, entity.RolePickingSup), `{"locationId":1,"productId":1,"change":1}`, http.StatusForbidden, "FORBIDDEN"},
		{"ubicación inexistente", admin, `{"locationId":99,"productId":1,"change":1}`, http.StatusNotFound, "NOT_FOUND"},
		{"producto inexistente", admin, `{"locationId":1,"productId":99,"change":1}`, http.StatusNotFound, "NOT_FOUND"},
		{"sin change", admin, `{"locationId":1,"productId":1}`, http.StatusBadRequest, "VALIDATION"},
		{"json roto", admin, `{"locationId":`, http.StatusBadRequest, "INVALID_BODY"},
		{"sin token", "", `{"locationId":1,"productId":1,"change":1}`, http.StatusUnauthorized, "MISSING_TOKEN"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := f.adjust(t, tc.auth, tc.body)
			assert.Equal(t, tc.status, resp.StatusCode)
			assert.Equal(t, tc.code, decode[dto.ErrorResponse](t, resp).Code)
		})
	}

	rows, err := f.store.Inventory().List(context.Background(), entity.InventoryFilter{})
	require.NoError(t, err)
	assert.Empty(t, rows, "ningún ajuste rechazado debe modificar el ledger")
}

func TestAPI_ConsultaParametroInvalido(t *testing.T) {
	f := newAPI(t)
	resp := f.do(t, http.MethodGet, "/api/inventory?locationId=abc", tokenFor(t, 1, 0, entity.RoleAdmin), nil, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func multipartBody(t *testing.T, fileName, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", fileName)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestAPI_UploadProductos(t *testing.T) {
	f := newAPI(t)
	admin := tokenFor(t, 1, 0, entity.RoleAdmin)

	body, ct := multipartBody(t, "productos.tsv", "name\tsku\tcategory\nTuerca\tT-2\tFERR\nTornillo nuevo\tT-1\tFERR\nArandela\tT-3\tFERR\n")
	resp := f.do(t, http.MethodPost, "/api/products/upload", admin, body, ct)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int64(2), decode[dto.ImportProductsResponse](t, resp).Imported)

	resp = f.do(t, http.MethodGet, "/api/products", admin, nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[[]dto.ProductResponse](t, resp)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"Arandela", "Tornillo", "Tuerca"}, []string{list[0].Name, list[1].Name, list[2].Name})
}

func TestAPI_UploadErrores(t *testing.T) {
	f := newAPI(t)

	body, ct := multipartBody(t, "p.csv", "name,sku,category\nA,B,C\n")
	resp := f.do(t, http.MethodPost, "/api/products/upload", tokenFor(t, 2, 1, entity.RoleInventorySup), body, ct)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	admin := tokenFor(t, 1, 0, entity.RoleAdmin)
	resp = f.do(t, http.MethodPost, "/api/products/upload", admin, strings.NewReader(""), fiber.MIMEApplicationJSON)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_FILE", decode[dto.ErrorResponse](t, resp).Code)

	body, ct = multipartBody(t, "vacio.csv", "")
	resp = f.do(t, http.MethodPost, "/api/products/upload", admin, body, ct)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_FILE", decode[dto.ErrorResponse](t, resp).Code)
}

func TestAPI_DeleteProducto(t *testing.T) {
	f := newAPI(t)
	admin := tokenFor(t, 1, 0, entity.RoleAdmin)

	resp := f.adjust(t, admin, `{"locationId":1,"productId":1,"change":1}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = f.do(t, http.MethodDelete, "/api/products/1", admin, nil, "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	resp = f.do(t, http.MethodDelete, "/api/products/1", tokenFor(t, 2, 1, entity.RoleInventorySup), nil, "")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = f.do(t, http.MethodDelete, "/api/products/42", admin, nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestAPI_UbicacionesFiltradas(t *testing.T) {
	f := newAPI(t)

	resp := f.do(t, http.MethodGet, "/api/locations", tokenFor(t, 3, 2, entity.RolePickingSup), nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[[]dto.LocationResponse](t, resp)
	require.Len(t, list, 1)
	assert.Equal(t, "B-01", list[0].Code)

	resp = f.do(t, http.MethodGet, "/api/locations", tokenFor(t, 1, 0, entity.RoleAdmin), nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]dto.LocationResponse](t, resp), 2)
}
