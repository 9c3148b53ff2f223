package handlers_test_suite

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"

	api "github.com/rqxKnicklicht/visynet-productivity-tool/internal/http"
	handler "github.com/rqxKnicklicht/visynet-productivity-tool/internal/http/handlers"
	"github.com/rqxKnicklicht/visynet-productivity-tool/internal/repo"
)

var productRepo *repo.InMemoryProductRepository

func init() {
	productRepo = repo.NewInMemoryProductRepository()
	handler.SetProductRepo(productRepo)
}

func newRouter() http.Handler {
	return api.NewRouter(slog.New(slog.NewTextHandler(io.Discard, nil)), nil)
}

func clearAllProducts() {
	productRepo.Clear()
}

// doJSON issues a request with an optional JSON payload and returns the
// recorder. A nil payload sends no body.
func doJSON(r http.Handler, method, path string, payload any) *httptest.ResponseRecorder {
	var body io.Reader
	if payload != nil {
		data, _ := json.Marshal(payload)
		body = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, body)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createProduct(r http.Handler, id, title string) *httptest.ResponseRecorder {
	return doJSON(r, http.MethodPost, "/products", handler.CreateProductRequest{
		Product: &handler.NewProduct{ID: id, Title: title},
	})
}

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

func intPtr(n int64) *int64 { return &n }
