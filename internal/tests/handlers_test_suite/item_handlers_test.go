package handlers_test_suite

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	handler "github.com/rqxKnicklicht/visynet-productivity-tool/internal/http/handlers"
)

func TestGetProductHandler_Found(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := newRouter()

	createProduct(r, "1", "Widget")

	w := doJSON(r, http.MethodGet, "/products/1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}

	var resp handler.SingleProductResult
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if resp.Product.ID != "1" || resp.Product.Title != "Widget" {
		t.Errorf("unexpected product: %+v", resp.Product)
	}
}

func TestGetProductHandler_NotFound(t *testing.T) {
	r := newRouter()

	w := doJSON(r, http.MethodGet, "/products/ghost", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 Not Found, got %d", w.Code)
	}
	var resp handler.MessageResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if resp.Message != "Product not found." {
		t.Errorf("unexpected message: %q", resp.Message)
	}
}

func TestPatchProductHandler_MixedBody(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := newRouter()

	createProduct(r, "1", "Widget")

	w := doJSON(r, http.MethodPatch, "/products/1", map[string]any{
		"title":        "Widget v2",
		"not_a_column": "x",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}

	body := w.Body.String()
	if strings.Contains(body, "not_a_column") {
		t.Errorf("non-whitelisted key leaked into response: %s", body)
	}

	var resp handler.ProductResult
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if resp.Message != "Product updated successfully." {
		t.Errorf("unexpected message: %q", resp.Message)
	}
	if resp.Product.Title != "Widget v2" {
		t.Errorf("expected title 'Widget v2', got %q", resp.Product.Title)
	}
}

func TestPatchProductHandler_AllFields(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := newRouter()

	createProduct(r, "1", "Widget")

	w := doJSON(r, http.MethodPatch, "/products/1", map[string]any{
		"title":                    "Widget v2",
		"asin":                     "B00TEST123",
		"brand_id":                 7,
		"visynet_max_price":        19.99,
		"current_amazon_price":     24.5,
		"current_amazon_timestamp": "2024-01-31 13:45:00",
		"original_number":          "OEM-42",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}

	var resp handler.ProductResult
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	p := resp.Product
	if p.ASIN == nil || *p.ASIN != "B00TEST123" {
		t.Errorf("unexpected asin: %v", p.ASIN)
	}
	if p.BrandID == nil || *p.BrandID != 7 {
		t.Errorf("unexpected brand_id: %v", p.BrandID)
	}
	if p.VisynetMaxPrice == nil || *p.VisynetMaxPrice != 19.99 {
		t.Errorf("unexpected visynet_max_price: %v", p.VisynetMaxPrice)
	}
	if p.CurrentAmazonPrice == nil || *p.CurrentAmazonPrice != 24.5 {
		t.Errorf("unexpected current_amazon_price: %v", p.CurrentAmazonPrice)
	}
	if p.CurrentAmazonTimestamp == nil || *p.CurrentAmazonTimestamp != "2024-01-31 13:45:00" {
		t.Errorf("unexpected current_amazon_timestamp: %v", p.CurrentAmazonTimestamp)
	}
	if p.OriginalNumber == nil || *p.OriginalNumber != "OEM-42" {
		t.Errorf("unexpected original_number: %v", p.OriginalNumber)
	}
}

func TestPatchProductHandler_OnlyUnknownKeys(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := newRouter()

	createProduct(r, "1", "Widget")

	w := doJSON(r, http.MethodPatch, "/products/1", map[string]any{
		"id":          "2",
		"evil_column": "drop table",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 Bad Request, got %d", w.Code)
	}
	var resp handler.MessageResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if resp.Message != "No updatable fields provided." {
		t.Errorf("unexpected message: %q", resp.Message)
	}

	// Pre-patch state must be untouched.
	getW := doJSON(r, http.MethodGet, "/products/1", nil)
	var getResp handler.SingleProductResult
	if err := json.NewDecoder(getW.Body).Decode(&getResp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if getResp.Product.Title != "Widget" {
		t.Errorf("expected unchanged title 'Widget', got %q", getResp.Product.Title)
	}
}

func TestPatchProductHandler_MissingBody(t *testing.T) {
	r := newRouter()

	w := doJSON(r, http.MethodPatch, "/products/1", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 Bad Request, got %d", w.Code)
	}
}

func TestPatchProductHandler_InvalidValue(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := newRouter()

	createProduct(r, "1", "Widget")

	w := doJSON(r, http.MethodPatch, "/products/1", map[string]any{"brand_id": "not-a-number"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 Bad Request, got %d", w.Code)
	}
}

func TestPatchProductHandler_NotFound(t *testing.T) {
	r := newRouter()

	w := doJSON(r, http.MethodPatch, "/products/ghost", map[string]any{"title": "Anything"})
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 Not Found, got %d", w.Code)
	}
}

func TestPutProductHandler_Idempotent(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := newRouter()

	payload := handler.PutProductRequest{Product: &handler.ProductPayload{
		ID:                     "1",
		Title:                  "Widget",
		ASIN:                   strPtr("B00TEST123"),
		CurrentAmazonPrice:     floatPtr(24.5),
		CurrentAmazonTimestamp: strPtr("2024-01-31 13:45:00"),
		BrandID:                intPtr(7),
		VisynetMaxPrice:        floatPtr(19.99),
		OriginalNumber:         strPtr("OEM-42"),
	}}

	for i := 0; i < 2; i++ {
		w := doJSON(r, http.MethodPut, "/products/1", payload)
		if w.Code != http.StatusNoContent {
			t.Fatalf("put %d: expected 204 No Content, got %d", i+1, w.Code)
		}
		if w.Body.Len() != 0 {
			t.Fatalf("put %d: expected empty body, got %q", i+1, w.Body.String())
		}
	}

	getW := doJSON(r, http.MethodGet, "/products/1", nil)
	var resp handler.SingleProductResult
	if err := json.NewDecoder(getW.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	p := resp.Product
	if p.Title != "Widget" || p.ASIN == nil || *p.ASIN != "B00TEST123" {
		t.Errorf("unexpected stored product: %+v", p)
	}
	if p.CurrentAmazonTimestamp == nil || *p.CurrentAmazonTimestamp != "2024-01-31 13:45:00" {
		t.Errorf("unexpected timestamp: %v", p.CurrentAmazonTimestamp)
	}
}

func TestPutProductHandler_ReplacesAllColumns(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := newRouter()

	createProduct(r, "1", "Widget")
	doJSON(r, http.MethodPatch, "/products/1", map[string]any{"asin": "B00OLD"})

	// A put with nulls overwrites the previously set columns.
	w := doJSON(r, http.MethodPut, "/products/1", handler.PutProductRequest{
		Product: &handler.ProductPayload{ID: "1", Title: "Widget v2"},
	})
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204 No Content, got %d", w.Code)
	}

	getW := doJSON(r, http.MethodGet, "/products/1", nil)
	var resp handler.SingleProductResult
	if err := json.NewDecoder(getW.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if resp.Product.Title != "Widget v2" {
		t.Errorf("expected title 'Widget v2', got %q", resp.Product.Title)
	}
	if resp.Product.ASIN != nil {
		t.Errorf("expected asin overwritten to null, got %v", *resp.Product.ASIN)
	}
}

func TestPutProductHandler_MissingBody(t *testing.T) {
	r := newRouter()

	w := doJSON(r, http.MethodPut, "/products/1", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 Bad Request, got %d", w.Code)
	}
}

func TestDeleteProductHandler_Idempotent(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := newRouter()

	createProduct(r, "1", "Widget")

	for i := 0; i < 2; i++ {
		w := doJSON(r, http.MethodDelete, "/products/1", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("delete %d: expected 200 OK, got %d", i+1, w.Code)
		}
		var resp handler.MessageResponse
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("error decoding response: %v", err)
		}
		if resp.Message != "Product deleted successfully, if it existed." {
			t.Errorf("delete %d: unexpected message: %q", i+1, resp.Message)
		}
	}

	if w := doJSON(r, http.MethodGet, "/products/1", nil); w.Code != http.StatusNotFound {
		t.Errorf("expected 404 after delete, got %d", w.Code)
	}
}

// TestProductLifecycle walks the full create, read, patch, delete cycle.
func TestProductLifecycle(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := newRouter()

	w := createProduct(r, "1", "Widget")
	if w.Code != http.StatusOK {
		t.Fatalf("create: expected 200 OK, got %d", w.Code)
	}
	var created handler.ProductResult
	if err := json.NewDecoder(w.Body).Decode(&created); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if created.Product.ASIN != nil || created.Product.CurrentAmazonPrice != nil {
		t.Errorf("expected omitted fields to be null: %+v", created.Product)
	}

	if w := doJSON(r, http.MethodGet, "/products/1", nil); w.Code != http.StatusOK {
		t.Fatalf("get: expected 200 OK, got %d", w.Code)
	}

	w = doJSON(r, http.MethodPatch, "/products/1", map[string]any{"title": "Widget v2", "not_a_column": "x"})
	if w.Code != http.StatusOK {
		t.Fatalf("patch: expected 200 OK, got %d", w.Code)
	}
	if strings.Contains(w.Body.String(), "not_a_column") {
		t.Error("patch: non-whitelisted key leaked into response")
	}
	var patched handler.ProductResult
	if err := json.Unmarshal(w.Body.Bytes(), &patched); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if patched.Product.Title != "Widget v2" {
		t.Errorf("patch: expected title 'Widget v2', got %q", patched.Product.Title)
	}

	if w := doJSON(r, http.MethodDelete, "/products/1", nil); w.Code != http.StatusOK {
		t.Fatalf("delete: expected 200 OK, got %d", w.Code)
	}
	if w := doJSON(r, http.MethodGet, "/products/1", nil); w.Code != http.StatusNotFound {
		t.Fatalf("get after delete: expected 404, got %d", w.Code)
	}
}
