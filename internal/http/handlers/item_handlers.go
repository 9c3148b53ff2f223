package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rqxKnicklicht/visynet-productivity-tool/internal/logging"
	repo "github.com/rqxKnicklicht/visynet-productivity-tool/internal/repo"
)

// GetProductHandler godoc
// @Summary Get product by id
// @Tags products
// @Produce json
// @Param product-id path string true "Product id"
// @Success 200 {object} SingleProductResult
// @Failure 404 {object} MessageResponse
// @Router /products/{product-id} [get]
func GetProductHandler(w http.ResponseWriter, r *http.Request) {
	log := logging.FromCtx(r.Context())
	id := chi.URLParam(r, "product-id")

	product, err := productRepo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			RespondJSON(w, http.StatusNotFound, MessageResponse{Message: "Product not found."})
			return
		}
		log.Error("could not fetch product", "product_id", id, "error", err)
		RespondJSON(w, http.StatusInternalServerError, MessageResponse{Message: "Internal server error."})
		return
	}

	RespondJSON(w, http.StatusOK, SingleProductResult{Product: toProductPayload(product)})
}

// PatchProductHandler godoc
// @Summary Partially update a product
// @Description Applies the whitelisted fields of the body and returns the updated row
// @Tags products
// @Accept json
// @Produce json
// @Param product-id path string true "Product id"
// @Param fields body map[string]any true "Fields to update"
// @Success 200 {object} ProductResult
// @Failure 400 {object} MessageResponse
// @Failure 404 {object} MessageResponse
// @Router /products/{product-id} [patch]
func PatchProductHandler(w http.ResponseWriter, r *http.Request) {
	log := logging.FromCtx(r.Context())
	id := chi.URLParam(r, "product-id")

	var body map[string]any
	if err := readJSON(w, r, &body); err != nil {
		RespondJSON(w, http.StatusBadRequest, MessageResponse{Message: "Request body is required."})
		return
	}

	updates, err := filterPatchFields(body)
	if err != nil {
		RespondJSON(w, http.StatusBadRequest, MessageResponse{Message: err.Error()})
		return
	}
	if len(updates) == 0 {
		// Nothing whitelisted survived the filter.
		RespondJSON(w, http.StatusBadRequest, MessageResponse{Message: "No updatable fields provided."})
		return
	}

	updated, err := productRepo.Patch(r.Context(), id, updates)
	if err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			RespondJSON(w, http.StatusNotFound, MessageResponse{Message: "Product not found."})
			return
		}
		log.Error("could not update product", "product_id", id, "error", err)
		RespondJSON(w, http.StatusInternalServerError, MessageResponse{Message: "Internal server error."})
		return
	}
	log.Info("product updated", "product_id", id, "fields", len(updates))

	RespondJSON(w, http.StatusOK, ProductResult{
		Message: "Product updated successfully.",
		Product: toProductPayload(updated),
	})
}

// PutProductHandler godoc
// @Summary Insert or replace a product
// @Description Upserts every column of the product identified by the path
// @Tags products
// @Accept json
// @Param product-id path string true "Product id"
// @Param product body PutProductRequest true "Full product"
// @Success 204
// @Failure 400 {object} MessageResponse
// @Router /products/{product-id} [put]
func PutProductHandler(w http.ResponseWriter, r *http.Request) {
	log := logging.FromCtx(r.Context())
	id := chi.URLParam(r, "product-id")

	var req PutProductRequest
	if err := readJSON(w, r, &req); err != nil || req.Product == nil {
		RespondJSON(w, http.StatusBadRequest, MessageResponse{Message: "Request body is required."})
		return
	}
	if req.Product.Title == "" {
		RespondJSON(w, http.StatusBadRequest, MessageResponse{Message: "Product title is required."})
		return
	}

	// The path parameter is authoritative; an id in the payload is
	// ignored.
	product, err := req.Product.toModel(id)
	if err != nil {
		RespondJSON(w, http.StatusBadRequest, MessageResponse{Message: "Invalid value for field 'current_amazon_timestamp'."})
		return
	}

	if err := productRepo.Upsert(r.Context(), product); err != nil {
		log.Error("could not upsert product", "product_id", id, "error", err)
		RespondJSON(w, http.StatusInternalServerError, MessageResponse{Message: "Internal server error."})
		return
	}
	log.Info("product upserted", "product_id", id)

	RespondJSON(w, http.StatusNoContent, nil)
}

// DeleteProductHandler godoc
// @Summary Delete a product
// @Description Deletes by id; deleting an absent id is not an error
// @Tags products
// @Produce json
// @Param product-id path string true "Product id"
// @Success 200 {object} MessageResponse
// @Router /products/{product-id} [delete]
func DeleteProductHandler(w http.ResponseWriter, r *http.Request) {
	log := logging.FromCtx(r.Context())
	id := chi.URLParam(r, "product-id")

	if err := productRepo.Delete(r.Context(), id); err != nil {
		log.Error("could not delete product", "product_id", id, "error", err)
		RespondJSON(w, http.StatusInternalServerError, MessageResponse{Message: "Internal server error."})
		return
	}
	log.Info("product deleted", "product_id", id)

	RespondJSON(w, http.StatusOK, MessageResponse{Message: "Product deleted successfully, if it existed."})
}
