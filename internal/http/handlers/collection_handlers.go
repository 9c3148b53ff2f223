package handlers

import (
	"errors"
	"net/http"

	"github.com/rqxKnicklicht/visynet-productivity-tool/internal/logging"
	"github.com/rqxKnicklicht/visynet-productivity-tool/internal/models"
	repo "github.com/rqxKnicklicht/visynet-productivity-tool/internal/repo"
)

// CreateProductHandler godoc
// @Summary Create a new product
// @Description Inserts a product with its caller-supplied id and title
// @Tags products
// @Accept json
// @Produce json
// @Param product body CreateProductRequest true "Product to insert"
// @Success 200 {object} ProductResult
// @Failure 400 {object} MessageResponse
// @Failure 409 {object} MessageResponse
// @Router /products [post]
func CreateProductHandler(w http.ResponseWriter, r *http.Request) {
	log := logging.FromCtx(r.Context())

	var req CreateProductRequest
	if err := readJSON(w, r, &req); err != nil || req.Product == nil {
		RespondJSON(w, http.StatusBadRequest, MessageResponse{Message: "Request body is required."})
		return
	}
	if req.Product.ID == "" || req.Product.Title == "" {
		RespondJSON(w, http.StatusBadRequest, MessageResponse{Message: "Product id and title are required."})
		return
	}

	created, err := productRepo.Create(r.Context(), req.Product.ID, req.Product.Title, req.Product.OriginalNumber)
	if err != nil {
		if errors.Is(err, repo.ErrProductExists) {
			log.Info("product already exists", "product_id", req.Product.ID)
			RespondJSON(w, http.StatusConflict, MessageResponse{Message: "Product already exists."})
			return
		}
		log.Error("could not insert product", "product_id", req.Product.ID, "error", err)
		RespondJSON(w, http.StatusInternalServerError, MessageResponse{Message: "Internal server error."})
		return
	}

	RespondJSON(w, http.StatusOK, ProductResult{
		Message: "Successfully inserted product.",
		Product: toProductPayload(created),
	})
}

// ListProductsHandler godoc
// @Summary List products
// @Description Returns all products, or the subset named by product_ids
// @Tags products
// @Accept json
// @Produce json
// @Param filter body ListProductsRequest false "Optional id filter"
// @Success 200 {object} ProductsResult
// @Router /products [get]
func ListProductsHandler(w http.ResponseWriter, r *http.Request) {
	log := logging.FromCtx(r.Context())

	// The filter body is optional; an absent or malformed body selects
	// everything, matching the collection's historical behavior.
	var req ListProductsRequest
	if err := readJSON(w, r, &req); err != nil && !errors.Is(err, errNoBody) {
		log.Debug("ignoring unreadable list filter", "error", err)
	}

	var (
		products []models.Product
		err      error
	)
	if len(req.ProductIDs) > 0 {
		products, err = productRepo.GetByIDs(r.Context(), req.ProductIDs)
	} else {
		products, err = productRepo.GetAll(r.Context())
	}
	if err != nil {
		log.Error("could not fetch products", "error", err)
		RespondJSON(w, http.StatusInternalServerError, MessageResponse{Message: "Internal server error."})
		return
	}

	// Keyed by id: duplicate ids in the filter collapse into one entry.
	byID := make(map[string]ProductPayload, len(products))
	for _, p := range products {
		byID[p.ID] = toProductPayload(p)
	}
	log.Info("returning products", "count", len(byID))

	RespondJSON(w, http.StatusOK, ProductsResult{Products: byID})
}

// PreflightHandler answers CORS preflight requests with the fixed header
// set and no body.
func PreflightHandler(w http.ResponseWriter, _ *http.Request) {
	RespondJSON(w, http.StatusNoContent, nil)
}

// MethodNotAllowedHandler produces the shared 405 envelope for any verb
// the routes do not declare.
func MethodNotAllowedHandler(w http.ResponseWriter, _ *http.Request) {
	RespondJSON(w, http.StatusMethodNotAllowed, MessageResponse{Message: "Method not allowed."})
}

// HealthHandler reports liveness.
func HealthHandler(w http.ResponseWriter, _ *http.Request) {
	RespondJSON(w, http.StatusOK, MessageResponse{Message: "ok"})
}
