package handlers

import (
	"fmt"
	"time"

	"github.com/rqxKnicklicht/visynet-productivity-tool/internal/models"
)

// ProductPayload is the wire shape of one product. Nullable columns
// serialize as explicit nulls; the timestamp travels as a fixed-format
// string under the historical key current_amazon_timestamp.
type ProductPayload struct {
	ID                     string   `json:"id"`
	Title                  string   `json:"title"`
	ASIN                   *string  `json:"asin"`
	CurrentAmazonPrice     *float64 `json:"current_amazon_price"`
	CurrentAmazonTimestamp *string  `json:"current_amazon_timestamp"`
	BrandID                *int64   `json:"brand_id"`
	VisynetMaxPrice        *float64 `json:"visynet_max_price"`
	OriginalNumber         *string  `json:"original_number"`
}

type NewProduct struct {
	ID             string  `json:"id"`
	Title          string  `json:"title"`
	OriginalNumber *string `json:"original_number"`
}

type CreateProductRequest struct {
	Product *NewProduct `json:"product"`
}

type ListProductsRequest struct {
	ProductIDs []string `json:"product_ids"`
}

type PutProductRequest struct {
	Product *ProductPayload `json:"product"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ProductResult struct {
	Message string         `json:"message"`
	Product ProductPayload `json:"product"`
}

type ProductsResult struct {
	Products map[string]ProductPayload `json:"products"`
}

type SingleProductResult struct {
	Product ProductPayload `json:"product"`
}

// toProductPayload converts a stored product to its wire shape.
func toProductPayload(p models.Product) ProductPayload {
	payload := ProductPayload{
		ID:                 p.ID,
		Title:              p.Title,
		ASIN:               p.ASIN,
		CurrentAmazonPrice: p.CurrentAmazonPrice,
		BrandID:            p.BrandID,
		VisynetMaxPrice:    p.VisynetMaxPrice,
		OriginalNumber:     p.OriginalNumber,
	}
	if p.CurrentAmazonPriceTimestamp != nil {
		formatted := p.CurrentAmazonPriceTimestamp.Format(models.TimestampLayout)
		payload.CurrentAmazonTimestamp = &formatted
	}
	return payload
}

// toModel parses the wire shape back into a stored product. The id is
// taken from the URL path, not from the payload.
func (pl ProductPayload) toModel(id string) (models.Product, error) {
	p := models.Product{
		ID:                 id,
		Title:              pl.Title,
		ASIN:               pl.ASIN,
		CurrentAmazonPrice: pl.CurrentAmazonPrice,
		BrandID:            pl.BrandID,
		VisynetMaxPrice:    pl.VisynetMaxPrice,
		OriginalNumber:     pl.OriginalNumber,
	}
	if pl.CurrentAmazonTimestamp != nil {
		t, err := time.Parse(models.TimestampLayout, *pl.CurrentAmazonTimestamp)
		if err != nil {
			return models.Product{}, fmt.Errorf("invalid current_amazon_timestamp: %w", err)
		}
		p.CurrentAmazonPriceTimestamp = &t
	}
	return p, nil
}
