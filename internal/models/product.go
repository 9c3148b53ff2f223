package models

import "time"

// TimestampLayout is the textual format used for price-observation
// timestamps everywhere on the wire (`2024-01-31 13:45:00`).
const TimestampLayout = "2006-01-02 15:04:05"

// Product represents one row of the product table. The id is supplied by
// the caller and acts as the natural key; every other column is nullable,
// hence the pointer fields.
type Product struct {
	ID                          string
	Title                       string
	ASIN                        *string
	CurrentAmazonPrice          *float64
	CurrentAmazonPriceTimestamp *time.Time
	BrandID                     *int64
	VisynetMaxPrice             *float64
	OriginalNumber              *string
}
