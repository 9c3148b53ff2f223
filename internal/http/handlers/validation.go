package handlers

import (
	"fmt"
	"time"

	"github.com/rqxKnicklicht/visynet-productivity-tool/internal/models"
	"github.com/rqxKnicklicht/visynet-productivity-tool/internal/repo"
)

// patchableColumns maps the JSON keys a PATCH may set to their column
// names. Any key not listed here is dropped silently, which is the
// defense against arbitrary column injection. Note the wire key
// current_amazon_timestamp writes the current_amazon_price_timestamp
// column.
var patchableColumns = map[string]string{
	"title":                    "title",
	"asin":                     "asin",
	"brand_id":                 "brand_id",
	"visynet_max_price":        "visynet_max_price",
	"current_amazon_price":     "current_amazon_price",
	"current_amazon_timestamp": "current_amazon_price_timestamp",
	"original_number":          "original_number",
}

// patchKeyOrder fixes the order assignments appear in the generated SET
// clause.
var patchKeyOrder = []string{
	"title",
	"asin",
	"brand_id",
	"visynet_max_price",
	"current_amazon_price",
	"current_amazon_timestamp",
	"original_number",
}

// filterPatchFields reduces an arbitrary JSON object to the whitelisted
// column assignments, converting each value to the type its column
// expects. Values are later bound as SQL parameters, never interpolated.
func filterPatchFields(body map[string]any) ([]repo.FieldUpdate, error) {
	var updates []repo.FieldUpdate
	for _, key := range patchKeyOrder {
		raw, present := body[key]
		if !present {
			continue
		}
		value, err := convertPatchValue(key, raw)
		if err != nil {
			return nil, err
		}
		updates = append(updates, repo.FieldUpdate{Column: patchableColumns[key], Value: value})
	}
	return updates, nil
}

func convertPatchValue(key string, raw any) (any, error) {
	switch key {
	case "title":
		// title is the one non-nullable column in the whitelist.
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("Invalid value for field '%s'.", key)
		}
		return s, nil
	case "asin", "original_number":
		if raw == nil {
			return nil, nil
		}
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("Invalid value for field '%s'.", key)
		}
		return s, nil
	case "brand_id":
		if raw == nil {
			return nil, nil
		}
		f, ok := raw.(float64)
		if !ok || f != float64(int64(f)) {
			return nil, fmt.Errorf("Invalid value for field '%s'.", key)
		}
		return int64(f), nil
	case "visynet_max_price", "current_amazon_price":
		if raw == nil {
			return nil, nil
		}
		f, ok := raw.(float64)
		if !ok {
			return nil, fmt.Errorf("Invalid value for field '%s'.", key)
		}
		return f, nil
	case "current_amazon_timestamp":
		if raw == nil {
			return nil, nil
		}
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("Invalid value for field '%s'.", key)
		}
		t, err := time.Parse(models.TimestampLayout, s)
		if err != nil {
			return nil, fmt.Errorf("Invalid value for field '%s'.", key)
		}
		return t, nil
	}
	return nil, fmt.Errorf("Invalid value for field '%s'.", key)
}
