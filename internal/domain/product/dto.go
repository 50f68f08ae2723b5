package product

import "encoding/json"

// UpsertRequest creates or updates a product from the admin console. Price is
// a json.Number so both `"price": 229` and `"price": "229"` parse; it must
// still be a non-negative integer.
type UpsertRequest struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Price       json.Number `json:"price"`
	Tag         string      `json:"tag"`
	Category    string      `json:"category"`
	Active      *bool       `json:"active"`
}

// PriceInt parses the price field into a non-negative integer.
func (r *UpsertRequest) PriceInt() (int, bool) {
	n, err := r.Price.Int64()
	if err != nil || n < 0 {
		return 0, false
	}
	return int(n), true
}
