package models

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ProductVariant is a purchasable configuration of a product with its
// own price and stock. Configuration is a free-form attribute map
// (size, color, ...) used only for display.
type ProductVariant struct {
	ID            int64             `json:"id" db:"id"`
	ProductID     int64             `json:"product" db:"product_id"`
	Slug          string            `json:"slug" db:"slug"`
	Title         string            `json:"title" db:"title"`
	Configuration map[string]string `json:"configuration" db:"configuration"`
	Price         decimal.Decimal   `json:"price" db:"price"`
	Stock         int               `json:"stock" db:"stock"`
	CreatedAt     time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at" db:"updated_at"`
}

// ConfigurationLine renders the configuration map as comma-joined
// "key: value" pairs with a stable key order.
func (v *ProductVariant) ConfigurationLine() string {
	if len(v.Configuration) == 0 {
		return ""
	}
	keys := make([]string, 0, len(v.Configuration))
	for k := range v.Configuration {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+": "+v.Configuration[k])
	}
	return strings.Join(pairs, ", ")
}
