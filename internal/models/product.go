package models

import "time"

// ProductListWindow is the slice of the product list a client asks
// for, passed as a JSON-encoded `offset` query parameter.
type ProductListWindow struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// ProductFilter holds exact-match filters for product listings.
type ProductFilter struct {
	CategorySlug string
}

type Product struct {
	ID          int64     `json:"id" db:"id"`
	Slug        string    `json:"slug" db:"slug"`
	Title       string    `json:"title" db:"title"`
	Description *string   `json:"description" db:"description"`
	CategoryID  *int64    `json:"category" db:"category_id"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}
