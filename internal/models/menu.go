package models

import "github.com/shopspring/decimal"

// MenuItem est un plat du catalogue. Le catalogue est remplacé en bloc
// à chaque fetch, jamais modifié plat par plat.
type MenuItem struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"imageUrl"`
}
