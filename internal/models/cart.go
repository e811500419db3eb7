package models

import "github.com/shopspring/decimal"

// CartItem est une ligne du panier : nom, prix et image sont copiés
// depuis le catalogue au moment de l'ajout (pas resynchronisés ensuite).
type CartItem struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	ImageURL  string          `json:"imageUrl"`
}
