package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentCash PaymentMethod = "cash"
	PaymentCard PaymentMethod = "card"
)

// Statuts de commande — affichage uniquement, jamais modifiés côté storefront
const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusDelivered = "delivered"
)

// Order appartient à l'API commandes amont, on ne fait que l'afficher.
type Order struct {
	ID            string          `json:"id"`
	Items         []CartItem      `json:"items"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Tax           decimal.Decimal `json:"tax"`
	TotalPrice    decimal.Decimal `json:"totalPrice"`
	PaymentMethod PaymentMethod   `json:"paymentMethod"`
	PaymentID     string          `json:"paymentId,omitempty"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"createdAt"`
}
