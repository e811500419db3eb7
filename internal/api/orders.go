package api

import (
	"context"
	"net/http"

	"savora_storefront/internal/models"

	"github.com/shopspring/decimal"
)

// OrderRequest est le payload de création de commande. PaymentID reste nil
// pour un paiement à la livraison. La clé d'idempotence est la même que celle
// envoyée à create-payment-intent, pour que l'amont puisse rapprocher un
// débit orphelin d'une commande rejouée.
type OrderRequest struct {
	models.CheckoutForm
	Items          []models.CartItem    `json:"items"`
	TotalPrice     decimal.Decimal      `json:"totalPrice"`
	PaymentMethod  models.PaymentMethod `json:"paymentMethod"`
	PaymentID      *string              `json:"paymentId"`
	IdempotencyKey string               `json:"idempotencyKey"`
}

func (c *Client) CreateOrder(ctx context.Context, token string, req OrderRequest) (*models.Order, error) {
	var order models.Order
	if err := c.doJSON(ctx, http.MethodPost, "/api/orders", token, req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) MyOrders(ctx context.Context, token string) ([]models.Order, error) {
	var orders []models.Order
	if err := c.doJSON(ctx, http.MethodGet, "/api/orders", token, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}
