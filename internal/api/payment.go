package api

import "context"

type PaymentIntent struct {
	ClientSecret string `json:"clientSecret"`
}

// CreatePaymentIntent demande à l'amont d'autoriser un débit de amountCents
// (centimes, devise fixe) et renvoie le client secret à confirmer côté processeur.
func (c *Client) CreatePaymentIntent(ctx context.Context, amountCents int64, currency, idempotencyKey string) (*PaymentIntent, error) {
	body := struct {
		Amount         int64  `json:"amount"`
		Currency       string `json:"currency"`
		IdempotencyKey string `json:"idempotencyKey"`
	}{amountCents, currency, idempotencyKey}

	var intent PaymentIntent
	if err := c.postPlain(ctx, "/api/payment/create-payment-intent", body, &intent); err != nil {
		return nil, err
	}
	if intent.ClientSecret == "" {
		return nil, &DecodeError{Endpoint: "/api/payment/create-payment-intent", Err: errMissingSecret}
	}
	return &intent, nil
}
