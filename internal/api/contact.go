package api

import (
	"context"
	"net/http"

	"savora_storefront/internal/models"
)

// SendContact transmet un message du formulaire de contact à l'amont.
func (c *Client) SendContact(ctx context.Context, msg models.ContactMessage) error {
	return c.doJSON(ctx, http.MethodPost, "/api/contact", "", msg, nil)
}
