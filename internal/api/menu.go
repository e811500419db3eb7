package api

import (
	"context"
	"net/http"
	"strings"

	"savora_storefront/internal/models"

	"github.com/shopspring/decimal"
)

type menuItemDTO struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
}

// FetchMenu récupère le catalogue complet. Les catégories sont normalisées
// en majuscules pour le regroupement et les images résolues contre la base URL.
func (c *Client) FetchMenu(ctx context.Context) ([]models.MenuItem, error) {
	var dtos []menuItemDTO
	if err := c.doJSON(ctx, http.MethodGet, "/api/menu", "", nil, &dtos); err != nil {
		return nil, err
	}

	items := make([]models.MenuItem, 0, len(dtos))
	for _, d := range dtos {
		items = append(items, models.MenuItem{
			ID:          d.ID,
			Name:        d.Name,
			Description: d.Description,
			Category:    strings.ToUpper(d.Category),
			Price:       d.Price,
			ImageURL:    c.resolveImage(d.Image),
		})
	}
	return items, nil
}

func (c *Client) resolveImage(ref string) string {
	if ref == "" || strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}
	return c.imageBaseURL + "/" + strings.TrimLeft(ref, "/")
}
