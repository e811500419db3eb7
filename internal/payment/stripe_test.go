package payment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// La confirmation serveur désigne le PaymentIntent par son identifiant,
// extrait du client secret pi_XXX_secret_YYY renvoyé par l'amont.
func TestIntentIDFromSecret(t *testing.T) {
	tests := []struct {
		name   string
		secret string
		wantID string
		wantOK bool
	}{
		{"secret valide", "pi_3Abc123_secret_xyz789", "pi_3Abc123", true},
		{"secret avec suffixe long", "pi_1_secret_a_b_c", "pi_1", true},
		{"pas de marqueur secret", "pi_3Abc123", "", false},
		{"marqueur en tête", "_secret_xyz", "", false},
		{"vide", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := intentIDFromSecret(tt.secret)
			require.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantID, id)
		})
	}
}

func TestConfirmRejectsInvalidClientSecret(t *testing.T) {
	confirmer := &StripeConfirmer{}

	_, err := confirmer.Confirm(t.Context(), "pas-un-client-secret", "pm_card_visa")

	var procErr *ProcessorError
	require.ErrorAs(t, err, &procErr)
	assert.Equal(t, "Client secret invalide", procErr.Message)
}
