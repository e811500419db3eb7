package payment

import (
	"context"
	"errors"
	"strings"

	"github.com/stripe/stripe-go/v83"
	"github.com/stripe/stripe-go/v83/paymentintent"
)

// Confirmer confirme un débit carte à partir du client secret renvoyé
// par l'endpoint amont create-payment-intent.
type Confirmer interface {
	Confirm(ctx context.Context, clientSecret, paymentMethodID string) (string, error)
}

// ProcessorError porte le message du processeur de paiement, affiché tel quel.
type ProcessorError struct {
	Message string
}

func (e *ProcessorError) Error() string { return e.Message }

type StripeConfirmer struct{}

func NewStripeConfirmer(secretKey string) (*StripeConfirmer, error) {
	if secretKey == "" {
		return nil, errors.New("clé Stripe manquante")
	}
	stripe.Key = secretKey
	return &StripeConfirmer{}, nil
}

// Confirm confirme le PaymentIntent désigné par le client secret et renvoie
// son identifiant. Tout refus du processeur interrompt la séquence de
// checkout avant la création de commande.
func (s *StripeConfirmer) Confirm(ctx context.Context, clientSecret, paymentMethodID string) (string, error) {
	intentID, ok := intentIDFromSecret(clientSecret)
	if !ok {
		return "", &ProcessorError{Message: "Client secret invalide"}
	}

	params := &stripe.PaymentIntentConfirmParams{}
	params.Context = ctx
	if paymentMethodID != "" {
		params.PaymentMethod = stripe.String(paymentMethodID)
	}

	intent, err := paymentintent.Confirm(intentID, params)
	if err != nil {
		return "", &ProcessorError{Message: stripeMessage(err)}
	}

	switch intent.Status {
	case stripe.PaymentIntentStatusSucceeded,
		stripe.PaymentIntentStatusProcessing,
		stripe.PaymentIntentStatusRequiresCapture:
		return intent.ID, nil
	default:
		msg := "Paiement refusé"
		if intent.LastPaymentError != nil && intent.LastPaymentError.Msg != "" {
			msg = intent.LastPaymentError.Msg
		}
		return "", &ProcessorError{Message: msg}
	}
}

// Le client secret suit le format pi_XXX_secret_YYY
func intentIDFromSecret(secret string) (string, bool) {
	i := strings.Index(secret, "_secret_")
	if i <= 0 {
		return "", false
	}
	return secret[:i], true
}

func stripeMessage(err error) string {
	var serr *stripe.Error
	if errors.As(err, &serr) && serr.Msg != "" {
		return serr.Msg
	}
	return err.Error()
}
