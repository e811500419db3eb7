package checkout

import (
	"context"
	"errors"
	"log"
	"sync"
	"sync/atomic"

	"savora_storefront/internal/api"
	"savora_storefront/internal/models"
	"savora_storefront/internal/store"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// State décrit l'avancement de la séquence de checkout.
type State int32

const (
	StateIdle State = iota
	StateValidating
	StateAwaitingPayment
	StateSubmitting
	StateComplete
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateAwaitingPayment:
		return "awaiting_payment"
	case StateSubmitting:
		return "submitting"
	case StateComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// ValidationError : précondition locale non remplie, aucun appel réseau émis.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// ErrInFlight : une séquence est déjà en cours pour ce panier, la soumission
// est refusée plutôt que de risquer un double débit.
var ErrInFlight = errors.New("une commande est déjà en cours de traitement")

// Confirmer est satisfait par payment.StripeConfirmer.
type Confirmer interface {
	Confirm(ctx context.Context, clientSecret, paymentMethodID string) (string, error)
}

// Input rassemble tout ce que la séquence consomme : formulaire, méthode de
// paiement, token de session et panier de la session.
type Input struct {
	Form            models.CheckoutForm
	Method          models.PaymentMethod
	PaymentMethodID string
	Token           string
	Cart            *store.Cart
}

// Sequencer déroule le pipeline linéaire à trois étapes :
// valider → (carte : créer l'intent puis confirmer le débit) → créer la commande.
// L'étape 2 se termine toujours, succès ou échec, avant l'étape 3.
// Une même clé d'idempotence couvre l'intent et la commande.
//
// Le verrou anti-double-soumission est porté par panier : deux soumissions
// du même panier se disputent le verrou, les paniers des autres sessions
// ne sont jamais affectés.
type Sequencer struct {
	api       *api.Client
	confirmer Confirmer
	currency  string
	runs      sync.Map // *store.Cart → *cartRun
}

// cartRun est l'état d'exécution d'un panier : au plus une séquence en vol.
type cartRun struct {
	inFlight atomic.Bool
	state    atomic.Int32
}

func (r *cartRun) setState(st State) {
	r.state.Store(int32(st))
}

func NewSequencer(client *api.Client, confirmer Confirmer) *Sequencer {
	return &Sequencer{api: client, confirmer: confirmer, currency: "usd"}
}

func (s *Sequencer) runFor(cart *store.Cart) *cartRun {
	v, _ := s.runs.LoadOrStore(cart, new(cartRun))
	return v.(*cartRun)
}

// State renvoie l'avancement de la séquence du panier donné.
func (s *Sequencer) State(cart *store.Cart) State {
	if v, ok := s.runs.Load(cart); ok {
		return State(v.(*cartRun).state.Load())
	}
	return StateIdle
}

// Run exécute la séquence au plus une fois et renvoie soit la commande créée,
// soit une erreur typée (validation, paiement, API, décodage). Le panier est
// vidé uniquement après la création de commande réussie.
func (s *Sequencer) Run(ctx context.Context, in Input) (*models.Order, error) {
	run := s.runFor(in.Cart)
	if !run.inFlight.CompareAndSwap(false, true) {
		return nil, ErrInFlight
	}
	defer run.inFlight.Store(false)

	run.setState(StateValidating)
	if err := validate(in); err != nil {
		run.setState(StateIdle)
		return nil, err
	}

	total := in.Cart.Total()
	idempotencyKey := uuid.NewString()

	var paymentID *string
	if in.Method == models.PaymentCard {
		run.setState(StateAwaitingPayment)

		cents := total.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
		intent, err := s.api.CreatePaymentIntent(ctx, cents, s.currency, idempotencyKey)
		if err != nil {
			run.setState(StateIdle)
			return nil, err
		}

		id, err := s.confirmer.Confirm(ctx, intent.ClientSecret, in.PaymentMethodID)
		if err != nil {
			run.setState(StateIdle)
			return nil, err
		}
		paymentID = &id
		log.Printf("💳 Paiement confirmé : %s (%s centimes: %d)", id, s.currency, cents)
	}

	run.setState(StateSubmitting)
	order, err := s.api.CreateOrder(ctx, in.Token, api.OrderRequest{
		CheckoutForm:   in.Form,
		Items:          in.Cart.Items(),
		TotalPrice:     total,
		PaymentMethod:  in.Method,
		PaymentID:      paymentID,
		IdempotencyKey: idempotencyKey,
	})
	if err != nil {
		run.setState(StateIdle)
		return nil, err
	}

	// Vidage du panier : étape explicite de la séquence, pas une
	// responsabilité laissée à la vue
	in.Cart.Clear()
	run.setState(StateComplete)
	log.Printf("✅ Commande %s créée (%s)", order.ID, in.Method)
	return order, nil
}

func validate(in Input) error {
	if in.Token == "" {
		return &ValidationError{Reason: "Connectez-vous pour passer commande"}
	}
	if in.Form.FirstName == "" || in.Form.Address == "" || in.Form.City == "" {
		return &ValidationError{Reason: "Prénom, adresse et ville sont obligatoires"}
	}
	if in.Cart == nil || in.Cart.Count() == 0 {
		return &ValidationError{Reason: "Votre panier est vide"}
	}
	if in.Method != models.PaymentCash && in.Method != models.PaymentCard {
		return &ValidationError{Reason: "Méthode de paiement inconnue"}
	}
	return nil
}
