package ports

import (
	"context"

	"github.com/apprendrelanguage02-max/Matrix/internal/domain"
)

// PaymentReader reads payment intents / Lit les intentions de paiement
type PaymentReader interface {
	// GetByID retrieves a payment by ID / Récupère un paiement par ID
	GetByID(ctx context.Context, id string) (*domain.Payment, error)

	// ListByUser retrieves a user's payments, newest first / Récupère les paiements d'un utilisateur
	ListByUser(ctx context.Context, userID string) ([]*domain.Payment, error)

	// List retrieves paginated payments filtered by status and method, with
	// the total match count / Récupère les paiements paginés filtrés par
	// statut et canal
	List(ctx context.Context, status, method string, offset, limit int) ([]*domain.Payment, int, error)

	// ListAll retrieves every payment, for back-office exports / Récupère tous les paiements, pour les exports
	ListAll(ctx context.Context) ([]*domain.Payment, error)

	// CountPayments returns total payment count / Retourne le nombre total de paiements
	CountPayments(ctx context.Context) (int, error)
}

// PaymentWriter mutates payment intents / Modifie les intentions de paiement
type PaymentWriter interface {
	// Create inserts a new payment intent / Insère une nouvelle intention de paiement
	Create(ctx context.Context, payment *domain.Payment) error

	// UpdateStatus confirms or fails an intent, from the back-office only /
	// Confirme ou rejette une intention, depuis le back-office uniquement
	UpdateStatus(ctx context.Context, id string, status domain.PaymentStatus) error
}

// PaymentRepository is the composite interface for payment operations / Interface composite pour les opérations paiements
type PaymentRepository interface {
	PaymentReader
	PaymentWriter
}
