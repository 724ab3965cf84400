package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/apprendrelanguage02-max/Matrix/internal/domain"
	"github.com/apprendrelanguage02-max/Matrix/internal/dto"
	"github.com/apprendrelanguage02-max/Matrix/internal/ports"
	"github.com/apprendrelanguage02-max/Matrix/internal/repository"
	"github.com/google/uuid"
)

// ErrPaymentNotFound signals a missing payment intent / Signale une intention de paiement absente
var ErrPaymentNotFound = errors.New("payment not found")

// defaultCurrency is the only currency the platform handles / Seule devise gérée par la plateforme
const defaultCurrency = "GNF"

// PaymentMetricsRecorder records payment metrics / Enregistre les métriques de paiement
type PaymentMetricsRecorder interface {
	RecordPaymentCreated(method string)
}

// PaymentService records simulated payment intents. No gateway is called:
// intents stay en_attente until the back-office confirms or fails them.
type PaymentService struct {
	payments   ports.PaymentRepository
	properties ports.PropertyReader
	metrics    PaymentMetricsRecorder
}

// NewPaymentService creates payment service instance / Crée une instance de service paiement
func NewPaymentService(payments ports.PaymentRepository, properties ports.PropertyReader, metrics PaymentMetricsRecorder) *PaymentService {
	return &PaymentService{
		payments:   payments,
		properties: properties,
		metrics:    metrics,
	}
}

// newReference builds a human-quotable reference, GIMO- followed by the
// uppercase hex of a fresh UUID / Référence citable, GIMO- suivi de l'hex
// majuscule d'un UUID neuf
func newReference() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return domain.PaymentReferencePrefix + strings.ToUpper(raw[:12])
}

// Create records a payment intent on an existing listing / Enregistre une
// intention de paiement sur une annonce existante
func (s *PaymentService) Create(ctx context.Context, userID string, req dto.PaymentRequest) (*domain.Payment, error) {
	method := domain.PaymentMethod(req.Method)
	if !method.IsValid() {
		return nil, errors.New("invalid payment method")
	}
	if req.Amount <= 0 {
		return nil, errors.New("amount must be positive")
	}
	if req.Currency != "" && req.Currency != defaultCurrency {
		return nil, errors.New("unsupported currency")
	}

	if _, err := s.properties.GetByID(ctx, req.PropertyID); err != nil {
		if errors.Is(err, repository.ErrNoRecord) {
			return nil, ErrPropertyNotFound
		}
		slog.Error("failed to resolve property for payment", "property_id", req.PropertyID, "err", err)
		return nil, errors.New("failed to create payment")
	}

	payment := &domain.Payment{
		ID:         uuid.NewString(),
		Reference:  newReference(),
		UserID:     userID,
		PropertyID: req.PropertyID,
		Amount:     req.Amount,
		Currency:   defaultCurrency,
		Method:     method,
		Phone:      req.Phone,
		Status:     domain.PaymentEnAttente,
	}

	if err := s.payments.Create(ctx, payment); err != nil {
		slog.Error("failed to create payment", "user_id", userID, "err", err)
		return nil, errors.New("failed to create payment")
	}

	s.metrics.RecordPaymentCreated(string(method))
	return payment, nil
}

// Get retrieves a payment visible to the caller: owners see their own, admins
// see everything / Les propriétaires voient les leurs, les admins tout
func (s *PaymentService) Get(ctx context.Context, caller *domain.User, id string) (*domain.Payment, error) {
	payment, err := s.payments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNoRecord) {
			return nil, ErrPaymentNotFound
		}
		slog.Error("failed to get payment", "payment_id", id, "err", err)
		return nil, errors.New("failed to retrieve payment")
	}
	if !caller.IsAdmin() && payment.UserID != caller.ID {
		return nil, ErrPaymentNotFound
	}
	return payment, nil
}

// ListMine retrieves the caller's payment history / Récupère l'historique de paiement de l'appelant
func (s *PaymentService) ListMine(ctx context.Context, userID string) ([]*domain.Payment, error) {
	payments, err := s.payments.ListByUser(ctx, userID)
	if err != nil {
		slog.Error("failed to list user payments", "user_id", userID, "err", err)
		return nil, errors.New("failed to retrieve payments")
	}
	return payments, nil
}

// List retrieves paginated payments for the back-office / Récupère les paiements paginés pour le back-office
func (s *PaymentService) List(ctx context.Context, status, method string, page, limit int) ([]*domain.Payment, int, int, error) {
	if status != "" && !domain.PaymentStatus(status).IsValid() {
		return nil, 0, 0, errors.New("invalid status filter")
	}
	if method != "" && !domain.PaymentMethod(method).IsValid() {
		return nil, 0, 0, errors.New("invalid method filter")
	}

	offset := (page - 1) * limit
	payments, total, err := s.payments.List(ctx, status, method, offset, limit)
	if err != nil {
		slog.Error("failed to list payments", "err", err, "status", status, "method", method)
		return nil, 0, 0, errors.New("failed to retrieve payments")
	}
	return payments, total, computePages(total, limit), nil
}

// UpdateStatus confirms or fails an intent from the back-office / Confirme ou
// rejette une intention depuis le back-office
func (s *PaymentService) UpdateStatus(ctx context.Context, id string, status domain.PaymentStatus) error {
	if !status.IsValid() {
		return errors.New("invalid status")
	}

	if err := s.payments.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, repository.ErrNoRecord) {
			return ErrPaymentNotFound
		}
		slog.Error("failed to update payment status", "payment_id", id, "status", status, "err", err)
		return errors.New("failed to update payment status")
	}
	return nil
}
