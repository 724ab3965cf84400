package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/apprendrelanguage02-max/Matrix/internal/domain"
	"github.com/apprendrelanguage02-max/Matrix/internal/ports"
)

var _ ports.PaymentRepository = (*paymentRepository)(nil)

// paymentRepository implements PaymentRepository for SQLite / Implémente PaymentRepository pour SQLite
type paymentRepository struct {
	db ports.DBTX
}

// NewPaymentRepository creates payment repository / Crée le repository paiements
func NewPaymentRepository(db *sql.DB) ports.PaymentRepository {
	return &paymentRepository{db: db}
}

const paymentColumns = `id, reference, user_id, property_id, amount, currency, method, phone, status, created_at`

func scanPayment(row interface{ Scan(...any) error }) (*domain.Payment, error) {
	p := &domain.Payment{}
	err := row.Scan(
		&p.ID,
		&p.Reference,
		&p.UserID,
		&p.PropertyID,
		&p.Amount,
		&p.Currency,
		&p.Method,
		&p.Phone,
		&p.Status,
		&p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Create inserts a new payment intent / Insère une nouvelle intention de paiement
func (r *paymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	payment.CreatedAt = time.Now().UTC()

	query := `INSERT INTO payments (` + paymentColumns + `)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		payment.ID, payment.Reference, payment.UserID, payment.PropertyID,
		payment.Amount, payment.Currency, payment.Method, payment.Phone,
		payment.Status, payment.CreatedAt,
	)
	return handleError(err)
}

// GetByID retrieves a payment by ID / Récupère un paiement par ID
func (r *paymentRepository) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = ?`
	payment, err := scanPayment(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, handleError(err)
	}
	return payment, nil
}

// ListByUser retrieves a user's payments / Récupère les paiements d'un utilisateur
func (r *paymentRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE user_id = ? ORDER BY created_at DESC`
	return r.queryPayments(ctx, query, userID)
}

// List retrieves paginated payments filtered by status and method /
// Récupère les paiements paginés filtrés par statut et canal
func (r *paymentRepository) List(ctx context.Context, status, method string, offset, limit int) ([]*domain.Payment, int, error) {
	where := []string{"1=1"}
	args := []any{}

	if status != "" {
		where = append(where, "status = ?")
		args = append(args, status)
	}
	if method != "" {
		where = append(where, "method = ?")
		args = append(args, method)
	}
	cond := strings.Join(where, " AND ")

	var totalCount int
	countQuery := `SELECT COUNT(*) FROM payments WHERE ` + cond
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, handleError(err)
	}

	query := `SELECT ` + paymentColumns + ` FROM payments WHERE ` + cond + `
	          ORDER BY created_at DESC LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, handleError(err)
	}
	defer rows.Close()

	var payments []*domain.Payment
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			return nil, 0, handleError(err)
		}
		payments = append(payments, payment)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, handleError(err)
	}

	return payments, totalCount, nil
}

// ListAll retrieves every payment for exports / Récupère tous les paiements pour les exports
func (r *paymentRepository) ListAll(ctx context.Context) ([]*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments ORDER BY created_at DESC`
	return r.queryPayments(ctx, query)
}

func (r *paymentRepository) queryPayments(ctx context.Context, query string, args ...any) ([]*domain.Payment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, handleError(err)
	}
	defer rows.Close()

	var payments []*domain.Payment
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			return nil, handleError(err)
		}
		payments = append(payments, payment)
	}
	if err := rows.Err(); err != nil {
		return nil, handleError(err)
	}
	return payments, nil
}

// CountPayments returns total payment count / Retourne le nombre total de paiements
func (r *paymentRepository) CountPayments(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM payments`).Scan(&count)
	if err != nil {
		return 0, handleError(err)
	}
	return count, nil
}

// UpdateStatus confirms or fails an intent / Confirme ou rejette une intention
func (r *paymentRepository) UpdateStatus(ctx context.Context, id string, status domain.PaymentStatus) error {
	query := `UPDATE payments SET status = ? WHERE id = ?`
	result, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return handleError(err)
	}
	return requireRow(result)
}
