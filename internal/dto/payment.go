package dto

import (
	"time"

	"github.com/apprendrelanguage02-max/Matrix/internal/domain"
)

// PaymentRequest is the payload for a payment intent / Charge utile d'une intention de paiement
type PaymentRequest struct {
	PropertyID string `json:"property_id"`
	Amount     int64  `json:"amount"`
	Currency   string `json:"currency"`
	Method     string `json:"method"`
	Phone      string `json:"phone"`
}

// PaymentResponse is the public shape of a payment intent / Forme publique d'une intention de paiement
type PaymentResponse struct {
	ID         string    `json:"id"`
	Reference  string    `json:"reference"`
	UserID     string    `json:"user_id"`
	PropertyID string    `json:"property_id"`
	Amount     int64     `json:"amount"`
	Currency   string    `json:"currency"`
	Method     string    `json:"method"`
	Phone      string    `json:"phone,omitempty"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

// PaymentToDTO converts domain.Payment / Convertit domain.Payment
func PaymentToDTO(p *domain.Payment) *PaymentResponse {
	return &PaymentResponse{
		ID:         p.ID,
		Reference:  p.Reference,
		UserID:     p.UserID,
		PropertyID: p.PropertyID,
		Amount:     p.Amount,
		Currency:   p.Currency,
		Method:     string(p.Method),
		Phone:      p.Phone,
		Status:     string(p.Status),
		CreatedAt:  p.CreatedAt,
	}
}

// PaymentsToDTO converts a payment slice / Convertit une liste de paiements
func PaymentsToDTO(payments []*domain.Payment) []*PaymentResponse {
	out := make([]*PaymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, PaymentToDTO(p))
	}
	return out
}

// PaymentListResponse is a paginated payment listing / Liste paginée de paiements
type PaymentListResponse struct {
	Payments []*PaymentResponse `json:"payments"`
	Total    int                `json:"total"`
	Pages    int                `json:"pages"`
}

// PaymentStatusRequest drives the intent lifecycle from the back-office /
// Pilote le cycle de vie d'une intention depuis le back-office
type PaymentStatusRequest struct {
	Status string `json:"status"`
}

// StatsResponse is the back-office dashboard summary / Synthèse du tableau de bord
type StatsResponse struct {
	Users      int `json:"users"`
	Articles   int `json:"articles"`
	Properties int `json:"properties"`
	Payments   int `json:"payments"`
}
