package web

import (
	"errors"
	"net/http"

	"github.com/apprendrelanguage02-max/Matrix/internal/dto"
	"github.com/apprendrelanguage02-max/Matrix/internal/service"
)

// CreatePayment records a payment intent on a listing / Enregistre une intention de paiement sur une annonce
func (h *Handler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	user, ok := CurrentUser(r.Context())
	if !ok {
		ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req dto.PaymentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	payment, err := h.container.PaymentSvc.Create(r.Context(), user.ID, req)
	if err != nil {
		if errors.Is(err, service.ErrPropertyNotFound) {
			ErrorResponse(w, "property not found", http.StatusNotFound)
			return
		}
		ErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	createdResponse(w, dto.PaymentToDTO(payment))
}

// GetPayment serves one payment intent, owner or admin only / Sert une intention de paiement, propriétaire ou admin
func (h *Handler) GetPayment(w http.ResponseWriter, r *http.Request) {
	user, ok := CurrentUser(r.Context())
	if !ok {
		ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	payment, err := h.container.PaymentSvc.Get(r.Context(), user, r.PathValue("id"))
	if err != nil {
		if errors.Is(err, service.ErrPaymentNotFound) {
			ErrorResponse(w, "payment not found", http.StatusNotFound)
			return
		}
		ErrorResponse(w, err.Error(), http.StatusInternalServerError)
		return
	}

	jsonResponse(w, dto.PaymentToDTO(payment))
}

// ListMyPayments serves the signed-in account's payment history / Sert l'historique de paiement du compte connecté
func (h *Handler) ListMyPayments(w http.ResponseWriter, r *http.Request) {
	user, ok := CurrentUser(r.Context())
	if !ok {
		ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	payments, err := h.container.PaymentSvc.ListMine(r.Context(), user.ID)
	if err != nil {
		ErrorResponse(w, err.Error(), http.StatusInternalServerError)
		return
	}

	jsonResponse(w, dto.PaymentsToDTO(payments))
}
