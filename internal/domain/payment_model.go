package domain

import "time"

// PaymentMethod is the simulated payment channel / Canal de paiement simulé
type PaymentMethod string

const (
	MethodOrangeMoney   PaymentMethod = "orange_money"
	MethodMobileMoney   PaymentMethod = "mobile_money"
	MethodPaycard       PaymentMethod = "paycard"
	MethodCarteBancaire PaymentMethod = "carte_bancaire"
)

// IsValid checks the payment method / Vérifie le canal de paiement
func (m PaymentMethod) IsValid() bool {
	switch m {
	case MethodOrangeMoney, MethodMobileMoney, MethodPaycard, MethodCarteBancaire:
		return true
	}
	return false
}

// PaymentStatus is the lifecycle state of a payment intent / État du cycle de vie d'une intention de paiement
type PaymentStatus string

const (
	PaymentEnAttente PaymentStatus = "en_attente"
	PaymentConfirme  PaymentStatus = "confirme"
	PaymentEchoue    PaymentStatus = "echoue"
)

// IsValid checks the payment status / Vérifie le statut du paiement
func (s PaymentStatus) IsValid() bool {
	return s == PaymentEnAttente || s == PaymentConfirme || s == PaymentEchoue
}

// PaymentReferencePrefix opens every payment reference / Préfixe de toute référence de paiement
const PaymentReferencePrefix = "GIMO-"

// Payment represents a simulated payment intent on a listing. No gateway is
// called: the intent is recorded and its status is driven from the back-office.
type Payment struct {
	ID         string
	Reference  string
	UserID     string
	PropertyID string
	Amount     int64
	Currency   string
	Method     PaymentMethod
	Phone      string
	Status     PaymentStatus
	CreatedAt  time.Time
}
