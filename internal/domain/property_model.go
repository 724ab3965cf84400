package domain

// PropertyType is the transaction type of a listing / Type de transaction d'une annonce
type PropertyType string

const (
	PropertyVente    PropertyType = "vente"
	PropertyAchat    PropertyType = "achat"
	PropertyLocation PropertyType = "location"
)

// IsValid checks the transaction type / Vérifie le type de transaction
func (t PropertyType) IsValid() bool {
	return t == PropertyVente || t == PropertyAchat || t == PropertyLocation
}

// PropertyStatus is the availability of a listing / Disponibilité d'une annonce
type PropertyStatus string

const (
	PropertyDisponible PropertyStatus = "disponible"
	PropertyReserve    PropertyStatus = "reserve"
	PropertyVendu      PropertyStatus = "vendu"
)

// IsValid checks the listing status / Vérifie le statut de l'annonce
func (s PropertyStatus) IsValid() bool {
	return s == PropertyDisponible || s == PropertyReserve || s == PropertyVendu
}

// Cities returns the covered cities, in display order.
func Cities() []string {
	return []string{
		"Conakry", "Kindia", "Labé", "Kankan",
		"Boké", "Mamou", "Faranah", "N'Zérékoré",
	}
}

// IsValidCity checks city membership / Vérifie l'appartenance de la ville
func IsValidCity(c string) bool {
	for _, city := range Cities() {
		if c == city {
			return true
		}
	}
	return false
}

// Property represents a real-estate listing / Représente une annonce immobilière
//
// Description is trusted rich HTML, sanitized when the listing is saved.
// Price is in Guinean francs, no sub-unit.
type Property struct {
	BaseModel
	ID          string
	Title       string
	Description string
	Type        PropertyType
	City        string
	Price       int64
	Surface     int
	Rooms       int
	ImageURL    string
	Status      PropertyStatus
	OwnerID     string
	OwnerName   string
	Views       int64
}

// CanBeEditedBy applies the ownership rule: agents edit their own listings,
// admins edit everything.
func (p *Property) CanBeEditedBy(u *User) bool {
	if u == nil {
		return false
	}
	return u.IsAdmin() || p.OwnerID == u.ID
}
