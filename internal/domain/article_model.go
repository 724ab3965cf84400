package domain

// Article categories of the newsroom / Catégories de la rédaction
const (
	CategoryActualite   = "Actualité"
	CategoryPolitique   = "Politique"
	CategorySport       = "Sport"
	CategoryTechnologie = "Technologie"
	CategoryEconomie    = "Économie"
)

// Categories returns the fixed category list, in display order.
func Categories() []string {
	return []string{
		CategoryActualite,
		CategoryPolitique,
		CategorySport,
		CategoryTechnologie,
		CategoryEconomie,
	}
}

// IsValidCategory checks category membership / Vérifie l'appartenance de la catégorie
func IsValidCategory(c string) bool {
	for _, cat := range Categories() {
		if c == cat {
			return true
		}
	}
	return false
}

// Article represents a published news article / Représente un article publié
//
// Content is either legacy token text ([img:url] markers inside plain text)
// or trusted rich HTML produced by the editor. The content package decides
// which at render time.
type Article struct {
	BaseModel
	ID         string
	Title      string
	Content    string
	Category   string
	ImageURL   string
	AuthorID   string
	AuthorName string
	Views      int64
}

// CanBeEditedBy applies the ownership rule: authors edit their own articles,
// admins edit everything.
func (a *Article) CanBeEditedBy(u *User) bool {
	if u == nil {
		return false
	}
	return u.IsAdmin() || a.AuthorID == u.ID
}
