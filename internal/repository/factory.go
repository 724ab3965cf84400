package repository

import (
	"database/sql"

	"github.com/apprendrelanguage02-max/Matrix/internal/ports"
)

// DatabaseFactory must be implemented by each database package / Doit être implémenté par chaque package de BD
// This interface ensures compile-time safety: if you add a new repository,
// you MUST implement it in all database packages (sqlite, postgres)
// Cette interface garantit la sécurité à la compilation : si tu ajoutes un nouveau repository,
// tu DOIS l'implémenter dans tous les packages de BD (sqlite, postgres)
type DatabaseFactory interface {
	// NewUserRepository creates user repository / Crée le repository utilisateur
	NewUserRepository(db *sql.DB) ports.UserRepository

	// NewArticleRepository creates article repository / Crée le repository articles
	NewArticleRepository(db *sql.DB) ports.ArticleRepository

	// NewPropertyRepository creates property repository / Crée le repository annonces
	NewPropertyRepository(db *sql.DB) ports.PropertyRepository

	// NewPaymentRepository creates payment repository / Crée le repository paiements
	NewPaymentRepository(db *sql.DB) ports.PaymentRepository
}
