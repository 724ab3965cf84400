package service

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/apprendrelanguage02-max/Matrix/internal/dto"
	"github.com/apprendrelanguage02-max/Matrix/internal/ports"
)

// AdminService aggregates back-office dashboards and data exports / Agrège les
// tableaux de bord et exports du back-office
type AdminService struct {
	users      ports.UserReader
	articles   ports.ArticleReader
	properties ports.PropertyReader
	payments   ports.PaymentReader
}

// NewAdminService creates admin service instance / Crée une instance de service admin
func NewAdminService(users ports.UserReader, articles ports.ArticleReader, properties ports.PropertyReader, payments ports.PaymentReader) *AdminService {
	return &AdminService{
		users:      users,
		articles:   articles,
		properties: properties,
		payments:   payments,
	}
}

// Stats counts every entity for the dashboard header / Compte chaque entité pour l'en-tête du tableau de bord
func (s *AdminService) Stats(ctx context.Context) (*dto.StatsResponse, error) {
	userCount, err := s.users.CountUsers(ctx)
	if err != nil {
		slog.Error("failed to count users", "err", err)
		return nil, errors.New("failed to compute stats")
	}
	articleCount, err := s.articles.CountArticles(ctx)
	if err != nil {
		slog.Error("failed to count articles", "err", err)
		return nil, errors.New("failed to compute stats")
	}
	propertyCount, err := s.properties.CountProperties(ctx)
	if err != nil {
		slog.Error("failed to count properties", "err", err)
		return nil, errors.New("failed to compute stats")
	}
	paymentCount, err := s.payments.CountPayments(ctx)
	if err != nil {
		slog.Error("failed to count payments", "err", err)
		return nil, errors.New("failed to compute stats")
	}

	return &dto.StatsResponse{
		Users:      userCount,
		Articles:   articleCount,
		Properties: propertyCount,
		Payments:   paymentCount,
	}, nil
}

// ExportUsers streams the user table as CSV / Exporte la table des utilisateurs en CSV
func (s *AdminService) ExportUsers(ctx context.Context, w io.Writer) error {
	users, err := s.users.ListAll(ctx)
	if err != nil {
		slog.Error("failed to export users", "err", err)
		return errors.New("failed to export users")
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "username", "email", "role", "status", "created_at"}); err != nil {
		return err
	}
	for _, u := range users {
		record := []string{
			u.ID, u.Username, u.Email,
			string(u.Role), string(u.Status),
			u.CreatedAt.Format(time.RFC3339),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportArticles streams the article table as CSV, without bodies / Exporte la
// table des articles en CSV, sans les corps
func (s *AdminService) ExportArticles(ctx context.Context, w io.Writer) error {
	articles, err := s.articles.ListAll(ctx)
	if err != nil {
		slog.Error("failed to export articles", "err", err)
		return errors.New("failed to export articles")
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "title", "category", "author", "views", "created_at"}); err != nil {
		return err
	}
	for _, a := range articles {
		record := []string{
			a.ID, a.Title, a.Category, a.AuthorName,
			strconv.FormatInt(a.Views, 10),
			a.CreatedAt.Format(time.RFC3339),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportProperties streams the listing table as CSV / Exporte la table des annonces en CSV
func (s *AdminService) ExportProperties(ctx context.Context, w io.Writer) error {
	properties, err := s.properties.ListAll(ctx)
	if err != nil {
		slog.Error("failed to export properties", "err", err)
		return errors.New("failed to export properties")
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "title", "type", "city", "price", "status", "owner", "created_at"}); err != nil {
		return err
	}
	for _, p := range properties {
		record := []string{
			p.ID, p.Title, string(p.Type), p.City,
			strconv.FormatInt(p.Price, 10),
			string(p.Status), p.OwnerName,
			p.CreatedAt.Format(time.RFC3339),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportPayments streams the payment table as CSV / Exporte la table des paiements en CSV
func (s *AdminService) ExportPayments(ctx context.Context, w io.Writer) error {
	payments, err := s.payments.ListAll(ctx)
	if err != nil {
		slog.Error("failed to export payments", "err", err)
		return errors.New("failed to export payments")
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "reference", "user_id", "property_id", "amount", "currency", "method", "status", "created_at"}); err != nil {
		return err
	}
	for _, p := range payments {
		record := []string{
			p.ID, p.Reference, p.UserID, p.PropertyID,
			strconv.FormatInt(p.Amount, 10),
			p.Currency, string(p.Method), string(p.Status),
			p.CreatedAt.Format(time.RFC3339),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
