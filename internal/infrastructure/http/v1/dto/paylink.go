package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"fakturator/internal/domain/paylink"
)

// --- Request DTOs ---

// CreatePayLinkRequest represents a request to create a pay link.
type CreatePayLinkRequest struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	ExpiresAt   *time.Time      `json:"expiresAt,omitempty"`
}

// ToEntity converts request to domain entity.
func (r *CreatePayLinkRequest) ToEntity() *paylink.PayLink {
	link := paylink.New(r.Name, r.Price)
	link.Description = r.Description
	link.ExpiresAt = r.ExpiresAt
	return link
}

// UpdatePayLinkRequest represents a request to update a pay link.
type UpdatePayLinkRequest struct {
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	ExpiresAt   *time.Time       `json:"expiresAt,omitempty"`
}

// ApplyTo applies updates to an existing entity.
func (r *UpdatePayLinkRequest) ApplyTo(link *paylink.PayLink) {
	if r.Name != nil {
		link.Name = *r.Name
	}
	if r.Description != nil {
		link.Description = *r.Description
	}
	if r.Price != nil {
		link.Price = *r.Price
	}
	if r.ExpiresAt != nil {
		link.ExpiresAt = r.ExpiresAt
	}
}

// --- Response DTOs ---

// PayLinkResponse represents a pay link in admin API responses.
type PayLinkResponse struct {
	ID          string          `json:"id"`
	LinkID      string          `json:"linkId"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	ExpiresAt   *time.Time      `json:"expiresAt,omitempty"`
	Expired     bool            `json:"expired"`
	Version     int             `json:"version"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// FromPayLink creates response from domain pay link.
func FromPayLink(link *paylink.PayLink, now time.Time) *PayLinkResponse {
	return &PayLinkResponse{
		ID:          link.ID.String(),
		LinkID:      link.LinkID,
		Name:        link.Name,
		Description: link.Description,
		Price:       link.Price,
		ExpiresAt:   link.ExpiresAt,
		Expired:     link.IsExpired(now),
		Version:     link.Version,
		CreatedAt:   link.CreatedAt,
		UpdatedAt:   link.UpdatedAt,
	}
}

// PublicPayLinkResponse is the payer-facing view of a pay link.
type PublicPayLinkResponse struct {
	LinkID      string          `json:"linkId"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
}

// FromPayLinkPublic creates the public response from a domain pay link.
func FromPayLinkPublic(link *paylink.PayLink) *PublicPayLinkResponse {
	return &PublicPayLinkResponse{
		LinkID:      link.LinkID,
		Name:        link.Name,
		Description: link.Description,
		Price:       link.Price,
	}
}
