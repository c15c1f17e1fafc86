// Package messages holds the user-facing strings shown when a client
// operation fails, keyed by message key and locale.
package messages

import (
	"fmt"

	"github.com/imbecis/app-imbecis/internal/models"
)

// Key identifies one catalog entry
type Key string

const (
	// Unknown is the generic fallback when no server message exists
	Unknown Key = "unknown"
	// StatusFallback is used when a response body carries no message field
	StatusFallback Key = "status_fallback"
	// RateLimited is shown when votes are submitted too quickly
	RateLimited Key = "rate_limited"
	// InvalidRequest is shown when a request fails local validation
	InvalidRequest Key = "invalid_request"
	// ListReportsUnknown is the fallback of the admin report listing
	ListReportsUnknown Key = "list_reports_unknown"
	// TooManyRequests is returned by the page-data server rate limiter
	TooManyRequests Key = "too_many_requests"
)

// DefaultLocale is used for unknown locales
const DefaultLocale = "pt"

var locales = map[string]map[Key]string{
	"pt": {
		Unknown:            "Erro desconhecido",
		StatusFallback:     "Pedido retornou HTTP %d",
		RateLimited:        "Está a votar muito rápido",
		InvalidRequest:     "Pedido inválido",
		ListReportsUnknown: "Erro desconhecido a obter lista de denúncias",
		TooManyRequests:    "Demasiados pedidos, tente mais tarde",
	},
	"en": {
		Unknown:            "unknown error",
		StatusFallback:     "request failed with status %d",
		RateLimited:        "voting too fast",
		InvalidRequest:     "invalid request",
		ListReportsUnknown: "unknown error while fetching the report list",
		TooManyRequests:    "too many requests, try again later",
	},
}

// Catalog resolves message keys for a single locale
type Catalog struct {
	locale  string
	entries map[Key]string
}

// New returns the catalog for locale, falling back to DefaultLocale
func New(locale string) *Catalog {
	entries, ok := locales[locale]
	if !ok {
		locale = DefaultLocale
		entries = locales[DefaultLocale]
	}
	return &Catalog{locale: locale, entries: entries}
}

// Locale reports the locale actually in use
func (c *Catalog) Locale() string {
	return c.locale
}

// Get returns the entry for key, or the default locale's entry if missing
func (c *Catalog) Get(key Key) string {
	if msg, ok := c.entries[key]; ok {
		return msg
	}
	return locales[DefaultLocale][key]
}

// Status formats the status-coded fallback
func (c *Catalog) Status(code int) string {
	return fmt.Sprintf(c.Get(StatusFallback), code)
}

// ForKind maps an error classification to its default display text
func (c *Catalog) ForKind(kind models.ErrorKind) string {
	switch kind {
	case models.KindRateLimited:
		return c.Get(RateLimited)
	case models.KindInvalidRequest:
		return c.Get(InvalidRequest)
	case models.KindNone:
		return ""
	default:
		return c.Get(Unknown)
	}
}
