package messages

import (
	"testing"

	"github.com/imbecis/app-imbecis/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestNew_FallsBackToDefaultLocale(t *testing.T) {
	assert.Equal(t, "pt", New("pt").Locale())
	assert.Equal(t, "en", New("en").Locale())
	assert.Equal(t, DefaultLocale, New("fr").Locale())
	assert.Equal(t, DefaultLocale, New("").Locale())
}

func TestCatalog_Portuguese(t *testing.T) {
	c := New("pt")

	assert.Equal(t, "Erro desconhecido", c.Get(Unknown))
	assert.Equal(t, "Está a votar muito rápido", c.Get(RateLimited))
	assert.Equal(t, "Pedido retornou HTTP 502", c.Status(502))
	assert.Equal(t, "Erro desconhecido a obter lista de denúncias", c.Get(ListReportsUnknown))
}

func TestCatalog_English(t *testing.T) {
	c := New("en")

	assert.Equal(t, "unknown error", c.Get(Unknown))
	assert.Equal(t, "voting too fast", c.Get(RateLimited))
	assert.Equal(t, "request failed with status 404", c.Status(404))
}

func TestCatalog_MissingKeyUsesDefaultLocale(t *testing.T) {
	c := &Catalog{locale: "xx", entries: map[Key]string{}}

	assert.Equal(t, "Erro desconhecido", c.Get(Unknown))
}

func TestCatalog_ForKind(t *testing.T) {
	c := New("pt")

	tests := []struct {
		kind models.ErrorKind
		want string
	}{
		{models.KindNone, ""},
		{models.KindTransport, "Erro desconhecido"},
		{models.KindProtocol, "Erro desconhecido"},
		{models.KindRateLimited, "Está a votar muito rápido"},
		{models.KindInvalidRequest, "Pedido inválido"},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, c.ForKind(tt.kind))
		})
	}
}
