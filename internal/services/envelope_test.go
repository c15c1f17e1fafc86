package services

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/imbecis/app-imbecis/internal/messages"
	"github.com/imbecis/app-imbecis/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rawResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestNormalize(t *testing.T) {
	n := NewNormalizer(messages.New("pt"))
	created := Expectation{Status: http.StatusCreated}
	vote := Expectation{Status: http.StatusCreated, RateLimited: true}

	tests := []struct {
		name        string
		resp        *http.Response
		err         error
		exp         Expectation
		wantKind    models.ErrorKind
		wantMessage string
		wantPayload string
	}{
		{
			name:        "success with payload",
			resp:        rawResponse(201, `{"success":true,"message":"ok","payload":{"id":"r1"}}`),
			exp:         created,
			wantKind:    models.KindNone,
			wantMessage: "ok",
			wantPayload: `{"id":"r1"}`,
		},
		{
			name:     "success without payload",
			resp:     rawResponse(201, `{"success":true}`),
			exp:      created,
			wantKind: models.KindNone,
		},
		{
			name:        "transport failure",
			err:         errors.New("dial tcp: i/o timeout"),
			exp:         created,
			wantKind:    models.KindTransport,
			wantMessage: "Erro desconhecido",
		},
		{
			name:        "transport failure with override",
			err:         errors.New("no such host"),
			exp:         Expectation{Status: 200, TransportMessage: messages.ListReportsUnknown},
			wantKind:    models.KindTransport,
			wantMessage: "Erro desconhecido a obter lista de denúncias",
		},
		{
			name:        "unexpected status despite success body",
			resp:        rawResponse(200, `{"success":true,"payload":{"id":"r1"}}`),
			exp:         created,
			wantKind:    models.KindProtocol,
			wantMessage: "Pedido retornou HTTP 200",
		},
		{
			name:        "server message wins",
			resp:        rawResponse(400, `{"success":false,"message":"Matrícula inválida"}`),
			exp:         created,
			wantKind:    models.KindProtocol,
			wantMessage: "Matrícula inválida",
		},
		{
			name:        "success false without message",
			resp:        rawResponse(201, `{"success":false}`),
			exp:         created,
			wantKind:    models.KindProtocol,
			wantMessage: "Erro desconhecido",
		},
		{
			name:        "error status without body",
			resp:        rawResponse(502, ``),
			exp:         created,
			wantKind:    models.KindProtocol,
			wantMessage: "Pedido retornou HTTP 502",
		},
		{
			name:        "non json body",
			resp:        rawResponse(500, `<html>oops</html>`),
			exp:         created,
			wantKind:    models.KindProtocol,
			wantMessage: "Pedido retornou HTTP 500",
		},
		{
			name:        "429 on vote",
			resp:        rawResponse(429, ``),
			exp:         vote,
			wantKind:    models.KindRateLimited,
			wantMessage: "Está a votar muito rápido",
		},
		{
			name:        "429 on vote with server message",
			resp:        rawResponse(429, `{"success":false,"message":"Too Many Requests"}`),
			exp:         vote,
			wantKind:    models.KindRateLimited,
			wantMessage: "Está a votar muito rápido",
		},
		{
			name:        "429 elsewhere",
			resp:        rawResponse(429, ``),
			exp:         created,
			wantKind:    models.KindProtocol,
			wantMessage: "Pedido retornou HTTP 429",
		},
		{
			name:        "generic fallback without message",
			resp:        rawResponse(401, `{"success":false}`),
			exp:         Expectation{Status: http.StatusOK, GenericFallback: true},
			wantKind:    models.KindProtocol,
			wantMessage: "Erro desconhecido",
		},
		{
			name:        "generic fallback keeps server message",
			resp:        rawResponse(403, `{"success":false,"message":"Sem permissão"}`),
			exp:         Expectation{Status: http.StatusOK, GenericFallback: true},
			wantKind:    models.KindProtocol,
			wantMessage: "Sem permissão",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := n.Normalize(tt.resp, tt.err, tt.exp)

			assert.Equal(t, tt.wantKind, out.Kind)
			assert.Equal(t, tt.wantMessage, out.Message)
			assert.Equal(t, tt.wantKind == models.KindNone, out.OK())
			if tt.wantKind != models.KindNone {
				assert.Error(t, out.Err)
			}
			if tt.wantPayload != "" {
				assert.JSONEq(t, tt.wantPayload, string(out.Payload))
			}

			result := out.Result()
			assert.Equal(t, out.OK(), result.Success)
			assert.Equal(t, out.Message, result.Message)
		})
	}
}

func TestNormalize_EnglishCatalog(t *testing.T) {
	n := NewNormalizer(messages.New("en"))

	out := n.Normalize(nil, errors.New("timeout"), Expectation{Status: 200})
	assert.Equal(t, "unknown error", out.Message)

	out = n.Normalize(rawResponse(503, ""), nil, Expectation{Status: 200})
	assert.Equal(t, "request failed with status 503", out.Message)
}

func TestNormalize_ErrorCauses(t *testing.T) {
	n := NewNormalizer(nil)

	out := n.Normalize(rawResponse(404, `{"success":false}`), nil, Expectation{Status: 200})
	assert.ErrorIs(t, out.Err, models.ErrUnexpectedStatus)

	out = n.Normalize(rawResponse(200, `{"success":false}`), nil, Expectation{Status: 200})
	assert.ErrorIs(t, out.Err, models.ErrUnsuccessfulRequest)
}

func TestDecode(t *testing.T) {
	n := NewNormalizer(nil)

	out := n.Normalize(rawResponse(200, `{"success":true,"payload":{"id":"p1","country":"PT","number":"AA-00-AA"}}`), nil, Expectation{Status: 200})
	plate, err := Decode[models.Plate](out)
	require.NoError(t, err)
	assert.Equal(t, models.Plate{ID: "p1", Country: "PT", Number: "AA-00-AA"}, plate)

	out = n.Normalize(rawResponse(200, `{"success":true,"payload":null}`), nil, Expectation{Status: 200})
	_, err = Decode[models.Plate](out)
	assert.ErrorIs(t, err, models.ErrMissingPayload)

	out = n.Normalize(rawResponse(200, `{"success":true}`), nil, Expectation{Status: 200})
	_, err = Decode[models.Plate](out)
	assert.ErrorIs(t, err, models.ErrMissingPayload)

	out = n.Normalize(rawResponse(200, `{"success":true,"payload":"text"}`), nil, Expectation{Status: 200})
	_, err = Decode[models.Plate](out)
	assert.Error(t, err)
}

func TestSession(t *testing.T) {
	s := NewSession()
	assert.Equal(t, "", s.Token())

	s.SetToken("abc")
	assert.Equal(t, "abc", s.Token())

	s.SetToken("")
	assert.Equal(t, "", s.Token())

	var none *Session
	none.SetToken("ignored")
	assert.Equal(t, "", none.Token())
}
