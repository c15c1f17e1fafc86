package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/goccy/go-json"
	"github.com/imbecis/app-imbecis/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func portoRegion() models.NotificationRegion {
	return models.NotificationRegion{
		ID:       "g1",
		Name:     "Porto centro",
		Priority: 2,
		Color:    "#3366ff",
		Polygon: models.Polygon{
			Type:        "Polygon",
			Coordinates: [][][]float64{{{-8.62, 41.14}, {-8.60, 41.14}, {-8.60, 41.16}, {-8.62, 41.16}, {-8.62, 41.14}}},
		},
		Recipients: []models.NotificationRecipient{
			{Type: models.RecipientEmail, Target: "policia@example.pt"},
			{Type: models.RecipientReddit, Target: "r/porto"},
		},
	}
}

func TestRegions_Create(t *testing.T) {
	env := newTestEnv(t)
	env.session.SetToken("T")
	env.backend.handle("POST /regions", func(w http.ResponseWriter, r *http.Request) {
		var in models.RegionInput
		_ = json.NewDecoder(r.Body).Decode(&in)
		envelope(http.StatusCreated, true, "Região criada", models.NotificationRegion{
			ID: "g1", Name: in.Name, Priority: in.Priority, Color: in.Color, Polygon: in.Polygon, Recipients: in.Recipients,
		})(w, r)
	})

	region := portoRegion()
	resp := env.clients.Regions.Create(context.Background(), region.Input())

	require.True(t, resp.Success)
	assert.Equal(t, "Região criada", resp.Message)
	require.NotNil(t, resp.Payload)
	assert.Equal(t, region, *resp.Payload)

	req := env.backend.last()
	assert.Equal(t, "device-1", req.Header.Get("device-uuid"))
	assert.Equal(t, "T", req.Header.Get("csrf-token"))
}

func TestRegions_CreateValidation(t *testing.T) {
	env := newTestEnv(t)

	input := portoRegion().Input()
	input.Polygon.Coordinates = [][][]float64{{{0, 0}, {1, 0}, {1, 1}}}

	resp := env.clients.Regions.Create(context.Background(), input)
	assert.False(t, resp.Success)
	assert.Nil(t, resp.Payload)
	assert.Equal(t, "Pedido inválido", resp.Message)
	assert.Equal(t, 0, env.backend.count())
}

func TestRegions_Update(t *testing.T) {
	env := newTestEnv(t)
	env.backend.handle("PUT /regions/{id}", envelope(http.StatusOK, true, "", nil))

	region := portoRegion()
	assert.True(t, env.clients.Regions.Update(context.Background(), region))

	req := env.backend.last()
	assert.Equal(t, "/regions/g1", req.Path)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(req.Body, &body))
	assert.NotContains(t, body, "id")
	assert.Equal(t, "Porto centro", body["name"])

	region.ID = ""
	assert.False(t, env.clients.Regions.Update(context.Background(), region))
}

func TestRegions_UpdateFailure(t *testing.T) {
	env := newTestEnv(t)
	env.backend.handle("PUT /regions/{id}", envelope(http.StatusOK, false, "Sem permissão", nil))

	assert.False(t, env.clients.Regions.Update(context.Background(), portoRegion()))
}

func TestRegions_List(t *testing.T) {
	env := newTestEnv(t)
	env.backend.handle("GET /regions", envelope(http.StatusOK, true, "", []models.NotificationRegion{portoRegion()}))

	resp := env.clients.Regions.List(context.Background())
	require.True(t, resp.Success)
	require.Len(t, resp.Payload, 1)
	assert.Equal(t, "g1", resp.Payload[0].ID)
}

func TestRegions_ListFailures(t *testing.T) {
	down := newUnreachableEnv(t)
	resp := down.clients.Regions.List(context.Background())
	assert.False(t, resp.Success)
	assert.Equal(t, "Erro desconhecido", resp.Message)
	assert.NotNil(t, resp.Payload)
	assert.Empty(t, resp.Payload)

	env := newTestEnv(t)
	env.backend.handle("GET /regions", envelope(http.StatusUnauthorized, false, "", nil))
	resp = env.clients.Regions.List(context.Background())
	assert.False(t, resp.Success)
	assert.Equal(t, "Erro desconhecido", resp.Message)
}

func TestRegions_FailuresWithoutMessageUseGenericFallback(t *testing.T) {
	env := newTestEnv(t)
	env.backend.handle("GET /regions/{id}", envelope(http.StatusNotFound, false, "", nil))
	env.backend.handle("POST /regions", envelope(http.StatusForbidden, false, "", nil))
	env.backend.handle("DELETE /regions/{id}", envelope(http.StatusInternalServerError, false, "", nil))
	env.backend.handle("PUT /regions/{id}", envelope(http.StatusBadRequest, false, "Polígono inválido", nil))

	ctx := context.Background()
	assert.Equal(t, "Erro desconhecido", env.clients.Regions.Get(ctx, "g1").Message)
	assert.Equal(t, "Erro desconhecido", env.clients.Regions.Create(ctx, portoRegion().Input()).Message)
	assert.Equal(t, "Erro desconhecido", env.clients.Regions.Delete(ctx, "g1").Message)
	assert.False(t, env.clients.Regions.Update(ctx, portoRegion()))
	assert.Equal(t, 4, env.backend.count())
}

func TestRegions_Get(t *testing.T) {
	env := newTestEnv(t)
	env.backend.handle("GET /regions/{id}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") != "g1" {
			envelope(http.StatusNotFound, false, "Região não encontrada", nil)(w, r)
			return
		}
		envelope(http.StatusOK, true, "", portoRegion())(w, r)
	})

	ctx := context.Background()

	resp := env.clients.Regions.Get(ctx, "g1")
	require.True(t, resp.Success)
	assert.Equal(t, "Porto centro", resp.Payload.Name)

	resp = env.clients.Regions.Get(ctx, "nope")
	assert.False(t, resp.Success)
	assert.Nil(t, resp.Payload)
	assert.Equal(t, "Região não encontrada", resp.Message)

	resp = env.clients.Regions.Get(ctx, "")
	assert.False(t, resp.Success)
	assert.Equal(t, "Pedido inválido", resp.Message)
}

func TestRegions_Delete(t *testing.T) {
	env := newTestEnv(t)
	env.backend.handle("DELETE /regions/{id}", envelope(http.StatusOK, true, "Região apagada", true))

	resp := env.clients.Regions.Delete(context.Background(), "g1")
	assert.True(t, resp.Success)
	assert.True(t, resp.Payload)
	assert.Equal(t, "Região apagada", resp.Message)

	down := newUnreachableEnv(t)
	resp = down.clients.Regions.Delete(context.Background(), "g1")
	assert.False(t, resp.Success)
	assert.False(t, resp.Payload)
	assert.Equal(t, "Erro desconhecido", resp.Message)
}
