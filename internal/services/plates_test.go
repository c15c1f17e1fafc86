package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/imbecis/app-imbecis/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlates_GetByCountryAndNumber(t *testing.T) {
	env := newTestEnv(t)
	env.backend.handle("GET /plates/{country}/{number}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("number") == "AA-00-AA" {
			envelope(http.StatusOK, false, "", nil)(w, r)
			return
		}
		envelope(http.StatusOK, true, "", map[string]string{
			"id": "p1", "country": r.PathValue("country"), "number": r.PathValue("number"),
		})(w, r)
	})

	ctx := context.Background()

	plate := env.clients.Plates.GetByCountryAndNumber(ctx, "PT", "12-AB-34")
	require.NotNil(t, plate)
	assert.Equal(t, models.Plate{ID: "p1", Country: "PT", Number: "12-AB-34"}, *plate)
	assert.Equal(t, "device-1", env.backend.last().Header.Get("device-uuid"))

	// success:false means absent, not an error
	assert.Nil(t, env.clients.Plates.GetByCountryAndNumber(ctx, "PT", "AA-00-AA"))

	calls := env.backend.count()
	assert.Nil(t, env.clients.Plates.GetByCountryAndNumber(ctx, "", "12-AB-34"))
	assert.Equal(t, calls, env.backend.count())
}

func TestPlates_GetReportsForPlate(t *testing.T) {
	env := newTestEnv(t)
	env.backend.handle("GET /plates/{id}/reports", func(w http.ResponseWriter, r *http.Request) {
		switch r.PathValue("id") {
		case "p1":
			envelope(http.StatusOK, true, "", []map[string]string{{"id": "r1"}, {"id": "r2"}})(w, r)
		case "empty":
			envelope(http.StatusOK, true, "", []map[string]string{})(w, r)
		default:
			envelope(http.StatusNotFound, false, "Matrícula não encontrada", nil)(w, r)
		}
	})

	ctx := context.Background()

	reports := env.clients.Plates.GetReportsForPlate(ctx, "p1")
	require.Len(t, reports, 2)
	assert.Equal(t, "r2", reports[1].ID)

	empty := env.clients.Plates.GetReportsForPlate(ctx, "empty")
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	assert.Nil(t, env.clients.Plates.GetReportsForPlate(ctx, "unknown"))
	assert.Nil(t, env.clients.Plates.GetReportsForPlate(ctx, ""))
}

func TestPlates_ListConfirmed(t *testing.T) {
	env := newTestEnv(t)
	env.backend.handle("GET /plates", envelope(http.StatusOK, true, "", map[string]interface{}{
		"plates": []map[string]string{{"id": "p1", "country": "PT", "number": "12-AB-34"}},
		"page":   3,
		"total":  41,
	}))

	list := env.clients.Plates.ListConfirmed(context.Background(), 3)

	assert.Equal(t, 3, list.Page)
	assert.Equal(t, 41, list.Total)
	require.Len(t, list.Plates, 1)
	assert.Equal(t, []string{"3"}, env.backend.last().Query["page"])
}

func TestPlates_ListConfirmedDefaults(t *testing.T) {
	env := newTestEnv(t)
	env.backend.handle("GET /plates", envelope(http.StatusServiceUnavailable, false, "", nil))

	// the default page is 1 even though page 5 was requested
	assert.Equal(t, models.EmptyPlatesList(), env.clients.Plates.ListConfirmed(context.Background(), 5))

	down := newUnreachableEnv(t)
	list := down.clients.Plates.ListConfirmed(context.Background(), 5)
	assert.Equal(t, models.PaginatedPlatesList{Plates: []models.Plate{}, Page: 1, Total: 0}, list)
}
