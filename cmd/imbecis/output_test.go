package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/imbecis/app-imbecis/internal/models"
	"github.com/imbecis/app-imbecis/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationPrinter_PrintsEachOnce(t *testing.T) {
	var buf bytes.Buffer
	notifications := store.NewNotifications()
	notifications.Push("antes", models.NotificationInfo)

	unsubscribe := notifications.Subscribe(newNotificationPrinter(&buf))
	defer unsubscribe()

	notifications.Push("Denúncia atualizada", models.NotificationSuccess)
	notifications.Push("Erro desconhecido", models.NotificationError)

	out := buf.String()
	assert.Equal(t, 1, strings.Count(out, "antes"))
	assert.Equal(t, 1, strings.Count(out, "Denúncia atualizada"))
	assert.Contains(t, out, "[error] Erro desconhecido")
	assert.Less(t, strings.Index(out, "atualizada"), strings.Index(out, "desconhecido"))
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeJSON(&buf, models.Result{Success: true, Message: "ok", Kind: models.KindProtocol}))

	assert.JSONEq(t, `{"success":true,"message":"ok"}`, buf.String())
}

func TestPlateLabel(t *testing.T) {
	assert.Equal(t, "-", plateLabel(nil))
	assert.Equal(t, "PT 00-AA-00", plateLabel(&models.PlateInList{Country: "pt", Number: "00-AA-00"}))
}

func TestRenderSummaries(t *testing.T) {
	var buf bytes.Buffer
	renderSummaries(&buf, nil)
	assert.Contains(t, buf.String(), "sem denúncias")

	buf.Reset()
	renderSummaries(&buf, []models.ReportSummary{{
		ID:             "r1",
		Status:         "confirmed",
		SuggestedPlate: &models.PlateInList{Country: "pt", Number: "11-BB-22"},
		ImbecileVotes:  3,
	}})
	assert.Contains(t, buf.String(), "PT 11-BB-22")
	assert.Contains(t, buf.String(), "imbecil=3")
}

func TestFailure(t *testing.T) {
	assert.NoError(t, failure(true, "ignored"))
	assert.EqualError(t, failure(false, "Pedido inválido"), "Pedido inválido")
}
