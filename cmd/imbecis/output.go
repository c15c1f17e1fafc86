package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/goccy/go-json"
	"github.com/imbecis/app-imbecis/internal/models"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
)

func notificationStyle(kind models.NotificationType) lipgloss.Style {
	switch kind {
	case models.NotificationSuccess:
		return successStyle
	case models.NotificationError:
		return errorStyle
	case models.NotificationWarning:
		return warningStyle
	default:
		return infoStyle
	}
}

// newNotificationPrinter writes each notification once, in push order
func newNotificationPrinter(w io.Writer) func([]models.Notification) {
	seen := 0
	return func(items []models.Notification) {
		for _, n := range items[min(seen, len(items)):] {
			fmt.Fprintln(w, notificationStyle(n.Type).Render(fmt.Sprintf("[%s] %s", n.Type, n.Message)))
		}
		seen = max(seen, len(items))
	}
}

// emit prints v as JSON when --json is set, otherwise runs render
func emit(v any, render func(w io.Writer)) error {
	if jsonOutput {
		return writeJSON(os.Stdout, v)
	}
	render(os.Stdout)
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func field(w io.Writer, label string, value any) {
	fmt.Fprintf(w, "%s %v\n", labelStyle.Render(label+":"), value)
}

func plateLabel(p *models.PlateInList) string {
	if p == nil {
		return "-"
	}
	return strings.ToUpper(p.Country) + " " + p.Number
}

func renderSummaries(w io.Writer, reports []models.ReportSummary) {
	if len(reports) == 0 {
		fmt.Fprintln(w, labelStyle.Render("sem denúncias"))
		return
	}
	for _, r := range reports {
		plate := plateLabel(r.ConfirmedPlate)
		if r.ConfirmedPlate == nil {
			plate = plateLabel(r.SuggestedPlate)
		}
		fmt.Fprintf(w, "%s  %-10s %-12s %-20s imbecil=%d incerto=%d\n",
			titleStyle.Render(r.ID), r.Status, plate, r.Municipality, r.ImbecileVotes, r.NotSureVotes)
	}
}

func renderReport(w io.Writer, r *models.Report) {
	if r == nil {
		fmt.Fprintln(w, labelStyle.Render("sem denúncia"))
		return
	}
	fmt.Fprintln(w, titleStyle.Render(r.ID))
	field(w, "estado", r.Status)
	field(w, "município", r.Municipality)
	if r.Picture != "" {
		field(w, "fotografia", r.Picture)
	}
	field(w, "criada", r.CreatedAt)
	field(w, "atualizada", r.UpdatedAt)
}

func renderRegion(w io.Writer, r *models.NotificationRegion) {
	if r == nil {
		fmt.Fprintln(w, labelStyle.Render("sem região"))
		return
	}
	fmt.Fprintf(w, "%s  %s prioridade=%d cor=%s destinatários=%d\n",
		titleStyle.Render(r.ID), r.Name, r.Priority, r.Color, len(r.Recipients))
}
