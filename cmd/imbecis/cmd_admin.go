package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/huh"
	"github.com/imbecis/app-imbecis/internal/models"
	"github.com/imbecis/app-imbecis/internal/services"
	"github.com/spf13/cobra"
)

var (
	adminPage         int
	adminStatus       string
	adminMunicipality string
	adminSort         string

	adminPlate   string
	adminCountry string
	adminYes     bool

	adminCmd = &cobra.Command{
		Use:   "admin",
		Short: "Administração de denúncias",
	}
	adminListCmd = &cobra.Command{
		Use:   "list",
		Short: "Lista denúncias com filtros",
		Args:  cobra.NoArgs,
		RunE:  runAdminList,
	}
	adminUpdateCmd = &cobra.Command{
		Use:   "update <report-id> <estado>",
		Short: "Altera o estado e a matrícula de uma denúncia",
		Args:  cobra.ExactArgs(2),
		RunE:  runAdminUpdate,
	}
	adminDeleteCmd = &cobra.Command{
		Use:   "delete <report-id>",
		Short: "Apaga uma denúncia",
		Args:  cobra.ExactArgs(1),
		RunE:  runAdminDelete,
	}
)

func init() {
	adminListCmd.Flags().IntVar(&adminPage, "page", 1, "página")
	adminListCmd.Flags().StringVar(&adminStatus, "status", "", "filtrar por estado")
	adminListCmd.Flags().StringVar(&adminMunicipality, "municipio", "", "filtrar por município")
	adminListCmd.Flags().StringVar(&adminSort, "sort", "desc", "ordem (asc ou desc)")

	adminUpdateCmd.Flags().StringVar(&adminPlate, "plate", "", "matrícula")
	adminUpdateCmd.Flags().StringVar(&adminCountry, "country", "", "país da matrícula")

	adminDeleteCmd.Flags().BoolVarP(&adminYes, "yes", "y", false, "não pedir confirmação")

	adminCmd.AddCommand(adminListCmd, adminUpdateCmd, adminDeleteCmd)
}

func runAdminList(cmd *cobra.Command, _ []string) error {
	page := services.NewPageLoader(cli.Clients).AdminReports(cmd.Context(), services.ReportFilters{
		Status:       adminStatus,
		Municipality: adminMunicipality,
		SortOrder:    adminSort,
	}, adminPage)
	if page.Message != "" {
		return errors.New(page.Message)
	}
	return emit(page, func(w io.Writer) {
		field(w, "página", fmt.Sprintf("%d (%d no total)", page.Page, page.Total))
		renderSummaries(w, page.Reports)
	})
}

// Outcome of update and delete is reported through notifications
func runAdminUpdate(cmd *cobra.Command, args []string) error {
	ok := cli.Clients.Reports.UpdateAdmin(cmd.Context(), models.UpdateReportRequest{
		ReportID:     args[0],
		Status:       args[1],
		PlateNumber:  adminPlate,
		PlateCountry: adminCountry,
	})
	return failure(ok, "atualização falhou")
}

func runAdminDelete(cmd *cobra.Command, args []string) error {
	if !adminYes {
		confirmed := false
		err := huh.NewConfirm().
			Title(fmt.Sprintf("Apagar a denúncia %s?", args[0])).
			Affirmative("Apagar").
			Negative("Cancelar").
			Value(&confirmed).
			Run()
		if err != nil {
			return err
		}
		if !confirmed {
			return nil
		}
	}
	ok := cli.Clients.Reports.DeleteAdmin(cmd.Context(), args[0])
	return failure(ok, "remoção falhou")
}
