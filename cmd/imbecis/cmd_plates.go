package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/imbecis/app-imbecis/internal/services"
	"github.com/spf13/cobra"
)

var (
	platesPage int

	platesCmd = &cobra.Command{
		Use:   "plates",
		Short: "Matrículas confirmadas",
	}
	platesListCmd = &cobra.Command{
		Use:   "list",
		Short: "Tabela de matrículas confirmadas",
		Args:  cobra.NoArgs,
		RunE:  runPlatesList,
	}
	platesGetCmd = &cobra.Command{
		Use:   "get <país> <matrícula>",
		Short: "Mostra uma matrícula e as suas denúncias",
		Args:  cobra.ExactArgs(2),
		RunE:  runPlatesGet,
	}
)

func init() {
	platesListCmd.Flags().IntVar(&platesPage, "page", 1, "página")
	platesCmd.AddCommand(platesListCmd, platesGetCmd)
}

func runPlatesList(cmd *cobra.Command, _ []string) error {
	list := cli.Clients.Plates.ListConfirmed(cmd.Context(), platesPage)
	return emit(list, func(w io.Writer) {
		field(w, "página", fmt.Sprintf("%d (%d no total)", list.Page, list.Total))
		for _, p := range list.Plates {
			fmt.Fprintf(w, "%s  %s %s\n", titleStyle.Render(p.ID), strings.ToUpper(p.Country), p.Number)
		}
	})
}

func runPlatesGet(cmd *cobra.Command, args []string) error {
	page := services.NewPageLoader(cli.Clients).Plate(cmd.Context(), args[0], args[1])
	if page.Plate == nil {
		return fmt.Errorf("matrícula %s %s não encontrada", strings.ToUpper(args[0]), args[1])
	}
	return emit(page, func(w io.Writer) {
		fmt.Fprintf(w, "%s %s\n", titleStyle.Render(strings.ToUpper(page.Plate.Country)), page.Plate.Number)
		for i := range page.Reports {
			renderReport(w, &page.Reports[i])
		}
	})
}
