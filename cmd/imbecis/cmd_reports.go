package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/imbecis/app-imbecis/internal/models"
	"github.com/spf13/cobra"
)

var (
	feedPage         int
	feedMunicipality string

	createLatitude  float64
	createLongitude float64
	createPicture   string

	updatePicture bool

	feedCmd = &cobra.Command{
		Use:   "feed",
		Short: "Lista as denúncias confirmadas",
		Args:  cobra.NoArgs,
		RunE:  runFeed,
	}

	reportCmd = &cobra.Command{
		Use:   "report",
		Short: "Cria e consulta denúncias",
	}
	reportCreateCmd = &cobra.Command{
		Use:   "create",
		Short: "Abre uma denúncia na localização indicada",
		Args:  cobra.NoArgs,
		RunE:  runReportCreate,
	}
	reportPictureCmd = &cobra.Command{
		Use:   "picture <report-id> <ficheiro>",
		Short: "Envia a fotografia de uma denúncia",
		Args:  cobra.ExactArgs(2),
		RunE:  runReportPicture,
	}
	reportGetCmd = &cobra.Command{
		Use:   "get <report-id>",
		Short: "Mostra uma denúncia",
		Args:  cobra.ExactArgs(1),
		RunE:  runReportGet,
	}

	countCmd = &cobra.Command{
		Use:   "count",
		Short: "Número de denúncias por rever",
		Args:  cobra.NoArgs,
		RunE:  runCount,
	}
	heatmapCmd = &cobra.Command{
		Use:   "heatmap",
		Short: "Coordenadas do mapa de calor",
		Args:  cobra.NoArgs,
		RunE:  runHeatmap,
	}
)

func init() {
	feedCmd.Flags().IntVar(&feedPage, "page", 1, "página")
	feedCmd.Flags().StringVar(&feedMunicipality, "municipio", "", "filtrar por município")

	reportCreateCmd.Flags().Float64Var(&createLatitude, "lat", 0, "latitude")
	reportCreateCmd.Flags().Float64Var(&createLongitude, "lng", 0, "longitude")
	reportCreateCmd.Flags().StringVar(&createPicture, "picture", "", "fotografia a enviar após criar")
	_ = reportCreateCmd.MarkFlagRequired("lat")
	_ = reportCreateCmd.MarkFlagRequired("lng")

	reportPictureCmd.Flags().BoolVar(&updatePicture, "update", false, "substituir a fotografia existente")

	reportCmd.AddCommand(reportCreateCmd, reportPictureCmd, reportGetCmd)
}

func runFeed(cmd *cobra.Command, _ []string) error {
	reports := cli.Clients.Reports.ListFeed(cmd.Context(), models.FeedRequest{
		Page:         feedPage,
		Municipality: feedMunicipality,
	})
	return emit(reports, func(w io.Writer) { renderSummaries(w, reports) })
}

func runReportCreate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cli.Location.Set(models.Coordinates{Latitude: createLatitude, Longitude: createLongitude})

	result := cli.Clients.Reports.Create(ctx, cli.Location.Get())
	if err := failure(result.Success, result.Message); err != nil {
		return err
	}

	if createPicture != "" {
		picture, err := readPicture(createPicture)
		if err != nil {
			return err
		}
		uploaded := cli.Clients.Reports.UploadPicture(ctx, result.ReportID, picture)
		if err := failure(uploaded.Success, uploaded.Message); err != nil {
			return fmt.Errorf("denúncia %s criada, fotografia não enviada: %w", result.ReportID, err)
		}
	}

	return emit(result, func(w io.Writer) {
		fmt.Fprintln(w, successStyle.Render("Denúncia criada"))
		field(w, "id", result.ReportID)
	})
}

func runReportPicture(cmd *cobra.Command, args []string) error {
	picture, err := readPicture(args[1])
	if err != nil {
		return err
	}

	var result models.Result
	if updatePicture {
		result = cli.Clients.Reports.UpdatePicture(cmd.Context(), args[0], picture)
	} else {
		result = cli.Clients.Reports.UploadPicture(cmd.Context(), args[0], picture)
	}
	if err := failure(result.Success, result.Message); err != nil {
		return err
	}
	return emit(result, func(w io.Writer) {
		fmt.Fprintln(w, successStyle.Render("Fotografia enviada"))
	})
}

func runReportGet(cmd *cobra.Command, args []string) error {
	result := cli.Clients.Reports.GetByID(cmd.Context(), args[0])
	if err := failure(result.Success, result.Message); err != nil {
		return err
	}
	return emit(result.Report, func(w io.Writer) { renderReport(w, result.Report) })
}

func runCount(cmd *cobra.Command, _ []string) error {
	count := cli.Clients.Reports.CountForReview(cmd.Context())
	return emit(map[string]int{"count": count}, func(w io.Writer) {
		field(w, "por rever", count)
	})
}

func runHeatmap(cmd *cobra.Command, _ []string) error {
	coordinates := cli.Clients.Reports.HeatMap(cmd.Context())
	return emit(coordinates, func(w io.Writer) {
		for _, c := range coordinates {
			fmt.Fprintf(w, "%.6f,%.6f %.2f\n", c.Latitude, c.Longitude, c.Weight)
		}
	})
}

// readPicture loads an image from disk. Content type is left to the client,
// which sniffs it from the data.
func readPicture(path string) (models.Picture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.Picture{}, fmt.Errorf("reading picture: %w", err)
	}
	return models.Picture{Filename: filepath.Base(path), Data: data}, nil
}
