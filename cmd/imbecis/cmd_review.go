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
	reviewInteractive bool

	voteResult  string
	votePlate   string
	voteCountry string

	reviewCmd = &cobra.Command{
		Use:   "review",
		Short: "Obtém a próxima denúncia a rever",
		Args:  cobra.NoArgs,
		RunE:  runReview,
	}
	voteCmd = &cobra.Command{
		Use:   "vote <report-id>",
		Short: "Vota numa denúncia",
		Args:  cobra.ExactArgs(1),
		RunE:  runVote,
	}
)

func init() {
	reviewCmd.Flags().BoolVarP(&reviewInteractive, "interactive", "i", false, "votar de seguida num formulário")

	voteCmd.Flags().StringVar(&voteResult, "result", "", "imbecile, not_imbecile ou not_sure")
	voteCmd.Flags().StringVar(&votePlate, "plate", "", "matrícula")
	voteCmd.Flags().StringVar(&voteCountry, "country", "pt", "país da matrícula")
}

func runReview(cmd *cobra.Command, _ []string) error {
	page := services.NewPageLoader(cli.Clients).Review(cmd.Context())
	if err := emit(page, func(w io.Writer) {
		field(w, "por rever", page.PendingCount)
		renderReport(w, page.ReportForReview)
	}); err != nil {
		return err
	}

	if !reviewInteractive || page.ReportForReview == nil {
		return nil
	}

	vote, err := promptVote(models.VoteRequest{PlateCountry: voteCountry})
	if err != nil {
		return err
	}
	return submitVote(cmd, page.ReportForReview.ID, vote)
}

func runVote(cmd *cobra.Command, args []string) error {
	vote := models.VoteRequest{
		Result:       voteResult,
		PlateNumber:  votePlate,
		PlateCountry: voteCountry,
	}
	if vote.Result == "" {
		var err error
		if vote, err = promptVote(vote); err != nil {
			return err
		}
	}
	return submitVote(cmd, args[0], vote)
}

func submitVote(cmd *cobra.Command, reportID string, vote models.VoteRequest) error {
	result := cli.Clients.Reports.SubmitVote(cmd.Context(), reportID, vote)
	if err := failure(result.Success, result.Message); err != nil {
		return err
	}
	return emit(result, func(w io.Writer) {
		fmt.Fprintln(w, successStyle.Render("Voto registado"))
	})
}

func promptVote(vote models.VoteRequest) (models.VoteRequest, error) {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("É um imbecil?").
				Options(
					huh.NewOption("Sim", models.VoteImbecile),
					huh.NewOption("Não", models.VoteNotImbecile),
					huh.NewOption("Não sei", models.VoteNotSure),
				).
				Value(&vote.Result),
			huh.NewInput().
				Title("Matrícula").
				Value(&vote.PlateNumber),
			huh.NewInput().
				Title("País").
				Value(&vote.PlateCountry),
		),
	)
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return vote, errors.New("voto cancelado")
		}
		return vote, err
	}
	return vote, nil
}
