package main

import (
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
	"github.com/imbecis/app-imbecis/internal/models"
	"github.com/spf13/cobra"
)

var (
	regionsCmd = &cobra.Command{
		Use:   "regions",
		Short: "Regiões de notificação",
	}
	regionsListCmd = &cobra.Command{
		Use:   "list",
		Short: "Lista as regiões",
		Args:  cobra.NoArgs,
		RunE:  runRegionsList,
	}
	regionsGetCmd = &cobra.Command{
		Use:   "get <region-id>",
		Short: "Mostra uma região",
		Args:  cobra.ExactArgs(1),
		RunE:  runRegionsGet,
	}
	regionsCreateCmd = &cobra.Command{
		Use:   "create <ficheiro.json>",
		Short: "Cria uma região a partir de um ficheiro JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  runRegionsCreate,
	}
	regionsUpdateCmd = &cobra.Command{
		Use:   "update <region-id> <ficheiro.json>",
		Short: "Substitui uma região a partir de um ficheiro JSON",
		Args:  cobra.ExactArgs(2),
		RunE:  runRegionsUpdate,
	}
	regionsDeleteCmd = &cobra.Command{
		Use:   "delete <region-id>",
		Short: "Apaga uma região",
		Args:  cobra.ExactArgs(1),
		RunE:  runRegionsDelete,
	}
)

func init() {
	regionsCmd.AddCommand(regionsListCmd, regionsGetCmd, regionsCreateCmd, regionsUpdateCmd, regionsDeleteCmd)
}

func runRegionsList(cmd *cobra.Command, _ []string) error {
	env := cli.Clients.Regions.List(cmd.Context())
	if err := failure(env.Success, env.Message); err != nil {
		return err
	}
	return emit(env.Payload, func(w io.Writer) {
		for i := range env.Payload {
			renderRegion(w, &env.Payload[i])
		}
	})
}

func runRegionsGet(cmd *cobra.Command, args []string) error {
	env := cli.Clients.Regions.Get(cmd.Context(), args[0])
	if err := failure(env.Success, env.Message); err != nil {
		return err
	}
	return emit(env.Payload, func(w io.Writer) { renderRegion(w, env.Payload) })
}

func runRegionsCreate(cmd *cobra.Command, args []string) error {
	var input models.RegionInput
	if err := readJSONFile(args[0], &input); err != nil {
		return err
	}
	env := cli.Clients.Regions.Create(cmd.Context(), input)
	if err := failure(env.Success, env.Message); err != nil {
		return err
	}
	return emit(env.Payload, func(w io.Writer) { renderRegion(w, env.Payload) })
}

func runRegionsUpdate(cmd *cobra.Command, args []string) error {
	var input models.RegionInput
	if err := readJSONFile(args[1], &input); err != nil {
		return err
	}
	region := models.NotificationRegion{
		ID:         args[0],
		Name:       input.Name,
		Priority:   input.Priority,
		Color:      input.Color,
		Polygon:    input.Polygon,
		Recipients: input.Recipients,
	}
	if !cli.Clients.Regions.Update(cmd.Context(), region) {
		return fmt.Errorf("região %s não atualizada", args[0])
	}
	return emit(map[string]bool{"success": true}, func(w io.Writer) {
		fmt.Fprintln(w, successStyle.Render("Região atualizada"))
	})
}

func runRegionsDelete(cmd *cobra.Command, args []string) error {
	env := cli.Clients.Regions.Delete(cmd.Context(), args[0])
	if err := failure(env.Success, env.Message); err != nil {
		return err
	}
	return emit(env, func(w io.Writer) {
		fmt.Fprintln(w, successStyle.Render("Região apagada"))
	})
}

func readJSONFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}
	return nil
}
