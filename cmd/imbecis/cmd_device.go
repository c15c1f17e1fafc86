package main

import (
	"io"

	"github.com/imbecis/app-imbecis/internal/observability"
	"github.com/spf13/cobra"
)

var deviceCmd = &cobra.Command{
	Use:   "device",
	Short: "Mostra o identificador deste dispositivo",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		id, err := cli.Devices.Ensure(cmd.Context())
		if err != nil {
			return err
		}
		info := map[string]string{
			"deviceUUID": id,
			"store":      cli.Config.DeviceStore,
			"token":      observability.MaskToken(cli.Session.Token()),
		}
		return emit(info, func(w io.Writer) {
			field(w, "dispositivo", id)
			field(w, "armazenamento", cli.Config.DeviceStore)
			field(w, "token", info["token"])
		})
	},
}
