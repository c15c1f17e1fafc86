package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/imbecis/app-imbecis/internal/app"
	"github.com/imbecis/app-imbecis/internal/config"
	"github.com/imbecis/app-imbecis/internal/logging"
	"github.com/imbecis/app-imbecis/internal/models"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// sessionTokenKey stores the last issued csrf token next to the device id,
// so a review fetched by one invocation can be voted on by the next.
const sessionTokenKey = "session-token"

// --- Global Command Variables ---
var (
	verbose     bool
	jsonOutput  bool
	deviceStore string
	apiBaseURL  string

	cli         *app.App
	unsubscribe func()

	rootCmd = &cobra.Command{
		Use:               "imbecis",
		Short:             "Cliente de linha de comandos para o imbecis",
		Long:              "Reporta, revê e administra denúncias de estacionamento abusivo a partir do terminal.",
		SilenceUsage:      true,
		PersistentPreRunE: bootstrap,
	}
)

func init() {
	cobra.OnFinalize(func() {
		if err := teardown(context.Background()); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	})

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "registos detalhados em stderr")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "imprimir resultados em JSON")
	rootCmd.PersistentFlags().StringVar(&deviceStore, "device-store", "", "armazenamento do identificador do dispositivo (badger, redis, memory)")
	rootCmd.PersistentFlags().StringVar(&apiBaseURL, "api", "", "URL base da API")

	rootCmd.AddCommand(
		feedCmd,
		reportCmd,
		reviewCmd,
		voteCmd,
		countCmd,
		heatmapCmd,
		adminCmd,
		platesCmd,
		regionsCmd,
		deviceCmd,
	)
}

func bootstrap(cmd *cobra.Command, _ []string) error {
	if err := logging.InitCLILogger(verbose); err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if deviceStore != "" {
		cfg.DeviceStore = deviceStore
	}
	if apiBaseURL != "" {
		cfg.APIBaseURL = apiBaseURL
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cli, err = app.New(ctx, cfg, logging.Logger)
	if err != nil {
		return err
	}

	if _, err := cli.Devices.Ensure(ctx); err != nil {
		logging.Logger.Warn("device id unavailable", zap.Error(err))
	}

	token, err := cli.Storage.Get(ctx, sessionTokenKey)
	switch {
	case err == nil:
		cli.Session.SetToken(token)
	case !errors.Is(err, models.ErrDeviceIDNotSet):
		logging.Logger.Warn("could not restore session token", zap.Error(err))
	}

	unsubscribe = cli.Notifications.Subscribe(newNotificationPrinter(os.Stderr))
	return nil
}

func teardown(ctx context.Context) error {
	if cli == nil {
		return nil
	}
	if unsubscribe != nil {
		unsubscribe()
	}
	if err := cli.Storage.Set(ctx, sessionTokenKey, cli.Session.Token()); err != nil {
		logging.Logger.Warn("could not persist session token", zap.Error(err))
	}
	logging.Logger.Sync()

	err := cli.Close()
	cli = nil
	return err
}

// failure turns an unsuccessful result into a command error
func failure(success bool, message string) error {
	if success {
		return nil
	}
	return errors.New(message)
}
