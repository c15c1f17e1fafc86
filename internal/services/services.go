// Package services implements the backend API clients: the envelope
// normalizer, the session token handshake, the reports, plates and regions
// clients and the page loaders built on them.
package services

import (
	"net/http"

	"github.com/imbecis/app-imbecis/internal/config"
	"github.com/imbecis/app-imbecis/internal/device"
	"github.com/imbecis/app-imbecis/internal/logging"
	"github.com/imbecis/app-imbecis/internal/store"
)

// Clients groups the API clients sharing one session and one device identity
type Clients struct {
	API     *APIClient
	Reports *ReportsClient
	Plates  *PlatesClient
	Regions *RegionsClient
}

// NewClients wires every client on a single APIClient
func NewClients(cfg *config.Config, httpClient *http.Client, devices device.IDProvider, session *Session, notifications *store.Notifications, logger *logging.SafeLogger) *Clients {
	api := NewAPIClient(cfg, httpClient, devices, session, logger)
	return &Clients{
		API:     api,
		Reports: NewReportsClient(api, notifications, cfg),
		Plates:  NewPlatesClient(api),
		Regions: NewRegionsClient(api),
	}
}
