// Package cli implements the interactive terminal dashboard.
package cli

import (
	"bufio"
	"context"
	"log"
	"os"
	"time"

	"github.com/obelousov/pixelboard/internal/client/config"
	"github.com/obelousov/pixelboard/internal/client/localdb"
	"github.com/obelousov/pixelboard/internal/client/remote"
	"github.com/obelousov/pixelboard/internal/client/services"
	"github.com/obelousov/pixelboard/internal/logging"

	_ "modernc.org/sqlite"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type App struct {
	config    *config.Config
	session   *services.SessionService
	dashboard *services.DashboardService
	Mode      Mode
	reader    *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {

	ctx := context.Background()

	db, err := localdb.Open(ctx, c.DatabasePath)
	if err != nil {
		log.Printf("error initializing database: %s", err.Error())
		return nil, err
	}

	apiClient := remote.NewHTTPClient(c.ServerEndpointAddr, c.APIKey)

	logger := logging.NewTextLogger(os.Stderr)

	ss := services.NewSessionService(apiClient, db, logger)
	ds := services.NewDashboardService(apiClient)

	return &App{
		config:    c,
		session:   ss,
		dashboard: ds,
		reader:    bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) setMode(mode Mode) {
	if a.Mode != mode {
		a.Mode = mode
		log.Printf("Switched to %s mode\n", mode)
	}
}

func (a *App) Run(ctx context.Context) {
	defer a.dashboard.Close()

	a.session.Restore(ctx)

	go func() {
		a.StartServerStatusWatcher(ctx, a.config.PollInterval)
	}()

	a.Root(ctx)
}

func (a *App) isSignedIn() bool {
	return a.session.Snapshot().User != nil
}

// StartServerStatusWatcher periodically probes server reachability. When
// connectivity comes back it opportunistically re-reads the held identity,
// so a rename done elsewhere shows up without a re-login.
func (a *App) StartServerStatusWatcher(ctx context.Context, interval time.Duration) {

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			err := a.dashboard.Ping(pingCtx)
			cancel()

			if err != nil {
				if a.Mode == ModeOnline {
					a.setMode(ModeOffline)
				}
			} else {
				if a.Mode != ModeOnline {
					a.setMode(ModeOnline)
					a.session.RefreshUser(ctx)
				}
			}

		case <-ctx.Done():
			return
		}
	}
}
