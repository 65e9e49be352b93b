package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"acnode/internal/backend"
	"acnode/internal/ir"
	"acnode/internal/journal"
	"acnode/internal/logger"
	"acnode/internal/netlink"
	"acnode/internal/orchestrator"
	"acnode/internal/ota"
	"acnode/internal/portal"
	"acnode/internal/server"
	"acnode/internal/session"
	"acnode/internal/store"

	"github.com/spf13/viper"
)

func main() {
	// load config.yml, then init logger with the configured level
	cfgErr := loadConfig()
	log := logger.Get(viper.GetString("log_level"))
	if cfgErr != nil {
		log.Fatalw("error reading config", "err", cfgErr)
	}

	// open the event journal
	db, err := journal.InitDB(viper.GetString("paths.journal"))
	if err != nil {
		log.Fatalw("failed to init journal db", "err", err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			log.Errorw("failed to close journal db", "err", cerr)
		}
	}()

	// wire dependencies
	cfgStore := store.NewConfigStore(viper.GetString("paths.config"), log.Named("store"))
	stateStore := store.NewStateStore(viper.GetString("paths.state"), log.Named("store"))
	transmitter := ir.NewLIRCTransmitter(viper.GetString("ir.device"), log.Named("ir"))
	netman := netlink.NewNMCLI(
		viper.GetString("wifi.interface"),
		viper.GetInt("wifi.connect_attempts"),
		viper.GetDuration("wifi.connect_delay"),
		log.Named("netlink"),
	)
	api := backend.NewClient(
		viper.GetString("backend.base_url"),
		viper.GetString("backend.device_secret"),
		viper.GetDuration("backend.timeout"),
		log.Named("backend"),
	)
	updater := ota.NewUpdater("", log.Named("ota"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// a restart request (OTA install, factory reset) stops the loop;
	// the process exits and the service supervisor brings it back up
	reboot := func() {
		log.Infow("restart requested")
		cancel()
	}

	orch := orchestrator.New(
		orchestrator.Settings{
			FirmwareVersion:   viper.GetString("firmware.version"),
			APPassword:        viper.GetString("wifi.ap_password"),
			TelemetryInterval: viper.GetDuration("telemetry_interval"),
		},
		session.Settings{
			BrokerURL:      viper.GetString("mqtt.broker_url"),
			Username:       viper.GetString("mqtt.username"),
			Password:       viper.GetString("mqtt.password"),
			ConnectTimeout: viper.GetDuration("mqtt.connect_timeout"),
			KeepAlive:      viper.GetDuration("mqtt.keep_alive"),
		},
		cfgStore, stateStore, transmitter, netman, api,
		journal.NewSQLite(db), updater, reboot,
		log.Named("orchestrator"),
	)
	portalHandler := portal.NewHandler(orch, log.Named("portal"))

	// start the control loop
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := orch.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Errorw("control loop stopped", "err", err)
		}
	}()

	// start the provisioning portal
	srv := &server.Server{}
	runHTTPServer(srv, viper.GetString("portal.port"), portalHandler, log)

	// graceful shutdown
	waitForShutdown(cancel, srv, done, log)
}

func loadConfig() error {
	viper.AddConfigPath("configs") // configs/config.yml
	viper.AddConfigPath("/etc/acnode")
	viper.SetConfigName("config")
	return viper.ReadInConfig()
}

// runHTTPServer runs the portal server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *portal.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = "8080"
		}
		if err := srv.Run(port, handler.InitRoutes()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("error starting portal server", "err", err)
		}
	}()
}

// waitForShutdown waits for a termination signal or an internal restart
// request and performs graceful shutdown.
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, done <-chan struct{}, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		log.Infow("shutting down...")
	case <-done:
	}

	// stop the control loop
	cancel()

	// allow in-flight requests to complete
	ctx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("portal server forced to shutdown", "err", err)
	}
	<-done
}
