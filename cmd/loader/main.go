// Command loader is the vrc-osc host process: it binds the single UDP
// socket VRChat's OSC stream arrives on, loads every enabled plugin behind
// its own loopback endpoint, and fans datagrams between them for as long as
// the process runs.
package main

import (
	"context"
	"errors"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/ShayBox/VRC-OSC/internal/adminserver"
	"github.com/ShayBox/VRC-OSC/internal/logger"
	"github.com/ShayBox/VRC-OSC/internal/metrics"
	"github.com/ShayBox/VRC-OSC/internal/pluginhost"
	"github.com/ShayBox/VRC-OSC/internal/router"
	"github.com/ShayBox/VRC-OSC/internal/selfupdate"
	"github.com/ShayBox/VRC-OSC/internal/telemetry"
	"github.com/ShayBox/VRC-OSC/internal/wizard"
	"github.com/ShayBox/VRC-OSC/pkg/oscplugin"
)

const (
	version  = "0.1.0"
	homepage = "https://github.com/ShayBox/VRC-OSC/releases/latest"

	selfUpdateTimeout = 10 * time.Second
	shutdownGrace     = 5 * time.Second
)

func main() {
	logger.Initialize("info", true)
	log := logger.GetLogger()

	if err := run(log); err != nil {
		log.Fatal().Err(err).Msg("loader exited with an error")
	}
}

func run(log *zerolog.Logger) error {
	names, err := oscplugin.EnumeratePluginNames()
	if err != nil {
		return err
	}
	logger.Discovery().Info().Strs("found", names).Msg("discovered plugin libraries")

	cfg, err := oscplugin.LoadConfig()
	if err != nil {
		logger.Config().Warn().Err(err).Msg("no usable config found, starting first-run wizard")
		cfg, err = wizard.Run(names)
		if err != nil {
			return err
		}
	}

	bindAddr, err := net.ResolveUDPAddr("udp", cfg.BindAddr)
	if err != nil {
		return err
	}
	sendAddr, err := net.ResolveUDPAddr("udp", cfg.SendAddr)
	if err != nil {
		return err
	}

	conn, err := net.ListenUDP("udp", bindAddr)
	if err != nil {
		return err
	}
	defer conn.Close()

	tel, err := telemetry.NewPublisher(cfg.NatsURL)
	if err != nil {
		return err
	}
	defer tel.Close()

	reg := metrics.New()
	admin := adminserver.New(cfg.MetricsAddr, reg, logger.Admin())
	admin.Start(logger.Admin())

	host := pluginhost.New(logger.PluginHost(), tel)
	descriptors, err := host.Load(names, cfg)
	if err != nil {
		return err
	}
	reg.SetPluginsLoaded(len(descriptors))

	pluginAddrs := make([]*net.UDPAddr, 0, len(descriptors))
	for _, d := range descriptors {
		pluginAddrs = append(pluginAddrs, d.Addr)
	}

	checkForUpdate := func() {
		ctx, cancel := context.WithTimeout(context.Background(), selfUpdateTimeout)
		defer cancel()
		newer, err := selfupdate.Check(ctx, homepage, version)
		if err != nil {
			logger.Log.Warn().Err(err).Msg("self-update check failed")
			return
		}
		if newer {
			logger.Log.Warn().Msg("a newer release is available")
		}
	}
	go checkForUpdate()

	c := cron.New()
	if _, err := c.AddFunc("@daily", checkForUpdate); err != nil {
		return err
	}
	c.Start()
	defer c.Stop()

	r := router.New(conn, sendAddr, pluginAddrs, logger.Router(), reg)
	admin.MarkReady()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		admin.Stop(shutdownCtx)
	}()

	if err := r.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	return nil
}
