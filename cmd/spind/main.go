// Command spind is a development prize server for the wheel.
//
// It answers POST /api/spin with {"spinId": "<uuid>", "winnerIndex": n},
// picking n uniformly over the configured sectors. Settings come from the
// environment, optionally loaded from a .env file:
//
//	SPIND_ADDR             listen address (default :8080)
//	SPIND_ALLOWED_ORIGINS  comma separated CORS origins (default *)
//	SPIND_LATENCY          simulated decision latency, e.g. 300ms (default 0)
//	SPIND_CONFIG           wheel config YAML for the sector table (default built-in)
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/decker502/prizewheel/pkg/config"
	"github.com/decker502/prizewheel/pkg/provider"
	"github.com/decker502/prizewheel/pkg/utils"
)

const (
	addrEnvName           = "SPIND_ADDR"
	allowedOriginsEnvName = "SPIND_ALLOWED_ORIGINS"
	latencyEnvName        = "SPIND_LATENCY"
	configEnvName         = "SPIND_CONFIG"

	defaultAddr     = ":8080"
	shutdownTimeout = 5 * time.Second
)

type serverConfig struct {
	addr           string
	allowedOrigins []string
	latency        time.Duration
	wheel          *config.WheelConfig
}

func loadServerConfig(getenv func(string) string) (*serverConfig, error) {
	cfg := &serverConfig{addr: defaultAddr, wheel: config.DefaultWheelConfig()}

	if addr := getenv(addrEnvName); addr != "" {
		cfg.addr = addr
	}
	for _, o := range strings.Split(getenv(allowedOriginsEnvName), ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.allowedOrigins = append(cfg.allowedOrigins, o)
		}
	}
	if latency := getenv(latencyEnvName); latency != "" {
		d, err := time.ParseDuration(latency)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", latencyEnvName, err)
		}
		if d < 0 {
			return nil, fmt.Errorf("invalid %s: %v is negative", latencyEnvName, d)
		}
		cfg.latency = d
	}
	if path := getenv(configEnvName); path != "" {
		wheel, err := config.LoadWheelConfig(path)
		if err != nil {
			return nil, err
		}
		cfg.wheel = wheel
	}
	return cfg, nil
}

func newServer(cfg *serverConfig) *http.Server {
	rng := utils.NewRand(uint64(time.Now().UnixNano()))
	p := provider.NewRandom(rng, cfg.wheel.SectorCount(), cfg.latency)
	return &http.Server{
		Addr: cfg.addr,
		Handler: provider.NewRouter(p, provider.RouterConfig{
			AllowedOrigins: cfg.allowedOrigins,
			Sectors:        cfg.wheel.Sectors,
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}
}

func run(ctx context.Context) error {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("[SpinServer] no .env loaded: %v", err)
	}
	cfg, err := loadServerConfig(os.Getenv)
	if err != nil {
		return err
	}
	srv := newServer(cfg)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("[SpinServer] listening on %s (%d sectors, latency %v)", cfg.addr, cfg.wheel.SectorCount(), cfg.latency)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		log.Printf("[SpinServer] shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Fatalf("[SpinServer] %v", err)
	}
}
