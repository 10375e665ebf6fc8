// routes_serve.go - Server-Start und Lifecycle-Management
// Enthaelt: Serve() - laedt das Modell und startet danach den HTTP-Server

package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"

	"github.com/qazasd2518995/ocrproject/envconfig"
	"github.com/qazasd2518995/ocrproject/format"
	"github.com/qazasd2518995/ocrproject/history"
	"github.com/qazasd2518995/ocrproject/logutil"
	"github.com/qazasd2518995/ocrproject/scratch"
	"github.com/qazasd2518995/ocrproject/version"
)

const shutdownTimeout = 10 * time.Second

// Serve initialisiert das Modell und lauscht erst danach auf addr.
// Schlaegt das Laden fehl, wird nie ein Listener geoeffnet.
func Serve(ctx context.Context, addr string) error {
	level := envconfig.LogLevel()
	slog.SetDefault(logutil.NewLogger(os.Stderr, level))
	slog.Info("server config", "env", envconfig.Values())

	if level > slog.LevelDebug {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var opts []Option
	if dsn := envconfig.SentryDSN(); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: dsn, Release: "ocrproject@" + version.Version}); err != nil {
			return fmt.Errorf("sentry init: %w", err)
		}
		defer sentry.Flush(2 * time.Second)
		opts = append(opts, WithSentry())
	}
	opts = append(opts, WithMaxBody(int64(envconfig.MaxBody())))

	engine, err := NewEngine(envconfig.Engine())
	if err != nil {
		return err
	}
	defer engine.Close()

	loadCtx, cancel := context.WithTimeout(ctx, envconfig.LoadTimeout())
	model, err := LoadModel(loadCtx, engine)
	cancel()
	if err != nil {
		return err
	}

	dir, err := scratch.New(envconfig.TmpDir())
	if err != nil {
		return err
	}

	store, err := history.Open(envconfig.HistoryDB(), int(envconfig.HistoryLimit()))
	if err != nil {
		return err
	}
	defer store.Close()

	s := NewServer(model, dir, store, opts...)

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	srvr := &http.Server{
		Handler:           s.GenerateRoutes(),
		ReadHeaderTimeout: 30 * time.Second,
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srvr.Shutdown(shutdownCtx); err != nil {
			slog.Warn("shutdown", "error", err)
		}
	}()

	slog.Info(fmt.Sprintf("Listening on %s (version %s)", ln.Addr(), version.Version),
		"scratch", dir.Root(),
		"max_body", format.HumanBytes2(envconfig.MaxBody()))

	err = srvr.Serve(ln)
	// vom Signal-Handler geschlossen: auf sauberes Shutdown warten
	if !errors.Is(err, http.ErrServerClosed) {
		stop()
		<-done
		return err
	}
	<-done
	return nil
}
