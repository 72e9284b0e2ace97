package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	log "github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"

	"github.com/umputun/greet/app/enum"
	"github.com/umputun/greet/app/server"
	"github.com/umputun/greet/app/server/auth"
	"github.com/umputun/greet/app/store"
)

type options struct {
	Listen  string `short:"l" long:"listen" env:"LISTEN" default:":8080" description:"listen address"`
	Page    string `short:"p" long:"page" env:"PAGE" default:"static/login.html" description:"html page for unauthenticated users"`
	Mode    string `long:"mode" env:"MODE" choice:"session" choice:"cookie" default:"session" description:"login mode"`
	BaseURL string `long:"base-url" env:"BASE_URL" description:"base URL path for reverse proxy (e.g., /greet)"`

	Session struct {
		TTL     time.Duration `long:"ttl" env:"TTL" default:"5m" description:"login session ttl"`
		Cleanup time.Duration `long:"cleanup" env:"CLEANUP" default:"0s" description:"expired sessions cleanup interval, 0 disables"`
	} `group:"session" namespace:"session" env-namespace:"SESSION"`

	Limits struct {
		RPS        float64 `long:"rps" env:"RPS" default:"100" description:"max requests per second per client"`
		Concurrent int64   `long:"concurrent" env:"CONCURRENT" default:"1000" description:"max concurrent requests"`
		Body       int64   `long:"body" env:"BODY" default:"65536" description:"max request body size in bytes"`
	} `group:"limits" namespace:"limits" env-namespace:"LIMITS"`

	Timeout struct {
		Read     time.Duration `long:"read" env:"READ" default:"5s" description:"read header timeout"`
		Write    time.Duration `long:"write" env:"WRITE" default:"30s" description:"write timeout"`
		Idle     time.Duration `long:"idle" env:"IDLE" default:"30s" description:"idle timeout"`
		Shutdown time.Duration `long:"shutdown" env:"SHUTDOWN" default:"5s" description:"graceful shutdown timeout"`
	} `group:"timeout" namespace:"timeout" env-namespace:"TIMEOUT"`

	Audit bool `long:"audit" env:"AUDIT" description:"log every login and greeting with actor and client ip"`
	Dbg   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
}

var revision = "unknown"

func main() {
	fmt.Printf("greet %s\n", revision)

	var opts options
	p := flags.NewParser(&opts, flags.PrintErrors|flags.PassDoubleDash|flags.HelpFlag)
	if _, err := p.Parse(); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	setupLog(opts.Dbg)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, opts); err != nil {
		log.Printf("[ERROR] %v", err)
		cancel()
		os.Exit(1) //nolint:gocritic // cancel called above
	}
}

func run(ctx context.Context, opts options) error {
	mode, err := enum.ParseMode(opts.Mode)
	if err != nil {
		return fmt.Errorf("failed to parse mode: %w", err)
	}

	baseURL, err := normalizeBaseURL(opts.BaseURL)
	if err != nil {
		return err
	}

	authSvc, err := auth.New(store.NewSessions(), auth.Opts{
		Mode:            mode,
		LoginTTL:        opts.Session.TTL,
		CleanupInterval: opts.Session.Cleanup,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize auth: %w", err)
	}
	authSvc.Activate(ctx)

	if _, err := os.Stat(opts.Page); err != nil {
		log.Printf("[WARN] page %s is not accessible, unauthenticated requests will fail: %v", opts.Page, err)
	}

	srv, err := server.New(server.Deps{Auth: authSvc}, server.Config{
		Address:         opts.Listen,
		ReadTimeout:     opts.Timeout.Read,
		WriteTimeout:    opts.Timeout.Write,
		IdleTimeout:     opts.Timeout.Idle,
		ShutdownTimeout: opts.Timeout.Shutdown,
		Version:         revision,
		BaseURL:         baseURL,
		PageFile:        opts.Page,
		BodySizeLimit:   opts.Limits.Body,
		RequestsPerSec:  opts.Limits.RPS,
		MaxConcurrent:   opts.Limits.Concurrent,
		AuditEnabled:    opts.Audit,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}
	return srv.Run(ctx)
}

// normalizeBaseURL ensures base URL starts with / and has no trailing /.
func normalizeBaseURL(u string) (string, error) {
	if u == "" || u == "/" {
		return "", nil
	}
	if strings.ContainsAny(u, "?#") {
		return "", fmt.Errorf("invalid base url %q", u)
	}
	return "/" + strings.Trim(u, "/"), nil
}

func setupLog(dbg bool) {
	if dbg {
		log.Setup(log.Debug, log.CallerFile, log.CallerFunc, log.Msec, log.LevelBraces)
		return
	}
	log.Setup(log.Msec, log.LevelBraces)
}
