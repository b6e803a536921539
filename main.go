package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func main() {
	fv := registerFlags(flag.CommandLine)
	flag.Parse()

	cfg := loadConfig(*fv.configPath)
	fv.applyTo(flag.CommandLine, &cfg)
	debugEnabled = cfg.LogDebug

	if err := cfg.validate(); err != nil {
		fmt.Fprintf(os.Stderr, "❌ 起動エラー: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, os.Stdout); err != nil {
		if errors.Is(err, context.Canceled) {
			log.Println("Interrupted")
			return
		}
		stop()
		log.Fatal(err)
	}
}

// run wires the store, model and optional spectator feed, then runs cfg.Mode.
func run(ctx context.Context, cfg AppConfig, console io.Writer) error {
	store, err := openStore(cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to open transcript store: %w", err)
	}
	defer store.Close()

	prompts, err := loadPrompts()
	if err != nil {
		return err
	}

	fmt.Fprintln(console, "🤖 LLM初期化中...")
	responder, err := newResponder(ctx, cfg)
	if err != nil {
		fmt.Fprintf(console, "❌ LLM初期化エラー: %v\n", err)
		return err
	}
	fmt.Fprintln(console, "✅ LLM初期化成功")

	deps := runDeps{
		responder: responder,
		store:     store,
		prompts:   prompts,
		console:   console,
	}

	if cfg.Addr != "" {
		hub := newHub()
		hub.start()
		defer hub.stop()

		mux := http.NewServeMux()
		mux.HandleFunc("/ws", hub.handleWebSocket)
		srv := &http.Server{Addr: cfg.Addr, Handler: mux}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logError("spectator server", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx)
		}()
		log.Printf("Spectator feed on ws://%s/ws", cfg.Addr)
		deps.extra = append(deps.extra, hub)
	}

	if cfg.Mode == modeRoundtable {
		return runRoundtable(ctx, cfg, deps)
	}
	mode, err := modeByName(cfg.Mode)
	if err != nil {
		return err
	}
	return runGame(ctx, cfg, mode, deps)
}
