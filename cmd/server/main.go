package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ugaemi/ghostlight/internal/config"
	"github.com/ugaemi/ghostlight/internal/handler"
	"github.com/ugaemi/ghostlight/internal/maps"
	"github.com/ugaemi/ghostlight/internal/room"
	"github.com/ugaemi/ghostlight/internal/store"
	"github.com/ugaemi/ghostlight/internal/ws"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for development
	},
}

func main() {
	cfg := config.Load()
	config.SetupLogger(cfg, "server")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStore(ctx, cfg)
	if err != nil {
		slog.Error("failed to open store", "error", err)
		os.Exit(1)
	}
	defer st.Close()

	src, err := maps.ParseSource(cfg.MapSource, st)
	if err != nil {
		slog.Error("invalid map source", "source", cfg.MapSource, "error", err)
		os.Exit(1)
	}
	geo := maps.Load(ctx, src, cfg.MapName)

	hub := ws.NewHub()
	rm := room.NewManager(geo)
	defer rm.Shutdown()
	router := handler.NewRouter(rm, st)

	hub.OnMessage = router.HandleMessage
	hub.OnDisconnect = router.HandleDisconnect

	go hub.Run(ctx)

	mux := http.NewServeMux()
	mux.HandleFunc("/health", handleHealth)
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		handleWebSocket(hub, w, r)
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	slog.Info("server starting", "addr", srv.Addr, "map", geo.Name)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// openStore connects to PostgreSQL when DATABASE_URL is set and falls back
// to process memory otherwise.
func openStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	if cfg.DatabaseURL == "" {
		slog.Info("no database configured, using memory store")
		return store.NewMemoryStore(), nil
	}
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return store.NewPostgresStore(connectCtx, cfg.DatabaseURL)
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func handleWebSocket(hub *ws.Hub, w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("websocket upgrade failed", "error", err)
		return
	}

	client := ws.NewClient(ws.NewClientID(), hub, conn)
	hub.Register <- client

	go client.WritePump()
	go client.ReadPump()
}
