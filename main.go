package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fantasy-roster/internal"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := internal.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}
	gin.SetMode(cfg.GinMode)

	db := internal.MustDB(cfg)
	defer db.Close()

	migrateCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := internal.Migrate(migrateCtx, db); err != nil {
		cancel()
		log.Fatal(err)
	}
	cancel()

	store := internal.NewStore(db)
	upstream := internal.NewUpstream(cfg.SPARQLEndpoint, cfg.NewsURL, cfg.UpstreamTimeout)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           internal.NewRouter(store, upstream, cfg),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("Listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("forced shutdown: %v", err)
	}
}
