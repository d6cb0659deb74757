// Command localapi serves the products API over HTTP for local development.
// Point AWS_ENDPOINT_URL at LocalStack to run without an AWS account.
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

	"github.com/joho/godotenv"

	"github.com/sakarghimire/product-management-service/internal/app"
	"github.com/sakarghimire/product-management-service/internal/handler"
	"github.com/sakarghimire/product-management-service/internal/localapi"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Println("Error loading .env file:", err)
	}

	a, err := app.New(true)
	if err != nil {
		log.Fatal("Failed to initialise: ", err)
	}

	h := handler.New(a.Catalog, a.Logger)
	srv := &http.Server{
		Addr:              a.Config.ListenAddr,
		Handler:           localapi.NewRouter(localapi.Routes{Create: h.Create, List: h.List, Delete: h.Delete}, a.Logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		a.Logger.Info("local API listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.Logger.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.Logger.Error("shutdown failed", "error", err)
	}
}
