package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/joho/godotenv"
	"github.com/robolearn/sso-gateway/apikeys"
	"github.com/robolearn/sso-gateway/clients"
	"github.com/robolearn/sso-gateway/internal/config"
	"github.com/robolearn/sso-gateway/server"
	"github.com/robolearn/sso-gateway/sessions"
)

func main() {
	seedKeyName := flag.String("seed", "", "create a service API key with the given name and exit")
	flag.Parse()

	_ = godotenv.Load()

	if err := run(*seedKeyName); err != nil {
		log.Fatalf("Error running server: %s\n", err)
	}
	log.Printf("Server stopped\n")
}

func run(seedKeyName string) (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic: %v\n", r)
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	c := config.New()
	displayAppname(c.GetAppName())

	registry, err := buildRegistry(c)
	if err != nil {
		return fmt.Errorf("trusted client registry: %w", err)
	}

	if err := os.MkdirAll(c.GetDataFolder(), 0o700); err != nil {
		return fmt.Errorf("data folder: %w", err)
	}
	keyStore, err := apikeys.OpenBoltStore(filepath.Join(c.GetDataFolder(), "apikeys.db"))
	if err != nil {
		return fmt.Errorf("api key store: %w", err)
	}
	defer keyStore.Close()

	if seedKeyName != "" {
		return seedServiceKey(keyStore, seedKeyName)
	}

	sessionStore := sessions.NewHTTPStore(c.GetSignOutURL())

	handler, err := server.New(c, registry, sessionStore, keyStore)
	if err != nil {
		return fmt.Errorf("server.New: %w", err)
	}

	srv := &http.Server{Addr: c.GetPort(), Handler: handler}
	go listenAndServe(srv)
	waitForStopSignal()
	return shutdown(srv)
}

// buildRegistry loads the trusted client catalog from the configured JSON
// file, falling back to the built-in internal clients. Malformed entries are
// fatal here, never degraded around at runtime.
func buildRegistry(c config.Config) (*clients.Registry, error) {
	if path := c.GetTrustedClientsFile(); path != "" {
		return clients.LoadFile(path)
	}
	return clients.NewRegistry(defaultClients(c))
}

func defaultClients(c config.Config) []*clients.Client {
	redirectURLs := []string{
		"http://localhost:3000/auth/callback",
		"http://localhost:3002/auth/callback",
	}
	if u := c.GetClientProductionURL(); u != "" {
		redirectURLs = append(redirectURLs, u+"/auth/callback")
	}
	if u := c.GetAdminProductionURL(); u != "" {
		redirectURLs = append(redirectURLs, u+"/auth/callback")
	}

	var secret *string
	if s := c.GetInternalClientSecret(); s != "" {
		secret = &s
	}

	return []*clients.Client{{
		ID:           c.GetInternalClientID(),
		Secret:       secret,
		Name:         "Internal Dashboard",
		Type:         clients.ClientTypeConfidential,
		RedirectURLs: redirectURLs,
		SkipConsent:  true,
	}}
}

func seedServiceKey(store *apikeys.BoltStore, name string) error {
	plaintext, key, err := store.Create(context.Background(), name, "system", nil, map[string]any{
		"seeded": true,
	})
	if err != nil {
		return fmt.Errorf("seed key: %w", err)
	}
	fmt.Printf("Created service key %q (id %s)\n", name, key.ID)
	fmt.Printf("Store this now, it will not be shown again:\n\n  %s\n\n", plaintext)
	return nil
}

func listenAndServe(server *http.Server) error {
	log.Printf("Server listening on %s\n", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
