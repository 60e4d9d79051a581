// Command railnet builds and compares candidate rail networks between
// metropolitan areas, stores the runs and serves them over HTTP.
//
// Usage:
//
//	railnet run   [-config railnet.yaml] [-env .env] [-label name] [-normalized]
//	railnet serve [-config railnet.yaml] [-env .env] [-addr :8080]
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

	"github.com/gorilla/mux"
	"github.com/katalvlaran/railnet/api"
	"github.com/katalvlaran/railnet/config"
	"github.com/katalvlaran/railnet/store"
)

func main() {
	log.SetFlags(log.LstdFlags)
	log.SetPrefix("railnet: ")

	if len(os.Args) < 2 {
		usage(os.Stderr)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var err error
	switch os.Args[1] {
	case "run":
		err = runCommand(ctx, os.Args[2:], os.Stdout)
	case "serve":
		err = serveCommand(ctx, os.Args[2:])
	case "-h", "-help", "--help", "help":
		usage(os.Stdout)
		return
	default:
		usage(os.Stderr)
		os.Exit(2)
	}
	if err != nil {
		log.Fatal(err)
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: railnet run   [-config file] [-env file] [-label name] [-normalized]")
	fmt.Fprintln(w, "       railnet serve [-config file] [-env file] [-addr host:port]")
}

// loadConfig reads the .env file first so that its variables can override
// the YAML file.
func loadConfig(path, env string) (*config.Config, error) {
	var files []string
	if env != "" {
		files = []string{env}
	}
	if err := config.LoadDotEnv(files...); err != nil {
		return nil, err
	}

	return config.Load(path)
}

func serveCommand(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	cfgPath := fs.String("config", "", "YAML configuration file")
	envPath := fs.String("env", "", ".env file (default .env if present)")
	addr := fs.String("addr", "", "HTTP listen address (overrides config)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(*cfgPath, *envPath)
	if err != nil {
		return err
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	if cfg.Database.Path == "" {
		return errors.New("serve: database.path is not set")
	}

	db, err := store.Open(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer db.Close()
	log.Printf("database opened: %s", cfg.Database.Path)

	router := mux.NewRouter()
	api.NewHandler(db, log.Default()).RegisterRoutes(router)

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.Printf("listening on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	log.Println("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}
