package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/klabast/wb-services/holiday-calendar/internal/app"
	"github.com/klabast/wb-services/holiday-calendar/internal/commands"
)

func main() {
	// Check for subcommands
	if len(os.Args) > 1 {
		var err error
		switch os.Args[1] {
		case "hash-password":
			err = commands.HashPassword(os.Args[2:])
		case "show":
			err = commands.Show(os.Args[2:])
		default:
			serve()
			return
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}
	serve()
}

func serve() {
	cfg, err := app.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	port := flag.Int("port", cfg.Port, "Port to listen on")
	flag.Parse()

	weekStart, err := cfg.Weekday()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	country, ok := app.NormalizeCountry(cfg.Country)
	if !ok {
		log.Fatalf("Invalid default country %q", cfg.Country)
	}

	auth, err := app.LoadAuthenticator(cfg.AuthFile)
	if err != nil {
		log.Fatalf("Failed to load auth credentials: %v", err)
	}

	server := &app.Server{
		Source:         cfg.NewHolidaySource(),
		Auth:           auth,
		DefaultCountry: country,
		WeekStart:      weekStart,
		FetchTimeout:   cfg.FetchTimeout,
	}
	mux := http.NewServeMux()
	server.Register(mux)

	log.Printf("Starting Holiday Calendar on http://localhost:%d (source: %s, country: %s)", *port, cfg.Source, country)
	log.Printf("Cache directory: %s", cfg.CacheDir)
	if err := http.ListenAndServe(fmt.Sprintf(":%d", *port), mux); err != nil {
		log.Fatal(err)
	}
}
