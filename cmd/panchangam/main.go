package main

import (
	"context"
	"database/sql"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	kongdotenv "github.com/titusjaka/kong-dotenv-go"
	_ "modernc.org/sqlite"

	"github.com/sajith/panchangam/internal/almanac"
	"github.com/sajith/panchangam/internal/api"
	"github.com/sajith/panchangam/internal/goldrate"
	"github.com/sajith/panchangam/internal/store"
)

var cli struct {
	DataDir     string `kong:"default='data',env='PANCHANGAM_DATA_DIR',help='Directory holding per-month calendar JSON files.'"`
	DB          string `kong:"default='data/panchangam.db',env='PANCHANGAM_DB',help='Path to SQLite database for gold rates.'"`
	Listen      string `kong:"default=':8080',env='PANCHANGAM_LISTEN',help='HTTP listen address.'"`
	Zone        string `kong:"default='Asia/Kolkata',env='PANCHANGAM_ZONE',help='Service timezone.'"`
	GoldRateURL string `kong:"env='GOLD_RATE_API_URL',help='Gold rate API URL override.'"`
	NoPoll      bool   `kong:"help='Disable gold rate polling (server only, for local dev).'"`
	FetchOnce   bool   `kong:"help='Fetch the gold rate once and exit.'"`
}

func main() {
	kong.Parse(&cli,
		kong.Name("panchangam"),
		kong.Description("Malayalam calendar (Panchangam) API server."),
		kong.Configuration(kongdotenv.ENVFileReader, ".env"),
	)

	db, err := sql.Open("sqlite", cli.DB)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	db.Exec("PRAGMA journal_mode=WAL")
	db.Exec("PRAGMA busy_timeout=5000")

	// Load timezone once at startup. Every "today" computation in the
	// service is anchored here, never to the host timezone.
	loc, err := time.LoadLocation(cli.Zone)
	if err != nil {
		log.Printf("warning: could not load %s timezone, using fixed IST offset: %v", cli.Zone, err)
		loc = time.FixedZone("IST", 5*3600+30*60)
	}

	st := store.New(db, loc)
	if err := st.Migrate(); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	log.Println("database migrated")

	reader := almanac.NewReader(cli.DataDir)
	poller := goldrate.NewPoller(st, goldrate.NewClient(cli.GoldRateURL))
	server := api.NewServer(reader, st, cli.Listen, loc)

	if cli.FetchOnce {
		log.Println("fetching gold rate once")
		if err := poller.FetchOnce(); err != nil {
			log.Fatalf("fetch gold rate: %v", err)
		}
		log.Println("done")
		return
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if !cli.NoPoll {
		go poller.Run(ctx)
	} else {
		log.Println("gold rate polling disabled (--no-poll)")
	}

	log.Printf("starting server on %s", cli.Listen)
	if err := server.Run(ctx); err != nil {
		log.Fatalf("server: %v", err)
	}
}
