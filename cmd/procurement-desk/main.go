package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"

	"github.com/joelkehle/procurement-desk/internal/knowledge"
	"github.com/joelkehle/procurement-desk/internal/procurement"
	"github.com/joelkehle/procurement-desk/internal/telemetry"
	"github.com/joelkehle/procurement-desk/internal/vendors"
	"github.com/joelkehle/procurement-desk/internal/workbench"
)

func main() {
	var (
		addr       = flag.String("addr", ":8090", "Workbench listen address")
		dbPath     = flag.String("db", "", "SQLite path for vendor ratings (default: in-memory, or DB_PATH env)")
		vendorSeed = flag.Int64("vendor-seed", 42, "Seed for generated sample vendor ratings")
		provider   = flag.String("provider", "gemini", "LLM provider: gemini or anthropic")
		model      = flag.String("model", "", "Override the provider's default model")
	)
	flag.Parse()

	listen := *addr
	if port := strings.TrimSpace(os.Getenv("PORT")); port != "" {
		listen = ":" + port
	}
	db := *dbPath
	if db == "" {
		db = strings.TrimSpace(os.Getenv("DB_PATH"))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	shutdown, err := telemetry.Setup(ctx, "procurement-desk")
	if err != nil {
		log.Fatalf("init telemetry: %v", err)
	}
	defer func() { _ = shutdown(context.Background()) }()

	embedder, err := knowledge.NewGenAIEmbedderFromEnv(ctx, knowledge.DefaultEmbeddingModel)
	if err != nil {
		log.Fatalf("init embedder: %v", err)
	}
	defer embedder.Close()

	store, err := knowledge.NewStore(ctx, embedder)
	if err != nil {
		log.Fatalf("build knowledge index: %v", err)
	}

	var catalog vendors.Catalog
	vendorsLabel := "memory"
	if db != "" {
		sqlCatalog, err := vendors.NewSQLiteCatalog(db)
		if err != nil {
			log.Fatalf("open vendor catalog: %v", err)
		}
		defer sqlCatalog.Close()
		catalog = sqlCatalog
		vendorsLabel = db
	} else {
		catalog = vendors.NewMemoryCatalog(nil)
	}
	if n, err := vendors.SeedIfEmpty(ctx, catalog, *vendorSeed); err != nil {
		log.Fatalf("seed vendor catalog: %v", err)
	} else if n > 0 {
		log.Printf("seeded %d sample vendor ratings", n)
	}

	var generator procurement.Generator
	switch *provider {
	case "gemini":
		generator, err = procurement.NewGeminiGeneratorFromEnv(ctx, procurement.GeneratorConfig{Model: *model})
	case "anthropic":
		generator, err = procurement.NewAnthropicGeneratorFromEnv(procurement.GeneratorConfig{Model: *model})
	default:
		log.Fatalf("unknown provider %q (want gemini or anthropic)", *provider)
	}
	if err != nil {
		log.Fatalf("init %s generator: %v", *provider, err)
	}

	pipeline := procurement.NewPipeline(store, generator, procurement.Config{})
	sessions := workbench.NewSessionStore()
	handler := workbench.NewServer(sessions, pipeline, catalog)

	log.Printf("procurement desk listening on %s (provider=%s, vendors=%s)", listen, *provider, vendorsLabel)
	srv := &http.Server{Addr: listen, Handler: handler}
	go func() {
		<-ctx.Done()
		srv.Close()
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
