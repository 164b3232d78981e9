package main

import (
	"context"
	"log"
	"net/http"

	"github.com/NicolasDuarte04/Briki-Web-App-sub001/internal/adapters/catalog"
	"github.com/NicolasDuarte04/Briki-Web-App-sub001/internal/adapters/docai"
	httpadapter "github.com/NicolasDuarte04/Briki-Web-App-sub001/internal/adapters/http"
	"github.com/NicolasDuarte04/Briki-Web-App-sub001/internal/adapters/llm"
	firestorestore "github.com/NicolasDuarte04/Briki-Web-App-sub001/internal/adapters/storage/firestore"
	memstore "github.com/NicolasDuarte04/Briki-Web-App-sub001/internal/adapters/storage/memory"
	redisstore "github.com/NicolasDuarte04/Briki-Web-App-sub001/internal/adapters/storage/redis"
	"github.com/NicolasDuarte04/Briki-Web-App-sub001/internal/adapters/ws"
	"github.com/NicolasDuarte04/Briki-Web-App-sub001/internal/app/assistant"
	"github.com/NicolasDuarte04/Briki-Web-App-sub001/internal/app/comparison"
	"github.com/NicolasDuarte04/Briki-Web-App-sub001/internal/config"
	"github.com/NicolasDuarte04/Briki-Web-App-sub001/internal/domain"
)

func main() {
	ctx := context.Background()
	cfg := config.Load()

	// Plan catalog: sqlite, optionally seeded and hot-reloaded from JSON.
	planCatalog, err := catalog.Open(cfg.CatalogDBPath)
	if err != nil {
		log.Fatalf("error opening plan catalog: %v", err)
	}
	if cfg.CatalogSeedPath != "" {
		if err := planCatalog.LoadSeed(ctx, cfg.CatalogSeedPath); err != nil {
			log.Fatalf("error seeding plan catalog: %v", err)
		}
		if err := planCatalog.WatchSeed(ctx, cfg.CatalogSeedPath); err != nil {
			log.Printf("[CATALOG] seed watcher unavailable: %v", err)
		}
	}

	// Reply generator: mock or Gemini by ENV (useful for dev).
	var replies domain.ReplyGenerator
	if cfg.UseMockLLM {
		log.Println("[LLM] Using MOCK reply generator")
		replies = llm.NewMockLLM(planCatalog)
	} else {
		log.Println("[LLM] Using Gemini reply generator")
		replies, err = llm.NewGeminiClient(ctx, cfg.GCPProjectID, cfg.GCPLocation, cfg.ModelName)
		if err != nil {
			log.Fatalf("error initializing Gemini client: %v", err)
		}
	}

	// Document analyzer: mock or the external endpoint.
	var analyzer domain.DocumentAnalyzer
	if cfg.UseMockDocAI || cfg.DocAIEndpoint == "" {
		log.Println("[DOCAI] Using MOCK document analyzer")
		analyzer = docai.NewMockAnalyzer()
	} else {
		analyzer, err = docai.NewHTTPAnalyzer(cfg.DocAIEndpoint)
		if err != nil {
			log.Fatalf("error initializing document analyzer: %v", err)
		}
	}

	// Storage: session snapshots + comparison selections.
	var sessionStore domain.SessionStore
	var selectionStore domain.SelectionStore

	switch cfg.StorageBackend {
	case "redis":
		log.Printf("[STORE] Using Redis storage (addr=%s)", cfg.RedisAddr)
		rs := redisstore.NewStore(cfg.RedisAddr, cfg.RedisPassword)
		if err := rs.Ping(ctx); err != nil {
			log.Fatalf("error connecting to Redis: %v", err)
		}
		sessionStore = rs
		selectionStore = rs

	default:
		log.Println("[STORE] Using in-memory storage")
		sessionStore = memstore.NewSessionStore()
		selectionStore = memstore.NewSelectionStore()
	}

	// Document summaries: Firestore in gcp mode, memory otherwise.
	var summaryStore domain.SummaryStore
	if cfg.Mode == config.ModeGCP {
		log.Printf("[STORE] Using Firestore summaries (project=%s)", cfg.GCPProjectID)
		fs, err := firestorestore.NewStore(ctx, cfg.GCPProjectID)
		if err != nil {
			log.Fatalf("error initializing Firestore store: %v", err)
		}
		summaryStore = fs
	} else {
		summaryStore = memstore.NewSummaryStore()
	}

	assistantSvc := assistant.NewService(replies, analyzer, sessionStore, summaryStore)
	comparisonSvc := comparison.NewService(selectionStore)

	mux := http.NewServeMux()
	mux.Handle("/ws", ws.NewHandler(assistantSvc))
	mux.Handle("/", httpadapter.NewServer(assistantSvc, comparisonSvc, planCatalog))

	port := ":" + cfg.Port
	log.Println("Briki API listening on port:", port)
	if err := http.ListenAndServe(port, mux); err != nil {
		log.Fatal(err)
	}
}
