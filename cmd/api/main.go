package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"

	apiCompliance "dealer_rehash/pkg/api/compliance"
	apiConfig "dealer_rehash/pkg/api/config"
	apiRehash "dealer_rehash/pkg/api/rehash"
	"dealer_rehash/pkg/core/agent"
	"dealer_rehash/pkg/core/insight"
	"dealer_rehash/pkg/core/lender"
	"dealer_rehash/pkg/core/store"
)

func main() {
	godotenv.Load()

	// Lender programs: static, loaded once, passed explicitly everywhere.
	lenders, err := lender.LoadOrDefault("config/lenders.yaml")
	if err != nil {
		fmt.Printf("[FATAL] lender config: %v\n", err)
		os.Exit(1)
	}

	// LLM provider routing
	var agentCfg agent.Config
	if configData, err := os.ReadFile("config/models.yaml"); err == nil {
		yaml.Unmarshal(configData, &agentCfg)
	} else {
		fmt.Println("[CONFIG] config/models.yaml not found, advisory runs on fallback rules")
	}
	agentMgr := agent.NewManager(agentCfg)
	advisor := insight.NewAdvisor(agentMgr)

	// Response cache: Redis when configured, in-process otherwise.
	var cache store.ResponseCache
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cache = store.NewRedisCache(addr)
		fmt.Printf("[CACHE] using Redis at %s\n", addr)
	} else {
		cache = store.NewMemoryCache()
		fmt.Println("[CACHE] using in-process cache")
	}

	// Optional run archive
	var repo *store.RehashRepo
	if os.Getenv("DATABASE_URL") != "" {
		if err := store.InitDB(context.Background()); err != nil {
			fmt.Printf("[WARNING] run archive disabled: %v\n", err)
		} else {
			repo = store.NewRehashRepo()
			defer store.Close()
			fmt.Println("[STORE] run archive enabled")
		}
	}

	rehashHandler := apiRehash.NewHandler(lenders, advisor, cache, repo)
	http.HandleFunc("/api/rehash", rehashHandler.HandleRehash)
	http.HandleFunc("/api/compliance/triage", apiCompliance.HandleTriage)

	configHandler := apiConfig.NewHandler(agentMgr)
	http.HandleFunc("/api/config", configHandler.HandleConfig)
	http.HandleFunc("/api/config/switch", configHandler.HandleSwitch)

	fmt.Println("API server starting on :8080...")
	fmt.Println("  - POST /api/rehash")
	fmt.Println("  - POST /api/compliance/triage")
	fmt.Println("  - GET  /api/config")
	fmt.Println("  - POST /api/config/switch")

	if err := http.ListenAndServe(":8080", nil); err != nil {
		fmt.Printf("[FATAL] Server failed to start: %v\n", err)
		os.Exit(1)
	}
}
