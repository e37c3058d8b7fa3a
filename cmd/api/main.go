package main

import (
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"biblio/internal/catalog"
	"biblio/internal/httpx"
	"biblio/internal/platform/opac"
)

func main() {
	_ = godotenv.Load(".env.local")

	serverAddress := getEnv("APP_ADDR", ":8080")
	opacBaseURL := mustGetEnv("OPAC_BASE_URL")
	opacUserAgent := getEnv("OPAC_USER_AGENT", "biblio/1.0")
	opacRPS := getEnvInt("OPAC_RPS", 2)
	opacMaxRetries := getEnvInt("OPAC_MAX_RETRIES", 3)
	corsOrigins := strings.Split(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"), ",")

	client := opac.NewClient(opacBaseURL, opacUserAgent, opacRPS, opacMaxRetries)
	service := catalog.NewService(client)
	handler := catalog.NewHTTPHandler(service)

	router := http.NewServeMux()

	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.HandleFunc("GET /v1/catalog/search", handler.Search)
	router.HandleFunc("GET /v1/catalog/records/{id}", handler.GetRecord)

	var root http.Handler = router
	root = httpx.RequestSizeLimitMiddleware(1 << 20)(root)
	root = httpx.CORSMiddleware(corsOrigins)(root)
	root = httpx.SecurityHeadersMiddleware(root)
	root = httpx.RecoveryMiddleware(root)
	root = httpx.AccessLogMiddleware(root)
	root = httpx.RequestIDMiddleware(root)

	httpServer := &http.Server{
		Addr:         serverAddress,
		Handler:      root,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Printf("Starting server on %s (upstream %s)", serverAddress, opacBaseURL)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		log.Fatalf("invalid value for %s: %s", key, v)
	}
	return def
}

func mustGetEnv(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	log.Fatalf("missing required environment variable: %s", key)
	return ""
}
