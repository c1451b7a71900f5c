package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	auth "Illusion/internal/auth"
	illusion "Illusion/internal/calc/illusion"
	batch "Illusion/internal/calc/premium/batch"
	importer "Illusion/internal/calc/premium/importer"
	report "Illusion/internal/calc/report"
	config "Illusion/internal/config"
	logger "Illusion/internal/logger"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var wg sync.WaitGroup

func CORS(mux *mux.Router) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		mux.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// AccessLog tags each request with an id and logs it once it completes.
func AccessLog(log *zap.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get("X-Request-ID")
			if id == "" {
				id = uuid.NewString()
			}
			w.Header().Set("X-Request-ID", id)
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			start := time.Now()
			next.ServeHTTP(rec, r)
			log.Info("request",
				zap.String("request_id", id),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", rec.status),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}

func HandleList(mux *mux.Router, cfg *config.Config, log *zap.Logger) {
	mux.Use(AccessLog(log))

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	}).Methods("GET")
	mux.Handle("/metrics", promhttp.Handler()).Methods("GET")

	limiter := auth.NewIPRateLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst)

	api := mux.PathPrefix("/api").Subrouter()
	api.Use(limiter.LimitMiddleware)

	tools := api.PathPrefix("/illusion").Subrouter()
	if cfg.AuthEnabled() {
		authEnv := &auth.Authenv{JWTkey: []byte(cfg.TokenKey)}
		tools.Use(authEnv.AuthMiddleware)
	} else {
		log.Warn("TOKEN_KEY not set, API is open")
	}

	calcH := &illusion.Handler{Logger: log}
	batchH := &batch.Handler{}
	importH := &importer.Handler{Logger: log}
	reportH := &report.Handler{Logger: log}

	tools.HandleFunc("/defaults", calcH.Defaults).Methods("GET")
	tools.HandleFunc("/calc", calcH.Calc).Methods("POST")
	tools.HandleFunc("/batch", batchH.Scenarios).Methods("POST")
	tools.HandleFunc("/import", importH.Scenarios).Methods("POST")
	tools.HandleFunc("/export", importH.Export).Methods("POST")
	tools.HandleFunc("/report/pdf", reportH.Generate).Methods("POST")

	if cfg.StaticDir != "" {
		mux.PathPrefix("/").Handler(http.FileServer(http.Dir(cfg.StaticDir)))
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		os.Stderr.WriteString("logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer log.Sync()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	mux := mux.NewRouter()
	HandleList(mux, cfg, log)
	handler := CORS(mux)

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Info("starting server", zap.String("addr", cfg.Addr), zap.Bool("tls", cfg.TLS()))
	wg.Add(1)
	go func() {
		defer wg.Done()
		var err error
		if cfg.TLS() {
			err = server.ListenAndServeTLS(cfg.TLSCert, cfg.TLSKey)
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", zap.Error(err))
			cancel()
		}
	}()

	<-ctx.Done()
	log.Info("shutdown signal received")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown failed", zap.Error(err))
	}
	wg.Wait()
	log.Info("server stopped")
}
