package handler

import (
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"banking-ledger/internal/model"
)

// Handlers groups everything the router dispatches to
type Handlers struct {
	Health       *HealthHandler
	Clients      *ClientHandler
	Accounts     *AccountHandler
	Transactions *TransactionHandler
}

// NewRouter builds the HTTP handler tree wrapped in logging and CORS middleware
func NewRouter(h Handlers, logger *zap.Logger) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint
	mux.Handle("/healthz", h.Health)

	mux.HandleFunc("/v1/clients", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			methodNotAllowed(w)
			return
		}
		h.Clients.RegisterClient(w, r)
	})

	mux.HandleFunc("/v1/clients/", func(w http.ResponseWriter, r *http.Request) {
		clientID, resource := splitClientPath(r.URL.Path)
		if clientID == "" {
			writeErrorResponse(w, http.StatusBadRequest, "Client ID is required", model.ErrCodeInvalidInput)
			return
		}

		switch resource {
		case "":
			if r.Method != http.MethodGet {
				methodNotAllowed(w)
				return
			}
			h.Clients.GetClient(w, r, clientID)
		case "accounts":
			if r.Method != http.MethodPost {
				methodNotAllowed(w)
				return
			}
			h.Accounts.OpenAccount(w, r, clientID)
		case "deposits":
			if r.Method != http.MethodPost {
				methodNotAllowed(w)
				return
			}
			h.Transactions.Deposit(w, r, clientID)
		case "withdrawals":
			if r.Method != http.MethodPost {
				methodNotAllowed(w)
				return
			}
			h.Transactions.Withdraw(w, r, clientID)
		case "statement":
			if r.Method != http.MethodGet {
				methodNotAllowed(w)
				return
			}
			h.Accounts.GetStatement(w, r, clientID)
		default:
			writeErrorResponse(w, http.StatusNotFound, "Not found", model.ErrCodeNotFound)
		}
	})

	mux.HandleFunc("/v1/accounts", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			methodNotAllowed(w)
			return
		}
		h.Accounts.ListAccounts(w, r)
	})

	return corsMiddleware(loggingMiddleware(mux, logger))
}

// splitClientPath splits /v1/clients/{id}[/resource] into its parts
func splitClientPath(path string) (clientID, resource string) {
	rest := strings.Trim(strings.TrimPrefix(path, "/v1/clients/"), "/")
	clientID, resource, _ = strings.Cut(rest, "/")
	return clientID, resource
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(next http.Handler, logger *zap.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Create a response writer wrapper to capture status code
		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		logger.Info("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", wrapped.statusCode),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

// corsMiddleware adds CORS headers
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
