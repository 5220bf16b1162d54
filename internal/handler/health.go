package handler

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"banking-ledger/internal/ledger"
	"banking-ledger/internal/model"
)

// JournalChecker reports connectivity of the entry journal
type JournalChecker interface {
	Ping(ctx context.Context) error
	Stats() sql.DBStats
}

type HealthHandler struct {
	ledger  *ledger.Ledger
	journal JournalChecker
	version string
}

// NewHealthHandler creates a health handler. journal is nil when the journal is disabled.
func NewHealthHandler(l *ledger.Ledger, journal JournalChecker, version string) *HealthHandler {
	return &HealthHandler{
		ledger:  l,
		journal: journal,
		version: version,
	}
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	response := model.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Version:   h.version,
		Ledger: model.LedgerHealth{
			Clients:  len(h.ledger.Clients()),
			Accounts: len(h.ledger.Accounts()),
		},
		Journal: h.checkJournal(r.Context()),
	}

	// An enabled but unreachable journal marks the service unhealthy
	if response.Journal.Status == "unhealthy" {
		response.Status = "unhealthy"
		writeJSON(w, http.StatusServiceUnavailable, response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

func (h *HealthHandler) checkJournal(ctx context.Context) model.JournalHealth {
	if h.journal == nil {
		return model.JournalHealth{Status: "disabled"}
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := h.journal.Ping(ctx); err != nil {
		return model.JournalHealth{Status: "unhealthy"}
	}

	stats := h.journal.Stats()
	return model.JournalHealth{
		Status: "healthy",
		ConnectionPool: fmt.Sprintf("open: %d, idle: %d, in_use: %d",
			stats.OpenConnections, stats.Idle, stats.InUse),
	}
}
