package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

const (
	healthStatusHealthy   = "healthy"
	healthStatusUnhealthy = "unhealthy"
)

// handleHealthCheck reports overall service health with per-component checks.
func (s *Server) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	checks := make(map[string]HealthCheck)
	status := healthStatusHealthy

	dbCheck := s.checkDatabase()
	checks["database"] = dbCheck
	if dbCheck.Status != healthStatusHealthy {
		status = healthStatusUnhealthy
	}

	tablesCheck := s.checkTables()
	checks["tables"] = tablesCheck
	if tablesCheck.Status != healthStatusHealthy {
		status = healthStatusUnhealthy
	}

	statusCode := http.StatusOK
	if status != healthStatusHealthy {
		statusCode = http.StatusServiceUnavailable
	}

	s.writeJSON(w, statusCode, HealthResponse{
		Status:        status,
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
		EngineVersion: EngineVersion,
		Uptime:        time.Since(s.startTime).String(),
		Checks:        checks,
		RequestID:     middleware.GetReqID(r.Context()),
	})
}

// handleReadiness reports whether the server can take traffic.
func (s *Server) handleReadiness(w http.ResponseWriter, r *http.Request) {
	ready := true
	message := "Ready"

	if s.db == nil {
		ready = false
		message = "Database not initialized"
	} else if s.tables == nil {
		ready = false
		message = "Rule tables not loaded"
	}

	statusCode := http.StatusOK
	if !ready {
		statusCode = http.StatusServiceUnavailable
	}

	s.writeJSON(w, statusCode, map[string]interface{}{
		"ready":          ready,
		"message":        message,
		"timestamp":      time.Now().UTC().Format(time.RFC3339),
		"engine_version": EngineVersion,
		"request_id":     middleware.GetReqID(r.Context()),
	})
}

// handleLiveness responds as long as the process serves requests.
func (s *Server) handleLiveness(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"alive":          true,
		"timestamp":      time.Now().UTC().Format(time.RFC3339),
		"engine_version": EngineVersion,
		"uptime":         time.Since(s.startTime).String(),
	})
}

// checkDatabase verifies the catalog answers queries.
func (s *Server) checkDatabase() HealthCheck {
	if s.db == nil {
		return HealthCheck{Status: healthStatusUnhealthy, Message: "Database not initialized"}
	}
	if _, err := s.db.RarityStats(""); err != nil {
		return HealthCheck{Status: healthStatusUnhealthy, Message: err.Error()}
	}
	return HealthCheck{Status: healthStatusHealthy, Message: "Database connection healthy"}
}

// checkTables verifies the rule tables are loaded.
func (s *Server) checkTables() HealthCheck {
	if s.tables == nil {
		return HealthCheck{Status: healthStatusUnhealthy, Message: "Rule tables not loaded"}
	}
	return HealthCheck{Status: healthStatusHealthy, Message: "Rule tables loaded"}
}
