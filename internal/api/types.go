package api

import (
	"github.com/Tiny-Walnut-Games/the-seed-sub016/internal/batch"
	"github.com/Tiny-Walnut-Games/the-seed-sub016/internal/dropscript"
	"github.com/Tiny-Walnut-Games/the-seed-sub016/internal/sprite"
	"github.com/Tiny-Walnut-Games/the-seed-sub016/internal/store"
)

// ForgeError represents a structured error response with context
type ForgeError struct {
	Type      string                 `json:"type"`
	Message   string                 `json:"message"`
	Context   map[string]interface{} `json:"context,omitempty"`
	RequestID string                 `json:"request_id,omitempty"`
	Timestamp string                 `json:"timestamp,omitempty"`
}

// Error implements the error interface
func (e ForgeError) Error() string {
	return e.Message
}

// Error types with proper categorization
const (
	// Input validation errors
	ErrTypeValidation        = "validation_error"
	ErrTypeInvalidProvenance = "invalid_provenance"
	ErrTypeInvalidSpec       = "invalid_spec"

	// Drop and policy errors
	ErrTypePolicy   = "policy_error"
	ErrTypeNotFound = "not_found"

	// System errors
	ErrTypeTimeout       = "timeout"
	ErrTypeUnauthorized  = "unauthorized"
	ErrTypeConfiguration = "configuration_error"
	ErrTypeInternal      = "internal_error"
)

// ErrorCategory represents error categories for monitoring
type ErrorCategory string

const (
	CategoryValidation ErrorCategory = "validation"
	CategoryDrop       ErrorCategory = "drop"
	CategoryTimeout    ErrorCategory = "timeout"
	CategorySystem     ErrorCategory = "system"
)

// GetErrorCategory returns the category for an error type
func GetErrorCategory(errType string) ErrorCategory {
	switch errType {
	case ErrTypeValidation, ErrTypeInvalidProvenance, ErrTypeInvalidSpec:
		return CategoryValidation
	case ErrTypePolicy, ErrTypeNotFound:
		return CategoryDrop
	case ErrTypeTimeout:
		return CategoryTimeout
	default:
		return CategorySystem
	}
}

// RecordRequest is the wire form of a provenance record.
type RecordRequest struct {
	Kind     string `json:"kind"`
	ID       string `json:"id"`
	IssuedAt string `json:"issued_at"`
}

// GenerateRequest renders a single sprite from a provenance record and spec.
type GenerateRequest struct {
	Provenance     RecordRequest `json:"provenance"`
	Mode           string        `json:"mode"`
	Genre          string        `json:"genre,omitempty"`
	Archetype      string        `json:"archetype,omitempty"`
	Rarity         string        `json:"rarity,omitempty"`
	Role           string        `json:"role,omitempty"`
	UniqueID       string        `json:"unique_id,omitempty"`
	FramesPerStage int           `json:"frames_per_stage,omitempty"`
	FrameSize      int           `json:"frame_size,omitempty"`

	// IncludeSheet inlines the encoded sheet in the response.
	IncludeSheet bool `json:"include_sheet,omitempty"`
}

// GenerateResponse carries everything one generation produced. SheetPNG is
// base64 over the wire and only present when the request asked for it.
type GenerateResponse struct {
	Traits        map[string]string  `json:"traits"`
	Frames        []sprite.FrameRect `json:"frames"`
	SeedDigest    string             `json:"seed_digest"`
	SheetWidth    int                `json:"sheet_width"`
	SheetHeight   int                `json:"sheet_height"`
	SheetPNG      []byte             `json:"sheet_png,omitempty"`
	EngineVersion string             `json:"engine_version"`
	Echo          GenerateRequest    `json:"echo"`
}

// DropRequest runs a batch drop and persists the kept tokens.
type DropRequest struct {
	Collection     string `json:"collection"`
	Mode           string `json:"mode"`
	Genre          string `json:"genre,omitempty"`
	Archetype      string `json:"archetype,omitempty"`
	Role           string `json:"role,omitempty"`
	UniqueID       string `json:"unique_id,omitempty"`
	FramesPerStage int    `json:"frames_per_stage,omitempty"`
	FrameSize      int    `json:"frame_size,omitempty"`
	IssuedAt       string `json:"issued_at"`
	Count          int    `json:"count"`
	Workers        int    `json:"workers,omitempty"`
	TimeoutMs      int    `json:"timeout_ms,omitempty"`

	// Script is an optional drop policy body defining onToken.
	Script string `json:"script,omitempty"`
}

// DropResponse summarizes a persisted drop.
type DropResponse struct {
	DropID        string                `json:"drop_id"`
	Collection    string                `json:"collection"`
	Summary       batch.DropSummary     `json:"summary"`
	ElapsedMs     int64                 `json:"elapsed_ms"`
	PolicyLogs    []dropscript.LogEntry `json:"policy_logs,omitempty"`
	EngineVersion string                `json:"engine_version"`
}

// DropDetailResponse is one stored drop with its per-rarity tally.
type DropDetailResponse struct {
	Drop          store.Drop     `json:"drop"`
	RarityStats   map[string]int `json:"rarity_stats"`
	EngineVersion string         `json:"engine_version"`
}

// RarityInfo pairs a tier with its published drop rate percentage.
type RarityInfo struct {
	Name     string `json:"name"`
	DropRate string `json:"drop_rate"`
}

// CatalogResponse enumerates the generation vocabulary.
type CatalogResponse struct {
	Modes         []string     `json:"modes"`
	Genres        []string     `json:"genres"`
	Archetypes    []string     `json:"archetypes"`
	Rarities      []RarityInfo `json:"rarities"`
	Stages        []string     `json:"stages"`
	FacultyRoles  []string     `json:"faculty_roles"`
	Effects       []string     `json:"effects"`
	EngineVersion string       `json:"engine_version"`
}

// SeedDigestRequest asks for the digest of a provenance record.
type SeedDigestRequest struct {
	Provenance RecordRequest `json:"provenance"`
}

// SeedDigestResponse returns the canonical form and its digest.
type SeedDigestResponse struct {
	Canonical     string            `json:"canonical"`
	Digest        string            `json:"digest"`
	EngineVersion string            `json:"engine_version"`
	Echo          SeedDigestRequest `json:"echo"`
}

// HealthCheck represents an individual health check
type HealthCheck struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// HealthResponse represents a health check response
type HealthResponse struct {
	Status        string                 `json:"status"`
	Timestamp     string                 `json:"timestamp"`
	EngineVersion string                 `json:"engine_version"`
	Uptime        string                 `json:"uptime"`
	Checks        map[string]HealthCheck `json:"checks"`
	RequestID     string                 `json:"request_id,omitempty"`
}
