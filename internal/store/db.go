// Package store persists the sprite catalog: drop runs and their minted
// tokens, including the encoded sheet for each token.
package store

import (
	"time"
)

// DB is the catalog persistence interface.
type DB interface {
	Close() error
	Migrate() error
	SaveDrop(drop *Drop) error
	SaveTokens(dropID string, tokens []Token) error
	GetDrop(id string) (*Drop, error)
	ListDrops(query DropsQuery) (*DropsList, error)
	GetDropTokens(dropID string, page, perPage int) (*TokensPage, error)
	GetToken(id string) (*Token, error)
	GetTokenSheet(id string) ([]byte, error)
	RarityStats(dropID string) (map[string]int, error)
}

// DropsQuery represents query parameters for listing drops.
type DropsQuery struct {
	Collection string `json:"collection,omitempty"`
	Mode       string `json:"mode,omitempty"`
	Page       int    `json:"page"`
	PerPage    int    `json:"perPage"`
}

// DropsList represents a paginated drops response.
type DropsList struct {
	Drops      []Drop `json:"drops"`
	TotalCount int    `json:"totalCount"`
	Page       int    `json:"page"`
	PerPage    int    `json:"perPage"`
	TotalPages int    `json:"totalPages"`
}

// TokensPage represents a paginated tokens response. Sheet payloads are left
// out of listings; fetch them per token.
type TokensPage struct {
	Tokens     []Token `json:"tokens"`
	TotalCount int     `json:"totalCount"`
	Page       int     `json:"page"`
	PerPage    int     `json:"perPage"`
	TotalPages int     `json:"totalPages"`
}

// Drop represents a persisted drop run.
type Drop struct {
	ID             string    `json:"id" db:"id"`
	Collection     string    `json:"collection" db:"collection"`
	Mode           string    `json:"mode" db:"mode"`
	Genre          string    `json:"genre" db:"genre"`
	Archetype      string    `json:"archetype" db:"archetype"`
	FacultyRole    string    `json:"faculty_role" db:"faculty_role"`
	FramesPerStage int       `json:"frames_per_stage" db:"frames_per_stage"`
	FrameSize      int       `json:"frame_size" db:"frame_size"`
	IssuedAt       time.Time `json:"issued_at" db:"issued_at"`
	Requested      int       `json:"requested" db:"requested"`
	Kept           int       `json:"kept" db:"kept"`
	Skipped        int       `json:"skipped" db:"skipped"`
	Stopped        bool      `json:"stopped" db:"stopped"`
	EngineVersion  string    `json:"engine_version" db:"engine_version"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

// Token represents a persisted mint.
type Token struct {
	ID         string `json:"id" db:"id"`
	DropID     string `json:"drop_id" db:"drop_id"`
	MintIndex  int    `json:"mint_index" db:"mint_index"`
	UniqueID   string `json:"unique_id" db:"unique_id"`
	Rarity     string `json:"rarity" db:"rarity"`
	SeedDigest string `json:"seed_digest" db:"seed_digest"`
	TraitsJSON string `json:"traits_json" db:"traits_json"`
	SheetW     int    `json:"sheet_w" db:"sheet_w"`
	SheetH     int    `json:"sheet_h" db:"sheet_h"`

	// SheetPNG is the encoded sheet. Listings and GetToken leave it nil;
	// GetTokenSheet loads it.
	SheetPNG []byte `json:"-" db:"sheet_png"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
