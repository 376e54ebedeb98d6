package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// SQLiteDB implements the DB interface using SQLite.
type SQLiteDB struct {
	db *sql.DB
}

// NewSQLiteDB creates a new SQLite database connection.
func NewSQLiteDB(path string) (*SQLiteDB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	return &SQLiteDB{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteDB) Close() error {
	return s.db.Close()
}

// Migrate creates the database schema.
func (s *SQLiteDB) Migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS drops (
			id TEXT PRIMARY KEY,
			collection TEXT NOT NULL,
			mode TEXT NOT NULL,
			genre TEXT NOT NULL DEFAULT '',
			archetype TEXT NOT NULL DEFAULT '',
			faculty_role TEXT NOT NULL DEFAULT '',
			frames_per_stage INTEGER NOT NULL,
			frame_size INTEGER NOT NULL,
			issued_at TEXT NOT NULL,
			requested INTEGER NOT NULL DEFAULT 0,
			kept INTEGER NOT NULL DEFAULT 0,
			skipped INTEGER NOT NULL DEFAULT 0,
			stopped INTEGER NOT NULL DEFAULT 0,
			engine_version TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS tokens (
			id TEXT PRIMARY KEY,
			drop_id TEXT NOT NULL,
			mint_index INTEGER NOT NULL,
			unique_id TEXT NOT NULL,
			rarity TEXT NOT NULL,
			seed_digest TEXT NOT NULL,
			traits_json TEXT NOT NULL DEFAULT '{}',
			sheet_w INTEGER NOT NULL,
			sheet_h INTEGER NOT NULL,
			sheet_png BLOB,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (drop_id) REFERENCES drops(id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_tokens_drop_id ON tokens(drop_id)`,
		`CREATE INDEX IF NOT EXISTS idx_tokens_drop_mint ON tokens(drop_id, mint_index)`,
		`CREATE INDEX IF NOT EXISTS idx_tokens_rarity ON tokens(rarity)`,
		`CREATE INDEX IF NOT EXISTS idx_drops_collection ON drops(collection)`,
		`CREATE INDEX IF NOT EXISTS idx_drops_created_at ON drops(created_at)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	return nil
}

// SaveDrop saves a drop record. A missing ID is assigned.
func (s *SQLiteDB) SaveDrop(drop *Drop) error {
	if drop.ID == "" {
		drop.ID = uuid.New().String()
	}

	stopped := 0
	if drop.Stopped {
		stopped = 1
	}

	query := `INSERT INTO drops (
		id, collection, mode, genre, archetype, faculty_role,
		frames_per_stage, frame_size, issued_at, requested, kept, skipped,
		stopped, engine_version
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := s.db.Exec(query,
		drop.ID,
		drop.Collection,
		drop.Mode,
		drop.Genre,
		drop.Archetype,
		drop.FacultyRole,
		drop.FramesPerStage,
		drop.FrameSize,
		drop.IssuedAt.UTC().Format(time.RFC3339),
		drop.Requested,
		drop.Kept,
		drop.Skipped,
		stopped,
		drop.EngineVersion,
	)
	if err != nil {
		return fmt.Errorf("failed to save drop: %w", err)
	}

	return nil
}

// SaveTokens saves a batch of tokens for a drop in a transaction. Missing
// token IDs are assigned.
func (s *SQLiteDB) SaveTokens(dropID string, tokens []Token) error {
	if len(tokens) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO tokens (
		id, drop_id, mint_index, unique_id, rarity, seed_digest, traits_json,
		sheet_w, sheet_h, sheet_png
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for i := range tokens {
		tok := &tokens[i]
		if tok.ID == "" {
			tok.ID = uuid.New().String()
		}
		tok.DropID = dropID

		traits := tok.TraitsJSON
		if traits == "" {
			traits = "{}"
		}

		if _, err := stmt.Exec(
			tok.ID,
			dropID,
			tok.MintIndex,
			tok.UniqueID,
			tok.Rarity,
			tok.SeedDigest,
			traits,
			tok.SheetW,
			tok.SheetH,
			tok.SheetPNG,
		); err != nil {
			return fmt.Errorf("failed to insert token %d: %w", tok.MintIndex, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetDrop retrieves a drop by ID.
func (s *SQLiteDB) GetDrop(id string) (*Drop, error) {
	query := `SELECT id, collection, mode, genre, archetype, faculty_role,
		frames_per_stage, frame_size, issued_at, requested, kept, skipped,
		stopped, engine_version, created_at
	FROM drops WHERE id = ?`

	drop, err := scanDrop(s.db.QueryRow(query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: drop %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}

	return drop, nil
}

// ListDrops lists drops newest first, with optional filters and pagination.
func (s *SQLiteDB) ListDrops(query DropsQuery) (*DropsList, error) {
	if query.PerPage <= 0 {
		query.PerPage = 50
	}
	if query.Page <= 0 {
		query.Page = 1
	}

	whereClause := ""
	args := []interface{}{}
	conds := []string{}

	if query.Collection != "" {
		conds = append(conds, "collection = ?")
		args = append(args, query.Collection)
	}
	if query.Mode != "" {
		conds = append(conds, "mode = ?")
		args = append(args, query.Mode)
	}
	if len(conds) > 0 {
		whereClause = "WHERE " + strings.Join(conds, " AND ")
	}

	countQuery := "SELECT COUNT(*) FROM drops " + whereClause
	var totalCount int
	if err := s.db.QueryRow(countQuery, args...).Scan(&totalCount); err != nil {
		return nil, fmt.Errorf("failed to count drops: %w", err)
	}

	totalPages := (totalCount + query.PerPage - 1) / query.PerPage
	offset := (query.Page - 1) * query.PerPage

	listQuery := `SELECT id, collection, mode, genre, archetype, faculty_role,
		frames_per_stage, frame_size, issued_at, requested, kept, skipped,
		stopped, engine_version, created_at
	FROM drops ` + whereClause + `
	ORDER BY created_at DESC, rowid DESC LIMIT ? OFFSET ?`

	args = append(args, query.PerPage, offset)
	rows, err := s.db.Query(listQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query drops: %w", err)
	}
	defer rows.Close()

	drops := []Drop{}
	for rows.Next() {
		drop, err := scanDrop(rows)
		if err != nil {
			return nil, err
		}
		drops = append(drops, *drop)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read drops: %w", err)
	}

	return &DropsList{
		Drops:      drops,
		TotalCount: totalCount,
		Page:       query.Page,
		PerPage:    query.PerPage,
		TotalPages: totalPages,
	}, nil
}

// GetDropTokens lists a drop's tokens in mint order, without sheet payloads.
func (s *SQLiteDB) GetDropTokens(dropID string, page, perPage int) (*TokensPage, error) {
	if _, err := s.GetDrop(dropID); err != nil {
		return nil, err
	}

	if perPage <= 0 {
		perPage = 50
	}
	if page <= 0 {
		page = 1
	}

	var totalCount int
	countQuery := "SELECT COUNT(*) FROM tokens WHERE drop_id = ?"
	if err := s.db.QueryRow(countQuery, dropID).Scan(&totalCount); err != nil {
		return nil, fmt.Errorf("failed to count tokens: %w", err)
	}

	totalPages := (totalCount + perPage - 1) / perPage
	offset := (page - 1) * perPage

	query := `SELECT id, drop_id, mint_index, unique_id, rarity, seed_digest,
		traits_json, sheet_w, sheet_h, created_at
	FROM tokens WHERE drop_id = ?
	ORDER BY mint_index ASC LIMIT ? OFFSET ?`

	rows, err := s.db.Query(query, dropID, perPage, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query tokens: %w", err)
	}
	defer rows.Close()

	tokens := []Token{}
	for rows.Next() {
		tok, err := scanToken(rows)
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, *tok)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read tokens: %w", err)
	}

	return &TokensPage{
		Tokens:     tokens,
		TotalCount: totalCount,
		Page:       page,
		PerPage:    perPage,
		TotalPages: totalPages,
	}, nil
}

// GetToken retrieves a token's metadata by ID, without the sheet payload.
func (s *SQLiteDB) GetToken(id string) (*Token, error) {
	query := `SELECT id, drop_id, mint_index, unique_id, rarity, seed_digest,
		traits_json, sheet_w, sheet_h, created_at
	FROM tokens WHERE id = ?`

	tok, err := scanToken(s.db.QueryRow(query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: token %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}

	return tok, nil
}

// GetTokenSheet retrieves a token's encoded sheet by token ID.
func (s *SQLiteDB) GetTokenSheet(id string) ([]byte, error) {
	var sheet []byte
	err := s.db.QueryRow("SELECT sheet_png FROM tokens WHERE id = ?", id).Scan(&sheet)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: token %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read token sheet: %w", err)
	}

	return sheet, nil
}

// RarityStats counts tokens per rarity tier. An empty dropID counts the whole
// catalog.
func (s *SQLiteDB) RarityStats(dropID string) (map[string]int, error) {
	query := "SELECT rarity, COUNT(*) FROM tokens"
	args := []interface{}{}
	if dropID != "" {
		query += " WHERE drop_id = ?"
		args = append(args, dropID)
	}
	query += " GROUP BY rarity"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query rarity stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]int)
	for rows.Next() {
		var tier string
		var count int
		if err := rows.Scan(&tier, &count); err != nil {
			return nil, fmt.Errorf("failed to scan rarity stats: %w", err)
		}
		stats[tier] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read rarity stats: %w", err)
	}

	return stats, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanDrop(row rowScanner) (*Drop, error) {
	var drop Drop
	var issuedAt string
	var stopped int

	err := row.Scan(
		&drop.ID,
		&drop.Collection,
		&drop.Mode,
		&drop.Genre,
		&drop.Archetype,
		&drop.FacultyRole,
		&drop.FramesPerStage,
		&drop.FrameSize,
		&issuedAt,
		&drop.Requested,
		&drop.Kept,
		&drop.Skipped,
		&stopped,
		&drop.EngineVersion,
		&drop.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	drop.IssuedAt, err = time.Parse(time.RFC3339, issuedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse issued_at: %w", err)
	}
	drop.Stopped = stopped != 0

	return &drop, nil
}

func scanToken(row rowScanner) (*Token, error) {
	var tok Token

	err := row.Scan(
		&tok.ID,
		&tok.DropID,
		&tok.MintIndex,
		&tok.UniqueID,
		&tok.Rarity,
		&tok.SeedDigest,
		&tok.TraitsJSON,
		&tok.SheetW,
		&tok.SheetH,
		&tok.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &tok, nil
}
