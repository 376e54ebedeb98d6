package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Tiny-Walnut-Games/the-seed-sub016/internal/batch"
	"github.com/Tiny-Walnut-Games/the-seed-sub016/internal/creature"
	"github.com/Tiny-Walnut-Games/the-seed-sub016/internal/dropscript"
	"github.com/Tiny-Walnut-Games/the-seed-sub016/internal/engine"
	"github.com/Tiny-Walnut-Games/the-seed-sub016/internal/export"
	"github.com/Tiny-Walnut-Games/the-seed-sub016/internal/rarity"
	"github.com/Tiny-Walnut-Games/the-seed-sub016/internal/sprite"
	"github.com/Tiny-Walnut-Games/the-seed-sub016/internal/store"
)

// handleGenerate renders a single sprite from a provenance record and spec.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, ErrTypeValidation, "Invalid JSON format", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	rec, err := parseRecord(req.Provenance)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, ErrTypeInvalidProvenance, err.Error(), nil)
		return
	}

	spec, err := buildSpec(req)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, ErrTypeValidation, err.Error(), nil)
		return
	}
	if spec.FrameSize == 0 {
		spec.FrameSize = s.opts.FrameSize
	}

	seed, err := rec.Canonical()
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, ErrTypeInvalidProvenance, err.Error(), nil)
		return
	}

	result, err := sprite.Generate(seed, spec, sprite.WithTables(s.tables))
	if err != nil {
		s.handleDomainError(w, r, err, map[string]interface{}{"mode": req.Mode})
		return
	}

	response := GenerateResponse{
		Traits:        result.Traits,
		Frames:        result.FrameRects,
		SeedDigest:    result.SeedDigest,
		SheetWidth:    result.Sheet.Width(),
		SheetHeight:   result.Sheet.Height(),
		EngineVersion: EngineVersion,
		Echo:          req,
	}
	if req.IncludeSheet {
		png, err := export.EncodePNG(result.Sheet)
		if err != nil {
			s.handleDomainError(w, r, err, nil)
			return
		}
		response.SheetPNG = png
	}

	s.log.Info().
		Str("digest", result.SeedDigest).
		Str("mode", spec.Mode.String()).
		Int("frames", len(result.FrameRects)).
		Msg("generate completed")

	s.writeJSON(w, http.StatusOK, response)
}

// handleCreateDrop runs a drop batch and persists the kept tokens.
func (s *Server) handleCreateDrop(w http.ResponseWriter, r *http.Request) {
	var req DropRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, ErrTypeValidation, "Invalid JSON format", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	if req.Collection == "" {
		s.writeError(w, r, http.StatusBadRequest, ErrTypeValidation, "collection is required", nil)
		return
	}
	if req.IssuedAt == "" {
		s.writeError(w, r, http.StatusBadRequest, ErrTypeValidation, "issued_at is required", nil)
		return
	}
	issuedAt, err := time.Parse(time.RFC3339, req.IssuedAt)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, ErrTypeValidation, "issued_at: "+err.Error(), nil)
		return
	}

	spec, err := buildSpec(GenerateRequest{
		Mode:           req.Mode,
		Genre:          req.Genre,
		Archetype:      req.Archetype,
		Role:           req.Role,
		UniqueID:       req.UniqueID,
		FramesPerStage: req.FramesPerStage,
		FrameSize:      req.FrameSize,
	})
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, ErrTypeValidation, err.Error(), nil)
		return
	}
	if spec.FrameSize == 0 {
		spec.FrameSize = s.opts.FrameSize
	}

	script := req.Script
	if script == "" {
		script = s.opts.PolicyScript
	}
	var policy *dropscript.Policy
	if script != "" {
		policy, err = dropscript.Compile(script)
		if err != nil {
			s.writeError(w, r, http.StatusBadRequest, ErrTypePolicy, err.Error(), nil)
			return
		}
	}

	workers := req.Workers
	if workers == 0 {
		workers = s.opts.Workers
	}

	result, err := s.runner.Run(r.Context(), batch.DropRequest{
		Collection: req.Collection,
		Spec:       spec,
		IssuedAt:   issuedAt,
		Count:      req.Count,
		Workers:    workers,
		Timeout:    time.Duration(req.TimeoutMs) * time.Millisecond,
		Policy:     policy,
	})
	if err != nil {
		s.handleDomainError(w, r, err, map[string]interface{}{"collection": req.Collection})
		return
	}

	drop := dropRow(result, spec)
	if err := s.db.SaveDrop(drop); err != nil {
		s.writeError(w, r, http.StatusInternalServerError, ErrTypeInternal, err.Error(), nil)
		return
	}
	rows, err := tokenRows(result.Tokens)
	if err != nil {
		s.writeError(w, r, http.StatusInternalServerError, ErrTypeInternal, err.Error(), nil)
		return
	}
	if err := s.db.SaveTokens(drop.ID, rows); err != nil {
		s.writeError(w, r, http.StatusInternalServerError, ErrTypeInternal, err.Error(), nil)
		return
	}

	response := DropResponse{
		DropID:        drop.ID,
		Collection:    result.Collection,
		Summary:       result.Summary,
		ElapsedMs:     result.Elapsed.Milliseconds(),
		EngineVersion: EngineVersion,
	}
	if policy != nil {
		response.PolicyLogs = policy.GetLogs()
	}

	s.log.Info().
		Str("drop_id", drop.ID).
		Str("collection", result.Collection).
		Int("kept", result.Summary.Kept).
		Int("skipped", result.Summary.Skipped).
		Msg("drop persisted")

	s.writeJSON(w, http.StatusCreated, response)
}

// dropRow flattens a finished drop into its catalog record.
func dropRow(result *batch.DropResult, spec sprite.SpriteSpec) *store.Drop {
	drop := &store.Drop{
		ID:             result.ID,
		Collection:     result.Collection,
		Mode:           spec.Mode.String(),
		FramesPerStage: spec.FramesPerStage,
		FrameSize:      spec.FrameSize,
		IssuedAt:       result.IssuedAt,
		Requested:      result.Summary.Requested,
		Kept:           result.Summary.Kept,
		Skipped:        result.Summary.Skipped,
		Stopped:        result.Summary.Stopped,
		EngineVersion:  EngineVersion,
	}
	if drop.FrameSize == 0 {
		drop.FrameSize = sprite.DefaultFrameSize
	}
	if spec.Mode == sprite.ModeFacultyUltraRare {
		drop.FacultyRole = spec.Role.String()
	} else {
		drop.Genre = spec.Genre.String()
		drop.Archetype = spec.Archetype.String()
	}
	return drop
}

// tokenRows encodes kept tokens into their persisted form.
func tokenRows(tokens []batch.Token) ([]store.Token, error) {
	rows := make([]store.Token, 0, len(tokens))
	for _, tok := range tokens {
		png, err := export.EncodePNG(tok.Result.Sheet)
		if err != nil {
			return nil, err
		}
		traits, err := json.Marshal(tok.Result.Traits)
		if err != nil {
			return nil, err
		}
		rows = append(rows, store.Token{
			MintIndex:  tok.Index,
			UniqueID:   tok.UniqueID,
			Rarity:     tok.Rarity.String(),
			SeedDigest: tok.Result.SeedDigest,
			TraitsJSON: string(traits),
			SheetW:     tok.Result.Sheet.Width(),
			SheetH:     tok.Result.Sheet.Height(),
			SheetPNG:   png,
		})
	}
	return rows, nil
}

// handleListDrops lists stored drops with optional filters.
func (s *Server) handleListDrops(w http.ResponseWriter, r *http.Request) {
	page, perPage, err := pageParams(r)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, ErrTypeValidation, err.Error(), nil)
		return
	}

	list, err := s.db.ListDrops(store.DropsQuery{
		Collection: r.URL.Query().Get("collection"),
		Mode:       r.URL.Query().Get("mode"),
		Page:       page,
		PerPage:    perPage,
	})
	if err != nil {
		s.handleDomainError(w, r, err, nil)
		return
	}

	s.writeJSON(w, http.StatusOK, list)
}

// handleGetDrop returns one stored drop with its rarity tally.
func (s *Server) handleGetDrop(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "dropID")

	drop, err := s.db.GetDrop(id)
	if err != nil {
		s.handleDomainError(w, r, err, nil)
		return
	}
	stats, err := s.db.RarityStats(id)
	if err != nil {
		s.handleDomainError(w, r, err, nil)
		return
	}

	s.writeJSON(w, http.StatusOK, DropDetailResponse{
		Drop:          *drop,
		RarityStats:   stats,
		EngineVersion: EngineVersion,
	})
}

// handleDropTokens lists a drop's tokens in mint order.
func (s *Server) handleDropTokens(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "dropID")

	page, perPage, err := pageParams(r)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, ErrTypeValidation, err.Error(), nil)
		return
	}

	tokens, err := s.db.GetDropTokens(id, page, perPage)
	if err != nil {
		s.handleDomainError(w, r, err, nil)
		return
	}

	s.writeJSON(w, http.StatusOK, tokens)
}

// handleTokenSheet serves a token's sheet as PNG.
func (s *Server) handleTokenSheet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "tokenID")

	sheet, err := s.db.GetTokenSheet(id)
	if err != nil {
		s.handleDomainError(w, r, err, nil)
		return
	}
	if len(sheet) == 0 {
		s.writeError(w, r, http.StatusNotFound, ErrTypeNotFound, "token has no stored sheet", nil)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("X-Forge-Version", EngineVersion)
	w.WriteHeader(http.StatusOK)
	w.Write(sheet)
}

// handleCatalog enumerates the generation vocabulary.
func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	modes := []string{
		sprite.ModeGenreCreature.String(),
		sprite.ModeFacultyUltraRare.String(),
		sprite.ModeEvolutionChain.String(),
		sprite.ModeAnimatedEvolutionChain.String(),
	}

	genres := make([]string, 0, len(creature.Genres()))
	for _, g := range creature.Genres() {
		genres = append(genres, g.String())
	}
	archetypes := make([]string, 0, len(creature.Archetypes()))
	for _, a := range creature.Archetypes() {
		archetypes = append(archetypes, a.String())
	}
	rarities := make([]RarityInfo, 0, len(creature.Rarities()))
	for _, tier := range creature.Rarities() {
		rarities = append(rarities, RarityInfo{
			Name:     tier.String(),
			DropRate: rarity.DropRate(tier).String(),
		})
	}
	stages := make([]string, 0, creature.StageCount)
	for _, stage := range creature.Stages() {
		stages = append(stages, stage.String())
	}
	roles := make([]string, 0, len(creature.FacultyRoles()))
	for _, role := range creature.FacultyRoles() {
		roles = append(roles, role.String())
	}
	effects := make([]string, 0, creature.EffectCount)
	for i := 0; i < creature.EffectCount; i++ {
		effects = append(effects, creature.Effect(i).String())
	}

	s.writeJSON(w, http.StatusOK, CatalogResponse{
		Modes:         modes,
		Genres:        genres,
		Archetypes:    archetypes,
		Rarities:      rarities,
		Stages:        stages,
		FacultyRoles:  roles,
		Effects:       effects,
		EngineVersion: EngineVersion,
	})
}

// handleSeedDigest returns the canonical form and digest of a provenance
// record without generating anything.
func (s *Server) handleSeedDigest(w http.ResponseWriter, r *http.Request) {
	var req SeedDigestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, ErrTypeValidation, "Invalid JSON format", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	rec, err := parseRecord(req.Provenance)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, ErrTypeInvalidProvenance, err.Error(), nil)
		return
	}
	canonical, err := rec.Canonical()
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, ErrTypeInvalidProvenance, err.Error(), nil)
		return
	}

	digest := engine.Digest(canonical)

	s.log.Info().Str("digest", digest).Msg("seed digest computed")

	s.writeJSON(w, http.StatusOK, SeedDigestResponse{
		Canonical:     string(canonical),
		Digest:        digest,
		EngineVersion: EngineVersion,
		Echo:          req,
	})
}
