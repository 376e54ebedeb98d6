package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/Tiny-Walnut-Games/the-seed-sub016/internal/creature"
	"github.com/Tiny-Walnut-Games/the-seed-sub016/internal/provenance"
	"github.com/Tiny-Walnut-Games/the-seed-sub016/internal/sprite"
)

// parseRecord turns the wire form into a validated provenance record.
func parseRecord(req RecordRequest) (provenance.Record, error) {
	if req.IssuedAt == "" {
		return provenance.Record{}, fmt.Errorf("issued_at is required")
	}
	issuedAt, err := time.Parse(time.RFC3339, req.IssuedAt)
	if err != nil {
		return provenance.Record{}, fmt.Errorf("issued_at: %w", err)
	}

	rec := provenance.Record{Kind: req.Kind, ID: req.ID, IssuedAt: issuedAt}
	if err := rec.Validate(); err != nil {
		return provenance.Record{}, err
	}
	return rec, nil
}

// buildSpec assembles a sprite spec from wire fields. Frame counts default
// per mode and the rarity tier defaults to Common when omitted; the spec's
// own Validate has the final say.
func buildSpec(req GenerateRequest) (sprite.SpriteSpec, error) {
	mode, err := sprite.ParseMode(req.Mode)
	if err != nil {
		return sprite.SpriteSpec{}, err
	}

	spec := sprite.SpriteSpec{
		Mode:           mode,
		UniqueID:       req.UniqueID,
		FramesPerStage: req.FramesPerStage,
		FrameSize:      req.FrameSize,
	}
	if spec.FramesPerStage == 0 {
		if mode.Animated() {
			spec.FramesPerStage = sprite.DefaultAnimationFrames
		} else {
			spec.FramesPerStage = 1
		}
	}

	if mode == sprite.ModeFacultyUltraRare {
		role, err := creature.ParseFacultyRole(req.Role)
		if err != nil {
			return sprite.SpriteSpec{}, err
		}
		spec.Role = role
		return spec, nil
	}

	genre, err := creature.ParseGenre(req.Genre)
	if err != nil {
		return sprite.SpriteSpec{}, err
	}
	archetype, err := creature.ParseArchetype(req.Archetype)
	if err != nil {
		return sprite.SpriteSpec{}, err
	}
	spec.Genre = genre
	spec.Archetype = archetype

	spec.Rarity = creature.RarityCommon
	if req.Rarity != "" {
		tier, err := creature.ParseRarity(req.Rarity)
		if err != nil {
			return sprite.SpriteSpec{}, err
		}
		spec.Rarity = tier
	}

	return spec, nil
}

// pageParams reads page and per_page query parameters, leaving zero for the
// store defaults.
func pageParams(r *http.Request) (page, perPage int, err error) {
	if v := r.URL.Query().Get("page"); v != "" {
		page, err = strconv.Atoi(v)
		if err != nil || page < 1 {
			return 0, 0, fmt.Errorf("page must be a positive integer")
		}
	}
	if v := r.URL.Query().Get("per_page"); v != "" {
		perPage, err = strconv.Atoi(v)
		if err != nil || perPage < 1 {
			return 0, 0, fmt.Errorf("per_page must be a positive integer")
		}
	}
	return page, perPage, nil
}
