// Package batch mints token drops: whole collections of provenance-seeded
// sprites rendered concurrently and reviewed by an optional drop policy. Token
// content depends only on collection, mint index, spec and issue time, never
// on worker count or scheduling, so any drop can be regenerated byte for byte.
package batch

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Tiny-Walnut-Games/the-seed-sub016/internal/creature"
	"github.com/Tiny-Walnut-Games/the-seed-sub016/internal/dropscript"
	"github.com/Tiny-Walnut-Games/the-seed-sub016/internal/engine"
	"github.com/Tiny-Walnut-Games/the-seed-sub016/internal/provenance"
	"github.com/Tiny-Walnut-Games/the-seed-sub016/internal/rarity"
	"github.com/Tiny-Walnut-Games/the-seed-sub016/internal/sprite"
)

const (
	// maxDropCount caps one drop; bigger collections run as several drops.
	maxDropCount = 10000

	// tokenBatchSize is how many consecutive mint indexes one job covers.
	// Rendering dwarfs channel overhead, so small jobs keep the pool busy.
	tokenBatchSize = 8

	// rarityStream domain-separates the tier roll from the sprite stream, so
	// rolling a tier never shifts sprite pixels.
	rarityStream = "#rarity"
)

// DropRequest describes one drop run.
type DropRequest struct {
	// Collection names the drop; token ids and provenance derive from it.
	Collection string

	// Spec is the sprite spec shared by every token. For creature modes the
	// rarity field is replaced by each token's own tier roll.
	Spec sprite.SpriteSpec

	// IssuedAt stamps every token's provenance record.
	IssuedAt time.Time

	// Count is how many tokens the drop mints.
	Count int

	// Workers caps the render pool. Zero or negative means GOMAXPROCS.
	Workers int

	// Timeout bounds the whole run when positive.
	Timeout time.Duration

	// Policy reviews tokens in mint order after rendering. Nil keeps all.
	Policy *dropscript.Policy
}

// Token is one minted drop entry.
type Token struct {
	// Index is the zero-based mint position within the drop.
	Index int

	// UniqueID is the collection-scoped identifier, e.g. "founders-0012".
	UniqueID string

	// Record is the provenance the sprite was derived from.
	Record provenance.Record

	// Rarity is the rolled tier. Faculty drops are always Legendary.
	Rarity creature.Rarity

	// Result carries the sheet, frame rects, traits and seed digest.
	Result *sprite.GenerationResult
}

// DropSummary aggregates the outcome of the policy pass. Kept and Skipped
// always sum to Requested.
type DropSummary struct {
	Requested int `json:"requested"`
	Kept      int `json:"kept"`
	Skipped   int `json:"skipped"`

	// Stopped is set when the policy ended the review early.
	Stopped bool `json:"stopped"`

	// ByRarity counts kept tokens per tier name.
	ByRarity map[string]int `json:"byRarity"`
}

// DropResult is a finished drop.
type DropResult struct {
	// ID is a fresh run identifier, not derived from the inputs.
	ID         string
	Collection string
	IssuedAt   time.Time

	// Tokens holds the kept tokens in ascending mint order.
	Tokens  []Token
	Summary DropSummary
	Elapsed time.Duration
}

// indexRange is a half-open [start, end) span of mint indexes.
type indexRange struct {
	start int
	end   int
}

// Runner executes drop requests over a bounded worker pool.
type Runner struct {
	log      zerolog.Logger
	rendered uint64
}

// NewRunner returns a Runner that reports progress through log.
func NewRunner(log zerolog.Logger) *Runner {
	return &Runner{log: log}
}

// Rendered reports how many tokens the current run has rendered so far.
func (r *Runner) Rendered() uint64 {
	return atomic.LoadUint64(&r.rendered)
}

// Run mints the requested drop. Tokens render concurrently into their mint
// positions, then the policy reviews them sequentially in mint order.
// Cancellation or timeout aborts the whole run; there are no partial drops.
func (r *Runner) Run(ctx context.Context, req DropRequest) (*DropResult, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	if req.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	workerCount := req.Workers
	if workerCount <= 0 {
		workerCount = runtime.GOMAXPROCS(0)
	}
	if workerCount > req.Count {
		workerCount = req.Count
	}

	start := time.Now()
	atomic.StoreUint64(&r.rendered, 0)
	r.log.Debug().
		Str("collection", req.Collection).
		Int("count", req.Count).
		Int("workers", workerCount).
		Msg("drop run started")

	tokens := make([]Token, req.Count)
	jobs := make(chan indexRange, workerCount*2)

	var (
		wg      sync.WaitGroup
		errOnce sync.Once
		runErr  error
	)
	fail := func(err error) {
		errOnce.Do(func() {
			runErr = err
			cancel()
		})
	}

	for i := 0; i < workerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case span, ok := <-jobs:
					if !ok {
						return
					}
					for idx := span.start; idx < span.end; idx++ {
						if ctx.Err() != nil {
							return
						}
						tok, err := mintToken(req, idx)
						if err != nil {
							fail(fmt.Errorf("token %d: %w", idx, err))
							return
						}
						tokens[idx] = tok
						atomic.AddUint64(&r.rendered, 1)
					}
				}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for lo := 0; lo < req.Count; lo += tokenBatchSize {
			hi := lo + tokenBatchSize
			if hi > req.Count {
				hi = req.Count
			}
			select {
			case jobs <- indexRange{start: lo, end: hi}:
			case <-ctx.Done():
				return
			}
		}
	}()

	wg.Wait()

	if runErr != nil {
		return nil, runErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	kept, summary, err := r.review(req, tokens)
	if err != nil {
		return nil, err
	}

	elapsed := time.Since(start)
	r.log.Info().
		Str("collection", req.Collection).
		Int("kept", summary.Kept).
		Int("skipped", summary.Skipped).
		Dur("elapsed", elapsed).
		Msg("drop run finished")

	return &DropResult{
		ID:         uuid.NewString(),
		Collection: req.Collection,
		IssuedAt:   req.IssuedAt.UTC(),
		Tokens:     kept,
		Summary:    summary,
		Elapsed:    elapsed,
	}, nil
}

func validateRequest(req DropRequest) error {
	if req.Count <= 0 {
		return fmt.Errorf("%w: count %d", ErrNoTokens, req.Count)
	}
	if req.Count > maxDropCount {
		return fmt.Errorf("%w: count %d exceeds %d", ErrTooManyTokens, req.Count, maxDropCount)
	}
	rec := provenance.TokenRecord(req.Collection, 0, req.IssuedAt)
	if err := rec.Validate(); err != nil {
		return err
	}
	spec, _, err := tokenSpec(req, rec)
	if err != nil {
		return err
	}
	return spec.Validate()
}

// tokenSpec resolves the concrete spec for one token: creature drops roll the
// tier from the token's own provenance, faculty drops stay Legendary.
func tokenSpec(req DropRequest, rec provenance.Record) (sprite.SpriteSpec, creature.Rarity, error) {
	spec := req.Spec
	if spec.Mode == sprite.ModeFacultyUltraRare {
		return spec, creature.RarityLegendary, nil
	}
	tier, err := RollRarity(rec)
	if err != nil {
		return spec, creature.RarityUnknown, err
	}
	spec.Rarity = tier
	return spec, tier, nil
}

// mintToken renders the sprite for one mint index.
func mintToken(req DropRequest, index int) (Token, error) {
	rec := provenance.TokenRecord(req.Collection, index, req.IssuedAt)
	spec, tier, err := tokenSpec(req, rec)
	if err != nil {
		return Token{}, err
	}
	seed, err := rec.Canonical()
	if err != nil {
		return Token{}, err
	}
	result, err := sprite.Generate(seed, spec)
	if err != nil {
		return Token{}, err
	}
	return Token{
		Index:    index,
		UniqueID: rec.ID,
		Record:   rec,
		Rarity:   tier,
		Result:   result,
	}, nil
}

// RollRarity derives the tier for one provenance record. The roll reads a
// stream separate from the sprite stream, so a drop's pixels match a direct
// generation from the same record.
func RollRarity(rec provenance.Record) (creature.Rarity, error) {
	seed, err := rec.Canonical()
	if err != nil {
		return creature.RarityUnknown, err
	}
	state, err := engine.DeriveState(append(seed, rarityStream...))
	if err != nil {
		return creature.RarityUnknown, err
	}
	return rarity.Pick(state.Intn(100)), nil
}

// review applies the drop policy to every minted token in mint order and
// builds the summary. Tokens the policy never saw because of an early stop
// count as skipped.
func (r *Runner) review(req DropRequest, tokens []Token) ([]Token, DropSummary, error) {
	summary := DropSummary{
		Requested: len(tokens),
		ByRarity:  make(map[string]int),
	}
	kept := make([]Token, 0, len(tokens))

	for i := range tokens {
		tok := tokens[i]
		verdict := dropscript.Keep
		if req.Policy != nil {
			v, err := req.Policy.Evaluate(dropscript.TokenView{
				Index:      tok.Index,
				UniqueID:   tok.UniqueID,
				Rarity:     tok.Rarity.String(),
				SeedDigest: tok.Result.SeedDigest,
				Traits:     tok.Result.Traits,
			})
			if err != nil {
				return nil, summary, fmt.Errorf("%w: token %d: %w", ErrPolicy, tok.Index, err)
			}
			verdict = v
		}

		switch verdict {
		case dropscript.Keep:
			kept = append(kept, tok)
			summary.Kept++
			summary.ByRarity[tok.Rarity.String()]++
		case dropscript.Skip:
			summary.Skipped++
		case dropscript.Stop:
			summary.Stopped = true
			summary.Skipped += len(tokens) - i
			return kept, summary, nil
		}
	}
	return kept, summary, nil
}
