// Command forgectl is the operator CLI for the sprite engine: render single
// sprites, mint whole drops, self-check determinism, and list the generation
// vocabulary.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"syscall"
	"time"

	"github.com/Tiny-Walnut-Games/the-seed-sub016/internal/batch"
	"github.com/Tiny-Walnut-Games/the-seed-sub016/internal/creature"
	"github.com/Tiny-Walnut-Games/the-seed-sub016/internal/dropscript"
	"github.com/Tiny-Walnut-Games/the-seed-sub016/internal/engine"
	"github.com/Tiny-Walnut-Games/the-seed-sub016/internal/export"
	"github.com/Tiny-Walnut-Games/the-seed-sub016/internal/observe"
	"github.com/Tiny-Walnut-Games/the-seed-sub016/internal/provenance"
	"github.com/Tiny-Walnut-Games/the-seed-sub016/internal/rarity"
	"github.com/Tiny-Walnut-Games/the-seed-sub016/internal/sprite"
	"github.com/Tiny-Walnut-Games/the-seed-sub016/internal/store"
)

// Set via -ldflags "-X main.engineVersion=v1.2.3" at release.
var engineVersion = "dev"

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "generate":
		runGenerate(os.Args[2:])
	case "drop":
		runDrop(os.Args[2:])
	case "verify":
		runVerify(os.Args[2:])
	case "catalog":
		runCatalog()
	case "help", "-h", "-help", "--help":
		usage()
	default:
		fatalf("unknown command %q (supported: generate, drop, verify, catalog)", os.Args[1])
	}
}

func usage() {
	fmt.Fprint(os.Stderr, `Usage: forgectl <command> [flags]

Commands:
  generate  render one sprite sheet from a provenance record
  drop      mint a drop collection, optionally persisting it
  verify    render the same inputs twice and compare byte for byte
  catalog   list modes, genres, archetypes, rarities, stages and roles

Run "forgectl <command> -h" for command flags.
`)
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "forgectl: "+format+"\n", args...)
	os.Exit(1)
}

// recordFlags collects the provenance inputs shared by generate and verify.
type recordFlags struct {
	kind     string
	id       string
	issuedAt string
}

func (f *recordFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.kind, "kind", "token", "provenance kind, e.g. token or faculty")
	fs.StringVar(&f.id, "id", "", "provenance id (required)")
	fs.StringVar(&f.issuedAt, "issued-at", "", "issuance instant, RFC 3339 (required)")
}

func (f *recordFlags) build() (provenance.Record, error) {
	if f.id == "" {
		return provenance.Record{}, errors.New("-id is required")
	}
	if f.issuedAt == "" {
		return provenance.Record{}, errors.New("-issued-at is required")
	}
	ts, err := time.Parse(time.RFC3339, f.issuedAt)
	if err != nil {
		return provenance.Record{}, fmt.Errorf("-issued-at: %w", err)
	}

	rec := provenance.Record{Kind: f.kind, ID: f.id, IssuedAt: ts}
	if err := rec.Validate(); err != nil {
		return provenance.Record{}, err
	}
	return rec, nil
}

// specFlags collects the sprite spec inputs shared by every render command.
type specFlags struct {
	mode      string
	genre     string
	archetype string
	tier      string
	role      string
	uniqueID  string
	frames    int
	size      int
}

func (f *specFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.mode, "mode", "GenreCreature", "GenreCreature | FacultyUltraRare | EvolutionChain | AnimatedEvolutionChain")
	fs.StringVar(&f.genre, "genre", "Fantasy", "creature genre")
	fs.StringVar(&f.archetype, "archetype", "Familiar", "creature archetype")
	fs.StringVar(&f.tier, "rarity", "Common", "creature rarity tier (drops roll per token instead)")
	fs.StringVar(&f.role, "role", "", "faculty role (FacultyUltraRare mode)")
	fs.StringVar(&f.uniqueID, "unique-id", "", "faculty unique id (FacultyUltraRare mode)")
	fs.IntVar(&f.frames, "frames", 0, "frames per stage (0 = mode default)")
	fs.IntVar(&f.size, "size", 0, "frame edge in pixels (0 = default)")
}

func (f *specFlags) build() (sprite.SpriteSpec, error) {
	mode, err := sprite.ParseMode(f.mode)
	if err != nil {
		return sprite.SpriteSpec{}, err
	}

	spec := sprite.SpriteSpec{Mode: mode, FramesPerStage: f.frames, FrameSize: f.size}
	if spec.FramesPerStage == 0 {
		spec.FramesPerStage = 1
		if mode.Animated() {
			spec.FramesPerStage = sprite.DefaultAnimationFrames
		}
	}

	if mode == sprite.ModeFacultyUltraRare {
		role, err := creature.ParseFacultyRole(f.role)
		if err != nil {
			return sprite.SpriteSpec{}, err
		}
		spec.Role = role
		spec.UniqueID = f.uniqueID
		return spec, nil
	}

	if spec.Genre, err = creature.ParseGenre(f.genre); err != nil {
		return sprite.SpriteSpec{}, err
	}
	if spec.Archetype, err = creature.ParseArchetype(f.archetype); err != nil {
		return sprite.SpriteSpec{}, err
	}
	if spec.Rarity, err = creature.ParseRarity(f.tier); err != nil {
		return sprite.SpriteSpec{}, err
	}
	return spec, nil
}

func runGenerate(args []string) {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	var rf recordFlags
	var sf specFlags
	rf.register(fs)
	sf.register(fs)
	out := fs.String("out", "sprite.png", "sheet output path")
	atlas := fs.String("atlas", "", "atlas JSON output path (empty = skip)")
	preview := fs.String("preview", "", "upscaled preview PNG output path (empty = skip)")
	scale := fs.Int("scale", 8, "preview scale factor")
	fs.Parse(args)

	rec, err := rf.build()
	if err != nil {
		fatalf("generate: %v", err)
	}
	spec, err := sf.build()
	if err != nil {
		fatalf("generate: %v", err)
	}
	seed, err := rec.Canonical()
	if err != nil {
		fatalf("generate: %v", err)
	}

	result, err := sprite.Generate(seed, spec)
	if err != nil {
		fatalf("generate: %v", err)
	}

	if err := export.WritePNGFile(*out, result.Sheet); err != nil {
		fatalf("generate: %v", err)
	}
	fmt.Printf("wrote %s (%dx%d, %d frames)\n",
		*out, result.Sheet.Width(), result.Sheet.Height(), len(result.FrameRects))

	if *atlas != "" {
		data, err := export.AtlasJSON(result)
		if err != nil {
			fatalf("generate: %v", err)
		}
		if err := os.WriteFile(*atlas, data, 0o644); err != nil {
			fatalf("generate: %v", err)
		}
		fmt.Printf("wrote %s\n", *atlas)
	}
	if *preview != "" {
		data, err := export.PreviewPNG(result.Sheet, *scale)
		if err != nil {
			fatalf("generate: %v", err)
		}
		if err := os.WriteFile(*preview, data, 0o644); err != nil {
			fatalf("generate: %v", err)
		}
		fmt.Printf("wrote %s\n", *preview)
	}

	fmt.Printf("canonical %s\n", seed)
	fmt.Printf("digest    %s\n", result.SeedDigest)
	printTraits(result.Traits)
}

func runDrop(args []string) {
	fs := flag.NewFlagSet("drop", flag.ExitOnError)
	var sf specFlags
	sf.register(fs)
	collection := fs.String("collection", "", "collection name (required)")
	issuedAt := fs.String("issued-at", "", "issuance instant, RFC 3339 (required)")
	count := fs.Int("count", 10, "tokens to mint")
	workers := fs.Int("workers", 0, "render pool size (0 = GOMAXPROCS)")
	timeout := fs.Duration("timeout", 0, "overall run timeout (0 = none)")
	scriptPath := fs.String("script", "", "drop policy script path")
	dbPath := fs.String("db", "", "catalog database to persist into (empty = no persistence)")
	outDir := fs.String("outdir", "", "write kept sheets as PNGs into this directory")
	csvPath := fs.String("csv", "", "write kept token traits as CSV")
	verbose := fs.Bool("v", false, "verbose run logging")
	fs.Parse(args)

	if *collection == "" {
		fatalf("drop: -collection is required")
	}
	if *issuedAt == "" {
		fatalf("drop: -issued-at is required")
	}
	ts, err := time.Parse(time.RFC3339, *issuedAt)
	if err != nil {
		fatalf("drop: -issued-at: %v", err)
	}
	spec, err := sf.build()
	if err != nil {
		fatalf("drop: %v", err)
	}

	var policy *dropscript.Policy
	if *scriptPath != "" {
		src, err := os.ReadFile(*scriptPath)
		if err != nil {
			fatalf("drop: %v", err)
		}
		policy, err = dropscript.Compile(string(src))
		if err != nil {
			fatalf("drop: %v", err)
		}
	}

	level := "warn"
	if *verbose {
		level = "debug"
	}
	logger := observe.NewLogger("forgectl", level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := batch.NewRunner(logger).Run(ctx, batch.DropRequest{
		Collection: *collection,
		Spec:       spec,
		IssuedAt:   ts,
		Count:      *count,
		Workers:    *workers,
		Timeout:    *timeout,
		Policy:     policy,
	})
	if err != nil {
		fatalf("drop: %v", err)
	}

	fmt.Printf("drop %s: requested=%d kept=%d skipped=%d stopped=%v elapsed=%s\n",
		result.ID, result.Summary.Requested, result.Summary.Kept,
		result.Summary.Skipped, result.Summary.Stopped,
		result.Elapsed.Round(time.Millisecond))
	for _, tier := range creature.Rarities() {
		if n := result.Summary.ByRarity[tier.String()]; n > 0 {
			fmt.Printf("  %-10s %d\n", tier.String(), n)
		}
	}
	if policy != nil {
		for _, entry := range policy.GetLogs() {
			fmt.Printf("  policy: %s\n", entry.Message)
		}
	}

	if *outDir != "" {
		if err := os.MkdirAll(*outDir, 0o755); err != nil {
			fatalf("drop: %v", err)
		}
		for _, tok := range result.Tokens {
			path := filepath.Join(*outDir, tok.UniqueID+".png")
			if err := export.WritePNGFile(path, tok.Result.Sheet); err != nil {
				fatalf("drop: %v", err)
			}
		}
		fmt.Printf("wrote %d sheets to %s\n", len(result.Tokens), *outDir)
	}

	if *csvPath != "" {
		f, err := os.Create(*csvPath)
		if err != nil {
			fatalf("drop: %v", err)
		}
		if err := export.WriteTraitsCSV(f, result.Tokens); err != nil {
			f.Close()
			fatalf("drop: %v", err)
		}
		if err := f.Close(); err != nil {
			fatalf("drop: %v", err)
		}
		fmt.Printf("wrote %s\n", *csvPath)
	}

	if *dbPath != "" {
		persistDrop(*dbPath, result, spec)
		fmt.Printf("persisted drop %s to %s\n", result.ID, *dbPath)
	}
}

// persistDrop writes a finished run into the catalog database, the same rows
// the API server writes for its drops.
func persistDrop(path string, result *batch.DropResult, spec sprite.SpriteSpec) {
	db, err := store.NewSQLiteDB(path)
	if err != nil {
		fatalf("drop: %v", err)
	}
	defer db.Close()
	if err := db.Migrate(); err != nil {
		fatalf("drop: %v", err)
	}

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
		EngineVersion:  engineVersion,
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
	if err := db.SaveDrop(drop); err != nil {
		fatalf("drop: %v", err)
	}

	rows := make([]store.Token, 0, len(result.Tokens))
	for _, tok := range result.Tokens {
		png, err := export.EncodePNG(tok.Result.Sheet)
		if err != nil {
			fatalf("drop: %v", err)
		}
		traits, err := json.Marshal(tok.Result.Traits)
		if err != nil {
			fatalf("drop: %v", err)
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
	if err := db.SaveTokens(drop.ID, rows); err != nil {
		fatalf("drop: %v", err)
	}
}

func runVerify(args []string) {
	fs := flag.NewFlagSet("verify", flag.ExitOnError)
	var rf recordFlags
	var sf specFlags
	rf.register(fs)
	sf.register(fs)
	fs.Parse(args)

	rec, err := rf.build()
	if err != nil {
		fatalf("verify: %v", err)
	}
	spec, err := sf.build()
	if err != nil {
		fatalf("verify: %v", err)
	}
	seed, err := rec.Canonical()
	if err != nil {
		fatalf("verify: %v", err)
	}

	first, err := sprite.Generate(seed, spec)
	if err != nil {
		fatalf("verify: %v", err)
	}
	second, err := sprite.Generate(seed, spec)
	if err != nil {
		fatalf("verify: %v", err)
	}

	firstPNG, err := export.EncodePNG(first.Sheet)
	if err != nil {
		fatalf("verify: %v", err)
	}
	secondPNG, err := export.EncodePNG(second.Sheet)
	if err != nil {
		fatalf("verify: %v", err)
	}

	if first.SeedDigest != second.SeedDigest {
		fatalf("verify: seed digests differ between runs: %s vs %s", first.SeedDigest, second.SeedDigest)
	}
	if !bytes.Equal(firstPNG, secondPNG) {
		fatalf("verify: sheets differ between runs for %s", seed)
	}

	fmt.Printf("canonical %s\n", seed)
	fmt.Printf("digest    %s\n", first.SeedDigest)
	fmt.Printf("sheet     %dx%d, %d frames, png sha256 %s\n",
		first.Sheet.Width(), first.Sheet.Height(), len(first.FrameRects), engine.Digest(firstPNG))
	fmt.Println("deterministic: two runs produced identical sheets")
}

func runCatalog() {
	fmt.Println("modes:")
	for _, m := range []sprite.Mode{
		sprite.ModeGenreCreature,
		sprite.ModeFacultyUltraRare,
		sprite.ModeEvolutionChain,
		sprite.ModeAnimatedEvolutionChain,
	} {
		fmt.Printf("  %s\n", m.String())
	}

	fmt.Println("genres:")
	for _, g := range creature.Genres() {
		fmt.Printf("  %s\n", g.String())
	}

	fmt.Println("archetypes:")
	for _, a := range creature.Archetypes() {
		fmt.Printf("  %s\n", a.String())
	}

	fmt.Println("rarities:")
	for _, tier := range creature.Rarities() {
		fmt.Printf("  %-10s %s%%\n", tier.String(), rarity.DropRate(tier).String())
	}

	fmt.Println("stages:")
	for _, stage := range creature.Stages() {
		fmt.Printf("  %s\n", stage.String())
	}

	fmt.Println("faculty roles:")
	for _, role := range creature.FacultyRoles() {
		fmt.Printf("  %s\n", role.String())
	}

	fmt.Println("effects:")
	for i := 0; i < creature.EffectCount; i++ {
		fmt.Printf("  %s\n", creature.Effect(i).String())
	}
}

func printTraits(traits map[string]string) {
	keys := make([]string, 0, len(traits))
	for k := range traits {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Printf("  %s: %s\n", k, traits[k])
	}
}
