package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/Tiny-Walnut-Games/the-seed-sub016/internal/batch"
)

// traitColumns are the trait keys exported per token, in column order.
// Tokens missing a key leave the cell empty.
var traitColumns = []string{
	"mode",
	"genre",
	"archetype",
	"facultyRole",
	"framesPerStage",
	"frameSize",
	"effects",
	"rarityScore",
}

// WriteTraitsCSV writes the drop's trait table: one header row, then one row
// per token in the order given.
func WriteTraitsCSV(w io.Writer, tokens []batch.Token) error {
	cw := csv.NewWriter(w)

	header := []string{"index", "unique_id", "rarity", "seed_digest"}
	header = append(header, traitColumns...)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("traits csv: %w", err)
	}

	for _, tok := range tokens {
		row := []string{
			strconv.Itoa(tok.Index),
			tok.UniqueID,
			tok.Rarity.String(),
		}
		digest := ""
		if tok.Result != nil {
			digest = tok.Result.SeedDigest
		}
		row = append(row, digest)
		for _, key := range traitColumns {
			value := ""
			if tok.Result != nil {
				value = tok.Result.Traits[key]
			}
			row = append(row, value)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("traits csv: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("traits csv: %w", err)
	}
	return nil
}

// TraitsCSV renders the trait table to bytes.
func TraitsCSV(tokens []batch.Token) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteTraitsCSV(&buf, tokens); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
