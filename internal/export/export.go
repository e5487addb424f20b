// Package export writes generator results as JSON for the headless modes
// and describes them with JSON Schema.
package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/invopop/jsonschema"

	"github.com/litescript/ls-cosmos/internal/compat"
	"github.com/litescript/ls-cosmos/internal/dreams"
	"github.com/litescript/ls-cosmos/internal/horoscope"
	"github.com/litescript/ls-cosmos/internal/lunar"
	"github.com/litescript/ls-cosmos/internal/natal"
	"github.com/litescript/ls-cosmos/internal/tarot"
	"github.com/litescript/ls-cosmos/internal/version"
)

// Kind names a result type.
type Kind string

const (
	KindTarot     Kind = "tarot"
	KindNatal     Kind = "natal"
	KindMoon      Kind = "moon"
	KindCompat    Kind = "compat"
	KindHoroscope Kind = "horoscope"
	KindDream     Kind = "dream"
)

var ErrUnknownKind = errors.New("unknown result kind")

// TarotResult is a drawn spread and its reading.
type TarotResult struct {
	Seed    uint64            `json:"seed"`
	Cards   []tarot.DrawnCard `json:"cards"`
	Reading tarot.Reading     `json:"reading"`
}

// MoonToday describes the phase on the reference day.
type MoonToday struct {
	Date         string          `json:"date"`
	JulianDate   float64         `json:"julian_date"`
	Index        int             `json:"index"`
	Phase        lunar.PhaseInfo `json:"phase"`
	Illumination int             `json:"illumination"`
	DaysUntilNew float64         `json:"days_until_new"`
	Ritual       lunar.Ritual    `json:"ritual"`
}

// MoonResult is a month calendar plus the reference day.
type MoonResult struct {
	Year      int              `json:"year"`
	Month     int              `json:"month"`
	MonthName string           `json:"month_name"`
	Today     MoonToday        `json:"today"`
	Days      []lunar.DayPhase `json:"days"`
}

// CompatResult is a pair's scores with the analysis text per category.
type CompatResult struct {
	compat.Scores
	Analysis map[string]string `json:"analysis"`
}

// DreamResult lists dictionary matches for a query.
type DreamResult struct {
	Query    string          `json:"query"`
	Category string          `json:"category"`
	Symbols  []dreams.Symbol `json:"symbols"`
}

var schemaTypes = map[Kind]any{
	KindTarot:     TarotResult{},
	KindNatal:     natal.Chart{},
	KindMoon:      MoonResult{},
	KindCompat:    CompatResult{},
	KindHoroscope: horoscope.Reading{},
	KindDream:     DreamResult{},
}

// Kinds lists every kind with a schema, sorted.
func Kinds() []Kind {
	out := make([]Kind, 0, len(schemaTypes))
	for k := range schemaTypes {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

// ParseKind validates a kind name.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if _, ok := schemaTypes[k]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
	return k, nil
}

// Envelope wraps every headless result.
type Envelope struct {
	Kind      Kind      `json:"kind"`
	Version   string    `json:"version"`
	Generated time.Time `json:"generated"`
	Data      any       `json:"data"`
}

// WriteJSON writes data wrapped in an envelope, indented.
func WriteJSON(w io.Writer, kind Kind, data any, now time.Time) error {
	env := Envelope{
		Kind:      kind,
		Version:   version.Version,
		Generated: now.UTC(),
		Data:      data,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(env); err != nil {
		return fmt.Errorf("encode %s: %w", kind, err)
	}
	return nil
}

// Schema returns the JSON Schema for the data of a kind.
func Schema(kind Kind) (*jsonschema.Schema, error) {
	v, ok := schemaTypes[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	r := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	s := r.Reflect(v)
	s.Title = string(kind)
	return s, nil
}

// WriteSchema writes the indented schema for kind.
func WriteSchema(w io.Writer, kind Kind) error {
	s, err := Schema(kind)
	if err != nil {
		return err
	}
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s schema: %w", kind, err)
	}
	b = append(b, '\n')
	_, err = w.Write(b)
	return err
}
