package seed

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"tablegames/internal/catalog"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

//go:embed games.yaml
var defaultFixture []byte

// Fixture is one game entry in a seed file.
type Fixture struct {
	Name          string         `yaml:"name" validate:"required"`
	Description   string         `yaml:"description"`
	ImageURL      string         `yaml:"image_url" validate:"omitempty,url"`
	MinPlayers    int            `yaml:"min_players" validate:"gte=1"`
	MaxPlayers    int            `yaml:"max_players"`
	PlayTime      *int           `yaml:"play_time" validate:"omitempty,gte=0"`
	AvgRating     float64        `yaml:"avg_rating"`
	YearPublished *int           `yaml:"year_published"`
	Metadata      map[string]any `yaml:"metadata"`
}

type document struct {
	Games []Fixture `yaml:"games"`
}

// Result is a parsed seed file. Warnings are metadata schema findings; they
// never block a game from being loaded.
type Result struct {
	Games    []catalog.Game
	Warnings []string
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterStructValidation(validateFixture, Fixture{})
	return v
}

const (
	tagPlayerRange = "player_range"
	tagRatingRange = "rating_range"
)

// validateFixture applies the catalog rules that span fields or need the
// rounded rating.
func validateFixture(sl validator.StructLevel) {
	fixture := sl.Current().Interface().(Fixture)
	game := catalog.Game{
		MinPlayers: fixture.MinPlayers,
		MaxPlayers: fixture.MaxPlayers,
		AvgRating:  catalog.NewRating(fixture.AvgRating),
	}
	if !game.PlayerRangeValid() {
		sl.ReportError(fixture.MaxPlayers, "max_players", "MaxPlayers", tagPlayerRange, "")
	}
	if !game.AvgRating.InRange() {
		sl.ReportError(fixture.AvgRating, "avg_rating", "AvgRating", tagRatingRange, "")
	}
}

// Default returns the embedded fixture.
func Default() (Result, error) {
	return Load(bytes.NewReader(defaultFixture))
}

func LoadFile(path string) (Result, error) {
	file, err := os.Open(path)
	if err != nil {
		return Result{}, err
	}
	defer file.Close()
	return Load(file)
}

// Load parses and validates a YAML fixture document.
func Load(r io.Reader) (Result, error) {
	var doc document
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return Result{Games: []catalog.Game{}}, nil
		}
		return Result{}, fmt.Errorf("decode fixture: %w", err)
	}

	result := Result{Games: make([]catalog.Game, 0, len(doc.Games))}
	for i, fixture := range doc.Games {
		fixture.applyDefaults()
		if err := validate.Struct(fixture); err != nil {
			return Result{}, fmt.Errorf("game %d (%q): %w", i+1, fixture.Name, describe(err))
		}
		for _, warning := range CheckMetadata(fixture.Metadata) {
			result.Warnings = append(result.Warnings, fmt.Sprintf("game %d (%q): %s", i+1, fixture.Name, warning))
		}
		game, err := fixture.Game()
		if err != nil {
			return Result{}, fmt.Errorf("game %d (%q): %w", i+1, fixture.Name, err)
		}
		result.Games = append(result.Games, game)
	}
	return result, nil
}

// Populate inserts every game into the memory store.
func Populate(store *catalog.MemoryStore, games []catalog.Game) error {
	for _, game := range games {
		if _, err := store.Insert(game); err != nil {
			return fmt.Errorf("insert %q: %w", game.Name, err)
		}
	}
	return nil
}

func (f *Fixture) applyDefaults() {
	if f.MinPlayers == 0 {
		f.MinPlayers = catalog.DefaultMinPlayers
	}
	if f.MaxPlayers == 0 {
		f.MaxPlayers = catalog.DefaultMaxPlayers
	}
}

// Game converts the fixture into a catalog game without id or timestamps.
func (f Fixture) Game() (catalog.Game, error) {
	game := catalog.Game{
		Name:          f.Name,
		Description:   catalog.StringPtr(f.Description),
		ImageURL:      catalog.StringPtr(f.ImageURL),
		MinPlayers:    f.MinPlayers,
		MaxPlayers:    f.MaxPlayers,
		PlayTime:      f.PlayTime,
		AvgRating:     catalog.NewRating(f.AvgRating),
		YearPublished: f.YearPublished,
	}
	if f.Metadata != nil {
		encoded, err := json.Marshal(f.Metadata)
		if err != nil {
			return catalog.Game{}, fmt.Errorf("encode metadata: %w", err)
		}
		meta, err := catalog.ParseMetadata(encoded)
		if err != nil {
			return catalog.Game{}, err
		}
		game.Metadata = meta
	}
	return game, nil
}

func describe(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	first := verrs[0]
	switch first.Tag() {
	case "required":
		return fmt.Errorf("%s is required", first.Field())
	case tagPlayerRange:
		return errors.New("max_players must be at least min_players")
	case tagRatingRange:
		return errors.New("avg_rating must be between 0 and 5")
	case "url":
		return fmt.Errorf("%s must be a URL", first.Field())
	default:
		return fmt.Errorf("%s fails %s=%s", first.Field(), first.Tag(), first.Param())
	}
}
