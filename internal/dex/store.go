// Package dex holds the read-only reference data: species, moves, items and
// abilities. A Store is loaded once at startup and never mutated afterwards,
// so it is safe for concurrent reads from any number of battles.
package dex

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/KirkDiggler/pokeduel/internal/errors"
)

// Table names, matching the JSON file names without extension.
const (
	TablePokemon   = "pokemon"
	TableMoves     = "moves"
	TableItems     = "items"
	TableAbilities = "abilities"
)

//go:embed data/*.json
var defaultData embed.FS

// Store is the reference data lookup.
type Store struct {
	species     map[string]*Species
	speciesByID map[int]*Species
	moves       map[string]*Move
	items       map[string]*Item
	abilities   map[string]*Ability

	// raw rows per table, for Find queries
	rows map[string][]map[string]any
}

var (
	defaultStore     *Store
	defaultStoreErr  error
	defaultStoreOnce sync.Once
)

// Default returns the store built from the embedded dataset.
func Default() (*Store, error) {
	defaultStoreOnce.Do(func() {
		sub, err := fs.Sub(defaultData, "data")
		if err != nil {
			defaultStoreErr = errors.Wrap(err, "failed to open embedded data")
			return
		}
		defaultStore, defaultStoreErr = LoadFS(sub)
	})
	return defaultStore, defaultStoreErr
}

// Load reads the four tables from dir.
func Load(dir string) (*Store, error) {
	if dir == "" {
		return nil, errors.InvalidArgument("data directory is required")
	}
	return LoadFS(os.DirFS(dir))
}

// LoadFS reads the four tables from fsys.
func LoadFS(fsys fs.FS) (*Store, error) {
	s := &Store{
		species:     make(map[string]*Species),
		speciesByID: make(map[int]*Species),
		moves:       make(map[string]*Move),
		items:       make(map[string]*Item),
		abilities:   make(map[string]*Ability),
		rows:        make(map[string][]map[string]any),
	}

	var species []*Species
	if err := s.loadTable(fsys, TablePokemon, &species); err != nil {
		return nil, err
	}
	for _, sp := range species {
		s.species[key(sp.Name)] = sp
		s.species[key(sp.Identifier)] = sp
		if _, exists := s.speciesByID[sp.ID]; !exists {
			s.speciesByID[sp.ID] = sp
		}
	}

	var moves []*Move
	if err := s.loadTable(fsys, TableMoves, &moves); err != nil {
		return nil, err
	}
	for _, m := range moves {
		s.moves[key(m.Identifier)] = m
	}

	var items []*Item
	if err := s.loadTable(fsys, TableItems, &items); err != nil {
		return nil, err
	}
	for _, it := range items {
		s.items[key(it.Identifier)] = it
	}

	var abilities []*Ability
	if err := s.loadTable(fsys, TableAbilities, &abilities); err != nil {
		return nil, err
	}
	for _, a := range abilities {
		s.abilities[key(a.Identifier)] = a
	}

	slog.Debug("Reference data loaded",
		"species", len(species),
		"moves", len(s.moves),
		"items", len(s.items),
		"abilities", len(s.abilities),
	)

	return s, nil
}

// loadTable decodes table.json twice: once into typed records, once into
// generic rows for Find.
func (s *Store) loadTable(fsys fs.FS, table string, into any) error {
	raw, err := fs.ReadFile(fsys, table+".json")
	if err != nil {
		return errors.Wrapf(err, "failed to read %s table", table)
	}
	if err := json.Unmarshal(raw, into); err != nil {
		return errors.WrapWithCode(err, errors.CodeInvalidArgument, fmt.Sprintf("malformed %s table", table))
	}
	var rows []map[string]any
	if err := json.Unmarshal(raw, &rows); err != nil {
		return errors.WrapWithCode(err, errors.CodeInvalidArgument, fmt.Sprintf("malformed %s table", table))
	}
	s.rows[table] = rows
	return nil
}

func key(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Species returns the species (or form) by display name or identifier.
func (s *Store) Species(name string) (*Species, bool) {
	sp, ok := s.species[key(name)]
	return sp, ok
}

// SpeciesByID returns the base form for a national dex number.
func (s *Store) SpeciesByID(id int) (*Species, bool) {
	sp, ok := s.speciesByID[id]
	return sp, ok
}

// Move returns a move by identifier.
func (s *Store) Move(identifier string) (*Move, bool) {
	m, ok := s.moves[key(identifier)]
	return m, ok
}

// Item returns an item by identifier.
func (s *Store) Item(identifier string) (*Item, bool) {
	it, ok := s.items[key(identifier)]
	return it, ok
}

// Ability returns an ability by identifier.
func (s *Store) Ability(identifier string) (*Ability, bool) {
	a, ok := s.abilities[key(identifier)]
	return a, ok
}
