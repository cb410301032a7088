package domain

import (
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// MatchThreshold is the minimum keyword-hit fraction a domain needs before
// it is considered a match.
const MatchThreshold = 0.3

// Registry holds the known domain configs: compiled-in system domains plus
// custom (AI-proposed) domains loaded from a JSON file or, when a DSN is
// configured, from Postgres. Load failures never fail the caller; the
// registry simply starts with the system set.
type Registry struct {
	path string
	db   *sql.DB

	loadOnce sync.Once
	mu       sync.RWMutex
	configs  []Config

	schemaOnce sync.Once
	schemaErr  error

	matchCache *lru.Cache[string, string]
}

// NewRegistry creates a file-backed registry. The file is loaded lazily on
// first use.
func NewRegistry(path string) *Registry {
	cache, _ := lru.New[string, string](512)
	return &Registry{path: path, matchCache: cache}
}

// NewRegistryPostgres creates a Postgres-backed registry.
func NewRegistryPostgres(dsn string) (*Registry, error) {
	db, err := sql.Open("pgx", strings.TrimSpace(dsn))
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	cache, err := lru.New[string, string](512)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Registry{db: db, matchCache: cache}, nil
}

// NewRegistryFromEnv prefers Postgres when DOMAIN_STORE_PG_DSN is set and
// reachable, otherwise falls back to the JSON file at path.
func NewRegistryFromEnv(path string) *Registry {
	dsn := strings.TrimSpace(os.Getenv("DOMAIN_STORE_PG_DSN"))
	if dsn == "" {
		return NewRegistry(path)
	}
	r, err := NewRegistryPostgres(dsn)
	if err != nil {
		return NewRegistry(path)
	}
	return r
}

// EnsureLoaded loads persisted custom domains exactly once. Any error
// leaves the registry with just the system configs.
func (r *Registry) EnsureLoaded() {
	if r == nil {
		return
	}
	r.loadOnce.Do(func() {
		configs := SystemConfigs()
		if r.db != nil {
			configs = append(configs, r.loadDB()...)
		} else {
			configs = append(configs, r.loadFile()...)
		}
		r.mu.Lock()
		r.configs = configs
		r.mu.Unlock()
	})
}

// All returns every known config in match priority order (system first,
// then custom in persisted order).
func (r *Registry) All() []Config {
	if r == nil {
		return nil
	}
	r.EnsureLoaded()
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Config, len(r.configs))
	copy(out, r.configs)
	return out
}

// Get returns the config with the given id.
func (r *Registry) Get(id string) (Config, bool) {
	if r == nil {
		return Config{}, false
	}
	r.EnsureLoaded()
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, cfg := range r.configs {
		if cfg.ID == id {
			return cfg, true
		}
	}
	return Config{}, false
}

// Save appends a custom config and persists it. System configs are never
// written back.
func (r *Registry) Save(cfg Config) error {
	if r == nil || strings.TrimSpace(cfg.ID) == "" {
		return nil
	}
	r.EnsureLoaded()
	if cfg.CreatedBy == "" {
		cfg.CreatedBy = CreatedByAI
	}
	if cfg.CreatedAt.IsZero() {
		cfg.CreatedAt = time.Now()
	}
	r.mu.Lock()
	replaced := false
	for i, existing := range r.configs {
		if existing.ID == cfg.ID {
			r.configs[i] = cfg
			replaced = true
			break
		}
	}
	if !replaced {
		r.configs = append(r.configs, cfg)
	}
	customs := r.customsLocked()
	r.mu.Unlock()

	if r.matchCache != nil {
		r.matchCache.Purge()
	}
	if r.db != nil {
		return r.saveDB(cfg)
	}
	return r.saveFile(customs)
}

// Match scores every known domain by the fraction of its keywords that
// appear as a substring of some lower-cased top-level key, and returns the
// first domain reaching the best score at or above MatchThreshold. Ties go
// to the earlier domain (strict > comparison).
func (r *Registry) Match(data map[string]any) *Config {
	if r == nil || len(data) == 0 {
		return nil
	}
	r.EnsureLoaded()

	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, strings.ToLower(k))
	}
	sort.Strings(keys)
	sig := strings.Join(keys, "|")
	if r.matchCache != nil {
		if id, ok := r.matchCache.Get(sig); ok {
			if id == "" {
				return nil
			}
			if cfg, found := r.Get(id); found {
				return &cfg
			}
		}
	}

	r.mu.RLock()
	configs := r.configs
	var best *Config
	bestScore := 0.0
	for i := range configs {
		score := keywordScore(configs[i].Keywords, keys)
		if score >= MatchThreshold && score > bestScore {
			best = &configs[i]
			bestScore = score
		}
	}
	var result *Config
	if best != nil {
		cfg := *best
		result = &cfg
	}
	r.mu.RUnlock()

	if r.matchCache != nil {
		id := ""
		if result != nil {
			id = result.ID
		}
		r.matchCache.Add(sig, id)
	}
	return result
}

func keywordScore(keywords, lowerKeys []string) float64 {
	if len(keywords) == 0 {
		return 0
	}
	hits := 0
	for _, kw := range keywords {
		kw = strings.ToLower(kw)
		for _, key := range lowerKeys {
			if strings.Contains(key, kw) {
				hits++
				break
			}
		}
	}
	return float64(hits) / float64(len(keywords))
}

func (r *Registry) customsLocked() []Config {
	var customs []Config
	for _, cfg := range r.configs {
		if cfg.CreatedBy != CreatedBySystem {
			customs = append(customs, cfg)
		}
	}
	return customs
}

func (r *Registry) loadFile() []Config {
	if r.path == "" {
		return nil
	}
	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil
	}
	var rows []Config
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil
	}
	out := rows[:0]
	for _, row := range rows {
		if strings.TrimSpace(row.ID) == "" {
			continue
		}
		out = append(out, row)
	}
	return out
}

func (r *Registry) saveFile(customs []Config) error {
	if r.path == "" {
		return nil
	}
	data, err := json.MarshalIndent(customs, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(r.path, data, 0o644)
}

func (r *Registry) ensureSchema() error {
	r.schemaOnce.Do(func() {
		_, r.schemaErr = r.db.Exec(`
			CREATE TABLE IF NOT EXISTS domain_configs (
				id         TEXT PRIMARY KEY,
				payload    TEXT NOT NULL,
				created_at TIMESTAMPTZ NOT NULL DEFAULT now()
			)`)
	})
	return r.schemaErr
}

func (r *Registry) loadDB() []Config {
	if err := r.ensureSchema(); err != nil {
		return nil
	}
	rows, err := r.db.Query(`SELECT payload FROM domain_configs ORDER BY created_at`)
	if err != nil {
		return nil
	}
	defer rows.Close()
	var out []Config
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			continue
		}
		var cfg Config
		if err := json.Unmarshal([]byte(payload), &cfg); err != nil {
			continue
		}
		if strings.TrimSpace(cfg.ID) != "" {
			out = append(out, cfg)
		}
	}
	return out
}

func (r *Registry) saveDB(cfg Config) error {
	if err := r.ensureSchema(); err != nil {
		return err
	}
	payload, err := json.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(`
		INSERT INTO domain_configs (id, payload, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET payload = EXCLUDED.payload`,
		cfg.ID, string(payload), cfg.CreatedAt)
	return err
}

// Close releases the database handle if one is open.
func (r *Registry) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}
