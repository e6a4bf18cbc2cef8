package table

import (
	"fmt"
	rand "math/rand/v2"
	"slices"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/holdemcore/internal/game"
	"github.com/lox/holdemcore/internal/randutil"
)

// Manager is the registry of tables by name
type Manager struct {
	logger *log.Logger
	clock  quartz.Clock

	mu     sync.RWMutex
	rng    *rand.Rand
	tables map[string]*Table
}

// NewManager constructs an empty manager. Each table gets its own RNG
// derived from rng.
func NewManager(logger *log.Logger, clock quartz.Clock, rng *rand.Rand) *Manager {
	return &Manager{
		logger: logger,
		clock:  clock,
		rng:    rng,
		tables: make(map[string]*Table),
	}
}

// Create registers a new table
func (m *Manager) Create(cfg Config) (*Table, error) {
	if err := validate(cfg); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.tables[cfg.Name]; ok {
		return nil, fmt.Errorf("%s: %w", cfg.Name, ErrTableExists)
	}
	t := newTable(cfg, m.logger, m.clock, randutil.Child(m.rng))
	m.tables[cfg.Name] = t
	m.logger.Debug("table created", "table", cfg.Name, "seats", cfg.Seats, "blinds", fmt.Sprintf("%d/%d", cfg.SmallBlind, cfg.BigBlind))
	return t, nil
}

// Get retrieves a table by name
func (m *Manager) Get(name string) (*Table, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.tables[name]
	return t, ok
}

// Delete removes a table. Tables with a hand in progress are kept.
func (m *Manager) Delete(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.tables[name]
	if !ok {
		return fmt.Errorf("%s: %w", name, ErrTableNotFound)
	}
	if t.Summary().HandInProgress {
		return fmt.Errorf("%s: %w", name, ErrHandInProgress)
	}
	delete(m.tables, name)
	m.logger.Debug("table deleted", "table", name)
	return nil
}

// List returns a summary of every table ordered by name
func (m *Manager) List() []Summary {
	m.mu.RLock()
	tables := make([]*Table, 0, len(m.tables))
	for _, t := range m.tables {
		tables = append(tables, t)
	}
	m.mu.RUnlock()

	summaries := make([]Summary, len(tables))
	for i, t := range tables {
		summaries[i] = t.Summary()
	}
	slices.SortFunc(summaries, func(a, b Summary) int {
		return strings.Compare(a.Name, b.Name)
	})
	return summaries
}

func validate(cfg Config) error {
	switch {
	case cfg.Name == "":
		return fmt.Errorf("table name is required")
	case cfg.Seats < 2 || cfg.Seats > game.MaxSeats:
		return fmt.Errorf("table %s: seats must be between 2 and %d", cfg.Name, game.MaxSeats)
	case cfg.SmallBlind <= 0 || cfg.BigBlind < cfg.SmallBlind:
		return fmt.Errorf("table %s: invalid blinds %d/%d", cfg.Name, cfg.SmallBlind, cfg.BigBlind)
	case cfg.StartingStack <= 0:
		return fmt.Errorf("table %s: starting stack must be positive", cfg.Name)
	}
	return nil
}
