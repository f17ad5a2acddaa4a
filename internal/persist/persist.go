package persist

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/julianstephens/jagruk/internal/backup"
	"github.com/julianstephens/jagruk/internal/constants"
	"github.com/julianstephens/jagruk/internal/logger"
	"github.com/julianstephens/jagruk/internal/models"
	"github.com/julianstephens/jagruk/internal/storage"
)

// Persister loads and saves the AppState blob through a BlobStore. Saves are
// debounced: a burst of Save calls produces one write of the last state.
type Persister struct {
	store    storage.BlobStore
	clock    func() time.Time
	loc      *time.Location
	debounce time.Duration

	mu        sync.Mutex
	timer     *time.Timer
	gen       uint64 // bumped whenever a pending write is cancelled or replaced
	pending   *models.AppState
	suspended bool

	writeMu sync.Mutex
}

type Option func(*Persister)

// WithClock replaces time.Now.
func WithClock(clock func() time.Time) Option {
	return func(p *Persister) { p.clock = clock }
}

// WithLocation sets the zone used to compute today's date.
func WithLocation(loc *time.Location) Option {
	return func(p *Persister) { p.loc = loc }
}

// WithDebounce sets the write coalescing window. Zero writes on every Save.
func WithDebounce(d time.Duration) Option {
	return func(p *Persister) { p.debounce = d }
}

func New(store storage.BlobStore, opts ...Option) *Persister {
	p := &Persister{
		store:    store,
		clock:    time.Now,
		loc:      time.Local,
		debounce: constants.SaveDebounce,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Now returns the current instant in the persister's location.
func (p *Persister) Now() time.Time {
	return p.clock().In(p.loc)
}

// Location is the zone the persister computes calendar days in.
func (p *Persister) Location() *time.Location {
	return p.loc
}

// Store exposes the underlying blob store.
func (p *Persister) Store() storage.BlobStore {
	return p.store
}

// Load never fails: an absent blob yields the default state and a corrupt one is
// logged and replaced by the default state. CurrentDate is always today.
func (p *Persister) Load() models.AppState {
	now := p.Now()
	def := models.DefaultState(now)

	raw, err := p.store.Get(constants.StateKey)
	if errors.Is(err, storage.ErrNotFound) {
		return def
	}
	if err != nil {
		logger.Error("failed to read persisted state", "key", constants.StateKey, "error", err)
		return def
	}

	s, err := Decode(raw, now)
	if err != nil {
		logger.Warn("persisted state is corrupt, starting fresh", "key", constants.StateKey, "error", err)
		return def
	}
	return s
}

// ErrCorrupt reports a persisted blob that is not an object with a profile object.
var ErrCorrupt = errors.New("state blob is not an object with a profile")

// Decode merges a stored blob over the default state for now. Fields added after the
// blob was written come from the defaults.
func Decode(raw []byte, now time.Time) (models.AppState, error) {
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return models.AppState{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if _, ok := doc["profile"].(map[string]any); !ok {
		return models.AppState{}, ErrCorrupt
	}

	// Fields are read one by one so a single unreadable record is dropped
	// rather than discarding the whole blob.
	return backup.Read(doc, now)
}

// Save schedules a write of s. While suspended the call is dropped.
func (p *Persister) Save(s models.AppState) {
	p.mu.Lock()
	if p.suspended {
		p.mu.Unlock()
		return
	}
	if p.debounce <= 0 {
		p.cancelLocked()
		gen := p.gen
		p.mu.Unlock()
		_ = p.write(s, gen)
		return
	}

	p.cancelLocked()
	p.pending = &s
	gen := p.gen
	p.timer = time.AfterFunc(p.debounce, func() { p.fire(gen) })
	p.mu.Unlock()
}

func (p *Persister) fire(gen uint64) {
	p.mu.Lock()
	if gen != p.gen || p.pending == nil || p.suspended {
		p.mu.Unlock()
		return
	}
	s := *p.pending
	p.pending = nil
	p.timer = nil
	p.mu.Unlock()

	_ = p.write(s, gen)
}

// cancelLocked stops the armed timer and invalidates any write of an older
// generation, including one already past its timer. Caller holds mu.
func (p *Persister) cancelLocked() {
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
	p.pending = nil
	p.gen++
}

// Flush writes a pending state now. It returns the write error, if any.
func (p *Persister) Flush() error {
	p.mu.Lock()
	if p.pending == nil {
		p.mu.Unlock()
		return nil
	}
	s := *p.pending
	p.cancelLocked()
	gen := p.gen
	p.mu.Unlock()

	return p.write(s, gen)
}

func (p *Persister) stale(gen uint64) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return gen != p.gen
}

// Pending reports whether a debounced write is armed.
func (p *Persister) Pending() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pending != nil
}

// Suspend cancels any pending write and drops Saves until Resume.
func (p *Persister) Suspend() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cancelLocked()
	p.suspended = true
}

func (p *Persister) Resume() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.suspended = false
}

func (p *Persister) Suspended() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.suspended
}

// WriteNow writes s synchronously, replacing any pending or in-flight write. It
// ignores suspension.
func (p *Persister) WriteNow(s models.AppState) error {
	p.mu.Lock()
	p.cancelLocked()
	gen := p.gen
	p.mu.Unlock()
	return p.write(s, gen)
}

// Clear cancels pending work and erases every persisted key.
func (p *Persister) Clear() error {
	p.mu.Lock()
	p.cancelLocked()
	p.mu.Unlock()

	p.writeMu.Lock()
	defer p.writeMu.Unlock()
	if err := p.store.Clear(); err != nil {
		return fmt.Errorf("failed to clear persisted state: %w", err)
	}
	return nil
}

// write stores s unless a newer generation has started since gen was taken. Failures
// are logged here and never panic; callers that care use the error.
func (p *Persister) write(s models.AppState, gen uint64) error {
	data, err := json.Marshal(s)
	if err != nil {
		logger.Error("failed to persist state", "key", constants.StateKey, "error", err)
		return fmt.Errorf("failed to serialize state: %w", err)
	}

	p.writeMu.Lock()
	defer p.writeMu.Unlock()
	if p.stale(gen) {
		logger.Debug("skipping superseded write", "gen", gen)
		return nil
	}
	if err := p.store.Set(constants.StateKey, data); err != nil {
		logger.Error("failed to persist state", "key", constants.StateKey, "bytes", len(data), "error", err)
		return fmt.Errorf("failed to persist state: %w", err)
	}
	logger.Debug("state persisted", "bytes", len(data))
	return nil
}

// LoadTheme returns the stored theme, dark when unset or unrecognised.
func (p *Persister) LoadTheme() constants.Theme {
	raw, err := p.store.Get(constants.ThemeKey)
	if err != nil {
		return constants.ThemeDark
	}
	switch t := constants.Theme(raw); t {
	case constants.ThemeLight, constants.ThemeDark:
		return t
	}
	return constants.ThemeDark
}

func (p *Persister) SaveTheme(t constants.Theme) error {
	if t != constants.ThemeLight && t != constants.ThemeDark {
		return fmt.Errorf("unknown theme %q (want light or dark)", t)
	}
	if err := p.store.Set(constants.ThemeKey, []byte(t)); err != nil {
		return fmt.Errorf("failed to save theme: %w", err)
	}
	return nil
}
