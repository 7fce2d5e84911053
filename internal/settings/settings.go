// Package settings persists player preferences as a YAML blob in the
// per-user gdata store.
package settings

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// AppName is the gdata application directory.
const AppName = "sliceit"

const (
	settingsObject   = "settings"
	settingsProperty = "global"
)

// Particle density levels.
const (
	ParticlesLow    = "low"
	ParticlesMedium = "medium"
	ParticlesHigh   = "high"
)

// Settings holds the player's preferences.
type Settings struct {
	SfxVolume       float64 `yaml:"sfxVolume"`       // 0.0 - 1.0
	ParticleEffects string  `yaml:"particleEffects"` // low, medium or high
	TrailEffect     bool    `yaml:"trailEffect"`
	Muted           bool    `yaml:"muted"`
}

// Defaults returns the settings used on first launch.
func Defaults() Settings {
	return Settings{
		SfxVolume:       0.7,
		ParticleEffects: ParticlesMedium,
		TrailEffect:     true,
		Muted:           false,
	}
}

// Normalize clamps the volume and replaces an unknown particle level.
func (s *Settings) Normalize() {
	s.SfxVolume = clampVolume(s.SfxVolume)
	switch s.ParticleEffects {
	case ParticlesLow, ParticlesMedium, ParticlesHigh:
	default:
		s.ParticleEffects = ParticlesMedium
	}
}

// EffectiveVolume is the volume the audio layer should use.
func (s Settings) EffectiveVolume() float64 {
	if s.Muted {
		return 0
	}
	return s.SfxVolume
}

// Manager loads and saves Settings.
// A Manager without a gdata store keeps settings in memory only.
type Manager struct {
	store    *gdata.Manager
	settings Settings
	log      *log.Logger
}

// Open opens the per-user gdata store and loads the saved settings.
// If the store cannot be opened the manager runs in memory-only mode.
func Open(logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.Default().WithPrefix("settings")
	}
	store, err := gdata.Open(gdata.Config{AppName: AppName})
	if err != nil {
		logger.Warn("settings will not be saved", "err", err)
		store = nil
	}
	return NewManager(store, logger)
}

// NewManager creates a manager over store, which may be nil.
// Load errors are logged and the defaults are used.
func NewManager(store *gdata.Manager, logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.Default().WithPrefix("settings")
	}
	m := &Manager{
		store:    store,
		settings: Defaults(),
		log:      logger,
	}
	if err := m.Load(); err != nil {
		m.log.Warn("using default settings", "err", err)
	}
	return m
}

// Persistent reports whether settings survive a restart.
func (m *Manager) Persistent() bool {
	return m.store != nil
}

// Load reads the saved settings. Missing data yields the defaults;
// unreadable or corrupt data yields the defaults and an error.
func (m *Manager) Load() error {
	m.settings = Defaults()
	if m.store == nil {
		return nil
	}
	if !m.store.ObjectPropExists(settingsObject, settingsProperty) {
		return nil
	}

	data, err := m.store.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		return fmt.Errorf("settings: cannot load: %w", err)
	}

	loaded := Defaults()
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("settings: cannot parse: %w", err)
	}
	loaded.Normalize()
	m.settings = loaded
	return nil
}

// Save writes the current settings. It is a no-op in memory-only mode.
func (m *Manager) Save() error {
	if m.store == nil {
		return nil
	}

	data, err := yaml.Marshal(m.settings)
	if err != nil {
		return fmt.Errorf("settings: cannot encode: %w", err)
	}
	if err := m.store.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("settings: cannot save: %w", err)
	}
	return nil
}

// Get returns a copy of the current settings.
func (m *Manager) Get() Settings {
	return m.settings
}

// Update applies fn to the current settings and normalizes the result.
// Call Save to persist the change.
func (m *Manager) Update(fn func(*Settings)) {
	fn(&m.settings)
	m.settings.Normalize()
}

// Reset restores the defaults in memory.
func (m *Manager) Reset() {
	m.settings = Defaults()
}

// Keys lists the names accepted by Set.
func Keys() []string {
	return []string{"volume", "particles", "trail", "muted"}
}

// Set changes one setting from its textual form.
func (m *Manager) Set(key, value string) error {
	value = strings.TrimSpace(value)
	switch strings.ToLower(key) {
	case "volume":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("settings: invalid volume %q: %w", value, err)
		}
		m.Update(func(s *Settings) { s.SfxVolume = v })
	case "particles":
		level := strings.ToLower(value)
		switch level {
		case ParticlesLow, ParticlesMedium, ParticlesHigh:
		default:
			return fmt.Errorf("settings: invalid particle level %q (use low, medium or high)", value)
		}
		m.Update(func(s *Settings) { s.ParticleEffects = level })
	case "trail":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("settings: invalid trail value %q: %w", value, err)
		}
		m.Update(func(s *Settings) { s.TrailEffect = b })
	case "muted":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("settings: invalid muted value %q: %w", value, err)
		}
		m.Update(func(s *Settings) { s.Muted = b })
	default:
		return fmt.Errorf("settings: unknown key %q (valid: %s)", key, strings.Join(Keys(), ", "))
	}
	return nil
}

func clampVolume(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
