package planner

import (
	"github.com/bytedance/sonic"

	"github.com/avikram/studysync/internal/storage"
)

// darkModeKey stores the UI theme preference
const darkModeKey = "darkMode"

// Prefs persists small UI preferences outside the session cache
type Prefs struct {
	kv storage.KV
}

// NewPrefs wraps a key-value store for preference access
func NewPrefs(kv storage.KV) *Prefs {
	return &Prefs{kv: kv}
}

// DarkMode reads the stored theme flag, defaulting to false
func (p *Prefs) DarkMode() bool {
	data, ok, err := p.kv.Get(darkModeKey)
	if err != nil || !ok {
		return false
	}
	var enabled bool
	if err := sonic.Unmarshal(data, &enabled); err != nil {
		return false
	}
	return enabled
}

// SetDarkMode stores the theme flag
func (p *Prefs) SetDarkMode(enabled bool) error {
	data, err := sonic.Marshal(enabled)
	if err != nil {
		return err
	}
	return p.kv.Set(darkModeKey, data)
}
