package settings

import (
	"log"

	"github.com/pkg/errors"
)

// Restore loads and decodes the stored record. Any failure yields Default;
// read and decode problems are logged, an empty store is not.
func Restore(store Store) Settings {
	raw, err := store.Load()
	if err != nil {
		log.Printf("[!] Failed to read settings: %v", err)
		return Default()
	}

	s, err := Decode(raw)
	if err != nil {
		if !errors.Is(err, ErrEmpty) {
			log.Printf("[!] Ignoring stored settings: %v", err)
		}
		return Default()
	}
	return *s
}

// Session tracks the live state and writes it back to the store.
//
// The first Observe is the initial render of the restored values and never
// writes. Every later Observe writes when the values changed.
type Session struct {
	store   Store
	current Settings
	seen    bool
}

// NewSession restores the state from store.
func NewSession(store Store) *Session {
	return &Session{store: store, current: Restore(store)}
}

// Current returns the live state.
func (s *Session) Current() Settings {
	return s.current
}

// Observe records next as the live state and persists it unless this is the
// first observation or nothing changed.
func (s *Session) Observe(next Settings) error {
	if !s.seen {
		s.seen = true
		s.current = next
		return nil
	}
	if next == s.current {
		return nil
	}
	s.current = next
	return s.save()
}

// SetLanguage switches the language and persists right away.
func (s *Session) SetLanguage(lang Language) error {
	if !lang.Valid() {
		return errors.Wrapf(ErrInvalid, "unknown language %q", lang)
	}
	s.current.Lang = lang
	return s.save()
}

// Reset replaces the live state with Default and persists it.
func (s *Session) Reset() error {
	s.current = Default()
	s.seen = true
	return s.save()
}

func (s *Session) save() error {
	raw, err := Encode(s.current)
	if err != nil {
		return err
	}
	return errors.Wrap(s.store.Save(raw), "saving settings")
}
