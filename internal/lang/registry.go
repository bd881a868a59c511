// Package lang provides an in-memory reference implementation of
// checkqueue.LanguageRegistry.
package lang

import (
	"sync"

	"github.com/abelbrown/lingocheck/internal/checkqueue"
)

// Language is the concrete checkqueue.Language used by this registry.
type Language struct {
	tag string
}

func (l Language) Tag() string { return l.tag }

// Registry is a concurrency-safe mapping from locale to Language,
// seeded by NewRegistry and extended by Register.
type Registry struct {
	mu        sync.RWMutex
	languages map[checkqueue.Locale]Language
}

// NewRegistry builds a Registry seeded with the given locale tags,
// each mapped to a Language sharing the locale's own tag.
func NewRegistry(locales ...string) *Registry {
	r := &Registry{languages: make(map[checkqueue.Locale]Language, len(locales))}
	for _, l := range locales {
		r.languages[checkqueue.Locale(l)] = Language{tag: l}
	}
	return r
}

// Register adds or replaces the Language for a locale.
func (r *Registry) Register(locale checkqueue.Locale, language Language) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.languages[locale] = language
}

func (r *Registry) HasLocale(locale checkqueue.Locale) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.languages[locale]
	return ok
}

func (r *Registry) LanguageFor(locale checkqueue.Locale) checkqueue.Language {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.languages[locale]
}
