package checkqueue

import "context"

// Locale identifies the language/region of a paragraph, as reported by
// a Document. Opaque to the core; passed through to LanguageRegistry.
type Locale string

// Language is the engine-opaque result of resolving a Locale via a
// LanguageRegistry. Only Tag is used by the core, to decide whether
// the active engine needs re-initialization.
type Language interface {
	// Tag returns a short, comparable identifier, e.g. "en-US".
	Tag() string
}

// Engine is an opaque handle to a running linguistic engine instance.
// The core never inspects it; it is created and consumed entirely by
// the EngineFactory and Document collaborators.
type Engine any

// Document is a single open document, as seen by the check queue.
// Implementations are provided by the host (word-processor binding);
// see internal/docstore for a reference implementation used in tests
// and the demo binary.
type Document interface {
	ID() string
	IsDisposed() bool

	// NextQueueEntry returns a follow-up unit of work for round-robin
	// probing (§4.4). ok is false if the document has nothing to offer.
	NextQueueEntry(nStart, nCache int) (Entry, bool)

	// ParagraphLocaleAt resolves the locale of the paragraph at
	// nStart. ok is false if there is no such paragraph any more.
	ParagraphLocaleAt(nStart int) (Locale, bool)

	// RunCheck dispatches a check to the linguistic engine. It should
	// periodically call interrupted and return promptly once it
	// reports true; the caller tolerates best-effort compliance.
	RunCheck(ctx context.Context, nStart, nEnd, nCache, nCheck int, overrideRunning bool, engine Engine, interrupted func() bool) error
}

// DocumentDirectory exposes the open documents of the host, in a
// stable order used for round-robin follow-up probing.
type DocumentDirectory interface {
	Documents() []Document
}

// LanguageRegistry resolves locales to engine languages.
type LanguageRegistry interface {
	HasLocale(locale Locale) bool
	LanguageFor(locale Locale) Language
}

// EngineFactory owns the lifecycle of the linguistic engine. The
// worker is its only caller; producers never reach it (§5).
type EngineFactory interface {
	Initialize(ctx context.Context, language Language, reuse bool) (Engine, error)
	ActivateRuleSet(index int, engine Engine) error
	Warmup(engine Engine, locale Locale) error
}

// Reporter is the logging/error-reporting collaborator (§6).
type Reporter interface {
	Log(msg string, keyvals ...any)
	ReportError(err error)
}
