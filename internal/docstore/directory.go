package docstore

import "github.com/abelbrown/lingocheck/internal/checkqueue"

// Directory adapts Store to checkqueue.DocumentDirectory, wrapping
// every known document ID in a *Document on each call so disposal and
// creation are picked up without an explicit refresh step.
type Directory struct {
	store *Store
}

// NewDirectory builds a Directory over the documents in store; the
// list is read from store afresh on every Documents call.
func NewDirectory(store *Store) *Directory {
	return &Directory{store: store}
}

func (dir *Directory) Documents() []checkqueue.Document {
	ids, err := dir.store.DocumentIDs()
	if err != nil {
		return nil
	}
	docs := make([]checkqueue.Document, 0, len(ids))
	for _, id := range ids {
		docs = append(docs, NewDocument(dir.store, id))
	}
	return docs
}
