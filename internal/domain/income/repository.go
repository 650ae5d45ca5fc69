package income

import "context"

type Repository interface {
	ListEntries(ctx context.Context, userID string) ([]Entry, error)
	GetEntryByID(ctx context.Context, userID, entryID string) (*Entry, error)
	CreateEntry(ctx context.Context, entry *Entry) error
	UpdateEntry(ctx context.Context, entry *Entry) error
	DeleteEntry(ctx context.Context, userID, entryID string) (bool, error)
	ListSources(ctx context.Context) ([]Source, error)
	SourceExists(ctx context.Context, sourceID string) (bool, error)
}

type SourcesCache interface {
	GetSources() ([]Source, bool)
	SetSources(sources []Source)
}

type noopSourcesCache struct{}

func (noopSourcesCache) GetSources() ([]Source, bool) {
	return nil, false
}

func (noopSourcesCache) SetSources([]Source) {}
