package service_test

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"storefront/internal/catalog"
	"storefront/internal/domain"
	"storefront/internal/editor"
	"storefront/internal/logging"
	"storefront/internal/remote"
	"storefront/internal/secret"
	"storefront/internal/service"
	"storefront/internal/storage"
)

// fakeRemote records calls instead of talking HTTP.
type fakeRemote struct {
	mu        sync.Mutex
	disabled  bool
	updateErr error
	fetch     []remote.WireSection
	fetchErr  error
	onUpdate  func()

	updates [][]remote.WireSection
	tokens  []string
	fetches int
}

func (f *fakeRemote) Enabled() bool { return !f.disabled }

func (f *fakeRemote) UpdatePageSections(_ context.Context, _ string, token string, sections []remote.WireSection) error {
	if f.onUpdate != nil {
		f.onUpdate()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates = append(f.updates, sections)
	f.tokens = append(f.tokens, token)
	return f.updateErr
}

func (f *fakeRemote) FetchPageSections(context.Context, string, string) ([]remote.WireSection, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetches++
	return f.fetch, f.fetchErr
}

func (f *fakeRemote) updateCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.updates)
}

// countingCache wraps a SectionCache and counts writes.
type countingCache struct {
	domain.SectionCache
	puts   int
	failed bool
}

func (c *countingCache) PutSections(key string, sections []domain.Section) error {
	c.puts++
	if c.failed {
		return errors.New("disk full")
	}
	return c.SectionCache.PutSections(key, sections)
}

type fixture struct {
	db      *storage.DB
	store   *editor.Store
	history *editor.History
	cache   *countingCache
	remote  *fakeRemote
	secrets *secret.MemoryStore
	gateway *service.Gateway
	emitter *service.MockEmitter
	svc     *service.EditorService
}

func newFixture(t *testing.T, mode service.KeyMode) *fixture {
	t.Helper()
	dir := t.TempDir()
	db, err := storage.New(filepath.Join(dir, "builder.db"), dir)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return newFixtureOn(t, db, mode)
}

func newFixtureOn(t *testing.T, db *storage.DB, mode service.KeyMode) *fixture {
	t.Helper()
	log := logging.Discard()

	f := &fixture{
		db:      db,
		store:   editor.NewStore(catalog.New(catalog.NewCounterProvider())),
		cache:   &countingCache{SectionCache: storage.NewSectionCacheStore(db)},
		remote:  &fakeRemote{},
		secrets: secret.NewMemoryStore(),
		emitter: &service.MockEmitter{},
	}
	require.NoError(t, f.secrets.Set("api_token", []byte("tok")))
	f.history = editor.NewHistory(f.store)
	f.gateway = service.NewGateway(service.GatewayConfig{
		Store:    f.store,
		Cache:    f.cache,
		Remote:   f.remote,
		Secrets:  f.secrets,
		TokenKey: "api_token",
		KeyMode:  mode,
		Log:      log,
	})
	f.svc = service.NewEditorService(service.EditorServiceConfig{
		Store:   f.store,
		History: f.history,
		Gateway: f.gateway,
		States:  storage.NewEditorStateStore(db),
		Emitter: f.emitter,
		Log:     log,
	})
	return f
}

// dirtyHomePage selects page-1 as HOME and adds a rich text section.
func (f *fixture) dirtyHomePage(t *testing.T) domain.Section {
	t.Helper()
	f.store.SelectPage("page-1", domain.PageHome)
	sec, err := f.store.AddSection(domain.GroupTemplate, domain.SectionRichText)
	require.NoError(t, err)
	return sec
}

func sectionTypes(sections []domain.Section) []domain.SectionType {
	out := make([]domain.SectionType, len(sections))
	for i, s := range sections {
		out[i] = s.Type
	}
	return out
}
