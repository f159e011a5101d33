package app

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"storefront/internal/catalog"
	"storefront/internal/config"
	"storefront/internal/domain"
	"storefront/internal/editor"
	"storefront/internal/remote"
	"storefront/internal/secret"
	"storefront/internal/service"
	"storefront/internal/storage"
)

// builder is the wiring shared by the desktop app and the standalone MCP
// server. Both open the same database, which is how they see each other's
// edits.
type builder struct {
	cfg config.Config
	log *logrus.Logger

	db        *storage.DB
	states    *storage.EditorStateStore
	approvals *storage.ApprovalStore
	cache     domain.SectionCache
	sqlCache  *storage.SectionCacheStore // nil with the files backend
	files     *storage.FileCache         // nil with the sqlite backend
	secrets   secret.SecretStore

	gateway *service.Gateway
	editor  *service.EditorService
}

func openBuilder(cfg config.Config, log *logrus.Logger, emitter service.EventEmitter) (*builder, error) {
	db, err := storage.New(cfg.DBPath, cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	b := &builder{
		cfg:       cfg,
		log:       log,
		db:        db,
		states:    storage.NewEditorStateStore(db),
		approvals: storage.NewApprovalStore(db.Conn()),
		secrets:   secret.NewSettingsStore(storage.NewSettingsStore(db)),
	}

	switch cfg.Cache.Backend {
	case config.CacheFiles:
		fc, err := storage.NewFileCache(cfg.Cache.Dir, log)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("open preview dir: %w", err)
		}
		b.files = fc
		b.cache = fc
	default:
		b.sqlCache = storage.NewSectionCacheStore(db)
		b.cache = b.sqlCache
	}

	store := editor.NewStore(catalog.New(catalog.UUIDProvider{}))
	history := editor.NewHistory(store, editor.WithLimit(cfg.Editor.HistoryLimit))

	b.gateway = service.NewGateway(service.GatewayConfig{
		Store:         store,
		Cache:         b.cache,
		Remote:        remote.New(cfg.Remote.BaseURL, cfg.Remote.Timeout),
		Secrets:       b.secrets,
		TokenKey:      cfg.Remote.TokenKey,
		FallbackToken: cfg.Remote.Token,
		KeyMode:       service.KeyMode(cfg.Cache.KeyMode),
		Log:           log,
	})
	b.editor = service.NewEditorService(service.EditorServiceConfig{
		Store:   store,
		History: history,
		Gateway: b.gateway,
		States:  b.states,
		Emitter: emitter,
		Log:     log,
	})
	return b, nil
}

// Close persists the editor state and closes the database.
func (b *builder) Close() error {
	err := b.editor.Close()
	if cerr := b.db.Close(); err == nil {
		err = cerr
	}
	return err
}
