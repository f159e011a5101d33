package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"storefront/internal/catalog"
	"storefront/internal/domain"
	"storefront/internal/editor"
	"storefront/internal/metrics"
	"storefront/internal/remote"
	"storefront/internal/secret"
)

// ─────────────────────────────────────────────────────────────
// Persistence Gateway: local cache first, remote best effort
// ─────────────────────────────────────────────────────────────

// CacheKeyPrefix prefixes every preview cache entry.
const CacheKeyPrefix = "page_sections_"

// KeyMode selects what a preview cache entry is keyed by.
type KeyMode string

const (
	// KeyByPageID gives every page its own entry.
	KeyByPageID KeyMode = "page_id"
	// KeyByPageType shares one entry per page type, so two pages of the
	// same type overwrite each other.
	KeyByPageType KeyMode = "page_type"
)

// RemoteSections is the part of remote.Client the gateway and the page
// loader use.
type RemoteSections interface {
	Enabled() bool
	UpdatePageSections(ctx context.Context, pageID, token string, sections []remote.WireSection) error
	FetchPageSections(ctx context.Context, pageID, token string) ([]remote.WireSection, error)
}

// RemoteStatus is the outcome of the remote leg of a save.
type RemoteStatus string

const (
	RemoteOK              RemoteStatus = "ok"
	RemoteFailed          RemoteStatus = "error"
	RemoteDisabled        RemoteStatus = "disabled"
	RemoteUnauthenticated RemoteStatus = "unauthenticated"
)

type RemoteOutcome struct {
	Status RemoteStatus `json:"status"`
	Error  string       `json:"error,omitempty"`
}

// SaveResult reports both legs of a save. Skipped is true when there was
// nothing to save; the other fields are then zero.
type SaveResult struct {
	Skipped  bool          `json:"skipped"`
	Key      string        `json:"key,omitempty"`
	Local    bool          `json:"local"`
	Sections int           `json:"sections"`
	Remote   RemoteOutcome `json:"remote"`
}

// GatewayConfig wires a Gateway.
type GatewayConfig struct {
	Store   *editor.Store
	Cache   domain.SectionCache
	Remote  RemoteSections
	Secrets secret.SecretStore
	// TokenKey is the secret holding the bearer token.
	TokenKey string
	// FallbackToken is used when the secret store has no token.
	FallbackToken string
	KeyMode       KeyMode
	Log           logrus.FieldLogger
}

// Gateway flushes the section tree to the preview cache and the storefront
// API.
type Gateway struct {
	store         *editor.Store
	cache         domain.SectionCache
	remote        RemoteSections
	secrets       secret.SecretStore
	tokenKey      string
	fallbackToken string
	keyMode       KeyMode
	log           logrus.FieldLogger
}

func NewGateway(cfg GatewayConfig) *Gateway {
	log := cfg.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	mode := cfg.KeyMode
	if mode == "" {
		mode = KeyByPageID
	}
	return &Gateway{
		store:         cfg.Store,
		cache:         cfg.Cache,
		remote:        cfg.Remote,
		secrets:       cfg.Secrets,
		tokenKey:      cfg.TokenKey,
		fallbackToken: cfg.FallbackToken,
		keyMode:       mode,
		log:           log.WithField("component", "gateway"),
	}
}

// CacheKey returns the preview cache key for the page selected in tree.
func (g *Gateway) CacheKey(tree domain.EditorTree) string {
	if g.keyMode == KeyByPageType {
		return CacheKeyPrefix + strings.ToLower(string(tree.SelectedPageType))
	}
	return CacheKeyPrefix + tree.SelectedPageID
}

// SavePage writes the preview list to the local cache, then pushes the same
// list to the storefront API. It does nothing unless the tree is dirty and
// a page is selected.
//
// The returned error is only ever about the local leg; in that case the tree
// stays dirty. Remote failures are logged, counted and reported in the
// result, and the tree is considered saved regardless.
func (g *Gateway) SavePage(ctx context.Context) (SaveResult, error) {
	ticket, ok := g.store.BeginSave()
	if !ok {
		return SaveResult{Skipped: true}, nil
	}
	tree := ticket.Tree
	preview := BuildPreview(tree)
	res := SaveResult{Key: g.CacheKey(tree), Sections: len(preview)}

	if err := g.cache.PutSections(res.Key, preview); err != nil {
		g.store.FinishSave(ticket, false)
		metrics.RecordSave(metrics.LegLocal, "error")
		return res, fmt.Errorf("write preview cache %s: %w", res.Key, err)
	}
	res.Local = true
	metrics.RecordSave(metrics.LegLocal, "ok")

	res.Remote = g.pushRemote(ctx, tree.SelectedPageID, WireSections(g.store.Catalog(), preview))
	metrics.RecordSave(metrics.LegRemote, string(res.Remote.Status))

	g.store.FinishSave(ticket, true)
	return res, nil
}

func (g *Gateway) pushRemote(ctx context.Context, pageID string, wire []remote.WireSection) RemoteOutcome {
	log := g.log.WithField("page", pageID)
	if g.remote == nil || !g.remote.Enabled() {
		log.Debug("remote sync disabled")
		return RemoteOutcome{Status: RemoteDisabled}
	}
	token := g.Token()
	if token == "" {
		log.Warn("no API token, remote sync skipped")
		return RemoteOutcome{Status: RemoteUnauthenticated}
	}

	start := time.Now()
	err := g.remote.UpdatePageSections(ctx, pageID, token, wire)
	metrics.ObserveRemote(time.Since(start))
	if err != nil {
		var se *remote.StatusError
		if errors.As(err, &se) {
			log = log.WithField("status", se.StatusCode)
		}
		log.WithError(err).Error("remote sync failed")
		return RemoteOutcome{Status: RemoteFailed, Error: err.Error()}
	}
	log.WithField("sections", len(wire)).Info("page sections synced")
	return RemoteOutcome{Status: RemoteOK}
}

// Token returns the bearer token for the storefront API, or "".
func (g *Gateway) Token() string {
	if g.secrets != nil && g.tokenKey != "" {
		v, err := g.secrets.Get(g.tokenKey)
		if err != nil {
			g.log.WithError(err).Warn("read API token")
		} else if len(v) > 0 {
			return string(v)
		}
	}
	return g.fallbackToken
}

// Cached returns the preview list last written for the page selected in
// tree, or nil.
func (g *Gateway) Cached(tree domain.EditorTree) ([]domain.Section, error) {
	return g.cache.GetSections(g.CacheKey(tree))
}

// BuildPreview returns the visible image banners of the header group
// followed by the whole template, renumbered over the combined list.
func BuildPreview(tree domain.EditorTree) []domain.Section {
	out := make([]domain.Section, 0, len(tree.HeaderGroup)+len(tree.Template))
	for _, sec := range tree.HeaderGroup {
		if sec.Type == domain.SectionImageBanner && sec.Visible {
			out = append(out, sec.Clone())
		}
	}
	for _, sec := range tree.Template {
		out = append(out, sec.Clone())
	}
	domain.Reindex(out)
	return out
}

// WireSections converts a preview list to the API format. Config duplicates
// Settings.
func WireSections(cat *catalog.Catalog, sections []domain.Section) []remote.WireSection {
	out := make([]remote.WireSection, 0, len(sections))
	for _, sec := range sections {
		settings := sec.Settings.Clone()
		out = append(out, remote.WireSection{
			Type:        string(sec.Type),
			SectionType: cat.WireName(sec.Type),
			SortOrder:   sec.SortOrder,
			Visible:     sec.Visible,
			Name:        sec.Name,
			Settings:    settings,
			Config:      settings.Clone(),
		})
	}
	return out
}

// FromWire converts sections fetched from the API. Records whose type the
// catalog does not know are dropped.
func FromWire(cat *catalog.Catalog, wire []remote.WireSection) []domain.Section {
	out := make([]domain.Section, 0, len(wire))
	for _, w := range wire {
		name := w.Type
		if name == "" {
			name = w.SectionType
		}
		t, ok := cat.Resolve(name)
		if !ok {
			continue
		}
		settings := domain.Settings(w.Settings)
		if len(settings) == 0 {
			settings = domain.Settings(w.Config)
		}
		out = append(out, domain.Section{
			ID:        w.ID,
			Type:      t,
			Name:      w.Name,
			Visible:   w.Visible,
			Settings:  settings.Clone(),
			SortOrder: w.SortOrder,
		})
	}
	return out
}
