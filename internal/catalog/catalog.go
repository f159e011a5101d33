package catalog

import (
	"encoding/json"
	"errors"
	"fmt"

	"storefront/internal/domain"
)

// Category decides which group a section type belongs to when pages are
// loaded from the backend.
type Category string

const (
	CategoryHeader   Category = "header"
	CategoryAside    Category = "aside"
	CategoryTemplate Category = "template"
	CategoryFooter   Category = "footer"
)

var ErrUnknownSectionType = errors.New("unknown section type")

// Defaults is what a new section is built from.
type Defaults struct {
	Name        string
	Description string
	Category    Category
	Visible     bool
	Settings    domain.Settings
}

// Info describes a section type for pickers and agent tools.
type Info struct {
	Type        domain.SectionType `json:"type"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Category    Category           `json:"category"`
	WireName    string             `json:"wireName"`
	Singleton   bool               `json:"singleton"`
	PageGated   bool               `json:"pageGated"`
}

type entry struct {
	name        string
	description string
	category    Category
	wireName    string
	singleton   bool
	hidden      bool
	settings    func(ids IDProvider) any
	variant     func() any
}

// Catalog is the static registry of section types. It is stateless apart
// from the id provider used for generated sub-blocks.
type Catalog struct {
	ids     IDProvider
	entries map[domain.SectionType]entry
}

// New creates a Catalog. A nil provider falls back to UUIDProvider.
func New(ids IDProvider) *Catalog {
	if ids == nil {
		ids = UUIDProvider{}
	}
	return &Catalog{ids: ids, entries: registry}
}

// IDs returns the provider used for section and sub-block identifiers.
func (c *Catalog) IDs() IDProvider {
	return c.ids
}

// DefaultsFor returns freshly generated defaults for t. Every call builds a
// new settings bag; nothing is shared between sections.
func (c *Catalog) DefaultsFor(t domain.SectionType) (Defaults, error) {
	e, ok := c.entries[t]
	if !ok {
		return Defaults{}, fmt.Errorf("%w: %q", ErrUnknownSectionType, t)
	}
	settings, err := toSettings(e.settings(c.ids))
	if err != nil {
		return Defaults{}, fmt.Errorf("build defaults for %s: %w", t, err)
	}
	return Defaults{
		Name:        e.name,
		Description: e.description,
		Category:    e.category,
		Visible:     !e.hidden,
		Settings:    settings,
	}, nil
}

// NewSectionID issues an id for a new section of type t.
func (c *Catalog) NewSectionID(t domain.SectionType) string {
	return c.ids.NewID(string(t))
}

// Lookup returns the description of t.
func (c *Catalog) Lookup(t domain.SectionType) (Info, bool) {
	e, ok := c.entries[t]
	if !ok {
		return Info{}, false
	}
	return info(t, e), true
}

// Category returns the category of t.
func (c *Catalog) Category(t domain.SectionType) (Category, bool) {
	e, ok := c.entries[t]
	return e.category, ok
}

// WireName maps t through the display-casing table used by the backend.
// Unknown types are sent as-is.
func (c *Catalog) WireName(t domain.SectionType) string {
	if e, ok := c.entries[t]; ok {
		return e.wireName
	}
	return string(t)
}

// Resolve maps either a type identifier ("image_banner") or its wire name
// ("ImageBanner") back to a known section type.
func (c *Catalog) Resolve(name string) (domain.SectionType, bool) {
	if _, ok := c.entries[domain.SectionType(name)]; ok {
		return domain.SectionType(name), true
	}
	for t, e := range c.entries {
		if e.wireName == name {
			return t, true
		}
	}
	return "", false
}

// IsSingleton reports whether at most one section of type t may exist.
func (c *Catalog) IsSingleton(t domain.SectionType) bool {
	return c.entries[t].singleton
}

// Types lists every known section type in catalog order.
func (c *Catalog) Types() []Info {
	out := make([]Info, 0, len(order))
	for _, t := range order {
		out = append(out, info(t, c.entries[t]))
	}
	return out
}

// DecodeSettings decodes a settings bag into the typed variant of t, e.g.
// *FAQSettings for faq. Unknown keys in the bag are ignored by the decode
// and left in place.
func (c *Catalog) DecodeSettings(t domain.SectionType, settings domain.Settings) (any, error) {
	e, ok := c.entries[t]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSectionType, t)
	}
	data, err := json.Marshal(settings)
	if err != nil {
		return nil, fmt.Errorf("encode settings: %w", err)
	}
	v := e.variant()
	if err := json.Unmarshal(data, v); err != nil {
		return nil, fmt.Errorf("decode %s settings: %w", t, err)
	}
	return v, nil
}

func info(t domain.SectionType, e entry) Info {
	return Info{
		Type:        t,
		Name:        e.name,
		Description: e.description,
		Category:    e.category,
		WireName:    e.wireName,
		Singleton:   e.singleton,
		PageGated:   t.IsRoomType(),
	}
}

func toSettings(v any) (domain.Settings, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	out := domain.Settings{}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}
