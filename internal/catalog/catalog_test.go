package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/catalog"
	"storefront/internal/domain"
)

func TestDefaultsFor_EveryTypeInOrder(t *testing.T) {
	c := catalog.New(catalog.NewCounterProvider())
	types := c.Types()
	require.Len(t, types, 20)

	for _, info := range types {
		d, err := c.DefaultsFor(info.Type)
		require.NoError(t, err, info.Type)
		assert.NotEmpty(t, d.Name, info.Type)
		assert.NotNil(t, d.Settings, info.Type)
		assert.Equal(t, info.Category, d.Category, info.Type)
	}
}

func TestDefaultsFor_UnknownTypeFailsClosed(t *testing.T) {
	c := catalog.New(nil)
	_, err := c.DefaultsFor("marquee")
	assert.ErrorIs(t, err, catalog.ErrUnknownSectionType)
}

func TestDefaultsFor_FreshSettingsEachCall(t *testing.T) {
	c := catalog.New(catalog.NewCounterProvider())

	a, err := c.DefaultsFor(domain.SectionImageBanner)
	require.NoError(t, err)
	b, err := c.DefaultsFor(domain.SectionImageBanner)
	require.NoError(t, err)

	a.Settings["heading"] = "changed"
	assert.Equal(t, "Image banner", b.Settings["heading"])
}

func TestDefaultsFor_CompositeBlocksUseProvider(t *testing.T) {
	c := catalog.New(catalog.NewCounterProvider())

	d, err := c.DefaultsFor(domain.SectionFAQ)
	require.NoError(t, err)

	blocks, ok := d.Settings["blocks"].([]any)
	require.True(t, ok)
	require.Len(t, blocks, 2)
	assert.Equal(t, "question-1", blocks[0].(map[string]any)["id"])
	assert.Equal(t, "question-2", blocks[1].(map[string]any)["id"])

	// A second generation gets new ids.
	d2, err := c.DefaultsFor(domain.SectionFAQ)
	require.NoError(t, err)
	assert.Equal(t, "question-3", d2.Settings["blocks"].([]any)[0].(map[string]any)["id"])
}

func TestDefaults_Visibility(t *testing.T) {
	c := catalog.New(nil)
	tests := []struct {
		typ     domain.SectionType
		visible bool
	}{
		{domain.SectionAnnouncementBar, false},
		{domain.SectionCartDrawer, false},
		{domain.SectionHeader, true},
		{domain.SectionFooter, true},
		{domain.SectionSlideshow, true},
	}
	for _, tt := range tests {
		d, err := c.DefaultsFor(tt.typ)
		require.NoError(t, err)
		assert.Equal(t, tt.visible, d.Visible, tt.typ)
	}
}

func TestWireName(t *testing.T) {
	c := catalog.New(nil)
	assert.Equal(t, "ImageBanner", c.WireName(domain.SectionImageBanner))
	assert.Equal(t, "FAQ", c.WireName(domain.SectionFAQ))
	assert.Equal(t, "RoomGallery", c.WireName(domain.SectionRoomGallery))
	assert.Equal(t, "mystery", c.WireName("mystery"))
}

func TestCategoriesAndSingletons(t *testing.T) {
	c := catalog.New(nil)

	cat, ok := c.Category(domain.SectionCartDrawer)
	require.True(t, ok)
	assert.Equal(t, catalog.CategoryAside, cat)

	_, ok = c.Category("mystery")
	assert.False(t, ok)

	for _, st := range []domain.SectionType{
		domain.SectionHeader, domain.SectionFooter,
		domain.SectionCartDrawer, domain.SectionAnnouncementBar,
	} {
		assert.True(t, c.IsSingleton(st), st)
	}
	assert.False(t, c.IsSingleton(domain.SectionSlideshow))

	info, ok := c.Lookup(domain.SectionRoomBooking)
	require.True(t, ok)
	assert.True(t, info.PageGated)
}

func TestDecodeSettings_TypedVariantKeepsUnknownKeys(t *testing.T) {
	c := catalog.New(catalog.NewCounterProvider())
	settings := domain.Settings{
		"heading":      "Questions",
		"serverOnly":   true,
		"blocks":       []any{map[string]any{"id": "q1", "question": "Why?", "answer": "Because."}},
		"unusedNumber": 42,
	}

	v, err := c.DecodeSettings(domain.SectionFAQ, settings)
	require.NoError(t, err)

	faq, ok := v.(*catalog.FAQSettings)
	require.True(t, ok)
	assert.Equal(t, "Questions", faq.Heading)
	require.Len(t, faq.Blocks, 1)
	assert.Equal(t, "Because.", faq.Blocks[0].Answer)
	assert.Equal(t, true, settings["serverOnly"])

	_, err = c.DecodeSettings("mystery", settings)
	assert.ErrorIs(t, err, catalog.ErrUnknownSectionType)
}

func TestCounterProvider(t *testing.T) {
	p := catalog.NewCounterProvider()
	assert.Equal(t, "faq-1", p.NewID("faq"))
	assert.Equal(t, "2", p.NewID(""))
}

func TestUUIDProvider(t *testing.T) {
	var p catalog.UUIDProvider
	a, b := p.NewID("slideshow"), p.NewID("slideshow")
	assert.NotEqual(t, a, b)
	assert.Contains(t, a, "slideshow-")
}

func TestResolve(t *testing.T) {
	c := catalog.New(catalog.NewCounterProvider())

	got, ok := c.Resolve("image_banner")
	require.True(t, ok)
	assert.Equal(t, domain.SectionImageBanner, got)

	got, ok = c.Resolve("FAQ")
	require.True(t, ok)
	assert.Equal(t, domain.SectionFAQ, got)

	_, ok = c.Resolve("Carousel")
	assert.False(t, ok)
}

func TestResolve_AcceptsTypeOrWireName(t *testing.T) {
	c := catalog.New(nil)

	got, ok := c.Resolve("image_banner")
	require.True(t, ok)
	assert.Equal(t, domain.SectionImageBanner, got)

	got, ok = c.Resolve("FAQ")
	require.True(t, ok)
	assert.Equal(t, domain.SectionFAQ, got)

	_, ok = c.Resolve("Marquee")
	assert.False(t, ok)
}
