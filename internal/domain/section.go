package domain

import (
	"errors"
	"fmt"
	"strings"
)

// SectionType identifies the kind of a section. The set is closed; the catalog
// holds defaults for every value listed here.
type SectionType string

const (
	SectionAnnouncementBar    SectionType = "announcement_bar"
	SectionHeader             SectionType = "header"
	SectionFooter             SectionType = "footer"
	SectionCartDrawer         SectionType = "cart_drawer"
	SectionImageBanner        SectionType = "image_banner"
	SectionSlideshow          SectionType = "slideshow"
	SectionRichText           SectionType = "rich_text"
	SectionImageWithText      SectionType = "image_with_text"
	SectionFeaturedCollection SectionType = "featured_collection"
	SectionCollectionList     SectionType = "collection_list"
	SectionMulticolumn        SectionType = "multicolumn"
	SectionFAQ                SectionType = "faq"
	SectionTestimonials       SectionType = "testimonials"
	SectionNewsletter         SectionType = "newsletter"
	SectionVideo              SectionType = "video"
	SectionContactForm        SectionType = "contact_form"
	SectionRoomGallery        SectionType = "room_gallery"
	SectionRoomDetails        SectionType = "room_details"
	SectionRoomAmenities      SectionType = "room_amenities"
	SectionRoomBooking        SectionType = "room_booking"
)

// IsRoomType reports whether t belongs to the room_* family, which is only
// allowed on custom pages.
func (t SectionType) IsRoomType() bool {
	return strings.HasPrefix(string(t), "room_")
}

// Group names one of the four ordered containers of the editor tree.
type Group string

const (
	GroupHeader   Group = "headerGroup"
	GroupAside    Group = "asideGroup"
	GroupTemplate Group = "template"
	GroupFooter   Group = "footerGroup"
)

// AllGroups lists every group in display order.
var AllGroups = []Group{GroupHeader, GroupAside, GroupTemplate, GroupFooter}

var ErrUnknownGroup = errors.New("unknown section group")

// ParseGroup accepts the canonical group names plus the short forms
// "header", "aside" and "footer".
func ParseGroup(s string) (Group, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "headergroup", "header":
		return GroupHeader, nil
	case "asidegroup", "aside":
		return GroupAside, nil
	case "template":
		return GroupTemplate, nil
	case "footergroup", "footer":
		return GroupFooter, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownGroup, s)
}

// Section is one placeable unit on a page.
type Section struct {
	ID        string      `json:"id"`
	Type      SectionType `json:"type"`
	Name      string      `json:"name"`
	Visible   bool        `json:"visible"`
	Settings  Settings    `json:"settings"`
	SortOrder int         `json:"sortOrder"`
}

// Clone returns a deep copy of the section.
func (s Section) Clone() Section {
	s.Settings = s.Settings.Clone()
	return s
}

// CloneSections deep-copies a slice of sections. A nil input yields an empty,
// non-nil slice so JSON encodes it as [].
func CloneSections(in []Section) []Section {
	out := make([]Section, len(in))
	for i := range in {
		out[i] = in[i].Clone()
	}
	return out
}

// Reindex rewrites SortOrder to match slice position.
func Reindex(sections []Section) {
	for i := range sections {
		sections[i].SortOrder = i
	}
}
