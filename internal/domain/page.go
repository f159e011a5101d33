package domain

import (
	"errors"
	"fmt"
	"strings"
)

// PageType classifies the storefront page being edited.
type PageType string

const (
	PageHome           PageType = "HOME"
	PageProduct        PageType = "PRODUCT"
	PageCart           PageType = "CART"
	PageCheckout       PageType = "CHECKOUT"
	PageCollection     PageType = "COLLECTION"
	PageAllCollections PageType = "ALL_COLLECTIONS"
	PageAllProducts    PageType = "ALL_PRODUCTS"
	PageCustom         PageType = "CUSTOM"
)

var pageTypes = []PageType{
	PageHome, PageProduct, PageCart, PageCheckout,
	PageCollection, PageAllCollections, PageAllProducts, PageCustom,
}

var ErrUnknownPageType = errors.New("unknown page type")

// ParsePageType is case-insensitive and accepts dashes for underscores.
func ParsePageType(s string) (PageType, error) {
	norm := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), "-", "_"))
	for _, pt := range pageTypes {
		if string(pt) == norm {
			return pt, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPageType, s)
}

// AllowsSection reports whether a section type may live in the template of
// a page of this type.
func (p PageType) AllowsSection(t SectionType) bool {
	if t.IsRoomType() {
		return p == PageCustom
	}
	return true
}
