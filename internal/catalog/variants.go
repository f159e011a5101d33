package catalog

// Typed settings variants, one per section type. Defaults are built from
// these structs and flattened into a domain.Settings bag; DecodeSettings goes
// the other way. Keys not declared here survive in the bag untouched.

type AnnouncementBarSettings struct {
	Text            string `json:"text"`
	Link            string `json:"link"`
	BackgroundColor string `json:"backgroundColor"`
	TextColor       string `json:"textColor"`
}

type HeaderSettings struct {
	LogoURL    string `json:"logoUrl"`
	LogoWidth  int    `json:"logoWidth"`
	MenuHandle string `json:"menuHandle"`
	Sticky     bool   `json:"sticky"`
	ShowSearch bool   `json:"showSearch"`
	ShowCart   bool   `json:"showCart"`
}

type FooterSettings struct {
	MenuHandle     string `json:"menuHandle"`
	ShowNewsletter bool   `json:"showNewsletter"`
	ShowSocial     bool   `json:"showSocial"`
	CopyrightText  string `json:"copyrightText"`
}

type CartDrawerSettings struct {
	ShowNote     bool   `json:"showNote"`
	ShowUpsell   bool   `json:"showUpsell"`
	EmptyMessage string `json:"emptyMessage"`
}

type ImageBannerSettings struct {
	ImageURL       string `json:"imageUrl"`
	Heading        string `json:"heading"`
	Subheading     string `json:"subheading"`
	ButtonLabel    string `json:"buttonLabel"`
	ButtonLink     string `json:"buttonLink"`
	Height         string `json:"height"`
	OverlayOpacity int    `json:"overlayOpacity"`
	TextAlignment  string `json:"textAlignment"`
}

type Slide struct {
	ID          string `json:"id"`
	Heading     string `json:"heading"`
	Subheading  string `json:"subheading"`
	ImageURL    string `json:"imageUrl"`
	ButtonLabel string `json:"buttonLabel"`
	ButtonLink  string `json:"buttonLink"`
}

type SlideshowSettings struct {
	Autoplay bool    `json:"autoplay"`
	Interval int     `json:"interval"`
	Blocks   []Slide `json:"blocks"`
}

type RichTextSettings struct {
	Heading   string `json:"heading"`
	Text      string `json:"text"`
	Alignment string `json:"alignment"`
}

type ImageWithTextSettings struct {
	ImageURL      string `json:"imageUrl"`
	Heading       string `json:"heading"`
	Text          string `json:"text"`
	ImagePosition string `json:"imagePosition"`
	ButtonLabel   string `json:"buttonLabel"`
	ButtonLink    string `json:"buttonLink"`
}

type FeaturedCollectionSettings struct {
	Heading          string `json:"heading"`
	CollectionHandle string `json:"collectionHandle"`
	ProductsToShow   int    `json:"productsToShow"`
	Columns          int    `json:"columns"`
	ShowViewAll      bool   `json:"showViewAll"`
}

type CollectionListSettings struct {
	Heading string   `json:"heading"`
	Columns int      `json:"columns"`
	Handles []string `json:"handles"`
}

type Column struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Text      string `json:"text"`
	ImageURL  string `json:"imageUrl"`
	LinkLabel string `json:"linkLabel"`
	Link      string `json:"link"`
}

type MulticolumnSettings struct {
	Heading string   `json:"heading"`
	Columns int      `json:"columns"`
	Blocks  []Column `json:"blocks"`
}

type FAQItem struct {
	ID       string `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type FAQSettings struct {
	Heading string    `json:"heading"`
	Blocks  []FAQItem `json:"blocks"`
}

type Testimonial struct {
	ID     string `json:"id"`
	Quote  string `json:"quote"`
	Author string `json:"author"`
	Rating int    `json:"rating"`
}

type TestimonialsSettings struct {
	Heading string        `json:"heading"`
	Blocks  []Testimonial `json:"blocks"`
}

type NewsletterSettings struct {
	Heading        string `json:"heading"`
	Subheading     string `json:"subheading"`
	ButtonLabel    string `json:"buttonLabel"`
	SuccessMessage string `json:"successMessage"`
}

type VideoSettings struct {
	Heading       string `json:"heading"`
	VideoURL      string `json:"videoUrl"`
	CoverImageURL string `json:"coverImageUrl"`
	Autoplay      bool   `json:"autoplay"`
}

type ContactFormSettings struct {
	Heading     string `json:"heading"`
	SubmitLabel string `json:"submitLabel"`
	ShowPhone   bool   `json:"showPhone"`
}

type GalleryImage struct {
	ID       string `json:"id"`
	ImageURL string `json:"imageUrl"`
	Caption  string `json:"caption"`
}

type RoomGallerySettings struct {
	Heading string         `json:"heading"`
	Layout  string         `json:"layout"`
	Blocks  []GalleryImage `json:"blocks"`
}

type RoomDetailsSettings struct {
	RoomHandle   string `json:"roomHandle"`
	ShowCapacity bool   `json:"showCapacity"`
	ShowPrice    bool   `json:"showPrice"`
	ShowBedType  bool   `json:"showBedType"`
}

type Amenity struct {
	ID    string `json:"id"`
	Icon  string `json:"icon"`
	Label string `json:"label"`
}

type RoomAmenitiesSettings struct {
	Heading string    `json:"heading"`
	Blocks  []Amenity `json:"blocks"`
}

type RoomBookingSettings struct {
	Heading      string `json:"heading"`
	ButtonLabel  string `json:"buttonLabel"`
	MinNights    int    `json:"minNights"`
	ShowCalendar bool   `json:"showCalendar"`
}
