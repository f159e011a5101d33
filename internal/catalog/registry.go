package catalog

import "storefront/internal/domain"

// order is the display order of the section picker.
var order = []domain.SectionType{
	domain.SectionAnnouncementBar,
	domain.SectionHeader,
	domain.SectionImageBanner,
	domain.SectionSlideshow,
	domain.SectionRichText,
	domain.SectionImageWithText,
	domain.SectionFeaturedCollection,
	domain.SectionCollectionList,
	domain.SectionMulticolumn,
	domain.SectionFAQ,
	domain.SectionTestimonials,
	domain.SectionNewsletter,
	domain.SectionVideo,
	domain.SectionContactForm,
	domain.SectionRoomGallery,
	domain.SectionRoomDetails,
	domain.SectionRoomAmenities,
	domain.SectionRoomBooking,
	domain.SectionCartDrawer,
	domain.SectionFooter,
}

var registry = map[domain.SectionType]entry{
	domain.SectionAnnouncementBar: {
		name:        "Announcement bar",
		description: "Thin bar above the header for promotions and notices",
		category:    CategoryHeader,
		wireName:    "AnnouncementBar",
		singleton:   true,
		hidden:      true,
		settings: func(IDProvider) any {
			return AnnouncementBarSettings{
				Text:            "Free shipping on orders over $50",
				BackgroundColor: "#111111",
				TextColor:       "#ffffff",
			}
		},
		variant: func() any { return &AnnouncementBarSettings{} },
	},
	domain.SectionHeader: {
		name:        "Header",
		description: "Logo, navigation menu, search and cart",
		category:    CategoryHeader,
		wireName:    "Header",
		singleton:   true,
		settings: func(IDProvider) any {
			return HeaderSettings{LogoWidth: 120, MenuHandle: "main-menu", Sticky: true, ShowSearch: true, ShowCart: true}
		},
		variant: func() any { return &HeaderSettings{} },
	},
	domain.SectionFooter: {
		name:        "Footer",
		description: "Footer menu, newsletter signup and social links",
		category:    CategoryFooter,
		wireName:    "Footer",
		singleton:   true,
		settings: func(IDProvider) any {
			return FooterSettings{MenuHandle: "footer", ShowNewsletter: true, ShowSocial: true}
		},
		variant: func() any { return &FooterSettings{} },
	},
	domain.SectionCartDrawer: {
		name:        "Cart drawer",
		description: "Slide-out cart shown when a product is added",
		category:    CategoryAside,
		wireName:    "CartDrawer",
		singleton:   true,
		hidden:      true,
		settings: func(IDProvider) any {
			return CartDrawerSettings{ShowNote: true, EmptyMessage: "Your cart is empty"}
		},
		variant: func() any { return &CartDrawerSettings{} },
	},
	domain.SectionImageBanner: {
		name:        "Image banner",
		description: "Full-width image with heading and call to action",
		category:    CategoryTemplate,
		wireName:    "ImageBanner",
		settings: func(IDProvider) any {
			return ImageBannerSettings{
				Heading:        "Image banner",
				Subheading:     "Give customers details about the banner image",
				ButtonLabel:    "Shop now",
				ButtonLink:     "/collections/all",
				Height:         "medium",
				OverlayOpacity: 20,
				TextAlignment:  "center",
			}
		},
		variant: func() any { return &ImageBannerSettings{} },
	},
	domain.SectionSlideshow: {
		name:        "Slideshow",
		description: "Rotating image slides",
		category:    CategoryTemplate,
		wireName:    "Slideshow",
		settings: func(ids IDProvider) any {
			return SlideshowSettings{
				Autoplay: true,
				Interval: 5,
				Blocks: []Slide{
					{ID: ids.NewID("slide"), Heading: "Slide 1", ButtonLabel: "Shop now"},
					{ID: ids.NewID("slide"), Heading: "Slide 2", ButtonLabel: "Learn more"},
				},
			}
		},
		variant: func() any { return &SlideshowSettings{} },
	},
	domain.SectionRichText: {
		name:        "Rich text",
		description: "Heading and paragraph",
		category:    CategoryTemplate,
		wireName:    "RichText",
		settings: func(IDProvider) any {
			return RichTextSettings{Heading: "Talk about your brand", Text: "Share information about your brand with your customers.", Alignment: "center"}
		},
		variant: func() any { return &RichTextSettings{} },
	},
	domain.SectionImageWithText: {
		name:        "Image with text",
		description: "Image next to a text block",
		category:    CategoryTemplate,
		wireName:    "ImageWithText",
		settings: func(IDProvider) any {
			return ImageWithTextSettings{Heading: "Image with text", Text: "Pair text with an image to focus on your chosen product.", ImagePosition: "left", ButtonLabel: "Read more"}
		},
		variant: func() any { return &ImageWithTextSettings{} },
	},
	domain.SectionFeaturedCollection: {
		name:        "Featured collection",
		description: "Products from one collection",
		category:    CategoryTemplate,
		wireName:    "FeaturedCollection",
		settings: func(IDProvider) any {
			return FeaturedCollectionSettings{Heading: "Featured collection", ProductsToShow: 4, Columns: 4, ShowViewAll: true}
		},
		variant: func() any { return &FeaturedCollectionSettings{} },
	},
	domain.SectionCollectionList: {
		name:        "Collection list",
		description: "Grid of collections",
		category:    CategoryTemplate,
		wireName:    "CollectionList",
		settings: func(IDProvider) any {
			return CollectionListSettings{Heading: "Collections", Columns: 3, Handles: []string{}}
		},
		variant: func() any { return &CollectionListSettings{} },
	},
	domain.SectionMulticolumn: {
		name:        "Multicolumn",
		description: "Columns of text with optional images",
		category:    CategoryTemplate,
		wireName:    "Multicolumn",
		settings: func(ids IDProvider) any {
			cols := make([]Column, 3)
			for i := range cols {
				cols[i] = Column{ID: ids.NewID("column"), Title: "Column", Text: "Pair text with an image."}
			}
			return MulticolumnSettings{Heading: "Multicolumn", Columns: 3, Blocks: cols}
		},
		variant: func() any { return &MulticolumnSettings{} },
	},
	domain.SectionFAQ: {
		name:        "FAQ",
		description: "Collapsible questions and answers",
		category:    CategoryTemplate,
		wireName:    "FAQ",
		settings: func(ids IDProvider) any {
			return FAQSettings{
				Heading: "Frequently asked questions",
				Blocks: []FAQItem{
					{ID: ids.NewID("question"), Question: "What is your return policy?", Answer: "Returns are accepted within 30 days."},
					{ID: ids.NewID("question"), Question: "When is check-in?", Answer: "Check-in starts at 3 PM."},
				},
			}
		},
		variant: func() any { return &FAQSettings{} },
	},
	domain.SectionTestimonials: {
		name:        "Testimonials",
		description: "Guest and customer reviews",
		category:    CategoryTemplate,
		wireName:    "Testimonials",
		settings: func(ids IDProvider) any {
			return TestimonialsSettings{
				Heading: "What our guests say",
				Blocks: []Testimonial{
					{ID: ids.NewID("testimonial"), Quote: "A wonderful stay.", Author: "Guest", Rating: 5},
					{ID: ids.NewID("testimonial"), Quote: "Great service.", Author: "Customer", Rating: 5},
				},
			}
		},
		variant: func() any { return &TestimonialsSettings{} },
	},
	domain.SectionNewsletter: {
		name:        "Newsletter",
		description: "Email signup form",
		category:    CategoryTemplate,
		wireName:    "Newsletter",
		settings: func(IDProvider) any {
			return NewsletterSettings{Heading: "Subscribe to our emails", ButtonLabel: "Subscribe", SuccessMessage: "Thanks for subscribing"}
		},
		variant: func() any { return &NewsletterSettings{} },
	},
	domain.SectionVideo: {
		name:        "Video",
		description: "Embedded video with cover image",
		category:    CategoryTemplate,
		wireName:    "Video",
		settings: func(IDProvider) any {
			return VideoSettings{Heading: "Video"}
		},
		variant: func() any { return &VideoSettings{} },
	},
	domain.SectionContactForm: {
		name:        "Contact form",
		description: "Name, email and message form",
		category:    CategoryTemplate,
		wireName:    "ContactForm",
		settings: func(IDProvider) any {
			return ContactFormSettings{Heading: "Contact us", SubmitLabel: "Send"}
		},
		variant: func() any { return &ContactFormSettings{} },
	},
	domain.SectionRoomGallery: {
		name:        "Room gallery",
		description: "Photo gallery of a room",
		category:    CategoryTemplate,
		wireName:    "RoomGallery",
		settings: func(ids IDProvider) any {
			imgs := make([]GalleryImage, 4)
			for i := range imgs {
				imgs[i] = GalleryImage{ID: ids.NewID("image")}
			}
			return RoomGallerySettings{Heading: "Gallery", Layout: "grid", Blocks: imgs}
		},
		variant: func() any { return &RoomGallerySettings{} },
	},
	domain.SectionRoomDetails: {
		name:        "Room details",
		description: "Capacity, bed type and nightly price",
		category:    CategoryTemplate,
		wireName:    "RoomDetails",
		settings: func(IDProvider) any {
			return RoomDetailsSettings{ShowCapacity: true, ShowPrice: true, ShowBedType: true}
		},
		variant: func() any { return &RoomDetailsSettings{} },
	},
	domain.SectionRoomAmenities: {
		name:        "Room amenities",
		description: "List of amenities with icons",
		category:    CategoryTemplate,
		wireName:    "RoomAmenities",
		settings: func(ids IDProvider) any {
			return RoomAmenitiesSettings{
				Heading: "Amenities",
				Blocks: []Amenity{
					{ID: ids.NewID("amenity"), Icon: "wifi", Label: "Free Wi-Fi"},
					{ID: ids.NewID("amenity"), Icon: "coffee", Label: "Breakfast included"},
					{ID: ids.NewID("amenity"), Icon: "snowflake", Label: "Air conditioning"},
				},
			}
		},
		variant: func() any { return &RoomAmenitiesSettings{} },
	},
	domain.SectionRoomBooking: {
		name:        "Room booking",
		description: "Date picker and reserve button",
		category:    CategoryTemplate,
		wireName:    "RoomBooking",
		settings: func(IDProvider) any {
			return RoomBookingSettings{Heading: "Book your stay", ButtonLabel: "Reserve", MinNights: 1, ShowCalendar: true}
		},
		variant: func() any { return &RoomBookingSettings{} },
	},
}
