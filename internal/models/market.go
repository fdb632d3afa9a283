package models

// ProductType classifies a digital good in the marketplace.
type ProductType string

const (
	// ProductTypeCourse is a video course.
	ProductTypeCourse ProductType = "course"
	// ProductTypeEbook is a downloadable book.
	ProductTypeEbook ProductType = "ebook"
	// ProductTypeAsset is a downloadable asset pack.
	ProductTypeAsset ProductType = "asset"
	// ProductTypeAudio is audio content.
	ProductTypeAudio ProductType = "audio"
)

// Product is a digital good sold for coins in the marketplace.
type Product struct {
	ID     string      `json:"id"`
	Title  string      `json:"title"`
	Author string      `json:"author"`
	Type   ProductType `json:"type"`
	Price  int         `json:"price"`
	Rating float64     `json:"rating"`
	Image  string      `json:"image"`
}

// CoinPackage is a purchasable bundle of coins shown in the wallet.
type CoinPackage struct {
	Amount int    `json:"amount"`
	Price  string `json:"price"`
	Bonus  string `json:"bonus,omitempty"`
}
