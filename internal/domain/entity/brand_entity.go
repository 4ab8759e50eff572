package entity

import "time"

const DefaultBrandLogo = "🏛️"

// Brand is a vehicle manufacturer.
// Founded and FoundedYear are a legacy pair kept in sync by Normalize.
type Brand struct {
	ID          string
	Name        string
	Logo        string
	Description string
	Founded     int
	FoundedYear int
	Country     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Normalize fills defaults and synchronizes Founded/FoundedYear. It is idempotent.
func (b *Brand) Normalize() {
	if b.Founded != 0 && b.FoundedYear == 0 {
		b.FoundedYear = b.Founded
	}
	if b.FoundedYear != 0 && b.Founded == 0 {
		b.Founded = b.FoundedYear
	}
	if b.Logo == "" {
		b.Logo = DefaultBrandLogo
	}
}

type BrandView struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Logo        string    `json:"logo"`
	Description string    `json:"description"`
	Founded     int       `json:"founded"`
	FoundedYear int       `json:"foundedYear"`
	Country     string    `json:"country"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (b *Brand) ToView() BrandView {
	return BrandView{
		ID:          b.ID,
		Name:        b.Name,
		Logo:        b.Logo,
		Description: b.Description,
		Founded:     b.Founded,
		FoundedYear: b.FoundedYear,
		Country:     b.Country,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

// BrandRef is the shallow projection embedded in vehicle responses.
type BrandRef struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Logo        string `json:"logo"`
	Description string `json:"description,omitempty"`
}

func (b *Brand) Ref() *BrandRef {
	return &BrandRef{ID: b.ID, Name: b.Name, Logo: b.Logo, Description: b.Description}
}
