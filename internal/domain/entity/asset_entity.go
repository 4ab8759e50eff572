package entity

import "time"

const DefaultAssetImage = "🎨"

type AssetCategory string

const (
	CategoryPaint       AssetCategory = "paint"
	CategoryWheels      AssetCategory = "wheels"
	CategoryInterior    AssetCategory = "interior"
	CategoryExterior    AssetCategory = "exterior"
	CategoryPerformance AssetCategory = "performance"
)

// AssetCategories lists the valid categories in display order.
var AssetCategories = []AssetCategory{
	CategoryPaint, CategoryWheels, CategoryInterior, CategoryExterior, CategoryPerformance,
}

func (c AssetCategory) Valid() bool {
	for _, v := range AssetCategories {
		if c == v {
			return true
		}
	}
	return false
}

// CustomizationAsset is a purchasable modification.
// Compatibility holds the ids of vehicles it fits.
type CustomizationAsset struct {
	ID            string
	Name          string
	Category      AssetCategory
	Description   string
	Price         float64
	Image         string
	Compatibility []string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (a *CustomizationAsset) Normalize() {
	if a.Image == "" {
		a.Image = DefaultAssetImage
	}
	if a.Compatibility == nil {
		a.Compatibility = []string{}
	}
}

type AssetView struct {
	ID                 string        `json:"id"`
	Name               string        `json:"name"`
	Category           AssetCategory `json:"category"`
	Description        string        `json:"description"`
	Price              float64       `json:"price"`
	Image              string        `json:"image"`
	Compatibility      []string      `json:"compatibility"`
	CompatibleVehicles []VehicleRef  `json:"compatibleVehicles"`
	CreatedAt          time.Time     `json:"createdAt"`
	UpdatedAt          time.Time     `json:"updatedAt"`
}

// ToView maps the stored asset to its wire shape. vehicles holds the
// resolved compatibility entries; ids without a match are skipped.
func (a *CustomizationAsset) ToView(vehicles map[string]*Vehicle) AssetView {
	refs := make([]VehicleRef, 0, len(a.Compatibility))
	for _, id := range a.Compatibility {
		if v, ok := vehicles[id]; ok {
			refs = append(refs, v.Ref())
		}
	}
	compat := a.Compatibility
	if compat == nil {
		compat = []string{}
	}
	return AssetView{
		ID:                 a.ID,
		Name:               a.Name,
		Category:           a.Category,
		Description:        a.Description,
		Price:              a.Price,
		Image:              a.Image,
		Compatibility:      compat,
		CompatibleVehicles: refs,
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}
}
