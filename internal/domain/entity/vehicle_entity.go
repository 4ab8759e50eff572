package entity

import "time"

const DefaultVehicleThumbnail = "🏎️"

type VehicleSpecs struct {
	Engine      string  `json:"engine"`
	Horsepower  int     `json:"horsepower" validate:"gte=0"`
	Torque      int     `json:"torque" validate:"gte=0"`
	ZeroToSixty float64 `json:"zeroToSixty" validate:"gte=0"`
}

type VehicleCustomizations struct {
	Colors          map[string]string `json:"colors,omitempty"`
	SelectedWheel   *int              `json:"selectedWheel,omitempty"`
	SelectedSpoiler *int              `json:"selectedSpoiler,omitempty"`
}

// Vehicle is a catalog item tied to a Brand.
type Vehicle struct {
	ID             string
	Name           string
	BrandID        string
	VehicleModel   string
	Year           int
	BasePrice      float64
	Price          float64
	ModelURL       string
	Thumbnail      string
	Description    string
	Engine         string
	Horsepower     int
	Torque         int
	Acceleration   float64
	TopSpeed       int
	Specs          VehicleSpecs
	CustomModelURL string
	Customizations *VehicleCustomizations
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Normalize copies BasePrice into an unset Price and fills defaults. It is idempotent.
func (v *Vehicle) Normalize() {
	if v.BasePrice != 0 && v.Price == 0 {
		v.Price = v.BasePrice
	}
	if v.Thumbnail == "" {
		v.Thumbnail = DefaultVehicleThumbnail
	}
}

type VehicleView struct {
	ID             string                 `json:"id"`
	Name           string                 `json:"name"`
	BrandID        string                 `json:"brandId"`
	Brand          *BrandRef              `json:"brand,omitempty"`
	VehicleModel   string                 `json:"vehicleModel"`
	Year           int                    `json:"year"`
	BasePrice      float64                `json:"basePrice"`
	Price          float64                `json:"price"`
	ModelURL       string                 `json:"modelUrl"`
	Thumbnail      string                 `json:"thumbnail"`
	Description    string                 `json:"description"`
	Engine         string                 `json:"engine,omitempty"`
	Horsepower     int                    `json:"horsepower,omitempty"`
	Torque         int                    `json:"torque,omitempty"`
	Acceleration   float64                `json:"acceleration,omitempty"`
	TopSpeed       int                    `json:"topSpeed,omitempty"`
	Specs          VehicleSpecs           `json:"specs"`
	CustomModelURL string                 `json:"customModelUrl,omitempty"`
	Customizations *VehicleCustomizations `json:"customizations,omitempty"`
	CreatedAt      time.Time              `json:"createdAt"`
	UpdatedAt      time.Time              `json:"updatedAt"`
}

// ToView maps the stored vehicle to its wire shape; brand may be nil.
func (v *Vehicle) ToView(brand *Brand) VehicleView {
	view := VehicleView{
		ID:             v.ID,
		Name:           v.Name,
		BrandID:        v.BrandID,
		VehicleModel:   v.VehicleModel,
		Year:           v.Year,
		BasePrice:      v.BasePrice,
		Price:          v.Price,
		ModelURL:       v.ModelURL,
		Thumbnail:      v.Thumbnail,
		Description:    v.Description,
		Engine:         v.Engine,
		Horsepower:     v.Horsepower,
		Torque:         v.Torque,
		Acceleration:   v.Acceleration,
		TopSpeed:       v.TopSpeed,
		Specs:          v.Specs,
		CustomModelURL: v.CustomModelURL,
		Customizations: v.Customizations,
		CreatedAt:      v.CreatedAt,
		UpdatedAt:      v.UpdatedAt,
	}
	if brand != nil {
		view.Brand = brand.Ref()
	}
	return view
}

// VehicleRef is the shallow projection embedded in asset responses.
type VehicleRef struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	VehicleModel string `json:"vehicleModel"`
	Thumbnail    string `json:"thumbnail"`
}

func (v *Vehicle) Ref() VehicleRef {
	return VehicleRef{ID: v.ID, Name: v.Name, VehicleModel: v.VehicleModel, Thumbnail: v.Thumbnail}
}
