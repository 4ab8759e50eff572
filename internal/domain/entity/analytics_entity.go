package entity

// Placeholder dashboard values. They are not derived from data.
const (
	PlaceholderMonthlyGrowth        = 12.5 // percent
	PlaceholderCustomerSatisfaction = 4.8  // out of 5
)

type CatalogTotals struct {
	Brands       int64
	Vehicles     int64
	Assets       int64
	TotalRevenue float64
}

type BrandVehicleCount struct {
	BrandName string `json:"brandName"`
	Count     int64  `json:"count"`
}

type CategoryTotal struct {
	Category   AssetCategory `json:"category"`
	Count      int64         `json:"count"`
	TotalValue float64       `json:"totalValue"`
}

type PriceStats struct {
	AvgPrice float64 `json:"avgPrice"`
	MinPrice float64 `json:"minPrice"`
	MaxPrice float64 `json:"maxPrice"`
}
