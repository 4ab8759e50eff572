package memory

import (
	"context"
	"sort"

	"github.com/oksasatya/autoforge-api/internal/domain/entity"
)

type analyticsRepo struct{ s *Store }

func (r analyticsRepo) Totals(context.Context) (entity.CatalogTotals, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	t := entity.CatalogTotals{
		Brands:   int64(len(r.s.brands)),
		Vehicles: int64(len(r.s.vehicles)),
		Assets:   int64(len(r.s.assets)),
	}
	for _, v := range r.s.vehicles {
		t.TotalRevenue += v.BasePrice
	}
	return t, nil
}

func (r analyticsRepo) VehiclesByBrand(context.Context) ([]entity.BrandVehicleCount, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	counts := map[string]int64{}
	for _, v := range r.s.vehicles {
		if _, ok := r.s.brands[v.BrandID]; ok {
			counts[v.BrandID]++
		}
	}
	out := make([]entity.BrandVehicleCount, 0, len(counts))
	for id, n := range counts {
		out = append(out, entity.BrandVehicleCount{BrandName: r.s.brands[id].Name, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].BrandName < out[j].BrandName
	})
	return out, nil
}

func (r analyticsRepo) AssetsByCategory(context.Context) ([]entity.CategoryTotal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	byCat := map[entity.AssetCategory]*entity.CategoryTotal{}
	for _, a := range r.s.assets {
		t, ok := byCat[a.Category]
		if !ok {
			t = &entity.CategoryTotal{Category: a.Category}
			byCat[a.Category] = t
		}
		t.Count++
		t.TotalValue += a.Price
	}
	out := make([]entity.CategoryTotal, 0, len(byCat))
	for _, t := range byCat {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out, nil
}

func (r analyticsRepo) PriceStats(context.Context) (entity.PriceStats, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var s entity.PriceStats
	if len(r.s.vehicles) == 0 {
		return s, nil
	}
	first := true
	var sum float64
	for _, v := range r.s.vehicles {
		if first || v.BasePrice < s.MinPrice {
			s.MinPrice = v.BasePrice
		}
		if first || v.BasePrice > s.MaxPrice {
			s.MaxPrice = v.BasePrice
		}
		first = false
		sum += v.BasePrice
	}
	s.AvgPrice = sum / float64(len(r.s.vehicles))
	return s, nil
}
