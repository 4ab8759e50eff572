// Package search indexes catalog vehicles in Elasticsearch.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/oksasatya/autoforge-api/internal/domain/entity"
)

const requestTimeout = 3 * time.Second

// VehicleIndex implements application.VehicleIndexer.
type VehicleIndex struct {
	ES        *elasticsearch.Client
	IndexName string
}

func NewVehicleIndex(es *elasticsearch.Client, index string) *VehicleIndex {
	return &VehicleIndex{ES: es, IndexName: index}
}

type vehicleDoc struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	VehicleModel string  `json:"vehicleModel"`
	Description  string  `json:"description"`
	Engine       string  `json:"engine"`
	BrandID      string  `json:"brandId"`
	BrandName    string  `json:"brandName,omitempty"`
	Year         int     `json:"year"`
	BasePrice    float64 `json:"basePrice"`
	UpdatedAt    string  `json:"updatedAt"`
}

func (x *VehicleIndex) Index(ctx context.Context, v *entity.Vehicle, brand *entity.Brand) error {
	doc := vehicleDoc{
		ID:           v.ID,
		Name:         v.Name,
		VehicleModel: v.VehicleModel,
		Description:  v.Description,
		Engine:       v.Engine,
		BrandID:      v.BrandID,
		Year:         v.Year,
		BasePrice:    v.BasePrice,
		UpdatedAt:    v.UpdatedAt.Format(time.RFC3339Nano),
	}
	if brand != nil {
		doc.BrandName = brand.Name
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{Index: x.IndexName, DocumentID: v.ID, Body: bytes.NewReader(b), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(c, x.ES)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("es index %s: %s", v.ID, res.Status())
	}
	return nil
}

func (x *VehicleIndex) Delete(ctx context.Context, id string) error {
	req := esapi.DeleteRequest{Index: x.IndexName, DocumentID: id}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(c, x.ES)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return fmt.Errorf("es delete %s: %s", id, res.Status())
	}
	return nil
}

// Search runs a multi_match over name, model, brand and description.
func (x *VehicleIndex) Search(ctx context.Context, q string, size int) ([]string, error) {
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     q,
				"fields":    []string{"name^3", "vehicleModel^2", "brandName^2", "description", "engine"},
				"fuzziness": "AUTO",
			},
		},
		"_source": false,
		"size":    size,
	}
	b, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}

	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	res, err := x.ES.Search(x.ES.Search.WithContext(c), x.ES.Search.WithIndex(x.IndexName), x.ES.Search.WithBody(bytes.NewReader(b)))
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, fmt.Errorf("es search: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID string `json:"_id"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		ids = append(ids, h.ID)
	}
	return ids, nil
}
