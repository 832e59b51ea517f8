package resources

import (
	"context"
	"fmt"

	"github.com/nkiryanov/warehub/gateway"
	"github.com/nkiryanov/warehub/models"
)

// WarehouseInput is the writable part of a warehouse. Server fills in the
// timestamps and the creator.
type WarehouseInput struct {
	City      string  `json:"city"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type WarehouseService struct {
	client *gateway.Client
}

func NewWarehouses(client *gateway.Client) *WarehouseService {
	return &WarehouseService{client: client}
}

func (s *WarehouseService) List(ctx context.Context, params ListParams) (Page[models.Warehouse], error) {
	var page Page[models.Warehouse]
	err := s.client.Get(ctx, "/warehouses/"+params.query(), &page)
	return page, err
}

func (s *WarehouseService) Get(ctx context.Context, id int64) (models.Warehouse, error) {
	var warehouse models.Warehouse
	err := s.client.Get(ctx, fmt.Sprintf("/warehouses/%d/", id), &warehouse)
	return warehouse, err
}

func (s *WarehouseService) Create(ctx context.Context, input WarehouseInput) (models.Warehouse, error) {
	var warehouse models.Warehouse
	err := s.client.Post(ctx, "/warehouses/", input, &warehouse)
	return warehouse, err
}

func (s *WarehouseService) Update(ctx context.Context, id int64, input WarehouseInput) (models.Warehouse, error) {
	var warehouse models.Warehouse
	err := s.client.Put(ctx, fmt.Sprintf("/warehouses/%d/", id), input, &warehouse)
	return warehouse, err
}

func (s *WarehouseService) Delete(ctx context.Context, id int64) error {
	return s.client.Delete(ctx, fmt.Sprintf("/warehouses/%d/", id))
}

// Count returns the total number of warehouses.
func (s *WarehouseService) Count(ctx context.Context) (int, error) {
	page, err := s.List(ctx, ListParams{})
	return page.Count, err
}
