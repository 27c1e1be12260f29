package service

import (
	"context"
	"time"

	"agritradehub/internal/core/cache"
	"agritradehub/internal/domain"
)

const (
	statsKey = "stats:dashboard"
	statsTTL = 15 * time.Second
)

type Stats struct {
	Users    int64   `json:"users"`
	Products int64   `json:"products"`
	Orders   int64   `json:"orders"`
	Pending  int64   `json:"pending"`
	Revenue  float64 `json:"revenue"`
}

type StatsService struct {
	users    domain.UserRepository
	products domain.ProductRepository
	orders   domain.OrderRepository
	cache    *cache.Cache
}

func NewStatsService(users domain.UserRepository, products domain.ProductRepository, orders domain.OrderRepository, c *cache.Cache) *StatsService {
	return &StatsService{users: users, products: products, orders: orders, cache: c}
}

func (s *StatsService) Dashboard(ctx context.Context) (Stats, error) {
	return cache.GetOrLoadJSON(s.cache, ctx, statsKey, statsTTL,
		func(ctx context.Context) (Stats, error) {
			users, err := s.users.Count(ctx)
			if err != nil {
				return Stats{}, err
			}
			products, err := s.products.Count(ctx)
			if err != nil {
				return Stats{}, err
			}
			orders, err := s.orders.Count(ctx)
			if err != nil {
				return Stats{}, err
			}
			pending, err := s.orders.CountOpen(ctx)
			if err != nil {
				return Stats{}, err
			}
			revenue, err := s.orders.Revenue(ctx)
			if err != nil {
				return Stats{}, err
			}
			return Stats{
				Users:    users,
				Products: products,
				Orders:   orders,
				Pending:  pending,
				Revenue:  revenue,
			}, nil
		})
}
