package service

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"
	"strings"
	"time"

	"agritradehub/internal/core/cache"
	"agritradehub/internal/domain"
)

const (
	productListKey   = "products:first-page"
	productListTTL   = 30 * time.Second
	DefaultPageLimit = 50
	MaxPageLimit     = 100
)

type ProductService struct {
	products domain.ProductRepository
	cache    *cache.Cache
}

func NewProductService(products domain.ProductRepository, c *cache.Cache) *ProductService {
	return &ProductService{products: products, cache: c}
}

// List returns catalog entries. The unfiltered first page goes through the
// redis read-through cache; filtered or paged queries hit the store.
func (s *ProductService) List(ctx context.Context, search string, offset, limit int) ([]domain.Product, error) {
	if limit <= 0 || limit > MaxPageLimit {
		limit = DefaultPageLimit
	}
	if offset < 0 {
		offset = 0
	}
	search = strings.TrimSpace(search)

	if search == "" && offset == 0 && limit == DefaultPageLimit {
		return cache.GetOrLoadJSON(s.cache, ctx, productListKey, productListTTL,
			func(ctx context.Context) ([]domain.Product, error) {
				return s.products.List(ctx, "", 0, DefaultPageLimit)
			})
	}
	return s.products.List(ctx, search, offset, limit)
}

func (s *ProductService) Add(ctx context.Context, name, price, imageURL string) (*domain.Product, error) {
	name = strings.TrimSpace(name)
	price = strings.TrimSpace(price)
	imageURL = strings.TrimSpace(imageURL)
	if name == "" || price == "" || imageURL == "" {
		return nil, domain.ErrValidation
	}
	if len(name) > 128 || len(price) > 64 || len(imageURL) > 1024 {
		return nil, domain.ErrValidation
	}

	p := &domain.Product{Name: name, Price: price, ImageURL: imageURL}
	if err := s.products.Create(ctx, p); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, productListKey)
	return p, nil
}

// Seed loads the default catalog. Safe to run on every start: existing
// names are left untouched.
func (s *ProductService) Seed(ctx context.Context) error {
	return s.products.Seed(ctx, defaultCatalog())
}

// ExportCSV streams the full catalog as CSV, paging through the store
// until exhausted so the export never truncates.
func (s *ProductService) ExportCSV(ctx context.Context, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "name", "price", "image_url", "created_at"}); err != nil {
		return err
	}
	for offset := 0; ; offset += MaxPageLimit {
		ps, err := s.products.List(ctx, "", offset, MaxPageLimit)
		if err != nil {
			return err
		}
		for _, p := range ps {
			rec := []string{
				strconv.FormatUint(uint64(p.ID), 10),
				p.Name,
				p.Price,
				p.ImageURL,
				p.CreatedAt.UTC().Format(time.RFC3339),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		if len(ps) < MaxPageLimit {
			break
		}
	}
	cw.Flush()
	return cw.Error()
}

func defaultCatalog() []domain.Product {
	return []domain.Product{
		{Name: "Maize (90kg bag)", Price: "KSh 3,200", ImageURL: "/img/maize.jpg"},
		{Name: "Fresh Tomatoes (crate)", Price: "KSh 1,500", ImageURL: "/img/tomatoes.jpg"},
		{Name: "Irish Potatoes (110kg bag)", Price: "KSh 2,800", ImageURL: "/img/potatoes.jpg"},
		{Name: "Green Grams (kg)", Price: "KSh 180", ImageURL: "/img/greengrams.jpg"},
		{Name: "Dairy Milk (litre)", Price: "KSh 60", ImageURL: "/img/milk.jpg"},
		{Name: "Avocados (sack)", Price: "KSh 2,000", ImageURL: "/img/avocado.jpg"},
	}
}
