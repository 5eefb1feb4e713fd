package service

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/text/language"

	"github.com/revobooking/revo-ui/internal/domain/catalog"
	"github.com/revobooking/revo-ui/internal/domain/ident"
	"github.com/revobooking/revo-ui/internal/domain/model"
	"github.com/revobooking/revo-ui/internal/ports"
)

// CatalogServiceOptions groups dependencies for CatalogService.
type CatalogServiceOptions struct {
	Services ports.ServiceAPI
	Locale   language.Tag
	Logger   *slog.Logger
}

// CatalogService serves the booking search view and the home page preview.
type CatalogService struct {
	services ports.ServiceAPI
	locale   language.Tag
	logger   *slog.Logger
}

// NewCatalogService constructs a CatalogService.
func NewCatalogService(opts CatalogServiceOptions) *CatalogService {
	if opts.Services == nil {
		panic("ServiceAPI is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &CatalogService{
		services: opts.Services,
		locale:   opts.Locale,
		logger:   logger.With("component", "catalog_service"),
	}
}

// Browse loads the full catalog once and applies the query to it.
func (s *CatalogService) Browse(ctx context.Context, q catalog.Query) (catalog.View, error) {
	all, err := s.services.List(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "catalog load failed", "error", err)
		return catalog.View{Query: q}, fmt.Errorf("list services: %w", err)
	}
	return catalog.Build(all, q, s.locale), nil
}

// Preview returns at most n services in catalog order.
func (s *CatalogService) Preview(ctx context.Context, n int) ([]model.Service, error) {
	all, err := s.services.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	if n >= 0 && len(all) > n {
		all = all[:n]
	}
	return all, nil
}

// Get loads one service.
func (s *CatalogService) Get(ctx context.Context, id ident.ID) (model.Service, error) {
	svc, err := s.services.Get(ctx, id)
	if err != nil {
		return model.Service{}, fmt.Errorf("get service %s: %w", id, err)
	}
	return svc, nil
}
