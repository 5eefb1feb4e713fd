package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/text/language"

	"github.com/revobooking/revo-ui/internal/domain/catalog"
	"github.com/revobooking/revo-ui/internal/domain/model"
	"github.com/revobooking/revo-ui/internal/mocks"
	"github.com/revobooking/revo-ui/internal/testutil"
)

type serviceAPIMock = mocks.MockResourceAPI[model.Service, model.CreateServiceRequest, model.UpdateServiceRequest]

func newServiceAPIMock(ctrl *gomock.Controller) *serviceAPIMock {
	return mocks.NewMockResourceAPI[model.Service, model.CreateServiceRequest, model.UpdateServiceRequest](ctrl)
}

func sampleCatalog() []model.Service {
	return []model.Service{
		testutil.NewService("1").WithName("Bali").WithDescription("Garuda").WithPrice(1500000).Build(),
		testutil.NewService("2").WithName("Jakarta").WithDescription("Lion Air").WithPrice(800000).Build(),
		testutil.NewService("3").WithName("Tokyo").WithDescription("ANA").WithPrice(7000000).Build(),
	}
}

func TestCatalogService_BrowseLoadsOnceAndFilters(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := newServiceAPIMock(ctrl)
	api.EXPECT().List(gomock.Any()).Return(sampleCatalog(), nil).Times(1)

	svc := NewCatalogService(CatalogServiceOptions{Services: api, Locale: language.Indonesian})
	view, err := svc.Browse(context.Background(), catalog.Query{Search: "air", Sort: catalog.SortPriceDesc})

	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, "Jakarta", view.Items[0].Name)
	assert.Equal(t, 3, view.Total)
	assert.Equal(t, catalog.NotEmpty, view.Empty)
}

func TestCatalogService_BrowseEmptyStates(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := newServiceAPIMock(ctrl)
	svc := NewCatalogService(CatalogServiceOptions{Services: api})

	api.EXPECT().List(gomock.Any()).Return([]model.Service{}, nil)
	view, err := svc.Browse(context.Background(), catalog.Query{Search: "zzz"})
	require.NoError(t, err)
	assert.Equal(t, catalog.NoItems, view.Empty)
	assert.False(t, view.ShowClearFilter())

	api.EXPECT().List(gomock.Any()).Return(sampleCatalog(), nil)
	view, err = svc.Browse(context.Background(), catalog.Query{Search: "zzz"})
	require.NoError(t, err)
	assert.Equal(t, catalog.NoMatches, view.Empty)
	assert.True(t, view.ShowClearFilter())
}

func TestCatalogService_BrowseFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := newServiceAPIMock(ctrl)
	api.EXPECT().List(gomock.Any()).Return(nil, errors.New("boom"))

	svc := NewCatalogService(CatalogServiceOptions{Services: api})
	view, err := svc.Browse(context.Background(), catalog.Query{Search: "bali"})

	require.Error(t, err)
	assert.Empty(t, view.Items)
	assert.Equal(t, "bali", view.Query.Search)
}

func TestCatalogService_Preview(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := newServiceAPIMock(ctrl)
	api.EXPECT().List(gomock.Any()).Return(sampleCatalog(), nil)

	svc := NewCatalogService(CatalogServiceOptions{Services: api})
	items, err := svc.Preview(context.Background(), 2)

	require.NoError(t, err)
	assert.Len(t, items, 2)
}
