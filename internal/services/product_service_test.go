package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"klontong/internal/models"
	"klontong/internal/services"
	"klontong/pkg/query"
)

// MockProductRepository is a mock implementation of
// repositories.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) Create(ctx context.Context, input *models.CreateProductInput) (*models.Product, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) Update(ctx context.Context, id string, input *models.CreateProductInput) (*models.Product, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newTestProductService(repo *MockProductRepository) *services.ProductService {
	cache := query.NewClient(query.Options{
		StaleTime: time.Minute,
		GCTime:    time.Hour,
		Retry:     1,
	}, nil, zap.NewNop().Sugar())
	return services.NewProductService(repo, cache)
}

func sampleProducts() []models.Product {
	return []models.Product{
		{MongoID: "p-1", CategoryID: 14, CategoryName: "Cemilan", SKU: "MHZVTK", Name: "Ciki ciki", Weight: 500, Width: 5, Length: 5, Height: 5, Price: 30000},
	}
}

func TestProductService_GetAllProductsIsCached(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := newTestProductService(mockRepo)

	// A single repository hit serves both calls inside the stale window.
	mockRepo.On("GetAll", mock.Anything).Return(sampleProducts(), nil).Once()

	first, err := service.GetAllProducts(context.Background())
	require.NoError(t, err)
	second, err := service.GetAllProducts(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	mockRepo.AssertExpectations(t)
}

func TestProductService_GetAllProductsRetriesOnce(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := newTestProductService(mockRepo)

	mockRepo.On("GetAll", mock.Anything).Return(nil, fmt.Errorf("timeout")).Once()
	mockRepo.On("GetAll", mock.Anything).Return(sampleProducts(), nil).Once()

	products, err := service.GetAllProducts(context.Background())
	require.NoError(t, err)
	assert.Len(t, products, 1)
	mockRepo.AssertExpectations(t)
}

func TestProductService_CreateInvalidatesList(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := newTestProductService(mockRepo)

	mockRepo.On("GetAll", mock.Anything).Return(sampleProducts(), nil).Twice()
	created := &models.Product{MongoID: "p-2", Name: "Teh botol"}
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.CreateProductInput")).Return(created, nil).Once()

	_, err := service.GetAllProducts(context.Background())
	require.NoError(t, err)

	_, err = service.CreateProduct(context.Background(), &models.CreateProductInput{Name: "Teh botol"})
	require.NoError(t, err)

	// The list is refetched after the mutation even inside the stale
	// window.
	_, err = service.GetAllProducts(context.Background())
	require.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestProductService_UpdateInvalidatesDetail(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := newTestProductService(mockRepo)

	detail := &models.Product{MongoID: "p-1", Name: "Ciki ciki"}
	mockRepo.On("GetByID", mock.Anything, "p-1").Return(detail, nil).Twice()
	mockRepo.On("Update", mock.Anything, "p-1", mock.AnythingOfType("*models.CreateProductInput")).Return(detail, nil).Once()

	_, err := service.GetProductByID(context.Background(), "p-1")
	require.NoError(t, err)

	_, err = service.UpdateProduct(context.Background(), "p-1", &models.CreateProductInput{Name: "Ciki ciki pedas"})
	require.NoError(t, err)

	_, err = service.GetProductByID(context.Background(), "p-1")
	require.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestProductService_DeletePassesErrorThrough(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := newTestProductService(mockRepo)

	mockRepo.On("Delete", mock.Anything, "p-404").Return(fmt.Errorf("not found")).Once()

	err := service.DeleteProduct(context.Background(), "p-404")
	assert.Error(t, err)
	mockRepo.AssertExpectations(t)
}
