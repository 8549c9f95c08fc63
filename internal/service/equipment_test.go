package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"heavyrent-backend/internal/domain"
	"heavyrent-backend/internal/utils"
)

func TestEquipmentService_ListEquipment(t *testing.T) {
	ctx := context.Background()

	t.Run("Category resolved by name", func(t *testing.T) {
		repo := new(MockEquipmentRepo)
		svc := NewEquipmentService(repo)
		repo.On("GetCategoryByName", ctx, "Excavator").Return(&domain.EquipmentCategory{ID: "cat-1", Name: "Excavator"}, nil)
		repo.On("Search", ctx, domain.EquipmentFilter{Category: "Excavator", CategoryID: "cat-1", Location: "Jakarta"}).
			Return([]domain.Equipment{*excavator()}, nil)

		items, err := svc.ListEquipment(ctx, domain.EquipmentFilter{Category: "Excavator", Location: "Jakarta"})
		require.NoError(t, err)
		assert.Len(t, items, 1)
		repo.AssertExpectations(t)
	})

	t.Run("Unknown category is ignored", func(t *testing.T) {
		repo := new(MockEquipmentRepo)
		svc := NewEquipmentService(repo)
		repo.On("GetCategoryByName", ctx, "Spaceship").Return(nil, domain.NotFoundError{Resource: "category"})
		repo.On("Search", ctx, domain.EquipmentFilter{Category: "Spaceship"}).Return([]domain.Equipment{}, nil)

		items, err := svc.ListEquipment(ctx, domain.EquipmentFilter{Category: "Spaceship"})
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("Inverted price range", func(t *testing.T) {
		repo := new(MockEquipmentRepo)
		_, err := NewEquipmentService(repo).ListEquipment(ctx, domain.EquipmentFilter{MinPrice: 500, MaxPrice: 100})
		assert.True(t, domain.IsValidation(err))
	})
}

func TestEquipmentService_SimilarEquipment(t *testing.T) {
	ctx := context.Background()
	e := excavator()
	e.CategoryID = "cat-1"

	t.Run("Same category", func(t *testing.T) {
		repo := new(MockEquipmentRepo)
		repo.On("ListSimilar", ctx, "cat-1", "eq-1", 3).Return([]domain.Equipment{{ID: "eq-2"}, {ID: "eq-3"}}, nil)

		items := NewEquipmentService(repo).SimilarEquipment(ctx, e)
		require.Len(t, items, 2)
		assert.Equal(t, "eq-2", items[0].ID)
	})

	t.Run("Uncategorised", func(t *testing.T) {
		repo := new(MockEquipmentRepo)
		assert.Empty(t, NewEquipmentService(repo).SimilarEquipment(ctx, excavator()))
		repo.AssertNotCalled(t, "ListSimilar", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Store failure yields none", func(t *testing.T) {
		repo := new(MockEquipmentRepo)
		repo.On("ListSimilar", ctx, "cat-1", "eq-1", 3).
			Return([]domain.Equipment(nil), domain.PersistenceError{Op: "list similar equipment", Err: errors.New("timeout")})

		assert.Empty(t, NewEquipmentService(repo).SimilarEquipment(ctx, e))
	})
}

func TestEquipmentService_QuoteEquipment(t *testing.T) {
	ctx := context.Background()
	repo := new(MockEquipmentRepo)
	svc := NewEquipmentService(repo)
	repo.On("GetByID", ctx, "eq-1").Return(excavator(), nil)

	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	_, quote, err := svc.QuoteEquipment(ctx, "eq-1", &start, &end)
	require.NoError(t, err)
	assert.Equal(t, utils.Quote{Days: 5, TotalAmount: 15_000_000}, quote)

	_, quote, err = svc.QuoteEquipment(ctx, "eq-1", &start, nil)
	require.NoError(t, err)
	assert.Equal(t, utils.Quote{}, quote)
}
