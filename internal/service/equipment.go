package service

import (
	"context"
	"strings"
	"time"

	"heavyrent-backend/internal/domain"
	"heavyrent-backend/internal/logger"
	"heavyrent-backend/internal/repository"
	"heavyrent-backend/internal/utils"
)

const similarEquipmentLimit = 3

type equipmentService struct {
	equipmentRepo repository.EquipmentRepository
}

func NewEquipmentService(equipmentRepo repository.EquipmentRepository) EquipmentService {
	return &equipmentService{equipmentRepo: equipmentRepo}
}

func (s *equipmentService) ListEquipment(ctx context.Context, filter domain.EquipmentFilter) ([]domain.Equipment, error) {
	logger.EnterMethod(ctx, "equipmentService.ListEquipment", "category", filter.Category, "location", filter.Location, "search", filter.Search)

	if name := strings.TrimSpace(filter.Category); name != "" && filter.CategoryID == "" {
		cat, err := s.equipmentRepo.GetCategoryByName(ctx, name)
		switch {
		case err == nil:
			filter.CategoryID = cat.ID
		case domain.IsNotFound(err):
			logger.DebugContext(ctx, "Unknown category ignored", "category", name)
		default:
			logger.ExitMethodWithError(ctx, "equipmentService.ListEquipment", err)
			return nil, err
		}
	}
	if filter.MinPrice > 0 && filter.MaxPrice > 0 && filter.MinPrice > filter.MaxPrice {
		err := domain.ValidationError{Field: "min_price", Msg: "must not exceed max_price"}
		logger.ExitMethodWithError(ctx, "equipmentService.ListEquipment", err)
		return nil, err
	}

	items, err := s.equipmentRepo.Search(ctx, filter)
	if err != nil {
		logger.ExitMethodWithError(ctx, "equipmentService.ListEquipment", err)
		return nil, err
	}
	logger.ExitMethod(ctx, "equipmentService.ListEquipment", "count", len(items))
	return items, nil
}

func (s *equipmentService) GetEquipment(ctx context.Context, id string) (*domain.Equipment, error) {
	return s.equipmentRepo.GetByID(ctx, id)
}

func (s *equipmentService) SimilarEquipment(ctx context.Context, e *domain.Equipment) []domain.Equipment {
	if e == nil || e.CategoryID == "" {
		return nil
	}
	items, err := s.equipmentRepo.ListSimilar(ctx, e.CategoryID, e.ID, similarEquipmentLimit)
	if err != nil {
		logger.WarnContext(ctx, "Failed to load similar equipment", "equipment_id", e.ID, "error", err)
		return nil
	}
	return items
}

func (s *equipmentService) ListCategories(ctx context.Context) ([]domain.EquipmentCategory, error) {
	return s.equipmentRepo.ListCategories(ctx)
}

func (s *equipmentService) QuoteEquipment(ctx context.Context, id string, start, end *time.Time) (*domain.Equipment, utils.Quote, error) {
	e, err := s.equipmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, utils.Quote{}, err
	}
	return e, utils.CalculateQuote(start, end, e.DailyRate), nil
}
