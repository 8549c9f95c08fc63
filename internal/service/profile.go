package service

import (
	"context"
	"strings"

	"heavyrent-backend/internal/domain"
	"heavyrent-backend/internal/logger"
	"heavyrent-backend/internal/repository"
)

type profileService struct {
	profileRepo repository.ProfileRepository
}

func NewProfileService(profileRepo repository.ProfileRepository) ProfileService {
	return &profileService{profileRepo: profileRepo}
}

func (s *profileService) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	return s.profileRepo.GetByID(ctx, userID)
}

func normalizeAccountType(t domain.AccountType) (domain.AccountType, error) {
	switch t {
	case "":
		return domain.AccountTypeIndividual, nil
	case domain.AccountTypeIndividual, domain.AccountTypeCompany:
		return t, nil
	}
	return "", domain.ValidationError{Field: "account_type", Msg: "account type must be individual or company"}
}

func (s *profileService) UpdateProfile(ctx context.Context, userID string, in ProfileInput) (*domain.Profile, error) {
	logger.EnterMethod(ctx, "profileService.UpdateProfile", "userID", userID)

	accountType, err := normalizeAccountType(in.AccountType)
	if err != nil {
		logger.ExitMethodWithError(ctx, "profileService.UpdateProfile", err)
		return nil, err
	}
	p := &domain.Profile{
		ID:          userID,
		FullName:    strings.TrimSpace(in.FullName),
		CompanyName: strings.TrimSpace(in.CompanyName),
		Phone:       strings.TrimSpace(in.Phone),
		Address:     strings.TrimSpace(in.Address),
		AccountType: accountType,
	}
	if p.FullName == "" {
		err := domain.ValidationError{Field: "full_name", Msg: "full name is required"}
		logger.ExitMethodWithError(ctx, "profileService.UpdateProfile", err)
		return nil, err
	}
	if err := s.profileRepo.Upsert(ctx, p); err != nil {
		logger.ExitMethodWithError(ctx, "profileService.UpdateProfile", err)
		return nil, err
	}
	logger.ExitMethod(ctx, "profileService.UpdateProfile", "userID", userID)
	return p, nil
}
