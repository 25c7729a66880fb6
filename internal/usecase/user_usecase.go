package usecase

import (
	"context"
	"fmt"

	"github.com/bloxfund/donation-proxy/internal/models"
)

type UserUsecase interface {
	ResolveUsername(ctx context.Context, username string) (*models.UserProfile, error)
	GetProfile(ctx context.Context, userID int64) (*models.UserProfile, error)
}

type userUsecase struct {
	directory UserDirectory
}

func NewUserUsecase(directory UserDirectory) UserUsecase {
	return &userUsecase{
		directory: directory,
	}
}

func (uc *userUsecase) ResolveUsername(ctx context.Context, username string) (*models.UserProfile, error) {
	profile, err := uc.directory.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("resolve username %q: %w", username, err)
	}
	return profile, nil
}

func (uc *userUsecase) GetProfile(ctx context.Context, userID int64) (*models.UserProfile, error) {
	profile, err := uc.directory.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get profile %d: %w", userID, err)
	}
	return profile, nil
}
