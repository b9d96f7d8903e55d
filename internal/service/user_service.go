package service

import (
	"devlingo_backend/internal/model"
	"devlingo_backend/internal/repository"
	"devlingo_backend/internal/util"
	"time"

	"gorm.io/gorm"
)

// UserService owns profile maintenance. Display-field changes are
// propagated to the leaderboard's denormalized copy.
type UserService struct {
	UserRepo    *repository.UserRepository
	Leaderboard *LeaderboardService
}

func NewUserService(userRepo *repository.UserRepository, leaderboard *LeaderboardService) *UserService {
	return &UserService{
		UserRepo:    userRepo,
		Leaderboard: leaderboard,
	}
}

func (s *UserService) GetByID(id uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(id)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrUserNotFound
	}
	return user, err
}

// UpdateProfile changes the fields a user may edit themselves.
func (s *UserService) UpdateProfile(userID uint, name, language string) (*model.User, error) {
	user, err := s.GetByID(userID)
	if err != nil {
		return nil, err
	}

	if name != "" {
		user.Name = name
	}
	if language != "" {
		user.Language = language
	}
	user.UpdatedAt = time.Now()

	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	if err := s.Leaderboard.RefreshDisplayFields(user); err != nil {
		return nil, err
	}
	return user, nil
}

// SetAvatar stores the uploaded avatar URL on the profile.
func (s *UserService) SetAvatar(userID uint, url string) (*model.User, error) {
	user, err := s.GetByID(userID)
	if err != nil {
		return nil, err
	}

	user.Avatar = url
	user.UpdatedAt = time.Now()

	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	if err := s.Leaderboard.RefreshDisplayFields(user); err != nil {
		return nil, err
	}
	return user, nil
}
