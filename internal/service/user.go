package service

import (
	"github.com/templui/studytrail/internal/model"
	"github.com/templui/studytrail/internal/repository"
)

// Account is a user with its profile.
type Account struct {
	User    *model.User    `json:"user"`
	Profile *model.Profile `json:"profile"`
}

type UserService struct {
	userRepository    repository.UserRepository
	profileRepository repository.ProfileRepository
}

func NewUserService(userRepository repository.UserRepository, profileRepository repository.ProfileRepository) *UserService {
	return &UserService{
		userRepository:    userRepository,
		profileRepository: profileRepository,
	}
}

func (s *UserService) ByID(id string) (*model.User, error) {
	return s.userRepository.ByID(id)
}

func (s *UserService) Account(userID string) (*Account, error) {
	user, err := s.userRepository.ByID(userID)
	if err != nil {
		return nil, err
	}
	profile, err := s.profileRepository.ByUserID(userID)
	if err != nil {
		return nil, err
	}
	return &Account{User: user, Profile: profile}, nil
}
