package app

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"nutrient-bot/internal/domain/entity"
	"nutrient-bot/internal/domain/port"
)

// ErrInvalidContact — пустой номер или некорректный адрес почты
var ErrInvalidContact = errors.New("invalid contact")

type UserService struct {
	repo port.UserRepository
}

func NewUserService(repo port.UserRepository) *UserService {
	return &UserService{repo: repo}
}

func (s *UserService) Get(ctx context.Context, userID, chatID int64) (*entity.User, error) {
	return s.repo.Get(ctx, userID, chatID)
}

func (s *UserService) SetState(ctx context.Context, userID, chatID int64, state entity.UserState) (*entity.User, error) {
	user, err := s.repo.Get(ctx, userID, chatID)
	if err != nil {
		return nil, err
	}

	user.SetState(state)
	if err := s.repo.Save(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *UserService) BeginCheck(ctx context.Context, userID, chatID int64) (*entity.User, error) {
	return s.SetState(ctx, userID, chatID, entity.StateAwaitingPhoto)
}

func (s *UserService) RequestPhone(ctx context.Context, userID, chatID int64) (*entity.User, error) {
	return s.SetState(ctx, userID, chatID, entity.StateAwaitingPhone)
}

func (s *UserService) RequestEmail(ctx context.Context, userID, chatID int64) (*entity.User, error) {
	return s.SetState(ctx, userID, chatID, entity.StateAwaitingEmail)
}

func (s *UserService) Cancel(ctx context.Context, userID, chatID int64) (*entity.User, error) {
	return s.SetState(ctx, userID, chatID, entity.StateMainMenu)
}

// SavePhone сохраняет номер (только цифры, допускается ведущий «+») и возвращает в меню
func (s *UserService) SavePhone(ctx context.Context, userID, chatID int64, phone string) (*entity.User, error) {
	phone = strings.TrimPrefix(strings.Join(strings.Fields(phone), ""), "+")
	if phone == "" {
		return nil, ErrInvalidContact
	}
	return s.saveContact(ctx, userID, chatID, entity.ContactInput{MobileNumber: phone})
}

// SaveEmail проверяет адрес и сохраняет его
func (s *UserService) SaveEmail(ctx context.Context, userID, chatID int64, email string) (*entity.User, error) {
	addr, err := mail.ParseAddress(strings.TrimSpace(email))
	if err != nil {
		return nil, ErrInvalidContact
	}
	return s.saveContact(ctx, userID, chatID, entity.ContactInput{Email: addr.Address})
}

func (s *UserService) saveContact(ctx context.Context, userID, chatID int64, contact entity.ContactInput) (*entity.User, error) {
	if _, err := s.repo.Get(ctx, userID, chatID); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateContact(ctx, userID, contact); err != nil {
		return nil, err
	}
	return s.SetState(ctx, userID, chatID, entity.StateMainMenu)
}
