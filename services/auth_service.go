package services

import (
	"errors"
	"strings"
	"time"

	"auto-market/models"
	"auto-market/repositories"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService interface {
	Register(req models.RegisterRequest) (*models.User, *models.Session, error)
	Login(req models.LoginRequest) (*models.User, *models.Session, error)
	Logout(token string) error
	// Authenticate resolves a bearer token to its user. Expired sessions are
	// deleted on the spot and reported as unauthorized.
	Authenticate(token string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	UpdateProfile(userID uint, req models.UpdateProfileRequest) (*models.User, error)
}

type authService struct {
	userRepo    repositories.UserRepository
	sessionRepo repositories.SessionRepository
	sessionTTL  time.Duration
}

func NewAuthService(userRepo repositories.UserRepository, sessionRepo repositories.SessionRepository, sessionTTL time.Duration) AuthService {
	return &authService{userRepo: userRepo, sessionRepo: sessionRepo, sessionTTL: sessionTTL}
}

func (s *authService) Register(req models.RegisterRequest) (*models.User, *models.Session, error) {
	email := strings.TrimSpace(req.Email)
	phone := strings.TrimSpace(req.Phone)

	existing, err := s.userRepo.GetByEmailOrPhone(email, phone)
	if err == nil && existing != nil {
		return nil, nil, models.ErrorConflict{Message: "user already exists"}
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, err
	}

	user := &models.User{
		Email:        nullable(email),
		Phone:        nullable(phone),
		Name:         nullable(req.Name),
		PasswordHash: string(hashed),
		Role:         models.RoleUser,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, nil, err
	}

	session, err := s.createSession(user.ID)
	if err != nil {
		return nil, nil, err
	}
	return user, session, nil
}

func (s *authService) Login(req models.LoginRequest) (*models.User, *models.Session, error) {
	email := strings.TrimSpace(req.Email)
	phone := strings.TrimSpace(req.Phone)
	if email == "" && phone == "" {
		return nil, nil, models.ErrorValidation{Message: "email or phone is required"}
	}

	user, err := s.userRepo.GetByEmailOrPhone(email, phone)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, models.ErrorUnauthorized{Message: "invalid credentials"}
		}
		return nil, nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, nil, models.ErrorUnauthorized{Message: "invalid credentials"}
	}

	session, err := s.createSession(user.ID)
	if err != nil {
		return nil, nil, err
	}
	return user, session, nil
}

func (s *authService) Logout(token string) error {
	if token == "" {
		return nil
	}
	return s.sessionRepo.Delete(token)
}

func (s *authService) Authenticate(token string) (*models.User, error) {
	if token == "" {
		return nil, models.ErrorUnauthorized{Message: "authentication required"}
	}

	session, err := s.sessionRepo.GetByToken(token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorUnauthorized{Message: "authentication required"}
		}
		return nil, err
	}

	if session.Expired(time.Now()) {
		// Lazy purge: an expired session behaves exactly like a missing one.
		_ = s.sessionRepo.Delete(session.Token)
		return nil, models.ErrorUnauthorized{Message: "authentication required"}
	}

	user := session.User
	return &user, nil
}

func (s *authService) GetUserByID(id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorNotFound{Message: "user not found"}
		}
		return nil, err
	}
	return user, nil
}

func (s *authService) UpdateProfile(userID uint, req models.UpdateProfileRequest) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorNotFound{Message: "user not found"}
		}
		return nil, err
	}

	if req.Name != nil {
		user.Name = nullable(*req.Name)
	}
	if req.Email != nil {
		user.Email = nullable(*req.Email)
	}
	if req.Phone != nil {
		user.Phone = nullable(*req.Phone)
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *authService) createSession(userID uint) (*models.Session, error) {
	session := &models.Session{
		Token:     strings.ReplaceAll(uuid.NewString()+uuid.NewString(), "-", ""),
		UserID:    userID,
		ExpiresAt: time.Now().Add(s.sessionTTL),
	}
	if err := s.sessionRepo.Create(session); err != nil {
		return nil, err
	}
	return session, nil
}
