package user

import (
	"Livecast-Backend/domain"
	"Livecast-Backend/entities"
	"Livecast-Backend/pkg/jwt"
	"Livecast-Backend/pkg/wallet"
	"context"
	"errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type (
	UserService interface {
		Register(ctx context.Context, req domain.RegisterRequest) (*domain.RegisterResponse, error)
		Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error)
		Me(ctx context.Context, userID string) (*domain.UserProfile, error)
	}

	userService struct {
		db               *gorm.DB
		userRepository   UserRepository
		walletRepository wallet.WalletRepository
		jwtService       jwt.JWTService
	}
)

func NewUserService(db *gorm.DB, userRepository UserRepository, walletRepository wallet.WalletRepository, jwtService jwt.JWTService) UserService {
	return &userService{
		db:               db,
		userRepository:   userRepository,
		walletRepository: walletRepository,
		jwtService:       jwtService,
	}
}

// Register creates the user and their zero-balance wallet in one
// transaction; every account has a wallet row from day one.
func (s *userService) Register(ctx context.Context, req domain.RegisterRequest) (*domain.RegisterResponse, error) {
	exists, err := s.userRepository.CheckEmailExists(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrEmailAlreadyExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &entities.User{
		ID:       uuid.New(),
		FullName: req.FullName,
		Email:    req.Email,
		Password: string(hashed),
		Role:     domain.RoleUser,
		IsActive: true,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.userRepository.CreateUser(ctx, tx, user); err != nil {
			return err
		}
		return s.walletRepository.CreateWallet(ctx, tx, &entities.Wallet{
			ID:      uuid.New(),
			UserID:  user.ID,
			Balance: 0,
		})
	})
	if err != nil {
		return nil, err
	}

	return &domain.RegisterResponse{
		ID:       user.ID.String(),
		FullName: user.FullName,
		Email:    user.Email,
		Role:     user.Role,
	}, nil
}

func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error) {
	user, err := s.userRepository.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCredentialsInvalid
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, domain.ErrCredentialsInvalid
	}

	token := s.jwtService.GenerateTokenUser(user.ID.String(), user.Role)
	return &domain.LoginResponse{
		Token: token,
		Role:  user.Role,
	}, nil
}

func (s *userService) Me(ctx context.Context, userID string) (*domain.UserProfile, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	user, err := s.userRepository.GetUserByID(ctx, userUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	return &domain.UserProfile{
		ID:             user.ID.String(),
		FullName:       user.FullName,
		Email:          user.Email,
		ProfilePicture: user.ProfilePicture,
		Bio:            user.Bio,
		Role:           user.Role,
	}, nil
}
