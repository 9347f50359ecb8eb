package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/pankaj377/swap-bite-find-sub000/domain"
	"github.com/pankaj377/swap-bite-find-sub000/entities"
	"github.com/pankaj377/swap-bite-find-sub000/internal/utils"
	"github.com/pankaj377/swap-bite-find-sub000/internal/utils/mailing"
	"github.com/pankaj377/swap-bite-find-sub000/internal/utils/storage"
	"github.com/pankaj377/swap-bite-find-sub000/pkg/jwt"
)

type (
	UserService interface {
		Register(ctx context.Context, req domain.RegisterRequest) (*domain.UserProfile, error)
		Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error)
		Me(ctx context.Context, userID string) (*domain.UserProfile, error)
		UpdateUser(ctx context.Context, req domain.UpdateUserRequest, userID string) error
		SendVerificationEmail(ctx context.Context, email string) error
		VerifyEmail(ctx context.Context, token string) error
	}

	userService struct {
		userRepository UserRepository
		jwtService     jwt.JWTService
		s3             storage.AwsS3
	}
)

func NewUserService(userRepository UserRepository, jwtService jwt.JWTService, s3 storage.AwsS3) UserService {
	return &userService{
		userRepository: userRepository,
		jwtService:     jwtService,
		s3:             s3,
	}
}

func (s *userService) Register(ctx context.Context, req domain.RegisterRequest) (*domain.UserProfile, error) {
	if _, err := s.userRepository.GetUserByEmail(ctx, req.Email); err == nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &entities.User{
		ID:       uuid.New(),
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashed),
		Role:     domain.RoleUser,
	}

	if err := s.userRepository.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	// Best effort; a failed mail should not lose the registration.
	_ = s.SendVerificationEmail(ctx, user.Email)

	return toUserProfile(user), nil
}

func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error) {
	user, err := s.userRepository.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token := s.jwtService.GenerateTokenUser(user.ID.String(), user.Role)

	return &domain.LoginResponse{
		Token: token,
		User:  toUserProfile(user),
	}, nil
}

func (s *userService) Me(ctx context.Context, userID string) (*domain.UserProfile, error) {
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return toUserProfile(user), nil
}

func (s *userService) UpdateUser(ctx context.Context, req domain.UpdateUserRequest, userID string) error {
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	if req.Name != "" {
		user.Name = req.Name
	}

	if req.Avatar != nil {
		fileName := fmt.Sprintf("avatar-%s", user.ID.String())
		var objectKey string
		var uploadErr error

		if user.AvatarURL != "" {
			existingKey := s.s3.GetObjectKeyFromLink(user.AvatarURL)
			if existingKey != "" {
				objectKey, uploadErr = s.s3.UpdateFile(existingKey, req.Avatar, storage.AllowImage...)
			} else {
				objectKey, uploadErr = s.s3.UploadFile(fileName, req.Avatar, "avatars", storage.AllowImage...)
			}
		} else {
			objectKey, uploadErr = s.s3.UploadFile(fileName, req.Avatar, "avatars", storage.AllowImage...)
		}

		if uploadErr != nil {
			return uploadErr
		}
		user.AvatarURL = s.s3.GetPublicLinkKey(objectKey)
	}

	return s.userRepository.UpdateUser(ctx, user)
}

func (s *userService) SendVerificationEmail(ctx context.Context, email string) error {
	user, err := s.userRepository.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	token, err := s.jwtService.GenerateTokenEmailVerify(map[string]any{
		"user_id": user.ID.String(),
	}, 24*time.Hour)
	if err != nil {
		return err
	}

	verifyLink := fmt.Sprintf("%s/api/v1/users/verify?token=%s", utils.GetConfig("APP_URL"), token)
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Please verify your SwapBite account by clicking <a href=%q>this link</a>. The link expires in 24 hours.</p>",
		user.Name, verifyLink,
	)

	return mailing.SendMail(user.Email, "Verify your SwapBite account", body)
}

func (s *userService) VerifyEmail(ctx context.Context, token string) error {
	claims, err := s.jwtService.ValidateTokenEmailVerify(token)
	if err != nil {
		return err
	}

	userID, ok := claims["user_id"].(string)
	if !ok {
		return domain.ErrTokenInvalid
	}

	return s.userRepository.MarkUserVerified(ctx, userID)
}

func toUserProfile(user *entities.User) *domain.UserProfile {
	return &domain.UserProfile{
		ID:         user.ID.String(),
		Name:       user.Name,
		Email:      user.Email,
		Role:       user.Role,
		AvatarURL:  user.AvatarURL,
		IsVerified: user.IsVerified,
		CreatedAt:  user.CreatedAt,
	}
}
