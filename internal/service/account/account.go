package account

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/uppi/backend/internal/domain/rating"
	"github.com/uppi/backend/internal/domain/user"
	"github.com/uppi/backend/pkg/auth"
	"github.com/uppi/backend/pkg/logger"
	"golang.org/x/crypto/bcrypt"
)

// Service handles registration, login and profile management
type Service struct {
	users  user.Repository
	tokens *auth.Manager
	logger *logger.Logger
}

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidUserType    = errors.New("user type must be passenger or driver")
)

// NewService creates a new account service
func NewService(users user.Repository, tokens *auth.Manager, log *logger.Logger) *Service {
	return &Service{users: users, tokens: tokens, logger: log}
}

// RegisterInput carries a signup request
type RegisterInput struct {
	Email    string
	Password string
	FullName string
	Phone    string
	UserType user.Type
}

// Register creates a profile and returns it with a fresh token pair
func (s *Service) Register(ctx context.Context, in RegisterInput) (*user.Profile, *auth.TokenPair, error) {
	if in.UserType == "" {
		in.UserType = user.TypePassenger
	}
	if in.UserType != user.TypePassenger && in.UserType != user.TypeDriver {
		return nil, nil, ErrInvalidUserType
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now()
	p := &user.Profile{
		ID:           uuid.New(),
		Email:        in.Email,
		PasswordHash: string(hash),
		FullName:     in.FullName,
		Phone:        in.Phone,
		UserType:     in.UserType,
		Rating:       rating.DefaultScore,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, p); err != nil {
		return nil, nil, err
	}

	pair, err := s.tokens.GenerateTokenPair(p.ID, p.UserType)
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info("User registered",
		logger.String("user_id", p.ID.String()),
		logger.String("user_type", string(p.UserType)),
	)
	return p, pair, nil
}

// Login verifies credentials and returns the profile with a token pair
func (s *Service) Login(ctx context.Context, email, password string) (*user.Profile, *auth.TokenPair, error) {
	p, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, user.ErrProfileNotFound) {
		return nil, nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(password)) != nil {
		return nil, nil, ErrInvalidCredentials
	}

	pair, err := s.tokens.GenerateTokenPair(p.ID, p.UserType)
	if err != nil {
		return nil, nil, err
	}
	return p, pair, nil
}

// Refresh exchanges a valid refresh token for a new token pair
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*auth.TokenPair, error) {
	claims, err := s.tokens.ValidateToken(refreshToken)
	if err != nil {
		return nil, err
	}
	// re-read the profile so a user type change invalidates stale claims
	p, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	return s.tokens.GenerateTokenPair(p.ID, p.UserType)
}

// GetProfile retrieves a profile by ID
func (s *Service) GetProfile(ctx context.Context, id uuid.UUID) (*user.Profile, error) {
	return s.users.GetByID(ctx, id)
}

// UpdateProfileInput carries mutable profile fields; nil means unchanged
type UpdateProfileInput struct {
	FullName  *string
	Phone     *string
	AvatarURL *string
}

// UpdateProfile applies partial profile changes
func (s *Service) UpdateProfile(ctx context.Context, id uuid.UUID, in UpdateProfileInput) (*user.Profile, error) {
	p, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.FullName != nil {
		p.FullName = *in.FullName
	}
	if in.Phone != nil {
		p.Phone = *in.Phone
	}
	if in.AvatarURL != nil {
		p.AvatarURL = *in.AvatarURL
	}
	p.UpdatedAt = time.Now()
	if err := s.users.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// RegisterDriverInput carries a driver registration request
type RegisterDriverInput struct {
	LicenseNumber string
	VehicleType   user.VehicleType
	VehicleBrand  string
	VehicleModel  string
	VehicleYear   int
	VehiclePlate  string
	VehicleColor  string
}

// RegisterDriver creates the driver profile and upgrades a passenger account
// to "both" so passenger access is retained.
func (s *Service) RegisterDriver(ctx context.Context, userID uuid.UUID, in RegisterDriverInput) (*user.DriverProfile, error) {
	if !in.VehicleType.IsValid() {
		return nil, errors.New("invalid vehicle type")
	}

	p, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	dp := &user.DriverProfile{
		ID:            userID,
		LicenseNumber: in.LicenseNumber,
		VehicleType:   in.VehicleType,
		VehicleBrand:  in.VehicleBrand,
		VehicleModel:  in.VehicleModel,
		VehicleYear:   in.VehicleYear,
		VehiclePlate:  in.VehiclePlate,
		VehicleColor:  in.VehicleColor,
		IsAvailable:   false,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.users.CreateDriverProfile(ctx, dp); err != nil {
		return nil, err
	}

	if p.UserType == user.TypePassenger {
		p.UserType = user.TypeBoth
		p.UpdatedAt = now
		if err := s.users.Update(ctx, p); err != nil {
			s.logger.Error("Failed to upgrade user type after driver registration",
				logger.String("user_id", userID.String()),
				logger.Err(err),
			)
		}
	}

	s.logger.Info("Driver registered",
		logger.String("user_id", userID.String()),
		logger.String("vehicle_type", string(in.VehicleType)),
	)
	return dp, nil
}

// GetDriverProfile retrieves a user's driver profile
func (s *Service) GetDriverProfile(ctx context.Context, id uuid.UUID) (*user.DriverProfile, error) {
	return s.users.GetDriverProfile(ctx, id)
}

// HashPassword is exposed for seeding and tests
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(hash), err
}
