package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/uppi/backend/internal/domain/user"
)

// UserRepo persists profiles and driver profiles
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo creates a new UserRepo
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

const profileColumns = `id, email, password_hash, full_name, COALESCE(phone, ''), COALESCE(avatar_url, ''), user_type, rating, total_rides, created_at, updated_at`

// Create inserts a new profile
func (r *UserRepo) Create(ctx context.Context, p *user.Profile) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO profiles (id, email, password_hash, full_name, phone, avatar_url, user_type, rating, total_rides, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, p.ID, p.Email, p.PasswordHash, p.FullName, p.Phone, p.AvatarURL, p.UserType, p.Rating, p.TotalRides, p.CreatedAt, p.UpdatedAt)
	if isUniqueViolation(err) {
		return user.ErrEmailTaken
	}
	return err
}

// GetByID retrieves a profile by ID
func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*user.Profile, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+profileColumns+` FROM profiles WHERE id = $1`, id)
	return scanProfile(row)
}

// GetByEmail retrieves a profile by email, used on login
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*user.Profile, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+profileColumns+` FROM profiles WHERE email = $1`, email)
	return scanProfile(row)
}

// Update saves mutable profile fields
func (r *UserRepo) Update(ctx context.Context, p *user.Profile) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE profiles
		SET full_name = $2, phone = $3, avatar_url = $4, user_type = $5, updated_at = NOW()
		WHERE id = $1
	`, p.ID, p.FullName, p.Phone, p.AvatarURL, p.UserType)
	if err != nil {
		return err
	}
	return mustAffect(res, user.ErrProfileNotFound)
}

// CreateDriverProfile registers the user as a driver
func (r *UserRepo) CreateDriverProfile(ctx context.Context, dp *user.DriverProfile) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO driver_profiles (id, license_number, vehicle_type, vehicle_brand, vehicle_model, vehicle_year, vehicle_plate, vehicle_color, is_verified, is_available, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`, dp.ID, dp.LicenseNumber, dp.VehicleType, dp.VehicleBrand, dp.VehicleModel, dp.VehicleYear, dp.VehiclePlate, dp.VehicleColor, dp.IsVerified, dp.IsAvailable, dp.CreatedAt, dp.UpdatedAt)
	if isUniqueViolation(err) {
		return user.ErrAlreadyDriver
	}
	return err
}

// GetDriverProfile retrieves driver details by user ID
func (r *UserRepo) GetDriverProfile(ctx context.Context, id uuid.UUID) (*user.DriverProfile, error) {
	var dp user.DriverProfile
	var lat, lng sql.NullFloat64
	err := r.db.QueryRowContext(ctx, `
		SELECT id, license_number, vehicle_type, vehicle_brand, vehicle_model, vehicle_year, vehicle_plate, vehicle_color,
			is_verified, is_available, current_lat, current_lng, created_at, updated_at
		FROM driver_profiles WHERE id = $1
	`, id).Scan(&dp.ID, &dp.LicenseNumber, &dp.VehicleType, &dp.VehicleBrand, &dp.VehicleModel, &dp.VehicleYear,
		&dp.VehiclePlate, &dp.VehicleColor, &dp.IsVerified, &dp.IsAvailable, &lat, &lng, &dp.CreatedAt, &dp.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, user.ErrDriverProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	dp.CurrentLat = nullFloatPtr(lat)
	dp.CurrentLng = nullFloatPtr(lng)
	return &dp, nil
}

// SetDriverAvailability toggles whether the driver shows up for open rides
func (r *UserRepo) SetDriverAvailability(ctx context.Context, id uuid.UUID, available bool) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE driver_profiles SET is_available = $2, updated_at = NOW() WHERE id = $1
	`, id, available)
	if err != nil {
		return err
	}
	return mustAffect(res, user.ErrDriverProfileNotFound)
}

// UpdateDriverLocation stores the driver's last reported position
func (r *UserRepo) UpdateDriverLocation(ctx context.Context, id uuid.UUID, lat, lng float64) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE driver_profiles SET current_lat = $2, current_lng = $3, updated_at = NOW() WHERE id = $1
	`, id, lat, lng)
	if err != nil {
		return err
	}
	return mustAffect(res, user.ErrDriverProfileNotFound)
}

func scanProfile(row scanner) (*user.Profile, error) {
	var p user.Profile
	err := row.Scan(&p.ID, &p.Email, &p.PasswordHash, &p.FullName, &p.Phone, &p.AvatarURL, &p.UserType, &p.Rating, &p.TotalRides, &p.CreatedAt, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, user.ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

func mustAffect(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}
