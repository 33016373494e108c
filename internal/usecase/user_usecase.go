package usecase

import (
	"context"
	"time"

	"zedorolo/internal/domain/entity"
	"zedorolo/internal/domain/repository"
	"zedorolo/pkg/errors"
)

type UserUseCase struct {
	userRepo     repository.UserRepository
	firebaseAuth FirebaseAuthClient
}

func NewUserUseCase(userRepo repository.UserRepository, firebaseAuth FirebaseAuthClient) *UserUseCase {
	return &UserUseCase{
		userRepo:     userRepo,
		firebaseAuth: firebaseAuth,
	}
}

type UpdateProfileInput struct {
	Username  string
	Phone     string
	Bio       string
	FullName  string
	City      string
	State     string
	AvatarURL string
}

func (uc *UserUseCase) UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, errors.NotFound("User", err)
	}

	if input.Username != "" {
		user.Username = input.Username
	}
	if input.Phone != "" {
		user.Phone = input.Phone
	}
	if input.Bio != "" {
		user.Bio = input.Bio
	}
	if input.FullName != "" {
		user.FullName = input.FullName
	}
	if input.City != "" {
		user.City = input.City
	}
	if input.State != "" {
		user.State = input.State
	}
	if input.AvatarURL != "" {
		user.AvatarURL = input.AvatarURL
	}

	user.UpdatedAt = time.Now()

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, errors.Internal("Failed to update user profile", err)
	}

	return user, nil
}

func (uc *UserUseCase) GetUserProfile(ctx context.Context, userID string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, errors.NotFound("User", err)
	}

	return user, nil
}

// PublicProfile is the subset of a user other users may see on a listing or
// a negotiation.
type PublicProfile struct {
	ID        string           `json:"id"`
	Username  string           `json:"username"`
	Bio       string           `json:"bio,omitempty"`
	City      string           `json:"city,omitempty"`
	State     string           `json:"state,omitempty"`
	AvatarURL string           `json:"avatar_url,omitempty"`
	KYCStatus entity.KYCStatus `json:"kyc_status"`
	MemberFor string           `json:"member_since"`
}

func (uc *UserUseCase) GetPublicProfile(ctx context.Context, userID string) (*PublicProfile, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, errors.NotFound("User", err)
	}

	return &PublicProfile{
		ID:        user.ID,
		Username:  user.Username,
		Bio:       user.Bio,
		City:      user.City,
		State:     user.State,
		AvatarURL: user.AvatarURL,
		KYCStatus: user.KYCStatus,
		MemberFor: user.CreatedAt.Format("2006-01-02"),
	}, nil
}

func (uc *UserUseCase) UpdatePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return errors.NotFound("User", err)
	}

	_, err = uc.firebaseAuth.SignInWithEmailPassword(user.Email, currentPassword)
	if err != nil {
		return errors.Unauthorized("Current password is incorrect", err)
	}

	if err := uc.firebaseAuth.UpdateUserPassword(ctx, userID, newPassword); err != nil {
		return errors.Internal("Failed to update password", err)
	}

	return nil
}

// Admin operations.

func (uc *UserUseCase) ListUsers(ctx context.Context, status string, limit, offset int) ([]*entity.User, int64, error) {
	filter := map[string]interface{}{}
	if status != "" {
		filter["status"] = status
	}

	return uc.userRepo.List(ctx, filter, limit, offset)
}

func (uc *UserUseCase) SetUserStatus(ctx context.Context, adminID, userID, newStatus string) (*entity.User, error) {
	if newStatus != "active" && newStatus != "suspended" {
		return nil, errors.BadRequest("Status must be active or suspended", nil)
	}
	if adminID == userID {
		return nil, errors.BadRequest("You cannot change your own account status", nil)
	}

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, errors.NotFound("User", err)
	}

	user.Status = newStatus
	user.UpdatedAt = time.Now()

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, errors.Internal("Failed to update user status", err)
	}

	return user, nil
}
