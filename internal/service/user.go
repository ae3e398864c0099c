package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"github.com/n200534/socioconnect/internal/model"
	"github.com/n200534/socioconnect/internal/repository"
)

// UserService handles account registration, authentication checks and
// profile management.
type UserService struct {
	userRepo   repository.UserRepository
	followRepo repository.FollowRepository
}

func NewUserService(userRepo repository.UserRepository, followRepo repository.FollowRepository) *UserService {
	return &UserService{
		userRepo:   userRepo,
		followRepo: followRepo,
	}
}

// Register creates a new account. Email and username are checked up front so
// the common case returns a clean sentinel; the database unique constraints
// remain the backstop for concurrent registrations.
func (s *UserService) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	if err := validateRegisterRequest(req); err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	username := strings.TrimSpace(req.Username)

	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, model.ErrEmailExists
	}

	exists, err = s.userRepo.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, model.ErrUsernameExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Email:          email,
		Username:       username,
		FullName:       strings.TrimSpace(req.FullName),
		HashedPassword: string(hashed),
		Bio:            req.Bio,
		Location:       req.Location,
		Website:        req.Website,
		IsPrivate:      req.IsPrivate,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	log.Printf("[UserService] Registered user id=%d username=%s", user.ID, user.Username)
	return user, nil
}

// Authenticate verifies email/password credentials and rejects inactive
// accounts. A missing user and a wrong password map to the same sentinel.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if err == model.ErrUserNotFound {
			return nil, model.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		return nil, model.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, model.ErrUserInactive
	}

	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, userID int64) (*model.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// GetProfile returns a user enriched with derived counts and, when a viewer
// is present, the follow relationship in both directions. Counts are computed
// at read time rather than maintained as stored counters.
func (s *UserService) GetProfile(ctx context.Context, username string, viewerID *int64) (*model.UserProfile, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	followers, err := s.followRepo.CountFollowers(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	following, err := s.followRepo.CountFollowing(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	posts, err := s.userRepo.CountPosts(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	profile := &model.UserProfile{
		User:           *user,
		FollowersCount: followers,
		FollowingCount: following,
		PostsCount:     posts,
	}

	if viewerID != nil && *viewerID != user.ID {
		isFollowing, err := s.followRepo.Exists(ctx, *viewerID, user.ID)
		if err != nil {
			return nil, err
		}
		isFollowedBy, err := s.followRepo.Exists(ctx, user.ID, *viewerID)
		if err != nil {
			return nil, err
		}
		profile.IsFollowing = isFollowing
		profile.IsFollowedBy = isFollowedBy
	}

	return profile, nil
}

// Update applies the non-nil fields of the request to the user's profile.
func (s *UserService) Update(ctx context.Context, userID int64, req *model.UpdateUserRequest) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		if utf8.RuneCountInString(*req.FullName) > model.MaxFullNameLength {
			return nil, fmt.Errorf("full name exceeds %d characters", model.MaxFullNameLength)
		}
		user.FullName = *req.FullName
	}
	if req.Bio != nil {
		user.Bio = req.Bio
	}
	if req.AvatarURL != nil {
		user.AvatarURL = req.AvatarURL
	}
	if req.CoverURL != nil {
		user.CoverURL = req.CoverURL
	}
	if req.Location != nil {
		user.Location = req.Location
	}
	if req.Website != nil {
		user.Website = req.Website
	}
	if req.IsPrivate != nil {
		user.IsPrivate = *req.IsPrivate
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Search finds active users whose username or full name matches the query.
func (s *UserService) Search(ctx context.Context, query string, limit, offset int) ([]model.User, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []model.User{}, nil
	}
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.userRepo.Search(ctx, query, limit, offset)
}

func validateRegisterRequest(req *model.RegisterRequest) error {
	email := strings.TrimSpace(req.Email)
	username := strings.TrimSpace(req.Username)

	if email == "" || !strings.Contains(email, "@") {
		return fmt.Errorf("a valid email is required")
	}
	if username == "" {
		return fmt.Errorf("username is required")
	}
	// Limits count characters, not bytes, matching the column sizes.
	if utf8.RuneCountInString(username) > model.MaxUsernameLength {
		return fmt.Errorf("username exceeds %d characters", model.MaxUsernameLength)
	}
	if utf8.RuneCountInString(req.FullName) > model.MaxFullNameLength {
		return fmt.Errorf("full name exceeds %d characters", model.MaxFullNameLength)
	}
	if utf8.RuneCountInString(req.Password) < model.MinPasswordLength {
		return fmt.Errorf("password must be at least %d characters", model.MinPasswordLength)
	}
	return nil
}
