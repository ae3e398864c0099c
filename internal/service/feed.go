package service

import (
	"context"

	"github.com/n200534/socioconnect/internal/model"
	"github.com/n200534/socioconnect/internal/repository"
)

// Feed pagination bounds.
const (
	DefaultFeedPageSize = 20
	MaxFeedPageSize     = 100
)

// FeedService assembles timelines by querying posts at read time. There is no
// fan-out on write and no cached copy of anyone's feed.
type FeedService struct {
	postRepo   repository.PostRepository
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

func NewFeedService(postRepo repository.PostRepository, followRepo repository.FollowRepository, userRepo repository.UserRepository) *FeedService {
	return &FeedService{
		postRepo:   postRepo,
		followRepo: followRepo,
		userRepo:   userRepo,
	}
}

// Feed returns posts by the user and everyone they follow, newest first.
func (s *FeedService) Feed(ctx context.Context, userID int64, page, size int) (*model.PostFeed, error) {
	page, size = normalizePage(page, size)

	followingIDs, err := s.followRepo.GetFollowingIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	authorIDs := append(followingIDs, userID)

	return s.paginate(ctx, authorIDs, page, size)
}

// UserPosts returns one user's posts with the same pagination contract as
// the home feed.
func (s *FeedService) UserPosts(ctx context.Context, targetID int64, page, size int) (*model.PostFeed, error) {
	page, size = normalizePage(page, size)

	exists, err := s.userRepo.Exists(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, model.ErrUserNotFound
	}

	return s.paginate(ctx, []int64{targetID}, page, size)
}

// FollowStats returns the follower and following counts for a user.
func (s *FeedService) FollowStats(ctx context.Context, userID int64) (*model.FollowStats, error) {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, model.ErrUserNotFound
	}

	followers, err := s.followRepo.CountFollowers(ctx, userID)
	if err != nil {
		return nil, err
	}
	following, err := s.followRepo.CountFollowing(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &model.FollowStats{
		FollowersCount: followers,
		FollowingCount: following,
	}, nil
}

// Followers returns summaries of the users following the given user, most
// recent follow first.
func (s *FeedService) Followers(ctx context.Context, userID int64, limit, offset int) ([]model.UserSummary, error) {
	limit, offset = normalizeWindow(limit, offset)

	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, model.ErrUserNotFound
	}

	return s.followRepo.ListFollowers(ctx, userID, limit, offset)
}

// Following returns summaries of the users the given user follows, most
// recent follow first.
func (s *FeedService) Following(ctx context.Context, userID int64, limit, offset int) ([]model.UserSummary, error) {
	limit, offset = normalizeWindow(limit, offset)

	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, model.ErrUserNotFound
	}

	return s.followRepo.ListFollowing(ctx, userID, limit, offset)
}

func (s *FeedService) paginate(ctx context.Context, authorIDs []int64, page, size int) (*model.PostFeed, error) {
	offset := (page - 1) * size

	total, err := s.postRepo.CountByAuthors(ctx, authorIDs)
	if err != nil {
		return nil, err
	}

	posts, err := s.postRepo.ListByAuthors(ctx, authorIDs, size, offset)
	if err != nil {
		return nil, err
	}

	return &model.PostFeed{
		Posts:   posts,
		Total:   total,
		Page:    page,
		Size:    size,
		HasNext: offset+size < total,
		HasPrev: page > 1,
	}, nil
}

func normalizeWindow(limit, offset int) (int, int) {
	if limit <= 0 || limit > MaxFeedPageSize {
		limit = DefaultFeedPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func normalizePage(page, size int) (int, int) {
	if page < 1 {
		page = 1
	}
	if size <= 0 || size > MaxFeedPageSize {
		size = DefaultFeedPageSize
	}
	return page, size
}
