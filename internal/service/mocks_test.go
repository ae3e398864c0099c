package service

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/n200534/socioconnect/internal/model"
)

// Function-field mocks for the repository interfaces. Each test assigns only
// the functions it needs; unset functions return zero values or not-found.

type mockUserRepository struct {
	createFn           func(ctx context.Context, user *model.User) error
	getByIDFn          func(ctx context.Context, id int64) (*model.User, error)
	getByEmailFn       func(ctx context.Context, email string) (*model.User, error)
	getByUsernameFn    func(ctx context.Context, username string) (*model.User, error)
	existsByEmailFn    func(ctx context.Context, email string) (bool, error)
	existsByUsernameFn func(ctx context.Context, username string) (bool, error)
	existsFn           func(ctx context.Context, id int64) (bool, error)
	updateFn           func(ctx context.Context, user *model.User) error
	searchFn           func(ctx context.Context, query string, limit, offset int) ([]model.User, error)
	countPostsFn       func(ctx context.Context, userID int64) (int, error)
}

func (m *mockUserRepository) Create(ctx context.Context, user *model.User) error {
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	return nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, model.ErrUserNotFound
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.getByEmailFn != nil {
		return m.getByEmailFn(ctx, email)
	}
	return nil, model.ErrUserNotFound
}

func (m *mockUserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	if m.getByUsernameFn != nil {
		return m.getByUsernameFn(ctx, username)
	}
	return nil, model.ErrUserNotFound
}

func (m *mockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if m.existsByEmailFn != nil {
		return m.existsByEmailFn(ctx, email)
	}
	return false, nil
}

func (m *mockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	if m.existsByUsernameFn != nil {
		return m.existsByUsernameFn(ctx, username)
	}
	return false, nil
}

func (m *mockUserRepository) Exists(ctx context.Context, id int64) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, id)
	}
	return false, nil
}

func (m *mockUserRepository) Update(ctx context.Context, user *model.User) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, user)
	}
	return nil
}

func (m *mockUserRepository) Search(ctx context.Context, query string, limit, offset int) ([]model.User, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, query, limit, offset)
	}
	return nil, nil
}

func (m *mockUserRepository) CountPosts(ctx context.Context, userID int64) (int, error) {
	if m.countPostsFn != nil {
		return m.countPostsFn(ctx, userID)
	}
	return 0, nil
}

type mockPostRepository struct {
	createFn          func(ctx context.Context, post *model.Post) error
	getByIDFn         func(ctx context.Context, postID int64) (*model.Post, error)
	existsFn          func(ctx context.Context, postID int64) (bool, error)
	getAuthorIDFn     func(ctx context.Context, postID int64) (int64, error)
	deleteFn          func(ctx context.Context, postID, authorID int64) error
	listByAuthorsFn   func(ctx context.Context, authorIDs []int64, limit, offset int) ([]model.Post, error)
	countByAuthorsFn  func(ctx context.Context, authorIDs []int64) (int, error)
	listRepliesFn     func(ctx context.Context, parentID int64) ([]model.Post, error)
	insertSyntheticFn func(ctx context.Context, tx *sqlx.Tx, authorID, originalPostID int64) (int64, error)
	deleteSyntheticFn func(ctx context.Context, tx *sqlx.Tx, authorID, originalPostID int64) (bool, error)
}

func (m *mockPostRepository) Create(ctx context.Context, post *model.Post) error {
	if m.createFn != nil {
		return m.createFn(ctx, post)
	}
	return nil
}

func (m *mockPostRepository) GetByID(ctx context.Context, postID int64) (*model.Post, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, postID)
	}
	return nil, model.ErrPostNotFound
}

func (m *mockPostRepository) Exists(ctx context.Context, postID int64) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, postID)
	}
	return false, nil
}

func (m *mockPostRepository) GetAuthorID(ctx context.Context, postID int64) (int64, error) {
	if m.getAuthorIDFn != nil {
		return m.getAuthorIDFn(ctx, postID)
	}
	return 0, model.ErrPostNotFound
}

func (m *mockPostRepository) Delete(ctx context.Context, postID, authorID int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, postID, authorID)
	}
	return nil
}

func (m *mockPostRepository) ListByAuthors(ctx context.Context, authorIDs []int64, limit, offset int) ([]model.Post, error) {
	if m.listByAuthorsFn != nil {
		return m.listByAuthorsFn(ctx, authorIDs, limit, offset)
	}
	return nil, nil
}

func (m *mockPostRepository) CountByAuthors(ctx context.Context, authorIDs []int64) (int, error) {
	if m.countByAuthorsFn != nil {
		return m.countByAuthorsFn(ctx, authorIDs)
	}
	return 0, nil
}

func (m *mockPostRepository) ListReplies(ctx context.Context, parentID int64) ([]model.Post, error) {
	if m.listRepliesFn != nil {
		return m.listRepliesFn(ctx, parentID)
	}
	return nil, nil
}

func (m *mockPostRepository) InsertSynthetic(ctx context.Context, tx *sqlx.Tx, authorID, originalPostID int64) (int64, error) {
	if m.insertSyntheticFn != nil {
		return m.insertSyntheticFn(ctx, tx, authorID, originalPostID)
	}
	return 0, nil
}

func (m *mockPostRepository) DeleteSynthetic(ctx context.Context, tx *sqlx.Tx, authorID, originalPostID int64) (bool, error) {
	if m.deleteSyntheticFn != nil {
		return m.deleteSyntheticFn(ctx, tx, authorID, originalPostID)
	}
	return false, nil
}

type mockLikeRepository struct {
	insertFn func(ctx context.Context, userID, postID int64) error
	deleteFn func(ctx context.Context, userID, postID int64) (bool, error)
	existsFn func(ctx context.Context, userID, postID int64) (bool, error)
}

func (m *mockLikeRepository) Insert(ctx context.Context, userID, postID int64) error {
	if m.insertFn != nil {
		return m.insertFn(ctx, userID, postID)
	}
	return nil
}

func (m *mockLikeRepository) Delete(ctx context.Context, userID, postID int64) (bool, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, userID, postID)
	}
	return false, nil
}

func (m *mockLikeRepository) Exists(ctx context.Context, userID, postID int64) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, userID, postID)
	}
	return false, nil
}

type mockRepostRepository struct {
	insertFn func(ctx context.Context, tx *sqlx.Tx, userID, postID int64) error
	deleteFn func(ctx context.Context, tx *sqlx.Tx, userID, postID int64) (bool, error)
	existsFn func(ctx context.Context, userID, postID int64) (bool, error)
}

func (m *mockRepostRepository) Insert(ctx context.Context, tx *sqlx.Tx, userID, postID int64) error {
	if m.insertFn != nil {
		return m.insertFn(ctx, tx, userID, postID)
	}
	return nil
}

func (m *mockRepostRepository) Delete(ctx context.Context, tx *sqlx.Tx, userID, postID int64) (bool, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, tx, userID, postID)
	}
	return false, nil
}

func (m *mockRepostRepository) Exists(ctx context.Context, userID, postID int64) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, userID, postID)
	}
	return false, nil
}

type mockFollowRepository struct {
	insertFn          func(ctx context.Context, followerID, followingID int64) error
	deleteFn          func(ctx context.Context, followerID, followingID int64) (bool, error)
	existsFn          func(ctx context.Context, followerID, followingID int64) (bool, error)
	getFollowingIDsFn func(ctx context.Context, followerID int64) ([]int64, error)
	listFollowersFn   func(ctx context.Context, userID int64, limit, offset int) ([]model.UserSummary, error)
	listFollowingFn   func(ctx context.Context, userID int64, limit, offset int) ([]model.UserSummary, error)
	countFollowersFn  func(ctx context.Context, userID int64) (int, error)
	countFollowingFn  func(ctx context.Context, userID int64) (int, error)
}

func (m *mockFollowRepository) Insert(ctx context.Context, followerID, followingID int64) error {
	if m.insertFn != nil {
		return m.insertFn(ctx, followerID, followingID)
	}
	return nil
}

func (m *mockFollowRepository) Delete(ctx context.Context, followerID, followingID int64) (bool, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, followerID, followingID)
	}
	return false, nil
}

func (m *mockFollowRepository) Exists(ctx context.Context, followerID, followingID int64) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, followerID, followingID)
	}
	return false, nil
}

func (m *mockFollowRepository) GetFollowingIDs(ctx context.Context, followerID int64) ([]int64, error) {
	if m.getFollowingIDsFn != nil {
		return m.getFollowingIDsFn(ctx, followerID)
	}
	return nil, nil
}

func (m *mockFollowRepository) ListFollowers(ctx context.Context, userID int64, limit, offset int) ([]model.UserSummary, error) {
	if m.listFollowersFn != nil {
		return m.listFollowersFn(ctx, userID, limit, offset)
	}
	return nil, nil
}

func (m *mockFollowRepository) ListFollowing(ctx context.Context, userID int64, limit, offset int) ([]model.UserSummary, error) {
	if m.listFollowingFn != nil {
		return m.listFollowingFn(ctx, userID, limit, offset)
	}
	return nil, nil
}

func (m *mockFollowRepository) CountFollowers(ctx context.Context, userID int64) (int, error) {
	if m.countFollowersFn != nil {
		return m.countFollowersFn(ctx, userID)
	}
	return 0, nil
}

func (m *mockFollowRepository) CountFollowing(ctx context.Context, userID int64) (int, error) {
	if m.countFollowingFn != nil {
		return m.countFollowingFn(ctx, userID)
	}
	return 0, nil
}

type mockCommentRepository struct {
	createFn       func(ctx context.Context, comment *model.Comment) error
	getByIDFn      func(ctx context.Context, commentID int64) (*model.Comment, error)
	listTopLevelFn func(ctx context.Context, postID int64) ([]model.Comment, error)
	listRepliesFn  func(ctx context.Context, parentID int64) ([]model.Comment, error)
}

func (m *mockCommentRepository) Create(ctx context.Context, comment *model.Comment) error {
	if m.createFn != nil {
		return m.createFn(ctx, comment)
	}
	return nil
}

func (m *mockCommentRepository) GetByID(ctx context.Context, commentID int64) (*model.Comment, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, commentID)
	}
	return nil, model.ErrCommentNotFound
}

func (m *mockCommentRepository) ListTopLevel(ctx context.Context, postID int64) ([]model.Comment, error) {
	if m.listTopLevelFn != nil {
		return m.listTopLevelFn(ctx, postID)
	}
	return nil, nil
}

func (m *mockCommentRepository) ListReplies(ctx context.Context, parentID int64) ([]model.Comment, error) {
	if m.listRepliesFn != nil {
		return m.listRepliesFn(ctx, parentID)
	}
	return nil, nil
}

type mockNotificationRepository struct {
	createFn      func(ctx context.Context, n *model.Notification) error
	listFn        func(ctx context.Context, userID int64, filter model.NotificationFilter, limit, offset int) ([]model.Notification, error)
	statsFn       func(ctx context.Context, userID int64) (*model.NotificationStats, error)
	markReadFn    func(ctx context.Context, userID int64, ids []int64) (int, error)
	markAllReadFn func(ctx context.Context, userID int64) (int, error)
	archiveFn     func(ctx context.Context, userID, id int64) error
	deleteFn      func(ctx context.Context, userID, id int64) error
	deleteAllFn   func(ctx context.Context, userID int64) (int, error)

	created []*model.Notification
}

func (m *mockNotificationRepository) Create(ctx context.Context, n *model.Notification) error {
	m.created = append(m.created, n)
	if m.createFn != nil {
		return m.createFn(ctx, n)
	}
	return nil
}

func (m *mockNotificationRepository) List(ctx context.Context, userID int64, filter model.NotificationFilter, limit, offset int) ([]model.Notification, error) {
	if m.listFn != nil {
		return m.listFn(ctx, userID, filter, limit, offset)
	}
	return nil, nil
}

func (m *mockNotificationRepository) Stats(ctx context.Context, userID int64) (*model.NotificationStats, error) {
	if m.statsFn != nil {
		return m.statsFn(ctx, userID)
	}
	return &model.NotificationStats{}, nil
}

func (m *mockNotificationRepository) MarkRead(ctx context.Context, userID int64, ids []int64) (int, error) {
	if m.markReadFn != nil {
		return m.markReadFn(ctx, userID, ids)
	}
	return 0, nil
}

func (m *mockNotificationRepository) MarkAllRead(ctx context.Context, userID int64) (int, error) {
	if m.markAllReadFn != nil {
		return m.markAllReadFn(ctx, userID)
	}
	return 0, nil
}

func (m *mockNotificationRepository) Archive(ctx context.Context, userID, id int64) error {
	if m.archiveFn != nil {
		return m.archiveFn(ctx, userID, id)
	}
	return nil
}

func (m *mockNotificationRepository) Delete(ctx context.Context, userID, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, userID, id)
	}
	return nil
}

func (m *mockNotificationRepository) DeleteAll(ctx context.Context, userID int64) (int, error) {
	if m.deleteAllFn != nil {
		return m.deleteAllFn(ctx, userID)
	}
	return 0, nil
}

// mockNotifier records the interaction events it receives.
type mockNotifier struct {
	likes    []int64
	comments []int64
	reposts  []int64
	follows  []int64
}

func (m *mockNotifier) NotifyLike(ctx context.Context, actorID, recipientID, postID int64) {
	m.likes = append(m.likes, postID)
}

func (m *mockNotifier) NotifyComment(ctx context.Context, actorID, recipientID, postID, commentID int64) {
	m.comments = append(m.comments, commentID)
}

func (m *mockNotifier) NotifyRepost(ctx context.Context, actorID, recipientID, postID int64) {
	m.reposts = append(m.reposts, postID)
}

func (m *mockNotifier) NotifyFollow(ctx context.Context, actorID, recipientID int64) {
	m.follows = append(m.follows, recipientID)
}
