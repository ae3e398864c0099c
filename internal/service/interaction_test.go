package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"

	"github.com/n200534/socioconnect/internal/model"
)

// newToggleDB backs the repost toggle's transaction with a mock driver so
// begin/commit can be asserted without a live database.
func newToggleDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("open sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "sqlmock"), mock
}

func newInteractionService(
	likes *mockLikeRepository,
	reposts *mockRepostRepository,
	follows *mockFollowRepository,
	comments *mockCommentRepository,
	posts *mockPostRepository,
	users *mockUserRepository,
	notifier *mockNotifier,
) *InteractionService {
	return NewInteractionService(likes, reposts, follows, comments, posts, users, notifier, nil)
}

func TestInteractionService_ToggleLike_On(t *testing.T) {
	notifier := &mockNotifier{}
	likes := &mockLikeRepository{
		deleteFn: func(ctx context.Context, userID, postID int64) (bool, error) {
			return false, nil // nothing to delete: edge was absent
		},
	}
	posts := &mockPostRepository{
		getAuthorIDFn: func(ctx context.Context, postID int64) (int64, error) {
			return 99, nil
		},
	}
	svc := newInteractionService(likes, &mockRepostRepository{}, &mockFollowRepository{},
		&mockCommentRepository{}, posts, &mockUserRepository{}, notifier)

	result, err := svc.ToggleLike(context.Background(), 1, 42)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if !result.Active {
		t.Error("expected liked=true after toggling on")
	}
	if len(notifier.likes) != 1 {
		t.Errorf("expected 1 like notification, got %d", len(notifier.likes))
	}
}

func TestInteractionService_ToggleLike_Off(t *testing.T) {
	notifier := &mockNotifier{}
	likes := &mockLikeRepository{
		deleteFn: func(ctx context.Context, userID, postID int64) (bool, error) {
			return true, nil
		},
	}
	posts := &mockPostRepository{
		getAuthorIDFn: func(ctx context.Context, postID int64) (int64, error) {
			return 99, nil
		},
	}
	svc := newInteractionService(likes, &mockRepostRepository{}, &mockFollowRepository{},
		&mockCommentRepository{}, posts, &mockUserRepository{}, notifier)

	result, err := svc.ToggleLike(context.Background(), 1, 42)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if result.Active {
		t.Error("expected liked=false after toggling off")
	}
	if len(notifier.likes) != 0 {
		t.Error("unliking must not notify")
	}
}

func TestInteractionService_ToggleLike_PostNotFound(t *testing.T) {
	svc := newInteractionService(&mockLikeRepository{}, &mockRepostRepository{},
		&mockFollowRepository{}, &mockCommentRepository{}, &mockPostRepository{},
		&mockUserRepository{}, &mockNotifier{})

	_, err := svc.ToggleLike(context.Background(), 1, 42)
	if !errors.Is(err, model.ErrPostNotFound) {
		t.Errorf("expected ErrPostNotFound, got: %v", err)
	}
}

func TestInteractionService_ToggleLike_ConcurrentDuplicate(t *testing.T) {
	// The delete sees no edge, then the insert loses the race against another
	// request. The unique constraint error must surface as the conflict
	// sentinel rather than a raw driver error.
	likes := &mockLikeRepository{
		deleteFn: func(ctx context.Context, userID, postID int64) (bool, error) {
			return false, nil
		},
		insertFn: func(ctx context.Context, userID, postID int64) error {
			return model.ErrAlreadyLiked
		},
	}
	posts := &mockPostRepository{
		getAuthorIDFn: func(ctx context.Context, postID int64) (int64, error) {
			return 99, nil
		},
	}
	svc := newInteractionService(likes, &mockRepostRepository{}, &mockFollowRepository{},
		&mockCommentRepository{}, posts, &mockUserRepository{}, &mockNotifier{})

	_, err := svc.ToggleLike(context.Background(), 1, 42)
	if !errors.Is(err, model.ErrAlreadyLiked) {
		t.Errorf("expected ErrAlreadyLiked, got: %v", err)
	}
}

func TestInteractionService_ToggleRepost_PostNotFound(t *testing.T) {
	svc := newInteractionService(&mockLikeRepository{}, &mockRepostRepository{},
		&mockFollowRepository{}, &mockCommentRepository{}, &mockPostRepository{},
		&mockUserRepository{}, &mockNotifier{})

	_, err := svc.ToggleRepost(context.Background(), 1, 42)
	if !errors.Is(err, model.ErrPostNotFound) {
		t.Errorf("expected ErrPostNotFound, got: %v", err)
	}
}

func TestInteractionService_ToggleRepost_On(t *testing.T) {
	db, mock := newToggleDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	notifier := &mockNotifier{}
	edgeInserted := false
	syntheticInserted := false
	reposts := &mockRepostRepository{
		existsFn: func(ctx context.Context, userID, postID int64) (bool, error) {
			return false, nil
		},
		insertFn: func(ctx context.Context, tx *sqlx.Tx, userID, postID int64) error {
			if tx == nil {
				t.Error("repost edge must be inserted inside the transaction")
			}
			edgeInserted = true
			return nil
		},
	}
	posts := &mockPostRepository{
		getAuthorIDFn: func(ctx context.Context, postID int64) (int64, error) {
			return 99, nil
		},
		insertSyntheticFn: func(ctx context.Context, tx *sqlx.Tx, authorID, originalPostID int64) (int64, error) {
			if tx == nil {
				t.Error("synthetic post must be inserted inside the transaction")
			}
			if !edgeInserted {
				t.Error("synthetic post must follow the edge insert")
			}
			syntheticInserted = true
			return 200, nil
		},
	}
	svc := NewInteractionService(&mockLikeRepository{}, reposts, &mockFollowRepository{},
		&mockCommentRepository{}, posts, &mockUserRepository{}, notifier, db)

	result, err := svc.ToggleRepost(context.Background(), 1, 42)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if !result.Active {
		t.Error("expected reposted=true after toggling on")
	}
	if !edgeInserted || !syntheticInserted {
		t.Error("toggling on must create both the edge and the synthetic post")
	}
	if len(notifier.reposts) != 1 {
		t.Errorf("expected 1 repost notification, got %d", len(notifier.reposts))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("transaction expectations not met: %v", err)
	}
}

func TestInteractionService_ToggleRepost_Off(t *testing.T) {
	db, mock := newToggleDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	notifier := &mockNotifier{}
	edgeDeleted := false
	syntheticDeleted := false
	reposts := &mockRepostRepository{
		existsFn: func(ctx context.Context, userID, postID int64) (bool, error) {
			return true, nil
		},
		deleteFn: func(ctx context.Context, tx *sqlx.Tx, userID, postID int64) (bool, error) {
			edgeDeleted = true
			return true, nil
		},
	}
	posts := &mockPostRepository{
		getAuthorIDFn: func(ctx context.Context, postID int64) (int64, error) {
			return 99, nil
		},
		deleteSyntheticFn: func(ctx context.Context, tx *sqlx.Tx, authorID, originalPostID int64) (bool, error) {
			syntheticDeleted = true
			return true, nil
		},
	}
	svc := NewInteractionService(&mockLikeRepository{}, reposts, &mockFollowRepository{},
		&mockCommentRepository{}, posts, &mockUserRepository{}, notifier, db)

	result, err := svc.ToggleRepost(context.Background(), 1, 42)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if result.Active {
		t.Error("expected reposted=false after toggling off")
	}
	if !edgeDeleted || !syntheticDeleted {
		t.Error("toggling off must remove both the edge and the synthetic post")
	}
	if len(notifier.reposts) != 0 {
		t.Error("removing a repost must not notify")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("transaction expectations not met: %v", err)
	}
}

func TestInteractionService_ToggleRepost_Off_SyntheticAlreadyGone(t *testing.T) {
	db, mock := newToggleDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	reposts := &mockRepostRepository{
		existsFn: func(ctx context.Context, userID, postID int64) (bool, error) {
			return true, nil
		},
		deleteFn: func(ctx context.Context, tx *sqlx.Tx, userID, postID int64) (bool, error) {
			return true, nil
		},
	}
	posts := &mockPostRepository{
		getAuthorIDFn: func(ctx context.Context, postID int64) (int64, error) {
			return 99, nil
		},
		deleteSyntheticFn: func(ctx context.Context, tx *sqlx.Tx, authorID, originalPostID int64) (bool, error) {
			return false, nil
		},
	}
	svc := NewInteractionService(&mockLikeRepository{}, reposts, &mockFollowRepository{},
		&mockCommentRepository{}, posts, &mockUserRepository{}, &mockNotifier{}, db)

	result, err := svc.ToggleRepost(context.Background(), 1, 42)
	if err != nil {
		t.Fatalf("a missing synthetic post must not abort the edge removal, got: %v", err)
	}
	if result.Active {
		t.Error("expected reposted=false after toggling off")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("transaction expectations not met: %v", err)
	}
}

func TestInteractionService_ToggleRepost_RollsBackOnInsertError(t *testing.T) {
	db, mock := newToggleDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	reposts := &mockRepostRepository{
		existsFn: func(ctx context.Context, userID, postID int64) (bool, error) {
			return false, nil
		},
		insertFn: func(ctx context.Context, tx *sqlx.Tx, userID, postID int64) error {
			return model.ErrAlreadyReposted
		},
	}
	posts := &mockPostRepository{
		getAuthorIDFn: func(ctx context.Context, postID int64) (int64, error) {
			return 99, nil
		},
	}
	svc := NewInteractionService(&mockLikeRepository{}, reposts, &mockFollowRepository{},
		&mockCommentRepository{}, posts, &mockUserRepository{}, &mockNotifier{}, db)

	_, err := svc.ToggleRepost(context.Background(), 1, 42)
	if !errors.Is(err, model.ErrAlreadyReposted) {
		t.Errorf("expected ErrAlreadyReposted, got: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("transaction expectations not met: %v", err)
	}
}

func TestInteractionService_ToggleFollow_Self(t *testing.T) {
	svc := newInteractionService(&mockLikeRepository{}, &mockRepostRepository{},
		&mockFollowRepository{}, &mockCommentRepository{}, &mockPostRepository{},
		&mockUserRepository{}, &mockNotifier{})

	_, err := svc.ToggleFollow(context.Background(), 7, 7)
	if !errors.Is(err, model.ErrCannotFollowSelf) {
		t.Errorf("expected ErrCannotFollowSelf, got: %v", err)
	}
}

func TestInteractionService_ToggleFollow_TargetNotFound(t *testing.T) {
	users := &mockUserRepository{
		existsFn: func(ctx context.Context, id int64) (bool, error) {
			return false, nil
		},
	}
	svc := newInteractionService(&mockLikeRepository{}, &mockRepostRepository{},
		&mockFollowRepository{}, &mockCommentRepository{}, &mockPostRepository{},
		users, &mockNotifier{})

	_, err := svc.ToggleFollow(context.Background(), 1, 2)
	if !errors.Is(err, model.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got: %v", err)
	}
}

func TestInteractionService_ToggleFollow_OnThenOff(t *testing.T) {
	notifier := &mockNotifier{}
	edgePresent := false
	follows := &mockFollowRepository{
		deleteFn: func(ctx context.Context, followerID, followingID int64) (bool, error) {
			if edgePresent {
				edgePresent = false
				return true, nil
			}
			return false, nil
		},
		insertFn: func(ctx context.Context, followerID, followingID int64) error {
			edgePresent = true
			return nil
		},
	}
	users := &mockUserRepository{
		existsFn: func(ctx context.Context, id int64) (bool, error) { return true, nil },
	}
	svc := newInteractionService(&mockLikeRepository{}, &mockRepostRepository{}, follows,
		&mockCommentRepository{}, &mockPostRepository{}, users, notifier)

	// First toggle follows.
	result, err := svc.ToggleFollow(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("first toggle: %v", err)
	}
	if !result.Active {
		t.Error("expected following=true after first toggle")
	}

	// Second toggle restores the original state.
	result, err = svc.ToggleFollow(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if result.Active {
		t.Error("expected following=false after second toggle")
	}
	if edgePresent {
		t.Error("edge should be gone after the double toggle")
	}
	if len(notifier.follows) != 1 {
		t.Errorf("only the follow should notify, got %d notifications", len(notifier.follows))
	}
}

func TestInteractionService_CreateComment(t *testing.T) {
	posts := &mockPostRepository{
		getAuthorIDFn: func(ctx context.Context, postID int64) (int64, error) {
			if postID == 42 {
				return 99, nil
			}
			return 0, model.ErrPostNotFound
		},
	}
	parent := &model.Comment{ID: 5, PostID: 42}
	comments := &mockCommentRepository{
		getByIDFn: func(ctx context.Context, commentID int64) (*model.Comment, error) {
			if commentID == 5 {
				return parent, nil
			}
			return nil, model.ErrCommentNotFound
		},
		createFn: func(ctx context.Context, comment *model.Comment) error {
			comment.ID = 100
			return nil
		},
	}
	notifier := &mockNotifier{}
	svc := newInteractionService(&mockLikeRepository{}, &mockRepostRepository{},
		&mockFollowRepository{}, comments, posts, &mockUserRepository{}, notifier)

	t.Run("success", func(t *testing.T) {
		comment, err := svc.CreateComment(context.Background(), 1, 42, &model.CreateCommentRequest{
			Content: "  nice post  ",
		})
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if comment.Content != "nice post" {
			t.Errorf("content = %q, want trimmed %q", comment.Content, "nice post")
		}
		if len(notifier.comments) != 1 {
			t.Errorf("expected 1 comment notification, got %d", len(notifier.comments))
		}
	})

	t.Run("empty content", func(t *testing.T) {
		_, err := svc.CreateComment(context.Background(), 1, 42, &model.CreateCommentRequest{Content: "   "})
		if !errors.Is(err, model.ErrCommentContentRequired) {
			t.Errorf("expected ErrCommentContentRequired, got: %v", err)
		}
	})

	t.Run("content too long", func(t *testing.T) {
		long := make([]byte, model.MaxCommentLength+1)
		for i := range long {
			long[i] = 'a'
		}
		_, err := svc.CreateComment(context.Background(), 1, 42, &model.CreateCommentRequest{Content: string(long)})
		if !errors.Is(err, model.ErrCommentContentTooLong) {
			t.Errorf("expected ErrCommentContentTooLong, got: %v", err)
		}
	})

	t.Run("multibyte content counts characters not bytes", func(t *testing.T) {
		// 400 two-byte characters stay well under the 500-character limit
		// even though the byte length exceeds it.
		comment, err := svc.CreateComment(context.Background(), 1, 42, &model.CreateCommentRequest{
			Content: strings.Repeat("é", 400),
		})
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if comment == nil {
			t.Fatal("expected a comment back")
		}

		_, err = svc.CreateComment(context.Background(), 1, 42, &model.CreateCommentRequest{
			Content: strings.Repeat("é", model.MaxCommentLength+1),
		})
		if !errors.Is(err, model.ErrCommentContentTooLong) {
			t.Errorf("expected ErrCommentContentTooLong past the character limit, got: %v", err)
		}
	})

	t.Run("reply to valid parent", func(t *testing.T) {
		parentID := int64(5)
		comment, err := svc.CreateComment(context.Background(), 1, 42, &model.CreateCommentRequest{
			Content:  "agreed",
			ParentID: &parentID,
		})
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if comment.ParentID == nil || *comment.ParentID != 5 {
			t.Error("expected parent ID to be carried onto the comment")
		}
	})

	t.Run("parent on a different post", func(t *testing.T) {
		otherParent := int64(5)
		otherPosts := &mockPostRepository{
			getAuthorIDFn: func(ctx context.Context, postID int64) (int64, error) {
				return 99, nil
			},
		}
		otherComments := &mockCommentRepository{
			getByIDFn: func(ctx context.Context, commentID int64) (*model.Comment, error) {
				return &model.Comment{ID: 5, PostID: 77}, nil
			},
		}
		svc := newInteractionService(&mockLikeRepository{}, &mockRepostRepository{},
			&mockFollowRepository{}, otherComments, otherPosts, &mockUserRepository{}, &mockNotifier{})

		_, err := svc.CreateComment(context.Background(), 1, 42, &model.CreateCommentRequest{
			Content:  "agreed",
			ParentID: &otherParent,
		})
		if !errors.Is(err, model.ErrParentCommentMismatch) {
			t.Errorf("expected ErrParentCommentMismatch, got: %v", err)
		}
	})
}

func TestInteractionService_ListComments(t *testing.T) {
	posts := &mockPostRepository{
		existsFn: func(ctx context.Context, postID int64) (bool, error) {
			return postID == 42, nil
		},
	}
	comments := &mockCommentRepository{
		listTopLevelFn: func(ctx context.Context, postID int64) ([]model.Comment, error) {
			return []model.Comment{{ID: 1, PostID: 42}, {ID: 2, PostID: 42}}, nil
		},
		listRepliesFn: func(ctx context.Context, parentID int64) ([]model.Comment, error) {
			if parentID == 1 {
				return []model.Comment{{ID: 3, PostID: 42}}, nil
			}
			return nil, nil
		},
	}
	svc := newInteractionService(&mockLikeRepository{}, &mockRepostRepository{},
		&mockFollowRepository{}, comments, posts, &mockUserRepository{}, &mockNotifier{})

	got, err := svc.ListComments(context.Background(), 42)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 top-level comments, got %d", len(got))
	}
	if len(got[0].Replies) != 1 {
		t.Errorf("expected 1 reply under the first comment, got %d", len(got[0].Replies))
	}
	if len(got[1].Replies) != 0 {
		t.Errorf("expected no replies under the second comment, got %d", len(got[1].Replies))
	}

	_, err = svc.ListComments(context.Background(), 404)
	if !errors.Is(err, model.ErrPostNotFound) {
		t.Errorf("expected ErrPostNotFound for an unknown post, got: %v", err)
	}
}
