package repositories

import (
	"sort"

	"sonervous/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerCommentRepository implements CommentRepository using BadgerDB
type BadgerCommentRepository struct {
	db *badger.DB
}

// NewBadgerCommentRepository creates a new BadgerCommentRepository
func NewBadgerCommentRepository(db *badger.DB) *BadgerCommentRepository {
	return &BadgerCommentRepository{db: db}
}

// Create creates a new comment and appends its id to the parent post's
// comment list in the same transaction.
func (r *BadgerCommentRepository) Create(comment *models.Comment) error {
	return r.db.Update(func(txn *badger.Txn) error {
		var post models.Post
		if err := getEntity(txn, []byte(PostKeyPrefix+comment.PostID), &post); err != nil {
			return err
		}

		comment.ID = newID()
		comment.BeforeCreate()

		if err := setEntity(txn, []byte(CommentKeyPrefix+comment.ID), stripCommentAuthor(comment)); err != nil {
			return err
		}

		post.AddCommentRef(comment.ID)
		post.UpdatedAt = comment.CreatedAt
		return setEntity(txn, []byte(PostKeyPrefix+post.ID), &post)
	})
}

// GetByID retrieves a comment by ID
func (r *BadgerCommentRepository) GetByID(id string) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.View(func(txn *badger.Txn) error {
		return getEntity(txn, []byte(CommentKeyPrefix+id), &comment)
	})
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListByPost retrieves one page of a post's comments sorted newest-first,
// along with the total count for the post.
func (r *BadgerCommentRepository) ListByPost(postID string, skip, limit int) ([]*models.Comment, int, error) {
	var matches []*models.Comment

	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(CommentKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			var comment models.Comment
			err := item.Value(func(val []byte) error {
				return unmarshalEntity(val, &comment)
			})
			if err != nil {
				return err
			}

			if comment.PostID == postID {
				matches = append(matches, &comment)
			}
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].CreatedAt.After(matches[j].CreatedAt)
	})

	total := len(matches)
	start, end := pageBounds(total, skip, limit)
	return matches[start:end], total, nil
}

// UpdateByPost updates a comment's content, filtering on the (comment, post)
// pair. A comment that exists under a different post reads as not found.
func (r *BadgerCommentRepository) UpdateByPost(id, postID, content string) (*models.Comment, error) {
	var updated models.Comment

	err := r.db.Update(func(txn *badger.Txn) error {
		key := []byte(CommentKeyPrefix + id)
		if err := getEntity(txn, key, &updated); err != nil {
			return err
		}
		if updated.PostID != postID {
			return ErrNotFound
		}

		updated.Content = content
		updated.Touch()
		return setEntity(txn, key, stripCommentAuthor(&updated))
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteByPost deletes a comment, filtering on the (comment, post) pair, and
// pulls its id from the parent post's comment list in the same transaction.
func (r *BadgerCommentRepository) DeleteByPost(id, postID string) error {
	return r.db.Update(func(txn *badger.Txn) error {
		key := []byte(CommentKeyPrefix + id)

		var comment models.Comment
		if err := getEntity(txn, key, &comment); err != nil {
			return err
		}
		if comment.PostID != postID {
			return ErrNotFound
		}
		if err := txn.Delete(key); err != nil {
			return err
		}

		var post models.Post
		err := getEntity(txn, []byte(PostKeyPrefix+postID), &post)
		if err == ErrNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		_ = post.RemoveCommentRef(id)
		return setEntity(txn, []byte(PostKeyPrefix+post.ID), &post)
	})
}

// stripCommentAuthor returns a storage copy without the expanded author.
func stripCommentAuthor(comment *models.Comment) *models.Comment {
	clone := *comment
	clone.Author = nil
	return &clone
}
