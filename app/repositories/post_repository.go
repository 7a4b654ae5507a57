package repositories

import (
	"sort"
	"strings"

	"sonervous/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerPostRepository implements PostRepository using BadgerDB
type BadgerPostRepository struct {
	db *badger.DB
}

// NewBadgerPostRepository creates a new BadgerPostRepository
func NewBadgerPostRepository(db *badger.DB) *BadgerPostRepository {
	return &BadgerPostRepository{db: db}
}

// Create creates a new post and appends its id to the author's post list in
// the same transaction.
func (r *BadgerPostRepository) Create(post *models.Post) error {
	return r.db.Update(func(txn *badger.Txn) error {
		var author models.User
		if err := getEntity(txn, []byte(UserKeyPrefix+post.AuthorID), &author); err != nil {
			return err
		}

		post.ID = newID()
		post.BeforeCreate()

		if err := setEntity(txn, []byte(PostKeyPrefix+post.ID), stripPostAuthor(post)); err != nil {
			return err
		}

		author.AddPostRef(post.ID)
		author.UpdatedAt = post.CreatedAt
		return setEntity(txn, []byte(UserKeyPrefix+author.ID), &author)
	})
}

// GetByID retrieves a post by ID
func (r *BadgerPostRepository) GetByID(id string) (*models.Post, error) {
	var post models.Post
	err := r.db.View(func(txn *badger.Txn) error {
		return getEntity(txn, []byte(PostKeyPrefix+id), &post)
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// List retrieves one page of posts sorted newest-first. A non-empty keyword
// filters on a case-insensitive substring match against title or content.
// The second return value is the total number of matches before paging.
func (r *BadgerPostRepository) List(keyword string, skip, limit int) ([]*models.Post, int, error) {
	var matches []*models.Post
	keyword = strings.ToLower(keyword)

	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(PostKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			var post models.Post
			err := item.Value(func(val []byte) error {
				return unmarshalEntity(val, &post)
			})
			if err != nil {
				return err
			}

			if keyword != "" &&
				!strings.Contains(strings.ToLower(post.Title), keyword) &&
				!strings.Contains(strings.ToLower(post.Content), keyword) {
				continue
			}
			matches = append(matches, &post)
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

// Update updates an existing post
func (r *BadgerPostRepository) Update(post *models.Post) error {
	return r.db.Update(func(txn *badger.Txn) error {
		key := []byte(PostKeyPrefix + post.ID)

		// Verify post exists
		var existing models.Post
		if err := getEntity(txn, key, &existing); err != nil {
			return err
		}

		post.Touch()
		return setEntity(txn, key, stripPostAuthor(post))
	})
}

// Delete deletes a post and pulls its id from the author's post list in the
// same transaction. Comments on the post are left in place.
func (r *BadgerPostRepository) Delete(id, authorID string) error {
	return r.db.Update(func(txn *badger.Txn) error {
		key := []byte(PostKeyPrefix + id)

		var post models.Post
		if err := getEntity(txn, key, &post); err != nil {
			return err
		}
		if err := txn.Delete(key); err != nil {
			return err
		}

		var author models.User
		err := getEntity(txn, []byte(UserKeyPrefix+authorID), &author)
		if err == ErrNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		// A missing reference is not an error; the pull is idempotent.
		_ = author.RemovePostRef(id)
		return setEntity(txn, []byte(UserKeyPrefix+author.ID), &author)
	})
}

// stripPostAuthor returns a storage copy without the expanded author, which
// belongs to responses only.
func stripPostAuthor(post *models.Post) *models.Post {
	clone := *post
	clone.Author = nil
	return &clone
}
