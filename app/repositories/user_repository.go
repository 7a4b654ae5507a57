package repositories

import (
	"strings"

	"sonervous/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerUserRepository implements UserRepository using BadgerDB
type BadgerUserRepository struct {
	db *badger.DB
}

// NewBadgerUserRepository creates a new BadgerUserRepository
func NewBadgerUserRepository(db *badger.DB) *BadgerUserRepository {
	return &BadgerUserRepository{db: db}
}

// Create creates a new user. The unique-email index is checked and written in
// the same transaction as the document, so duplicate signups fail atomically.
func (r *BadgerUserRepository) Create(user *models.User) error {
	return r.db.Update(func(txn *badger.Txn) error {
		if err := user.BeforeCreate(); err != nil {
			return err
		}

		emailKey := emailIndexKey(user.Email)
		if _, err := txn.Get(emailKey); err == nil {
			return ErrDuplicateEmail
		} else if err != badger.ErrKeyNotFound {
			return err
		}

		user.ID = newID()
		if err := setEntity(txn, []byte(UserKeyPrefix+user.ID), user); err != nil {
			return err
		}
		if err := txn.Set(emailKey, []byte(user.ID)); err != nil {
			return err
		}
		if user.SocialID != "" {
			return txn.Set(socialIndexKey(user.SocialID), []byte(user.ID))
		}
		return nil
	})
}

// GetByID retrieves a user by ID
func (r *BadgerUserRepository) GetByID(id string) (*models.User, error) {
	var user models.User
	err := r.db.View(func(txn *badger.Txn) error {
		return getEntity(txn, []byte(UserKeyPrefix+id), &user)
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail retrieves a user through the email index
func (r *BadgerUserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(emailIndexKey(email))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		var id string
		if err := item.Value(func(val []byte) error {
			id = string(val)
			return nil
		}); err != nil {
			return err
		}
		return getEntity(txn, []byte(UserKeyPrefix+id), &user)
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindOrCreateBySocialID looks up a federated account by its subject id and
// creates one when absent. Lookup and create share one transaction so
// concurrent first logins cannot mint two accounts.
func (r *BadgerUserRepository) FindOrCreateBySocialID(candidate *models.User) (*models.User, bool, error) {
	var resolved models.User
	created := false

	err := r.db.Update(func(txn *badger.Txn) error {
		created = false
		item, err := txn.Get(socialIndexKey(candidate.SocialID))
		if err == nil {
			var id string
			if err := item.Value(func(val []byte) error {
				id = string(val)
				return nil
			}); err != nil {
				return err
			}
			return getEntity(txn, []byte(UserKeyPrefix+id), &resolved)
		}
		if err != badger.ErrKeyNotFound {
			return err
		}

		// First login for this subject: create the account. The email
		// unique constraint still applies, so a collision with an
		// existing normal account surfaces here.
		if err := candidate.BeforeCreate(); err != nil {
			return err
		}
		emailKey := emailIndexKey(candidate.Email)
		if _, err := txn.Get(emailKey); err == nil {
			return ErrDuplicateEmail
		} else if err != badger.ErrKeyNotFound {
			return err
		}

		candidate.ID = newID()
		if err := setEntity(txn, []byte(UserKeyPrefix+candidate.ID), candidate); err != nil {
			return err
		}
		if err := txn.Set(emailKey, []byte(candidate.ID)); err != nil {
			return err
		}
		if err := txn.Set(socialIndexKey(candidate.SocialID), []byte(candidate.ID)); err != nil {
			return err
		}
		resolved = *candidate
		created = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return &resolved, created, nil
}

// Update updates an existing user document. Email changes keep the index in
// step within the same transaction.
func (r *BadgerUserRepository) Update(user *models.User) error {
	return r.db.Update(func(txn *badger.Txn) error {
		var existing models.User
		if err := getEntity(txn, []byte(UserKeyPrefix+user.ID), &existing); err != nil {
			return err
		}

		if !strings.EqualFold(existing.Email, user.Email) {
			newKey := emailIndexKey(user.Email)
			if _, err := txn.Get(newKey); err == nil {
				return ErrDuplicateEmail
			} else if err != badger.ErrKeyNotFound {
				return err
			}
			if err := txn.Delete(emailIndexKey(existing.Email)); err != nil {
				return err
			}
			if err := txn.Set(newKey, []byte(user.ID)); err != nil {
				return err
			}
		}

		return setEntity(txn, []byte(UserKeyPrefix+user.ID), user)
	})
}
