package repositories

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

const (
	// Key prefixes for different entity types
	UserKeyPrefix    = "user:"
	PostKeyPrefix    = "post:"
	CommentKeyPrefix = "comment:"

	// Index keys enforcing uniqueness and lookups outside the primary key
	UserEmailIndexPrefix  = "index:user:email:"
	UserSocialIndexPrefix = "index:user:social:"
)

var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

// newID generates a new document identifier.
func newID() string {
	return uuid.NewString()
}

// emailIndexKey builds the unique-email index key for an address.
func emailIndexKey(email string) []byte {
	return []byte(UserEmailIndexPrefix + strings.ToLower(strings.TrimSpace(email)))
}

// socialIndexKey builds the federated-identity index key for a subject id.
func socialIndexKey(socialID string) []byte {
	return []byte(UserSocialIndexPrefix + socialID)
}

// marshalEntity marshals an entity to JSON
func marshalEntity(entity interface{}) ([]byte, error) {
	data, err := json.Marshal(entity)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal entity: %v", err)
	}
	return data, nil
}

// unmarshalEntity unmarshals JSON data into an entity
func unmarshalEntity(data []byte, entity interface{}) error {
	if err := json.Unmarshal(data, entity); err != nil {
		return fmt.Errorf("failed to unmarshal entity: %v", err)
	}
	return nil
}

// getEntity loads and unmarshals the document at key, mapping a missing key
// to ErrNotFound.
func getEntity(txn *badger.Txn, key []byte, entity interface{}) error {
	item, err := txn.Get(key)
	if err == badger.ErrKeyNotFound {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return item.Value(func(val []byte) error {
		return unmarshalEntity(val, entity)
	})
}

// setEntity marshals and stores the document at key.
func setEntity(txn *badger.Txn, key []byte, entity interface{}) error {
	data, err := marshalEntity(entity)
	if err != nil {
		return err
	}
	return txn.Set(key, data)
}

// pageBounds clamps skip/limit against n items and returns the slice bounds.
func pageBounds(n, skip, limit int) (int, int) {
	if skip < 0 {
		skip = 0
	}
	if skip > n {
		skip = n
	}
	end := n
	if limit >= 0 && skip+limit < n {
		end = skip + limit
	}
	return skip, end
}
