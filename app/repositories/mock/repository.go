package mock

import (
	"sort"
	"strings"
	"sync"

	"sonervous/app/models"
	"sonervous/app/repositories"

	"github.com/google/uuid"
)

// In-memory repository implementations for service tests.

type UserRepository struct {
	users map[string]*models.User
	mutex sync.RWMutex
}

type PostRepository struct {
	posts map[string]*models.Post
	users *UserRepository
	mutex sync.RWMutex
}

type CommentRepository struct {
	comments map[string]*models.Comment
	posts    *PostRepository
	mutex    sync.RWMutex
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]*models.User)}
}

// NewPostRepository creates a post repository that maintains post refs on the
// given user repository, mirroring the transactional badger behavior.
func NewPostRepository(users *UserRepository) *PostRepository {
	return &PostRepository{posts: make(map[string]*models.Post), users: users}
}

func NewCommentRepository(posts *PostRepository) *CommentRepository {
	return &CommentRepository{comments: make(map[string]*models.Comment), posts: posts}
}

// UserRepository implementation

func (m *UserRepository) Create(user *models.User) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if err := user.BeforeCreate(); err != nil {
		return err
	}
	for _, existing := range m.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return repositories.ErrDuplicateEmail
		}
	}
	user.ID = uuid.NewString()
	m.users[user.ID] = user
	return nil
}

func (m *UserRepository) GetByID(id string) (*models.User, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	user, exists := m.users[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	clone := *user
	return &clone, nil
}

func (m *UserRepository) GetByEmail(email string) (*models.User, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	for _, user := range m.users {
		if strings.EqualFold(user.Email, email) {
			clone := *user
			return &clone, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *UserRepository) FindOrCreateBySocialID(candidate *models.User) (*models.User, bool, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	for _, user := range m.users {
		if user.SocialID == candidate.SocialID && user.RegisterType == models.RegisterTypeGoogle {
			clone := *user
			return &clone, false, nil
		}
	}
	if err := candidate.BeforeCreate(); err != nil {
		return nil, false, err
	}
	for _, existing := range m.users {
		if strings.EqualFold(existing.Email, candidate.Email) {
			return nil, false, repositories.ErrDuplicateEmail
		}
	}
	candidate.ID = uuid.NewString()
	m.users[candidate.ID] = candidate
	clone := *candidate
	return &clone, true, nil
}

func (m *UserRepository) Update(user *models.User) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.users[user.ID]; !exists {
		return repositories.ErrNotFound
	}
	m.users[user.ID] = user
	return nil
}

// PostRepository implementation

func (m *PostRepository) Create(post *models.Post) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.users.mutex.Lock()
	defer m.users.mutex.Unlock()

	author, exists := m.users.users[post.AuthorID]
	if !exists {
		return repositories.ErrNotFound
	}

	post.ID = uuid.NewString()
	post.BeforeCreate()
	stored := *post
	stored.Author = nil
	m.posts[post.ID] = &stored

	author.AddPostRef(post.ID)
	return nil
}

func (m *PostRepository) GetByID(id string) (*models.Post, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	post, exists := m.posts[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	clone := *post
	return &clone, nil
}

func (m *PostRepository) List(keyword string, skip, limit int) ([]*models.Post, int, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	keyword = strings.ToLower(keyword)
	var matches []*models.Post
	for _, post := range m.posts {
		if keyword != "" &&
			!strings.Contains(strings.ToLower(post.Title), keyword) &&
			!strings.Contains(strings.ToLower(post.Content), keyword) {
			continue
		}
		clone := *post
		matches = append(matches, &clone)
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].CreatedAt.After(matches[j].CreatedAt)
	})

	total := len(matches)
	if skip < 0 {
		skip = 0
	}
	if skip > total {
		skip = total
	}
	end := total
	if limit >= 0 && skip+limit < total {
		end = skip + limit
	}
	return matches[skip:end], total, nil
}

func (m *PostRepository) Update(post *models.Post) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.posts[post.ID]; !exists {
		return repositories.ErrNotFound
	}
	post.Touch()
	stored := *post
	stored.Author = nil
	m.posts[post.ID] = &stored
	return nil
}

func (m *PostRepository) Delete(id, authorID string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.posts[id]; !exists {
		return repositories.ErrNotFound
	}
	delete(m.posts, id)

	m.users.mutex.Lock()
	defer m.users.mutex.Unlock()
	if author, exists := m.users.users[authorID]; exists {
		_ = author.RemovePostRef(id)
	}
	return nil
}

// CommentRepository implementation

func (m *CommentRepository) Create(comment *models.Comment) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.posts.mutex.Lock()
	defer m.posts.mutex.Unlock()

	post, exists := m.posts.posts[comment.PostID]
	if !exists {
		return repositories.ErrNotFound
	}

	comment.ID = uuid.NewString()
	comment.BeforeCreate()
	stored := *comment
	stored.Author = nil
	m.comments[comment.ID] = &stored

	post.AddCommentRef(comment.ID)
	return nil
}

func (m *CommentRepository) GetByID(id string) (*models.Comment, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	comment, exists := m.comments[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	clone := *comment
	return &clone, nil
}

func (m *CommentRepository) ListByPost(postID string, skip, limit int) ([]*models.Comment, int, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	var matches []*models.Comment
	for _, comment := range m.comments {
		if comment.PostID == postID {
			clone := *comment
			matches = append(matches, &clone)
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].CreatedAt.After(matches[j].CreatedAt)
	})

	total := len(matches)
	if skip < 0 {
		skip = 0
	}
	if skip > total {
		skip = total
	}
	end := total
	if limit >= 0 && skip+limit < total {
		end = skip + limit
	}
	return matches[skip:end], total, nil
}

func (m *CommentRepository) UpdateByPost(id, postID, content string) (*models.Comment, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	comment, exists := m.comments[id]
	if !exists || comment.PostID != postID {
		return nil, repositories.ErrNotFound
	}
	comment.Content = content
	comment.Touch()
	clone := *comment
	return &clone, nil
}

func (m *CommentRepository) DeleteByPost(id, postID string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	comment, exists := m.comments[id]
	if !exists || comment.PostID != postID {
		return repositories.ErrNotFound
	}
	delete(m.comments, id)

	m.posts.mutex.Lock()
	defer m.posts.mutex.Unlock()
	if post, ok := m.posts.posts[postID]; ok {
		_ = post.RemoveCommentRef(id)
	}
	return nil
}
