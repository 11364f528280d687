// Package mocks provides in-memory mock implementations of the repository
// interfaces for testing services without a live Supabase project.
package mocks

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"mathclasses-backend/internal/domain"
	"mathclasses-backend/internal/repository"
)

// MockCatalogRepository is an in-memory CatalogRepository.
type MockCatalogRepository struct {
	mu sync.RWMutex

	topics    map[string]*domain.Topic
	resources map[string]*domain.Resource
	related   map[string][]string // topicID -> related topic IDs

	shouldFailOn map[string]error
}

// NewMockCatalogRepository creates an empty mock catalog repository.
func NewMockCatalogRepository() *MockCatalogRepository {
	return &MockCatalogRepository{
		topics:       make(map[string]*domain.Topic),
		resources:    make(map[string]*domain.Resource),
		related:      make(map[string][]string),
		shouldFailOn: make(map[string]error),
	}
}

// SetError configures the mock to return an error for a specific method.
func (m *MockCatalogRepository) SetError(method string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shouldFailOn[method] = err
}

// ClearErrors removes all configured errors.
func (m *MockCatalogRepository) ClearErrors() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shouldFailOn = make(map[string]error)
}

func (m *MockCatalogRepository) checkError(method string) error {
	if err, exists := m.shouldFailOn[method]; exists {
		return err
	}
	return nil
}

// AddTopic seeds a topic row.
func (m *MockCatalogRepository) AddTopic(t domain.Topic) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.topics[t.ID] = &t
}

// AddResource seeds a resource row.
func (m *MockCatalogRepository) AddResource(r domain.Resource) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resources[r.ID] = &r
}

// SetRelated seeds the related-topic links for a topic.
func (m *MockCatalogRepository) SetRelated(topicID string, relatedIDs []string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.related[topicID] = append([]string(nil), relatedIDs...)
}

func (m *MockCatalogRepository) ListTopics(ctx context.Context) ([]domain.Topic, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.checkError("ListTopics"); err != nil {
		return nil, err
	}

	topics := make([]domain.Topic, 0, len(m.topics))
	for _, t := range m.topics {
		topics = append(topics, *t)
	}
	sort.Slice(topics, func(i, j int) bool { return topics[i].Name < topics[j].Name })
	return topics, nil
}

func (m *MockCatalogRepository) GetTopic(ctx context.Context, topicID string) (*domain.Topic, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.checkError("GetTopic"); err != nil {
		return nil, err
	}

	t, exists := m.topics[topicID]
	if !exists {
		return nil, repository.NotFound("topic", topicID)
	}
	copied := *t
	return &copied, nil
}

func (m *MockCatalogRepository) ListResourcesForTopic(ctx context.Context, topicID string) ([]domain.Resource, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.checkError("ListResourcesForTopic"); err != nil {
		return nil, err
	}

	var resources []domain.Resource
	for _, r := range m.resources {
		if r.TopicID == topicID {
			resources = append(resources, *r)
		}
	}
	sort.Slice(resources, func(i, j int) bool { return resources[i].Title < resources[j].Title })
	return resources, nil
}

func (m *MockCatalogRepository) ListRelatedTopicIDs(ctx context.Context, topicID string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.checkError("ListRelatedTopicIDs"); err != nil {
		return nil, err
	}
	return append([]string(nil), m.related[topicID]...), nil
}

func (m *MockCatalogRepository) ListTopicsByIDs(ctx context.Context, topicIDs []string) ([]domain.Topic, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.checkError("ListTopicsByIDs"); err != nil {
		return nil, err
	}

	var topics []domain.Topic
	for _, id := range topicIDs {
		if t, exists := m.topics[id]; exists {
			topics = append(topics, *t)
		}
	}
	return topics, nil
}

func (m *MockCatalogRepository) GetResource(ctx context.Context, resourceID string) (*domain.Resource, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.checkError("GetResource"); err != nil {
		return nil, err
	}

	r, exists := m.resources[resourceID]
	if !exists {
		return nil, repository.NotFound("resource", resourceID)
	}
	copied := *r
	return &copied, nil
}

func (m *MockCatalogRepository) CreateResource(ctx context.Context, resource domain.Resource) (*domain.Resource, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkError("CreateResource"); err != nil {
		return nil, err
	}

	stored := resource
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now()
	}
	m.resources[stored.ID] = &stored
	copied := stored
	return &copied, nil
}

func (m *MockCatalogRepository) DeleteResource(ctx context.Context, resourceID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkError("DeleteResource"); err != nil {
		return err
	}

	if _, exists := m.resources[resourceID]; !exists {
		return repository.NotFound("resource", resourceID)
	}
	delete(m.resources, resourceID)
	return nil
}

// MockSavedResourceRepository is an in-memory SavedResourceRepository backed
// by a pair-keyed map, so the uniqueness constraint of the real table is
// reproduced exactly.
type MockSavedResourceRepository struct {
	mu sync.Mutex

	pairs map[string]time.Time // userID + "\x00" + resourceID -> created at

	shouldFailOn map[string]error
}

// NewMockSavedResourceRepository creates an empty mock saved-resource repository.
func NewMockSavedResourceRepository() *MockSavedResourceRepository {
	return &MockSavedResourceRepository{
		pairs:        make(map[string]time.Time),
		shouldFailOn: make(map[string]error),
	}
}

// SetError configures the mock to return an error for a specific method.
func (m *MockSavedResourceRepository) SetError(method string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shouldFailOn[method] = err
}

// ClearErrors removes all configured errors.
func (m *MockSavedResourceRepository) ClearErrors() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shouldFailOn = make(map[string]error)
}

func (m *MockSavedResourceRepository) checkError(method string) error {
	if err, exists := m.shouldFailOn[method]; exists {
		return err
	}
	return nil
}

func pairKey(userID, resourceID string) string {
	return userID + "\x00" + resourceID
}

func (m *MockSavedResourceRepository) Exists(ctx context.Context, userID, resourceID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkError("Exists"); err != nil {
		return false, err
	}
	_, exists := m.pairs[pairKey(userID, resourceID)]
	return exists, nil
}

func (m *MockSavedResourceRepository) Insert(ctx context.Context, userID, resourceID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkError("Insert"); err != nil {
		return err
	}

	key := pairKey(userID, resourceID)
	if _, exists := m.pairs[key]; exists {
		return fmt.Errorf("saved_resources (%s, %s): %w", userID, resourceID, repository.ErrConflict)
	}
	m.pairs[key] = time.Now()
	return nil
}

func (m *MockSavedResourceRepository) Delete(ctx context.Context, userID, resourceID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkError("Delete"); err != nil {
		return err
	}
	delete(m.pairs, pairKey(userID, resourceID))
	return nil
}

func (m *MockSavedResourceRepository) ListResourceIDs(ctx context.Context, userID string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkError("ListResourceIDs"); err != nil {
		return nil, err
	}

	prefix := userID + "\x00"
	var ids []string
	for key := range m.pairs {
		if len(key) > len(prefix) && key[:len(prefix)] == prefix {
			ids = append(ids, key[len(prefix):])
		}
	}
	sort.Strings(ids)
	return ids, nil
}

// Count returns the number of stored pairs. Test helper.
func (m *MockSavedResourceRepository) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pairs)
}

// MockFileStore is an in-memory FileStore. Signed URLs follow the shape of
// real ones closely enough for assertions on path and expiry.
type MockFileStore struct {
	mu sync.Mutex

	blobs map[string][]byte

	shouldFailOn map[string]error
}

// NewMockFileStore creates an empty mock file store.
func NewMockFileStore() *MockFileStore {
	return &MockFileStore{
		blobs:        make(map[string][]byte),
		shouldFailOn: make(map[string]error),
	}
}

// SetError configures the mock to return an error for a specific method.
func (m *MockFileStore) SetError(method string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shouldFailOn[method] = err
}

func (m *MockFileStore) checkError(method string) error {
	if err, exists := m.shouldFailOn[method]; exists {
		return err
	}
	return nil
}

func (m *MockFileStore) Upload(ctx context.Context, path string, data io.Reader) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkError("Upload"); err != nil {
		return err
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, data); err != nil {
		return err
	}
	m.blobs[path] = buf.Bytes()
	return nil
}

func (m *MockFileStore) Remove(ctx context.Context, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkError("Remove"); err != nil {
		return err
	}
	delete(m.blobs, path)
	return nil
}

func (m *MockFileStore) SignedURL(ctx context.Context, path string, ttl time.Duration) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkError("SignedURL"); err != nil {
		return "", err
	}
	expiry := time.Now().Add(ttl).Unix()
	return fmt.Sprintf("https://mock.storage/sign/%s?expires=%d", path, expiry), nil
}

// Count returns the number of stored blobs. Test helper.
func (m *MockFileStore) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.blobs)
}

// Has reports whether a blob is stored at path. Test helper.
func (m *MockFileStore) Has(path string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, exists := m.blobs[path]
	return exists
}

// MockProfileRepository is an in-memory ProfileRepository.
type MockProfileRepository struct {
	mu sync.Mutex

	profiles map[string]domain.Profile // userID -> profile

	shouldFailOn map[string]error
}

// NewMockProfileRepository creates an empty mock profile repository.
func NewMockProfileRepository() *MockProfileRepository {
	return &MockProfileRepository{
		profiles:     make(map[string]domain.Profile),
		shouldFailOn: make(map[string]error),
	}
}

// SetError configures the mock to return an error for a specific method.
func (m *MockProfileRepository) SetError(method string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shouldFailOn[method] = err
}

func (m *MockProfileRepository) Insert(ctx context.Context, profile domain.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err, exists := m.shouldFailOn["Insert"]; exists {
		return err
	}
	m.profiles[profile.UserID] = profile
	return nil
}

func (m *MockProfileRepository) Get(ctx context.Context, userID string) (*domain.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err, exists := m.shouldFailOn["Get"]; exists {
		return nil, err
	}
	p, exists := m.profiles[userID]
	if !exists {
		return nil, repository.NotFound("profile", userID)
	}
	copied := p
	return &copied, nil
}

// Stored reports the profile row for a user, if any. Test helper.
func (m *MockProfileRepository) Stored(userID string) (domain.Profile, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, exists := m.profiles[userID]
	return p, exists
}

// MockAuthenticator is an in-memory Authenticator.
type MockAuthenticator struct {
	mu sync.Mutex

	accounts map[string]string // email -> password
	userIDs  map[string]string // email -> user ID
	nextID   int

	shouldFailOn map[string]error
}

// NewMockAuthenticator creates an empty mock authenticator.
func NewMockAuthenticator() *MockAuthenticator {
	return &MockAuthenticator{
		accounts:     make(map[string]string),
		userIDs:      make(map[string]string),
		shouldFailOn: make(map[string]error),
	}
}

// SetError configures the mock to return an error for a specific method.
func (m *MockAuthenticator) SetError(method string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shouldFailOn[method] = err
}

func (m *MockAuthenticator) checkError(method string) error {
	if err, exists := m.shouldFailOn[method]; exists {
		return err
	}
	return nil
}

func (m *MockAuthenticator) SignUp(ctx context.Context, email, password, fullName string) (*repository.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkError("SignUp"); err != nil {
		return nil, err
	}
	if _, exists := m.accounts[email]; exists {
		return nil, fmt.Errorf("account %s: %w", email, repository.ErrConflict)
	}

	m.nextID++
	userID := fmt.Sprintf("user-%d", m.nextID)
	m.accounts[email] = password
	m.userIDs[email] = userID
	return &repository.Session{
		UserID:      userID,
		Email:       email,
		AccessToken: "mock-token-" + userID,
		ExpiresIn:   3600,
	}, nil
}

func (m *MockAuthenticator) SignIn(ctx context.Context, email, password string) (*repository.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkError("SignIn"); err != nil {
		return nil, err
	}

	stored, exists := m.accounts[email]
	if !exists || stored != password {
		return nil, repository.NotFound("account", email)
	}
	userID := m.userIDs[email]
	return &repository.Session{
		UserID:      userID,
		Email:       email,
		AccessToken: "mock-token-" + userID,
		ExpiresIn:   3600,
	}, nil
}

func (m *MockAuthenticator) SendPasswordReset(ctx context.Context, email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.checkError("SendPasswordReset")
}
