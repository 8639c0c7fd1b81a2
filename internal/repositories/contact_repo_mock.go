package repositories

import (
	"sort"
	"sync"
	"time"

	"portfolio/internal/models"

	"github.com/google/uuid"
)

// MockContactRepository is an in-memory implementation of ContactRepository.
type MockContactRepository struct {
	contacts map[string]models.Contact
	mu       sync.RWMutex
}

// NewMockContactRepository creates a new instance of MockContactRepository.
func NewMockContactRepository() *MockContactRepository {
	return &MockContactRepository{
		contacts: make(map[string]models.Contact),
	}
}

// Create stores a new contact message.
func (r *MockContactRepository) Create(contact *models.Contact) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if contact.ID == "" {
		contact.ID = uuid.New().String()
	}
	if contact.CreatedAt.IsZero() {
		contact.CreatedAt = time.Now()
	}
	r.contacts[contact.ID] = *contact
	return nil
}

// GetAll returns all contact messages, newest first.
func (r *MockContactRepository) GetAll() ([]models.Contact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	contactList := make([]models.Contact, 0, len(r.contacts))
	for _, c := range r.contacts {
		contactList = append(contactList, c)
	}
	sort.Slice(contactList, func(i, j int) bool {
		return contactList[i].CreatedAt.After(contactList[j].CreatedAt)
	})
	return contactList, nil
}
