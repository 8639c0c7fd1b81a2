package services_test

import (
	"fmt"
	"testing"
	"time"

	"portfolio/internal/models"
	"portfolio/internal/repositories"
	"portfolio/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Update(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

const testJWTSecret = "test_jwt_secret"

func newAuthService(repo repositories.UserRepository) *services.AuthService {
	return services.NewAuthService(repo, testJWTSecret, time.Hour)
}

func TestAuthService_RegisterUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := newAuthService(mockRepo)

	user := &models.User{
		Name:     "Ada Lovelace",
		Email:    "ada@example.com",
		Password: "secret123",
	}

	mockRepo.On("GetByEmail", user.Email).Return(nil, repositories.ErrNotFound).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Run(func(args mock.Arguments) {
		args.Get(0).(*models.User).ID = "user-123"
	}).Return(nil).Once()

	token, err := authService.RegisterUser(user)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	// Password must be stored hashed, never as the supplied plaintext.
	assert.NotEqual(t, "secret123", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("secret123")))
	// New accounts are never admins.
	assert.False(t, user.IsAdmin)
	mockRepo.AssertExpectations(t)

	// The issued token resolves back to the new user's id.
	userID, err := authService.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "user-123", userID)
}

func TestAuthService_RegisterUser_EmailTaken(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := newAuthService(mockRepo)

	mockRepo.On("GetByEmail", "ada@example.com").Return(&models.User{ID: "user-1"}, nil).Once()

	_, err := authService.RegisterUser(&models.User{
		Name:     "Ada Lovelace",
		Email:    "ada@example.com",
		Password: "secret123",
	})
	assert.Error(t, err)
	assert.ErrorIs(t, err, services.ErrEmailTaken)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_LoginUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := newAuthService(mockRepo)

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	user := &models.User{
		ID:       "user-123",
		Name:     "Ada Lovelace",
		Email:    "ada@example.com",
		Password: string(hashedPassword),
	}

	// Successful login
	mockRepo.On("GetByEmail", user.Email).Return(user, nil).Once()
	token, err := authService.LoginUser("ada@example.com", "secret123")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	// The token carries the expected claims.
	parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		return []byte(testJWTSecret), nil
	})
	assert.NoError(t, err)
	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	assert.True(t, ok)
	assert.Equal(t, user.ID, claims["user_id"])
	mockRepo.AssertExpectations(t)

	// Wrong password
	mockRepo.On("GetByEmail", user.Email).Return(user, nil).Once()
	_, err = authService.LoginUser("ada@example.com", "wrongpassword")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	mockRepo.AssertExpectations(t)

	// Unknown email fails with the same generic error.
	mockRepo.On("GetByEmail", "nobody@example.com").Return(nil, repositories.ErrNotFound).Once()
	_, err = authService.LoginUser("nobody@example.com", "secret123")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	mockRepo.AssertExpectations(t)

	// A storage failure is surfaced as such, not as bad credentials.
	mockRepo.On("GetByEmail", user.Email).Return(nil, fmt.Errorf("connection reset")).Once()
	_, err = authService.LoginUser("ada@example.com", "secret123")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, services.ErrInvalidCredentials)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_ValidateToken(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := newAuthService(mockRepo)

	// Valid token
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "user-123",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	validTokenString, _ := token.SignedString([]byte(testJWTSecret))

	userID, err := authService.ValidateToken(validTokenString)
	assert.NoError(t, err)
	assert.Equal(t, "user-123", userID)

	// Garbage token
	_, err = authService.ValidateToken("invalid.token.string")
	assert.Error(t, err)

	// Token signed with the wrong secret
	wrongKeyToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "user-123",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	wrongKeyString, _ := wrongKeyToken.SignedString([]byte("some_other_secret"))
	_, err = authService.ValidateToken(wrongKeyString)
	assert.Error(t, err)

	// Expired token fails, never silently succeeds
	expiredToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "user-123",
		"exp":     time.Now().Add(-time.Hour).Unix(),
	})
	expiredTokenString, _ := expiredToken.SignedString([]byte(testJWTSecret))
	_, err = authService.ValidateToken(expiredTokenString)
	assert.Error(t, err)
}

func TestAuthService_UpdateProfile(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := newAuthService(mockRepo)

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	stored := &models.User{
		ID:       "user-123",
		Name:     "Ada Lovelace",
		Email:    "ada@example.com",
		Password: string(hashedPassword),
	}

	// Name-only update leaves email and password untouched.
	mockRepo.On("GetByID", "user-123").Return(stored, nil).Once()
	mockRepo.On("Update", mock.AnythingOfType("*models.User")).Return(nil).Once()

	updated, err := authService.UpdateProfile("user-123", services.ProfileUpdate{Name: "Ada King"})
	assert.NoError(t, err)
	assert.Equal(t, "Ada King", updated.Name)
	assert.Equal(t, "ada@example.com", updated.Email)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.Password), []byte("secret123")))
	mockRepo.AssertExpectations(t)

	// Password change is rehashed.
	mockRepo.On("GetByID", "user-123").Return(stored, nil).Once()
	mockRepo.On("Update", mock.AnythingOfType("*models.User")).Return(nil).Once()

	updated, err = authService.UpdateProfile("user-123", services.ProfileUpdate{Password: "newsecret"})
	assert.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.Password), []byte("newsecret")))
	mockRepo.AssertExpectations(t)

	// Changing to an email another user owns is rejected.
	mockRepo.On("GetByID", "user-123").Return(stored, nil).Once()
	mockRepo.On("GetByEmail", "taken@example.com").Return(&models.User{ID: "user-456"}, nil).Once()

	_, err = authService.UpdateProfile("user-123", services.ProfileUpdate{Email: "taken@example.com"})
	assert.ErrorIs(t, err, services.ErrEmailTaken)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_EnsureAdmin(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := newAuthService(mockRepo)

	// Creates the admin when the email is free.
	mockRepo.On("GetByEmail", "admin@example.com").Return(nil, repositories.ErrNotFound).Once()
	mockRepo.On("Create", mock.MatchedBy(func(u *models.User) bool {
		return u.IsAdmin && u.Email == "admin@example.com"
	})).Return(nil).Once()

	err := authService.EnsureAdmin("Admin User", "admin@example.com", "admin123")
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)

	// A second call is a no-op.
	mockRepo.On("GetByEmail", "admin@example.com").Return(&models.User{ID: "user-1", IsAdmin: true}, nil).Once()
	err = authService.EnsureAdmin("Admin User", "admin@example.com", "admin123")
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}
