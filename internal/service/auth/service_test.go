package auth

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Khaf-dev/aiforus/internal/domain"
	"github.com/Khaf-dev/aiforus/internal/mocks"
)

func newTestLogger() *zap.Logger {
	logger, _ := zap.NewDevelopment()
	return logger
}

func newTestService(repo *mocks.MockUserRepository) *Service {
	svc := NewService(repo, mocks.NewMockCache(), Config{Secret: "test-secret-key"}, newTestLogger())
	return svc.(*Service)
}

func TestLogin_Success(t *testing.T) {
	// Arrange
	ctx := context.Background()
	password := "password123"
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

	mockUser := &domain.User{
		ID:       "user-123",
		Email:    "test@example.com",
		Password: string(hashedPassword),
		Role:     domain.UserRoleUser,
		Status:   "Active",
	}

	mockRepo := &mocks.MockUserRepository{
		FindByEmailFunc: func(ctx context.Context, email string) (*domain.User, error) {
			if email == "test@example.com" {
				return mockUser, nil
			}
			return nil, nil
		},
	}
	service := newTestService(mockRepo)

	// Act
	accessToken, refreshToken, err := service.Login(ctx, "test@example.com", password)

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if accessToken == "" {
		t.Error("expected access token, got empty string")
	}
	if refreshToken == "" {
		t.Error("expected refresh token, got empty string")
	}
}

func TestLogin_InvalidEmail(t *testing.T) {
	// Arrange
	mockRepo := &mocks.MockUserRepository{
		FindByEmailFunc: func(ctx context.Context, email string) (*domain.User, error) {
			return nil, nil
		},
	}
	service := newTestService(mockRepo)

	// Act
	_, _, err := service.Login(context.Background(), "notfound@example.com", "password")

	// Assert
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if err.Error() != "invalid credentials" {
		t.Errorf("expected 'invalid credentials', got '%s'", err.Error())
	}
}

func TestLogin_InvalidPassword(t *testing.T) {
	// Arrange
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("correctpassword"), bcrypt.DefaultCost)
	mockRepo := &mocks.MockUserRepository{
		FindByEmailFunc: func(ctx context.Context, email string) (*domain.User, error) {
			return &domain.User{ID: "user-123", Email: email, Password: string(hashedPassword)}, nil
		},
	}
	service := newTestService(mockRepo)

	// Act
	_, _, err := service.Login(context.Background(), "test@example.com", "wrongpassword")

	// Assert
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if err.Error() != "invalid credentials" {
		t.Errorf("expected 'invalid credentials', got '%s'", err.Error())
	}
}

func TestRegister_Success(t *testing.T) {
	// Arrange
	var saved *domain.User
	mockRepo := &mocks.MockUserRepository{
		FindByEmailFunc: func(ctx context.Context, email string) (*domain.User, error) {
			return nil, nil
		},
		SaveFunc: func(ctx context.Context, user *domain.User) error {
			saved = user
			return nil
		},
	}
	service := newTestService(mockRepo)

	user := &domain.User{Email: "new@example.com", Password: "plaintext"}

	// Act
	err := service.Register(context.Background(), user)

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if saved == nil {
		t.Fatal("expected user to be saved")
	}
	if saved.Password == "plaintext" {
		t.Error("expected password to be hashed before saving")
	}
	if saved.ID == "" {
		t.Error("expected generated user ID")
	}
	if saved.Language != "en" {
		t.Errorf("expected default language en, got %q", saved.Language)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	// Arrange
	mockRepo := &mocks.MockUserRepository{
		FindByEmailFunc: func(ctx context.Context, email string) (*domain.User, error) {
			return &domain.User{ID: "existing", Email: email}, nil
		},
	}
	service := newTestService(mockRepo)

	// Act
	err := service.Register(context.Background(), &domain.User{Email: "dup@example.com", Password: "x"})

	// Assert
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if err.Error() != "email already registered" {
		t.Errorf("expected 'email already registered', got '%s'", err.Error())
	}
}

func TestValidateToken_RoundTrip(t *testing.T) {
	// Arrange
	mockUser := &domain.User{ID: "user-123", Status: "Active", Role: domain.UserRoleUser}
	mockRepo := &mocks.MockUserRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.User, error) {
			if id == "user-123" {
				return mockUser, nil
			}
			return nil, nil
		},
	}
	service := newTestService(mockRepo)
	token, err := service.generateToken(mockUser, service.cfg.AccessTokenDuration)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	// Act
	user, err := service.ValidateToken(context.Background(), token)

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if user.ID != "user-123" {
		t.Errorf("expected user-123, got %s", user.ID)
	}
}

func TestValidateToken_BlockedUser(t *testing.T) {
	// Arrange
	mockUser := &domain.User{ID: "user-123", Status: "Blocked"}
	mockRepo := &mocks.MockUserRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.User, error) {
			return mockUser, nil
		},
	}
	service := newTestService(mockRepo)
	token, err := service.generateToken(mockUser, service.cfg.AccessTokenDuration)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	// Act
	_, err = service.ValidateToken(context.Background(), token)

	// Assert
	if err == nil {
		t.Fatal("expected error for blocked user, got nil")
	}
}

func TestValidateToken_Garbage(t *testing.T) {
	// Arrange
	service := newTestService(&mocks.MockUserRepository{})

	// Act
	_, err := service.ValidateToken(context.Background(), "not-a-jwt")

	// Assert
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}
