package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"flatmates_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles registration, login and bearer token verification.
type AuthService struct {
	Dynamo    DynamoAPI
	JWTSecret []byte
	TokenTTL  time.Duration
}

// Register creates a new account. The role is fixed here and never changes
// afterwards.
func (as *AuthService) Register(ctx context.Context, email, password, name, userType string) (*models.User, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	name = strings.TrimSpace(name)

	if email == "" || !strings.Contains(email, "@") {
		return nil, "", fmt.Errorf("invalid email: %w", ErrValidation)
	}
	if len(password) < 6 {
		return nil, "", fmt.Errorf("password must be at least 6 characters: %w", ErrValidation)
	}
	if name == "" {
		return nil, "", fmt.Errorf("name is required: %w", ErrValidation)
	}
	if !models.ValidRole(userType) {
		return nil, "", fmt.Errorf("userType must be %s or %s: %w", models.RoleRoomSeeker, models.RoleRoomProvider, ErrValidation)
	}

	existing, err := as.findByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if existing != nil {
		return nil, "", ErrEmailTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		UserID:   uuid.NewString(),
		Email:    email,
		Password: string(hashed),
		Name:     name,
		UserType: userType,
		Profile: models.Profile{
			Location: models.Location{Type: "Point", Coordinates: []float64{0, 0}},
		},
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}

	if err := as.Dynamo.PutItem(ctx, models.UsersTable, user); err != nil {
		return nil, "", err
	}

	token, err := as.IssueToken(user.UserID)
	if err != nil {
		return nil, "", err
	}

	user.Sanitize()
	return &user, token, nil
}

// Login verifies an email/password pair and returns the account with a
// fresh token.
func (as *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := as.findByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := as.IssueToken(user.UserID)
	if err != nil {
		return nil, "", err
	}

	user.Sanitize()
	return user, token, nil
}

// IssueToken signs a short-lived HS256 token carrying the user id as subject.
func (as *AuthService) IssueToken(userID string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(as.TokenTTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(as.JWTSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// VerifyToken resolves a bearer token to the user id it was issued for.
func (as *AuthService) VerifyToken(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return as.JWTSecret, nil
	})
	if err != nil || !token.Valid || claims.Subject == "" {
		return "", ErrInvalidCredentials
	}
	return claims.Subject, nil
}

func (as *AuthService) findByEmail(ctx context.Context, email string) (*models.User, error) {
	items, err := as.Dynamo.QueryItemsWithIndex(ctx, models.UsersTable, models.EmailIndex,
		"emailId = :emailId",
		map[string]types.AttributeValue{
			":emailId": &types.AttributeValueMemberS{Value: email},
		}, 1)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}

	var user models.User
	if err := attributevalue.UnmarshalMap(items[0], &user); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user: %w", err)
	}
	return &user, nil
}
