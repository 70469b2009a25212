package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"flatmates_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type UserProfileService struct {
	Dynamo DynamoAPI
}

// ProfileUpdate is the partial-update contract for PUT /api/profiles/profile.
// Every recognized field is independently optional; nil means "leave the
// stored value alone".
type ProfileUpdate struct {
	Profile     *ProfileFields `json:"profile,omitempty"`
	RoomDetails *RoomFields    `json:"roomDetails,omitempty"`
}

type ProfileFields struct {
	Age         *int              `json:"age,omitempty"`
	Gender      *string           `json:"gender,omitempty"`
	Occupation  *string           `json:"occupation,omitempty"`
	Bio         *string           `json:"bio,omitempty"`
	Interests   *[]string         `json:"interests,omitempty"`
	Location    *models.Location  `json:"location,omitempty"`
	Preferences *PreferenceFields `json:"preferences,omitempty"`
}

type PreferenceFields struct {
	Budget    *BudgetFields   `json:"budget,omitempty"`
	Roommates *RoommateFields `json:"roommates,omitempty"`
}

type BudgetFields struct {
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`
}

type RoommateFields struct {
	Gender   *string         `json:"gender,omitempty"`
	AgeRange *AgeRangeFields `json:"ageRange,omitempty"`
}

type AgeRangeFields struct {
	Min *int `json:"min,omitempty"`
	Max *int `json:"max,omitempty"`
}

type RoomFields struct {
	Type          *string   `json:"type,omitempty"`
	Address       *string   `json:"address,omitempty"`
	Rent          *float64  `json:"rent,omitempty"`
	AvailableFrom *string   `json:"availableFrom,omitempty"`
	Amenities     *[]string `json:"amenities,omitempty"`
	Description   *string   `json:"description,omitempty"`
}

// GetUser retrieves a user by id with credentials stripped.
func (ups *UserProfileService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	user, err := ups.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.Sanitize()
	return user, nil
}

func (ups *UserProfileService) getUser(ctx context.Context, userID string) (*models.User, error) {
	item, err := ups.Dynamo.GetItem(ctx, models.UsersTable, userKey(userID))
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("user %s: %w", userID, ErrNotFound)
	}

	var user models.User
	if err := attributevalue.UnmarshalMap(item, &user); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user: %w", err)
	}
	return &user, nil
}

// UpdateProfile applies a partial update to the requester's profile and room
// listing. Fields not present in the update are preserved. The merged record
// is validated before anything is written, and the write is a single update
// on the one user document.
func (ups *UserProfileService) UpdateProfile(ctx context.Context, userID string, update ProfileUpdate) (*models.User, error) {
	user, err := ups.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	applyProfileFields(&user.Profile, update.Profile)

	if update.RoomDetails != nil {
		if user.UserType != models.RoleRoomProvider {
			return nil, fmt.Errorf("room details are only valid for a %s: %w", models.RoleRoomProvider, ErrValidation)
		}
		if user.RoomDetails == nil {
			user.RoomDetails = &models.RoomDetails{}
		}
		applyRoomFields(user.RoomDetails, update.RoomDetails)
	}

	if err := validateUser(user); err != nil {
		return nil, err
	}

	fields := map[string]types.AttributeValue{}
	profileAttr, err := attributevalue.Marshal(user.Profile)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal profile: %w", err)
	}
	fields["profile"] = profileAttr

	if user.RoomDetails != nil {
		roomAttr, err := attributevalue.Marshal(user.RoomDetails)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal room details: %w", err)
		}
		fields["roomDetails"] = roomAttr
	}

	updatedItem, err := ups.Dynamo.UpdateFields(ctx, models.UsersTable, userKey(userID), fields)
	if err != nil {
		return nil, err
	}

	var updated models.User
	if err := attributevalue.UnmarshalMap(updatedItem, &updated); err != nil {
		return nil, fmt.Errorf("failed to unmarshal updated user: %w", err)
	}
	updated.Sanitize()
	return &updated, nil
}

func applyProfileFields(profile *models.Profile, fields *ProfileFields) {
	if fields == nil {
		return
	}
	if fields.Age != nil {
		profile.Age = *fields.Age
	}
	if fields.Gender != nil {
		profile.Gender = *fields.Gender
	}
	if fields.Occupation != nil {
		profile.Occupation = *fields.Occupation
	}
	if fields.Bio != nil {
		profile.Bio = *fields.Bio
	}
	if fields.Interests != nil {
		profile.Interests = *fields.Interests
	}
	if fields.Location != nil {
		profile.Location = *fields.Location
	}
	if fields.Preferences != nil {
		if fields.Preferences.Budget != nil {
			if fields.Preferences.Budget.Min != nil {
				profile.Preferences.Budget.Min = *fields.Preferences.Budget.Min
			}
			if fields.Preferences.Budget.Max != nil {
				profile.Preferences.Budget.Max = *fields.Preferences.Budget.Max
			}
		}
		if fields.Preferences.Roommates != nil {
			if fields.Preferences.Roommates.Gender != nil {
				profile.Preferences.Roommates.Gender = *fields.Preferences.Roommates.Gender
			}
			if fields.Preferences.Roommates.AgeRange != nil {
				if fields.Preferences.Roommates.AgeRange.Min != nil {
					profile.Preferences.Roommates.AgeRange.Min = *fields.Preferences.Roommates.AgeRange.Min
				}
				if fields.Preferences.Roommates.AgeRange.Max != nil {
					profile.Preferences.Roommates.AgeRange.Max = *fields.Preferences.Roommates.AgeRange.Max
				}
			}
		}
	}
}

func applyRoomFields(room *models.RoomDetails, fields *RoomFields) {
	if fields.Type != nil {
		room.Type = *fields.Type
	}
	if fields.Address != nil {
		room.Address = *fields.Address
	}
	if fields.Rent != nil {
		room.Rent = *fields.Rent
	}
	if fields.AvailableFrom != nil {
		room.AvailableFrom = *fields.AvailableFrom
	}
	if fields.Amenities != nil {
		room.Amenities = *fields.Amenities
	}
	if fields.Description != nil {
		room.Description = *fields.Description
	}
}

func validateUser(user *models.User) error {
	p := &user.Profile
	if p.Age < 0 {
		return fmt.Errorf("age cannot be negative: %w", ErrValidation)
	}
	if b := p.Preferences.Budget; b.Min > b.Max {
		return fmt.Errorf("budget min must not exceed max: %w", ErrValidation)
	}
	if r := p.Preferences.Roommates.AgeRange; r.Min > r.Max {
		return fmt.Errorf("roommate age range min must not exceed max: %w", ErrValidation)
	}
	if room := user.RoomDetails; room != nil {
		if room.Rent <= 0 {
			return fmt.Errorf("rent must be a positive number: %w", ErrValidation)
		}
		if room.Type != "" && !models.ValidRoomType(room.Type) {
			return fmt.Errorf("room type must be apartment, house or studio: %w", ErrValidation)
		}
		if room.AvailableFrom != "" {
			if _, err := time.Parse(time.RFC3339, room.AvailableFrom); err != nil {
				if _, err := time.Parse("2006-01-02", room.AvailableFrom); err != nil {
					return fmt.Errorf("availableFrom must be a date: %w", ErrValidation)
				}
			}
		}
	}
	return nil
}

// SeedDemoProfiles inserts a handful of demo users when the table is empty,
// so a fresh environment has something to swipe on.
func (ups *UserProfileService) SeedDemoProfiles(ctx context.Context) error {
	var existing []models.User
	if err := ups.Dynamo.ScanWithFilter(ctx, models.UsersTable, nil, nil, &existing); err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	log.Println("Users table empty, seeding demo profiles...")
	for _, user := range demoUsers() {
		if err := ups.Dynamo.PutItem(ctx, models.UsersTable, user); err != nil {
			return err
		}
	}
	return nil
}

func demoUsers() []models.User {
	hash := func(password string) string {
		hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("Failed to hash demo password: %v", err)
		}
		return string(hashed)
	}
	now := time.Now().UTC().Format(time.RFC3339)

	return []models.User{
		{
			UserID:   uuid.NewString(),
			Email:    "john@example.com",
			Password: hash("password123"),
			Name:     "John Doe",
			UserType: models.RoleRoomProvider,
			Profile: models.Profile{
				Age:        28,
				Gender:     "male",
				Occupation: "Software Engineer",
				Bio:        "I have a spacious 2-bedroom apartment in downtown. Looking for a clean and responsible roommate.",
				Interests:  []string{"coding", "gaming", "cooking"},
				Location:   models.Location{Type: "Point", Coordinates: []float64{0, 0}},
				Preferences: models.Preferences{
					Budget: models.BudgetRange{Min: 800, Max: 1200},
					Roommates: models.RoommatePreferences{
						Gender:   "any",
						AgeRange: models.AgeRange{Min: 25, Max: 35},
					},
				},
			},
			RoomDetails: &models.RoomDetails{
				Type:          models.RoomTypeApartment,
				Address:       "123 Main St, Downtown",
				Rent:          1000,
				AvailableFrom: now,
				Amenities:     []string{"wifi", "parking", "gym"},
				Description:   "Modern 2-bedroom apartment with great amenities",
			},
			CreatedAt: now,
		},
		{
			UserID:   uuid.NewString(),
			Email:    "sarah@example.com",
			Password: hash("password123"),
			Name:     "Sarah Smith",
			UserType: models.RoleRoomSeeker,
			Profile: models.Profile{
				Age:        25,
				Gender:     "female",
				Occupation: "Graphic Designer",
				Bio:        "Creative professional looking for a quiet and peaceful living space.",
				Interests:  []string{"art", "photography", "yoga"},
				Location:   models.Location{Type: "Point", Coordinates: []float64{0, 0}},
				Preferences: models.Preferences{
					Budget: models.BudgetRange{Min: 600, Max: 900},
					Roommates: models.RoommatePreferences{
						Gender:   "female",
						AgeRange: models.AgeRange{Min: 22, Max: 30},
					},
				},
			},
			CreatedAt: now,
		},
		{
			UserID:   uuid.NewString(),
			Email:    "mike@example.com",
			Password: hash("password123"),
			Name:     "Mike Johnson",
			UserType: models.RoleRoomProvider,
			Profile: models.Profile{
				Age:        32,
				Gender:     "male",
				Occupation: "Marketing Manager",
				Bio:        "I have a beautiful house with a garden. Looking for a long-term roommate.",
				Interests:  []string{"gardening", "cooking", "reading"},
				Location:   models.Location{Type: "Point", Coordinates: []float64{0, 0}},
				Preferences: models.Preferences{
					Budget: models.BudgetRange{Min: 700, Max: 1000},
					Roommates: models.RoommatePreferences{
						Gender:   "any",
						AgeRange: models.AgeRange{Min: 25, Max: 40},
					},
				},
			},
			RoomDetails: &models.RoomDetails{
				Type:          models.RoomTypeHouse,
				Address:       "456 Oak St, Suburbs",
				Rent:          900,
				AvailableFrom: now,
				Amenities:     []string{"garden", "garage", "fireplace"},
				Description:   "Cozy house with a beautiful garden and modern amenities",
			},
			CreatedAt: now,
		},
	}
}

func userKey(userID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"userId": &types.AttributeValueMemberS{Value: userID},
	}
}
