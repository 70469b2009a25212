package services

import (
	"context"
	"testing"

	"flatmates_server/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededProvider() models.User {
	user := testUser("bob", models.RoleRoomProvider)
	user.Profile = models.Profile{
		Age:        28,
		Gender:     "male",
		Occupation: "Software Engineer",
		Bio:        "old bio",
		Interests:  []string{"coding", "cooking"},
		Location:   models.Location{Type: "Point", Coordinates: []float64{12.5, 41.9}},
		Preferences: models.Preferences{
			Budget:    models.BudgetRange{Min: 800, Max: 1200},
			Roommates: models.RoommatePreferences{Gender: "any", AgeRange: models.AgeRange{Min: 25, Max: 35}},
		},
	}
	user.RoomDetails = &models.RoomDetails{
		Type:    models.RoomTypeApartment,
		Address: "123 Main St",
		Rent:    1000,
	}
	return user
}

func newProfileFixture(t *testing.T) (*UserProfileService, *fakeDynamo) {
	t.Helper()
	fake := newFakeDynamo()
	fake.putUser(t, seededProvider())
	fake.putUser(t, testUser("alice", models.RoleRoomSeeker))
	return &UserProfileService{Dynamo: fake}, fake
}

func stringPtr(s string) *string { return &s }
func intPtr(i int) *int { return &i }
func floatPtr(f float64) *float64 { return &f }

func TestUpdateProfileBioOnlyPreservesOtherFields(t *testing.T) {
	ups, _ := newProfileFixture(t)

	updated, err := ups.UpdateProfile(context.Background(), "bob", ProfileUpdate{
		Profile: &ProfileFields{Bio: stringPtr("new bio")},
	})
	require.NoError(t, err)

	assert.Equal(t, "new bio", updated.Profile.Bio)
	assert.Equal(t, 28, updated.Profile.Age)
	assert.Equal(t, "Software Engineer", updated.Profile.Occupation)
	assert.Equal(t, []string{"coding", "cooking"}, updated.Profile.Interests)
	assert.Equal(t, models.BudgetRange{Min: 800, Max: 1200}, updated.Profile.Preferences.Budget)
	require.NotNil(t, updated.RoomDetails)
	assert.Equal(t, float64(1000), updated.RoomDetails.Rent)
}

func TestUpdateProfileNestedPreferenceField(t *testing.T) {
	ups, _ := newProfileFixture(t)

	updated, err := ups.UpdateProfile(context.Background(), "bob", ProfileUpdate{
		Profile: &ProfileFields{
			Preferences: &PreferenceFields{
				Budget: &BudgetFields{Max: floatPtr(1500)},
			},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, models.BudgetRange{Min: 800, Max: 1500}, updated.Profile.Preferences.Budget)
	assert.Equal(t, "any", updated.Profile.Preferences.Roommates.Gender, "untouched preference block preserved")
}

func TestUpdateProfileRoomListing(t *testing.T) {
	ups, fake := newProfileFixture(t)

	updated, err := ups.UpdateProfile(context.Background(), "bob", ProfileUpdate{
		RoomDetails: &RoomFields{
			Rent:        floatPtr(950),
			Type:        stringPtr(models.RoomTypeStudio),
			Amenities:   &[]string{"wifi"},
			Description: stringPtr("Bright studio"),
		},
	})
	require.NoError(t, err)

	require.NotNil(t, updated.RoomDetails)
	assert.Equal(t, float64(950), updated.RoomDetails.Rent)
	assert.Equal(t, models.RoomTypeStudio, updated.RoomDetails.Type)
	assert.Equal(t, "123 Main St", updated.RoomDetails.Address, "unsent room field preserved")

	stored := fake.getUser(t, "bob")
	assert.Equal(t, float64(950), stored.RoomDetails.Rent)
}

func TestUpdateProfileRejectsNonPositiveRent(t *testing.T) {
	ups, _ := newProfileFixture(t)

	_, err := ups.UpdateProfile(context.Background(), "bob", ProfileUpdate{
		RoomDetails: &RoomFields{Rent: floatPtr(0)},
	})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = ups.UpdateProfile(context.Background(), "bob", ProfileUpdate{
		RoomDetails: &RoomFields{Rent: floatPtr(-50)},
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdateProfileRejectsInvertedRanges(t *testing.T) {
	ups, _ := newProfileFixture(t)

	_, err := ups.UpdateProfile(context.Background(), "bob", ProfileUpdate{
		Profile: &ProfileFields{
			Preferences: &PreferenceFields{Budget: &BudgetFields{Min: floatPtr(2000)}},
		},
	})
	assert.ErrorIs(t, err, ErrValidation, "budget min above max")

	_, err = ups.UpdateProfile(context.Background(), "bob", ProfileUpdate{
		Profile: &ProfileFields{
			Preferences: &PreferenceFields{
				Roommates: &RoommateFields{AgeRange: &AgeRangeFields{Min: intPtr(50)}},
			},
		},
	})
	assert.ErrorIs(t, err, ErrValidation, "age range min above max")
}

func TestUpdateProfileRoomDetailsRequireProvider(t *testing.T) {
	ups, _ := newProfileFixture(t)

	_, err := ups.UpdateProfile(context.Background(), "alice", ProfileUpdate{
		RoomDetails: &RoomFields{Rent: floatPtr(900)},
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdateProfileUnknownUser(t *testing.T) {
	ups, _ := newProfileFixture(t)

	_, err := ups.UpdateProfile(context.Background(), "nobody", ProfileUpdate{
		Profile: &ProfileFields{Bio: stringPtr("hi")},
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetUserStripsPassword(t *testing.T) {
	ups, _ := newProfileFixture(t)

	user, err := ups.GetUser(context.Background(), "bob")
	require.NoError(t, err)
	assert.Empty(t, user.Password)
	assert.Equal(t, "bob", user.UserID)
}

func TestSeedDemoProfilesOnlyWhenEmpty(t *testing.T) {
	fake := newFakeDynamo()
	ups := &UserProfileService{Dynamo: fake}

	require.NoError(t, ups.SeedDemoProfiles(context.Background()))
	assert.Len(t, fake.items, 3)

	// A second run must not duplicate the demo users
	require.NoError(t, ups.SeedDemoProfiles(context.Background()))
	assert.Len(t, fake.items, 3)
}
