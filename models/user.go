package models

// Location is a GeoJSON-style point attached to a profile.
type Location struct {
	Type        string    `dynamodbav:"type" json:"type"`
	Coordinates []float64 `dynamodbav:"coordinates" json:"coordinates"` // [longitude, latitude]
}

// BudgetRange is the monthly rent range a user is willing to pay or charge.
type BudgetRange struct {
	Min float64 `dynamodbav:"min" json:"min"`
	Max float64 `dynamodbav:"max" json:"max"`
}

// AgeRange bounds the age of an acceptable roommate.
type AgeRange struct {
	Min int `dynamodbav:"min" json:"min"`
	Max int `dynamodbav:"max" json:"max"`
}

// RoommatePreferences describes who the user wants to live with.
type RoommatePreferences struct {
	Gender   string   `dynamodbav:"gender" json:"gender"`
	AgeRange AgeRange `dynamodbav:"ageRange" json:"ageRange"`
}

type Preferences struct {
	Budget    BudgetRange         `dynamodbav:"budget" json:"budget"`
	Roommates RoommatePreferences `dynamodbav:"roommates" json:"roommates"`
}

// Profile holds the editable dating/housing attributes of a user.
type Profile struct {
	Age         int         `dynamodbav:"age" json:"age"`
	Gender      string      `dynamodbav:"gender" json:"gender"`
	Occupation  string      `dynamodbav:"occupation" json:"occupation"`
	Bio         string      `dynamodbav:"bio" json:"bio"`
	Interests   []string    `dynamodbav:"interests,omitempty" json:"interests"`
	Location    Location    `dynamodbav:"location" json:"location"`
	Preferences Preferences `dynamodbav:"preferences" json:"preferences"`
}

// RoomDetails describes the listing of a room provider. Absent for seekers.
type RoomDetails struct {
	Type          string   `dynamodbav:"type" json:"type"` // apartment, house or studio
	Address       string   `dynamodbav:"address" json:"address"`
	Rent          float64  `dynamodbav:"rent" json:"rent"`
	AvailableFrom string   `dynamodbav:"availableFrom" json:"availableFrom"`
	Amenities     []string `dynamodbav:"amenities,omitempty" json:"amenities"`
	Description   string   `dynamodbav:"description" json:"description"`
}

// User is a single document in the Users table. Liked and Disliked are
// DynamoDB string sets so that preference edges can be recorded with a
// single ADD/DELETE update expression.
type User struct {
	UserID      string       `dynamodbav:"userId" json:"id"` // ✅ Partition Key
	Email       string       `dynamodbav:"emailId" json:"email"` // Indexed via GSI
	Password    string       `dynamodbav:"password,omitempty" json:"-"`
	Name        string       `dynamodbav:"name" json:"name"`
	UserType    string       `dynamodbav:"userType" json:"userType"` // room_seeker or room_provider
	Profile     Profile      `dynamodbav:"profile" json:"profile"`
	RoomDetails *RoomDetails `dynamodbav:"roomDetails,omitempty" json:"roomDetails,omitempty"`
	Photos      []string     `dynamodbav:"photos,omitempty" json:"photos,omitempty"`
	Liked       []string     `dynamodbav:"liked,stringset,omitempty" json:"-"`
	Disliked    []string     `dynamodbav:"disliked,stringset,omitempty" json:"-"`
	CreatedAt   string       `dynamodbav:"createdAt" json:"createdAt"`
}

// Sanitize strips credential material before the record leaves the service
// layer. The json tag already hides the password; this guards log statements
// and any future encoder as well.
func (u *User) Sanitize() {
	u.Password = ""
}
