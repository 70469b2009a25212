package models

// UsersTable is the DynamoDB table name for user documents
const UsersTable = "Users"

// EmailIndex is the GSI used to resolve an email to a user at login
const EmailIndex = "EmailIndex"

// ✅ User roles (fixed at registration, determines matching polarity)
const (
	RoleRoomSeeker   = "room_seeker"
	RoleRoomProvider = "room_provider"
)

// ✅ Room types
const (
	RoomTypeApartment = "apartment"
	RoomTypeHouse     = "house"
	RoomTypeStudio    = "studio"
)

// ValidRole reports whether role is one of the two recognized user roles.
func ValidRole(role string) bool {
	return role == RoleRoomSeeker || role == RoleRoomProvider
}

// OppositeRole returns the matching polarity for a role: seekers are
// matched against providers and vice versa.
func OppositeRole(role string) string {
	if role == RoleRoomSeeker {
		return RoleRoomProvider
	}
	return RoleRoomSeeker
}

// ValidRoomType reports whether t is a recognized room listing type.
func ValidRoomType(t string) bool {
	return t == RoomTypeApartment || t == RoomTypeHouse || t == RoomTypeStudio
}
