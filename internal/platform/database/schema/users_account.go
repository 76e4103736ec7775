package schema

// UserAccountTable holds the 'users.account' columns matched and returned by global search.
type UserAccountTable struct {
	Table       string
	ID          string
	Username    string
	DisplayName string
	AvatarURL   string
	IsActive    string
	DeletedAt   string
}

// UserAccount is the schema definition for users.account
var UserAccount = UserAccountTable{
	Table:       "users.account",
	ID:          "id",
	Username:    "username",
	DisplayName: "displayname",
	AvatarURL:   "avatarurl",
	IsActive:    "isactive",
	DeletedAt:   "deletedat",
}
