package domain

import (
	"time"

	"github.com/CameronXie/ecommerce-backend/commerce/patch"
)

const UserDefaultSort = "username"

// User is a customer account. LastUpdate is maintained by the store on every write.
type User struct {
	UserID     string    `json:"userId" gorm:"primaryKey;type:varchar(50)"`
	FirstName  string    `json:"firstName"`
	MiddleName string    `json:"middleName"`
	LastName   string    `json:"lastName"`
	Username   string    `json:"username" gorm:"type:varchar(100);uniqueIndex"`
	Email      string    `json:"email"`
	AddressID  string    `json:"addressId" gorm:"type:varchar(50)"`
	CreatedAt  time.Time `json:"createdAt" gorm:"<-:create;autoCreateTime"`
	LastUpdate time.Time `json:"lastUpdate" gorm:"autoUpdateTime"`
}

var UserSchema = patch.MustSchema(
	"user",
	patch.ID("userId", func(u *User) *string { return &u.UserID }),
	patch.String("firstName", func(u *User) *string { return &u.FirstName }),
	patch.String("middleName", func(u *User) *string { return &u.MiddleName }).Nullable(),
	patch.String("lastName", func(u *User) *string { return &u.LastName }),
	patch.String("username", func(u *User) *string { return &u.Username }),
	patch.String("email", func(u *User) *string { return &u.Email }),
	patch.String("addressId", func(u *User) *string { return &u.AddressID }).Nullable(),
)
