package domain

import (
	"time"

	"github.com/CameronXie/ecommerce-backend/commerce/patch"
)

const (
	AddressDefaultSort = "lastUpdate"
	CityDefaultSort    = "lastUpdate"
	CountryDefaultSort = "lastUpdate"
)

// Address is a postal address; it belongs to a city
type Address struct {
	AddressID        string    `json:"addressId" gorm:"primaryKey;type:varchar(50)"`
	PrimaryAddress   string    `json:"primaryAddress"`
	SecondaryAddress string    `json:"secondaryAddress"`
	District         string    `json:"district"`
	PostalCode       string    `json:"postalCode"`
	Phone            string    `json:"phone"`
	CityID           string    `json:"cityId" gorm:"type:varchar(50);not null;index"`
	LastUpdate       time.Time `json:"lastUpdate"`
}

// City belongs to a country
type City struct {
	CityID     string    `json:"cityId" gorm:"primaryKey;type:varchar(50)"`
	City       string    `json:"city"`
	CountryID  string    `json:"countryId" gorm:"type:varchar(50);not null;index"`
	LastUpdate time.Time `json:"lastUpdate"`
}

// Country is the root of the address hierarchy
type Country struct {
	CountryID  string    `json:"countryId" gorm:"primaryKey;type:varchar(50)"`
	Country    string    `json:"country"`
	LastUpdate time.Time `json:"lastUpdate"`
}

// TableName overrides the pluralized default.
func (Address) TableName() string {
	return "address"
}

// TableName overrides the pluralized default.
func (City) TableName() string {
	return "city"
}

// TableName overrides the pluralized default.
func (Country) TableName() string {
	return "country"
}

var AddressSchema = patch.MustSchema(
	"address",
	patch.ID("addressId", func(a *Address) *string { return &a.AddressID }),
	patch.String("primaryAddress", func(a *Address) *string { return &a.PrimaryAddress }),
	patch.String("secondaryAddress", func(a *Address) *string { return &a.SecondaryAddress }).Nullable(),
	patch.String("district", func(a *Address) *string { return &a.District }),
	patch.String("postalCode", func(a *Address) *string { return &a.PostalCode }),
	patch.String("phone", func(a *Address) *string { return &a.Phone }),
	patch.String("cityId", func(a *Address) *string { return &a.CityID }),
	patch.Timestamp("lastUpdate", func(a *Address) *time.Time { return &a.LastUpdate }),
)

var CitySchema = patch.MustSchema(
	"city",
	patch.ID("cityId", func(c *City) *string { return &c.CityID }),
	patch.String("city", func(c *City) *string { return &c.City }),
	patch.String("countryId", func(c *City) *string { return &c.CountryID }),
	patch.Timestamp("lastUpdate", func(c *City) *time.Time { return &c.LastUpdate }),
)

var CountrySchema = patch.MustSchema(
	"country",
	patch.ID("countryId", func(c *Country) *string { return &c.CountryID }),
	patch.String("country", func(c *Country) *string { return &c.Country }),
	patch.Timestamp("lastUpdate", func(c *Country) *time.Time { return &c.LastUpdate }),
)
