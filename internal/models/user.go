package models

// User is the owner-identity row kept by the relational backend. It is
// created on demand from the X-User-Id header and carries no
// credentials; identity verification happens upstream.
type User struct {
	ID   string  `json:"id" gorm:"primaryKey;type:varchar(255)"`
	Name *string `json:"name"`
}
