package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Product represents one inventory entry owned by a single user.
// The store is append-only: there is no update or delete path, so
// UpdatedAt always carries the same value as CreatedAt.
type Product struct {
	ID                   string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID               string    `json:"-" gorm:"index;type:varchar(255);not null"`
	Name                 string    `json:"name" gorm:"type:varchar(255);not null"`
	Brand                *string   `json:"brand"`
	Type                 *string   `json:"type"`
	WarrantyPeriodMonths *int      `json:"warrantyPeriodMonths"`
	StartDate            *string   `json:"startDate" gorm:"type:varchar(10)"`
	SerialNumber         *string   `json:"serialNumber"`
	Notes                *string   `json:"notes"`
	CreatedAt            time.Time `json:"createdAt" gorm:"index:,sort:desc"`
	UpdatedAt            time.Time `json:"updatedAt"`

	Owner *User `json:"-" gorm:"foreignKey:UserID;references:ID"`
}

// ProductInput is the create payload. Optional string fields accept the
// empty string and are normalized to absent before persisting, so a
// blank form field never ends up stored as "".
type ProductInput struct {
	Name                 string  `json:"name" validate:"required,min=1"`
	Brand                string  `json:"brand"`
	Type                 string  `json:"type"`
	WarrantyPeriodMonths FlexInt `json:"warrantyPeriodMonths"`
	StartDate            string  `json:"startDate"`
	SerialNumber         string  `json:"serialNumber"`
	Notes                string  `json:"notes"`
}

// FlexInt is an optional integer that accepts JSON numbers as well as
// numeric strings, since form-driven clients often send "12" instead of
// 12. Null and the empty string both mean absent.
type FlexInt struct {
	Set   bool
	Value int
}

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		return nil
	}

	if strings.HasPrefix(trimmed, `"`) {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		raw = strings.TrimSpace(raw)
		if raw == "" {
			return nil
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("invalid integer %q", raw)
		}
		f.Set, f.Value = true, n
		return nil
	}

	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	f.Set, f.Value = true, n
	return nil
}

func (f FlexInt) MarshalJSON() ([]byte, error) {
	if !f.Set {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}

// ToProduct builds the record to be persisted, applying the
// empty-string normalization. Server-assigned fields (id, timestamps)
// are left for the service to fill in.
func (in *ProductInput) ToProduct(userID string) *Product {
	product := &Product{
		UserID:       userID,
		Name:         in.Name,
		Brand:        normalizeOptional(in.Brand),
		Type:         normalizeOptional(in.Type),
		StartDate:    normalizeOptional(in.StartDate),
		SerialNumber: normalizeOptional(in.SerialNumber),
		Notes:        normalizeOptional(in.Notes),
	}
	if in.WarrantyPeriodMonths.Set {
		months := in.WarrantyPeriodMonths.Value
		product.WarrantyPeriodMonths = &months
	}
	return product
}

// normalizeOptional maps the empty string to absent.
func normalizeOptional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
