package catalog

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/wms/backend/internal/domain/shared"
)

// ProductDetails carries the kind-specific fields of a product. Only the
// fields relevant to the product's kind are populated; the whole value is
// persisted as one JSONB column.
type ProductDetails struct {
	// BOOK
	Author    string `json:"author,omitempty"`
	Publisher string `json:"publisher,omitempty"`
	// FOOD / PHARMACEUTICAL / COSMETIC
	ExpirationDate *time.Time `json:"expiration_date,omitempty"`
	// CLOTHING
	Size     string `json:"size,omitempty"`
	Material string `json:"material,omitempty"`
	// ELECTRONICS
	Brand          string `json:"brand,omitempty"`
	WarrantyMonths int    `json:"warranty_months,omitempty"`
	// RAW_MATERIAL
	Origin string `json:"origin,omitempty"`
	// PHARMACEUTICAL
	Dosage string `json:"dosage,omitempty"`
}

// Value implements driver.Valuer for JSONB storage
func (d ProductDetails) Value() (driver.Value, error) {
	return json.Marshal(d)
}

// Scan implements sql.Scanner for JSONB storage
func (d *ProductDetails) Scan(value interface{}) error {
	if value == nil {
		*d = ProductDetails{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, d)
	case string:
		return json.Unmarshal([]byte(v), d)
	default:
		return fmt.Errorf("unsupported type for ProductDetails: %T", value)
	}
}

// DetailsFromMap builds typed details from the generic field map an intake
// request carries. Unknown fields are rejected so typos do not silently
// drop information.
func DetailsFromMap(kind ProductKind, fields map[string]interface{}) (ProductDetails, error) {
	details := ProductDetails{}
	for key, raw := range fields {
		switch key {
		case "author":
			s, err := stringField(key, raw)
			if err != nil {
				return details, err
			}
			details.Author = s
		case "publisher":
			s, err := stringField(key, raw)
			if err != nil {
				return details, err
			}
			details.Publisher = s
		case "expiration_date":
			ts, err := timeField(key, raw)
			if err != nil {
				return details, err
			}
			details.ExpirationDate = ts
		case "size":
			s, err := stringField(key, raw)
			if err != nil {
				return details, err
			}
			details.Size = s
		case "material":
			s, err := stringField(key, raw)
			if err != nil {
				return details, err
			}
			details.Material = s
		case "brand":
			s, err := stringField(key, raw)
			if err != nil {
				return details, err
			}
			details.Brand = s
		case "warranty_months":
			n, err := intField(key, raw)
			if err != nil {
				return details, err
			}
			details.WarrantyMonths = n
		case "origin":
			s, err := stringField(key, raw)
			if err != nil {
				return details, err
			}
			details.Origin = s
		case "dosage":
			s, err := stringField(key, raw)
			if err != nil {
				return details, err
			}
			details.Dosage = s
		default:
			return details, shared.NewDomainError("INVALID_DETAIL", "Unknown detail field: "+key)
		}
	}

	if kind.IsPerishable() && details.ExpirationDate == nil {
		return details, shared.NewDomainError("INVALID_DETAIL", "Perishable products require an expiration date")
	}

	return details, nil
}

func stringField(key string, raw interface{}) (string, error) {
	s, ok := raw.(string)
	if !ok {
		return "", shared.NewDomainError("INVALID_DETAIL", "Detail field "+key+" must be a string")
	}
	return s, nil
}

func intField(key string, raw interface{}) (int, error) {
	switch v := raw.(type) {
	case int:
		return v, nil
	case float64: // JSON numbers decode as float64
		return int(v), nil
	}
	return 0, shared.NewDomainError("INVALID_DETAIL", "Detail field "+key+" must be a number")
}

func timeField(key string, raw interface{}) (*time.Time, error) {
	switch v := raw.(type) {
	case time.Time:
		return &v, nil
	case *time.Time:
		return v, nil
	case string:
		ts, err := time.Parse(time.RFC3339, v)
		if err != nil {
			ts, err = time.Parse("2006-01-02", v)
		}
		if err != nil {
			return nil, shared.NewDomainError("INVALID_DETAIL", "Detail field "+key+" must be an RFC 3339 or YYYY-MM-DD date")
		}
		return &ts, nil
	}
	return nil, shared.NewDomainError("INVALID_DETAIL", "Detail field "+key+" must be a date")
}

// Equal compares details field by field. Expiration dates compare by
// instant, not by pointer.
func (d ProductDetails) Equal(other ProductDetails) bool {
	if d.Author != other.Author || d.Publisher != other.Publisher ||
		d.Size != other.Size || d.Material != other.Material ||
		d.Brand != other.Brand || d.WarrantyMonths != other.WarrantyMonths ||
		d.Origin != other.Origin || d.Dosage != other.Dosage {
		return false
	}
	if (d.ExpirationDate == nil) != (other.ExpirationDate == nil) {
		return false
	}
	if d.ExpirationDate != nil && !d.ExpirationDate.Equal(*other.ExpirationDate) {
		return false
	}
	return true
}
