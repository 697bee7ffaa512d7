package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringSliceType is a custom type for handling JSON arrays of strings in database
type StringSliceType []string

// Value implements driver.Valuer interface for database storage
func (ss StringSliceType) Value() (driver.Value, error) {
	if ss == nil {
		return nil, nil
	}
	return json.Marshal(ss)
}

// Scan implements sql.Scanner interface for database retrieval
func (ss *StringSliceType) Scan(value interface{}) error {
	if value == nil {
		*ss = nil
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, ss)
	case string:
		return json.Unmarshal([]byte(v), ss)
	default:
		return fmt.Errorf("cannot scan %T into StringSliceType", value)
	}
}

// GormDataType returns the data type for GORM
func (StringSliceType) GormDataType() string {
	return "json"
}

// MarshalJSON implements json.Marshaler interface
func (ss StringSliceType) MarshalJSON() ([]byte, error) {
	if ss == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(ss))
}

// UnmarshalJSON implements json.Unmarshaler interface
func (ss *StringSliceType) UnmarshalJSON(data []byte) error {
	var slice []string
	if err := json.Unmarshal(data, &slice); err != nil {
		return err
	}
	*ss = StringSliceType(slice)
	return nil
}

// Contains reports whether the slice holds the given value
func (ss StringSliceType) Contains(value string) bool {
	for _, s := range ss {
		if s == value {
			return true
		}
	}
	return false
}

// Remove returns a copy of the slice without the given value
func (ss StringSliceType) Remove(value string) StringSliceType {
	out := make(StringSliceType, 0, len(ss))
	for _, s := range ss {
		if s != value {
			out = append(out, s)
		}
	}
	return out
}

// RepairPartList is a custom type for handling JSON arrays of repair parts in database
type RepairPartList []RepairPart

// Value implements driver.Valuer interface for database storage
func (pl RepairPartList) Value() (driver.Value, error) {
	if pl == nil {
		return nil, nil
	}
	return json.Marshal(pl)
}

// Scan implements sql.Scanner interface for database retrieval
func (pl *RepairPartList) Scan(value interface{}) error {
	if value == nil {
		*pl = nil
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, pl)
	case string:
		return json.Unmarshal([]byte(v), pl)
	default:
		return fmt.Errorf("cannot scan %T into RepairPartList", value)
	}
}

// GormDataType returns the data type for GORM
func (RepairPartList) GormDataType() string {
	return "json"
}

// MarshalJSON implements json.Marshaler interface
func (pl RepairPartList) MarshalJSON() ([]byte, error) {
	if pl == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]RepairPart(pl))
}

// StocktakeItemList is a custom type for handling JSON arrays of stocktake lines in database
type StocktakeItemList []StocktakeItem

// Value implements driver.Valuer interface for database storage
func (il StocktakeItemList) Value() (driver.Value, error) {
	if il == nil {
		return nil, nil
	}
	return json.Marshal(il)
}

// Scan implements sql.Scanner interface for database retrieval
func (il *StocktakeItemList) Scan(value interface{}) error {
	if value == nil {
		*il = nil
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, il)
	case string:
		return json.Unmarshal([]byte(v), il)
	default:
		return fmt.Errorf("cannot scan %T into StocktakeItemList", value)
	}
}

// GormDataType returns the data type for GORM
func (StocktakeItemList) GormDataType() string {
	return "json"
}

// MarshalJSON implements json.Marshaler interface
func (il StocktakeItemList) MarshalJSON() ([]byte, error) {
	if il == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]StocktakeItem(il))
}
