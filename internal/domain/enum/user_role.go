package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// UserRole is the role a staff member logs in with.
type UserRole int

const (
	UserRoleAdmin   UserRole = 0
	UserRoleWaiter  UserRole = 1
	UserRoleCashier UserRole = 2
)

var userRoleNames = [...]string{"admin", "mesero", "cajero"}

func (r UserRole) String() string {
	if !r.IsValid() {
		return fmt.Sprintf("UserRole(%d)", int(r))
	}
	return userRoleNames[r]
}

func (r UserRole) IsValid() bool {
	return r >= UserRoleAdmin && r <= UserRoleCashier
}

func ParseUserRole(s string) (UserRole, error) {
	for i, name := range userRoleNames {
		if name == s {
			return UserRole(i), nil
		}
	}
	return UserRoleWaiter, fmt.Errorf("unknown role %q", s)
}

func (r UserRole) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

func (r *UserRole) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*r = UserRole(i)
		return nil
	}
	parsed, err := ParseUserRole(str)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

func (r UserRole) Value() (driver.Value, error) {
	return int64(r), nil
}

func (r *UserRole) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*r = UserRoleWaiter
	case int64:
		*r = UserRole(v)
	case int:
		*r = UserRole(v)
	default:
		return fmt.Errorf("cannot scan %T into UserRole", value)
	}
	return nil
}
