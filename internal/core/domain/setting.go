package domain

import "time"

// SettingAllowRegistration gates POST /auth/register. Defaults to true,
// lazily initialised at process start.
const SettingAllowRegistration = "allowRegistration"

// Setting is a process-wide key/value configuration record.
type Setting struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	Key         string    `json:"key" bson:"key"`
	Value       any       `json:"value" bson:"value"`
	Description string    `json:"description" bson:"description"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

// BoolValue interprets the setting value as a boolean, returning def when the
// stored value is not a bool.
func (s *Setting) BoolValue(def bool) bool {
	if b, ok := s.Value.(bool); ok {
		return b
	}
	return def
}
