package household

import "fmt"

// Member is a family member the owning user shares expenses with.
type Member struct {
	ID    string `json:"id" validate:"required,ne=me"`
	Name  string `json:"name" validate:"required"`
	Email string `json:"email,omitempty" validate:"omitempty,email"`
}

// Validate checks the member fields.
func (m Member) Validate() error {
	if err := validate.Struct(m); err != nil {
		return fmt.Errorf("invalid member %q: %w", m.ID, validationError(err))
	}
	return nil
}

// Members indexes members by id.
type Members map[string]Member

// NewMembers indexes a list of members, rejecting duplicates.
func NewMembers(list ...Member) (Members, error) {
	ms := make(Members, len(list))
	for _, m := range list {
		if _, exists := ms[m.ID]; exists {
			return nil, fmt.Errorf("member %q is declared twice", m.ID)
		}
		ms[m.ID] = m
	}
	return ms, nil
}

// Name returns the member display name, or the id when unknown.
func (ms Members) Name(id string) string {
	if m, ok := ms[id]; ok && m.Name != "" {
		return m.Name
	}
	return id
}
