package household

import (
	"encoding/json"
	"fmt"
)

// selfID is the wire representation of the owning user. It never leaves the codec.
const selfID = "me"

// Owner identifies who paid for a transaction: the owning user, or one of the
// family members. The zero value is the owning user.
type Owner struct {
	member string
}

// Self returns the owning user.
func Self() Owner { return Owner{} }

// MemberOwner returns the member with the given id as owner.
// An empty id is the owning user.
func MemberOwner(id string) Owner { return Owner{member: id} }

// IsSelf reports whether o is the owning user.
func (o Owner) IsSelf() bool { return o.member == "" }

// Member returns the member id, and false if o is the owning user.
func (o Owner) Member() (string, bool) { return o.member, o.member != "" }

// Equal reports whether o and p designate the same person.
func (o Owner) Equal(p Owner) bool { return o.member == p.member }

func (o Owner) String() string {
	if o.IsSelf() {
		return selfID
	}
	return o.member
}

// ParseOwner maps a payer value to an Owner. Absent and "me" are both the owning user.
func ParseOwner(s string) Owner {
	if s == "" || s == selfID {
		return Self()
	}
	return MemberOwner(s)
}

func (o Owner) MarshalJSON() ([]byte, error) { return json.Marshal(o.String()) }

func (o *Owner) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("invalid payer: %w", err)
	}
	*o = ParseOwner(s)
	return nil
}
