package types

import "strconv"

// Owner is the numeric user and group assigned to created files.
// A nil *Owner leaves ownership to the process.
type Owner struct {
	UID      int
	GID      int
	Username string
	HomeDir  string
}

func (o *Owner) String() string {
	if o == nil {
		return "<process>"
	}
	return strconv.Itoa(o.UID) + ":" + strconv.Itoa(o.GID)
}
