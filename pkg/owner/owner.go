// Package owner resolves user and group names into numeric ids.
package owner

import (
	"os/user"
	"strconv"

	"github.com/ideaprov/ideaprov/pkg/errors"
	"github.com/ideaprov/ideaprov/pkg/types"
)

// Resolve accepts names or numeric ids. Both empty yields nil, meaning
// files keep whatever ownership the process gives them. An empty group
// falls back to the user's primary group.
func Resolve(owner, group string) (*types.Owner, error) {
	if owner == "" && group == "" {
		return nil, nil
	}
	if owner == "" {
		return nil, errors.New(errors.ErrInvalidInput, "group given without owner")
	}

	u, err := lookupUser(owner)
	if err != nil {
		return nil, err
	}
	uid, err := strconv.Atoi(u.Uid)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrOwnerLookup, "invalid uid for %s", owner)
	}

	gidStr := u.Gid
	if group != "" {
		gidStr, err = lookupGroup(group)
		if err != nil {
			return nil, err
		}
	}
	gid, err := strconv.Atoi(gidStr)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrOwnerLookup, "invalid gid for %s", group)
	}

	return &types.Owner{
		UID:      uid,
		GID:      gid,
		Username: u.Username,
		HomeDir:  u.HomeDir,
	}, nil
}

// Current returns the process user, for commands run without --owner.
func Current() (*types.Owner, error) {
	u, err := user.Current()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrOwnerLookup, "cannot look up current user")
	}
	uid, _ := strconv.Atoi(u.Uid)
	gid, _ := strconv.Atoi(u.Gid)
	return &types.Owner{UID: uid, GID: gid, Username: u.Username, HomeDir: u.HomeDir}, nil
}

// HomeDir returns the owner's home, or the process user's when o is nil.
func HomeDir(o *types.Owner) (string, error) {
	if o != nil && o.HomeDir != "" {
		return o.HomeDir, nil
	}
	cur, err := Current()
	if err != nil {
		return "", err
	}
	return cur.HomeDir, nil
}

func lookupUser(name string) (*user.User, error) {
	if _, err := strconv.Atoi(name); err == nil {
		u, err := user.LookupId(name)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrOwnerLookup, "unknown uid %s", name)
		}
		return u, nil
	}
	u, err := user.Lookup(name)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrOwnerLookup, "unknown user %s", name)
	}
	return u, nil
}

func lookupGroup(name string) (string, error) {
	if _, err := strconv.Atoi(name); err == nil {
		return name, nil
	}
	g, err := user.LookupGroup(name)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrOwnerLookup, "unknown group %s", name)
	}
	return g.Gid, nil
}
