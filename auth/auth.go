package auth

import (
	"errors"
)

type AuthDB struct {
	GroupDB
	UserDB
}

var ErrEmptyPassword = errors.New("refusing to set empty password")

// SetPassword shadows AuthDB.UserDB.SetPassword.
func (a *AuthDB) SetPassword(u User, password string) error {
	if password == "" {
		return ErrEmptyPassword
	}
	return a.UserDB.SetPassword(u, password)
}

// ChangePassword shadows AuthDB.UserDB.ChangePassword. The new password must
// satisfy CheckPasswordComplexity.
func (a *AuthDB) ChangePassword(u User, old, new string) error {
	if err := CheckPasswordComplexity(new); err != nil {
		return err
	}
	return a.UserDB.ChangePassword(u, old, new)
}

// DeleteUser removes the user's group memberships, then the account.
func (a *AuthDB) DeleteUser(u User) error {

	groups, err := a.GetGroupsOf(u)
	if err != nil {
		return err
	}

	for _, group := range groups {
		if err := a.Leave(group, u); err != nil {
			return err
		}
	}

	return a.UserDB.Delete(u)
}

// Register creates a user account with the given role and password. The
// password must satisfy CheckPasswordComplexity. The new user is joined to
// their role group.
func (a *AuthDB) Register(name, password string, role Role) (User, error) {

	if !role.Valid() {
		return nil, ValidationError("unknown role")
	}

	if err := CheckPasswordComplexity(password); err != nil {
		return nil, err
	}

	user, err := a.UserDB.InsertUser(name, role)
	if err != nil {
		return nil, err
	}

	if err := a.SetPassword(user, password); err != nil {
		return nil, err
	}

	if err := a.EnsureRoleGroup(user); err != nil {
		return nil, err
	}

	return user, nil
}

// EnsureRoleGroup joins the user to the group named after their role,
// creating the group if it does not exist yet. It is idempotent.
func (a *AuthDB) EnsureRoleGroup(u User) error {

	group, err := a.GetGroupByName(u.Role().String())
	if err != nil {
		if err = a.InsertGroup(u.Role().String()); err != nil {
			return err
		}
		if group, err = a.GetGroupByName(u.Role().String()); err != nil {
			return err
		}
	}

	isMember, err := group.HasMember(u)
	if err != nil {
		return err
	}
	if isMember {
		return nil
	}

	return a.Join(group, u)
}
