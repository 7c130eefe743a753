// Package authz decides who may do what. Decisions are plain boolean
// functions over the current actor and, for object-level checks, the owner of
// the target resource. Routing keeps safe methods public, so these functions
// only ever run for mutating requests or protected reads.
package authz

import "github.com/revuehub/api/internal/domain/entity"

// Actor is the identity behind a request. User is nil for anonymous callers.
type Actor struct {
	User *entity.User
}

// Anonymous is the actor for requests without a valid token.
var Anonymous = Actor{}

func (a Actor) Authenticated() bool { return a.User != nil }

func (a Actor) IsAdmin() bool { return a.User != nil && a.User.IsAdmin() }

func (a Actor) IsModerator() bool { return a.User != nil && a.User.IsModerator() }

func (a Actor) isAuthor(authorID string) bool {
	return a.User != nil && a.User.ID == authorID
}

// CanWriteCatalog allows create/update/delete on categories, genres and
// titles: authenticated admins only.
func CanWriteCatalog(a Actor) bool {
	return a.Authenticated() && a.IsAdmin()
}

// CanCreateContribution allows posting a review or comment: any authenticated
// user.
func CanCreateContribution(a Actor) bool {
	return a.Authenticated()
}

// CanModifyContribution allows editing or deleting an existing review or
// comment: its author, a moderator, or an admin.
func CanModifyContribution(a Actor, authorID string) bool {
	return a.Authenticated() && (a.isAuthor(authorID) || a.IsAdmin() || a.IsModerator())
}

// CanAdministerUsers gates the /users collection and /users/:username items.
func CanAdministerUsers(a Actor) bool {
	return a.Authenticated() && a.IsAdmin()
}

// CanUseSelfAlias gates /users/me reads and partial updates. The role field is
// rejected separately at validation time, and DELETE on the alias is refused
// outright before this check runs.
func CanUseSelfAlias(a Actor) bool {
	return a.Authenticated()
}
