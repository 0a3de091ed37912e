package domain

// GuestEmail marks a guest session wherever it appears.
const GuestEmail = "guest@example.com"

type IdentityKind string

const (
	IdentityUnresolved    IdentityKind = "unresolved"
	IdentityGuest         IdentityKind = "guest"
	IdentityAuthenticated IdentityKind = "authenticated"
)

// SessionUser is the user carried by a verified remote session.
type SessionUser struct {
	ID    string
	Email string
	Name  string
	Image string
}

// RemoteSession is the outcome of checking the request's session token.
// Checked is false while the check could not complete (key fetch pending or
// failed); User is nil when there is no valid session.
type RemoteSession struct {
	Checked bool
	User    *SessionUser
}

type GuestUser struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Image string `json:"image"`
}

// GuestMarker is the client-held guest session record.
type GuestMarker struct {
	ID   string    `json:"id"`
	User GuestUser `json:"user"`
}

// Identity is the resolved principal of a request. Exactly one of AccountID
// and GuestID is set, matching Kind.
type Identity struct {
	Kind      IdentityKind `json:"kind"`
	AccountID string       `json:"account_id,omitempty"`
	GuestID   string       `json:"guest_id,omitempty"`
	Email     string       `json:"email,omitempty"`
	Name      string       `json:"name,omitempty"`
	Image     string       `json:"image,omitempty"`
}

func (i Identity) IsGuest() bool         { return i.Kind == IdentityGuest }
func (i Identity) IsAuthenticated() bool { return i.Kind == IdentityAuthenticated }

// Subject is the stable key for per-identity ephemeral data.
func (i Identity) Subject() string {
	if i.IsGuest() {
		return "guest:" + i.GuestID
	}
	return "account:" + i.AccountID
}

// Resolution is what ResolveIdentity decides for a request.
type Resolution struct {
	Identity Identity
	// Loading is set for an unresolved identity whose session check has not
	// completed. Otherwise an unresolved identity must sign in.
	Loading bool
}

func (r Resolution) Resolved() bool { return r.Identity.Kind != IdentityUnresolved }

func (r Resolution) NeedsSignIn() bool { return !r.Resolved() && !r.Loading }

// ResolveIdentity classifies a request. The guest sentinel wins over an
// account session, an account session wins over no session, and a session
// check still in flight resolves to loading rather than to sign-in.
func ResolveIdentity(remote RemoteSession, marker *GuestMarker) Resolution {
	if marker != nil && marker.User.Email == GuestEmail {
		return Resolution{Identity: Identity{
			Kind:    IdentityGuest,
			GuestID: marker.ID,
			Email:   GuestEmail,
			Name:    marker.User.Name,
			Image:   marker.User.Image,
		}}
	}

	if u := remote.User; u != nil {
		if u.Email == GuestEmail {
			return Resolution{Identity: Identity{
				Kind:    IdentityGuest,
				GuestID: u.ID,
				Email:   GuestEmail,
				Name:    u.Name,
				Image:   u.Image,
			}}
		}
		return Resolution{Identity: Identity{
			Kind:      IdentityAuthenticated,
			AccountID: u.ID,
			Email:     u.Email,
			Name:      u.Name,
			Image:     u.Image,
		}}
	}

	return Resolution{
		Identity: Identity{Kind: IdentityUnresolved},
		Loading:  !remote.Checked,
	}
}
