package domain

// Identity is the envelope shared by every principal variant.
type Identity struct {
	UserID string
	Email  string
}

// Principal is the authenticated identity resolved from a user record,
// selected by the role tag at load time.
type Principal interface {
	Subject() Identity
	Role() string
}

type Admin struct {
	Identity
}

func (a Admin) Subject() Identity { return a.Identity }
func (Admin) Role() string        { return RoleAdmin }

type Client struct {
	Identity
	Settings map[string]any
}

func (c Client) Subject() Identity { return c.Identity }
func (Client) Role() string        { return RoleClient }

type Subuser struct {
	Identity
	ParentClientID string
	Permissions    map[string]any
}

func (s Subuser) Subject() Identity { return s.Identity }
func (Subuser) Role() string        { return RoleSubuser }

// Principal maps the record's role tag onto its variant.
func (u *User) Principal() (Principal, error) {
	id := Identity{UserID: u.ID, Email: u.Email}
	switch u.Role {
	case RoleAdmin:
		return Admin{Identity: id}, nil
	case RoleClient:
		return Client{Identity: id, Settings: u.ClientSettings}, nil
	case RoleSubuser:
		parent := ""
		if u.ParentClientID != nil {
			parent = *u.ParentClientID
		}
		return Subuser{Identity: id, ParentClientID: parent, Permissions: u.Permissions}, nil
	default:
		return nil, ErrUnknownRole
	}
}
