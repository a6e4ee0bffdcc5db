package kernel

// AuthContext is the authenticated caller injected into each request.
type AuthContext struct {
	UserID UserID `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}

// IsValid reports whether the context identifies a user.
func (ac *AuthContext) IsValid() bool {
	return ac != nil && !ac.UserID.IsEmpty()
}

// AuthLocalKey is the fiber locals key under which AuthContext is stored.
const AuthLocalKey = "auth"
