package model

// Principal kinds name the backing store a session was resolved from.
const (
	PrincipalKindAmbassador = "ambassador"
	PrincipalKindAdmin      = "admin"
)

// Principal is the session identity shared by both account types. Login
// resolves it by trying the admin store first, then the ambassador store.
type Principal struct {
	ID    string `json:"id"`
	Kind  string `json:"kind"`
	Role  string `json:"role"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (a *Ambassador) Principal() Principal {
	return Principal{ID: a.ID, Kind: PrincipalKindAmbassador, Role: a.Role, Name: a.Name, Email: a.Email}
}

func (a *Admin) Principal() Principal {
	return Principal{ID: a.ID, Kind: PrincipalKindAdmin, Role: RoleAdmin, Name: a.Name, Email: a.Email}
}
