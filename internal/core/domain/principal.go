package domain

// Role - роль пользователя, выдаваемая внешним сервисом аутентификации
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Principal - аутентифицированный субъект запроса.
// Нулевое значение соответствует анонимному посетителю.
type Principal struct {
	UserID string
	Email  string
	Role   Role
}

// Anonymous - субъект без аутентификации
var Anonymous = Principal{}

func (p Principal) Authenticated() bool {
	return p.UserID != ""
}

func (p Principal) IsAdmin() bool {
	return p.Authenticated() && p.Role == RoleAdmin
}

// User - пользователь из внешнего каталога (только то, что нужно для выдачи)
type User struct {
	ID    string
	Name  string
	Email string
	Role  Role
}

func (u User) Summary() OwnerSummary {
	return OwnerSummary{ID: u.ID, Name: u.Name, Email: u.Email}
}
