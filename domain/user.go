package domain

import "strings"

// Role define los roles que maneja el servicio de auth
type Role string

const (
	RoleUser  Role = "USER"  // Usuario común
	RoleAgent Role = "AGENT" // Agente, lo crea un admin
	RoleAdmin Role = "ADMIN" // Administrador
)

// UserData es el perfil tal como lo devuelve el servicio de auth
type UserData struct {
	UserID        string   `json:"userId"`
	Email         string   `json:"email"`
	Firstname     string   `json:"firstname"`
	Lastname      string   `json:"lastname"`
	Phone         string   `json:"phone,omitempty"`
	Country       string   `json:"country,omitempty"`
	City          string   `json:"city,omitempty"`
	State         string   `json:"state,omitempty"`
	Address       string   `json:"address,omitempty"`
	WalletAddress string   `json:"walletAddress,omitempty"`
	Roles         []Role   `json:"roles"`
	Types         []string `json:"types,omitempty"`
}

// HasRole compara sin importar mayúsculas
func (u UserData) HasRole(role Role) bool {
	for _, r := range u.Roles {
		if strings.EqualFold(string(r), string(role)) {
			return true
		}
	}
	return false
}

func (u UserData) IsAdmin() bool { return u.HasRole(RoleAdmin) }

// HasWallet: el backend exige una wallet conectada para crear propiedades
func (u UserData) HasWallet() bool { return strings.TrimSpace(u.WalletAddress) != "" }

// UserTypeClient es el tipo que habilita a reservar
const UserTypeClient = "CLIENT"

// IsClient: solo los usuarios de tipo CLIENT pueden reservar
func (u UserData) IsClient() bool {
	for _, t := range u.Types {
		if strings.EqualFold(t, UserTypeClient) {
			return true
		}
	}
	return false
}

func (u UserData) FullName() string {
	return strings.TrimSpace(u.Firstname + " " + u.Lastname)
}

// Agent es la proyección que devuelve /admin/agents
type Agent struct {
	UserID    string `json:"userId"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Roles     []Role `json:"roles"`
}
