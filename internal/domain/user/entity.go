package user

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyPhone   = errors.New("telefone não pode ser vazio")
	ErrInvalidPhone = errors.New("telefone inválido")
	ErrEmptyName    = errors.New("nome não pode ser vazio")
	ErrNotFound     = errors.New("usuário não encontrado")
)

// Status representa o estado do usuário
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// User representa um usuário do sistema, identificado pelo número de
// telefone por onde conversa com o bot
type User struct {
	ID           string    `json:"id"`
	PhoneNumber  string    `json:"phone_number"`
	Name         string    `json:"name"`
	Email        string    `json:"email,omitempty"`
	PasswordHash string    `json:"-"`
	Language     string    `json:"language"`
	Status       Status    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewUser cria um novo usuário a partir do telefone
func NewUser(phoneNumber, name string) (*User, error) {
	phoneNumber = strings.TrimSpace(phoneNumber)
	if phoneNumber == "" {
		return nil, ErrEmptyPhone
	}
	if strings.TrimLeft(phoneNumber, "+0123456789 ") != "" {
		return nil, ErrInvalidPhone
	}

	now := time.Now()
	return &User{
		ID:          uuid.New().String(),
		PhoneNumber: phoneNumber,
		Name:        name,
		Language:    "es",
		Status:      StatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// IsActive verifica se o usuário está ativo
func (u *User) IsActive() bool {
	return u.Status == StatusActive
}

// Deactivate desativa o usuário
func (u *User) Deactivate() {
	u.Status = StatusInactive
	u.UpdatedAt = time.Now()
}

// UpdateProfile atualiza nome e email do usuário
func (u *User) UpdateProfile(name, email string) error {
	if name == "" {
		return ErrEmptyName
	}
	u.Name = name
	u.Email = email
	u.UpdatedAt = time.Now()
	return nil
}
