package organization

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyName      = errors.New("nome não pode ser vazio")
	ErrInvalidType    = errors.New("tipo de organização inválido")
	ErrAlreadyMember  = errors.New("usuário já é membro da organização")
	ErrNotMember      = errors.New("usuário não é membro da organização")
	ErrOwnerCantLeave = errors.New("o dono não pode sair da organização")
	ErrNotFound       = errors.New("organização não encontrada")
	ErrNoInvitation   = errors.New("convite não encontrado")
)

// Type define o tipo de organização
type Type string

const (
	TypeFamily  Type = "family"
	TypeCompany Type = "company"
	TypeTeam    Type = "team"
)

// Role define o papel de um membro dentro da organização
type Role string

const (
	RoleOwner  Role = "owner"
	RoleMember Role = "member"
)

// InvitationStatus representa o estado de um convite
type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "pending"
	InvitationAccepted InvitationStatus = "accepted"
	InvitationExpired  InvitationStatus = "expired"
)

// Organization representa um grupo onde vários usuários compartilham
// gastos (família, empresa, equipe)
type Organization struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      Type      `json:"type"`
	OwnerID   string    `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Member representa a associação de um usuário a uma organização
type Member struct {
	OrganizationID string    `json:"organization_id"`
	UserID         string    `json:"user_id"`
	Role           Role      `json:"role"`
	JoinedAt       time.Time `json:"joined_at"`
}

// Invitation representa um convite pendente por número de telefone. O
// convidado pode ainda não ter conta; a associação acontece quando ele
// escreve "acepto".
type Invitation struct {
	ID             string           `json:"id"`
	OrganizationID string           `json:"organization_id"`
	PhoneNumber    string           `json:"phone_number"`
	InvitedBy      string           `json:"invited_by"`
	Status         InvitationStatus `json:"status"`
	CreatedAt      time.Time        `json:"created_at"`
	AcceptedAt     *time.Time       `json:"accepted_at,omitempty"`
}

// NewOrganization cria uma organização com o usuário como dono
func NewOrganization(ownerID, name string, orgType Type) (*Organization, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	switch orgType {
	case TypeFamily, TypeCompany, TypeTeam:
	default:
		return nil, ErrInvalidType
	}

	now := time.Now()
	return &Organization{
		ID:        uuid.New().String(),
		Name:      name,
		Type:      orgType,
		OwnerID:   ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// NewInvitation cria um convite pendente para o telefone informado
func NewInvitation(organizationID, invitedBy, phoneNumber string) *Invitation {
	return &Invitation{
		ID:             uuid.New().String(),
		OrganizationID: organizationID,
		PhoneNumber:    phoneNumber,
		InvitedBy:      invitedBy,
		Status:         InvitationPending,
		CreatedAt:      time.Now(),
	}
}

// Accept marca o convite como aceito
func (i *Invitation) Accept() {
	now := time.Now()
	i.Status = InvitationAccepted
	i.AcceptedAt = &now
}
