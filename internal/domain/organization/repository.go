package organization

import (
	"context"
)

// Repository define a interface para operações de repositório de
// organizações, membros e convites
type Repository interface {
	// Create cria uma organização e registra o dono como membro
	Create(ctx context.Context, org *Organization) error

	// FindByID busca uma organização pelo ID
	FindByID(ctx context.Context, id string) (*Organization, error)

	// ListByUser devolve as organizações das quais o usuário é membro,
	// junto com o papel dele em cada uma
	ListByUser(ctx context.Context, userID string) ([]*Organization, map[string]Role, error)

	// Update atualiza os dados de uma organização
	Update(ctx context.Context, org *Organization) error

	// Delete remove uma organização e suas associações
	Delete(ctx context.Context, id string) error

	// AddMember associa um usuário à organização
	AddMember(ctx context.Context, m *Member) error

	// ListMembers devolve os membros de uma organização
	ListMembers(ctx context.Context, organizationID string) ([]*Member, error)

	// RemoveMember desfaz a associação de um usuário
	RemoveMember(ctx context.Context, organizationID, userID string) error

	// CreateInvitation registra um convite pendente
	CreateInvitation(ctx context.Context, inv *Invitation) error

	// FindPendingInvitationByPhone busca o convite pendente mais recente
	// para o telefone
	FindPendingInvitationByPhone(ctx context.Context, phoneNumber string) (*Invitation, error)

	// UpdateInvitation atualiza o estado de um convite
	UpdateInvitation(ctx context.Context, inv *Invitation) error
}
