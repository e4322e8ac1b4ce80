package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jcamposv/edcora-finance-sub000/internal/domain/organization"
)

// OrganizationRepository implementa a interface organization.Repository
type OrganizationRepository struct {
	db *pgxpool.Pool
}

// NewOrganizationRepository cria uma nova instância de OrganizationRepository
func NewOrganizationRepository(db *pgxpool.Pool) organization.Repository {
	return &OrganizationRepository{db: db}
}

// Create implementa organization.Repository.Create. A organização e a
// associação do dono entram na mesma transação.
func (r *OrganizationRepository) Create(ctx context.Context, org *organization.Organization) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("erro ao abrir transação: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO organizations (id, name, type, owner_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		org.ID, org.Name, org.Type, org.OwnerID, org.CreatedAt, org.UpdatedAt)
	if err != nil {
		return fmt.Errorf("erro ao criar organização: %w", err)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO organization_members (organization_id, user_id, role, joined_at)
		VALUES ($1, $2, $3, $4)`,
		org.ID, org.OwnerID, organization.RoleOwner, org.CreatedAt)
	if err != nil {
		return fmt.Errorf("erro ao associar dono: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("erro ao confirmar transação: %w", err)
	}
	return nil
}

// FindByID implementa organization.Repository.FindByID
func (r *OrganizationRepository) FindByID(ctx context.Context, id string) (*organization.Organization, error) {
	var org organization.Organization
	err := r.db.QueryRow(ctx,
		`SELECT id, name, type, owner_id, created_at, updated_at
		FROM organizations WHERE id = $1`,
		id).Scan(&org.ID, &org.Name, &org.Type, &org.OwnerID, &org.CreatedAt, &org.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, organization.ErrNotFound
		}
		return nil, fmt.Errorf("erro ao buscar organização: %w", err)
	}
	return &org, nil
}

// ListByUser implementa organization.Repository.ListByUser
func (r *OrganizationRepository) ListByUser(ctx context.Context, userID string) ([]*organization.Organization, map[string]organization.Role, error) {
	rows, err := r.db.Query(ctx,
		`SELECT o.id, o.name, o.type, o.owner_id, o.created_at, o.updated_at, m.role
		FROM organizations o
		JOIN organization_members m ON m.organization_id = o.id
		WHERE m.user_id = $1
		ORDER BY m.joined_at ASC`,
		userID)
	if err != nil {
		return nil, nil, fmt.Errorf("erro ao listar organizações: %w", err)
	}
	defer rows.Close()

	var orgs []*organization.Organization
	roles := make(map[string]organization.Role)
	for rows.Next() {
		var org organization.Organization
		var role organization.Role
		if err := rows.Scan(&org.ID, &org.Name, &org.Type, &org.OwnerID,
			&org.CreatedAt, &org.UpdatedAt, &role); err != nil {
			return nil, nil, fmt.Errorf("erro ao ler organização: %w", err)
		}
		orgs = append(orgs, &org)
		roles[org.ID] = role
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("erro ao percorrer organizações: %w", err)
	}
	return orgs, roles, nil
}

// Update implementa organization.Repository.Update
func (r *OrganizationRepository) Update(ctx context.Context, org *organization.Organization) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE organizations SET name = $2, type = $3, updated_at = $4 WHERE id = $1`,
		org.ID, org.Name, org.Type, org.UpdatedAt)
	if err != nil {
		return fmt.Errorf("erro ao atualizar organização: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return organization.ErrNotFound
	}
	return nil
}

// Delete implementa organization.Repository.Delete
func (r *OrganizationRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM organizations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("erro ao remover organização: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return organization.ErrNotFound
	}
	return nil
}

// AddMember implementa organization.Repository.AddMember
func (r *OrganizationRepository) AddMember(ctx context.Context, m *organization.Member) error {
	tag, err := r.db.Exec(ctx,
		`INSERT INTO organization_members (organization_id, user_id, role, joined_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (organization_id, user_id) DO NOTHING`,
		m.OrganizationID, m.UserID, m.Role, m.JoinedAt)
	if err != nil {
		return fmt.Errorf("erro ao associar membro: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return organization.ErrAlreadyMember
	}
	return nil
}

// ListMembers implementa organization.Repository.ListMembers
func (r *OrganizationRepository) ListMembers(ctx context.Context, organizationID string) ([]*organization.Member, error) {
	rows, err := r.db.Query(ctx,
		`SELECT organization_id, user_id, role, joined_at
		FROM organization_members
		WHERE organization_id = $1
		ORDER BY joined_at ASC`,
		organizationID)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar membros: %w", err)
	}
	defer rows.Close()

	var members []*organization.Member
	for rows.Next() {
		var m organization.Member
		if err := rows.Scan(&m.OrganizationID, &m.UserID, &m.Role, &m.JoinedAt); err != nil {
			return nil, fmt.Errorf("erro ao ler membro: %w", err)
		}
		members = append(members, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao percorrer membros: %w", err)
	}
	return members, nil
}

// RemoveMember implementa organization.Repository.RemoveMember
func (r *OrganizationRepository) RemoveMember(ctx context.Context, organizationID, userID string) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM organization_members WHERE organization_id = $1 AND user_id = $2`,
		organizationID, userID)
	if err != nil {
		return fmt.Errorf("erro ao remover membro: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return organization.ErrNotMember
	}
	return nil
}

// CreateInvitation implementa organization.Repository.CreateInvitation
func (r *OrganizationRepository) CreateInvitation(ctx context.Context, inv *organization.Invitation) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO invitations (id, organization_id, phone_number, invited_by, status, created_at, accepted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		inv.ID, inv.OrganizationID, inv.PhoneNumber, inv.InvitedBy,
		inv.Status, inv.CreatedAt, inv.AcceptedAt)
	if err != nil {
		return fmt.Errorf("erro ao criar convite: %w", err)
	}
	return nil
}

// FindPendingInvitationByPhone implementa organization.Repository.FindPendingInvitationByPhone
func (r *OrganizationRepository) FindPendingInvitationByPhone(ctx context.Context, phoneNumber string) (*organization.Invitation, error) {
	var inv organization.Invitation
	err := r.db.QueryRow(ctx,
		`SELECT id, organization_id, phone_number, invited_by, status, created_at, accepted_at
		FROM invitations
		WHERE phone_number = $1 AND status = 'pending'
		ORDER BY created_at DESC
		LIMIT 1`,
		phoneNumber).Scan(&inv.ID, &inv.OrganizationID, &inv.PhoneNumber,
		&inv.InvitedBy, &inv.Status, &inv.CreatedAt, &inv.AcceptedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, organization.ErrNoInvitation
		}
		return nil, fmt.Errorf("erro ao buscar convite: %w", err)
	}
	return &inv, nil
}

// UpdateInvitation implementa organization.Repository.UpdateInvitation
func (r *OrganizationRepository) UpdateInvitation(ctx context.Context, inv *organization.Invitation) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE invitations SET status = $2, accepted_at = $3 WHERE id = $1`,
		inv.ID, inv.Status, inv.AcceptedAt)
	if err != nil {
		return fmt.Errorf("erro ao atualizar convite: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return organization.ErrNoInvitation
	}
	return nil
}
