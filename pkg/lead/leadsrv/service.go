// Package leadsrv holds the lead business logic.
package leadsrv

import (
	"context"
	"strings"
	"time"

	"github.com/Abraxas-365/relaycrm/pkg/kernel"
	"github.com/Abraxas-365/relaycrm/pkg/lead"
	"github.com/google/uuid"
)

var validStages = map[string]bool{
	lead.StageNew:       true,
	lead.StageContacted: true,
	lead.StageQualified: true,
	lead.StageCustomer:  true,
	lead.StageLost:      true,
}

// Service implements lead operations.
type Service struct {
	repo lead.Repository
}

// NewService wires the lead service.
func NewService(repo lead.Repository) *Service {
	return &Service{repo: repo}
}

// Create validates and persists a new lead. A lead needs a name and at least
// one way to reach it.
func (s *Service) Create(ctx context.Context, req lead.CreateRequest) (*lead.Lead, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, lead.ErrInvalidRequest("name is required")
	}
	if req.Phone == "" && req.Email == "" {
		return nil, lead.ErrInvalidRequest("a phone or email is required")
	}

	if req.Email != "" {
		if existing, err := s.repo.FindByEmail(ctx, req.Email); err == nil && existing != nil {
			return nil, lead.ErrDuplicate().WithDetail("email", req.Email)
		}
	}

	now := time.Now().UTC()
	l := lead.Lead{
		ID:        kernel.NewLeadID(uuid.NewString()),
		Name:      req.Name,
		Company:   req.Company,
		Phone:     req.Phone,
		Email:     req.Email,
		Stage:     lead.StageNew,
		Source:    req.Source,
		OwnerID:   kernel.NewUserID(req.OwnerID),
		Notes:     req.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Save(ctx, l); err != nil {
		return nil, err
	}
	return &l, nil
}

// Get returns one lead.
func (s *Service) Get(ctx context.Context, id kernel.LeadID) (*lead.Lead, error) {
	return s.repo.FindByID(ctx, id)
}

// List returns a page of leads.
func (s *Service) List(ctx context.Context, filter lead.ListFilter, opts kernel.PaginationOptions) (kernel.Paginated[lead.Lead], error) {
	return s.repo.List(ctx, filter, opts.Normalize())
}

// Update patches a lead in place. Stage changes are checked against the known
// lifecycle stages.
func (s *Service) Update(ctx context.Context, id kernel.LeadID, req lead.UpdateRequest) (*lead.Lead, error) {
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Stage != nil {
		if !validStages[*req.Stage] {
			return nil, lead.ErrInvalidStage(*req.Stage)
		}
		l.Stage = *req.Stage
	}
	if req.Name != nil {
		l.Name = *req.Name
	}
	if req.Company != nil {
		l.Company = *req.Company
	}
	if req.Phone != nil {
		l.Phone = *req.Phone
	}
	if req.Email != nil {
		l.Email = *req.Email
	}
	if req.Source != nil {
		l.Source = *req.Source
	}
	if req.OwnerID != nil {
		l.OwnerID = kernel.NewUserID(*req.OwnerID)
	}
	if req.Notes != nil {
		l.Notes = *req.Notes
	}
	l.UpdatedAt = time.Now().UTC()

	if err := s.repo.Save(ctx, *l); err != nil {
		return nil, err
	}
	return l, nil
}

// Delete removes a lead.
func (s *Service) Delete(ctx context.Context, id kernel.LeadID) error {
	return s.repo.Delete(ctx, id)
}
