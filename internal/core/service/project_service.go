package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/eventdesk/event-management-api/internal/core/domain"
	"github.com/eventdesk/event-management-api/internal/core/ports"
)

type projectService struct {
	repo   ports.ProjectRepository
	logger zerolog.Logger
}

// NewProjectService returns a ProjectService implementation.
func NewProjectService(repo ports.ProjectRepository, logger zerolog.Logger) ports.ProjectService {
	return &projectService{repo: repo, logger: logger}
}

func (s *projectService) Create(ctx context.Context, actor domain.Identity, input ports.CreateProjectInput) (*domain.Project, error) {
	if input.Name == "" {
		return nil, domain.ErrValidation
	}

	now := time.Now().UTC()
	project := &domain.Project{
		Name:        input.Name,
		Description: input.Description,
		OwnerID:     actor.UserID,
		Members:     []string{actor.UserID},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.Create(ctx, project)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create project")
		return nil, err
	}

	s.logger.Info().Str("project_id", created.ID).Str("owner_id", actor.UserID).Msg("project created")
	return created, nil
}

func (s *projectService) Get(ctx context.Context, id string) (*domain.Project, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *projectService) List(ctx context.Context, filter ports.ListProjectsFilter) (*ports.ListProjectsResult, error) {
	filter.Page, filter.Limit = normalizePage(filter.Page, filter.Limit)

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &ports.ListProjectsResult{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages(total, filter.Limit),
	}, nil
}

func (s *projectService) Update(ctx context.Context, actor domain.Identity, id string, input ports.UpdateProjectInput) (*domain.Project, error) {
	project, err := s.authorizeProjectOwner(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, domain.ErrValidation
		}
		project.Name = *input.Name
	}
	if input.Description != nil {
		project.Description = *input.Description
	}
	project.UpdatedAt = time.Now().UTC()

	return s.repo.Update(ctx, project)
}

func (s *projectService) Delete(ctx context.Context, actor domain.Identity, id string) error {
	if _, err := s.authorizeProjectOwner(ctx, actor, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("project_id", id).Str("actor", actor.UserID).Msg("project deleted")
	return nil
}

func (s *projectService) AddMember(ctx context.Context, actor domain.Identity, id, userID string) (*domain.Project, error) {
	project, err := s.authorizeProjectOwner(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if userID == "" {
		return nil, domain.ErrValidation
	}
	if project.HasMember(userID) {
		return project, nil
	}
	return s.repo.AddMember(ctx, id, userID)
}

func (s *projectService) RemoveMember(ctx context.Context, actor domain.Identity, id, userID string) (*domain.Project, error) {
	project, err := s.authorizeProjectOwner(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	// The owner cannot be removed from their own project.
	if userID == project.OwnerID {
		return nil, domain.ErrValidation
	}
	if !project.HasMember(userID) {
		return project, nil
	}
	return s.repo.RemoveMember(ctx, id, userID)
}

func (s *projectService) authorizeProjectOwner(ctx context.Context, actor domain.Identity, id string) (*domain.Project, error) {
	project, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if project.OwnerID != actor.UserID && !actor.HasRole(domain.RoleAdmin) {
		return nil, domain.ErrForbidden
	}
	return project, nil
}
