package service

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/eventdesk/event-management-api/internal/core/domain"
	"github.com/eventdesk/event-management-api/internal/core/ports"
)

type stubProjectRepo struct {
	mu       sync.Mutex
	projects map[string]*domain.Project
	nextID   int
}

func newStubProjectRepo() *stubProjectRepo {
	return &stubProjectRepo{projects: make(map[string]*domain.Project)}
}

func cloneProject(p *domain.Project) *domain.Project {
	if p == nil {
		return nil
	}
	clone := *p
	clone.Members = append([]string(nil), p.Members...)
	return &clone
}

func (r *stubProjectRepo) Create(_ context.Context, p *domain.Project) (*domain.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	created := cloneProject(p)
	created.ID = "project-" + strconv.Itoa(r.nextID)
	r.projects[created.ID] = cloneProject(created)
	return created, nil
}

func (r *stubProjectRepo) FindByID(_ context.Context, id string) (*domain.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.projects[id]
	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	return cloneProject(p), nil
}

func (r *stubProjectRepo) Update(_ context.Context, p *domain.Project) (*domain.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.projects[p.ID]; !ok {
		return nil, domain.ErrProjectNotFound
	}
	r.projects[p.ID] = cloneProject(p)
	return cloneProject(p), nil
}

func (r *stubProjectRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.projects[id]; !ok {
		return domain.ErrProjectNotFound
	}
	delete(r.projects, id)
	return nil
}

func (r *stubProjectRepo) AddMember(_ context.Context, id, userID string) (*domain.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.projects[id]
	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	if !p.HasMember(userID) {
		p.Members = append(p.Members, userID)
	}
	return cloneProject(p), nil
}

func (r *stubProjectRepo) RemoveMember(_ context.Context, id, userID string) (*domain.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.projects[id]
	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	kept := p.Members[:0]
	for _, m := range p.Members {
		if m != userID {
			kept = append(kept, m)
		}
	}
	p.Members = kept
	return cloneProject(p), nil
}

func (r *stubProjectRepo) List(_ context.Context, filter ports.ListProjectsFilter) ([]*domain.Project, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Project
	for _, p := range r.projects {
		if filter.OwnerID != "" && p.OwnerID != filter.OwnerID {
			continue
		}
		if filter.MemberID != "" && !p.HasMember(filter.MemberID) {
			continue
		}
		out = append(out, cloneProject(p))
	}
	return out, int64(len(out)), nil
}

func TestProjectService_Create(t *testing.T) {
	repo := newStubProjectRepo()
	svc := NewProjectService(repo, zerolog.Nop())

	project, err := svc.Create(context.Background(), userIdentity("owner-1"), ports.CreateProjectInput{Name: "apollo"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if project.OwnerID != "owner-1" {
		t.Fatalf("expected owner-1, got %s", project.OwnerID)
	}
	if !project.HasMember("owner-1") {
		t.Fatalf("owner must be a member of their own project")
	}

	if _, err := svc.Create(context.Background(), userIdentity("owner-1"), ports.CreateProjectInput{}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for empty name, got %v", err)
	}
}

func TestProjectService_Update(t *testing.T) {
	repo := newStubProjectRepo()
	svc := NewProjectService(repo, zerolog.Nop())
	owner := userIdentity("owner-1")

	project, err := svc.Create(context.Background(), owner, ports.CreateProjectInput{Name: "apollo"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	name := "gemini"
	updated, err := svc.Update(context.Background(), owner, project.ID, ports.UpdateProjectInput{Name: &name})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "gemini" {
		t.Fatalf("name not updated: %s", updated.Name)
	}

	empty := ""
	if _, err := svc.Update(context.Background(), owner, project.ID, ports.UpdateProjectInput{Name: &empty}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for empty name, got %v", err)
	}
	if _, err := svc.Update(context.Background(), userIdentity("intruder"), project.ID, ports.UpdateProjectInput{Name: &name}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestProjectService_Delete(t *testing.T) {
	repo := newStubProjectRepo()
	svc := NewProjectService(repo, zerolog.Nop())
	owner := userIdentity("owner-1")

	project, err := svc.Create(context.Background(), owner, ports.CreateProjectInput{Name: "apollo"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.Delete(context.Background(), userIdentity("intruder"), project.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	admin := domain.Identity{UserID: "admin-1", Roles: []string{domain.RoleAdmin}}
	if err := svc.Delete(context.Background(), admin, project.ID); err != nil {
		t.Fatalf("admin delete: %v", err)
	}
	if _, err := svc.Get(context.Background(), project.ID); !errors.Is(err, domain.ErrProjectNotFound) {
		t.Fatalf("expected ErrProjectNotFound after delete, got %v", err)
	}
}

func TestProjectService_Members(t *testing.T) {
	repo := newStubProjectRepo()
	svc := NewProjectService(repo, zerolog.Nop())
	owner := userIdentity("owner-1")

	project, err := svc.Create(context.Background(), owner, ports.CreateProjectInput{Name: "apollo"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	added, err := svc.AddMember(context.Background(), owner, project.ID, "member-1")
	if err != nil {
		t.Fatalf("add member: %v", err)
	}
	if !added.HasMember("member-1") {
		t.Fatalf("member not added: %v", added.Members)
	}

	// Adding the same member twice is a no-op.
	again, err := svc.AddMember(context.Background(), owner, project.ID, "member-1")
	if err != nil {
		t.Fatalf("second add: %v", err)
	}
	if len(again.Members) != 2 {
		t.Fatalf("expected 2 members, got %v", again.Members)
	}

	// Only the owner (or an admin) manages membership.
	if _, err := svc.AddMember(context.Background(), userIdentity("member-1"), project.ID, "member-2"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	removed, err := svc.RemoveMember(context.Background(), owner, project.ID, "member-1")
	if err != nil {
		t.Fatalf("remove member: %v", err)
	}
	if removed.HasMember("member-1") {
		t.Fatalf("member still listed: %v", removed.Members)
	}

	if _, err := svc.RemoveMember(context.Background(), owner, project.ID, owner.UserID); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation removing the owner, got %v", err)
	}

	if _, err := svc.AddMember(context.Background(), owner, project.ID, ""); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for empty member id, got %v", err)
	}
}

func TestProjectService_List_Filters(t *testing.T) {
	repo := newStubProjectRepo()
	svc := NewProjectService(repo, zerolog.Nop())

	first, err := svc.Create(context.Background(), userIdentity("owner-1"), ports.CreateProjectInput{Name: "apollo"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(context.Background(), userIdentity("owner-2"), ports.CreateProjectInput{Name: "gemini"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.AddMember(context.Background(), userIdentity("owner-1"), first.ID, "member-1"); err != nil {
		t.Fatalf("add member: %v", err)
	}

	res, err := svc.List(context.Background(), ports.ListProjectsFilter{MemberID: "member-1"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if res.Total != 1 || len(res.Items) != 1 || res.Items[0].ID != first.ID {
		t.Fatalf("unexpected result: total=%d items=%d", res.Total, len(res.Items))
	}
}
