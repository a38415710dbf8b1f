package service

import (
	"context"
	"strings"

	"github.com/alexanderramin/ganttplan/internal/domain"
	"github.com/alexanderramin/ganttplan/internal/repository"
	"github.com/google/uuid"
)

type commentService struct {
	comments repository.CommentRepo
	projects repository.ProjectRepo
	observer UseCaseObserver
}

func NewCommentService(comments repository.CommentRepo, projects repository.ProjectRepo, observers ...UseCaseObserver) CommentService {
	return &commentService{comments: comments, projects: projects, observer: useCaseObserverOrNoop(observers)}
}

// List returns the project's comments, newest first.
func (s *commentService) List(ctx context.Context, projectID string) ([]*domain.Comment, error) {
	return s.comments.ListByProject(ctx, projectID)
}

func (s *commentService) Add(ctx context.Context, projectID, author, content string) (_ *domain.Comment, err error) {
	defer observe(ctx, s.observer, "add-comment", map[string]any{"project_id": projectID})(&err)

	if _, err := s.projects.GetByID(ctx, projectID); err != nil {
		return nil, err
	}
	c := &domain.Comment{
		ID:         uuid.New().String(),
		ProjectID:  projectID,
		AuthorName: strings.TrimSpace(author),
		Content:    strings.TrimSpace(content),
		CreatedAt:  nowUTC(),
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := s.comments.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *commentService) Delete(ctx context.Context, id string) (err error) {
	defer observe(ctx, s.observer, "delete-comment", map[string]any{"comment_id": id})(&err)
	return s.comments.Delete(ctx, id)
}
