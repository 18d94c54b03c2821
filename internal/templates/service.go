package templates

import (
	"context"
	"errors"

	"github.com/2beens/liftly/internal/apperr"

	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=templates

type templatesRepo interface {
	Save(ctx context.Context, trainerID, id int, req SaveRequest) (*Template, error)
	Get(ctx context.Context, id int) (*Template, error)
	Exercises(ctx context.Context, templateID int) ([]Exercise, error)
	AssignedClientIDs(ctx context.Context, templateID int) ([]int, error)
	List(ctx context.Context, trainerID int) ([]Summary, error)
	Delete(ctx context.Context, id int) error
	UpdateAssignments(ctx context.Context, trainerID, templateID int, add, remove []int) error
}

type Service struct {
	repo templatesRepo
}

func NewService(repo templatesRepo) *Service {
	return &Service{
		repo: repo,
	}
}

type AssignResult struct {
	Added   []int `json:"added"`
	Removed []int `json:"removed"`
}

func toAppErr(op string, err error) error {
	switch {
	case errors.Is(err, ErrTemplateNotFound):
		return apperr.NotFoundErr(op, "workout template")
	case errors.Is(err, ErrClientNotFound):
		return apperr.NotFoundErr(op, "client")
	}
	return err
}

// owned loads a template and checks it belongs to trainerID.
func (s *Service) owned(ctx context.Context, op string, trainerID, id int) (*Template, error) {
	t, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, toAppErr(op, err)
	}
	if t.TrainerID != trainerID {
		return nil, toAppErr(op, ErrTemplateNotFound)
	}
	return t, nil
}

// Save creates the template when id is 0, otherwise replaces the existing one.
func (s *Service) Save(ctx context.Context, trainerID, id int, req SaveRequest) (*Detail, error) {
	const op = "templates.save"
	req, err := req.Prepare()
	if err != nil {
		return nil, err
	}

	t, err := s.repo.Save(ctx, trainerID, id, req)
	if err != nil {
		return nil, toAppErr(op, err)
	}
	log.Debugf("trainer %d saved template %d with %d exercises", trainerID, t.ID, len(req.Exercises))

	assigned := []int{}
	if id != 0 {
		if assigned, err = s.repo.AssignedClientIDs(ctx, t.ID); err != nil {
			return nil, err
		}
	}
	return &Detail{Template: *t, Exercises: req.Exercises, AssignedClientIDs: assigned}, nil
}

func (s *Service) Get(ctx context.Context, trainerID, id int) (*Detail, error) {
	t, err := s.owned(ctx, "templates.get", trainerID, id)
	if err != nil {
		return nil, err
	}
	exercises, err := s.repo.Exercises(ctx, id)
	if err != nil {
		return nil, err
	}
	assigned, err := s.repo.AssignedClientIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	if exercises == nil {
		exercises = []Exercise{}
	}
	if assigned == nil {
		assigned = []int{}
	}
	return &Detail{Template: *t, Exercises: exercises, AssignedClientIDs: assigned}, nil
}

func (s *Service) List(ctx context.Context, trainerID int, query string) ([]Summary, error) {
	summaries, err := s.repo.List(ctx, trainerID)
	if err != nil {
		return nil, err
	}
	return Search(summaries, query), nil
}

func (s *Service) Delete(ctx context.Context, trainerID, id int) error {
	const op = "templates.delete"
	if _, err := s.owned(ctx, op, trainerID, id); err != nil {
		return err
	}
	return toAppErr(op, s.repo.Delete(ctx, id))
}

// Assign makes selected the exact set of clients the template is assigned
// to. Only the difference to the current assignments is written.
func (s *Service) Assign(ctx context.Context, trainerID, id int, selected []int) (*AssignResult, error) {
	const op = "templates.assign"
	if _, err := s.owned(ctx, op, trainerID, id); err != nil {
		return nil, err
	}

	assigned, err := s.repo.AssignedClientIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	add, remove := AssignmentDiff(assigned, selected)
	if len(add) == 0 && len(remove) == 0 {
		return &AssignResult{Added: []int{}, Removed: []int{}}, nil
	}

	if err := s.repo.UpdateAssignments(ctx, trainerID, id, add, remove); err != nil {
		return nil, toAppErr(op, err)
	}
	if add == nil {
		add = []int{}
	}
	if remove == nil {
		remove = []int{}
	}
	return &AssignResult{Added: add, Removed: remove}, nil
}
