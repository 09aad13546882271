package event

import "context"

type Service struct {
	repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, d Draft, createdBy string) (Event, error) {
	if err := d.validate(); err != nil {
		return Event{}, err
	}
	return s.repo.Create(ctx, d, createdBy)
}

func (s *Service) Update(ctx context.Context, id string, d Draft) (Event, error) {
	if err := d.validate(); err != nil {
		return Event{}, err
	}
	e, err := s.repo.Update(ctx, id, d)
	if err != nil {
		return Event{}, err
	}
	if e == nil {
		return Event{}, ErrNotFound
	}
	return *e, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

func (s *Service) Get(ctx context.Context, id string) (Event, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Event{}, err
	}
	if e == nil {
		return Event{}, ErrNotFound
	}
	return *e, nil
}

func (s *Service) List(ctx context.Context) ([]Event, error) {
	return s.repo.List(ctx)
}
