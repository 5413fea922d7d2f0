package category

import "errors"

var ErrEmptyName = errors.New("category name is required")

// Service provides business logic for categories.
type Service struct {
	repo Repository
}

func NewService(r Repository) *Service {
	return &Service{repo: r}
}

func (s *Service) List() []Category {
	items, err := s.repo.List()
	if err != nil {
		return []Category{}
	}
	return items
}

func (s *Service) Create(name string) (Category, error) {
	if name == "" {
		return Category{}, ErrEmptyName
	}
	return s.repo.Create(name)
}
