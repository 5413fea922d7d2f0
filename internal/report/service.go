package report

// Service provides the admin report figures.
type Service struct {
	repo Repository
}

func NewService(r Repository) *Service {
	return &Service{repo: r}
}

func (s *Service) Summary() (Summary, error) {
	return s.repo.Summary()
}

// BestSellers returns the top products by quantity sold, defaulting to five.
func (s *Service) BestSellers(limit int) ([]BestSeller, error) {
	if limit <= 0 {
		limit = 5
	}
	return s.repo.BestSellers(limit)
}
