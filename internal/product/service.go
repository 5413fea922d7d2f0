package product

// ServiceInterface lists the product operations other packages rely on.
type ServiceInterface interface {
	List() []Product
	ListByCategory(category string) []Product
	GetByID(id int) (Product, error)
	GetByBarcode(barcode string) (Product, error)
	Search(term string, limit int) []Product
	DecrementStock(id int, qty int) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List() []Product {
	return s.repo.List()
}

func (s *Service) ListByCategory(category string) []Product {
	return s.repo.ListByCategory(category)
}

func (s *Service) GetByID(id int) (Product, error) {
	return s.repo.GetByID(id)
}

func (s *Service) GetByBarcode(barcode string) (Product, error) {
	return s.repo.GetByBarcode(barcode)
}

func (s *Service) Search(term string, limit int) []Product {
	if limit <= 0 {
		limit = 8
	}
	return s.repo.Search(term, limit)
}

func (s *Service) Create(p Product) (Product, error) {
	return s.repo.Create(p)
}

func (s *Service) Update(id int, p Product) (Product, error) {
	return s.repo.Update(id, p)
}

func (s *Service) Delete(id int) error {
	return s.repo.Delete(id)
}

// DecrementStock lowers stock by qty, never below zero.
func (s *Service) DecrementStock(id int, qty int) error {
	if qty <= 0 {
		return nil
	}
	return s.repo.DecrementStock(id, qty)
}
