package catalog

type Service struct {
	repo              Repository
	lowStockThreshold int
}

func NewService(repo Repository, lowStockThreshold int) *Service {
	return &Service{repo: repo, lowStockThreshold: lowStockThreshold}
}

func (s *Service) List() []Product {
	return s.repo.List()
}

func (s *Service) GetByID(id int) (Product, error) {
	return s.repo.GetByID(id)
}

// LowStock returns the products running below the configured alert threshold.
// It reads live counters, so repeated calls without intervening commits
// return the same result.
func (s *Service) LowStock() []Product {
	return s.repo.LowStock(s.lowStockThreshold)
}

func (s *Service) LowStockThreshold() int {
	return s.lowStockThreshold
}
