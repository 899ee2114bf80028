package packages

import "context"

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListPackages(ctx context.Context) ([]Package, error) {
	return s.repo.ListPackages(ctx)
}

func (s *Service) GetPackage(ctx context.Context, id int64) (*Package, error) {
	return s.repo.GetPackage(ctx, id)
}
