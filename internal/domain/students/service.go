package students

import "context"

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListStudents(ctx context.Context) ([]Student, error) {
	return s.repo.ListStudents(ctx)
}

// GetStudent returns ErrStudentNotFound when no student has the given id.
func (s *Service) GetStudent(ctx context.Context, id int64) (*Student, error) {
	return s.repo.GetStudent(ctx, id)
}
