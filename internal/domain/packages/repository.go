package packages

import "context"

type Repository interface {
	ListPackages(ctx context.Context) ([]Package, error)
	GetPackage(ctx context.Context, id int64) (*Package, error)
}
