package directory

import "github.com/viant/afs"

// Option configures directory service
type Option func(s *Service)

// WithFs sets the file system used to download the directory
func WithFs(fs afs.Service) Option {
	return func(s *Service) { s.fs = fs }
}
