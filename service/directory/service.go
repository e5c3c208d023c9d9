// Package directory loads the static authority directory once at startup and
// serves it read-only.
package directory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/viant/afs"
	"github.com/viant/visitgate/internal/yml"
	"github.com/viant/visitgate/model"
	"github.com/viant/visitgate/service/dao"
	"github.com/viant/visitgate/service/dao/store"
	"github.com/viant/visitgate/tracing"
)

var (
	// ErrInvalidDirectory wraps schema and structural validation failures
	ErrInvalidDirectory = errors.New("directory: invalid")
	// ErrAlreadyLoaded is returned on second Load; the directory is immutable
	ErrAlreadyLoaded = errors.New("directory: already loaded")
	// ErrNotFound is returned by Lookup for unknown ids
	ErrNotFound = dao.ErrNotFound
)

// documentKey is the optional top level key holding the authority list
const documentKey = "authorities"

// Service serves the authority directory
type Service struct {
	fs      afs.Service
	records *store.MemoryStore[string, model.Authority]
	source  string
	mux     sync.RWMutex
	loaded  bool
}

func authorityKey(a *model.Authority) string { return a.ID }

// Load reads the directory from URL (any afs supported scheme). The document
// is either a list of authorities or a mapping with an "authorities" list,
// encoded as YAML or JSON.
func (s *Service) Load(ctx context.Context, URL string) (err error) {
	ctx, span := tracing.StartSpan(ctx, "directory.load", tracing.KindClient)
	span.Attr("url", URL)
	defer func() { span.End(err) }()

	data, err := s.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return fmt.Errorf("failed to download directory %s: %w", URL, err)
	}
	authorities, err := Decode(data)
	if err != nil {
		return fmt.Errorf("failed to decode directory %s: %w", URL, err)
	}
	if err = s.Init(ctx, authorities); err != nil {
		return err
	}
	s.source = URL
	return nil
}

// Init populates the directory from memory. It validates the records and
// stores deep copies.
func (s *Service) Init(ctx context.Context, authorities model.Authorities) error {
	if issues := authorities.Validate(); len(issues) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidDirectory, errors.Join(issues...))
	}
	s.mux.Lock()
	defer s.mux.Unlock()
	if s.loaded {
		return ErrAlreadyLoaded
	}
	for _, authority := range authorities {
		if err := s.records.Save(ctx, authority.Clone()); err != nil {
			return fmt.Errorf("failed to store authority %s: %w", authority.ID, err)
		}
	}
	s.loaded = true
	return nil
}

// Decode validates data against the directory schema and decodes authorities
func Decode(data []byte) (model.Authorities, error) {
	node, err := yml.Parse(data)
	if err != nil {
		return nil, err
	}
	list := node.Root()
	if nested := list.Lookup(documentKey); nested != nil {
		list = nested
	}
	if err = validateSchema(list.Interface()); err != nil {
		return nil, err
	}
	var ret model.Authorities
	if err = list.Decode(&ret); err != nil {
		return nil, err
	}
	for _, authority := range ret {
		authority.ID = strings.TrimSpace(authority.ID)
	}
	return ret, nil
}

// Authorities returns copies of the directory records in source order
func (s *Service) Authorities(ctx context.Context) []*model.Authority {
	list, _ := s.records.List(ctx)
	return model.Authorities(list).Clone()
}

// Lookup returns authority by id
func (s *Service) Lookup(ctx context.Context, id string) (*model.Authority, error) {
	ret, err := s.records.Load(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("authority %q: %w", id, err)
	}
	return ret.Clone(), nil
}

// Len returns number of authorities
func (s *Service) Len() int { return s.records.Len() }

// Source returns URL the directory was loaded from
func (s *Service) Source() string { return s.source }

// New creates an empty directory service
func New(options ...Option) *Service {
	ret := &Service{
		records: store.NewMemoryStore[string, model.Authority](authorityKey),
	}
	for _, opt := range options {
		opt(ret)
	}
	if ret.fs == nil {
		ret.fs = afs.New()
	}
	return ret
}

// NewStatic creates a directory from in-memory records
func NewStatic(authorities ...*model.Authority) (*Service, error) {
	ret := New()
	if err := ret.Init(context.Background(), authorities); err != nil {
		return nil, err
	}
	return ret, nil
}
