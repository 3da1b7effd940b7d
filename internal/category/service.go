package category

import (
	"context"
)

type Service interface {
	GetTree(ctx context.Context) ([]*Category, error)
	Create(ctx context.Context, name string, parentID *uint) (*Category, error)
	Reparent(ctx context.Context, id uint, parentID *uint) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// GetTree returns root categories with children attached. The build is
// iterative over an id-keyed arena, so a corrupt parent link cannot
// recurse unboundedly.
func (s *service) GetTree(ctx context.Context) ([]*Category, error) {
	flat, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	byID := make(map[uint]*Category, len(flat))
	for _, c := range flat {
		byID[c.ID] = c
	}

	var roots []*Category
	for _, c := range flat {
		if c.ParentID == nil {
			roots = append(roots, c)
			continue
		}
		parent, ok := byID[*c.ParentID]
		if !ok {
			// orphaned parent link, surface as a root
			roots = append(roots, c)
			continue
		}
		parent.Children = append(parent.Children, c)
	}

	return roots, nil
}

func (s *service) Create(ctx context.Context, name string, parentID *uint) (*Category, error) {
	if parentID != nil {
		parent, err := s.repo.GetByID(ctx, *parentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, ErrCategoryNotFound
		}
	}
	return s.repo.Create(ctx, name, parentID)
}

// Reparent moves a category under a new parent after validating that the
// move keeps the tree acyclic.
func (s *service) Reparent(ctx context.Context, id uint, parentID *uint) error {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return ErrCategoryNotFound
	}

	if parentID != nil {
		flat, err := s.repo.GetAll(ctx)
		if err != nil {
			return err
		}
		if hasCycle(flat, id, *parentID) {
			return ErrCategoryCycle
		}
	}

	return s.repo.UpdateParent(ctx, id, parentID)
}

// hasCycle walks parent links from newParent upward; hitting id means the
// reassignment would close a loop. The walk is bounded by the node count
// so a pre-existing cycle also terminates.
func hasCycle(flat []*Category, id, newParent uint) bool {
	parents := make(map[uint]*uint, len(flat))
	for _, c := range flat {
		parents[c.ID] = c.ParentID
	}

	cur := newParent
	for range flat {
		if cur == id {
			return true
		}
		p, ok := parents[cur]
		if !ok || p == nil {
			return false
		}
		cur = *p
	}
	return true
}
