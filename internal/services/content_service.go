package services

import (
	"context"
	"time"

	"storefront-service/internal/domain"
	"storefront-service/internal/repository"

	"github.com/google/uuid"
)

// ContentPtr is satisfied by *Blog, *Project and *Testimonial.
type ContentPtr[T any] interface {
	*T
	domain.Content
}

// ContentService is the CRUD service shared by the CMS record types.
type ContentService[T any, P ContentPtr[T]] struct {
	repo repository.ContentRepository[T]
	now  func() time.Time
}

func NewContentService[T any, P ContentPtr[T]](repo repository.ContentRepository[T]) *ContentService[T, P] {
	return &ContentService[T, P]{repo: repo, now: time.Now}
}

func (s *ContentService[T, P]) Create(ctx context.Context, v *T) (*T, error) {
	p := P(v)
	p.SetID(uuid.NewString())
	p.Stamp(time.Time{}, s.now())
	if err := prepare(v); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *ContentService[T, P]) Get(ctx context.Context, id string) (*T, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ContentService[T, P]) List(ctx context.Context, page repository.Page) ([]T, int64, error) {
	return s.repo.List(ctx, page)
}

func (s *ContentService[T, P]) Update(ctx context.Context, id string, v *T) (*T, error) {
	cur, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	p := P(v)
	p.SetID(id)
	p.Stamp(P(cur).Created(), s.now())
	if err := prepare(v); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, id, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *ContentService[T, P]) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// prepare fills in a missing slug and validates v.
func prepare(v any) error {
	if sl, ok := v.(domain.Sluggable); ok {
		if sl.GetSlug() == "" {
			sl.SetSlug(domain.Slugify(sl.SlugSource()))
		} else {
			sl.SetSlug(domain.Slugify(sl.GetSlug()))
		}
	}
	return validateStruct(v)
}

type CategoryService struct {
	repo repository.CategoryRepository
	now  func() time.Time
}

func NewCategoryService(repo repository.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo, now: time.Now}
}

func (s *CategoryService) List(ctx context.Context) ([]domain.Category, error) {
	return s.repo.List(ctx)
}

func (s *CategoryService) Get(ctx context.Context, slug string) (*domain.Category, error) {
	return s.repo.FindBySlug(ctx, slug)
}

func (s *CategoryService) Create(ctx context.Context, c *domain.Category) (*domain.Category, error) {
	c.Slug = domain.Slugify(firstNonEmpty(c.Slug, c.Name))
	if err := validateStruct(c); err != nil {
		return nil, err
	}
	if c.Slug == "" {
		return nil, invalid("name must contain letters or digits")
	}
	now := s.now()
	c.ID = uuid.NewString()
	c.CreatedAt, c.UpdatedAt = now, now
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CategoryService) Update(ctx context.Context, slug string, in *domain.Category) (*domain.Category, error) {
	cur, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	in.ID = cur.ID
	in.Slug = domain.Slugify(firstNonEmpty(in.Slug, cur.Slug))
	in.CreatedAt, in.UpdatedAt = cur.CreatedAt, s.now()
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, in); err != nil {
		return nil, err
	}
	return in, nil
}

func (s *CategoryService) Delete(ctx context.Context, slug string) error {
	cur, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, cur.ID)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
