package domain

import "time"

// Content is implemented by the pointer types of the flat CMS records.
type Content interface {
	GetID() string
	SetID(id string)
	Created() time.Time
	// Stamp sets the creation time (now when created is zero) and the
	// update time.
	Stamp(created, now time.Time)
}

type Category struct {
	ID          string    `json:"id" bson:"_id" gorm:"primaryKey;size:36"`
	Slug        string    `json:"slug" bson:"slug" gorm:"uniqueIndex;size:120"`
	Name        string    `json:"name" bson:"name" gorm:"size:120" validate:"required"`
	Description string    `json:"description,omitempty" bson:"description,omitempty" gorm:"type:text"`
	Image       string    `json:"image,omitempty" bson:"image,omitempty" gorm:"size:255"`
	Parent      string    `json:"parent,omitempty" bson:"parent,omitempty" gorm:"size:120"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updatedAt"`
}

type Blog struct {
	ID         string    `json:"id" bson:"_id" gorm:"primaryKey;size:36"`
	Slug       string    `json:"slug" bson:"slug" gorm:"index;size:160"`
	Title      string    `json:"title" bson:"title" gorm:"size:200" validate:"required"`
	Excerpt    string    `json:"excerpt,omitempty" bson:"excerpt,omitempty" gorm:"size:500"`
	Content    string    `json:"content" bson:"content" gorm:"type:longtext" validate:"required"`
	Author     string    `json:"author" bson:"author" gorm:"size:120"`
	Tags       []string  `json:"tags" bson:"tags" gorm:"serializer:json"`
	CoverImage string    `json:"coverImage,omitempty" bson:"coverImage,omitempty" gorm:"size:255"`
	Published  bool      `json:"published" bson:"published"`
	CreatedAt  time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt" bson:"updatedAt"`
}

func (b *Blog) GetID() string                { return b.ID }
func (b *Blog) SetID(id string)              { b.ID = id }
func (b *Blog) Created() time.Time           { return b.CreatedAt }
func (b *Blog) Stamp(created, now time.Time) { stamp(&b.CreatedAt, &b.UpdatedAt, created, now) }

type Project struct {
	ID          string    `json:"id" bson:"_id" gorm:"primaryKey;size:36"`
	Slug        string    `json:"slug" bson:"slug" gorm:"index;size:160"`
	Title       string    `json:"title" bson:"title" gorm:"size:200" validate:"required"`
	Description string    `json:"description" bson:"description" gorm:"type:text"`
	Client      string    `json:"client,omitempty" bson:"client,omitempty" gorm:"size:120"`
	Images      []string  `json:"images" bson:"images" gorm:"serializer:json"`
	Link        string    `json:"link,omitempty" bson:"link,omitempty" gorm:"size:255" validate:"omitempty,url"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updatedAt"`
}

func (p *Project) GetID() string                { return p.ID }
func (p *Project) SetID(id string)              { p.ID = id }
func (p *Project) Created() time.Time           { return p.CreatedAt }
func (p *Project) Stamp(created, now time.Time) { stamp(&p.CreatedAt, &p.UpdatedAt, created, now) }

type Testimonial struct {
	ID        string    `json:"id" bson:"_id" gorm:"primaryKey;size:36"`
	Name      string    `json:"name" bson:"name" gorm:"size:120" validate:"required"`
	Role      string    `json:"role,omitempty" bson:"role,omitempty" gorm:"size:120"`
	Company   string    `json:"company,omitempty" bson:"company,omitempty" gorm:"size:120"`
	Quote     string    `json:"quote" bson:"quote" gorm:"type:text" validate:"required"`
	Rating    int       `json:"rating" bson:"rating" validate:"min=0,max=5"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

func (t *Testimonial) GetID() string                { return t.ID }
func (t *Testimonial) SetID(id string)              { t.ID = id }
func (t *Testimonial) Created() time.Time           { return t.CreatedAt }
func (t *Testimonial) Stamp(created, now time.Time) { stamp(&t.CreatedAt, &t.UpdatedAt, created, now) }

func stamp(createdAt, updatedAt *time.Time, created, now time.Time) {
	if created.IsZero() {
		created = now
	}
	*createdAt = created
	*updatedAt = now
}

// Sluggable records carry a URL slug derived from their title.
type Sluggable interface {
	SlugSource() string
	GetSlug() string
	SetSlug(slug string)
}

func (b *Blog) SlugSource() string     { return b.Title }
func (b *Blog) GetSlug() string        { return b.Slug }
func (b *Blog) SetSlug(slug string)    { b.Slug = slug }
func (p *Project) SlugSource() string  { return p.Title }
func (p *Project) GetSlug() string     { return p.Slug }
func (p *Project) SetSlug(slug string) { p.Slug = slug }
