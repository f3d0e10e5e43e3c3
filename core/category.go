package core

// A Category is static reference data with a unique slug.
type Category struct {
	ID   int
	Name string
	Slug string
}

type CategoryDB interface {
	GetCategory(id int) (*Category, error)
	GetCategoryBySlug(slug string) (*Category, error)
	GetAllCategories() ([]Category, error)
	InsertCategory(name, slug string) error
}
