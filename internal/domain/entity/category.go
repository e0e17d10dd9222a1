package entity

// Category groups recipes. Names are unique and never change after creation.
type Category struct {
	ID   string
	Name string
}

func (c *Category) Clone() *Category {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}
