package catalog

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// OtherCategory collects services without a category name.
const OtherCategory = "Other"

// Categories groups services by category name. Categories appear in the order
// they were first seen; services keep their input order inside a bucket.
type Categories struct {
	buckets *orderedmap.OrderedMap[string, []Service]
}

// Categorize partitions services by category name. Every service lands in
// exactly one bucket; uncategorized ones go to OtherCategory.
func Categorize(services []Service) *Categories {
	c := &Categories{buckets: orderedmap.New[string, []Service]()}
	for _, s := range services {
		c.add(s)
	}
	return c
}

func (c *Categories) add(s Service) {
	name := s.CategoryName()
	if name == "" {
		name = OtherCategory
	}
	bucket, _ := c.buckets.Get(name)
	c.buckets.Set(name, append(bucket, s))
}

// Len returns the number of categories.
func (c *Categories) Len() int {
	if c == nil {
		return 0
	}
	return c.buckets.Len()
}

// Names returns the category names in first-seen order.
func (c *Categories) Names() []string {
	if c == nil {
		return nil
	}
	names := make([]string, 0, c.buckets.Len())
	for pair := c.buckets.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}

// Get returns the services of one category.
func (c *Categories) Get(name string) ([]Service, bool) {
	if c == nil {
		return nil, false
	}
	return c.buckets.Get(name)
}

// MarshalJSON renders the categories as a JSON object in first-seen order.
func (c *Categories) MarshalJSON() ([]byte, error) {
	if c == nil {
		return []byte("null"), nil
	}
	return c.buckets.MarshalJSON()
}
