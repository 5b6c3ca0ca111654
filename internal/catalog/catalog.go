// Package catalog holds the built-in practice catalog and the default daily set.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/limbo/coco/pkg/entity"
	"gopkg.in/yaml.v3"
)

//go:embed practices.yaml
var builtin []byte

type practiceDef struct {
	ID              int64    `yaml:"id"`
	Name            string   `yaml:"name"`
	Description     string   `yaml:"description"`
	Benefits        []string `yaml:"benefits"`
	PointsPerMinute float64  `yaml:"points_per_minute"`
	Category        string   `yaml:"category"`
	Tags            []string `yaml:"tags"`
}

type file struct {
	DefaultDaily []int64       `yaml:"default_daily"`
	Practices    []practiceDef `yaml:"practices"`
}

type Catalog struct {
	practices    []entity.Practice
	defaultDaily []int64
}

// Default parses the embedded catalog.
func Default() (*Catalog, error) {
	return Parse(builtin)
}

func Parse(data []byte) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.New("parsing catalog error: " + err.Error())
	}
	c := &Catalog{
		practices: make([]entity.Practice, 0, len(f.Practices)),
	}
	seen := make(map[int64]struct{}, len(f.Practices))
	for _, def := range f.Practices {
		if def.ID <= 0 {
			return nil, fmt.Errorf("catalog practice %q: id must be positive", def.Name)
		}
		if _, ok := seen[def.ID]; ok {
			return nil, fmt.Errorf("catalog practice id %d is duplicated", def.ID)
		}
		if strings.TrimSpace(def.Name) == "" {
			return nil, fmt.Errorf("catalog practice %d: empty name", def.ID)
		}
		if def.PointsPerMinute <= 0 {
			return nil, fmt.Errorf("catalog practice %d: points_per_minute must be positive", def.ID)
		}
		seen[def.ID] = struct{}{}
		benefits := def.Benefits
		if benefits == nil {
			benefits = []string{}
		}
		c.practices = append(c.practices, entity.Practice{
			ID:               def.ID,
			Name:             def.Name,
			Description:      def.Description,
			Benefits:         benefits,
			PointsPerMinute:  def.PointsPerMinute,
			Tags:             def.Tags,
			Category:         def.Category,
			IsSystemPractice: true,
		})
	}
	slices.SortFunc(c.practices, func(a, b entity.Practice) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})
	if err := c.SetDefaultDaily(f.DefaultDaily); err != nil {
		return nil, err
	}
	return c, nil
}

// Practices returns a copy of the system practices ordered by id.
func (c *Catalog) Practices() []entity.Practice {
	return slices.Clone(c.practices)
}

func (c *Catalog) DefaultDaily() []int64 {
	return slices.Clone(c.defaultDaily)
}

// SetDefaultDaily replaces the default set. Every id must be in the catalog.
func (c *Catalog) SetDefaultDaily(ids []int64) error {
	for _, id := range ids {
		if !c.Has(id) {
			return fmt.Errorf("default daily practice %d is not in the catalog", id)
		}
	}
	c.defaultDaily = slices.Clone(ids)
	return nil
}

func (c *Catalog) Has(id int64) bool {
	_, found := slices.BinarySearchFunc(c.practices, id, func(p entity.Practice, id int64) int {
		switch {
		case p.ID < id:
			return -1
		case p.ID > id:
			return 1
		}
		return 0
	})
	return found
}
