// internal/curriculum/curriculum.go
package curriculum

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"go_health_learning/internal/model"
	"go_health_learning/internal/webutil"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// File はカリキュラム YAML のルート
type File struct {
	Groups []Group `yaml:"groups" validate:"required,min=1,dive"`
}

type Group struct {
	Name        string  `yaml:"name" validate:"required"`
	Description string  `yaml:"description"`
	Topics      []Topic `yaml:"topics" validate:"dive"`
}

type Topic struct {
	Title       string    `yaml:"title" validate:"required"`
	Description string    `yaml:"description"`
	Order       int       `yaml:"order" validate:"min=1"`
	Contents    []Content `yaml:"contents" validate:"dive"`
}

type Content struct {
	Title string `yaml:"title" validate:"required"`
	Order int    `yaml:"order" validate:"min=1"`
	Steps []Step `yaml:"steps" validate:"dive"`
}

type Step struct {
	PageTitle string `yaml:"pageTitle" validate:"required"`
	Order     int    `yaml:"order" validate:"min=1"`
	Items     []Item `yaml:"items" validate:"dive"`
}

type Item struct {
	Type  model.ContentItemType  `yaml:"type" validate:"required"`
	Order int                    `yaml:"order" validate:"min=1"`
	Data  map[string]interface{} `yaml:"data"`
}

// Parse は YAML を読み込み、構造と各アイテムのペイロードを検証します。
func Parse(r io.Reader) (*File, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("curriculum: parse yaml: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate は構造・兄弟間の order の重複・アイテムのペイロードを検証します。
func (f *File) Validate() error {
	if err := webutil.Validator.Struct(f); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return fmt.Errorf("curriculum: %s: %w", validationErrors.Error(), model.ErrInvalidInput)
		}
		return err
	}

	for gi, g := range f.Groups {
		if err := uniqueOrders(fmt.Sprintf("groups[%d].topics", gi), len(g.Topics), func(i int) int { return g.Topics[i].Order }); err != nil {
			return err
		}
		for ti, t := range g.Topics {
			if err := uniqueOrders(fmt.Sprintf("groups[%d].topics[%d].contents", gi, ti), len(t.Contents), func(i int) int { return t.Contents[i].Order }); err != nil {
				return err
			}
			for ci, c := range t.Contents {
				if err := uniqueOrders(fmt.Sprintf("groups[%d].topics[%d].contents[%d].steps", gi, ti, ci), len(c.Steps), func(i int) int { return c.Steps[i].Order }); err != nil {
					return err
				}
				for si, s := range c.Steps {
					for ii, item := range s.Items {
						if _, err := item.Payload(); err != nil {
							return fmt.Errorf("curriculum: groups[%d].topics[%d].contents[%d].steps[%d].items[%d]: %w", gi, ti, ci, si, ii, err)
						}
					}
				}
			}
		}
	}
	return nil
}

// Payload は data をタイプ付きペイロードとしてデコード・検証し、保存用の JSON を返します。
func (i Item) Payload() ([]byte, error) {
	raw, err := json.Marshal(i.Data)
	if err != nil {
		return nil, fmt.Errorf("encode data: %w", err)
	}
	data, err := model.DecodeContentItemData(i.Type, raw)
	if err != nil {
		return nil, err
	}
	if err := webutil.Validator.Struct(data); err != nil {
		return nil, fmt.Errorf("%s payload: %v: %w", i.Type, err, model.ErrInvalidInput)
	}
	return json.Marshal(data)
}

func uniqueOrders(path string, n int, order func(int) int) error {
	seen := make(map[int]bool, n)
	for i := 0; i < n; i++ {
		o := order(i)
		if seen[o] {
			return fmt.Errorf("curriculum: %s: duplicate order %d: %w", path, o, model.ErrInvalidInput)
		}
		seen[o] = true
	}
	return nil
}
