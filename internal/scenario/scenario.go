package scenario

import (
	"fmt"

	"github.com/ivlev/numanim/internal/config"
)

const Version = "1.0"

// Scenario is a batch of runs rendered one output each.
type Scenario struct {
	Version string `yaml:"version"`
	Items   []Item `yaml:"items"`
}

// Item is one named run. The request fields sit inline next to name
// and output.
type Item struct {
	Name           string `yaml:"name"`
	Output         string `yaml:"output,omitempty"` // relative paths resolve against the output dir
	config.Request `yaml:",inline"`
}

// Validate fills request defaults and checks every item.
func (s *Scenario) Validate() error {
	if len(s.Items) == 0 {
		return fmt.Errorf("сценарий не содержит ни одного элемента")
	}
	seen := make(map[string]bool, len(s.Items))
	for i := range s.Items {
		it := &s.Items[i]
		if it.Name == "" {
			it.Name = fmt.Sprintf("item_%d", i+1)
		}
		if seen[it.Name] {
			return fmt.Errorf("повторяющееся имя элемента: %s", it.Name)
		}
		seen[it.Name] = true

		it.Request = it.Request.WithDefaults()
		if err := it.Request.Validate(); err != nil {
			return fmt.Errorf("item %s: %w", it.Name, err)
		}
	}
	return nil
}

// Sequence builds a scenario that plays base once per text, the way a
// dashboard counter moves through successive values.
func Sequence(base config.Request, texts []string) *Scenario {
	s := &Scenario{Version: Version}
	for i, text := range texts {
		req := base
		req.Text = text
		s.Items = append(s.Items, Item{
			Name:    fmt.Sprintf("%s_%02d", base.WithDefaults().Effect, i+1),
			Request: req,
		})
	}
	return s
}
