package config

import (
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v2"

	"turnovercli/internal/errors"
)

// Category names one master table and the ordered source files folded into
// it. An empty file list is valid and yields an empty table.
type Category struct {
	Name  string   `yaml:"name" validate:"required"`
	Files []string `yaml:"files"`
}

// Catalog is the ordered set of categories processed in one run. Order is
// the caller-supplied processing order.
type Catalog struct {
	Categories []Category `yaml:"categories" validate:"required,min=1,dive"`
}

// LoadCatalog loads the category catalog from a YAML file, or returns the
// built-in default catalog when the path is empty.
func LoadCatalog(path string) (*Catalog, error) {
	if path == "" {
		return DefaultCatalog(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewConfigError("failed to read catalog file", err)
	}

	var catalog Catalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, errors.NewConfigError("failed to parse catalog file", err)
	}

	if err := validator.New().Struct(&catalog); err != nil {
		return nil, errors.NewConfigError("catalog validation failed", err)
	}
	return &catalog, nil
}

// DefaultCatalog returns the stock catalog: retail and institutional call
// and put turnover, each built from the ATM, ITM, and OTM slices.
func DefaultCatalog() *Catalog {
	return &Catalog{
		Categories: []Category{
			{
				Name: "retail_call",
				Files: []string{
					"C_ATM_small_turnover.csv",
					"C_ITM_small_turnover.csv",
					"C_OTM_small_turnover.csv",
				},
			},
			{
				Name: "retail_put",
				Files: []string{
					"P_ATM_small_turnover.csv",
					"P_ITM_small_turnover.csv",
					"P_OTM_small_turnover.csv",
				},
			},
			{
				Name: "inst_call",
				Files: []string{
					"C_ATM_large_turnover.csv",
					"C_ITM_large_turnover.csv",
					"C_OTM_large_turnover.csv",
				},
			},
			{
				Name: "inst_put",
				Files: []string{
					"P_ATM_large_turnover.csv",
					"P_ITM_large_turnover.csv",
					"P_OTM_large_turnover.csv",
				},
			},
		},
	}
}
