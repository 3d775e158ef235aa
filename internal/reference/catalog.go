// internal/reference/catalog.go
package reference

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	apperrors "career-assessment-workers/internal/common/errors"
	"career-assessment-workers/internal/common/validation"
	"career-assessment-workers/internal/models"

	"github.com/google/uuid"
)

const catalogSchemaJSON = `{
  "type": "object",
  "required": ["careers"],
  "properties": {
    "careers": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["careerId", "title", "requirementVectors"],
        "properties": {
          "careerId": {"type": "string", "minLength": 1},
          "title": {"type": "string", "minLength": 1},
          "category": {"type": "string"},
          "requirementVectors": {
            "type": "object",
            "additionalProperties": {
              "type": "object",
              "additionalProperties": {"type": "number", "minimum": 0, "maximum": 100}
            }
          },
          "personalityTypes": {
            "type": "object",
            "additionalProperties": {"type": "number", "minimum": 0, "maximum": 100}
          },
          "metadata": {"type": "object"}
        }
      }
    }
  }
}`

var catalogSchema = validation.MustCompileSchema(catalogSchemaJSON)

// Catalog is an immutable, ordered set of career requirements.
// Declaration order is the ranking tie-break.
type Catalog struct {
	careers []models.CareerRequirement
	byID    map[string]int
	version string
}

type catalogDocument struct {
	Careers []models.CareerRequirement `json:"careers"`
}

// NewCatalog indexes careers, rejecting duplicate ids and unknown
// instrument codes.
func NewCatalog(careers []models.CareerRequirement) (*Catalog, error) {
	c := &Catalog{
		careers: make([]models.CareerRequirement, 0, len(careers)),
		byID:    make(map[string]int, len(careers)),
	}
	for _, career := range careers {
		if career.CareerID == "" {
			return nil, apperrors.NewInvalidCatalogError("career without careerId")
		}
		if _, dup := c.byID[career.CareerID]; dup {
			return nil, apperrors.NewInvalidCatalogError(fmt.Sprintf("duplicate careerId %q", career.CareerID))
		}
		reqs := make(map[models.InstrumentCode]map[string]float64, len(career.Requirements))
		for code, vector := range career.Requirements {
			parsed, err := models.ParseInstrumentCode(string(code))
			if err != nil {
				return nil, apperrors.NewInvalidCatalogError(fmt.Sprintf("career %q: unknown instrument %q", career.CareerID, code))
			}
			dims := make(map[string]float64, len(vector))
			for dim, v := range vector {
				dims[strings.ToLower(dim)] = v
			}
			reqs[parsed] = dims
		}
		career.Requirements = reqs
		c.byID[career.CareerID] = len(c.careers)
		c.careers = append(c.careers, career)
	}

	data, err := json.Marshal(c.careers)
	if err != nil {
		return nil, apperrors.NewInvalidCatalogError(err.Error())
	}
	c.version = uuid.NewSHA1(uuid.NameSpaceOID, data).String()
	return c, nil
}

// ParseCatalog validates and decodes a catalog JSON document.
func ParseCatalog(data []byte) (*Catalog, error) {
	result, err := catalogSchema.ValidateJSON(data)
	if err != nil {
		return nil, apperrors.NewInvalidCatalogError(err.Error())
	}
	if !result.Valid {
		return nil, apperrors.NewInvalidCatalogError(result.Error())
	}

	var doc catalogDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, apperrors.NewInvalidCatalogError(err.Error())
	}
	return NewCatalog(doc.Careers)
}

// LoadCatalogFile reads a catalog JSON file.
func LoadCatalogFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.NewCatalogLoadFailedError(path, err)
	}
	return ParseCatalog(data)
}

// Careers returns a copy of the catalog in declaration order.
func (c *Catalog) Careers() []models.CareerRequirement {
	if c == nil {
		return nil
	}
	out := make([]models.CareerRequirement, len(c.careers))
	copy(out, c.careers)
	return out
}

func (c *Catalog) Get(careerID string) (models.CareerRequirement, bool) {
	if c == nil {
		return models.CareerRequirement{}, false
	}
	i, ok := c.byID[careerID]
	if !ok {
		return models.CareerRequirement{}, false
	}
	return c.careers[i], true
}

// Version identifies the catalog content, order included. Reloading an
// unchanged catalog yields the same version.
func (c *Catalog) Version() string {
	if c == nil {
		return ""
	}
	return c.version
}

func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.careers)
}
