// Package roster reads committee rosters from YAML files.
//
// A roster lists committees with their approval state and members:
//
//	committees:
//	  - id: ethics
//	    name: Comissão de Ética
//	    state: approved
//	    members:
//	      - employee_id: "1001"
//	        role: chair
package roster

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/juris/internal/core/domain"
)

type file struct {
	Committees []committee `yaml:"committees"`
}

type committee struct {
	ID      string   `yaml:"id"`
	Name    string   `yaml:"name"`
	State   string   `yaml:"state"`
	Members []member `yaml:"members"`
}

type member struct {
	EmployeeID string `yaml:"employee_id"`
	Role       string `yaml:"role"`
}

// Load reads the roster at path.
func Load(path string) ([]domain.Committee, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening roster: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse decodes a roster. Unknown fields are rejected so typos surface
// instead of silently dropping data. States are lower-cased; everything
// else is validated by the committee import.
func Parse(r io.Reader) ([]domain.Committee, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc file
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, domain.Errorf(domain.ErrValidation, "roster is empty")
		}
		return nil, domain.Errorf(domain.ErrValidation, "parsing roster: %v", err)
	}

	out := make([]domain.Committee, 0, len(doc.Committees))
	for _, c := range doc.Committees {
		dc := domain.Committee{
			ID:    strings.TrimSpace(c.ID),
			Name:  strings.TrimSpace(c.Name),
			State: domain.CommitteeState(strings.ToLower(strings.TrimSpace(c.State))),
		}
		for _, m := range c.Members {
			dc.Members = append(dc.Members, domain.CommitteeMember{
				EmployeeID: strings.TrimSpace(m.EmployeeID),
				Role:       strings.TrimSpace(m.Role),
			})
		}
		out = append(out, dc)
	}
	return out, nil
}
