package app

import (
	"errors"
	"fmt"
	"slices"

	"github.com/vk/framegraphgo/internal/config"
)

// validate checks the integrity of a frame model before any graph
// construction happens, so pass setup callbacks can assume every name and
// kind resolves. All problems are reported at once.
func (a *App) validate(frame *config.Frame) error {
	var errs []error

	passNames := make(map[string]bool, len(frame.Passes))
	for _, p := range frame.Passes {
		if passNames[p.Name] {
			errs = append(errs, fmt.Errorf("duplicate pass %q", p.Name))
		}
		passNames[p.Name] = true
	}

	kinds := make(map[string]string) // resource name -> kind label
	declare := func(kind, name, what string) {
		if _, exists := kinds[name]; exists {
			errs = append(errs, fmt.Errorf("duplicate %s name %q", what, name))
			return
		}
		if _, err := a.registry.Kind(kind); err != nil {
			errs = append(errs, fmt.Errorf("%s %q: %w", what, name, err))
			return
		}
		kinds[name] = kind
	}
	for _, r := range frame.Resources {
		declare(r.Kind, r.Name, "resource")
		if !passNames[r.Pass] {
			errs = append(errs, fmt.Errorf("resource %q is produced by unknown pass %q", r.Name, r.Pass))
		}
	}
	for _, imp := range frame.Imports {
		declare(imp.Kind, imp.Name, "import")
	}

	// Walk passes in declaration order, tracking which names have been
	// produced so far; a read or write of a name that only exists later
	// is an ordering error, not just an unknown name.
	available := make(map[string]bool, len(kinds))
	for _, imp := range frame.Imports {
		available[imp.Name] = true
	}
	createdBy := make(map[string][]string)
	for _, r := range frame.Resources {
		createdBy[r.Pass] = append(createdBy[r.Pass], r.Name)
	}

	for _, p := range frame.Passes {
		created := createdBy[p.Name]
		for _, name := range p.Reads {
			switch {
			case slices.Contains(created, name):
				errs = append(errs, fmt.Errorf("pass %q reads %q, which it also creates", p.Name, name))
			case kinds[name] == "":
				errs = append(errs, fmt.Errorf("pass %q reads unknown resource %q", p.Name, name))
			case !available[name]:
				errs = append(errs, fmt.Errorf("pass %q reads %q before any pass produced it", p.Name, name))
			}
		}
		for _, name := range created {
			available[name] = true
		}
		for _, name := range p.Writes {
			switch {
			case kinds[name] == "":
				errs = append(errs, fmt.Errorf("pass %q writes unknown resource %q", p.Name, name))
			case !available[name]:
				errs = append(errs, fmt.Errorf("pass %q writes %q before any pass produced it", p.Name, name))
			}
		}
	}

	return errors.Join(errs...)
}
