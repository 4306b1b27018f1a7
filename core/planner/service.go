package planner

import (
	"context"

	"github.com/pkg/errors"
)

type Service struct {
	catalog Catalog
}

func NewService(catalog Catalog) *Service {
	return &Service{catalog: catalog}
}

func contains(plan []string, id string) bool {
	for _, p := range plan {
		if p == id {
			return true
		}
	}
	return false
}

// Search lists the offerings matching `term` that are not in the plan yet. An empty term matches everything.
func (svc *Service) Search(ctx context.Context, term string, plan []string) ([]Listing, error) {
	offerings, err := svc.catalog.QueryOfferings(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "querying offerings")
	}
	listings := make([]Listing, 0, len(offerings))
	for _, o := range offerings {
		if contains(plan, o.ID) || !o.Matches(term) {
			continue
		}
		listings = append(listings, NewListing(o))
	}
	return listings, nil
}

func (svc *Service) Get(ctx context.Context, id string) (Listing, error) {
	o, err := svc.catalog.GetOffering(ctx, id)
	if err != nil {
		return Listing{}, err
	}
	return NewListing(o), nil
}

// Add returns the plan with offering `id` appended. Full courses cannot be added.
func (svc *Service) Add(ctx context.Context, plan []string, id string) ([]string, error) {
	if contains(plan, id) {
		return plan, ErrAlreadyPlanned
	}
	o, err := svc.catalog.GetOffering(ctx, id)
	if err != nil {
		return plan, err
	}
	if o.IsFull() {
		return plan, ErrCourseFull
	}
	return append(plan[:len(plan):len(plan)], id), nil
}

// Remove returns the plan without offering `id`.
func Remove(plan []string, id string) ([]string, error) {
	for i, p := range plan {
		if p == id {
			return append(plan[:i:i], plan[i+1:]...), nil
		}
	}
	return plan, ErrNotPlanned
}

// Summary lists the planned offerings with the term's units, load and time conflicts.
// Offerings that left the catalog are skipped.
func (svc *Service) Summary(ctx context.Context, plan []string) (PlanSummary, error) {
	sum := PlanSummary{Courses: make([]Listing, 0, len(plan)), Conflicts: []Conflict{}}
	for _, id := range plan {
		o, err := svc.catalog.GetOffering(ctx, id)
		if err != nil {
			if errors.Cause(err) == ErrNotFound {
				continue
			}
			return PlanSummary{}, errors.Wrapf(err, "getting offering %s", id)
		}
		for _, prev := range sum.Courses {
			if prev.Overlaps(o) {
				sum.Conflicts = append(sum.Conflicts, Conflict{First: prev.Code, Second: o.Code})
			}
		}
		sum.Courses = append(sum.Courses, NewListing(o))
		sum.TotalUnits += o.Units
	}
	sum.Load = LoadStatus(sum.TotalUnits)
	return sum, nil
}
