package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/pizzeria-pos/internal/domain/entity"
	"github.com/sangkips/pizzeria-pos/internal/domain/enum"
	"github.com/sangkips/pizzeria-pos/internal/domain/repository"
	"github.com/sangkips/pizzeria-pos/pkg/apperror"
)

// ModifierService handles modifier groups and option selection
type ModifierService struct {
	groupRepo repository.ModifierGroupRepository
}

// NewModifierService creates a new modifier service
func NewModifierService(groupRepo repository.ModifierGroupRepository) *ModifierService {
	return &ModifierService{groupRepo: groupRepo}
}

// ModifierGroupInput represents the create/update modifier group input
type ModifierGroupInput struct {
	Title         string
	SelectionType enum.SelectionType
	MinSelection  int
	MaxSelection  int
	Options       []entity.ModifierOption
}

// ModifierChoice is one option picked by staff. Group may be the group
// title or the label the menu item shows for it.
type ModifierChoice struct {
	Group  string
	Option string
}

// ListGroups returns every modifier group
func (s *ModifierService) ListGroups(ctx context.Context) ([]entity.ModifierGroup, error) {
	return s.groupRepo.List(ctx)
}

// GetGroup retrieves a modifier group by ID
func (s *ModifierService) GetGroup(ctx context.Context, id uuid.UUID) (*entity.ModifierGroup, error) {
	group, err := s.groupRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, apperror.NewNotFoundError("Modifier group")
	}
	return group, nil
}

// CreateGroup creates a new modifier group
func (s *ModifierService) CreateGroup(ctx context.Context, input *ModifierGroupInput) (*entity.ModifierGroup, error) {
	group := &entity.ModifierGroup{}
	if err := s.applyGroupInput(ctx, group, input); err != nil {
		return nil, err
	}
	if err := s.groupRepo.Create(ctx, group); err != nil {
		return nil, err
	}
	return group, nil
}

// UpdateGroup replaces a modifier group's rules and options
func (s *ModifierService) UpdateGroup(ctx context.Context, id uuid.UUID, input *ModifierGroupInput) (*entity.ModifierGroup, error) {
	group, err := s.GetGroup(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.applyGroupInput(ctx, group, input); err != nil {
		return nil, err
	}
	if err := s.groupRepo.Update(ctx, group); err != nil {
		return nil, err
	}
	return group, nil
}

// DeleteGroup deletes a modifier group
func (s *ModifierService) DeleteGroup(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetGroup(ctx, id); err != nil {
		return err
	}
	return s.groupRepo.Delete(ctx, id)
}

func (s *ModifierService) applyGroupInput(ctx context.Context, group *entity.ModifierGroup, input *ModifierGroupInput) error {
	title := strings.TrimSpace(input.Title)
	var fieldErrors []apperror.FieldError
	if title == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "title", Message: "Title is required"})
	}
	if !input.SelectionType.IsValid() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "selection_type", Message: "Selection type must be single or multiple"})
	}
	if input.MinSelection < 0 || input.MaxSelection < 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "min_selection", Message: "Selection limits cannot be negative"})
	}
	if input.MaxSelection > 0 && input.MinSelection > input.MaxSelection {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "max_selection", Message: "Maximum must not be below minimum"})
	}
	if input.SelectionType == enum.SelectionSingle && input.MinSelection > 1 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "min_selection", Message: "A single-choice group allows at most one option"})
	}
	seen := make(map[string]bool, len(input.Options))
	for _, o := range input.Options {
		name := strings.TrimSpace(o.Name)
		if name == "" || seen[name] {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "options", Message: fmt.Sprintf("Invalid or duplicate option %q", o.Name)})
		}
		if o.Price.IsNegative() {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "options", Message: fmt.Sprintf("Option %q has a negative price", o.Name)})
		}
		seen[name] = true
	}
	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}

	existing, err := s.groupRepo.GetByTitle(ctx, title)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != group.ID {
		return apperror.NewConflictError("Modifier group with this title already exists")
	}

	group.Title = title
	group.SelectionType = input.SelectionType
	group.MinSelection = input.MinSelection
	group.MaxSelection = input.MaxSelection
	group.Options = input.Options
	return nil
}

// ResolveChoices validates picked options against the groups assigned to
// item and returns them as cart modifiers, in assignment order. Each
// modifier is titled with the assignment's display label.
func (s *ModifierService) ResolveChoices(ctx context.Context, item *entity.MenuItem, choices []ModifierChoice) ([]entity.SelectedModifier, error) {
	if len(item.ModifierGroups) == 0 {
		if len(choices) > 0 {
			return nil, apperror.NewFieldError("modifiers", item.Name+" takes no modifiers")
		}
		return nil, nil
	}

	titles := make([]string, len(item.ModifierGroups))
	for i, a := range item.ModifierGroups {
		titles[i] = a.Group
	}
	groups, err := s.groupRepo.GetByTitles(ctx, titles)
	if err != nil {
		return nil, err
	}

	picked := make([][]entity.ModifierOption, len(item.ModifierGroups))
	for _, choice := range choices {
		idx := assignmentIndex(item.ModifierGroups, choice.Group)
		if idx < 0 {
			return nil, apperror.NewFieldError("modifiers", "Unknown modifier group "+choice.Group)
		}
		group, ok := groups[item.ModifierGroups[idx].Group]
		if !ok {
			return nil, apperror.NewFieldError("modifiers", "Modifier group "+choice.Group+" no longer exists")
		}
		option, ok := group.Option(choice.Option)
		if !ok {
			return nil, apperror.NewFieldError("modifiers", fmt.Sprintf("Unknown option %q in %s", choice.Option, choice.Group))
		}
		picked[idx] = append(picked[idx], option)
	}

	var out []entity.SelectedModifier
	for i, a := range item.ModifierGroups {
		group, ok := groups[a.Group]
		if !ok {
			continue
		}
		if err := checkSelectionCount(&group, a.DisplayLabel(), len(picked[i])); err != nil {
			return nil, err
		}
		for _, o := range picked[i] {
			out = append(out, entity.SelectedModifier{GroupTitle: a.DisplayLabel(), Option: o})
		}
	}
	return out, nil
}

func assignmentIndex(assignments []entity.ModifierAssignment, name string) int {
	for i, a := range assignments {
		if a.Group == name || a.Label == name {
			return i
		}
	}
	return -1
}

func checkSelectionCount(group *entity.ModifierGroup, label string, n int) error {
	if group.SelectionType == enum.SelectionSingle && n > 1 {
		return apperror.NewFieldError("modifiers", label+" allows a single option")
	}
	if n < group.MinSelection {
		return apperror.NewFieldError("modifiers", fmt.Sprintf("%s requires at least %d option(s)", label, group.MinSelection))
	}
	if group.MaxSelection > 0 && n > group.MaxSelection {
		return apperror.NewFieldError("modifiers", fmt.Sprintf("%s allows at most %d option(s)", label, group.MaxSelection))
	}
	return nil
}
