package goals

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"smartbudget-go/internal/domain/money"
	"smartbudget-go/internal/events"
)

const (
	defaultColor   = "#3b82f6"
	maxTitleLength = 100
)

var colorRegex = regexp.MustCompile(`^#[0-9a-f]{6}$`)

type Service struct {
	repo   Repository
	events events.Publisher
	now    func() time.Time
}

func NewService(repo Repository, publisher events.Publisher) *Service {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &Service{
		repo:   repo,
		events: publisher,
		now:    time.Now,
	}
}

// AllGoals returns the raw goal rows used by the summary calculator.
func (s *Service) AllGoals(ctx context.Context, userID string) ([]Goal, error) {
	return s.repo.ListGoals(ctx, userID)
}

func (s *Service) ListGoals(ctx context.Context, userID string) ([]View, error) {
	goals, err := s.repo.ListGoals(ctx, userID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	views := make([]View, 0, len(goals))
	for _, goal := range goals {
		views = append(views, NewView(goal, now))
	}
	return views, nil
}

func (s *Service) GetGoal(ctx context.Context, userID, goalID string) (*View, error) {
	goal, err := s.repo.GetGoalByID(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}
	view := NewView(*goal, s.now())
	return &view, nil
}

func (s *Service) CreateGoal(ctx context.Context, input CreateGoalInput) (*Goal, error) {
	title, err := validateTitle(input.Title)
	if err != nil {
		return nil, err
	}
	if !input.TargetAmount.IsPositive() {
		return nil, ErrInvalidTarget
	}
	color, err := normalizeColor(input.Color)
	if err != nil {
		return nil, err
	}

	goal := Goal{
		ID:            uuid.NewString(),
		UserID:        input.UserID,
		Title:         title,
		Description:   normalizeDescription(input.Description),
		TargetAmount:  money.Normalize(input.TargetAmount),
		CurrentAmount: decimal.Zero,
		TargetDate:    input.TargetDate,
		Color:         color,
	}

	if err := s.repo.CreateGoal(ctx, &goal); err != nil {
		return nil, err
	}

	_ = s.events.Publish(ctx, events.New(events.GoalCreated, goal.UserID, goal.ID, map[string]any{
		"target_amount": goal.TargetAmount.String(),
	}))
	return &goal, nil
}

// UpdateGoal edits the descriptive fields and the target. The allocated amount
// is untouched and is_completed is re-derived against the new target.
func (s *Service) UpdateGoal(ctx context.Context, input UpdateGoalInput) (*Goal, error) {
	title, err := validateTitle(input.Title)
	if err != nil {
		return nil, err
	}
	if !input.TargetAmount.IsPositive() {
		return nil, ErrInvalidTarget
	}
	color, err := normalizeColor(input.Color)
	if err != nil {
		return nil, err
	}

	target := money.Normalize(input.TargetAmount)
	var goal *Goal
	err = s.repo.Transaction(ctx, func(tx Repository) error {
		current, err := tx.GetGoalForUpdate(ctx, input.UserID, input.ID)
		if err != nil {
			return err
		}
		if target.LessThan(current.CurrentAmount) {
			return ErrTargetBelowCurrent
		}

		targetChanged := !target.Equal(current.TargetAmount)
		current.Title = title
		current.Description = normalizeDescription(input.Description)
		current.TargetAmount = target
		current.TargetDate = input.TargetDate
		current.Color = color
		if targetChanged {
			current.IsCompleted = current.CurrentAmount.GreaterThanOrEqual(target)
		}
		if err := tx.UpdateGoal(ctx, current); err != nil {
			return err
		}
		goal = current
		return nil
	})
	if err != nil {
		return nil, err
	}

	_ = s.events.Publish(ctx, events.New(events.GoalUpdated, goal.UserID, goal.ID, map[string]any{
		"target_amount": goal.TargetAmount.String(),
	}))
	return goal, nil
}

// DeleteGoal removes the goal. Its allocated amount is returned to the
// available balance because that balance is derived from the remaining goals.
func (s *Service) DeleteGoal(ctx context.Context, userID, goalID string) error {
	deleted, err := s.repo.DeleteGoal(ctx, userID, goalID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrGoalNotFound
	}
	_ = s.events.Publish(ctx, events.New(events.GoalDeleted, userID, goalID, nil))
	return nil
}

func (s *Service) Allocation(ctx context.Context, userID, goalID string) (*Allocation, error) {
	goal, err := s.repo.GetGoalByID(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}
	available, err := s.repo.AvailableFunds(ctx, userID)
	if err != nil {
		return nil, err
	}

	limit := MaxAllocation(*goal, available)
	return &Allocation{
		GoalID:         goal.ID,
		AvailableFunds: available,
		Remaining:      Remaining(*goal),
		MaxAllocation:  limit,
		QuickAmounts:   QuickAmounts(limit),
	}, nil
}

// AllocateFunds moves amount from the available balance into the goal. The
// balance check and the write happen under the user's funds lock.
func (s *Service) AllocateFunds(ctx context.Context, userID, goalID string, amount decimal.Decimal) (*Goal, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	var goal, updated Goal
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		if err := tx.LockFunds(ctx, userID); err != nil {
			return err
		}
		current, err := tx.GetGoalForUpdate(ctx, userID, goalID)
		if err != nil {
			return err
		}
		available, err := tx.AvailableFunds(ctx, userID)
		if err != nil {
			return err
		}

		next, err := Allocate(*current, money.Normalize(amount), available)
		if err != nil {
			return err
		}
		if err := tx.UpdateGoal(ctx, &next); err != nil {
			return err
		}
		goal, updated = *current, next
		return nil
	})
	if err != nil {
		return nil, err
	}

	_ = s.events.Publish(ctx, events.New(events.GoalAllocated, userID, goalID, map[string]any{
		"amount":         money.Normalize(amount).String(),
		"current_amount": updated.CurrentAmount.String(),
	}))
	if updated.IsCompleted && !goal.IsCompleted {
		_ = s.events.Publish(ctx, events.New(events.GoalCompleted, userID, goalID, nil))
	}
	return &updated, nil
}

func (s *Service) ToggleComplete(ctx context.Context, userID, goalID string) (*Goal, error) {
	var toggled Goal
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		goal, err := tx.GetGoalForUpdate(ctx, userID, goalID)
		if err != nil {
			return err
		}
		toggled = ToggleComplete(*goal)
		return tx.UpdateGoal(ctx, &toggled)
	})
	if err != nil {
		return nil, err
	}

	eventType := events.GoalUpdated
	if toggled.IsCompleted {
		eventType = events.GoalCompleted
	}
	_ = s.events.Publish(ctx, events.New(eventType, userID, goalID, map[string]any{
		"is_completed": toggled.IsCompleted,
	}))
	return &toggled, nil
}

func validateTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", ErrTitleRequired
	}
	if len([]rune(title)) > maxTitleLength {
		return "", ErrTitleTooLong
	}
	return title, nil
}

func normalizeDescription(value *string) *string {
	if value == nil {
		return nil
	}
	description := strings.TrimSpace(*value)
	if description == "" {
		return nil
	}
	return &description
}

func normalizeColor(value *string) (string, error) {
	if value == nil || strings.TrimSpace(*value) == "" {
		return defaultColor, nil
	}
	color := strings.ToLower(strings.TrimSpace(*value))
	if !colorRegex.MatchString(color) {
		return "", ErrInvalidColor
	}
	return color, nil
}
