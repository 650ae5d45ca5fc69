package income

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"smartbudget-go/internal/domain/money"
	"smartbudget-go/internal/domain/period"
	"smartbudget-go/internal/events"
)

const (
	unknownSourceName  = "Unknown"
	unknownSourceColor = "#6B7280"
	maxDescriptionLen  = 200
)

// Periods accepted by the income list and stats views.
var Periods = []period.Filter{period.All, period.Today, period.Week, period.Month, period.Quarter, period.Year}

type Service struct {
	repo    Repository
	sources SourcesCache
	events  events.Publisher
	now     func() time.Time
}

func NewService(repo Repository, sources SourcesCache, publisher events.Publisher) *Service {
	if sources == nil {
		sources = noopSourcesCache{}
	}
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &Service{
		repo:    repo,
		sources: sources,
		events:  publisher,
		now:     time.Now,
	}
}

// AllEntries returns every income entry of the user, newest first.
func (s *Service) AllEntries(ctx context.Context, userID string) ([]Entry, error) {
	return s.repo.ListEntries(ctx, userID)
}

func (s *Service) ListEntries(ctx context.Context, userID string, filter ListFilter) ([]Entry, error) {
	entries, err := s.repo.ListEntries(ctx, userID)
	if err != nil {
		return nil, err
	}
	return FilterEntries(entries, filter, s.now()), nil
}

func (s *Service) Stats(ctx context.Context, userID string, filter ListFilter) (Stats, error) {
	entries, err := s.ListEntries(ctx, userID, filter)
	if err != nil {
		return Stats{}, err
	}
	sources, err := s.ListSources(ctx)
	if err != nil {
		return Stats{}, err
	}
	return ComputeStats(entries, sources), nil
}

func (s *Service) ListSources(ctx context.Context) ([]Source, error) {
	if cached, ok := s.sources.GetSources(); ok {
		return cached, nil
	}
	sources, err := s.repo.ListSources(ctx)
	if err != nil {
		return nil, err
	}
	s.sources.SetSources(sources)
	return sources, nil
}

func (s *Service) CreateEntry(ctx context.Context, input CreateEntryInput) (*Entry, error) {
	frequency, err := normalizeFrequency(input.IsRecurring, input.RecurringFrequency)
	if err != nil {
		return nil, err
	}
	description, err := validateDescription(input.Description)
	if err != nil {
		return nil, err
	}
	if err := money.RequirePositive(input.Amount); err != nil {
		return nil, err
	}
	sourceID, err := s.checkSource(ctx, input.SourceID)
	if err != nil {
		return nil, err
	}

	entry := Entry{
		ID:                 uuid.NewString(),
		UserID:             input.UserID,
		Amount:             money.Normalize(input.Amount),
		Description:        description,
		SourceID:           sourceID,
		Date:               period.StartOfDay(input.Date),
		IsRecurring:        input.IsRecurring,
		RecurringFrequency: frequency,
	}

	if err := s.repo.CreateEntry(ctx, &entry); err != nil {
		return nil, err
	}

	_ = s.events.Publish(ctx, events.New(events.IncomeCreated, entry.UserID, entry.ID, map[string]any{
		"amount": entry.Amount.String(),
		"date":   entry.Date.Format("2006-01-02"),
	}))
	return &entry, nil
}

func (s *Service) UpdateEntry(ctx context.Context, input UpdateEntryInput) (*Entry, error) {
	frequency, err := normalizeFrequency(input.IsRecurring, input.RecurringFrequency)
	if err != nil {
		return nil, err
	}
	description, err := validateDescription(input.Description)
	if err != nil {
		return nil, err
	}
	if err := money.RequirePositive(input.Amount); err != nil {
		return nil, err
	}
	sourceID, err := s.checkSource(ctx, input.SourceID)
	if err != nil {
		return nil, err
	}

	entry, err := s.repo.GetEntryByID(ctx, input.UserID, input.ID)
	if err != nil {
		return nil, err
	}

	entry.Amount = money.Normalize(input.Amount)
	entry.Description = description
	entry.SourceID = sourceID
	entry.Date = period.StartOfDay(input.Date)
	entry.IsRecurring = input.IsRecurring
	entry.RecurringFrequency = frequency
	entry.UpdatedAt = s.now().UTC()

	if err := s.repo.UpdateEntry(ctx, entry); err != nil {
		return nil, err
	}

	_ = s.events.Publish(ctx, events.New(events.IncomeUpdated, entry.UserID, entry.ID, map[string]any{
		"amount": entry.Amount.String(),
	}))
	return entry, nil
}

func (s *Service) DeleteEntry(ctx context.Context, userID, entryID string) error {
	deleted, err := s.repo.DeleteEntry(ctx, userID, entryID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrEntryNotFound
	}
	_ = s.events.Publish(ctx, events.New(events.IncomeDeleted, userID, entryID, nil))
	return nil
}

func (s *Service) checkSource(ctx context.Context, sourceID *string) (*string, error) {
	if sourceID == nil {
		return nil, nil
	}
	value := strings.TrimSpace(*sourceID)
	if value == "" {
		return nil, nil
	}
	if _, err := uuid.Parse(value); err != nil {
		return nil, ErrSourceNotFound
	}
	exists, err := s.repo.SourceExists(ctx, value)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrSourceNotFound
	}
	return &value, nil
}

// FilterEntries keeps entries matching the source and the period window.
// An empty or "all" source matches every entry.
func FilterEntries(entries []Entry, filter ListFilter, now time.Time) []Entry {
	window := period.Filter(filter.Period)
	sourceID := strings.TrimSpace(filter.SourceID)

	result := make([]Entry, 0, len(entries))
	for _, entry := range entries {
		if sourceID != "" && sourceID != "all" {
			if entry.SourceID == nil || *entry.SourceID != sourceID {
				continue
			}
		}
		if !window.Matches(entry.Date, now) {
			continue
		}
		result = append(result, entry)
	}
	return result
}

func ComputeStats(entries []Entry, sources []Source) Stats {
	sourcesByID := make(map[string]Source, len(sources))
	for _, source := range sources {
		sourcesByID[source.ID] = source
	}

	stats := Stats{
		Total:     decimal.Zero,
		Recurring: decimal.Zero,
		Count:     len(entries),
	}

	bySource := make(map[string]*SourceTotal)
	byMonth := make(map[string]decimal.Decimal)

	for _, entry := range entries {
		stats.Total = stats.Total.Add(entry.Amount)
		if entry.IsRecurring {
			stats.Recurring = stats.Recurring.Add(entry.Amount)
		}

		key, name, color := "", unknownSourceName, unknownSourceColor
		if entry.SourceID != nil {
			if source, ok := sourcesByID[*entry.SourceID]; ok {
				key, name, color = source.ID, source.Name, source.Color
			}
		}
		total, ok := bySource[key]
		if !ok {
			total = &SourceTotal{SourceID: key, Name: name, Color: color, Total: decimal.Zero}
			bySource[key] = total
		}
		total.Total = total.Total.Add(entry.Amount)

		month := entry.Date.Format("2006-01")
		byMonth[month] = byMonth[month].Add(entry.Amount)
	}

	stats.AvgPerEntry = money.Average(stats.Total, stats.Count)

	stats.BySource = make([]SourceTotal, 0, len(bySource))
	for _, total := range bySource {
		stats.BySource = append(stats.BySource, *total)
	}
	sort.Slice(stats.BySource, func(i, j int) bool {
		if cmp := stats.BySource[i].Total.Cmp(stats.BySource[j].Total); cmp != 0 {
			return cmp > 0
		}
		return stats.BySource[i].Name < stats.BySource[j].Name
	})

	months := make([]string, 0, len(byMonth))
	for month := range byMonth {
		months = append(months, month)
	}
	sort.Strings(months)
	stats.Monthly = make([]MonthTotal, 0, len(months))
	for _, month := range months {
		start, _ := time.Parse("2006-01", month)
		stats.Monthly = append(stats.Monthly, MonthTotal{
			Month: month,
			Label: start.Format("Jan 2006"),
			Total: byMonth[month],
		})
	}

	return stats
}

func normalizeFrequency(recurring bool, frequency *Frequency) (*Frequency, error) {
	if !recurring {
		return nil, nil
	}
	if frequency == nil {
		return nil, ErrInvalidFrequency
	}
	value := Frequency(strings.ToLower(strings.TrimSpace(string(*frequency))))
	if !value.Valid() {
		return nil, ErrInvalidFrequency
	}
	return &value, nil
}

func validateDescription(description string) (string, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return "", ErrDescriptionRequired
	}
	if len([]rune(description)) > maxDescriptionLen {
		return "", ErrDescriptionTooLong
	}
	return description, nil
}
