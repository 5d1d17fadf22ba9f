package preference

import (
	"context"
	"errors"
	"sort"
	"time"

	"vcarpool/metrics"
	"vcarpool/models"
	"vcarpool/services/session"

	"go.uber.org/zap"
)

// PreferenceAPI is the slice of the upstream API the preference screen needs.
type PreferenceAPI interface {
	ScheduleTemplates(ctx context.Context, token string) ([]models.ScheduleTemplateSlot, error)
	WeeklyPreferences(ctx context.Context, token, week string) ([]models.DriverWeeklyPreference, error)
	SubmitWeeklyPreferences(ctx context.Context, token, week string, prefs []models.PreferenceSubmission) ([]models.DriverWeeklyPreference, error)
}

type Service interface {
	// Load starts a fresh draft for the week, seeded from what was already submitted upstream.
	Load(ctx context.Context, sess *session.Context, week string) (*DraftView, error)
	// Toggle applies one SetPreference to the week's draft. On a cap violation the returned view
	// is the unchanged draft and the error is a *CapExceededError.
	Toggle(ctx context.Context, sess *session.Context, week, slotID string, level models.PreferenceLevel) (*DraftView, error)
	// Submit sends the draft upstream and discards it.
	Submit(ctx context.Context, sess *session.Context, week string) ([]models.DriverWeeklyPreference, error)
	Discard(ctx context.Context, sess *session.Context, week string) error
}

// SlotView is one row of the preference grid.
type SlotView struct {
	models.ScheduleTemplateSlot
	Label string                 `json:"label"`
	Level models.PreferenceLevel `json:"level,omitempty"`
}

// DraftView is what the preference screen renders.
type DraftView struct {
	WeekStartDate string                         `json:"week_start_date"`
	Slots         []SlotView                     `json:"slots"`
	Selection     Selection                      `json:"selection"`
	Counts        map[models.PreferenceLevel]int `json:"counts"`
	Limits        Limits                         `json:"limits"`
	Error         string                         `json:"error,omitempty"`
}

type DefaultService struct {
	API    PreferenceAPI
	Drafts DraftStore
	Limits Limits
	Logger *zap.Logger
	Now    func() time.Time
}

func NewService(api PreferenceAPI, drafts DraftStore, logger *zap.Logger) *DefaultService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultService{API: api, Drafts: drafts, Limits: DefaultLimits, Logger: logger, Now: time.Now}
}

func (s *DefaultService) Load(ctx context.Context, sess *session.Context, week string) (*DraftView, error) {
	slots, err := s.API.ScheduleTemplates(ctx, sess.Token)
	if err != nil {
		return nil, err
	}
	sortSlots(slots)

	existing, err := s.API.WeeklyPreferences(ctx, sess.Token, week)
	if err != nil {
		return nil, err
	}

	draft := &Draft{SessionID: sess.ID, WeekStartDate: week, Slots: slots}
	sel := s.selector(draft)
	sel.Restore(fromSubmitted(existing))
	draft.Selection = sel.Selection()

	if err := s.save(ctx, draft); err != nil {
		return nil, err
	}
	return s.view(draft, sel, nil), nil
}

func (s *DefaultService) Toggle(ctx context.Context, sess *session.Context, week, slotID string, level models.PreferenceLevel) (*DraftView, error) {
	draft, err := s.Drafts.Get(ctx, sess.ID, week)
	if errors.Is(err, ErrDraftNotFound) {
		// Expired drafts are rebuilt from upstream rather than failing the click.
		if _, err = s.Load(ctx, sess, week); err != nil {
			return nil, err
		}
		draft, err = s.Drafts.Get(ctx, sess.ID, week)
	}
	if err != nil {
		return nil, err
	}

	sel := s.selector(draft)
	sel.Restore(draft.Selection)

	if _, err := sel.SetPreference(slotID, level); err != nil {
		metrics.RecordPreferenceToggle(string(level), toggleResult(err))
		s.Logger.Debug("Preference toggle rejected",
			zap.String("session", sess.ID), zap.String("slot", slotID), zap.String("level", string(level)), zap.Error(err))
		return s.view(draft, sel, err), err
	}

	result := "set"
	if _, held := sel.Selection()[slotID]; !held {
		result = "cleared"
	}
	metrics.RecordPreferenceToggle(string(level), result)

	draft.Selection = sel.Selection()
	if err := s.save(ctx, draft); err != nil {
		return nil, err
	}
	return s.view(draft, sel, nil), nil
}

// Submit sends the staged draft upstream. Unlike Toggle it does not rebuild an expired draft:
// the user would be submitting selections they never saw, so ErrDraftNotFound is returned.
func (s *DefaultService) Submit(ctx context.Context, sess *session.Context, week string) ([]models.DriverWeeklyPreference, error) {
	draft, err := s.Drafts.Get(ctx, sess.ID, week)
	if err != nil {
		return nil, err
	}

	sel := s.selector(draft)
	sel.Restore(draft.Selection)
	saved, err := s.API.SubmitWeeklyPreferences(ctx, sess.Token, week, sel.ToSubmission())
	if err != nil {
		return nil, err
	}

	if err := s.Drafts.Delete(ctx, sess.ID, week); err != nil {
		s.Logger.Warn("Failed to discard submitted draft", zap.String("session", sess.ID), zap.String("week", week), zap.Error(err))
	}
	s.Logger.Info("Preferences submitted",
		zap.String("user", sess.User.ID), zap.String("week", week), zap.Int("entries", len(saved)))
	return saved, nil
}

func (s *DefaultService) Discard(ctx context.Context, sess *session.Context, week string) error {
	return s.Drafts.Delete(ctx, sess.ID, week)
}

func (s *DefaultService) selector(d *Draft) *Selector {
	return NewSelector(d.SlotIDs(), s.Limits)
}

func (s *DefaultService) save(ctx context.Context, d *Draft) error {
	d.UpdatedAt = s.Now()
	return s.Drafts.Save(ctx, d)
}

func (s *DefaultService) view(d *Draft, sel *Selector, err error) *DraftView {
	current := sel.Selection()
	rows := make([]SlotView, len(d.Slots))
	for i, slot := range d.Slots {
		rows[i] = SlotView{ScheduleTemplateSlot: slot, Label: slot.Label(), Level: current[slot.ID]}
	}
	v := &DraftView{
		WeekStartDate: d.WeekStartDate,
		Slots:         rows,
		Selection:     current,
		Counts:        sel.Counts(),
		Limits:        sel.Limits(),
	}
	if err != nil {
		v.Error = err.Error()
	}
	return v
}

func fromSubmitted(prefs []models.DriverWeeklyPreference) Selection {
	sel := make(Selection, len(prefs))
	for _, p := range prefs {
		if !p.PreferenceLevel.IsNeutral() {
			sel[p.TemplateSlotID] = p.PreferenceLevel
		}
	}
	return sel
}

// sortSlots orders slots by day, then start time.
func sortSlots(slots []models.ScheduleTemplateSlot) {
	sort.SliceStable(slots, func(i, j int) bool {
		if slots[i].DayOfWeek != slots[j].DayOfWeek {
			return slots[i].DayOfWeek < slots[j].DayOfWeek
		}
		return slots[i].StartTime < slots[j].StartTime
	})
}

func toggleResult(err error) string {
	if _, ok := IsCapExceeded(err); ok {
		return "cap_exceeded"
	}
	return "rejected"
}

var _ Service = (*DefaultService)(nil)
