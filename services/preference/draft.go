package preference

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"vcarpool/models"
	"vcarpool/utils"

	"github.com/go-redis/redis/v8"
)

// Draft is the staged, unsubmitted selection for one session and week.
type Draft struct {
	SessionID     string                        `json:"session_id"`
	WeekStartDate string                        `json:"week_start_date"`
	Slots         []models.ScheduleTemplateSlot `json:"slots"`
	Selection     Selection                     `json:"selection"`
	UpdatedAt     time.Time                     `json:"updated_at"`
}

// SlotIDs lists the displayed slots in display order.
func (d *Draft) SlotIDs() []string {
	ids := make([]string, len(d.Slots))
	for i, s := range d.Slots {
		ids[i] = s.ID
	}
	return ids
}

type DraftStore interface {
	Get(ctx context.Context, sessionID, week string) (*Draft, error)
	Save(ctx context.Context, draft *Draft) error
	Delete(ctx context.Context, sessionID, week string) error
}

type RedisDraftStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisDraftStore(client *redis.Client, ttl time.Duration) *RedisDraftStore {
	if ttl <= 0 {
		ttl = utils.DefaultDraftTTL
	}
	return &RedisDraftStore{client: client, ttl: ttl}
}

func draftKey(sessionID, week string) string {
	return fmt.Sprintf("%s%s:%s", utils.DraftPrefix, sessionID, week)
}

func (s *RedisDraftStore) Get(ctx context.Context, sessionID, week string) (*Draft, error) {
	data, err := s.client.Get(ctx, draftKey(sessionID, week)).Bytes()
	if err == redis.Nil {
		return nil, ErrDraftNotFound
	}
	if err != nil {
		return nil, err
	}
	var d Draft
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("decode preference draft: %w", err)
	}
	if d.Selection == nil {
		d.Selection = Selection{}
	}
	return &d, nil
}

// Save writes the draft and restarts its idle TTL.
func (s *RedisDraftStore) Save(ctx context.Context, d *Draft) error {
	data, err := json.Marshal(d)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, draftKey(d.SessionID, d.WeekStartDate), data, s.ttl).Err()
}

func (s *RedisDraftStore) Delete(ctx context.Context, sessionID, week string) error {
	return s.client.Del(ctx, draftKey(sessionID, week)).Err()
}

var _ DraftStore = (*RedisDraftStore)(nil)
