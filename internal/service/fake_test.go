package service

import (
	"context"
	"sort"
	"sync"

	"ConferenceAPI/internal/auth"
	"ConferenceAPI/internal/filter"
	"ConferenceAPI/internal/model"
	"ConferenceAPI/internal/store"
	"ConferenceAPI/internal/tasks"

	"github.com/google/uuid"
)

// fakeStore keeps everything in maps and evaluates plans in Go.
type fakeStore struct {
	mu            sync.Mutex
	profiles      map[string]*model.Profile
	conferences   map[string]*model.Conference
	sessions      map[string]*model.Session
	registrations map[string]map[string]bool // user -> conference
	wishlists     map[string]map[string]bool // user -> session
	lastPlan      filter.Plan
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		profiles:      map[string]*model.Profile{},
		conferences:   map[string]*model.Conference{},
		sessions:      map[string]*model.Session{},
		registrations: map[string]map[string]bool{},
		wishlists:     map[string]map[string]bool{},
	}
}

func keysOf(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func (f *fakeStore) GetProfile(_ context.Context, id string) (*model.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *p
	cp.ConferenceKeysToAttend = keysOf(f.registrations[id])
	cp.SessionKeysWishlist = keysOf(f.wishlists[id])
	return &cp, nil
}

func (f *fakeStore) CreateProfile(_ context.Context, p *model.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.profiles[p.UserID]; !ok {
		cp := *p
		f.profiles[p.UserID] = &cp
	}
	return nil
}

func (f *fakeStore) UpdateProfile(_ context.Context, p *model.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cur, ok := f.profiles[p.UserID]
	if !ok {
		return store.ErrNotFound
	}
	cur.DisplayName = p.DisplayName
	cur.TeeShirtSize = p.TeeShirtSize
	return nil
}

func (f *fakeStore) ProfileNames(_ context.Context, ids []string) (map[string]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := map[string]string{}
	for _, id := range ids {
		if p, ok := f.profiles[id]; ok {
			out[id] = p.DisplayName
		}
	}
	return out, nil
}

func (f *fakeStore) InsertConference(_ context.Context, c *model.Conference) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c.Key == "" {
		c.Key = uuid.NewString()
	}
	cp := *c
	f.conferences[c.Key] = &cp
	return nil
}

func (f *fakeStore) GetConference(_ context.Context, key string) (*model.Conference, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.conferences[key]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeStore) UpdateConference(_ context.Context, key string, fn func(*model.Conference) error) (*model.Conference, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.conferences[key]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *c
	if err := fn(&cp); err != nil {
		return nil, err
	}
	f.conferences[key] = &cp
	out := cp
	return &out, nil
}

func (f *fakeStore) ConferencesByOrganizer(_ context.Context, id string) ([]model.Conference, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []model.Conference{}
	for _, c := range f.conferences {
		if c.OrganizerUserID == id {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeStore) ConferencesByKeys(_ context.Context, keys []string) ([]model.Conference, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []model.Conference{}
	for _, k := range keys {
		if c, ok := f.conferences[k]; ok {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeStore) QueryConferences(_ context.Context, plan filter.Plan) ([]model.Conference, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastPlan = plan
	out := []model.Conference{}
	for _, c := range f.conferences {
		if matchAll(plan, conferenceValue(c)) {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeStore) NearlySoldOut(_ context.Context, maxSeats int) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []string{}
	for _, c := range f.conferences {
		if c.SeatsAvailable > 0 && c.SeatsAvailable <= maxSeats {
			out = append(out, c.Name)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (f *fakeStore) ConferenceNames(_ context.Context, keys []string) (map[string]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := map[string]string{}
	for _, k := range keys {
		if c, ok := f.conferences[k]; ok {
			out[k] = c.Name
		}
	}
	return out, nil
}

func (f *fakeStore) InsertSession(_ context.Context, s *model.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s.Key == "" {
		s.Key = uuid.NewString()
	}
	cp := *s
	f.sessions[s.Key] = &cp
	return nil
}

func (f *fakeStore) GetSession(_ context.Context, key string) (*model.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[key]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeStore) QuerySessions(_ context.Context, plan filter.Plan) ([]model.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastPlan = plan
	out := []model.Session{}
	for _, s := range f.sessions {
		if matchAll(plan, sessionValue(s)) {
			out = append(out, *s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeStore) SessionsByKeys(_ context.Context, keys []string) ([]model.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []model.Session{}
	for _, k := range keys {
		if s, ok := f.sessions[k]; ok {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeStore) ChangeRegistration(_ context.Context, userID, confKey string,
	decide func(*model.Conference, bool) (bool, error)) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.conferences[confKey]
	if !ok {
		return false, store.ErrNotFound
	}
	registered := f.registrations[userID][confKey]
	cp := *c
	want, err := decide(&cp, registered)
	if err != nil || want == registered {
		return false, err
	}
	if f.registrations[userID] == nil {
		f.registrations[userID] = map[string]bool{}
	}
	if want {
		f.registrations[userID][confKey] = true
		c.SeatsAvailable--
	} else {
		delete(f.registrations[userID], confKey)
		c.SeatsAvailable++
	}
	return true, nil
}

func (f *fakeStore) ChangeWishlist(_ context.Context, userID, sessionKey string,
	decide func(*model.Session, bool) (bool, error)) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[sessionKey]
	if !ok {
		return false, store.ErrNotFound
	}
	listed := f.wishlists[userID][sessionKey]
	cp := *s
	want, err := decide(&cp, listed)
	if err != nil || want == listed {
		return false, err
	}
	if f.wishlists[userID] == nil {
		f.wishlists[userID] = map[string]bool{}
	}
	if want {
		f.wishlists[userID][sessionKey] = true
	} else {
		delete(f.wishlists[userID], sessionKey)
	}
	return true, nil
}

func conferenceValue(c *model.Conference) func(string) []any {
	return func(field string) []any {
		switch field {
		case "city":
			return []any{c.City}
		case "topics":
			out := make([]any, 0, len(c.Topics))
			for _, t := range c.Topics {
				out = append(out, t)
			}
			return out
		case "month":
			return []any{c.Month}
		case "maxAttendees":
			return []any{c.MaxAttendees}
		case "seatsAvailable":
			return []any{c.SeatsAvailable}
		}
		return nil
	}
}

func sessionValue(s *model.Session) func(string) []any {
	return func(field string) []any {
		switch field {
		case "websafeConferenceKey":
			return []any{s.ConferenceKey}
		case "typeOfSession":
			return []any{s.TypeOfSession}
		case "speaker":
			return []any{s.Speaker}
		case "duration":
			return []any{s.Duration}
		case "date":
			return []any{model.FormatDate(s.Date)}
		case "startTime":
			return []any{s.StartTime}
		case "month":
			return []any{s.Month}
		}
		return nil
	}
}

// matchAll checks every predicate; repeated fields match when any element does.
func matchAll(plan filter.Plan, values func(string) []any) bool {
	for _, p := range plan.Predicates {
		hit := false
		for _, v := range values(p.Field) {
			if compare(v, p.Operator, p.Value) {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}
	return true
}

func compare(have any, op filter.Operator, want any) bool {
	var c int
	switch h := have.(type) {
	case int:
		w, ok := want.(int)
		if !ok {
			return false
		}
		c = h - w
	case string:
		w, ok := want.(string)
		if !ok {
			return false
		}
		switch {
		case h < w:
			c = -1
		case h > w:
			c = 1
		}
	default:
		return false
	}
	switch op {
	case filter.Equal:
		return c == 0
	case filter.NotEqual:
		return c != 0
	case filter.GreaterThan:
		return c > 0
	case filter.GreaterOrEqual:
		return c >= 0
	case filter.LessThan:
		return c < 0
	case filter.LessOrEqual:
		return c <= 0
	}
	return false
}

// syncQueue runs tasks inline so tests observe their effects immediately.
type syncQueue struct {
	names []string
	errs  []error
}

func (q *syncQueue) Submit(name string, fn tasks.Func) bool {
	q.names = append(q.names, name)
	if err := fn(context.Background()); err != nil {
		q.errs = append(q.errs, err)
	}
	return true
}

type sentMail struct{ to, subject, body string }

type recordingMailer struct {
	mu   sync.Mutex
	sent []sentMail
}

func (m *recordingMailer) Send(_ context.Context, to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMail{to, subject, body})
	return nil
}

func userCtx(id, email string) context.Context {
	return auth.WithUser(context.Background(), &auth.User{ID: id, Email: email, Name: id})
}
