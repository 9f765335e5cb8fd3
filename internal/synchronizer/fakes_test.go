package synchronizer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/muhammadolammi/careercompass/internal/domain"
	"github.com/muhammadolammi/careercompass/internal/localcache"
)

var errNetwork = &domain.StoreError{Op: "fake", Kind: domain.KindNetwork, Err: errors.New("connection refused")}

// fakeStore is an in-memory PersistentStore. Setting fail makes every
// method return that error.
type fakeStore struct {
	mu sync.Mutex

	fail  error
	calls map[string]int

	assessments     []domain.AssessmentRecord
	chats           []domain.ChatRecord
	recommendations []domain.RecommendationRecord
	skills          map[string]domain.SkillAnalysis

	// hold blocks hydration reads until closed.
	hold chan struct{}
	// holdSave blocks SaveAssessment until closed.
	holdSave chan struct{}
}

func newFakeStore() *fakeStore {
	return &fakeStore{calls: map[string]int{}, skills: map[string]domain.SkillAnalysis{}}
}

func (f *fakeStore) enter(ctx context.Context, op string) error {
	f.mu.Lock()
	f.calls[op]++
	hold, fail := f.hold, f.fail
	if op == "SaveAssessment" {
		hold = f.holdSave
	}
	f.mu.Unlock()
	if hold != nil && (op == "GetAssessments" || op == "GetChatHistory" || op == "SaveAssessment") {
		select {
		case <-hold:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return fail
}

func (f *fakeStore) count(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *fakeStore) SaveAssessment(ctx context.Context, ownerID string, answers domain.ProfileAnswers) (domain.AssessmentRecord, error) {
	if err := f.enter(ctx, "SaveAssessment"); err != nil {
		return domain.AssessmentRecord{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	rec := domain.AssessmentRecord{
		ID:        fmt.Sprintf("assessment-%d", len(f.assessments)+1),
		OwnerID:   ownerID,
		Answers:   answers.Clone(),
		CreatedAt: time.Now(),
	}
	f.assessments = append([]domain.AssessmentRecord{rec}, f.assessments...)
	return rec, nil
}

func (f *fakeStore) GetAssessments(ctx context.Context, ownerID string) ([]domain.AssessmentRecord, error) {
	if err := f.enter(ctx, "GetAssessments"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.AssessmentRecord
	for _, a := range f.assessments {
		if a.OwnerID == ownerID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeStore) SaveChatMessage(ctx context.Context, ownerID, message, response string) (domain.ChatRecord, error) {
	if err := f.enter(ctx, "SaveChatMessage"); err != nil {
		return domain.ChatRecord{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	rec := domain.ChatRecord{
		ID:       fmt.Sprintf("chat-%d", len(f.chats)+1),
		OwnerID:  ownerID,
		Message:  message,
		Response: response,
	}
	f.chats = append([]domain.ChatRecord{rec}, f.chats...)
	return rec, nil
}

func (f *fakeStore) GetChatHistory(ctx context.Context, ownerID string, limit int) ([]domain.ChatRecord, error) {
	if err := f.enter(ctx, "GetChatHistory"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.ChatRecord
	for _, c := range f.chats {
		if c.OwnerID == ownerID && len(out) < limit {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeStore) SaveRecommendations(ctx context.Context, ownerID, assessmentID string, list []domain.Recommendation) (domain.RecommendationRecord, error) {
	if err := f.enter(ctx, "SaveRecommendations"); err != nil {
		return domain.RecommendationRecord{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	rec := domain.RecommendationRecord{
		ID:              fmt.Sprintf("recs-%d", len(f.recommendations)+1),
		OwnerID:         ownerID,
		AssessmentID:    assessmentID,
		Recommendations: domain.CloneRecommendations(list),
	}
	f.recommendations = append(f.recommendations, rec)
	return rec, nil
}

func (f *fakeStore) SaveSkillAnalysis(ctx context.Context, ownerID string, analysis domain.SkillAnalysis) error {
	if err := f.enter(ctx, "SaveSkillAnalysis"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.skills[ownerID] = analysis.Clone()
	return nil
}

// brokenCache fails every operation.
type brokenCache struct{}

func (brokenCache) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("disk full")
}
func (brokenCache) Put(context.Context, string, []byte) error { return errors.New("disk full") }
func (brokenCache) Delete(context.Context, string) error      { return errors.New("disk full") }

// gatedCache parks the first Put of key until release is closed.
type gatedCache struct {
	*localcache.Memory
	key     string
	entered chan struct{}
	release chan struct{}
}

func newGatedCache(key string) *gatedCache {
	return &gatedCache{
		Memory:  localcache.NewMemory(),
		key:     key,
		entered: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
}

func (g *gatedCache) Put(ctx context.Context, key string, value []byte) error {
	if key == g.key {
		select {
		case g.entered <- struct{}{}:
		default:
		}
		<-g.release
	}
	return g.Memory.Put(ctx, key, value)
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []Event
}

func (n *recordingNotifier) Notify(_ context.Context, ev Event) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, ev)
	return nil
}

func (n *recordingNotifier) snapshot() []Event {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]Event(nil), n.events...)
}

var fixedNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func sequentialIDs() func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

type harness struct {
	sync     *Synchronizer
	store    *fakeStore
	cache    *localcache.Memory
	notifier *recordingNotifier
}

func newHarness(t *testing.T, store domain.PersistentStore) *harness {
	t.Helper()
	h := &harness{cache: localcache.NewMemory(), notifier: &recordingNotifier{}}
	if fs, ok := store.(*fakeStore); ok {
		h.store = fs
	}
	s, err := New(Options{
		Store:      store,
		Cache:      h.cache,
		Namespace:  "device-1",
		Notifier:   h.notifier,
		Attempts:   2,
		Backoff:    time.Millisecond,
		Timeout:    time.Second,
		DraftDelay: 20 * time.Millisecond,
		Now:        func() time.Time { return fixedNow },
		NewID:      sequentialIDs(),
	})
	require.NoError(t, err)
	h.sync = s
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		require.NoError(t, s.Close(ctx))
	})
	return h
}

func wait(t *testing.T, task *Task) Outcome {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	o, err := task.Wait(ctx)
	require.NoError(t, err)
	return o
}
