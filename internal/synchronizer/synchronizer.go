package synchronizer

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/muhammadolammi/careercompass/internal/domain"
	"github.com/muhammadolammi/careercompass/internal/logger"
	"github.com/muhammadolammi/careercompass/internal/retry"
)

const (
	userDataKey  = "careerAI_userData"
	draftDataKey = "careerAI_tempAssessment"

	defaultAttempts   = 3
	defaultBackoff    = 500 * time.Millisecond
	defaultTimeout    = 10 * time.Second
	defaultChatLimit  = 50
	defaultDraftDelay = 2 * time.Second
	notifyTimeout     = 5 * time.Second

	kindRemoteStore = "remote_store"
	kindRequest     = "request"
)

type Options struct {
	// Store may be nil, in which case every write lands in Cache only.
	Store domain.PersistentStore
	Cache domain.LocalCache
	// Namespace scopes cache keys, normally to one device.
	Namespace string
	Notifier  Notifier
	Log       *logger.Logger

	Attempts         int
	Backoff          time.Duration
	Timeout          time.Duration
	ChatHistoryLimit int
	DraftDelay       time.Duration

	Now   func() time.Time
	NewID func() string
}

// Synchronizer owns one client's session state and keeps it in step with
// the persistent store and the local cache.
type Synchronizer struct {
	store      domain.PersistentStore
	cache      domain.LocalCache
	namespace  string
	notifier   Notifier
	log        *logger.Logger
	policy     retry.Policy
	timeout    time.Duration
	chatLimit  int
	draftDelay time.Duration
	now        func() time.Time
	newID      func() string

	mu    sync.Mutex
	state State

	// epoch changes whenever the identity is swapped or user data is reset.
	// Background writes started under an older epoch never touch the cache
	// or the state.
	epoch uint64

	// identifySeq orders concurrent Identify, Reset and SignOut calls.
	identifySeq uint64

	// lastAssessmentID is the record id of the current assessment, empty
	// until its remote save completes. assessmentSeq counts submissions.
	lastAssessmentID string
	assessmentSeq    uint64

	cacheMu sync.Mutex
	wg      sync.WaitGroup

	// draftIOMu orders draft cache writes against deletes.
	draftIOMu    sync.Mutex
	draftMu      sync.Mutex
	draftTimer   *time.Timer
	pendingDraft *domain.ProfileAnswers
	closed       bool
}

func New(opts Options) (*Synchronizer, error) {
	if opts.Cache == nil {
		return nil, errors.New("synchronizer: local cache is required")
	}
	s := &Synchronizer{
		store:      opts.Store,
		cache:      opts.Cache,
		namespace:  opts.Namespace,
		notifier:   opts.Notifier,
		log:        opts.Log,
		timeout:    opts.Timeout,
		chatLimit:  opts.ChatHistoryLimit,
		draftDelay: opts.DraftDelay,
		now:        opts.Now,
		newID:      opts.NewID,
		state:      InitialState(),
	}
	if s.log == nil {
		s.log = logger.Nop()
	}
	if s.timeout <= 0 {
		s.timeout = defaultTimeout
	}
	if s.chatLimit <= 0 {
		s.chatLimit = defaultChatLimit
	}
	if s.draftDelay <= 0 {
		s.draftDelay = defaultDraftDelay
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}
	attempts, backoff := opts.Attempts, opts.Backoff
	if attempts <= 0 {
		attempts = defaultAttempts
	}
	if backoff < 0 {
		backoff = 0
	} else if backoff == 0 {
		backoff = defaultBackoff
	}
	s.policy = retry.Policy{Attempts: attempts, Backoff: backoff, Retryable: domain.IsTransient}
	return s, nil
}

// State returns a deep copy of the current session state.
func (s *Synchronizer) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

func (s *Synchronizer) dispatch(in Intent) {
	s.mu.Lock()
	s.state = Reduce(s.state, in)
	s.mu.Unlock()
}

func (s *Synchronizer) SetStep(step Step)       { s.dispatch(SetStep{Step: step}) }
func (s *Synchronizer) SetLoading(loading bool) { s.dispatch(SetLoading{Loading: loading}) }
func (s *Synchronizer) ClearError()             { s.dispatch(ClearError{}) }

// SetError records a user-visible failure and clears the loading flag.
func (s *Synchronizer) SetError(message string) {
	s.dispatch(SetError{Err: SyncError{Kind: kindRequest, Message: message}})
}

// Identify loads the durable state for identity and swaps it in atomically.
// It never fails: when nothing can be loaded the session starts empty. A
// later Identify, Reset or SignOut supersedes one still loading.
func (s *Synchronizer) Identify(ctx context.Context, identity *domain.Identity) {
	identity = cloneIdentity(identity)
	s.mu.Lock()
	s.identifySeq++
	seq := s.identifySeq
	s.mu.Unlock()

	snap := s.hydrate(ctx, identity)

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.identifySeq {
		s.log.Debug("identify superseded", "identity", identityID(identity))
		return
	}
	s.epoch++
	s.lastAssessmentID = snap.AssessmentRecordID
	s.state = Reduce(s.state, Hydrated{Identity: identity, Snapshot: snap})
}

// SubmitProfileAnswers stamps answers as a completed assessment, makes them
// current and persists them in the background.
func (s *Synchronizer) SubmitProfileAnswers(answers domain.ProfileAnswers) *Task {
	answers = answers.Clone()
	answers.ID = s.newID()
	answers.CompletedAt = s.now()

	s.mu.Lock()
	s.state = Reduce(s.state, SetAssessment{Answers: answers})
	s.assessmentSeq++
	s.lastAssessmentID = ""
	identity, epoch, seq := cloneIdentity(s.state.Identity), s.epoch, s.assessmentSeq
	s.mu.Unlock()

	s.discardDraft()

	return s.persist(epoch, identity, EntityAssessment, answers, func(ctx context.Context, owner string) error {
		rec, err := s.store.SaveAssessment(ctx, owner, answers)
		if err != nil {
			return err
		}
		s.mu.Lock()
		if s.epoch == epoch && s.assessmentSeq == seq {
			s.lastAssessmentID = rec.ID
		}
		s.mu.Unlock()
		return nil
	})
}

func (s *Synchronizer) SubmitRecommendations(list []domain.Recommendation) *Task {
	list = domain.CloneRecommendations(list)
	if list == nil {
		list = []domain.Recommendation{}
	}

	s.mu.Lock()
	s.state = Reduce(s.state, SetRecommendations{List: list})
	identity, epoch := cloneIdentity(s.state.Identity), s.epoch
	s.mu.Unlock()

	return s.persist(epoch, identity, EntityRecommendations, list, func(ctx context.Context, owner string) error {
		s.mu.Lock()
		assessmentID := ""
		if s.epoch == epoch {
			assessmentID = s.lastAssessmentID
		}
		s.mu.Unlock()
		_, err := s.store.SaveRecommendations(ctx, owner, assessmentID, list)
		return err
	})
}

func (s *Synchronizer) SubmitSkillAnalysis(analysis domain.SkillAnalysis) *Task {
	analysis = analysis.Clone()

	s.mu.Lock()
	s.state = Reduce(s.state, SetSkillAnalysis{Analysis: analysis})
	identity, epoch := cloneIdentity(s.state.Identity), s.epoch
	s.mu.Unlock()

	return s.persist(epoch, identity, EntitySkillAnalysis, analysis, func(ctx context.Context, owner string) error {
		return s.store.SaveSkillAnalysis(ctx, owner, analysis)
	})
}

// AppendChatMessage stamps msg with an id and timestamp and appends it to
// the transcript. An assistant reply that directly follows a user message is
// saved remotely as one exchange; a failed save is logged and otherwise
// ignored. The whole transcript is mirrored to the local cache.
func (s *Synchronizer) AppendChatMessage(msg domain.ChatMessage) (domain.ChatMessage, *Task) {
	msg.ID = s.newID()
	msg.Timestamp = s.now()
	if msg.Sender == "" {
		msg.Sender = domain.SenderUser
	}

	s.mu.Lock()
	var prev *domain.ChatMessage
	if n := len(s.state.ChatHistory); n > 0 {
		p := s.state.ChatHistory[n-1]
		prev = &p
	}
	s.state = Reduce(s.state, AddChatMessage{Message: msg})
	identity, epoch := cloneIdentity(s.state.Identity), s.epoch
	s.mu.Unlock()

	pair := msg.Sender == domain.SenderAssistant && prev != nil && prev.Sender == domain.SenderUser

	task := newTask()
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		o := Outcome{Entity: EntityChat, Remote: SinkSkipped, Cache: SinkSkipped}
		if pair && identity != nil && s.store != nil {
			o.Remote, o.RemoteErr = s.writeRemote(identity, func(ctx context.Context, owner string) error {
				_, err := s.store.SaveChatMessage(ctx, owner, prev.Text, msg.Text)
				return err
			})
			if o.RemoteErr != nil {
				s.log.Warn("chat exchange not saved", "identity", identity.ID, "error", o.RemoteErr)
			}
		}
		o.Cache, o.CacheErr = s.mirrorTranscript(epoch)
		if o.CacheErr != nil {
			s.log.Error("chat transcript not cached", "error", o.CacheErr)
		}
		s.notify(identity, o)
		task.finish(o)
	}()
	return msg, task
}

// Reset drops every derived entity and purges the cached user data. The
// identity survives; an anonymous one is replaced with a fresh anonymous id.
func (s *Synchronizer) Reset(ctx context.Context) error {
	s.mu.Lock()
	identity := cloneIdentity(s.state.Identity)
	if identity != nil && identity.Anonymous {
		identity = &domain.Identity{ID: s.newID(), Email: identity.Email, Anonymous: true}
	}
	s.epoch++
	s.identifySeq++
	s.lastAssessmentID = ""
	s.state = Reduce(s.state, ResetUserData{Identity: identity})
	s.mu.Unlock()

	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	if err := s.cache.Delete(ctx, s.userDataKey()); err != nil {
		s.log.Error("failed to purge cached user data", "error", err)
		return err
	}
	return nil
}

// SignOut returns the session to a fresh anonymous identity. Cached user data
// is left in place.
func (s *Synchronizer) SignOut() *domain.Identity {
	anon := &domain.Identity{ID: s.newID(), Email: domain.AnonymousEmail, Anonymous: true}
	s.mu.Lock()
	s.epoch++
	s.identifySeq++
	s.lastAssessmentID = ""
	s.state = Reduce(s.state, ResetUserData{Identity: anon})
	s.mu.Unlock()
	return cloneIdentity(anon)
}

// Flush waits for every outstanding background write.
func (s *Synchronizer) Flush(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close writes any pending draft and waits for outstanding work.
func (s *Synchronizer) Close(ctx context.Context) error {
	s.draftMu.Lock()
	s.closed = true
	s.stopDraftTimerLocked()
	s.draftMu.Unlock()

	err := s.FlushDraft(ctx)
	return errors.Join(err, s.Flush(ctx))
}

func identityID(id *domain.Identity) string {
	if id == nil {
		return ""
	}
	return id.ID
}
