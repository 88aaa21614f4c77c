// Package storage holds the questions and users of one client and exposes
// them over HTTP for as long as the Storage stays open.
package storage

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"agree-disagree/internal/events"
	"agree-disagree/internal/transport/httpdto"
	agree_errors "agree-disagree/pkg/errors"
	"agree-disagree/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const publishTimeout = 2 * time.Second

// Registrar is the part of the router a Storage binds its routes to.
type Registrar interface {
	Register(path string, h gin.HandlerFunc) error
	Unregister(path string) error
}

type Storage struct {
	clientName string
	router     Registrar
	publisher  events.Publisher
	logger     *logger.Logger

	mu                    sync.Mutex
	questions             []Question
	questionsReverseIndex map[string]QID
	users                 map[UID]*User
	closed                bool

	// pending counts event publishes still in flight; Close drains it.
	pending sync.WaitGroup

	closeOnce sync.Once
	closeErr  error
}

// New registers /<clientName>, /<clientName>/q and /<clientName>/u on r.
// Either all three routes are live when New returns, or none are.
// Close must be called to release them.
func New(clientName string, r Registrar, publisher events.Publisher, l *logger.Logger) (*Storage, error) {
	if clientName == "" || strings.Contains(clientName, "/") {
		return nil, fmt.Errorf("client name %q: %w", clientName, agree_errors.ErrInvalidInput)
	}
	if r == nil {
		return nil, fmt.Errorf("nil router: %w", agree_errors.ErrInvalidInput)
	}
	if publisher == nil {
		publisher = events.NopPublisher{}
	}

	s := &Storage{
		clientName: clientName,
		router:     r,
		publisher:  publisher,
		logger:     logger.OrDefault(l).Named("storage"),
		// Index 0 is a placeholder so that qids start from 1.
		questions:             []Question{{QID: QIDNone}},
		questionsReverseIndex: map[string]QID{"": QIDNone},
		users:                 make(map[UID]*User),
	}

	handlers := []gin.HandlerFunc{
		s.live(s.handleLiveness),
		s.live(s.withClient(httpdto.Handle(s.handleQ))),
		s.live(s.withClient(httpdto.Handle(s.handleU))),
	}
	paths := s.Paths()
	for i, path := range paths {
		if err := r.Register(path, handlers[i]); err != nil {
			for _, done := range paths[:i] {
				_ = r.Unregister(done)
			}
			return nil, err
		}
	}

	s.logger.Logger.Info("storage routes registered",
		zap.String("client_name", clientName), zap.Strings("paths", paths))
	return s, nil
}

// Close unregisters the routes registered by New and waits for pending event
// publishes. Requests already dispatched to a closed store are answered 404.
// Calls after the first are no-ops.
func (s *Storage) Close() error {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.closed = true
		s.mu.Unlock()

		var errs []error
		for _, path := range s.Paths() {
			if err := s.router.Unregister(path); err != nil {
				errs = append(errs, err)
			}
		}
		s.closeErr = errors.Join(errs...)
		s.pending.Wait()
		s.logger.Logger.Info("storage routes unregistered",
			zap.String("client_name", s.clientName), zap.Error(s.closeErr))
	})
	return s.closeErr
}

func (s *Storage) ClientName() string {
	return s.clientName
}

// Paths returns the liveness, question and user paths, in that order.
func (s *Storage) Paths() []string {
	base := "/" + s.clientName
	return []string{base, base + "/q", base + "/u"}
}

// QuestionCount excludes the placeholder at index 0.
func (s *Storage) QuestionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.questions) - 1
}

func (s *Storage) UserCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

// live rejects requests that reach a handler after Close.
func (s *Storage) live(h gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		s.mu.Lock()
		closed := s.closed
		s.mu.Unlock()
		if closed {
			httpdto.WriteError(c, agree_errors.ErrRouteNotFound)
			return
		}
		h(c)
	}
}

func (s *Storage) withClient(h gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request = c.Request.WithContext(logger.WithClientName(c.Request.Context(), s.clientName))
		h(c)
	}
}

func (s *Storage) handleLiveness(c *gin.Context) {
	httpdto.WriteText(c, http.StatusOK, "OK")
}

// handleQ retrieves or creates questions.
func (s *Storage) handleQ(c *gin.Context) error {
	switch c.Request.Method {
	case http.MethodGet:
		return s.getQuestion(c)
	case http.MethodPost:
		return s.addQuestion(c)
	default:
		return agree_errors.ErrUnsupportedMethod
	}
}

func (s *Storage) getQuestion(c *gin.Context) error {
	qid := parseQID(c.Query("qid"))
	if qid == QIDNone {
		return agree_errors.ErrNeedQID
	}

	s.mu.Lock()
	if uint64(qid) >= uint64(len(s.questions)) {
		s.mu.Unlock()
		return agree_errors.ErrQuestionNotFound
	}
	q := s.questions[qid]
	s.mu.Unlock()

	return httpdto.WriteValue(c, q)
}

func (s *Storage) addQuestion(c *gin.Context) error {
	text := c.Query("text")
	if text == "" {
		return agree_errors.ErrNeedText
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return agree_errors.ErrRouteNotFound
	}
	if _, exists := s.questionsReverseIndex[text]; exists {
		s.mu.Unlock()
		return agree_errors.ErrDuplicateQuestion
	}
	q := Question{QID: QID(len(s.questions)), Text: text}
	s.questions = append(s.questions, q)
	s.questionsReverseIndex[text] = q.QID
	s.pending.Add(1)
	s.mu.Unlock()

	s.logger.WithContext(c.Request.Context()).Info("question added", zap.Uint64("qid", uint64(q.QID)))
	go s.publish(context.WithoutCancel(c.Request.Context()), events.EventTypeQuestionCreated, q)
	return httpdto.WriteTagged(c, "question", q)
}

// handleU retrieves or creates users.
func (s *Storage) handleU(c *gin.Context) error {
	uid := c.Query("uid")
	if uid == "" {
		return agree_errors.ErrNeedUID
	}

	switch c.Request.Method {
	case http.MethodGet:
		return s.getUser(c, uid)
	case http.MethodPost:
		return s.addUser(c, uid)
	default:
		return agree_errors.ErrUnsupportedMethod
	}
}

func (s *Storage) getUser(c *gin.Context, uid UID) error {
	s.mu.Lock()
	u, ok := s.users[uid]
	var snapshot User
	if ok {
		snapshot = copyUser(u)
	}
	s.mu.Unlock()

	if !ok {
		return agree_errors.ErrUserNotFound
	}
	return httpdto.WriteTagged(c, "user", snapshot)
}

func (s *Storage) addUser(c *gin.Context, uid UID) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return agree_errors.ErrRouteNotFound
	}
	if _, exists := s.users[uid]; exists {
		s.mu.Unlock()
		return agree_errors.ErrCannotReaddUser
	}
	u := &User{UID: uid, Answers: Answers{}}
	s.users[uid] = u
	snapshot := copyUser(u)
	s.pending.Add(1)
	s.mu.Unlock()

	s.logger.WithContext(c.Request.Context()).Info("user added", zap.String("uid", uid))
	go s.publish(context.WithoutCancel(c.Request.Context()), events.EventTypeUserCreated, snapshot)
	return httpdto.WriteTagged(c, "user", snapshot)
}

// publish runs off the request path and never fails it: the mutation has
// already happened. The caller must have added to s.pending.
func (s *Storage) publish(ctx context.Context, eventType string, payload any) {
	defer s.pending.Done()

	ev, err := events.NewEvent(eventType, s.clientName, payload)
	if err == nil {
		pubCtx, cancel := context.WithTimeout(ctx, publishTimeout)
		err = s.publisher.Publish(pubCtx, ev)
		cancel()
	}
	if err != nil {
		s.logger.WithContext(ctx).Warn("event not published", zap.String("type", eventType), zap.Error(err))
	}
}

// parseQID accepts leading whitespace, an optional sign, then reads the
// leading digits; anything after them is ignored. No digits
// yields QIDNone. Negative values wrap around and overflow saturates, so
// both end up out of range.
func parseQID(raw string) QID {
	digits := strings.TrimLeft(raw, " \t\n\v\f\r")
	negative := false
	if digits != "" && (digits[0] == '+' || digits[0] == '-') {
		negative = digits[0] == '-'
		digits = digits[1:]
	}
	end := 0
	for end < len(digits) && digits[end] >= '0' && digits[end] <= '9' {
		end++
	}
	if end == 0 {
		return QIDNone
	}
	v, err := strconv.ParseUint(digits[:end], 10, 64)
	if err != nil {
		return QID(math.MaxUint64)
	}
	if negative {
		v = -v
	}
	return QID(v)
}

func copyUser(u *User) User {
	answers := make(Answers, len(u.Answers))
	for k, v := range u.Answers {
		answers[k] = v
	}
	return User{UID: u.UID, Answers: answers}
}
