// Package memory implements storage.Storage on process-local maps.
// It backs tests and single-instance deployments without a database.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-content-studio/internal/logger"
	"github.com/sbilibin2017/gw-content-studio/internal/models"
	"github.com/sbilibin2017/gw-content-studio/internal/storage"
)

type contentRow struct {
	content models.Content
	seq     uint64
}

// Store is the in-memory storage backend.
type Store struct {
	mu    sync.RWMutex
	now   func() time.Time
	newID func() string
	seq   uint64

	users    map[string]models.User    // by id
	emails   map[string]string         // email -> user id
	profiles map[string]models.Profile // by user id
	contents map[string]contentRow     // by content id
	ledger   []models.CreditTransaction
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator overrides the identifier source for profiles, content and
// ledger entries.
func WithIDGenerator(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

// New creates an empty Store.
func New(opts ...Option) *Store {
	s := &Store{
		now:      time.Now,
		newID:    uuid.NewString,
		users:    make(map[string]models.User),
		emails:   make(map[string]string),
		profiles: make(map[string]models.Profile),
		contents: make(map[string]contentRow),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ storage.Storage = (*Store)(nil)

// Ping always succeeds.
func (s *Store) Ping(ctx context.Context) error { return nil }

// Close is a no-op.
func (s *Store) Close() error { return nil }

// journal collects undo steps of writes made inside WithinTx.
type journal struct {
	undo []func()
}

type journalKey struct{}

// WithinTx runs fn and reverts every write fn made through the store when fn
// returns an error or panics. Nested calls join the outer journal.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if _, ok := ctx.Value(journalKey{}).(*journal); ok {
		return fn(ctx)
	}

	j := &journal{}
	defer func() {
		if rec := recover(); rec != nil {
			s.rollback(j)
			panic(rec)
		}
	}()

	if err = fn(context.WithValue(ctx, journalKey{}, j)); err != nil {
		s.rollback(j)
		logger.Log.Debugw("memory tx rolled back", "steps", len(j.undo), "error", err)
	}
	return err
}

func (s *Store) rollback(j *journal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(j.undo) - 1; i >= 0; i-- {
		j.undo[i]()
	}
}

// record must be called with s.mu held.
func (s *Store) record(ctx context.Context, undo func()) {
	if j, ok := ctx.Value(journalKey{}).(*journal); ok {
		j.undo = append(j.undo, undo)
	}
}

func (s *Store) nextSeq() uint64 {
	s.seq++
	return s.seq
}

// GetUserByID returns the user with the given id.
func (s *Store) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, fmt.Errorf("%w: user %s", storage.ErrNotFound, id)
	}
	return &u, nil
}

// GetUserByEmail returns the user with the given email.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.emails[email]
	if !ok {
		return nil, fmt.Errorf("%w: user with email %s", storage.ErrNotFound, email)
	}
	u := s.users[id]
	return &u, nil
}

// FindOrCreateUser looks up by id, then by email, and inserts on a double miss.
func (s *Store) FindOrCreateUser(ctx context.Context, id, email string) (*models.User, error) {
	if err := storage.ValidateUser(id, email); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if u, ok := s.users[id]; ok {
		return &u, nil
	}
	if existing, ok := s.emails[email]; ok {
		u := s.users[existing]
		return &u, nil
	}
	u := s.insertUser(ctx, id, email)
	return &u, nil
}

// CreateUser inserts a user, failing on a duplicate id or email.
func (s *Store) CreateUser(ctx context.Context, id, email string) (*models.User, error) {
	if err := storage.ValidateUser(id, email); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; ok {
		return nil, fmt.Errorf("%w: user id %s", storage.ErrDuplicateKey, id)
	}
	if _, ok := s.emails[email]; ok {
		return nil, fmt.Errorf("%w: user email %s", storage.ErrDuplicateKey, email)
	}
	u := s.insertUser(ctx, id, email)
	return &u, nil
}

func (s *Store) insertUser(ctx context.Context, id, email string) models.User {
	now := s.now()
	u := models.User{ID: id, Email: email, CreatedAt: now, UpdatedAt: now}
	s.users[id] = u
	s.emails[email] = id
	s.record(ctx, func() {
		delete(s.users, id)
		delete(s.emails, email)
	})
	return u
}

// GetProfile returns the profile of userID.
func (s *Store) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.profiles[userID]
	if !ok {
		return nil, fmt.Errorf("%w: profile of user %s", storage.ErrNotFound, userID)
	}
	return cloneProfile(p), nil
}

// UpsertProfile inserts the profile or replaces its updatable fields.
func (s *Store) UpsertProfile(ctx context.Context, userID, email string, fields models.ProfileFields) (*models.Profile, error) {
	fields, err := storage.ValidateProfileFields(userID, email, fields)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	prev, existed := s.profiles[userID]
	p := prev
	if !existed {
		p = models.Profile{ID: s.newID(), UserID: userID, Email: email, CreatedAt: now}
	}
	p.Name = cloneString(fields.Name)
	p.BusinessType = fields.BusinessType
	p.TargetPersona = fields.TargetPersona
	p.Channels = append(models.Channels(nil), fields.Channels...)
	p.UpdatedAt = now

	s.profiles[userID] = p
	s.record(ctx, s.restoreProfile(userID, prev, existed))
	return cloneProfile(p), nil
}

// UpdateProfile merges the supplied fields into an existing profile.
func (s *Store) UpdateProfile(ctx context.Context, userID string, update models.ProfileUpdate) (*models.Profile, error) {
	update, err := storage.ValidateProfileUpdate(update)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.profiles[userID]
	if !ok {
		return nil, fmt.Errorf("%w: profile of user %s", storage.ErrNotFound, userID)
	}

	p := *cloneProfile(prev)
	if update.Name != nil {
		p.Name = cloneString(update.Name)
	}
	if update.BusinessType != nil {
		p.BusinessType = *update.BusinessType
	}
	if update.TargetPersona != nil {
		p.TargetPersona = *update.TargetPersona
	}
	if update.Channels != nil {
		p.Channels = append(models.Channels(nil), update.Channels...)
	}
	p.UpdatedAt = s.now()

	s.profiles[userID] = p
	s.record(ctx, s.restoreProfile(userID, prev, true))
	return cloneProfile(p), nil
}

func (s *Store) restoreProfile(userID string, prev models.Profile, existed bool) func() {
	return func() {
		if existed {
			s.profiles[userID] = prev
			return
		}
		delete(s.profiles, userID)
	}
}

// CreateContent validates and stores a new content item.
func (s *Store) CreateContent(ctx context.Context, nc models.NewContent) (*models.Content, error) {
	if err := storage.ValidateNewContent(&nc); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	c := models.Content{
		ID:        s.newID(),
		UserID:    nc.UserID,
		Type:      nc.Type,
		Title:     cloneString(nc.Title),
		Body:      nc.Body,
		Tone:      cloneString(nc.Tone),
		Objective: cloneString(nc.Objective),
		Status:    nc.Status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.contents[c.ID] = contentRow{content: c, seq: s.nextSeq()}
	s.record(ctx, func() { delete(s.contents, c.ID) })
	return cloneContent(c), nil
}

// GetContent returns a content item by id.
func (s *Store) GetContent(ctx context.Context, id string) (*models.Content, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row, ok := s.contents[id]
	if !ok {
		return nil, fmt.Errorf("%w: content %s", storage.ErrNotFound, id)
	}
	return cloneContent(row.content), nil
}

// ListContentByUser returns userID's content newest first.
func (s *Store) ListContentByUser(ctx context.Context, userID string, contentType models.ContentType) ([]models.Content, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := s.userContents(userID, contentType)
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if !a.content.CreatedAt.Equal(b.content.CreatedAt) {
			return a.content.CreatedAt.After(b.content.CreatedAt)
		}
		return a.seq > b.seq
	})

	out := make([]models.Content, 0, len(rows))
	for _, row := range rows {
		out = append(out, *cloneContent(row.content))
	}
	return out, nil
}

func (s *Store) userContents(userID string, contentType models.ContentType) []contentRow {
	var rows []contentRow
	for _, row := range s.contents {
		if row.content.UserID != userID {
			continue
		}
		if contentType != "" && row.content.Type != contentType {
			continue
		}
		rows = append(rows, row)
	}
	return rows
}

// DeleteContent removes a content item. Unknown ids are ignored.
func (s *Store) DeleteContent(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.contents[id]
	if !ok {
		return nil
	}
	delete(s.contents, id)
	s.record(ctx, func() { s.contents[id] = row })
	return nil
}

// CountContentByUser counts userID's content.
func (s *Store) CountContentByUser(ctx context.Context, userID string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return int64(len(s.userContents(userID, ""))), nil
}

// ContentTypeDistribution counts userID's content per category.
func (s *Store) ContentTypeDistribution(ctx context.Context, userID string) (map[models.ContentType]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	dist := make(map[models.ContentType]int64)
	for _, row := range s.userContents(userID, "") {
		dist[row.content.Type]++
	}
	return dist, nil
}

// UpdateContentStatus changes the status of a content item.
func (s *Store) UpdateContentStatus(ctx context.Context, id, status string) (*models.Content, error) {
	if err := storage.ValidateStatus(status); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.contents[id]
	if !ok {
		return nil, fmt.Errorf("%w: content %s", storage.ErrNotFound, id)
	}
	row := prev
	row.content.Status = status
	row.content.UpdatedAt = s.now()
	s.contents[id] = row
	s.record(ctx, func() { s.contents[id] = prev })
	return cloneContent(row.content), nil
}

// GetBalance sums userID's ledger entries.
func (s *Store) GetBalance(ctx context.Context, userID string) (int64, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	balance, found := s.balance(userID)
	return balance, found, nil
}

func (s *Store) balance(userID string) (int64, bool) {
	var (
		sum   int64
		found bool
	)
	for _, tx := range s.ledger {
		if tx.UserID == userID {
			sum += tx.Amount
			found = true
		}
	}
	return sum, found
}

// ApplyTransaction appends a ledger entry and returns the recomputed balance.
func (s *Store) ApplyTransaction(ctx context.Context, userID string, amount int64, source string) (int64, error) {
	if userID == "" {
		return 0, fmt.Errorf("%w: user id is required", storage.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx := models.CreditTransaction{
		ID:        s.newID(),
		UserID:    userID,
		Amount:    amount,
		CreatedAt: s.now(),
	}
	if source != "" {
		tx.Source = &source
	}
	s.ledger = append(s.ledger, tx)
	s.record(ctx, func() { s.removeLedgerEntry(tx.ID) })

	balance, _ := s.balance(userID)
	return balance, nil
}

// removeLedgerEntry only serves transaction rollback; committed entries are
// never removed.
func (s *Store) removeLedgerEntry(id string) {
	for i, tx := range s.ledger {
		if tx.ID == id {
			s.ledger = append(s.ledger[:i], s.ledger[i+1:]...)
			return
		}
	}
}

// ListTransactions returns userID's ledger entries newest first.
func (s *Store) ListTransactions(ctx context.Context, userID string) ([]models.CreditTransaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.CreditTransaction
	for i := len(s.ledger) - 1; i >= 0; i-- {
		if tx := s.ledger[i]; tx.UserID == userID {
			tx.Source = cloneString(tx.Source)
			out = append(out, tx)
		}
	}
	return out, nil
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneProfile(p models.Profile) *models.Profile {
	p.Name = cloneString(p.Name)
	p.Channels = append(models.Channels(nil), p.Channels...)
	return &p
}

func cloneContent(c models.Content) *models.Content {
	c.Title = cloneString(c.Title)
	c.Tone = cloneString(c.Tone)
	c.Objective = cloneString(c.Objective)
	return &c
}
