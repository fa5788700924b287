package service

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"sort"

	"github.com/google/uuid"

	"github.com/sajhahub/sajha-hub-backend/internal/domain"
	"github.com/sajhahub/sajha-hub-backend/internal/repository/ports"
)

type memListings struct {
	byID  map[uuid.UUID]*domain.Listing
	order []uuid.UUID
}

var _ ports.ListingRepository = (*memListings)(nil)

func newMemListings(listings ...domain.Listing) *memListings {
	repo := &memListings{byID: make(map[uuid.UUID]*domain.Listing)}
	for i := range listings {
		l := listings[i]
		if l.ID == uuid.Nil {
			l.ID = uuid.New()
		}
		repo.byID[l.ID] = &l
		repo.order = append(repo.order, l.ID)
	}
	return repo
}

func (r *memListings) ListAll(_ context.Context) ([]domain.Listing, error) {
	out := make([]domain.Listing, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, *r.byID[id])
	}
	return out, nil
}

func (r *memListings) FindByID(_ context.Context, id uuid.UUID) (*domain.Listing, error) {
	l, ok := r.byID[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *l
	return &copied, nil
}

func (r *memListings) Create(_ context.Context, listing *domain.Listing) (*domain.Listing, error) {
	created := *listing
	created.ID = uuid.New()
	r.byID[created.ID] = &created
	r.order = append(r.order, created.ID)
	out := created
	return &out, nil
}

func (r *memListings) IncrementFeedback(_ context.Context, id uuid.UUID, kind domain.FeedbackKind) (*domain.SafetyFeedback, error) {
	l, ok := r.byID[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	switch kind {
	case domain.FeedbackHelpful:
		l.Feedback.Helpful++
	case domain.FeedbackMisleading:
		l.Feedback.Misleading++
	case domain.FeedbackScam:
		l.Feedback.Scam++
	}
	feedback := l.Feedback
	return &feedback, nil
}

func (r *memListings) SetAvailability(_ context.Context, id uuid.UUID, available bool) (*domain.Listing, error) {
	l, ok := r.byID[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	l.AvailableToday = available
	copied := *l
	return &copied, nil
}

func (r *memListings) SetImageURL(_ context.Context, id uuid.UUID, imageURL string) error {
	l, ok := r.byID[id]
	if !ok {
		return sql.ErrNoRows
	}
	l.ImageURL = &imageURL
	return nil
}

type memSessions struct {
	users   map[uuid.UUID]*domain.User
	cities  map[uuid.UUID]string
	votes   map[string]bool
	saveErr error
}

var _ ports.SessionStore = (*memSessions)(nil)

func newMemSessions() *memSessions {
	return &memSessions{
		users:  make(map[uuid.UUID]*domain.User),
		cities: make(map[uuid.UUID]string),
		votes:  make(map[string]bool),
	}
}

func (s *memSessions) SaveUser(_ context.Context, user *domain.User) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	copied := *user
	s.users[user.ID] = &copied
	return nil
}

func (s *memSessions) LoadUser(_ context.Context, id uuid.UUID) (*domain.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (s *memSessions) DeleteUser(_ context.Context, id uuid.UUID) error {
	delete(s.users, id)
	return nil
}

func (s *memSessions) SaveCity(_ context.Context, userID uuid.UUID, city string) error {
	s.cities[userID] = city
	return nil
}

func (s *memSessions) LoadCity(_ context.Context, userID uuid.UUID) (string, error) {
	return s.cities[userID], nil
}

func (s *memSessions) MarkVoted(_ context.Context, userID, listingID uuid.UUID) (bool, error) {
	key := userID.String() + ":" + listingID.String()
	if s.votes[key] {
		return false, nil
	}
	s.votes[key] = true
	return true, nil
}

// memInsightsCache stores briefings by city and counts writes.
type memInsightsCache struct {
	byCity map[string]*domain.CityInsights
	saves  int
}

var _ ports.InsightsCache = (*memInsightsCache)(nil)

func newMemInsightsCache() *memInsightsCache {
	return &memInsightsCache{byCity: make(map[string]*domain.CityInsights)}
}

func (c *memInsightsCache) SaveInsights(_ context.Context, insights *domain.CityInsights) error {
	copied := *insights
	c.byCity[insights.City] = &copied
	c.saves++
	return nil
}

func (c *memInsightsCache) LoadInsights(_ context.Context, city string) (*domain.CityInsights, error) {
	insights, ok := c.byCity[city]
	if !ok {
		return nil, nil
	}
	copied := *insights
	return &copied, nil
}

type memPartners struct {
	stays    []domain.Stay
	agencies []domain.Agency
}

var _ ports.PartnerRepository = (*memPartners)(nil)

func (r *memPartners) ListStays(_ context.Context) ([]domain.Stay, error) {
	return append([]domain.Stay(nil), r.stays...), nil
}

func (r *memPartners) ListAgencies(_ context.Context) ([]domain.Agency, error) {
	return append([]domain.Agency(nil), r.agencies...), nil
}

type memBlogs struct {
	entries []domain.BlogEntry
}

var _ ports.BlogRepository = (*memBlogs)(nil)

func (r *memBlogs) Create(_ context.Context, entry *domain.BlogEntry) (*domain.BlogEntry, error) {
	created := *entry
	created.ID = uuid.New()
	r.entries = append(r.entries, created)
	out := created
	return &out, nil
}

func (r *memBlogs) ListRecent(_ context.Context, limit, offset int) ([]domain.BlogEntry, error) {
	entries := append([]domain.BlogEntry(nil), r.entries...)
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
	if offset >= len(entries) {
		return nil, nil
	}
	entries = entries[offset:]
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

type memAccounts struct {
	byEmail map[string]*domain.Account
}

var _ ports.AccountRepository = (*memAccounts)(nil)

func newMemAccounts() *memAccounts {
	return &memAccounts{byEmail: make(map[string]*domain.Account)}
}

func (r *memAccounts) FindByEmail(_ context.Context, email string) (*domain.Account, error) {
	account, ok := r.byEmail[email]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *account
	return &copied, nil
}

func (r *memAccounts) Create(_ context.Context, account *domain.Account) (*domain.Account, error) {
	created := *account
	created.ID = uuid.New()
	r.byEmail[created.Email] = &created
	out := created
	return &out, nil
}

func (r *memAccounts) UpsertByEmail(_ context.Context, email, name string) (*domain.Account, error) {
	if existing, ok := r.byEmail[email]; ok {
		if name != "" {
			existing.Name = name
		}
		copied := *existing
		return &copied, nil
	}
	return r.Create(context.Background(), &domain.Account{Email: email, Name: name})
}

type fakeStorage struct {
	uploads int
}

var _ ports.ObjectStorage = (*fakeStorage)(nil)

func (s *fakeStorage) Upload(_ context.Context, bucket, objectName, _ string, reader io.Reader, _ int64) (string, error) {
	if _, err := io.ReadAll(reader); err != nil {
		return "", err
	}
	s.uploads++
	return fmt.Sprintf("https://cdn.test/%s/%s", bucket, objectName), nil
}

// stubOracle answers every prompt with a fixed completion, or fails when err
// is set. The last prompt is kept for assertions.
type stubOracle struct {
	text       string
	citations  []domain.Citation
	err        error
	lastPrompt string
	lastOpts   ports.OracleOptions
}

var _ ports.TextOracle = (*stubOracle)(nil)

func (o *stubOracle) Generate(_ context.Context, prompt string, opts ports.OracleOptions) (string, []domain.Citation, error) {
	o.lastPrompt = prompt
	o.lastOpts = opts
	if o.err != nil {
		return "", nil, o.err
	}
	return o.text, o.citations, nil
}
