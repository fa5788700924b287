package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/sajhahub/sajha-hub-backend/internal/domain"
)

var testNow = time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

func newTestListingService(repo *memListings, sessions *memSessions, storage *fakeStorage) *ListingService {
	svc := NewListingService(repo, sessions, storage, ListingServiceConfig{Bucket: "listings"})
	svc.now = func() time.Time { return testNow }
	return svc
}

func liveListing(title string, mutate ...func(*domain.Listing)) domain.Listing {
	l := domain.Listing{
		ID:          uuid.New(),
		Title:       title,
		Description: title + " description",
		Category:    domain.CategoryMarketplace,
		Region:      domain.RegionUSA,
		City:        "New York",
		Author:      "Test Author",
		AuthorID:    uuid.New(),
		CreatedAt:   testNow.Add(-24 * time.Hour),
		ExpiresAt:   testNow.Add(24 * time.Hour),
		Status:      domain.ListingStatusApproved,
	}
	for _, fn := range mutate {
		fn(&l)
	}
	return l
}

func titles(listings []domain.Listing) []string {
	out := make([]string, 0, len(listings))
	for _, l := range listings {
		out = append(out, l.Title)
	}
	return out
}

func TestBrowseExcludesExpired(t *testing.T) {
	repo := newMemListings(
		liveListing("fresh"),
		liveListing("stale", func(l *domain.Listing) { l.ExpiresAt = testNow.Add(-time.Hour) }),
		liveListing("expiring now", func(l *domain.Listing) { l.ExpiresAt = testNow }),
	)
	svc := newTestListingService(repo, newMemSessions(), &fakeStorage{})

	got, err := svc.Browse(context.Background(), domain.ListingFilter{})
	if err != nil {
		t.Fatalf("Browse: %v", err)
	}
	if len(got) != 1 || got[0].Title != "fresh" {
		t.Fatalf("expected only the live listing, got %v", titles(got))
	}
}

func TestBrowseSubCategoryImpliesServices(t *testing.T) {
	plumber := domain.SubCategoryPlumber
	repo := newMemListings(
		liveListing("pipe fix", func(l *domain.Listing) {
			l.Category = domain.CategoryServices
			l.SubCategory = &plumber
		}),
		liveListing("sofa", func(l *domain.Listing) { l.Category = domain.CategoryMarketplace }),
		liveListing("wiring", func(l *domain.Listing) {
			electrician := domain.SubCategoryElectrician
			l.Category = domain.CategoryServices
			l.SubCategory = &electrician
		}),
	)
	svc := newTestListingService(repo, newMemSessions(), &fakeStorage{})

	// Category deliberately left on the marketplace; the sub-category pick
	// must override it.
	got, err := svc.Browse(context.Background(), domain.ListingFilter{
		Category:    string(domain.CategoryMarketplace),
		SubCategory: string(domain.SubCategoryPlumber),
	})
	if err != nil {
		t.Fatalf("Browse: %v", err)
	}
	if len(got) != 1 || got[0].Title != "pipe fix" {
		t.Fatalf("expected the plumber listing, got %v", titles(got))
	}
}

func TestBrowsePriceCeiling(t *testing.T) {
	cheap, dear := 800.0, 1500.0
	repo := newMemListings(
		liveListing("cheap", func(l *domain.Listing) { l.Price = &cheap }),
		liveListing("dear", func(l *domain.Listing) { l.Price = &dear }),
		liveListing("negotiable"),
	)
	svc := newTestListingService(repo, newMemSessions(), &fakeStorage{})

	unbounded, err := svc.Browse(context.Background(), domain.ListingFilter{})
	if err != nil {
		t.Fatalf("Browse: %v", err)
	}
	if len(unbounded) != 3 {
		t.Fatalf("unbounded browse should include priceless listings, got %v", titles(unbounded))
	}

	capped, err := svc.Browse(context.Background(), domain.ListingFilter{MaxPrice: 1000})
	if err != nil {
		t.Fatalf("Browse: %v", err)
	}
	if len(capped) != 1 || capped[0].Title != "cheap" {
		t.Fatalf("ceiling should keep only priced listings at or under it, got %v", titles(capped))
	}
}

func TestBrowseVerifiedOnly(t *testing.T) {
	repo := newMemListings(
		liveListing("unverified"),
		liveListing("phone only", func(l *domain.Listing) { l.PhoneVerified = true }),
	)
	svc := newTestListingService(repo, newMemSessions(), &fakeStorage{})

	got, err := svc.Browse(context.Background(), domain.ListingFilter{VerifiedOnly: true})
	if err != nil {
		t.Fatalf("Browse: %v", err)
	}
	if len(got) != 1 || got[0].Title != "phone only" {
		t.Fatalf("any single verification tier should count, got %v", titles(got))
	}
}

func TestBrowseRankedOrder(t *testing.T) {
	repo := newMemListings(
		liveListing("email verified", func(l *domain.Listing) { l.EmailVerified = true }),
		liveListing("nagrita verified", func(l *domain.Listing) { l.NagritaVerified = true }),
		liveListing("featured plain", func(l *domain.Listing) { l.Featured = true }),
	)
	svc := newTestListingService(repo, newMemSessions(), &fakeStorage{})

	got, err := svc.Browse(context.Background(), domain.ListingFilter{})
	if err != nil {
		t.Fatalf("Browse: %v", err)
	}
	want := []string{"featured plain", "nagrita verified", "email verified"}
	for i, title := range want {
		if got[i].Title != title {
			t.Fatalf("rank %d: want %q, got %v", i, title, titles(got))
		}
	}
}

func TestBrowseQueryMatchesTitleOrDescription(t *testing.T) {
	repo := newMemListings(
		liveListing("Room in Queens", func(l *domain.Listing) { l.Description = "sunny, near subway" }),
		liveListing("Sofa", func(l *domain.Listing) { l.Description = "momo nights included" }),
	)
	svc := newTestListingService(repo, newMemSessions(), &fakeStorage{})

	got, err := svc.Browse(context.Background(), domain.ListingFilter{Query: "MOMO"})
	if err != nil {
		t.Fatalf("Browse: %v", err)
	}
	if len(got) != 1 || got[0].Title != "Sofa" {
		t.Fatalf("query should match descriptions case-insensitively, got %v", titles(got))
	}
}

func submitInput(category domain.Category) ListingCreateInput {
	return ListingCreateInput{
		Title:       "Test listing",
		Description: "A listing under test",
		Category:    category,
		Region:      domain.RegionUSA,
		City:        "New York",
	}
}

func verifiedUser() *domain.User {
	return &domain.User{
		ID:            uuid.New(),
		Name:          "Asha",
		Email:         "asha@example.com",
		EmailVerified: true,
		Tier:          domain.TierYatri,
	}
}

func TestSubmitRequiresDocumentForHighRisk(t *testing.T) {
	svc := newTestListingService(newMemListings(), newMemSessions(), &fakeStorage{})

	_, _, err := svc.Submit(context.Background(), verifiedUser(), submitInput(domain.CategoryRental))
	if !errors.Is(err, ErrDocumentRequired) {
		t.Fatalf("want ErrDocumentRequired, got %v", err)
	}
}

func TestSubmitRejectedDocument(t *testing.T) {
	svc := NewListingService(newMemListings(), newMemSessions(), &fakeStorage{}, ListingServiceConfig{
		Verifier: func(context.Context, string) (bool, error) { return false, nil },
	})

	input := submitInput(domain.CategoryJobs)
	input.DocumentRef = "docs/offer-letter.pdf"
	_, _, err := svc.Submit(context.Background(), verifiedUser(), input)
	if !errors.Is(err, ErrDocumentRejected) {
		t.Fatalf("want ErrDocumentRejected, got %v", err)
	}
}

func TestSubmitBanksFullRewardForHighRisk(t *testing.T) {
	sessions := newMemSessions()
	svc := newTestListingService(newMemListings(), sessions, &fakeStorage{})
	user := verifiedUser()

	input := submitInput(domain.CategoryRental)
	input.DocumentRef = "docs/tenancy.pdf"
	created, reward, err := svc.Submit(context.Background(), user, input)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if reward != 1.0 {
		t.Fatalf("high-risk reward: want 1.0, got %v", reward)
	}
	if created.ExpiresAt != testNow.Add(defaultListingTTL) {
		t.Fatalf("unexpected expiry %v", created.ExpiresAt)
	}
	if !created.NagritaVerified {
		t.Fatal("passed document verification should mark the listing Nagrita verified")
	}
	saved, _ := sessions.LoadUser(context.Background(), user.ID)
	if saved == nil || saved.Credits != 1.0 {
		t.Fatalf("reward not banked in session, got %+v", saved)
	}
}

func TestSubmitStandardRewardIsHalf(t *testing.T) {
	svc := newTestListingService(newMemListings(), newMemSessions(), &fakeStorage{})

	_, reward, err := svc.Submit(context.Background(), verifiedUser(), submitInput(domain.CategoryEvents))
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if reward != 0.5 {
		t.Fatalf("standard reward: want 0.5, got %v", reward)
	}
}

func TestSubmitUnverifiedMemberForfeitsReward(t *testing.T) {
	sessions := newMemSessions()
	svc := newTestListingService(newMemListings(), sessions, &fakeStorage{})
	user := &domain.User{ID: uuid.New(), Name: "Bikash", Email: "b@example.com", Tier: domain.TierYatri}

	_, reward, err := svc.Submit(context.Background(), user, submitInput(domain.CategoryEvents))
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if reward != 0 {
		t.Fatalf("unverified member should forfeit the reward, got %v", reward)
	}
	if user.Credits != 0 {
		t.Fatalf("credits should stay zero, got %v", user.Credits)
	}
}

func TestSubmitUploadsCoverImage(t *testing.T) {
	storage := &fakeStorage{}
	svc := newTestListingService(newMemListings(), newMemSessions(), storage)

	input := submitInput(domain.CategoryEvents)
	input.Image = &ImageUpload{
		Reader:      strings.NewReader("png bytes"),
		Size:        9,
		FileName:    "poster.png",
		ContentType: "image/png",
	}
	created, _, err := svc.Submit(context.Background(), verifiedUser(), input)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if storage.uploads != 1 {
		t.Fatalf("expected one upload, got %d", storage.uploads)
	}
	if created.ImageURL == nil || !strings.Contains(*created.ImageURL, "listings/") {
		t.Fatalf("image URL not attached: %+v", created.ImageURL)
	}
}

func TestSubmitValidation(t *testing.T) {
	svc := newTestListingService(newMemListings(), newMemSessions(), &fakeStorage{})

	input := submitInput(domain.CategoryEvents)
	input.Title = "   "
	if _, _, err := svc.Submit(context.Background(), verifiedUser(), input); !errors.Is(err, ErrListingValidation) {
		t.Fatalf("want ErrListingValidation, got %v", err)
	}
}

func TestVoteFeedbackOncePerMember(t *testing.T) {
	target := liveListing("suspicious sublet")
	repo := newMemListings(target)
	svc := newTestListingService(repo, newMemSessions(), &fakeStorage{})
	voter := uuid.New()

	feedback, err := svc.VoteFeedback(context.Background(), voter, target.ID, domain.FeedbackScam)
	if err != nil {
		t.Fatalf("first vote: %v", err)
	}
	if feedback.Scam != 1 {
		t.Fatalf("scam counter: want 1, got %d", feedback.Scam)
	}

	if _, err := svc.VoteFeedback(context.Background(), voter, target.ID, domain.FeedbackScam); !errors.Is(err, ErrAlreadyVoted) {
		t.Fatalf("second vote: want ErrAlreadyVoted, got %v", err)
	}

	// A different member still gets their vote.
	feedback, err = svc.VoteFeedback(context.Background(), uuid.New(), target.ID, domain.FeedbackHelpful)
	if err != nil {
		t.Fatalf("other member vote: %v", err)
	}
	if feedback.Helpful != 1 || feedback.Scam != 1 {
		t.Fatalf("unexpected counters %+v", feedback)
	}
}

func TestSetAvailabilityOwnership(t *testing.T) {
	owner := uuid.New()
	target := liveListing("plumbing", func(l *domain.Listing) { l.AuthorID = owner })
	repo := newMemListings(target)
	svc := newTestListingService(repo, newMemSessions(), &fakeStorage{})

	if _, err := svc.SetAvailability(context.Background(), uuid.New(), target.ID, false); !errors.Is(err, ErrListingForbidden) {
		t.Fatalf("non-owner toggle: want ErrListingForbidden, got %v", err)
	}

	updated, err := svc.SetAvailability(context.Background(), owner, target.ID, false)
	if err != nil {
		t.Fatalf("owner toggle: %v", err)
	}
	if updated.AvailableToday {
		t.Fatal("availability should be off after toggle")
	}
}
