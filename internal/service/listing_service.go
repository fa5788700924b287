package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sajhahub/sajha-hub-backend/internal/domain"
	"github.com/sajhahub/sajha-hub-backend/internal/ranking"
	"github.com/sajhahub/sajha-hub-backend/internal/repository/ports"
)

var (
	ErrListingValidation = errors.New("listing validation failed")
	ErrListingNotFound   = errors.New("listing not found")
	ErrListingForbidden  = errors.New("not allowed to manage this listing")
	ErrDocumentRequired  = errors.New("document verification required for this category")
	ErrDocumentRejected  = errors.New("document verification failed")
	ErrAlreadyVoted      = errors.New("feedback already recorded for this listing")
)

// DocumentVerifier reviews the proof document attached to a high-risk
// submission. The bundled implementation is a stand-in that accepts
// everything; a real reviewer slots in behind the same function.
type DocumentVerifier func(ctx context.Context, documentRef string) (bool, error)

func AcceptAllDocuments(_ context.Context, _ string) (bool, error) {
	return true, nil
}

type ListingServiceConfig struct {
	Bucket        string
	PublicBaseURL string
	// ListingTTL is how long a new listing stays live before it expires out
	// of every default view.
	ListingTTL time.Duration
	Verifier   DocumentVerifier
}

const defaultListingTTL = 30 * 24 * time.Hour

type ImageUpload struct {
	Reader      io.Reader
	Size        int64
	FileName    string
	ContentType string
}

type ListingCreateInput struct {
	Title        string
	Description  string
	Category     domain.Category
	SubCategory  *domain.ServiceSubCategory
	Region       domain.Region
	City         string
	Price        *float64
	Location     string
	Tags         []string
	SpeaksNepali bool
	Phone        *string
	Whatsapp     *string
	Featured     bool

	Furnished  *bool
	Shared     *bool
	RentalType *domain.RentalType
	EventDate  *time.Time
	TicketType *domain.TicketType

	// DocumentRef points at the uploaded proof document. Required for
	// high-risk categories, ignored otherwise.
	DocumentRef string

	Image *ImageUpload
}

type ListingService struct {
	listings ports.ListingRepository
	sessions ports.SessionStore
	storage  ports.ObjectStorage

	bucket     string
	listingTTL time.Duration
	verifier   DocumentVerifier
	now        func() time.Time
}

func NewListingService(
	listings ports.ListingRepository,
	sessions ports.SessionStore,
	storage ports.ObjectStorage,
	cfg ListingServiceConfig,
) *ListingService {
	ttl := cfg.ListingTTL
	if ttl <= 0 {
		ttl = defaultListingTTL
	}
	verifier := cfg.Verifier
	if verifier == nil {
		verifier = AcceptAllDocuments
	}
	return &ListingService{
		listings:   listings,
		sessions:   sessions,
		storage:    storage,
		bucket:     strings.TrimSpace(cfg.Bucket),
		listingTTL: ttl,
		verifier:   verifier,
		now:        time.Now,
	}
}

// Browse applies the filter conjunction to the full collection and returns
// the survivors in trust-ranked order. The result is recomputed from source
// on every call.
func (s *ListingService) Browse(ctx context.Context, filter domain.ListingFilter) ([]domain.Listing, error) {
	all, err := s.listings.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	filter = filter.Normalize()
	now := s.now()

	matched := make([]domain.Listing, 0, len(all))
	for i := range all {
		if filter.Matches(&all[i], now) {
			matched = append(matched, all[i])
		}
	}
	ranking.Sort(matched)
	return matched, nil
}

func (s *ListingService) Get(ctx context.Context, id uuid.UUID) (*domain.Listing, error) {
	listing, err := s.listings.FindByID(ctx, id)
	if err != nil {
		return nil, ErrListingNotFound
	}
	return listing, nil
}

// Submit validates and stores a new listing on behalf of the signed-in
// member. High-risk categories must pass document verification before the
// listing goes live. The posting reward is banked only for verified members;
// the returned reward is what was actually credited.
func (s *ListingService) Submit(ctx context.Context, user *domain.User, input ListingCreateInput) (*domain.Listing, float64, error) {
	if err := validateListingInput(input); err != nil {
		return nil, 0, err
	}

	documentVerified := false
	if HighRiskCategory(input.Category) {
		if strings.TrimSpace(input.DocumentRef) == "" {
			return nil, 0, ErrDocumentRequired
		}
		ok, err := s.verifier(ctx, input.DocumentRef)
		if err != nil {
			return nil, 0, fmt.Errorf("verify document: %w", err)
		}
		if !ok {
			return nil, 0, ErrDocumentRejected
		}
		documentVerified = true
	}

	now := s.now()
	listing := &domain.Listing{
		Title:           strings.TrimSpace(input.Title),
		Description:     strings.TrimSpace(input.Description),
		Category:        input.Category,
		SubCategory:     input.SubCategory,
		Region:          input.Region,
		City:            strings.TrimSpace(input.City),
		Price:           input.Price,
		Location:        strings.TrimSpace(input.Location),
		Author:          user.Name,
		AuthorID:        user.ID,
		EmailVerified:   user.EmailVerified,
		PhoneVerified:   user.PhoneVerified,
		NagritaVerified: user.NagritaVerified || documentVerified,
		ExpiresAt:       now.Add(s.listingTTL),
		Tags:            input.Tags,
		Status:          domain.ListingStatusApproved,
		SpeaksNepali:    input.SpeaksNepali,
		Phone:           input.Phone,
		Whatsapp:        input.Whatsapp,
		AvailableToday:  true,
		Featured:        input.Featured,
		Furnished:       input.Furnished,
		Shared:          input.Shared,
		RentalType:      input.RentalType,
		EventDate:       input.EventDate,
		TicketType:      input.TicketType,
	}

	created, err := s.listings.Create(ctx, listing)
	if err != nil {
		return nil, 0, err
	}

	if input.Image != nil {
		url, err := s.uploadImage(ctx, created.ID, input.Image)
		if err != nil {
			return nil, 0, err
		}
		if err := s.listings.SetImageURL(ctx, created.ID, url); err != nil {
			return nil, 0, err
		}
		created.ImageURL = &url
	}

	reward := s.bankPostingReward(ctx, user, input.Category)
	return created, reward, nil
}

// VoteFeedback records one community safety vote. Each member gets a single
// vote per listing; repeats are rejected before any counter moves.
func (s *ListingService) VoteFeedback(ctx context.Context, userID, listingID uuid.UUID, kind domain.FeedbackKind) (*domain.SafetyFeedback, error) {
	first, err := s.sessions.MarkVoted(ctx, userID, listingID)
	if err != nil {
		return nil, err
	}
	if !first {
		return nil, ErrAlreadyVoted
	}
	feedback, err := s.listings.IncrementFeedback(ctx, listingID, kind)
	if err != nil {
		return nil, ErrListingNotFound
	}
	return feedback, nil
}

// SetAvailability flips the provider's available-today flag. Only the author
// may toggle it; the toggle also refreshes the last-active instant.
func (s *ListingService) SetAvailability(ctx context.Context, userID, listingID uuid.UUID, available bool) (*domain.Listing, error) {
	listing, err := s.listings.FindByID(ctx, listingID)
	if err != nil {
		return nil, ErrListingNotFound
	}
	if listing.AuthorID != userID {
		return nil, ErrListingForbidden
	}
	return s.listings.SetAvailability(ctx, listingID, available)
}

func (s *ListingService) uploadImage(ctx context.Context, listingID uuid.UUID, upload *ImageUpload) (string, error) {
	ext := strings.ToLower(filepath.Ext(upload.FileName))
	objectKey := fmt.Sprintf("listings/%s/cover%s", listingID, ext)
	return s.storage.Upload(ctx, s.bucket, objectKey, upload.ContentType, upload.Reader, upload.Size)
}

// bankPostingReward credits the posting reward when the member carries any
// verification tier. Unverified members forfeit the reward.
func (s *ListingService) bankPostingReward(ctx context.Context, user *domain.User, category domain.Category) float64 {
	if !user.Verified() {
		return 0
	}
	reward := PostingReward(category)
	user.Credits += reward
	user.Tier = domain.TierForCredits(user.Credits)
	if err := s.sessions.SaveUser(ctx, user); err != nil {
		user.Credits -= reward
		user.Tier = domain.TierForCredits(user.Credits)
		return 0
	}
	return reward
}

func validateListingInput(input ListingCreateInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrListingValidation)
	}
	if strings.TrimSpace(input.Description) == "" {
		return fmt.Errorf("%w: description is required", ErrListingValidation)
	}
	if input.Category == "" {
		return fmt.Errorf("%w: category is required", ErrListingValidation)
	}
	if input.Region == "" {
		return fmt.Errorf("%w: region is required", ErrListingValidation)
	}
	if strings.TrimSpace(input.City) == "" {
		return fmt.Errorf("%w: city is required", ErrListingValidation)
	}
	if input.Price != nil && *input.Price < 0 {
		return fmt.Errorf("%w: price cannot be negative", ErrListingValidation)
	}
	if input.SubCategory != nil && input.Category != domain.CategoryServices {
		return fmt.Errorf("%w: sub-category requires the services category", ErrListingValidation)
	}
	return nil
}
