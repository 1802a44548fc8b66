package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"comnibus/internal/http-api/repository"
)

// Activity type labels as they appear in the feed payload.
const (
	ActivityReviewed       = "reviewed"
	ActivityReviewReply    = "replied to a review"
	ActivityThought        = "shared a thought"
	ActivityThoughtReply   = "replied to a thought"
	ActivityStartedReading = "Started Reading"
	ActivityProgress       = "Reading Progress"
	ActivityFinished       = "Finished Reading"
)

// FeedEvent is the normalized shape every event kind collapses into.
// Username is a display label: "You" for the viewer, otherwise the followed
// user's username.
type FeedEvent struct {
	ActivityType   string    `json:"activity_type"`
	Username       string    `json:"username"`
	BookID         string    `json:"book_id,omitempty"`
	BookTitle      string    `json:"book_title,omitempty"`
	ReviewTitle    string    `json:"review_title,omitempty"`
	ReviewContent  string    `json:"review_content,omitempty"`
	ReplyContent   string    `json:"reply_content,omitempty"`
	ThoughtContent string    `json:"thought_content,omitempty"`
	Stars          int       `json:"stars,omitempty"`
	Progress       float64   `json:"progress,omitempty"`
	CurrentPage    int       `json:"current_page,omitempty"`
	TotalPages     int       `json:"total_pages,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
}

// FeedResult wraps the sorted events. Message is set only for the explicit
// "not following anyone" terminal state, which short-circuits before any
// content store is queried.
type FeedResult struct {
	Feed    []FeedEvent `json:"feed"`
	Message string      `json:"message,omitempty"`
}

// FeedService assembles the reverse-chronological activity stream covering
// the viewer and everyone they follow.
type FeedService interface {
	BuildFeed(ctx context.Context, viewerUsername string) (*FeedResult, error)
}

type feedService struct {
	userRepo    repository.UserRepository
	bookRepo    repository.BookRepository
	thoughtRepo repository.ThoughtRepository
	now         func() time.Time
}

func NewFeedService(userRepo repository.UserRepository, bookRepo repository.BookRepository, thoughtRepo repository.ThoughtRepository) FeedService {
	return &feedService{
		userRepo:    userRepo,
		bookRepo:    bookRepo,
		thoughtRepo: thoughtRepo,
		now:         time.Now,
	}
}

// BuildFeed fans out across the content stores with one $in query per event
// kind over all usernames at once, instead of re-scanning every collection
// per followed user. Output ordering and event shapes match the per-user
// scan form exactly.
func (s *feedService) BuildFeed(ctx context.Context, viewerUsername string) (*FeedResult, error) {
	viewer, err := s.userRepo.FindByUsername(ctx, viewerUsername)
	if errors.Is(err, repository.ErrNoDocuments) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	if len(viewer.Following) == 0 {
		return &FeedResult{Feed: []FeedEvent{}, Message: "You are not following anyone yet"}, nil
	}

	usernames := make([]string, 0, len(viewer.Following)+1)
	usernames = append(usernames, viewer.Username)
	inFeed := map[string]bool{viewer.Username: true}
	for _, ref := range viewer.Following {
		if !inFeed[ref.Username] {
			usernames = append(usernames, ref.Username)
			inFeed[ref.Username] = true
		}
	}

	label := func(username string) string {
		if username == viewer.Username {
			return "You"
		}
		return username
	}

	var events []FeedEvent

	// Review and review-reply events, nested one and two levels inside books.
	reviewBooks, err := s.bookRepo.FindWithReviewsBy(ctx, usernames)
	if err != nil {
		return nil, err
	}
	for _, book := range reviewBooks {
		for _, review := range book.UserReviews {
			if !inFeed[review.Username] {
				continue
			}
			events = append(events, FeedEvent{
				ActivityType:  ActivityReviewed,
				Username:      label(review.Username),
				BookID:        book.ID.Hex(),
				BookTitle:     book.Title,
				ReviewTitle:   review.Title,
				ReviewContent: review.Comment,
				Stars:         review.Stars,
				Timestamp:     s.orNow(review.CreatedAt),
			})
		}
	}

	replyBooks, err := s.bookRepo.FindWithReviewRepliesBy(ctx, usernames)
	if err != nil {
		return nil, err
	}
	for _, book := range replyBooks {
		for _, review := range book.UserReviews {
			for _, reply := range review.Replies {
				if !inFeed[reply.Username] {
					continue
				}
				events = append(events, FeedEvent{
					ActivityType: ActivityReviewReply,
					Username:     label(reply.Username),
					BookID:       book.ID.Hex(),
					BookTitle:    book.Title,
					ReviewTitle:  review.Title,
					ReplyContent: reply.Content,
					Timestamp:    s.orNow(reply.CreatedAt),
				})
			}
		}
	}

	// Thought and thought-reply events.
	thoughts, err := s.thoughtRepo.FindByUsernames(ctx, usernames)
	if err != nil {
		return nil, err
	}
	for _, thought := range thoughts {
		if !inFeed[thought.Username] {
			continue
		}
		events = append(events, FeedEvent{
			ActivityType:   ActivityThought,
			Username:       label(thought.Username),
			ThoughtContent: thought.Comment,
			Timestamp:      s.orNow(thought.CreatedAt),
		})
	}

	replyThoughts, err := s.thoughtRepo.FindWithRepliesBy(ctx, usernames)
	if err != nil {
		return nil, err
	}
	for _, thought := range replyThoughts {
		for _, reply := range thought.Replies {
			if !inFeed[reply.Username] {
				continue
			}
			events = append(events, FeedEvent{
				ActivityType:   ActivityThoughtReply,
				Username:       label(reply.Username),
				ThoughtContent: thought.Comment,
				ReplyContent:   reply.Content,
				Timestamp:      s.orNow(reply.CreatedAt),
			})
		}
	}

	// Reading-progress and finished-reading events from the user documents.
	feedUsers, err := s.userRepo.FindByUsernames(ctx, usernames)
	if err != nil {
		return nil, err
	}
	for _, user := range feedUsers {
		if !inFeed[user.Username] {
			continue
		}
		for _, entry := range user.CurrentlyReading {
			activity := ActivityProgress
			if entry.Progress == 0 {
				activity = ActivityStartedReading
			}
			events = append(events, FeedEvent{
				ActivityType: activity,
				Username:     label(user.Username),
				BookID:       entry.BookID.Hex(),
				BookTitle:    entry.Title,
				Progress:     entry.Progress,
				CurrentPage:  entry.CurrentPage,
				TotalPages:   entry.TotalPages,
				Timestamp:    s.orNow(entry.ReadingTime),
			})
		}
		for _, entry := range user.HaveRead {
			events = append(events, FeedEvent{
				ActivityType: ActivityFinished,
				Username:     label(user.Username),
				BookID:       entry.BookID.Hex(),
				BookTitle:    entry.Title,
				Stars:        entry.Stars,
				Timestamp:    s.parseShelfDate(entry.DateRead),
			})
		}
	}

	// Newest first; zero timestamps (unparseable dates) sort strictly last.
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Timestamp.After(events[j].Timestamp)
	})

	if events == nil {
		events = []FeedEvent{}
	}
	return &FeedResult{Feed: events}, nil
}

// orNow implements the default-to-recent policy: a missing created_at is
// treated as "just happened", not as an error.
func (s *feedService) orNow(t time.Time) time.Time {
	if t.IsZero() {
		return s.now()
	}
	return t
}

var shelfDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// parseShelfDate turns a user-supplied date string into a sort timestamp.
// Absent dates default to now; malformed dates become the zero time so they
// sort after every valid event, never raising.
func (s *feedService) parseShelfDate(raw string) time.Time {
	if raw == "" {
		return s.now()
	}
	for _, layout := range shelfDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Time{}
}
