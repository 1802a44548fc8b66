package repository

import (
	"context"
	"errors"
	"fmt"

	"comnibus/internal/http-api/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// BookFilter narrows the book listing. Empty fields are ignored.
type BookFilter struct {
	Title  string
	Author string
	Genre  string
}

// AuthoredReview is a review joined with its owning book, used where reviews
// are looked up across books (weekly caps, feed fan-out, cross-book get).
type AuthoredReview struct {
	BookID    primitive.ObjectID
	BookTitle string
	Review    models.Review
}

type BookRepository interface {
	Create(ctx context.Context, book *models.Book) error
	Find(ctx context.Context, filter BookFilter, page, pageSize int) ([]models.Book, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Book, error)
	FindSameAuthor(ctx context.Context, excludeID primitive.ObjectID, authors []string, limit int) ([]models.Book, error)
	Distinct(ctx context.Context, field string) ([]string, error)
	PushTriggers(ctx context.Context, id primitive.ObjectID, triggers []string) error

	Reviews(ctx context.Context, bookID primitive.ObjectID) ([]models.Review, error)
	ReviewsBy(ctx context.Context, username string) ([]AuthoredReview, error)
	HasReviewBy(ctx context.Context, bookID primitive.ObjectID, username string) (bool, error)
	PushReview(ctx context.Context, bookID primitive.ObjectID, review models.Review) error
	PullReview(ctx context.Context, bookID, reviewID primitive.ObjectID) (int64, error)
	FindReview(ctx context.Context, bookID, reviewID primitive.ObjectID) (*models.Review, error)
	FindReviewAnyBook(ctx context.Context, reviewID primitive.ObjectID) (*AuthoredReview, error)
	IncReviewCounter(ctx context.Context, bookID, reviewID primitive.ObjectID, field string) (bool, error)
	SetUserScore(ctx context.Context, bookID primitive.ObjectID, score float64) error

	PushReviewReply(ctx context.Context, bookID, reviewID primitive.ObjectID, reply models.Reply) (bool, error)
	PullReviewReply(ctx context.Context, bookID, reviewID, replyID primitive.ObjectID) (int64, error)
	FindReviewReply(ctx context.Context, bookID, reviewID, replyID primitive.ObjectID) (*models.Reply, error)
	FindReviewReplyParent(ctx context.Context, bookID, replyID primitive.ObjectID) (*models.Review, error)
	IncReviewReplyCounter(ctx context.Context, bookID, reviewID, replyID primitive.ObjectID, field string) (bool, error)

	FindWithReviewsBy(ctx context.Context, usernames []string) ([]models.Book, error)
	FindWithReviewRepliesBy(ctx context.Context, usernames []string) ([]models.Book, error)
}

type bookRepository struct {
	coll *mongo.Collection
}

func NewBookRepository(coll *mongo.Collection) BookRepository {
	return &bookRepository{coll: coll}
}

func (r *bookRepository) Create(ctx context.Context, book *models.Book) error {
	res, err := r.coll.InsertOne(ctx, book)
	if err != nil {
		return fmt.Errorf("insert book: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		book.ID = oid
	}
	return nil
}

func (r *bookRepository) Find(ctx context.Context, filter BookFilter, page, pageSize int) ([]models.Book, error) {
	query := bson.M{}
	if filter.Title != "" {
		query["title"] = filter.Title
	}
	if filter.Author != "" {
		query["author"] = bson.M{"$in": []string{filter.Author}}
	}
	if filter.Genre != "" {
		query["genres"] = bson.M{"$in": []string{filter.Genre}}
	}

	opts := options.Find().
		SetSkip(int64(pageSize * (page - 1))).
		SetLimit(int64(pageSize))

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("find books: %w", err)
	}
	var books []models.Book
	if err := cursor.All(ctx, &books); err != nil {
		return nil, fmt.Errorf("decode books: %w", err)
	}
	return books, nil
}

func (r *bookRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Book, error) {
	var book models.Book
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&book)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNoDocuments
	}
	if err != nil {
		return nil, fmt.Errorf("find book: %w", err)
	}
	return &book, nil
}

func (r *bookRepository) FindSameAuthor(ctx context.Context, excludeID primitive.ObjectID, authors []string, limit int) ([]models.Book, error) {
	query := bson.M{"_id": bson.M{"$ne": excludeID}}
	if len(authors) > 0 {
		query["author"] = bson.M{"$in": authors}
	}
	cursor, err := r.coll.Find(ctx, query, options.Find().SetLimit(int64(limit)))
	if err != nil {
		return nil, fmt.Errorf("find same-author books: %w", err)
	}
	var books []models.Book
	if err := cursor.All(ctx, &books); err != nil {
		return nil, fmt.Errorf("decode books: %w", err)
	}
	return books, nil
}

func (r *bookRepository) Distinct(ctx context.Context, field string) ([]string, error) {
	raw, err := r.coll.Distinct(ctx, field, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("distinct %s: %w", field, err)
	}
	values := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			values = append(values, s)
		}
	}
	return values, nil
}

func (r *bookRepository) PushTriggers(ctx context.Context, id primitive.ObjectID, triggers []string) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$push": bson.M{"triggers": bson.M{"$each": triggers}}})
	if err != nil {
		return fmt.Errorf("push triggers: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNoDocuments
	}
	return nil
}

func (r *bookRepository) Reviews(ctx context.Context, bookID primitive.ObjectID) ([]models.Review, error) {
	var book models.Book
	opts := options.FindOne().SetProjection(bson.M{"user_reviews": 1})
	err := r.coll.FindOne(ctx, bson.M{"_id": bookID}, opts).Decode(&book)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNoDocuments
	}
	if err != nil {
		return nil, fmt.Errorf("find reviews: %w", err)
	}
	return book.UserReviews, nil
}

func (r *bookRepository) ReviewsBy(ctx context.Context, username string) ([]AuthoredReview, error) {
	books, err := r.FindWithReviewsBy(ctx, []string{username})
	if err != nil {
		return nil, err
	}
	var authored []AuthoredReview
	for _, book := range books {
		for _, review := range book.UserReviews {
			if review.Username == username {
				authored = append(authored, AuthoredReview{BookID: book.ID, BookTitle: book.Title, Review: review})
			}
		}
	}
	return authored, nil
}

func (r *bookRepository) HasReviewBy(ctx context.Context, bookID primitive.ObjectID, username string) (bool, error) {
	count, err := r.coll.CountDocuments(ctx, bson.M{"_id": bookID, "user_reviews.username": username})
	if err != nil {
		return false, fmt.Errorf("count reviews by user: %w", err)
	}
	return count > 0, nil
}

func (r *bookRepository) PushReview(ctx context.Context, bookID primitive.ObjectID, review models.Review) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": bookID},
		bson.M{"$push": bson.M{"user_reviews": review}})
	if err != nil {
		return fmt.Errorf("push review: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNoDocuments
	}
	return nil
}

func (r *bookRepository) PullReview(ctx context.Context, bookID, reviewID primitive.ObjectID) (int64, error) {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": bookID},
		bson.M{"$pull": bson.M{"user_reviews": bson.M{"_id": reviewID}}})
	if err != nil {
		return 0, fmt.Errorf("pull review: %w", err)
	}
	return res.ModifiedCount, nil
}

func (r *bookRepository) FindReview(ctx context.Context, bookID, reviewID primitive.ObjectID) (*models.Review, error) {
	var book models.Book
	opts := options.FindOne().SetProjection(bson.M{"user_reviews.$": 1})
	err := r.coll.FindOne(ctx,
		bson.M{"_id": bookID, "user_reviews._id": reviewID}, opts).Decode(&book)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNoDocuments
	}
	if err != nil {
		return nil, fmt.Errorf("find review: %w", err)
	}
	if len(book.UserReviews) == 0 {
		return nil, ErrNoDocuments
	}
	return &book.UserReviews[0], nil
}

func (r *bookRepository) FindReviewAnyBook(ctx context.Context, reviewID primitive.ObjectID) (*AuthoredReview, error) {
	var book models.Book
	opts := options.FindOne().SetProjection(bson.M{"title": 1, "user_reviews.$": 1})
	err := r.coll.FindOne(ctx, bson.M{"user_reviews._id": reviewID}, opts).Decode(&book)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNoDocuments
	}
	if err != nil {
		return nil, fmt.Errorf("find review across books: %w", err)
	}
	if len(book.UserReviews) == 0 {
		return nil, ErrNoDocuments
	}
	return &AuthoredReview{BookID: book.ID, BookTitle: book.Title, Review: book.UserReviews[0]}, nil
}

// IncReviewCounter bumps the likes or dislikes counter on the matched review.
func (r *bookRepository) IncReviewCounter(ctx context.Context, bookID, reviewID primitive.ObjectID, field string) (bool, error) {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": bookID, "user_reviews._id": reviewID},
		bson.M{"$inc": bson.M{"user_reviews.$." + field: 1}})
	if err != nil {
		return false, fmt.Errorf("inc review %s: %w", field, err)
	}
	return res.MatchedCount > 0, nil
}

func (r *bookRepository) SetUserScore(ctx context.Context, bookID primitive.ObjectID, score float64) error {
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": bookID},
		bson.M{"$set": bson.M{"user_score": score}})
	if err != nil {
		return fmt.Errorf("set user_score: %w", err)
	}
	return nil
}

func (r *bookRepository) PushReviewReply(ctx context.Context, bookID, reviewID primitive.ObjectID, reply models.Reply) (bool, error) {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": bookID, "user_reviews._id": reviewID},
		bson.M{"$push": bson.M{"user_reviews.$.replies": reply}})
	if err != nil {
		return false, fmt.Errorf("push review reply: %w", err)
	}
	return res.MatchedCount > 0, nil
}

func (r *bookRepository) PullReviewReply(ctx context.Context, bookID, reviewID, replyID primitive.ObjectID) (int64, error) {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": bookID, "user_reviews._id": reviewID},
		bson.M{"$pull": bson.M{"user_reviews.$.replies": bson.M{"_id": replyID}}})
	if err != nil {
		return 0, fmt.Errorf("pull review reply: %w", err)
	}
	return res.ModifiedCount, nil
}

func (r *bookRepository) FindReviewReply(ctx context.Context, bookID, reviewID, replyID primitive.ObjectID) (*models.Reply, error) {
	review, err := r.FindReview(ctx, bookID, reviewID)
	if err != nil {
		return nil, err
	}
	for i := range review.Replies {
		if review.Replies[i].ID == replyID {
			return &review.Replies[i], nil
		}
	}
	return nil, ErrNoDocuments
}

// FindReviewReplyParent locates the review containing the given reply.
func (r *bookRepository) FindReviewReplyParent(ctx context.Context, bookID, replyID primitive.ObjectID) (*models.Review, error) {
	var book models.Book
	opts := options.FindOne().SetProjection(bson.M{"user_reviews.$": 1})
	err := r.coll.FindOne(ctx,
		bson.M{"_id": bookID, "user_reviews.replies._id": replyID}, opts).Decode(&book)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNoDocuments
	}
	if err != nil {
		return nil, fmt.Errorf("find reply parent: %w", err)
	}
	if len(book.UserReviews) == 0 {
		return nil, ErrNoDocuments
	}
	return &book.UserReviews[0], nil
}

func (r *bookRepository) IncReviewReplyCounter(ctx context.Context, bookID, reviewID, replyID primitive.ObjectID, field string) (bool, error) {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": bookID, "user_reviews._id": reviewID},
		bson.M{"$inc": bson.M{"user_reviews.$.replies.$[reply]." + field: 1}},
		options.Update().SetArrayFilters(options.ArrayFilters{
			Filters: []interface{}{bson.M{"reply._id": replyID}},
		}))
	if err != nil {
		return false, fmt.Errorf("inc reply %s: %w", field, err)
	}
	return res.MatchedCount > 0 && res.ModifiedCount > 0, nil
}

func (r *bookRepository) FindWithReviewsBy(ctx context.Context, usernames []string) ([]models.Book, error) {
	opts := options.Find().SetProjection(bson.M{"title": 1, "user_reviews": 1})
	cursor, err := r.coll.Find(ctx, bson.M{"user_reviews.username": bson.M{"$in": usernames}}, opts)
	if err != nil {
		return nil, fmt.Errorf("find books with reviews by users: %w", err)
	}
	var books []models.Book
	if err := cursor.All(ctx, &books); err != nil {
		return nil, fmt.Errorf("decode books: %w", err)
	}
	return books, nil
}

func (r *bookRepository) FindWithReviewRepliesBy(ctx context.Context, usernames []string) ([]models.Book, error) {
	opts := options.Find().SetProjection(bson.M{"title": 1, "user_reviews": 1})
	cursor, err := r.coll.Find(ctx, bson.M{"user_reviews.replies.username": bson.M{"$in": usernames}}, opts)
	if err != nil {
		return nil, fmt.Errorf("find books with replies by users: %w", err)
	}
	var books []models.Book
	if err := cursor.All(ctx, &books); err != nil {
		return nil, fmt.Errorf("decode books: %w", err)
	}
	return books, nil
}
