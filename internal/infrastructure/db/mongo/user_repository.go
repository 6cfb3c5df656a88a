package mongo

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ageplan/autenticacao/internal/core/domain"
	"github.com/ageplan/autenticacao/internal/core/ports"
)

const collectionUsers = "users"

type UserRepository struct {
	db  *mongo.Database
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{db: db, col: db.Collection(collectionUsers)}
}

// Create inserts a new user document with a freshly assigned numeric id. The
// user record and its embedded role set land in a single insert, so the
// write is atomic. A race lost against the unique indexes surfaces as the
// same duplicate error the service's pre-check raises.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	id, err := nextID(ctx, r.db, collectionUsers)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := time.Now().UTC()
	user.ID = id
	user.CreatedAt = now
	user.UpdatedAt = now

	if _, err := r.col.InsertOne(ctx, user); err != nil {
		return nil, translateDuplicate(err)
	}
	return user, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var user domain.User
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var user domain.User
	if err := r.col.FindOne(ctx, bson.M{"username": username}).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// FindAll returns one page of users. Pagination parameters are passed
// through to the driver; sort follows the "field,direction" convention.
func (r *UserRepository) FindAll(ctx context.Context, page ports.PageRequest) (*ports.UserPage, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if page.Size <= 0 {
		page.Size = 20
	}
	if page.Page < 0 {
		page.Page = 0
	}

	total, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, err
	}

	opts := options.Find().
		SetSkip(int64(page.Page) * int64(page.Size)).
		SetLimit(int64(page.Size)).
		SetSort(parseSort(page.Sort))

	cursor, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var items []domain.User
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}

	totalPages := int(total) / page.Size
	if int(total)%page.Size != 0 {
		totalPages++
	}

	return &ports.UserPage{
		Items:      items,
		Total:      total,
		Page:       page.Page,
		Size:       page.Size,
		TotalPages: totalPages,
	}, nil
}

// Update replaces the whole document, role set included, in one write.
func (r *UserRepository) Update(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	user.UpdatedAt = time.Now().UTC()

	result, err := r.col.ReplaceOne(ctx, bson.M{"_id": user.ID}, user)
	if err != nil {
		return nil, translateDuplicate(err)
	}
	if result.MatchedCount == 0 {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	result, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string, exclude int64) (bool, error) {
	return r.exists(ctx, "email", email, exclude)
}

func (r *UserRepository) ExistsByUsername(ctx context.Context, username string, exclude int64) (bool, error) {
	return r.exists(ctx, "username", username, exclude)
}

func (r *UserRepository) exists(ctx context.Context, field, value string, exclude int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{field: value}
	if exclude != 0 {
		filter["_id"] = bson.M{"$ne": exclude}
	}

	count, err := r.col.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// EnsureIndexes creates the unique indexes on username and email. Two
// concurrent registrations may both pass the service's existence checks;
// these indexes decide the race and the loser gets the duplicate error.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

// translateDuplicate maps a unique-index violation onto the field-specific
// duplicate error. The driver's error text names the violated index.
func translateDuplicate(err error) error {
	if err == nil || !mongo.IsDuplicateKeyError(err) {
		return err
	}
	if strings.Contains(err.Error(), "username") {
		return domain.ErrUsernameInUse
	}
	return domain.ErrEmailInUse
}

// parseSort converts a "field,direction" pass-through parameter into a
// driver sort document. Unknown input falls back to ascending id.
func parseSort(sort string) bson.D {
	if sort == "" {
		return bson.D{{Key: "_id", Value: 1}}
	}

	field := sort
	dir := 1
	if i := strings.IndexByte(sort, ','); i >= 0 {
		field = sort[:i]
		if strings.EqualFold(sort[i+1:], "desc") {
			dir = -1
		}
	}
	if field == "" || field == "id" {
		field = "_id"
	}
	return bson.D{{Key: field, Value: dir}}
}
