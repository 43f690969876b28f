package profile

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/janisto/devconnector-api/internal/platform/logging"
)

type mongoProfile struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	User           string             `bson:"user"`
	Status         string             `bson:"status,omitempty"`
	Company        string             `bson:"company,omitempty"`
	Website        string             `bson:"website,omitempty"`
	Location       string             `bson:"location,omitempty"`
	Bio            string             `bson:"bio,omitempty"`
	GitHubUsername string             `bson:"githubusername,omitempty"`
	Skills         []string           `bson:"skills,omitempty"`
	Social         map[string]string  `bson:"social,omitempty"`
	CreatedAt      time.Time          `bson:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at"`
	Owner          []mongoUser        `bson:"owner,omitempty"`
}

type mongoUser struct {
	ID     string `bson:"_id"`
	Name   string `bson:"name,omitempty"`
	Avatar string `bson:"avatar,omitempty"`
}

func (mp mongoProfile) toProfile() Profile {
	p := Profile{
		ID:             mp.ID.Hex(),
		User:           User{ID: mp.User},
		Status:         mp.Status,
		Company:        mp.Company,
		Website:        mp.Website,
		Location:       mp.Location,
		Bio:            mp.Bio,
		GitHubUsername: mp.GitHubUsername,
		Skills:         mp.Skills,
		Social:         mp.Social,
		CreatedAt:      mp.CreatedAt.UTC(),
		UpdatedAt:      mp.UpdatedAt.UTC(),
	}
	if p.Social == nil {
		p.Social = map[string]string{}
	}
	if len(mp.Owner) > 0 {
		p.User.Name = mp.Owner[0].Name
		p.User.Avatar = mp.Owner[0].Avatar
	}
	return p
}

// MongoStore implements Service on MongoDB. A unique index on "user"
// backs the one-profile-per-user rule; see EnsureIndexes.
type MongoStore struct {
	profiles *mongo.Collection
	users    *mongo.Collection
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{
		profiles: db.Collection(profilesCollection),
		users:    db.Collection(usersCollection),
	}
}

// EnsureIndexes creates the unique owner index. Safe to call on every start.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.profiles.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("user_unique"),
	})
	return err
}

// withOwner is the aggregation stage that joins name and avatar from users.
var withOwner = bson.D{{Key: "$lookup", Value: bson.D{
	{Key: "from", Value: usersCollection},
	{Key: "localField", Value: "user"},
	{Key: "foreignField", Value: "_id"},
	{Key: "as", Value: "owner"},
}}}

func (s *MongoStore) Get(ctx context.Context, userID string) (*Profile, error) {
	if err := validateUserID(userID); err != nil {
		return nil, err
	}
	found, err := s.aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "user", Value: userID}}}},
		{{Key: "$limit", Value: 1}},
		withOwner,
	})
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, ErrNotFound
	}
	return &found[0], nil
}

func (s *MongoStore) List(ctx context.Context) ([]Profile, error) {
	return s.aggregate(ctx, mongo.Pipeline{withOwner})
}

func (s *MongoStore) aggregate(ctx context.Context, pipeline mongo.Pipeline) ([]Profile, error) {
	cur, err := s.profiles.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	var docs []mongoProfile
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]Profile, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toProfile())
	}
	return out, nil
}

// Upsert applies u with a single FindOneAndUpdate(upsert=true) keyed on the
// owner. Two first-time writers racing on the unique index make one of them
// fail with a duplicate key; that writer retries once and takes the update path.
func (s *MongoStore) Upsert(ctx context.Context, u Update) (*Profile, error) {
	userID := u.User.ID
	if err := validateUserID(userID); err != nil {
		return nil, err
	}

	p, err := s.upsertOnce(ctx, u)
	if mongo.IsDuplicateKeyError(err) {
		p, err = s.upsertOnce(ctx, u)
	}
	var owner User
	if err == nil {
		owner, err = s.saveOwner(ctx, u.User)
	}
	if err != nil {
		logging.LogAudit(ctx, logging.AuditEvent{
			Action:       "upsert",
			UserID:       userID,
			ResourceType: "profile",
			ResourceID:   userID,
			Result:       logging.AuditFailure,
			Details:      map[string]any{"error": KindOf(err).String()},
		})
		return nil, err
	}

	action := "update"
	if p.CreatedAt.Equal(p.UpdatedAt) {
		action = "create"
	}
	logging.LogAudit(ctx, logging.AuditEvent{
		Action:       action,
		UserID:       userID,
		ResourceType: "profile",
		ResourceID:   p.ID,
		Result:       logging.AuditSuccess,
	})
	p.User = owner
	return p, nil
}

func (s *MongoStore) upsertOnce(ctx context.Context, u Update) (*Profile, error) {
	// Mongo stores BSON dates at millisecond precision.
	now := time.Now().UTC().Truncate(time.Millisecond)
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var doc mongoProfile
	err := s.profiles.FindOneAndUpdate(ctx,
		bson.D{{Key: "user", Value: u.User.ID}},
		bson.D{
			{Key: "$set", Value: setFields(u, now)},
			{Key: "$setOnInsert", Value: insertFields(u, now)},
		},
		opts,
	).Decode(&doc)
	if err != nil {
		return nil, err
	}
	p := doc.toProfile()
	return &p, nil
}

// insertFields are written only when the upsert creates the document. An
// empty social map is stored up front unless $set already writes social keys.
func insertFields(u Update, now time.Time) bson.M {
	insert := bson.M{"created_at": now}
	if len(u.Social) == 0 {
		insert["social"] = bson.M{}
	}
	return insert
}

// setFields lists the fields present in u. Social links are set per key so
// links absent from u survive.
func setFields(u Update, now time.Time) bson.M {
	set := bson.M{"updated_at": now}
	for name, value := range u.Scalars {
		set[name] = value
	}
	if u.Skills != nil {
		set[FieldSkills] = u.Skills
	}
	for platform, link := range u.Social {
		set["social."+platform] = link
	}
	return set
}

// saveOwner merges the caller's name and avatar into users and returns the
// resulting owner record.
func (s *MongoStore) saveOwner(ctx context.Context, caller User) (User, error) {
	filter := bson.D{{Key: "_id", Value: caller.ID}}
	var stored mongoUser

	fields := ownerFields(caller)
	if len(fields) == 0 {
		err := s.users.FindOne(ctx, filter).Decode(&stored)
		if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
			return User{}, err
		}
		return mergeOwner(User{Name: stored.Name, Avatar: stored.Avatar}, caller), nil
	}

	err := s.users.FindOneAndUpdate(ctx, filter,
		bson.D{{Key: "$set", Value: fields}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&stored)
	if err != nil {
		return User{}, err
	}
	return User{ID: caller.ID, Name: stored.Name, Avatar: stored.Avatar}, nil
}

var _ Service = (*MongoStore)(nil)
