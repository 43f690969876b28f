package profile

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/janisto/devconnector-api/internal/platform/logging"
)

const (
	profilesCollection = "profiles"
	usersCollection    = "users"
)

// firestoreProfile maps to the profile document. The document ID is the user ID.
type firestoreProfile struct {
	User           string            `firestore:"user"`
	Status         string            `firestore:"status"`
	Company        string            `firestore:"company"`
	Website        string            `firestore:"website"`
	Location       string            `firestore:"location"`
	Bio            string            `firestore:"bio"`
	GitHubUsername string            `firestore:"githubusername"`
	Skills         []string          `firestore:"skills"`
	Social         map[string]string `firestore:"social"`
	CreatedAt      time.Time         `firestore:"created_at"`
	UpdatedAt      time.Time         `firestore:"updated_at"`
}

func (fp firestoreProfile) toProfile(id string) *Profile {
	return &Profile{
		ID:             id,
		User:           User{ID: fp.User},
		Status:         fp.Status,
		Company:        fp.Company,
		Website:        fp.Website,
		Location:       fp.Location,
		Bio:            fp.Bio,
		GitHubUsername: fp.GitHubUsername,
		Skills:         fp.Skills,
		Social:         fp.Social,
		CreatedAt:      fp.CreatedAt,
		UpdatedAt:      fp.UpdatedAt,
	}
}

type firestoreUser struct {
	Name   string `firestore:"name"`
	Avatar string `firestore:"avatar"`
}

// FirestoreStore implements Service on Firestore. Profiles are keyed by user
// ID, so one profile per user holds structurally.
type FirestoreStore struct {
	client *firestore.Client
}

func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

func (s *FirestoreStore) profiles() *firestore.CollectionRef {
	return s.client.Collection(profilesCollection)
}

func (s *FirestoreStore) users() *firestore.CollectionRef {
	return s.client.Collection(usersCollection)
}

// Get returns the profile owned by userID joined with the owner's name and avatar.
func (s *FirestoreStore) Get(ctx context.Context, userID string) (*Profile, error) {
	if err := validateUserID(userID); err != nil {
		return nil, err
	}
	docs, err := s.client.GetAll(ctx, []*firestore.DocumentRef{
		s.profiles().Doc(userID),
		s.users().Doc(userID),
	})
	if err != nil {
		return nil, readError(err)
	}
	if !docs[0].Exists() {
		return nil, ErrNotFound
	}

	var fp firestoreProfile
	if err := docs[0].DataTo(&fp); err != nil {
		return nil, err
	}
	p := fp.toProfile(userID)
	if err := joinUser(p, docs[1]); err != nil {
		return nil, err
	}
	return p, nil
}

// readError reports document keys Firestore refuses as ErrInvalidID.
func readError(err error) error {
	if status.Code(err) == codes.InvalidArgument {
		return ErrInvalidID
	}
	return err
}

// List returns every profile in natural store order, each joined with its owner.
func (s *FirestoreStore) List(ctx context.Context) ([]Profile, error) {
	docs, err := s.profiles().Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return []Profile{}, nil
	}

	out := make([]Profile, 0, len(docs))
	userRefs := make([]*firestore.DocumentRef, 0, len(docs))
	for _, doc := range docs {
		var fp firestoreProfile
		if err := doc.DataTo(&fp); err != nil {
			return nil, err
		}
		p := fp.toProfile(doc.Ref.ID)
		out = append(out, *p)
		userRefs = append(userRefs, s.users().Doc(p.User.ID))
	}

	users, err := s.client.GetAll(ctx, userRefs)
	if err != nil {
		return nil, err
	}
	for i := range out {
		if err := joinUser(&out[i], users[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Upsert creates the caller's profile or updates the fields present in u,
// reading and writing inside one transaction.
func (s *FirestoreStore) Upsert(ctx context.Context, u Update) (*Profile, error) {
	userID := u.User.ID
	if err := validateUserID(userID); err != nil {
		return nil, err
	}
	profileRef := s.profiles().Doc(userID)
	userRef := s.users().Doc(userID)

	var (
		result *Profile
		action string
	)
	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		now := time.Now().UTC()
		current := &Profile{ID: userID, User: User{ID: userID}}

		// Firestore transactions require every read before the first write.
		docs, err := tx.GetAll([]*firestore.DocumentRef{profileRef, userRef})
		if err != nil {
			return err
		}
		if err := joinUser(current, docs[1]); err != nil {
			return err
		}

		if docs[0].Exists() {
			var fp firestoreProfile
			if err := docs[0].DataTo(&fp); err != nil {
				return err
			}
			stored := fp.toProfile(userID)
			stored.User = current.User
			current = stored
			action = "update"
			if err := tx.Update(profileRef, fieldUpdates(u, now)); err != nil {
				return err
			}
		} else {
			current.CreatedAt = now
			action = "create"
			if err := tx.Set(profileRef, createDocument(u, now)); err != nil {
				return err
			}
		}

		if owner := ownerFields(u.User); len(owner) > 0 {
			if err := tx.Set(userRef, owner, firestore.MergeAll); err != nil {
				return err
			}
		}

		u.apply(current)
		current.User = mergeOwner(current.User, u.User)
		current.UpdatedAt = now
		result = current
		return nil
	})
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

	logging.LogAudit(ctx, logging.AuditEvent{
		Action:       action,
		UserID:       userID,
		ResourceType: "profile",
		ResourceID:   userID,
		Result:       logging.AuditSuccess,
	})
	return result, nil
}

// createDocument builds the initial document. Absent fields are not written.
func createDocument(u Update, now time.Time) map[string]any {
	doc := map[string]any{
		"user":       u.User.ID,
		"social":     u.Social,
		"created_at": now,
		"updated_at": now,
	}
	for name, value := range u.Scalars {
		doc[name] = value
	}
	if u.Skills != nil {
		doc[FieldSkills] = u.Skills
	}
	return doc
}

// fieldUpdates writes only the fields present in u. Social links merge per key.
func fieldUpdates(u Update, now time.Time) []firestore.Update {
	updates := []firestore.Update{{Path: "updated_at", Value: now}}
	for name, value := range u.Scalars {
		updates = append(updates, firestore.Update{Path: name, Value: value})
	}
	if u.Skills != nil {
		updates = append(updates, firestore.Update{Path: FieldSkills, Value: u.Skills})
	}
	for platform, link := range u.Social {
		updates = append(updates, firestore.Update{FieldPath: firestore.FieldPath{"social", platform}, Value: link})
	}
	return updates
}

func ownerFields(owner User) map[string]any {
	fields := make(map[string]any, 2)
	if owner.Name != "" {
		fields["name"] = owner.Name
	}
	if owner.Avatar != "" {
		fields["avatar"] = owner.Avatar
	}
	return fields
}

// joinUser copies the owner's name and avatar onto p. A missing user document is not an error.
func joinUser(p *Profile, doc *firestore.DocumentSnapshot) error {
	if doc == nil || !doc.Exists() {
		return nil
	}
	var fu firestoreUser
	if err := doc.DataTo(&fu); err != nil {
		return err
	}
	p.User.Name = fu.Name
	p.User.Avatar = fu.Avatar
	return nil
}

var _ Service = (*FirestoreStore)(nil)
