package users

import (
	"context"
	"errors"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/samber/oops"

	"github.com/edu2job/edu2job-server/internal/models"
)

// UsersCollection is the Firestore collection holding user documents.
const UsersCollection = "users"

// firestoreUser is the stored document shape. Field names match documents
// written by earlier deployments of the app.
type firestoreUser struct {
	Name           string    `firestore:"name"`
	Email          string    `firestore:"email"`
	HashedPassword string    `firestore:"hashedPassword"`
	College        string    `firestore:"college"`
	Gender         string    `firestore:"gender"`
	Degree         string    `firestore:"degree"`
	CreatedAt      time.Time `firestore:"createdAt"`
}

// FirestoreRepository implements Repository on a Firestore collection.
type FirestoreRepository struct {
	client *firestore.Client
}

// NewFirestoreRepository wraps an existing client.
func NewFirestoreRepository(client *firestore.Client) *FirestoreRepository {
	return &FirestoreRepository{client: client}
}

func (r *FirestoreRepository) byEmail(email string) firestore.Query {
	return r.client.Collection(UsersCollection).Where("email", "==", email).Limit(1)
}

// FindByEmail queries the collection by the email field.
func (r *FirestoreRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	docs, err := r.byEmail(email).Documents(ctx).GetAll()
	if err != nil {
		return models.User{}, oops.Code("USER_LOOKUP_FAILED").
			With("email", email).
			Wrap(err)
	}
	if len(docs) == 0 {
		return models.User{}, ErrNotFound
	}

	var doc firestoreUser
	if err := docs[0].DataTo(&doc); err != nil {
		return models.User{}, oops.Code("USER_LOOKUP_FAILED").
			With("operation", "decode user document").
			With("email", email).
			Wrap(err)
	}
	return models.User{
		ID:           docs[0].Ref.ID,
		Name:         doc.Name,
		Email:        doc.Email,
		PasswordHash: doc.HashedPassword,
		College:      doc.College,
		Gender:       doc.Gender,
		Degree:       doc.Degree,
		CreatedAt:    doc.CreatedAt,
	}, nil
}

// Insert runs the email check and the create in one transaction, so two
// concurrent registrations for the same email cannot both succeed.
func (r *FirestoreRepository) Insert(ctx context.Context, user models.User) error {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	ref := r.client.Collection(UsersCollection).Doc(user.ID)

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		existing, err := tx.Documents(r.byEmail(user.Email)).GetAll()
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			return ErrEmailTaken
		}
		return tx.Create(ref, firestoreUser{
			Name:           user.Name,
			Email:          user.Email,
			HashedPassword: user.PasswordHash,
			College:        user.College,
			Gender:         user.Gender,
			Degree:         user.Degree,
			CreatedAt:      user.CreatedAt,
		})
	})
	if errors.Is(err, ErrEmailTaken) {
		return ErrEmailTaken
	}
	if err != nil {
		return oops.Code("USER_INSERT_FAILED").
			With("operation", "insert user").
			With("email", user.Email).
			Wrap(err)
	}
	return nil
}

var _ Repository = (*FirestoreRepository)(nil)
