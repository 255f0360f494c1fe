// Package storagetest holds the behavioral contract every storage.Storage
// backend must satisfy. Backends call Run from their own tests.
package storagetest

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-content-studio/internal/models"
	"github.com/sbilibin2017/gw-content-studio/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Run executes the contract against s. Every subtest works on fresh user ids,
// so a single shared backend instance is enough.
func Run(t *testing.T, s storage.Storage) {
	t.Helper()

	t.Run("Users", func(t *testing.T) { testUsers(t, s) })
	t.Run("Profiles", func(t *testing.T) { testProfiles(t, s) })
	t.Run("Contents", func(t *testing.T) { testContents(t, s) })
	t.Run("Ledger", func(t *testing.T) { testLedger(t, s) })
	t.Run("WithinTx", func(t *testing.T) { testWithinTx(t, s) })
	t.Run("Scenario", func(t *testing.T) { testScenario(t, s) })
}

func newUser(t *testing.T, s storage.Storage) *models.User {
	t.Helper()
	id := uuid.NewString()
	u, err := s.FindOrCreateUser(context.Background(), id, id+"@example.com")
	require.NoError(t, err)
	return u
}

func ptr(s string) *string { return &s }

func testUsers(t *testing.T, s storage.Storage) {
	ctx := context.Background()

	t.Run("find or create is idempotent", func(t *testing.T) {
		id := uuid.NewString()
		email := id + "@example.com"

		first, err := s.FindOrCreateUser(ctx, id, email)
		require.NoError(t, err)
		second, err := s.FindOrCreateUser(ctx, id, email)
		require.NoError(t, err)

		assert.Equal(t, id, first.ID)
		assert.Equal(t, id, second.ID)
		assert.Equal(t, first.CreatedAt.Unix(), second.CreatedAt.Unix())

		byEmail, err := s.GetUserByEmail(ctx, email)
		require.NoError(t, err)
		assert.Equal(t, id, byEmail.ID)
	})

	t.Run("email match with another id returns the stored user", func(t *testing.T) {
		u := newUser(t, s)

		got, err := s.FindOrCreateUser(ctx, uuid.NewString(), u.Email)
		require.NoError(t, err)
		assert.Equal(t, u.ID, got.ID)
		assert.Equal(t, u.Email, got.Email)
	})

	t.Run("create rejects duplicates", func(t *testing.T) {
		u := newUser(t, s)

		_, err := s.CreateUser(ctx, u.ID, uuid.NewString()+"@example.com")
		assert.ErrorIs(t, err, storage.ErrDuplicateKey)

		_, err = s.CreateUser(ctx, uuid.NewString(), u.Email)
		assert.ErrorIs(t, err, storage.ErrDuplicateKey)
	})

	t.Run("users need an id and an email", func(t *testing.T) {
		first := newUser(t, s)

		for _, tc := range []struct{ id, email string }{
			{"", uuid.NewString() + "@example.com"},
			{uuid.NewString(), ""},
			{"", first.Email},
		} {
			_, err := s.FindOrCreateUser(ctx, tc.id, tc.email)
			assert.ErrorIs(t, err, storage.ErrValidation)

			_, err = s.CreateUser(ctx, tc.id, tc.email)
			assert.ErrorIs(t, err, storage.ErrValidation)
		}

		_, err := s.GetUserByEmail(ctx, "")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("lookups of unknown users", func(t *testing.T) {
		_, err := s.GetUserByID(ctx, uuid.NewString())
		assert.ErrorIs(t, err, storage.ErrNotFound)

		_, err = s.GetUserByEmail(ctx, uuid.NewString()+"@example.com")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func testProfiles(t *testing.T, s storage.Storage) {
	ctx := context.Background()
	fields := models.ProfileFields{
		BusinessType:  "ecommerce",
		TargetPersona: "young adults",
		Channels:      []string{"instagram", "blog"},
	}

	t.Run("upsert is idempotent", func(t *testing.T) {
		u := newUser(t, s)

		first, err := s.UpsertProfile(ctx, u.ID, u.Email, fields)
		require.NoError(t, err)
		second, err := s.UpsertProfile(ctx, u.ID, u.Email, fields)
		require.NoError(t, err)

		assert.Equal(t, first.ID, second.ID)
		for _, p := range []*models.Profile{first, second} {
			assert.Equal(t, fields.BusinessType, p.BusinessType)
			assert.Equal(t, fields.TargetPersona, p.TargetPersona)
			assert.Equal(t, models.Channels(fields.Channels), p.Channels)
		}
	})

	t.Run("upsert replaces fields and keeps identity", func(t *testing.T) {
		u := newUser(t, s)

		created, err := s.UpsertProfile(ctx, u.ID, u.Email, fields)
		require.NoError(t, err)

		replaced, err := s.UpsertProfile(ctx, u.ID, "other@example.com", models.ProfileFields{
			Name:          ptr("Shop"),
			BusinessType:  "coaching",
			TargetPersona: "founders",
			Channels:      []string{"linkedin"},
		})
		require.NoError(t, err)

		assert.Equal(t, created.ID, replaced.ID)
		assert.Equal(t, u.Email, replaced.Email)
		assert.Equal(t, created.CreatedAt.Unix(), replaced.CreatedAt.Unix())
		assert.Equal(t, "coaching", replaced.BusinessType)
		assert.Equal(t, models.Channels{"linkedin"}, replaced.Channels)
		require.NotNil(t, replaced.Name)
		assert.Equal(t, "Shop", *replaced.Name)
	})

	t.Run("upsert validates onboarding fields", func(t *testing.T) {
		u := newUser(t, s)

		_, err := s.UpsertProfile(ctx, u.ID, u.Email, models.ProfileFields{BusinessType: "x", TargetPersona: "y"})
		assert.ErrorIs(t, err, storage.ErrValidation)

		_, err = s.GetProfile(ctx, u.ID)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("update without profile", func(t *testing.T) {
		u := newUser(t, s)

		_, err := s.UpdateProfile(ctx, u.ID, models.ProfileUpdate{BusinessType: ptr("x")})
		assert.ErrorIs(t, err, storage.ErrNotFound)

		_, err = s.GetProfile(ctx, u.ID)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("update changes only supplied fields", func(t *testing.T) {
		u := newUser(t, s)
		_, err := s.UpsertProfile(ctx, u.ID, u.Email, fields)
		require.NoError(t, err)

		updated, err := s.UpdateProfile(ctx, u.ID, models.ProfileUpdate{TargetPersona: ptr("retirees")})
		require.NoError(t, err)
		assert.Equal(t, "retirees", updated.TargetPersona)
		assert.Equal(t, fields.BusinessType, updated.BusinessType)
		assert.Equal(t, models.Channels(fields.Channels), updated.Channels)
		assert.Nil(t, updated.Name)

		updated, err = s.UpdateProfile(ctx, u.ID, models.ProfileUpdate{Channels: []string{"email"}, Name: ptr("Acme")})
		require.NoError(t, err)
		assert.Equal(t, "retirees", updated.TargetPersona)
		assert.Equal(t, models.Channels{"email"}, updated.Channels)
		require.NotNil(t, updated.Name)
		assert.Equal(t, "Acme", *updated.Name)

		stored, err := s.GetProfile(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, updated.Channels, stored.Channels)
	})
}

func testContents(t *testing.T, s storage.Storage) {
	ctx := context.Background()

	t.Run("create fills defaults", func(t *testing.T) {
		u := newUser(t, s)

		c, err := s.CreateContent(ctx, models.NewContent{UserID: u.ID, Type: models.InstagramPost, Body: "hello", Title: ptr("Hi")})
		require.NoError(t, err)
		assert.NotEmpty(t, c.ID)
		assert.Equal(t, models.StatusActive, c.Status)
		assert.False(t, c.CreatedAt.IsZero())

		got, err := s.GetContent(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, c.ID, got.ID)
		assert.Equal(t, "hello", got.Body)
		require.NotNil(t, got.Title)
		assert.Equal(t, "Hi", *got.Title)
		assert.Nil(t, got.Tone)
	})

	t.Run("create rejects invalid input and persists nothing", func(t *testing.T) {
		u := newUser(t, s)

		_, err := s.CreateContent(ctx, models.NewContent{UserID: u.ID, Type: models.InstagramPost, Body: ""})
		assert.ErrorIs(t, err, storage.ErrValidation)
		_, err = s.CreateContent(ctx, models.NewContent{UserID: u.ID, Type: "PODCAST", Body: "x"})
		assert.ErrorIs(t, err, storage.ErrValidation)

		n, err := s.CountContentByUser(ctx, u.ID)
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("list is newest first", func(t *testing.T) {
		u := newUser(t, s)

		var ids []string
		for _, body := range []string{"first", "second", "third"} {
			c, err := s.CreateContent(ctx, models.NewContent{UserID: u.ID, Type: models.BlogArticle, Body: body})
			require.NoError(t, err)
			ids = append(ids, c.ID)
		}

		list, err := s.ListContentByUser(ctx, u.ID, "")
		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.Equal(t, []string{ids[2], ids[1], ids[0]}, []string{list[0].ID, list[1].ID, list[2].ID})
		assert.False(t, list[0].CreatedAt.Before(list[1].CreatedAt))
		assert.False(t, list[1].CreatedAt.Before(list[2].CreatedAt))
	})

	t.Run("list filters by type and owner", func(t *testing.T) {
		u := newUser(t, s)
		other := newUser(t, s)

		for _, ct := range []models.ContentType{models.InstagramPost, models.FacebookAd, models.InstagramPost} {
			_, err := s.CreateContent(ctx, models.NewContent{UserID: u.ID, Type: ct, Body: "x"})
			require.NoError(t, err)
		}
		_, err := s.CreateContent(ctx, models.NewContent{UserID: other.ID, Type: models.InstagramPost, Body: "x"})
		require.NoError(t, err)

		posts, err := s.ListContentByUser(ctx, u.ID, models.InstagramPost)
		require.NoError(t, err)
		assert.Len(t, posts, 2)
		for _, c := range posts {
			assert.Equal(t, models.InstagramPost, c.Type)
			assert.Equal(t, u.ID, c.UserID)
		}

		all, err := s.ListContentByUser(ctx, u.ID, "")
		require.NoError(t, err)
		assert.Len(t, all, 3)

		n, err := s.CountContentByUser(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(3), n)

		dist, err := s.ContentTypeDistribution(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, map[models.ContentType]int64{models.InstagramPost: 2, models.FacebookAd: 1}, dist)
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		u := newUser(t, s)
		c, err := s.CreateContent(ctx, models.NewContent{UserID: u.ID, Type: models.EmailCopy, Body: "x"})
		require.NoError(t, err)

		require.NoError(t, s.DeleteContent(ctx, uuid.NewString()))
		n, err := s.CountContentByUser(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		require.NoError(t, s.DeleteContent(ctx, c.ID))
		require.NoError(t, s.DeleteContent(ctx, c.ID))

		_, err = s.GetContent(ctx, c.ID)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("status is the only mutable field", func(t *testing.T) {
		u := newUser(t, s)
		c, err := s.CreateContent(ctx, models.NewContent{UserID: u.ID, Type: models.CTACopy, Body: "buy now"})
		require.NoError(t, err)

		archived, err := s.UpdateContentStatus(ctx, c.ID, models.StatusArchived)
		require.NoError(t, err)
		assert.Equal(t, models.StatusArchived, archived.Status)
		assert.Equal(t, "buy now", archived.Body)

		_, err = s.UpdateContentStatus(ctx, c.ID, "deleted")
		assert.ErrorIs(t, err, storage.ErrValidation)

		_, err = s.UpdateContentStatus(ctx, uuid.NewString(), models.StatusActive)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func testLedger(t *testing.T, s storage.Storage) {
	ctx := context.Background()

	t.Run("balance is the sum of transactions", func(t *testing.T) {
		u := newUser(t, s)

		_, found, err := s.GetBalance(ctx, u.ID)
		require.NoError(t, err)
		assert.False(t, found)

		bal, err := s.ApplyTransaction(ctx, u.ID, 10, models.SourceGrant)
		require.NoError(t, err)
		assert.Equal(t, int64(10), bal)
		for i := 0; i < 3; i++ {
			_, err = s.ApplyTransaction(ctx, u.ID, -1, models.SourceGeneration)
			require.NoError(t, err)
		}
		bal, err = s.ApplyTransaction(ctx, u.ID, 5, models.SourcePurchase)
		require.NoError(t, err)
		assert.Equal(t, int64(12), bal)

		got, found, err := s.GetBalance(ctx, u.ID)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, int64(12), got)

		txs, err := s.ListTransactions(ctx, u.ID)
		require.NoError(t, err)
		require.Len(t, txs, 5)
		var sum int64
		for _, tx := range txs {
			sum += tx.Amount
		}
		assert.Equal(t, got, sum)
		assert.Equal(t, int64(5), txs[0].Amount)
		require.NotNil(t, txs[0].Source)
		assert.Equal(t, models.SourcePurchase, *txs[0].Source)
	})

	t.Run("explicit zero differs from absent", func(t *testing.T) {
		u := newUser(t, s)

		_, err := s.ApplyTransaction(ctx, u.ID, 3, models.SourceGrant)
		require.NoError(t, err)
		bal, err := s.ApplyTransaction(ctx, u.ID, -3, models.SourceGeneration)
		require.NoError(t, err)
		assert.Zero(t, bal)

		got, found, err := s.GetBalance(ctx, u.ID)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Zero(t, got)
	})

	t.Run("negative balances and zero amounts are stored", func(t *testing.T) {
		u := newUser(t, s)

		bal, err := s.ApplyTransaction(ctx, u.ID, -2, "")
		require.NoError(t, err)
		assert.Equal(t, int64(-2), bal)
		bal, err = s.ApplyTransaction(ctx, u.ID, 0, models.SourceAdmin)
		require.NoError(t, err)
		assert.Equal(t, int64(-2), bal)

		txs, err := s.ListTransactions(ctx, u.ID)
		require.NoError(t, err)
		require.Len(t, txs, 2)
		assert.Nil(t, txs[1].Source)
	})
}

func testWithinTx(t *testing.T, s storage.Storage) {
	ctx := context.Background()
	boom := errors.New("boom")

	t.Run("rollback discards every write", func(t *testing.T) {
		u := newUser(t, s)
		_, err := s.ApplyTransaction(ctx, u.ID, 5, models.SourceGrant)
		require.NoError(t, err)

		err = s.WithinTx(ctx, func(ctx context.Context) error {
			if _, err := s.CreateContent(ctx, models.NewContent{UserID: u.ID, Type: models.InstagramPost, Body: "x"}); err != nil {
				return err
			}
			if _, err := s.ApplyTransaction(ctx, u.ID, -1, models.SourceGeneration); err != nil {
				return err
			}
			return boom
		})
		assert.ErrorIs(t, err, boom)

		n, err := s.CountContentByUser(ctx, u.ID)
		require.NoError(t, err)
		assert.Zero(t, n)
		bal, _, err := s.GetBalance(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(5), bal)
	})

	t.Run("commit keeps every write", func(t *testing.T) {
		u := newUser(t, s)

		var newBalance int64
		err := s.WithinTx(ctx, func(ctx context.Context) error {
			if _, err := s.CreateContent(ctx, models.NewContent{UserID: u.ID, Type: models.InstagramPost, Body: "x"}); err != nil {
				return err
			}
			var err error
			newBalance, err = s.ApplyTransaction(ctx, u.ID, 7, models.SourceGrant)
			return err
		})
		require.NoError(t, err)
		assert.Equal(t, int64(7), newBalance)

		n, err := s.CountContentByUser(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
	})
}

func testScenario(t *testing.T, s storage.Storage) {
	ctx := context.Background()
	id := "u1-" + uuid.NewString()
	email := id + "@x.com"

	u, err := s.FindOrCreateUser(ctx, id, email)
	require.NoError(t, err)
	assert.Equal(t, id, u.ID)

	p, err := s.UpsertProfile(ctx, id, email, models.ProfileFields{
		BusinessType:  "ecommerce",
		TargetPersona: "young adults",
		Channels:      []string{"instagram"},
	})
	require.NoError(t, err)
	assert.Equal(t, id, p.UserID)

	bal, err := s.ApplyTransaction(ctx, id, 5, models.SourceGrant)
	require.NoError(t, err)
	assert.Equal(t, int64(5), bal)

	c, err := s.CreateContent(ctx, models.NewContent{UserID: id, Type: models.InstagramPost, Body: "hello world"})
	require.NoError(t, err)

	bal, err = s.ApplyTransaction(ctx, id, -1, models.SourceGeneration)
	require.NoError(t, err)
	assert.Equal(t, int64(4), bal)

	list, err := s.ListContentByUser(ctx, id, "")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, c.ID, list[0].ID)
}
