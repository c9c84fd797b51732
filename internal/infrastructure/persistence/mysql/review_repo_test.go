package mysql

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookshop/internal/domain/review"
)

func TestReviewRepository_CreateDuplicate(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReviewRepository(db)
	ctx := context.Background()

	c := seedCustomer(t, db, "alice@example.com")
	b := seedBook(t, db, "9780747532743", "Harry Potter and the Philosopher's Stone", 1999, 10)

	require.NoError(t, repo.Create(ctx, review.NewReview(b.ID, c.ID, 5, "great")))

	// 同一客户对同一本书只能评价一次
	err := repo.Create(ctx, review.NewReview(b.ID, c.ID, 3, "changed my mind"))
	assert.ErrorIs(t, err, review.ErrDuplicateReview)

	// 另一客户可以评价同一本书
	other := seedCustomer(t, db, "bob@example.com")
	assert.NoError(t, repo.Create(ctx, review.NewReview(b.ID, other.ID, 4, "nice")))
}

func TestReviewRepository_ListByBookID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReviewRepository(db)
	ctx := context.Background()

	alice := seedCustomer(t, db, "alice@example.com")
	bob := seedCustomer(t, db, "bob@example.com")
	b1 := seedBook(t, db, "9780747532743", "Harry Potter and the Philosopher's Stone", 1999, 10)
	b2 := seedBook(t, db, "9780545139700", "Harry Potter and the Deathly Hallows", 2499, 5)

	require.NoError(t, repo.Create(ctx, review.NewReview(b1.ID, alice.ID, 5, "loved it")))
	require.NoError(t, repo.Create(ctx, review.NewReview(b1.ID, bob.ID, 4, "solid")))
	require.NoError(t, repo.Create(ctx, review.NewReview(b2.ID, alice.ID, 3, "okay")))

	reviews, err := repo.ListByBookID(ctx, b1.ID)
	require.NoError(t, err)
	assert.Len(t, reviews, 2)

	reviews, err = repo.ListByBookID(ctx, b2.ID)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, 3, reviews[0].Rating)
}

func TestReviewRepository_DeleteByBookAndCustomer(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReviewRepository(db)
	ctx := context.Background()

	alice := seedCustomer(t, db, "alice@example.com")
	bob := seedCustomer(t, db, "bob@example.com")
	b1 := seedBook(t, db, "9780747532743", "Harry Potter and the Philosopher's Stone", 1999, 10)
	b2 := seedBook(t, db, "9780545139700", "Harry Potter and the Deathly Hallows", 2499, 5)

	require.NoError(t, repo.Create(ctx, review.NewReview(b1.ID, alice.ID, 5, "")))
	require.NoError(t, repo.Create(ctx, review.NewReview(b1.ID, bob.ID, 4, "")))
	require.NoError(t, repo.Create(ctx, review.NewReview(b2.ID, alice.ID, 3, "")))

	require.NoError(t, repo.DeleteByBookID(ctx, b1.ID))
	var count int64
	require.NoError(t, db.Model(&ReviewModel{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	require.NoError(t, repo.DeleteByCustomerID(ctx, alice.ID))
	require.NoError(t, db.Model(&ReviewModel{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}
