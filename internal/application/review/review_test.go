package review

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/xiebiao/bookshop/internal/domain/catalog"
	"github.com/xiebiao/bookshop/internal/domain/customer"
	"github.com/xiebiao/bookshop/internal/domain/review"
	"github.com/xiebiao/bookshop/internal/infrastructure/persistence/mysql"
)

func setupRepos(t *testing.T) (review.Repository, catalog.BookRepository, customer.Repository) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, mysql.AutoMigrate(db))

	return mysql.NewReviewRepository(db), mysql.NewBookRepository(db), mysql.NewCustomerRepository(db)
}

func seedFixtures(t *testing.T, bookRepo catalog.BookRepository, customerRepo customer.Repository) (*catalog.Book, *customer.Customer) {
	t.Helper()
	ctx := context.Background()

	b := catalog.NewBook("9780747532743", "Harry Potter and the Philosopher's Stone", "", time.Date(1997, 6, 26, 0, 0, 0, 0, time.UTC), 1999, 223, 10, nil, nil)
	require.NoError(t, bookRepo.Create(ctx, b))
	c := customer.NewCustomer("alice@example.com", "$2a$12$fakehashfortests", "Alice", "A", "", "", "", "")
	require.NoError(t, customerRepo.Create(ctx, c))
	return b, c
}

func TestAddReview(t *testing.T) {
	reviewRepo, bookRepo, customerRepo := setupRepos(t)
	uc := NewAddReviewUseCase(reviewRepo, bookRepo, customerRepo, nil)
	ctx := context.Background()

	b, c := seedFixtures(t, bookRepo, customerRepo)

	resp, err := uc.Execute(ctx, AddReviewRequest{BookID: b.ID, CustomerID: c.ID, Rating: 5, Comment: "great"})
	require.NoError(t, err)
	assert.NotZero(t, resp.ReviewID)
	assert.Equal(t, 5, resp.Rating)

	// 同一客户对同一本书只能评价一次
	_, err = uc.Execute(ctx, AddReviewRequest{BookID: b.ID, CustomerID: c.ID, Rating: 3})
	assert.ErrorIs(t, err, review.ErrDuplicateReview)
}

func TestAddReview_Validation(t *testing.T) {
	reviewRepo, bookRepo, customerRepo := setupRepos(t)
	uc := NewAddReviewUseCase(reviewRepo, bookRepo, customerRepo, nil)
	ctx := context.Background()

	b, c := seedFixtures(t, bookRepo, customerRepo)

	_, err := uc.Execute(ctx, AddReviewRequest{BookID: b.ID, CustomerID: c.ID, Rating: 0})
	assert.ErrorIs(t, err, review.ErrInvalidRating)
	_, err = uc.Execute(ctx, AddReviewRequest{BookID: b.ID, CustomerID: c.ID, Rating: 6})
	assert.ErrorIs(t, err, review.ErrInvalidRating)

	// 引用实体必须存在
	_, err = uc.Execute(ctx, AddReviewRequest{BookID: 999, CustomerID: c.ID, Rating: 4})
	assert.ErrorIs(t, err, catalog.ErrBookNotFound)
	_, err = uc.Execute(ctx, AddReviewRequest{BookID: b.ID, CustomerID: 999, Rating: 4})
	assert.ErrorIs(t, err, customer.ErrCustomerNotFound)
}

func TestListBookReviews(t *testing.T) {
	reviewRepo, bookRepo, customerRepo := setupRepos(t)
	addUC := NewAddReviewUseCase(reviewRepo, bookRepo, customerRepo, nil)
	listUC := NewListBookReviewsUseCase(reviewRepo, bookRepo)
	ctx := context.Background()

	b, alice := seedFixtures(t, bookRepo, customerRepo)
	bob := customer.NewCustomer("bob@example.com", "$2a$12$fakehashfortests", "Bob", "B", "", "", "", "")
	require.NoError(t, customerRepo.Create(ctx, bob))

	_, err := addUC.Execute(ctx, AddReviewRequest{BookID: b.ID, CustomerID: alice.ID, Rating: 5, Comment: "loved it"})
	require.NoError(t, err)
	_, err = addUC.Execute(ctx, AddReviewRequest{BookID: b.ID, CustomerID: bob.ID, Rating: 3, Comment: "okay"})
	require.NoError(t, err)

	views, err := listUC.Execute(ctx, b.ID)
	require.NoError(t, err)
	assert.Len(t, views, 2)

	_, err = listUC.Execute(ctx, 999)
	assert.ErrorIs(t, err, catalog.ErrBookNotFound)
}
