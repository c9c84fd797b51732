package mysql

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookshop/internal/domain/catalog"
	"github.com/xiebiao/bookshop/internal/domain/order"
	"github.com/xiebiao/bookshop/internal/domain/review"
)

func TestReportRepository_BookDetail(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReportRepository(db)
	bookRepo := NewBookRepository(db)
	publisherRepo := NewPublisherRepository(db)
	categoryRepo := NewCategoryRepository(db)
	ctx := context.Background()

	p := catalog.NewPublisher("Bloomsbury", "info@bloomsbury.com", "", "London", 1986)
	require.NoError(t, publisherRepo.Create(ctx, p))
	cat := catalog.NewCategory("Fantasy", "", nil)
	require.NoError(t, categoryRepo.Create(ctx, cat))

	b := seedBook(t, db, "9780747532743", "Harry Potter and the Philosopher's Stone", 1999, 10)
	b.PublisherID = &p.ID
	b.CategoryID = &cat.ID
	require.NoError(t, bookRepo.Update(ctx, b))

	detail, err := repo.BookDetail(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bloomsbury", detail.PublisherName)
	assert.Equal(t, "Fantasy", detail.CategoryName)
	assert.EqualValues(t, 1999, detail.PriceCents)

	// 出版社删除后详情仍可查,名称置空
	require.NoError(t, bookRepo.ClearPublisher(ctx, p.ID))
	require.NoError(t, publisherRepo.Delete(ctx, p.ID))
	detail, err = repo.BookDetail(ctx, b.ID)
	require.NoError(t, err)
	assert.Empty(t, detail.PublisherName)
	assert.Equal(t, "Fantasy", detail.CategoryName)

	_, err = repo.BookDetail(ctx, 999)
	assert.ErrorIs(t, err, catalog.ErrBookNotFound)
}

func TestReportRepository_AuthorBibliography(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReportRepository(db)
	authorRepo := NewAuthorRepository(db)
	ctx := context.Background()

	a := catalog.NewAuthor("Joanne", "Rowling", mustDate("1965-07-31"), "British")
	require.NoError(t, authorRepo.Create(ctx, a))

	b1 := catalog.NewBook("9780747532743", "Harry Potter and the Philosopher's Stone", "", mustDate("1997-06-26"), 1999, 223, 10, nil, nil)
	require.NoError(t, NewBookRepository(db).Create(ctx, b1))
	b2 := catalog.NewBook("9780545139700", "Harry Potter and the Deathly Hallows", "", mustDate("2007-07-21"), 2499, 607, 5, nil, nil)
	require.NoError(t, NewBookRepository(db).Create(ctx, b2))
	require.NoError(t, authorRepo.Assign(ctx, catalog.BookAuthor{BookID: b1.ID, AuthorID: a.ID, Role: "author"}))
	require.NoError(t, authorRepo.Assign(ctx, catalog.BookAuthor{BookID: b2.ID, AuthorID: a.ID, Role: "author"}))

	rows, err := repo.AuthorBibliography(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	// 出版日期降序:新作在前
	assert.Equal(t, "Harry Potter and the Deathly Hallows", rows[0].Title)
	assert.Equal(t, "Harry Potter and the Philosopher's Stone", rows[1].Title)
	assert.Equal(t, "Rowling", rows[0].LastName)
}

func TestReportRepository_CustomerOrderHistory(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReportRepository(db)
	orderRepo := NewOrderRepository(db)
	ctx := context.Background()

	c := seedCustomer(t, db, "alice@example.com")
	b := seedBook(t, db, "9780747532743", "Harry Potter and the Philosopher's Stone", 2000, 10)

	o1 := seedOrder(t, db, c.ID)
	require.NoError(t, orderRepo.AddItem(ctx, &order.OrderItem{OrderID: o1.ID, BookID: b.ID, Quantity: 1, UnitPriceCents: 2000}))
	require.NoError(t, orderRepo.AddItem(ctx, &order.OrderItem{OrderID: o1.ID, BookID: b.ID, Quantity: 2, UnitPriceCents: 2000}))
	require.NoError(t, orderRepo.IncrTotal(ctx, o1.ID, 6000))

	o2 := seedOrder(t, db, c.ID)

	rows, err := repo.CustomerOrderHistory(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	byNo := map[string]*struct {
		ItemCount  int64
		TotalCents int64
	}{}
	for _, row := range rows {
		byNo[row.OrderNo] = &struct {
			ItemCount  int64
			TotalCents int64
		}{row.ItemCount, row.TotalCents}
	}
	require.Contains(t, byNo, o1.OrderNo)
	require.Contains(t, byNo, o2.OrderNo)
	assert.EqualValues(t, 2, byNo[o1.OrderNo].ItemCount)
	assert.EqualValues(t, 6000, byNo[o1.OrderNo].TotalCents)
	// 空订单也出现在历史里,明细条数为0
	assert.EqualValues(t, 0, byNo[o2.OrderNo].ItemCount)
}

func TestReportRepository_BookRatingSummaries(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReportRepository(db)
	reviewRepo := NewReviewRepository(db)
	ctx := context.Background()

	alice := seedCustomer(t, db, "alice@example.com")
	bob := seedCustomer(t, db, "bob@example.com")
	carol := seedCustomer(t, db, "carol@example.com")

	good := seedBook(t, db, "9780747532743", "Harry Potter and the Philosopher's Stone", 1999, 10)
	mixed := seedBook(t, db, "9780545139700", "Harry Potter and the Deathly Hallows", 2499, 5)
	seedBook(t, db, "9780261103573", "The Fellowship of the Ring", 1899, 8) // 无评价,不出现在汇总中

	require.NoError(t, reviewRepo.Create(ctx, review.NewReview(good.ID, alice.ID, 5, "")))
	require.NoError(t, reviewRepo.Create(ctx, review.NewReview(good.ID, bob.ID, 4, "")))
	require.NoError(t, reviewRepo.Create(ctx, review.NewReview(mixed.ID, alice.ID, 2, "")))
	require.NoError(t, reviewRepo.Create(ctx, review.NewReview(mixed.ID, bob.ID, 3, "")))
	require.NoError(t, reviewRepo.Create(ctx, review.NewReview(mixed.ID, carol.ID, 5, "")))

	rows, err := repo.BookRatingSummaries(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// 平均分降序:4.5在前,3.33在后
	assert.Equal(t, good.ID, rows[0].BookID)
	assert.EqualValues(t, 2, rows[0].ReviewCount)
	assert.InDelta(t, 4.5, rows[0].AvgRating, 0.001)

	assert.Equal(t, mixed.ID, rows[1].BookID)
	assert.EqualValues(t, 3, rows[1].ReviewCount)
	assert.InDelta(t, 3.33, rows[1].AvgRating, 0.001)
}

func TestReportRepository_InventoryStatus(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReportRepository(db)
	ctx := context.Background()

	seedBook(t, db, "9780000000001", "Gone", 1000, 0)
	seedBook(t, db, "9780000000002", "Scarce", 1000, 3)
	seedBook(t, db, "9780000000003", "Middling", 1000, 12)
	seedBook(t, db, "9780000000004", "Plenty", 1000, 50)

	rows, err := repo.InventoryStatus(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 4)

	// 库存升序
	assert.Equal(t, "Gone", rows[0].Title)
	assert.Equal(t, "Out of Stock", rows[0].StockLabel)
	assert.Equal(t, "Scarce", rows[1].Title)
	assert.Equal(t, "Low Stock", rows[1].StockLabel)
	assert.Equal(t, "Middling", rows[2].Title)
	assert.Equal(t, "Medium Stock", rows[2].StockLabel)
	assert.Equal(t, "Plenty", rows[3].Title)
	assert.Equal(t, "Good Stock", rows[3].StockLabel)
}
