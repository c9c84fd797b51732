package mysql

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookshop/internal/domain/catalog"
	"github.com/xiebiao/bookshop/internal/domain/order"
)

func TestBookRepository_CreateDuplicateISBN(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBookRepository(db)
	ctx := context.Background()

	seedBook(t, db, "9780747532743", "Harry Potter and the Philosopher's Stone", 1999, 10)

	dup := seedBookEntity("9780747532743", "Another Edition", 2599, 5)
	err := repo.Create(ctx, dup)
	assert.ErrorIs(t, err, catalog.ErrISBNDuplicate)
}

func TestBookRepository_FindByID_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBookRepository(db)

	_, err := repo.FindByID(context.Background(), 999)
	assert.ErrorIs(t, err, catalog.ErrBookNotFound)
}

func TestBookRepository_UpdateStock(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBookRepository(db)
	ctx := context.Background()

	b := seedBook(t, db, "9780000000001", "Stocked Book", 1500, 10)

	// 正常扣减
	require.NoError(t, repo.UpdateStock(ctx, b.ID, -3))
	got, err := repo.FindByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, got.Stock)

	// 补货
	require.NoError(t, repo.UpdateStock(ctx, b.ID, 5))
	got, err = repo.FindByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 12, got.Stock)
}

func TestBookRepository_UpdateStock_Insufficient(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBookRepository(db)
	ctx := context.Background()

	b := seedBook(t, db, "9780000000002", "Scarce Book", 1500, 2)

	err := repo.UpdateStock(ctx, b.ID, -3)
	assert.ErrorIs(t, err, order.ErrInsufficientStock)

	// 守卫失败不应有任何效果
	got, err := repo.FindByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Stock)
}

func TestBookRepository_UpdateStock_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBookRepository(db)

	err := repo.UpdateStock(context.Background(), 999, -1)
	assert.ErrorIs(t, err, catalog.ErrBookNotFound)
}

func TestBookRepository_Delete_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBookRepository(db)

	err := repo.Delete(context.Background(), 999)
	assert.ErrorIs(t, err, catalog.ErrBookNotFound)
}

func TestBookRepository_Search(t *testing.T) {
	db := setupTestDB(t)
	bookRepo := NewBookRepository(db)
	authorRepo := NewAuthorRepository(db)
	categoryRepo := NewCategoryRepository(db)
	ctx := context.Background()

	fantasy := catalog.NewCategory("Fantasy", "", nil)
	require.NoError(t, categoryRepo.Create(ctx, fantasy))

	b1 := seedBook(t, db, "9780747532743", "Harry Potter and the Philosopher's Stone", 1999, 10)
	b2 := seedBook(t, db, "9780545139700", "Harry Potter and the Deathly Hallows", 2499, 5)
	b3 := seedBook(t, db, "9780261103573", "The Fellowship of the Ring", 1899, 8)

	b1.CategoryID = &fantasy.ID
	require.NoError(t, bookRepo.Update(ctx, b1))
	b2.CategoryID = &fantasy.ID
	require.NoError(t, bookRepo.Update(ctx, b2))

	rowling := catalog.NewAuthor("Joanne", "Rowling", mustDate("1965-07-31"), "British")
	require.NoError(t, authorRepo.Create(ctx, rowling))
	require.NoError(t, authorRepo.Assign(ctx, catalog.BookAuthor{BookID: b1.ID, AuthorID: rowling.ID, Role: "author"}))
	require.NoError(t, authorRepo.Assign(ctx, catalog.BookAuthor{BookID: b2.ID, AuthorID: rowling.ID, Role: "author"}))

	// 书名子串 + 价格下限
	minPrice := int64(2000)
	books, err := bookRepo.Search(ctx, catalog.SearchParams{Title: "Harry", MinPriceCents: &minPrice})
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "Harry Potter and the Deathly Hallows", books[0].Title)

	// 作者姓名子串(连接book_authors)
	books, err = bookRepo.Search(ctx, catalog.SearchParams{AuthorName: "Rowling"})
	require.NoError(t, err)
	assert.Len(t, books, 2)

	// 分类精确匹配
	books, err = bookRepo.Search(ctx, catalog.SearchParams{CategoryID: &fantasy.ID})
	require.NoError(t, err)
	assert.Len(t, books, 2)

	// 无条件返回全部,按书名升序
	books, err = bookRepo.Search(ctx, catalog.SearchParams{})
	require.NoError(t, err)
	require.Len(t, books, 3)
	assert.Equal(t, b2.Title, books[0].Title) // "Harry Potter and the D..."
	assert.Equal(t, b1.Title, books[1].Title) // "Harry Potter and the P..."
	assert.Equal(t, b3.Title, books[2].Title)

	// 价格区间无命中
	maxPrice := int64(100)
	books, err = bookRepo.Search(ctx, catalog.SearchParams{MaxPriceCents: &maxPrice})
	require.NoError(t, err)
	assert.Empty(t, books)
}

func TestBookRepository_ClearPublisherAndCategory(t *testing.T) {
	db := setupTestDB(t)
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

	require.NoError(t, bookRepo.ClearPublisher(ctx, p.ID))
	got, err := bookRepo.FindByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Nil(t, got.PublisherID)
	assert.NotNil(t, got.CategoryID)

	require.NoError(t, bookRepo.ClearCategory(ctx, cat.ID))
	got, err = bookRepo.FindByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Nil(t, got.CategoryID)
}
