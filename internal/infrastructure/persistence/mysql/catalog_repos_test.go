package mysql

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookshop/internal/domain/catalog"
	"github.com/xiebiao/bookshop/internal/domain/customer"
)

func TestAuthorRepository_CreateDuplicateIdentity(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAuthorRepository(db)
	ctx := context.Background()

	a := catalog.NewAuthor("Joanne", "Rowling", mustDate("1965-07-31"), "British")
	require.NoError(t, repo.Create(ctx, a))

	// 姓名+出生日期相同视为同一作者
	dup := catalog.NewAuthor("Joanne", "Rowling", mustDate("1965-07-31"), "British")
	assert.ErrorIs(t, repo.Create(ctx, dup), catalog.ErrAuthorDuplicate)

	// 出生日期不同则不冲突
	other := catalog.NewAuthor("Joanne", "Rowling", mustDate("1970-01-01"), "British")
	assert.NoError(t, repo.Create(ctx, other))
}

func TestAuthorRepository_AssignIdempotent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAuthorRepository(db)
	ctx := context.Background()

	a := catalog.NewAuthor("Joanne", "Rowling", mustDate("1965-07-31"), "British")
	require.NoError(t, repo.Create(ctx, a))
	b := seedBook(t, db, "9780747532743", "Harry Potter and the Philosopher's Stone", 1999, 10)

	link := catalog.BookAuthor{BookID: b.ID, AuthorID: a.ID, Role: "author"}
	require.NoError(t, repo.Assign(ctx, link))
	// 重复挂接静默成功
	assert.NoError(t, repo.Assign(ctx, link))

	var count int64
	require.NoError(t, db.Model(&BookAuthorModel{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestAuthorRepository_UnassignAndDeleteLinks(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAuthorRepository(db)
	ctx := context.Background()

	a := catalog.NewAuthor("Joanne", "Rowling", mustDate("1965-07-31"), "British")
	require.NoError(t, repo.Create(ctx, a))
	b1 := seedBook(t, db, "9780747532743", "Harry Potter and the Philosopher's Stone", 1999, 10)
	b2 := seedBook(t, db, "9780545139700", "Harry Potter and the Deathly Hallows", 2499, 5)

	require.NoError(t, repo.Assign(ctx, catalog.BookAuthor{BookID: b1.ID, AuthorID: a.ID, Role: "author"}))
	require.NoError(t, repo.Assign(ctx, catalog.BookAuthor{BookID: b2.ID, AuthorID: a.ID, Role: "author"}))

	require.NoError(t, repo.Unassign(ctx, b1.ID, a.ID))
	var count int64
	require.NoError(t, db.Model(&BookAuthorModel{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	require.NoError(t, repo.DeleteLinksByAuthor(ctx, a.ID))
	require.NoError(t, db.Model(&BookAuthorModel{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestCategoryRepository_DuplicateName(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCategoryRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, catalog.NewCategory("Fantasy", "", nil)))
	err := repo.Create(ctx, catalog.NewCategory("Fantasy", "another description", nil))
	assert.ErrorIs(t, err, catalog.ErrCategoryDuplicate)
}

func TestCategoryRepository_ClearParent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCategoryRepository(db)
	ctx := context.Background()

	root := catalog.NewCategory("Fiction", "", nil)
	require.NoError(t, repo.Create(ctx, root))
	child := catalog.NewCategory("Fantasy", "", &root.ID)
	require.NoError(t, repo.Create(ctx, child))

	require.NoError(t, repo.ClearParent(ctx, root.ID))
	got, err := repo.FindByID(ctx, child.ID)
	require.NoError(t, err)
	assert.Nil(t, got.ParentID)
}

func TestCustomerRepository_DuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCustomerRepository(db)
	ctx := context.Background()

	seedCustomer(t, db, "alice@example.com")

	dup := customer.NewCustomer("alice@example.com", "$2a$12$fakehashfortests", "Alice", "Again", "", "", "", "")
	assert.ErrorIs(t, repo.Create(ctx, dup), customer.ErrEmailDuplicate)
}

func TestCustomerRepository_FindByEmail(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCustomerRepository(db)
	ctx := context.Background()

	c := seedCustomer(t, db, "alice@example.com")

	got, err := repo.FindByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, c.ID, got.ID)

	_, err = repo.FindByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, customer.ErrCustomerNotFound)
}

func TestPublisherRepository_CRUD(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPublisherRepository(db)
	ctx := context.Background()

	p := catalog.NewPublisher("Bloomsbury", "info@bloomsbury.com", "", "London", 1986)
	require.NoError(t, repo.Create(ctx, p))
	require.NotZero(t, p.ID)

	p.Name = "Bloomsbury Publishing"
	require.NoError(t, repo.Update(ctx, p))

	got, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bloomsbury Publishing", got.Name)

	require.NoError(t, repo.Delete(ctx, p.ID))
	_, err = repo.FindByID(ctx, p.ID)
	assert.ErrorIs(t, err, catalog.ErrPublisherNotFound)
}
