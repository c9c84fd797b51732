package catalog

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
	"github.com/xiebiao/bookshop/internal/domain/order"
	"github.com/xiebiao/bookshop/internal/domain/review"
	"github.com/xiebiao/bookshop/internal/infrastructure/persistence/mysql"
)

// testEnv 用例测试环境:SQLite内存库 + 真实仓储
type testEnv struct {
	db            *gorm.DB
	catalogSvc    catalog.Service
	bookRepo      catalog.BookRepository
	authorRepo    catalog.AuthorRepository
	publisherRepo catalog.PublisherRepository
	categoryRepo  catalog.CategoryRepository
	orderRepo     order.Repository
	reviewRepo    review.Repository
	customerRepo  customer.Repository
	txManager     *mysql.TxManager
}

func newTestEnv(t *testing.T) *testEnv {
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

	env := &testEnv{
		db:            db,
		bookRepo:      mysql.NewBookRepository(db),
		authorRepo:    mysql.NewAuthorRepository(db),
		publisherRepo: mysql.NewPublisherRepository(db),
		categoryRepo:  mysql.NewCategoryRepository(db),
		orderRepo:     mysql.NewOrderRepository(db),
		reviewRepo:    mysql.NewReviewRepository(db),
		customerRepo:  mysql.NewCustomerRepository(db),
		txManager:     mysql.NewTxManager(db),
	}
	env.catalogSvc = catalog.NewService(env.bookRepo, env.authorRepo, env.publisherRepo, env.categoryRepo)
	return env
}

func (e *testEnv) seedBook(t *testing.T, isbn, title string, priceCents int64, stock int) *catalog.Book {
	t.Helper()
	b := catalog.NewBook(isbn, title, "", time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), priceCents, 100, stock, nil, nil)
	require.NoError(t, e.bookRepo.Create(context.Background(), b))
	return b
}

func TestCreateBook(t *testing.T) {
	env := newTestEnv(t)
	uc := NewCreateBookUseCase(env.catalogSvc)
	ctx := context.Background()

	resp, err := uc.Execute(ctx, CreateBookRequest{
		ISBN:            "9780747532743",
		Title:           "Harry Potter and the Philosopher's Stone",
		PublicationDate: "1997-06-26",
		PriceCents:      1999,
		Pages:           223,
		Stock:           10,
	})
	require.NoError(t, err)
	assert.NotZero(t, resp.BookID)
	assert.EqualValues(t, 1999, resp.PriceCents)

	// ISBN全局唯一
	_, err = uc.Execute(ctx, CreateBookRequest{
		ISBN:            "9780747532743",
		Title:           "Another Edition",
		PublicationDate: "1998-01-01",
		PriceCents:      2599,
		Pages:           240,
		Stock:           5,
	})
	assert.ErrorIs(t, err, catalog.ErrISBNDuplicate)
}

func TestCreateBook_Validation(t *testing.T) {
	env := newTestEnv(t)
	uc := NewCreateBookUseCase(env.catalogSvc)
	ctx := context.Background()

	_, err := uc.Execute(ctx, CreateBookRequest{
		ISBN: "9780747532743", Title: "X", PublicationDate: "26/06/1997", Pages: 100,
	})
	assert.ErrorIs(t, err, catalog.ErrInvalidDate)

	_, err = uc.Execute(ctx, CreateBookRequest{
		ISBN: "not-an-isbn", Title: "X", PublicationDate: "1997-06-26", Pages: 100,
	})
	assert.ErrorIs(t, err, catalog.ErrInvalidISBN)

	_, err = uc.Execute(ctx, CreateBookRequest{
		ISBN: "9780747532743", Title: "X", PublicationDate: "1997-06-26", Pages: 100, PriceCents: -1,
	})
	assert.ErrorIs(t, err, catalog.ErrInvalidPrice)

	_, err = uc.Execute(ctx, CreateBookRequest{
		ISBN: "9780747532743", Title: "X", PublicationDate: "1997-06-26", Pages: 0,
	})
	assert.ErrorIs(t, err, catalog.ErrInvalidPages)
}

func TestDeleteBook_BlockedByActiveOrder(t *testing.T) {
	env := newTestEnv(t)
	uc := NewDeleteBookUseCase(env.bookRepo, env.authorRepo, env.orderRepo, env.reviewRepo, env.txManager)
	ctx := context.Background()

	c := customer.NewCustomer("alice@example.com", "$2a$12$fakehashfortests", "Alice", "A", "", "", "", "")
	require.NoError(t, env.customerRepo.Create(ctx, c))
	b := env.seedBook(t, "9780747532743", "Harry Potter and the Philosopher's Stone", 1999, 10)

	o := order.NewOrder(order.GenerateOrderNo(), c.ID, "addr", "addr", "card")
	require.NoError(t, env.orderRepo.Create(ctx, o))
	require.NoError(t, env.orderRepo.AddItem(ctx, &order.OrderItem{OrderID: o.ID, BookID: b.ID, Quantity: 1, UnitPriceCents: 1999}))

	// 在途订单引用时禁止删除
	err := uc.Execute(ctx, b.ID)
	assert.ErrorIs(t, err, catalog.ErrBookInActiveOrders)
	_, err = env.bookRepo.FindByID(ctx, b.ID)
	assert.NoError(t, err)

	// 终态订单不阻止删除,明细保留价格快照
	o.Status = order.OrderStatusCancelled
	require.NoError(t, env.orderRepo.Update(ctx, o))
	require.NoError(t, uc.Execute(ctx, b.ID))

	_, err = env.bookRepo.FindByID(ctx, b.ID)
	assert.ErrorIs(t, err, catalog.ErrBookNotFound)
	got, err := env.orderRepo.FindByID(ctx, o.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.EqualValues(t, 1999, got.Items[0].UnitPriceCents)
}

func TestDeleteBook_Cascade(t *testing.T) {
	env := newTestEnv(t)
	uc := NewDeleteBookUseCase(env.bookRepo, env.authorRepo, env.orderRepo, env.reviewRepo, env.txManager)
	ctx := context.Background()

	b := env.seedBook(t, "9780747532743", "Harry Potter and the Philosopher's Stone", 1999, 10)
	a := catalog.NewAuthor("Joanne", "Rowling", time.Date(1965, 7, 31, 0, 0, 0, 0, time.UTC), "British")
	require.NoError(t, env.authorRepo.Create(ctx, a))
	require.NoError(t, env.authorRepo.Assign(ctx, catalog.BookAuthor{BookID: b.ID, AuthorID: a.ID, Role: "author"}))

	c := customer.NewCustomer("alice@example.com", "$2a$12$fakehashfortests", "Alice", "A", "", "", "", "")
	require.NoError(t, env.customerRepo.Create(ctx, c))
	require.NoError(t, env.reviewRepo.Create(ctx, review.NewReview(b.ID, c.ID, 5, "great")))

	require.NoError(t, uc.Execute(ctx, b.ID))

	// 关联和评价随图书一并清理,作者本体保留
	var linkCount, reviewCount int64
	require.NoError(t, env.db.Model(&mysql.BookAuthorModel{}).Count(&linkCount).Error)
	require.NoError(t, env.db.Model(&mysql.ReviewModel{}).Count(&reviewCount).Error)
	assert.Zero(t, linkCount)
	assert.Zero(t, reviewCount)
	_, err := env.authorRepo.FindByID(ctx, a.ID)
	assert.NoError(t, err)
}

func TestSearchBooks(t *testing.T) {
	env := newTestEnv(t)
	uc := NewSearchBooksUseCase(env.bookRepo)
	ctx := context.Background()

	env.seedBook(t, "9780747532743", "Harry Potter and the Philosopher's Stone", 1999, 10)
	env.seedBook(t, "9780545139700", "Harry Potter and the Deathly Hallows", 2499, 3)
	env.seedBook(t, "9780261103573", "The Fellowship of the Ring", 1899, 0)

	minPrice := int64(2000)
	views, err := uc.Execute(ctx, SearchBooksRequest{Title: "Harry", MinPriceCents: &minPrice})
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "Harry Potter and the Deathly Hallows", views[0].Title)
	assert.Equal(t, "Low Stock", views[0].StockLabel)

	views, err = uc.Execute(ctx, SearchBooksRequest{})
	require.NoError(t, err)
	require.Len(t, views, 3)
	assert.Equal(t, "Out of Stock", views[2].StockLabel) // The Fellowship...排最后
}

func TestManageCatalog_MoveCategoryCycle(t *testing.T) {
	env := newTestEnv(t)
	uc := NewManageCatalogUseCase(env.catalogSvc, env.bookRepo, env.authorRepo, env.publisherRepo, env.categoryRepo, env.txManager)
	ctx := context.Background()

	fiction, err := uc.CreateCategory(ctx, CreateCategoryRequest{Name: "Fiction"})
	require.NoError(t, err)
	fantasy, err := uc.CreateCategory(ctx, CreateCategoryRequest{Name: "Fantasy", ParentID: &fiction.ID})
	require.NoError(t, err)
	epic, err := uc.CreateCategory(ctx, CreateCategoryRequest{Name: "Epic Fantasy", ParentID: &fantasy.ID})
	require.NoError(t, err)

	// 把祖先挂到后代之下会成环
	err = uc.MoveCategory(ctx, fiction.ID, &epic.ID)
	assert.ErrorIs(t, err, catalog.ErrCategoryCycle)

	// 自己作自己的父节点同样成环
	err = uc.MoveCategory(ctx, fantasy.ID, &fantasy.ID)
	assert.ErrorIs(t, err, catalog.ErrCategoryCycle)

	// 合法移动:Epic Fantasy直接挂到Fiction下
	require.NoError(t, uc.MoveCategory(ctx, epic.ID, &fiction.ID))
	got, err := uc.GetCategory(ctx, epic.ID)
	require.NoError(t, err)
	require.NotNil(t, got.ParentID)
	assert.Equal(t, fiction.ID, *got.ParentID)

	// 移到根部
	require.NoError(t, uc.MoveCategory(ctx, epic.ID, nil))
	got, err = uc.GetCategory(ctx, epic.ID)
	require.NoError(t, err)
	assert.Nil(t, got.ParentID)
}

func TestManageCatalog_DeleteCategory(t *testing.T) {
	env := newTestEnv(t)
	uc := NewManageCatalogUseCase(env.catalogSvc, env.bookRepo, env.authorRepo, env.publisherRepo, env.categoryRepo, env.txManager)
	ctx := context.Background()

	fiction, err := uc.CreateCategory(ctx, CreateCategoryRequest{Name: "Fiction"})
	require.NoError(t, err)
	fantasy, err := uc.CreateCategory(ctx, CreateCategoryRequest{Name: "Fantasy", ParentID: &fiction.ID})
	require.NoError(t, err)

	b := env.seedBook(t, "9780747532743", "Harry Potter and the Philosopher's Stone", 1999, 10)
	b.CategoryID = &fiction.ID
	require.NoError(t, env.bookRepo.Update(ctx, b))

	require.NoError(t, uc.DeleteCategory(ctx, fiction.ID))

	// 子分类升为根,图书分类置空,均不被级联删除
	got, err := uc.GetCategory(ctx, fantasy.ID)
	require.NoError(t, err)
	assert.Nil(t, got.ParentID)
	gotBook, err := env.bookRepo.FindByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Nil(t, gotBook.CategoryID)
}

func TestManageCatalog_DeletePublisher(t *testing.T) {
	env := newTestEnv(t)
	uc := NewManageCatalogUseCase(env.catalogSvc, env.bookRepo, env.authorRepo, env.publisherRepo, env.categoryRepo, env.txManager)
	ctx := context.Background()

	p, err := uc.CreatePublisher(ctx, CreatePublisherRequest{Name: "Bloomsbury", FoundedYear: 1986})
	require.NoError(t, err)

	b := env.seedBook(t, "9780747532743", "Harry Potter and the Philosopher's Stone", 1999, 10)
	b.PublisherID = &p.ID
	require.NoError(t, env.bookRepo.Update(ctx, b))

	require.NoError(t, uc.DeletePublisher(ctx, p.ID))

	// 图书保留,出版社引用置空
	gotBook, err := env.bookRepo.FindByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Nil(t, gotBook.PublisherID)
}

func TestManageCatalog_UpdateBook(t *testing.T) {
	env := newTestEnv(t)
	uc := NewManageCatalogUseCase(env.catalogSvc, env.bookRepo, env.authorRepo, env.publisherRepo, env.categoryRepo, env.txManager)
	ctx := context.Background()

	b := env.seedBook(t, "9780747532743", "Harry Potter and the Philosopher's Stone", 1999, 10)

	got, err := uc.UpdateBook(ctx, b.ID, UpdateBookRequest{
		Title:      "Harry Potter and the Philosopher's Stone (Illustrated)",
		PriceCents: 3499,
		Stock:      25,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 3499, got.PriceCents)
	assert.Equal(t, 25, got.Stock)
	// ISBN不可变
	assert.Equal(t, "9780747532743", got.ISBN)

	_, err = uc.UpdateBook(ctx, b.ID, UpdateBookRequest{Title: "X", PriceCents: -1})
	assert.ErrorIs(t, err, catalog.ErrInvalidPrice)

	// 引用不存在的出版社
	missing := uint(999)
	_, err = uc.UpdateBook(ctx, b.ID, UpdateBookRequest{Title: "X", PublisherID: &missing})
	assert.ErrorIs(t, err, catalog.ErrPublisherNotFound)
}

func TestManageCatalog_DeleteAuthor(t *testing.T) {
	env := newTestEnv(t)
	uc := NewManageCatalogUseCase(env.catalogSvc, env.bookRepo, env.authorRepo, env.publisherRepo, env.categoryRepo, env.txManager)
	ctx := context.Background()

	a, err := uc.CreateAuthor(ctx, CreateAuthorRequest{FirstName: "Joanne", LastName: "Rowling", BirthDate: "1965-07-31", Nationality: "British"})
	require.NoError(t, err)
	b := env.seedBook(t, "9780747532743", "Harry Potter and the Philosopher's Stone", 1999, 10)
	require.NoError(t, uc.AssignAuthor(ctx, AssignAuthorRequest{BookID: b.ID, AuthorID: a.ID, Role: "author"}))

	require.NoError(t, uc.DeleteAuthor(ctx, a.ID))

	// 关联清理,图书保留
	var linkCount int64
	require.NoError(t, env.db.Model(&mysql.BookAuthorModel{}).Count(&linkCount).Error)
	assert.Zero(t, linkCount)
	_, err = env.bookRepo.FindByID(ctx, b.ID)
	assert.NoError(t, err)
}
