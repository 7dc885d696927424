package repositories

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"storefront/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func TestUserRepositoryList(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery("SELECT id, name, email, password_hash FROM users").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "password_hash"}).
			AddRow("u1", "Budi", "budi@example.com", "h1").
			AddRow("u2", "Sari", "sari@example.com", "h2"))

	users, err := UserRepository{DB: db}.List(context.Background())
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(users) != 2 || users[1].Email != "sari@example.com" || users[0].PasswordHash != "h1" {
		t.Fatalf("unexpected users: %+v", users)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUserRepositoryGetByEmailNotFound(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery("FROM users WHERE email").WithArgs("none@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "password_hash"}))

	_, err := UserRepository{DB: db}.GetByEmail(context.Background(), "none@example.com")
	if !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected sql.ErrNoRows, got %v", err)
	}
}

func TestUserRepositoryCreateAssignsID(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectExec("INSERT INTO users").
		WithArgs(sqlmock.AnyArg(), "Budi", "budi@example.com", "hash").
		WillReturnResult(sqlmock.NewResult(0, 1))

	u, err := UserRepository{DB: db}.Create(context.Background(), domain.User{Name: "Budi", Email: "budi@example.com", PasswordHash: "hash"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if len(u.ID) != 36 {
		t.Fatalf("expected uuid id, got %q", u.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUserRepositoryUpdateKeyedByID(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectExec("UPDATE users SET name = \\?, email = \\?").
		WithArgs("Budi B", "bb@example.com", "u1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE users SET password_hash").
		WithArgs("newhash", "u1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := UserRepository{DB: db}
	if err := repo.Update(context.Background(), domain.User{ID: "u1", Name: "Budi B", Email: "bb@example.com"}); err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if err := repo.UpdatePassword(context.Background(), "u1", "newhash"); err != nil {
		t.Fatalf("UpdatePassword error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestProductRepositoryCRUD(t *testing.T) {
	db, mock := newMock(t)
	cols := []string{"id", "name", "description", "price", "quantity", "category"}

	mock.ExpectExec("INSERT INTO products").
		WithArgs("p1", "A", "desc", "10", "5", "x").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("FROM products WHERE id").WithArgs("p1").
		WillReturnRows(sqlmock.NewRows(cols).AddRow("p1", "A", "desc", "10", "5", "x"))
	mock.ExpectQuery("FROM products WHERE name").WithArgs("A").
		WillReturnRows(sqlmock.NewRows(cols).AddRow("p1", "A", "desc", "10", "5", "x"))
	mock.ExpectExec("UPDATE products").
		WithArgs("B", "desc", "12", "5", "x", "p1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM products WHERE id").WithArgs("p1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	ctx := context.Background()
	repo := ProductRepository{DB: db}
	if _, err := repo.Create(ctx, domain.Product{ID: "p1", Name: "A", Description: "desc", Price: "10", Quantity: "5", Category: "x"}); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	p, err := repo.GetByID(ctx, "p1")
	if err != nil || p.Category != "x" {
		t.Fatalf("GetByID: %+v %v", p, err)
	}
	if _, err := repo.GetByName(ctx, "A"); err != nil {
		t.Fatalf("GetByName: %v", err)
	}
	if err := repo.Update(ctx, domain.Product{ID: "p1", Name: "B", Description: "desc", Price: "12", Quantity: "5", Category: "x"}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if err := repo.Delete(ctx, "p1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestProductRepositoryInsertErrorWrapped(t *testing.T) {
	db, mock := newMock(t)
	boom := errors.New("connection reset")
	mock.ExpectExec("INSERT INTO products").WillReturnError(boom)

	_, err := ProductRepository{DB: db}.Create(context.Background(), domain.Product{Name: "A"})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}

func TestPurchaseRepositoryListAndUpdate(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery("SELECT id, name, price, quantity FROM purchases").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price", "quantity"}).
			AddRow("b1", "Beras", "12000", "2"))
	mock.ExpectExec("UPDATE purchases").
		WithArgs("Beras", "13000", "3", "b1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	ctx := context.Background()
	repo := PurchaseRepository{DB: db}
	list, err := repo.List(ctx)
	if err != nil || len(list) != 1 || list[0].Price != "12000" {
		t.Fatalf("List: %+v %v", list, err)
	}
	if err := repo.Update(ctx, domain.Purchase{ID: "b1", Name: "Beras", Price: "13000", Quantity: "3"}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
