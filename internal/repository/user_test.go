package repository

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })
	return sqlx.NewDb(mockDB, "sqlmock"), mock
}

func userColumns() []string {
	return []string{"id", "username", "email", "password_hash", "created_at", "role_id", "role_name"}
}

func TestGetUserByUsernameWithRole(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db, zap.NewNop())

	createdAt := time.Now()
	mock.ExpectQuery("FROM users u").
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows(userColumns()).
			AddRow(1, "alice", "alice@example.com", "digest", createdAt, 2, "author"))

	user, err := repo.GetUserByUsername("alice")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, "alice", user.Username)
	require.NotNil(t, user.Role)
	assert.Equal(t, "author", user.Role.Name)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUserByUsernameWithoutRole(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db, zap.NewNop())

	mock.ExpectQuery("FROM users u").
		WithArgs("bob").
		WillReturnRows(sqlmock.NewRows(userColumns()).
			AddRow(2, "bob", "bob@example.com", "digest", time.Now(), nil, nil))

	user, err := repo.GetUserByUsername("bob")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Nil(t, user.Role)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUserByUsernameNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db, zap.NewNop())

	mock.ExpectQuery("FROM users u").
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows(userColumns()))

	user, err := repo.GetUserByUsername("ghost")
	require.NoError(t, err)
	assert.Nil(t, user)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteUserCascades(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db, zap.NewNop())

	// Comments by the user, comments on the user's posts, the posts, then
	// the user itself, all in one transaction.
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM comments WHERE author_id").
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("DELETE FROM comments WHERE post_id IN").
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("DELETE FROM posts WHERE author_id").
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM users WHERE id").
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.DeleteUser(7))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteUserRollsBackOnError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db, zap.NewNop())

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM comments WHERE author_id").
		WithArgs(int64(7)).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	assert.Error(t, repo.DeleteUser(7))
	assert.NoError(t, mock.ExpectationsWereMet())
}
