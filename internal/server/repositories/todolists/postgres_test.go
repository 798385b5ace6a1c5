package todolists

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/todokeeper/internal/common"
	"github.com/dmitrijs2005/todokeeper/internal/server/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	insertQuery = `(?s)^INSERT\s+INTO\s+todo_lists\s*\(list_guid,\s*owner_id,\s*title,\s*description\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4\)\s*RETURNING\s+id\s*$`
	getQuery    = `(?s)^SELECT\s+id,\s*list_guid,\s*owner_id,\s*title,\s*description\s+FROM\s+todo_lists\s+WHERE\s+list_guid\s*=\s*\$1\s+AND\s+owner_id\s*=\s*\$2\s*$`
	listQuery   = `(?s)^SELECT\s+id,\s*list_guid,\s*owner_id,\s*title,\s*description\s+FROM\s+todo_lists\s+WHERE\s+owner_id\s*=\s*\$1\s+ORDER\s+BY\s+id\s*$`
	lockQuery   = `(?s)^SELECT\s+id,\s*list_guid,\s*owner_id,\s*title,\s*description\s+FROM\s+todo_lists\s+WHERE\s+list_guid\s*=\s*\$1\s+AND\s+owner_id\s*=\s*\$2\s+FOR\s+UPDATE\s*$`
	deleteQuery = `(?s)^DELETE\s+FROM\s+todo_lists\s+WHERE\s+list_guid\s*=\s*\$1\s+AND\s+owner_id\s*=\s*\$2$`
)

var columns = []string{"id", "list_guid", "owner_id", "title", "description"}

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresRepository(db), mock
}

func ptr(s string) *string { return &s }

func TestCreate_AssignsFreshGUID(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	for i := 0; i < 2; i++ {
		mock.ExpectQuery(insertQuery).
			WithArgs(sqlmock.AnyArg(), int64(1), "groceries", nil).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(i + 1)))
	}

	first, err := repo.Create(context.Background(), &models.TodoList{OwnerID: 1, Title: "groceries"})
	require.NoError(t, err)
	second, err := repo.Create(context.Background(), &models.TodoList{OwnerID: 1, Title: "groceries"})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, first.ListGUID)
	assert.NotEqual(t, first.ListGUID, second.ListGUID)
	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_ReplacesCallerGUID(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	preset := uuid.New()

	mock.ExpectQuery(insertQuery).
		WithArgs(sqlmock.AnyArg(), int64(1), "t", "d").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(5)))

	got, err := repo.Create(context.Background(), &models.TodoList{ListGUID: preset, OwnerID: 1, Title: "t", Description: ptr("d")})
	require.NoError(t, err)
	assert.NotEqual(t, preset, got.ListGUID)
}

func TestCreate_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(insertQuery).WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), &models.TodoList{OwnerID: 1, Title: "t"})
	require.Error(t, err)
	assert.Regexp(t, regexp.MustCompile(`db error: .*db down`), err.Error())
}

func TestGet_Found(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	guid := uuid.New()

	mock.ExpectQuery(getQuery).
		WithArgs(guid, int64(3)).
		WillReturnRows(sqlmock.NewRows(columns).AddRow(int64(9), guid.String(), int64(3), "groceries", "weekly"))

	got, err := repo.Get(context.Background(), guid, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(9), got.ID)
	assert.Equal(t, guid, got.ListGUID)
	assert.Equal(t, int64(3), got.OwnerID)
	assert.Equal(t, "groceries", got.Title)
	require.NotNil(t, got.Description)
	assert.Equal(t, "weekly", *got.Description)
}

func TestGet_NullDescription(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	guid := uuid.New()

	mock.ExpectQuery(getQuery).
		WithArgs(guid, int64(3)).
		WillReturnRows(sqlmock.NewRows(columns).AddRow(int64(9), guid.String(), int64(3), "groceries", nil))

	got, err := repo.Get(context.Background(), guid, 3)
	require.NoError(t, err)
	assert.Nil(t, got.Description)
}

func TestGet_NotFoundOrForeign(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	guid := uuid.New()

	mock.ExpectQuery(getQuery).WithArgs(guid, int64(4)).WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), guid, 4)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestGet_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	guid := uuid.New()

	mock.ExpectQuery(getQuery).WithArgs(guid, int64(4)).WillReturnError(errors.New("db err"))

	_, err := repo.Get(context.Background(), guid, 4)
	require.Error(t, err)
	assert.NotErrorIs(t, err, common.ErrorNotFound)
	assert.Contains(t, err.Error(), "db error")
}

func TestListByOwner(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	g1, g2 := uuid.New(), uuid.New()

	mock.ExpectQuery(listQuery).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(int64(1), g1.String(), int64(3), "a", nil).
			AddRow(int64(2), g2.String(), int64(3), "b", "desc"))

	got, err := repo.ListByOwner(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, g1, got[0].ListGUID)
	assert.Equal(t, g2, got[1].ListGUID)
}

func TestListByOwner_EmptyIsNotNil(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(listQuery).WithArgs(int64(3)).WillReturnRows(sqlmock.NewRows(columns))

	got, err := repo.ListByOwner(context.Background(), 3)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestListByOwner_ScanError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(listQuery).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(columns).AddRow(int64(1), "not-a-uuid", int64(3), "a", nil))

	_, err := repo.ListByOwner(context.Background(), 3)
	require.ErrorContains(t, err, "scan error")
}

func TestDelete(t *testing.T) {
	guid := uuid.New()

	t.Run("deleted", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectExec(deleteQuery).WithArgs(guid, int64(3)).WillReturnResult(sqlmock.NewResult(0, 1))
		require.NoError(t, repo.Delete(context.Background(), guid, 3))
	})

	t.Run("nothing matched", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectExec(deleteQuery).WithArgs(guid, int64(3)).WillReturnResult(sqlmock.NewResult(0, 0))
		assert.ErrorIs(t, repo.Delete(context.Background(), guid, 3), common.ErrorNotFound)
	})

	t.Run("db error", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectExec(deleteQuery).WithArgs(guid, int64(3)).WillReturnError(errors.New("fk violation"))
		assert.ErrorContains(t, repo.Delete(context.Background(), guid, 3), "db error")
	})
}

func TestGetForUpdate_LocksRow(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	guid := uuid.New()

	mock.ExpectQuery(lockQuery).WithArgs(guid, int64(4)).
		WillReturnRows(sqlmock.NewRows(columns).AddRow(int64(1), guid.String(), int64(4), "t", nil))

	got, err := repo.GetForUpdate(context.Background(), guid, 4)
	require.NoError(t, err)
	assert.Equal(t, guid, got.ListGUID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetForUpdate_NotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	guid := uuid.New()

	mock.ExpectQuery(lockQuery).WithArgs(guid, int64(4)).WillReturnError(sql.ErrNoRows)

	_, err := repo.GetForUpdate(context.Background(), guid, 4)
	require.ErrorIs(t, err, common.ErrorNotFound)
}
