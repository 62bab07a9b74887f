package stores_test

import (
	"context"
	"testing"
	"time"

	"github.com/BonJenn/fanfiles/apperrors"
	"github.com/BonJenn/fanfiles/models"
	"github.com/BonJenn/fanfiles/stores"
	"github.com/BonJenn/fanfiles/testutils"

	"github.com/stretchr/testify/assert"
)

func TestGormContentStore_ListRejectsUnknownSort(t *testing.T) {
	gormDB, _, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	store := stores.NewGormContentStore(gormDB)
	_, err := store.List(context.Background(), stores.ContentQuery{Sort: "by_vibes", Limit: 9})
	var validation *apperrors.ValidationError
	assert.ErrorAs(t, err, &validation)
}

func TestGormContentStore_ListAppliesFiltersAndStableOrder(t *testing.T) {
	gormDB, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT \* FROM "content_items" WHERE media_type = \$1 AND description ILIKE \$2 AND creator_id = \$3 ORDER BY created_at DESC, id ASC LIMIT \$4`).
		WithArgs("image", "%sunset%", "creator-1", 9).
		WillReturnRows(mock.NewRows([]string{"id", "creator_id", "media_type", "visibility", "price_minor_units"}).
			AddRow("item-1", "creator-1", "image", "public", 0))

	mt := models.MediaImage
	store := stores.NewGormContentStore(gormDB)
	items, err := store.List(context.Background(), stores.ContentQuery{
		MediaType: &mt,
		Search:    "sunset",
		CreatorID: "creator-1",
		Sort:      stores.SortNewest,
		Limit:     9,
	})
	assert.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, "item-1", items[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormContentStore_GetNotFound(t *testing.T) {
	gormDB, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT \* FROM "content_items" WHERE id = \$1 ORDER BY "content_items"."id" LIMIT \$2`).
		WithArgs("missing", 1).
		WillReturnRows(mock.NewRows([]string{"id"}))

	store := stores.NewGormContentStore(gormDB)
	_, err := store.Get(context.Background(), "missing")
	var notFound *apperrors.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestGormLedgerStore_ActiveSubscriberCountFiltersOnStatus(t *testing.T) {
	gormDB, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "subscriptions" WHERE creator_id = \$1 AND status = \$2`).
		WithArgs("creator-1", string(models.SubscriptionActive)).
		WillReturnRows(mock.NewRows([]string{"count"}).AddRow(3))

	store := stores.NewGormLedgerStore(gormDB)
	count, err := store.ActiveSubscriberCount(context.Background(), "creator-1")
	assert.NoError(t, err)
	assert.Equal(t, int64(3), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormLedgerStore_LifetimeEarningsDefaultsToZero(t *testing.T) {
	gormDB, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT COALESCE\(SUM\(amount_minor_units\), 0\) FROM "purchases" WHERE creator_id = \$1`).
		WithArgs("creator-1").
		WillReturnRows(mock.NewRows([]string{"coalesce"}).AddRow(0))

	store := stores.NewGormLedgerStore(gormDB)
	total, err := store.LifetimeEarnings(context.Background(), "creator-1")
	assert.NoError(t, err)
	assert.Zero(t, total)
}

func TestGormLedgerStore_ViewsSinceAppliesBound(t *testing.T) {
	gormDB, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	since := time.Date(2025, 6, 8, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT \* FROM "view_events" WHERE creator_id = \$1 AND created_at >= \$2`).
		WithArgs("creator-1", since).
		WillReturnRows(mock.NewRows([]string{"id", "creator_id"}).
			AddRow("v-1", "creator-1").
			AddRow("v-2", "creator-1"))

	store := stores.NewGormLedgerStore(gormDB)
	rows, err := store.ViewsSince(context.Background(), "creator-1", since)
	assert.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestGormLedgerStore_UpstreamErrorWrapping(t *testing.T) {
	gormDB, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT \* FROM "purchases"`).
		WillReturnError(assertableError{})

	store := stores.NewGormLedgerStore(gormDB)
	_, err := store.PurchasesSince(context.Background(), "creator-1", time.Now())
	var upstream *apperrors.UpstreamUnavailable
	assert.ErrorAs(t, err, &upstream)
}

type assertableError struct{}

func (assertableError) Error() string { return "connection refused" }
