package review

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kailas-cloud/reviewdex/internal/db"
	domrev "github.com/kailas-cloud/reviewdex/internal/domain/review"
	"github.com/kailas-cloud/reviewdex/internal/domain/sentiment"
)

var testTime = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func mustReview(t *testing.T) domrev.Review {
	t.Helper()
	rv, err := domrev.New(testProductID, sentiment.Positive, "Works great", testTime)
	if err != nil {
		t.Fatalf("domrev.New: %v", err)
	}
	return rv
}

func TestCreate_Success(t *testing.T) {
	repo, ms := newTestRepo(t)

	var gotKey, gotData string
	ms.jsonSetFn = func(_ context.Context, key, _ string, data []byte) error {
		gotKey, gotData = key, string(data)
		return nil
	}

	rv, err := repo.Create(context.Background(), mustReview(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rv.ID() != testID {
		t.Errorf("expected id %q, got %q", testID, rv.ID())
	}
	if gotKey != "reviewdex:review:"+testID {
		t.Errorf("unexpected key %q", gotKey)
	}
	want := `{"id":"` + testID + `","product_id":"` + testProductID +
		`","sentiment":"positive","text":"Works great","created_at":1714564800000}`
	if gotData != want {
		t.Errorf("unexpected document\n got %s\nwant %s", gotData, want)
	}
}

func TestCreate_StoreError(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.jsonSetFn = func(context.Context, string, string, []byte) error { return errors.New("boom") }

	if _, err := repo.Create(context.Background(), mustReview(t)); err == nil {
		t.Fatal("expected error")
	}
}

func TestListByProduct(t *testing.T) {
	repo, ms := newTestRepo(t)

	var gotQuery *db.ListQuery
	ms.searchListFn = func(_ context.Context, q *db.ListQuery) (*db.SearchResult, error) {
		gotQuery = q
		return &db.SearchResult{
			Total: 1,
			Entries: []db.SearchEntry{{
				Key: "reviewdex:review:" + testID,
				Fields: map[string]string{"$": `{"id":"` + testID + `","product_id":"` + testProductID +
					`","sentiment":"negative","text":"Broke","created_at":1714564800000}`},
			}},
		}, nil
	}

	list, total, err := repo.ListByProduct(context.Background(), testProductID, 0, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 1 || len(list) != 1 {
		t.Fatalf("expected one review, got %d (total %d)", len(list), total)
	}
	rv := list[0]
	if rv.Sentiment() != sentiment.Negative || rv.Text() != "Broke" {
		t.Errorf("unexpected review %+v", rv)
	}
	if !rv.CreatedAt().Equal(testTime) {
		t.Errorf("created_at = %v, want %v", rv.CreatedAt(), testTime)
	}

	if gotQuery.Index != "reviewdex:review:idx" {
		t.Errorf("unexpected index %q", gotQuery.Index)
	}
	if len(gotQuery.Filters) != 1 || gotQuery.Filters[0] != (db.TagFilter{Field: "product_id", Value: testProductID}) {
		t.Errorf("unexpected filters %+v", gotQuery.Filters)
	}
	if gotQuery.SortBy != "created_at" || gotQuery.SortAsc {
		t.Errorf("expected newest first, got %+v", gotQuery)
	}
}

func TestListByProduct_StoreError(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.searchListFn = func(context.Context, *db.ListQuery) (*db.SearchResult, error) {
		return nil, &db.Error{Op: db.OpSearch, Err: errors.New("timeout")}
	}

	if _, _, err := repo.ListByProduct(context.Background(), testProductID, 0, 20); err == nil {
		t.Fatal("expected error")
	}
}

func TestCountBySentiment(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.searchCountFn = func(_ context.Context, index string, filters ...db.TagFilter) (int, error) {
		if index != "reviewdex:review:idx" || len(filters) != 2 {
			t.Errorf("unexpected query %s %+v", index, filters)
		}
		switch filters[1].Value {
		case "positive":
			return 4, nil
		case "negative":
			return 1, nil
		default:
			return 0, nil
		}
	}

	counts, err := repo.CountBySentiment(context.Background(), testProductID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := map[sentiment.Label]int{sentiment.Positive: 4, sentiment.Negative: 1, sentiment.Neutral: 0}
	for l, n := range want {
		if counts[l] != n {
			t.Errorf("counts[%s] = %d, want %d", l, counts[l], n)
		}
	}
}

func TestEnsureIndex_CreatesWhenAbsent(t *testing.T) {
	repo, ms := newTestRepo(t)
	var created *db.IndexDefinition
	ms.createIndexFn = func(_ context.Context, def *db.IndexDefinition) error {
		created = def
		return nil
	}

	if err := repo.EnsureIndex(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created == nil {
		t.Fatal("expected index to be created")
	}
	want := "FT.CREATE reviewdex:review:idx ON JSON PREFIX reviewdex:review: SCHEMA " +
		"$.product_id AS product_id TAG $.sentiment AS sentiment TAG $.created_at AS created_at NUMERIC SORTABLE"
	if created.String() != want {
		t.Errorf("index = %s\nwant %s", created, want)
	}
}

func TestEnsureIndex_ExistsCheckFails(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.indexExistsFn = func(context.Context, string) (bool, error) { return false, errors.New("down") }

	if err := repo.EnsureIndex(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}
