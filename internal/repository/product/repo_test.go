package product

import (
	"context"
	"errors"
	"testing"

	"github.com/kailas-cloud/reviewdex/internal/db"
	"github.com/kailas-cloud/reviewdex/internal/domain"
	domprod "github.com/kailas-cloud/reviewdex/internal/domain/product"
)

func mustProduct(t *testing.T) domprod.Product {
	t.Helper()
	p, err := domprod.New("Phone", 199.5, "A phone", 3)
	if err != nil {
		t.Fatalf("domprod.New: %v", err)
	}
	return p
}

func TestCreate_Success(t *testing.T) {
	repo, ms := newTestRepo(t)

	var gotKey, gotPath, gotData string
	ms.jsonSetFn = func(_ context.Context, key, path string, data []byte) error {
		gotKey, gotPath, gotData = key, path, string(data)
		return nil
	}

	p, err := repo.Create(context.Background(), mustProduct(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ID() != testID {
		t.Errorf("expected id %q, got %q", testID, p.ID())
	}
	if gotKey != "reviewdex:product:"+testID {
		t.Errorf("unexpected key %q", gotKey)
	}
	if gotPath != "$" {
		t.Errorf("unexpected path %q", gotPath)
	}
	want := `{"id":"` + testID + `","name":"Phone","price":199.5,"description":"A phone","stock":3}`
	if gotData != want {
		t.Errorf("unexpected document\n got %s\nwant %s", gotData, want)
	}
}

func TestCreate_StoreError(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.jsonSetFn = func(context.Context, string, string, []byte) error {
		return &db.Error{Op: db.OpJSONSet, Err: errors.New("conn reset")}
	}

	if _, err := repo.Create(context.Background(), mustProduct(t)); err == nil {
		t.Fatal("expected error")
	}
}

func TestGet_Success(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.jsonGetFn = func(_ context.Context, key string, _ ...string) ([]byte, error) {
		if key != "reviewdex:product:"+testID {
			t.Errorf("unexpected key %q", key)
		}
		return []byte(`{"id":"` + testID + `","name":"Phone","price":10,"description":"d","stock":1}`), nil
	}

	p, err := repo.Get(context.Background(), testID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name() != "Phone" || p.Price() != 10 || p.Stock() != 1 {
		t.Errorf("unexpected product %+v", p)
	}
}

func TestGet_PathArrayReply(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.jsonGetFn = func(context.Context, string, ...string) ([]byte, error) {
		return []byte(`[{"id":"` + testID + `","name":"Phone","price":1,"description":"d","stock":0}]`), nil
	}

	p, err := repo.Get(context.Background(), testID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ID() != testID {
		t.Errorf("unexpected id %q", p.ID())
	}
}

func TestGet_NotFound(t *testing.T) {
	repo, _ := newTestRepo(t)

	_, err := repo.Get(context.Background(), testID)
	if !errors.Is(err, domain.ErrProductNotFound) {
		t.Errorf("expected ErrProductNotFound, got %v", err)
	}
}

func TestGet_MalformedIDNeverHitsStore(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.jsonGetFn = func(context.Context, string, ...string) ([]byte, error) {
		t.Fatal("store must not be called")
		return nil, nil
	}

	_, err := repo.Get(context.Background(), "*")
	if !errors.Is(err, domain.ErrProductNotFound) {
		t.Errorf("expected ErrProductNotFound, got %v", err)
	}
}

func TestGet_StoreError(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.jsonGetFn = func(context.Context, string, ...string) ([]byte, error) {
		return nil, &db.Error{Op: db.OpJSONGet, Err: errors.New("timeout")}
	}

	_, err := repo.Get(context.Background(), testID)
	if err == nil || errors.Is(err, domain.ErrProductNotFound) {
		t.Errorf("expected store error, got %v", err)
	}
}

func TestExists(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.existsFn = func(_ context.Context, key string) (bool, error) {
		return key == "reviewdex:product:"+testID, nil
	}

	ok, err := repo.Exists(context.Background(), testID)
	if err != nil || !ok {
		t.Fatalf("expected product to exist, got %v, %v", ok, err)
	}
	ok, err = repo.Exists(context.Background(), "not-a-uuid")
	if err != nil || ok {
		t.Fatalf("expected malformed id to be absent, got %v, %v", ok, err)
	}
}

func TestList_Success(t *testing.T) {
	repo, ms := newTestRepo(t)

	var gotQuery *db.ListQuery
	ms.searchListFn = func(_ context.Context, q *db.ListQuery) (*db.SearchResult, error) {
		gotQuery = q
		return &db.SearchResult{
			Total: 5,
			Entries: []db.SearchEntry{
				{Key: "reviewdex:product:a", Fields: map[string]string{"$": `{"id":"a","name":"A","price":1,"description":"x","stock":1}`}},
				{Key: "reviewdex:product:b", Fields: map[string]string{"$": `{"id":"b","name":"B","price":2,"description":"y","stock":2}`}},
			},
		}, nil
	}

	list, total, err := repo.List(context.Background(), 2, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 5 || len(list) != 2 {
		t.Fatalf("expected 2 of 5, got %d of %d", len(list), total)
	}
	if list[1].Name() != "B" {
		t.Errorf("unexpected order: %q", list[1].Name())
	}
	if gotQuery.Index != "reviewdex:product:idx" || gotQuery.Offset != 2 || gotQuery.Limit != 2 {
		t.Errorf("unexpected query %+v", gotQuery)
	}
}

func TestList_CorruptDocument(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.searchListFn = func(context.Context, *db.ListQuery) (*db.SearchResult, error) {
		return &db.SearchResult{Total: 1, Entries: []db.SearchEntry{{Key: "k", Fields: map[string]string{"$": "{"}}}}, nil
	}

	if _, _, err := repo.List(context.Background(), 0, 10); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestEnsureIndex(t *testing.T) {
	tests := []struct {
		name       string
		exists     bool
		createErr  error
		wantCreate bool
		wantErr    bool
	}{
		{"creates when absent", false, nil, true, false},
		{"skips when present", true, nil, false, false},
		{"tolerates concurrent create", false, db.ErrIndexExists, true, false},
		{"propagates failure", false, errors.New("boom"), true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, ms := newTestRepo(t)
			ms.indexExistsFn = func(context.Context, string) (bool, error) { return tt.exists, nil }
			created := false
			ms.createIndexFn = func(_ context.Context, def *db.IndexDefinition) error {
				created = true
				if def.Name != "reviewdex:product:idx" || def.StorageType != db.StorageJSON {
					t.Errorf("unexpected index %s", def)
				}
				return tt.createErr
			}

			err := repo.EnsureIndex(context.Background())
			if (err != nil) != tt.wantErr {
				t.Errorf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if created != tt.wantCreate {
				t.Errorf("created = %v, want %v", created, tt.wantCreate)
			}
		})
	}
}

func TestCustomPrefix(t *testing.T) {
	ms := &mockStore{}
	repo := New(ms, "shop:")
	repo.newID = func() string { return testID }

	var gotKey string
	ms.jsonSetFn = func(_ context.Context, key, _ string, _ []byte) error {
		gotKey = key
		return nil
	}
	if _, err := repo.Create(context.Background(), mustProduct(t)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotKey != "shop:product:"+testID {
		t.Errorf("unexpected key %q", gotKey)
	}
}
