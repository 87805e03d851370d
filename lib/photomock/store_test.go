// Copyright 2026 The Lightbox Authors
// SPDX-License-Identifier: Apache-2.0

package photomock

import (
	"context"
	"testing"

	"github.com/lightbox-labs/lightbox/lib/photoapi"
)

func openSeededStore(t *testing.T, photos []photoapi.Photo) *Store {
	t.Helper()
	store, err := OpenStore(StoreConfig{})
	if err != nil {
		t.Fatalf("OpenStore: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("Close: %v", err)
		}
	})
	if err := store.Insert(context.Background(), photos); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	return store
}

func photoIDs(photos []photoapi.Photo) []string {
	ids := make([]string, len(photos))
	for index, photo := range photos {
		ids[index] = photo.ID
	}
	return ids
}

func TestOpenStoreInMemoryIsPrivate(t *testing.T) {
	seeded := openSeededStore(t, GenerateSeed(5))
	empty := openSeededStore(t, nil)
	ctx := context.Background()

	if count, err := seeded.Count(ctx); err != nil || count != 5 {
		t.Errorf("seeded Count = %d, %v; want 5, nil", count, err)
	}
	if count, err := empty.Count(ctx); err != nil || count != 0 {
		t.Errorf("second store Count = %d, %v; want 0, nil", count, err)
	}
}

func TestStoreListPaging(t *testing.T) {
	store := openSeededStore(t, GenerateSeed(25))
	ctx := context.Background()

	first, err := store.List(ctx, 1, 10)
	if err != nil {
		t.Fatalf("List page 1: %v", err)
	}
	if first.Total != 25 || first.Pages != 3 || len(first.Photo) != 10 {
		t.Fatalf("page 1: total %d, pages %d, %d photos; want 25, 3, 10", first.Total, first.Pages, len(first.Photo))
	}
	if first.Photo[0].ID != "53000000000" {
		t.Errorf("first photo = %s, want insertion order", first.Photo[0].ID)
	}

	last, err := store.List(ctx, 3, 10)
	if err != nil {
		t.Fatalf("List page 3: %v", err)
	}
	if len(last.Photo) != 5 || last.Photo[4].ID != "53000000024" {
		t.Fatalf("page 3 = %v, want the last 5 photos", photoIDs(last.Photo))
	}

	beyond, err := store.List(ctx, 4, 10)
	if err != nil {
		t.Fatalf("List page 4: %v", err)
	}
	if len(beyond.Photo) != 0 || beyond.Photo == nil {
		t.Fatalf("page past the end = %#v, want an empty non-nil slice", beyond.Photo)
	}
}

func TestStoreSearch(t *testing.T) {
	store := openSeededStore(t, []photoapi.Photo{
		{ID: "1", Title: "Tabby CAT on a wall"},
		{ID: "2", Title: "dog in the park"},
		{ID: "3", Title: "cathedral at noon"},
		{ID: "4", Title: "100% cotton"},
		{ID: "5", Title: "1000 cotton bales"},
	})
	ctx := context.Background()

	cats, err := store.Search(ctx, "cat", 1, 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if got := photoIDs(cats.Photo); len(got) != 2 || got[0] != "1" || got[1] != "3" {
		t.Fatalf("search cat = %v, want [1 3]", got)
	}

	percent, err := store.Search(ctx, "100%", 1, 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if got := photoIDs(percent.Photo); len(got) != 1 || got[0] != "4" {
		t.Fatalf("search 100%% = %v, want [4]", got)
	}

	none, err := store.Search(ctx, "zebra", 1, 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if none.Total != 0 || none.Pages != 0 || len(none.Photo) != 0 {
		t.Fatalf("search zebra = %+v, want empty", none)
	}
}

func TestStoreInsertReplacesByID(t *testing.T) {
	store := openSeededStore(t, []photoapi.Photo{{ID: "1", Title: "old"}, {ID: "2", Title: "second"}})
	ctx := context.Background()
	if err := store.Insert(ctx, []photoapi.Photo{{ID: "1", Title: "new"}}); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	count, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 2 {
		t.Fatalf("count = %d, want 2", count)
	}
	page, err := store.List(ctx, 1, 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if page.Photo[0].ID != "1" || page.Photo[0].Title != "new" {
		t.Fatalf("first photo = %+v, want id 1 retitled in place", page.Photo[0])
	}
}

func TestStoreRejectsBadPaging(t *testing.T) {
	store := openSeededStore(t, nil)
	ctx := context.Background()
	if _, err := store.List(ctx, 0, 10); err == nil {
		t.Error("List page 0 succeeded")
	}
	if _, err := store.List(ctx, 1, MaxPerPage+1); err == nil {
		t.Error("List with oversized page succeeded")
	}
}

func TestStoreInsertRequiresID(t *testing.T) {
	store := openSeededStore(t, nil)
	if err := store.Insert(context.Background(), []photoapi.Photo{{Title: "anonymous"}}); err == nil {
		t.Fatal("Insert without id succeeded")
	}
}
