package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	itemdomain "github.com/ghuser/simplemarket/services/item/domain"
	"github.com/ghuser/simplemarket/services/item/domain/models"
	"github.com/ghuser/simplemarket/services/item/domain/repositories"
)

var base = time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)

func newItem(seller uuid.UUID, title, desc string, category int32, posted time.Time) *models.Item {
	item := models.NewItem(seller, models.ItemDetails{
		Title:       models.Title(title),
		Description: models.Description(desc),
		Price:       1000,
	})
	if category > 0 {
		item.CategoryID = &category
	}
	item.DatePosted = posted
	return item
}

func mustCreate(t *testing.T, s *Store, items ...*models.Item) {
	t.Helper()
	for _, it := range items {
		if err := s.Create(context.Background(), it); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}
}

func ids(items []*models.Item) []uuid.UUID {
	out := make([]uuid.UUID, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func TestStore_ListAvailable_ExcludesSoldNewestFirst(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	seller := uuid.New()

	older := newItem(seller, "Lamp", "Desk lamp", 0, base)
	newer := newItem(seller, "Sofa", "Three seats", 0, base.Add(time.Hour))
	sold := newItem(seller, "Phone", "Old phone", 0, base.Add(2*time.Hour))
	mustCreate(t, s, older, newer, sold)

	if _, err := s.MarkSold(ctx, sold.ID); err != nil {
		t.Fatalf("MarkSold: %v", err)
	}

	got, err := s.ListAvailable(ctx)
	if err != nil {
		t.Fatalf("ListAvailable: %v", err)
	}
	want := []uuid.UUID{newer.ID, older.ID}
	if gotIDs := ids(got); len(gotIDs) != 2 || gotIDs[0] != want[0] || gotIDs[1] != want[1] {
		t.Fatalf("got %v, want %v", gotIDs, want)
	}
	for _, it := range got {
		if it.IsSold {
			t.Fatalf("sold item %v listed as available", it.ID)
		}
	}
}

func TestStore_Search(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	seller := uuid.New()

	phoneTitle := newItem(seller, "Smart Phone", "Unlocked", 1, base)
	phoneDesc := newItem(seller, "Charger", "Fits any PHONE", 2, base.Add(time.Minute))
	other := newItem(seller, "Chair", "Wooden", 1, base.Add(2*time.Minute))
	soldPhone := newItem(seller, "phone case", "Blue", 1, base.Add(3*time.Minute))
	mustCreate(t, s, phoneTitle, phoneDesc, other, soldPhone)
	if _, err := s.MarkSold(ctx, soldPhone.ID); err != nil {
		t.Fatalf("MarkSold: %v", err)
	}

	tests := []struct {
		name string
		q    repositories.SearchQuery
		want []uuid.UUID
	}{
		{"term matches title or description, any case", repositories.SearchQuery{Term: "phone"}, []uuid.UUID{phoneDesc.ID, phoneTitle.ID}},
		{"term and category", repositories.SearchQuery{Term: "phone", CategoryID: 1}, []uuid.UUID{phoneTitle.ID}},
		{"category only", repositories.SearchQuery{CategoryID: 1}, []uuid.UUID{other.ID, phoneTitle.ID}},
		{"non-positive category ignored", repositories.SearchQuery{Term: "chair", CategoryID: -3}, []uuid.UUID{other.ID}},
		{"no match", repositories.SearchQuery{Term: "bicycle"}, []uuid.UUID{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Search(ctx, tt.q)
			if err != nil {
				t.Fatalf("Search: %v", err)
			}
			if got == nil {
				t.Fatal("Search must return an empty slice, not nil")
			}
			gotIDs := ids(got)
			if len(gotIDs) != len(tt.want) {
				t.Fatalf("got %v, want %v", gotIDs, tt.want)
			}
			for i := range gotIDs {
				if gotIDs[i] != tt.want[i] {
					t.Fatalf("got %v, want %v", gotIDs, tt.want)
				}
			}
		})
	}
}

func TestStore_GetByID(t *testing.T) {
	s := NewStore()
	item := newItem(uuid.New(), "Lamp", "Desk lamp", 3, base)
	mustCreate(t, s, item)

	got, err := s.GetByID(context.Background(), item.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	*got.CategoryID = 99
	again, _ := s.GetByID(context.Background(), item.ID)
	if *again.CategoryID != 3 {
		t.Fatal("returned items must not alias stored state")
	}

	if _, err := s.GetByID(context.Background(), uuid.New()); !errors.Is(err, itemdomain.ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
}

func TestStore_ListBySeller_IncludesSold(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	seller := uuid.New()

	a := newItem(seller, "A", "a", 0, base)
	b := newItem(seller, "B", "b", 0, base.Add(time.Hour))
	foreign := newItem(uuid.New(), "C", "c", 0, base)
	mustCreate(t, s, a, b, foreign)
	if _, err := s.MarkSold(ctx, a.ID); err != nil {
		t.Fatalf("MarkSold: %v", err)
	}

	got, err := s.ListBySeller(ctx, seller)
	if err != nil {
		t.Fatalf("ListBySeller: %v", err)
	}
	if gotIDs := ids(got); len(gotIDs) != 2 || gotIDs[0] != b.ID || gotIDs[1] != a.ID {
		t.Fatalf("got %v, want [%v %v]", gotIDs, b.ID, a.ID)
	}
}

func TestStore_UpdateDeleteMarkSold_Absent(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	ghost := newItem(uuid.New(), "Ghost", "none", 0, base)

	if ok, err := s.Update(ctx, ghost); ok || err != nil {
		t.Fatalf("Update absent = %v, %v; want false, nil", ok, err)
	}
	if ok, err := s.Delete(ctx, ghost.ID); ok || err != nil {
		t.Fatalf("Delete absent = %v, %v; want false, nil", ok, err)
	}
	if ok, err := s.MarkSold(ctx, ghost.ID); ok || err != nil {
		t.Fatalf("MarkSold absent = %v, %v; want false, nil", ok, err)
	}
}

func TestStore_UpdateKeepsSoldState(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	item := newItem(uuid.New(), "Lamp", "Desk lamp", 0, base)
	mustCreate(t, s, item)
	if _, err := s.MarkSold(ctx, item.ID); err != nil {
		t.Fatalf("MarkSold: %v", err)
	}

	changed := *item
	changed.Title = "Floor lamp"
	changed.IsSold = false
	if ok, err := s.Update(ctx, &changed); !ok || err != nil {
		t.Fatalf("Update = %v, %v", ok, err)
	}

	got, _ := s.GetByID(ctx, item.ID)
	if got.Title != "Floor lamp" || !got.IsSold {
		t.Fatalf("expected new title and sold state kept, got %+v", got)
	}
}

func TestStore_MarkSoldIdempotent(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	item := newItem(uuid.New(), "Lamp", "Desk lamp", 0, base)
	mustCreate(t, s, item)

	for i := 0; i < 2; i++ {
		ok, err := s.MarkSold(ctx, item.ID)
		if err != nil || !ok {
			t.Fatalf("MarkSold #%d = %v, %v", i+1, ok, err)
		}
	}
	got, _ := s.GetByID(ctx, item.ID)
	if !got.IsSold {
		t.Fatal("expected item sold")
	}
}

func TestStore_MarkTwiceKeepsOneInterest(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	item := newItem(uuid.New(), "Lamp", "Desk lamp", 0, base)
	mustCreate(t, s, item)
	buyer := uuid.New()

	first, err := s.Mark(ctx, buyer, item.ID)
	if err != nil || !first {
		t.Fatalf("first Mark = %v, %v", first, err)
	}
	second, err := s.Mark(ctx, buyer, item.ID)
	if err != nil || second {
		t.Fatalf("second Mark = %v, %v; want false, nil", second, err)
	}

	list, _ := s.ListForItem(ctx, item.ID)
	if len(list) != 1 {
		t.Fatalf("expected 1 interest, got %d", len(list))
	}
}

func TestStore_MarkUnknownItem(t *testing.T) {
	s := NewStore()
	if _, err := s.Mark(context.Background(), uuid.New(), uuid.New()); !errors.Is(err, itemdomain.ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
}

func TestStore_RemoveAndHasMarked(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	item := newItem(uuid.New(), "Lamp", "Desk lamp", 0, base)
	mustCreate(t, s, item)
	buyer := uuid.New()

	if ok, _ := s.Remove(ctx, buyer, item.ID); ok {
		t.Fatal("Remove of never-marked pair must return false")
	}

	if _, err := s.Mark(ctx, buyer, item.ID); err != nil {
		t.Fatalf("Mark: %v", err)
	}
	if has, _ := s.HasMarked(ctx, buyer, item.ID); !has {
		t.Fatal("expected HasMarked after Mark")
	}
	if ok, _ := s.Remove(ctx, buyer, item.ID); !ok {
		t.Fatal("expected Remove to report removal")
	}
	if has, _ := s.HasMarked(ctx, buyer, item.ID); has {
		t.Fatal("expected HasMarked false after Remove")
	}

	if ok, _ := s.Mark(ctx, buyer, item.ID); !ok {
		t.Fatal("expected re-mark after removal to succeed")
	}
}

func TestStore_DeleteCascadesInterests(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	item := newItem(uuid.New(), "Lamp", "Desk lamp", 0, base)
	kept := newItem(uuid.New(), "Rug", "Red rug", 0, base)
	mustCreate(t, s, item, kept)
	onlyThis, both := uuid.New(), uuid.New()

	for _, m := range []struct{ buyer, item uuid.UUID }{
		{onlyThis, item.ID}, {both, item.ID}, {both, kept.ID},
	} {
		if _, err := s.Mark(ctx, m.buyer, m.item); err != nil {
			t.Fatalf("Mark: %v", err)
		}
	}

	if ok, err := s.Delete(ctx, item.ID); !ok || err != nil {
		t.Fatalf("Delete = %v, %v", ok, err)
	}

	if list, _ := s.ListForBuyer(ctx, onlyThis); len(list) != 0 {
		t.Fatalf("expected no interests for buyer, got %d", len(list))
	}
	list, _ := s.ListForBuyer(ctx, both)
	if len(list) != 1 || list[0].Item.ID != kept.ID {
		t.Fatalf("expected only the interest in the kept item, got %+v", list)
	}
}

func TestStore_InterestListsJoinNamesNewestFirst(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	seller, buyer, other := uuid.New(), uuid.New(), uuid.New()
	s.SetDisplayName(seller, "Sam Seller")
	s.SetDisplayName(buyer, "Bea Buyer")
	s.SetDisplayName(other, "Oli Other")

	first := newItem(seller, "Lamp", "Desk lamp", 0, base)
	second := newItem(seller, "Rug", "Red rug", 0, base)
	mustCreate(t, s, first, second)

	clock := base
	s.now = func() time.Time { clock = clock.Add(time.Minute); return clock }

	for _, m := range []struct{ buyer, item uuid.UUID }{
		{buyer, first.ID}, {other, first.ID}, {buyer, second.ID},
	} {
		if _, err := s.Mark(ctx, m.buyer, m.item); err != nil {
			t.Fatalf("Mark: %v", err)
		}
	}

	mine, _ := s.ListForBuyer(ctx, buyer)
	if len(mine) != 2 || mine[0].Item.ID != second.ID || mine[1].Item.ID != first.ID {
		t.Fatalf("ListForBuyer order wrong: %+v", mine)
	}
	if mine[0].SellerName != "Sam Seller" {
		t.Fatalf("SellerName = %q", mine[0].SellerName)
	}

	forItem, _ := s.ListForItem(ctx, first.ID)
	if len(forItem) != 2 || forItem[0].BuyerName != "Oli Other" || forItem[1].BuyerName != "Bea Buyer" {
		t.Fatalf("ListForItem order/names wrong: %+v", forItem)
	}
}
