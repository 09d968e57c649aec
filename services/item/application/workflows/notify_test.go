package workflows

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"go.temporal.io/sdk/testsuite"

	"github.com/ghuser/simplemarket/services/item/domain/models"
	"github.com/ghuser/simplemarket/services/item/infrastructure/persistence/memory"
)

type recordingNotifier struct {
	mu   sync.Mutex
	sent []Notification
	err  error
}

func (r *recordingNotifier) Notify(_ context.Context, n Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, n)
	return nil
}

func seedSoldItem(t *testing.T, buyers ...uuid.UUID) (*memory.Store, *models.Item) {
	t.Helper()
	store := memory.NewStore()
	title, _ := models.NewTitle("Road bike")
	desc, _ := models.NewDescription("Aluminium frame")
	price, _ := models.NewPrice(25000)
	item := models.NewItem(uuid.New(), models.ItemDetails{Title: title, Description: desc, Price: price})
	if err := store.Create(context.Background(), item); err != nil {
		t.Fatal(err)
	}
	for i, b := range buyers {
		store.SetDisplayName(b, []string{"Ana", "Ben", "Cai"}[i%3])
		if _, err := store.Mark(context.Background(), b, item.ID); err != nil {
			t.Fatal(err)
		}
	}
	return store, item
}

func TestNotifyInterestedBuyers(t *testing.T) {
	tests := []struct {
		name   string
		buyers int
	}{
		{"no interested buyers", 0},
		{"one buyer", 1},
		{"several buyers", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buyers := make([]uuid.UUID, tt.buyers)
			for i := range buyers {
				buyers[i] = uuid.New()
			}
			store, item := seedSoldItem(t, buyers...)
			notifier := &recordingNotifier{}

			var suite testsuite.WorkflowTestSuite
			env := suite.NewTestWorkflowEnvironment()
			env.RegisterActivity(&Activities{Interests: store, Notifier: notifier})

			env.ExecuteWorkflow(NotifyInterestedBuyers, NotifyInput{ItemID: item.ID, SellerID: item.SellerID, Title: item.Title.String()})

			if !env.IsWorkflowCompleted() {
				t.Fatal("workflow did not complete")
			}
			if err := env.GetWorkflowError(); err != nil {
				t.Fatalf("workflow error: %v", err)
			}
			var count int
			if err := env.GetWorkflowResult(&count); err != nil {
				t.Fatal(err)
			}
			if count != tt.buyers || len(notifier.sent) != tt.buyers {
				t.Fatalf("count = %d, sent = %d, want %d", count, len(notifier.sent), tt.buyers)
			}
			for _, n := range notifier.sent {
				if n.ItemID != item.ID || n.Title != "Road bike" || n.BuyerName == "" {
					t.Fatalf("unexpected notification %+v", n)
				}
			}
		})
	}
}

func TestNotifyInterestedBuyers_NotifierFailure(t *testing.T) {
	store, item := seedSoldItem(t, uuid.New())
	notifier := &recordingNotifier{err: errors.New("smtp down")}

	var suite testsuite.WorkflowTestSuite
	env := suite.NewTestWorkflowEnvironment()
	env.RegisterActivity(&Activities{Interests: store, Notifier: notifier})

	env.ExecuteWorkflow(NotifyInterestedBuyers, NotifyInput{ItemID: item.ID, Title: item.Title.String()})

	if !env.IsWorkflowCompleted() {
		t.Fatal("workflow did not complete")
	}
	if env.GetWorkflowError() == nil {
		t.Fatal("expected the workflow to fail once retries are exhausted")
	}
}

func TestWorkflowID_IsDeterministic(t *testing.T) {
	id := uuid.New()
	if WorkflowID(id) != WorkflowID(id) {
		t.Fatal("workflow id must be stable for an item")
	}
	if WorkflowID(id) == WorkflowID(uuid.New()) {
		t.Fatal("workflow ids must differ between items")
	}
}
