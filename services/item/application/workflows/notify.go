// Package workflows holds the item context's Temporal workflows and activities.
package workflows

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"github.com/ghuser/simplemarket/pkg/logger"
	"github.com/ghuser/simplemarket/services/item/domain/repositories"
)

// NotifyInput identifies the sold listing.
type NotifyInput struct {
	ItemID   uuid.UUID `json:"item_id"`
	SellerID uuid.UUID `json:"seller_id"`
	Title    string    `json:"title"`
}

// Notification is one message to one interested buyer.
type Notification struct {
	ItemID    uuid.UUID `json:"item_id"`
	BuyerID   uuid.UUID `json:"buyer_id"`
	BuyerName string    `json:"buyer_name"`
	Title     string    `json:"title"`
}

// Notifier delivers a notification. The delivery channel lives outside this service.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// LogNotifier emits each notification as a structured log record.
type LogNotifier struct {
	Log logger.Logger
}

func (n LogNotifier) Notify(ctx context.Context, note Notification) error {
	n.Log.InfoContext(ctx, "buyer notified",
		"item_id", note.ItemID,
		"buyer_id", note.BuyerID,
		"buyer_name", note.BuyerName,
		"title", note.Title,
	)
	return nil
}

// Activities are registered on the worker as a struct so their dependencies
// stay out of workflow code.
type Activities struct {
	Interests repositories.InterestRepository
	Notifier  Notifier
}

// LoadInterestedBuyers lists everyone who marked interest in the item.
func (a *Activities) LoadInterestedBuyers(ctx context.Context, in NotifyInput) ([]Notification, error) {
	list, err := a.Interests.ListForItem(ctx, in.ItemID)
	if err != nil {
		return nil, fmt.Errorf("list interests for item %s: %w", in.ItemID, err)
	}
	out := make([]Notification, 0, len(list))
	for _, it := range list {
		out = append(out, Notification{
			ItemID:    in.ItemID,
			BuyerID:   it.Interest.BuyerID,
			BuyerName: it.BuyerName,
			Title:     in.Title,
		})
	}
	return out, nil
}

func (a *Activities) NotifyBuyer(ctx context.Context, n Notification) error {
	return a.Notifier.Notify(ctx, n)
}

// NotifyInterestedBuyers tells every interested buyer that the listing sold.
// It returns the number of buyers notified.
func NotifyInterestedBuyers(ctx workflow.Context, in NotifyInput) (int, error) {
	ctx = workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    time.Second,
			BackoffCoefficient: 2,
			MaximumAttempts:    5,
		},
	})

	var a *Activities
	var buyers []Notification
	if err := workflow.ExecuteActivity(ctx, a.LoadInterestedBuyers, in).Get(ctx, &buyers); err != nil {
		return 0, err
	}

	futures := make([]workflow.Future, 0, len(buyers))
	for _, n := range buyers {
		futures = append(futures, workflow.ExecuteActivity(ctx, a.NotifyBuyer, n))
	}
	for _, f := range futures {
		if err := f.Get(ctx, nil); err != nil {
			return 0, err
		}
	}

	workflow.GetLogger(ctx).Info("interested buyers notified", "item_id", in.ItemID, "count", len(buyers))
	return len(buyers), nil
}

// WorkflowID is deterministic per item so a redelivered sold event does not
// notify buyers twice.
func WorkflowID(itemID uuid.UUID) string {
	return "notify-interested-buyers-" + itemID.String()
}

// Register adds the workflow and its activities to a worker.
func Register(r worker.Registry, acts *Activities) {
	r.RegisterWorkflow(NotifyInterestedBuyers)
	r.RegisterActivity(acts)
}
