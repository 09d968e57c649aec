package main

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/ghuser/simplemarket/pkg/events"
	"github.com/ghuser/simplemarket/pkg/logger"
	"github.com/ghuser/simplemarket/pkg/workflows"
	itemSvcs "github.com/ghuser/simplemarket/services/item/application/services"
	itemWorkflows "github.com/ghuser/simplemarket/services/item/application/workflows"
	itemEvents "github.com/ghuser/simplemarket/services/item/domain/events"
)

// subscribers holds the item event handlers. starter is nil when Temporal is
// disabled; sold listings then only drop their cache entry.
type subscribers struct {
	items     *itemSvcs.ItemService
	starter   workflows.Starter
	taskQueue string
	log       logger.Logger
}

type handlerFunc = func(context.Context, *message.Message) error

func (s *subscribers) topics() map[string]handlerFunc {
	return map[string]handlerFunc{
		itemEvents.TopicItemCreated: s.itemCreated,
		itemEvents.TopicItemSold:    s.itemSold,
		itemEvents.TopicItemDeleted: s.itemDeleted,
	}
}

// itemCreated warms the read cache from the repository rather than the event
// payload: topics are consumed independently, so the listing may already be
// sold or deleted by the time this runs.
func (s *subscribers) itemCreated(ctx context.Context, msg *message.Message) error {
	evt, err := events.Decode[itemEvents.ItemCreatedEvent](msg)
	if err != nil {
		return err
	}
	if err := s.items.Refresh(ctx, evt.ItemID); err != nil {
		return fmt.Errorf("warm created item: %w", err)
	}
	s.log.InfoContext(ctx, "cache warmed", "item_id", evt.ItemID)
	return nil
}

func (s *subscribers) itemSold(ctx context.Context, msg *message.Message) error {
	evt, err := events.Decode[itemEvents.ItemSoldEvent](msg)
	if err != nil {
		return err
	}
	if err := s.items.Evict(ctx, evt.ItemID); err != nil {
		return fmt.Errorf("evict sold item: %w", err)
	}
	if s.starter == nil {
		return nil
	}

	started, err := workflows.Start(ctx, s.starter, itemWorkflows.WorkflowID(evt.ItemID), s.taskQueue,
		itemWorkflows.NotifyInterestedBuyers, itemWorkflows.NotifyInput{
			ItemID:   evt.ItemID,
			SellerID: evt.SellerID,
			Title:    evt.Title,
		})
	if err != nil {
		return err
	}
	s.log.InfoContext(ctx, "notify workflow", "item_id", evt.ItemID, "started", started)
	return nil
}

func (s *subscribers) itemDeleted(ctx context.Context, msg *message.Message) error {
	evt, err := events.Decode[itemEvents.ItemDeletedEvent](msg)
	if err != nil {
		return err
	}
	if err := s.items.Evict(ctx, evt.ItemID); err != nil {
		return fmt.Errorf("evict deleted item: %w", err)
	}
	return nil
}
