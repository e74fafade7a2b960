package repo

import (
	"context"
	"testing"
	"time"

	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartcs-core/server/internal/agent/model"
)

func strp(s string) *string { return &s }

func TestMemoryStoreGetAbsent(t *testing.T) {
	store := NewMemorySessionStore()

	sess, err := store.Get(context.Background(), "missing")

	require.NoError(t, err)
	assert.Nil(t, sess)
}

func TestMemoryStoreUpsertRoundTrip(t *testing.T) {
	store := NewMemorySessionStore()
	ctx := context.Background()

	history := []*schema.Message{
		schema.UserMessage("我要开发票"),
		schema.AssistantMessage("请问您要为哪个订单开具发票？请提供订单号。", nil),
	}
	slots := map[string]*string{
		model.SlotOrderID:      strp("ORD123456"),
		model.SlotInvoiceTitle: nil,
		model.SlotTaxNumber:    strp(""),
	}
	require.NoError(t, store.Upsert(ctx, "s1", &model.Session{History: history, Slots: slots}))

	sess, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, sess)

	require.Len(t, sess.History, 2)
	assert.Equal(t, "我要开发票", sess.History[0].Content)
	require.NotNil(t, sess.Slots[model.SlotOrderID])
	assert.Equal(t, "ORD123456", *sess.Slots[model.SlotOrderID])
	assert.Nil(t, sess.Slots[model.SlotInvoiceTitle])
	require.NotNil(t, sess.Slots[model.SlotTaxNumber])
	assert.Equal(t, "", *sess.Slots[model.SlotTaxNumber], "a declined value survives as explicitly empty")
	assert.False(t, sess.LastActivity.IsZero())
}

func TestMemoryStoreGetReturnsCopies(t *testing.T) {
	store := NewMemorySessionStore()
	ctx := context.Background()

	require.NoError(t, store.Upsert(ctx, "s1", &model.Session{
		History: []*schema.Message{schema.UserMessage("你好")},
		Slots:   map[string]*string{model.SlotOrderID: strp("ORD123456")},
	}))

	sess, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	sess.History = append(sess.History, schema.UserMessage("篡改"))
	*sess.Slots[model.SlotOrderID] = "ORD000000"

	again, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Len(t, again.History, 1)
	assert.Equal(t, "ORD123456", *again.Slots[model.SlotOrderID])
}

func TestMemoryStoreSweepExpired(t *testing.T) {
	store := NewMemorySessionStore()
	ctx := context.Background()

	base := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return base }
	require.NoError(t, store.Upsert(ctx, "stale", &model.Session{History: []*schema.Message{schema.UserMessage("你好")}}))

	store.now = func() time.Time { return base.Add(30 * time.Minute) }
	require.NoError(t, store.Upsert(ctx, "fresh", &model.Session{History: []*schema.Message{schema.UserMessage("在吗")}}))

	require.NoError(t, store.SweepExpired(ctx, base.Add(90*time.Minute), time.Hour))

	stale, err := store.Get(ctx, "stale")
	require.NoError(t, err)
	assert.Nil(t, stale)

	fresh, err := store.Get(ctx, "fresh")
	require.NoError(t, err)
	assert.NotNil(t, fresh)
}

func TestMemoryStoreDelete(t *testing.T) {
	store := NewMemorySessionStore()
	ctx := context.Background()

	require.NoError(t, store.Upsert(ctx, "s1", &model.Session{History: []*schema.Message{schema.UserMessage("你好")}}))

	deleted, err := store.Delete(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = store.Delete(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestMemoryStoreList(t *testing.T) {
	store := NewMemorySessionStore()
	ctx := context.Background()

	require.NoError(t, store.Upsert(ctx, "b", &model.Session{History: []*schema.Message{
		schema.UserMessage("你好"),
		schema.AssistantMessage("您好！", nil),
	}}))
	require.NoError(t, store.Upsert(ctx, "a", &model.Session{History: []*schema.Message{
		schema.UserMessage("在吗"),
	}}))

	infos, err := store.List(ctx)
	require.NoError(t, err)

	require.Len(t, infos, 2)
	assert.Equal(t, "a", infos[0].ID)
	assert.Equal(t, 1, infos[0].MessageCount)
	assert.Equal(t, "b", infos[1].ID)
	assert.Equal(t, 2, infos[1].MessageCount)
}
