package conversation

import (
	"testing"

	"pocbuilder/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendKeepsInsertionOrder(t *testing.T) {
	log := NewLog()

	log.Append(NewUserMessage("first"))
	log.Append(NewPendingAssistant("second"))
	log.Append(NewAssistantMessage("third"))

	messages := log.Snapshot()
	require.Len(t, messages, 3)
	assert.Equal(t, "first", messages[0].Content)
	assert.Equal(t, "second", messages[1].Content)
	assert.Equal(t, "third", messages[2].Content)
	assert.Equal(t, model.RoleUser, messages[0].Role)
	assert.Equal(t, model.RoleAssistant, messages[1].Role)
	assert.True(t, messages[1].Pending)
	assert.False(t, messages[2].Pending)
}

func TestReplaceLastOnlyTouchesTail(t *testing.T) {
	log := NewLog()
	log.Append(NewUserMessage("question"))
	log.Append(NewPendingAssistant("working"))

	require.NoError(t, log.ReplaceLast(NewAssistantMessage("answer")))

	messages := log.Snapshot()
	require.Len(t, messages, 2)
	assert.Equal(t, "question", messages[0].Content)
	assert.Equal(t, "answer", messages[1].Content)
	assert.False(t, messages[1].Pending)
}

func TestReplaceLastOnEmptyLog(t *testing.T) {
	log := NewLog()

	err := log.ReplaceLast(NewAssistantMessage("orphan"))
	assert.ErrorIs(t, err, ErrEmptyLog)
	assert.Zero(t, log.Len())
}

func TestSnapshotIsIsolatedCopy(t *testing.T) {
	log := NewLog()
	log.Append(NewUserMessage("original"))

	snapshot := log.Snapshot()
	snapshot[0].Content = "mutated"

	assert.Equal(t, "original", log.Snapshot()[0].Content)
}

func TestMutationsFireChangeNotification(t *testing.T) {
	log := NewLog()

	var notified int
	log.SetOnChange(func() { notified++ })

	log.Append(NewUserMessage("one"))
	log.Append(NewPendingAssistant("two"))
	require.NoError(t, log.ReplaceLast(NewAssistantMessage("two final")))

	assert.Equal(t, 3, notified)
}
