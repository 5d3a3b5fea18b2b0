package notify_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/ziyotek-edu/devsecops-portfolio-template/pkg/cli/ui/notify"
)

func TestErrorfWritesSymbolAndContent(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	notify.Errorf(&buf, "provisioning failed: %s", "boom")

	assert.Contains(t, buf.String(), "✗ ")
	assert.Contains(t, buf.String(), "provisioning failed: boom")
}

func TestSuccessfWritesSymbolAndContent(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	notify.Successf(&buf, "credentials written")

	assert.Contains(t, buf.String(), "✔ ")
	assert.Contains(t, buf.String(), "credentials written")
}

func TestTitlefUsesCustomEmoji(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	notify.Titlef(&buf, "🔐", "Provision credentials...")

	assert.Contains(t, buf.String(), "🔐 Provision credentials...")
}

func TestWriteMessageIndentsMultilineContent(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	notify.WriteMessage(notify.Message{
		Type:    notify.InfoType,
		Content: "first\nsecond",
		Writer:  &buf,
	})

	assert.Contains(t, buf.String(), "ℹ first\n  second\n")
}

func TestWriteMessageFormatsArgs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	notify.WriteMessage(notify.Message{
		Type:    notify.ActivityType,
		Content: "creating cluster '%s'",
		Args:    []any{"portfolio"},
		Writer:  &buf,
	})

	assert.Contains(t, buf.String(), "► creating cluster 'portfolio'")
}
