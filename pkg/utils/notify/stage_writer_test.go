package notify_test

import (
	"bytes"
	"testing"

	"github.com/saasfoundry/sf/pkg/utils/notify"
	"github.com/stretchr/testify/assert"
)

func TestStageSeparatingWriter(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	writer := notify.NewStageSeparatingWriter(&out)

	notify.Titlef(writer, "🚀", "Create project")
	notify.Activityf(writer, "copying")
	notify.Successf(writer, "copied")
	notify.Titlef(writer, "🔌", "Bring up")

	assert.Equal(t, "🚀 Create project\n► copying\n✔ copied\n\n🔌 Bring up\n", out.String())
	assert.Same(t, &out, writer.Unwrap())
}

func TestIsTerminal_Buffer(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	assert.False(t, notify.IsTerminal(&out))
	assert.False(t, notify.IsTerminal(notify.NewStageSeparatingWriter(&out)))
	assert.False(t, notify.IsTerminal(nil))
}
