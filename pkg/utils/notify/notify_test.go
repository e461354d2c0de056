package notify_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/saasfoundry/sf/pkg/utils/notify"
	"github.com/saasfoundry/sf/pkg/utils/timer"
	"github.com/stretchr/testify/assert"
)

func TestWriteMessage_Symbols(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		write func(*bytes.Buffer)
		want  string
	}{
		{
			name:  "error",
			write: func(b *bytes.Buffer) { notify.Errorf(b, "boom: %s", "disk") },
			want:  "✗ boom: disk\n",
		},
		{
			name:  "warning",
			write: func(b *bytes.Buffer) { notify.Warningf(b, "careful") },
			want:  "⚠ careful\n",
		},
		{
			name:  "activity",
			write: func(b *bytes.Buffer) { notify.Activityf(b, "copying %d files", 3) },
			want:  "► copying 3 files\n",
		},
		{
			name:  "generate",
			write: func(b *bytes.Buffer) { notify.Generatef(b, "apps/acme-api") },
			want:  "✚ apps/acme-api\n",
		},
		{
			name:  "success",
			write: func(b *bytes.Buffer) { notify.Successf(b, "done") },
			want:  "✔ done\n",
		},
		{
			name:  "info",
			write: func(b *bytes.Buffer) { notify.Infof(b, "note") },
			want:  "ℹ note\n",
		},
		{
			name:  "title with emoji",
			write: func(b *bytes.Buffer) { notify.Titlef(b, "🚀", "Create %s", "acme") },
			want:  "🚀 Create acme\n",
		},
		{
			name:  "title default emoji",
			write: func(b *bytes.Buffer) { notify.Titlef(b, "", "Bring up") },
			want:  notify.DefaultTitleEmoji + " Bring up\n",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			var out bytes.Buffer

			testCase.write(&out)
			assert.Equal(t, testCase.want, out.String())
		})
	}
}

func TestWriteMessage_LiteralPercentWithoutArgs(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	notify.WriteMessage(notify.Message{Type: notify.InfoType, Content: "100% done", Writer: &out})
	assert.Equal(t, "ℹ 100% done\n", out.String())
}

func TestWriteMessage_MultilineIsAligned(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	notify.Warningf(&out, "first\nsecond\n\nthird")
	assert.Equal(t, "⚠ first\n  second\n\n  third\n", out.String())
}

func TestSuccessWithTimerf(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tmr := timer.NewWithClock(func() time.Time { return now })
	tmr.Start()

	now = now.Add(1500 * time.Millisecond)

	var out bytes.Buffer

	notify.SuccessWithTimerf(&out, tmr, "project created")
	assert.Equal(t, "✔ project created\n⏲ current: 1.5s\n  total:  1.5s\n", out.String())
}
