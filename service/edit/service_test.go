package edit

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/afs"
	"github.com/viant/afs/file"
)

func uploadFixture(t *testing.T, URL, content string) {
	t.Helper()
	fs := afs.New()
	err := fs.Upload(context.Background(), URL, file.DefaultFileOsMode, bytes.NewReader([]byte(content)))
	assert.NoError(t, err)
}

func download(t *testing.T, URL string) string {
	t.Helper()
	fs := afs.New()
	data, err := fs.DownloadWithURL(context.Background(), URL)
	assert.NoError(t, err)
	return string(data)
}

const editBlock = `<<<<<<< SEARCH
port: 8080
=======
port: 9090
>>>>>>> REPLACE`

func TestService_Apply(t *testing.T) {
	ctx := context.Background()
	URL := "mem://localhost/edit-test/apply.yaml"
	uploadFixture(t, URL, "host: localhost\nport: 8080\ndebug: false\n")

	service := New()
	output := &ApplyOutput{}
	err := service.Apply(ctx, &ApplyInput{URL: URL, Block: editBlock}, output)
	assert.NoError(t, err)
	assert.Equal(t, 1, output.Replacements)
	assert.Contains(t, output.Diff, "-port: 8080")
	assert.Contains(t, output.Diff, "+port: 9090")
	assert.Equal(t, "host: localhost\nport: 9090\ndebug: false\n", download(t, URL))
}

func TestService_ApplyFirstOccurrenceOnly(t *testing.T) {
	ctx := context.Background()
	URL := "mem://localhost/edit-test/repeat.txt"
	uploadFixture(t, URL, "token\ntoken\n")

	service := New()
	block := "<<<<<<< SEARCH\ntoken\n=======\nreplaced\n>>>>>>> REPLACE"
	output := &ApplyOutput{}
	err := service.Apply(ctx, &ApplyInput{URL: URL, Block: block}, output)
	assert.NoError(t, err)
	assert.Equal(t, "replaced\ntoken\n", download(t, URL))
}

func TestService_ApplyDryRun(t *testing.T) {
	ctx := context.Background()
	URL := "mem://localhost/edit-test/dry.yaml"
	original := "host: localhost\nport: 8080\n"
	uploadFixture(t, URL, original)

	service := New()
	dry := &ApplyOutput{}
	err := service.Apply(ctx, &ApplyInput{URL: URL, Block: editBlock, DryRun: true}, dry)
	assert.NoError(t, err)
	assert.True(t, dry.DryRun)
	assert.Equal(t, original, download(t, URL))

	// A wet run reports the same diff the dry run promised.
	wet := &ApplyOutput{}
	err = service.Apply(ctx, &ApplyInput{URL: URL, Block: editBlock}, wet)
	assert.NoError(t, err)
	assert.Equal(t, dry.Diff, wet.Diff)
}

func TestService_ApplySearchMissing(t *testing.T) {
	ctx := context.Background()
	URL := "mem://localhost/edit-test/missing.txt"
	uploadFixture(t, URL, "nothing relevant here\n")

	service := New()
	err := service.Apply(ctx, &ApplyInput{URL: URL, Block: editBlock}, &ApplyOutput{})
	assert.Error(t, err)
}

func TestService_ApplyValidation(t *testing.T) {
	ctx := context.Background()
	service := New()
	assert.Error(t, service.Apply(ctx, &ApplyInput{Block: editBlock}, &ApplyOutput{}))
	assert.Error(t, service.Apply(ctx, &ApplyInput{URL: "mem://localhost/edit-test/x"}, &ApplyOutput{}))
}

func TestService_Methods(t *testing.T) {
	service := New()
	assert.Equal(t, Name, service.Name())
	for _, signature := range service.Methods() {
		executable, err := service.Method(signature.Name)
		assert.NoError(t, err)
		assert.NotNil(t, executable)
	}
	_, err := service.Method("unknown")
	assert.Error(t, err)
}
