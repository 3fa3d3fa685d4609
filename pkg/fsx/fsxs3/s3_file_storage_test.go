package fsxs3

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObjectKey_UniquePerUpload(t *testing.T) {
	first := objectKey("uploads", "cv.pdf")
	second := objectKey("uploads", "cv.pdf")

	// Same filename must never map to the same object
	assert.NotEqual(t, first, second)

	for _, key := range []string{first, second} {
		assert.True(t, strings.HasPrefix(key, "uploads/"), "key %q must live under the folder prefix", key)
		assert.True(t, strings.HasSuffix(key, "/cv.pdf"), "key %q must keep the original filename", key)
	}
}

func TestConfig_WithDefaults(t *testing.T) {
	cfg := Config{}.withDefaults()

	assert.Equal(t, "uploads", cfg.FolderName)
	assert.Equal(t, CredentialsDefault, cfg.Credentials)
	assert.NotZero(t, cfg.CallTimeout)
	assert.NotZero(t, cfg.DownloadURLTTL)
}
