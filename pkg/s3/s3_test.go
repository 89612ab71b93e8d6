package s3

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObjectKey(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		want     string
	}{
		{name: "plain", fileName: "card.png", want: "ocr/01J-card.png"},
		{name: "unix path", fileName: "../../etc/passwd", want: "ocr/01J-passwd"},
		{name: "windows path", fileName: `C:\Users\me\sim card.jpg`, want: "ocr/01J-sim_card.jpg"},
		{name: "empty", fileName: "", want: "ocr/01J-upload"},
		{name: "unicode", fileName: "卡.png", want: "ocr/01J-_.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ObjectKey("ocr", "01J", tt.fileName))
		})
	}
}

func TestNewRequiresBucket(t *testing.T) {
	t.Setenv("AWS_BUCKET_NAME", "")
	_, err := New()
	assert.ErrorIs(t, err, ErrBucketNotConfigured)
}
